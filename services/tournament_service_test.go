package services

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"fairway-pickem/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTournamentApp(t *testing.T) (*fiber.App, *TournamentService) {
	t.Helper()
	db := newTestDB(t)
	scoring := NewScoringService(db)
	svc := NewTournamentService(db, scoring)

	app := fiber.New()
	app.Get("/tournaments", svc.GetSchedule)
	app.Get("/tournaments/current", svc.GetCurrentTournament)
	app.Get("/tournaments/:id", svc.GetTournamentByID)
	app.Post("/admin/tournaments", svc.CreateTournament)
	app.Patch("/admin/tournaments/:id/status", svc.UpdateStatus)
	app.Post("/admin/tournaments/:id/results", svc.IngestResults)
	return app, svc
}

func doJSON(t *testing.T, app *fiber.App, method, path string, payload interface{}) (int, []byte) {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func TestCreateTournament(t *testing.T) {
	app, svc := newTournamentApp(t)

	code, body := doJSON(t, app, "POST", "/admin/tournaments", fiber.Map{
		"name":     "The Masters Tournament",
		"dates":    "Apr 9-12",
		"week_num": 13,
		"type":     "MAJOR",
		"purse":    20000000,
	})
	require.Equal(t, 201, code)

	var created models.Tournament
	require.NoError(t, json.Unmarshal(body, &created))
	assert.Equal(t, "the-masters-tournament", created.Slug)
	assert.Equal(t, models.TypeMajor, created.Type)
	assert.Equal(t, models.StatusUpcoming, created.Status)

	var count int64
	svc.DB.Model(&models.Tournament{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestCreateTournament_Validation(t *testing.T) {
	app, _ := newTournamentApp(t)

	code, _ := doJSON(t, app, "POST", "/admin/tournaments", fiber.Map{"week_num": 1})
	assert.Equal(t, 400, code)

	code, _ = doJSON(t, app, "POST", "/admin/tournaments", fiber.Map{"name": "X", "week_num": 0})
	assert.Equal(t, 400, code)

	code, _ = doJSON(t, app, "POST", "/admin/tournaments", fiber.Map{
		"name": "X", "week_num": 1, "type": "INVITATIONAL",
	})
	assert.Equal(t, 400, code)
}

func TestCreateTournament_Conflicts(t *testing.T) {
	app, _ := newTournamentApp(t)

	code, _ := doJSON(t, app, "POST", "/admin/tournaments", fiber.Map{
		"name": "The Masters Tournament", "week_num": 13, "type": "MAJOR",
	})
	require.Equal(t, 201, code)

	// Different name, same slug.
	code, _ = doJSON(t, app, "POST", "/admin/tournaments", fiber.Map{
		"name": "The Masters: Tournament", "week_num": 14,
	})
	assert.Equal(t, 409, code)

	// Same week.
	code, _ = doJSON(t, app, "POST", "/admin/tournaments", fiber.Map{
		"name": "Another Stop", "week_num": 13,
	})
	assert.Equal(t, 409, code)
}

func TestGetSchedule_WeekOrderAndStatusFilter(t *testing.T) {
	app, svc := newTournamentApp(t)
	makeTournament(t, svc.DB, "BMW Championship", 32, models.TypeFedEx, models.StatusUpcoming)
	makeTournament(t, svc.DB, "Sony Open", 1, models.TypePGATour, models.StatusCompleted)
	makeTournament(t, svc.DB, "U.S. Open", 23, models.TypeMajor, models.StatusActive)

	resp, err := app.Test(httptest.NewRequest("GET", "/tournaments", nil))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var schedule []models.Tournament
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&schedule))
	require.Len(t, schedule, 3)
	assert.Equal(t, []int{1, 23, 32}, []int{schedule[0].WeekNum, schedule[1].WeekNum, schedule[2].WeekNum})

	resp, err = app.Test(httptest.NewRequest("GET", "/tournaments?status=COMPLETED", nil))
	require.NoError(t, err)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&schedule))
	require.Len(t, schedule, 1)
	assert.Equal(t, "Sony Open", schedule[0].Name)

	resp, err = app.Test(httptest.NewRequest("GET", "/tournaments?status=PAUSED", nil))
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestCurrentTournament_PrefersActive(t *testing.T) {
	_, svc := newTournamentApp(t)
	makeTournament(t, svc.DB, "Sony Open", 1, models.TypePGATour, models.StatusCompleted)
	makeTournament(t, svc.DB, "American Express", 2, models.TypePGATour, models.StatusUpcoming)
	active := makeTournament(t, svc.DB, "Farmers Insurance Open", 3, models.TypePGATour, models.StatusActive)

	current, err := svc.CurrentTournament()
	require.NoError(t, err)
	assert.Equal(t, active.ID, current.ID)
}

func TestCurrentTournament_NextUpcomingWhenNoneActive(t *testing.T) {
	_, svc := newTournamentApp(t)
	makeTournament(t, svc.DB, "Sony Open", 1, models.TypePGATour, models.StatusCompleted)
	next := makeTournament(t, svc.DB, "American Express", 2, models.TypePGATour, models.StatusUpcoming)
	makeTournament(t, svc.DB, "Farmers Insurance Open", 3, models.TypePGATour, models.StatusUpcoming)

	current, err := svc.CurrentTournament()
	require.NoError(t, err)
	assert.Equal(t, next.ID, current.ID)
}

func TestUpdateStatus(t *testing.T) {
	app, svc := newTournamentApp(t)
	tour := makeTournament(t, svc.DB, "Sony Open", 1, models.TypePGATour, models.StatusUpcoming)

	code, _ := doJSON(t, app, "PATCH", "/admin/tournaments/"+tour.ID+"/status", fiber.Map{"status": "ACTIVE"})
	require.Equal(t, 200, code)

	var updated models.Tournament
	require.NoError(t, svc.DB.First(&updated, "id = ?", tour.ID).Error)
	assert.Equal(t, models.StatusActive, updated.Status)

	code, _ = doJSON(t, app, "PATCH", "/admin/tournaments/"+tour.ID+"/status", fiber.Map{"status": "PAUSED"})
	assert.Equal(t, 400, code)

	code, _ = doJSON(t, app, "PATCH", "/admin/tournaments/missing/status", fiber.Map{"status": "ACTIVE"})
	assert.Equal(t, 404, code)
}

func TestIngestResults_EndToEnd(t *testing.T) {
	app, svc := newTournamentApp(t)
	tour := makeTournament(t, svc.DB, "The Open Championship", 27, models.TypeMajor, models.StatusActive)
	team := makeTeam(t, svc.DB, "Birdie Brigade", "Woods", true)

	_, _, err := svc.Scoring.SubmitPick(team.ID, tour.ID, "Rory McIlroy")
	require.NoError(t, err)

	code, body := doJSON(t, app, "POST", "/admin/tournaments/"+tour.ID+"/results", fiber.Map{
		"results": []GolferResult{
			{Name: "Rory McIlroy", Position: "T1", RawEarnings: 1200000},
			{Name: "", Position: "2", RawEarnings: 800000},
		},
	})
	require.Equal(t, 200, code)

	var payload struct {
		PicksUpdated int `json:"picks_updated"`
		Skipped      int `json:"skipped"`
	}
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Equal(t, 1, payload.PicksUpdated)
	assert.Equal(t, 1, payload.Skipped)

	var reloaded models.Team
	require.NoError(t, svc.DB.First(&reloaded, "id = ?", team.ID).Error)
	assert.Equal(t, 2400000.0, reloaded.TotalPoints)
}

func TestIngestResults_UnknownTournament(t *testing.T) {
	app, _ := newTournamentApp(t)
	code, _ := doJSON(t, app, "POST", "/admin/tournaments/missing/results", fiber.Map{
		"results": []GolferResult{{Name: "Rory McIlroy", Position: "1", RawEarnings: 1}},
	})
	assert.Equal(t, 404, code)
}
