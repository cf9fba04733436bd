// utils/logo_store.go
package utils

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// MaxLogoSize caps team logo uploads at 5 MB.
const MaxLogoSize = 5 << 20

var ErrLogoTooLarge = errors.New("logo exceeds the size limit")

// LogoStore holds team logos in a Cloudflare R2 bucket and serves them
// through the league CDN. Logos are the only binary assets this service
// owns.
type LogoStore struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

// NewLogoStore builds the store from LOGO_* environment configuration.
// Required: CLOUDFLARE_ACCOUNT_ID, LOGO_R2_ACCESS_KEY_ID,
// LOGO_R2_ACCESS_KEY_SECRET, LOGO_R2_BUCKET. Optional: LOGO_CDN_BASE_URL.
func NewLogoStore() (*LogoStore, error) {
	accountID := os.Getenv("CLOUDFLARE_ACCOUNT_ID")
	accessKeyID := os.Getenv("LOGO_R2_ACCESS_KEY_ID")
	accessKeySecret := os.Getenv("LOGO_R2_ACCESS_KEY_SECRET")
	bucket := os.Getenv("LOGO_R2_BUCKET")
	if accountID == "" || accessKeyID == "" || accessKeySecret == "" || bucket == "" {
		return nil, fmt.Errorf("logo storage config incomplete: CLOUDFLARE_ACCOUNT_ID, LOGO_R2_ACCESS_KEY_ID, LOGO_R2_ACCESS_KEY_SECRET and LOGO_R2_BUCKET are required")
	}

	endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", accountID)
	baseURL := os.Getenv("LOGO_CDN_BASE_URL")
	if baseURL == "" {
		baseURL = endpoint + "/" + bucket
	}

	cfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithRegion("auto"),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			accessKeyID, accessKeySecret, "",
		)),
		config.WithEndpointResolver(aws.EndpointResolverFunc(
			func(service, region string) (aws.Endpoint, error) {
				return aws.Endpoint{URL: endpoint}, nil
			}),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load logo storage config: %w", err)
	}

	return &LogoStore{
		client:  s3.NewFromConfig(cfg),
		bucket:  bucket,
		baseURL: baseURL,
	}, nil
}

// Upload stores a team logo under key and returns its public URL.
// Keys follow "teams/logos/<uuid><ext>".
func (ls *LogoStore) Upload(ctx context.Context, fileHeader *multipart.FileHeader, key string) (string, error) {
	if fileHeader.Size > MaxLogoSize {
		return "", ErrLogoTooLarge
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open logo file: %w", err)
	}
	defer file.Close()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, file); err != nil {
		return "", fmt.Errorf("failed to read logo file: %w", err)
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/png"
	}

	_, err = ls.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(ls.bucket),
		Key:         aws.String(key),
		Body:        buf,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload logo: %w", err)
	}

	return fmt.Sprintf("%s/%s", ls.baseURL, key), nil
}
