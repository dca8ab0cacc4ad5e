// internal/community/storage.go

package community

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/google/uuid"
)

const maxImageSize = 5 << 20

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// ImageStore persists post images and returns their public URL
type ImageStore interface {
	Save(ctx context.Context, filename, contentType string, size int64, r io.Reader) (string, error)
}

type StorageConfig struct {
	UseS3          bool
	S3Bucket       string
	AWSRegion      string
	LocalUploadDir string
	BaseURL        string
}

// NewImageStore picks S3 or local disk storage
func NewImageStore(cfg StorageConfig) (ImageStore, error) {
	if cfg.UseS3 {
		sess, err := session.NewSession(&aws.Config{Region: aws.String(cfg.AWSRegion)})
		if err != nil {
			return nil, fmt.Errorf("aws session: %w", err)
		}
		return NewS3Store(s3.New(sess), cfg.S3Bucket), nil
	}
	if err := os.MkdirAll(cfg.LocalUploadDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStore{dir: cfg.LocalUploadDir, baseURL: cfg.BaseURL}, nil
}

func validateImage(filename string, size int64) error {
	if size > maxImageSize {
		return fmt.Errorf("image exceeds maximum of 5MB")
	}
	if !allowedImageExts[strings.ToLower(filepath.Ext(filename))] {
		return fmt.Errorf("image type not allowed")
	}
	return nil
}

func generateFilename(original string) string {
	return fmt.Sprintf("%s%s", uuid.NewString(), strings.ToLower(filepath.Ext(original)))
}

type S3Store struct {
	client s3iface.S3API
	bucket string
}

func NewS3Store(client s3iface.S3API, bucket string) *S3Store {
	return &S3Store{client: client, bucket: bucket}
}

func (s *S3Store) Save(ctx context.Context, filename, contentType string, size int64, r io.Reader) (string, error) {
	if err := validateImage(filename, size); err != nil {
		return "", err
	}

	buf := bytes.NewBuffer(nil)
	if _, err := io.Copy(buf, io.LimitReader(r, maxImageSize+1)); err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}
	if buf.Len() > maxImageSize {
		return "", fmt.Errorf("image exceeds maximum of 5MB")
	}

	key := fmt.Sprintf("community/%s/%s", time.Now().UTC().Format("2006/01/02"), generateFilename(filename))
	_, err := s.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:             aws.String(s.bucket),
		Key:                aws.String(key),
		Body:               bytes.NewReader(buf.Bytes()),
		ContentType:        aws.String(contentType),
		ContentDisposition: aws.String("inline"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucket, key), nil
}

// LocalStore writes images under dir and serves them from /uploads
type LocalStore struct {
	dir     string
	baseURL string
}

func (l *LocalStore) Save(_ context.Context, filename, _ string, size int64, r io.Reader) (string, error) {
	if err := validateImage(filename, size); err != nil {
		return "", err
	}

	dateDir := time.Now().UTC().Format("2006/01/02")
	fullDir := filepath.Join(l.dir, "community", dateDir)
	if err := os.MkdirAll(fullDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	name := generateFilename(filename)
	dest, err := os.Create(filepath.Join(fullDir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dest.Close()

	if _, err := io.Copy(dest, io.LimitReader(r, maxImageSize)); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}
	return fmt.Sprintf("%s/uploads/community/%s/%s", l.baseURL, dateDir, name), nil
}

// Dir is the root that main serves under /uploads/
func (l *LocalStore) Dir() string { return l.dir }
