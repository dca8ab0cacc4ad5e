package community

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

type fakeS3 struct {
	s3iface.S3API
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakeS3) PutObjectWithContext(_ aws.Context, in *s3.PutObjectInput, _ ...request.Option) (*s3.PutObjectOutput, error) {
	f.input = in
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, f.err
}

func TestS3StoreSave(t *testing.T) {
	client := &fakeS3{}
	store := NewS3Store(client, "rika-test")

	url, err := store.Save(context.Background(), "Glow.PNG", "image/png", 4, strings.NewReader("data"))
	if err != nil {
		t.Fatal(err)
	}
	key := aws.StringValue(client.input.Key)
	if !strings.HasPrefix(key, "community/") || !strings.HasSuffix(key, ".png") {
		t.Fatalf("key = %q", key)
	}
	if url != "https://rika-test.s3.amazonaws.com/"+key {
		t.Fatalf("url = %q", url)
	}
	if string(client.body) != "data" || aws.StringValue(client.input.ContentType) != "image/png" {
		t.Fatalf("uploaded %q as %q", client.body, aws.StringValue(client.input.ContentType))
	}

	client.err = errors.New("boom")
	if _, err := store.Save(context.Background(), "a.jpg", "image/jpeg", 1, strings.NewReader("x")); err == nil {
		t.Fatal("expected upload error")
	}
}

func TestLocalStoreSave(t *testing.T) {
	dir := t.TempDir()
	store, err := NewImageStore(StorageConfig{LocalUploadDir: dir, BaseURL: "http://localhost:8080"})
	if err != nil {
		t.Fatal(err)
	}

	url, err := store.Save(context.Background(), "selfie.jpg", "image/jpeg", 5, strings.NewReader("image"))
	if err != nil {
		t.Fatal(err)
	}
	prefix := "http://localhost:8080/uploads/"
	if !strings.HasPrefix(url, prefix) {
		t.Fatalf("url = %q", url)
	}
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(strings.TrimPrefix(url, prefix))))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "image" {
		t.Fatalf("stored %q", data)
	}
}

func TestValidateImage(t *testing.T) {
	if err := validateImage("doc.pdf", 10); err == nil {
		t.Fatal("pdf accepted")
	}
	if err := validateImage("big.png", maxImageSize+1); err == nil {
		t.Fatal("oversized image accepted")
	}
	if err := validateImage("ok.WEBP", 100); err != nil {
		t.Fatalf("webp rejected: %v", err)
	}
}
