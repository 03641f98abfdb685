package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// SupabaseStore talks to the Supabase Storage REST API.
type SupabaseStore struct {
	client     *resty.Client
	projectURL string
	bucket     string
}

func NewSupabaseStoreFromEnv() (*SupabaseStore, error) {
	projectURL := strings.TrimRight(getEnv("SUPABASE_PROJECT_URL"), "/")
	key := getEnv("SUPABASE_SERVICE_ROLE_KEY")
	bucket := getEnv("SUPABASE_BUCKET")
	if bucket == "" {
		bucket = "image"
	}
	if projectURL == "" || key == "" {
		return nil, fmt.Errorf("SUPABASE_PROJECT_URL or SUPABASE_SERVICE_ROLE_KEY is not set")
	}
	return NewSupabaseStore(projectURL, key, bucket), nil
}

func NewSupabaseStore(projectURL, serviceKey, bucket string) *SupabaseStore {
	client := resty.New().
		SetBaseURL(projectURL + "/storage/v1").
		SetTimeout(30 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		SetAuthToken(serviceKey)
	return &SupabaseStore{client: client, projectURL: projectURL, bucket: bucket}
}

func (s *SupabaseStore) objectPath(key string) string {
	return "/object/" + s.bucket + "/" + escapeKey(key)
}

func (s *SupabaseStore) Put(ctx context.Context, key string, r io.Reader, contentType string) error {
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", contentType).
		SetHeader("x-upsert", "true").
		SetBody(r).
		Put(s.objectPath(key))
	if err != nil {
		return fmt.Errorf("supabase upload: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("supabase upload status %d: %s", resp.StatusCode(), resp.String())
	}
	return nil
}

func (s *SupabaseStore) Get(ctx context.Context, key string) ([]byte, error) {
	resp, err := s.client.R().SetContext(ctx).Get(s.objectPath(key))
	if err != nil {
		return nil, fmt.Errorf("supabase download: %w", err)
	}
	if resp.StatusCode() == http.StatusNotFound || resp.StatusCode() == http.StatusBadRequest {
		return nil, ErrNotFound
	}
	if resp.IsError() {
		return nil, fmt.Errorf("supabase download status %d: %s", resp.StatusCode(), resp.String())
	}
	return resp.Body(), nil
}

func (s *SupabaseStore) Delete(ctx context.Context, key string) error {
	resp, err := s.client.R().SetContext(ctx).Delete(s.objectPath(key))
	if err != nil {
		return fmt.Errorf("supabase delete: %w", err)
	}
	if resp.IsError() && resp.StatusCode() != http.StatusNotFound {
		return fmt.Errorf("supabase delete status %d: %s", resp.StatusCode(), resp.String())
	}
	return nil
}

func (s *SupabaseStore) PublicURL(key string) string {
	if key == "" {
		return ""
	}
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.projectURL, s.bucket, escapeKey(key))
}

func escapeKey(key string) string {
	parts := strings.Split(strings.TrimLeft(key, "/"), "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}
