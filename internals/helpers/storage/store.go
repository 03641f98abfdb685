// Package storage keeps uploaded files (landlord signatures) behind one interface.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("storage: object not found")

// Default is the process-wide store, set once at startup.
var Default Store

type Store interface {
	Put(ctx context.Context, key string, r io.Reader, contentType string) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
}

// FromEnv picks the backend from STORAGE_DRIVER (local|oss|supabase).
func FromEnv() (Store, error) {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("STORAGE_DRIVER"))) {
	case "oss":
		return NewOSSStoreFromEnv(os.Getenv("ALI_OSS_PREFIX"))
	case "supabase":
		return NewSupabaseStoreFromEnv()
	case "", "local":
		dir := os.Getenv("STORAGE_LOCAL_DIR")
		if dir == "" {
			dir = "./uploads"
		}
		return NewLocalStore(dir, os.Getenv("STORAGE_PUBLIC_BASE"))
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", os.Getenv("STORAGE_DRIVER"))
	}
}

// BuildKey returns folder/YYYYMMDD-<uuid><ext>.
func BuildKey(folder, ext string) string {
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	name := fmt.Sprintf("%s-%s%s", time.Now().Format("20060102"), uuid.NewString(), strings.ToLower(ext))
	return path.Join(strings.Trim(folder, "/"), name)
}
