package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotExist is returned by Read when nothing is stored under the key
	ErrNotExist = errors.New("key does not exist")

	// ErrUnsupportedURL is returned by Open for unknown URL schemes
	ErrUnsupportedURL = errors.New("unsupported storage url")
)

// Backend is durable key-value storage. Write replaces the whole value.
type Backend interface {
	Read(ctx context.Context, key string) ([]byte, error)
	Write(ctx context.Context, key string, data []byte) error
	Close() error
}

// Schemes accepted by Open
const (
	SchemeMemory   = "memory"
	SchemeFile     = "file"
	SchemeBolt     = "bolt"
	SchemeRedis    = "redis"
	SchemeSQLite   = "sqlite"
	SchemePostgres = "postgres"
)

// Supported reports whether Open accepts the scheme of url
func Supported(url string) bool {
	scheme, _, ok := strings.Cut(url, "://")
	if !ok {
		return false
	}
	switch scheme {
	case SchemeMemory, SchemeFile, SchemeBolt, SchemeRedis, SchemeSQLite, SchemePostgres, "postgresql":
		return true
	}
	return false
}

// Open connects to the backend described by url
func Open(ctx context.Context, url string) (Backend, error) {
	scheme, rest, ok := strings.Cut(url, "://")
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedURL, url)
	}

	switch scheme {
	case SchemeMemory:
		return NewMemory(), nil
	case SchemeFile:
		return NewFile(rest)
	case SchemeBolt:
		return OpenBolt(rest)
	case SchemeRedis:
		return OpenRedis(ctx, url)
	case SchemeSQLite:
		return OpenSQLite(ctx, rest)
	case SchemePostgres, "postgresql":
		return OpenPostgres(ctx, url)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedURL, url)
}

// Scheme returns the scheme part of a storage url
func Scheme(url string) string {
	scheme, _, _ := strings.Cut(url, "://")
	return scheme
}

// Path returns the part after "://" for path based schemes (file, bolt,
// sqlite) and false for the others
func Path(url string) (string, bool) {
	scheme, rest, ok := strings.Cut(url, "://")
	if !ok {
		return "", false
	}
	switch scheme {
	case SchemeFile, SchemeBolt, SchemeSQLite:
		return rest, true
	}
	return "", false
}

func checkKey(key string) error {
	if key == "" {
		return errors.New("storage key is empty")
	}
	return nil
}
