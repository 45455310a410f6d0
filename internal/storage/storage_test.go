package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/redis/go-redis/v9"
)

// testRedisAddr requires Redis running on localhost:6379; tests skip otherwise
const testRedisAddr = "localhost:6379"

// exerciseBackend runs the behaviour every backend must share
func exerciseBackend(t *testing.T, b Backend) {
	t.Helper()
	ctx := context.Background()

	if _, err := b.Read(ctx, "products"); !errors.Is(err, ErrNotExist) {
		t.Fatalf("Expected ErrNotExist for missing key, got %v", err)
	}

	if err := b.Write(ctx, "products", []byte(`[{"sku":"A1"}]`)); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	got, err := b.Read(ctx, "products")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if string(got) != `[{"sku":"A1"}]` {
		t.Errorf("Expected stored payload, got %q", got)
	}

	// Overwrite replaces the whole value
	if err := b.Write(ctx, "products", []byte(`[]`)); err != nil {
		t.Fatalf("Second write failed: %v", err)
	}
	got, err = b.Read(ctx, "products")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if string(got) != `[]` {
		t.Errorf("Expected replaced payload, got %q", got)
	}

	// Keys are independent
	if err := b.Write(ctx, "products.corrupt", []byte("garbage")); err != nil {
		t.Fatalf("Write of second key failed: %v", err)
	}
	got, err = b.Read(ctx, "products")
	if err != nil || string(got) != `[]` {
		t.Errorf("Writing another key changed products: %q, %v", got, err)
	}

	if err := b.Write(ctx, "", []byte("x")); err == nil {
		t.Error("Expected error for empty key")
	}
}

func TestMemoryBackend(t *testing.T) {
	b := NewMemory()
	defer b.Close()
	exerciseBackend(t, b)
}

func TestMemoryReturnsCopies(t *testing.T) {
	ctx := context.Background()
	b := NewMemory()

	data := []byte("abc")
	if err := b.Write(ctx, "k", data); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	data[0] = 'x'

	got, _ := b.Read(ctx, "k")
	got[1] = 'y'

	again, _ := b.Read(ctx, "k")
	if string(again) != "abc" {
		t.Errorf("Stored value was aliased: %q", again)
	}
}

func TestFileBackend(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	b, err := NewFile(dir)
	if err != nil {
		t.Fatalf("NewFile failed: %v", err)
	}
	defer b.Close()
	exerciseBackend(t, b)

	if _, err := os.Stat(filepath.Join(dir, "products.json")); err != nil {
		t.Errorf("Expected products.json on disk: %v", err)
	}

	// No temp files left behind
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".tmp" {
			t.Errorf("Leftover temp file %s", e.Name())
		}
	}
}

func TestFileBackendRejectsPathKeys(t *testing.T) {
	b, err := NewFile(t.TempDir())
	if err != nil {
		t.Fatalf("NewFile failed: %v", err)
	}
	if err := b.Write(context.Background(), "../escape", []byte("x")); err == nil {
		t.Error("Expected error for key containing a path separator")
	}
}

func TestBoltBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")
	b, err := OpenBolt(path)
	if err != nil {
		t.Fatalf("OpenBolt failed: %v", err)
	}
	exerciseBackend(t, b)
	if err := b.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	// Data survives reopening
	b, err = OpenBolt(path)
	if err != nil {
		t.Fatalf("Reopen failed: %v", err)
	}
	defer b.Close()
	got, err := b.Read(context.Background(), "products")
	if err != nil || string(got) != "[]" {
		t.Errorf("Expected persisted payload after reopen, got %q, %v", got, err)
	}
}

func TestSQLiteBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.sqlite")
	b, err := OpenSQLite(context.Background(), path)
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	exerciseBackend(t, b)
	if err := b.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	// Reopening must not re-run the schema migration
	b, err = OpenSQLite(context.Background(), path)
	if err != nil {
		t.Fatalf("Reopen failed: %v", err)
	}
	defer b.Close()
	got, err := b.Read(context.Background(), "products")
	if err != nil || string(got) != "[]" {
		t.Errorf("Expected persisted payload after reopen, got %q, %v", got, err)
	}
}

func TestSQLiteSchemaStatus(t *testing.T) {
	b, err := OpenSQLite(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	defer b.Close()

	applied, pending, err := b.SchemaStatus(context.Background())
	if err != nil {
		t.Fatalf("SchemaStatus failed: %v", err)
	}
	if len(applied) != 1 || applied[0] != "0001" {
		t.Errorf("Expected version 0001 applied, got %v", applied)
	}
	if len(pending) != 0 {
		t.Errorf("Expected nothing pending, got %d", len(pending))
	}
}

func TestSQLiteInMemoryBackend(t *testing.T) {
	b, err := OpenSQLite(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	defer b.Close()
	exerciseBackend(t, b)
}

func TestRedisBackend(t *testing.T) {
	ctx := context.Background()
	client := redis.NewClient(&redis.Options{Addr: testRedisAddr})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("Redis not available at %s: %v", testRedisAddr, err)
	}

	prefix := "catalog-test:"
	client.Del(ctx, prefix+"products", prefix+"products.corrupt")

	b := NewRedis(client, prefix)
	defer func() {
		client.Del(ctx, prefix+"products", prefix+"products.corrupt")
		b.Close()
	}()
	exerciseBackend(t, b)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	tests := []struct {
		url  string
		want string
	}{
		{"memory://", "*storage.Memory"},
		{"file://" + filepath.Join(dir, "files"), "*storage.File"},
		{"bolt://" + filepath.Join(dir, "c.db"), "*storage.Bolt"},
		{"sqlite://" + filepath.Join(dir, "c.sqlite"), "*storage.SQL"},
	}

	for _, tt := range tests {
		t.Run(Scheme(tt.url), func(t *testing.T) {
			b, err := Open(ctx, tt.url)
			if err != nil {
				t.Fatalf("Open(%q) failed: %v", tt.url, err)
			}
			defer b.Close()

			if got := typeName(b); got != tt.want {
				t.Errorf("Open(%q) returned %s, want %s", tt.url, got, tt.want)
			}
		})
	}
}

func TestOpenUnsupported(t *testing.T) {
	for _, url := range []string{"", "products.json", "ftp://host/x"} {
		if _, err := Open(context.Background(), url); !errors.Is(err, ErrUnsupportedURL) {
			t.Errorf("Open(%q): expected ErrUnsupportedURL, got %v", url, err)
		}
	}
}

func TestPath(t *testing.T) {
	tests := []struct {
		url  string
		path string
		ok   bool
	}{
		{"file://./data", "./data", true},
		{"bolt:///var/lib/catalog.db", "/var/lib/catalog.db", true},
		{"sqlite://catalog.sqlite", "catalog.sqlite", true},
		{"redis://localhost:6379/0", "", false},
		{"memory://", "", false},
		{"nonsense", "", false},
	}
	for _, tt := range tests {
		path, ok := Path(tt.url)
		if path != tt.path || ok != tt.ok {
			t.Errorf("Path(%q) = (%q, %v), want (%q, %v)", tt.url, path, ok, tt.path, tt.ok)
		}
	}
}

func typeName(b Backend) string {
	switch b.(type) {
	case *Memory:
		return "*storage.Memory"
	case *File:
		return "*storage.File"
	case *Bolt:
		return "*storage.Bolt"
	case *SQL:
		return "*storage.SQL"
	case *Redis:
		return "*storage.Redis"
	}
	return "unknown"
}

func TestSupported(t *testing.T) {
	for url, want := range map[string]bool{
		"memory://":                 true,
		"postgresql://localhost/db": true,
		"redis://localhost:6379/0":  true,
		"ftp://host/x":              false,
		"products.json":             false,
		"":                          false,
	} {
		if got := Supported(url); got != want {
			t.Errorf("Supported(%q) = %v, want %v", url, got, want)
		}
	}
}
