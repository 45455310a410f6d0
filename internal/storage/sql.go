package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pankajredekar/catalog/internal/migrate"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// entry is one stored value
type entry struct {
	Key       string    `gorm:"column:entry_key;primaryKey;size:255"`
	Value     string    `gorm:"column:entry_value;type:text;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// TableName returns the table name for entry
func (entry) TableName() string {
	return "catalog_entries"
}

type createEntries struct{}

func (createEntries) Version() string { return "0001" }
func (createEntries) Name() string    { return "create_catalog_entries" }

func (createEntries) Up(db *gorm.DB) error {
	if db.Migrator().HasTable(&entry{}) {
		return nil
	}
	return db.Migrator().CreateTable(&entry{})
}

func (createEntries) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(&entry{})
}

// Migrations returns the schema migrations of the SQL backend
func Migrations() *migrate.Registry {
	return migrate.NewRegistry(createEntries{})
}

// SQL stores values in the catalog_entries table through GORM
type SQL struct {
	db *gorm.DB
}

// OpenSQLite opens a SQLite database file (":memory:" is allowed)
func OpenSQLite(ctx context.Context, path string) (*SQL, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if path == ":memory:" {
		// every new connection would get its own empty database
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get sql.DB: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}
	return NewSQL(ctx, db)
}

// OpenPostgres connects with a postgres:// dsn
func OpenPostgres(ctx context.Context, dsn string) (*SQL, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return NewSQL(ctx, db)
}

// NewSQL brings the schema up to date and wraps db
func NewSQL(ctx context.Context, db *gorm.DB) (*SQL, error) {
	ver := migrate.NewVersioner(db, migrate.DefaultTable)
	if err := ver.Initialize(ctx); err != nil {
		return nil, err
	}
	if _, err := migrate.NewRunner(db, Migrations(), ver).Migrate(ctx); err != nil {
		return nil, err
	}
	return &SQL{db: db}, nil
}

func (s *SQL) Read(ctx context.Context, key string) ([]byte, error) {
	var e entry
	if err := s.db.WithContext(ctx).First(&e, "entry_key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotExist
		}
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return []byte(e.Value), nil
}

func (s *SQL) Write(ctx context.Context, key string, data []byte) error {
	if err := checkKey(key); err != nil {
		return err
	}
	e := entry{Key: key, Value: string(data), UpdatedAt: time.Now()}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "entry_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"entry_value", "updated_at"}),
	}).Create(&e).Error
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (s *SQL) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	return sqlDB.Close()
}

// SchemaStatus returns the applied schema versions and the migrations still pending
func (s *SQL) SchemaStatus(ctx context.Context) ([]string, []migrate.Migration, error) {
	ver := migrate.NewVersioner(s.db, migrate.DefaultTable)
	applied, err := ver.AppliedVersions(ctx)
	if err != nil {
		return nil, nil, err
	}
	pending, err := migrate.NewRunner(s.db, Migrations(), ver).Pending(ctx)
	if err != nil {
		return nil, nil, err
	}
	return applied, pending, nil
}

// Rollback reverts the last n applied schema migrations
func (s *SQL) Rollback(ctx context.Context, n int) error {
	ver := migrate.NewVersioner(s.db, migrate.DefaultTable)
	return migrate.NewRunner(s.db, Migrations(), ver).Rollback(ctx, n)
}
