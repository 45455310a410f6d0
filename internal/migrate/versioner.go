package migrate

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// DefaultTable is the version tracking table
const DefaultTable = "_catalog_migrations"

// Record is a row of the version tracking table
type Record struct {
	Version   string    `gorm:"primaryKey;column:version"`
	Name      string    `gorm:"column:name"`
	AppliedAt time.Time `gorm:"column:applied_at"`
}

// Versioner tracks which migrations have been applied
type Versioner struct {
	db    *gorm.DB
	table string
}

// NewVersioner creates a new versioner
func NewVersioner(db *gorm.DB, table string) *Versioner {
	if table == "" {
		table = DefaultTable
	}
	return &Versioner{
		db:    db,
		table: table,
	}
}

// Initialize creates the tracking table
func (v *Versioner) Initialize(ctx context.Context) error {
	if err := v.db.WithContext(ctx).Exec(fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			version VARCHAR(255) PRIMARY KEY,
			name VARCHAR(255),
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`, v.table)).Error; err != nil {
		return fmt.Errorf("failed to create migration table: %w", err)
	}
	return nil
}

// AppliedVersions returns applied versions in ascending order
func (v *Versioner) AppliedVersions(ctx context.Context) ([]string, error) {
	var records []Record
	if err := v.db.WithContext(ctx).Table(v.table).Order("version ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to query applied migrations: %w", err)
	}

	versions := make([]string, len(records))
	for i, r := range records {
		versions[i] = r.Version
	}
	return versions, nil
}

// IsApplied checks if a version is already applied
func (v *Versioner) IsApplied(ctx context.Context, version string) (bool, error) {
	var count int64
	if err := v.db.WithContext(ctx).Table(v.table).Where("version = ?", version).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check migration status: %w", err)
	}
	return count > 0, nil
}

// RecordApplied marks a version as applied
func (v *Versioner) RecordApplied(ctx context.Context, version, name string) error {
	record := Record{
		Version:   version,
		Name:      name,
		AppliedAt: time.Now(),
	}
	if err := v.db.WithContext(ctx).Table(v.table).Create(&record).Error; err != nil {
		return fmt.Errorf("failed to record migration: %w", err)
	}
	return nil
}

// RemoveApplied removes a version record (for rollback)
func (v *Versioner) RemoveApplied(ctx context.Context, version string) error {
	if err := v.db.WithContext(ctx).Table(v.table).Where("version = ?", version).Delete(&Record{}).Error; err != nil {
		return fmt.Errorf("failed to remove migration record: %w", err)
	}
	return nil
}
