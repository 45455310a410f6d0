package migrate

import (
	"context"
	"fmt"
	"sort"

	"gorm.io/gorm"
)

// Migration is a versioned schema change
type Migration interface {
	Version() string
	Name() string
	Up(db *gorm.DB) error
	Down(db *gorm.DB) error
}

// Registry holds migrations by version
type Registry struct {
	migrations map[string]Migration
}

// NewRegistry creates a registry with the given migrations
func NewRegistry(migrations ...Migration) *Registry {
	r := &Registry{migrations: make(map[string]Migration)}
	for _, m := range migrations {
		r.Register(m)
	}
	return r
}

// Register adds a migration, replacing one with the same version
func (r *Registry) Register(m Migration) {
	r.migrations[m.Version()] = m
}

// Get returns a migration by version
func (r *Registry) Get(version string) (Migration, bool) {
	m, ok := r.migrations[version]
	return m, ok
}

// All returns migrations sorted by version
func (r *Registry) All() []Migration {
	migrations := make([]Migration, 0, len(r.migrations))
	for _, m := range r.migrations {
		migrations = append(migrations, m)
	}
	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version() < migrations[j].Version()
	})
	return migrations
}

// Runner applies and rolls back migrations
type Runner struct {
	db        *gorm.DB
	registry  *Registry
	versioner *Versioner
}

// NewRunner creates a new migration runner
func NewRunner(db *gorm.DB, registry *Registry, versioner *Versioner) *Runner {
	return &Runner{
		db:        db,
		registry:  registry,
		versioner: versioner,
	}
}

// Pending returns migrations that haven't been applied
func (r *Runner) Pending(ctx context.Context) ([]Migration, error) {
	applied, err := r.versioner.AppliedVersions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get applied migrations: %w", err)
	}

	appliedMap := make(map[string]bool, len(applied))
	for _, v := range applied {
		appliedMap[v] = true
	}

	var pending []Migration
	for _, m := range r.registry.All() {
		if !appliedMap[m.Version()] {
			pending = append(pending, m)
		}
	}
	return pending, nil
}

// Migrate applies all pending migrations, each in its own transaction
func (r *Runner) Migrate(ctx context.Context) (int, error) {
	pending, err := r.Pending(ctx)
	if err != nil {
		return 0, err
	}

	for i, m := range pending {
		err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			ver := NewVersioner(tx, r.versioner.table)
			// another process may have applied it since Pending
			if done, err := ver.IsApplied(ctx, m.Version()); err != nil || done {
				return err
			}
			if err := m.Up(tx); err != nil {
				return err
			}
			return ver.RecordApplied(ctx, m.Version(), m.Name())
		})
		if err != nil {
			return i, fmt.Errorf("failed to apply migration %s: %w", m.Version(), err)
		}
	}
	return len(pending), nil
}

// Rollback rolls back the last n applied migrations
func (r *Runner) Rollback(ctx context.Context, n int) error {
	applied, err := r.versioner.AppliedVersions(ctx)
	if err != nil {
		return fmt.Errorf("failed to get applied migrations: %w", err)
	}

	if len(applied) == 0 {
		return fmt.Errorf("no migrations to rollback")
	}
	if n > len(applied) {
		n = len(applied)
	}

	// Rollback in reverse order
	for i := len(applied) - 1; i >= len(applied)-n; i-- {
		version := applied[i]
		m, ok := r.registry.Get(version)
		if !ok {
			return fmt.Errorf("migration %s not found in registry", version)
		}

		err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := m.Down(tx); err != nil {
				return fmt.Errorf("failed to rollback migration %s: %w", version, err)
			}
			return NewVersioner(tx, r.versioner.table).RemoveApplied(ctx, version)
		})
		if err != nil {
			return err
		}
	}

	return nil
}
