// file: internals/features/backup/service/collection.go
package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Collection is the data-access surface the backup engine needs for one
// model. Entries are injected at construction so the engine itself never
// reaches into storage on its own.
type Collection struct {
	// Name is the archive key; `<Name>.json` inside the zip.
	Name string
	// Scoped marks collections that carry a tenant column and therefore
	// participate in school-scoped backups.
	Scoped bool

	// Fetch returns all records in scope plus their count. A nil schoolID
	// means the full data set.
	Fetch func(ctx context.Context, schoolID *uuid.UUID) (records any, count int, err error)

	// Restore replaces the scoped records with the archived payload:
	// delete-then-insert inside one transaction. Returns rows inserted.
	Restore func(ctx context.Context, schoolID *uuid.UUID, payload json.RawMessage) (int, error)
}

// ModelCollection builds the GORM-backed Collection for model T.
// tenantColumn is the school reference column; empty means the collection is
// unscoped (excluded from school-scoped backups).
func ModelCollection[T any](db *gorm.DB, name, tenantColumn string) Collection {
	return Collection{
		Name:   name,
		Scoped: tenantColumn != "",
		Fetch: func(ctx context.Context, schoolID *uuid.UUID) (any, int, error) {
			var rows []T
			q := db.WithContext(ctx).Model(new(T))
			if schoolID != nil && tenantColumn != "" {
				q = q.Where(tenantColumn+" = ?", *schoolID)
			}
			if err := q.Find(&rows).Error; err != nil {
				return nil, 0, fmt.Errorf("fetch %s: %w", name, err)
			}
			return rows, len(rows), nil
		},
		Restore: func(ctx context.Context, schoolID *uuid.UUID, payload json.RawMessage) (int, error) {
			var rows []T
			if err := json.Unmarshal(payload, &rows); err != nil {
				return 0, fmt.Errorf("decode %s payload: %w", name, err)
			}
			inserted := 0
			err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
				if schoolID != nil && tenantColumn != "" {
					if err := tx.Where(tenantColumn+" = ?", *schoolID).Delete(new(T)).Error; err != nil {
						return fmt.Errorf("clear %s scope: %w", name, err)
					}
				} else {
					if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(new(T)).Error; err != nil {
						return fmt.Errorf("clear %s: %w", name, err)
					}
				}
				if len(rows) == 0 {
					return nil
				}
				if err := tx.CreateInBatches(&rows, 500).Error; err != nil {
					return fmt.Errorf("insert %s: %w", name, err)
				}
				inserted = len(rows)
				return nil
			})
			if err != nil {
				return 0, err
			}
			return inserted, nil
		},
	}
}
