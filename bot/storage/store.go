// Package storage persists completed student records. Partial form data never
// reaches this package; a row exists only in fully populated form.
package storage

import (
	"context"

	"github.com/uptrace/bun"
)

// Student is one committed record. Rows are immutable once written.
type Student struct {
	bun.BaseModel `bun:"table:students"`

	ID    int64  `bun:"id,pk,autoincrement"`
	Name  string `bun:"name,notnull"`
	Age   int    `bun:"age,notnull"`
	Grade string `bun:"grade,notnull"`
}

// Store is the persistence contract used by the dialogue layer.
type Store interface {
	// Insert commits a completed record and returns the assigned id.
	Insert(ctx context.Context, name string, age int, grade string) (int64, error)

	// ListAll returns every record in ascending id order. An empty store
	// yields an empty slice, not an error.
	ListAll(ctx context.Context) ([]Student, error)

	// Delete removes the record with the given id and reports whether it
	// existed. A missing id is a normal outcome, not an error.
	Delete(ctx context.Context, id int64) (bool, error)

	Close() error
}
