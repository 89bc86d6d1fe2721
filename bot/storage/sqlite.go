package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

// SQLiteStore implements Store on a single long-lived sqlite handle.
type SQLiteStore struct {
	db *bun.DB

	// writeMu serializes mutations; sqlite allows one writer at a time and
	// interleaved writes from concurrent users would hit SQLITE_BUSY.
	writeMu sync.Mutex
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLite opens (or creates) the database at path and ensures the students
// table exists. Use ":memory:" for an ephemeral database.
func NewSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("database path is required")
	}

	sqldb, err := sql.Open(sqliteshim.ShimName, path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return store, nil
}

// AUTOINCREMENT keeps deleted ids from ever being reassigned.
const schema = `
CREATE TABLE IF NOT EXISTS students (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	age INTEGER NOT NULL,
	grade TEXT NOT NULL
)`

func (s *SQLiteStore) initSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

func (s *SQLiteStore) Insert(ctx context.Context, name string, age int, grade string) (int64, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	student := &Student{Name: name, Age: age, Grade: grade}
	if _, err := s.db.NewInsert().Model(student).Exec(ctx); err != nil {
		return 0, fmt.Errorf("insert student: %w", err)
	}
	return student.ID, nil
}

func (s *SQLiteStore) ListAll(ctx context.Context) ([]Student, error) {
	students := make([]Student, 0)
	if err := s.db.NewSelect().
		Model(&students).
		Order("id ASC").
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

func (s *SQLiteStore) Delete(ctx context.Context, id int64) (bool, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	res, err := s.db.NewDelete().
		Model((*Student)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("delete student id=%d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete student id=%d: rows affected: %w", id, err)
	}
	return affected > 0, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
