package faqrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/yanqian/faq-translate/internal/domain/faq"
	"github.com/yanqian/faq-translate/pkg/util"
)

// SQLiteRepository implements faq.Repository on an embedded SQLite file.
type SQLiteRepository struct {
	db  *sql.DB
	now util.Clock
}

// OpenSQLite opens (creating if needed) the database at path and migrates it.
func OpenSQLite(ctx context.Context, path string) (*SQLiteRepository, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// a single writer avoids SQLITE_BUSY under concurrent requests
	db.SetMaxOpenConns(1)

	repo := NewSQLiteRepository(db, util.NowUTC)
	if err := repo.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return repo, nil
}

// NewSQLiteRepository wraps an already opened database.
func NewSQLiteRepository(db *sql.DB, now util.Clock) *SQLiteRepository {
	if now == nil {
		now = util.NowUTC
	}
	return &SQLiteRepository{db: db, now: now}
}

// Migrate creates the faqs table when missing.
func (r *SQLiteRepository) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("migrate sqlite: %w", err)
	}
	return nil
}

// Create inserts a new FAQ row.
func (r *SQLiteRepository) Create(ctx context.Context, question, answer string) (faq.Record, error) {
	ts := r.now().UnixNano()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO faqs (question, answer, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		question, answer, ts, ts,
	)
	if err != nil {
		return faq.Record{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return faq.Record{}, err
	}
	record, found, err := r.Get(ctx, id)
	if err != nil {
		return faq.Record{}, err
	}
	if !found {
		return faq.Record{}, fmt.Errorf("faq %d vanished after insert", id)
	}
	return record, nil
}

// Get fetches a row by id.
func (r *SQLiteRepository) Get(ctx context.Context, id int64) (faq.Record, bool, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, question, answer, created_at, updated_at FROM faqs WHERE id = ?`, id)
	record, err := scanSQLiteRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return faq.Record{}, false, nil
		}
		return faq.Record{}, false, err
	}
	return record, true, nil
}

// List returns every row newest first.
func (r *SQLiteRepository) List(ctx context.Context) ([]faq.Record, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, question, answer, created_at, updated_at FROM faqs ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]faq.Record, 0)
	for rows.Next() {
		record, err := scanSQLiteRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, record)
	}
	return out, rows.Err()
}

// Update applies the supplied fields. NULL parameters keep the stored value.
func (r *SQLiteRepository) Update(ctx context.Context, id int64, req faq.UpdateRequest) (faq.Record, bool, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE faqs
		SET question = COALESCE(?, question),
		    answer = COALESCE(?, answer),
		    updated_at = MAX(?, created_at)
		WHERE id = ?
	`, nullable(req.Question), nullable(req.Answer), r.now().UnixNano(), id)
	if err != nil {
		return faq.Record{}, false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return faq.Record{}, false, err
	}
	if affected == 0 {
		return faq.Record{}, false, nil
	}
	return r.Get(ctx, id)
}

// Delete removes a row and reports whether it existed.
func (r *SQLiteRepository) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM faqs WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// Close releases the database handle.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func scanSQLiteRecord(row rowScanner) (faq.Record, error) {
	var (
		record             faq.Record
		createdAt, updated int64
	)
	if err := row.Scan(&record.ID, &record.Question, &record.Answer, &createdAt, &updated); err != nil {
		return faq.Record{}, err
	}
	record.CreatedAt = time.Unix(0, createdAt).UTC()
	record.UpdatedAt = time.Unix(0, updated).UTC()
	return record, nil
}

func nullable(v *string) any {
	if v == nil {
		return nil
	}
	return *v
}

var _ faq.Repository = (*SQLiteRepository)(nil)
