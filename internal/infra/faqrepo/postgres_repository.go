package faqrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanqian/faq-translate/internal/domain/faq"
)

// PostgresRepository implements faq.Repository using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Migrate creates the faqs table when missing.
func (r *PostgresRepository) Migrate(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, postgresSchema)
	return err
}

// Create inserts a new FAQ row.
func (r *PostgresRepository) Create(ctx context.Context, question, answer string) (faq.Record, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO faqs (question, answer)
		VALUES ($1, $2)
		RETURNING id, question, answer, created_at, updated_at
	`, question, answer)
	return scanRecord(row)
}

// Get fetches a row by id.
func (r *PostgresRepository) Get(ctx context.Context, id int64) (faq.Record, bool, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, question, answer, created_at, updated_at
		FROM faqs
		WHERE id = $1
	`, id)
	record, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return faq.Record{}, false, nil
		}
		return faq.Record{}, false, err
	}
	return record, true, nil
}

// List returns every row newest first.
func (r *PostgresRepository) List(ctx context.Context) ([]faq.Record, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, question, answer, created_at, updated_at
		FROM faqs
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]faq.Record, 0)
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, record)
	}
	return out, rows.Err()
}

// Update applies the supplied fields. NULL parameters keep the stored value.
func (r *PostgresRepository) Update(ctx context.Context, id int64, req faq.UpdateRequest) (faq.Record, bool, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE faqs
		SET question = COALESCE($2, question),
		    answer = COALESCE($3, answer),
		    updated_at = GREATEST(NOW(), created_at)
		WHERE id = $1
		RETURNING id, question, answer, created_at, updated_at
	`, id, req.Question, req.Answer)
	record, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return faq.Record{}, false, nil
		}
		return faq.Record{}, false, err
	}
	return record, true, nil
}

// Delete removes a row and reports whether it existed.
func (r *PostgresRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM faqs WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// Close releases the pool.
func (r *PostgresRepository) Close() error {
	r.pool.Close()
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (faq.Record, error) {
	var record faq.Record
	if err := row.Scan(&record.ID, &record.Question, &record.Answer, &record.CreatedAt, &record.UpdatedAt); err != nil {
		return faq.Record{}, err
	}
	record.CreatedAt = record.CreatedAt.UTC()
	record.UpdatedAt = record.UpdatedAt.UTC()
	return record, nil
}

var _ faq.Repository = (*PostgresRepository)(nil)
