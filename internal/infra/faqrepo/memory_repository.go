package faqrepo

import (
	"context"
	"sort"
	"sync"

	"github.com/yanqian/faq-translate/internal/domain/faq"
	"github.com/yanqian/faq-translate/pkg/util"
)

// MemoryRepository is an in-memory faq.Repository used for tests/dev.
type MemoryRepository struct {
	mu     sync.RWMutex
	nextID int64
	now    util.Clock

	records map[int64]faq.Record
}

// NewMemoryRepository constructs a repo backed by memory.
func NewMemoryRepository() *MemoryRepository {
	return NewMemoryRepositoryWithClock(util.NowUTC)
}

// NewMemoryRepositoryWithClock lets tests control the assigned timestamps.
func NewMemoryRepositoryWithClock(now util.Clock) *MemoryRepository {
	return &MemoryRepository{
		nextID:  1,
		now:     now,
		records: make(map[int64]faq.Record),
	}
}

// Create implements faq.Repository.
func (r *MemoryRepository) Create(_ context.Context, question, answer string) (faq.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ts := r.now()
	record := faq.Record{
		ID:        r.nextID,
		Question:  question,
		Answer:    answer,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	r.nextID++
	r.records[record.ID] = record
	return record, nil
}

// Get implements faq.Repository.
func (r *MemoryRepository) Get(_ context.Context, id int64) (faq.Record, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	record, ok := r.records[id]
	return record, ok, nil
}

// List implements faq.Repository.
func (r *MemoryRepository) List(_ context.Context) ([]faq.Record, error) {
	r.mu.RLock()
	items := make([]faq.Record, 0, len(r.records))
	for _, record := range r.records {
		items = append(items, record)
	}
	r.mu.RUnlock()

	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ID > items[j].ID
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

// Update implements faq.Repository.
func (r *MemoryRepository) Update(_ context.Context, id int64, req faq.UpdateRequest) (faq.Record, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[id]
	if !ok {
		return faq.Record{}, false, nil
	}
	if req.Question != nil {
		record.Question = *req.Question
	}
	if req.Answer != nil {
		record.Answer = *req.Answer
	}
	record.UpdatedAt = r.now()
	if record.UpdatedAt.Before(record.CreatedAt) {
		record.UpdatedAt = record.CreatedAt
	}
	r.records[id] = record
	return record, true, nil
}

// Delete implements faq.Repository.
func (r *MemoryRepository) Delete(_ context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[id]; !ok {
		return false, nil
	}
	delete(r.records, id)
	return true, nil
}

var _ faq.Repository = (*MemoryRepository)(nil)
