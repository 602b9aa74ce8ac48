package faq

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/yanqian/faq-translate/internal/domain/translation"
	apperrors "github.com/yanqian/faq-translate/pkg/errors"
)

// Service exposes FAQ CRUD with optional translation of reads.
type Service interface {
	List(ctx context.Context, lang string) ([]Record, error)
	Get(ctx context.Context, id int64, lang string) (Record, error)
	Create(ctx context.Context, req CreateRequest) (Record, error)
	Update(ctx context.Context, id int64, req UpdateRequest) (Record, error)
	Delete(ctx context.Context, id int64) error
}

// Translator resolves a single text into lang and never fails.
type Translator interface {
	Translate(ctx context.Context, text, lang string) string
}

type service struct {
	cfg        Config
	repo       Repository
	translator Translator
	logger     *slog.Logger
}

// NewService wires up the FAQ domain.
func NewService(cfg Config, repo Repository, translator Translator, logger *slog.Logger) Service {
	return &service{
		cfg:        cfg.withDefaults(),
		repo:       repo,
		translator: translator,
		logger:     logger.With("component", "faq.service"),
	}
}

var _ Translator = (translation.Service)(nil)

func (s *service) List(ctx context.Context, lang string) ([]Record, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeFAQ, "failed to list faqs", err)
	}
	if records == nil {
		records = []Record{}
	}
	target, ok := translation.NormalizeLang(lang)
	if !ok {
		return records, nil
	}
	return s.localizeAll(ctx, records, target), nil
}

func (s *service) Get(ctx context.Context, id int64, lang string) (Record, error) {
	record, err := s.find(ctx, id)
	if err != nil {
		return Record{}, err
	}
	target, ok := translation.NormalizeLang(lang)
	if !ok {
		return record, nil
	}
	return s.localize(ctx, record, target), nil
}

func (s *service) Create(ctx context.Context, req CreateRequest) (Record, error) {
	if err := s.validateCreate(req); err != nil {
		return Record{}, err
	}
	record, err := s.repo.Create(ctx, req.Question, req.Answer)
	if err != nil {
		return Record{}, apperrors.Wrap(apperrors.CodeFAQ, "failed to create faq", err)
	}
	s.logger.Info("faq created", "id", record.ID)
	return record, nil
}

func (s *service) Update(ctx context.Context, id int64, req UpdateRequest) (Record, error) {
	if err := s.validateUpdate(req); err != nil {
		return Record{}, err
	}
	record, found, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return Record{}, apperrors.Wrap(apperrors.CodeFAQ, "failed to update faq", err)
	}
	if !found {
		return Record{}, errNotFound(id)
	}
	s.logger.Info("faq updated", "id", id)
	return record, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeFAQ, "failed to delete faq", err)
	}
	if !deleted {
		return errNotFound(id)
	}
	s.logger.Info("faq deleted", "id", id)
	return nil
}

func (s *service) find(ctx context.Context, id int64) (Record, error) {
	record, found, err := s.repo.Get(ctx, id)
	if err != nil {
		return Record{}, apperrors.Wrap(apperrors.CodeFAQ, "failed to load faq", err)
	}
	if !found {
		return Record{}, errNotFound(id)
	}
	return record, nil
}

func errNotFound(id int64) error {
	return apperrors.Wrap(apperrors.CodeNotFound, fmt.Sprintf("faq %d not found", id), nil)
}
