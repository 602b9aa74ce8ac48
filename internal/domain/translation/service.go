package translation

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/yanqian/faq-translate/pkg/metrics"
)

// Service resolves translated text, preferring the cache over the provider.
// It never fails: on any provider problem the original text is returned.
type Service interface {
	Translate(ctx context.Context, text, lang string) string
}

// Recorder receives translation metrics. *metrics.Metrics satisfies it.
type Recorder interface {
	RecordCacheLookup(result string)
	RecordProviderCall(result string, elapsed time.Duration)
}

var errEmptyTranslation = errors.New("provider returned empty translation")

type service struct {
	cfg      Config
	cache    Cache
	provider Provider
	recorder Recorder
	logger   *slog.Logger
	group    singleflight.Group
	now      func() time.Time
}

// NewService wires up the cache-aside translator.
func NewService(cfg Config, cache Cache, provider Provider, recorder Recorder, logger *slog.Logger) Service {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &service{
		cfg:      cfg,
		cache:    cache,
		provider: provider,
		recorder: recorder,
		logger:   logger.With("component", "translation.service"),
		now:      time.Now,
	}
}

func (s *service) Translate(ctx context.Context, text, lang string) string {
	if lang == "" || strings.TrimSpace(text) == "" {
		return text
	}

	cached, ok, err := s.cache.Get(ctx, text, lang)
	switch {
	case err != nil:
		s.recorder.RecordCacheLookup(metrics.CacheError)
		s.logger.Warn("translation cache lookup failed", "lang", lang, "error", err)
	case ok && cached != "":
		s.recorder.RecordCacheLookup(metrics.CacheHit)
		return cached
	default:
		s.recorder.RecordCacheLookup(metrics.CacheMiss)
	}

	// concurrent misses for the same key share one provider call, detached from
	// the first caller's cancellation and bounded by cfg.Timeout
	value, err, _ := s.group.Do(CacheKey(text, lang), func() (any, error) {
		return s.fetch(context.WithoutCancel(ctx), text, lang)
	})
	if err != nil {
		s.logger.Warn("translation failed, serving original text", "lang", lang, "error", err)
		return text
	}
	return value.(string)
}

func (s *service) fetch(ctx context.Context, text, lang string) (string, error) {
	callCtx := ctx
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	start := s.now()
	translated, err := s.provider.Translate(callCtx, text, lang)
	if err == nil && strings.TrimSpace(translated) == "" {
		err = errEmptyTranslation
	}
	elapsed := s.now().Sub(start)
	if err != nil {
		s.recorder.RecordProviderCall(metrics.ProviderFailure, elapsed)
		return "", err
	}
	s.recorder.RecordProviderCall(metrics.ProviderSuccess, elapsed)

	if err := s.cache.Set(ctx, text, lang, translated, s.cfg.CacheTTL); err != nil {
		s.logger.Warn("translation cache write failed", "lang", lang, "error", err)
	}
	return translated, nil
}

type nopRecorder struct{}

func (nopRecorder) RecordCacheLookup(string)                 {}
func (nopRecorder) RecordProviderCall(string, time.Duration) {}
