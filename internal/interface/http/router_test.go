package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/yanqian/faq-translate/internal/domain/faq"
	"github.com/yanqian/faq-translate/internal/domain/translation"
	"github.com/yanqian/faq-translate/internal/infra/config"
	"github.com/yanqian/faq-translate/internal/infra/faqrepo"
	"github.com/yanqian/faq-translate/internal/infra/translationcache"
	"github.com/yanqian/faq-translate/pkg/metrics"
)

const (
	djangoQuestion = "What is Django?"
	djangoAnswer   = "Django is a high-level Python Web framework."
)

func TestRouter_CreateThenListNewestFirst(t *testing.T) {
	env := newTestEnv(t, nil)

	first := env.createFAQ(t, "Older question?", "Older answer.")
	created := env.createFAQ(t, djangoQuestion, djangoAnswer)
	require.Greater(t, created.ID, first.ID)
	require.Equal(t, djangoQuestion, created.Question)
	require.Equal(t, djangoAnswer, created.Answer)
	require.False(t, created.CreatedAt.IsZero())

	rec := env.do(http.MethodGet, "/faqs/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, rec.Header().Get("Content-Language"))

	var list []faq.Record
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 2)
	require.Equal(t, created.ID, list[0].ID)
	require.Equal(t, djangoQuestion, list[0].Question)
	require.Equal(t, djangoAnswer, list[0].Answer)
	require.Zero(t, env.provider.calls.Load())
}

func TestRouter_EmptyListIsJSONArray(t *testing.T) {
	repo, err := faqrepo.OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "faq.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	backends := map[string]faq.Repository{
		"sqlite": repo,
		"memory": faqrepo.NewMemoryRepository(),
	}
	for name, backend := range backends {
		t.Run(name, func(t *testing.T) {
			env := buildTestEnv(t, nil, nil, backend)
			for _, path := range []string{"/faqs/", "/faqs/?lang=es"} {
				rec := env.do(http.MethodGet, path, "")
				require.Equal(t, http.StatusOK, rec.Code)
				require.JSONEq(t, `[]`, rec.Body.String(), path)
			}
		})
	}
}

func TestRouter_ListServesCachedTranslations(t *testing.T) {
	env := newTestEnv(t, nil)
	env.createFAQ(t, djangoQuestion, djangoAnswer)

	ctx := context.Background()
	require.NoError(t, env.cache.Set(ctx, djangoQuestion, "es", "¿Qué es Django?", time.Hour))
	require.NoError(t, env.cache.Set(ctx, djangoAnswer, "es", "Django es un framework web de alto nivel para Python.", time.Hour))

	rec := env.do(http.MethodGet, "/faqs/?lang=es", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "es", rec.Header().Get("Content-Language"))

	var list []faq.Record
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	require.Equal(t, "¿Qué es Django?", list[0].Question)
	require.Equal(t, "Django es un framework web de alto nivel para Python.", list[0].Answer)
	require.Zero(t, env.provider.calls.Load())
}

func TestRouter_DeleteThenGetNotFound(t *testing.T) {
	env := newTestEnv(t, nil)
	created := env.createFAQ(t, djangoQuestion, djangoAnswer)
	path := "/faqs/" + strconv.FormatInt(created.ID, 10) + "/"

	rec := env.do(http.MethodDelete, path, "")
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Empty(t, rec.Body.Bytes())

	rec = env.do(http.MethodGet, path, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	errBody := decodeErrorBody(t, rec.Body.Bytes())
	require.Equal(t, "not_found", errBody["error"]["code"])

	rec = env.do(http.MethodDelete, path, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_GetFallsBackWhenProviderFails(t *testing.T) {
	env := newTestEnv(t, func(context.Context, string, string) (string, error) {
		return "", errors.New("provider unavailable")
	})
	created := env.createFAQ(t, djangoQuestion, djangoAnswer)

	rec := env.do(http.MethodGet, "/faqs/"+strconv.FormatInt(created.ID, 10)+"/?lang=fr", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got faq.Record
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, djangoQuestion, got.Question)
	require.Equal(t, djangoAnswer, got.Answer)
	require.EqualValues(t, 2, env.provider.calls.Load())
	require.Zero(t, env.cache.Len())
}

func TestRouter_GetTranslatesAndCaches(t *testing.T) {
	env := newTestEnv(t, func(_ context.Context, text, lang string) (string, error) {
		return "[" + lang + "] " + text, nil
	})
	created := env.createFAQ(t, djangoQuestion, djangoAnswer)
	path := "/faqs/" + strconv.FormatInt(created.ID, 10) + "/?lang=de"

	for i := 0; i < 2; i++ {
		rec := env.do(http.MethodGet, path, "")
		require.Equal(t, http.StatusOK, rec.Code)
		var got faq.Record
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		require.Equal(t, "[de] "+djangoQuestion, got.Question)
		require.Equal(t, "[de] "+djangoAnswer, got.Answer)
		require.Equal(t, created.CreatedAt.UnixNano(), got.CreatedAt.UnixNano())
	}
	require.EqualValues(t, 2, env.provider.calls.Load())
	require.Equal(t, 2, env.cache.Len())
}

func TestRouter_UpdateIsPartial(t *testing.T) {
	env := newTestEnv(t, nil)
	created := env.createFAQ(t, djangoQuestion, djangoAnswer)
	path := "/faqs/" + strconv.FormatInt(created.ID, 10) + "/"

	rec := env.do(http.MethodPut, path, `{"answer":"A Python web framework."}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var got faq.Record
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, djangoQuestion, got.Question)
	require.Equal(t, "A Python web framework.", got.Answer)
	require.False(t, got.UpdatedAt.Before(got.CreatedAt))

	rec = env.do(http.MethodPatch, path, `{"question":"What is Django, really?"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "What is Django, really?", got.Question)
	require.Equal(t, "A Python web framework.", got.Answer)

	rec = env.do(http.MethodPut, "/faqs/999/", `{"answer":"x"}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_PatchSharesUpdateSemantics(t *testing.T) {
	env := newTestEnv(t, nil)
	created := env.createFAQ(t, djangoQuestion, djangoAnswer)
	path := "/faqs/" + strconv.FormatInt(created.ID, 10) + "/"

	rec := env.do(http.MethodPatch, path, `{"answer":"<p>A web framework.</p>"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var got faq.Record
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, created.ID, got.ID)
	require.Equal(t, djangoQuestion, got.Question)
	require.Equal(t, "<p>A web framework.</p>", got.Answer)
	require.Equal(t, created.CreatedAt.UnixNano(), got.CreatedAt.UnixNano())

	rec = env.do(http.MethodPatch, path, `{}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(http.MethodPatch, "/faqs/999/", `{"answer":"x"}`)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(http.MethodPatch, "/faqs/abc/", `{"answer":"x"}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_ValidationErrors(t *testing.T) {
	env := newTestEnv(t, nil)

	cases := []struct {
		name   string
		method string
		path   string
		body   string
	}{
		{name: "malformed json", method: http.MethodPost, path: "/faqs/", body: `{"question":`},
		{name: "wrong type", method: http.MethodPost, path: "/faqs/", body: `{"question":123,"answer":"a"}`},
		{name: "missing answer", method: http.MethodPost, path: "/faqs/", body: `{"question":"q?"}`},
		{name: "blank question", method: http.MethodPost, path: "/faqs/", body: `{"question":"   ","answer":"a"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := env.do(tc.method, tc.path, tc.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			errBody := decodeErrorBody(t, rec.Body.Bytes())
			require.Equal(t, "invalid_request", errBody["error"]["code"])
			require.NotEmpty(t, errBody["error"]["message"])
		})
	}

	created := env.createFAQ(t, djangoQuestion, djangoAnswer)
	rec := env.do(http.MethodPut, "/faqs/"+strconv.FormatInt(created.ID, 10)+"/", `{}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_NonNumericIDIsNotFound(t *testing.T) {
	env := newTestEnv(t, nil)
	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		rec := env.do(method, "/faqs/abc/", `{"answer":"x"}`)
		require.Equal(t, http.StatusNotFound, rec.Code, method)
	}
}

func TestRouter_TrailingSlashRedirect(t *testing.T) {
	env := newTestEnv(t, nil)
	rec := env.do(http.MethodGet, "/faqs", "")
	require.Equal(t, http.StatusMovedPermanently, rec.Code)
	require.Equal(t, "/faqs/", rec.Header().Get("Location"))
}

func TestRouter_HealthAndRequestID(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.do(http.MethodGet, "/health/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	require.NotEmpty(t, rec.Header().Get(requestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/health/", nil)
	req.Header.Set(requestIDHeader, "req-123")
	out := httptest.NewRecorder()
	env.server.Handler.ServeHTTP(out, req)
	require.Equal(t, "req-123", out.Header().Get(requestIDHeader))
}

func TestRouter_MetricsEndpoint(t *testing.T) {
	env := newTestEnv(t, func(_ context.Context, text, _ string) (string, error) {
		return text + "!", nil
	})
	created := env.createFAQ(t, djangoQuestion, djangoAnswer)
	env.do(http.MethodGet, "/faqs/"+strconv.FormatInt(created.ID, 10)+"/?lang=it", "")

	rec := env.do(http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, `faq_translation_cache_lookups_total{result="miss"} 2`)
	require.Contains(t, body, `faq_translation_provider_calls_total{result="success"} 2`)
	require.Contains(t, body, `http_requests_total{method="POST",path="/faqs/",status_code="201"} 1`)
}

func TestRouter_RateLimit(t *testing.T) {
	env := newTestEnvWithConfig(t, nil, func(cfg *config.Config) {
		cfg.HTTP.RateLimit = config.RateLimitConfig{Enabled: true, RequestsPerMinute: 1, Burst: 1}
	})

	require.Equal(t, http.StatusOK, env.do(http.MethodGet, "/faqs/", "").Code)
	rec := env.do(http.MethodGet, "/faqs/", "")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.NotEmpty(t, rec.Header().Get("Retry-After"))
	errBody := decodeErrorBody(t, rec.Body.Bytes())
	require.Equal(t, "rate_limit_exceeded", errBody["error"]["code"])

	require.Equal(t, http.StatusOK, env.do(http.MethodGet, "/health/", "").Code)
}

type testEnv struct {
	server   *http.Server
	cache    *translationcache.MemoryStore
	provider *funcProvider
}

func newTestEnv(t *testing.T, translate func(ctx context.Context, text, lang string) (string, error)) *testEnv {
	return newTestEnvWithConfig(t, translate, nil)
}

func newTestEnvWithConfig(t *testing.T, translate func(ctx context.Context, text, lang string) (string, error), mutate func(*config.Config)) *testEnv {
	t.Helper()
	return buildTestEnv(t, translate, mutate, faqrepo.NewMemoryRepository())
}

func buildTestEnv(t *testing.T, translate func(ctx context.Context, text, lang string) (string, error), mutate func(*config.Config), repo faq.Repository) *testEnv {
	t.Helper()
	cfg := &config.Config{
		HTTP: config.HTTPConfig{
			Address:      ":0",
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
		},
		Metrics: config.MetricsConfig{Enabled: true, Path: "/metrics"},
	}
	if mutate != nil {
		mutate(cfg)
	}

	logger := newTestLogger()
	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	cache := translationcache.NewMemoryStore()
	provider := &funcProvider{fn: translate}
	translator := translation.NewService(translation.Config{CacheTTL: time.Hour, Timeout: time.Second}, cache, provider, m, logger)
	svc := faq.NewService(faq.Config{}, repo, translator, logger)

	return &testEnv{
		server:   NewRouter(cfg, NewHandler(svc, logger), m, registry, logger),
		cache:    cache,
		provider: provider,
	}
}

func (e *testEnv) do(method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.server.Handler.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) createFAQ(t *testing.T, question, answer string) faq.Record {
	t.Helper()
	payload, err := json.Marshal(faq.CreateRequest{Question: question, Answer: answer})
	require.NoError(t, err)
	rec := e.do(http.MethodPost, "/faqs/", string(payload))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var record faq.Record
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &record))
	return record
}

func newTestLogger() *slog.Logger {
	handler := slog.NewTextHandler(io.Discard, nil)
	return slog.New(handler)
}

type funcProvider struct {
	fn    func(ctx context.Context, text, lang string) (string, error)
	calls atomic.Int64
}

func (p *funcProvider) Translate(ctx context.Context, text, lang string) (string, error) {
	p.calls.Add(1)
	if p.fn == nil {
		return "", errors.New("unexpected provider call")
	}
	return p.fn(ctx, text, lang)
}

func decodeErrorBody(t *testing.T, raw []byte) map[string]map[string]string {
	t.Helper()
	var body map[string]map[string]string
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}
