package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/faq-translate/internal/domain/faq"
	"github.com/yanqian/faq-translate/internal/domain/translation"
	apperrors "github.com/yanqian/faq-translate/pkg/errors"
)

// Handler wires the HTTP transport to the FAQ service.
type Handler struct {
	faqSvc faq.Service
	logger *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(faqSvc faq.Service, logger *slog.Logger) *Handler {
	return &Handler{
		faqSvc: faqSvc,
		logger: logger.With("component", "http.handler"),
	}
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ListFAQs returns every FAQ, newest first, translated when ?lang is set.
func (h *Handler) ListFAQs(c *gin.Context) {
	lang := c.Query("lang")
	records, err := h.faqSvc.List(c.Request.Context(), lang)
	if err != nil {
		abortWithError(c, err)
		return
	}
	setContentLanguage(c, lang)
	c.JSON(http.StatusOK, records)
}

// CreateFAQ stores a new FAQ in its original language.
func (h *Handler) CreateFAQ(c *gin.Context) {
	var req faq.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	record, err := h.faqSvc.Create(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

// GetFAQ returns a single FAQ, translated when ?lang is set.
func (h *Handler) GetFAQ(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	lang := c.Query("lang")
	record, err := h.faqSvc.Get(c.Request.Context(), id, lang)
	if err != nil {
		abortWithError(c, err)
		return
	}
	setContentLanguage(c, lang)
	c.JSON(http.StatusOK, record)
}

// UpdateFAQ applies a partial update. PUT and PATCH share it.
func (h *Handler) UpdateFAQ(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req faq.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	record, err := h.faqSvc.Update(c.Request.Context(), id, req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// DeleteFAQ removes an FAQ permanently.
func (h *Handler) DeleteFAQ(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.faqSvc.Delete(c.Request.Context(), id); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func parseID(c *gin.Context) (int64, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		abortWithError(c, NewHTTPError(http.StatusNotFound, apperrors.CodeNotFound, "faq "+raw+" not found", err))
		return 0, false
	}
	return id, true
}

func setContentLanguage(c *gin.Context, lang string) {
	if target, ok := translation.NormalizeLang(lang); ok {
		c.Header("Content-Language", target)
	}
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
