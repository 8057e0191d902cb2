package handlers

import (
	"errors"
	"html/template"
	"io"
	"log/slog"

	"github.com/gofiber/fiber/v3"
	"github.com/valyala/bytebufferpool"

	"querysearch/internal/config"
	"querysearch/internal/engine"
	"querysearch/internal/metrics"
	"querysearch/internal/models"
	"querysearch/internal/validation"
)

// Form field names posted by the search box.
const (
	FieldTerms  = "terms"
	FieldSubmit = "submit"
)

// stderrLogLimit is how much of the engine's stderr goes into one log line.
const stderrLogLimit = 2048

// QueryHandler renders the search form and dispatches submitted queries.
type QueryHandler struct {
	engine Dispatcher
	cfg    *config.Config
}

// NewQueryHandler creates a new query handler.
func NewQueryHandler(dispatcher Dispatcher, cfg *config.Config) *QueryHandler {
	return &QueryHandler{engine: dispatcher, cfg: cfg}
}

// Index renders the search form only.
func (h *QueryHandler) Index(c fiber.Ctx) error {
	return c.Render("index", PageData(h.cfg, fiber.Map{
		"Terms":     "",
		"Submitted": false,
	}))
}

// Submit handles a form post. Without the submit flag it renders the form
// and runs nothing. With it, the engine's stdout is placed below the form,
// or returned alone for HTMX requests.
//
// Engine failures are not reported to the client: the response carries
// whatever stdout was produced, possibly nothing.
func (h *QueryHandler) Submit(c fiber.Ctx) error {
	if !formHas(c, FieldSubmit) {
		return h.Index(c)
	}

	terms := c.FormValue(FieldTerms)
	query, err := validation.SanitizeQuery(terms, h.cfg.MaxQueryBytes)
	if err != nil {
		metrics.RecordQuery(models.OutcomeRejected, 0, 0)
		if errors.Is(err, validation.ErrQueryTooLong) {
			return fiber.NewError(fiber.StatusRequestEntityTooLarge, "Query is too long")
		}
		return fiber.NewError(fiber.StatusBadRequest, "Invalid query")
	}

	if isHTMX(c) {
		c.Type("html")
		h.dispatch(c, query, c.Response().BodyWriter())
		return nil
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	h.dispatch(c, query, buf)

	return c.Render("index", PageData(h.cfg, fiber.Map{
		"Terms":     terms,
		"Submitted": true,
		// Engine output is HTML and is forwarded verbatim.
		"Results": template.HTML(buf.String()),
	}))
}

// dispatch runs the engine with stdout going to w and records the outcome.
func (h *QueryHandler) dispatch(c fiber.Ctx, query string, w io.Writer) {
	res, err := h.engine.Run(c.Context(), query, w)
	if res == nil {
		res = &engine.Result{ExitCode: -1}
	}

	outcome := engine.Outcome(err)
	metrics.RecordQuery(outcome, res.Duration, res.BytesWritten)

	attrs := []any{
		"invocation", res.Invocation.ID,
		"outcome", outcome,
		"exit_code", res.ExitCode,
		"bytes", res.BytesWritten,
		"duration", res.Duration,
	}
	if res.Truncated {
		attrs = append(attrs, "truncated", true)
	}

	if err != nil {
		attrs = append(attrs,
			"command", res.Invocation.String(),
			"stderr", tail(res.Stderr, stderrLogLimit),
			"error", err,
		)
		slog.Warn("query engine failed", attrs...)
		return
	}
	if res.Stderr != "" {
		attrs = append(attrs, "stderr", tail(res.Stderr, stderrLogLimit))
	}
	slog.Debug("query engine finished", attrs...)
}

// tail returns at most the last n bytes of s.
func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return "..." + s[len(s)-n:]
}
