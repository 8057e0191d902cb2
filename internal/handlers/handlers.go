package handlers

import (
	"context"
	"io"

	"github.com/gofiber/fiber/v3"

	"querysearch/internal/engine"
	"querysearch/internal/models"
)

// Dispatcher runs the external query engine. Implementations must return a
// non-nil Result even when err is non-nil.
type Dispatcher interface {
	Run(ctx context.Context, query string, stdout io.Writer) (*engine.Result, error)
}

// StatusProvider reports the last engine readiness check.
type StatusProvider interface {
	Status() models.EngineStatus
}

// isHTMX reports whether the request came from an HTMX swap.
func isHTMX(c fiber.Ctx) bool {
	return c.Get("HX-Request") == "true"
}

// formHas reports whether the POST body carries key, regardless of its
// value. Browsers send a named submit button with an empty value.
func formHas(c fiber.Ctx, key string) bool {
	if c.Request().PostArgs().Has(key) {
		return true
	}
	if form, err := c.MultipartForm(); err == nil {
		_, ok := form.Value[key]
		return ok
	}
	return false
}
