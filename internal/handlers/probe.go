package handlers

import (
	"github.com/gofiber/fiber/v3"

	"querysearch/internal/models"
)

// ProbeHandler handles Kubernetes health probe endpoints.
type ProbeHandler struct {
	engine StatusProvider
}

// NewProbeHandler creates a new probe handler.
func NewProbeHandler(status StatusProvider) *ProbeHandler {
	return &ProbeHandler{engine: status}
}

// Liveness handles the /healthz endpoint for Kubernetes liveness probes.
// Returns 200 OK if the application is running.
func (h *ProbeHandler) Liveness(c fiber.Ctx) error {
	return c.JSON(models.ProbeResponse{Status: "ok"})
}

// Readiness handles the /readyz endpoint for Kubernetes readiness probes.
// Returns 200 OK if the last engine check passed.
func (h *ProbeHandler) Readiness(c fiber.Ctx) error {
	status := h.engine.Status()
	if !status.Ready {
		return c.Status(fiber.StatusServiceUnavailable).JSON(models.ProbeResponse{
			Status: "error",
			Error:  "query engine unavailable",
			Engine: &status,
		})
	}

	return c.JSON(models.ProbeResponse{Status: "ok", Engine: &status})
}
