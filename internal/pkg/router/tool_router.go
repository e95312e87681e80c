package router

import (
	"encoding/json"
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"

	"github.com/uraiai/tidycal-go/internal/pkg/env"
	"github.com/uraiai/tidycal-go/internal/pkg/tidycal"
	"github.com/uraiai/tidycal-go/internal/pkg/tools"
)

// ToolRouter exposes the operation table over HTTP: declaration listing for
// the host runtime and an invocation endpoint that stands in for its tool
// calls during local development.
type ToolRouter struct {
	registry *tools.Registry
}

func NewToolRouter(registry *tools.Registry) *ToolRouter {
	return &ToolRouter{registry: registry}
}

func (h *ToolRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api/v1")
	api.Get("/tools", h.handleListTools)
	api.Post("/tools/:name", h.handleInvokeTool)
}

func (h *ToolRouter) handleListTools(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"declarations": h.registry.Declarations(),
	})
}

type invokeRequest struct {
	Args json.RawMessage `json:"args"`
	Vars map[string]any  `json:"vars"`
}

func (h *ToolRouter) handleInvokeTool(c *fiber.Ctx) error {
	name := c.Params("name")
	invocationID := uuid.New().String()

	if _, ok := h.registry.Lookup(name); !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"invocation_id": invocationID,
			"error":         "unknown tool: " + name,
		})
	}

	var req invokeRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"invocation_id": invocationID,
				"error":         "invalid request body",
			})
		}
	}

	rctx := runtimeContextFromEnv()
	for k, v := range req.Vars {
		rctx.Vars[k] = v
	}

	result, err := h.registry.Invoke(c.UserContext(), rctx, name, req.Args)
	if err != nil {
		log.Errorf("tool %s invocation %s failed: %v", name, invocationID, err)
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"invocation_id": invocationID,
			"error":         err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"invocation_id": invocationID,
		"result":        result,
	})
}

// runtimeContextFromEnv builds the default per-invocation context the way the
// host runtime would: secrets and vars from the server environment.
func runtimeContextFromEnv() tools.RuntimeContext {
	rctx := tools.RuntimeContext{
		Secrets: map[string]string{
			"TIDYCAL_API_KEY": env.GetEnv("TIDYCAL_API_KEY", ""),
		},
		Vars: map[string]any{},
	}
	if raw := env.GetEnv("TIDYCAL_BOOKING_TYPE_ID", ""); raw != "" {
		if id, err := strconv.Atoi(raw); err == nil {
			rctx.Vars["booking_type_id"] = id
		}
	}
	return rctx
}

func statusForError(err error) int {
	var apiErr *tidycal.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	var validationErr *tidycal.ValidationError
	if errors.As(err, &validationErr) {
		return fiber.StatusUnprocessableEntity
	}
	var argErrs validator.ValidationErrors
	if errors.As(err, &argErrs) {
		return fiber.StatusUnprocessableEntity
	}
	return fiber.StatusInternalServerError
}
