package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/updoc-health/updoc/internal/api/dto"
	"github.com/updoc-health/updoc/internal/service"
	apperrors "github.com/updoc-health/updoc/pkg/util"
)

// TicketsHandler manages ticket endpoints.
type TicketsHandler struct {
	tickets  *service.TicketService
	queries  *service.TicketQueryService
	identity *service.IdentityService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(tickets *service.TicketService, queries *service.TicketQueryService, identity *service.IdentityService) *TicketsHandler {
	return &TicketsHandler{tickets: tickets, queries: queries, identity: identity}
}

// Create handles POST /api/tickets.
func (h *TicketsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.PatientID == "" || req.Description == "" {
		return apperrors.NewValidationError("patientId and description required", nil)
	}

	ticket, err := h.tickets.Create(c.Context(), req.PatientID, req.Description, req.Title)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.FromTicket(ticket))
}

// List handles GET /api/tickets. With a userId query parameter the
// result is role-scoped and enriched for that user; without one every
// live ticket is returned.
func (h *TicketsHandler) List(c *fiber.Ctx) error {
	var enriched []service.EnrichedTicket
	if userID := c.Query("userId"); userID != "" {
		user, err := h.identity.Resolve(userID)
		if err != nil {
			return err
		}
		enriched = h.queries.ListFor(user)
	} else {
		enriched = h.queries.ListAll()
	}

	items := make([]dto.Ticket, 0, len(enriched))
	for _, ticket := range enriched {
		items = append(items, dto.FromEnrichedTicket(ticket))
	}
	return c.JSON(items)
}

// UpdateStatus handles PUT /api/tickets/:id.
func (h *TicketsHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Status == "" || req.UserID == "" {
		return apperrors.NewValidationError("status and userId required", nil)
	}

	ticket, err := h.tickets.UpdateStatus(c.Context(), c.Params("id"), req.Status, req.UserID)
	if err != nil {
		return err
	}
	return c.JSON(dto.FromTicket(ticket))
}

// Delete handles DELETE /api/tickets/:id?userId=...
func (h *TicketsHandler) Delete(c *fiber.Ctx) error {
	userID := c.Query("userId")
	if userID == "" {
		return apperrors.NewValidationError("userId is required", nil)
	}
	if err := h.tickets.Delete(c.Context(), c.Params("id"), userID); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Ticket deleted successfully"})
}

// Actions handles GET /api/tickets/:id/actions. Returns an empty array
// for tickets with no recorded history, including deleted and
// never-existing ids. The transport contract does not guarantee order.
func (h *TicketsHandler) Actions(c *fiber.Ctx) error {
	actions := h.tickets.Actions(c.Params("id"))
	items := make([]dto.Action, 0, len(actions))
	for _, action := range actions {
		items = append(items, dto.FromAction(action))
	}
	return c.JSON(items)
}
