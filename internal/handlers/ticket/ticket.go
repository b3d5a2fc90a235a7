package ticket

import (
	"net/http"

	"crmdesk-service/internal/domain/ticket"
	"crmdesk-service/internal/pkg/response"
	service "crmdesk-service/internal/service/ticket"

	"github.com/gin-gonic/gin"
)

type TicketHandler struct {
	ticketService *service.TicketService
}

func NewTicketHandler(ticketService *service.TicketService) *TicketHandler {
	return &TicketHandler{
		ticketService: ticketService,
	}
}

// ListTickets retrieves a page of support tickets with filters
func (h *TicketHandler) ListTickets(c *gin.Context) {
	var filters ticket.ListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid query parameters", err)
		return
	}

	result, err := h.ticketService.ListTickets(c.Request.Context(), &filters)
	if err != nil {
		response.FromError(c, "failed to list tickets", err)
		return
	}

	response.Success(c, http.StatusOK, "tickets retrieved", result)
}

// GetTicket retrieves a ticket by ID, with its responses
func (h *TicketHandler) GetTicket(c *gin.Context) {
	id := c.Param("id")

	result, err := h.ticketService.GetTicket(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "failed to get ticket", err)
		return
	}

	response.Success(c, http.StatusOK, "ticket retrieved", result)
}

// CreateTicket opens a new support ticket
func (h *TicketHandler) CreateTicket(c *gin.Context) {
	var req ticket.CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.ticketService.CreateTicket(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, "failed to create ticket", err)
		return
	}

	response.Success(c, http.StatusCreated, "ticket created successfully", result)
}

// UpdateTicket applies a partial update to a ticket
func (h *TicketHandler) UpdateTicket(c *gin.Context) {
	id := c.Param("id")

	var req ticket.UpdateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.ticketService.UpdateTicket(c.Request.Context(), id, &req)
	if err != nil {
		response.FromError(c, "failed to update ticket", err)
		return
	}

	response.Success(c, http.StatusOK, "ticket updated successfully", result)
}

// DeleteTicket deletes a ticket
func (h *TicketHandler) DeleteTicket(c *gin.Context) {
	id := c.Param("id")

	if err := h.ticketService.DeleteTicket(c.Request.Context(), id); err != nil {
		response.FromError(c, "failed to delete ticket", err)
		return
	}

	response.Success(c, http.StatusOK, "ticket deleted successfully", nil)
}

// AddResponse appends a reply to a ticket's thread
func (h *TicketHandler) AddResponse(c *gin.Context) {
	id := c.Param("id")

	var req ticket.CreateResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.ticketService.AddResponse(c.Request.Context(), id, &req)
	if err != nil {
		response.FromError(c, "failed to add response", err)
		return
	}

	response.Success(c, http.StatusCreated, "response added successfully", result)
}
