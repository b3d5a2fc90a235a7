package interaction

import (
	"net/http"

	"crmdesk-service/internal/domain/interaction"
	"crmdesk-service/internal/pkg/response"
	service "crmdesk-service/internal/service/interaction"

	"github.com/gin-gonic/gin"
)

type InteractionHandler struct {
	interactionService *service.InteractionService
}

func NewInteractionHandler(interactionService *service.InteractionService) *InteractionHandler {
	return &InteractionHandler{
		interactionService: interactionService,
	}
}

// ListInteractions retrieves a page of interactions with filters
func (h *InteractionHandler) ListInteractions(c *gin.Context) {
	var filters interaction.ListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid query parameters", err)
		return
	}

	result, err := h.interactionService.ListInteractions(c.Request.Context(), &filters)
	if err != nil {
		response.FromError(c, "failed to list interactions", err)
		return
	}

	response.Success(c, http.StatusOK, "interactions retrieved", result)
}

// GetInteraction retrieves an interaction by ID
func (h *InteractionHandler) GetInteraction(c *gin.Context) {
	id := c.Param("id")

	result, err := h.interactionService.GetInteraction(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "failed to get interaction", err)
		return
	}

	response.Success(c, http.StatusOK, "interaction retrieved", result)
}

// CreateInteraction logs a new interaction against a customer
func (h *InteractionHandler) CreateInteraction(c *gin.Context) {
	var req interaction.CreateInteractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.interactionService.CreateInteraction(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, "failed to create interaction", err)
		return
	}

	response.Success(c, http.StatusCreated, "interaction created successfully", result)
}

// UpdateInteraction applies a partial update to an interaction
func (h *InteractionHandler) UpdateInteraction(c *gin.Context) {
	id := c.Param("id")

	var req interaction.UpdateInteractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.interactionService.UpdateInteraction(c.Request.Context(), id, &req)
	if err != nil {
		response.FromError(c, "failed to update interaction", err)
		return
	}

	response.Success(c, http.StatusOK, "interaction updated successfully", result)
}

// DeleteInteraction deletes an interaction
func (h *InteractionHandler) DeleteInteraction(c *gin.Context) {
	id := c.Param("id")

	if err := h.interactionService.DeleteInteraction(c.Request.Context(), id); err != nil {
		response.FromError(c, "failed to delete interaction", err)
		return
	}

	response.Success(c, http.StatusOK, "interaction deleted successfully", nil)
}
