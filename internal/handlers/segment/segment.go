package segment

import (
	"net/http"

	"crmdesk-service/internal/domain/segment"
	"crmdesk-service/internal/pkg/response"
	service "crmdesk-service/internal/service/segment"

	"github.com/gin-gonic/gin"
)

type SegmentHandler struct {
	segmentService *service.SegmentService
}

func NewSegmentHandler(segmentService *service.SegmentService) *SegmentHandler {
	return &SegmentHandler{
		segmentService: segmentService,
	}
}

// ListSegments retrieves a page of segments with live member counts
func (h *SegmentHandler) ListSegments(c *gin.Context) {
	var filters segment.ListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid query parameters", err)
		return
	}

	result, err := h.segmentService.ListSegments(c.Request.Context(), &filters)
	if err != nil {
		response.FromError(c, "failed to list segments", err)
		return
	}

	response.Success(c, http.StatusOK, "segments retrieved", result)
}

// GetSegment retrieves a segment by ID
func (h *SegmentHandler) GetSegment(c *gin.Context) {
	id := c.Param("id")

	result, err := h.segmentService.GetSegment(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "failed to get segment", err)
		return
	}

	response.Success(c, http.StatusOK, "segment retrieved", result)
}

// CreateSegment creates a new segment from a rule set
func (h *SegmentHandler) CreateSegment(c *gin.Context) {
	var req segment.CreateSegmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.segmentService.CreateSegment(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, "failed to create segment", err)
		return
	}

	response.Success(c, http.StatusCreated, "segment created successfully", result)
}

// UpdateSegment applies a partial update to a segment
func (h *SegmentHandler) UpdateSegment(c *gin.Context) {
	id := c.Param("id")

	var req segment.UpdateSegmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.segmentService.UpdateSegment(c.Request.Context(), id, &req)
	if err != nil {
		response.FromError(c, "failed to update segment", err)
		return
	}

	response.Success(c, http.StatusOK, "segment updated successfully", result)
}

// DeleteSegment deletes a segment and its persisted memberships
func (h *SegmentHandler) DeleteSegment(c *gin.Context) {
	id := c.Param("id")

	if err := h.segmentService.DeleteSegment(c.Request.Context(), id); err != nil {
		response.FromError(c, "failed to delete segment", err)
		return
	}

	response.Success(c, http.StatusOK, "segment deleted successfully", nil)
}

// PreviewSegment evaluates a stored segment against the current customers
func (h *SegmentHandler) PreviewSegment(c *gin.Context) {
	id := c.Param("id")

	result, err := h.segmentService.Preview(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "failed to preview segment", err)
		return
	}

	response.Success(c, http.StatusOK, "segment preview computed", result)
}

// PreviewRules evaluates an ad hoc rule set without persisting anything
func (h *SegmentHandler) PreviewRules(c *gin.Context) {
	var req struct {
		Rules []segment.Rule `json:"rules" binding:"dive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.segmentService.PreviewRules(c.Request.Context(), req.Rules)
	if err != nil {
		response.FromError(c, "failed to preview rules", err)
		return
	}

	response.Success(c, http.StatusOK, "rules preview computed", result)
}

// SyncSegment recomputes and persists a segment's membership
func (h *SegmentHandler) SyncSegment(c *gin.Context) {
	id := c.Param("id")

	result, err := h.segmentService.Sync(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "failed to sync segment", err)
		return
	}

	response.Success(c, http.StatusOK, "segment membership synced", result)
}

// ListMembers returns the persisted membership rows of a segment
func (h *SegmentHandler) ListMembers(c *gin.Context) {
	id := c.Param("id")

	result, err := h.segmentService.Members(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "failed to list segment members", err)
		return
	}

	response.Success(c, http.StatusOK, "segment members retrieved", gin.H{
		"members": result,
		"count":   len(result),
	})
}
