package stats

import (
	"net/http"

	"crmdesk-service/internal/pkg/response"
	service "crmdesk-service/internal/service/stats"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	statsService *service.StatsService
}

func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
	}
}

// GetStats computes the dashboard metrics
func (h *StatsHandler) GetStats(c *gin.Context) {
	result, err := h.statsService.Snapshot(c.Request.Context())
	if err != nil {
		response.FromError(c, "failed to compute stats", err)
		return
	}

	response.Success(c, http.StatusOK, "stats computed", result)
}
