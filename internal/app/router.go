package app

import (
	customerHandler "crmdesk-service/internal/handlers/customer"
	interactionHandler "crmdesk-service/internal/handlers/interaction"
	segmentHandler "crmdesk-service/internal/handlers/segment"
	statsHandler "crmdesk-service/internal/handlers/stats"
	ticketHandler "crmdesk-service/internal/handlers/ticket"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	CustomerHandler    *customerHandler.CustomerHandler
	InteractionHandler *interactionHandler.InteractionHandler
	TicketHandler      *ticketHandler.TicketHandler
	SegmentHandler     *segmentHandler.SegmentHandler
	StatsHandler       *statsHandler.StatsHandler
}

func SetupRouter(r *gin.Engine, h *Handlers) {
	api := r.Group("/api/v1")

	// ==================== Health Check ====================
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "version": "1.0.0"})
	})

	// ==================== Customers ====================
	customers := api.Group("/customers")
	{
		customers.GET("", h.CustomerHandler.ListCustomers)
		customers.GET("/:id", h.CustomerHandler.GetCustomer)
		customers.POST("", h.CustomerHandler.CreateCustomer)
		customers.PUT("/:id", h.CustomerHandler.UpdateCustomer)
		customers.DELETE("/:id", h.CustomerHandler.DeleteCustomer)
	}

	// ==================== Interactions ====================
	interactions := api.Group("/interactions")
	{
		interactions.GET("", h.InteractionHandler.ListInteractions)
		interactions.GET("/:id", h.InteractionHandler.GetInteraction)
		interactions.POST("", h.InteractionHandler.CreateInteraction)
		interactions.PUT("/:id", h.InteractionHandler.UpdateInteraction)
		interactions.DELETE("/:id", h.InteractionHandler.DeleteInteraction)
	}

	// ==================== Support Tickets ====================
	tickets := api.Group("/tickets")
	{
		tickets.GET("", h.TicketHandler.ListTickets)
		tickets.GET("/:id", h.TicketHandler.GetTicket)
		tickets.POST("", h.TicketHandler.CreateTicket)
		tickets.PUT("/:id", h.TicketHandler.UpdateTicket)
		tickets.DELETE("/:id", h.TicketHandler.DeleteTicket)
		tickets.POST("/:id/responses", h.TicketHandler.AddResponse)
	}

	// ==================== Segments ====================
	segments := api.Group("/segments")
	{
		segments.GET("", h.SegmentHandler.ListSegments)
		segments.POST("", h.SegmentHandler.CreateSegment)
		segments.POST("/preview", h.SegmentHandler.PreviewRules)
		segments.GET("/:id", h.SegmentHandler.GetSegment)
		segments.PUT("/:id", h.SegmentHandler.UpdateSegment)
		segments.DELETE("/:id", h.SegmentHandler.DeleteSegment)
		segments.GET("/:id/preview", h.SegmentHandler.PreviewSegment)
		segments.POST("/:id/sync", h.SegmentHandler.SyncSegment)
		segments.GET("/:id/members", h.SegmentHandler.ListMembers)
	}

	// ==================== Stats ====================
	api.GET("/stats", h.StatsHandler.GetStats)
}
