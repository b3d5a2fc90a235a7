package app

import (
	"context"
	"fmt"
	"log"

	"crmdesk-service/internal/config"
	"crmdesk-service/internal/db"
	customerHandler "crmdesk-service/internal/handlers/customer"
	interactionHandler "crmdesk-service/internal/handlers/interaction"
	segmentHandler "crmdesk-service/internal/handlers/segment"
	statsHandler "crmdesk-service/internal/handlers/stats"
	ticketHandler "crmdesk-service/internal/handlers/ticket"
	"crmdesk-service/internal/middleware"
	"crmdesk-service/internal/repository"
	customersvc "crmdesk-service/internal/service/customer"
	interactionsvc "crmdesk-service/internal/service/interaction"
	segmentsvc "crmdesk-service/internal/service/segment"
	statssvc "crmdesk-service/internal/service/stats"
	ticketsvc "crmdesk-service/internal/service/ticket"
	"crmdesk-service/internal/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	cfg    config.AppConfig
	engine *gin.Engine
	logger *zap.Logger
}

func NewServer() *Server {
	cfg := config.Load()
	engine := gin.New()
	return &Server{cfg: cfg, engine: engine}
}

func (s *Server) Start() error {
	ctx := context.Background()

	// ----- Logger -----
	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync()
	s.logger = logger

	// ----- PostgreSQL -----
	pool, err := db.ConnectDB(ctx, s.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	// ----- Redis -----
	redisClient, err := db.NewRedisClient(db.RedisConfig{
		Addr:     s.cfg.RedisAddr,
		Password: s.cfg.RedisPass,
		DB:       0,
		PoolSize: 10,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	// ----- Storage & Repositories -----
	store := storage.NewPostgresStore(pool)
	repoCfg := repository.Config{
		DefaultPageSize: s.cfg.DefaultPageSize,
		MaxPageSize:     s.cfg.MaxPageSize,
	}
	customerRepo := repository.NewCustomerRepository(store, repoCfg)
	interactionRepo := repository.NewInteractionRepository(store, repoCfg)
	ticketRepo := repository.NewTicketRepository(store, repoCfg)
	segmentRepo := repository.NewSegmentRepository(store, repoCfg)

	// ----- Services -----
	countCache := segmentsvc.NewCountCache(redisClient, s.cfg.SegmentCountTTL, logger)
	segmentService := segmentsvc.NewSegmentService(segmentRepo, customerRepo, countCache, s.cfg.SegmentScanPageSize, logger)
	customerService := customersvc.NewCustomerService(customerRepo, countCache, logger)
	interactionService := interactionsvc.NewInteractionService(interactionRepo, logger)
	ticketService := ticketsvc.NewTicketService(ticketRepo, logger)
	statsService := statssvc.NewStatsService(customerRepo, interactionRepo, ticketRepo, logger)

	// ----- Handlers -----
	handlers := &Handlers{
		CustomerHandler:    customerHandler.NewCustomerHandler(customerService),
		InteractionHandler: interactionHandler.NewInteractionHandler(interactionService),
		TicketHandler:      ticketHandler.NewTicketHandler(ticketService),
		SegmentHandler:     segmentHandler.NewSegmentHandler(segmentService),
		StatsHandler:       statsHandler.NewStatsHandler(statsService),
	}

	// ----- Middlewares -----
	s.engine.Use(
		middleware.RecoveryMiddleware(logger),
		middleware.LoggingMiddleware(logger),
		middleware.CORSMiddleware(),
	)

	// ----- Router -----
	SetupRouter(s.engine, handlers)

	// ----- Start HTTP -----
	log.Printf("server running on %s", s.cfg.HTTPAddr)
	return s.engine.Run(s.cfg.HTTPAddr)
}
