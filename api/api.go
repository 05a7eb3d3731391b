package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ncuacg/assistant/pkg/chat"
	"github.com/ncuacg/assistant/pkg/persona"
	"github.com/ncuacg/assistant/pkg/retrieval"
)

// Server is the API server exposing personas, context retrieval, and chat
type Server struct {
	config    Config
	retriever *retrieval.Retriever
	registry  *persona.Registry
	chat      *chat.Service
	logger    *zap.Logger
	app       *fiber.App
}

// NewServer creates a new API server.
// The retriever and chat service may be nil when their backends are not
// configured; the corresponding routes then answer 503.
func NewServer(
	config Config,
	retriever *retrieval.Retriever,
	registry *persona.Registry,
	chatService *chat.Service,
	logger *zap.Logger,
) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	s := &Server{
		config:    config,
		retriever: retriever,
		registry:  registry,
		chat:      chatService,
		logger:    logger,
		app:       app,
	}

	app.Use(s.requestID)

	app.Get("/ping", s.handlePing)
	app.Get("/v1/personas", s.handleListPersonas)
	app.Get("/v1/personas/:id", s.handleGetPersona)
	app.Get("/v1/context", s.handleContext)
	app.Post("/v1/chat", s.handleChat)

	return s
}

// requestID tags every request for log correlation.
func (s *Server) requestID(c *fiber.Ctx) error {
	id := c.Get("X-Request-ID")
	if id == "" {
		id = uuid.NewString()
	}
	c.Set("X-Request-ID", id)
	c.Locals("request_id", id)
	return c.Next()
}

// Run starts the API server on the configured address.
func (s *Server) Run() error {
	s.logger.Info("starting API server",
		zap.String("listen", s.config.ListenAddr),
	)
	return s.app.Listen(s.config.ListenAddr)
}

// Shutdown gracefully shuts down the API server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
