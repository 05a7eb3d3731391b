package api

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/ncuacg/assistant/pkg/llm"
)

// ChatRequest is the body for POST /v1/chat.
type ChatRequest struct {
	Message string `json:"message"`

	// Persona is the preferred persona id. Empty uses the default; secret
	// phrases in the message may override it.
	Persona string `json:"persona,omitempty"`
}

// ContextResponse is the body for GET /v1/context.
type ContextResponse struct {
	Query   string `json:"query"`
	K       int    `json:"k"`
	Context string `json:"context"`
}

// handlePing returns a simple health check response.
func (s *Server) handlePing(c *fiber.Ctx) error {
	return c.JSON("pong")
}

// handleListPersonas returns the merged persona table without prompts.
func (s *Server) handleListPersonas(c *fiber.Ctx) error {
	includeHidden := c.QueryBool("include_hidden", false)

	personas := s.registry.List(includeHidden)
	return c.JSON(map[string]any{
		"count":    len(personas),
		"personas": personas,
		"default":  s.registry.DefaultID(),
	})
}

// handleGetPersona returns a single persona by id, prompt excluded.
func (s *Server) handleGetPersona(c *fiber.Ctx) error {
	id := c.Params("id")

	p, err := s.registry.Get(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(llm.ErrorResponse{Error: "persona not found"})
	}

	p.SystemPrompt = ""
	return c.JSON(p)
}

// handleContext returns the assembled context block for a query.
func (s *Server) handleContext(c *fiber.Ctx) error {
	if s.retriever == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(llm.ErrorResponse{Error: "retrieval not configured"})
	}

	query := c.Query("query")
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(llm.ErrorResponse{Error: "query parameter required"})
	}

	k := 0
	if raw := c.Query("k"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(llm.ErrorResponse{Error: "k must be a non-negative integer"})
		}
		k = parsed
	}

	block, err := s.retriever.RetrieveContext(c.Context(), query, k)
	if err != nil {
		s.logger.Error("context retrieval failed",
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(llm.ErrorResponse{Error: "retrieval failed"})
	}

	return c.JSON(ContextResponse{Query: query, K: k, Context: block})
}

// handleChat answers a single user message.
func (s *Server) handleChat(c *fiber.Ctx) error {
	if s.chat == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(llm.ErrorResponse{Error: "chat not configured"})
	}

	var req ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(llm.ErrorResponse{Error: "invalid request body"})
	}
	if req.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(llm.ErrorResponse{Error: "message required"})
	}

	reply, err := s.chat.Ask(c.Context(), req.Message, req.Persona)
	if err != nil {
		s.logger.Error("chat failed",
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(llm.ErrorResponse{Error: "chat failed"})
	}

	return c.JSON(reply)
}
