// Package chat composes the assistant's answer pipeline: resolve the
// persona, retrieve site context, and ask the language model.
package chat

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ncuacg/assistant/pkg/llm"
	"github.com/ncuacg/assistant/pkg/persona"
	"github.com/ncuacg/assistant/pkg/retrieval"
	"github.com/ncuacg/assistant/pkg/utils"
)

// contextHeader introduces the retrieved site knowledge inside the system
// prompt. Persona prompts refer to this block as <CONTEXT>.
const contextHeader = "\n\n[site context]\n"

// Reply is one assistant answer.
type Reply struct {
	Text        string `json:"reply"`
	PersonaUsed string `json:"persona_used"`
}

// Service answers user messages with persona-flavored, context-grounded
// replies. Safe for concurrent use.
type Service struct {
	retriever *retrieval.Retriever
	registry  *persona.Registry
	resolver  *persona.Resolver
	chatter   llm.Chatter
	logger    *zap.Logger
}

// NewService wires the answer pipeline together. retriever may be nil when
// no snapshot is available; replies then carry no site context.
func NewService(
	retriever *retrieval.Retriever,
	registry *persona.Registry,
	resolver *persona.Resolver,
	chatter llm.Chatter,
	logger *zap.Logger,
) *Service {
	return &Service{
		retriever: retriever,
		registry:  registry,
		resolver:  resolver,
		chatter:   chatter,
		logger:    logger,
	}
}

// Ask answers a single user message. preferredPersona may be empty; secret
// phrases in the message can override it.
func (s *Service) Ask(ctx context.Context, message, preferredPersona string) (Reply, error) {
	personaID := s.resolver.Resolve(preferredPersona, message)
	system := s.registry.SystemPrompt(personaID)

	var siteContext string
	if s.retriever != nil {
		var err error
		siteContext, err = s.retriever.RetrieveContext(ctx, message, 0)
		if err != nil {
			// Retrieval failures degrade to an uncontextualized answer
			// rather than failing the whole request.
			s.logger.Warn("context retrieval failed, answering without context",
				zap.Error(err),
			)
			siteContext = ""
		}
	}

	if siteContext != "" {
		system += contextHeader + siteContext
	}

	text, err := s.chatter.Chat(ctx, system, message)
	if err != nil {
		return Reply{}, fmt.Errorf("asking model: %w", err)
	}

	s.logger.Debug("answered message",
		zap.String("persona", personaID),
		zap.String("message", utils.Truncate(message, 80)),
		zap.Int("context_bytes", len(siteContext)),
	)

	return Reply{Text: text, PersonaUsed: personaID}, nil
}
