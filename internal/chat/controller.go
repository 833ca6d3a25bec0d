package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/antoniostano/ingpt/internal/llm"
	"github.com/antoniostano/ingpt/internal/observability"
	"github.com/antoniostano/ingpt/internal/retrieval"
)

// Store is the slice of the session store the controller needs. Defined on
// the consumer side; satisfied by the store package implementations.
type Store interface {
	Append(ctx context.Context, sessionID string, msg Message) error
	History(ctx context.Context, sessionID string) ([]Message, error)
}

// Emit delivers one assistant message to the caller as soon as it is
// produced. Returning an error means the caller has gone away; emission
// stops but persistence is unaffected.
type Emit func(text string) error

// Controller runs one complete pass per request: route the message, execute
// exactly one sub-flow, append the resulting messages to the session log, and
// emit them incrementally. The session log is the only cross-request state.
type Controller struct {
	store      Store
	retriever  retrieval.Retriever
	summarizer *Summarizer
	answerer   *Answerer
	metrics    *observability.Metrics
	logger     *slog.Logger

	confidenceThreshold float64
}

func NewController(
	st Store,
	retriever retrieval.Retriever,
	gen llm.Generator,
	metrics *observability.Metrics,
	logger *slog.Logger,
	confidenceThreshold float64,
) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		store:               st,
		retriever:           retriever,
		summarizer:          NewSummarizer(gen),
		answerer:            NewAnswerer(gen),
		metrics:             metrics,
		logger:              logger,
		confidenceThreshold: confidenceThreshold,
	}
}

// Respond handles one user message. Sub-flow failures resolve to inline
// fallback text; only store append failures fail the request.
func (c *Controller) Respond(ctx context.Context, sessionID, question string, emit Emit) error {
	handler := Route(question)
	c.metrics.RequestsByHandler.WithLabelValues(string(handler)).Inc()

	// History excludes the triggering request: the user message is appended
	// after the sub-flow runs. A failed read degrades to empty history.
	history, err := c.store.History(ctx, sessionID)
	if err != nil {
		c.metrics.CollaboratorErrors.WithLabelValues("store").Inc()
		c.logger.Warn("history read failed, using empty history",
			"session_id", sessionID, "error", err)
		history = nil
	}

	var reply string
	switch handler {
	case HandleGreeting:
		reply = GreetingReply
	case HandleMemoryRecap:
		start := time.Now()
		reply = c.summarizer.Summarize(ctx, history)
		c.metrics.ObserveGenerationLatency(time.Since(start))
	default:
		contextText := c.contextFor(ctx, question)
		start := time.Now()
		reply = c.answerer.Answer(ctx, question, contextText)
		c.metrics.ObserveGenerationLatency(time.Since(start))
	}

	// A client disconnect cancels emission, never persistence: appends run on
	// a context detached from the request's cancellation.
	appendCtx := context.WithoutCancel(ctx)
	if err := c.store.Append(appendCtx, sessionID, Message{Role: RoleUser, Content: question}); err != nil {
		c.metrics.CollaboratorErrors.WithLabelValues("store").Inc()
		return fmt.Errorf("append user message: %w", err)
	}
	if err := c.store.Append(appendCtx, sessionID, Message{Role: RoleAssistant, Content: reply}); err != nil {
		c.metrics.CollaboratorErrors.WithLabelValues("store").Inc()
		return fmt.Errorf("append assistant message: %w", err)
	}

	if err := emit(reply); err != nil {
		c.metrics.StreamEvents.WithLabelValues("drop").Inc()
		c.logger.Debug("client gone before emit completed",
			"session_id", sessionID, "error", err)
	}
	return nil
}

// contextFor retrieves context passages for multi-word questions. Single-word
// queries skip retrieval entirely. Retrieval failure degrades to the fixed
// no-documents sentinel rather than blocking the grounded-answer path.
func (c *Controller) contextFor(ctx context.Context, question string) string {
	if len(strings.Fields(question)) <= 1 {
		return ""
	}
	if c.retriever == nil {
		return ""
	}

	passages, err := c.retriever.Retrieve(ctx, question)
	if err != nil {
		c.metrics.CollaboratorErrors.WithLabelValues("retrieval").Inc()
		c.logger.Warn("retrieval failed, answering without context", "error", err)
		return NoDocumentsFound
	}
	if len(passages) == 0 {
		return ""
	}

	confident := retrieval.Confident(passages, c.confidenceThreshold)
	c.metrics.RetrievalConfident.WithLabelValues(strconv.FormatBool(confident)).Inc()

	parts := make([]string, 0, len(passages))
	for _, p := range passages {
		parts = append(parts, p.Content)
	}
	return strings.Join(parts, "\n\n")
}
