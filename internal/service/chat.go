package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_completion_client.go -package=mocks openrouter-chat/internal/service CompletionClient
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_chat_service.go -package=mocks -mock_names=ChatService=MockChatService openrouter-chat/internal/service ChatService

import (
	"context"
	"log/slog"
	"time"

	"openrouter-chat/internal/contextutil"
	"openrouter-chat/internal/openrouter"
	"openrouter-chat/internal/storage"
)

// CompletionClient is an interface for the OpenRouter client.
// Defined from the service layer's perspective (consumer-first).
type CompletionClient interface {
	// GetCompletion sends messages and returns the assistant's reply.
	GetCompletion(ctx context.Context, messages []openrouter.ChatMessage, params openrouter.Params) (string, error)
}

// CompletionRequest represents a completion request in the domain layer.
type CompletionRequest struct {
	// Messages are the message contents, in order. Must be non-empty.
	Messages []string

	// Model overrides the configured default when non-empty.
	Model string

	// Temperature is passed through; zero selects the client default.
	Temperature float64
}

// CompletionResponse represents a completion response in the domain layer.
type CompletionResponse struct {
	Reply string
}

// ChatService provides chat completion functionality.
type ChatService interface {
	// Complete processes a completion request and returns a response.
	Complete(ctx context.Context, req CompletionRequest) (CompletionResponse, error)
}

// chatService implements ChatService.
type chatService struct {
	client CompletionClient
	calls  storage.CallStore
	model  string
	logger *slog.Logger
}

// NewChatService creates a new ChatService. calls may be nil, in which
// case no audit records are written.
func NewChatService(client CompletionClient, calls storage.CallStore, defaultModel string) ChatService {
	return &chatService{
		client: client,
		calls:  calls,
		model:  defaultModel,
		logger: slog.Default(),
	}
}

// Complete processes a completion request.
func (s *chatService) Complete(ctx context.Context, req CompletionRequest) (CompletionResponse, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if len(req.Messages) == 0 {
		logger.WarnContext(ctx, "empty message list in completion request")
		return CompletionResponse{}, &ValidationError{
			Field:   "messages",
			Message: "cannot be empty",
		}
	}
	for i, m := range req.Messages {
		if m == "" {
			logger.WarnContext(ctx, "empty message in completion request", "index", i)
			return CompletionResponse{}, &ValidationError{
				Field:   "messages",
				Message: "message content cannot be empty",
			}
		}
	}

	messages := make([]openrouter.ChatMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		messages = append(messages, openrouter.ChatMessage{Content: m})
	}
	params := openrouter.Params{
		Model:       req.Model,
		Temperature: req.Temperature,
	}

	start := time.Now()
	reply, err := s.client.GetCompletion(ctx, messages, params)
	duration := time.Since(start)

	model := req.Model
	if model == "" {
		model = s.model
	}

	if err != nil {
		if openrouter.IsNoResult(err) {
			s.record(ctx, model, storage.CallStatusNoResult, duration, err)
			logger.ErrorContext(ctx, "upstream returned no result", "error", err)
			return CompletionResponse{}, WrapError(ErrNoResult, err.Error())
		}
		s.record(ctx, model, storage.CallStatusTransport, duration, err)
		logger.ErrorContext(ctx, "completion failed after retries", "error", err)
		return CompletionResponse{}, WrapError(ErrExternalService, err.Error())
	}

	s.record(ctx, model, storage.CallStatusSuccess, duration, nil)
	logger.InfoContext(ctx, "completion request processed successfully",
		"messages", len(req.Messages), "reply_length", len(reply), "duration", duration)
	return CompletionResponse{Reply: reply}, nil
}

// record writes one audit row. Failures are logged, never propagated: the
// caller already has its reply or error.
func (s *chatService) record(ctx context.Context, model, status string, duration time.Duration, callErr error) {
	if s.calls == nil {
		return
	}

	rec := &storage.CallRecord{
		Model:    model,
		Status:   status,
		Duration: duration,
	}
	if callErr != nil {
		rec.Error = callErr.Error()
	}

	if err := s.calls.Insert(ctx, rec); err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "failed to record call", "error", err)
	}
}
