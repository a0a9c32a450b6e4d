package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/MrPingoo/iut-jdr-api-2026/internal/debug"
	"github.com/MrPingoo/iut-jdr-api-2026/internal/game"
	"github.com/MrPingoo/iut-jdr-api-2026/internal/observability"
)

// Context keys for operation tracing
type contextKey string

const (
	operationTypeKey contextKey = "operation_type"
	gameContextKey   contextKey = "game_context"
)

// DefaultModel is used when neither the environment nor the request
// names one.
const DefaultModel = "gpt-5-2025-08-07"

// Service is the chat gateway: an ordered message list and an output
// budget go in, trimmed narrative text comes out. It holds no game
// state; every call is independent.
type Service struct {
	client *openai.Client
	model  string
	debug  *debug.Logger
	tracer trace.Tracer
}

func NewService(apiKey, model string, dbg *debug.Logger) *Service {
	if model == "" {
		model = DefaultModel
	}
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &Service{
		client: &client,
		model:  model,
		debug:  dbg,
		tracer: otel.Tracer("llm-service"),
	}
}

// CompletionRequest carries one gateway call. Messages must be
// non-empty and already ordered; the gateway never reorders them.
type CompletionRequest struct {
	Messages  []game.Message
	MaxTokens int64
	Model     string // optional override
}

// Complete performs a single chat completion. It fails when no
// messages are supplied, when a message carries an unknown role, when
// the upstream call errors, or when the response carries no content.
// The returned text is trimmed of leading and trailing whitespace.
func (s *Service) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	if len(req.Messages) == 0 {
		return "", fmt.Errorf("no messages provided")
	}

	operationType := "chat_completion"
	if opType := getOperationType(ctx); opType != "" {
		operationType = opType
	}

	sc := trace.SpanFromContext(ctx).SpanContext()
	if s.debug != nil {
		if !sc.IsValid() {
			s.debug.Printf("NO PARENT: ctx missing active span for %s", operationType)
		} else {
			s.debug.Printf("Complete trace=%s parentSpan=%s op=%s", sc.TraceID(), sc.SpanID(), operationType)
		}
	}

	model := s.model
	if strings.TrimSpace(req.Model) != "" {
		model = req.Model
	}

	params, err := toParams(req.Messages)
	if err != nil {
		return "", err
	}

	ctx, span := s.tracer.Start(ctx, operationType,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			observability.CreateGenAIAttributes("openai", model, 0, 0, 0.0)...,
		),
	)
	defer span.End()

	attrs := []attribute.KeyValue{
		attribute.Int64("gen_ai.request.max_tokens", req.MaxTokens),
		attribute.String("langfuse.observation.type", "generation"),
		attribute.String("game.operation_type", operationType),
	}

	if sessionID := getSessionID(ctx); sessionID != "" {
		attrs = append(attrs,
			attribute.String("langfuse.session.id", sessionID),
			attribute.String("session.id", sessionID),
		)
	}

	if gameCtx := getGameContext(ctx); gameCtx != nil {
		for k, v := range gameCtx {
			switch val := v.(type) {
			case string:
				attrs = append(attrs, attribute.String("game."+k, val))
			case int:
				attrs = append(attrs, attribute.Int("game."+k, val))
			case []string:
				attrs = append(attrs, attribute.StringSlice("game."+k, val))
			}
		}
	}

	span.SetAttributes(attrs...)

	span.AddEvent("gen_ai.user.message", trace.WithAttributes(
		attribute.String("gen_ai.system", "openai"),
		attribute.String("content", lastUserContent(req.Messages)),
	))

	startTime := time.Now()

	openaiReq := openai.ChatCompletionNewParams{
		Model:               shared.ChatModel(model),
		Messages:            params,
		MaxCompletionTokens: openai.Int(req.MaxTokens),
	}

	if s.debug != nil {
		s.debug.Printf("LLM Completion - MaxTokens: %d, messages: %d", req.MaxTokens, len(req.Messages))
	}

	resp, err := s.client.Chat.Completions.New(ctx, openaiReq)
	if err != nil {
		span.SetAttributes(attribute.String("error.type", "llm_completion_error"))
		span.RecordError(err)
		if s.debug != nil {
			s.debug.Printf("LLM Completion error: %v", err)
		}
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	content, err := textFromCompletion(resp)
	if err != nil {
		span.RecordError(err)
		return "", err
	}
	duration := time.Since(startTime)

	span.SetAttributes(
		attribute.Int64("gen_ai.usage.input_tokens", resp.Usage.PromptTokens),
		attribute.Int64("gen_ai.usage.output_tokens", resp.Usage.CompletionTokens),
		attribute.Int64("response_time_ms", duration.Milliseconds()),
		attribute.String("langfuse.observation.input", renderForTrace(req.Messages)),
		attribute.String("langfuse.observation.output", content),
		attribute.String("langfuse.observation.output_format", "text"),
		attribute.String("langfuse.observation.model.name", model),
	)

	span.AddEvent("gen_ai.choice", trace.WithAttributes(
		attribute.String("gen_ai.system", "openai"),
		attribute.String("content", content),
	))

	if s.debug != nil {
		s.debug.Printf("LLM Completion response length: %d, tokens: %d/%d, duration: %v",
			len(content), resp.Usage.PromptTokens, resp.Usage.CompletionTokens, duration)
	}

	return content, nil
}

func toParams(messages []game.Message) ([]openai.ChatCompletionMessageParamUnion, error) {
	params := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case game.RoleSystem:
			params = append(params, openai.SystemMessage(m.Content))
		case game.RoleUser:
			params = append(params, openai.UserMessage(m.Content))
		case game.RoleAssistant:
			params = append(params, openai.AssistantMessage(m.Content))
		default:
			return nil, fmt.Errorf("unknown message role %q", m.Role)
		}
	}
	return params, nil
}

func textFromCompletion(resp *openai.ChatCompletion) (string, error) {
	if resp == nil || len(resp.Choices) == 0 {
		return "", fmt.Errorf("no completion choices returned")
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("completion returned no content")
	}
	return content, nil
}

func lastUserContent(messages []game.Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == game.RoleUser {
			return messages[i].Content
		}
	}
	return ""
}

func renderForTrace(messages []game.Message) string {
	var b strings.Builder
	for i, m := range messages {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(m.Role)
		b.WriteString(": ")
		b.WriteString(m.Content)
	}
	return b.String()
}

func WithOperationType(ctx context.Context, opType string) context.Context {
	return context.WithValue(ctx, operationTypeKey, opType)
}

func WithGameContext(ctx context.Context, gameCtx map[string]interface{}) context.Context {
	// Merge with any existing game context instead of overwriting
	if existing, ok := ctx.Value(gameContextKey).(map[string]interface{}); ok && existing != nil {
		merged := make(map[string]interface{}, len(existing)+len(gameCtx))
		for k, v := range existing {
			merged[k] = v
		}
		for k, v := range gameCtx {
			merged[k] = v
		}
		return context.WithValue(ctx, gameContextKey, merged)
	}
	return context.WithValue(ctx, gameContextKey, gameCtx)
}

func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, observability.GetSessionIDKey(), sessionID)
}

func getOperationType(ctx context.Context) string {
	if opType, ok := ctx.Value(operationTypeKey).(string); ok {
		return opType
	}
	return ""
}

func getGameContext(ctx context.Context) map[string]interface{} {
	if gameCtx, ok := ctx.Value(gameContextKey).(map[string]interface{}); ok {
		return gameCtx
	}
	return nil
}

func getSessionID(ctx context.Context) string {
	return observability.GetSessionIDFromContext(ctx)
}

// CopyGameContextToSpan attaches game context and session id attributes to an existing span.
func CopyGameContextToSpan(ctx context.Context, span trace.Span) {
	if span == nil {
		return
	}
	if sid := getSessionID(ctx); sid != "" {
		span.SetAttributes(
			attribute.String("langfuse.session.id", sid),
			attribute.String("session.id", sid),
		)
	}
	if gameCtx := getGameContext(ctx); gameCtx != nil {
		for k, v := range gameCtx {
			switch val := v.(type) {
			case string:
				span.SetAttributes(attribute.String("game."+k, val))
			case int:
				span.SetAttributes(attribute.Int("game."+k, val))
			case []string:
				span.SetAttributes(attribute.StringSlice("game."+k, val))
			}
		}
	}
}
