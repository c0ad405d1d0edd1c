package llm

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"google.golang.org/genai"

	"github.com/FACorreiaa/roammate-api/internal/types"
)

// Client abstracts the Gemini capabilities needed by the planner.
type Client interface {
	// GenerateContent runs a single-turn generation against model.
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	// SendChatMessage opens a chat seeded with history and sends message as the next user turn.
	SendChatMessage(ctx context.Context, model string, config *genai.GenerateContentConfig, history []*genai.Content, message string) (*genai.GenerateContentResponse, error)
}

// GeminiClient adapts the genai SDK to the Client interface. The underlying
// SDK client is created on first use so that a missing API key surfaces as a
// call-time error instead of a startup failure.
type GeminiClient struct {
	apiKey string
	logger *slog.Logger

	mu     sync.Mutex
	client *genai.Client
}

// NewGeminiClient creates a Client backed by the Gemini API.
func NewGeminiClient(apiKey string, logger *slog.Logger) *GeminiClient {
	return &GeminiClient{apiKey: apiKey, logger: logger}
}

func (g *GeminiClient) sdk(ctx context.Context) (*genai.Client, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.client != nil {
		return g.client, nil
	}
	if g.apiKey == "" {
		return nil, types.ErrMissingAPIKey
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  g.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	g.logger.InfoContext(ctx, "gemini client initialized")
	g.client = client
	return client, nil
}

func (g *GeminiClient) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	client, err := g.sdk(ctx)
	if err != nil {
		return nil, err
	}
	return client.Models.GenerateContent(ctx, model, contents, config)
}

func (g *GeminiClient) SendChatMessage(ctx context.Context, model string, config *genai.GenerateContentConfig, history []*genai.Content, message string) (*genai.GenerateContentResponse, error) {
	client, err := g.sdk(ctx)
	if err != nil {
		return nil, err
	}
	chat, err := client.Chats.Create(ctx, model, config, history)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat session: %w", err)
	}
	return chat.SendMessage(ctx, genai.Part{Text: message})
}

var _ Client = (*GeminiClient)(nil)
