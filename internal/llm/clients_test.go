package llm

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/FACorreiaa/roammate-api/internal/types"
)

func TestGeminiClient_MissingAPIKeyFailsAtCallTime(t *testing.T) {
	client := NewGeminiClient("", slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := client.GenerateContent(context.Background(), "gemini-3-pro-preview", genai.Text("hi"), nil)
	require.ErrorIs(t, err, types.ErrMissingAPIKey)

	_, err = client.SendChatMessage(context.Background(), "gemini-3-flash-preview", nil, nil, "hi")
	require.ErrorIs(t, err, types.ErrMissingAPIKey)
}
