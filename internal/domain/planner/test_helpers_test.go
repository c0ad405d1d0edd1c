package planner

import (
	"context"
	"io"
	"log/slog"

	"google.golang.org/genai"
)

// TestLLMClient lets each test swap in the behaviour it needs.
type TestLLMClient struct {
	GenerateContentFn func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	SendChatMessageFn func(ctx context.Context, model string, config *genai.GenerateContentConfig, history []*genai.Content, message string) (*genai.GenerateContentResponse, error)

	generateCalls int
	chatCalls     int
}

func (t *TestLLMClient) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	t.generateCalls++
	if t.GenerateContentFn != nil {
		return t.GenerateContentFn(ctx, model, contents, config)
	}
	return nil, nil
}

func (t *TestLLMClient) SendChatMessage(ctx context.Context, model string, config *genai.GenerateContentConfig, history []*genai.Content, message string) (*genai.GenerateContentResponse, error) {
	t.chatCalls++
	if t.SendChatMessageFn != nil {
		return t.SendChatMessageFn(ctx, model, config, history, message)
	}
	return nil, nil
}

// textResponse builds a single-candidate response carrying text.
func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{
				Content: &genai.Content{
					Role:  string(genai.RoleModel),
					Parts: []*genai.Part{{Text: text}},
				},
			},
		},
	}
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

var testModels = Models{
	Itinerary: "gemini-3-pro-preview",
	Places:    "gemini-3-pro-preview",
	Chat:      "gemini-3-flash-preview",
}

func newTestService(client *TestLLMClient) *ServiceImpl {
	return NewServiceImpl(client, testModels, 0, newTestLogger())
}

const kyotoItineraryJSON = `{
  "destination": "Kyoto",
  "summary": "Temples, tea and street food.",
  "days": [
    {"day": 1, "theme": "Eastern Kyoto", "activities": [
      {"time": "09:00", "activity": "Kiyomizu-dera", "description": "Hillside temple", "location": "Higashiyama", "type": "sightseeing"},
      {"time": "12:30", "activity": "Lunch", "description": "Yudofu", "location": "Nanzen-ji", "type": "food", "estimatedCost": "¥3000"}
    ]},
    {"day": 2, "theme": "Arashiyama", "activities": [
      {"time": "08:00", "activity": "Train to Saga-Arashiyama", "description": "JR Sagano line", "location": "Kyoto Station", "type": "transport"}
    ]},
    {"day": 3, "theme": "Nishiki and Gion", "activities": [
      {"time": "18:00", "activity": "Onsen", "description": "Evening soak", "location": "Kurama", "type": "relaxation"}
    ]}
  ]
}`

const parisPlacesJSON = `[
  {"name": "Le Comptoir", "type": "Bistro", "rating": 4.6, "sentimentScore": 88, "sentimentSummary": "Loved for its classics.", "priceLevel": "Moderate", "description": "Saint-Germain bistro."},
  {"name": "Septime", "type": "Restaurant", "rating": 4.8, "sentimentScore": 93, "sentimentSummary": "Inventive tasting menu.", "priceLevel": "Expensive", "description": "Modern French.", "bookingLink": "https://www.septime-charonne.fr"},
  {"name": "Chez Janou", "type": "Bistro", "rating": 4.4, "sentimentScore": 81, "sentimentSummary": "Famous chocolate mousse.", "priceLevel": "Moderate", "description": "Provencal bistro in the Marais."}
]`
