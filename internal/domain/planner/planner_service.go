package planner

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/genai"

	"github.com/FACorreiaa/roammate-api/internal/llm"
	"github.com/FACorreiaa/roammate-api/internal/types"
	"github.com/FACorreiaa/roammate-api/pkg/observability"
)

const (
	defaultTemperature = 0.7
	maxPlaces          = 3

	opItinerary = "itinerary"
	opPlaces    = "places"
	opChat      = "chat"
)

// Ensure implementation satisfies the interface
var _ Service = (*ServiceImpl)(nil)

// Service turns typed planner requests into constrained model calls.
type Service interface {
	// GenerateItinerary propagates every failure to the caller.
	GenerateItinerary(ctx context.Context, destination string, duration int, budget types.Budget, interests []string) (*types.Itinerary, error)
	// GetPlaceRecommendations never fails; errors degrade to an empty list.
	GetPlaceRecommendations(ctx context.Context, location string, category types.PlaceCategory) []types.PlaceRecommendation
	// ChatWithRoamMate sends message after the given history and returns the reply text.
	ChatWithRoamMate(ctx context.Context, message string, history []types.ChatMessage) (string, error)
}

// Models names the model used for each task: reasoning-heavy itinerary and
// search tasks run on a "pro" model, chat on a "flash" model.
type Models struct {
	Itinerary string
	Places    string
	Chat      string
}

type ServiceImpl struct {
	client      llm.Client
	models      Models
	temperature float32
	logger      *slog.Logger
}

func NewServiceImpl(client llm.Client, models Models, temperature float32, logger *slog.Logger) *ServiceImpl {
	if temperature <= 0 {
		temperature = defaultTemperature
	}
	return &ServiceImpl{
		client:      client,
		models:      models,
		temperature: temperature,
		logger:      logger,
	}
}

func (s *ServiceImpl) GenerateItinerary(ctx context.Context, destination string, duration int, budget types.Budget, interests []string) (*types.Itinerary, error) {
	ctx, span := otel.Tracer("PlannerService").Start(ctx, "GenerateItinerary", trace.WithAttributes(
		attribute.String("destination", destination),
		attribute.Int("duration", duration),
		attribute.String("budget", string(budget)),
		attribute.String("model", s.models.Itinerary),
	))
	defer span.End()

	prefs, err := types.UserPreferences{
		Destination: destination,
		Duration:    duration,
		Budget:      budget,
		Interests:   interests,
	}.Normalize()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid preferences")
		return nil, err
	}

	prompt := getItineraryPrompt(prefs.Destination, prefs.Duration, prefs.Budget, prefs.Interests)
	span.SetAttributes(attribute.Int("prompt.length", len(prompt)))

	config := &genai.GenerateContentConfig{
		Temperature:       genai.Ptr(s.temperature),
		ResponseMIMEType:  jsonMIMEType,
		ResponseSchema:    ItinerarySchema(),
		SystemInstruction: genai.NewContentFromText(itinerarySystemInstruction, genai.RoleUser),
	}

	start := time.Now()
	resp, err := s.client.GenerateContent(ctx, s.models.Itinerary, genai.Text(prompt), config)
	latency := time.Since(start)
	span.SetAttributes(attribute.Int64("generation.duration_ms", latency.Milliseconds()))
	if err != nil {
		observability.ObserveGeneration(opItinerary, observability.OutcomeError, latency)
		span.RecordError(err)
		span.SetStatus(codes.Error, "AI generation failed")
		s.logger.ErrorContext(ctx, "Failed to generate itinerary",
			slog.String("destination", prefs.Destination), slog.Any("error", err))
		return nil, fmt.Errorf("failed to generate itinerary: %w", err)
	}
	logUsage(ctx, s.logger, opItinerary, resp)

	var itinerary types.Itinerary
	if err := decodeResponse(responseText(resp), &itinerary); err != nil {
		observability.ObserveGeneration(opItinerary, observability.OutcomeError, latency)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to parse itinerary JSON")
		s.logger.ErrorContext(ctx, "Failed to decode itinerary", slog.Any("error", err))
		return nil, err
	}

	if err := ValidateItinerary(&itinerary, prefs.Duration); err != nil {
		observability.ObserveGeneration(opItinerary, observability.OutcomeInvalid, latency)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Itinerary failed schema validation")
		s.logger.WarnContext(ctx, "Itinerary failed schema validation", slog.Any("error", err))
		return nil, err
	}

	observability.ObserveGeneration(opItinerary, observability.OutcomeSuccess, latency)
	span.SetAttributes(attribute.Int("days.count", len(itinerary.Days)))
	span.SetStatus(codes.Ok, "Itinerary generated successfully")
	s.logger.InfoContext(ctx, "Itinerary generated",
		slog.String("destination", itinerary.Destination),
		slog.Int("days", len(itinerary.Days)),
		slog.Duration("latency", latency))

	return &itinerary, nil
}

func (s *ServiceImpl) GetPlaceRecommendations(ctx context.Context, location string, category types.PlaceCategory) []types.PlaceRecommendation {
	ctx, span := otel.Tracer("PlannerService").Start(ctx, "GetPlaceRecommendations", trace.WithAttributes(
		attribute.String("location", location),
		attribute.String("category", string(category)),
		attribute.String("model", s.models.Places),
	))
	defer span.End()

	places := []types.PlaceRecommendation{}

	location = strings.TrimSpace(location)
	if location == "" {
		span.SetStatus(codes.Ok, "Blank location, nothing to search")
		return places
	}

	config := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(s.temperature),
		Tools:            []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
		ResponseMIMEType: jsonMIMEType,
		ResponseSchema:   PlacesSchema(),
	}

	start := time.Now()
	resp, err := s.client.GenerateContent(ctx, s.models.Places, genai.Text(getPlacesPrompt(location, category)), config)
	latency := time.Since(start)
	if err != nil {
		observability.ObserveGeneration(opPlaces, observability.OutcomeDegraded, latency)
		span.RecordError(err)
		span.SetStatus(codes.Error, "AI generation failed")
		s.logger.ErrorContext(ctx, "Error fetching recommendations",
			slog.String("location", location), slog.Any("error", err))
		return places
	}
	logUsage(ctx, s.logger, opPlaces, resp)
	if n := groundingSources(resp); n > 0 {
		span.SetAttributes(attribute.Int("grounding.sources", n))
	}

	var decoded []types.PlaceRecommendation
	if err := decodeResponse(responseText(resp), &decoded); err != nil {
		observability.ObserveGeneration(opPlaces, observability.OutcomeDegraded, latency)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to parse recommendations JSON")
		s.logger.ErrorContext(ctx, "Failed to decode recommendations", slog.Any("error", err))
		return places
	}

	for _, p := range decoded {
		if err := ValidatePlace(p); err != nil {
			s.logger.WarnContext(ctx, "Dropping invalid recommendation",
				slog.String("name", p.Name), slog.Any("error", err))
			continue
		}
		places = append(places, p)
		if len(places) == maxPlaces {
			break
		}
	}

	outcome := observability.OutcomeSuccess
	if len(places) < len(decoded) && len(places) < maxPlaces {
		outcome = observability.OutcomeInvalid
	}
	observability.ObserveGeneration(opPlaces, outcome, latency)
	span.SetAttributes(attribute.Int("places.count", len(places)))
	span.SetStatus(codes.Ok, "Recommendations generated")
	s.logger.InfoContext(ctx, "Recommendations generated",
		slog.String("location", location),
		slog.String("category", string(category)),
		slog.Int("count", len(places)))

	return places
}

func (s *ServiceImpl) ChatWithRoamMate(ctx context.Context, message string, history []types.ChatMessage) (string, error) {
	ctx, span := otel.Tracer("PlannerService").Start(ctx, "ChatWithRoamMate", trace.WithAttributes(
		attribute.Int("history.length", len(history)),
		attribute.String("model", s.models.Chat),
	))
	defer span.End()

	if strings.TrimSpace(message) == "" {
		err := fmt.Errorf("%w: message is required", types.ErrInvalidInput)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Empty message")
		return "", err
	}

	config := &genai.GenerateContentConfig{
		Temperature:       genai.Ptr(s.temperature),
		SystemInstruction: genai.NewContentFromText(chatSystemInstruction, genai.RoleUser),
	}

	start := time.Now()
	resp, err := s.client.SendChatMessage(ctx, s.models.Chat, config, toHistory(history), message)
	latency := time.Since(start)
	if err != nil {
		observability.ObserveGeneration(opChat, observability.OutcomeError, latency)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Chat message failed")
		s.logger.ErrorContext(ctx, "Chat message failed", slog.Any("error", err))
		return "", fmt.Errorf("failed to send chat message: %w", err)
	}
	logUsage(ctx, s.logger, opChat, resp)

	reply := responseText(resp)
	if reply == "" {
		observability.ObserveGeneration(opChat, observability.OutcomeError, latency)
		span.RecordError(types.ErrEmptyResponse)
		span.SetStatus(codes.Error, "Empty response from AI")
		return "", types.ErrEmptyResponse
	}

	observability.ObserveGeneration(opChat, observability.OutcomeSuccess, latency)
	span.SetAttributes(attribute.Int("response.length", len(reply)))
	span.SetStatus(codes.Ok, "Chat reply received")
	return reply, nil
}

func logUsage(ctx context.Context, logger *slog.Logger, operation string, resp *genai.GenerateContentResponse) {
	if resp == nil || resp.UsageMetadata == nil {
		return
	}
	logger.DebugContext(ctx, "Model token usage",
		slog.String("operation", operation),
		slog.Int("prompt_tokens", int(resp.UsageMetadata.PromptTokenCount)),
		slog.Int("total_tokens", int(resp.UsageMetadata.TotalTokenCount)))
}

func groundingSources(resp *genai.GenerateContentResponse) int {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return 0
	}
	if gm := resp.Candidates[0].GroundingMetadata; gm != nil {
		return len(gm.GroundingChunks)
	}
	return 0
}
