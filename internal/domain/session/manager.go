package session

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

	"github.com/FACorreiaa/roammate-api/internal/domain/planner"
	"github.com/FACorreiaa/roammate-api/internal/types"
)

// GenerationTimeout bounds one model call. A pending slot older than
// GenerationTimeout plus abandonGrace has no live request behind it.
const (
	GenerationTimeout = 3 * time.Minute
	abandonGrace      = 30 * time.Second
)

// Ensure implementation satisfies the interface
var _ Service = (*Manager)(nil)

// Service is the view state machine as seen by the transport layer.
type Service interface {
	Snapshot(ctx context.Context, id string) (Snapshot, error)
	Submit(ctx context.Context, id string, prefs types.UserPreferences) (Snapshot, error)
	SelectView(ctx context.Context, id string, view types.View) (Snapshot, error)
	ShowItinerary(ctx context.Context, id string) (Snapshot, error)
	Reset(ctx context.Context, id string) (Snapshot, error)
	SearchPlaces(ctx context.Context, id string, location string, category types.PlaceCategory) (Snapshot, error)
	OpenChat(ctx context.Context, id string) (Snapshot, error)
	CloseChat(ctx context.Context, id string) (Snapshot, error)
	SendChat(ctx context.Context, id string, text string) (Snapshot, error)
}

// Manager owns every session transition. Each transition is one atomic
// Store.Update; model calls run between transitions so loading flags stay
// observable while a request is in flight.
type Manager struct {
	store   Store
	planner planner.Service
	logger  *slog.Logger
	now     func() time.Time
}

func NewManager(store Store, planner planner.Service, logger *slog.Logger) *Manager {
	return &Manager{
		store:   store,
		planner: planner,
		logger:  logger,
		now:     time.Now,
	}
}

// update applies fn to the session and persists the result. The session is
// saved even when fn fails so that failure transitions stick. Slots left
// pending by a request that never finished are released first.
func (m *Manager) update(ctx context.Context, id string, fn func(s *Session) error) (Snapshot, error) {
	if strings.TrimSpace(id) == "" {
		return Snapshot{}, fmt.Errorf("%w: session id is required", types.ErrInvalidInput)
	}

	s, err := m.store.Update(ctx, id,
		func() *Session { return newSession(id, m.now()) },
		func(s *Session) error {
			now := m.now()
			if expired := s.expireAbandoned(now.Add(-(GenerationTimeout + abandonGrace))); len(expired) > 0 {
				m.logger.WarnContext(ctx, "Releasing abandoned pending requests",
					slog.String("session_id", id), slog.Any("slots", expired))
			}
			fnErr := fn(s)
			s.UpdatedAt = now
			return fnErr
		})
	if s == nil {
		return Snapshot{}, err
	}
	return s.snapshot(), err
}

// releaseOnPanic runs release in a final transition when a model call
// panics, then re-panics for the recovery interceptor. It must be deferred.
func (m *Manager) releaseOnPanic(ctx context.Context, id string, release func(s *Session)) {
	r := recover()
	if r == nil {
		return
	}
	m.logger.ErrorContext(ctx, "Model call panicked, releasing pending slot",
		slog.String("session_id", id), slog.Any("panic", r))
	if _, err := m.update(context.WithoutCancel(ctx), id, func(s *Session) error {
		release(s)
		return nil
	}); err != nil {
		m.logger.ErrorContext(ctx, "Failed to release pending slot",
			slog.String("session_id", id), slog.Any("error", err))
	}
	panic(r)
}

func (m *Manager) Snapshot(ctx context.Context, id string) (Snapshot, error) {
	return m.update(ctx, id, func(*Session) error { return nil })
}

func (m *Manager) Submit(ctx context.Context, id string, prefs types.UserPreferences) (Snapshot, error) {
	ctx, span := otel.Tracer("SessionManager").Start(ctx, "Submit", trace.WithAttributes(
		attribute.String("destination", prefs.Destination),
		attribute.Int("duration", prefs.Duration),
	))
	defer span.End()

	prefs, err := prefs.Normalize()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid preferences")
		return Snapshot{}, err
	}

	var token uint64
	snap, err := m.update(ctx, id, func(s *Session) error {
		if s.View != types.ViewHome {
			return fmt.Errorf("%w: cannot submit preferences from %s", types.ErrInvalidTransition, s.View)
		}
		token = s.issueToken()
		s.PendingItinerary = token
		s.PendingItinerarySince = m.now()
		s.Notice = ""
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Submit rejected")
		return snap, err
	}

	defer m.releaseOnPanic(ctx, id, func(s *Session) {
		if s.PendingItinerary == token {
			s.PendingItinerary = 0
			s.PendingItinerarySince = time.Time{}
			s.View = types.ViewHome
			s.Notice = itineraryFailureNotice
		}
	})

	genCtx, cancel := context.WithTimeout(ctx, GenerationTimeout)
	defer cancel()
	itinerary, genErr := m.planner.GenerateItinerary(genCtx, prefs.Destination, prefs.Duration, prefs.Budget, prefs.Interests)

	snap, err = m.update(context.WithoutCancel(ctx), id, func(s *Session) error {
		if s.PendingItinerary != token {
			m.logger.InfoContext(ctx, "Discarding superseded itinerary result",
				slog.String("session_id", id), slog.Uint64("token", token))
			return types.ErrSuperseded
		}
		s.PendingItinerary = 0
		s.PendingItinerarySince = time.Time{}
		if genErr != nil {
			s.View = types.ViewHome
			s.Notice = itineraryFailureNotice
			return genErr
		}
		s.Itinerary = itinerary
		s.View = types.ViewItinerary
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Itinerary not committed")
		return snap, err
	}

	span.SetStatus(codes.Ok, "Itinerary committed")
	return snap, nil
}

func (m *Manager) SelectView(ctx context.Context, id string, view types.View) (Snapshot, error) {
	switch view {
	case types.ViewHome, types.ViewExplore:
		return m.update(ctx, id, func(s *Session) error {
			s.View = view
			return nil
		})
	case types.ViewItinerary:
		return m.ShowItinerary(ctx, id)
	default:
		return Snapshot{}, fmt.Errorf("%w: unknown view %q", types.ErrInvalidInput, view)
	}
}

// ShowItinerary returns to the held itinerary without regenerating it.
func (m *Manager) ShowItinerary(ctx context.Context, id string) (Snapshot, error) {
	return m.update(ctx, id, func(s *Session) error {
		if s.Itinerary == nil {
			return types.ErrNoItinerary
		}
		s.View = types.ViewItinerary
		return nil
	})
}

func (m *Manager) Reset(ctx context.Context, id string) (Snapshot, error) {
	return m.update(ctx, id, func(s *Session) error {
		if s.View != types.ViewItinerary {
			return fmt.Errorf("%w: cannot reset from %s", types.ErrInvalidTransition, s.View)
		}
		s.Itinerary = nil
		s.View = types.ViewHome
		return nil
	})
}

// SearchPlaces replaces the recommendation list. A blank location leaves the
// session untouched and never reaches the model.
func (m *Manager) SearchPlaces(ctx context.Context, id string, location string, category types.PlaceCategory) (Snapshot, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return m.Snapshot(ctx, id)
	}

	var token uint64
	if _, err := m.update(ctx, id, func(s *Session) error {
		token = s.issueToken()
		s.PendingPlaces = token
		s.PendingPlacesSince = m.now()
		return nil
	}); err != nil {
		return Snapshot{}, err
	}

	defer m.releaseOnPanic(ctx, id, func(s *Session) {
		if s.PendingPlaces == token {
			s.PendingPlaces = 0
			s.PendingPlacesSince = time.Time{}
		}
	})

	genCtx, cancel := context.WithTimeout(ctx, GenerationTimeout)
	defer cancel()
	places := m.planner.GetPlaceRecommendations(genCtx, location, category)

	return m.update(context.WithoutCancel(ctx), id, func(s *Session) error {
		if s.PendingPlaces != token {
			m.logger.InfoContext(ctx, "Discarding superseded place results",
				slog.String("session_id", id), slog.Uint64("token", token))
			return nil
		}
		s.PendingPlaces = 0
		s.PendingPlacesSince = time.Time{}
		s.Places = places
		s.PlacesLocation = location
		s.PlacesCategory = category
		return nil
	})
}

func (m *Manager) OpenChat(ctx context.Context, id string) (Snapshot, error) {
	return m.update(ctx, id, func(s *Session) error {
		s.ChatOpen = true
		s.seedChat(m.now())
		return nil
	})
}

// CloseChat hides the widget; the transcript survives for the session.
func (m *Manager) CloseChat(ctx context.Context, id string) (Snapshot, error) {
	return m.update(ctx, id, func(s *Session) error {
		s.ChatOpen = false
		return nil
	})
}

// SendChat appends the user message at once and exactly one model message
// once the reply (or the apology) is known.
func (m *Manager) SendChat(ctx context.Context, id string, text string) (Snapshot, error) {
	if strings.TrimSpace(text) == "" {
		return Snapshot{}, fmt.Errorf("%w: message is required", types.ErrInvalidInput)
	}

	var (
		token   uint64
		history []types.ChatMessage
	)
	snap, err := m.update(ctx, id, func(s *Session) error {
		if s.PendingChat != 0 {
			return types.ErrChatBusy
		}
		s.ChatOpen = true
		s.seedChat(m.now())
		history = append([]types.ChatMessage(nil), s.Chat...)
		s.Chat = append(s.Chat, types.ChatMessage{Role: types.RoleUser, Text: text, Timestamp: m.now()})
		token = s.issueToken()
		s.PendingChat = token
		s.PendingChatSince = m.now()
		return nil
	})
	if err != nil {
		return snap, err
	}

	defer m.releaseOnPanic(ctx, id, func(s *Session) {
		if s.PendingChat == token {
			s.PendingChat = 0
			s.PendingChatSince = time.Time{}
			s.Chat = append(s.Chat, types.ChatMessage{Role: types.RoleModel, Text: chatApology, Timestamp: m.now()})
		}
	})

	genCtx, cancel := context.WithTimeout(ctx, GenerationTimeout)
	defer cancel()
	reply, chatErr := m.planner.ChatWithRoamMate(genCtx, text, history)
	if chatErr != nil {
		m.logger.WarnContext(ctx, "Chat reply failed, answering with apology",
			slog.String("session_id", id), slog.Any("error", chatErr))
		reply = chatApology
	}

	return m.update(context.WithoutCancel(ctx), id, func(s *Session) error {
		if s.PendingChat != token {
			return types.ErrSuperseded
		}
		s.PendingChat = 0
		s.PendingChatSince = time.Time{}
		s.Chat = append(s.Chat, types.ChatMessage{Role: types.RoleModel, Text: reply, Timestamp: m.now()})
		return nil
	})
}
