package handler

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	v1 "github.com/FACorreiaa/roammate-api/internal/api/roammatev1"
	"github.com/FACorreiaa/roammate-api/internal/api/roammatev1/roammatev1connect"
	"github.com/FACorreiaa/roammate-api/internal/domain/session"
	"github.com/FACorreiaa/roammate-api/internal/domain/session/presenter"
	"github.com/FACorreiaa/roammate-api/internal/types"
	"github.com/FACorreiaa/roammate-api/pkg/interceptors"
)

var errNoSession = errors.New("session cookie is missing")

// Handler implements the PlannerService RPCs on top of the session state machine.
type Handler struct {
	roammatev1connect.UnimplementedPlannerServiceHandler
	svc    session.Service
	logger *slog.Logger
}

var _ roammatev1connect.PlannerServiceHandler = (*Handler)(nil)

// NewHandler wires a PlannerService handler.
func NewHandler(svc session.Service, logger *slog.Logger) *Handler {
	return &Handler{
		svc:    svc,
		logger: logger,
	}
}

func (h *Handler) GetSession(
	ctx context.Context,
	_ *connect.Request[v1.GetSessionRequest],
) (*connect.Response[v1.SessionResponse], error) {
	return h.run(ctx, h.svc.Snapshot)
}

// SubmitPreferences blocks until the itinerary is generated. On failure the
// caller should refresh with GetSession to pick up the notice.
func (h *Handler) SubmitPreferences(
	ctx context.Context,
	req *connect.Request[v1.SubmitPreferencesRequest],
) (*connect.Response[v1.SessionResponse], error) {
	budget, err := types.ParseBudget(req.Msg.GetBudget())
	if err != nil {
		return nil, toConnectError(err)
	}
	prefs := types.UserPreferences{
		Destination: req.Msg.GetDestination(),
		Duration:    int(req.Msg.GetDuration()),
		Budget:      budget,
		Interests:   req.Msg.GetInterests(),
	}

	return h.run(ctx, func(ctx context.Context, id string) (session.Snapshot, error) {
		return h.svc.Submit(ctx, id, prefs)
	})
}

func (h *Handler) SelectView(
	ctx context.Context,
	req *connect.Request[v1.SelectViewRequest],
) (*connect.Response[v1.SessionResponse], error) {
	view, err := types.ParseView(req.Msg.GetView())
	if err != nil {
		return nil, toConnectError(err)
	}
	return h.run(ctx, func(ctx context.Context, id string) (session.Snapshot, error) {
		return h.svc.SelectView(ctx, id, view)
	})
}

func (h *Handler) ShowItinerary(
	ctx context.Context,
	_ *connect.Request[v1.ShowItineraryRequest],
) (*connect.Response[v1.SessionResponse], error) {
	return h.run(ctx, h.svc.ShowItinerary)
}

func (h *Handler) ResetItinerary(
	ctx context.Context,
	_ *connect.Request[v1.ResetItineraryRequest],
) (*connect.Response[v1.SessionResponse], error) {
	return h.run(ctx, h.svc.Reset)
}

// SearchPlaces accepts free-text categories ("somewhere to eat") as well as
// the canonical hotel, restaurant and attraction.
func (h *Handler) SearchPlaces(
	ctx context.Context,
	req *connect.Request[v1.SearchPlacesRequest],
) (*connect.Response[v1.SessionResponse], error) {
	category := types.ParseCategory(req.Msg.GetCategory())
	return h.run(ctx, func(ctx context.Context, id string) (session.Snapshot, error) {
		return h.svc.SearchPlaces(ctx, id, req.Msg.GetLocation(), category)
	})
}

func (h *Handler) OpenChat(
	ctx context.Context,
	_ *connect.Request[v1.OpenChatRequest],
) (*connect.Response[v1.SessionResponse], error) {
	return h.run(ctx, h.svc.OpenChat)
}

func (h *Handler) CloseChat(
	ctx context.Context,
	_ *connect.Request[v1.CloseChatRequest],
) (*connect.Response[v1.SessionResponse], error) {
	return h.run(ctx, h.svc.CloseChat)
}

func (h *Handler) SendChatMessage(
	ctx context.Context,
	req *connect.Request[v1.SendChatMessageRequest],
) (*connect.Response[v1.SessionResponse], error) {
	return h.run(ctx, func(ctx context.Context, id string) (session.Snapshot, error) {
		return h.svc.SendChat(ctx, id, req.Msg.GetText())
	})
}

func (h *Handler) run(ctx context.Context, op func(context.Context, string) (session.Snapshot, error)) (*connect.Response[v1.SessionResponse], error) {
	id, ok := interceptors.SessionIDFromContext(ctx)
	if !ok || id == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, errNoSession)
	}

	snap, err := op(ctx, id)
	if err != nil {
		h.logger.WarnContext(ctx, "session operation failed",
			slog.String("session_id", id), slog.Any("error", err))
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&v1.SessionResponse{
		State: presenter.ToSessionState(snap),
	}), nil
}

func toConnectError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, context.Canceled):
		return connect.NewError(connect.CodeCanceled, err)
	case errors.Is(err, context.DeadlineExceeded):
		return connect.NewError(connect.CodeDeadlineExceeded, err)
	case errors.Is(err, types.ErrInvalidInput):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, types.ErrMissingAPIKey),
		errors.Is(err, types.ErrInvalidTransition),
		errors.Is(err, types.ErrNoItinerary),
		errors.Is(err, types.ErrChatBusy):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	case errors.Is(err, types.ErrSchemaViolation):
		return connect.NewError(connect.CodeDataLoss, err)
	case errors.Is(err, types.ErrSuperseded):
		return connect.NewError(connect.CodeAborted, err)
	default:
		// Empty and malformed responses as well as transport failures.
		return connect.NewError(connect.CodeUnavailable, err)
	}
}
