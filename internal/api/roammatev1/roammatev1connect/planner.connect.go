// Package roammatev1connect wires roammate.v1.PlannerService to Connect
// handlers and clients.
package roammatev1connect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	v1 "github.com/FACorreiaa/roammate-api/internal/api/roammatev1"
	"github.com/FACorreiaa/roammate-api/pkg/codec"
)

// PlannerServiceName is the fully-qualified name of the PlannerService service.
const PlannerServiceName = "roammate.v1.PlannerService"

const (
	PlannerServiceGetSessionProcedure        = "/roammate.v1.PlannerService/GetSession"
	PlannerServiceSubmitPreferencesProcedure = "/roammate.v1.PlannerService/SubmitPreferences"
	PlannerServiceSelectViewProcedure        = "/roammate.v1.PlannerService/SelectView"
	PlannerServiceShowItineraryProcedure     = "/roammate.v1.PlannerService/ShowItinerary"
	PlannerServiceResetItineraryProcedure    = "/roammate.v1.PlannerService/ResetItinerary"
	PlannerServiceSearchPlacesProcedure      = "/roammate.v1.PlannerService/SearchPlaces"
	PlannerServiceOpenChatProcedure          = "/roammate.v1.PlannerService/OpenChat"
	PlannerServiceCloseChatProcedure         = "/roammate.v1.PlannerService/CloseChat"
	PlannerServiceSendChatMessageProcedure   = "/roammate.v1.PlannerService/SendChatMessage"
)

// PlannerServiceHandler is implemented by the server side of the API.
type PlannerServiceHandler interface {
	GetSession(context.Context, *connect.Request[v1.GetSessionRequest]) (*connect.Response[v1.SessionResponse], error)
	SubmitPreferences(context.Context, *connect.Request[v1.SubmitPreferencesRequest]) (*connect.Response[v1.SessionResponse], error)
	SelectView(context.Context, *connect.Request[v1.SelectViewRequest]) (*connect.Response[v1.SessionResponse], error)
	ShowItinerary(context.Context, *connect.Request[v1.ShowItineraryRequest]) (*connect.Response[v1.SessionResponse], error)
	ResetItinerary(context.Context, *connect.Request[v1.ResetItineraryRequest]) (*connect.Response[v1.SessionResponse], error)
	SearchPlaces(context.Context, *connect.Request[v1.SearchPlacesRequest]) (*connect.Response[v1.SessionResponse], error)
	OpenChat(context.Context, *connect.Request[v1.OpenChatRequest]) (*connect.Response[v1.SessionResponse], error)
	CloseChat(context.Context, *connect.Request[v1.CloseChatRequest]) (*connect.Response[v1.SessionResponse], error)
	SendChatMessage(context.Context, *connect.Request[v1.SendChatMessageRequest]) (*connect.Response[v1.SessionResponse], error)
}

// NewPlannerServiceHandler builds an HTTP handler for every PlannerService
// procedure and returns the path prefix to mount it on.
func NewPlannerServiceHandler(svc PlannerServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(codec.JSON{})}, opts...)

	routes := map[string]http.Handler{
		PlannerServiceGetSessionProcedure:        connect.NewUnaryHandler(PlannerServiceGetSessionProcedure, svc.GetSession, opts...),
		PlannerServiceSubmitPreferencesProcedure: connect.NewUnaryHandler(PlannerServiceSubmitPreferencesProcedure, svc.SubmitPreferences, opts...),
		PlannerServiceSelectViewProcedure:        connect.NewUnaryHandler(PlannerServiceSelectViewProcedure, svc.SelectView, opts...),
		PlannerServiceShowItineraryProcedure:     connect.NewUnaryHandler(PlannerServiceShowItineraryProcedure, svc.ShowItinerary, opts...),
		PlannerServiceResetItineraryProcedure:    connect.NewUnaryHandler(PlannerServiceResetItineraryProcedure, svc.ResetItinerary, opts...),
		PlannerServiceSearchPlacesProcedure:      connect.NewUnaryHandler(PlannerServiceSearchPlacesProcedure, svc.SearchPlaces, opts...),
		PlannerServiceOpenChatProcedure:          connect.NewUnaryHandler(PlannerServiceOpenChatProcedure, svc.OpenChat, opts...),
		PlannerServiceCloseChatProcedure:         connect.NewUnaryHandler(PlannerServiceCloseChatProcedure, svc.CloseChat, opts...),
		PlannerServiceSendChatMessageProcedure:   connect.NewUnaryHandler(PlannerServiceSendChatMessageProcedure, svc.SendChatMessage, opts...),
	}

	return "/" + PlannerServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h, ok := routes[r.URL.Path]; ok {
			h.ServeHTTP(w, r)
			return
		}
		http.NotFound(w, r)
	})
}

// PlannerServiceClient calls the PlannerService over Connect with JSON payloads.
type PlannerServiceClient struct {
	getSession        *connect.Client[v1.GetSessionRequest, v1.SessionResponse]
	submitPreferences *connect.Client[v1.SubmitPreferencesRequest, v1.SessionResponse]
	selectView        *connect.Client[v1.SelectViewRequest, v1.SessionResponse]
	showItinerary     *connect.Client[v1.ShowItineraryRequest, v1.SessionResponse]
	resetItinerary    *connect.Client[v1.ResetItineraryRequest, v1.SessionResponse]
	searchPlaces      *connect.Client[v1.SearchPlacesRequest, v1.SessionResponse]
	openChat          *connect.Client[v1.OpenChatRequest, v1.SessionResponse]
	closeChat         *connect.Client[v1.CloseChatRequest, v1.SessionResponse]
	sendChatMessage   *connect.Client[v1.SendChatMessageRequest, v1.SessionResponse]
}

func NewPlannerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *PlannerServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(codec.JSON{})}, opts...)
	return &PlannerServiceClient{
		getSession:        connect.NewClient[v1.GetSessionRequest, v1.SessionResponse](httpClient, baseURL+PlannerServiceGetSessionProcedure, opts...),
		submitPreferences: connect.NewClient[v1.SubmitPreferencesRequest, v1.SessionResponse](httpClient, baseURL+PlannerServiceSubmitPreferencesProcedure, opts...),
		selectView:        connect.NewClient[v1.SelectViewRequest, v1.SessionResponse](httpClient, baseURL+PlannerServiceSelectViewProcedure, opts...),
		showItinerary:     connect.NewClient[v1.ShowItineraryRequest, v1.SessionResponse](httpClient, baseURL+PlannerServiceShowItineraryProcedure, opts...),
		resetItinerary:    connect.NewClient[v1.ResetItineraryRequest, v1.SessionResponse](httpClient, baseURL+PlannerServiceResetItineraryProcedure, opts...),
		searchPlaces:      connect.NewClient[v1.SearchPlacesRequest, v1.SessionResponse](httpClient, baseURL+PlannerServiceSearchPlacesProcedure, opts...),
		openChat:          connect.NewClient[v1.OpenChatRequest, v1.SessionResponse](httpClient, baseURL+PlannerServiceOpenChatProcedure, opts...),
		closeChat:         connect.NewClient[v1.CloseChatRequest, v1.SessionResponse](httpClient, baseURL+PlannerServiceCloseChatProcedure, opts...),
		sendChatMessage:   connect.NewClient[v1.SendChatMessageRequest, v1.SessionResponse](httpClient, baseURL+PlannerServiceSendChatMessageProcedure, opts...),
	}
}

func (c *PlannerServiceClient) GetSession(ctx context.Context, req *connect.Request[v1.GetSessionRequest]) (*connect.Response[v1.SessionResponse], error) {
	return c.getSession.CallUnary(ctx, req)
}

func (c *PlannerServiceClient) SubmitPreferences(ctx context.Context, req *connect.Request[v1.SubmitPreferencesRequest]) (*connect.Response[v1.SessionResponse], error) {
	return c.submitPreferences.CallUnary(ctx, req)
}

func (c *PlannerServiceClient) SelectView(ctx context.Context, req *connect.Request[v1.SelectViewRequest]) (*connect.Response[v1.SessionResponse], error) {
	return c.selectView.CallUnary(ctx, req)
}

func (c *PlannerServiceClient) ShowItinerary(ctx context.Context, req *connect.Request[v1.ShowItineraryRequest]) (*connect.Response[v1.SessionResponse], error) {
	return c.showItinerary.CallUnary(ctx, req)
}

func (c *PlannerServiceClient) ResetItinerary(ctx context.Context, req *connect.Request[v1.ResetItineraryRequest]) (*connect.Response[v1.SessionResponse], error) {
	return c.resetItinerary.CallUnary(ctx, req)
}

func (c *PlannerServiceClient) SearchPlaces(ctx context.Context, req *connect.Request[v1.SearchPlacesRequest]) (*connect.Response[v1.SessionResponse], error) {
	return c.searchPlaces.CallUnary(ctx, req)
}

func (c *PlannerServiceClient) OpenChat(ctx context.Context, req *connect.Request[v1.OpenChatRequest]) (*connect.Response[v1.SessionResponse], error) {
	return c.openChat.CallUnary(ctx, req)
}

func (c *PlannerServiceClient) CloseChat(ctx context.Context, req *connect.Request[v1.CloseChatRequest]) (*connect.Response[v1.SessionResponse], error) {
	return c.closeChat.CallUnary(ctx, req)
}

func (c *PlannerServiceClient) SendChatMessage(ctx context.Context, req *connect.Request[v1.SendChatMessageRequest]) (*connect.Response[v1.SessionResponse], error) {
	return c.sendChatMessage.CallUnary(ctx, req)
}

var errUnimplemented = errors.New("procedure is not implemented")

// UnimplementedPlannerServiceHandler returns CodeUnimplemented from every method.
type UnimplementedPlannerServiceHandler struct{}

func (UnimplementedPlannerServiceHandler) GetSession(context.Context, *connect.Request[v1.GetSessionRequest]) (*connect.Response[v1.SessionResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented)
}

func (UnimplementedPlannerServiceHandler) SubmitPreferences(context.Context, *connect.Request[v1.SubmitPreferencesRequest]) (*connect.Response[v1.SessionResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented)
}

func (UnimplementedPlannerServiceHandler) SelectView(context.Context, *connect.Request[v1.SelectViewRequest]) (*connect.Response[v1.SessionResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented)
}

func (UnimplementedPlannerServiceHandler) ShowItinerary(context.Context, *connect.Request[v1.ShowItineraryRequest]) (*connect.Response[v1.SessionResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented)
}

func (UnimplementedPlannerServiceHandler) ResetItinerary(context.Context, *connect.Request[v1.ResetItineraryRequest]) (*connect.Response[v1.SessionResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented)
}

func (UnimplementedPlannerServiceHandler) SearchPlaces(context.Context, *connect.Request[v1.SearchPlacesRequest]) (*connect.Response[v1.SessionResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented)
}

func (UnimplementedPlannerServiceHandler) OpenChat(context.Context, *connect.Request[v1.OpenChatRequest]) (*connect.Response[v1.SessionResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented)
}

func (UnimplementedPlannerServiceHandler) CloseChat(context.Context, *connect.Request[v1.CloseChatRequest]) (*connect.Response[v1.SessionResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented)
}

func (UnimplementedPlannerServiceHandler) SendChatMessage(context.Context, *connect.Request[v1.SendChatMessageRequest]) (*connect.Response[v1.SessionResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented)
}
