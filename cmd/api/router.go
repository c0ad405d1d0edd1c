package api

import (
	"net/http"

	"connectrpc.com/connect"
	connectcors "connectrpc.com/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.opentelemetry.io/otel"

	"github.com/FACorreiaa/roammate-api/internal/api/roammatev1/roammatev1connect"
	"github.com/FACorreiaa/roammate-api/pkg/interceptors"
	"github.com/FACorreiaa/roammate-api/pkg/observability"
)

const requestIDHeader = "X-Request-ID"

// SetupRouter configures all routes and returns the HTTP service
func SetupRouter(deps *Dependencies) http.Handler {
	mux := http.NewServeMux()

	tracer := otel.GetTracerProvider().Tracer("roammate/api")

	// Setup interceptor chain
	interceptorChain := connect.WithInterceptors(
		interceptors.NewRequestIDInterceptor(requestIDHeader),
		interceptors.NewTracingInterceptor(tracer),
		interceptors.NewRecoveryInterceptor(deps.Logger),
		interceptors.NewLoggingInterceptor(deps.Logger),
		observability.NewMetricsInterceptor(),
	)

	withSession := interceptors.NewSessionMiddleware(deps.CookieStore, deps.Config.Session.CookieName, deps.Logger)

	// Register Connect RPC routes
	registerConnectRoutes(mux, deps, withSession, interceptorChain)

	// Register health, metrics and export routes
	registerUtilityRoutes(mux, deps, withSession)

	// Enable CORS for the browser client; credentials carry the session cookie.
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   deps.Config.Server.CORSOrigins,
		AllowedMethods:   connectcors.AllowedMethods(),
		AllowedHeaders:   append(connectcors.AllowedHeaders(), requestIDHeader),
		ExposedHeaders:   append(connectcors.ExposedHeaders(), requestIDHeader),
		AllowCredentials: true,
	})

	return corsHandler.Handler(mux)
}

// registerConnectRoutes registers all Connect RPC services
func registerConnectRoutes(mux *http.ServeMux, deps *Dependencies, withSession func(http.Handler) http.Handler, opts connect.HandlerOption) {
	plannerPath, plannerHandler := roammatev1connect.NewPlannerServiceHandler(
		deps.PlannerHandler,
		opts,
	)
	mux.Handle(plannerPath, withSession(plannerHandler))
	deps.Logger.Info("registered Connect RPC service", "path", plannerPath)

	deps.Logger.Info("Connect RPC routes configured")
}

// registerUtilityRoutes registers health check, metrics, and other utility routes
func registerUtilityRoutes(mux *http.ServeMux, deps *Dependencies, withSession func(http.Handler) http.Handler) {
	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if deps.Redis != nil {
			if err := deps.Redis.Ping(r.Context()).Err(); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("redis unhealthy"))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	deps.Logger.Info("registered health check", "path", "/health")

	// Readiness check endpoint
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})
	deps.Logger.Info("registered readiness check", "path", "/ready")

	// Metrics endpoint (Prometheus)
	if deps.Config.Observability.MetricsEnabled {
		mux.Handle("/metrics", promhttp.Handler())
		deps.Logger.Info("registered metrics endpoint", "path", "/metrics")
	}

	mux.Handle("/itinerary.pdf", withSession(deps.ExportHandler))
	deps.Logger.Info("registered itinerary export", "path", "/itinerary.pdf")
}
