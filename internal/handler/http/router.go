package http

import (
	"log/slog"
	"os"

	"github.com/crazybass81/DOT-V0.1-sub002/internal/handler/http/middleware"
	"github.com/crazybass81/DOT-V0.1-sub002/internal/pkg/jwt"
	"github.com/crazybass81/DOT-V0.1-sub002/internal/pkg/ratelimit"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	JWTService jwt.Service,
	statusLimiter *ratelimit.Limiter,
	attendanceHandler *AttendanceHandler,
	businessHandler *BusinessHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "dot-attendance"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))

	r.Route("/api/v1", func(r chi.Router) {

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/check-in", attendanceHandler.CheckIn)
				r.Post("/check-out", attendanceHandler.CheckOut)
				r.Get("/my", attendanceHandler.GetMyAttendance)

				// Read endpoints get hit by polling clients, keep them behind
				// the per-user limiter.
				r.Group(func(r chi.Router) {
					r.Use(middleware.RateLimit(statusLimiter, "attendance:status"))
					r.Get("/status", attendanceHandler.GetStatus)
				})
				r.Group(func(r chi.Router) {
					r.Use(middleware.RateLimit(statusLimiter, "attendance:eligibility"))
					r.Get("/eligibility", attendanceHandler.ValidateEligibility)
				})

				r.Route("/{attendanceID}", func(r chi.Router) {
					r.Post("/cancel", attendanceHandler.CancelCheckIn)
					r.Post("/breaks", attendanceHandler.StartBreak)
					r.Put("/breaks/{breakID}/end", attendanceHandler.EndBreak)
				})
			})

			r.Route("/businesses/{businessID}", func(r chi.Router) {
				r.Get("/summary", businessHandler.GetSummary)
				r.Post("/qr-token", businessHandler.IssueQRToken)
			})
		})
	})
	return r
}
