package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/cors"

	"github.com/dukerupert/hudson/internal/blueprint"
	"github.com/dukerupert/hudson/internal/config"
	"github.com/dukerupert/hudson/internal/events"
	"github.com/dukerupert/hudson/internal/handler"
	"github.com/dukerupert/hudson/internal/middleware"
	"github.com/dukerupert/hudson/internal/model"
	"github.com/dukerupert/hudson/internal/service"
	"github.com/dukerupert/hudson/internal/store"
	ws "github.com/dukerupert/hudson/internal/websocket"
)

type Server struct {
	db            *sql.DB
	hub           *ws.Hub
	wsOrigins     []string
	corsOrigins   []string
	propertyH     *handler.PropertyHandler
	subscriptionH *handler.SubscriptionHandler
	inspectionH   *handler.InspectionHandler
	rateLimiter   *middleware.RateLimiter
	logger        *slog.Logger
}

// New wires stores, services and handlers. Change events go to the
// websocket hub and to every publisher in extra.
func New(db *sql.DB, cfg *config.Config, logger *slog.Logger, extra ...events.Publisher) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))
	publisher := events.NewMulti(logger.With("component", "events"), append([]events.Publisher{hub}, extra...)...)

	propertyStore := store.NewPropertyStore(db)
	subscriptionStore := store.NewSubscriptionStore(db)
	inspectionStore := store.NewInspectionStore(db)

	opts := service.Options{Logger: logger, Publisher: publisher}
	properties := service.NewPropertyService(propertyStore, cfg.ReminderHorizonDays, opts)
	subs := service.NewSubscriptionService(subscriptionStore, propertyStore, blueprint.Complement, cfg.MonthlyPrice, opts)
	inspections := service.NewInspectionService(inspectionStore, subscriptionStore, propertyStore, opts)

	return &Server{
		db:            db,
		hub:           hub,
		wsOrigins:     cfg.WSOrigins,
		corsOrigins:   cfg.CORSOrigins,
		propertyH:     handler.NewPropertyHandler(properties, logger.With("component", "property_handler")),
		subscriptionH: handler.NewSubscriptionHandler(subs, logger.With("component", "subscription_handler")),
		inspectionH:   handler.NewInspectionHandler(inspections, logger.With("component", "inspection_handler")),
		rateLimiter:   middleware.NewRateLimiter(cfg.WriteRateLimit, time.Minute),
		logger:        logger,
	}
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

func (s *Server) Router() http.Handler {
	outerMux := http.NewServeMux()

	// Public routes
	outerMux.HandleFunc("GET /health", s.healthHandler)
	outerMux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub, s.wsOrigins, s.logger.With("component", "websocket")))

	// API routes require an identity asserted by the proxy in front.
	apiMux := http.NewServeMux()
	s.registerAPIRoutes(apiMux)
	limited := middleware.LimitWrites(s.rateLimiter, middleware.ActorKey)(apiMux)
	outerMux.Handle("/api/", middleware.Identity(limited))

	var h http.Handler = outerMux
	if len(s.corsOrigins) > 0 {
		// Preflight requests carry no identity and are answered here.
		h = cors.Handler(cors.Options{
			AllowedOrigins: s.corsOrigins,
			AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", middleware.HeaderUserID, middleware.HeaderUserName, middleware.HeaderUserRole, "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID", "Retry-After"},
			MaxAge:         300,
		})(h)
	}
	return middleware.RequestLogger(s.logger.With("component", "http"))(h)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	status, code := "ok", http.StatusOK
	if err := s.db.PingContext(r.Context()); err != nil {
		s.logger.Error("health check failed", "error", err)
		status, code = "unavailable", http.StatusServiceUnavailable
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"status": status})
}

func (s *Server) registerAPIRoutes(mux *http.ServeMux) {
	// Properties
	mux.HandleFunc("POST /api/properties", s.propertyH.Create)
	mux.HandleFunc("GET /api/properties", s.propertyH.List)
	mux.HandleFunc("GET /api/properties/{id}", s.propertyH.Get)
	mux.HandleFunc("POST /api/properties/{id}/primary", s.propertyH.SetPrimary)
	mux.HandleFunc("POST /api/properties/{id}/insights", s.propertyH.AddInsight)

	// Reminders
	mux.HandleFunc("GET /api/properties/{id}/reminders", s.propertyH.Board)
	mux.HandleFunc("POST /api/properties/{id}/reminders", s.propertyH.AddReminder)
	mux.HandleFunc("POST /api/properties/{id}/reminders/{reminder_id}/complete", s.propertyH.CompleteReminder)
	mux.HandleFunc("GET /api/properties/{id}/reminders/upcoming", s.propertyH.Upcoming)
	mux.HandleFunc("GET /api/properties/{id}/reminders/overdue", s.propertyH.Overdue)

	// Subscription and visits
	mux.HandleFunc("GET /api/properties/{id}/subscription", s.subscriptionH.Get)
	mux.HandleFunc("POST /api/properties/{id}/subscription", s.subscriptionH.Subscribe)
	mux.HandleFunc("DELETE /api/properties/{id}/subscription", s.subscriptionH.Cancel)
	mux.HandleFunc("POST /api/properties/{id}/subscription/visits/{visit_id}/complete", s.subscriptionH.CompleteVisit)
	mux.HandleFunc("POST /api/properties/{id}/subscription/visits/{visit_id}/tasks/{task_id}/toggle", s.subscriptionH.ToggleTask)

	// Blueprint
	mux.HandleFunc("GET /api/properties/{id}/blueprint/history", s.subscriptionH.History)
	mux.HandleFunc("POST /api/properties/{id}/blueprint/items", s.subscriptionH.AddPlanItem)
	mux.HandleFunc("PATCH /api/properties/{id}/blueprint/items/{item_id}", s.subscriptionH.UpdatePlanItem)
	mux.HandleFunc("DELETE /api/properties/{id}/blueprint/items/{item_id}", s.subscriptionH.RemovePlanItem)
	mux.HandleFunc("PUT /api/properties/{id}/blueprint/plan", s.subscriptionH.ReplacePlan)
	mux.HandleFunc("GET /api/properties/{id}/blueprint/notifications", s.subscriptionH.Notifications)
	mux.HandleFunc("POST /api/properties/{id}/blueprint/notifications/{notification_id}/read", s.subscriptionH.MarkNotificationRead)

	// Inspections. Only technicians and admins record them.
	staff := middleware.RequireRole(model.RoleTech, model.RoleAdmin)
	mux.HandleFunc("GET /api/properties/{id}/inspections", s.inspectionH.ListForProperty)
	mux.HandleFunc("GET /api/inspections/{id}", s.inspectionH.Get)
	mux.Handle("POST /api/inspections", staff(http.HandlerFunc(s.inspectionH.Create)))
	mux.Handle("POST /api/inspections/{id}/assign", staff(http.HandlerFunc(s.inspectionH.Assign)))
	mux.Handle("PUT /api/inspections/{id}/rooms/{room_id}", staff(http.HandlerFunc(s.inspectionH.UpsertRoom)))
	mux.Handle("PUT /api/inspections/{id}/scores", staff(http.HandlerFunc(s.inspectionH.SetScores)))
	mux.Handle("POST /api/inspections/{id}/complete", staff(http.HandlerFunc(s.inspectionH.Complete)))
}
