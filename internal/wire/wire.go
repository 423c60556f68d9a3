package wire

import (
	"net/http"

	"appointment-booking/internal/adaptor"
	"appointment-booking/internal/data/repository"
	"appointment-booking/internal/usecase"
	"appointment-booking/pkg/lock"
	"appointment-booking/pkg/middleware"
	"appointment-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// App holds the assembled HTTP surface
type App struct {
	Router *chi.Mux
}

// Wiring initializes services, handlers and routes
func Wiring(
	repo *repository.Repository,
	config *utils.Config,
	logger *zap.Logger,
	locker lock.SlotLocker,
) *App {
	service := usecase.NewService(
		repo,
		config,
		logger,
		usecase.SystemClock{},
		locker,
		usecase.NewLogSink(logger),
	)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, repo, config, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	// Tenant-scoped API routes. Every /api route resolves the tenant from the
	// X-Tenant-ID header before any handler runs.
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Tenant(repo.Tenant, config.Booking.DefaultTimezone, logger))

		wireAvailability(r, handler.Availability)
		wireBooking(r, handler.Booking)
		wireAppointment(r, handler.Appointment)
		wireSchedule(r, handler.Schedule)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Prometheus scrape endpoint
	r.Handle("/metrics", promhttp.Handler())

	return r
}
