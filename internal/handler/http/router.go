package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yesmovie/backend/internal/cart"
	"github.com/yesmovie/backend/internal/catalog"
	"github.com/yesmovie/backend/internal/media"
	"github.com/yesmovie/backend/internal/payment"
	"github.com/yesmovie/backend/pkg/health"
	"github.com/yesmovie/backend/pkg/middleware"
)

// Services bundles the application services exposed over HTTP.
type Services struct {
	Movies    *catalog.MovieService
	Actors    *catalog.ActorService
	Producers *catalog.ProducerService
	Cinemas   *catalog.CinemaService
	Cart      *cart.Manager
	Payments  *payment.Orchestrator
	Media     *media.Service
}

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(svcs Services, healthHandler *health.Handler, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("storefront"))
	r.Use(middleware.Tracing("storefront"))
	r.Use(middleware.RequestLogger(logger))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	// Catalog API endpoints
	movieHandler := NewMovieHandler(svcs.Movies, logger)

	r.Route("/api/v1/movies", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Get("/", movieHandler.ListMovies)
		r.Get("/{id}", movieHandler.GetMovie)
		r.Post("/", movieHandler.CreateMovie)
		r.Put("/{id}", movieHandler.UpdateMovie)
		r.Delete("/{id}", movieHandler.DeleteMovie)
	})

	actorHandler := NewActorHandler(svcs.Actors, logger)

	r.Route("/api/v1/actors", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Get("/", actorHandler.ListActors)
		r.Get("/{id}", actorHandler.GetActor)
		r.Post("/", actorHandler.CreateActor)
		r.Put("/{id}", actorHandler.UpdateActor)
		r.Delete("/{id}", actorHandler.DeleteActor)
	})

	producerHandler := NewProducerHandler(svcs.Producers, logger)

	r.Route("/api/v1/producers", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Get("/", producerHandler.ListProducers)
		r.Get("/{id}", producerHandler.GetProducer)
		r.Post("/", producerHandler.CreateProducer)
		r.Put("/{id}", producerHandler.UpdateProducer)
		r.Delete("/{id}", producerHandler.DeleteProducer)
	})

	cinemaHandler := NewCinemaHandler(svcs.Cinemas, logger)

	r.Route("/api/v1/cinemas", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Get("/", cinemaHandler.ListCinemas)
		r.Get("/{id}", cinemaHandler.GetCinema)
		r.Post("/", cinemaHandler.CreateCinema)
		r.Put("/{id}", cinemaHandler.UpdateCinema)
		r.Delete("/{id}", cinemaHandler.DeleteCinema)
	})

	// Cart API endpoints (authenticated)
	cartHandler := NewCartHandler(svcs.Cart, logger)

	r.Route("/api/v1/cart", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(RequireIdentity)

		r.Get("/", cartHandler.GetCart)
		r.Post("/items", cartHandler.AddItem)
		r.Delete("/items/{movieId}", cartHandler.RemoveItem)
	})

	// Payment API endpoints (authenticated)
	paymentHandler := NewPaymentHandler(svcs.Payments, logger)

	r.Route("/api/v1/payments", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(RequireIdentity)

		r.Post("/", paymentHandler.CreatePayment)
		r.Get("/verify", paymentHandler.VerifyPayment)
	})

	// Media API endpoints. Upload is multipart so ContentTypeJSON is not
	// applied here.
	mediaHandler := NewMediaHandler(svcs.Media, logger)

	r.Route("/api/v1/media", func(r chi.Router) {
		r.Post("/", mediaHandler.UploadFile)
		r.Get("/", mediaHandler.ListFiles)
		r.Get("/{id}/url", mediaHandler.GetDownloadURL)
		r.Delete("/{id}", mediaHandler.DeleteFile)
	})

	return r
}
