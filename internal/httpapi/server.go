package httpapi

import (
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/nikolayk812/storefront/internal/httpclient"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/nikolayk812/storefront/internal/service"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"net/http"
	"time"
)

type Server struct {
	carts   *service.CartStore
	catalog port.CatalogService
	profile port.ProfileService
	userID  int64
	log     logrus.FieldLogger
}

func NewServer(carts *service.CartStore, catalog port.CatalogService, profile port.ProfileService, userID int64, log logrus.FieldLogger) *Server {
	return &Server{
		carts:   carts,
		catalog: catalog,
		profile: profile,
		userID:  userID,
		log:     log.WithField("component", "httpapi"),
	}
}

func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(s.requestLogger)

	r.HandleFunc("/health", s.health).Methods(http.MethodGet)

	r.HandleFunc("/products", s.listProducts).Methods(http.MethodGet)
	r.HandleFunc("/products/{id:[0-9]+}", s.getProduct).Methods(http.MethodGet)
	r.HandleFunc("/search", s.searchProducts).Methods(http.MethodGet)

	r.HandleFunc("/cart", s.getCart).Methods(http.MethodGet)
	r.HandleFunc("/cart/items", s.addItem).Methods(http.MethodPost)
	r.HandleFunc("/cart/items/{id:[0-9]+}", s.setQuantity).Methods(http.MethodPut)
	r.HandleFunc("/cart/items/{id:[0-9]+}", s.removeItem).Methods(http.MethodDelete)
	r.HandleFunc("/cart/items/{id:[0-9]+}/increase", s.increaseItem).Methods(http.MethodPost)
	r.HandleFunc("/cart/items/{id:[0-9]+}/decrease", s.decreaseItem).Methods(http.MethodPost)
	r.HandleFunc("/cart/checkout", s.checkout).Methods(http.MethodPost)

	r.HandleFunc("/profile", s.getProfile).Methods(http.MethodGet)
	r.HandleFunc("/profile", s.updateProfile).Methods(http.MethodPut)

	return otelhttp.NewHandler(r, "storefront")
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(httpclient.RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(httpclient.RequestIDHeader, requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(rec, r)

		s.log.WithFields(logrus.Fields{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     rec.status,
			"duration":   time.Since(start),
			"request_id": requestID,
		}).Info("request")
	})
}
