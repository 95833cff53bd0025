package routes

import (
	"net/http"
	"time"

	"reliefsupply/handlers"
	"reliefsupply/metrics"
	"reliefsupply/models"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

const APIPrefix = "/api/v1"

type Options struct {
	CORSAllowedOrigin string
	// RequestTimeout bounds the store calls of each request; zero disables it.
	RequestTimeout time.Duration
	Log            logrus.FieldLogger
}

// Handlers bundles everything the router dispatches to.
type Handlers struct {
	User      *handlers.UserHandler
	Provider  *handlers.ProviderHandler
	Resources []*handlers.ResourceHandler
}

// CORS middleware
func withCORS(origin string, next http.Handler) http.Handler {
	if origin == "" {
		origin = "*"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, HEAD, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")

		// Handle preflight request
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func NewRouter(h Handlers, opts Options) http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(handlers.NotFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(handlers.MethodNotAllowed)

	r.Use(handlers.RecoverWrapper(opts.Log))
	r.Use(requestLogger(opts.Log))
	r.Use(metrics.Middleware)

	r.HandleFunc("/", handlers.Health).Methods(http.MethodGet)
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix(APIPrefix).Subrouter()
	api.Use(withTimeout(opts.RequestTimeout))

	// User routes
	api.HandleFunc("/register", h.User.Register).Methods(http.MethodPost)
	api.HandleFunc("/login", h.User.Login).Methods(http.MethodPost)

	// Resource routes
	for _, res := range h.Resources {
		api.HandleFunc("/create-"+res.Kind.Name, res.Create).Methods(http.MethodPost)
		api.HandleFunc(res.Kind.ListPath, res.List).Methods(http.MethodGet)
		if res.Kind.Name == models.GratitudeKind.Name {
			api.HandleFunc(res.Kind.ListPath+"/supply/{id}", res.ListBy(models.FieldSupplyID)).Methods(http.MethodGet)
		}
		api.HandleFunc(res.Kind.ItemPath+"/{id}", res.Get).Methods(http.MethodGet)
		api.HandleFunc(res.Kind.ItemPath+"/{id}", res.Update).Methods(http.MethodPatch)
		api.HandleFunc(res.Kind.ItemPath+"/{id}", res.Delete).Methods(http.MethodDelete)
	}

	api.HandleFunc("/providers", h.Provider.Rank).Methods(http.MethodGet)

	return withCORS(opts.CORSAllowedOrigin, r)
}
