package httpapi

import (
	"net/http"

	"restodash/dashboard-svc/internal/logger"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

func NewRouter(handler *Handler, origins []string, uploadDir string, log logrus.FieldLogger) http.Handler {
	r := mux.NewRouter()
	handler.RegisterRoutes(r)
	if uploadDir != "" {
		r.PathPrefix("/uploads/").Handler(http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadDir)))).Methods("GET")
	}
	handler.AllowOrigins(origins)

	c := cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "Accept-Language", logger.RequestIDHeader},
		AllowCredentials: true,
	})
	return logger.Middleware(log)(c.Handler(r))
}
