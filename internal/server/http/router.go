package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Route регистрирует обработчики и возвращает роутер
func (s *Server) Route() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Compress(5))
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(FilterIP(s.TrustedSubnet))

	router.Get("/ping", s.Ping())
	router.Route("/keys", func(r chi.Router) {
		r.With(middleware.AllowContentType("application/json")).Post("/", s.CreateKeyPair())
		r.Get("/{id}", s.GetPublicKey())
		r.Delete("/{id}", s.DeleteKeyPair())
	})

	router.Group(func(r chi.Router) {
		r.Use(middleware.AllowContentType("application/json"))
		r.Post("/encrypt", s.Encrypt())
		r.Post("/decrypt", s.Decrypt())
		r.Post("/send", s.SendSigned())
		r.Post("/receive", s.ReceiveVerified())
	})
	return router
}
