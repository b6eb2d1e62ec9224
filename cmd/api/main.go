package main

import (
	"fmt"
	"log"
	"miniblog/cmd/app"
	"miniblog/internal/config"
	handlers "miniblog/internal/handler"
	"miniblog/internal/middleware"
	"net/http"

	"github.com/gorilla/mux"
)

func main() {
	cfg := config.LoadConfig()

	if cfg.JWTSecretKey == "" {
		log.Fatal("JWT_SECRET_KEY is not set")
	}

	db, repo, services := app.App(cfg)
	defer db.CloseDB()

	handler := handlers.NewHandlers(db, repo, services, cfg)

	router := mux.NewRouter()

	router.HandleFunc("/health", handler.HealthHandler).Methods(http.MethodGet)

	router.HandleFunc("/api/auth/register", handler.Register).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/login", handler.Login).Methods(http.MethodPost)

	router.HandleFunc("/api/me", handler.GetCurrentUser).Methods(http.MethodGet)

	router.HandleFunc("/api/posts", handler.GetPosts).Methods(http.MethodGet)
	router.HandleFunc("/api/posts", handler.CreatePost).Methods(http.MethodPost)
	router.HandleFunc("/api/posts/{slug}", handler.GetPost).Methods(http.MethodGet)
	router.HandleFunc("/api/posts/{id:[0-9]+}", handler.UpdatePost).Methods(http.MethodPut)
	router.HandleFunc("/api/posts/{id:[0-9]+}", handler.DeletePost).Methods(http.MethodDelete)

	router.HandleFunc("/api/tags/{id:[0-9]+}/posts", handler.GetTagPosts).Methods(http.MethodGet)

	handlerChain := middleware.Chain(
		router,
		middleware.LoggingMiddleware,
		middleware.CORSMiddleware,
		middleware.AuthMiddleware(services.Auth),
	)

	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	log.Printf("Listening on %s (database %s)", addr, cfg.DB.DbNAME)

	if err := http.ListenAndServe(addr, handlerChain); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
