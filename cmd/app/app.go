package app

import (
	"log"
	"miniblog/internal/config"
	"miniblog/internal/database"
	"miniblog/internal/repository"
	"miniblog/internal/service"
)

func App(cfg *config.Config) (*database.DB, *repository.Repository, *service.Service) {
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Could not connect to database: %v", err)
	}

	repo := repository.NewRepository(db.DB)

	services := service.NewService(db, repo, cfg)

	return db, repo, services
}
