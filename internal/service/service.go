package service

import (
	"miniblog/internal/config"
	"miniblog/internal/database"
	"miniblog/internal/repository"
)

type Service struct {
	Post PostService
	Tag  TagService
	Auth AuthService
}

func NewService(db *database.DB, rep *repository.Repository, cfg *config.Config) *Service {
	return &Service{
		Post: NewPostService(db, rep.Post, rep.Tag),
		Tag:  NewTagService(db, rep.Tag),
		Auth: NewAuthService(rep.User, cfg),
	}
}
