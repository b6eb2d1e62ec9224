package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"miniblog/internal/config"
	"miniblog/internal/database"
	"miniblog/internal/models"
	"miniblog/internal/repository"
	"miniblog/internal/service"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// ContextKey types the values the auth middleware stores on the request
// context.
type ContextKey string

const UserIDKey ContextKey = "userID"

type Handlers struct {
	PostService service.PostService
	TagService  service.TagService
	AuthService service.AuthService
	UserRepo    repository.UserRepository
	DB          *database.DB
	Cfg         *config.Config
	Validate    *validator.Validate
}

func NewHandlers(db *database.DB, repo *repository.Repository, service *service.Service, config *config.Config) *Handlers {
	return &Handlers{
		PostService: service.Post,
		TagService:  service.Tag,
		AuthService: service.Auth,
		UserRepo:    repo.User,
		DB:          db,
		Cfg:         config,
		Validate:    validator.New(),
	}
}

// currentUser resolves the authenticated identity placed on the context by
// the auth middleware. Identity is passed on to the services explicitly;
// no service reads the request context itself.
func (h *Handlers) currentUser(ctx context.Context) (*models.User, error) {
	userID, ok := ctx.Value(UserIDKey).(int64)
	if !ok {
		return nil, fmt.Errorf("authentication required")
	}

	return h.UserRepo.GetUserByID(ctx, userID)
}

// decodeJSON rejects unknown fields so the attribute set stays exactly the
// declared one.
func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func (h *Handlers) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.DB.HealthCheck(); err != nil {
		WriteError(w, "database unreachable", http.StatusServiceUnavailable)
		return
	}

	WriteJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}

func (h *Handlers) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.currentUser(r.Context())
	if err != nil {
		WriteError(w, err.Error(), http.StatusUnauthorized)
		return
	}

	WriteJSON(w, user, http.StatusOK)
}
