package handlers

import (
	"miniblog/internal/models"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

type PaginationResponse struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

type PostsGetResponse struct {
	Posts      []*models.Post     `json:"posts"`
	Pagination PaginationResponse `json:"pagination"`
}

type savePostRequest struct {
	models.PostAttributes
	Tags []int64 `json:"tags"`
}

type updatePostRequest struct {
	models.PostPatch
	Tags []int64 `json:"tags"`
}

// GetPosts serves the paginated listing, newest first.
func (h *Handlers) GetPosts(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 100 {
		limit = h.Cfg.DefaultPageSize
	}

	posts, total, err := h.PostService.ListLatest(r.Context(), limit, page)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	response := PostsGetResponse{
		Posts: posts,
		Pagination: PaginationResponse{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: (total + limit - 1) / limit,
		},
	}

	WriteJSON(w, response, http.StatusOK)
}

// GetPost serves a single post looked up by its slug.
func (h *Handlers) GetPost(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	post, err := h.PostService.GetPostBySlug(r.Context(), slug)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	WriteJSON(w, post, http.StatusOK)
}

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	user, err := h.currentUser(r.Context())
	if err != nil {
		WriteError(w, err.Error(), http.StatusUnauthorized)
		return
	}

	var req savePostRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, "malformed request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req.PostAttributes); err != nil {
		WriteError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	post, err := h.PostService.CreatePost(r.Context(), user, req.PostAttributes, req.Tags)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	WriteJSON(w, post, http.StatusCreated)
}

func (h *Handlers) UpdatePost(w http.ResponseWriter, r *http.Request) {
	user, err := h.currentUser(r.Context())
	if err != nil {
		WriteError(w, err.Error(), http.StatusUnauthorized)
		return
	}

	postID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		WriteError(w, "malformed post id", http.StatusBadRequest)
		return
	}

	var req updatePostRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, "malformed request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req.PostPatch); err != nil {
		WriteError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	post, err := h.PostService.UpdatePost(r.Context(), user, postID, req.PostPatch, req.Tags)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	WriteJSON(w, post, http.StatusOK)
}

func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	user, err := h.currentUser(r.Context())
	if err != nil {
		WriteError(w, err.Error(), http.StatusUnauthorized)
		return
	}

	postID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		WriteError(w, "malformed post id", http.StatusBadRequest)
		return
	}

	if err := h.PostService.DeletePost(r.Context(), user, postID); err != nil {
		WriteDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
