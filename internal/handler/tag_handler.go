package handlers

import (
	"miniblog/internal/models"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

type TagPostsResponse struct {
	Tag   *models.Tag    `json:"tag"`
	Posts []*models.Post `json:"posts"`
}

// GetTagPosts serves the posts carrying a tag. An unknown tag is a 404; a
// known tag with no posts is an empty list.
func (h *Handlers) GetTagPosts(w http.ResponseWriter, r *http.Request) {
	tagID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		WriteError(w, "malformed tag id", http.StatusBadRequest)
		return
	}

	tag, err := h.TagService.GetTag(r.Context(), tagID)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	posts, err := h.TagService.PostsForTag(r.Context(), tagID)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	WriteJSON(w, TagPostsResponse{Tag: tag, Posts: posts}, http.StatusOK)
}
