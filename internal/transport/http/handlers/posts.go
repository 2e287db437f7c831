package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pribylovaa/go-social-platform/internal/auth"
	"github.com/pribylovaa/go-social-platform/internal/service"
	apierrors "github.com/pribylovaa/go-social-platform/internal/transport/http/errors"
)

// maxBodyBytes ограничивает тело запроса.
const maxBodyBytes = 1 << 20

func invalidBody(err error) error {
	return fmt.Errorf("decode body: %v: %w", err, service.ErrInvalidArgument)
}

// InitiatePost — POST /create/initiate.
func (h *Handlers) InitiatePost(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var in service.PostInput
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, invalidBody(err))
		return
	}

	id, err := h.Posts.Initiate(r.Context(), auth.MemberIDFrom(r.Context()), in)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeText(w, http.StatusOK, id)
}

// CreatePost — POST /create.
func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var in service.CreateInput
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, invalidBody(err))
		return
	}

	id, err := h.Posts.Create(r.Context(), auth.MemberIDFrom(r.Context()), in)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeText(w, http.StatusOK, id)
}

// EditPost — PUT /creation/{postId}.
func (h *Handlers) EditPost(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var in service.PostInput
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, invalidBody(err))
		return
	}

	id, err := h.Posts.Edit(r.Context(), auth.MemberIDFrom(r.Context()), chi.URLParam(r, "postId"), in)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeText(w, http.StatusOK, id)
}

// DeletePost — DELETE /creation/{postId}.
func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	if err := h.Posts.Delete(r.Context(), auth.MemberIDFrom(r.Context()), chi.URLParam(r, "postId")); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeText(w, http.StatusOK, "Post deleted")
}

type attachImagesRequest struct {
	ImageFullnames []string `json:"imageFullnamesArr"`
}

// AttachImages — PUT /creation/{postId}/updateimagefullnamesarray.
func (h *Handlers) AttachImages(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var in attachImagesRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, invalidBody(err))
		return
	}

	id, err := h.Posts.AttachImages(r.Context(), auth.MemberIDFrom(r.Context()), chi.URLParam(r, "postId"), in.ImageFullnames)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeText(w, http.StatusOK, id)
}

// ViewPost — GET /post/id/{postId}. Сессия не обязательна.
func (h *Handlers) ViewPost(w http.ResponseWriter, r *http.Request) {
	post, err := h.Posts.View(r.Context(), auth.MemberIDFrom(r.Context()), chi.URLParam(r, "postId"))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, post)
}

// ToggleSave — POST /save/{postId}.
func (h *Handlers) ToggleSave(w http.ResponseWriter, r *http.Request) {
	saved, err := h.Posts.ToggleSave(r.Context(), auth.MemberIDFrom(r.Context()), chi.URLParam(r, "postId"))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	if saved {
		writeText(w, http.StatusOK, "saved")
		return
	}

	writeText(w, http.StatusOK, "undo saved")
}
