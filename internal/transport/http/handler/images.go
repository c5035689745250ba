package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// ImageDownloader is the minimal read interface the handler needs from the
// product image store.
type ImageDownloader interface {
	Download(ctx context.Context, key string) (io.ReadCloser, string, error)
}

// ImageHandler streams product images from the image bucket.
type ImageHandler struct {
	store ImageDownloader
}

func NewImageHandler(store ImageDownloader) *ImageHandler {
	return &ImageHandler{store: store}
}

func (h *ImageHandler) Get(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	body, contentType, err := h.store.Download(r.Context(), key)
	if err != nil {
		writeError(w, http.StatusNotFound, "image not found")
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", contentType)
	_, _ = io.Copy(w, body)
}
