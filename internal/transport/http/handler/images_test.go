package handler

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockImageDownloader struct{ mock.Mock }

func (m *mockImageDownloader) Download(ctx context.Context, key string) (io.ReadCloser, string, error) {
	args := m.Called(ctx, key)
	if rc, _ := args.Get(0).(io.ReadCloser); rc != nil {
		return rc, args.String(1), args.Error(2)
	}
	return nil, args.String(1), args.Error(2)
}

func imageRouter(store ImageDownloader) http.Handler {
	r := chi.NewRouter()
	r.Get("/images/{key}", NewImageHandler(store).Get)
	return r
}

func TestImageGet_HappyPath(t *testing.T) {
	store := &mockImageDownloader{}
	store.On("Download", mock.Anything, "sweater.jpg").
		Return(io.NopCloser(bytes.NewReader([]byte("jpeg-bytes"))), "image/jpeg", nil)

	rec := httptest.NewRecorder()
	imageRouter(store).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/images/sweater.jpg", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/jpeg", rec.Header().Get("Content-Type"))
	assert.Equal(t, "jpeg-bytes", rec.Body.String())
}

func TestImageGet_NotFound(t *testing.T) {
	store := &mockImageDownloader{}
	store.On("Download", mock.Anything, "gone.jpg").Return(nil, "", errors.New("no such key"))

	rec := httptest.NewRecorder()
	imageRouter(store).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/images/gone.jpg", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"image not found"}`, rec.Body.String())
}
