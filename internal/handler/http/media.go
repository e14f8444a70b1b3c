package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yesmovie/backend/internal/domain"
	"github.com/yesmovie/backend/internal/media"
	"github.com/yesmovie/backend/pkg/httputil"
)

// MediaHandler handles HTTP requests for media file endpoints.
type MediaHandler struct {
	service *media.Service
	logger  *slog.Logger
}

// NewMediaHandler creates a new media HTTP handler.
func NewMediaHandler(svc *media.Service, logger *slog.Logger) *MediaHandler {
	return &MediaHandler{
		service: svc,
		logger:  logger,
	}
}

// UploadFile handles POST /api/v1/media (multipart/form-data).
func (h *MediaHandler) UploadFile(w http.ResponseWriter, r *http.Request) {
	// Parse multipart form with max file size limit.
	maxSize := int64(domain.MaxFileSize) + (1 << 20) // Add 1MB overhead for form fields.
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(domain.MaxFileSize); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "failed to parse multipart form: " + err.Error()},
		})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "file is required: " + err.Error()},
		})
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	uploaded, err := h.service.UploadFile(r.Context(), &media.UploadFileInput{
		FileName:    header.Filename,
		ContentType: contentType,
		Size:        header.Size,
		Data:        file,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: uploaded})
}

// ListFiles handles GET /api/v1/media
func (h *MediaHandler) ListFiles(w http.ResponseWriter, r *http.Request) {
	cursor, pageSize, ok := paginationParams(w, r)
	if !ok {
		return
	}

	files, next, err := h.service.ListFiles(r.Context(), cursor, pageSize)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: pagedResponse{Items: files, NextCursor: next}})
}

// GetDownloadURL handles GET /api/v1/media/{id}/url
func (h *MediaHandler) GetDownloadURL(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "file id is required"},
		})
		return
	}

	url, err := h.service.GetDownloadURL(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"id": id, "url": url}})
}

// DeleteFile handles DELETE /api/v1/media/{id}
func (h *MediaHandler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "file id is required"},
		})
		return
	}

	if err := h.service.DeleteFile(r.Context(), id); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"id": id, "status": "deleted"}})
}
