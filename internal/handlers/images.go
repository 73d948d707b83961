package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/ashrithps/BrekkieBowlz/internal/images"
)

type ImagesHandler struct {
	Blob *images.Client // nil when no blob store is configured
}

// Upload proxies a menu image to the blob store: multipart form with a
// "file" part and a "menuItemId" field, image content types only, 5MB
// ceiling. Oversized or non-image uploads are rejected before any bytes
// leave the server.
func (h *ImagesHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if h.Blob == nil {
		writeError(w, http.StatusServiceUnavailable, "Image storage is not configured")
		return
	}

	if err := r.ParseMultipartForm(images.MaxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "File too large or malformed upload")
		return
	}

	menuItemID := r.FormValue("menuItemId")
	if menuItemID == "" {
		writeError(w, http.StatusBadRequest, "Menu item ID is required")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()

	if ct := header.Header.Get("Content-Type"); !strings.HasPrefix(ct, "image/") {
		writeError(w, http.StatusBadRequest, "File must be an image")
		return
	}
	if header.Size > images.MaxUploadSize {
		writeError(w, http.StatusBadRequest, "File size must be less than 5MB")
		return
	}

	data, err := images.Process(file, header.Filename)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Could not process image: %v", err))
		return
	}

	// Process re-encodes everything as JPEG, so the stored name is always .jpg.
	blob, err := h.Blob.Upload(r.Context(), images.Pathname(menuItemID, "image.jpg"), data)
	if err != nil {
		slog.Error("Blob upload failed", "menuItemId", menuItemID, "error", err)
		writeError(w, http.StatusBadGateway, "Failed to upload image")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"url":         blob.URL,
		"downloadUrl": blob.DownloadURL,
		"pathname":    blob.Pathname,
	})
}

func (h *ImagesHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.Blob == nil {
		writeError(w, http.StatusServiceUnavailable, "Image storage is not configured")
		return
	}

	blobs, err := h.Blob.List(r.Context(), "menu-images/")
	if err != nil {
		slog.Error("Blob list failed", "error", err)
		writeError(w, http.StatusBadGateway, "Failed to list images")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "images": blobs})
}

func (h *ImagesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h.Blob == nil {
		writeError(w, http.StatusServiceUnavailable, "Image storage is not configured")
		return
	}

	pathname := r.URL.Query().Get("pathname")
	if pathname == "" {
		writeError(w, http.StatusBadRequest, "Pathname is required")
		return
	}

	if err := h.Blob.Delete(r.Context(), pathname); err != nil {
		slog.Error("Blob delete failed", "pathname", pathname, "error", err)
		writeError(w, http.StatusBadGateway, "Failed to delete image")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
