package controller

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"nube-alta-cafe/service"
	"nube-alta-cafe/utils"
)

const maxUploadBytes = 10 << 20

// UploadController handles admin image uploads
type UploadController struct {
	images *service.ImageService
}

// NewUploadController creates a new UploadController
func NewUploadController(images *service.ImageService) *UploadController {
	return &UploadController{images: images}
}

// UploadImage handles POST /admin/uploads?folder=productos|banners|logos
// Expects a multipart form with the image in the "file" field.
// The image is optimized before being stored and the returned url can be saved as imageUrl.
func (c *UploadController) UploadImage(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 UploadImage: Received %s request to %s", r.Method, r.URL.Path)
	if !allowMethod(w, r, http.MethodPost, "UploadImage") {
		return
	}

	if !c.images.Enabled() {
		http.Error(w, "Image uploads are not configured", http.StatusServiceUnavailable)
		return
	}

	folder := r.URL.Query().Get("folder")
	if err := utils.ValidateUploadFolder(folder); err != nil {
		log.Printf("❌ UploadImage: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		log.Printf("❌ UploadImage: Failed to read form file: %v", err)
		http.Error(w, fmt.Sprintf("Invalid upload: %v", err), http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		log.Printf("❌ UploadImage: Failed to read upload: %v", err)
		http.Error(w, "Failed to read upload", http.StatusBadRequest)
		return
	}

	resp, err := c.images.Upload(r.Context(), folder, header.Filename, data)
	if errors.Is(err, service.ErrUploadsDisabled) {
		http.Error(w, "Image uploads are not configured", http.StatusServiceUnavailable)
		return
	}
	if err != nil {
		log.Printf("❌ UploadImage: %v", err)
		http.Error(w, "Failed to store image", http.StatusUnprocessableEntity)
		return
	}

	writeJSON(w, http.StatusCreated, resp, "UploadImage")
}
