package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"nube-alta-cafe/models"
	"nube-alta-cafe/utils"
)

// ErrUploadsDisabled is returned when no image store is configured
var ErrUploadsDisabled = errors.New("image uploads are not configured")

// ImageService optimizes admin uploads before storing them and serves stored
// images in several sizes through a local disk cache
type ImageService struct {
	store ImageStoreInterface
	cache *ImageCache
}

// NewImageService creates an ImageService; store may be nil when uploads are disabled
func NewImageService(store ImageStoreInterface, cache *ImageCache) *ImageService {
	return &ImageService{store: store, cache: cache}
}

// Enabled reports whether uploads can be served
func (s *ImageService) Enabled() bool {
	return s.store != nil
}

// ImageURL is the storefront path that serves a stored image
func ImageURL(fileID string) string {
	return "/api/images/" + fileID
}

// Upload optimizes an image and saves it under folder
func (s *ImageService) Upload(ctx context.Context, folder string, fileName string, data []byte) (models.UploadResponse, error) {
	if s.store == nil {
		return models.UploadResponse{}, ErrUploadsDisabled
	}
	if err := utils.ValidateUploadFolder(folder); err != nil {
		return models.UploadResponse{}, err
	}

	size := UploadSize(folder)
	optimized, err := OptimizeImage(data, size)
	if err != nil {
		return models.UploadResponse{}, fmt.Errorf("failed to optimize %s: %w", fileName, err)
	}

	stored, err := s.store.Upload(ctx, folder, utils.SlugFileName(fileName), optimized)
	if err != nil {
		return models.UploadResponse{}, err
	}

	if s.cache != nil {
		if err := s.cache.Write(stored.FileID, size, optimized); err != nil {
			log.Printf("⚠️ Failed to warm cache for %s: %v", stored.FileID, err)
		}
	}

	log.Printf("✅ Upload stored: folder=%s file=%s original=%d optimized=%d", folder, stored.FileID, len(data), len(optimized))
	return models.UploadResponse{
		URL:    ImageURL(stored.FileID),
		FileID: stored.FileID,
		Bytes:  stored.Bytes,
	}, nil
}

// Get returns a stored image in the requested size, downloading and optimizing it on a cache miss
func (s *ImageService) Get(ctx context.Context, fileID string, size string) ([]byte, error) {
	if s.store == nil {
		return nil, ErrUploadsDisabled
	}
	if s.cache != nil {
		if _, err := s.cache.Path(fileID, size); err != nil {
			return nil, err
		}
		if data, ok := s.cache.Read(fileID, size); ok {
			return data, nil
		}
	}

	original, err := s.store.Download(ctx, fileID)
	if err != nil {
		return nil, err
	}
	optimized, err := OptimizeImage(original, size)
	if err != nil {
		return nil, fmt.Errorf("failed to optimize %s: %w", fileID, err)
	}

	if s.cache != nil {
		if err := s.cache.Write(fileID, size, optimized); err != nil {
			log.Printf("⚠️ Failed to cache %s: %v", fileID, err)
		}
	}
	return optimized, nil
}
