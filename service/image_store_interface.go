package service

import "context"

// StoredImage identifies an image saved in the image store
type StoredImage struct {
	FileID string
	Bytes  int
}

// ImageStoreInterface defines the contract for storing admin-uploaded images
type ImageStoreInterface interface {
	// Upload saves a JPEG under the given folder (productos, banners, logos)
	Upload(ctx context.Context, folder string, fileName string, data []byte) (StoredImage, error)
	Download(ctx context.Context, fileID string) ([]byte, error)
}
