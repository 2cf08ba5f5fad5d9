package service

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"log"
	"os"
	"path/filepath"
	"regexp"

	"github.com/disintegration/imaging"
)

const (
	// Quality settings
	qualityThumb  = 60
	qualityMedium = 75
	qualityLarge  = 82
	// Size settings (max dimension)
	maxSizeThumb  = 300
	maxSizeMedium = 800
	maxSizeLarge  = 1600
)

// Image sizes served by the image proxy and produced on upload
const (
	SizeThumb  = "thumb"
	SizeMedium = "medium"
	SizeLarge  = "large"
)

var cacheKeyRegex = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// UploadSize returns the stored size for an upload folder: banners keep more resolution
func UploadSize(folder string) string {
	if folder == "banners" {
		return SizeLarge
	}
	return SizeMedium
}

// ImageCache stores optimized images on local disk, keyed by file id and size
type ImageCache struct {
	dir string
}

// NewImageCache creates the cache directory if it doesn't exist
func NewImageCache(dir string) (*ImageCache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &ImageCache{dir: dir}, nil
}

// Path returns the cache file path for a given file id and size
func (c *ImageCache) Path(fileID string, size string) (string, error) {
	if !cacheKeyRegex.MatchString(fileID) {
		return "", fmt.Errorf("invalid file id %q", fileID)
	}
	return filepath.Join(c.dir, fmt.Sprintf("%s_%s.jpg", fileID, size)), nil
}

// Read reads an image from the cache; ok is false on a miss
func (c *ImageCache) Read(fileID string, size string) ([]byte, bool) {
	path, err := c.Path(fileID, size)
	if err != nil {
		return nil, false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	return data, true
}

// Write saves an image to the cache
func (c *ImageCache) Write(fileID string, size string, imageData []byte) error {
	path, err := c.Path(fileID, size)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, imageData, 0644); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	log.Printf("✓ Image cached: %s", path)
	return nil
}

// OptimizeImage converts an image to JPEG and shrinks it to fit the size's max dimension.
// imageData: raw image bytes (PNG, JPEG, GIF...)
// size: "thumb", "medium" or "large"
func OptimizeImage(imageData []byte, size string) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	log.Printf("📸 Image decoded: format=%s, bounds=%v", format, img.Bounds())

	var maxDim int
	var quality int

	switch size {
	case SizeThumb:
		maxDim = maxSizeThumb
		quality = qualityThumb
	case SizeLarge:
		maxDim = maxSizeLarge
		quality = qualityLarge
	case SizeMedium:
		maxDim = maxSizeMedium
		quality = qualityMedium
	default:
		maxDim = maxSizeMedium
		quality = qualityMedium
		log.Printf("⚠️  Unknown size '%s', defaulting to medium", size)
	}

	bounds := img.Bounds()
	var resized image.Image = img
	if bounds.Dx() > maxDim || bounds.Dy() > maxDim {
		resized = imaging.Fit(img, maxDim, maxDim, imaging.Lanczos)
		log.Printf("🔄 Resizing image: %dx%d -> %dx%d", bounds.Dx(), bounds.Dy(), resized.Bounds().Dx(), resized.Bounds().Dy())
	}

	// PNG transparency would turn black in JPEG; flatten on white first
	flattened := imaging.New(resized.Bounds().Dx(), resized.Bounds().Dy(), image.White)
	flattened = imaging.Overlay(flattened, resized, image.Pt(0, 0), 1.0)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, flattened, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode to JPEG: %w", err)
	}
	optimizedData := buf.Bytes()

	log.Printf("✓ Image optimized: size=%s, quality=%d, output_size=%d bytes", size, quality, len(optimizedData))
	return optimizedData, nil
}
