package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const (
	defaultMaxImageSize  = 5 * 1024 * 1024
	defaultMaxImageWidth = 1200
)

var ErrInvalidImage = errors.New("invalid image")

type ImageProcessor struct {
	MaxSize  int64 // bytes
	MaxWidth int   // px, also bounds the height
	Quality  int
}

func NewImageProcessor() *ImageProcessor {
	return &ImageProcessor{
		MaxSize:  defaultMaxImageSize,
		MaxWidth: defaultMaxImageWidth,
		Quality:  85,
	}
}

// ValidateImage accepts JPEG and PNG up to MaxSize
func (p *ImageProcessor) ValidateImage(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("%w: empty", ErrInvalidImage)
	}
	if int64(len(data)) > p.MaxSize {
		return fmt.Errorf("%w: exceeds %dMB", ErrInvalidImage, p.MaxSize/(1024*1024))
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	switch format {
	case "jpeg", "png":
		return nil
	default:
		return fmt.Errorf("%w: format %s not allowed (only jpeg/png)", ErrInvalidImage, format)
	}
}

// ProcessImage shrinks the image to fit MaxWidth x MaxWidth and re-encodes it as JPEG
func (p *ImageProcessor) ProcessImage(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: cannot decode: %v", ErrInvalidImage, err)
	}

	resized := imaging.Fit(img, p.MaxWidth, p.MaxWidth, imaging.Lanczos)

	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, resized, imaging.JPEG, imaging.JPEGQuality(p.Quality)); err != nil {
		return nil, fmt.Errorf("cannot encode image: %w", err)
	}
	return buf.Bytes(), nil
}

// ImageUploader validates, resizes and stores images
type ImageUploader struct {
	storage   ObjectStorage
	processor *ImageProcessor
}

func NewImageUploader(storage ObjectStorage, processor *ImageProcessor) *ImageUploader {
	return &ImageUploader{storage: storage, processor: processor}
}

// UploadImage stores the processed image under <folder>/<ownerID>/<random>.jpg
func (u *ImageUploader) UploadImage(ctx context.Context, folder string, ownerID uuid.UUID, data []byte) (string, error) {
	if err := u.processor.ValidateImage(data); err != nil {
		return "", err
	}

	processed, err := u.processor.ProcessImage(data)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("%s/%s/%s.jpg", folder, ownerID, uuid.New())
	return u.storage.Upload(ctx, key, processed, "image/jpeg")
}
