// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package imaging processes catalog image uploads: brand logos, product
// photos and blog cover images. Uploads are decoded, auto-rotated from EXIF
// orientation, re-encoded without metadata, and resized into the standard
// variants the storefront serves.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/webp" // WebP decoder
)

// Supported upload MIME types.
const (
	MimeTypeJPEG = "image/jpeg"
	MimeTypePNG  = "image/png"
	MimeTypeGIF  = "image/gif"
	MimeTypeWebP = "image/webp"
)

// VariantConfig describes one derived image size.
type VariantConfig struct {
	Width   int
	Height  int
	Quality int
	Crop    bool
}

// Variants are the derived sizes created for every upload. Thumbnails are
// cropped square for the admin list views; medium keeps aspect ratio for
// the storefront.
var Variants = map[string]VariantConfig{
	"thumb":  {Width: 320, Height: 320, Quality: 82, Crop: true},
	"medium": {Width: 1024, Height: 1024, Quality: 88, Crop: false},
}

// ProcessResult contains the outcome of processing an uploaded image.
type ProcessResult struct {
	Width    int
	Height   int
	MimeType string
	Size     int64
	FilePath string
}

// VariantResult contains the outcome of creating one variant.
type VariantResult struct {
	Type     string
	Width    int
	Height   int
	Size     int64
	FilePath string
}

// Processor handles image processing using pure Go libraries.
type Processor struct {
	uploadDir string
}

// NewProcessor creates a processor writing under uploadDir.
func NewProcessor(uploadDir string) *Processor {
	return &Processor{uploadDir: uploadDir}
}

// Process reads an uploaded image, applies EXIF rotation, strips metadata by
// re-encoding, and saves the original under originals/<id>/.
func (p *Processor) Process(reader io.Reader, id, filename string) (*ProcessResult, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read image data: %w", err)
	}

	format := detectFormat(data)
	if format == "" {
		return nil, fmt.Errorf("unsupported image format")
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	img = applyOrientation(img, readExifOrientation(bytes.NewReader(data)))

	bounds := img.Bounds()

	processed, err := encodeImage(img, format, 95)
	if err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}

	filePath, err := p.saveImageFile(filepath.Join("originals", id), filename, processed)
	if err != nil {
		return nil, fmt.Errorf("save original image: %w", err)
	}

	return &ProcessResult{
		Width:    bounds.Dx(),
		Height:   bounds.Dy(),
		MimeType: formatToMimeType(format),
		Size:     int64(len(processed)),
		FilePath: filePath,
	}, nil
}

// CreateVariant creates one resized variant. Returns (nil, nil) when the
// source is already smaller than the target and no crop is requested.
func (p *Processor) CreateVariant(sourcePath, id, filename string, cfg VariantConfig, variantType string) (*VariantResult, error) {
	img, err := imaging.Open(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("open source image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() <= cfg.Width && bounds.Dy() <= cfg.Height && !cfg.Crop {
		return nil, nil
	}

	var resized image.Image
	if cfg.Crop {
		resized = imaging.Fill(img, cfg.Width, cfg.Height, imaging.Center, imaging.Lanczos)
	} else {
		resized = imaging.Fit(img, cfg.Width, cfg.Height, imaging.Lanczos)
	}

	format := detectFormatFromFilename(filename)
	processed, err := encodeImage(resized, format, cfg.Quality)
	if err != nil {
		return nil, fmt.Errorf("encode variant: %w", err)
	}

	variantPath, err := p.saveImageFile(filepath.Join(variantType, id), filename, processed)
	if err != nil {
		return nil, fmt.Errorf("save %s variant: %w", variantType, err)
	}

	resBounds := resized.Bounds()
	return &VariantResult{
		Type:     variantType,
		Width:    resBounds.Dx(),
		Height:   resBounds.Dy(),
		Size:     int64(len(processed)),
		FilePath: variantPath,
	}, nil
}

// CreateAllVariants creates every standard variant, continuing past
// individual failures.
func (p *Processor) CreateAllVariants(sourcePath, id, filename string) ([]*VariantResult, error) {
	var results []*VariantResult
	var errs []string

	for variantType, cfg := range Variants {
		result, err := p.CreateVariant(sourcePath, id, filename, cfg, variantType)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", variantType, err))
			continue
		}
		if result != nil {
			results = append(results, result)
		}
	}

	if len(errs) > 0 && len(results) == 0 {
		return nil, fmt.Errorf("all variants failed: %s", strings.Join(errs, "; "))
	}
	return results, nil
}

// Dimensions returns the pixel dimensions of an image file without decoding
// the full image.
func (p *Processor) Dimensions(path string) (width, height int, err error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("open image: %w", err)
	}
	defer func() { _ = file.Close() }()

	config, _, err := image.DecodeConfig(file)
	if err != nil {
		return 0, 0, fmt.Errorf("read image config: %w", err)
	}
	return config.Width, config.Height, nil
}

// IsSupportedType checks if a MIME type can be processed.
func (p *Processor) IsSupportedType(mimeType string) bool {
	switch mimeType {
	case MimeTypeJPEG, MimeTypePNG, MimeTypeGIF, MimeTypeWebP:
		return true
	default:
		return false
	}
}

// DetectMimeType detects the MIME type of image data.
func (p *Processor) DetectMimeType(data []byte) string {
	contentType := http.DetectContentType(data)
	if idx := strings.Index(contentType, ";"); idx != -1 {
		contentType = contentType[:idx]
	}
	return contentType
}

// DeleteFiles removes the original and every variant for an upload id.
func (p *Processor) DeleteFiles(id string) error {
	dirs := []string{filepath.Join(p.uploadDir, "originals", id)}
	for variantType := range Variants {
		dirs = append(dirs, filepath.Join(p.uploadDir, variantType, id))
	}
	for _, dir := range dirs {
		if err := os.RemoveAll(dir); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("delete %s: %w", dir, err)
		}
	}
	return nil
}

// readExifOrientation returns the EXIF orientation tag, or 1 (normal) when
// it cannot be determined.
func readExifOrientation(r io.Reader) int {
	x, err := exif.Decode(r)
	if err != nil {
		return 1
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}
	orientation, err := tag.Int(0)
	if err != nil {
		return 1
	}
	return orientation
}

// applyOrientation maps the eight EXIF orientations onto flips and rotates.
func applyOrientation(img image.Image, orientation int) image.Image {
	switch orientation {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.FlipH(imaging.Rotate270(img))
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.FlipH(imaging.Rotate90(img))
	case 8:
		return imaging.Rotate90(img)
	default:
		return img
	}
}

// encodeImage encodes with the given format and quality. WebP input is
// re-encoded as JPEG since pure Go has no WebP encoder.
func encodeImage(img image.Image, format string, quality int) ([]byte, error) {
	var buf bytes.Buffer
	var err error

	switch format {
	case "png":
		err = png.Encode(&buf, img)
	case "gif":
		err = gif.Encode(&buf, img, nil)
	default:
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality})
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// detectFormat sniffs the image format from raw bytes.
func detectFormat(data []byte) string {
	contentType := http.DetectContentType(data)
	// Explicitly reject TIFF (CVE-2023-36308 in disintegration/imaging)
	if strings.Contains(contentType, "tiff") {
		return ""
	}
	switch {
	case strings.Contains(contentType, "jpeg"):
		return "jpeg"
	case strings.Contains(contentType, "png"):
		return "png"
	case strings.Contains(contentType, "gif"):
		return "gif"
	case strings.Contains(contentType, "webp"):
		return "webp"
	default:
		return ""
	}
}

func detectFormatFromFilename(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png":
		return "png"
	case ".gif":
		return "gif"
	case ".webp":
		return "webp"
	default:
		return "jpeg"
	}
}

func formatToMimeType(format string) string {
	switch format {
	case "jpeg", "jpg":
		return MimeTypeJPEG
	case "png":
		return MimeTypePNG
	case "gif":
		return MimeTypeGIF
	case "webp":
		return MimeTypeWebP
	default:
		return "application/octet-stream"
	}
}

// saveImageFile writes data under uploadDir/subDir/filename, rejecting any
// path traversal in either component.
func (p *Processor) saveImageFile(subDir, filename string, data []byte) (string, error) {
	safeFilename := filepath.Base(filename)
	if safeFilename == "." || safeFilename == ".." || safeFilename == "" {
		return "", fmt.Errorf("invalid filename")
	}

	cleanSubDir := filepath.Clean(subDir)
	if strings.Contains(cleanSubDir, "..") || filepath.IsAbs(cleanSubDir) {
		return "", fmt.Errorf("invalid subdirectory path")
	}

	absBase, err := filepath.Abs(p.uploadDir)
	if err != nil {
		return "", fmt.Errorf("resolve base directory: %w", err)
	}

	absTarget := filepath.Join(absBase, cleanSubDir)
	rel, err := filepath.Rel(absBase, absTarget)
	if err != nil || strings.HasPrefix(rel, "..") || filepath.IsAbs(rel) {
		return "", fmt.Errorf("path traversal detected")
	}

	if err := os.MkdirAll(absTarget, 0755); err != nil {
		return "", fmt.Errorf("create directory: %w", err)
	}

	filePath := filepath.Join(absTarget, safeFilename)
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return "", fmt.Errorf("save image: %w", err)
	}
	return filePath, nil
}
