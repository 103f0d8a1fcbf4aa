// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/olegiv/groplan-go/internal/imaging"
	"github.com/olegiv/groplan-go/internal/util"
)

// Upload limits
const (
	MaxUploadSize    = 10 * 1024 * 1024 // 10MB
	DefaultUploadDir = "./uploads"
)

// UploadResult describes a stored upload. URL points at the original; the
// variant map points at the derived sizes, keyed by variant name.
type UploadResult struct {
	ID          string            `json:"id"`
	Filename    string            `json:"filename"`
	MimeType    string            `json:"mime_type"`
	Size        int64             `json:"size"`
	Width       int               `json:"width"`
	Height      int               `json:"height"`
	URL         string            `json:"url"`
	VariantURLs map[string]string `json:"variants"`
}

// MediaService stores catalog images on disk and produces the public URLs
// entities reference in their image fields.
type MediaService struct {
	processor  *imaging.Processor
	uploadDir  string
	publicBase string
}

// NewMediaService creates a media service. publicBase is the URL prefix the
// upload dir is served under, e.g. "/uploads".
func NewMediaService(uploadDir, publicBase string) *MediaService {
	if uploadDir == "" {
		uploadDir = DefaultUploadDir
	}
	if publicBase == "" {
		publicBase = "/uploads"
	}
	return &MediaService{
		processor:  imaging.NewProcessor(uploadDir),
		uploadDir:  uploadDir,
		publicBase: strings.TrimSuffix(publicBase, "/"),
	}
}

// Upload validates, processes and stores one uploaded image.
func (s *MediaService) Upload(file multipart.File, header *multipart.FileHeader) (*UploadResult, error) {
	if header.Size > MaxUploadSize {
		return nil, fmt.Errorf("file size exceeds maximum allowed (%d bytes)", MaxUploadSize)
	}

	// Sniff the type from content, never trust the client header alone.
	head := make([]byte, 512)
	n, err := file.Read(head)
	if err != nil && n == 0 {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if _, err := file.Seek(0, 0); err != nil {
		return nil, fmt.Errorf("rewind upload: %w", err)
	}

	mimeType := s.processor.DetectMimeType(head[:n])
	if !s.processor.IsSupportedType(mimeType) {
		return nil, fmt.Errorf("file type %s is not allowed", mimeType)
	}

	id := uuid.NewString()
	filename := sanitizeFilename(header.Filename)

	result, err := s.processor.Process(file, id, filename)
	if err != nil {
		return nil, fmt.Errorf("process image: %w", err)
	}

	variants, err := s.processor.CreateAllVariants(result.FilePath, id, filename)
	if err != nil {
		// The original is stored; missing variants are recoverable.
		variants = nil
	}

	out := &UploadResult{
		ID:          id,
		Filename:    filename,
		MimeType:    result.MimeType,
		Size:        result.Size,
		Width:       result.Width,
		Height:      result.Height,
		URL:         s.publicURL("originals", id, filename),
		VariantURLs: make(map[string]string, len(variants)),
	}
	for _, v := range variants {
		out.VariantURLs[v.Type] = s.publicURL(v.Type, id, filename)
	}
	return out, nil
}

// Delete removes an upload and its variants by id.
func (s *MediaService) Delete(id string) error {
	return s.processor.DeleteFiles(id)
}

func (s *MediaService) publicURL(kind, id, filename string) string {
	return s.publicBase + "/" + kind + "/" + id + "/" + filename
}

// sanitizeFilename slugifies the base name and keeps a safe extension, so
// "Çadır Fotoğrafı.JPG" stores as "cadir-fotografi.jpg".
func sanitizeFilename(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))

	slug := util.Slugify(base)
	if slug == "" {
		slug = "file"
	}
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
		return slug + ext
	default:
		return slug + ".jpg"
	}
}
