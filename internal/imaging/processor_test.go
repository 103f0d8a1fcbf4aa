// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func makeJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), A: 255})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestProcessSavesOriginal(t *testing.T) {
	dir := t.TempDir()
	p := NewProcessor(dir)

	data := makeJPEG(t, 800, 600)
	result, err := p.Process(bytes.NewReader(data), "abc123", "photo.jpg")
	if err != nil {
		t.Fatal(err)
	}
	if result.Width != 800 || result.Height != 600 {
		t.Errorf("dimensions = %dx%d", result.Width, result.Height)
	}
	if result.MimeType != MimeTypeJPEG {
		t.Errorf("mime = %q", result.MimeType)
	}
	if _, err := os.Stat(result.FilePath); err != nil {
		t.Errorf("original not on disk: %v", err)
	}
	if want := filepath.Join(dir, "originals", "abc123", "photo.jpg"); result.FilePath != want {
		t.Errorf("path = %q, want %q", result.FilePath, want)
	}
}

func TestProcessRejectsNonImage(t *testing.T) {
	p := NewProcessor(t.TempDir())
	if _, err := p.Process(bytes.NewReader([]byte("plain text, not an image")), "x", "f.jpg"); err == nil {
		t.Error("non-image accepted")
	}
}

func TestCreateAllVariants(t *testing.T) {
	dir := t.TempDir()
	p := NewProcessor(dir)

	data := makeJPEG(t, 2000, 1500)
	result, err := p.Process(bytes.NewReader(data), "big1", "photo.jpg")
	if err != nil {
		t.Fatal(err)
	}

	variants, err := p.CreateAllVariants(result.FilePath, "big1", "photo.jpg")
	if err != nil {
		t.Fatal(err)
	}
	if len(variants) != len(Variants) {
		t.Fatalf("got %d variants, want %d", len(variants), len(Variants))
	}
	for _, v := range variants {
		cfg := Variants[v.Type]
		if v.Width > cfg.Width || v.Height > cfg.Height {
			t.Errorf("%s variant %dx%d exceeds %dx%d", v.Type, v.Width, v.Height, cfg.Width, cfg.Height)
		}
		if cfg.Crop && (v.Width != cfg.Width || v.Height != cfg.Height) {
			t.Errorf("%s crop variant = %dx%d, want exact %dx%d", v.Type, v.Width, v.Height, cfg.Width, cfg.Height)
		}
	}
}

func TestCreateVariantSkipsSmallSource(t *testing.T) {
	dir := t.TempDir()
	p := NewProcessor(dir)

	// Smaller than the medium target, no crop: skipped.
	src := filepath.Join(dir, "small.png")
	img := image.NewRGBA(image.Rect(0, 0, 100, 80))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(src, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}

	result, err := p.CreateVariant(src, "s1", "small.png", Variants["medium"], "medium")
	if err != nil {
		t.Fatal(err)
	}
	if result != nil {
		t.Errorf("small source upscaled: %+v", result)
	}
}

func TestDeleteFiles(t *testing.T) {
	dir := t.TempDir()
	p := NewProcessor(dir)

	data := makeJPEG(t, 2000, 1500)
	result, err := p.Process(bytes.NewReader(data), "del1", "photo.jpg")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := p.CreateAllVariants(result.FilePath, "del1", "photo.jpg"); err != nil {
		t.Fatal(err)
	}

	if err := p.DeleteFiles("del1"); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "originals", "del1")); !os.IsNotExist(err) {
		t.Error("originals dir survived delete")
	}
	if _, err := os.Stat(filepath.Join(dir, "thumb", "del1")); !os.IsNotExist(err) {
		t.Error("thumb dir survived delete")
	}
}

func TestSaveRejectsTraversal(t *testing.T) {
	p := NewProcessor(t.TempDir())
	if _, err := p.saveImageFile("../escape", "f.jpg", []byte("x")); err == nil {
		t.Error("path traversal accepted")
	}
}

func TestDetectMimeType(t *testing.T) {
	p := NewProcessor(t.TempDir())
	if got := p.DetectMimeType(makeJPEG(t, 10, 10)); got != MimeTypeJPEG {
		t.Errorf("DetectMimeType = %q", got)
	}
	if p.IsSupportedType("application/pdf") {
		t.Error("pdf reported as supported")
	}
}
