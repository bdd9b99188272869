/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package export encodes rendered compositions into downloadable files.
package export

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/jung-kurt/gofpdf"

	"walledit/internal/render"
	"walledit/internal/scene"
)

// Format is an output encoding.
type Format string

const (
	PNG  Format = "png"
	JPEG Format = "jpg"
	PDF  Format = "pdf"
)

// JPEGQuality matches the original editor's 0.9 encoder setting.
const JPEGQuality = 90

// ParseFormat normalizes a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "png", "":
		return PNG, nil
	case "jpg", "jpeg":
		return JPEG, nil
	case "pdf":
		return PDF, nil
	}
	return "", fmt.Errorf("unknown export format %q", s)
}

// Exporter renders scenes and writes output files. Concurrent exports are
// serialized: a second caller blocks until the first finishes, and the last
// writer wins on identical filenames.
type Exporter struct {
	mu    sync.Mutex
	Fonts *render.FontLibrary
	// Now supplies the date used in filenames; nil means time.Now.
	Now func() time.Time
}

// NewExporter creates an exporter around the given font library.
func NewExporter(fonts *render.FontLibrary) *Exporter {
	return &Exporter{Fonts: fonts}
}

// Export rasterizes the scene and writes it to outDir using the synthesized
// filename. It returns the written path. On any failure nothing is written
// and the caller's model state is untouched.
func (x *Exporter) Export(sc scene.Scene, outDir, baseName string, format Format) (string, error) {
	x.mu.Lock()
	defer x.mu.Unlock()

	img, err := render.Render(sc, x.Fonts, render.Options{})
	if err != nil {
		return "", fmt.Errorf("capture: %w", err)
	}

	data, err := Encode(img, format)
	if err != nil {
		return "", err
	}

	now := time.Now
	if x.Now != nil {
		now = x.Now
	}
	name := Filename(baseName, now(), format)
	path := filepath.Join(outDir, name)
	if err := writeFileAtomic(path, data); err != nil {
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	return path, nil
}

// Encode serializes the image in the requested format.
func Encode(img image.Image, format Format) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case PNG:
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("encode png: %w", err)
		}
	case JPEG:
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: JPEGQuality}); err != nil {
			return nil, fmt.Errorf("encode jpeg: %w", err)
		}
	case PDF:
		return encodePDF(img)
	default:
		return nil, fmt.Errorf("unknown export format %q", format)
	}
	return buf.Bytes(), nil
}

// encodePDF embeds the rendered bitmap in a single PDF page sized to the
// image, the same way the comic exporter embeds page rasters.
func encodePDF(img image.Image) ([]byte, error) {
	var pngBuf bytes.Buffer
	if err := png.Encode(&pngBuf, img); err != nil {
		return nil, fmt.Errorf("encode pdf raster: %w", err)
	}
	b := img.Bounds()
	// 1pt = 1/72"; render at 144 DPI so the 2x supersample maps to print size
	wPt := float64(b.Dx()) * 72 / 144
	hPt := float64(b.Dy()) * 72 / 144

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: wPt, Ht: hPt},
	})
	pdf.AddPageFormat("P", gofpdf.SizeType{Wd: wPt, Ht: hPt})
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("composition", opts, &pngBuf)
	pdf.ImageOptions("composition", 0, 0, wPt, hPt, false, opts, 0, "")

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return out.Bytes(), nil
}

// writeFileAtomic writes via a temp file and rename so a failed export never
// leaves a partial download behind.
func writeFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".export-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}
