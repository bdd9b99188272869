/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"walledit/internal/editor"
	"walledit/internal/render"
	"walledit/internal/scene"
)

func testScene(w, h int) scene.Scene {
	bg := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(bg, bg.Bounds(), &image.Uniform{C: color.RGBA{R: 99, G: 50, B: 20, A: 255}}, image.Point{}, draw.Src)
	doc := editor.Document{Background: editor.Background{Width: float64(w), Height: float64(h)}}
	return scene.Build(doc, bg)
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"png": PNG, "": PNG, "JPG": JPEG, "jpeg": JPEG, "pdf": PDF} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Fatalf("ParseFormat(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("gif"); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}

func TestBaseName(t *testing.T) {
	cases := []struct {
		name, url, want string
	}{
		{"시즌 인사.png", "", "시즌 인사"},
		{"", "https://cdn.example.com/assets/summer.jpg?width=200", "summer"},
		{"", "https://cdn.example.com/assets/autumn.min.jpg", "autumn"},
		{"", "", "wallpaper"},
		{"  ", "not a url at all", "not a url at all"},
	}
	for _, c := range cases {
		if got := BaseName(c.name, c.url); got != c.want {
			t.Fatalf("BaseName(%q, %q) = %q, want %q", c.name, c.url, got, c.want)
		}
	}
}

func TestFilename(t *testing.T) {
	ts := time.Date(2025, 10, 15, 9, 0, 0, 0, time.UTC)
	if got := Filename("summer", ts, PNG); got != "summer_edit_251015.png" {
		t.Fatalf("unexpected filename: %q", got)
	}
	if got := Filename("", ts, JPEG); got != "wallpaper_edit_251015.jpg" {
		t.Fatalf("fallback filename wrong: %q", got)
	}
}

func TestEncodePNGRoundTrip(t *testing.T) {
	img, err := render.Render(testScene(40, 30), nil, render.Options{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	data, err := Encode(img, PNG)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Bounds().Dx() != 80 || decoded.Bounds().Dy() != 60 {
		t.Fatalf("export must be 2x natural size, got %v", decoded.Bounds())
	}
}

func TestEncodeJPEG(t *testing.T) {
	img, _ := render.Render(testScene(20, 20), nil, render.Options{})
	data, err := Encode(img, JPEG)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := jpeg.Decode(bytes.NewReader(data)); err != nil {
		t.Fatalf("jpeg decode: %v", err)
	}
}

func TestEncodePDFHasHeader(t *testing.T) {
	img, _ := render.Render(testScene(20, 20), nil, render.Options{})
	data, err := Encode(img, PDF)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("output does not look like a PDF")
	}
}

func TestExporterWritesFile(t *testing.T) {
	dir := t.TempDir()
	x := NewExporter(render.NewFontLibrary())
	x.Now = func() time.Time { return time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC) }
	path, err := x.Export(testScene(10, 10), dir, "summer", PNG)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if filepath.Base(path) != "summer_edit_251015.png" {
		t.Fatalf("unexpected path %q", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("file missing: %v", err)
	}
	// no temp litter left behind
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Fatalf("expected exactly one file, got %d", len(entries))
	}
}

func TestExporterFailureWritesNothing(t *testing.T) {
	dir := t.TempDir()
	x := NewExporter(nil)
	if _, err := x.Export(scene.Scene{}, dir, "x", PNG); err == nil {
		t.Fatalf("expected capture failure")
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Fatalf("failed export must not leave files")
	}
}
