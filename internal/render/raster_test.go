/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package render

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"walledit/internal/domain"
	"walledit/internal/editor"
	"walledit/internal/geom"
	"walledit/internal/scene"
)

func solid(w, h int, c color.RGBA) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: c}, image.Point{}, draw.Src)
	return img
}

func TestRenderBackgroundOnlyAtDoubleResolution(t *testing.T) {
	doc := editor.Document{Background: editor.Background{Width: 100, Height: 50}}
	sc := scene.Build(doc, solid(100, 50, color.RGBA{R: 10, G: 200, B: 30, A: 255}))
	img, err := Render(sc, NewFontLibrary(), Options{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 200 || b.Dy() != 100 {
		t.Fatalf("expected 2x output, got %dx%d", b.Dx(), b.Dy())
	}
	// background alone: center pixel carries the background color
	r, g, _, _ := img.At(100, 50).RGBA()
	if g>>8 < 150 || r>>8 > 60 {
		t.Fatalf("center pixel does not look like the background: r=%d g=%d", r>>8, g>>8)
	}
}

func TestRenderEmptySceneFails(t *testing.T) {
	_, err := Render(scene.Scene{}, nil, Options{})
	if err == nil {
		t.Fatalf("expected error for empty scene")
	}
}

func TestRenderNilImageCommandFails(t *testing.T) {
	sc := scene.Scene{
		Size:     geom.Size{W: 10, H: 10},
		Commands: []scene.Command{scene.DrawImage{}},
	}
	if _, err := Render(sc, nil, Options{}); err == nil {
		t.Fatalf("expected error for nil image command")
	}
}

func TestRenderRectAndTextChangePixels(t *testing.T) {
	sc := scene.Scene{
		Size: geom.Size{W: 100, H: 100},
		Commands: []scene.Command{
			scene.DrawRect{Rect: geom.R(10, 10, 80, 80), Fill: color.RGBA{R: 255, A: 255}},
			scene.DrawText{Text: "42", Pos: geom.Pt{X: 20, Y: 20}, FontSize: 24, Color: color.RGBA{R: 255, G: 255, B: 255, A: 255}},
		},
	}
	img, err := Render(sc, NewFontLibrary(), Options{SuperSample: 1})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	r, _, _, _ := img.At(50, 80).RGBA()
	if r>>8 < 200 {
		t.Fatalf("rect fill missing: r=%d", r>>8)
	}
	// some pixel inside the text box must differ from the pure rect fill
	found := false
	for y := 20; y < 50 && !found; y++ {
		for x := 20; x < 60 && !found; x++ {
			_, g, _, _ := img.At(x, y).RGBA()
			if g>>8 > 100 {
				found = true
			}
		}
	}
	if !found {
		t.Fatalf("text glyphs left no trace")
	}
}

func TestRenderFullComposition(t *testing.T) {
	e := editor.New()
	e.SetBackground(editor.Background{Width: 400, Height: 300}, 800, 600)
	e.AddText(domain.TextTitle)
	e.AddCalendar()
	doc := e.BeginExport()
	sc := scene.Build(doc, solid(400, 300, color.RGBA{R: 40, G: 40, B: 40, A: 255}))
	img, err := Render(sc, NewFontLibrary(), Options{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if img.Bounds().Dx() != 800 || img.Bounds().Dy() != 600 {
		t.Fatalf("unexpected output size: %v", img.Bounds())
	}
}

func TestFontLibraryFallback(t *testing.T) {
	fl := NewFontLibrary()
	face := fl.Face("Pretendard", 16, false)
	if face == nil {
		t.Fatalf("fallback face must never be nil")
	}
	bold := fl.Face("Pretendard", 16, true)
	if bold == nil {
		t.Fatalf("bold fallback missing")
	}
	// cached second resolution returns the same face
	if fl.Face("Pretendard", 16, false) != face {
		t.Fatalf("face cache miss")
	}
}

func TestFontLibraryLoadTTFMissingFile(t *testing.T) {
	fl := NewFontLibrary()
	if err := fl.LoadTTF("Nope", false, "/does/not/exist.ttf"); err == nil {
		t.Fatalf("expected error for missing font file")
	}
}
