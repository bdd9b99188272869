/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package render rasterizes a scene command list into a bitmap. The output
// is supersampled: every coordinate and font size is multiplied by the
// factor, so a 1920x1080 canvas exports as 3840x2160 at the default 2x.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	xdraw "golang.org/x/image/draw"

	"walledit/internal/scene"
)

// DefaultSuperSample is the export quality factor.
const DefaultSuperSample = 2

// CanvasColor is painted behind the background image, matching the editor's
// dark workspace.
var CanvasColor = color.RGBA{R: 0x17, G: 0x17, B: 0x17, A: 0xff}

// ErrEmptyScene is returned when the scene has no usable dimensions.
var ErrEmptyScene = errors.New("render: scene has no size")

// Options controls rasterization.
type Options struct {
	// SuperSample multiplies all output dimensions; 0 means DefaultSuperSample.
	SuperSample int
	// Background fills the canvas before drawing; zero value means CanvasColor.
	Background color.RGBA
}

// Render draws the scene into a new RGBA image. The scene is consumed
// read-only; a failed render leaves no partial state anywhere.
func Render(sc scene.Scene, fonts *FontLibrary, opt Options) (*image.RGBA, error) {
	ss := float64(opt.SuperSample)
	if ss <= 0 {
		ss = DefaultSuperSample
	}
	w := int(math.Round(sc.Size.W * ss))
	h := int(math.Round(sc.Size.H * ss))
	if w <= 0 || h <= 0 {
		return nil, ErrEmptyScene
	}
	if fonts == nil {
		fonts = NewFontLibrary()
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	dc := gg.NewContextForRGBA(dst)

	bg := opt.Background
	if bg == (color.RGBA{}) {
		bg = CanvasColor
	}
	dc.SetColor(bg)
	dc.Clear()

	for i, cmd := range sc.Commands {
		switch c := cmd.(type) {
		case scene.DrawImage:
			if c.Image == nil {
				return nil, fmt.Errorf("render: command %d has no image", i)
			}
			drawScaledImage(dst, c, ss)
		case scene.DrawRect:
			r := c.Rect.Scaled(ss)
			if c.Radius > 0 {
				dc.DrawRoundedRectangle(r.X, r.Y, r.W, r.H, c.Radius*ss)
			} else {
				dc.DrawRectangle(r.X, r.Y, r.W, r.H)
			}
			dc.SetColor(c.Fill)
			dc.Fill()
		case scene.DrawText:
			face := fonts.Face(c.FontFamily, c.FontSize*ss, c.Bold)
			dc.SetFontFace(face)
			dc.SetColor(c.Color)
			if c.Box != nil {
				b := c.Box.Scaled(ss)
				dc.DrawStringAnchored(c.Text, b.X+b.W/2, b.Y+b.H/2, 0.5, 0.35)
			} else {
				ascent := float64(face.Metrics().Ascent) / 64
				dc.DrawString(c.Text, c.Pos.X*ss, c.Pos.Y*ss+ascent)
			}
		default:
			return nil, fmt.Errorf("render: unknown command %T", cmd)
		}
	}
	return dst, nil
}

// drawScaledImage resamples the source into its target rect. CatmullRom is
// slow but this runs once per export, and quality is the whole point of the
// supersampled output.
func drawScaledImage(dst *image.RGBA, c scene.DrawImage, ss float64) {
	r := c.Rect.Scaled(ss)
	target := image.Rect(
		int(math.Round(r.X)), int(math.Round(r.Y)),
		int(math.Round(r.X+r.W)), int(math.Round(r.Y+r.H)),
	)
	xdraw.CatmullRom.Scale(dst, target, c.Image, c.Image.Bounds(), xdraw.Over, nil)
}
