/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package render

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FontLibrary maps the editor's family names to loaded OpenType fonts.
// Families not loaded (for instance the Korean ones, when no font dir is
// configured) resolve to the embedded Go fonts, which keeps rendering
// working for Latin text and digits.

type FontLibrary struct {
	mu    sync.Mutex
	fonts map[fontKey]*opentype.Font
	faces map[faceKey]font.Face
}

type fontKey struct {
	family string
	bold   bool
}

type faceKey struct {
	family string
	bold   bool
	size   float64
}

func NewFontLibrary() *FontLibrary {
	return &FontLibrary{
		fonts: make(map[fontKey]*opentype.Font),
		faces: make(map[faceKey]font.Face),
	}
}

// LoadTTF registers a font file for the given family and weight.
func (fl *FontLibrary) LoadTTF(family string, bold bool, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read font %s: %w", path, err)
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return fmt.Errorf("parse font %s: %w", path, err)
	}
	fl.mu.Lock()
	fl.fonts[fontKey{family: family, bold: bold}] = f
	fl.mu.Unlock()
	return nil
}

var (
	fallbackOnce    sync.Once
	fallbackRegular *opentype.Font
	fallbackBold    *opentype.Font
)

func fallbackFont(bold bool) *opentype.Font {
	fallbackOnce.Do(func() {
		fallbackRegular, _ = opentype.Parse(goregular.TTF)
		fallbackBold, _ = opentype.Parse(gobold.TTF)
	})
	if bold && fallbackBold != nil {
		return fallbackBold
	}
	return fallbackRegular
}

func (fl *FontLibrary) find(family string, bold bool) *opentype.Font {
	fl.mu.Lock()
	defer fl.mu.Unlock()
	if f, ok := fl.fonts[fontKey{family: family, bold: bold}]; ok {
		return f
	}
	// same family, other weight, before falling back entirely
	if f, ok := fl.fonts[fontKey{family: family, bold: !bold}]; ok {
		return f
	}
	return nil
}

// Face resolves a sized face for the family/weight, caching the result.
// Resolution never fails; unknown families use the embedded fallback.
func (fl *FontLibrary) Face(family string, size float64, bold bool) font.Face {
	if size <= 0 {
		size = 12
	}
	key := faceKey{family: family, bold: bold, size: size}
	fl.mu.Lock()
	if face, ok := fl.faces[key]; ok {
		fl.mu.Unlock()
		return face
	}
	fl.mu.Unlock()

	f := fl.find(family, bold)
	if f == nil {
		f = fallbackFont(bold)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		face, _ = opentype.NewFace(fallbackFont(false), &opentype.FaceOptions{Size: size, DPI: 72})
	}
	fl.mu.Lock()
	fl.faces[key] = face
	fl.mu.Unlock()
	return face
}
