/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

import (
	"fmt"
	"image/color"
	"strings"
)

// ParseHexColor parses "#rgb" or "#rrggbb" into an opaque RGBA color.
func ParseHexColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		return color.RGBA{}, fmt.Errorf("color %q: missing #", s)
	}
	hexPart := s[1:]
	var r, g, b uint8
	switch len(hexPart) {
	case 3:
		n, err := fmt.Sscanf(hexPart, "%1x%1x%1x", &r, &g, &b)
		if err != nil || n != 3 {
			return color.RGBA{}, fmt.Errorf("color %q: bad short hex", s)
		}
		r *= 17
		g *= 17
		b *= 17
	case 6:
		n, err := fmt.Sscanf(hexPart, "%02x%02x%02x", &r, &g, &b)
		if err != nil || n != 3 {
			return color.RGBA{}, fmt.Errorf("color %q: bad hex", s)
		}
	default:
		return color.RGBA{}, fmt.Errorf("color %q: unexpected length", s)
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// MustHexColor is ParseHexColor for trusted literals; invalid input yields
// opaque black instead of panicking so rendering degrades gracefully.
func MustHexColor(s string) color.RGBA {
	c, err := ParseHexColor(s)
	if err != nil {
		return color.RGBA{A: 255}
	}
	return c
}

// WithAlpha scales the color's alpha by opacity in [0,1].
func WithAlpha(c color.RGBA, opacity float64) color.RGBA {
	o := ClampFloat(opacity, 0, 1)
	c.A = uint8(float64(c.A)*o + 0.5)
	return c
}
