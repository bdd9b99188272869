/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

import "testing"

func TestNewTextItemDefaults(t *testing.T) {
	title := NewTextItem(TextTitle)
	if !title.Bold || title.FontSize != 64 {
		t.Fatalf("title defaults wrong: %+v", title)
	}
	content := NewTextItem(TextContent)
	if content.Bold || content.FontSize != 24 {
		t.Fatalf("content defaults wrong: %+v", content)
	}
	if title.ID == content.ID || title.ID == "" {
		t.Fatalf("ids must be unique and non-empty")
	}
	if title.Position.X != 50 || title.Position.Y != 50 {
		t.Fatalf("unexpected initial offset: %+v", title.Position)
	}
}

func TestNewCalendarItemDefaults(t *testing.T) {
	c := NewCalendarItem(2025, 10)
	if c.Year != 2025 || c.Month != 10 {
		t.Fatalf("month selection lost: %+v", c)
	}
	if c.CellWidth != c.CellHeight {
		t.Fatalf("cell sizes must be linked: %d vs %d", c.CellWidth, c.CellHeight)
	}
	if !c.ShowWeekdays || !c.ShowHolidays {
		t.Fatalf("weekdays and holidays default on")
	}
	if c.Opacity != 1 {
		t.Fatalf("opacity default 1, got %v", c.Opacity)
	}
}

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#ff4444")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if c.R != 0xff || c.G != 0x44 || c.B != 0x44 || c.A != 255 {
		t.Fatalf("unexpected color: %+v", c)
	}
	s, err := ParseHexColor("#fff")
	if err != nil {
		t.Fatalf("short parse: %v", err)
	}
	if s.R != 255 || s.G != 255 || s.B != 255 {
		t.Fatalf("short form expanded wrong: %+v", s)
	}
	if _, err := ParseHexColor("ff4444"); err == nil {
		t.Fatalf("expected error without #")
	}
	if _, err := ParseHexColor("#ff44"); err == nil {
		t.Fatalf("expected error for odd length")
	}
}

func TestWithAlpha(t *testing.T) {
	c := WithAlpha(MustHexColor("#000000"), 0.5)
	if c.A < 126 || c.A > 129 {
		t.Fatalf("expected half alpha, got %d", c.A)
	}
	if a := WithAlpha(MustHexColor("#000000"), 2).A; a != 255 {
		t.Fatalf("opacity must clamp to 1, got alpha %d", a)
	}
}

func TestIsKnownFontFamily(t *testing.T) {
	if !IsKnownFontFamily(DefaultFontFamily) {
		t.Fatalf("default family must be known")
	}
	if IsKnownFontFamily("Wingdings") {
		t.Fatalf("unexpected family accepted")
	}
}
