/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

// This file defines the core data model for the wallpaper editor: the placed
// items that are composed over a background image. Items live in canvas-space
// coordinates (the background image's natural pixel grid); on-screen zoom
// never changes stored positions.

import (
	"crypto/rand"
	"encoding/hex"
)

// ItemKind discriminates the placed-item union.
type ItemKind string

const (
	KindText     ItemKind = "text"
	KindCalendar ItemKind = "calendar"
)

// TextKind selects the text item flavor; it is fixed at creation.
type TextKind string

const (
	TextTitle   TextKind = "title"
	TextContent TextKind = "content"
)

// Point is a position in canvas-space pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Font size bounds enforced by the property panel controls.
const (
	MinFontSize = 12
	MaxFontSize = 120

	MinCalendarFontSize = 10
	MaxCalendarFontSize = 32

	MinCellSize = 30
	MaxCellSize = 80
)

// TextItem is a free text overlay.
type TextItem struct {
	ID         string   `json:"id"`
	Kind       TextKind `json:"kind"`
	Text       string   `json:"text"`
	Position   Point    `json:"position"`
	FontSize   int      `json:"fontSize"`
	Color      string   `json:"color"`
	FontFamily string   `json:"fontFamily"`
	Bold       bool     `json:"bold"`
}

// CalendarItem is an auto-generated monthly calendar overlay.
type CalendarItem struct {
	ID       string `json:"id"`
	Position Point  `json:"position"`
	Year     int    `json:"year"`
	Month    int    `json:"month"` // 1-12

	FontSize        int     `json:"fontSize"`
	FontFamily      string  `json:"fontFamily"`
	HeaderColor     string  `json:"headerColor"`
	WeekdayColor    string  `json:"weekdayColor"`
	SundayColor     string  `json:"sundayColor"`
	SaturdayColor   string  `json:"saturdayColor"`
	DayColor        string  `json:"dayColor"`
	BackgroundColor string  `json:"backgroundColor"`
	Opacity         float64 `json:"opacity"` // 0..1

	// CellWidth and CellHeight are linked; a single control writes both.
	CellWidth    int  `json:"cellWidth"`
	CellHeight   int  `json:"cellHeight"`
	ShowWeekdays bool `json:"showWeekdays"`

	ShowHolidays bool   `json:"showHolidays"`
	HolidayColor string `json:"holidayColor"`
}

// FontFamilies is the fixed set offered by the property panel. The first
// entry is the default.
var FontFamilies = []string{
	"Pretendard",
	"Nanum Gothic",
	"Nanum Myeongjo",
	"Malgun Gothic",
	"Dotum",
	"Gulim",
	"Arial",
	"Helvetica",
	"Verdana",
	"Tahoma",
	"Trebuchet MS",
	"Impact",
	"Times New Roman",
	"Georgia",
	"Garamond",
	"Courier New",
	"Comic Sans MS",
}

// DefaultFontFamily is the family new items are created with.
const DefaultFontFamily = "Pretendard"

// IsKnownFontFamily reports whether name is in the fixed family set.
func IsKnownFontFamily(name string) bool {
	for _, f := range FontFamilies {
		if f == name {
			return true
		}
	}
	return false
}

// NewID returns an opaque unique item identifier.
func NewID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		// crypto/rand never fails on supported platforms; keep ids flowing.
		for i := range b {
			b[i] = byte(i * 31)
		}
	}
	return hex.EncodeToString(b[:])
}

// NewTextItem creates a text item with kind-dependent defaults at the fixed
// initial offset.
func NewTextItem(kind TextKind) TextItem {
	it := TextItem{
		ID:         NewID(),
		Kind:       kind,
		Position:   Point{X: 50, Y: 50},
		Color:      "#000000",
		FontFamily: DefaultFontFamily,
	}
	if kind == TextTitle {
		it.Text = "제목을 입력하세요"
		it.FontSize = 64
		it.Bold = true
	} else {
		it.Text = "내용을 입력하세요\n여러 줄을 입력할 수 있습니다."
		it.FontSize = 24
	}
	return it
}

// NewCalendarItem creates a calendar item for the given month with the
// default style at the fixed initial offset.
func NewCalendarItem(year, month int) CalendarItem {
	return CalendarItem{
		ID:       NewID(),
		Position: Point{X: 100, Y: 100},
		Year:     year,
		Month:    month,

		FontSize:        16,
		FontFamily:      DefaultFontFamily,
		HeaderColor:     "#ffffff",
		WeekdayColor:    "#ffffff",
		SundayColor:     "#ff4444",
		SaturdayColor:   "#4444ff",
		DayColor:        "#ffffff",
		BackgroundColor: "#000000",
		Opacity:         1,

		CellWidth:    40,
		CellHeight:   40,
		ShowWeekdays: true,

		ShowHolidays: true,
		HolidayColor: "#ff4444",
	}
}

// ClampInt bounds v to [lo, hi].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampFloat bounds v to [lo, hi].
func ClampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
