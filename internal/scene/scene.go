/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package scene flattens an editor document into an ordered list of draw
// commands in canvas space. Renderers consume the command list without
// knowing anything about items, selection or zoom; the editor never needs to
// know how drawing happens. Selection affordances are absent by construction
// because scenes are built from export snapshots.
package scene

import (
	"image"
	"image/color"
	"strconv"

	"walledit/internal/calendar"
	"walledit/internal/domain"
	"walledit/internal/editor"
	"walledit/internal/geom"
	"walledit/internal/holiday"
)

// Calendar overlay layout constants, in canvas pixels.
const (
	calPadding    = 16  // inner padding around the whole overlay
	calGap        = 4   // gap between grid cells
	calHeaderGap  = 12  // space below the year/month header
	calWeekdayGap = 8   // space below the weekday label row
	calRadius     = 8   // background corner radius
	headerScale   = 1.2 // header font = item font * 1.2
	weekdayScale  = 0.8 // weekday labels = item font * 0.8
	lineHeight    = 1.25
)

// Command is one draw instruction. Exactly one of the concrete types below.
type Command interface{ isCommand() }

// DrawImage paints an image stretched into Rect.
type DrawImage struct {
	Image image.Image
	Rect  geom.Rect
}

// DrawRect fills an axis-aligned (optionally rounded) rectangle.
type DrawRect struct {
	Rect   geom.Rect
	Radius float64
	Fill   color.RGBA
}

// DrawText paints a single run of text. When Box is non-nil the run is
// centered inside it; otherwise Pos is the top-left corner of the line.
type DrawText struct {
	Text       string
	Pos        geom.Pt
	Box        *geom.Rect
	FontFamily string
	FontSize   float64
	Bold       bool
	Color      color.RGBA
}

func (DrawImage) isCommand() {}
func (DrawRect) isCommand()  {}
func (DrawText) isCommand()  {}

// Scene is the flattened composition.
type Scene struct {
	Size     geom.Size
	Commands []Command
}

// Build flattens the document over the given background image. Items are
// emitted in model order: texts first, then calendars, matching the editor's
// stacking. The background image may be nil for size-only previews.
func Build(doc editor.Document, background image.Image) Scene {
	return build(doc, background, "")
}

// BuildPreview is Build with the given item's commands emitted last, so the
// selection renders above every other item while it is edited or dragged.
// An empty or unknown id gives the same scene as Build.
func BuildPreview(doc editor.Document, background image.Image, selectedID string) Scene {
	return build(doc, background, selectedID)
}

func build(doc editor.Document, background image.Image, topID string) Scene {
	sc := Scene{Size: geom.Size{W: doc.Background.Width, H: doc.Background.Height}}
	if background != nil {
		b := background.Bounds()
		if !doc.Background.Loaded() {
			sc.Size = geom.Size{W: float64(b.Dx()), H: float64(b.Dy())}
		}
		sc.Commands = append(sc.Commands, DrawImage{
			Image: background,
			Rect:  geom.R(0, 0, sc.Size.W, sc.Size.H),
		})
	}
	var top []Command
	for _, it := range doc.Texts {
		if topID != "" && it.ID == topID {
			top = textCommands(it)
			continue
		}
		sc.Commands = append(sc.Commands, textCommands(it)...)
	}
	for _, it := range doc.Calendars {
		if topID != "" && it.ID == topID {
			top = calendarCommands(it)
			continue
		}
		sc.Commands = append(sc.Commands, calendarCommands(it)...)
	}
	sc.Commands = append(sc.Commands, top...)
	return sc
}

// textCommands splits multi-line text into one command per line.
func textCommands(it domain.TextItem) []Command {
	col := domain.MustHexColor(it.Color)
	size := float64(it.FontSize)
	var cmds []Command
	y := it.Position.Y
	start := 0
	line := func(s string) {
		cmds = append(cmds, DrawText{
			Text:       s,
			Pos:        geom.Pt{X: it.Position.X, Y: y},
			FontFamily: it.FontFamily,
			FontSize:   size,
			Bold:       it.Bold,
			Color:      col,
		})
		y += size * lineHeight
	}
	for i := 0; i < len(it.Text); i++ {
		if it.Text[i] == '\n' {
			line(it.Text[start:i])
			start = i + 1
		}
	}
	line(it.Text[start:])
	return cmds
}

// CalendarSize returns the overlay's outer box in canvas pixels.
func CalendarSize(it domain.CalendarItem) geom.Size {
	cw := float64(it.CellWidth)
	ch := float64(it.CellHeight)
	w := 2*calPadding + 7*cw + 6*calGap
	h := 2*calPadding + headerHeight(it) + calHeaderGap + 6*ch + 5*calGap
	if it.ShowWeekdays {
		h += ch + calWeekdayGap
	}
	return geom.Size{W: w, H: h}
}

func headerHeight(it domain.CalendarItem) float64 {
	return float64(it.FontSize) * headerScale * lineHeight
}

// calendarCommands lays out the background card, header, optional weekday
// row and the 42-cell day grid. The item's opacity applies to every color.
func calendarCommands(it domain.CalendarItem) []Command {
	size := CalendarSize(it)
	cw := float64(it.CellWidth)
	ch := float64(it.CellHeight)
	fs := float64(it.FontSize)
	x0 := it.Position.X
	y0 := it.Position.Y

	tint := func(hex string) color.RGBA {
		return domain.WithAlpha(domain.MustHexColor(hex), it.Opacity)
	}

	cmds := []Command{DrawRect{
		Rect:   geom.R(x0, y0, size.W, size.H),
		Radius: calRadius,
		Fill:   tint(it.BackgroundColor),
	}}

	// header, centered across the full width
	headerBox := geom.R(x0+calPadding, y0+calPadding, size.W-2*calPadding, headerHeight(it))
	cmds = append(cmds, DrawText{
		Text:       headerText(it.Year, it.Month),
		Box:        &headerBox,
		FontFamily: it.FontFamily,
		FontSize:   fs * headerScale,
		Bold:       true,
		Color:      tint(it.HeaderColor),
	})

	y := y0 + calPadding + headerHeight(it) + calHeaderGap

	columnColor := func(weekdayIdx int) color.RGBA {
		switch weekdayIdx {
		case 0:
			return tint(it.SundayColor)
		case 6:
			return tint(it.SaturdayColor)
		default:
			return tint(it.WeekdayColor)
		}
	}

	if it.ShowWeekdays {
		for i, label := range calendar.Weekdays {
			box := geom.R(x0+calPadding+float64(i)*(cw+calGap), y, cw, ch)
			cmds = append(cmds, DrawText{
				Text:       label,
				Box:        &box,
				FontFamily: it.FontFamily,
				FontSize:   fs * weekdayScale,
				Bold:       true,
				Color:      columnColor(i),
			})
		}
		y += ch + calWeekdayGap
	}

	holidays := map[int]string{}
	if it.ShowHolidays {
		holidays = holiday.For(it.Year, it.Month)
	}
	grid := calendar.Grid(it.Year, it.Month)
	for i, cell := range grid {
		if cell.Blank() {
			continue
		}
		col := calendar.WeekdayOf(i)
		row := i / 7
		box := geom.R(
			x0+calPadding+float64(col)*(cw+calGap),
			y+float64(row)*(ch+calGap),
			cw, ch,
		)
		dayColor := tint(it.DayColor)
		switch {
		case it.ShowHolidays && holidays[cell.Day] != "":
			dayColor = tint(it.HolidayColor)
		case col == 0:
			dayColor = tint(it.SundayColor)
		case col == 6:
			dayColor = tint(it.SaturdayColor)
		}
		cmds = append(cmds, DrawText{
			Text:       strconv.Itoa(cell.Day),
			Box:        &box,
			FontFamily: it.FontFamily,
			FontSize:   fs,
			Color:      dayColor,
		})
	}
	return cmds
}

func headerText(year, month int) string {
	return strconv.Itoa(year) + "년 " + strconv.Itoa(month) + "월"
}

// TextSize approximates a text item's bounding box. Width assumes a 0.7em
// average advance; wide CJK runs get a generous grab target, which is all
// hit testing needs.
func TextSize(it domain.TextItem) geom.Size {
	size := float64(it.FontSize)
	lines := 1
	maxRunes := 0
	runes := 0
	for _, r := range it.Text {
		if r == '\n' {
			lines++
			if runes > maxRunes {
				maxRunes = runes
			}
			runes = 0
			continue
		}
		runes++
	}
	if runes > maxRunes {
		maxRunes = runes
	}
	return geom.Size{
		W: float64(maxRunes) * size * 0.7,
		H: float64(lines) * size * lineHeight,
	}
}

// ItemBounds returns the canvas-space box of an item in the document, or
// false when the id is unknown.
func ItemBounds(doc editor.Document, id string) (geom.Rect, bool) {
	for _, it := range doc.Texts {
		if it.ID == id {
			s := TextSize(it)
			return geom.R(it.Position.X, it.Position.Y, s.W, s.H), true
		}
	}
	for _, it := range doc.Calendars {
		if it.ID == id {
			s := CalendarSize(it)
			return geom.R(it.Position.X, it.Position.Y, s.W, s.H), true
		}
	}
	return geom.Rect{}, false
}

// ItemAt returns the id of the topmost item containing the canvas-space
// point. Calendars stack above texts; within a kind, later items win.
func ItemAt(doc editor.Document, p geom.Pt) string {
	for i := len(doc.Calendars) - 1; i >= 0; i-- {
		it := doc.Calendars[i]
		s := CalendarSize(it)
		if geom.R(it.Position.X, it.Position.Y, s.W, s.H).Contains(p) {
			return it.ID
		}
	}
	for i := len(doc.Texts) - 1; i >= 0; i-- {
		it := doc.Texts[i]
		s := TextSize(it)
		if geom.R(it.Position.X, it.Position.Y, s.W, s.H).Contains(p) {
			return it.ID
		}
	}
	return ""
}
