/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package editor is the state container for a wallpaper composition: the
// placed items, the single-item selection, and the viewport zoom. All
// mutations go through typed operations so the model is testable without any
// rendering framework. The editor expects to be driven from one goroutine
// (the UI event loop); only export snapshotting is internally synchronized.
package editor

import (
	"encoding/json"
	"time"

	"walledit/internal/domain"
	"walledit/internal/geom"
	"walledit/internal/undo"
)

// Zoom bounds and step. Scale is the uniform canvas->view factor.
const (
	MinScale = 0.1
	MaxScale = 5.0
	ZoomStep = 0.1
	// FitMax caps the initial fit-to-viewport scale so small images are not
	// blown up past 90% on load.
	FitMax = 0.9
)

// Background describes the loaded background image.
type Background struct {
	Name   string  `json:"name,omitempty"`
	URL    string  `json:"url,omitempty"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Loaded reports whether image metadata has arrived. Items may be added
// before that; they are simply meaningless to render until it does.
func (b Background) Loaded() bool { return b.Width > 0 && b.Height > 0 }

// Document is the serializable composition state.
type Document struct {
	Background Background            `json:"background"`
	Texts      []domain.TextItem     `json:"texts"`
	Calendars  []domain.CalendarItem `json:"calendars"`
}

// Clone returns a deep copy of the document.
func (d Document) Clone() Document {
	out := d
	out.Texts = append([]domain.TextItem(nil), d.Texts...)
	out.Calendars = append([]domain.CalendarItem(nil), d.Calendars...)
	return out
}

// Editor owns a document plus the transient view state.
type Editor struct {
	doc        Document
	selectedID string
	scale      float64

	history *undo.Manager
	now     func() time.Time
}

// New creates an empty editor at 100% zoom.
func New() *Editor {
	return &Editor{
		scale:   1.0,
		history: undo.NewManager(undo.Config{MaxDepth: 100}),
		now:     time.Now,
	}
}

// Document returns a deep copy of the current composition.
func (e *Editor) Document() Document { return e.doc.Clone() }

// Restore replaces the document wholesale (load from disk, crash recovery).
// Selection is cleared; zoom is left alone.
func (e *Editor) Restore(d Document) {
	e.doc = d.Clone()
	e.selectedID = ""
}

// SetBackground records the image metadata and computes the initial
// fit-to-viewport scale from the available viewport size.
func (e *Editor) SetBackground(bg Background, availW, availH float64) {
	e.doc.Background = bg
	if bg.Loaded() && availW > 0 && availH > 0 {
		e.FitToViewport(availW, availH)
	}
}

// Background returns the current background metadata.
func (e *Editor) Background() Background { return e.doc.Background }

// --- selection ---

// Selected returns the selected item id, or "" when nothing is selected.
func (e *Editor) Selected() string { return e.selectedID }

// Select sets the selection; the empty id clears it. Selecting one item
// implicitly deselects any other.
func (e *Editor) Select(id string) {
	if id == "" {
		e.selectedID = ""
		return
	}
	if e.findText(id) != nil || e.findCalendar(id) != nil {
		e.selectedID = id
	}
}

// SelectedText returns the selected text item, or nil.
func (e *Editor) SelectedText() *domain.TextItem { return e.findText(e.selectedID) }

// SelectedCalendar returns the selected calendar item, or nil.
func (e *Editor) SelectedCalendar() *domain.CalendarItem { return e.findCalendar(e.selectedID) }

func (e *Editor) findText(id string) *domain.TextItem {
	for i := range e.doc.Texts {
		if e.doc.Texts[i].ID == id {
			return &e.doc.Texts[i]
		}
	}
	return nil
}

func (e *Editor) findCalendar(id string) *domain.CalendarItem {
	for i := range e.doc.Calendars {
		if e.doc.Calendars[i].ID == id {
			return &e.doc.Calendars[i]
		}
	}
	return nil
}

// --- item lifecycle ---

// AddText appends a text item with kind-dependent defaults, selects it and
// returns its id.
func (e *Editor) AddText(kind domain.TextKind) string {
	e.record()
	it := domain.NewTextItem(kind)
	e.doc.Texts = append(e.doc.Texts, it)
	e.selectedID = it.ID
	return it.ID
}

// AddCalendar appends a calendar defaulted to the current real-world month,
// selects it and returns its id.
func (e *Editor) AddCalendar() string {
	e.record()
	now := e.now()
	it := domain.NewCalendarItem(now.Year(), int(now.Month()))
	e.doc.Calendars = append(e.doc.Calendars, it)
	e.selectedID = it.ID
	return it.ID
}

// Delete removes the item from whichever collection contains it. Deleting
// the selected item clears the selection. Unknown ids are ignored.
func (e *Editor) Delete(id string) {
	found := false
	for i := range e.doc.Texts {
		if e.doc.Texts[i].ID == id {
			e.record()
			e.doc.Texts = append(e.doc.Texts[:i], e.doc.Texts[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		for i := range e.doc.Calendars {
			if e.doc.Calendars[i].ID == id {
				e.record()
				e.doc.Calendars = append(e.doc.Calendars[:i], e.doc.Calendars[i+1:]...)
				found = true
				break
			}
		}
	}
	if found && e.selectedID == id {
		e.selectedID = ""
	}
}

// DeleteKey handles a global Delete/Backspace press. The delete is
// suppressed while focus is inside a text entry so typing cannot destroy an
// unrelated item. Returns whether an item was deleted.
func (e *Editor) DeleteKey(focusInEditable bool) bool {
	if focusInEditable || e.selectedID == "" {
		return false
	}
	id := e.selectedID
	e.Delete(id)
	return true
}

// --- updates ---

// TextPatch is a merge-patch over a text item's mutable fields.
type TextPatch struct {
	Text       *string
	Position   *domain.Point
	FontSize   *int
	Color      *string
	FontFamily *string
	Bold       *bool
}

// CalendarPatch is a merge-patch over a calendar item's mutable fields.
// CellSize writes both linked cell dimensions.
type CalendarPatch struct {
	Position        *domain.Point
	Year            *int
	Month           *int
	FontSize        *int
	FontFamily      *string
	HeaderColor     *string
	WeekdayColor    *string
	SundayColor     *string
	SaturdayColor   *string
	DayColor        *string
	BackgroundColor *string
	Opacity         *float64
	CellSize        *int
	ShowWeekdays    *bool
	ShowHolidays    *bool
	HolidayColor    *string
}

// UpdateText merge-patches the matching text item; no-op if id not found.
// Numeric fields are clamped to their control ranges rather than rejected.
func (e *Editor) UpdateText(id string, p TextPatch) {
	it := e.findText(id)
	if it == nil {
		return
	}
	e.record()
	if p.Text != nil {
		it.Text = *p.Text
	}
	if p.Position != nil {
		it.Position = *p.Position
	}
	if p.FontSize != nil {
		it.FontSize = domain.ClampInt(*p.FontSize, domain.MinFontSize, domain.MaxFontSize)
	}
	if p.Color != nil {
		it.Color = *p.Color
	}
	if p.FontFamily != nil && domain.IsKnownFontFamily(*p.FontFamily) {
		it.FontFamily = *p.FontFamily
	}
	if p.Bold != nil {
		it.Bold = *p.Bold
	}
}

// UpdateCalendar merge-patches the matching calendar; no-op if id not found.
func (e *Editor) UpdateCalendar(id string, p CalendarPatch) {
	it := e.findCalendar(id)
	if it == nil {
		return
	}
	e.record()
	if p.Position != nil {
		it.Position = *p.Position
	}
	if p.Year != nil {
		it.Year = *p.Year
	}
	if p.Month != nil {
		it.Month = domain.ClampInt(*p.Month, 1, 12)
	}
	if p.FontSize != nil {
		it.FontSize = domain.ClampInt(*p.FontSize, domain.MinCalendarFontSize, domain.MaxCalendarFontSize)
	}
	if p.FontFamily != nil && domain.IsKnownFontFamily(*p.FontFamily) {
		it.FontFamily = *p.FontFamily
	}
	if p.HeaderColor != nil {
		it.HeaderColor = *p.HeaderColor
	}
	if p.WeekdayColor != nil {
		it.WeekdayColor = *p.WeekdayColor
	}
	if p.SundayColor != nil {
		it.SundayColor = *p.SundayColor
	}
	if p.SaturdayColor != nil {
		it.SaturdayColor = *p.SaturdayColor
	}
	if p.DayColor != nil {
		it.DayColor = *p.DayColor
	}
	if p.BackgroundColor != nil {
		it.BackgroundColor = *p.BackgroundColor
	}
	if p.Opacity != nil {
		it.Opacity = domain.ClampFloat(*p.Opacity, 0, 1)
	}
	if p.CellSize != nil {
		size := domain.ClampInt(*p.CellSize, domain.MinCellSize, domain.MaxCellSize)
		it.CellWidth = size
		it.CellHeight = size
	}
	if p.ShowWeekdays != nil {
		it.ShowWeekdays = *p.ShowWeekdays
	}
	if p.ShowHolidays != nil {
		it.ShowHolidays = *p.ShowHolidays
	}
	if p.HolidayColor != nil {
		it.HolidayColor = *p.HolidayColor
	}
}

// --- drag ---

// DragStart marks the item selected before any movement, so the dragged item
// renders on top from the first frame.
func (e *Editor) DragStart(id string) { e.Select(id) }

// DragBy applies a drag-stop delta given in view (screen) pixels. The delta
// is divided by the current scale before being added to the stored
// canvas-space position.
func (e *Editor) DragBy(id string, viewDX, viewDY float64) {
	d := geom.ViewToCanvas(geom.Pt{X: viewDX, Y: viewDY}, e.scale)
	if it := e.findText(id); it != nil {
		e.record()
		it.Position.X += d.X
		it.Position.Y += d.Y
		return
	}
	if it := e.findCalendar(id); it != nil {
		e.record()
		it.Position.X += d.X
		it.Position.Y += d.Y
	}
}

// --- zoom ---

// Scale returns the current zoom factor.
func (e *Editor) Scale() float64 { return e.scale }

// ZoomIn raises the scale by one step, clamped to MaxScale.
func (e *Editor) ZoomIn() { e.scale = domain.ClampFloat(e.scale+ZoomStep, MinScale, MaxScale) }

// ZoomOut lowers the scale by one step, clamped to MinScale.
func (e *Editor) ZoomOut() { e.scale = domain.ClampFloat(e.scale-ZoomStep, MinScale, MaxScale) }

// ResetZoom returns to 100%.
func (e *Editor) ResetZoom() { e.scale = 1.0 }

// FitToViewport picks the scale that fits the background into the available
// viewport, capped at FitMax so small images are not enlarged on load. Item
// positions are never rewritten by zoom changes.
func (e *Editor) FitToViewport(availW, availH float64) {
	bg := e.doc.Background
	if !bg.Loaded() || availW <= 0 || availH <= 0 {
		return
	}
	fit := availW / bg.Width
	if s := availH / bg.Height; s < fit {
		fit = s
	}
	if fit > FitMax {
		fit = FitMax
	}
	e.scale = domain.ClampFloat(fit, MinScale, MaxScale)
}

// --- export handoff ---

// BeginExport clears the selection and returns a deep snapshot of the
// document. Selection affordances can therefore never leak into a capture,
// and the rasterizer works on data the UI can no longer mutate.
func (e *Editor) BeginExport() Document {
	e.selectedID = ""
	return e.doc.Clone()
}

// --- history ---

// record pushes the pre-mutation state onto the undo history.
func (e *Editor) record() {
	blob, err := json.Marshal(e.doc)
	if err != nil {
		return
	}
	e.history.Push(undo.Snapshot{Blob: blob, TS: e.now()})
}

// Undo restores the most recent recorded state. Selection is cleared because
// the selected item may not exist in the restored state.
func (e *Editor) Undo() bool {
	cur, err := json.Marshal(e.doc)
	if err != nil {
		return false
	}
	s, ok := e.history.Undo(cur)
	if !ok {
		return false
	}
	var d Document
	if err := json.Unmarshal(s.Blob, &d); err != nil {
		return false
	}
	e.doc = d
	e.selectedID = ""
	return true
}

// Redo reverses the most recent Undo.
func (e *Editor) Redo() bool {
	cur, err := json.Marshal(e.doc)
	if err != nil {
		return false
	}
	s, ok := e.history.Redo(cur)
	if !ok {
		return false
	}
	var d Document
	if err := json.Unmarshal(s.Blob, &d); err != nil {
		return false
	}
	e.doc = d
	e.selectedID = ""
	return true
}
