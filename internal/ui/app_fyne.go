//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package ui

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"walledit/internal/config"
	"walledit/internal/crash"
	"walledit/internal/domain"
	"walledit/internal/editor"
	"walledit/internal/export"
	"walledit/internal/geom"
	applog "walledit/internal/log"
	"walledit/internal/relay"
	"walledit/internal/render"
	"walledit/internal/scene"
	"walledit/internal/storage"
)

// compositionCanvas shows the composed wallpaper at the editor's zoom and
// forwards taps and drags to the editor model.
type compositionCanvas struct {
	widget.BaseWidget

	ed         *editor.Editor
	fonts      *render.FontLibrary
	background image.Image
	img        *canvas.Image

	dragID   string
	onChange func() // fired after any model mutation through the canvas
}

func newCompositionCanvas(ed *editor.Editor, fonts *render.FontLibrary) *compositionCanvas {
	c := &compositionCanvas{ed: ed, fonts: fonts, img: canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 1, 1)))}
	c.img.FillMode = canvas.ImageFillStretch
	c.ExtendBaseWidget(c)
	return c
}

func (c *compositionCanvas) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(c.img)
}

// Redraw rebuilds the preview raster from the current document. The selected
// item is drawn on top of everything else.
func (c *compositionCanvas) Redraw() {
	doc := c.ed.Document()
	sc := scene.BuildPreview(doc, c.background, c.ed.Selected())
	if sc.Size.W <= 0 || sc.Size.H <= 0 {
		return
	}
	img, err := render.Render(sc, c.fonts, render.Options{SuperSample: 1})
	if err != nil {
		applog.WithComponent("ui").Warn("preview render failed", slog.Any("err", err))
		return
	}
	scale := c.ed.Scale()
	c.img.Image = img
	c.img.SetMinSize(fyne.NewSize(float32(sc.Size.W*scale), float32(sc.Size.H*scale)))
	c.img.Refresh()
	c.Refresh()
}

func (c *compositionCanvas) canvasPoint(pos fyne.Position) geom.Pt {
	return geom.ViewToCanvas(geom.Pt{X: float64(pos.X), Y: float64(pos.Y)}, c.ed.Scale())
}

func (c *compositionCanvas) Tapped(ev *fyne.PointEvent) {
	c.ed.Select(scene.ItemAt(c.ed.Document(), c.canvasPoint(ev.Position)))
	if c.onChange != nil {
		c.onChange()
	}
}

func (c *compositionCanvas) Dragged(ev *fyne.DragEvent) {
	if c.dragID == "" {
		c.dragID = scene.ItemAt(c.ed.Document(), c.canvasPoint(ev.Position))
		if c.dragID == "" {
			return
		}
		c.ed.DragStart(c.dragID)
	}
	c.ed.DragBy(c.dragID, float64(ev.Dragged.DX), float64(ev.Dragged.DY))
	c.Redraw()
}

func (c *compositionCanvas) DragEnd() {
	c.dragID = ""
	if c.onChange != nil {
		c.onChange()
	}
}

// Run starts the Fyne-based desktop editor. Pass an optional layout
// directory to open immediately.
func Run(layoutDir string) error {
	applog.Init(applog.FromEnv())
	l := applog.WithComponent("ui")
	l.Info("starting UI")

	cfg, relayToken, err := config.Load()
	if err != nil {
		l.Warn("config load failed, using defaults", slog.Any("err", err))
		cfg = config.Defaults()
	}

	var h *storage.Handle
	defer func() { crash.Recover(h) }()

	fyneApp := app.NewWithID("walledit")
	w := fyneApp.NewWindow("Wallpaper Editor")
	prefs := fyneApp.Preferences()
	winW := prefs.IntWithFallback("window.width", 1200)
	winH := prefs.IntWithFallback("window.height", 800)
	if winW < 800 {
		winW = 800
	}
	if winH < 600 {
		winH = 600
	}
	w.Resize(fyne.NewSize(float32(winW), float32(winH)))

	ed := editor.New()
	fonts := render.NewFontLibrary()
	if cfg.Editor.FontDir != "" {
		loadFontDir(fonts, cfg.Editor.FontDir, l)
	}
	fetcher := relay.NewClient(relayToken)
	exporter := export.NewExporter(fonts)

	status := widget.NewLabel("Ready")
	comp := newCompositionCanvas(ed, fonts)
	zoomLabel := widget.NewLabel("100%")

	var refreshProps func()
	refreshAll := func() {
		zoomLabel.SetText(fmt.Sprintf("%d%%", int(ed.Scale()*100+0.5)))
		comp.Redraw()
		refreshProps()
	}
	comp.onChange = func() { refreshAll() }

	viewportSize := func() (float64, float64) {
		sz := w.Canvas().Size()
		return float64(sz.Width), float64(sz.Height)
	}

	// loadBackground fetches the image asynchronously; item controls stay
	// usable while the fetch runs.
	loadBackground := func(bg editor.Background) {
		status.SetText("Loading background…")
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Relay.TimeoutMs)*time.Millisecond)
			defer cancel()
			img, ferr := fetcher.FetchImage(ctx, bg.URL)
			fyne.Do(func() {
				if ferr != nil {
					l.Error("background load failed", slog.String("url", bg.URL), slog.Any("err", ferr))
					dialog.ShowError(fmt.Errorf("load background: %w", ferr), w)
					status.SetText("Background load failed.")
					return
				}
				b := img.Bounds()
				bg.Width = float64(b.Dx())
				bg.Height = float64(b.Dy())
				availW, availH := viewportSize()
				ed.SetBackground(bg, availW, availH)
				comp.background = img
				status.SetText(fmt.Sprintf("Background: %s (%dx%d)", bg.Name, b.Dx(), b.Dy()))
				refreshAll()
			})
		}()
	}

	// --- property panel ---

	propsBox := container.NewVBox()

	intEntry := func(val int, apply func(int)) *widget.Entry {
		e := widget.NewEntry()
		e.SetText(strconv.Itoa(val))
		e.OnSubmitted = func(s string) {
			if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
				apply(n)
				refreshAll()
			}
		}
		return e
	}
	colorEntry := func(val string, apply func(string)) *widget.Entry {
		e := widget.NewEntry()
		e.SetText(val)
		e.OnSubmitted = func(s string) {
			s = strings.TrimSpace(s)
			if _, err := domain.ParseHexColor(s); err == nil {
				apply(s)
				refreshAll()
			}
		}
		return e
	}

	buildTextProps := func(it domain.TextItem) fyne.CanvasObject {
		id := it.ID
		textEntry := widget.NewMultiLineEntry()
		textEntry.SetText(it.Text)
		textEntry.OnChanged = func(s string) {
			ed.UpdateText(id, editor.TextPatch{Text: &s})
			comp.Redraw()
		}
		sizeEntry := intEntry(it.FontSize, func(n int) { ed.UpdateText(id, editor.TextPatch{FontSize: &n}) })
		colEntry := colorEntry(it.Color, func(s string) { ed.UpdateText(id, editor.TextPatch{Color: &s}) })
		familySel := widget.NewSelect(domain.FontFamilies, func(s string) {
			ed.UpdateText(id, editor.TextPatch{FontFamily: &s})
			comp.Redraw()
		})
		familySel.SetSelected(it.FontFamily)
		boldCheck := widget.NewCheck("Bold", func(v bool) {
			ed.UpdateText(id, editor.TextPatch{Bold: &v})
			comp.Redraw()
		})
		boldCheck.SetChecked(it.Bold)
		return container.NewVBox(
			widget.NewLabel(fmt.Sprintf("Text (%s)", it.Kind)),
			textEntry,
			widget.NewForm(
				widget.NewFormItem("Size", sizeEntry),
				widget.NewFormItem("Color", colEntry),
				widget.NewFormItem("Font", familySel),
			),
			boldCheck,
		)
	}

	buildCalendarProps := func(it domain.CalendarItem) fyne.CanvasObject {
		id := it.ID
		yearEntry := intEntry(it.Year, func(n int) { ed.UpdateCalendar(id, editor.CalendarPatch{Year: &n}) })
		monthEntry := intEntry(it.Month, func(n int) { ed.UpdateCalendar(id, editor.CalendarPatch{Month: &n}) })
		sizeEntry := intEntry(it.FontSize, func(n int) { ed.UpdateCalendar(id, editor.CalendarPatch{FontSize: &n}) })
		cellEntry := intEntry(it.CellWidth, func(n int) { ed.UpdateCalendar(id, editor.CalendarPatch{CellSize: &n}) })
		opacity := widget.NewSlider(0, 1)
		opacity.Step = 0.05
		opacity.Value = it.Opacity
		opacity.OnChanged = func(v float64) {
			ed.UpdateCalendar(id, editor.CalendarPatch{Opacity: &v})
			comp.Redraw()
		}
		headerCol := colorEntry(it.HeaderColor, func(s string) { ed.UpdateCalendar(id, editor.CalendarPatch{HeaderColor: &s}) })
		dayCol := colorEntry(it.DayColor, func(s string) { ed.UpdateCalendar(id, editor.CalendarPatch{DayColor: &s}) })
		bgCol := colorEntry(it.BackgroundColor, func(s string) { ed.UpdateCalendar(id, editor.CalendarPatch{BackgroundColor: &s}) })
		holidayCol := colorEntry(it.HolidayColor, func(s string) { ed.UpdateCalendar(id, editor.CalendarPatch{HolidayColor: &s}) })
		weekdays := widget.NewCheck("Weekday row", func(v bool) {
			ed.UpdateCalendar(id, editor.CalendarPatch{ShowWeekdays: &v})
			comp.Redraw()
		})
		weekdays.SetChecked(it.ShowWeekdays)
		holidays := widget.NewCheck("Holidays", func(v bool) {
			ed.UpdateCalendar(id, editor.CalendarPatch{ShowHolidays: &v})
			comp.Redraw()
		})
		holidays.SetChecked(it.ShowHolidays)
		return container.NewVBox(
			widget.NewLabel(fmt.Sprintf("Calendar %d/%d", it.Year, it.Month)),
			widget.NewForm(
				widget.NewFormItem("Year", yearEntry),
				widget.NewFormItem("Month", monthEntry),
				widget.NewFormItem("Font size", sizeEntry),
				widget.NewFormItem("Cell size", cellEntry),
				widget.NewFormItem("Header", headerCol),
				widget.NewFormItem("Days", dayCol),
				widget.NewFormItem("Card", bgCol),
				widget.NewFormItem("Holiday", holidayCol),
			),
			widget.NewLabel("Opacity"), opacity,
			weekdays, holidays,
		)
	}

	refreshProps = func() {
		propsBox.Objects = nil
		if it := ed.SelectedText(); it != nil {
			propsBox.Objects = []fyne.CanvasObject{buildTextProps(*it)}
		} else if it := ed.SelectedCalendar(); it != nil {
			propsBox.Objects = []fyne.CanvasObject{buildCalendarProps(*it)}
		} else {
			propsBox.Objects = []fyne.CanvasObject{widget.NewLabel("Nothing selected")}
		}
		propsBox.Refresh()
	}

	// --- toolbar ---

	addTitleBtn := widget.NewButton("Add Title", func() {
		ed.AddText(domain.TextTitle)
		refreshAll()
	})
	addContentBtn := widget.NewButton("Add Text", func() {
		ed.AddText(domain.TextContent)
		refreshAll()
	})
	addCalendarBtn := widget.NewButton("Add Calendar", func() {
		ed.AddCalendar()
		refreshAll()
	})
	deleteBtn := widget.NewButton("Delete", func() {
		if id := ed.Selected(); id != "" {
			ed.Delete(id)
			refreshAll()
		}
	})
	undoBtn := widget.NewButton("Undo", func() {
		if ed.Undo() {
			refreshAll()
		}
	})
	redoBtn := widget.NewButton("Redo", func() {
		if ed.Redo() {
			refreshAll()
		}
	})
	zoomOutBtn := widget.NewButton("-", func() { ed.ZoomOut(); refreshAll() })
	zoomInBtn := widget.NewButton("+", func() { ed.ZoomIn(); refreshAll() })
	zoomResetBtn := widget.NewButton("100%", func() { ed.ResetZoom(); refreshAll() })
	fitBtn := widget.NewButton("Fit", func() {
		availW, availH := viewportSize()
		ed.FitToViewport(availW, availH)
		refreshAll()
	})

	formatSel := widget.NewSelect([]string{"png", "jpg", "pdf"}, nil)
	formatSel.SetSelected(cfg.Editor.ExportFormat)
	exportBtn := widget.NewButton("Export", func() {
		format, perr := export.ParseFormat(formatSel.Selected)
		if perr != nil {
			dialog.ShowError(perr, w)
			return
		}
		doc := ed.BeginExport()
		refreshProps()
		sc := scene.Build(doc, comp.background)
		outDir := cfg.Editor.ExportDir
		if outDir == "" {
			if h != nil {
				outDir = h.ExportsDir()
			} else {
				outDir, _ = os.Getwd()
			}
		}
		base := export.BaseName(doc.Background.Name, doc.Background.URL)
		status.SetText("Exporting…")
		go func() {
			path, xerr := exporter.Export(sc, outDir, base, format)
			fyne.Do(func() {
				if xerr != nil {
					l.Error("export failed", slog.Any("err", xerr))
					dialog.ShowError(fmt.Errorf("export: %w", xerr), w)
					status.SetText("Export failed.")
					return
				}
				l.Info("export written", slog.String("path", path))
				status.SetText("Exported: " + path)
			})
		}()
	})

	toolbar := container.NewHBox(
		addTitleBtn, addContentBtn, addCalendarBtn, deleteBtn,
		widget.NewSeparator(), undoBtn, redoBtn,
		widget.NewSeparator(), zoomOutBtn, zoomLabel, zoomInBtn, zoomResetBtn, fitBtn,
		widget.NewSeparator(), formatSel, exportBtn,
	)

	canvasScroll := container.NewScroll(comp)
	right := container.NewVScroll(propsBox)
	content := container.NewBorder(toolbar, status, nil, right, canvasScroll)
	w.SetContent(content)

	// --- menu / persistence ---

	syncHandle := func() {
		if h != nil {
			h.Layout.Document = ed.Document()
		}
	}

	openLayout := func(root string) {
		oh, oerr := storage.Open(root)
		if oerr != nil {
			l.Error("open layout failed", slog.String("root", root), slog.Any("err", oerr))
			dialog.ShowError(oerr, w)
			return
		}
		h = oh
		ed.Restore(h.Layout.Document)
		w.SetTitle("Wallpaper Editor — " + displayTitle(h))
		status.SetText("Opened: " + root)
		if url := h.Layout.Document.Background.URL; url != "" {
			loadBackground(h.Layout.Document.Background)
		}
		refreshAll()
	}

	newItem := fyne.NewMenuItem("New…", func() {
		urlEntry := widget.NewEntry()
		urlEntry.SetPlaceHolder("https://…/background.jpg")
		nameEntry := widget.NewEntry()
		nameEntry.SetPlaceHolder("Display name (optional)")
		form := dialog.NewForm("New Composition", "Create", "Cancel", []*widget.FormItem{
			widget.NewFormItem("Image URL", urlEntry),
			widget.NewFormItem("Name", nameEntry),
		}, func(ok bool) {
			if !ok {
				return
			}
			url := strings.TrimSpace(urlEntry.Text)
			if url == "" {
				dialog.ShowInformation("New Composition", "Please enter an image URL.", w)
				return
			}
			name := strings.TrimSpace(nameEntry.Text)
			if name == "" {
				name = relay.DisplayName(url)
			}
			h = nil
			ed.Restore(editor.Document{})
			comp.background = nil
			loadBackground(editor.Background{Name: name, URL: url})
			w.SetTitle("Wallpaper Editor — " + name)
			refreshAll()
		}, w)
		form.Show()
	})
	openItem := fyne.NewMenuItem("Open…", func() {
		fd := dialog.NewFolderOpen(func(uri fyne.ListableURI, derr error) {
			if derr != nil || uri == nil {
				return
			}
			openLayout(uri.Path())
		}, w)
		fd.Show()
	})
	saveItem := fyne.NewMenuItem("Save", func() {
		if h == nil {
			fd := dialog.NewFolderOpen(func(uri fyne.ListableURI, derr error) {
				if derr != nil || uri == nil {
					return
				}
				doc := ed.Document()
				nh, ierr := storage.Init(uri.Path(), doc.Background.Name, doc)
				if ierr != nil {
					dialog.ShowError(ierr, w)
					return
				}
				h = nh
				status.SetText("Saved: " + h.ManifestPath)
			}, w)
			fd.Show()
			return
		}
		syncHandle()
		if serr := storage.Save(h); serr != nil {
			l.Error("save failed", slog.Any("err", serr))
			dialog.ShowError(serr, w)
			return
		}
		status.SetText("Saved: " + h.ManifestPath)
	})
	saveItem.Shortcut = &desktop.CustomShortcut{KeyName: fyne.KeyS, Modifier: fyne.KeyModifierControl}
	w.SetMainMenu(fyne.NewMainMenu(fyne.NewMenu("File", newItem, openItem, saveItem)))

	// Delete key removes the selection unless a text entry has focus.
	// Focus on non-editable widgets (buttons, selects, sliders) must not
	// swallow the delete.
	w.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if ev.Name != fyne.KeyDelete && ev.Name != fyne.KeyBackspace {
			return
		}
		_, focusInEditable := w.Canvas().Focused().(*widget.Entry)
		if ed.DeleteKey(focusInEditable) {
			refreshAll()
		}
	})

	w.SetOnClosed(func() {
		sz := w.Canvas().Size()
		prefs.SetInt("window.width", int(sz.Width))
		prefs.SetInt("window.height", int(sz.Height))
		syncHandle()
	})

	if layoutDir != "" {
		openLayout(layoutDir)
	} else {
		refreshAll()
	}

	w.ShowAndRun()
	return nil
}

func displayTitle(h *storage.Handle) string {
	if h.Layout.Name != "" {
		return h.Layout.Name
	}
	return filepath.Base(h.Root)
}

// loadFontDir registers every .ttf under dir. "<Family>.ttf" maps to the
// regular face, "<Family>-Bold.ttf" to the bold one.
func loadFontDir(fonts *render.FontLibrary, dir string, l *slog.Logger) {
	ents, err := os.ReadDir(dir)
	if err != nil {
		l.Warn("font dir unreadable", slog.String("dir", dir), slog.Any("err", err))
		return
	}
	for _, e := range ents {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".ttf") {
			continue
		}
		family := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		bold := false
		if strings.HasSuffix(family, "-Bold") {
			family = strings.TrimSuffix(family, "-Bold")
			bold = true
		}
		if err := fonts.LoadTTF(family, bold, filepath.Join(dir, e.Name())); err != nil {
			l.Warn("font load failed", slog.String("file", e.Name()), slog.Any("err", err))
		}
	}
}
