/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"walledit/internal/config"
	"walledit/internal/crash"
	"walledit/internal/editor"
	"walledit/internal/export"
	applog "walledit/internal/log"
	"walledit/internal/relay"
	"walledit/internal/render"
	"walledit/internal/scene"
	"walledit/internal/storage"
	"walledit/internal/ui"
	"walledit/internal/version"
)

func usage() {
	fmt.Println("Wallpaper Editor")
	fmt.Printf("Version: %s\n", version.String())
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  walledit version|-v|--version              Show version")
	fmt.Println("  walledit init <dir> <imageURL> [name]      Create a new layout at <dir> for the given background")
	fmt.Println("  walledit open <dir>                        Open layout at <dir> and print summary")
	fmt.Println("  walledit render <dir> [png|jpg|pdf]        Render the layout into its exports folder")
	fmt.Println("  walledit serve [addr]                      Run the image relay endpoint")
	fmt.Println("  walledit ui [<dir>]                        Launch desktop UI (build with -tags fyne for full UI)")
}

func main() {
	// initialize structured logging using environment defaults
	applog.Init(applog.FromEnv())
	l := applog.WithComponent("cli")
	var h *storage.Handle
	defer func() { crash.Recover(h) }()

	cfg, relayToken, err := config.Load()
	if err != nil {
		l.Warn("config load failed, using defaults", slog.Any("err", err))
		cfg = config.Defaults()
	}

	args := os.Args
	l.Debug("start", slog.Int("args", len(args)))
	if len(args) > 1 {
		switch args[1] {
		case "version", "--version", "-v":
			fmt.Println(version.String())
			return
		case "init":
			if len(args) < 4 {
				fmt.Println("init requires <dir> and <imageURL>")
				usage()
				os.Exit(2)
			}
			abs, _ := filepath.Abs(args[2])
			url := args[3]
			name := relay.DisplayName(url)
			if len(args) >= 5 {
				name = args[4]
			}
			l.Info("init layout", slog.String("root", abs), slog.String("url", url))

			ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Relay.TimeoutMs)*time.Millisecond)
			defer cancel()
			img, ferr := relay.NewClient(relayToken).FetchImage(ctx, url)
			if ferr != nil {
				l.Error("background fetch failed", slog.Any("err", ferr))
				fmt.Println("Error:", ferr)
				os.Exit(1)
			}
			b := img.Bounds()
			doc := editor.Document{Background: editor.Background{
				Name:   name,
				URL:    url,
				Width:  float64(b.Dx()),
				Height: float64(b.Dy()),
			}}
			nh, ierr := storage.Init(abs, name, doc)
			if ierr != nil {
				l.Error("init failed", slog.Any("err", ierr))
				fmt.Println("Error:", ierr)
				os.Exit(1)
			}
			h = nh
			fmt.Println("Created layout at", abs)
			return
		case "open":
			if len(args) < 3 {
				fmt.Println("open requires <dir>")
				usage()
				os.Exit(2)
			}
			abs, _ := filepath.Abs(args[2])
			l.Info("open layout", slog.String("root", abs))
			oh, oerr := storage.Open(abs)
			if oerr != nil {
				l.Error("open failed", slog.Any("err", oerr))
				fmt.Println("Error:", oerr)
				os.Exit(1)
			}
			h = oh
			doc := h.Layout.Document
			fmt.Printf("Opened layout: %s\n", h.Layout.Name)
			fmt.Printf("Background: %s (%.0fx%.0f)\n", doc.Background.URL, doc.Background.Width, doc.Background.Height)
			fmt.Printf("Items: %d texts, %d calendars\n", len(doc.Texts), len(doc.Calendars))
			fmt.Println("Root:", h.Root)
			return
		case "render":
			if len(args) < 3 {
				fmt.Println("render requires <dir>")
				usage()
				os.Exit(2)
			}
			abs, _ := filepath.Abs(args[2])
			formatArg := cfg.Editor.ExportFormat
			if len(args) >= 4 {
				formatArg = args[3]
			}
			format, perr := export.ParseFormat(formatArg)
			if perr != nil {
				fmt.Println("Error:", perr)
				os.Exit(2)
			}
			oh, oerr := storage.Open(abs)
			if oerr != nil {
				l.Error("open failed", slog.Any("err", oerr))
				fmt.Println("Error:", oerr)
				os.Exit(1)
			}
			h = oh
			doc := h.Layout.Document

			ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Relay.TimeoutMs)*time.Millisecond)
			defer cancel()
			img, ferr := relay.NewClient(relayToken).FetchImage(ctx, doc.Background.URL)
			if ferr != nil {
				l.Error("background fetch failed", slog.Any("err", ferr))
				fmt.Println("Error:", ferr)
				os.Exit(1)
			}

			outDir := cfg.Editor.ExportDir
			if outDir == "" {
				outDir = h.ExportsDir()
			}
			base := export.BaseName(doc.Background.Name, doc.Background.URL)
			exporter := export.NewExporter(render.NewFontLibrary())
			path, xerr := exporter.Export(scene.Build(doc, img), outDir, base, format)
			if xerr != nil {
				l.Error("render failed", slog.Any("err", xerr))
				fmt.Println("Error:", xerr)
				os.Exit(1)
			}
			fmt.Println("Rendered:", path)
			return
		case "serve":
			addr := cfg.Relay.ListenAddr
			if len(args) >= 3 {
				addr = args[2]
			}
			l.Info("relay listening", slog.String("addr", addr))
			fmt.Println("Relay listening on", addr)
			srv := &http.Server{
				Addr:              addr,
				Handler:           relay.Mux(relay.NewClient(relayToken)),
				ReadHeaderTimeout: 10 * time.Second,
			}
			if serr := srv.ListenAndServe(); serr != nil {
				l.Error("relay server stopped", slog.Any("err", serr))
				fmt.Println("Error:", serr)
				os.Exit(1)
			}
			return
		case "ui":
			var dir string
			if len(args) >= 3 {
				dir = args[2]
			}
			if uerr := ui.Run(dir); uerr != nil {
				fmt.Println("Error:", uerr)
				os.Exit(1)
			}
			return
		}
	}

	usage()
}
