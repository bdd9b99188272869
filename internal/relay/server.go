/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package relay

import (
	"log/slog"
	"net/http"

	applog "walledit/internal/log"
)

// CacheControl marks relayed assets as immutable; the upstream URL is the
// cache key and gallery assets never change in place.
const CacheControl = "public, max-age=31536000, immutable"

// Handler serves GET /relay?url=<encoded> with the fetched bytes, the
// upstream content type and a permissive CORS header.
type Handler struct {
	Client *Client
	log    *slog.Logger
}

// NewHandler wraps a fetch client in the HTTP endpoint.
func NewHandler(c *Client) *Handler {
	if c == nil {
		c = NewClient("")
	}
	return &Handler{Client: c, log: applog.WithComponent("relay")}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("url")
	if raw == "" {
		http.Error(w, "missing url parameter", http.StatusBadRequest)
		return
	}

	f, err := h.Client.Fetch(r.Context(), raw)
	if err != nil {
		h.log.Warn("upstream fetch failed", slog.String("url", raw), slog.Any("err", err))
		http.Error(w, "failed to fetch image", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", f.ContentType)
	w.Header().Set("Cache-Control", CacheControl)
	w.Header().Set("Access-Control-Allow-Origin", "*")
	if _, err := w.Write(f.Body); err != nil {
		h.log.Debug("client went away mid-response", slog.Any("err", err))
	}
}

// Mux returns an http.ServeMux with the relay mounted at /relay.
func Mux(c *Client) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/relay", NewHandler(c))
	return mux
}
