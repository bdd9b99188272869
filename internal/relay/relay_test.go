/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package relay

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	return buf.Bytes()
}

func upstream(t *testing.T, body []byte, contentType string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		_, _ = w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestHandlerRelaysImage(t *testing.T) {
	body := pngBytes(t, 8, 8)
	up := upstream(t, body, "image/png")

	h := NewHandler(NewClient(""))
	req := httptest.NewRequest(http.MethodGet, "/relay?url="+url.QueryEscape(up.URL+"/bg.png"), nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "image/png" {
		t.Fatalf("content type not echoed: %q", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("CORS header missing: %q", got)
	}
	if got := rec.Header().Get("Cache-Control"); got != CacheControl {
		t.Fatalf("cache control = %q", got)
	}
	if !bytes.Equal(rec.Body.Bytes(), body) {
		t.Fatalf("body does not match upstream")
	}
}

func TestHandlerMissingURL(t *testing.T) {
	h := NewHandler(nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/relay", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHandlerUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	h := NewHandler(NewClient(""))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/relay?url="+url.QueryEscape(srv.URL), nil))
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
}

func TestNormalizeURLStripsTransformParams(t *testing.T) {
	in := "https://cdn.example.com/storage/v1/object/bg.jpg?width=400&quality=80&token=abc"
	got := NormalizeURL(in)
	u, err := url.Parse(got)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	q := u.Query()
	if q.Get("width") != "" || q.Get("quality") != "" {
		t.Fatalf("transform params survived: %q", got)
	}
	if q.Get("token") != "abc" {
		t.Fatalf("unrelated params must survive: %q", got)
	}
}

func TestClientSendsBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = io.WriteString(w, "x")
	}))
	t.Cleanup(srv.Close)

	c := NewClient("sekrit")
	if _, err := c.Fetch(context.Background(), srv.URL); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if gotAuth != "Bearer sekrit" {
		t.Fatalf("authorization = %q", gotAuth)
	}
}

func TestFetchImageDecodes(t *testing.T) {
	up := upstream(t, pngBytes(t, 12, 7), "image/png")
	c := NewClient("")
	img, err := c.FetchImage(context.Background(), up.URL)
	if err != nil {
		t.Fatalf("fetch image: %v", err)
	}
	if img.Bounds().Dx() != 12 || img.Bounds().Dy() != 7 {
		t.Fatalf("unexpected bounds: %v", img.Bounds())
	}
}

func TestDisplayName(t *testing.T) {
	if got := DisplayName("https://cdn.example.com/assets/summer.jpg?width=1"); got != "summer.jpg" {
		t.Fatalf("DisplayName = %q", got)
	}
}
