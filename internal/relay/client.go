/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package relay fetches remote background images and re-serves them from a
// same-origin endpoint so canvas capture is never blocked by the image host.
package relay

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	_ "image/jpeg"
	_ "image/png"
)

// MaxImageBytes caps how much of an upstream response is buffered.
const MaxImageBytes = 64 << 20

// Client fetches image bytes from arbitrary hosts.
type Client struct {
	Token  string // optional bearer token for protected asset hosts
	client *http.Client
}

// NewClient creates a relay fetch client.
func NewClient(token string) *Client {
	return &Client{
		Token:  token,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// Fetched is one upstream image response.
type Fetched struct {
	Body        []byte
	ContentType string
}

// NormalizeURL strips CDN transform parameters (width/height/quality/resize)
// so the relay always fetches the asset at natural resolution.
func NormalizeURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	q := u.Query()
	for _, p := range []string{"width", "height", "quality", "resize", "format"} {
		q.Del(p)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// Fetch retrieves the image at rawURL. Non-2xx upstream statuses are errors.
func (c *Client) Fetch(ctx context.Context, rawURL string) (*Fetched, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, NormalizeURL(rawURL), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch image: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch image: upstream %s", resp.Status)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("read image body: %w", err)
	}
	ct := resp.Header.Get("Content-Type")
	if ct == "" {
		ct = "image/jpeg"
	}
	return &Fetched{Body: body, ContentType: ct}, nil
}

// FetchImage fetches and decodes the background into a usable image.
func (c *Client) FetchImage(ctx context.Context, rawURL string) (image.Image, error) {
	f, err := c.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(f.Body))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// DisplayName derives a human-readable asset name from a URL, used when the
// gallery did not pass one.
func DisplayName(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) == 0 {
		return ""
	}
	return parts[len(parts)-1]
}
