/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"net/url"
	"path"
	"strings"
	"time"
)

// FallbackBase is used when neither a display name nor a usable URL exists.
const FallbackBase = "wallpaper"

// BaseName derives the export base from the display name passed by the
// gallery, else from the background URL's last path segment, else the
// fallback. Extensions and query strings are stripped.
func BaseName(displayName, imageURL string) string {
	if n := strings.TrimSpace(displayName); n != "" {
		return strings.TrimSuffix(n, path.Ext(n))
	}
	if imageURL != "" {
		raw := imageURL
		if u, err := url.Parse(imageURL); err == nil && u.Path != "" {
			raw = u.Path
		}
		seg := path.Base(raw)
		if i := strings.IndexByte(seg, '?'); i >= 0 {
			seg = seg[:i]
		}
		if i := strings.IndexByte(seg, '.'); i >= 0 {
			seg = seg[:i]
		}
		if seg != "" && seg != "/" && seg != "." {
			return seg
		}
	}
	return FallbackBase
}

// Filename synthesizes "<base>_edit_<yymmdd>.<ext>".
func Filename(base string, now time.Time, format Format) string {
	if base == "" {
		base = FallbackBase
	}
	return base + "_edit_" + now.Format("060102") + "." + string(format)
}
