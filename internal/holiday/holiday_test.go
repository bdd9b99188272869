/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package holiday

import "testing"

func TestOctober2025(t *testing.T) {
	h := For(2025, 10)
	if h[3] != "개천절" {
		t.Fatalf("Oct 3 2025: got %q", h[3])
	}
	if h[9] != "한글날" {
		t.Fatalf("Oct 9 2025: got %q", h[9])
	}
	for _, d := range []int{5, 6, 7} {
		if h[d] != "추석" {
			t.Fatalf("Oct %d 2025 should be 추석, got %q", d, h[d])
		}
	}
	if h[8] != "대체공휴일" {
		t.Fatalf("Oct 8 2025 substitute day missing: %q", h[8])
	}
}

func TestUnsupportedYearIsEmpty(t *testing.T) {
	h := For(1999, 1)
	if h == nil {
		t.Fatalf("result must be non-nil")
	}
	if len(h) != 0 {
		t.Fatalf("expected empty map, got %v", h)
	}
}

func TestUnsupportedMonthIsEmpty(t *testing.T) {
	if h := For(2025, 7); len(h) != 0 {
		t.Fatalf("July 2025 has no entries, got %v", h)
	}
}

func TestDeterministic(t *testing.T) {
	a := For(2024, 9)
	b := For(2024, 9)
	if len(a) != 3 || len(b) != 3 {
		t.Fatalf("Chuseok 2024 spans three days: %v", a)
	}
	for d, label := range a {
		if b[d] != label {
			t.Fatalf("non-deterministic result at day %d", d)
		}
	}
	// returned maps are copies; mutating one must not leak into the table
	a[1] = "x"
	if For(2024, 9)[1] == "x" {
		t.Fatalf("table mutated through returned map")
	}
}

func TestYearsSorted(t *testing.T) {
	ys := Years()
	if len(ys) != 3 || ys[0] != 2024 || ys[2] != 2026 {
		t.Fatalf("unexpected years: %v", ys)
	}
}
