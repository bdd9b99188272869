/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package calendar

import "testing"

func TestGridAlwaysFortyTwoCells(t *testing.T) {
	for year := 2020; year <= 2030; year++ {
		for month := 1; month <= 12; month++ {
			g := Grid(year, month)
			if len(g) != GridSize {
				t.Fatalf("%d-%02d: got %d cells", year, month, len(g))
			}
			days := 0
			for _, c := range g {
				if !c.Blank() {
					days++
				}
			}
			if days != DaysIn(year, month) {
				t.Fatalf("%d-%02d: %d non-blank cells, want %d", year, month, days, DaysIn(year, month))
			}
		}
	}
}

func TestLeapFebruary(t *testing.T) {
	if d := DaysIn(2024, 2); d != 29 {
		t.Fatalf("Feb 2024 should have 29 days, got %d", d)
	}
	if d := DaysIn(2025, 2); d != 28 {
		t.Fatalf("Feb 2025 should have 28 days, got %d", d)
	}
	if d := DaysIn(1900, 2); d != 28 {
		t.Fatalf("1900 is not a leap year, got %d", d)
	}
	if d := DaysIn(2000, 2); d != 29 {
		t.Fatalf("2000 is a leap year, got %d", d)
	}
}

func TestLeadingBlanksMatchFirstWeekday(t *testing.T) {
	// October 2025 starts on a Wednesday (index 3).
	if w := FirstWeekday(2025, 10); w != 3 {
		t.Fatalf("Oct 2025 starts on weekday %d, want 3", w)
	}
	g := Grid(2025, 10)
	for i := 0; i < 3; i++ {
		if !g[i].Blank() {
			t.Fatalf("cell %d should be blank", i)
		}
	}
	if g[3].Day != 1 {
		t.Fatalf("cell 3 should be day 1, got %d", g[3].Day)
	}
}

func TestGridInvariantSum(t *testing.T) {
	g := Grid(2026, 2)
	lead := FirstWeekday(2026, 2)
	days := DaysIn(2026, 2)
	trail := GridSize - lead - days
	if trail < 0 {
		t.Fatalf("trailing blanks negative: lead=%d days=%d", lead, days)
	}
	for i := lead + days; i < GridSize; i++ {
		if !g[i].Blank() {
			t.Fatalf("trailing cell %d not blank", i)
		}
	}
}

func TestGridRestartable(t *testing.T) {
	a := Grid(2024, 2)
	b := Grid(2024, 2)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("grid differs at %d", i)
		}
	}
}

func TestWeekdayOf(t *testing.T) {
	if WeekdayOf(0) != 0 || WeekdayOf(6) != 6 || WeekdayOf(7) != 0 || WeekdayOf(41) != 6 {
		t.Fatalf("weekday mapping broken")
	}
}
