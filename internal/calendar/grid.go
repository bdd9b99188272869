/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package calendar computes the fixed 6x7 month grid rendered by calendar
// overlays.
package calendar

import "time"

// GridSize is the cell count of a month grid: always six full weeks so the
// visual height does not change between months.
const GridSize = 42

// Cell is one slot of the month grid. Day is 1-based; zero marks a blank
// leading/trailing cell.
type Cell struct {
	Day int
}

// Blank reports whether the cell is a padding slot.
func (c Cell) Blank() bool { return c.Day == 0 }

// Weekdays holds the Korean single-character day labels, Sunday first.
var Weekdays = []string{"일", "월", "화", "수", "목", "금", "토"}

// DaysIn returns the number of days in the given month, leap-aware.
func DaysIn(year, month int) int {
	// day 0 of the next month is the last day of this month
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// FirstWeekday returns the weekday index of day 1 (0=Sunday .. 6=Saturday).
func FirstWeekday(year, month int) int {
	return int(time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).Weekday())
}

// Grid returns the 42-cell sequence for the month: FirstWeekday leading
// blanks, days 1..DaysIn, then trailing blanks. Pure and deterministic.
func Grid(year, month int) []Cell {
	cells := make([]Cell, 0, GridSize)
	lead := FirstWeekday(year, month)
	for i := 0; i < lead; i++ {
		cells = append(cells, Cell{})
	}
	days := DaysIn(year, month)
	for d := 1; d <= days; d++ {
		cells = append(cells, Cell{Day: d})
	}
	for len(cells) < GridSize {
		cells = append(cells, Cell{})
	}
	return cells
}

// WeekdayOf maps a 0-based grid position to its weekday column (0=Sunday).
func WeekdayOf(index int) int { return index % 7 }
