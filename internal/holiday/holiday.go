/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package holiday carries the embedded Korean public holiday table used to
// annotate calendar overlays. The table is finite on purpose: lunar-calendar
// holidays and government-declared substitute days cannot be derived by rule,
// so each supported year is transcribed explicitly.
package holiday

// table maps year -> month -> day -> label.
var table = map[int]map[int]map[int]string{
	2024: {
		1:  {1: "신정"},
		2:  {9: "설날", 10: "설날", 11: "설날", 12: "대체공휴일"},
		3:  {1: "삼일절"},
		4:  {10: "국회의원선거"},
		5:  {5: "어린이날", 6: "대체공휴일", 15: "부처님오신날"},
		6:  {6: "현충일"},
		8:  {15: "광복절"},
		9:  {16: "추석", 17: "추석", 18: "추석"},
		10: {3: "개천절", 9: "한글날"},
		12: {25: "크리스마스"},
	},
	2025: {
		1:  {1: "신정", 28: "설날", 29: "설날", 30: "설날"},
		3:  {1: "삼일절", 3: "대체공휴일"},
		5:  {5: "어린이날", 6: "부처님오신날"},
		6:  {6: "현충일"},
		8:  {15: "광복절"},
		10: {3: "개천절", 5: "추석", 6: "추석", 7: "추석", 8: "대체공휴일", 9: "한글날"},
		12: {25: "크리스마스"},
	},
	2026: {
		1:  {1: "신정"},
		2:  {16: "설날", 17: "설날", 18: "설날"},
		3:  {1: "삼일절"},
		5:  {5: "어린이날", 24: "부처님오신날", 25: "대체공휴일"},
		6:  {6: "현충일"},
		8:  {15: "광복절"},
		9:  {24: "추석", 25: "추석", 26: "추석"},
		10: {3: "개천절", 9: "한글날"},
		12: {25: "크리스마스"},
	},
}

// For returns the holidays of the given month as day -> label. Months or
// years outside the embedded table yield an empty map, never an error.
func For(year, month int) map[int]string {
	out := map[int]string{}
	months, ok := table[year]
	if !ok {
		return out
	}
	for day, label := range months[month] {
		out[day] = label
	}
	return out
}

// Years lists the years present in the table, for UI range hints.
func Years() []int {
	ys := make([]int, 0, len(table))
	for y := range table {
		ys = append(ys, y)
	}
	for i := 1; i < len(ys); i++ {
		for j := i; j > 0 && ys[j-1] > ys[j]; j-- {
			ys[j-1], ys[j] = ys[j], ys[j-1]
		}
	}
	return ys
}
