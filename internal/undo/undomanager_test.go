/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package undo

import (
	"testing"
	"time"
)

func TestUndoRedoBasic(t *testing.T) {
	m := NewManager(Config{MaxBytes: 1024 * 1024, MaxDepth: 10, MinInterval: 10 * time.Millisecond})
	m.Push(Snapshot{Blob: []byte("a"), TS: time.Now()})
	m.Push(Snapshot{Blob: []byte("b"), TS: time.Now().Add(20 * time.Millisecond)})
	if _, total := m.Stats(); total != 2 {
		t.Fatalf("expected 2 snapshots, got %d", total)
	}
	s, ok := m.Undo([]byte("cur"))
	if !ok || string(s.Blob) != "b" {
		t.Fatalf("undo expected 'b', got ok=%v blob=%q", ok, string(s.Blob))
	}
	s, ok = m.Redo([]byte("b"))
	if !ok || string(s.Blob) != "cur" {
		t.Fatalf("redo expected parked 'cur', got ok=%v blob=%q", ok, string(s.Blob))
	}
}

func TestCoalesceKeepsOldestState(t *testing.T) {
	m := NewManager(Config{MaxBytes: 1024 * 1024, MaxDepth: 10, MinInterval: 50 * time.Millisecond})
	t0 := time.Now()
	m.Push(Snapshot{Blob: []byte("1"), TS: t0})
	m.Push(Snapshot{Blob: []byte("2"), TS: t0.Add(10 * time.Millisecond)}) // coalesce
	if _, total := m.Stats(); total != 1 {
		t.Fatalf("expected coalesced to 1 snapshot, got %d", total)
	}
	// snapshots are pre-mutation state: undoing a coalesced burst must land
	// on the state before the burst, not somewhere inside it
	s, ok := m.Undo(nil)
	if !ok || string(s.Blob) != "1" {
		t.Fatalf("expected pre-burst snapshot '1', got ok=%v blob=%q", ok, string(s.Blob))
	}
}

func TestCoalesceWindowSlidesWithBurst(t *testing.T) {
	m := NewManager(Config{MaxBytes: 1024 * 1024, MaxDepth: 10, MinInterval: 50 * time.Millisecond})
	t0 := time.Now()
	// a continuous burst, each push within the interval of the previous one
	for i := 0; i < 10; i++ {
		m.Push(Snapshot{Blob: []byte{byte('0' + i)}, TS: t0.Add(time.Duration(i*10) * time.Millisecond)})
	}
	if _, total := m.Stats(); total != 1 {
		t.Fatalf("continuous burst should coalesce to 1 snapshot, got %d", total)
	}
	// the next push after a quiet gap starts a new entry
	m.Push(Snapshot{Blob: []byte("later"), TS: t0.Add(time.Second)})
	if _, total := m.Stats(); total != 2 {
		t.Fatalf("push after the window must start a new entry, got %d", total)
	}
	s, _ := m.Undo(nil)
	if string(s.Blob) != "later" {
		t.Fatalf("unexpected top snapshot %q", string(s.Blob))
	}
	s, _ = m.Undo(nil)
	if string(s.Blob) != "0" {
		t.Fatalf("burst must undo to its first pre-state, got %q", string(s.Blob))
	}
}

func TestDepthCap(t *testing.T) {
	m := NewManager(Config{MaxBytes: 1024, MaxDepth: 2, MinInterval: time.Millisecond})
	for i := 0; i < 10; i++ {
		m.Push(Snapshot{Blob: []byte("xxxxx"), TS: time.Now().Add(time.Duration(i*10) * time.Millisecond)})
	}
	if _, total := m.Stats(); total > 2 {
		t.Fatalf("expected MaxDepth cap to limit to 2, got %d", total)
	}
}

func TestByteCapPrunesOldest(t *testing.T) {
	m := NewManager(Config{MaxBytes: 12, MinInterval: time.Millisecond})
	t0 := time.Now()
	m.Push(Snapshot{Blob: []byte("aaaaa"), TS: t0})
	m.Push(Snapshot{Blob: []byte("bbbbb"), TS: t0.Add(10 * time.Millisecond)})
	m.Push(Snapshot{Blob: []byte("ccccc"), TS: t0.Add(20 * time.Millisecond)})
	bytes, total := m.Stats()
	if bytes > 12 {
		t.Fatalf("byte cap exceeded: %d", bytes)
	}
	if total != 2 {
		t.Fatalf("expected oldest pruned, got %d snapshots", total)
	}
	s, _ := m.Undo(nil)
	if string(s.Blob) != "ccccc" {
		t.Fatalf("newest must survive pruning, got %q", string(s.Blob))
	}
}

func TestPushClearsRedo(t *testing.T) {
	m := NewManager(Config{MinInterval: time.Millisecond})
	t0 := time.Now()
	m.Push(Snapshot{Blob: []byte("a"), TS: t0})
	m.Push(Snapshot{Blob: []byte("b"), TS: t0.Add(10 * time.Millisecond)})
	if _, ok := m.Undo([]byte("b")); !ok {
		t.Fatalf("undo failed")
	}
	m.Push(Snapshot{Blob: []byte("c"), TS: t0.Add(20 * time.Millisecond)})
	if _, ok := m.Redo([]byte("c")); ok {
		t.Fatalf("redo must be invalidated by a new push")
	}
}
