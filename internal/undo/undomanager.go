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
	"sync"
	"time"
)

// Snapshot is a reversible blob of the editor document. Blob content is
// opaque to the manager; size is estimated as len(Blob). TS is when the
// snapshot was captured.
type Snapshot struct {
	Blob []byte
	TS   time.Time
}

// Config controls memory/depth caps and coalescing behavior.
type Config struct {
	// MaxBytes is a soft cap; oldest entries are pruned when exceeded.
	MaxBytes int
	// MaxDepth limits the number of snapshots kept (0 means unlimited).
	MaxDepth int
	// MinInterval coalesces snapshots captured within the interval of the
	// previous push: the incoming one is dropped and the existing entry
	// kept. Snapshots hold pre-mutation state, so the entry that stays is
	// the state before the whole burst. Rapid slider drags then cost one
	// history entry, not hundreds, and undo jumps back past the burst.
	MinInterval time.Duration
}

// Manager is an in-memory undo/redo stack for a single document.
// It is safe for concurrent use.
type Manager struct {
	cfg Config
	mu  sync.Mutex

	undo []Snapshot
	redo []Snapshot

	lastPush   time.Time
	totalBytes int
}

func NewManager(cfg Config) *Manager {
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = 16 * 1024 * 1024 // 16 MiB
	}
	if cfg.MinInterval <= 0 {
		cfg.MinInterval = 250 * time.Millisecond
	}
	return &Manager{cfg: cfg}
}

// Push records a pre-mutation snapshot. If within MinInterval of the
// previous push the incoming snapshot is dropped and the entry already on the
// stack is kept, since it is the older state a burst of edits undoes back to.
// Any push clears the redo stack.
func (m *Manager) Push(s Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.undo) > 0 && s.TS.Sub(m.lastPush) < m.cfg.MinInterval {
		m.lastPush = s.TS
		m.redo = nil
		return
	}
	m.lastPush = s.TS
	m.undo = append(m.undo, s)
	m.totalBytes += len(s.Blob)
	m.redo = nil
	m.enforceCapsLocked()
}

// Undo pops the newest snapshot and returns it. The caller passes its
// current state, which is parked on the redo stack so Redo can restore it.
func (m *Manager) Undo(current []byte) (Snapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.undo) == 0 {
		return Snapshot{}, false
	}
	s := m.undo[len(m.undo)-1]
	m.undo = m.undo[:len(m.undo)-1]
	m.totalBytes -= len(s.Blob)
	m.redo = append(m.redo, Snapshot{Blob: current, TS: time.Now()})
	// the next push starts a fresh entry; it must not coalesce into
	// whatever happens to sit below the popped one
	m.lastPush = time.Time{}
	return s, true
}

// Redo pops the newest parked state and returns it, pushing the caller's
// current state back onto the undo stack.
func (m *Manager) Redo(current []byte) (Snapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.redo) == 0 {
		return Snapshot{}, false
	}
	s := m.redo[len(m.redo)-1]
	m.redo = m.redo[:len(m.redo)-1]
	m.undo = append(m.undo, Snapshot{Blob: current, TS: time.Now()})
	m.totalBytes += len(current)
	m.lastPush = time.Time{}
	m.enforceCapsLocked()
	return s, true
}

// Clear drops both stacks to free memory.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.undo = nil
	m.redo = nil
	m.totalBytes = 0
}

// Stats returns current sizes for diagnostics.
func (m *Manager) Stats() (totalBytes, snapshots int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.totalBytes, len(m.undo)
}

func (m *Manager) enforceCapsLocked() {
	if m.cfg.MaxDepth > 0 && len(m.undo) > m.cfg.MaxDepth {
		toDrop := len(m.undo) - m.cfg.MaxDepth
		for i := 0; i < toDrop; i++ {
			m.totalBytes -= len(m.undo[i].Blob)
		}
		m.undo = append([]Snapshot{}, m.undo[toDrop:]...)
	}
	for m.cfg.MaxBytes > 0 && m.totalBytes > m.cfg.MaxBytes && len(m.undo) > 0 {
		m.totalBytes -= len(m.undo[0].Blob)
		m.undo = m.undo[1:]
	}
	if m.totalBytes < 0 {
		m.totalBytes = 0
	}
}
