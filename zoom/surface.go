/*
	Copyright 2023 Google Inc.
	Licensed under the Apache License, Version 2.0 (the "License");
	you may not use this file except in compliance with the License.
	You may obtain a copy of the License at
		https://www.apache.org/licenses/LICENSE-2.0
	Unless required by applicable law or agreed to in writing, software
	distributed under the License is distributed on an "AS IS" BASIS,
	WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
	See the License for the specific language governing permissions and
	limitations under the License.
*/

package zoom

import (
	"fmt"
	"sync"
)

// EventKind enumerates the pointer events a Surface delivers.
type EventKind int

const (
	// Press is a pointer-button press.
	Press EventKind = iota
	// Move is a pointer motion.
	Move
	// Release is a pointer-button release.
	Release
)

func (ek EventKind) String() string {
	switch ek {
	case Press:
		return "press"
	case Move:
		return "move"
	case Release:
		return "release"
	default:
		return fmt.Sprintf("EventKind(%d)", int(ek))
	}
}

// ParseEventKind returns the EventKind with the provided name.
func ParseEventKind(name string) (EventKind, error) {
	for _, ek := range []EventKind{Press, Move, Release} {
		if ek.String() == name {
			return ek, nil
		}
	}
	return 0, fmt.Errorf("unknown pointer event '%s'", name)
}

// Event is a pointer event in client coordinates.
type Event struct {
	Kind             EventKind
	ClientX, ClientY float64
}

// Listener handles a single Event.
type Listener func(ev Event)

// ReleaseFunc detaches a previously-added Listener.  Calling it more than
// once has no further effect.
type ReleaseFunc func()

// Surface is a drawing surface that delivers pointer events.
type Surface interface {
	// Origin returns the client coordinates of the surface's top-left corner.
	Origin() (x, y float64)
	// Size returns the surface's measured size in pixels.
	Size() (width, height float64)
	// AddListener attaches l for events of the provided kind.
	AddListener(kind EventKind, l Listener) ReleaseFunc
}

type registration struct {
	listener Listener
	released bool
}

// Target is an in-process Surface whose events are supplied by Dispatch.
// It is safe for concurrent use.
type Target struct {
	mu                   sync.Mutex
	left, top            float64
	width, height        float64
	listenersByEventKind map[EventKind][]*registration
}

// NewTarget returns a new Target of the provided size, with its origin at
// (0, 0).
func NewTarget(width, height float64) *Target {
	return &Target{
		width:                width,
		height:               height,
		listenersByEventKind: map[EventKind][]*registration{},
	}
}

// SetOrigin moves the receiver's top-left corner to the provided client
// coordinates.
func (t *Target) SetOrigin(x, y float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.left, t.top = x, y
}

// SetSize sets the receiver's measured size.
func (t *Target) SetSize(width, height float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.width, t.height = width, height
}

// Origin implements Surface.
func (t *Target) Origin() (x, y float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.left, t.top
}

// Size implements Surface.
func (t *Target) Size() (width, height float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.width, t.height
}

// AddListener implements Surface.
func (t *Target) AddListener(kind EventKind, l Listener) ReleaseFunc {
	t.mu.Lock()
	defer t.mu.Unlock()
	reg := &registration{listener: l}
	t.listenersByEventKind[kind] = append(t.listenersByEventKind[kind], reg)
	return func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		if reg.released {
			return
		}
		reg.released = true
		regs := t.listenersByEventKind[kind]
		for i, r := range regs {
			if r == reg {
				t.listenersByEventKind[kind] = append(regs[:i:i], regs[i+1:]...)
				break
			}
		}
	}
}

// Dispatch delivers ev to every listener attached for its kind at the time
// of the call.  Listeners may add or release listeners; a listener released
// during dispatch is not invoked afterwards.
func (t *Target) Dispatch(ev Event) {
	t.mu.Lock()
	snapshot := append([]*registration(nil), t.listenersByEventKind[ev.Kind]...)
	t.mu.Unlock()
	for _, reg := range snapshot {
		if t.isLive(reg) {
			reg.listener(ev)
		}
	}
}

func (t *Target) isLive(reg *registration) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return !reg.released
}

// ListenerCount returns the number of listeners attached for the provided
// kind.
func (t *Target) ListenerCount(kind EventKind) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.listenersByEventKind[kind])
}
