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

package session

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru"
	"github.com/ilhamster/zoomchart/chart"
	"github.com/ilhamster/zoomchart/scale"
)

// ErrUnknownSession is returned when a Session is not in the Store, either
// because it never existed or because it was evicted.
var ErrUnknownSession = errors.New("unknown session")

// Store holds the most recently used Sessions over one dataset.  Sessions
// evicted from the Store are closed.
type Store struct {
	lru           *lru.Cache
	data          []scale.Sample
	zs            *scale.ZoomState
	width, height float64
	chartOpts     []chart.Option
}

// StoreOption configures a Store.
type StoreOption func(st *Store)

// WithInitialZoom specifies the zoom state new Sessions start with.
func WithInitialZoom(zs *scale.ZoomState) StoreOption {
	return func(st *Store) {
		st.zs = zs.Clone()
	}
}

// WithDefaultSize specifies the surface size of new Sessions created without
// a size.
func WithDefaultSize(width, height float64) StoreOption {
	return func(st *Store) {
		st.width, st.height = width, height
	}
}

// WithChartOptions specifies options applied to every Session's chart.
func WithChartOptions(opts ...chart.Option) StoreOption {
	return func(st *Store) {
		st.chartOpts = append(st.chartOpts, opts...)
	}
}

// NewStore returns a new Store holding at most capacity Sessions over the
// provided data.
func NewStore(capacity int, data []scale.Sample, opts ...StoreOption) (*Store, error) {
	st := &Store{
		data:   data,
		width:  800,
		height: 400,
	}
	for _, opt := range opts {
		opt(st)
	}
	cache, err := lru.NewWithEvict(capacity, func(key, value interface{}) {
		if s, ok := value.(*Session); ok {
			log.Debug("session evicted", "session", key)
			s.Close()
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session store: %w", err)
	}
	st.lru = cache
	return st, nil
}

// Create returns a new Session with the provided surface size, or the
// Store's default size if either dimension is not positive.
func (st *Store) Create(width, height float64) (*Session, error) {
	if width <= 0 || height <= 0 {
		width, height = st.width, st.height
	}
	s, err := newSession(uuid.NewString(), st.data, st.zs, width, height, st.chartOpts...)
	if err != nil {
		return nil, err
	}
	st.lru.Add(s.ID(), s)
	log.Info("session created", "session", s.ID(), "width", width, "height", height)
	return s, nil
}

// Get returns the Session with the provided ID.
func (st *Store) Get(id string) (*Session, error) {
	sIf, ok := st.lru.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: '%s'", ErrUnknownSession, id)
	}
	s, ok := sIf.(*Session)
	if !ok {
		return nil, fmt.Errorf("session store held something other than a Session")
	}
	return s, nil
}

// Len returns the number of Sessions in the receiver.
func (st *Store) Len() int {
	return st.lru.Len()
}

// Close closes every Session in the receiver.
func (st *Store) Close() {
	st.lru.Purge()
}
