package pipeline

import (
	"sync"

	"github.com/alde/bitcam/pkg/geometry"
	"github.com/alde/bitcam/pkg/raster"
)

// Session edits one captured image. Every parameter change recomputes the
// whole pipeline from the immutable source; updates are serialized so a
// result is never assembled from two overlapping recomputations.
type Session struct {
	mu       sync.Mutex
	source   *raster.Raster
	minScale float64
	params   Params
	current  Result
}

// NewSession starts editing src with DefaultParams and renders it once
func NewSession(src *raster.Raster) (*Session, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}
	s := &Session{
		source:   src,
		minScale: geometry.MinScale(src.Width, src.Height),
	}
	if _, err := s.Update(DefaultParams()); err != nil {
		return nil, err
	}
	return s, nil
}

// Update normalizes p, recomputes the output and makes it current. On error
// the previous result stays current and is returned alongside the error.
func (s *Session) Update(p Params) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.update(p)
}

// Modify applies fn to a copy of the current parameters and updates with
// the result
func (s *Session) Modify(fn func(*Params)) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.params
	fn(&p)
	return s.update(p)
}

func (s *Session) update(p Params) (Result, error) {
	p = p.Normalize(s.source.Width, s.source.Height)
	res, err := Run(s.source, p)
	if err != nil {
		return s.current, err
	}
	s.params = p
	s.current = res
	return res, nil
}

// Reset restores DefaultParams
func (s *Session) Reset() (Result, error) {
	return s.Update(DefaultParams())
}

// Current returns the last successfully rendered result
func (s *Session) Current() Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Params returns the parameters of the current result
func (s *Session) Params() Params {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.params
}

// Source returns the captured raster. It must not be modified.
func (s *Session) Source() *raster.Raster {
	return s.source
}

// MinScale is the lowest scale this source accepts
func (s *Session) MinScale() float64 {
	return s.minScale
}
