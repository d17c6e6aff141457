package border

import (
	"errors"
	"sync"

	"golang.org/x/image/math/f64"

	"github.com/1broseidon/winborder/internal/colors"
)

type fakePaint struct {
	desc      colors.Paint
	opacity   float32
	transform f64.Aff3
}

func (p *fakePaint) SetOpacity(o float32)    { p.opacity = o }
func (p *fakePaint) Opacity() float32        { return p.opacity }
func (p *fakePaint) SetTransform(m f64.Aff3) { p.transform = m }
func (p *fakePaint) Transform() f64.Aff3     { return p.transform }

// fakeSurface records calls; the actor goroutine writes, tests read through
// the accessor methods.
type fakeSurface struct {
	mu      sync.Mutex
	shows   int
	hides   int
	raises  int
	draws   int
	closed  bool
	rect    Rect
	stroke  Stroke
	last    colors.Paint
	opacity float32
}

func (s *fakeSurface) CreateSolidPaint(c colors.RGBA) (Paint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = colors.SolidPaint(c)
	return &fakePaint{desc: s.last}, nil
}

func (s *fakeSurface) CreateGradientPaint(p colors.Paint) (Paint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = p
	return &fakePaint{desc: p}, nil
}

func (s *fakeSurface) Resize(r Rect) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rect = r
	return nil
}

func (s *fakeSurface) Draw(p Paint, st Stroke) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draws++
	s.stroke = st
	s.opacity = p.Opacity()
	return nil
}

func (s *fakeSurface) Show() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shows++
	return nil
}

func (s *fakeSurface) Hide() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hides++
	return nil
}

func (s *fakeSurface) Raise() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.raises++
	return nil
}

func (s *fakeSurface) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

type surfaceCounts struct {
	shows, hides, draws int
	closed              bool
}

func (s *fakeSurface) counts() surfaceCounts {
	s.mu.Lock()
	defer s.mu.Unlock()
	return surfaceCounts{shows: s.shows, hides: s.hides, draws: s.draws, closed: s.closed}
}

func (s *fakeSurface) lastPaint() colors.Paint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

func (s *fakeSurface) geometry() (Rect, Stroke) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rect, s.stroke
}

// fakeFactory hands out fakeSurfaces and can be told to fail.
type fakeFactory struct {
	mu       sync.Mutex
	failures int
	attempts int
	surfaces []*fakeSurface
}

func (f *fakeFactory) NewSurface(WindowID) (Surface, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.attempts++
	if f.failures > 0 {
		f.failures--
		return nil, errors.New("no surface for you")
	}
	s := &fakeSurface{}
	f.surfaces = append(f.surfaces, s)
	return s, nil
}

func (f *fakeFactory) surface() *fakeSurface {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.surfaces) == 0 {
		return nil
	}
	return f.surfaces[len(f.surfaces)-1]
}

func (f *fakeFactory) attemptCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.attempts
}
