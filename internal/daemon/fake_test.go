package daemon

import (
	"context"
	"errors"
	"sort"
	"sync"

	"golang.org/x/image/math/f64"

	"github.com/1broseidon/winborder/internal/border"
	"github.com/1broseidon/winborder/internal/colors"
	"github.com/1broseidon/winborder/internal/platform"
)

type fakePaint struct {
	opacity   float32
	transform f64.Aff3
}

func (p *fakePaint) SetOpacity(o float32)    { p.opacity = o }
func (p *fakePaint) Opacity() float32        { return p.opacity }
func (p *fakePaint) SetTransform(m f64.Aff3) { p.transform = m }
func (p *fakePaint) Transform() f64.Aff3     { return p.transform }

type fakeSurface struct {
	mu     sync.Mutex
	shown  bool
	closed bool
	paints int
}

func (s *fakeSurface) CreateSolidPaint(colors.RGBA) (border.Paint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paints++
	return &fakePaint{}, nil
}

func (s *fakeSurface) CreateGradientPaint(colors.Paint) (border.Paint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paints++
	return &fakePaint{}, nil
}

func (s *fakeSurface) paintCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paints
}
func (s *fakeSurface) Resize(border.Rect) error                               { return nil }
func (s *fakeSurface) Draw(border.Paint, border.Stroke) error                 { return nil }
func (s *fakeSurface) Raise() error                                           { return nil }

func (s *fakeSurface) Show() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shown = true
	return nil
}

func (s *fakeSurface) Hide() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shown = false
	return nil
}

func (s *fakeSurface) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *fakeSurface) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// fakeSystem is an in-memory window system. Tests mutate windows directly
// and deliver events through emit.
type fakeSystem struct {
	mu       sync.Mutex
	windows  map[platform.WindowID]platform.Window
	active   platform.WindowID
	handler  platform.Handler
	surfaces map[border.WindowID][]*fakeSurface
	listErr  error
}

func newFakeSystem(windows ...platform.Window) *fakeSystem {
	ws := &fakeSystem{
		windows:  make(map[platform.WindowID]platform.Window),
		surfaces: make(map[border.WindowID][]*fakeSurface),
	}
	for _, w := range windows {
		ws.windows[w.ID] = w
	}
	return ws
}

func (ws *fakeSystem) Windows() ([]platform.Window, error) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	if ws.listErr != nil {
		return nil, ws.listErr
	}
	out := make([]platform.Window, 0, len(ws.windows))
	for _, w := range ws.windows {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (ws *fakeSystem) Window(id platform.WindowID) (platform.Window, error) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	w, ok := ws.windows[id]
	if !ok {
		return platform.Window{}, errors.New("bad window")
	}
	return w, nil
}

func (ws *fakeSystem) ActiveWindow() (platform.WindowID, error) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	return ws.active, nil
}

func (ws *fakeSystem) Watch(h platform.Handler) error {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	ws.handler = h
	return nil
}

func (ws *fakeSystem) Run(ctx context.Context) error {
	<-ctx.Done()
	return nil
}

func (ws *fakeSystem) DPI() float64 { return 96 }

func (ws *fakeSystem) Surfaces() border.SurfaceFactory {
	return border.SurfaceFactoryFunc(func(id border.WindowID) (border.Surface, error) {
		ws.mu.Lock()
		defer ws.mu.Unlock()
		s := &fakeSurface{}
		ws.surfaces[id] = append(ws.surfaces[id], s)
		return s, nil
	})
}

func (ws *fakeSystem) put(w platform.Window) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	ws.windows[w.ID] = w
}

func (ws *fakeSystem) drop(id platform.WindowID) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	delete(ws.windows, id)
}

func (ws *fakeSystem) emit(e platform.Event) {
	ws.mu.Lock()
	h := ws.handler
	ws.mu.Unlock()
	h(e)
}

func (ws *fakeSystem) surfacesFor(id border.WindowID) []*fakeSurface {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	return append([]*fakeSurface(nil), ws.surfaces[id]...)
}
