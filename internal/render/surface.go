package render

import (
	"fmt"
	"image"
	"log/slog"
	"math"

	"github.com/BurntSushi/xgb/shape"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xprop"
	"golang.org/x/image/math/f64"

	"github.com/1broseidon/winborder/internal/animation"
	"github.com/1broseidon/winborder/internal/border"
	"github.com/1broseidon/winborder/internal/colors"
	"github.com/1broseidon/winborder/internal/x11"
)

// Factory creates X11 border surfaces. Windows use a 32-bit ARGB visual
// when a compositing manager is running, otherwise the root visual.
type Factory struct {
	conn     *x11.Connection
	xu       *xgbutil.XUtil
	root     xproto.Window
	shape    bool
	depth    byte
	visual   xproto.Visualid
	colormap xproto.Colormap
	lsbFirst bool
	maxReq   int
	logger   *slog.Logger
}

var _ border.SurfaceFactory = (*Factory)(nil)

// NewFactory inspects the screen once and returns a surface factory.
func NewFactory(conn *x11.Connection, logger *slog.Logger) (*Factory, error) {
	if logger == nil {
		logger = slog.Default()
	}
	xu := conn.XUtil
	screen := xu.Screen()
	setup := xproto.Setup(xu.Conn())

	f := &Factory{
		conn:     conn,
		xu:       xu,
		root:     conn.Root,
		shape:    conn.Shape,
		depth:    screen.RootDepth,
		visual:   screen.RootVisual,
		lsbFirst: setup.ImageByteOrder == xproto.ImageOrderLSBFirst,
		maxReq:   int(setup.MaximumRequestLength) * 4,
		logger:   logger,
	}

	if compositorRunning(xu) {
		if visual, ok := argbVisual(screen); ok {
			cmap, err := xproto.NewColormapId(xu.Conn())
			if err == nil {
				err = xproto.CreateColormapChecked(xu.Conn(), xproto.ColormapAllocNone, cmap, conn.Root, visual).Check()
			}
			if err != nil {
				logger.Warn("failed to create ARGB colormap, using root visual", "error", err)
			} else {
				f.depth, f.visual, f.colormap = 32, visual, cmap
			}
		}
	}

	if bpp := bitsPerPixel(setup, f.depth); bpp != 32 {
		return nil, fmt.Errorf("unsupported pixmap format: depth %d uses %d bits per pixel", f.depth, bpp)
	}
	if !f.shape {
		logger.Warn("SHAPE extension unavailable; borders will not be click-through")
	}
	logger.Debug("render factory ready", "depth", f.depth, "argb", f.colormap != 0)
	return f, nil
}

// NewSurface creates a hidden overlay for the tracked window.
func (f *Factory) NewSurface(id border.WindowID) (border.Surface, error) {
	conn := f.xu.Conn()

	wid, err := xproto.NewWindowId(conn)
	if err != nil {
		return nil, err
	}

	mask := uint32(xproto.CwBackPixel | xproto.CwBorderPixel | xproto.CwOverrideRedirect)
	// Value list order follows the bit positions of the mask (low to high).
	values := []uint32{0, 0, 1}
	if f.colormap != 0 {
		mask |= xproto.CwColormap
		values = append(values, uint32(f.colormap))
	}

	err = xproto.CreateWindowChecked(
		conn,
		f.depth,
		wid,
		f.root,
		0, 0,
		1, 1,
		0,
		xproto.WindowClassInputOutput,
		f.visual,
		mask,
		values,
	).Check()
	if err != nil {
		return nil, fmt.Errorf("failed to create overlay window: %w", err)
	}

	gc, err := xproto.NewGcontextId(conn)
	if err != nil {
		xproto.DestroyWindow(conn, wid)
		return nil, err
	}
	if err := xproto.CreateGCChecked(conn, gc, xproto.Drawable(wid), xproto.GcGraphicsExposures, []uint32{0}).Check(); err != nil {
		xproto.DestroyWindow(conn, wid)
		return nil, fmt.Errorf("failed to create overlay gc: %w", err)
	}

	if f.shape {
		// Empty input region: clicks pass through to the window below.
		shape.Rectangles(conn, shape.SoSet, shape.SkInput, xproto.ClipOrderingUnsorted, wid, 0, 0, nil)
	}
	labelOverlay(f.logger, wid,
		func() error {
			return icccm.WmClassSet(f.xu, wid, &icccm.WmClass{Instance: "winborder", Class: "Winborder"})
		},
		func() error { return ewmh.WmNameSet(f.xu, wid, "winborder") },
	)

	return &Surface{
		f:       f,
		win:     wid,
		gc:      gc,
		tracked: xproto.Window(id),
		opacity: -1,
	}, nil
}

// labelOverlay sets the class and name tools use to recognize overlays.
// Failing either leaves the overlay working, so errors are only logged.
func labelOverlay(logger *slog.Logger, win xproto.Window, setClass, setName func() error) {
	if err := setClass(); err != nil {
		logger.Debug("failed to set overlay WM_CLASS", "window", win, "error", err)
	}
	if err := setName(); err != nil {
		logger.Debug("failed to set overlay _NET_WM_NAME", "window", win, "error", err)
	}
}

// Surface is one overlay window. It is not safe for concurrent use; the
// owning border actor is its only caller.
type Surface struct {
	f       *Factory
	win     xproto.Window
	gc      xproto.Gcontext
	tracked xproto.Window
	rect    border.Rect

	pixmap     xproto.Pixmap
	pixW, pixH int

	maskKey maskKey
	mask    *image.Alpha
	regions []image.Rectangle
	img     *image.RGBA

	opacity float32
	closed  bool
}

type maskKey struct {
	w, h   int
	stroke border.Stroke
}

var _ border.Surface = (*Surface)(nil)

type paint struct {
	desc      colors.Paint
	opacity   float32
	transform f64.Aff3
}

func (p *paint) SetOpacity(o float32)    { p.opacity = o }
func (p *paint) Opacity() float32        { return p.opacity }
func (p *paint) SetTransform(m f64.Aff3) { p.transform = m }
func (p *paint) Transform() f64.Aff3     { return p.transform }

func (s *Surface) CreateSolidPaint(c colors.RGBA) (border.Paint, error) {
	if s.closed {
		return nil, border.ErrClosed
	}
	return &paint{desc: colors.SolidPaint(c), opacity: 1, transform: animation.Identity}, nil
}

func (s *Surface) CreateGradientPaint(p colors.Paint) (border.Paint, error) {
	if s.closed {
		return nil, border.ErrClosed
	}
	if p.Kind != colors.PaintGradient || len(p.Stops) == 0 {
		return nil, fmt.Errorf("not a gradient paint: %s", p.Kind)
	}
	return &paint{desc: p, opacity: 1, transform: animation.Identity}, nil
}

func (s *Surface) Resize(r border.Rect) error {
	if s.closed {
		return border.ErrClosed
	}
	r.Width = max(r.Width, 1)
	r.Height = max(r.Height, 1)
	s.rect = r
	return xproto.ConfigureWindowChecked(
		s.f.xu.Conn(),
		s.win,
		xproto.ConfigWindowX|xproto.ConfigWindowY|xproto.ConfigWindowWidth|xproto.ConfigWindowHeight,
		[]uint32{uint32(int32(r.X)), uint32(int32(r.Y)), uint32(r.Width), uint32(r.Height)},
	).Check()
}

func (s *Surface) Draw(bp border.Paint, st border.Stroke) error {
	if s.closed {
		return border.ErrClosed
	}
	p, ok := bp.(*paint)
	if !ok {
		return fmt.Errorf("foreign paint %T", bp)
	}
	conn := s.f.xu.Conn()
	w, h := max(s.rect.Width, 1), max(s.rect.Height, 1)

	key := maskKey{w: w, h: h, stroke: st}
	if s.mask == nil || key != s.maskKey {
		s.mask = RingMask(w, h, st)
		s.maskKey = key
		rects := shapeRects(s.mask)
		if s.f.shape {
			shape.Rectangles(conn, shape.SoSet, shape.SkBounding, xproto.ClipOrderingUnsorted, s.win, 0, 0, rects)
			s.regions = s.regions[:0]
			for _, r := range rects {
				s.regions = append(s.regions, rectToImage(r))
			}
		} else {
			s.regions = []image.Rectangle{image.Rect(0, 0, w, h)}
		}
	}
	if s.img == nil || s.img.Bounds().Dx() != w || s.img.Bounds().Dy() != h {
		s.img = image.NewRGBA(image.Rect(0, 0, w, h))
	}
	Shade(s.img, s.mask, p.desc, animation.Invert(p.transform))

	if err := s.ensurePixmap(w, h); err != nil {
		return err
	}
	for _, region := range s.regions {
		for _, chunk := range putImageChunks(region, s.f.maxReq) {
			xproto.PutImage(conn, xproto.ImageFormatZPixmap, xproto.Drawable(s.pixmap), s.gc,
				uint16(chunk.Dx()), uint16(chunk.Dy()), int16(chunk.Min.X), int16(chunk.Min.Y),
				0, s.f.depth, zpixmap(s.img, chunk, s.f.lsbFirst))
		}
	}
	xproto.ChangeWindowAttributes(conn, s.win, xproto.CwBackPixmap, []uint32{uint32(s.pixmap)})
	xproto.ClearArea(conn, false, s.win, 0, 0, 0, 0)

	return s.setOpacity(p.opacity)
}

func (s *Surface) ensurePixmap(w, h int) error {
	if s.pixmap != 0 && s.pixW == w && s.pixH == h {
		return nil
	}
	conn := s.f.xu.Conn()
	if s.pixmap != 0 {
		xproto.FreePixmap(conn, s.pixmap)
		s.pixmap = 0
	}
	pid, err := xproto.NewPixmapId(conn)
	if err != nil {
		return err
	}
	if err := xproto.CreatePixmapChecked(conn, s.f.depth, pid, xproto.Drawable(s.win), uint16(w), uint16(h)).Check(); err != nil {
		return fmt.Errorf("failed to create border pixmap: %w", err)
	}
	s.pixmap, s.pixW, s.pixH = pid, w, h
	return nil
}

// setOpacity writes _NET_WM_WINDOW_OPACITY for the compositor.
func (s *Surface) setOpacity(o float32) error {
	o = float32(math.Max(0, math.Min(1, float64(o))))
	if o == s.opacity {
		return nil
	}
	s.opacity = o
	return xprop.ChangeProp32(s.f.xu, s.win, "_NET_WM_WINDOW_OPACITY", "CARDINAL", uint(float64(o)*0xffffffff))
}

func (s *Surface) Show() error {
	if s.closed {
		return border.ErrClosed
	}
	return xproto.MapWindowChecked(s.f.xu.Conn(), s.win).Check()
}

func (s *Surface) Hide() error {
	if s.closed {
		return border.ErrClosed
	}
	return xproto.UnmapWindowChecked(s.f.xu.Conn(), s.win).Check()
}

// Raise stacks the overlay directly above the tracked window's top-level
// frame so windows above the tracked one also cover its border.
func (s *Surface) Raise() error {
	if s.closed {
		return border.ErrClosed
	}
	conn := s.f.xu.Conn()
	frame, err := s.f.conn.TopLevel(s.tracked)
	if err != nil {
		return err
	}
	return xproto.ConfigureWindowChecked(
		conn,
		s.win,
		xproto.ConfigWindowSibling|xproto.ConfigWindowStackMode,
		[]uint32{uint32(frame), xproto.StackModeAbove},
	).Check()
}

func (s *Surface) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	conn := s.f.xu.Conn()
	if s.pixmap != 0 {
		xproto.FreePixmap(conn, s.pixmap)
	}
	xproto.FreeGC(conn, s.gc)
	return xproto.DestroyWindowChecked(conn, s.win).Check()
}

func compositorRunning(xu *xgbutil.XUtil) bool {
	name := fmt.Sprintf("_NET_WM_CM_S%d", xu.Conn().DefaultScreen)
	reply, err := xproto.InternAtom(xu.Conn(), true, uint16(len(name)), name).Reply()
	if err != nil || reply.Atom == 0 {
		return false
	}
	owner, err := xproto.GetSelectionOwner(xu.Conn(), reply.Atom).Reply()
	return err == nil && owner.Owner != 0
}

func argbVisual(screen *xproto.ScreenInfo) (xproto.Visualid, bool) {
	for _, d := range screen.AllowedDepths {
		if d.Depth != 32 {
			continue
		}
		for _, v := range d.Visuals {
			if v.Class == xproto.VisualClassTrueColor {
				return v.VisualId, true
			}
		}
	}
	return 0, false
}

func bitsPerPixel(setup *xproto.SetupInfo, depth byte) byte {
	for _, f := range setup.PixmapFormats {
		if f.Depth == depth {
			return f.BitsPerPixel
		}
	}
	return 0
}
