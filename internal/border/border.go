package border

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/image/math/f64"

	"github.com/1broseidon/winborder/internal/animation"
	"github.com/1broseidon/winborder/internal/colors"
)

// ErrClosed is returned by Post when the actor no longer accepts commands.
var ErrClosed = errors.New("border: closed")

// Options are the collaborators shared by all borders of a daemon.
type Options struct {
	Surfaces SurfaceFactory
	Resolver *colors.Resolver
	// DPI of the display; 0 means 96.
	DPI    float64
	Logger *slog.Logger
}

type delayKind int

const (
	delayNone delayKind = iota
	delayInitialize
	delayUnminimize
)

// Border is the actor owning the overlay of one tracked window. All fields
// below the mailbox are confined to the actor goroutine.
type Border struct {
	id       WindowID
	opts     Options
	logger   *slog.Logger
	mb       *mailbox
	done     chan struct{}
	start    sync.Once
	registry *Registry
	snap     atomic.Pointer[Snapshot]
	// requested is the latest settings handed to the actor, through New or
	// an accepted Reload.
	requested atomic.Pointer[Settings]

	settings     Settings
	stroke       Stroke
	pad          int
	state        State
	frame        Rect
	active       bool
	minimized    bool
	initializing bool
	wantVisible  bool
	mapped       bool

	surface         Surface
	surfaceFailures int
	paint           Paint
	paintDesc       colors.Paint
	paintStale      bool

	fader     *animation.Fader
	opacity   float32
	spinStart time.Time

	delay     *time.Timer
	delayKind delayKind
	ticker    *time.Ticker
}

// New creates a border actor in the Created state. It does nothing until
// Start is called.
func New(id WindowID, settings Settings, opts Options) *Border {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Resolver == nil {
		opts.Resolver = colors.NewResolver(nil, opts.Logger)
	}
	b := &Border{
		id:           id,
		opts:         opts,
		logger:       opts.Logger.With("window", id.String()),
		mb:           newMailbox(),
		done:         make(chan struct{}),
		settings:     settings,
		initializing: true,
		fader:        animation.NewFader(settings.Animations.Fade),
	}
	b.stroke, b.pad = Metrics(settings, opts.DPI)
	b.requested.Store(&settings)
	b.publish()
	return b
}

// Settings returns the settings most recently sent to the border. A Reload
// still in the mailbox is already reflected.
func (b *Border) Settings() Settings {
	return *b.requested.Load()
}

// ID returns the tracked window.
func (b *Border) ID() WindowID {
	return b.id
}

// Start launches the actor goroutine. Calling it more than once is a no-op.
func (b *Border) Start(ctx context.Context) {
	b.start.Do(func() {
		go b.run(ctx)
	})
}

// Send enqueues c without blocking. It reports false once the actor has
// begun tearing down; such commands are dropped.
func (b *Border) Send(c Command) bool {
	if !b.mb.push(c) {
		return false
	}
	if c.Kind == CmdReload && c.Settings != nil {
		b.requested.Store(c.Settings)
	}
	return true
}

// Post is Send returning ErrClosed instead of false.
func (b *Border) Post(c Command) error {
	if !b.Send(c) {
		return ErrClosed
	}
	return nil
}

// Done is closed after the actor has released its surface and left the
// registry.
func (b *Border) Done() <-chan struct{} {
	return b.done
}

// Snapshot returns the most recently published state.
func (b *Border) Snapshot() Snapshot {
	return *b.snap.Load()
}

func (b *Border) run(ctx context.Context) {
	defer b.teardown()
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("border actor panic recovered", "error", r)
		}
	}()

	b.armDelay(delayInitialize, b.settings.InitializeDelay)
	b.publish()

	for {
		var delayC, tickC <-chan time.Time
		if b.delay != nil {
			delayC = b.delay.C
		}
		if b.ticker != nil {
			tickC = b.ticker.C
		}

		select {
		case <-ctx.Done():
			return
		case <-b.mb.ready:
			for _, c := range b.mb.drain() {
				if !b.handle(c) {
					return
				}
			}
		case now := <-delayC:
			b.delay = nil
			b.delayElapsed(now)
		case now := <-tickC:
			b.render(now)
		}

		b.updateTicker()
		b.publish()
	}
}

// handle applies one command and reports whether the actor keeps running.
func (b *Border) handle(c Command) bool {
	now := time.Now()
	b.logger.Debug("border command", "command", c.Kind, "state", b.state)

	switch c.Kind {
	case CmdDestroy:
		return false

	case CmdShow:
		b.wantVisible = true
		if b.initializing || b.minimized {
			return true
		}
		b.show(now)

	case CmdHide:
		b.wantVisible = false
		if b.initializing {
			return true
		}
		b.hide(now)

	case CmdLocationChange:
		b.frame = c.Frame
		b.applyGeometry(now)

	case CmdReorder:
		if b.surface != nil && b.mapped {
			if err := b.surface.Raise(); err != nil {
				b.logger.Warn("failed to restack border", "error", err)
			}
		}

	case CmdFocusChanged:
		b.active = c.Active
		b.paintStale = true
		b.spinStart = now
		b.render(now)

	case CmdMinimizeStart:
		b.minimized = true
		if b.initializing {
			return true
		}
		if b.delayKind == delayUnminimize {
			b.stopDelay()
		}
		// Park the fader at 0 so frames drawn while minimized stay hidden
		// and the restore fades in from nothing.
		b.fader.Start(now, 0, 0)
		b.opacity = 0
		b.hideSurface()
		if b.state == StateVisible {
			b.state = StateHidden
		}

	case CmdMinimizeEnd:
		if b.initializing {
			b.minimized = false
			b.wantVisible = true
			return true
		}
		if !b.minimized {
			return true
		}
		b.wantVisible = true
		b.armDelay(delayUnminimize, b.settings.UnminimizeDelay)

	case CmdReload:
		if c.Settings == nil {
			return true
		}
		b.settings = *c.Settings
		b.fader = animation.NewFader(b.settings.Animations.Fade)
		target := float32(0)
		if b.state == StateVisible {
			target = 1
		}
		b.fader.Start(now, b.opacity, target)
		b.paintStale = true
		b.stopTicker()
		b.applyGeometry(now)
	}
	return true
}

func (b *Border) armDelay(kind delayKind, d time.Duration) {
	b.stopDelay()
	b.delayKind = kind
	if d <= 0 {
		b.delayElapsed(time.Now())
		return
	}
	b.delay = time.NewTimer(d)
}

func (b *Border) stopDelay() {
	if b.delay != nil {
		b.delay.Stop()
		b.delay = nil
	}
	b.delayKind = delayNone
}

func (b *Border) delayElapsed(now time.Time) {
	kind := b.delayKind
	b.delayKind = delayNone

	switch kind {
	case delayInitialize:
		b.initializing = false
		if b.wantVisible && !b.minimized {
			b.show(now)
		}
	case delayUnminimize:
		b.minimized = false
		if b.wantVisible {
			b.show(now)
		}
	}
}

func (b *Border) show(now time.Time) {
	if b.state == StateVisible {
		return
	}
	if b.surface == nil && !b.createSurface() {
		return
	}

	b.state = StateVisible
	b.spinStart = now
	b.fader.Start(now, b.opacity, 1)
	b.render(now)
}

func (b *Border) hide(now time.Time) {
	if b.state != StateVisible {
		return
	}

	b.state = StateHidden
	b.fader.Start(now, b.opacity, 0)
	if !b.fader.Running() {
		b.opacity = 0
		b.hideSurface()
		return
	}
	b.render(now)
}

func (b *Border) hideSurface() {
	if b.surface == nil || !b.mapped {
		return
	}
	if err := b.surface.Hide(); err != nil {
		b.logger.Warn("failed to hide border", "error", err)
	}
	b.mapped = false
}

func (b *Border) createSurface() bool {
	s, err := b.opts.Surfaces.NewSurface(b.id)
	if err != nil {
		b.surfaceFailures++
		b.logger.Error("failed to create border surface", "error", err, "attempt", b.surfaceFailures)
		return false
	}
	b.surface = s
	b.surfaceFailures = 0
	b.paintStale = true
	if err := s.Resize(b.overlayRect()); err != nil {
		b.logger.Warn("failed to size border", "error", err)
	}
	return true
}

func (b *Border) applyGeometry(now time.Time) {
	b.stroke, b.pad = Metrics(b.settings, b.opts.DPI)
	if b.surface == nil {
		return
	}
	if err := b.surface.Resize(b.overlayRect()); err != nil {
		b.logger.Warn("failed to resize border", "error", err)
		return
	}
	b.render(now)
}

func (b *Border) overlayRect() Rect {
	return OverlayRect(b.frame, b.pad)
}

func (b *Border) ensurePaint() bool {
	if b.paint != nil && !b.paintStale {
		return true
	}
	desc := b.opts.Resolver.Resolve(b.settings.colorFor(b.active), b.active)
	p, err := createPaint(b.surface, desc)
	if err != nil {
		b.logger.Warn("failed to create border paint", "error", err)
		b.paint = nil
		return false
	}
	b.paint = p
	b.paintDesc = desc
	b.paintStale = false
	return true
}

// render draws one frame at now. Frames are skipped, not retried, when the
// surface or paint is unavailable.
func (b *Border) render(now time.Time) {
	if b.surface == nil {
		return
	}

	opacity, done := b.fader.Value(now)
	b.opacity = opacity
	if b.state != StateVisible {
		if done {
			b.hideSurface()
		}
		if !b.mapped {
			return
		}
	}

	if !b.ensurePaint() {
		return
	}
	b.paint.SetOpacity(opacity)
	b.paint.SetTransform(b.transform(now))
	if err := b.surface.Draw(b.paint, b.stroke); err != nil {
		b.logger.Warn("failed to draw border", "error", err)
		b.paintStale = true
		return
	}

	if b.state == StateVisible && !b.mapped {
		if err := b.surface.Show(); err != nil {
			b.logger.Warn("failed to show border", "error", err)
			return
		}
		b.mapped = true
		if err := b.surface.Raise(); err != nil {
			b.logger.Debug("failed to restack border", "error", err)
		}
	}
}

func (b *Border) spinning() bool {
	if b.paintDesc.Kind != colors.PaintGradient {
		return false
	}
	for _, p := range b.settings.Animations.Continuous(b.active) {
		if p.Kind == animation.Spiral || p.Kind == animation.ReverseSpiral {
			return true
		}
	}
	return false
}

func (b *Border) transform(now time.Time) f64.Aff3 {
	if !b.spinning() {
		return animation.Identity
	}
	var angle float64
	for _, p := range b.settings.Animations.Continuous(b.active) {
		if p.Kind == animation.Spiral || p.Kind == animation.ReverseSpiral {
			angle += animation.SpiralAngle(p, b.spinStart, now)
		}
	}
	r := b.overlayRect()
	return animation.Rotation(angle, float64(r.Width)/2, float64(r.Height)/2)
}

func (b *Border) animating() bool {
	if b.surface == nil {
		return false
	}
	if b.fader.Running() {
		return true
	}
	return b.state == StateVisible && b.mapped && b.spinning()
}

func (b *Border) updateTicker() {
	switch on := b.animating(); {
	case on && b.ticker == nil:
		b.ticker = time.NewTicker(b.settings.Animations.FrameInterval())
	case !on && b.ticker != nil:
		b.stopTicker()
	}
}

func (b *Border) stopTicker() {
	if b.ticker != nil {
		b.ticker.Stop()
		b.ticker = nil
	}
}

func (b *Border) teardown() {
	b.mb.close()
	b.stopDelay()
	b.stopTicker()

	if b.surface != nil {
		if err := b.surface.Close(); err != nil {
			b.logger.Warn("failed to close border surface", "error", err)
		}
	}
	b.surface = nil
	b.paint = nil
	b.mapped = false
	b.state = StateDestroyed
	b.publish()

	if b.registry != nil {
		b.registry.release(b.id, b)
	}
	close(b.done)
	b.logger.Debug("border destroyed")
}

func (b *Border) publish() {
	s := Snapshot{
		ID:              b.id,
		State:           b.state,
		Active:          b.active,
		Minimized:       b.minimized,
		Initializing:    b.initializing,
		Frame:           b.frame,
		Opacity:         b.opacity,
		SurfaceFailures: b.surfaceFailures,
	}
	if b.paint != nil {
		s.Paint = b.paintDesc.Describe()
	}
	b.snap.Store(&s)
}
