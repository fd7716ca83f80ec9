// Package viewer holds the state of an interactive viewing session: the
// current view, the frame buffer it renders into and the status overlay.
//
// A Session has no window-system dependency. A host loop calls Update once
// per input tick and Render once per display refresh, both on the same
// goroutine.
package viewer

import (
	"log/slog"
	"time"

	"golang.org/x/text/language"

	"github.com/gogpu/mandelbrot"
	"github.com/gogpu/mandelbrot/control"
	"github.com/gogpu/mandelbrot/internal/hud"
)

// Session owns one frame buffer and the view rendered into it.
type Session struct {
	host   *mandelbrot.Host
	handle mandelbrot.Handle
	grid   mandelbrot.Grid
	frame  *mandelbrot.FrameBuffer

	view   mandelbrot.View
	config control.Config
	last   control.Input

	times   hud.FrameTimes
	overlay *hud.Overlay
	showHUD bool

	logger *slog.Logger
	now    func() time.Time
}

// Option configures a Session.
type Option func(*Session)

// WithView sets the initial view. Invalid views are ignored.
func WithView(v mandelbrot.View) Option {
	return func(s *Session) {
		if v.Valid() {
			s.view = v
		}
	}
}

// WithConfig sets the input step sizes.
func WithConfig(c control.Config) Option {
	return func(s *Session) {
		s.config = c
	}
}

// WithHUD shows or hides the status overlay initially.
func WithHUD(on bool) Option {
	return func(s *Session) {
		s.showHUD = on
	}
}

// WithLogger sets the logger used for view reports.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock replaces time.Now for frame timing.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// New allocates a frame buffer for grid on host and starts at the default
// view. An allocation failure is fatal for the caller.
func New(host *mandelbrot.Host, grid mandelbrot.Grid, opts ...Option) (*Session, error) {
	s := &Session{
		host:    host,
		grid:    grid,
		view:    mandelbrot.DefaultView(),
		config:  control.DefaultConfig(),
		overlay: hud.New(language.English),
		showHUD: true,
		logger:  mandelbrot.Logger(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	handle, err := host.AllocFrame(grid)
	if err != nil {
		return nil, err
	}
	frame, err := host.Frame(handle, grid)
	if err != nil {
		_ = host.Dealloc(handle)
		return nil, err
	}
	s.handle = handle
	s.frame = frame
	return s, nil
}

// View returns the current view.
func (s *Session) View() mandelbrot.View {
	return s.view
}

// Grid returns the frame size.
func (s *Session) Grid() mandelbrot.Grid {
	return s.grid
}

// Update applies one tick of held controls. The view is logged once each
// time Report goes from released to held.
func (s *Session) Update(in control.Input) {
	s.view = s.config.Step(s.view, in)
	if in.Has(control.Report) && !s.last.Has(control.Report) {
		s.logger.Info("view",
			"re", s.view.CenterReal,
			"im", s.view.CenterImag,
			"zoom", s.view.Zoom,
			"iterations", s.view.MaxIterations)
	}
	s.last = in
}

// Click re-centers the view on pixel (px, py). Clicks outside the frame
// are ignored.
func (s *Session) Click(px, py int) {
	if px < 0 || py < 0 || px >= s.grid.Width || py >= s.grid.Height {
		return
	}
	s.view = control.Recenter(s.view, s.grid, px, py)
}

// ToggleHUD shows or hides the status overlay.
func (s *Session) ToggleHUD() {
	s.showHUD = !s.showHUD
}

// HUDVisible reports whether the overlay is drawn.
func (s *Session) HUDVisible() bool {
	return s.showHUD
}

// FrameTime returns the rolling average kernel time.
func (s *Session) FrameTime() time.Duration {
	return s.times.Average()
}

// Render computes the current view into the frame buffer, draws the overlay
// if enabled and returns the buffer for presentation. The buffer is reused
// by the next call.
func (s *Session) Render() (*mandelbrot.FrameBuffer, error) {
	start := s.now()
	if err := s.host.CalculateView(s.handle, s.grid, s.view); err != nil {
		return nil, err
	}
	s.times.Push(s.now().Sub(start))

	if s.showHUD {
		s.overlay.Draw(s.frame.ToImage(), s.overlay.Lines(s.view, s.times.Average()))
	}
	return s.frame, nil
}

// Close releases the frame buffer. Calling Close twice returns an error.
func (s *Session) Close() error {
	s.frame = nil
	return s.host.Dealloc(s.handle)
}
