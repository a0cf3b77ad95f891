package terminal

import (
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/nsf/termbox-go"
	"gonum.org/v1/gonum/spatial/r3"

	sph "github.com/esimov/sph-fluid/sph-solver"
)

// glyphs shade particles from the sparsest to the densest.
var glyphs = []rune{'.', ':', 'o', 'O', '@'}

const probeGlyph = '█'

// Terminal draws the x/y plane of the container with termbox and owns the
// only goroutine calling Tick.
type Terminal struct {
	backbuf  []termbox.Cell
	bbw, bbh int
	logfile  *os.File
	fn       string

	solver    *sph.Solver
	substeps  int
	frame     time.Duration
	positions []r3.Vec
}

// New prepares a terminal view running substeps ticks per frame.
func New(s *sph.Solver, substeps int, frame time.Duration) *Terminal {
	if substeps < 1 {
		substeps = 1
	}
	t := &Terminal{
		solver:   s,
		substeps: substeps,
		frame:    frame,
	}
	t.fn = "debug.log"
	t.logfile, _ = os.OpenFile(t.fn, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0644)

	return t
}

// Render runs the simulation until Esc or q is pressed.
func (t *Terminal) Render() error {
	if t.logfile != nil {
		defer t.logfile.Close()
	}

	err := termbox.Init()
	if err != nil {
		return err
	}
	defer termbox.Close()
	termbox.SetInputMode(termbox.InputEsc | termbox.InputMouse)
	t.reallocBackBuffer(termbox.Size())

	events := make(chan termbox.Event)
	done := make(chan struct{})
	defer close(done)
	go poll(events, done)

	ticker := time.NewTicker(t.frame)
	defer ticker.Stop()
	t.redraw()

mainloop:
	for {
		select {
		case ev := <-events:
			switch ev.Type {
			case termbox.EventKey:
				if ev.Key == termbox.KeyEsc || ev.Ch == 'q' {
					break mainloop
				}
				t.command(ev.Ch)
			case termbox.EventMouse:
				if ev.Key == termbox.MouseLeft {
					t.moveProbe(ev.MouseX, ev.MouseY)
				}
			case termbox.EventResize:
				t.reallocBackBuffer(ev.Width, ev.Height)
			case termbox.EventError:
				return ev.Err
			}
		case <-ticker.C:
			for i := 0; i < t.substeps; i++ {
				if err := t.solver.Tick(); err != nil {
					return err
				}
			}
			t.redraw()
		}
	}
	termbox.Interrupt()
	return nil
}

func poll(events chan<- termbox.Event, done <-chan struct{}) {
	for {
		ev := termbox.PollEvent()
		if ev.Type == termbox.EventInterrupt {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

func (t *Terminal) command(ch rune) {
	switch ch {
	case '+':
		t.resize(1.05)
	case '-':
		t.resize(1 / 1.05)
	case 'r':
		t.solver.ResetVelocity()
	}
}

func (t *Terminal) resize(factor float64) {
	extent := t.solver.Params().HalfExtent * factor
	if err := t.solver.SetBoundary(extent); err != nil {
		t.log("resize: %v\n", err)
	}
}

func (t *Terminal) moveProbe(mx, my int) {
	pos := unproject(mx, my, t.solver.Params().HalfExtent, t.bbw, t.bbh)
	if t.solver.SetProbe(pos) {
		t.log("probe X:%d \t Y:%d\n", mx, my)
	}
}

func (t *Terminal) reallocBackBuffer(w, h int) {
	t.bbw, t.bbh = w, h
	t.backbuf = make([]termbox.Cell, w*h)
}

func (t *Terminal) redraw() {
	termbox.Clear(termbox.ColorDefault, termbox.ColorDefault)
	for i := range t.backbuf {
		t.backbuf[i] = termbox.Cell{Ch: ' '}
	}

	extent := t.solver.Params().HalfExtent
	stats := t.solver.Stats()
	t.positions = t.solver.Positions(t.positions)

	for i, p := range t.positions {
		x, y, ok := project(p, extent, t.bbw, t.bbh)
		if !ok {
			continue
		}
		cell := termbox.Cell{
			Ch: shade(t.solver.Particle(i).Density(), stats.MinDensity, stats.MaxDensity),
			Fg: termbox.ColorCyan,
		}
		if i == 0 && t.solver.HasProbe() {
			cell = termbox.Cell{Ch: probeGlyph, Fg: termbox.ColorRed}
		}
		t.backbuf[t.bbw*y+x] = cell
	}
	status := fmt.Sprintf("step %d  t=%.4f  extent=%.2f  rho=[%.3g, %.3g]  [+/-] box [r] rest [q] quit",
		t.solver.Steps(), t.solver.Time(), extent, stats.MinDensity, stats.MaxDensity)
	t.print(0, 0, status, termbox.ColorWhite)

	copy(termbox.CellBuffer(), t.backbuf)
	termbox.Flush()
}

func (t *Terminal) print(x, y int, s string, fg termbox.Attribute) {
	if y < 0 || y >= t.bbh {
		return
	}
	for _, r := range s {
		if x >= t.bbw {
			return
		}
		t.backbuf[t.bbw*y+x] = termbox.Cell{Ch: r, Fg: fg}
		x++
	}
}

func (t *Terminal) log(format string, vals ...interface{}) {
	if t.logfile == nil {
		return
	}
	logTo(t.logfile, format, vals...)
}

func logTo(f io.Writer, format string, vals ...interface{}) {
	fmt.Fprintf(f, format, vals...)
}

// project maps the x/y face of the container onto a w×h cell grid with +y up.
func project(p r3.Vec, extent float64, w, h int) (int, int, bool) {
	if w <= 0 || h <= 0 || extent <= 0 {
		return 0, 0, false
	}
	cx := (p.X + extent) / (2 * extent) * float64(w)
	cy := (extent - p.Y) / (2 * extent) * float64(h)
	if math.IsNaN(cx) || math.IsNaN(cy) {
		return 0, 0, false
	}
	x, y := int(math.Floor(cx)), int(math.Floor(cy))

	// the far walls belong to the last cell
	if x == w && p.X == extent {
		x = w - 1
	}
	if y == h && p.Y == -extent {
		y = h - 1
	}
	if x < 0 || x >= w || y < 0 || y >= h {
		return 0, 0, false
	}
	return x, y, true
}

// unproject returns the centre of cell (x, y) on the z=0 plane.
func unproject(x, y int, extent float64, w, h int) r3.Vec {
	return r3.Vec{
		X: (float64(x)+0.5)/float64(w)*2*extent - extent,
		Y: extent - (float64(y)+0.5)/float64(h)*2*extent,
	}
}

// shade picks a glyph for density d relative to the range [lo, hi].
func shade(d, lo, hi float64) rune {
	if !(hi > lo) {
		return glyphs[0]
	}
	f := (d - lo) / (hi - lo)
	i := int(f * float64(len(glyphs)))
	switch {
	case i < 0:
		i = 0
	case i >= len(glyphs):
		i = len(glyphs) - 1
	}
	return glyphs[i]
}
