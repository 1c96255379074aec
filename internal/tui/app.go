package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/bits-and-blooms/bitset"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/hupe1980/fuzzgo"
	"github.com/hupe1980/fuzzgo/matcher"
)

const (
	// feedBufferSize is the initial read buffer for the item stream; it
	// doubles whenever a read fills it, up to maxFeedBufferSize.
	feedBufferSize    = 64 * 1024
	maxFeedBufferSize = 256 * 1024

	// redrawsPerSecond coalesces redraws; a producer pushing millions of
	// lines must not saturate the terminal.
	redrawsPerSecond = 60
)

// wake-up and deferred-redraw events posted into the tcell loop.
type eventWakeup struct{ tcell.EventTime }
type eventRefresh struct{ tcell.EventTime }

// Config wires an App.
type Config struct {
	Finder *fuzzgo.Finder
	// In is the item stream, usually a pipe on stdin.
	In io.Reader
	// Prompt is drawn before the query line.
	Prompt string
	// Query preloads the query line.
	Query string
}

// App is the interactive finder screen. The terminal itself is opened via
// /dev/tty, leaving stdin for the item stream and stdout for the final
// selection print.
type App struct {
	fz     *fuzzgo.Finder
	in     io.Reader
	screen tcell.Screen
	prompt string

	line      lineEditor
	cursor    int
	selection *roaring.Bitmap
	positions *bitset.BitSet
	pal       palette

	limiter      *rate.Limiter
	redrawQueued bool

	done        chan struct{}
	closing     atomic.Bool
	wakeHandled chan struct{}
	accepted    bool
}

// New creates an App on the controlling terminal.
func New(cfg Config) (*App, error) {
	tty, err := tcell.NewDevTty()
	if err != nil {
		return nil, fmt.Errorf("tui: open tty: %w", err)
	}
	screen, err := tcell.NewTerminfoScreenFromTty(tty)
	if err != nil {
		return nil, fmt.Errorf("tui: create screen: %w", err)
	}

	a := &App{
		fz:          cfg.Finder,
		in:          cfg.In,
		screen:      screen,
		prompt:      cfg.Prompt,
		selection:   roaring.New(),
		positions:   bitset.New(256),
		pal:         defaultPalette(),
		limiter:     rate.NewLimiter(rate.Limit(redrawsPerSecond), 1),
		done:        make(chan struct{}),
		wakeHandled: make(chan struct{}, 1),
	}
	for _, r := range cfg.Query {
		a.line.Insert(r)
	}
	return a, nil
}

// Run drives the screen until the user accepts or aborts. It returns the
// selected items (the cursor item when nothing was multi-selected) and
// whether the user accepted.
func (a *App) Run(ctx context.Context) ([]string, bool, error) {
	if err := a.screen.Init(); err != nil {
		return nil, false, fmt.Errorf("tui: init screen: %w", err)
	}
	defer a.screen.Fini()

	if q := a.line.String(); q != "" {
		a.fz.SetQuery(q)
	}
	a.draw()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return a.feedLoop(ctx) })
	g.Go(func() error { return a.wakeLoop() })

	a.eventLoop()

	// Shutdown order: mark closing, stop the finder (fires one final wake
	// and closes the descriptor, unblocking the poll), then unblock a
	// feeder stuck in a stdin read.
	a.closing.Store(true)
	close(a.done)
	selected := a.collectSelection()
	a.fz.Stop()
	a.unblockFeeder()

	err := g.Wait()
	return selected, a.accepted, err
}

// feedLoop pumps the item stream into the finder, committing after every
// chunk that produced items. The buffer doubles while reads keep filling
// it, so fast producers are absorbed in few syscalls.
func (a *App) feedLoop(ctx context.Context) error {
	buf := make([]byte, feedBufferSize)
	for {
		n, err := a.in.Read(buf)
		if n > 0 {
			items, ferr := a.fz.ScanFeed(buf[:n])
			if items > 0 {
				a.fz.CommitItems()
			}
			if ferr != nil {
				return ferr
			}
			if n == len(buf) && len(buf) < maxFeedBufferSize {
				buf = make([]byte, len(buf)*2)
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				if pushed, eerr := a.fz.ScanEnd(); eerr != nil {
					return eerr
				} else if pushed {
					a.fz.CommitItems()
				}
				return nil
			}
			if a.closing.Load() || errors.Is(err, os.ErrDeadlineExceeded) {
				return nil
			}
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-a.done:
			return nil
		default:
		}
	}
}

// unblockFeeder kicks a feeder blocked in a read on a pollable file.
func (a *App) unblockFeeder() {
	if f, ok := a.in.(*os.File); ok {
		_ = f.SetReadDeadline(time.Now())
	}
}

// wakeLoop waits on the finder's wake-up handle and bridges it into the
// tcell event loop. It posts one event per wake and then waits for the
// event loop to drain the handle, so a pending wake never busy-polls.
func (a *App) wakeLoop() error {
	fd := a.fz.NotifyHandle()
	for {
		ok, err := waitWake(fd)
		if a.closing.Load() {
			return nil
		}
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}

		a.post(&eventWakeup{})
		select {
		case <-a.wakeHandled:
		case <-a.done:
			return nil
		}
	}
}

// post delivers an event without dropping it while the loop is alive — a
// dropped wake-up would strand the poll bridge — and without blocking once
// the loop has exited.
func (a *App) post(ev tcell.Event) {
	for {
		select {
		case <-a.done:
			return
		default:
		}
		if a.screen.PostEvent(ev) == nil {
			return
		}
		time.Sleep(time.Millisecond)
	}
}

func (a *App) eventLoop() {
	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventResize:
			a.screen.Sync()
			a.draw()
		case *eventWakeup:
			a.fz.LoadResults()
			select {
			case a.wakeHandled <- struct{}{}:
			default:
			}
			a.redraw()
		case *eventRefresh:
			a.redrawQueued = false
			a.draw()
		case *tcell.EventKey:
			if a.handleKey(ev) {
				return
			}
			a.redraw()
		}
	}
}

// handleKey reports true when the loop should exit.
func (a *App) handleKey(ev *tcell.EventKey) bool {
	queryChanged := false

	switch ev.Key() {
	case tcell.KeyEnter:
		a.accepted = true
		return true
	case tcell.KeyEscape, tcell.KeyCtrlC:
		a.accepted = false
		return true
	case tcell.KeyCtrlU:
		queryChanged = a.line.Clear()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		queryChanged = a.line.Backspace()
	case tcell.KeyDelete:
		queryChanged = a.line.Delete()
	case tcell.KeyLeft:
		a.line.Left()
	case tcell.KeyRight:
		a.line.Right()
	case tcell.KeyHome, tcell.KeyCtrlA:
		a.line.Home()
	case tcell.KeyEnd, tcell.KeyCtrlE:
		a.line.End()
	case tcell.KeyUp, tcell.KeyCtrlP:
		a.cursor++
	case tcell.KeyDown, tcell.KeyCtrlN:
		if a.cursor > 0 {
			a.cursor--
		}
	case tcell.KeyTab:
		if a.cursor < a.fz.ResultsLen() {
			idx := a.fz.Result(a.cursor).Index
			if !a.selection.CheckedAdd(idx) {
				a.selection.Remove(idx)
			}
			a.cursor++
		}
	case tcell.KeyRune:
		a.line.Insert(ev.Rune())
		queryChanged = true
	}

	if queryChanged {
		a.fz.SetQuery(a.line.String())
	}
	return false
}

// redraw coalesces draws through the rate limiter; a denied draw is
// deferred and posted back as a refresh event.
func (a *App) redraw() {
	if a.limiter.Allow() {
		a.draw()
		return
	}
	if a.redrawQueued {
		return
	}
	a.redrawQueued = true
	delay := a.limiter.Reserve().Delay()
	time.AfterFunc(delay, func() {
		a.post(&eventRefresh{})
	})
}

func (a *App) draw() {
	w, h := a.screen.Size()
	if w < 4 || h < 4 {
		return
	}
	a.screen.Clear()

	maxHeight := h - 2
	items := a.fz.ResultsLen()
	if items == 0 {
		a.cursor = 0
	} else if a.cursor >= items {
		a.cursor = items - 1
	}

	queryBytes := []byte(a.fz.Query())
	itemWidth := w - 3

	var best float32
	if items > 0 {
		best = a.fz.Result(0).Score
	}

	for i := 0; i < maxHeight && i < items; i++ {
		y := maxHeight - 1 - i
		res := a.fz.Result(i)
		isCursor := i == a.cursor

		base := tcell.StyleDefault.Foreground(a.pal.defaultFg)
		if isCursor {
			base = tcell.StyleDefault.
				Foreground(a.pal.cursorFg).
				Background(a.pal.cursorBg)
			for x := 0; x < w; x++ {
				a.screen.SetContent(x, y, ' ', nil, base)
			}
		}
		if a.selection.Contains(res.Index) {
			a.screen.SetContent(1, y, '•', nil, base.Foreground(a.pal.markerFg))
		}

		matchStyle := base.Foreground(a.pal.matchFg(res.Score, best)).Bold(true)
		matched := matcher.MatchPositions(queryBytes, res.Line, a.positions)

		x := 3
		g := uniseg.NewGraphemes(string(res.Line))
		byteOff := 0
		for g.Next() {
			gw := g.Width()
			if x+gw > 3+itemWidth {
				break
			}
			style := base
			if matched && a.positions.Test(uint(byteOff)) {
				style = matchStyle
			}
			runes := g.Runes()
			a.screen.SetContent(x, y, runes[0], runes[1:], style)
			x += gw
			byteOff += len(g.Bytes())
		}
	}

	counts := fmt.Sprintf("%d/%d", items, a.fz.ItemsSize())
	if a.fz.Processing() {
		counts += " ·"
	}
	a.drawText(0, h-2, counts, tcell.StyleDefault.Foreground(a.pal.defaultFg))

	promptStyle := tcell.StyleDefault.
		Foreground(a.pal.promptFg).
		Background(a.pal.promptBg)
	x := a.drawText(0, h-1, a.prompt, promptStyle)
	a.drawText(x+1, h-1, a.line.String(), tcell.StyleDefault)
	a.screen.ShowCursor(x+1+uniseg.StringWidth(string([]rune(a.line.String())[:a.line.Cursor()])), h-1)

	a.screen.Show()
}

func (a *App) drawText(x, y int, s string, style tcell.Style) int {
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		runes := g.Runes()
		a.screen.SetContent(x, y, runes[0], runes[1:], style)
		x += g.Width()
	}
	return x
}

// collectSelection returns the multi-selected items in input order, or the
// cursor item when nothing was selected.
func (a *App) collectSelection() []string {
	if !a.selection.IsEmpty() {
		out := make([]string, 0, a.selection.GetCardinality())
		it := a.selection.Iterator()
		for it.HasNext() {
			out = append(out, string(a.fz.Item(uint64(it.Next()))))
		}
		return out
	}
	if n := a.fz.ResultsLen(); n > 0 && a.cursor < n {
		return []string{string(a.fz.Result(a.cursor).Line)}
	}
	return nil
}
