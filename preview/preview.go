// Package preview shows rendered plots on a full-screen tcell terminal
package preview

import (
	"context"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/termplot/render"
	"github.com/lixenwraith/termplot/terminal"
)

// Style maps a palette color to a tcell style. Background modes paint the cell
// background, every other mode the foreground
func Style(c terminal.Color, mode terminal.ColorMode) tcell.Style {
	if c == terminal.NoColor {
		return tcell.StyleDefault
	}
	rgb := c.RGB()
	tc := tcell.NewRGBColor(int32(rgb.R), int32(rgb.G), int32(rgb.B))
	if mode.Kind == terminal.ModeTerminalBg {
		return tcell.StyleDefault.Background(tc)
	}
	return tcell.StyleDefault.Foreground(tc)
}

// Draw copies c onto s with its top-left corner at (x, y); cells past the
// screen edge are dropped. The caller calls Show
func Draw(s tcell.Screen, c render.Canvas, x, y int, mode terminal.ColorMode) {
	sw, sh := s.Size()
	for row := 0; row < c.Height(); row++ {
		sy := y + row
		if sy < 0 || sy >= sh {
			continue
		}
		for col := 0; col < c.Width(); col++ {
			sx := x + col
			if sx < 0 || sx >= sw {
				continue
			}
			cell := c.Get(col, row)
			if cell.IsContinuation() {
				continue
			}
			s.SetContent(sx, sy, cell.Rune, nil, Style(cell.Color, mode))
		}
	}
}

// Show opens the terminal, centers c and waits for Esc, q or Ctrl-C, or for ctx
// to end. The screen is restored before returning
func Show(ctx context.Context, c render.Canvas, mode terminal.ColorMode) error {
	s, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := s.Init(); err != nil {
		return err
	}
	defer s.Fini()
	return Run(ctx, s, c, mode)
}

// Run is the event loop of Show on an initialized screen
func Run(ctx context.Context, s tcell.Screen, c render.Canvas, mode terminal.ColorMode) error {
	redraw := func() {
		s.Clear()
		w, h := s.Size()
		Draw(s, c, max((w-c.Width())/2, 0), max((h-c.Height())/2, 0), mode)
		s.Show()
	}
	redraw()

	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := s.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
					(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
					return nil
				}
			case *tcell.EventResize:
				s.Sync()
				redraw()
			}
		}
	}
}
