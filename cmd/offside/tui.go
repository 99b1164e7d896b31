package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/layoutkit/offside/internal/engine/buffer"
	"github.com/layoutkit/offside/internal/indent"
)

// runTUI opens an interactive viewer: arrow keys move the cursor, Tab
// cycles through the indentation candidates for the cursor line, and
// Esc or q quits. Candidate columns are marked on the cursor line with
// a brightness ramp, first candidate brightest.
func runTUI(engine *indent.Engine, name string) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	v := &tuiView{
		screen: screen,
		engine: engine,
		name:   name,
	}
	return v.loop()
}

type tuiView struct {
	screen tcell.Screen
	engine *indent.Engine
	name   string

	cursor buffer.Point
	top    int // first visible line
}

func (v *tuiView) loop() error {
	for {
		v.draw()
		ev := v.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			v.screen.Sync()
		case *tcell.EventKey:
			switch {
			case ev.Key() == tcell.KeyEscape,
				ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
				return nil
			case ev.Key() == tcell.KeyTab:
				// Errors surface in the status line on redraw.
				pos := v.engine.Buffer().PointToOffset(v.cursor)
				if cand, err := v.engine.CycleIndent(pos); err == nil {
					v.cursor.Column = cand.Column
				}
			case ev.Key() == tcell.KeyUp:
				v.moveCursor(-1, 0)
			case ev.Key() == tcell.KeyDown:
				v.moveCursor(1, 0)
			case ev.Key() == tcell.KeyLeft:
				v.moveCursor(0, -1)
			case ev.Key() == tcell.KeyRight:
				v.moveCursor(0, 1)
			}
		}
	}
}

func (v *tuiView) moveCursor(dl, dc int) {
	buf := v.engine.Buffer()
	v.cursor.Line += dl
	if v.cursor.Line < 0 {
		v.cursor.Line = 0
	}
	if v.cursor.Line >= buf.LineCount() {
		v.cursor.Line = buf.LineCount() - 1
	}
	v.cursor.Column += dc
	if v.cursor.Column < 0 {
		v.cursor.Column = 0
	}
	if n := len(buf.LineText(v.cursor.Line)); v.cursor.Column > n {
		v.cursor.Column = n
	}
	if dl != 0 {
		// Leaving the line ends the cycle.
		v.engine.ResetCycle()
	}
}

// candidateStyles builds a dim-to-bright color ramp over the candidate
// list, first candidate brightest.
func candidateStyles(n int) []tcell.Style {
	styles := make([]tcell.Style, n)
	for i := 0; i < n; i++ {
		l := 0.8
		if n > 1 {
			l = 0.8 - 0.5*float64(i)/float64(n-1)
		}
		c := colorful.Hsl(200, 0.9, l)
		r, g, b := c.RGB255()
		styles[i] = tcell.StyleDefault.
			Foreground(tcell.NewRGBColor(int32(r), int32(g), int32(b))).
			Bold(i == 0)
	}
	return styles
}

func (v *tuiView) draw() {
	buf := v.engine.Buffer()
	v.screen.Clear()
	width, height := v.screen.Size()
	body := height - 1

	if v.cursor.Line < v.top {
		v.top = v.cursor.Line
	}
	if v.cursor.Line >= v.top+body {
		v.top = v.cursor.Line - body + 1
	}

	plain := tcell.StyleDefault
	for row := 0; row < body; row++ {
		line := v.top + row
		if line >= buf.LineCount() {
			break
		}
		text := buf.LineText(line)
		col := 0
		for _, r := range text {
			if col >= width {
				break
			}
			v.screen.SetContent(col, row, r, nil, plain)
			w := buffer.DisplayWidth(string(r))
			if w < 1 {
				w = 1
			}
			col += w
		}
	}

	// Mark candidate columns on the cursor line.
	status := fmt.Sprintf(" %s  %d:%d  Tab cycles, Esc quits", v.name, v.cursor.Line, v.cursor.Column)
	pos := buf.PointToOffset(v.cursor)
	if res, err := v.engine.ComputeIndentCandidates(pos); err == nil {
		styles := candidateStyles(len(res.Candidates))
		row := v.cursor.Line - v.top
		for i, cand := range res.Candidates {
			if cand.Column < width {
				v.screen.SetContent(cand.Column, row, '^', nil, styles[i])
			}
		}
		status = fmt.Sprintf(" %s  %d:%d  %d candidates  Tab cycles, Esc quits",
			v.name, v.cursor.Line, v.cursor.Column, len(res.Candidates))
	} else {
		status = fmt.Sprintf(" %s  %d:%d  %v", v.name, v.cursor.Line, v.cursor.Column, err)
	}

	statusStyle := tcell.StyleDefault.Reverse(true)
	for col := 0; col < width; col++ {
		r := ' '
		if col < len(status) {
			r = rune(status[col])
		}
		v.screen.SetContent(col, height-1, r, nil, statusStyle)
	}

	v.screen.ShowCursor(v.cursor.Column, v.cursor.Line-v.top)
	v.screen.Show()
}
