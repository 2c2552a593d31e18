// Package layout turns raw, append-only content into display lines.
//
// An Engine stores the raw bytes and a sequence of half-open byte ranges,
// one per display line. Lines break after every newline and, in wrap mode,
// wherever the next rune would overflow the available width. Breaking work
// is done incrementally by Advance with a byte budget so that a frame never
// lays out more than it can afford. Finished lines are never revisited when
// content is appended; only a width change in wrap mode starts over.
//
// Drawing a line costs time proportional to the columns drawn, not to the
// length of the line: unwrapped lines record their width while they are
// scanned, and long ones carry column checkpoints that Slice starts from.
package layout

import (
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// DefaultTabWidth is the tab stop used when none is configured.
const DefaultTabWidth = 4

// markInterval is the number of columns between checkpoints in a long
// unwrapped line.
const markInterval = 1024

// Line is a display line: the byte range [Start, End) of the raw content.
// A line ending in a newline includes it.
type Line struct {
	Start int
	End   int
}

// Len returns the number of raw bytes in the line.
func (l Line) Len() int { return l.End - l.Start }

// mark is a column checkpoint: the rune at byte off starts at column col
// of its line.
type mark struct {
	off int
	col int
}

// Engine lays out raw content into display lines.
type Engine struct {
	raw      []byte
	lines    []Line // finished lines
	widths   []int  // columns of each finished line, outside wrap mode
	marks    []mark // ordered by off, outside wrap mode
	wrap     bool
	width    int
	tabWidth int

	// The open line starts at openStart and has been scanned up to pos.
	openStart int
	pos       int
	col       int  // columns taken by [openStart, pos)
	brk       int  // start of the last word that follows whitespace, or -1
	inSpace   bool // the previous visible rune was whitespace
	nextMark  int  // column at which the open line gets its next mark
}

// New creates an Engine. In wrap mode the engine lays out nothing until a
// positive width is set.
func New(wrap bool, tabWidth int) *Engine {
	if tabWidth <= 0 {
		tabWidth = DefaultTabWidth
	}
	return &Engine{
		wrap:     wrap,
		tabWidth: tabWidth,
		brk:      -1,
		nextMark: markInterval,
	}
}

// Wrap reports whether the engine wraps long lines.
func (e *Engine) Wrap() bool { return e.wrap }

// Width returns the current wrap width in columns.
func (e *Engine) Width() int { return e.width }

// TabWidth returns the tab stop in columns.
func (e *Engine) TabWidth() int { return e.tabWidth }

// Size returns the number of raw bytes stored.
func (e *Engine) Size() int { return len(e.raw) }

// Append adds raw content. Nothing is laid out until Advance or Flush.
func (e *Engine) Append(b []byte) {
	e.raw = append(e.raw, b...)
}

// SetWidth sets the wrap width in columns and reports whether the existing
// layout was discarded. Outside wrap mode the width does not affect layout.
func (e *Engine) SetWidth(w int) bool {
	if w == e.width {
		return false
	}
	e.width = w
	if !e.wrap {
		return false
	}
	e.lines = e.lines[:0]
	e.openStart = 0
	e.resetOpen(0)
	return true
}

func (e *Engine) suspended() bool {
	return e.wrap && e.width <= 0
}

// Pending returns how many raw bytes have not been laid out yet. A
// trailing incomplete UTF-8 sequence counts as laid out until more bytes
// arrive.
func (e *Engine) Pending() int {
	if e.suspended() {
		return len(e.raw)
	}
	if e.caughtUp() {
		return 0
	}
	return len(e.raw) - e.pos
}

func (e *Engine) caughtUp() bool {
	if e.pos >= len(e.raw) {
		return true
	}
	return !utf8.FullRune(e.raw[e.pos:])
}

// Advance lays out at most budget bytes and reports whether the layout has
// caught up with the content.
func (e *Engine) Advance(budget int) bool {
	if e.suspended() {
		return len(e.raw) == 0
	}
	if e.wrap {
		e.scanWrapped(budget)
	} else {
		e.scanLines(budget)
	}
	return e.caughtUp()
}

// Flush lays out all content.
func (e *Engine) Flush() {
	e.Advance(math.MaxInt)
}

// scanLines breaks at newlines only. It measures the open line as it goes
// and leaves a mark every markInterval columns.
func (e *Engine) scanLines(budget int) {
	for budget > 0 && e.pos < len(e.raw) {
		rest := e.raw[e.pos:]
		if !utf8.FullRune(rest) {
			return
		}
		r, size := utf8.DecodeRune(rest)
		budget -= size

		if r == '\n' {
			e.finish(e.pos + size)
			continue
		}
		if e.col >= e.nextMark {
			e.marks = append(e.marks, mark{off: e.pos, col: e.col})
			e.nextMark = e.col + markInterval
		}
		e.col += e.runeWidth(r, e.col)
		e.pos += size
	}
}

// scanWrapped breaks at newlines and before the rune that overflows the
// width. The break goes after the last whitespace run of the line when
// there is one, otherwise right before the overflowing rune. Whitespace
// never causes a break; it hangs off the end of the line instead.
func (e *Engine) scanWrapped(budget int) {
	for budget > 0 && e.pos < len(e.raw) {
		p := e.pos
		rest := e.raw[p:]
		if !utf8.FullRune(rest) {
			return
		}
		r, size := utf8.DecodeRune(rest)
		budget -= size

		if r == '\n' {
			e.finish(p + size)
			continue
		}

		w := e.runeWidth(r, e.col)
		if w == 0 {
			e.pos += size
			continue
		}
		if isBreakSpace(r) {
			e.col += w
			e.inSpace = true
			e.pos += size
			continue
		}
		if e.inSpace {
			e.inSpace = false
			e.brk = p
		}

		if e.col+w > e.width && p > e.openStart {
			if e.brk > e.openStart {
				// Rescan the partial word on the next line.
				e.finish(e.brk)
			} else {
				e.finish(p)
			}
			continue
		}

		e.col += w
		e.pos += size
	}
}

// finish closes the open line at end and opens the next one there.
func (e *Engine) finish(end int) {
	e.lines = append(e.lines, Line{Start: e.openStart, End: end})
	if !e.wrap {
		e.widths = append(e.widths, e.col)
	}
	e.openStart = end
	e.resetOpen(end)
}

func (e *Engine) resetOpen(pos int) {
	e.pos = pos
	e.col = 0
	e.brk = -1
	e.inSpace = false
	e.nextMark = markInterval
}

// Len returns the number of display lines. The open line is included once
// the layout has caught up with the content.
func (e *Engine) Len() int {
	if e.suspended() {
		return 0
	}
	n := len(e.lines)
	if e.openStart < len(e.raw) && e.caughtUp() {
		n++
	}
	return n
}

// Line returns the byte range of display line i.
func (e *Engine) Line(i int) Line {
	if i < len(e.lines) {
		return e.lines[i]
	}
	return Line{Start: e.openStart, End: len(e.raw)}
}

// LineAt returns the index of the display line holding byte offset off.
// ok is false while that part of the content has not been laid out.
func (e *Engine) LineAt(off int) (i int, ok bool) {
	n := e.Len()
	i = sort.Search(n, func(k int) bool { return e.Line(k).End > off })
	return i, i < n
}

// Bytes returns the raw bytes of display line i. The slice aliases the
// engine's storage and must not be modified.
func (e *Engine) Bytes(i int) []byte {
	l := e.Line(i)
	return e.raw[l.Start:l.End]
}

// Text returns display line i as it should be drawn: without its line
// terminator, with tabs expanded and control characters removed.
func (e *Engine) Text(i int) string {
	return e.Slice(i, 0, math.MaxInt)
}

// Slice returns the columns [col, col+width) of Text(i). A tab or wide
// rune cut by either edge leaves spaces for its visible part.
func (e *Engine) Slice(i, col, width int) string {
	if width <= 0 {
		return ""
	}
	l := e.Line(i)
	p, c := l.Start, 0
	if col > 0 {
		p, c = e.seek(l, col)
	}
	end := col + width
	if end < col {
		end = math.MaxInt
	}

	var sb strings.Builder
	for p < l.End && c < end {
		r, size := utf8.DecodeRune(e.raw[p:l.End])
		p += size
		switch {
		case r == '\t':
			n := e.tabWidth - c%e.tabWidth
			if lo, hi := max(c, col), min(c+n, end); hi > lo {
				sb.WriteString(strings.Repeat(" ", hi-lo))
			}
			c += n
		case isControl(r):
		default:
			w := runewidth.RuneWidth(r)
			switch {
			case c >= col && c+w <= end:
				sb.WriteRune(r)
			case c+w > col:
				sb.WriteString(strings.Repeat(" ", min(c+w, end)-max(c, col)))
			}
			c += w
		}
	}
	return sb.String()
}

// seek returns the last checkpoint of line l at or before column col, or
// the start of the line.
func (e *Engine) seek(l Line, col int) (off, c int) {
	j := sort.Search(len(e.marks), func(k int) bool {
		m := e.marks[k]
		return m.off >= l.End || (m.off >= l.Start && m.col > col)
	})
	if j > 0 && e.marks[j-1].off >= l.Start && e.marks[j-1].off < l.End {
		return e.marks[j-1].off, e.marks[j-1].col
	}
	return l.Start, 0
}

// LineWidth returns the number of columns Text(i) occupies. Outside wrap
// mode it is recorded during layout.
func (e *Engine) LineWidth(i int) int {
	if e.wrap {
		n := 0
		for _, r := range e.Text(i) {
			n += runewidth.RuneWidth(r)
		}
		return n
	}
	if i < len(e.widths) {
		return e.widths[i]
	}
	return e.col
}

func (e *Engine) runeWidth(r rune, col int) int {
	switch {
	case r == '\t':
		return e.tabWidth - col%e.tabWidth
	case isControl(r):
		return 0
	default:
		return runewidth.RuneWidth(r)
	}
}

func isBreakSpace(r rune) bool {
	return r == ' ' || r == '\t'
}

func isControl(r rune) bool {
	return r < 0x20 || r == 0x7f || (r >= 0x80 && r < 0xa0)
}
