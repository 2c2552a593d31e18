package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/Iron-Ham/tvview/internal/tui/styles"
	"github.com/Iron-Ham/tvview/internal/util"
	"github.com/Iron-Ham/tvview/internal/viewer"
)

// Surface collects the rows a view draws in one frame and renders them
// with lipgloss. Styling is deferred to Render so the colour scheme can
// change after the frame is drawn.
type Surface struct {
	width, height int
	rows          [][]viewer.Segment
}

// NewSurface returns a surface of the given size.
func NewSurface(width, height int) *Surface {
	s := &Surface{}
	s.Resize(width, height)
	return s
}

// Resize changes the size and clears every row.
func (s *Surface) Resize(width, height int) {
	s.width = max(0, width)
	s.height = max(0, height)
	s.rows = make([][]viewer.Segment, s.height)
}

// Size returns the surface size in cells.
func (s *Surface) Size() (int, int) {
	return s.width, s.height
}

// DrawRow replaces the content of row. Rows outside the surface are ignored.
func (s *Surface) DrawRow(row int, segments ...viewer.Segment) {
	if row < 0 || row >= s.height {
		return
	}
	s.rows[row] = append(s.rows[row][:0], segments...)
}

// Render returns the styled screen, one line per row, each padded or cut
// to exactly the surface width.
func (s *Surface) Render(st styles.Styles) string {
	if s.width == 0 || s.height == 0 {
		return ""
	}
	lines := make([]string, s.height)
	for i, segments := range s.rows {
		lines[i] = s.renderRow(st, segments)
	}
	return strings.Join(lines, "\n")
}

func (s *Surface) renderRow(st styles.Styles, segments []viewer.Segment) string {
	var b strings.Builder
	used := 0
	for _, seg := range segments {
		room := s.width - used
		if room <= 0 {
			break
		}
		text := seg.Text
		if seg.Role == viewer.RoleTitle {
			// the title bar spans the rest of the row
			text = util.PadRight(util.TruncateANSI(text, room), room)
		} else if ansi.StringWidth(text) > room {
			text = ansi.Truncate(text, room, "")
		}
		if text == "" {
			continue
		}
		b.WriteString(st.For(seg.Role).Render(text))
		used += ansi.StringWidth(text)
	}
	if used < s.width {
		b.WriteString(st.Text.Render(strings.Repeat(" ", s.width-used)))
	}
	return b.String()
}

// Plain returns the unstyled text of row, for tests and logging.
func (s *Surface) Plain(row int) string {
	if row < 0 || row >= s.height {
		return ""
	}
	var b strings.Builder
	for _, seg := range s.rows[row] {
		b.WriteString(seg.Text)
	}
	return b.String()
}
