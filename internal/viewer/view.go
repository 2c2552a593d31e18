// Package viewer implements the full-screen text view: it pulls content from
// a source, lays it out, keeps the viewport, draws one frame at a time onto
// a Surface and resolves the user's confirm or cancel decision.
//
// A View is driven by its host, which calls Frame once per rendered frame
// with the input collected since the previous frame. Frame never blocks and
// its cost is bounded by the configured per-frame budgets and the number of
// visible rows.
package viewer

import (
	"fmt"
	"strings"

	"github.com/Iron-Ham/tvview/internal/layout"
	"github.com/Iron-Ham/tvview/internal/logging"
	"github.com/Iron-Ham/tvview/internal/scroll"
	"github.com/Iron-Ham/tvview/internal/source"
)

// Config is the resolved, immutable configuration of a View.
type Config struct {
	Title string
	// ShowConfirm shows Yes/No instead of a single Close button.
	ShowConfirm bool
	// Wrap breaks long lines at the surface width.
	Wrap bool
	// ProcessBacked marks content streamed from a script.
	ProcessBacked bool
	// Follow marks a file that keeps growing.
	Follow bool
	// ErrorDisplay requests the error colour scheme from the start.
	ErrorDisplay bool

	TabWidth          int
	MaxBytesPerFrame  int
	LayoutBudgetBytes int
	WheelLines        int
}

// DefaultConfig returns a Config with the default budgets.
func DefaultConfig() Config {
	return Config{
		Title:             "Info",
		TabWidth:          layout.DefaultTabWidth,
		MaxBytesPerFrame:  64 * 1024,
		LayoutBudgetBytes: 1024 * 1024,
		WheelLines:        3,
	}
}

func (c Config) normalized() Config {
	d := DefaultConfig()
	if c.TabWidth <= 0 {
		c.TabWidth = d.TabWidth
	}
	if c.MaxBytesPerFrame <= 0 {
		c.MaxBytesPerFrame = d.MaxBytesPerFrame
	}
	if c.LayoutBudgetBytes <= 0 {
		c.LayoutBudgetBytes = d.LayoutBudgetBytes
	}
	if c.WheelLines <= 0 {
		c.WheelLines = d.WheelLines
	}
	return c
}

type button struct {
	label string
	// confirm is true for the Yes button
	confirm bool
	// x0 and x1 are the columns of the last drawn frame
	x0, x1 int
}

// View is the composition of source, layout engine, scroll controller and
// decision. It is used from a single goroutine.
type View struct {
	cfg    Config
	src    source.Source
	engine *layout.Engine
	scroll *scroll.Controller
	logger *logging.Logger

	decision decisionState
	buttons  []button
	focus    int

	more      bool
	buttonRow int
	frames    uint64
	closed    bool

	// anchor is the byte offset of the top line before a relayout, or -1
	anchor int
}

// New creates a View that owns src. Close must be called to release it.
func New(cfg Config, src source.Source, logger *logging.Logger) *View {
	cfg = cfg.normalized()
	if logger == nil {
		logger = logging.NopLogger()
	}

	v := &View{
		cfg:       cfg,
		src:       src,
		engine:    layout.New(cfg.Wrap, cfg.TabWidth),
		scroll:    scroll.New(cfg.ProcessBacked || cfg.Follow),
		logger:    logger.WithComponent("viewer"),
		decision:  decisionState{allowConfirm: cfg.ShowConfirm},
		more:      true,
		buttonRow: -1,
		anchor:    -1,
	}
	if cfg.ShowConfirm {
		v.buttons = []button{{label: "Yes", confirm: true}, {label: "No"}}
	} else {
		v.buttons = []button{{label: "Close"}}
	}

	v.logger.Info("view created",
		"title", cfg.Title,
		"wrap", cfg.Wrap,
		"confirm", cfg.ShowConfirm,
		"process", cfg.ProcessBacked,
	)
	return v
}

// Frame processes one frame: it takes new content, updates the layout and
// the viewport, applies input, draws onto s and returns the exit code once
// the user has decided.
func (v *View) Frame(s Surface, input []Input) (code int, done bool) {
	if code, done := v.decision.current.ExitCode(); done {
		return code, true
	}
	v.frames++

	v.pollSource()

	width, height := s.Size()
	top := v.topOffset()
	if v.engine.SetWidth(width) {
		v.logger.Debug("relayout for new width", "width", width, "bytes", v.engine.Size())
		if top >= 0 && !v.scroll.Following() {
			v.anchor = top
		}
	}
	v.engine.Advance(v.cfg.LayoutBudgetBytes)

	v.scroll.OnResize(max(0, height-2))
	v.scroll.SetLineCount(v.engine.Len())
	v.scroll.SetViewWidth(width)
	v.restoreTop()

	for _, in := range input {
		if in.Action.Moves() {
			v.anchor = -1
		}
		v.apply(in)
		if v.decision.current != Pending {
			break
		}
	}

	v.draw(s, width, height)

	return v.decision.current.ExitCode()
}

// topOffset returns the byte offset of the topmost visible line, or -1
// when nothing is laid out.
func (v *View) topOffset() int {
	if v.scroll.Top() >= v.engine.Len() {
		return -1
	}
	return v.engine.Line(v.scroll.Top()).Start
}

// restoreTop puts the line holding the anchor back at the top once the
// relayout has laid out a full page below it.
func (v *View) restoreTop() {
	if v.anchor < 0 {
		return
	}
	i, ok := v.engine.LineAt(v.anchor)
	if !ok || (i+v.scroll.Visible() > v.engine.Len() && v.engine.Pending() > 0) {
		return
	}
	v.scroll.SetTop(i)
	v.anchor = -1
}

// pollSource moves at most one frame budget of content into the engine.
func (v *View) pollSource() {
	if !v.more {
		return
	}
	chunk, more := v.src.Poll(v.cfg.MaxBytesPerFrame)
	if len(chunk) > 0 {
		v.engine.Append(chunk)
	}
	if !more {
		v.more = false
		code, ok := v.src.ExitStatus()
		v.logger.Info("source finished",
			"state", v.src.State().String(),
			"bytes", v.engine.Size(),
			"exit_code", code,
			"has_exit_code", ok,
		)
	}
}

func (v *View) apply(in Input) {
	switch in.Action {
	case ActionScrollUp:
		v.scroll.ScrollBy(-max(1, in.Lines))
	case ActionScrollDown:
		v.scroll.ScrollBy(max(1, in.Lines))
	case ActionPageUp:
		v.scroll.PageUp()
	case ActionPageDown:
		v.scroll.PageDown()
	case ActionTop:
		v.scroll.ScrollToTop()
	case ActionBottom:
		v.scroll.ScrollToBottom()
	case ActionWheel:
		v.scroll.ScrollBy(in.Lines * v.cfg.WheelLines)
	case ActionScrollLeft:
		if !v.cfg.Wrap {
			v.scroll.ScrollColumns(-HorizontalStep)
		}
	case ActionScrollRight:
		if !v.cfg.Wrap {
			v.scroll.ScrollColumns(HorizontalStep)
		}
	case ActionFocusNext:
		v.focus = (v.focus + 1) % len(v.buttons)
	case ActionFocusPrev:
		v.focus = (v.focus + len(v.buttons) - 1) % len(v.buttons)
	case ActionActivate:
		v.press(v.focus)
	case ActionConfirm:
		if v.decision.confirm() {
			v.logDecision(in.Action)
		}
	case ActionCancel:
		if v.decision.cancel() {
			v.logDecision(in.Action)
		}
	case ActionClick:
		if i := v.buttonAt(in.X, in.Y); i >= 0 {
			v.focus = i
			v.press(i)
		}
	}
}

func (v *View) press(i int) {
	b := v.buttons[i]
	var resolved bool
	if b.confirm {
		resolved = v.decision.confirm()
	} else {
		resolved = v.decision.cancel()
	}
	if resolved {
		v.logger.Debug("button pressed", "button", b.label)
		v.logDecision(ActionActivate)
	}
}

func (v *View) logDecision(via Action) {
	code, _ := v.decision.current.ExitCode()
	status, ok := v.src.ExitStatus()
	v.logger.Info("decision made",
		"decision", v.decision.current.String(),
		"via", via.String(),
		"exit_code", code,
		"frames", v.frames,
		"status", v.Status(),
		"process_exit_code", status,
		"process_exited", ok,
	)
}

// buttonAt returns the index of the button drawn at x, y or -1.
func (v *View) buttonAt(x, y int) int {
	if y != v.buttonRow || v.buttonRow < 0 {
		return -1
	}
	for i, b := range v.buttons {
		if x >= b.x0 && x < b.x1 {
			return i
		}
	}
	return -1
}

// draw renders the title row, the visible lines and the button row.
func (v *View) draw(s Surface, width, height int) {
	v.buttonRow = -1
	if width <= 0 || height <= 0 {
		return
	}

	s.DrawRow(0, Segment{Text: " " + v.cfg.Title, Role: RoleTitle})
	if height == 1 {
		return
	}

	start, end := v.scroll.Range()
	col := v.scroll.Column()
	row := 1
	for i := start; i < end; i++ {
		if !v.cfg.Wrap {
			v.scroll.ObserveLineWidth(v.engine.LineWidth(i))
		}
		s.DrawRow(row, Segment{Text: v.engine.Slice(i, col, width), Role: RoleText})
		row++
	}
	for ; row < height-1; row++ {
		s.DrawRow(row)
	}

	v.drawButtons(s, width, height-1)
}

// drawButtons centres the buttons as a group, each a third of the width
// wide, and right-aligns the status in the space left over.
func (v *View) drawButtons(s Surface, width, row int) {
	v.buttonRow = row

	n := len(v.buttons)
	bw := width / 3
	for _, b := range v.buttons {
		bw = max(bw, len(b.label)+2)
	}
	group := n*bw + (n - 1)
	x := max(0, (width-group)/2)

	var segments []Segment
	if x > 0 {
		segments = append(segments, Segment{Text: strings.Repeat(" ", x), Role: RoleText})
	}
	for i := range v.buttons {
		b := &v.buttons[i]
		if i > 0 {
			segments = append(segments, Segment{Text: " ", Role: RoleText})
			x++
		}
		role := RoleButton
		if i == v.focus {
			role = RoleFocusedButton
		}
		segments = append(segments, Segment{Text: center(b.label, bw), Role: role})
		b.x0, b.x1 = x, x+bw
		x += bw
	}

	if status := v.statusSegments(); len(status) > 0 {
		n := 0
		for _, seg := range status {
			n += len(seg.Text)
		}
		room := width - x
		if n+2 <= room {
			segments = append(segments, Segment{Text: strings.Repeat(" ", room-n-1), Role: RoleText})
			segments = append(segments, status...)
		}
	}

	s.DrawRow(row, segments...)
}

func center(label string, width int) string {
	if len(label) >= width {
		return label
	}
	left := (width - len(label)) / 2
	return strings.Repeat(" ", left) + label + strings.Repeat(" ", width-len(label)-left)
}

// Status describes the position in the content and, for scripts, whether
// the script is still running.
func (v *View) Status() string {
	var sb strings.Builder
	for _, seg := range v.statusSegments() {
		sb.WriteString(seg.Text)
	}
	return sb.String()
}

// statusSegments returns the status parts separated by two spaces. The
// position counter is dimmed.
func (v *View) statusSegments() []Segment {
	var parts []Segment

	if v.cfg.ProcessBacked {
		switch {
		case v.src.State() == source.Failed:
			parts = append(parts, Segment{Text: "failed", Role: RoleStatus})
		case v.more:
			parts = append(parts, Segment{Text: "running", Role: RoleStatus})
		default:
			if code, ok := v.src.ExitStatus(); ok {
				parts = append(parts, Segment{Text: fmt.Sprintf("exit %d", code), Role: RoleStatus})
			}
		}
	} else if v.cfg.Follow && v.more {
		parts = append(parts, Segment{Text: "following", Role: RoleStatus})
	}

	if v.scroll.HasNewLines() {
		parts = append(parts, Segment{Text: "+new", Role: RoleStatus})
	}

	total := v.scroll.Total()
	if total > v.scroll.Visible() {
		_, end := v.scroll.Range()
		parts = append(parts, Segment{Text: fmt.Sprintf("%d/%d", end, total), Role: RoleDim})
	}

	var segments []Segment
	for i, p := range parts {
		if i > 0 {
			segments = append(segments, Segment{Text: "  ", Role: RoleStatus})
		}
		segments = append(segments, p)
	}
	return segments
}

// Title returns the window title.
func (v *View) Title() string { return v.cfg.Title }

// ShowsConfirm reports whether the view offers Yes and No.
func (v *View) ShowsConfirm() bool { return v.cfg.ShowConfirm }

// Decision returns the current decision.
func (v *View) Decision() Decision { return v.decision.current }

// ExitStatus returns the exit status of the script, if it has exited.
func (v *View) ExitStatus() (int, bool) { return v.src.ExitStatus() }

// ErrorDisplay reports whether the error colour scheme should be used: it
// was requested, the source failed, or the script exited with an error.
func (v *View) ErrorDisplay() bool {
	if v.cfg.ErrorDisplay || v.src.State() == source.Failed {
		return true
	}
	code, ok := v.src.ExitStatus()
	return ok && code != 0
}

// Close releases the source and terminates a script that is still running.
func (v *View) Close() error {
	if v.closed {
		return nil
	}
	v.closed = true
	err := v.src.Close()
	if err != nil {
		v.logger.Warn("failed to close source", "error", err)
	}
	v.logger.Debug("view closed", "frames", v.frames, "decision", v.decision.current.String())
	return err
}
