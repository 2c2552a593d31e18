package viewer

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/Iron-Ham/tvview/internal/source"
)

type fakeSurface struct {
	width, height int
	rows          map[int][]Segment
}

func newSurface(w, h int) *fakeSurface {
	return &fakeSurface{width: w, height: h, rows: make(map[int][]Segment)}
}

func (s *fakeSurface) Size() (int, int) { return s.width, s.height }

func (s *fakeSurface) DrawRow(row int, segments ...Segment) {
	s.rows[row] = segments
}

func (s *fakeSurface) text(row int) string {
	var sb strings.Builder
	for _, seg := range s.rows[row] {
		sb.WriteString(seg.Text)
	}
	return sb.String()
}

// textRows returns the trimmed text area rows.
func (s *fakeSurface) textRows() []string {
	var out []string
	for row := 1; row < s.height-1; row++ {
		out = append(out, s.text(row))
	}
	return out
}

type fakeSource struct {
	chunks   [][]byte
	exited   bool
	code     int
	failed   bool
	closed   int
	lastMax  int
	maxChunk int
}

func (f *fakeSource) Poll(limit int) ([]byte, bool) {
	f.lastMax = limit
	var chunk []byte
	if len(f.chunks) > 0 {
		chunk = f.chunks[0]
		if len(chunk) > limit {
			f.chunks[0] = chunk[limit:]
			chunk = chunk[:limit]
		} else {
			f.chunks = f.chunks[1:]
		}
	}
	f.maxChunk = max(f.maxChunk, len(chunk))
	return chunk, len(f.chunks) > 0 || !f.exited
}

func (f *fakeSource) State() source.State {
	switch {
	case f.failed:
		return source.Failed
	case f.exited && len(f.chunks) == 0:
		return source.Finished
	default:
		return source.Running
	}
}

func (f *fakeSource) ExitStatus() (int, bool) {
	if !f.exited {
		return 0, false
	}
	return f.code, true
}

func (f *fakeSource) Close() error {
	f.closed++
	return nil
}

func TestView_StaticScenario(t *testing.T) {
	v := New(Config{Title: "Info"}, source.NewStatic("line1\nline2\nline3"), nil)
	defer v.Close()
	s := newSurface(30, 4) // two text rows

	if _, done := v.Frame(s, nil); done {
		t.Fatal("Frame() resolved without input")
	}
	if got := s.textRows(); got[0] != "line1" || got[1] != "line2" {
		t.Errorf("initial rows = %q, want line1, line2", got)
	}
	if got := s.text(0); !strings.Contains(got, "Info") {
		t.Errorf("title row = %q", got)
	}

	v.Frame(s, []Input{Key(ActionPageDown)})
	if got := s.textRows(); got[0] != "line2" || got[1] != "line3" {
		t.Errorf("rows after PageDown = %q, want line2, line3", got)
	}

	v.Frame(s, []Input{Key(ActionTop), Key(ActionBottom)})
	if got := s.textRows(); got[1] != "line3" {
		t.Errorf("bottom row after ScrollToBottom = %q, want line3", got[1])
	}
}

func TestView_WrappedHardBreak(t *testing.T) {
	v := New(Config{Title: "t", Wrap: true}, source.NewStatic("abcdefgh"), nil)
	defer v.Close()
	s := newSurface(5, 5)

	v.Frame(s, nil)
	got := s.textRows()
	if got[0] != "abcde" || got[1] != "fgh" || got[2] != "" {
		t.Errorf("rows = %q, want abcde, fgh, blank", got)
	}
}

func TestView_ProcessExitsNonZeroThenCancel(t *testing.T) {
	src := &fakeSource{exited: true, code: 3}
	v := New(Config{Title: "script", ProcessBacked: true}, src, nil)
	s := newSurface(40, 6)

	for i := 0; i < 3; i++ {
		if _, done := v.Frame(s, nil); done {
			t.Fatal("non-zero exit resolved the decision by itself")
		}
	}
	if v.Decision() != Pending {
		t.Fatalf("Decision() = %v, want pending", v.Decision())
	}
	if !v.ErrorDisplay() {
		t.Error("ErrorDisplay() should be true after non-zero exit")
	}
	if got := s.text(s.height - 1); !strings.Contains(got, "exit 3") {
		t.Errorf("button row = %q, want exit status", got)
	}

	code, done := v.Frame(s, []Input{Key(ActionCancel)})
	if !done || code != ExitCancelled {
		t.Errorf("Frame() = (%d, %v), want (%d, true)", code, done, ExitCancelled)
	}
	if v.Decision() != Cancelled {
		t.Errorf("Decision() = %v, want cancelled", v.Decision())
	}
	if status, ok := v.ExitStatus(); !ok || status != 3 {
		t.Errorf("ExitStatus() = (%d, %v), want (3, true)", status, ok)
	}

	v.Close()
	v.Close()
	if src.closed != 1 {
		t.Errorf("source closed %d times, want 1", src.closed)
	}
}

func TestView_DecisionIsMonotonic(t *testing.T) {
	tests := []struct {
		name    string
		confirm bool
		first   []Input
		want    int
	}{
		{"activate yes", true, []Input{Key(ActionActivate)}, ExitConfirmed},
		{"confirm key", true, []Input{Key(ActionConfirm)}, ExitConfirmed},
		{"activate no", true, []Input{Key(ActionFocusNext), Key(ActionActivate)}, ExitCancelled},
		{"activate close", false, []Input{Key(ActionActivate)}, ExitCancelled},
		{"cancel wins over later confirm", true, []Input{Key(ActionCancel), Key(ActionConfirm)}, ExitCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New(Config{Title: "q", ShowConfirm: tt.confirm}, source.NewStatic("?"), nil)
			defer v.Close()
			s := newSurface(30, 5)

			code, done := v.Frame(s, tt.first)
			if !done || code != tt.want {
				t.Fatalf("Frame() = (%d, %v), want (%d, true)", code, done, tt.want)
			}

			for _, in := range []Input{Key(ActionConfirm), Key(ActionCancel), Key(ActionActivate), Click(5, 4)} {
				code, done := v.Frame(s, []Input{in})
				if !done || code != tt.want {
					t.Fatalf("after %v Frame() = (%d, %v), want (%d, true)", in.Action, code, done, tt.want)
				}
			}
		})
	}
}

func TestView_ConfirmRequiresYesButton(t *testing.T) {
	v := New(Config{Title: "info"}, source.NewStatic("text"), nil)
	defer v.Close()
	s := newSurface(30, 5)

	if _, done := v.Frame(s, []Input{Key(ActionConfirm)}); done {
		t.Fatal("confirm resolved without a Yes button")
	}
	if v.Decision() != Pending {
		t.Errorf("Decision() = %v, want pending", v.Decision())
	}
}

func TestView_Buttons(t *testing.T) {
	v := New(Config{Title: "q", ShowConfirm: true}, source.NewStatic("body"), nil)
	defer v.Close()
	s := newSurface(30, 5)

	v.Frame(s, nil)
	segs := s.rows[4]
	var labels []string
	for _, seg := range segs {
		if seg.Role == RoleButton || seg.Role == RoleFocusedButton {
			labels = append(labels, fmt.Sprintf("%s:%s", strings.TrimSpace(seg.Text), seg.Role))
		}
	}
	want := []string{"Yes:focused_button", "No:button"}
	if strings.Join(labels, ",") != strings.Join(want, ",") {
		t.Errorf("buttons = %v, want %v", labels, want)
	}

	// Buttons are 10 wide, centred: Yes at [4,14), No at [15,25)
	if got := v.buttonAt(14, 4); got != -1 {
		t.Errorf("buttonAt(gap) = %d, want -1", got)
	}
	if got := v.buttonAt(20, 3); got != -1 {
		t.Errorf("buttonAt(text row) = %d, want -1", got)
	}

	code, done := v.Frame(s, []Input{Click(20, 4)})
	if !done || code != ExitCancelled {
		t.Errorf("click on No = (%d, %v), want (%d, true)", code, done, ExitCancelled)
	}

	yes := New(Config{Title: "q", ShowConfirm: true}, source.NewStatic("body"), nil)
	defer yes.Close()
	yes.Frame(s, nil)
	code, done = yes.Frame(s, []Input{Click(4, 4)})
	if !done || code != ExitConfirmed {
		t.Errorf("click on Yes = (%d, %v), want (%d, true)", code, done, ExitConfirmed)
	}
}

func TestView_FocusCycles(t *testing.T) {
	v := New(Config{Title: "q", ShowConfirm: true}, source.NewStatic(""), nil)
	defer v.Close()
	s := newSurface(30, 5)

	v.Frame(s, []Input{Key(ActionFocusPrev)})
	if v.focus != 1 {
		t.Errorf("focus after FocusPrev = %d, want 1", v.focus)
	}
	v.Frame(s, []Input{Key(ActionFocusNext), Key(ActionFocusNext)})
	if v.focus != 1 {
		t.Errorf("focus after two FocusNext = %d, want 1", v.focus)
	}
}

func TestView_FollowsStreamedOutput(t *testing.T) {
	src := &fakeSource{}
	v := New(Config{Title: "s", ProcessBacked: true}, src, nil)
	defer v.Close()
	s := newSurface(80, 5) // three text rows

	for i := 1; i <= 10; i++ {
		src.chunks = append(src.chunks, []byte(fmt.Sprintf("out %d\n", i)))
		v.Frame(s, nil)
	}
	if got := s.textRows(); got[2] != "out 10" {
		t.Errorf("last row = %q, want out 10", got[2])
	}

	v.Frame(s, []Input{Key(ActionScrollUp)})
	before := s.textRows()
	src.chunks = append(src.chunks, []byte("out 11\n"), []byte("out 12\n"))
	v.Frame(s, nil)
	v.Frame(s, nil)
	if got := s.textRows(); strings.Join(got, "|") != strings.Join(before, "|") {
		t.Errorf("viewport moved after scrolling up: %q -> %q", before, got)
	}
	if got := s.text(4); !strings.Contains(got, "+new") {
		t.Errorf("button row = %q, want new-lines marker", got)
	}

	v.Frame(s, []Input{Key(ActionBottom)})
	if got := s.textRows(); got[2] != "out 12" {
		t.Errorf("last row after Bottom = %q, want out 12", got[2])
	}
}

func TestView_PerFrameBudget(t *testing.T) {
	src := &fakeSource{chunks: [][]byte{[]byte(strings.Repeat("x\n", 5000))}, exited: true}
	cfg := Config{Title: "big", MaxBytesPerFrame: 1000}
	v := New(cfg, src, nil)
	defer v.Close()
	s := newSurface(20, 10)

	v.Frame(s, nil)
	if src.lastMax != 1000 {
		t.Errorf("Poll max = %d, want 1000", src.lastMax)
	}
	if got := v.engine.Size(); got != 1000 {
		t.Errorf("engine size after one frame = %d, want 1000", got)
	}

	for i := 0; i < 20; i++ {
		v.Frame(s, nil)
	}
	if got := v.engine.Size(); got != 10000 {
		t.Errorf("engine size = %d, want 10000", got)
	}
	if src.maxChunk > 1000 {
		t.Errorf("largest chunk = %d, want <= 1000", src.maxChunk)
	}
	if v.more {
		t.Error("source should be drained")
	}
}

func TestView_DegenerateSurface(t *testing.T) {
	v := New(Config{Title: "t", Wrap: true}, source.NewStatic("some text here"), nil)
	defer v.Close()

	for _, size := range [][2]int{{0, 0}, {0, 10}, {10, 0}, {1, 1}, {1, 2}} {
		s := newSurface(size[0], size[1])
		if _, done := v.Frame(s, []Input{Key(ActionPageDown), Wheel(3), Click(0, 0)}); done {
			t.Fatalf("size %v: Frame() resolved", size)
		}
	}

	s := newSurface(20, 4)
	v.Frame(s, nil)
	if got := s.textRows()[0]; got != "some text here" {
		t.Errorf("row after surface became usable = %q", got)
	}
}

func TestView_HorizontalScroll(t *testing.T) {
	long := "0123456789abcdefghijklmnopqrstuvwxyz"
	v := New(Config{Title: "h"}, source.NewStatic(long), nil)
	defer v.Close()
	s := newSurface(10, 4)

	v.Frame(s, nil)
	if got := s.textRows()[0]; got != "0123456789" {
		t.Errorf("row = %q, want first 10 columns", got)
	}

	v.Frame(s, []Input{Key(ActionScrollRight)})
	if got := s.textRows()[0]; got != "89abcdefgh" {
		t.Errorf("row after ScrollRight = %q", got)
	}

	v.Frame(s, []Input{Key(ActionScrollLeft), Key(ActionScrollLeft)})
	if got := s.textRows()[0]; got != "0123456789" {
		t.Errorf("row after ScrollLeft = %q", got)
	}
}

// The cost of a frame depends on the visible columns, not on how long the
// visible line is.
func TestView_LongLineFrameCost(t *testing.T) {
	frameTime := func(n int) time.Duration {
		cfg := Config{Title: "long", MaxBytesPerFrame: 64 << 20, LayoutBudgetBytes: 64 << 20}
		v := New(cfg, source.NewStatic(strings.Repeat("x", n)), nil)
		defer v.Close()
		s := newSurface(80, 24)

		v.Frame(s, nil)
		if v.more || v.engine.Pending() != 0 {
			t.Fatalf("%d byte line not laid out in one frame", n)
		}
		if got := s.textRows()[0]; got != strings.Repeat("x", min(n, 80)) {
			t.Fatalf("row = %q", got)
		}

		const frames = 20
		start := time.Now()
		for i := 0; i < frames; i++ {
			v.Frame(s, []Input{Key(ActionScrollRight)})
		}
		return time.Since(start) / frames
	}

	small := frameTime(1 << 10)
	large := frameTime(16 << 20)
	if large > 20*small+2*time.Millisecond {
		t.Errorf("frame with a 16MB line took %v, with a 1KB line %v", large, small)
	}
}

func TestView_ResizeKeepsPositionInWrapMode(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 200; i++ {
		fmt.Fprintf(&sb, "line %03d %s\n", i, strings.Repeat("w", 20))
	}
	content := sb.String()

	settle := func(v *View, s *fakeSurface, input []Input) {
		t.Helper()
		v.Frame(s, input)
		for i := 0; v.engine.Pending() > 0; i++ {
			if i > 100 {
				t.Fatal("layout never caught up")
			}
			v.Frame(s, nil)
		}
		v.Frame(s, nil)
	}

	t.Run("top line restored after relayout", func(t *testing.T) {
		v := New(Config{Title: "wrap", Wrap: true, LayoutBudgetBytes: 1000}, source.NewStatic(content), nil)
		defer v.Close()
		wide := newSurface(40, 10)
		settle(v, wide, nil)
		settle(v, wide, []Input{{Action: ActionScrollDown, Lines: 100}})
		if got := strings.TrimSpace(wide.textRows()[0]); !strings.HasPrefix(got, "line 100") {
			t.Fatalf("top row = %q, want line 100", got)
		}

		narrow := newSurface(20, 10)
		v.Frame(narrow, nil)
		settle(v, narrow, nil)
		if got := strings.TrimSpace(narrow.textRows()[0]); got != "line 100" {
			t.Errorf("top row after resize = %q, want line 100", got)
		}
		if got := strings.TrimSpace(narrow.textRows()[1]); got != strings.Repeat("w", 20) {
			t.Errorf("second row after resize = %q", got)
		}
	})

	t.Run("scrolling during relayout wins", func(t *testing.T) {
		v := New(Config{Title: "wrap", Wrap: true, LayoutBudgetBytes: 1000}, source.NewStatic(content), nil)
		defer v.Close()
		wide := newSurface(40, 10)
		settle(v, wide, nil)
		settle(v, wide, []Input{{Action: ActionScrollDown, Lines: 100}})

		narrow := newSurface(20, 10)
		settle(v, narrow, []Input{Key(ActionTop)})
		if got := strings.TrimSpace(narrow.textRows()[0]); got != "line 000" {
			t.Errorf("top row = %q, want line 000", got)
		}
	})
}

func TestView_StatusSegments(t *testing.T) {
	v := New(Config{Title: "s"}, source.NewStatic(strings.Repeat("x\n", 20)), nil)
	defer v.Close()
	s := newSurface(40, 5)

	v.Frame(s, nil)
	var dim []string
	for _, seg := range s.rows[4] {
		if seg.Role == RoleDim {
			dim = append(dim, seg.Text)
		}
	}
	if len(dim) != 1 || dim[0] != "3/20" {
		t.Errorf("dimmed segments = %q, want the position counter", dim)
	}
	if got := v.Status(); got != "3/20" {
		t.Errorf("Status() = %q, want %q", got, "3/20")
	}
}

func TestView_Wheel(t *testing.T) {
	text := strings.Repeat("line\n", 50)
	v := New(Config{Title: "w", WheelLines: 3}, source.NewStatic(text), nil)
	defer v.Close()
	s := newSurface(20, 12)

	v.Frame(s, []Input{Wheel(2)})
	if top := v.scroll.Top(); top != 6 {
		t.Errorf("Top() after two notches = %d, want 6", top)
	}
	v.Frame(s, []Input{Wheel(-1)})
	if top := v.scroll.Top(); top != 3 {
		t.Errorf("Top() after one notch up = %d, want 3", top)
	}
}

func TestView_ErrorDisplay(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		src  *fakeSource
		want bool
	}{
		{"plain", Config{}, &fakeSource{exited: true}, false},
		{"requested", Config{ErrorDisplay: true}, &fakeSource{exited: true}, true},
		{"source failed", Config{}, &fakeSource{failed: true}, true},
		{"non-zero exit", Config{ProcessBacked: true}, &fakeSource{exited: true, code: 1}, true},
		{"still running", Config{ProcessBacked: true}, &fakeSource{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New(tt.cfg, tt.src, nil)
			defer v.Close()
			if got := v.ErrorDisplay(); got != tt.want {
				t.Errorf("ErrorDisplay() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDecision(t *testing.T) {
	s := decisionState{allowConfirm: false}
	if s.confirm() {
		t.Error("confirm() succeeded without permission")
	}
	if !s.cancel() {
		t.Error("cancel() failed from pending")
	}
	if s.cancel() || s.current != Cancelled {
		t.Error("second cancel() changed state")
	}

	if code, done := Pending.ExitCode(); done || code != 0 {
		t.Errorf("Pending.ExitCode() = (%d, %v)", code, done)
	}
	if code, _ := Confirmed.ExitCode(); code != 21 {
		t.Errorf("Confirmed.ExitCode() = %d, want 21", code)
	}
	if Decision(9).String() != "unknown" {
		t.Error("unexpected name for invalid decision")
	}
}
