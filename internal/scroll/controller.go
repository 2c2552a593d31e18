// Package scroll tracks the viewport over a sequence of display lines.
//
// The Controller keeps the index of the topmost visible line within
// [0, max(0, total-visible)] after every operation and implements the
// follow behaviour used for streamed content: while following, new lines
// keep the viewport pinned to the bottom; any upward movement stops
// following until the user returns to the bottom.
package scroll

// Controller holds the vertical and horizontal viewport state. It is owned
// by a single view and is not safe for concurrent use.
type Controller struct {
	top     int
	visible int
	total   int

	// follow keeps the viewport pinned to the bottom as lines arrive
	follow bool

	// hasNew tracks whether lines arrived while not following
	hasNew bool

	col    int
	width  int
	widest int
}

// New creates a Controller. autoFollow enables following from the start,
// which is what streamed sources want.
func New(autoFollow bool) *Controller {
	return &Controller{follow: autoFollow}
}

// Top returns the index of the topmost visible line.
func (c *Controller) Top() int { return c.top }

// Visible returns the number of lines the viewport can show.
func (c *Controller) Visible() int { return c.visible }

// Total returns the number of lines known to the controller.
func (c *Controller) Total() int { return c.total }

// Following reports whether new lines keep the viewport at the bottom.
func (c *Controller) Following() bool { return c.follow }

// HasNewLines reports whether lines arrived below the viewport since the
// user last was at the bottom.
func (c *Controller) HasNewLines() bool { return c.hasNew }

// MaxTop returns the largest valid top line.
func (c *Controller) MaxTop() int {
	return max(0, c.total-c.visible)
}

// AtBottom reports whether the last line is inside the viewport.
func (c *Controller) AtBottom() bool {
	return c.top >= c.MaxTop()
}

// Range returns the half-open range of line indices inside the viewport.
func (c *Controller) Range() (start, end int) {
	return c.top, min(c.top+c.visible, c.total)
}

// ScrollBy moves the viewport by n lines. Positive n scrolls down.
// Scrolling up stops following; scrolling down onto the bottom resumes it.
func (c *Controller) ScrollBy(n int) {
	c.top = c.clampTop(c.top + n)

	if n < 0 {
		c.follow = false
	}
	if n > 0 && c.AtBottom() {
		c.follow = true
		c.hasNew = false
	}
}

// SetTop makes line top the first visible line, as far as the bounds
// allow. Following is not affected.
func (c *Controller) SetTop(top int) {
	c.top = c.clampTop(top)
}

// ScrollToTop moves to the first line and stops following.
func (c *Controller) ScrollToTop() {
	c.top = 0
	c.follow = false
}

// ScrollToBottom moves to the last page and resumes following.
func (c *Controller) ScrollToBottom() {
	c.top = c.MaxTop()
	c.follow = true
	c.hasNew = false
}

// PageUp scrolls up by one viewport.
func (c *Controller) PageUp() {
	c.ScrollBy(-max(1, c.visible))
}

// PageDown scrolls down by one viewport.
func (c *Controller) PageDown() {
	c.ScrollBy(max(1, c.visible))
}

// OnResize updates the number of visible lines.
func (c *Controller) OnResize(visible int) {
	c.visible = max(0, visible)
	c.update()
}

// SetLineCount updates the number of lines. While following, the viewport
// stays on the last page.
func (c *Controller) SetLineCount(n int) {
	n = max(0, n)
	if n > c.total && !c.follow {
		c.hasNew = true
	}
	c.total = n
	c.update()
}

// update clamps the viewport and applies following.
func (c *Controller) update() {
	c.top = c.clampTop(c.top)
	if c.follow {
		c.top = c.MaxTop()
		c.hasNew = false
	}
}

func (c *Controller) clampTop(top int) int {
	return max(0, min(top, c.MaxTop()))
}

// Column returns the first visible column for unwrapped lines.
func (c *Controller) Column() int { return c.col }

// SetViewWidth sets the number of columns available for text.
func (c *Controller) SetViewWidth(w int) {
	c.width = max(0, w)
	c.col = c.clampCol(c.col)
}

// ObserveLineWidth records the width of a line that was drawn. Horizontal
// scrolling is limited by the widest line seen so far.
func (c *Controller) ObserveLineWidth(w int) {
	c.widest = max(c.widest, w)
}

// ScrollColumns moves the horizontal offset by n columns.
func (c *Controller) ScrollColumns(n int) {
	c.col = c.clampCol(c.col + n)
}

func (c *Controller) clampCol(col int) int {
	return max(0, min(col, c.widest-c.width))
}
