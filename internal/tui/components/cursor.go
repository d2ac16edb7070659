package components

// Cursor tracks a selection and scroll offset over a list of n rows
type Cursor struct {
	index      int
	offset     int
	n          int
	maxVisible int
}

// SetLen updates the row count, clamping the selection
func (c *Cursor) SetLen(n int) {
	c.n = n
	c.clamp()
}

// SetHeight sets how many rows fit on screen
func (c *Cursor) SetHeight(h int) {
	if h < 1 {
		h = 1
	}
	c.maxVisible = h
	c.ensureVisible()
}

// Index returns the selected row, or -1 for an empty list
func (c Cursor) Index() int {
	if c.n == 0 {
		return -1
	}
	return c.index
}

// Move shifts the selection by delta rows
func (c *Cursor) Move(delta int) {
	c.index += delta
	c.clamp()
}

// Top selects the first row
func (c *Cursor) Top() {
	c.index = 0
	c.clamp()
}

// Bottom selects the last row
func (c *Cursor) Bottom() {
	c.index = c.n - 1
	c.clamp()
}

// Page returns the step for a page movement
func (c Cursor) Page() int {
	if c.maxVisible < 1 {
		return 1
	}
	return c.maxVisible
}

// Window returns the visible half-open row range
func (c Cursor) Window() (start, end int) {
	if c.maxVisible <= 0 {
		return 0, c.n
	}
	end = c.offset + c.maxVisible
	if end > c.n {
		end = c.n
	}
	return c.offset, end
}

func (c *Cursor) clamp() {
	if c.index >= c.n {
		c.index = c.n - 1
	}
	if c.index < 0 {
		c.index = 0
	}
	c.ensureVisible()
}

func (c *Cursor) ensureVisible() {
	// Don't adjust offset if size hasn't been set yet
	if c.maxVisible <= 0 {
		return
	}
	if c.index < c.offset {
		c.offset = c.index
	}
	if c.index >= c.offset+c.maxVisible {
		c.offset = c.index - c.maxVisible + 1
	}
	if maxOffset := c.n - c.maxVisible; c.offset > maxOffset {
		c.offset = maxOffset
	}
	if c.offset < 0 {
		c.offset = 0
	}
}
