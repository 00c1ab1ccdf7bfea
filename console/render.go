package console

// frame lays out one full repaint: the scrollback view on all rows but
// the last, the prompt and input line at the bottom. It returns the
// encoded rows and the 1-based cursor position.
//
// The scroll offset counts lines from the top of the buffer. When the
// window reaches past the last line the view snaps back into follow
// mode, matching how scrolling below the end behaves in pagers.
func (c *Console) frame(width, height int) ([]string, int, int) {
	contentH := height - 1
	c.contentH = contentH
	total := c.buf.Len()

	if c.offset+contentH > total {
		c.follow = true
	}
	if c.follow {
		c.offset = total - contentH
		if c.offset < 0 {
			c.offset = 0
		}
	}

	view, _ := c.buf.Window(c.offset, contentH)
	lines := make([]string, 0, height)
	for _, ln := range view {
		lines = append(lines, encodeLine(ln, width))
	}
	for len(lines) < contentH {
		lines = append(lines, "")
	}

	lines = append(lines, encodeLine(Plain("> "+c.ed.String()), width))

	col := c.ed.cursor + 3
	if col > width {
		col = width
	}
	return lines, height, col
}
