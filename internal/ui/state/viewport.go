package state

// Viewport tracks the first rendered row of the visible option window.
type Viewport struct {
	Offset int
}

// Reset scrolls back to the top.
func (v *Viewport) Reset() {
	v.Offset = 0
}

// Follow adjusts the offset so cursor stays within rows of total entries.
// A cursor of NoIndex only clamps the offset.
func (v *Viewport) Follow(cursor, total, rows int) {
	v.clamp(total, rows)
	if rows <= 0 || cursor < 0 || cursor >= total {
		return
	}
	if cursor < v.Offset {
		v.Offset = cursor
	}
	if upper := v.Offset + rows - 1; cursor > upper {
		v.Offset = cursor - rows + 1
	}
	v.clamp(total, rows)
}

// Scroll moves the offset by delta rows and reports whether it moved.
func (v *Viewport) Scroll(delta, total, rows int) bool {
	old := v.Offset
	v.Offset += delta
	v.clamp(total, rows)
	return v.Offset != old
}

// Below returns how many rows of content lie beneath the viewport bottom.
func (v *Viewport) Below(total, rows int) int {
	if rows <= 0 {
		return 0
	}
	below := total - (v.Offset + rows)
	if below < 0 {
		return 0
	}
	return below
}

func (v *Viewport) clamp(total, rows int) {
	if rows <= 0 || total <= rows {
		v.Offset = 0
		return
	}
	if max := total - rows; v.Offset > max {
		v.Offset = max
	}
	if v.Offset < 0 {
		v.Offset = 0
	}
}
