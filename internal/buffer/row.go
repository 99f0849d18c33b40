package buffer

// TabStop is the render width of a tab stop.
const TabStop = 8

// Row is one line of the document. render always holds the tab expansion of
// content; every mutation of content recomputes it.
type Row struct {
	content []rune
	render  []rune
}

func newRow(content []rune) *Row {
	r := &Row{content: content}
	r.update()
	return r
}

// NewRow returns a row holding s.
func NewRow(s string) *Row {
	return newRow([]rune(s))
}

// Len returns the number of characters in the row.
func (r *Row) Len() int { return len(r.content) }

// String returns the row content.
func (r *Row) String() string { return string(r.content) }

// Render returns the tab-expanded form of the row, one element per screen
// column. The returned slice must not be modified.
func (r *Row) Render() []rune { return r.render }

// RxFromCx converts a character index into a render column.
func (r *Row) RxFromCx(cx int) int {
	if cx > len(r.content) {
		cx = len(r.content)
	}
	rx := 0
	for _, ch := range r.content[:max(cx, 0)] {
		if ch == '\t' {
			rx += TabStop - rx%TabStop
		} else {
			rx++
		}
	}
	return rx
}

func (r *Row) update() {
	render := make([]rune, 0, len(r.content))
	for _, ch := range r.content {
		if ch != '\t' {
			render = append(render, ch)
			continue
		}
		render = append(render, ' ')
		for len(render)%TabStop != 0 {
			render = append(render, ' ')
		}
	}
	r.render = render
}

func (r *Row) insert(at int, ch rune) {
	if at < 0 || at > len(r.content) {
		at = len(r.content)
	}
	r.content = append(r.content, 0)
	copy(r.content[at+1:], r.content[at:])
	r.content[at] = ch
	r.update()
}

func (r *Row) remove(at int) {
	if at < 0 || at >= len(r.content) {
		return
	}
	r.content = append(r.content[:at], r.content[at+1:]...)
	r.update()
}

func (r *Row) appendRunes(s []rune) {
	r.content = append(r.content, s...)
	r.update()
}
