package term

import "lumen"

// Cell is one terminal character with its colors. Unset colors fall back
// to the terminal default.
type Cell struct {
	Rune  rune
	Fg    lumen.Color
	Bg    lumen.Color
	FgSet bool
	BgSet bool
}

func emptyCell() Cell { return Cell{Rune: ' '} }

// CellBuffer is a 2D grid of cells with per-row dirty tracking, so the
// renderer can skip rows nothing wrote to.
type CellBuffer struct {
	cells  []Cell
	dirty  []bool
	width  int
	height int
}

func NewCellBuffer(width, height int) *CellBuffer {
	b := &CellBuffer{
		cells:  make([]Cell, width*height),
		dirty:  make([]bool, height),
		width:  width,
		height: height,
	}
	b.Clear()
	return b
}

func (b *CellBuffer) Width() int  { return b.width }
func (b *CellBuffer) Height() int { return b.height }

func (b *CellBuffer) InBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

func (b *CellBuffer) index(x, y int) int { return y*b.width + x }

// Get returns the cell at x,y, or an empty cell out of bounds.
func (b *CellBuffer) Get(x, y int) Cell {
	if !b.InBounds(x, y) {
		return emptyCell()
	}
	return b.cells[b.index(x, y)]
}

// Set writes a whole cell.
func (b *CellBuffer) Set(x, y int, c Cell) {
	if !b.InBounds(x, y) {
		return
	}
	b.cells[b.index(x, y)] = c
	b.dirty[y] = true
}

// SetRune writes the rune and foreground, keeping the background.
func (b *CellBuffer) SetRune(x, y int, r rune, fg lumen.Color) {
	if !b.InBounds(x, y) {
		return
	}
	i := b.index(x, y)
	b.cells[i].Rune = r
	b.cells[i].Fg = fg
	b.cells[i].FgSet = true
	b.dirty[y] = true
}

// SetBg writes the background, keeping the rune.
func (b *CellBuffer) SetBg(x, y int, bg lumen.Color) {
	if !b.InBounds(x, y) {
		return
	}
	i := b.index(x, y)
	b.cells[i].Bg = bg
	b.cells[i].BgSet = true
	b.dirty[y] = true
}

// RowDirty reports whether anything wrote to row y since the last
// ClearDirty.
func (b *CellBuffer) RowDirty(y int) bool {
	return y >= 0 && y < b.height && b.dirty[y]
}

func (b *CellBuffer) ClearDirty() {
	for i := range b.dirty {
		b.dirty[i] = false
	}
}

// Clear resets every cell and marks all rows dirty.
func (b *CellBuffer) Clear() {
	empty := emptyCell()
	for i := range b.cells {
		b.cells[i] = empty
	}
	for i := range b.dirty {
		b.dirty[i] = true
	}
}

// Resize reallocates the grid, dropping old content.
func (b *CellBuffer) Resize(width, height int) {
	b.cells = make([]Cell, width*height)
	b.dirty = make([]bool, height)
	b.width = width
	b.height = height
	b.Clear()
}
