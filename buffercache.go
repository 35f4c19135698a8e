package lumen

// BufferCacheId addresses a renderable's vertex and index chunks in the
// shared buffer arena. Renderables keep their id across frames so the
// painter can skip re-uploading unchanged geometry.
type BufferCacheId struct {
	Index  int
	Vertex int
}

// BufferChunk is a contiguous region of the arena.
type BufferChunk struct {
	N       int // occupied length
	Start   int
	MaxSize int
	Filled  bool
	Marked  bool
}

// BufferCache is an index-allocating arena with a mark-and-sweep reclaim
// pass per frame: Unmark everything at the start of a draw, Register each
// chunk a kept renderable still references, and allocations prefer unmarked
// chunks of a matching size class.
type BufferCache struct {
	VertexChunks []BufferChunk
	IndexChunks  []BufferChunk
	vertexLen    int
	indexLen     int
}

// NewBufferCache returns an empty arena.
func NewBufferCache() *BufferCache {
	return &BufferCache{}
}

// Unmark clears all marks; run at the start of a draw pass.
func (c *BufferCache) Unmark() {
	for i := range c.VertexChunks {
		c.VertexChunks[i].Marked = false
	}
	for i := range c.IndexChunks {
		c.IndexChunks[i].Marked = false
	}
}

// Register marks both chunks of id as still in use this frame.
func (c *BufferCache) Register(id BufferCacheId) {
	c.VertexChunks[id.Vertex].Marked = true
	c.IndexChunks[id.Index].Marked = true
}

func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

func allocChunk(chunks []BufferChunk, totalLen *int, n int) ([]BufferChunk, int) {
	size := nextPowerOfTwo(n)
	for i := range chunks {
		if !chunks[i].Marked && chunks[i].MaxSize == size {
			chunks[i].N = n
			chunks[i].Filled = false
			chunks[i].Marked = true
			return chunks, i
		}
	}
	chunks = append(chunks, BufferChunk{
		N:       n,
		Start:   *totalLen,
		MaxSize: size,
		Marked:  true,
	})
	*totalLen += size
	return chunks, len(chunks) - 1
}

// Alloc claims vertex and index chunks able to hold the given counts.
func (c *BufferCache) Alloc(nVertices, nIndices int) BufferCacheId {
	var v, i int
	c.VertexChunks, v = allocChunk(c.VertexChunks, &c.vertexLen, nVertices)
	c.IndexChunks, i = allocChunk(c.IndexChunks, &c.indexLen, nIndices)
	return BufferCacheId{Index: i, Vertex: v}
}

// AllocOrReuse keeps a previous handle when present, otherwise allocates.
func (c *BufferCache) AllocOrReuse(prev *BufferCacheId, nVertices, nIndices int) BufferCacheId {
	if prev != nil {
		c.Register(*prev)
		c.VertexChunks[prev.Vertex].N = nVertices
		c.IndexChunks[prev.Index].N = nIndices
		return *prev
	}
	return c.Alloc(nVertices, nIndices)
}

// SetFilled records whether a chunk's contents are already uploaded.
func (c *BufferCache) SetFilled(id BufferCacheId, filled bool) {
	c.VertexChunks[id.Vertex].Filled = filled
	c.IndexChunks[id.Index].Filled = filled
}

// RasterCacheId addresses one pixel buffer in the RasterCache.
type RasterCacheId int

// RasterCache stores raw pixel data for Raster renderables with the same
// unmark/register/sweep lifecycle as the buffer arena.
type RasterCache struct {
	Rasters [][]byte
	Sizes   []PixelSize
	Marks   []bool
}

func NewRasterCache() *RasterCache {
	return &RasterCache{}
}

func (c *RasterCache) Unmark() {
	for i := range c.Marks {
		c.Marks[i] = false
	}
}

func (c *RasterCache) Register(id RasterCacheId) {
	c.Marks[id] = true
}

// AllocOrReuse keeps prev when present, otherwise claims the first unmarked
// slot or appends a new one. The returned slot is marked so a later alloc
// in the same pass cannot steal it.
func (c *RasterCache) AllocOrReuse(prev *RasterCacheId) RasterCacheId {
	if prev != nil {
		c.Register(*prev)
		return *prev
	}
	for i, m := range c.Marks {
		if !m {
			c.Marks[i] = true
			return RasterCacheId(i)
		}
	}
	c.Rasters = append(c.Rasters, nil)
	c.Sizes = append(c.Sizes, PixelSize{})
	c.Marks = append(c.Marks, true)
	return RasterCacheId(len(c.Rasters) - 1)
}

func (c *RasterCache) SetRaster(id RasterCacheId, data []byte, size PixelSize) {
	c.Rasters[id] = data
	c.Sizes[id] = size
}

func (c *RasterCache) Raster(id RasterCacheId) ([]byte, PixelSize) {
	return c.Rasters[id], c.Sizes[id]
}
