package geometry

// Prefix caches the running offsets of a sequence of extents (column widths or
// row heights). Offset(i) is the sum of the extents of [0,i).
//
// Mutations only recompute the suffix that follows the changed index.
type Prefix struct {
	sizes   []int
	offsets []int
}

// New builds a cache over the provided extents.
func New(sizes []int) *Prefix {
	p := &Prefix{}
	p.Reset(sizes)
	return p
}

// Reset rebuilds the cache from scratch.
func (p *Prefix) Reset(sizes []int) {
	p.sizes = append(p.sizes[:0], sizes...)
	for i, s := range p.sizes {
		if s < 0 {
			p.sizes[i] = 0
		}
	}
	p.offsets = make([]int, len(p.sizes))
	p.recompute(0)
}

// Len reports how many entries are cached.
func (p *Prefix) Len() int { return len(p.sizes) }

// Size returns the extent of entry i, or 0 when i is out of range.
func (p *Prefix) Size(i int) int {
	if i < 0 || i >= len(p.sizes) {
		return 0
	}
	return p.sizes[i]
}

// Offset returns the start of entry i. Offset(Len()) is the total; indices
// outside [0,Len()] clamp to the nearest end.
func (p *Prefix) Offset(i int) int {
	if i <= 0 || len(p.offsets) == 0 {
		return 0
	}
	if i >= len(p.offsets) {
		return p.Total()
	}
	return p.offsets[i]
}

// Total is the sum of every extent.
func (p *Prefix) Total() int {
	n := len(p.sizes)
	if n == 0 {
		return 0
	}
	return p.offsets[n-1] + p.sizes[n-1]
}

// Append adds one entry to the end without touching existing offsets.
func (p *Prefix) Append(size int) {
	if size < 0 {
		size = 0
	}
	p.offsets = append(p.offsets, p.Total())
	p.sizes = append(p.sizes, size)
}

// InsertAt splices sizes in before index i and re-derives the suffix.
func (p *Prefix) InsertAt(i int, sizes ...int) {
	if len(sizes) == 0 {
		return
	}
	i = clampIndex(i, len(p.sizes))
	added := make([]int, len(sizes))
	for k, s := range sizes {
		if s < 0 {
			s = 0
		}
		added[k] = s
	}
	p.sizes = append(p.sizes[:i], append(added, p.sizes[i:]...)...)
	p.offsets = append(p.offsets, make([]int, len(added))...)
	p.recompute(i)
}

// RemoveRange drops entries [from,to) and re-derives the suffix.
func (p *Prefix) RemoveRange(from, to int) {
	from = clampIndex(from, len(p.sizes))
	to = clampIndex(to, len(p.sizes))
	if from >= to {
		return
	}
	p.sizes = append(p.sizes[:from], p.sizes[to:]...)
	p.offsets = p.offsets[:len(p.sizes)]
	p.recompute(from)
}

// SetSize changes the extent of entry i.
func (p *Prefix) SetSize(i, size int) {
	if i < 0 || i >= len(p.sizes) {
		return
	}
	if size < 0 {
		size = 0
	}
	if p.sizes[i] == size {
		return
	}
	p.sizes[i] = size
	p.recompute(i + 1)
}

// IndexAt returns the entry containing pos. The scan walks forward from start,
// which callers set to the first visible index so the walk stays within the
// visible window. Positions outside [0,Total()) report false.
func (p *Prefix) IndexAt(pos, start int) (int, bool) {
	if pos < 0 || pos >= p.Total() {
		return -1, false
	}
	if start < 0 || start >= len(p.sizes) || p.offsets[start] > pos {
		start = 0
	}
	for i := start; i < len(p.sizes); i++ {
		if pos < p.offsets[i]+p.sizes[i] {
			return i, true
		}
	}
	return -1, false
}

// Floor returns the last entry whose offset is <= pos, clamped to [0,Len()-1].
// It is used to turn a scroll position into the first visible index.
func (p *Prefix) Floor(pos int) int {
	if len(p.sizes) == 0 || pos <= 0 {
		return 0
	}
	if i, ok := p.IndexAt(pos, 0); ok {
		return i
	}
	return len(p.sizes) - 1
}

func (p *Prefix) recompute(from int) {
	if from < 0 {
		from = 0
	}
	for i := from; i < len(p.sizes); i++ {
		if i == 0 {
			p.offsets[0] = 0
			continue
		}
		p.offsets[i] = p.offsets[i-1] + p.sizes[i-1]
	}
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}
