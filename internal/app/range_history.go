package app

// RangeRing is a circular buffer of recent range values.
type RangeRing struct {
	buf   []float64
	pos   int
	count int
}

// NewRangeRing creates a new circular buffer with the given capacity.
func NewRangeRing(capacity int) *RangeRing {
	if capacity < 1 {
		capacity = 1
	}
	return &RangeRing{
		buf: make([]float64, capacity),
	}
}

// Push adds a value, overwriting the oldest once full.
func (r *RangeRing) Push(val float64) {
	r.buf[r.pos] = val
	r.pos = (r.pos + 1) % len(r.buf)
	if r.count < len(r.buf) {
		r.count++
	}
}

// Values returns all stored values in chronological order.
func (r *RangeRing) Values() []float64 {
	if r.count == 0 {
		return nil
	}
	result := make([]float64, r.count)
	if r.count < len(r.buf) {
		copy(result, r.buf[:r.count])
	} else {
		n := copy(result, r.buf[r.pos:])
		copy(result[n:], r.buf[:r.pos])
	}
	return result
}

// Last returns the most recent value, or 0 if empty.
func (r *RangeRing) Last() float64 {
	if r.count == 0 {
		return 0
	}
	return r.buf[(r.pos-1+len(r.buf))%len(r.buf)]
}

// Len returns the number of stored values.
func (r *RangeRing) Len() int {
	return r.count
}

// Reset drops all values, used when the range unit changes.
func (r *RangeRing) Reset() {
	r.pos = 0
	r.count = 0
}
