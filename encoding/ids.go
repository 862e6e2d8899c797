package encoding

// EntityID reads a uint64 entity id.
func (r *Reader) EntityID() uint64 {
	return r.Uint64()
}

// NullableEntityID reads a one-byte present flag, then a uint64 id if set.
// Absent ids decode as zero.
func (r *Reader) NullableEntityID() uint64 {
	if !r.Bool() {
		return 0
	}
	return r.Uint64()
}

// EntityID appends a uint64 entity id.
func (w *Writer) EntityID(id uint64) {
	w.Uint64(id)
}

// NullableEntityID appends a one-byte present flag, then the id if it is
// non-zero.
func (w *Writer) NullableEntityID(id uint64) {
	if id == 0 {
		w.Bool(false)
		return
	}
	w.Bool(true)
	w.Uint64(id)
}
