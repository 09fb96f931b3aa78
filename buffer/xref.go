package buffer

// AddXref records that addr in this buffer (the target) is referenced by
// fromAddr in fromBuffer. Per spec.md §4.7, a cross-reference is stored on
// the target buffer, discoverable by the source, rather than the other
// way around, since the source buffer already owns the Entry carrying
// References.
func (b *Buffer) AddXref(fromBuffer string, fromAddr uint64) {
	b.Inbound = append(b.Inbound, XRef{Buffer: fromBuffer, Addr: fromAddr})
}

// RemoveXref deletes the first recorded inbound reference matching
// fromBuffer/fromAddr, if any.
func (b *Buffer) RemoveXref(fromBuffer string, fromAddr uint64) {
	for i, x := range b.Inbound {
		if x.Buffer == fromBuffer && x.Addr == fromAddr {
			b.Inbound = append(b.Inbound[:i], b.Inbound[i+1:]...)
			return
		}
	}
}
