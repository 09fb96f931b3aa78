package h2type

import "encoding/binary"

// decodeFixedWidthString interprets raw as a sequence of little-endian
// code units of the given width (1, 2, or 4 bytes) and renders each as a
// rune. Width 1 is returned verbatim as a byte string (ASCII/Latin-1
// semantics), matching spec.md §8 scenario S3's ASCII LPString example.
func decodeFixedWidthString(raw []byte, width int) string {
	if width <= 1 {
		return string(raw)
	}
	runes := make([]rune, 0, len(raw)/width)
	for i := 0; i+width <= len(raw); i += width {
		var v uint32
		switch width {
		case 2:
			v = uint32(binary.LittleEndian.Uint16(raw[i:]))
		case 4:
			v = binary.LittleEndian.Uint32(raw[i:])
		}
		runes = append(runes, rune(v))
	}
	return string(runes)
}
