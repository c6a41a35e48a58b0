// Package bytesutil defines helper methods for converting byte slices to the
// fixed-size byte arrays used as tree-hash roots throughout the codebase.
package bytesutil

// ToBytes32 copies (or zero-pads) b into a fixed-size 32-byte array, the
// shape used for signing-roots and hash-tree-roots throughout this package.
func ToBytes32(b []byte) [32]byte {
	var out [32]byte
	copy(out[:], b)
	return out
}
