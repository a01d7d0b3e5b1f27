// Package wire implements the byte protocol shared by attach clients and the
// listener: NUL-terminated request fields (v2) and a decimal result code
// followed by a raw payload for replies (v1 and v2).
//
// Request (v2 only; v1 delivers its parameters inline at enqueue time):
//
//	"2" NUL command NUL arg0 NUL arg1 NUL arg2 NUL
//
// Reply (both versions):
//
//	<decimal result code> "\n" <payload bytes>
//
// The package also owns the field length limits. They are build-time
// constants agreed between both sides of the protocol; changing one without
// the other breaks the handshake.
package wire
