package encoder

import "io"

// NetworkEncoding is the set of encoding operations frame.go's Codec needs
// from a wire codec, independent of which serialization/compression scheme
// backs it. This subprotocol frames each message with its own header
// rather than a length-prefixed stream, so only the bare encode/decode
// pair is part of the contract.
type NetworkEncoding interface {
	Encode(w io.Writer, msg interface{}) (int, error)
	Decode(b []byte, to interface{}) error
}
