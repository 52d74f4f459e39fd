// Package proto implements the wire protocol spoken between the stash CLI
// and the background worker. Both directions use newline-terminated text
// frames; arbitrary byte payloads travel inside a length-prefixed VAL field
// so that values containing newline bytes survive the trip.
//
// Wire grammar (one frame per line unless a VAL length spans further bytes):
//
//	Command  ::= "GET " key | "SET " key " " Value | "DEL " key | "DMP" | "EXT"
//	Response ::= "OK" | "ERR " message | Value
//	Value    ::= "VAL 0" | "VAL " length " " bytes
//
// The declared length of a Value is authoritative: a reader must consume
// exactly that many payload bytes even when they include 0x0A. The plain
// Parse* functions decode a single already-delimited frame; ReadCommand and
// ReadResponse additionally implement the length-aware framing on top of a
// bufio.Reader and are what the client and server actually use.
//
// Keys must not contain a space or newline byte. The codec does not enforce
// this - a key with an embedded space mis-splits on decode - so callers
// validate keys before encoding.
//
// Key Components:
//
//   - WrappedValue: the length-prefixed payload carrier
//
//   - Command/Response: tagged request and reply frames with factory functions
//
//   - ReadCommand/WriteCommand, ReadResponse/WriteResponse: symmetric
//     stream codecs used by both peer roles
package proto
