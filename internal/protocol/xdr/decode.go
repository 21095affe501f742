// Package xdr provides decoding helpers for the XDR wire format (RFC 4506)
// used by ONC RPC, the portmapper and the NFS MOUNT protocol.
//
// Fixed-size RPC headers are marshalled with github.com/rasky/go-xdr; these
// helpers cover the variable-length and linked-list constructs that appear
// in procedure results.
package xdr

import (
	"encoding/binary"
	"fmt"
	"io"
)

// ============================================================================
// XDR Decoding Helpers - Wire Format → Go Structures
// ============================================================================

// DecodeUint32 decodes a single XDR unsigned integer.
//
// Per RFC 4506 Section 4.2, unsigned integers are 4 bytes, big-endian.
func DecodeUint32(reader io.Reader) (uint32, error) {
	var value uint32
	if err := binary.Read(reader, binary.BigEndian, &value); err != nil {
		return 0, fmt.Errorf("read uint32: %w", err)
	}
	return value, nil
}

// DecodeBool decodes an XDR boolean.
//
// Per RFC 4506 Section 4.4, booleans are encoded as an integer with
// 0 = FALSE and 1 = TRUE. Nonzero values are treated as TRUE to be
// lenient with server implementations.
func DecodeBool(reader io.Reader) (bool, error) {
	value, err := DecodeUint32(reader)
	if err != nil {
		return false, fmt.Errorf("read bool: %w", err)
	}
	return value != 0, nil
}

// DecodeOpaque decodes XDR variable-length opaque data.
//
// Per RFC 4506 Section 4.10 (Variable-Length Opaque Data):
// Format: [length:uint32][data:length bytes][padding:0-3 bytes]
// Padding aligns the next item to a 4-byte boundary.
//
// XDR Alignment Rule:
// All XDR data types are aligned to 4-byte boundaries. Variable-length data
// is padded with 0-3 zero bytes to achieve this alignment.
func DecodeOpaque(reader io.Reader) ([]byte, error) {
	// Read length (4 bytes)
	var length uint32
	if err := binary.Read(reader, binary.BigEndian, &length); err != nil {
		return nil, fmt.Errorf("read length: %w", err)
	}

	// Validate reasonable length (protect against malicious input)
	// Export paths and auth verifiers are far below 1MB
	const maxOpaqueLength = 1024 * 1024 // 1 MB
	if length > maxOpaqueLength {
		return nil, fmt.Errorf("opaque length %d exceeds maximum %d", length, maxOpaqueLength)
	}

	// Read data
	data := make([]byte, length)
	if _, err := io.ReadFull(reader, data); err != nil {
		return nil, fmt.Errorf("read data: %w", err)
	}

	// Skip padding to 4-byte boundary
	// Example: length=5 → padding=3, length=8 → padding=0
	padding := (4 - (length % 4)) % 4
	if padding > 0 {
		if _, err := io.CopyN(io.Discard, reader, int64(padding)); err != nil {
			return nil, fmt.Errorf("skip padding: %w", err)
		}
	}

	return data, nil
}

// DecodeString decodes an XDR variable-length string.
//
// Per RFC 4506 Section 4.11 (String):
// Strings use the same encoding as opaque data but are interpreted as UTF-8.
// Format: [length:uint32][data:length bytes][padding:0-3 bytes]
func DecodeString(reader io.Reader) (string, error) {
	data, err := DecodeOpaque(reader)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
