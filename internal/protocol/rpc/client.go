package rpc

import (
	"encoding/binary"
	"fmt"
	"io"
	"net"
	"sync/atomic"
	"time"
)

// maxFragmentSize caps a single record-marking fragment.
// Portmap and MOUNT replies are tiny; anything near this limit is garbage.
const maxFragmentSize = 1024 * 1024 // 1 MB

// xidCounter generates transaction IDs. Seeded from the clock so
// consecutive process runs do not reuse the same XID sequence.
var xidCounter atomic.Uint32

func init() {
	xidCounter.Store(uint32(time.Now().UnixNano()))
}

func nextXID() uint32 {
	return xidCounter.Add(1)
}

type fragmentHeader struct {
	IsLast bool
	Length uint32
}

// NewCall builds an RPC call header for the given program, version and
// procedure with a fresh XID and AUTH_NONE credentials.
func NewCall(program, version, procedure uint32) *RPCCallMessage {
	return &RPCCallMessage{
		XID:        nextXID(),
		MsgType:    RPCCall,
		RPCVersion: RPCVersion2,
		Program:    program,
		Version:    version,
		Procedure:  procedure,
		Cred: OpaqueAuth{
			Flavor: AuthNone,
			Body:   []byte{},
		},
		Verf: OpaqueAuth{
			Flavor: AuthNone,
			Body:   []byte{},
		},
	}
}

// Call performs a single ONC RPC call over TCP and returns the procedure
// results. args must already be XDR-encoded; pass nil for procedures that
// take no arguments.
//
// The call blocks until the server responds or the connection fails.
// Waiting is bounded by the operating system's TCP behavior, not by a
// client-side timeout.
func Call(addr string, program, version, procedure uint32, args []byte) ([]byte, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	defer conn.Close()

	call := NewCall(program, version, procedure)

	message, err := EncodeCall(call, args)
	if err != nil {
		return nil, err
	}

	if err := writeRecord(conn, message); err != nil {
		return nil, fmt.Errorf("send call to %s: %w", addr, err)
	}

	record, err := readRecord(conn)
	if err != nil {
		return nil, fmt.Errorf("read reply from %s: %w", addr, err)
	}

	reply, results, err := DecodeReply(record)
	if err != nil {
		return nil, fmt.Errorf("decode reply from %s: %w", addr, err)
	}

	if reply.XID != call.XID {
		return nil, fmt.Errorf("reply XID 0x%x does not match call XID 0x%x", reply.XID, call.XID)
	}

	return results, nil
}

// writeRecord sends one RPC message using TCP record marking
// (RFC 5531 Section 11): a 4-byte header carrying the fragment length
// with the high bit marking the last fragment.
func writeRecord(w io.Writer, data []byte) error {
	header := make([]byte, 4)
	binary.BigEndian.PutUint32(header, 0x80000000|uint32(len(data))) // Last fragment bit set

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("write fragment header: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write fragment body: %w", err)
	}

	return nil
}

// readRecord reads one RPC message, reassembling multi-fragment records
func readRecord(r io.Reader) ([]byte, error) {
	var record []byte

	for {
		header, err := readFragmentHeader(r)
		if err != nil {
			return nil, err
		}

		if header.Length > maxFragmentSize {
			return nil, fmt.Errorf("fragment length %d exceeds maximum %d", header.Length, maxFragmentSize)
		}

		fragment := make([]byte, header.Length)
		if _, err := io.ReadFull(r, fragment); err != nil {
			return nil, fmt.Errorf("read fragment body: %w", err)
		}
		record = append(record, fragment...)

		if header.IsLast {
			return record, nil
		}
	}
}

func readFragmentHeader(r io.Reader) (*fragmentHeader, error) {
	var buf [4]byte
	_, err := io.ReadFull(r, buf[:])
	if err != nil {
		return nil, fmt.Errorf("read fragment header: %w", err)
	}

	header := binary.BigEndian.Uint32(buf[:])
	return &fragmentHeader{
		IsLast: (header & 0x80000000) != 0,
		Length: header & 0x7FFFFFFF,
	}, nil
}
