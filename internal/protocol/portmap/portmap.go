// Package portmap implements a minimal portmapper client (RFC 1833).
//
// The portmapper runs on the well-known port 111 and maps RPC program
// numbers to the ports their servers listen on. This client only needs
// GETPORT, which is how mount tooling locates the MOUNT daemon.
package portmap

import (
	"bytes"
	"encoding/binary"
	"fmt"

	xdr "github.com/rasky/go-xdr/xdr2"

	"github.com/marmos91/dumpmount/internal/protocol/rpc"
)

// Portmapper Protocol Constants (RFC 1833)
const (
	// Port is the well-known portmapper port
	Port = 111

	// Version is the portmapper protocol version
	Version = 2

	// ProcGetPort - Look up the port of a registered program
	ProcGetPort = 3
)

// Transport Protocol Numbers
const (
	// ProtocolTCP identifies TCP in portmapper mappings
	ProtocolTCP = 6

	// ProtocolUDP identifies UDP in portmapper mappings
	ProtocolUDP = 17
)

// Mapping is the argument to GETPORT (RFC 1833 Section 2.1).
// Port is ignored for lookups and set to zero.
type Mapping struct {
	Program  uint32
	Version  uint32
	Protocol uint32
	Port     uint32
}

// GetPort asks the portmapper at addr for the TCP port of the given RPC
// program and version. addr is "host:111" in normal operation.
//
// A zero port in the reply means the program is not registered, which is
// reported as an error.
func GetPort(addr string, program, version uint32) (uint32, error) {
	mapping := &Mapping{
		Program:  program,
		Version:  version,
		Protocol: ProtocolTCP,
		Port:     0,
	}

	var args bytes.Buffer
	if _, err := xdr.Marshal(&args, mapping); err != nil {
		return 0, fmt.Errorf("marshal GETPORT arguments: %w", err)
	}

	results, err := rpc.Call(addr, rpc.ProgramPortmap, Version, ProcGetPort, args.Bytes())
	if err != nil {
		return 0, fmt.Errorf("GETPORT on %s: %w", addr, err)
	}

	if len(results) < 4 {
		return 0, fmt.Errorf("GETPORT reply too short: %d bytes", len(results))
	}

	port := binary.BigEndian.Uint32(results)
	if port == 0 {
		return 0, fmt.Errorf("program %d version %d is not registered on %s", program, version, addr)
	}

	return port, nil
}
