// Package mount implements a client for the NFS MOUNT protocol
// (RFC 1813 Appendix I).
//
// Only the EXPORT procedure is implemented. Mounting itself goes through
// the kernel NFS client; this package exists so callers can discover what
// a server exports, the same way showmount -e does.
package mount

import (
	"fmt"
	"net"
	"strconv"

	"github.com/marmos91/dumpmount/internal/protocol/portmap"
	"github.com/marmos91/dumpmount/internal/protocol/rpc"
)

// Exports queries the export list of the NFS server on host.
//
// The MOUNT daemon has no well-known port, so the server's portmapper is
// asked for it first. The call blocks until the server answers or the
// operating system gives up on the connection.
func Exports(host string) ([]ExportEntry, error) {
	portmapperAddr := net.JoinHostPort(host, strconv.Itoa(portmap.Port))
	return exportsVia(portmapperAddr, host)
}

// exportsVia locates the MOUNT daemon through the portmapper at
// portmapperAddr, then retrieves the export list from host.
func exportsVia(portmapperAddr, host string) ([]ExportEntry, error) {
	port, err := portmap.GetPort(portmapperAddr, rpc.ProgramMount, MountVersion3)
	if err != nil {
		return nil, fmt.Errorf("locate MOUNT daemon on %s: %w", host, err)
	}

	addr := net.JoinHostPort(host, strconv.Itoa(int(port)))
	return ExportsAt(addr)
}

// ExportsAt retrieves the export list from the MOUNT daemon at addr,
// bypassing the portmapper lookup.
func ExportsAt(addr string) ([]ExportEntry, error) {
	results, err := rpc.Call(addr, rpc.ProgramMount, MountVersion3, MountProcExport, nil)
	if err != nil {
		return nil, fmt.Errorf("EXPORT on %s: %w", addr, err)
	}

	entries, err := DecodeExportList(results)
	if err != nil {
		return nil, fmt.Errorf("decode export list from %s: %w", addr, err)
	}

	return entries, nil
}
