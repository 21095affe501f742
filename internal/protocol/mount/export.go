package mount

import (
	"bytes"
	"fmt"

	"github.com/marmos91/dumpmount/internal/protocol/xdr"
)

// ExportEntry represents a single entry in an EXPORT reply.
// This structure corresponds to the "exportnode" type in RFC 1813 Appendix I.
type ExportEntry struct {
	// Directory is the path on the server that can be mounted
	// Example: "/export" or "/data/shared"
	Directory string

	// Groups is a list of host groups or client names allowed to mount
	// this export. If empty, the export is available to all clients
	// (world-exportable). Each entry can be a hostname, IP address,
	// netgroup name, etc.
	// Example: ["client1.example.com", "192.168.1.0/24", "@engineering"]
	// Note: Many NFS servers leave this empty to indicate "available to all"
	Groups []string
}

// DecodeExportList decodes the result of the EXPORT procedure.
//
// The reply is an XDR linked list (RFC 1813 Appendix I):
//   - For each export entry:
//     1. value_follows = TRUE (1)
//     2. directory (string: length + data + padding)
//     3. groups list:
//     a. For each group:
//   - value_follows = TRUE (1)
//   - group name (string: length + data + padding)
//     b. value_follows = FALSE (0) to end groups list
//   - Final entry:
//     1. value_follows = FALSE (0) to indicate end of exports list
//
// An empty reply body with a single FALSE marker decodes to an empty list;
// servers with nothing exported answer exactly that way.
func DecodeExportList(data []byte) ([]ExportEntry, error) {
	reader := bytes.NewReader(data)
	entries := []ExportEntry{}

	for {
		more, err := xdr.DecodeBool(reader)
		if err != nil {
			return nil, fmt.Errorf("read exports value_follows: %w", err)
		}
		if !more {
			break
		}

		directory, err := xdr.DecodeString(reader)
		if err != nil {
			return nil, fmt.Errorf("read export directory: %w", err)
		}

		groups := []string{}
		for {
			groupFollows, err := xdr.DecodeBool(reader)
			if err != nil {
				return nil, fmt.Errorf("read groups value_follows: %w", err)
			}
			if !groupFollows {
				break
			}

			group, err := xdr.DecodeString(reader)
			if err != nil {
				return nil, fmt.Errorf("read group name: %w", err)
			}
			groups = append(groups, group)
		}

		entries = append(entries, ExportEntry{
			Directory: directory,
			Groups:    groups,
		})
	}

	return entries, nil
}

// Directories extracts just the export paths from a list of entries
func Directories(entries []ExportEntry) []string {
	dirs := make([]string, 0, len(entries))
	for _, entry := range entries {
		dirs = append(dirs, entry.Directory)
	}
	return dirs
}
