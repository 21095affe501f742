package journal

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AttachRecord describes one successful NFS attach.
//
// Records are stored as JSON: they are tiny, written once per attach,
// and human-readable values make the database easy to inspect when
// debugging a crash-capture host.
type AttachRecord struct {
	// ID uniquely identifies this attach
	ID uuid.UUID `json:"id"`

	// Host is the NFS server the export was mounted from
	Host string `json:"host"`

	// Export is the export that was actually mounted
	Export string `json:"export"`

	// RequestedDir is the directory the caller asked for
	RequestedDir string `json:"requested_dir"`

	// Remainder is the path of RequestedDir below Export
	Remainder string `json:"remainder"`

	// Mountpoint is the local directory the export is attached to
	Mountpoint string `json:"mountpoint"`

	// Options is the mount option list used
	Options []string `json:"options"`

	// AttachedAt is when the attach completed
	AttachedAt time.Time `json:"attached_at"`
}

// encodeRecord serializes an attach record for storage.
func encodeRecord(rec *AttachRecord) ([]byte, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to encode attach record: %w", err)
	}
	return data, nil
}

// decodeRecord deserializes an attach record from storage.
func decodeRecord(data []byte) (*AttachRecord, error) {
	var rec AttachRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to decode attach record: %w", err)
	}
	return &rec, nil
}
