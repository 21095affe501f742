package journal

// Database Key Namespace Design
// ==============================
//
// BadgerDB is a key-value store, so keys are prefixed to organize data
// types into namespaces. The journal currently stores a single type:
//
// Data Type       Prefix   Key Format        Value Type
// ==========================================================
// Attach Records  "a:"     a:<mountpoint>    AttachRecord (JSON)
//
// Keying by mountpoint gives:
//   - One record per mountpoint (a second attach overwrites the first,
//     matching the fact that a mountpoint holds one mount)
//   - Point lookup by mountpoint: O(1)
//   - Listing via prefix scan, ordered by mountpoint

const (
	// prefixAttach is the key prefix for attach records
	prefixAttach = "a:"
)

// keyAttach generates the key for an attach record.
//
// Format: "a:<mountpoint>"
// Example: "a:/mnt/dump"
func keyAttach(mountpoint string) []byte {
	return []byte(prefixAttach + mountpoint)
}

// keyAttachPrefix generates the prefix for scanning all attach records.
func keyAttachPrefix() []byte {
	return []byte(prefixAttach)
}
