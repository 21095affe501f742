package rpc

// RPC Program Numbers
// These identify the RPC programs this client talks to.
const (
	// ProgramPortmap is the port mapper program number (RFC 1833)
	ProgramPortmap = 100000

	// ProgramNFS is the NFS version 3 program number (RFC 1813)
	ProgramNFS = 100003

	// ProgramMount is the Mount protocol program number (RFC 1813 Appendix I)
	ProgramMount = 100005
)

// RPCVersion2 is the ONC RPC protocol version (RFC 5531)
const RPCVersion2 = 2

// RPC Message Types
const (
	// RPCCall indicates an RPC call message
	RPCCall = 0

	// RPCReply indicates an RPC reply message
	RPCReply = 1
)

// RPC Reply States
const (
	// RPCMsgAccepted indicates the RPC call was accepted
	RPCMsgAccepted = 0

	// RPCMsgDenied indicates the RPC call was denied
	RPCMsgDenied = 1
)

// RPC Accept Status
// These report the outcome of an accepted call (RFC 5531 Section 9).
const (
	// RPCSuccess indicates successful RPC execution
	RPCSuccess = 0

	// RPCProgUnavail indicates the program is not exported by the server
	RPCProgUnavail = 1

	// RPCProgMismatch indicates the program version is unsupported
	RPCProgMismatch = 2

	// RPCProcUnavail indicates the procedure is unavailable
	RPCProcUnavail = 3

	// RPCGarbageArgs indicates the server could not decode the arguments
	RPCGarbageArgs = 4

	// RPCSystemErr indicates a server-side memory or I/O failure
	RPCSystemErr = 5
)

// Authentication Flavors
const (
	// AuthNone is the null authentication flavor (AUTH_NONE)
	AuthNone = 0

	// AuthSys is Unix-style authentication (AUTH_SYS)
	AuthSys = 1
)
