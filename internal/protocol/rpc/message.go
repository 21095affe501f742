package rpc

import (
	"bytes"
	"fmt"

	xdr "github.com/rasky/go-xdr/xdr2"
)

// RPCCallMessage is the header of an ONC RPC call (RFC 5531 Section 9).
// Procedure arguments follow the header on the wire.
type RPCCallMessage struct {
	XID        uint32
	MsgType    uint32 // 0 = CALL
	RPCVersion uint32 // always 2
	Program    uint32
	Version    uint32
	Procedure  uint32
	Cred       OpaqueAuth
	Verf       OpaqueAuth
}

// RPCReplyMessage is the header of an accepted ONC RPC reply.
// Procedure results follow the header on the wire.
type RPCReplyMessage struct {
	XID        uint32
	MsgType    uint32 // 1 = REPLY
	ReplyState uint32 // 0 = MSG_ACCEPTED
	Verf       OpaqueAuth
	AcceptStat uint32 // 0 = SUCCESS
	// Reply data follows
}

// OpaqueAuth carries authentication data for calls and replies.
// This client only ever sends AUTH_NONE with an empty body.
type OpaqueAuth struct {
	Flavor uint32
	Body   []byte `xdr:"opaque"`
}

// EncodeCall serializes an RPC call header followed by the already
// XDR-encoded procedure arguments. The result is not framed; record
// marking is applied by the transport.
func EncodeCall(call *RPCCallMessage, args []byte) ([]byte, error) {
	var buf bytes.Buffer

	_, err := xdr.Marshal(&buf, call)
	if err != nil {
		return nil, fmt.Errorf("marshal RPC call: %w", err)
	}

	buf.Write(args)

	return buf.Bytes(), nil
}
