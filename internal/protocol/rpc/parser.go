package rpc

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/marmos91/dumpmount/internal/protocol/xdr"
)

// DecodeReply parses an RPC reply message and returns the parsed header
// together with the procedure results that follow it.
//
// Only accepted, successful replies yield results. Denied replies and
// non-SUCCESS accept states are surfaced as errors since this client has
// nothing useful to do with their bodies.
func DecodeReply(data []byte) (*RPCReplyMessage, []byte, error) {
	reader := bytes.NewReader(data)
	reply := &RPCReplyMessage{}

	if err := binary.Read(reader, binary.BigEndian, &reply.XID); err != nil {
		return nil, nil, fmt.Errorf("read XID: %w", err)
	}
	if err := binary.Read(reader, binary.BigEndian, &reply.MsgType); err != nil {
		return nil, nil, fmt.Errorf("read message type: %w", err)
	}
	if reply.MsgType != RPCReply {
		return nil, nil, fmt.Errorf("expected REPLY (1), got %d", reply.MsgType)
	}

	if err := binary.Read(reader, binary.BigEndian, &reply.ReplyState); err != nil {
		return nil, nil, fmt.Errorf("read reply state: %w", err)
	}
	if reply.ReplyState != RPCMsgAccepted {
		// Denied replies carry rejection details instead of a verifier;
		// they are not worth parsing further
		return nil, nil, fmt.Errorf("call denied by server (reply state %d)", reply.ReplyState)
	}

	if err := binary.Read(reader, binary.BigEndian, &reply.Verf.Flavor); err != nil {
		return nil, nil, fmt.Errorf("read verifier flavor: %w", err)
	}
	verfBody, err := xdr.DecodeOpaque(reader)
	if err != nil {
		return nil, nil, fmt.Errorf("read verifier body: %w", err)
	}
	reply.Verf.Body = verfBody

	if err := binary.Read(reader, binary.BigEndian, &reply.AcceptStat); err != nil {
		return nil, nil, fmt.Errorf("read accept status: %w", err)
	}
	if reply.AcceptStat != RPCSuccess {
		return nil, nil, fmt.Errorf("call failed: %s", acceptStatString(reply.AcceptStat))
	}

	// Whatever the header did not consume is the procedure result
	results := data[len(data)-reader.Len():]

	return reply, results, nil
}

// acceptStatString converts an accept status to a readable name
func acceptStatString(stat uint32) string {
	switch stat {
	case RPCSuccess:
		return "SUCCESS"
	case RPCProgUnavail:
		return "PROG_UNAVAIL (program not available)"
	case RPCProgMismatch:
		return "PROG_MISMATCH (unsupported program version)"
	case RPCProcUnavail:
		return "PROC_UNAVAIL (procedure not available)"
	case RPCGarbageArgs:
		return "GARBAGE_ARGS (server could not decode arguments)"
	case RPCSystemErr:
		return "SYSTEM_ERR (server-side failure)"
	default:
		return fmt.Sprintf("unknown accept status %d", stat)
	}
}
