// Pin command payloads
// The JSON pin-write batch shared by the BLE command characteristic and
// the HTTP bridge, so that both transports mutate state identically.
package protocol

import (
	"bytes"
	"encoding/json"
	"errors"
	"unicode/utf8"
)

// MaxPinWrites bounds one command batch. A batch beyond the limit is
// rejected whole rather than truncated.
const MaxPinWrites = 8

var (
	ErrNotUTF8       = errors.New("payload is not valid UTF-8")
	ErrBatchTooLarge = errors.New("too many pin writes in one batch")
)

// PinWrite is one commanded pin state.
type PinWrite struct {
	PinNum uint8 `json:"pin_num"`
	State  uint8 `json:"state"`
}

// PinRequest is a batch of pin writes.
type PinRequest struct {
	PinWrites []PinWrite `json:"pin_writes"`
}

// DecodePinRequest parses a command payload. Characteristic writes may
// arrive padded to the fixed attribute size, so trailing NUL bytes are
// stripped before parsing. A payload that is not UTF-8, not valid JSON,
// or over the batch limit yields an error and no partial result.
func DecodePinRequest(data []byte) (*PinRequest, error) {
	data = bytes.TrimRight(data, "\x00")
	if !utf8.Valid(data) {
		return nil, ErrNotUTF8
	}
	var req PinRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, err
	}
	if len(req.PinWrites) > MaxPinWrites {
		return nil, ErrBatchTooLarge
	}
	return &req, nil
}
