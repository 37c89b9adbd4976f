// HTTP pin bridge
// Stateless request handlers translating pin read/write requests into
// store access. The write policy matches the BLE command characteristic
// so both transports behave identically.
package web

import (
	"encoding/json"
	"io"
	"net/http"

	"pinlink/core"
	"pinlink/protocol"
)

// maxBodyBytes bounds a request body; pin batches are tiny.
const maxBodyBytes = 4096

// PinWriteResponse acknowledges a write batch. Unknown pins are
// silently ignored, so the acknowledgment is always success.
type PinWriteResponse struct {
	Success bool `json:"success"`
}

// PinReadRequest asks for the current state of a list of pins.
type PinReadRequest struct {
	PinReads []uint8 `json:"pin_reads"`
}

// PinReadItem is one pin's reported state. Unknown pins read as 0.
type PinReadItem struct {
	PinNum uint8 `json:"pin_num"`
	State  int32 `json:"state"`
}

// PinReadResponse answers a read request, one item per requested pin
// in request order.
type PinReadResponse struct {
	PinReads []PinReadItem `json:"pin_reads"`
	Success  bool          `json:"success"`
}

// Bridge serves the pin endpoints over one store instance. Handlers
// are pure functions of the store at the instant of the call; no
// session state is retained between requests.
type Bridge struct {
	store    *core.Store
	writable map[uint8]bool
}

// NewBridge creates a bridge. writable lists the pins remote writes
// may touch; reads may target any pin.
func NewBridge(store *core.Store, writable []uint8) *Bridge {
	allowed := make(map[uint8]bool, len(writable))
	for _, pin := range writable {
		allowed[pin] = true
	}
	return &Bridge{store: store, writable: allowed}
}

// Handler returns the bridge's route table.
func (b *Bridge) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /write-pins", b.handleWritePins)
	mux.HandleFunc("POST /read-pins", b.handleReadPins)
	return mux
}

func (b *Bridge) handleWritePins(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	req, err := protocol.DecodePinRequest(body)
	if err != nil {
		core.DebugPrintln("web: dropping pin command: " + err.Error())
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	for _, pw := range req.PinWrites {
		if !b.writable[pw.PinNum] {
			continue
		}
		b.store.Write(pw.PinNum, uint32(pw.State))
	}

	writeJSON(w, PinWriteResponse{Success: true})
}

func (b *Bridge) handleReadPins(w http.ResponseWriter, r *http.Request) {
	var req PinReadRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	items := make([]PinReadItem, 0, len(req.PinReads))
	for _, pin := range req.PinReads {
		items = append(items, PinReadItem{
			PinNum: pin,
			State:  int32(b.store.Read(pin)),
		})
	}

	writeJSON(w, PinReadResponse{PinReads: items, Success: true})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		core.DebugPrintln("web: encoding response: " + err.Error())
	}
}
