package response

import (
	"encoding/json"
	"mime"
	"net/http"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

const (
	ContentTypeJSON    = "application/json; charset=utf-8"
	ContentTypeMsgPack = "application/msgpack"

	ServerErrorMessage = "An error occurred processing your request"
)

type ErrorResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", ContentTypeJSON)
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

// MsgPack writes payload as MessagePack, reusing the json struct tags so
// both encodings share field names.
func MsgPack(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", ContentTypeMsgPack)
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	enc := msgpack.NewEncoder(w)
	enc.SetCustomStructTag("json")
	_ = enc.Encode(payload)
}

// Negotiate writes payload as MessagePack when the client accepts it and as
// JSON otherwise.
func Negotiate(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Add("Vary", "Accept")
	if WantsMsgPack(r) {
		MsgPack(w, status, payload)
		return
	}
	JSON(w, status, payload)
}

func WantsMsgPack(r *http.Request) bool {
	for _, part := range strings.Split(r.Header.Get("Accept"), ",") {
		mt, _, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		if mt == ContentTypeMsgPack || mt == "application/x-msgpack" {
			return true
		}
	}
	return false
}

func Error(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, ErrorResponse{Status: "error", Error: msg})
}
