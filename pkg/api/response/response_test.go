package response

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vmihailenco/msgpack/v5"
)

type payload struct {
	Digits string   `json:"digits"`
	Words  []string `json:"words"`
}

func TestError(t *testing.T) {
	w := httptest.NewRecorder()
	Error(w, http.StatusBadRequest, "bad")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", w.Code)
	}
	if got := w.Body.String(); got != "{\"status\":\"error\",\"error\":\"bad\"}\n" {
		t.Fatalf("body=%q", got)
	}
	if ct := w.Header().Get("Content-Type"); ct != ContentTypeJSON {
		t.Fatalf("content-type=%q", ct)
	}
}

func TestNegotiateJSONByDefault(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	Negotiate(w, r, http.StatusOK, payload{Digits: "4", Words: []string{"go"}})

	if ct := w.Header().Get("Content-Type"); ct != ContentTypeJSON {
		t.Fatalf("content-type=%q", ct)
	}
}

func TestNegotiateMsgPack(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Accept", "text/html, application/msgpack;q=0.9")
	w := httptest.NewRecorder()
	Negotiate(w, r, http.StatusOK, payload{Digits: "4", Words: []string{"go"}})

	if ct := w.Header().Get("Content-Type"); ct != ContentTypeMsgPack {
		t.Fatalf("content-type=%q", ct)
	}
	var got map[string]any
	if err := msgpack.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got["digits"] != "4" {
		t.Fatalf("decoded=%v", got)
	}
}

func TestWantsMsgPack(t *testing.T) {
	tests := []struct {
		accept string
		want   bool
	}{
		{accept: "", want: false},
		{accept: "application/json", want: false},
		{accept: "application/x-msgpack", want: true},
		{accept: "*/*", want: false},
	}
	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Accept", tt.accept)
		if got := WantsMsgPack(r); got != tt.want {
			t.Fatalf("accept=%q got=%v want=%v", tt.accept, got, tt.want)
		}
	}
}
