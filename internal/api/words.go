package api

import (
	"net/http"

	"T9-Keypad/internal/service"
	"T9-Keypad/pkg/api/response"
)

// MatchResponse is the payload of a successful lookup.
type MatchResponse struct {
	Digits   string   `json:"digits" example:"4663"`
	IsStrict bool     `json:"isStrict" example:"false"`
	Words    []string `json:"words"`
}

type wordMatcher interface {
	Match(raw string) (service.MatchResult, error)
	MaxInputLength() int
}

type WordsHandler struct {
	words wordMatcher
}

func NewWordsHandler(words wordMatcher) *WordsHandler {
	return &WordsHandler{words: words}
}

// Match godoc
// @Summary      Match keypad digits to words
// @Description  Returns dictionary words whose keypad sequence starts with the given digits. A trailing 0 requests exact-length matches only.
// @Tags         words
// @Produce      json
// @Produce      application/msgpack
// @Param        digits  query     string  true  "Digits 2-9, optionally followed by 0"
// @Success      200     {object}  MatchResponse
// @Failure      400     {object}  response.ErrorResponse
// @Failure      429     {object}  response.ErrorResponse
// @Router       /api/words/match [get]
func (h *WordsHandler) Match(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if !q.Has("digits") {
		response.Error(w, http.StatusBadRequest, digitsRequiredMessage)
		return
	}

	res, err := h.words.Match(q.Get("digits"))
	if mapServiceError(w, err, h.words.MaxInputLength()) {
		return
	}

	response.Negotiate(w, r, http.StatusOK, MatchResponse{
		Digits:   res.Digits,
		IsStrict: res.Strict,
		Words:    res.Words,
	})
}
