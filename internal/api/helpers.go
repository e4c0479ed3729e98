package api

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"T9-Keypad/internal/service"
	"T9-Keypad/pkg/api/response"
)

const (
	digitsRequiredMessage = "Digits parameter is required"
	invalidDigitsMessage  = "Only digits are allowed in the input"
)

func inputTooLongMessage(maxLen int) string {
	return fmt.Sprintf("Input exceeds maximum length of %d digits", maxLen)
}

func mapServiceError(w http.ResponseWriter, err error, maxLen int) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, service.ErrDigitsRequired):
		response.Error(w, http.StatusBadRequest, digitsRequiredMessage)
	case errors.Is(err, service.ErrInputTooLong):
		response.Error(w, http.StatusBadRequest, inputTooLongMessage(maxLen))
	case errors.Is(err, service.ErrInvalidDigits):
		response.Error(w, http.StatusBadRequest, invalidDigitsMessage)
	default:
		response.Error(w, http.StatusInternalServerError, response.ServerErrorMessage)
	}
	return true
}

// spaHandler serves files from dir and falls back to index.html for paths
// that do not name an existing file, so client-side routes resolve.
func spaHandler(dir string) http.HandlerFunc {
	fs := http.FileServer(http.Dir(dir))
	index := filepath.Join(dir, "index.html")

	return func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") {
			response.Error(w, http.StatusNotFound, "not found")
			return
		}

		name := filepath.Join(dir, filepath.FromSlash(filepath.Clean("/"+r.URL.Path)))
		if info, err := os.Stat(name); err == nil && !info.IsDir() {
			fs.ServeHTTP(w, r)
			return
		}
		if _, err := os.Stat(index); err != nil {
			response.Error(w, http.StatusNotFound, "not found")
			return
		}
		http.ServeFile(w, r, index)
	}
}
