package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"infinium/internal/model"

	"github.com/rs/zerolog"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeData writes a successful envelope.
func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, model.Envelope{Success: true, Data: data})
}

// writeError writes a failed envelope with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string, logger zerolog.Logger) {
	logger.Error().Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, model.Envelope{Success: false, Error: message})
}

// writeServiceError maps err to a status code. Domain errors expose their own
// message, anything else is reported as fallback.
func writeServiceError(w http.ResponseWriter, err error, fallback string, logger zerolog.Logger) {
	de, ok := model.AsDomainError(err)
	if !ok {
		logger.Error().Err(err).Int("status", http.StatusInternalServerError).Msg("handler error")
		writeJSON(w, http.StatusInternalServerError, model.Envelope{Success: false, Error: fallback})
		return
	}

	status := statusForCode(de.Code)
	env := model.Envelope{Success: false, Error: de.Message}
	if status >= http.StatusInternalServerError {
		env.Message = err.Error()
		logger.Error().Err(err).Str("code", de.Code).Int("status", status).Msg("handler error")
	} else {
		logger.Warn().Str("code", de.Code).Int("status", status).Msg(de.Message)
	}
	writeJSON(w, status, env)
}

func statusForCode(code string) int {
	switch code {
	case model.ErrCodeUserNotFound, model.ErrCodeNotFound:
		return http.StatusNotFound
	case model.ErrCodeUnauthorised:
		return http.StatusUnauthorized
	case model.ErrCodeAnalysisFailed:
		return http.StatusBadGateway
	case model.ErrCodeInternalError:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

// decodeJSON reads the request body into dst. An empty body leaves dst
// untouched when allowEmpty is set.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any, allowEmpty bool, logger zerolog.Logger) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || (allowEmpty && errors.Is(err, io.EOF)) {
		return true
	}

	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		writeError(w, http.StatusRequestEntityTooLarge, "Request body too large", logger)
		return false
	}
	writeError(w, http.StatusBadRequest, "Invalid JSON body", logger)
	return false
}

// queryInt parses an optional integer query parameter.
func queryInt(r *http.Request, key string, def int) (int, bool) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func methodAllowed(w http.ResponseWriter, r *http.Request, method string, logger zerolog.Logger) bool {
	if r.Method != method {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", logger)
		return false
	}
	return true
}
