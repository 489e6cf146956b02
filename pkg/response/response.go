package response

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	apperrors "github.com/segyhp/miniapps-backend/pkg/errors"
)

// Envelope is the uniform response shape shared by every handler.
type Envelope struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data,omitempty"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
	Errors     []string    `json:"errors,omitempty"`
}

// JSON sends a success envelope with the given status code.
func JSON(w http.ResponseWriter, statusCode int, data interface{}, message string) {
	envelope := Envelope{
		StatusCode: statusCode,
		Data:       data,
		Message:    message,
		Success:    statusCode >= 200 && statusCode < 300,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(envelope); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// Success sends a 200 envelope.
func Success(w http.ResponseWriter, data interface{}, message string) {
	JSON(w, http.StatusOK, data, message)
}

// Created sends a 201 envelope.
func Created(w http.ResponseWriter, data interface{}, message string) {
	JSON(w, http.StatusCreated, data, message)
}

// Error sends a failure envelope. The status code and message come from the
// normalized APIError; the wrapped cause, if any, lands in errors.
func Error(w http.ResponseWriter, err error) {
	apiErr := apperrors.From(err)

	envelope := Envelope{
		StatusCode: apiErr.Status,
		Message:    apiErr.Message,
		Success:    false,
	}
	if apiErr.Err != nil {
		envelope.Errors = []string{apiErr.Err.Error()}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.Status)

	if encodeErr := json.NewEncoder(w).Encode(envelope); encodeErr != nil {
		log.Printf("Error encoding error response: %v", encodeErr)
	}
}

// Unauthorized sends a 401 failure envelope. Used by the auth middleware,
// which runs before the error taxonomy applies.
func Unauthorized(w http.ResponseWriter, message string) {
	envelope := Envelope{
		StatusCode: http.StatusUnauthorized,
		Message:    message,
		Success:    false,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)

	if err := json.NewEncoder(w).Encode(envelope); err != nil {
		log.Printf("Error encoding error response: %v", err)
	}
}

// LoggingMiddleware logs HTTP requests
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		recorder := &responseRecorder{ResponseWriter: w, statusCode: 200}

		next.ServeHTTP(recorder, r)

		duration := time.Since(start)
		log.Printf("%s %s %d %s", r.Method, r.URL.Path, recorder.statusCode, duration)
	})
}

type responseRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (rec *responseRecorder) WriteHeader(statusCode int) {
	rec.statusCode = statusCode
	rec.ResponseWriter.WriteHeader(statusCode)
}
