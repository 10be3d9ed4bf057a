package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/forgo/holocron/internal/model"
)

// maxBodyBytes caps request bodies
const maxBodyBytes = 1 << 20

// MessageResponse is the body of mutations that have nothing else to return
type MessageResponse struct {
	Message string `json:"message"`
}

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// WriteError writes an API error response
func WriteError(w http.ResponseWriter, err *model.APIError) {
	err.WriteJSON(w)
}

// WriteMessage writes a {"message": ...} response
func WriteMessage(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, MessageResponse{Message: message})
}

// DecodeJSON decodes a JSON request body into the given struct
func DecodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		return err
	}
	return nil
}

// pathID parses a positive integer path parameter
func pathID(r *http.Request, name string) (int64, *model.APIError) {
	raw := r.PathValue(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, model.NewValidationError([]model.FieldError{
			{Field: name, Message: "must be a positive integer"},
		})
	}
	return id, nil
}

// pathKind parses the {kind} path parameter
func pathKind(r *http.Request) (model.EntityKind, *model.APIError) {
	kind, err := model.ParseEntityKind(r.PathValue("kind"))
	if err != nil {
		return "", model.NewValidationError([]model.FieldError{
			{Field: "kind", Message: "must be one of planet, character, vehicle"},
		})
	}
	return kind, nil
}
