package httpapi

import (
	"encoding/json"
	"net/http"
)

// errorBody is the failure envelope of the register/login endpoints.
type errorBody struct {
	Error string `json:"error"`
}

// messageBody is the failure envelope of every other endpoint. The two
// envelopes differ on purpose; browser clients of the original API key off
// the field name.
type messageBody struct {
	Message string `json:"message"`
}

// tokenBody is the success envelope of register and login.
type tokenBody struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, messageBody{Message: msg})
}
