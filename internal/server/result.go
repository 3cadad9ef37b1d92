package server

import "net/http"

// Response is the JSON envelope around every API payload.
type Response struct {
	Code    int    `json:"code"`
	Type    string `json:"type"`
	Message string `json:"message"`
	Result  any    `json:"result"`
}

const (
	CodeOK    = 2000
	CodeError = -1
)

func writeOK(w http.ResponseWriter, status int, result any) {
	writeJSON(w, status, Response{Code: CodeOK, Type: "success", Message: "ok", Result: result})
}

func writeFail(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, Response{Code: CodeError, Type: "error", Message: message})
}
