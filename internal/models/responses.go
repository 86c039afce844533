package models

// Response is the JSON envelope every API endpoint answers with.
type Response struct {
	OK    bool        `json:"ok"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

// OKResponse wraps data in a successful envelope.
func OKResponse(data interface{}) Response {
	return Response{OK: true, Data: data}
}

// ErrResponse wraps an error message in a failed envelope.
func ErrResponse(msg string) Response {
	return Response{OK: false, Error: msg}
}

// NotSignedInError is the distinguished error string returned with a
// 401 whenever a route requires a session and none is present. Clients
// key on it, so it must not change.
const NotSignedInError = "Not signed in"
