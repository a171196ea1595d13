package http

import (
	"net/http"
)

// AppHttpHandler is a handler that reports failures as errors; see
// errorHandlingAdapter.
type AppHttpHandler interface {
	Handle(w http.ResponseWriter, r *http.Request) error
}
