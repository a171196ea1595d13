package http

import (
	"encoding/json"
	"net/http"

	"emontx-aggregator/internal/shared/loggers"
	"emontx-aggregator/internal/shared/svcerrors"

	"github.com/rs/zerolog"
)

// ErrorResponse is the JSON body of every non-2xx status response.
type ErrorResponse struct {
	RequestID        string `json:"requestId"`
	ErrorCategory    string `json:"errorCategory"`
	ErrorCode        string `json:"errorCode"`
	ErrorDescription string `json:"errorDescription"`
}

// errorHandlingAdapter turns the error of a status handler into an
// ErrorResponse. Errors that are not service errors become SYS_9001.
func errorHandlingAdapter(httpHandler AppHttpHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := httpHandler.Handle(w, r)
		if err == nil {
			return
		}

		svcErr, ok := svcerrors.AsServiceError(err)
		if !ok {
			svcErr = svcerrors.NewInternalErrorUndefined(err)
		}

		logServiceError(r, svcErr)
		writeErrorResponse(w, r, svcErr)
	}
}

// errorLogLevel keeps "no snapshot yet" at debug: consumers poll before the
// first line arrives.
func errorLogLevel(svcErr *svcerrors.ServiceError) zerolog.Level {
	switch {
	case svcErr.IsInternalError():
		return zerolog.ErrorLevel
	case svcErr.IsNotFound():
		return zerolog.DebugLevel
	default:
		return zerolog.InfoLevel
	}
}

func logServiceError(r *http.Request, svcErr *svcerrors.ServiceError) {
	event := loggers.Ctx(r.Context()).WithLevel(errorLogLevel(svcErr)).
		Str(loggers.FieldErrorCode, svcErr.Code).
		Str("errorCategory", svcErr.Category).
		Str("path", r.URL.Path).
		Int("httpStatusCode", svcErr.HttpStatusCode)
	if svcErr.Cause != nil {
		event = event.Err(svcErr.Cause)
	}
	event.Msg(svcErr.Message)
}

func writeErrorResponse(w http.ResponseWriter, r *http.Request, svcErr *svcerrors.ServiceError) {
	if appWriter, ok := w.(*appResponseWriter); ok {
		appWriter.SetServiceError(svcErr)
	}

	w.Header().Set(headerContentType, "application/json")
	w.WriteHeader(svcErr.HttpStatusCode)

	_ = json.NewEncoder(w).Encode(ErrorResponse{
		RequestID:        requestID(r),
		ErrorCategory:    svcErr.Category,
		ErrorCode:        svcErr.Code,
		ErrorDescription: svcErr.Message,
	})
}
