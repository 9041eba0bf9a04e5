package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
)

var ErrInvalidEntityID = fmt.Errorf("invalid entity id")
var ErrFieldNotFound = fmt.Errorf("field not found")
var ErrTypeMismatch = fmt.Errorf("type mismatch")
var ErrStorage = fmt.Errorf("storage error")
var ErrBadRequest = fmt.Errorf("bad request")
var ErrInternal = fmt.Errorf("internal error")
var ErrRequest = fmt.Errorf("request error")
var ErrBadResponse = fmt.Errorf("bad response")

type myError struct {
	msg    string
	target error
	cause  error
}

func (m myError) Error() string        { return m.msg }
func (m myError) Is(target error) bool { return target == m.target }
func (m myError) Unwrap() error        { return m.cause }

func NewInvalidEntityIDError(entityID string) error {
	return &myError{
		msg:    fmt.Sprintf("entity id %q must not begin with the reserved prefix", entityID),
		target: ErrInvalidEntityID,
	}
}

func NewFieldNotFoundError(field string) error {
	return &myError{
		msg:    fmt.Sprintf("unable to find patches for field %q", field),
		target: ErrFieldNotFound,
	}
}

func NewTypeMismatchError(reason string) error {
	return &myError{
		msg:    reason,
		target: ErrTypeMismatch,
	}
}

func NewBadRequestError(msg string) error {
	return &myError{
		msg:    msg,
		target: ErrBadRequest,
	}
}

// NewStorageError wraps a failure of the underlying log store. The cause
// stays reachable through errors.Unwrap.
func NewStorageError(op string, cause error) error {
	return &myError{
		msg:    fmt.Sprintf("%s: %s", op, cause.Error()),
		target: ErrStorage,
		cause:  cause,
	}
}

// ErrorTypeHeader carries the error kind alongside the {"error": ...} body so
// that clients can map a response back onto the sentinels in this package.
const ErrorTypeHeader string = "Eventity-Error-Type"

const (
	typeInvalidEntityID string = "InvalidEntityId"
	typeFieldNotFound   string = "FieldNotFound"
	typeTypeMismatch    string = "TypeMismatch"
	typeStorage         string = "StorageError"
	typeBadRequest      string = "BadRequest"
	typeInternal        string = "InternalError"
)

// ErrorResponse is the structured payload returned for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// WriteResponse reports err as {"error": <message>} using the status code
// that belongs to its kind.
func WriteResponse(w http.ResponseWriter, err error) {
	typ, code := classify(err)

	body, _ := json.Marshal(ErrorResponse{Error: err.Error()})

	w.Header().Add("Content-Type", "application/json")
	w.Header().Add(ErrorTypeHeader, typ)
	w.WriteHeader(code)
	w.Write(body)
}

func StatusCode(err error) int {
	_, code := classify(err)
	return code
}

func classify(err error) (string, int) {
	switch {
	case stderrors.Is(err, ErrInvalidEntityID):
		return typeInvalidEntityID, http.StatusBadRequest
	case stderrors.Is(err, ErrFieldNotFound):
		return typeFieldNotFound, http.StatusBadRequest
	case stderrors.Is(err, ErrTypeMismatch):
		return typeTypeMismatch, http.StatusBadRequest
	case stderrors.Is(err, ErrBadRequest):
		return typeBadRequest, http.StatusBadRequest
	case stderrors.Is(err, ErrStorage):
		return typeStorage, http.StatusInternalServerError
	}
	return typeInternal, http.StatusInternalServerError
}

// NewErrorFromResponse turns an error response received from an eventity
// service into an error matching one of the sentinels in this package.
func NewErrorFromResponse(code int, errorType string, body []byte) error {
	report := &ErrorResponse{}

	err := json.Unmarshal(body, report)
	if err != nil {
		return fmt.Errorf("failed to process error response (code %d): %s (%w)", code, err.Error(), ErrBadResponse)
	}

	switch errorType {
	case typeInvalidEntityID:
		return &myError{msg: report.Error, target: ErrInvalidEntityID}
	case typeFieldNotFound:
		return &myError{msg: report.Error, target: ErrFieldNotFound}
	case typeTypeMismatch:
		return &myError{msg: report.Error, target: ErrTypeMismatch}
	case typeStorage:
		return &myError{msg: report.Error, target: ErrStorage}
	case typeBadRequest:
		return &myError{msg: report.Error, target: ErrBadRequest}
	}

	if code >= http.StatusBadRequest && code < http.StatusInternalServerError {
		return &myError{msg: report.Error, target: ErrBadRequest}
	}

	return &myError{msg: report.Error, target: ErrInternal}
}
