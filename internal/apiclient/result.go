package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strings"
)

type Kind int

const (
	Success Kind = iota
	AuthFailure
	ValidationFailure
	ServerError
	TransportFailure
)

func (k Kind) String() string {
	switch k {
	case Success:
		return "success"
	case AuthFailure:
		return "auth_failure"
	case ValidationFailure:
		return "validation_failure"
	case ServerError:
		return "server_error"
	case TransportFailure:
		return "transport_failure"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

var ErrNoJSONBody = errors.New("response has no JSON body")

// Result is the outcome of exactly one HTTP call.
type Result struct {
	Kind   Kind
	Status int

	// JSON is set only for Success responses with a JSON content type.
	JSON json.RawMessage
	// Body is the raw response text for every non-transport result.
	Body string
	// Message is the backend's explanation of a 400.
	Message string
	// Err is the cause of a TransportFailure.
	Err error
}

func (r Result) OK() bool {
	return r.Kind == Success
}

func (r Result) Decode(v interface{}) error {
	if len(r.JSON) == 0 {
		return ErrNoJSONBody
	}
	if err := json.Unmarshal(r.JSON, v); err != nil {
		return fmt.Errorf("decode %s response: %w", r.Kind, err)
	}
	return nil
}

func Transport(err error) Result {
	return Result{Kind: TransportFailure, Err: err}
}

// Classify maps an HTTP response to a Result. It is defined for every input.
func Classify(status int, contentType string, body []byte) Result {
	res := Result{Status: status, Body: string(body)}

	switch status {
	case http.StatusOK, http.StatusCreated, http.StatusAccepted:
		res.Kind = Success
		if isJSON(contentType) && json.Valid(body) {
			res.JSON = json.RawMessage(body)
		}
	case http.StatusUnauthorized, http.StatusForbidden:
		res.Kind = AuthFailure
	case http.StatusBadRequest:
		res.Kind = ValidationFailure
		res.Message = badRequestMessage(body)
	default:
		res.Kind = ServerError
	}

	return res
}

func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

// badRequestMessage reads the body as JSON regardless of content type; backends
// often send JSON errors as text/plain.
func badRequestMessage(body []byte) string {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil || payload == nil {
		return string(body)
	}

	raw, ok := payload["message"]
	if !ok {
		return "Bad Request"
	}

	var msg string
	if err := json.Unmarshal(raw, &msg); err != nil {
		return string(raw)
	}
	return msg
}
