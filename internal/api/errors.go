package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
)

// FieldError is one entry of a server failure envelope.
type FieldError struct {
	Field   string
	Message string
}

// HTTPError is a non-2xx answer from the server.
type HTTPError struct {
	StatusCode int
	Fields     []FieldError // Envelope entries in document order.
	Message    string       // Raw body when it was not an envelope.
}

func (e *HTTPError) Error() string {
	if msgs := e.Messages(); len(msgs) > 0 {
		return strings.Join(msgs, "; ")
	}
	return http.StatusText(e.StatusCode)
}

// Messages flattens the envelope into human-readable strings, keeping the
// order the server sent them in.
func (e *HTTPError) Messages() []string {
	if len(e.Fields) > 0 {
		msgs := make([]string, 0, len(e.Fields))
		for _, f := range e.Fields {
			msgs = append(msgs, f.Message)
		}
		return msgs
	}
	if e.Message != "" {
		return []string{e.Message}
	}
	return nil
}

// IsUnauthorized reports whether err means the session is no longer valid.
func IsUnauthorized(err error) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusUnauthorized
}

func newHTTPError(status int, body []byte) *HTTPError {
	httpErr := &HTTPError{StatusCode: status}
	if fields, ok := parseEnvelope(body); ok {
		httpErr.Fields = fields
		return httpErr
	}
	httpErr.Message = strings.TrimSpace(string(body))
	return httpErr
}

// parseEnvelope walks a {field: message} object. Non-string values are kept
// as their raw JSON. ok is false when body is not a JSON object.
func parseEnvelope(body []byte) (fields []FieldError, ok bool) {
	if !gjson.ValidBytes(body) {
		return nil, false
	}
	result := gjson.ParseBytes(body)
	if !result.IsObject() {
		return nil, false
	}

	result.ForEach(func(key, value gjson.Result) bool {
		msg := value.Raw
		if value.Type == gjson.String {
			msg = value.Str
		}
		fields = append(fields, FieldError{Field: key.Str, Message: msg})
		return true
	})
	return fields, true
}
