package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
)

// APIError represents a structured error response from the identity service.
// Django REST framework style bodies are decoded into Detail, NonFieldErrors
// and per-field validation messages; anything unparseable is kept raw in Body.
type APIError struct {
	// Status is the HTTP status code of the response.
	Status int

	// Detail is the server-supplied detail message, if any.
	Detail string

	// NonFieldErrors holds validation errors not tied to a single field.
	NonFieldErrors []string

	// Fields holds field-level validation errors in the order the fields
	// appeared in the response body.
	Fields []FieldErrors

	// Body is the raw response body.
	Body json.RawMessage
}

// FieldErrors holds the validation messages for a single input field.
type FieldErrors struct {
	Field    string
	Messages []string
}

func (e *APIError) Error() string {
	switch {
	case e.Detail != "":
		return fmt.Sprintf("api error %d: %s", e.Status, e.Detail)
	case len(e.NonFieldErrors) > 0:
		return fmt.Sprintf("api error %d: %s", e.Status, e.NonFieldErrors[0])
	default:
		return fmt.Sprintf("api error %d: %s", e.Status, http.StatusText(e.Status))
	}
}

// IsUnauthorized reports whether the error is an authorization failure.
func (e *APIError) IsUnauthorized() bool {
	return e.Status == http.StatusUnauthorized
}

// FieldMessages returns every field-level validation message flattened in the
// order the fields appeared in the response body.
func (e *APIError) FieldMessages() []string {
	var msgs []string
	for _, f := range e.Fields {
		msgs = append(msgs, f.Messages...)
	}
	return msgs
}

// parseAPIError builds an APIError from a non-2xx response body. The body is
// walked token by token so that field order is preserved; Go maps would
// scramble it and the order is user-visible in joined validation messages.
func parseAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{
		Status: status,
		Body:   json.RawMessage(body),
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	tok, err := dec.Token()
	if err != nil || tok != json.Delim('{') {
		return apiErr
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			break
		}
		key, ok := keyTok.(string)
		if !ok {
			break
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			break
		}

		switch key {
		case "detail":
			var detail string
			if json.Unmarshal(raw, &detail) == nil {
				apiErr.Detail = detail
			}
		case "non_field_errors":
			var msgs []string
			if json.Unmarshal(raw, &msgs) == nil {
				apiErr.NonFieldErrors = msgs
			}
		default:
			if msgs := stringMessages(raw); len(msgs) > 0 {
				apiErr.Fields = append(apiErr.Fields, FieldErrors{
					Field:    key,
					Messages: msgs,
				})
			}
		}
	}

	return apiErr
}

// stringMessages extracts human-readable messages from a field error value,
// which may be a single string or an array of strings. Nested objects and
// other shapes are ignored.
func stringMessages(raw json.RawMessage) []string {
	var single string
	if json.Unmarshal(raw, &single) == nil {
		return []string{single}
	}

	var many []string
	if json.Unmarshal(raw, &many) == nil {
		return many
	}

	return nil
}
