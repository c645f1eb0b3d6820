package api

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Error is a non-2xx backend response. The backend speaks three error
// dialects: {"detail": "..."} for framework-level failures, a map of
// field-name to message lists for validation failures, and {"error": "..."}
// for business-rule rejections ("already voted", "nomination window
// closed") that are surfaced to the user verbatim.
type Error struct {
	Status  int
	Message string
	// Fields holds per-field validation messages when present.
	Fields map[string][]string
	// BusinessRule marks messages from the {"error": ...} dialect.
	BusinessRule bool
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend returned %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("backend returned %d", e.Status)
}

// IsAuthError reports whether the error is an authentication failure that
// survived the transparent refresh flow.
func (e *Error) IsAuthError() bool {
	return e.Status == http.StatusUnauthorized
}

// IsBusinessRule reports whether the backend rejected the request on a
// domain rule rather than a transport or validation problem. These
// messages are shown to the user verbatim.
func (e *Error) IsBusinessRule() bool {
	return e.BusinessRule
}

// decodeError builds an Error from a non-2xx response body. It never
// fails: an unparseable body degrades to a generic message.
func decodeError(status int, body []byte) *Error {
	apiErr := &Error{Status: status, Message: genericMessage(status)}
	if len(body) == 0 {
		return apiErr
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return apiErr
	}

	if detail, ok := raw["detail"]; ok {
		var msg string
		if json.Unmarshal(detail, &msg) == nil && msg != "" {
			apiErr.Message = msg
			return apiErr
		}
	}

	if ruleMsg, ok := raw["error"]; ok {
		var msg string
		if json.Unmarshal(ruleMsg, &msg) == nil && msg != "" {
			apiErr.Message = msg
			apiErr.BusinessRule = true
			return apiErr
		}
	}

	// Field-error map: take the first available message for display, keep
	// the rest for callers that render per-field feedback.
	fields := map[string][]string{}
	for name, val := range raw {
		var list []string
		if json.Unmarshal(val, &list) == nil && len(list) > 0 {
			fields[name] = list
			continue
		}
		var single string
		if json.Unmarshal(val, &single) == nil && single != "" {
			fields[name] = []string{single}
		}
	}
	if len(fields) > 0 {
		apiErr.Fields = fields
		apiErr.Message = firstFieldMessage(fields)
	}
	return apiErr
}

// firstFieldMessage picks a deterministic first message: the lowest field
// name alphabetically, first entry.
func firstFieldMessage(fields map[string][]string) string {
	var first string
	for name := range fields {
		if first == "" || name < first {
			first = name
		}
	}
	return fields[first][0]
}

func genericMessage(status int) string {
	return fmt.Sprintf("unexpected response (%s)", http.StatusText(status))
}
