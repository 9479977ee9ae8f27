package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"sort"
	"strings"
)

// Error is a backend-rejected request: the HTTP status plus whatever detail
// the backend attached. Validation failures carry field-level messages in
// Fields; other rejections usually carry only Detail.
type Error struct {
	StatusCode int
	Detail     string
	Fields     map[string][]string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend rejected request (%d): %s", e.StatusCode, e.Detail)
	}
	if len(e.Fields) > 0 {
		names := make([]string, 0, len(e.Fields))
		for name := range e.Fields {
			names = append(names, name)
		}
		sort.Strings(names)
		return fmt.Sprintf("backend rejected request (%d): invalid fields: %s",
			e.StatusCode, strings.Join(names, ", "))
	}
	return fmt.Sprintf("backend rejected request (%d)", e.StatusCode)
}

// decodeError turns a >=400 response into an *Error. The backend's error
// bodies come in two shapes: {"detail": "..."} for auth/permission errors
// and {"field": ["msg", ...]} for validation errors. Anything undecodable
// still produces an *Error with the status code.
func decodeError(resp *http.Response) error {
	apiErr := &Error{StatusCode: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil || len(body) == 0 {
		return apiErr
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return apiErr
	}

	for key, value := range raw {
		if key == "detail" {
			_ = json.Unmarshal(value, &apiErr.Detail)
			continue
		}

		var messages []string
		if err := json.Unmarshal(value, &messages); err != nil {
			var single string
			if err := json.Unmarshal(value, &single); err != nil {
				continue
			}
			messages = []string{single}
		}
		if apiErr.Fields == nil {
			apiErr.Fields = make(map[string][]string)
		}
		apiErr.Fields[key] = messages
	}

	return apiErr
}

// IsAuthError reports whether err is a backend authorization rejection
// (401 or 403).
func IsAuthError(err error) bool {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden
}

// IsValidationError reports whether err carries field-level validation
// detail.
func IsValidationError(err error) bool {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == http.StatusBadRequest && len(apiErr.Fields) > 0
}

// IsNotFound reports whether err is a 404.
func IsNotFound(err error) bool {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == http.StatusNotFound
}

// IsNetworkError reports whether err is a transport-level failure (no
// connectivity, DNS, timeout) rather than a backend rejection.
func IsNetworkError(err error) bool {
	if err == nil {
		return false
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return false
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
