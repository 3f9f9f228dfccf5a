package requests

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-resty/resty/v2"
)

// ErrEmptyBody is returned by Result.Decode for responses without a body.
var ErrEmptyBody = errors.New("response body is empty")

// Result is the payload of a successful call.
type Result struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	// Data is the decoded JSON value when JSON is true, the body text otherwise.
	Data any
	JSON bool
}

// Decode unmarshals the JSON body into v.
func (r *Result) Decode(v any) error {
	if len(r.Body) == 0 {
		return ErrEmptyBody
	}
	return json.Unmarshal(r.Body, v)
}

// Text returns the body as a string.
func (r *Result) Text() string {
	return string(r.Body)
}

func newResult(status int, header http.Header, body []byte) *Result {
	data, isJSON := decodeContent(body, header.Get("Content-Type"))
	return &Result{
		StatusCode: status,
		Header:     header,
		Body:       body,
		Data:       data,
		JSON:       isJSON,
	}
}

// decodeContent decodes a JSON body. Anything that is not valid JSON under a
// JSON content type comes back as text.
func decodeContent(body []byte, contentType string) (any, bool) {
	if resty.IsJSONType(contentType) && len(body) > 0 {
		var v any
		if err := json.Unmarshal(body, &v); err == nil {
			return v, true
		}
	}
	return string(body), false
}

func firstValues(h http.Header) map[string]string {
	if h == nil {
		return nil
	}
	out := make(map[string]string, len(h))
	for k, v := range h {
		if len(v) > 0 {
			out[k] = v[0]
		}
	}
	return out
}
