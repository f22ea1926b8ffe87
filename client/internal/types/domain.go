package types

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ------------------------------
// Response payload
// ------------------------------

// Result is the parsed body of a response the client did not turn into an
// error. Value holds the decoded JSON document when JSON is true; otherwise
// the body is only available as text.
type Result struct {
	StatusCode int
	Header     http.Header
	Raw        []byte
	JSON       bool
	Value      any
}

// Text returns the body as a string, whatever its content type.
func (r *Result) Text() string {
	if r == nil {
		return ""
	}
	return string(r.Raw)
}

// Payload returns Value for JSON bodies and the text body otherwise. This is
// the value error kinds carry as context.
func (r *Result) Payload() any {
	if r == nil {
		return nil
	}
	if r.JSON {
		return r.Value
	}
	return r.Text()
}

// Decode unmarshals the raw body into v. It fails for bodies that were not
// decoded as JSON.
func (r *Result) Decode(v any) error {
	if r == nil {
		return fmt.Errorf("decode: empty result")
	}
	if !r.JSON {
		return fmt.Errorf("decode: body is not JSON (status %d)", r.StatusCode)
	}
	return json.Unmarshal(r.Raw, v)
}

// Object returns the decoded value as a JSON object when it is one.
func (r *Result) Object() (map[string]any, bool) {
	if r == nil || !r.JSON {
		return nil, false
	}
	m, ok := r.Value.(map[string]any)
	return m, ok
}

// ------------------------------
// OAuth
// ------------------------------

// Token is the typed view of a successful authorization-code exchange.
type Token struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type,omitempty"`
	ExpiresIn    int    `json:"expires_in,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
	Scope        string `json:"scope,omitempty"`
}
