package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	clienterrors "github.com/gearplug/eventbrite-go/client/internal/errors"
	"github.com/gearplug/eventbrite-go/client/internal/types"
)

// Parse reads and closes resp.Body and applies the status dispatch:
//
//	200          payload
//	204          nil, nil
//	400/401/406  *errors.APIError carrying the payload
//	500          *errors.APIError without payload
//	anything     payload, returned as success
//
// The body is decoded as JSON only when Content-Type mentions
// application/json; an undecodable JSON body falls back to text. Numbers
// decode as json.Number so large integer ids stay exact.
func Parse(resp *http.Response) (*types.Result, error) {
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body (status %d): %w", resp.StatusCode, err)
	}

	res := &types.Result{StatusCode: resp.StatusCode, Header: resp.Header, Raw: raw}
	if strings.Contains(resp.Header.Get("Content-Type"), ContentTypeJSON) {
		if v, err := decodeJSON(raw); err == nil {
			res.JSON = true
			res.Value = v
		}
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return res, nil
	case http.StatusNoContent:
		return nil, nil
	}
	if apiErr := clienterrors.FromStatus(resp.StatusCode, res.Payload()); apiErr != nil {
		return nil, apiErr
	}
	// Unlisted status: handed back as a success-shaped result. Callers that
	// care inspect StatusCode.
	return res, nil
}

// decodeJSON decodes exactly one JSON value from raw, keeping numbers as
// json.Number.
func decodeJSON(raw []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("trailing data after JSON value")
	}
	return v, nil
}
