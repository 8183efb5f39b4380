package main

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

// jsonField returns the raw JSON of dependencies[name] in a health response.
func jsonField(t *testing.T, rec *httptest.ResponseRecorder, name string) string {
	t.Helper()
	var resp struct {
		Dependencies map[string]json.RawMessage `json:"dependencies"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	raw, ok := resp.Dependencies[name]
	require.True(t, ok, "missing dependency %s", name)
	return string(raw)
}

// jsonNumber reads a top-level numeric field.
func jsonNumber(t *testing.T, rec *httptest.ResponseRecorder, name string) float64 {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	n, ok := resp[name].(float64)
	require.True(t, ok, "field %s is not a number", name)
	return n
}
