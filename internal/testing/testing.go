// package testing contains shared testing utilities
package testing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"testing"
)

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// ScriptedTransport serves one canned response per request, in order, and
// records every request it sees so tests can assert call counts and ordering.
type ScriptedTransport struct {
	mu        sync.Mutex
	responses []*http.Response
	Requests  []*http.Request
}

func NewScriptedTransport(responses ...*http.Response) *ScriptedTransport {
	return &ScriptedTransport{responses: responses}
}

func (s *ScriptedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Requests = append(s.Requests, req)
	if len(s.responses) == 0 {
		return nil, fmt.Errorf("unexpected request: %s %s", req.Method, req.URL.Path)
	}

	resp := s.responses[0]
	s.responses = s.responses[1:]
	return resp, nil
}

// Calls returns the number of requests the transport has served.
func (s *ScriptedTransport) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Requests)
}

// JSONResponse builds an *http.Response with a JSON body for transport doubles.
func JSONResponse(status int, body any) *http.Response {
	data, err := json.Marshal(body)
	if err != nil {
		panic(fmt.Sprintf("failed to marshal test response: %v", err))
	}
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(bytes.NewReader(data)),
	}
}

// TextResponse builds an *http.Response with a raw text body.
func TextResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{},
		Body:       io.NopCloser(bytes.NewReader([]byte(body))),
	}
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, fmt.Errorf("write failed")
}

func MustMarshal(t *testing.T, v any) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}
	return data
}
