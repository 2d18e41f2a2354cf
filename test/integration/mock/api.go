// Package mock holds the fakes the integration suite runs the API against.
package mock

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
)

// RecordedRequest is a request received by ApiMock.
type RecordedRequest struct {
	Body   map[string]any
	Header http.Header
	Query  url.Values
}

type stubResponse struct {
	status int
	body   any
}

// ApiMock is a recording HTTP server standing in for third-party APIs such as
// Resend. Responses are stubbed per method and path: one-shot responses are
// served first, in order, then the default one. Unstubbed routes answer 404.
type ApiMock struct {
	mu       sync.Mutex
	server   *httptest.Server
	requests map[string][]RecordedRequest
	once     map[string][]stubResponse
	defaults map[string]stubResponse
}

// NewApiServer starts a mock server on a random local port.
func NewApiServer() *ApiMock {
	a := &ApiMock{}
	a.Reset()
	a.server = httptest.NewServer(http.HandlerFunc(a.serve))
	return a
}

func route(method, path string) string {
	return method + " " + path
}

func (a *ApiMock) serve(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)
	body := map[string]any{}
	_ = json.Unmarshal(raw, &body)

	a.mu.Lock()
	key := route(r.Method, r.URL.Path)
	a.requests[key] = append(a.requests[key], RecordedRequest{
		Body:   body,
		Header: r.Header.Clone(),
		Query:  r.URL.Query(),
	})

	response, ok := a.defaults[key]
	if queued := a.once[key]; len(queued) > 0 {
		response, ok = queued[0], true
		a.once[key] = queued[1:]
	}
	a.mu.Unlock()

	if !ok {
		response = stubResponse{status: http.StatusNotFound, body: map[string]any{"message": "no stub for " + key}}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(response.status)
	_ = json.NewEncoder(w).Encode(response.body)
}

// URL returns the base URL of the server.
func (a *ApiMock) URL() string {
	return a.server.URL
}

// Close shuts the server down.
func (a *ApiMock) Close() {
	a.server.Close()
}

// Reset forgets every stub and recorded request.
func (a *ApiMock) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.requests = map[string][]RecordedRequest{}
	a.once = map[string][]stubResponse{}
	a.defaults = map[string]stubResponse{}
}

// Stub sets the response served once all one-shot responses are used.
func (a *ApiMock) Stub(method, path string, status int, body any) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.defaults[route(method, path)] = stubResponse{status: status, body: body}
}

// StubOnce queues a response served to a single request.
func (a *ApiMock) StubOnce(method, path string, status int, body any) {
	a.mu.Lock()
	defer a.mu.Unlock()
	key := route(method, path)
	a.once[key] = append(a.once[key], stubResponse{status: status, body: body})
}

// Requests returns the requests received so far for method and path.
func (a *ApiMock) Requests(method, path string) []RecordedRequest {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]RecordedRequest(nil), a.requests[route(method, path)]...)
}
