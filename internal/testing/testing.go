// package testing contains shared testing utilities
package testing

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"
)

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

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

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

// FakeOMDb is an in-process stand-in for the OMDb API.
//
// Titles map (case-insensitively) to the identifiers a search returns; Movies holds the detail records.
type FakeOMDb struct {
	Server *httptest.Server
	APIKey string

	mu       sync.Mutex
	titles   map[string][]string
	movies   map[string]map[string]string
	failIDs  map[string]bool
	delays   map[string]time.Duration
	searches int
	lookups  int
}

// NewFakeOMDb starts a fake OMDb server that is closed when the test ends.
func NewFakeOMDb(t *testing.T) *FakeOMDb {
	t.Helper()

	f := &FakeOMDb{
		APIKey:  "test-key",
		titles:  map[string][]string{},
		movies:  map[string]map[string]string{},
		failIDs: map[string]bool{},
		delays:  map[string]time.Duration{},
	}
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.Server.Close)
	return f
}

// URL returns the base URL of the fake server.
func (f *FakeOMDb) URL() string {
	return f.Server.URL + "/"
}

// AddMovie registers a detail record. The record must carry an "imdbID" key.
func (f *FakeOMDb) AddMovie(movie map[string]string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.movies[movie["imdbID"]] = movie
}

// AddSearch makes a search for title return ids, in order.
func (f *FakeOMDb) AddSearch(title string, ids ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.titles[strings.ToLower(title)] = ids
}

// FailLookup makes detail lookups for id answer HTTP 500.
func (f *FakeOMDb) FailLookup(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failIDs[id] = true
}

// DelayLookup holds detail lookups for id for d before answering.
func (f *FakeOMDb) DelayLookup(id string, d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.delays[id] = d
}

// Counts returns how many search and lookup requests were served.
func (f *FakeOMDb) Counts() (searches, lookups int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.searches, f.lookups
}

func (f *FakeOMDb) serve(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	w.Header().Set("Content-Type", "application/json")

	if q.Get("apikey") != f.APIKey {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"Response": "False", "Error": "Invalid API key!"})
		return
	}

	if title := q.Get("s"); title != "" {
		f.serveSearch(w, title)
		return
	}

	if id := q.Get("i"); id != "" {
		f.serveLookup(w, id)
		return
	}

	json.NewEncoder(w).Encode(map[string]string{"Response": "False", "Error": "Incorrect IMDb ID."})
}

func (f *FakeOMDb) serveSearch(w http.ResponseWriter, title string) {
	f.mu.Lock()
	f.searches++
	ids := f.titles[strings.ToLower(title)]
	summaries := make([]map[string]string, 0, len(ids))
	for _, id := range ids {
		m := f.movies[id]
		summaries = append(summaries, map[string]string{
			"Title":  m["Title"],
			"Year":   m["Year"],
			"imdbID": id,
			"Type":   "movie",
			"Poster": m["Poster"],
		})
	}
	f.mu.Unlock()

	if len(summaries) == 0 {
		json.NewEncoder(w).Encode(map[string]string{"Response": "False", "Error": "Movie not found!"})
		return
	}

	json.NewEncoder(w).Encode(map[string]any{
		"Search":       summaries,
		"totalResults": strconv.Itoa(len(summaries)),
		"Response":     "True",
	})
}

func (f *FakeOMDb) serveLookup(w http.ResponseWriter, id string) {
	f.mu.Lock()
	f.lookups++
	movie, ok := f.movies[id]
	fail := f.failIDs[id]
	delay := f.delays[id]
	f.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}

	if fail {
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, `{"Response":"False","Error":"upstream exploded"}`)
		return
	}

	if !ok {
		json.NewEncoder(w).Encode(map[string]string{"Response": "False", "Error": "Incorrect IMDb ID."})
		return
	}

	body := map[string]string{"Response": "True"}
	for k, v := range movie {
		body[k] = v
	}
	json.NewEncoder(w).Encode(body)
}
