package scraper

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

type fixtureResponse struct {
	status int
	body   string
}

// newFixtureServer serves canned responses by path, 404 for anything else.
func newFixtureServer(t *testing.T, routes map[string]fixtureResponse) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fr, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(fr.status)
		w.Write([]byte(fr.body))
	}))
}
