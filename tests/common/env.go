// Package common provides shared test infrastructure
package common

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/foliotrack/folio/internal/app"
	"github.com/foliotrack/folio/internal/server"
)

// Env is an isolated end-to-end environment: a real application stack
// (BadgerHold storage on a temp directory, builtin reference data, the full
// middleware chain) behind an httptest server. Each Env owns its own data
// directory, so tests never share state.
type Env struct {
	t          *testing.T
	App        *app.App
	Server     *httptest.Server
	DataDir    string
	configPath string
	mutate     func(*app.App)
}

// NewEnv creates an environment with test defaults: logging disabled and a
// fast snapshot autosave window so cached-overview tests settle quickly.
func NewEnv(t *testing.T) *Env {
	return NewEnvWith(t, nil)
}

// NewEnvWith creates an environment and applies mutate to the app after
// initialization but before the HTTP stack is built, so config changes
// (rate limits, upload caps) are seen by the middleware chain.
func NewEnvWith(t *testing.T, mutate func(*app.App)) *Env {
	t.Helper()

	baseDir := t.TempDir()
	dataDir := filepath.Join(baseDir, "data")
	configPath := filepath.Join(baseDir, "folio.toml")

	// Storage path must be absolute: the app resolves relative paths
	// against the binary directory, not the test working directory.
	doc := fmt.Sprintf(`environment = "test"

[storage]
path = %q

[snapshot]
quiet_window = "50ms"
max_wait = "250ms"

[logging]
level = "disabled"
`, dataDir)
	if err := os.WriteFile(configPath, []byte(doc), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	env := &Env{
		t:          t,
		DataDir:    dataDir,
		configPath: configPath,
		mutate:     mutate,
	}
	env.start()
	return env
}

func (e *Env) start() {
	e.t.Helper()

	a, err := app.NewApp(e.configPath)
	if err != nil {
		e.t.Fatalf("Failed to initialize app: %v", err)
	}
	if e.mutate != nil {
		e.mutate(a)
	}

	e.App = a
	e.Server = httptest.NewServer(server.NewServer(a).Handler())
}

// Restart tears the stack down and brings it back up over the same data
// directory, the way a process restart would.
func (e *Env) Restart() {
	e.t.Helper()
	e.Server.Close()
	e.App.Close()
	e.start()
}

// Cleanup shuts down the HTTP server and the application stack.
func (e *Env) Cleanup() {
	if e == nil {
		return
	}
	e.Server.Close()
	e.App.Close()
}

// HTTPGet issues a GET request against the environment's server.
func (e *Env) HTTPGet(path string) (*http.Response, error) {
	return http.Get(e.Server.URL + path)
}

// HTTPPost issues a POST request with the given body.
func (e *Env) HTTPPost(path, contentType string, body io.Reader) (*http.Response, error) {
	return http.Post(e.Server.URL+path, contentType, body)
}

// HTTPDelete issues a DELETE request.
func (e *Env) HTTPDelete(path string) (*http.Response, error) {
	req, err := http.NewRequest(http.MethodDelete, e.Server.URL+path, nil)
	if err != nil {
		return nil, err
	}
	return http.DefaultClient.Do(req)
}

// ImportCSV posts a raw CSV document to the import endpoint and returns the
// status code and decoded response. An empty mode uses the server default.
func (e *Env) ImportCSV(doc, mode string) (int, map[string]interface{}) {
	e.t.Helper()

	path := "/api/trades/import"
	if mode != "" {
		path += "?mode=" + mode
	}
	resp, err := e.HTTPPost(path, "text/csv", strings.NewReader(doc))
	if err != nil {
		e.t.Fatalf("Import request failed: %v", err)
	}
	defer resp.Body.Close()

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		e.t.Fatalf("Failed to decode import response: %v", err)
	}
	return resp.StatusCode, result
}
