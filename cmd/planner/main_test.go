package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/planner/internal/domain"
	"github.com/pkordes/planner/internal/remote/remotetest"
)

// setup points the CLI at a fresh fake API and a temp sqlite file.
func setup(t *testing.T) *remotetest.API {
	t.Helper()
	api, srv := remotetest.Start(t)
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("PLANNER_API_URL", srv.URL)
	t.Setenv("BINDING_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", filepath.Join(dir, "planner.db"))
	t.Setenv("DEVICE_ID", "cli-test")
	t.Setenv("LINK_SCHEME", "planner")
	return api
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCLI_createCurrentRemove(t *testing.T) {
	setup(t)

	out, err := run(t, "y\n", "create",
		"--destination", "Rome", "--from", "2025-03-10", "--to", "2025-03-15",
		"--invite", "ana@example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "Dates:       10 to 15 of March")
	assert.Contains(t, out, "Trip created: ")
	assert.Contains(t, out, "ana@example.com  planner://trip/")
	assert.Contains(t, out, "?participant=")

	// the binding survives across invocations in the sqlite file
	out, err = run(t, "", "current")
	require.NoError(t, err)
	assert.Contains(t, out, "Rome from the 10 to 15 of Mar.")

	_, err = run(t, "", "remove")
	require.NoError(t, err)

	out, err = run(t, "", "current")
	require.NoError(t, err)
	assert.Contains(t, out, "No trip on this device.")
}

func TestCLI_createDeclined(t *testing.T) {
	api := setup(t)

	out, err := run(t, "n\n", "create", "--destination", "Rome", "--from", "2025-03-10", "--to", "2025-03-15")

	require.NoError(t, err)
	assert.Contains(t, out, "Trip not created.")
	assert.Zero(t, api.Calls(remotetest.OpCreateTrip))
}

func TestCLI_createValidation(t *testing.T) {
	setup(t)

	_, err := run(t, "", "create", "--destination", "Rio", "--from", "2025-03-10", "--to", "2025-03-15", "--yes")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "destination must have at least 4 characters")
}

func TestCLI_openAndConfirm(t *testing.T) {
	api := setup(t)
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	tripID, pids := api.SeedTrip("Lisbon", start, start.AddDate(0, 0, 3), "ana@example.com")
	link := "planner://trip/" + tripID + "?participant=" + pids[0]

	out, err := run(t, "", "open", link)
	require.NoError(t, err)
	assert.Contains(t, out, "Lisbon from the 01 to 04 of Mar.")
	assert.Contains(t, out, "You are invited.")

	out, err = run(t, "", "confirm", link, "--name", "Ana", "--email", "ana@example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "Attendance confirmed")

	p, _ := api.Participant(pids[0])
	assert.True(t, p.IsConfirmed)

	out, err = run(t, "", "current")
	require.NoError(t, err)
	assert.Contains(t, out, "Lisbon")
}

func TestCLI_bind(t *testing.T) {
	api := setup(t)
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	tripID, _ := api.SeedTrip("Lisbon", start, start.AddDate(0, 0, 3))

	out, err := run(t, "", "bind", tripID)
	require.NoError(t, err)
	assert.Contains(t, out, "Bound to Lisbon from the 01 to 04 of Mar.")

	out, err = run(t, "", "current")
	require.NoError(t, err)
	assert.Contains(t, out, "planner://trip/"+tripID)
}

func TestCLI_bindUnknownTrip(t *testing.T) {
	setup(t)

	_, err := run(t, "", "bind", "missing")
	require.ErrorIs(t, err, domain.ErrNotFound)

	out, err := run(t, "", "current")
	require.NoError(t, err)
	assert.Contains(t, out, "No trip on this device.")
}

func TestCLI_confirmOwnerLink(t *testing.T) {
	setup(t)

	_, err := run(t, "", "confirm", "planner://trip/abc", "--name", "Ana", "--email", "ana@example.com")

	require.ErrorContains(t, err, "no participant")
}

func TestCLI_migrate(t *testing.T) {
	setup(t)

	out, err := run(t, "", "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "Migrations applied (sqlite)")

	t.Setenv("BINDING_DRIVER", "memory")
	out, err = run(t, "", "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing to migrate")
}

func TestRouter_middlewareChain(t *testing.T) {
	setup(t)
	a, err := newApp(t.Context(), io.Discard)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	h := router(a)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "http://localhost:8081")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://localhost:8081", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodPost, "/form/emails", strings.NewReader(`{"email":"a@b.com"}`))
	req.ContentLength = a.cfg.MaxBodyBytes + 1
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}
