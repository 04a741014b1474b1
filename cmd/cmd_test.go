package cmd

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/fatih/color"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/misterclayt0n/lazaro-planner/internal/utils"
	"github.com/misterclayt0n/lazaro-planner/internal/workouts"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

// testEnv points the CLI at a fake server and a throwaway home directory.
func testEnv(t *testing.T, setup func(r chi.Router)) (home string) {
	t.Helper()
	r := chi.NewRouter()
	setup(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	home = t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("LAZARO_SERVER_URL", srv.URL+"/api")
	t.Setenv("LAZARO_RETRY_ATTEMPTS", "1")
	t.Setenv("LAZARO_DATABASE_URL", "")
	t.Setenv("TURSO_DATABASE_URL", "")
	t.Setenv("DEV_MODE", "")
	t.Setenv("LAZARO_TIMEZONE", "UTC")
	t.Setenv("LAZARO_LOG_LEVEL", "error")
	return home
}

func sessionFile(home string) *utils.SessionFile {
	return utils.NewSessionFile(filepath.Join(home, ".config", "lazaro"))
}

func storeToken(t *testing.T, home, token string) {
	t.Helper()
	require.NoError(t, sessionFile(home).SaveToken(token))
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	configFile, logLevel = "", ""
	username, password = "", ""
	workoutFilter, namesOnly, jsonOutput = "", false, false
	app = nil

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestDeleteWorkoutShowsFetchFailure(t *testing.T) {
	var deletes int32
	home := testEnv(t, func(r chi.Router) {
		r.Get("/api/workouts", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})
		r.Delete("/api/workouts/delete-planned/{id}", func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&deletes, 1)
		})
	})
	storeToken(t, home, "opaque-token")

	out, err := run(t, "delete-workout", "3")
	assert.ErrorIs(t, err, ErrAlreadyHandled)
	assert.Contains(t, out, workouts.MsgFetchFailed)
	assert.NotContains(t, out, "not found")
	assert.Zero(t, atomic.LoadInt32(&deletes))
}

func TestDeleteWorkoutUnknownID(t *testing.T) {
	home := testEnv(t, func(r chi.Router) {
		r.Get("/api/workouts", func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, `[{"id":1,"workoutName":"Leg Day","plannedDate":"2024-01-01"}]`)
		})
	})
	storeToken(t, home, "opaque-token")

	_, err := run(t, "delete-workout", "9")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Planned workout 9 not found")
}

func TestDeleteWorkoutRefreshesList(t *testing.T) {
	var deleted atomic.Bool
	home := testEnv(t, func(r chi.Router) {
		r.Get("/api/workouts", func(w http.ResponseWriter, r *http.Request) {
			if deleted.Load() {
				io.WriteString(w, `[{"id":2,"workoutName":"Arms","plannedDate":"2024-01-02"}]`)
				return
			}
			io.WriteString(w, `[
				{"id":1,"workoutName":"Leg Day","plannedDate":"2024-01-01"},
				{"id":2,"workoutName":"Arms","plannedDate":"2024-01-02"}
			]`)
		})
		r.Delete("/api/workouts/delete-planned/{id}", func(w http.ResponseWriter, r *http.Request) {
			if chi.URLParam(r, "id") != "1" {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			deleted.Store(true)
			w.WriteHeader(http.StatusNoContent)
		})
	})
	storeToken(t, home, "opaque-token")

	out, err := run(t, "delete-workout", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Planned workout 1 deleted successfully")
	assert.Contains(t, out, "Arms [id 2]")
	assert.NotContains(t, out, "[id 1]")
}

func TestDeleteWorkoutExpiredSession(t *testing.T) {
	home := testEnv(t, func(r chi.Router) {
		r.Get("/api/workouts", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})
	})
	storeToken(t, home, "opaque-token")

	out, err := run(t, "delete-workout", "1")
	assert.ErrorIs(t, err, ErrAlreadyHandled)
	assert.Contains(t, out, "You are not logged in.")
	assert.False(t, sessionFile(home).Exists(), "forced logout clears the stored token")
}

func TestDeleteWorkoutLoggedOut(t *testing.T) {
	var calls int32
	testEnv(t, func(r chi.Router) {
		r.Get("/api/workouts", func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
		})
	})

	out, err := run(t, "delete-workout", "1")
	assert.ErrorIs(t, err, ErrAlreadyHandled)
	assert.Contains(t, out, "You are not logged in.")
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestStatus(t *testing.T) {
	home := testEnv(t, func(r chi.Router) {})

	out, err := run(t, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "STATUS")
	assert.Contains(t, out, "(not created yet)")
	assert.Contains(t, out, "Session: logged out")

	storeToken(t, home, "opaque-token")
	out, err = run(t, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Token storage: "+sessionFile(home).Path+"\n")
	assert.Contains(t, out, "Session: logged in")
	assert.Contains(t, out, "Expires: unknown")
}
