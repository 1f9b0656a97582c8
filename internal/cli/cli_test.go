package cli

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClan(t *testing.T) {
	tests := []struct {
		value   string
		want    Clan
		wantErr bool
	}{
		{"Eclipse:15:Master League", Clan{Name: "Eclipse", Participants: 15, League: "Master League"}, false},
		{"Eclipse: B:5:Gold League", Clan{Name: "Eclipse: B", Participants: 5, League: "Gold League"}, false},
		{" Eclipse 2 : 30 : Crystal League ", Clan{Name: "Eclipse 2", Participants: 30, League: "Crystal League"}, false},
		{"Eclipse:Gold League", Clan{}, true},
		{"Eclipse:x:Gold League", Clan{}, true},
		{"Eclipse", Clan{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, err := parseClan(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClientReturnsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Request-ID", "req-7")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"code":"ROSTER_NOT_FOUND","message":"roster session not found"}}`))
	}))
	defer srv.Close()

	err := NewClient(srv.URL, "tok").Get("/api/roster", nil)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "ROSTER_NOT_FOUND", apiErr.Code)
	assert.Equal(t, "req-7", apiErr.RequestID)
	assert.Equal(t, "roster session not found (ROSTER_NOT_FOUND)", err.Error())
}

func TestOutputText(t *testing.T) {
	var buf bytes.Buffer
	out := NewOutput("text", &buf)

	out.Print(Roster{Clans: []ClanRoster{{
		Clan:    Clan{ID: "a", Name: "Eclipse", Participants: 2, League: "Gold League"},
		Players: []Player{{ID: "p1", PlayerName: "Ann", THLevel: "th15"}},
		Missing: 1,
	}}})

	assert.Equal(t, "Eclipse [a] Gold League\n  1) Ann th15 (p1)\n  missing 1\n", buf.String())
}

func TestOutputJSONMessage(t *testing.T) {
	var buf bytes.Buffer
	NewOutput("json", &buf).PrintMessage("done")
	assert.JSONEq(t, `{"message":"done"}`, buf.String())
}

func TestTokenFileRoundTrip(t *testing.T) {
	c := &Config{ServerURL: "http://cwl.example/", TokenFile: filepath.Join(t.TempDir(), "nested", "token.yaml")}

	require.NoError(t, c.SaveToken("abc", time.Now().Add(time.Hour)))
	c.Token = ""
	require.NoError(t, c.LoadToken())
	assert.Equal(t, "abc", c.Token)

	require.NoError(t, c.ClearToken())
	assert.Empty(t, c.Token)
	require.NoError(t, c.LoadToken())
	assert.Empty(t, c.Token)
	require.NoError(t, c.ClearToken())
}

func TestLoadTokenIgnoresOtherServersAndExpiredTokens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.yaml")

	saver := &Config{ServerURL: "http://cwl.example", TokenFile: path}
	require.NoError(t, saver.SaveToken("abc", time.Now().Add(time.Hour)))

	other := &Config{ServerURL: "http://other.example", TokenFile: path}
	require.NoError(t, other.LoadToken())
	assert.Empty(t, other.Token)

	same := &Config{ServerURL: "http://cwl.example/", TokenFile: path}
	require.NoError(t, same.LoadToken())
	assert.Equal(t, "abc", same.Token)

	require.NoError(t, saver.SaveToken("old", time.Now().Add(-time.Minute)))
	expired := &Config{ServerURL: "http://cwl.example", TokenFile: path}
	require.NoError(t, expired.LoadToken())
	assert.Empty(t, expired.Token)

	explicit := &Config{ServerURL: "http://other.example", Token: "given", TokenFile: path}
	require.NoError(t, explicit.LoadToken())
	assert.Equal(t, "given", explicit.Token)
}

func TestHealthWaitRetriesUntilOK(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"error":{"code":"INTERNAL_ERROR","message":"starting"}}`))
			return
		}
		_, _ = w.Write([]byte(`{"status":"ok","storage":"sqlite"}`))
	}))
	defer srv.Close()

	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--server", srv.URL, "--token-file", filepath.Join(t.TempDir(), "token"), "health", "--wait", "10s"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, "Status: ok\nStorage: sqlite\n", out.String())
}

func TestHealthWithoutWaitFailsFast(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"degraded","storage":"redis"}`))
	}))
	defer srv.Close()

	cmd := NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--server", srv.URL, "--token-file", filepath.Join(t.TempDir(), "token"), "health"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"degraded"`)
}
