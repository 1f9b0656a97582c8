package clashapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/cwlroster/internal/model"
	"github.com/mcoot/cwlroster/internal/testutil"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := DefaultConfig()
	cfg.BaseURL = srv.URL
	cfg.APIKey = "secret"
	cfg.RequestsPerSecond = 0
	return New(cfg, testutil.NopLogger())
}

func TestNormaliseTag(t *testing.T) {
	assert.Equal(t, "2PP", NormaliseTag("#2pp"))
	assert.Equal(t, "ABC123", NormaliseTag(" abc-123 "))
	assert.Equal(t, "", NormaliseTag("#"))
}

func TestClanMembers(t *testing.T) {
	var gotPath, gotAuth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[
			{"name":"Ann","tag":"#AAA","townHallLevel":15,"warStars":300,"trophies":5000,"bestTrophies":5500,
			 "legendStatistics":{"legendTrophies":100}},
			{"name":"Bob","tag":"#BBB","townHallLevel":12,"trophies":3000,"bestTrophies":3100}
		]}`))
	})

	members, err := c.ClanMembers(context.Background(), "#2pp")
	require.NoError(t, err)

	assert.Equal(t, "/clans/%232PP/members", gotPath)
	assert.Equal(t, "Bearer secret", gotAuth)
	require.Len(t, members, 2)
	assert.Equal(t, "Ann", members[0].Name)
	assert.Equal(t, 15, members[0].TownHallLevel)
	assert.JSONEq(t, `{"legendTrophies":100}`, string(members[0].LegendStatistics))
	assert.Equal(t, 0, members[1].WarStars)
	assert.Nil(t, members[1].LegendStatistics)
}

func TestClanMembersErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"not found", http.StatusNotFound, `{"reason":"notFound"}`, model.ErrClanNotFound},
		{"forbidden", http.StatusForbidden, `{"reason":"accessDenied"}`, ErrUnauthorized},
		{"server error", http.StatusServiceUnavailable, `maintenance`, ErrBadResponse},
		{"malformed json", http.StatusOK, `not json`, ErrBadResponse},
		{"no items", http.StatusOK, `{"paging":{}}`, ErrBadResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := c.ClanMembers(context.Background(), "#2PP")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestClanMembersRequiresTag(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})

	_, err := c.ClanMembers(context.Background(), " # ")
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestClanMembersRequiresKey(t *testing.T) {
	c := New(DefaultConfig(), testutil.NopLogger())
	assert.False(t, c.Configured())

	_, err := c.ClanMembers(context.Background(), "#2PP")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestClanMembersHonoursContext(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"items":[]}`))
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ClanMembers(ctx, "#2PP")
	assert.ErrorIs(t, err, context.Canceled)
}
