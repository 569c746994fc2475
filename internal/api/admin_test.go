package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{Subject: "admin"}
	if !exp.IsZero() {
		claims.ExpiresAt = jwt.NewNumericDate(exp)
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestClient_Login(t *testing.T) {
	t.Run("top level token", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/admin/login", r.URL.Path)

			var req loginRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "root", req.Username)
			assert.Equal(t, "hunter2", req.Password)

			_, _ = w.Write([]byte(`{"success":true,"token":"tok-1"}`))
		})

		token, err := client.Login(context.Background(), "root", "hunter2")
		require.NoError(t, err)
		assert.Equal(t, "tok-1", token)
	})

	t.Run("token inside data", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"success":true,"data":{"token":"tok-2"}}`))
		})

		token, err := client.Login(context.Background(), "root", "hunter2")
		require.NoError(t, err)
		assert.Equal(t, "tok-2", token)
	})

	t.Run("rejected credentials", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"success":false,"message":"Invalid credentials"}`))
		})

		_, err := client.Login(context.Background(), "root", "nope")
		require.Error(t, err)
		assert.Equal(t, "Invalid credentials", UserMessage(err))
	})

	t.Run("missing credentials", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("request should not be sent")
		})

		_, err := client.Login(context.Background(), " ", "")
		var valErr *ValidationError
		assert.ErrorAs(t, err, &valErr)
	})

	t.Run("no token in response", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"success":true}`))
		})

		_, err := client.Login(context.Background(), "root", "hunter2")
		assert.Error(t, err)
	})
}

func TestClient_AdminReports(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/admin/protected/reports", r.URL.Path)
		if r.Header.Get("Authorization") != "Bearer tok-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"success":true,"data":[{"_id":"r1","animeId":"a1","issueType":"Broken Link","description":"dead link on ep 2","status":"pending"}]}`))
	})

	reports, err := client.AdminReports(context.Background(), "tok-1")
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, "r1", reports[0].ID)
	assert.Equal(t, "pending", reports[0].Status)

	_, err = client.AdminReports(context.Background(), "wrong")
	require.Error(t, err)
}

func TestParseReports(t *testing.T) {
	assert.Len(t, parseReports([]byte(`[{"_id":"r1"},{"_id":"r2"}]`)), 2)
	assert.Empty(t, parseReports([]byte(`{"success":true,"data":{}}`)))
	assert.Empty(t, parseReports([]byte(`garbage`)))
}

func TestTokenExpiry(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	t.Run("future exp", func(t *testing.T) {
		token := signedToken(t, now.Add(time.Hour))

		exp, err := TokenExpiry(token)
		require.NoError(t, err)
		assert.True(t, exp.Equal(now.Add(time.Hour)))
		assert.False(t, TokenExpired(token, now))
	})

	t.Run("past exp", func(t *testing.T) {
		token := signedToken(t, now.Add(-time.Minute))
		assert.True(t, TokenExpired(token, now))
	})

	t.Run("no exp never expires", func(t *testing.T) {
		token := signedToken(t, time.Time{})
		assert.False(t, TokenExpired(token, now))
	})

	t.Run("garbage is expired", func(t *testing.T) {
		_, err := TokenExpiry("not.a.jwt")
		assert.Error(t, err)
		assert.True(t, TokenExpired("not.a.jwt", now))
	})
}
