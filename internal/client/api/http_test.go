package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewHTTPClient(srv.URL, time.Second)
}

func TestRegister(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/auth/register", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "alice@example.com", body["email"])

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{
			"message": "User registered successfully",
			"token":   "tok-1",
		})
	})

	token, err := c.Register(context.Background(), "alice@example.com", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)
}

func TestRegister_EmailTaken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "Email already exists"})
	})

	_, err := c.Register(context.Background(), "alice@example.com", "correct-horse")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin_Unauthorized(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "Invalid email or password"})
	})

	_, err := c.Login(context.Background(), "alice@example.com", "wrong")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestVerifySession_SendsBearerToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]string{
			"id":       "u-1",
			"username": "alice",
			"email":    "alice@example.com",
		})
	})
	c.SetToken("tok-1")

	identity, err := c.VerifySession(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "u-1", identity.ID)
	assert.Equal(t, "alice", identity.Username)
}

func TestVerifySession_NoTokenHeaderWhenUnset(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		// Without a token the client must not send the header at all.
		require.Empty(t, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "Authorization required"})
	})

	_, err := c.VerifySession(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestVerifySession_UserGone(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"message": "User not found"})
	})
	c.SetToken("tok-1")

	_, err := c.VerifySession(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListStocks_QueryParameters(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "2", r.URL.Query().Get("page"))
		require.Equal(t, "apple", r.URL.Query().Get("q"))
		json.NewEncoder(w).Encode(map[string]any{
			"stocks": []map[string]any{{"symbol": "AAPL", "name": "Apple Inc."}},
			"page":   2,
			"pages":  3,
			"total":  41,
		})
	})

	page, err := c.ListStocks(context.Background(), 2, "apple")
	require.NoError(t, err)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, int64(41), page.Total)
	require.Len(t, page.Stocks, 1)
	assert.Equal(t, "AAPL", page.Stocks[0].Symbol)
}

func TestServerUnreachable(t *testing.T) {
	c := NewHTTPClient("http://127.0.0.1:1", 200*time.Millisecond)

	_, err := c.VerifySession(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestServerFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"message": "Internal server error"})
	})

	_, err := c.ListStocks(context.Background(), 1, "")
	assert.ErrorIs(t, err, ErrServer)
}

func TestRemoveFromPortfolio(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/api/portfolio/AAPL", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})
	c.SetToken("tok-1")

	require.NoError(t, c.RemoveFromPortfolio(context.Background(), "AAPL"))
}

func TestRemoveFromPortfolio_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"message": "Holding not found"})
	})
	c.SetToken("tok-1")

	err := c.RemoveFromPortfolio(context.Background(), "AAPL")
	assert.ErrorIs(t, err, ErrNotFound)
}
