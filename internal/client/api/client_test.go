package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupServer(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/", srv.Client())
}

func TestLogin(t *testing.T) {
	c := setupServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body["password"] != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"success":false,"message":"Invalid username or password."}`))
			return
		}
		_, _ = w.Write([]byte(`{"success":true,"message":"Login successful!","user":{"username":"bob","isAdmin":false,"expiry":"2026-05-01T00:00:00Z","messages":[]}}`))
	})

	user, err := c.Login(context.Background(), "bob", "secret")
	require.NoError(t, err)
	assert.Equal(t, "bob", user.Username)
	require.NotNil(t, user.Expiry)

	_, err = c.Login(context.Background(), "bob", "wrong")
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, StatusCode(err))

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Invalid username or password.", apiErr.Message)
}

func TestCreateUser(t *testing.T) {
	c := setupServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/admin/create-user", r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, float64(30), body["expiryDays"])
		_, _ = w.Write([]byte(`{"success":true,"message":"Account created successfully."}`))
	})

	msg, err := c.CreateUser(context.Background(), "bob", "secret", 30)
	require.NoError(t, err)
	assert.Equal(t, "Account created successfully.", msg)
}

func TestGetUser_EscapesName(t *testing.T) {
	c := setupServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/user/a%20b", r.URL.EscapedPath())
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success":false,"message":"User not found."}`))
	})

	_, err := c.GetUser(context.Background(), "a b")
	assert.Equal(t, http.StatusNotFound, StatusCode(err))
}

func TestListUsers(t *testing.T) {
	c := setupServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/admin/users", r.URL.Path)
		_, _ = w.Write([]byte(`{"admin":{"password":"12345","isAdmin":true,"expiry":null,"messages":[]}}`))
	})

	users, err := c.ListUsers(context.Background())
	require.NoError(t, err)
	require.Contains(t, users, "admin")
	assert.True(t, users["admin"].IsAdmin)
}

func TestSend(t *testing.T) {
	c := setupServer(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "promo", body["messageType"])
		_, _ = w.Write([]byte(`{"success":true,"message":"Message 'promo' sent to +62811"}`))
	})

	msg, err := c.Send(context.Background(), "+62811", "promo")
	require.NoError(t, err)
	assert.Equal(t, "Message 'promo' sent to +62811", msg)
}

func TestNonJSONError(t *testing.T) {
	c := setupServer(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	})

	_, err := c.Broadcast(context.Background(), "hi")
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, "bad gateway", apiErr.Message)
}

func TestStatusCode_NotAPIError(t *testing.T) {
	assert.Zero(t, StatusCode(context.Canceled))
}
