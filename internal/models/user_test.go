package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_Expired(t *testing.T) {
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Minute)
	future := now.Add(time.Minute)

	tests := []struct {
		name string
		user User
		want bool
	}{
		{name: "admin without expiry", user: User{IsAdmin: true}, want: false},
		{name: "admin with past expiry", user: User{IsAdmin: true, Expiry: &past}, want: false},
		{name: "user expired", user: User{Expiry: &past}, want: true},
		{name: "user active", user: User{Expiry: &future}, want: false},
		{name: "user expiring exactly now", user: User{Expiry: &now}, want: false},
		{name: "user without expiry", user: User{}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.user.Expired(now))
		})
	}
}

func TestUser_ExpiryOrEpoch(t *testing.T) {
	assert.Equal(t, time.Unix(0, 0).UTC(), (&User{}).ExpiryOrEpoch())

	exp := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, exp, (&User{Expiry: &exp}).ExpiryOrEpoch())
}

func TestUser_ViewOmitsPassword(t *testing.T) {
	u := &User{
		Password: "pass1",
		Messages: []Message{{Sender: "admin", Text: "hi"}},
	}

	v := u.View("bob")
	b, err := json.Marshal(v)
	require.NoError(t, err)

	assert.NotContains(t, string(b), "password")
	assert.NotContains(t, string(b), "pass1")
	assert.Equal(t, "bob", v.Username)

	// копия не должна разделять массив сообщений с исходной записью
	v.Messages[0].Text = "changed"
	assert.Equal(t, "hi", u.Messages[0].Text)
}

func TestUser_NullExpiryForAdmin(t *testing.T) {
	u := &User{Password: "12345", IsAdmin: true, Messages: []Message{}}

	b, err := json.Marshal(u)
	require.NoError(t, err)

	assert.JSONEq(t, `{"password":"12345","isAdmin":true,"expiry":null,"messages":[]}`, string(b))
}
