package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/account-messenger/internal/models"
)

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func setupStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "data", "users.json"), newNoopLogger())
	require.NoError(t, err)
	return s
}

func testOptions() BootstrapOptions {
	return BootstrapOptions{
		AdminUsername:        "admin",
		AdminPassword:        "12345",
		AdminProfilePicURL:   "https://files.catbox.moe/admin.jpg",
		DefaultProfilePicURL: "https://files.catbox.moe/default.jpg",
		WithDemoUser:         true,
	}
}

func TestNew_EmptyPath(t *testing.T) {
	_, err := New("  ", newNoopLogger())
	require.Error(t, err)
}

func TestLoadAll_MissingFile(t *testing.T) {
	s := setupStorage(t)

	users, err := s.LoadAll()
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)
}

func TestLoadAll_EmptyFile(t *testing.T) {
	s := setupStorage(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte("  \n"), 0o644))

	users, err := s.LoadAll()
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestLoadAll_CorruptFile(t *testing.T) {
	s := setupStorage(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte("{not json"), 0o644))

	users, err := s.LoadAll()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCorruptStore)

	var corrupt *CorruptStoreError
	require.ErrorAs(t, err, &corrupt)
	assert.Equal(t, s.Path(), corrupt.Path)
	assert.NotNil(t, users)
	assert.Empty(t, users)
}

func TestLoadAll_SkipsNullEntries(t *testing.T) {
	s := setupStorage(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte(`{"ghost": null, "bob": {"password":"x","isAdmin":false,"expiry":null,"messages":[]}}`), 0o644))

	users, err := s.LoadAll()
	require.NoError(t, err)
	assert.Len(t, users, 1)
	assert.Contains(t, users, "bob")
}

func TestSaveAll_RoundTripIsIdempotent(t *testing.T) {
	s := setupStorage(t)
	now := time.Date(2026, 3, 1, 10, 30, 0, 123456789, time.UTC)

	require.NoError(t, s.SaveAll(BootstrapUsers(testOptions(), now)))
	first, err := os.ReadFile(s.Path())
	require.NoError(t, err)

	users, err := s.LoadAll()
	require.NoError(t, err)
	require.NoError(t, s.SaveAll(users))

	second, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestSaveAll_LeavesNoTempFiles(t *testing.T) {
	s := setupStorage(t)
	require.NoError(t, s.SaveAll(models.Users{"a": {Password: "p", Messages: []models.Message{}}}))
	require.NoError(t, s.SaveAll(models.Users{"b": {Password: "p", Messages: []models.Message{}}}))

	entries, err := os.ReadDir(filepath.Dir(s.Path()))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "users.json", entries[0].Name())
}

func TestUpdate_PersistsChanges(t *testing.T) {
	s := setupStorage(t)
	ctx := context.Background()

	err := s.Update(ctx, func(users models.Users) error {
		users["bob"] = &models.User{Password: "pw", Messages: []models.Message{}}
		return nil
	})
	require.NoError(t, err)

	users, err := s.LoadAll()
	require.NoError(t, err)
	require.Contains(t, users, "bob")
	assert.Equal(t, "pw", users["bob"].Password)
}

func TestUpdate_ErrorSkipsSave(t *testing.T) {
	s := setupStorage(t)
	ctx := context.Background()
	require.NoError(t, s.SaveAll(models.Users{"bob": {Password: "old", Messages: []models.Message{}}}))

	wantErr := fmt.Errorf("boom")
	err := s.Update(ctx, func(users models.Users) error {
		users["bob"].Password = "new"
		return wantErr
	})
	require.ErrorIs(t, err, wantErr)

	users, err := s.LoadAll()
	require.NoError(t, err)
	assert.Equal(t, "old", users["bob"].Password)
}

func TestUpdate_CanceledContext(t *testing.T) {
	s := setupStorage(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := s.Update(ctx, func(models.Users) error {
		called = true
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestUpdate_PreservesCorruptFile(t *testing.T) {
	s := setupStorage(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte("garbage"), 0o644))

	err := s.Update(context.Background(), func(users models.Users) error {
		assert.Empty(t, users)
		users["bob"] = &models.User{Password: "pw", Messages: []models.Message{}}
		return nil
	})
	require.NoError(t, err)

	entries, err := os.ReadDir(filepath.Dir(s.Path()))
	require.NoError(t, err)

	var backups []string
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "users.json.corrupt-") {
			backups = append(backups, e.Name())
		}
	}
	require.Len(t, backups, 1)

	b, err := os.ReadFile(filepath.Join(filepath.Dir(s.Path()), backups[0]))
	require.NoError(t, err)
	assert.Equal(t, "garbage", string(b))

	users, err := s.LoadAll()
	require.NoError(t, err)
	assert.Contains(t, users, "bob")
}

func TestUpdate_ConcurrentWritersDoNotLoseUpdates(t *testing.T) {
	s := setupStorage(t)
	ctx := context.Background()
	require.NoError(t, s.SaveAll(models.Users{"bob": {Password: "pw", Messages: []models.Message{}}}))

	const writers = 50
	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func(i int) {
			defer wg.Done()
			err := s.Update(ctx, func(users models.Users) error {
				users["bob"].Append(models.Message{Sender: "admin", Text: fmt.Sprintf("m%d", i)})
				return nil
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	users, err := s.LoadAll()
	require.NoError(t, err)
	assert.Len(t, users["bob"].Messages, writers)
}

func TestView_CorruptFileServesEmpty(t *testing.T) {
	s := setupStorage(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte("[1,2"), 0o644))

	var seen int
	err := s.View(context.Background(), func(users models.Users) error {
		seen = len(users)
		return nil
	})
	require.NoError(t, err)
	assert.Zero(t, seen)

	// чтение не трогает повреждённый файл
	b, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Equal(t, "[1,2", string(b))
}

func TestEnsureSeeded(t *testing.T) {
	s := setupStorage(t)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	seeded, err := s.EnsureSeeded(BootstrapUsers(testOptions(), now))
	require.NoError(t, err)
	assert.True(t, seeded)

	users, err := s.LoadAll()
	require.NoError(t, err)
	require.Contains(t, users, "admin")
	require.Contains(t, users, DemoUsername)

	admin := users["admin"]
	assert.True(t, admin.IsAdmin)
	assert.Nil(t, admin.Expiry)
	assert.Empty(t, admin.Messages)

	demo := users[DemoUsername]
	assert.False(t, demo.IsAdmin)
	require.NotNil(t, demo.Expiry)
	assert.Equal(t, now.AddDate(0, 0, DemoExpiryDays), demo.Expiry.UTC())
	require.Len(t, demo.Messages, 1)
	assert.Equal(t, "admin", demo.Messages[0].Sender)

	seeded, err = s.EnsureSeeded(models.Users{"other": {Password: "x"}})
	require.NoError(t, err)
	assert.False(t, seeded)

	users, err = s.LoadAll()
	require.NoError(t, err)
	assert.NotContains(t, users, "other")
}

func TestBootstrapUsers_WithoutDemo(t *testing.T) {
	opts := testOptions()
	opts.WithDemoUser = false

	users := BootstrapUsers(opts, time.Now())
	assert.Len(t, users, 1)
	assert.Contains(t, users, "admin")
}
