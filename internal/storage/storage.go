// Package storage реализует хранилище пользователей в одном JSON-файле.
//
// Таблица читается и записывается целиком. Все изменения проходят через Update,
// который держит единственную блокировку записи на время цикла
// «загрузить → изменить → сохранить», поэтому параллельные запросы не теряют
// изменений друг друга. Запись атомарна: временный файл и переименование.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/magabrotheeeer/account-messenger/internal/lib/sl"
	"github.com/magabrotheeeer/account-messenger/internal/models"
)

// Storage — файловый репозиторий таблицы пользователей.
type Storage struct {
	path string
	log  *slog.Logger

	mu sync.RWMutex
}

// New создаёт хранилище для файла path. Сам файл может отсутствовать.
func New(path string, log *slog.Logger) (*Storage, error) {
	const op = "storage.New"

	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("%s: users file path is required", op)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		path: path,
		log:  log,
	}, nil
}

// Path возвращает путь к файлу хранилища.
func (s *Storage) Path() string {
	return s.path
}

// LoadAll читает всю таблицу.
//
// Отсутствующий или пустой файл даёт пустую таблицу без ошибки.
// Повреждённый файл даёт пустую таблицу и *CorruptStoreError,
// чтобы вызывающий мог залогировать проблему и продолжить работу.
func (s *Storage) LoadAll() (models.Users, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.loadLocked()
}

// SaveAll перезаписывает файл содержимым users.
func (s *Storage) SaveAll(users models.Users) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.saveLocked(users)
}

// View выполняет fn над свежей копией таблицы без сохранения.
func (s *Storage) View(ctx context.Context, fn func(users models.Users) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	users, err := s.LoadAll()
	if err != nil {
		if !errors.Is(err, ErrCorruptStore) {
			return err
		}
		s.log.Error("user store is corrupt, serving empty table", sl.Err(err))
	}
	return fn(users)
}

// Update выполняет цикл «загрузить → изменить → сохранить» под блокировкой записи.
// Если fn возвращает ошибку, файл не меняется.
func (s *Storage) Update(ctx context.Context, fn func(users models.Users) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadForWriteLocked()
	if err != nil {
		return err
	}
	if err := fn(users); err != nil {
		return err
	}
	return s.saveLocked(users)
}

// EnsureSeeded записывает seed, если таблица пуста. Возвращает true, если запись произошла.
func (s *Storage) EnsureSeeded(seed models.Users) (bool, error) {
	const op = "storage.EnsureSeeded"

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadForWriteLocked()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	if len(users) > 0 {
		return false, nil
	}
	if err := s.saveLocked(seed); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return true, nil
}

// loadForWriteLocked загружает таблицу перед перезаписью.
// Повреждённый файл откладывается в сторону, чтобы сохранение не уничтожило его.
func (s *Storage) loadForWriteLocked() (models.Users, error) {
	users, err := s.loadLocked()
	if err == nil {
		return users, nil
	}
	if !errors.Is(err, ErrCorruptStore) {
		return nil, err
	}

	backup := fmt.Sprintf("%s.corrupt-%d", s.path, time.Now().UnixNano())
	if renameErr := os.Rename(s.path, backup); renameErr != nil {
		s.log.Error("user store is corrupt and could not be preserved", sl.Err(err),
			slog.String("rename_error", renameErr.Error()))
	} else {
		s.log.Error("user store is corrupt, starting from empty table", sl.Err(err),
			slog.String("backup", backup))
	}
	return users, nil
}

func (s *Storage) loadLocked() (models.Users, error) {
	const op = "storage.LoadAll"

	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return models.Users{}, nil
		}
		return nil, fmt.Errorf("%s: %w: %w", op, ErrRead, err)
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return models.Users{}, nil
	}

	var users models.Users
	if err := json.Unmarshal(b, &users); err != nil {
		return models.Users{}, &CorruptStoreError{Path: s.path, Err: err}
	}
	if users == nil {
		users = models.Users{}
	}
	for name, u := range users {
		if u == nil {
			delete(users, name)
		}
	}
	return users, nil
}

func (s *Storage) saveLocked(users models.Users) error {
	const op = "storage.SaveAll"

	if users == nil {
		users = models.Users{}
	}
	b, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return fmt.Errorf("%s: %w: %w", op, ErrWrite, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%s: %w: %w", op, ErrWrite, err)
	}
	tmpName := tmp.Name()
	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}

	if _, err := tmp.Write(b); err != nil {
		cleanup()
		return fmt.Errorf("%s: %w: %w", op, ErrWrite, err)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return fmt.Errorf("%s: %w: %w", op, ErrWrite, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%s: %w: %w", op, ErrWrite, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%s: %w: %w", op, ErrWrite, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%s: %w: %w", op, ErrWrite, err)
	}
	return nil
}
