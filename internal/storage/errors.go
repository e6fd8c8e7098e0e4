package storage

import (
	"errors"
	"fmt"
)

var (
	// ErrCorruptStore возвращается, если файл хранилища не удалось разобрать.
	ErrCorruptStore = errors.New("corrupt user store")
	// ErrRead — файл существует, но прочитать его не удалось.
	ErrRead = errors.New("read user store")
	// ErrWrite — не удалось сохранить таблицу пользователей.
	ErrWrite = errors.New("write user store")
)

// CorruptStoreError описывает повреждённый файл хранилища.
// Сопоставляется с ErrCorruptStore через errors.Is.
type CorruptStoreError struct {
	Path string
	Err  error
}

func (e *CorruptStoreError) Error() string {
	return fmt.Sprintf("user store %s is corrupt: %v", e.Path, e.Err)
}

func (e *CorruptStoreError) Unwrap() error {
	return e.Err
}

// Is позволяет сравнивать ошибку с ErrCorruptStore.
func (e *CorruptStoreError) Is(target error) bool {
	return target == ErrCorruptStore
}
