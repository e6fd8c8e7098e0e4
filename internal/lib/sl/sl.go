// Package sl содержит вспомогательные функции для структурированных полей slog.
package sl

import "log/slog"

// Err возвращает slog.Attr с ключом "error" и текстом ошибки.
//
//	log.Error("failed to save users", sl.Err(err))
func Err(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.String("error", err.Error())
}

// Username возвращает атрибут с именем пользователя.
func Username(name string) slog.Attr {
	return slog.String("username", name)
}
