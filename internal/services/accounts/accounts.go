// Package accounts содержит бизнес-логику учётных записей: вход, создание
// пользователей администратором, рассылку и ответы пользователей.
//
// Каждая операция выполняет один цикл чтения или изменения хранилища.
// Кеш используется только для чтения данных одного пользователя и
// сбрасывается при каждом изменении.
package accounts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/account-messenger/internal/lib/sl"
	"github.com/magabrotheeeer/account-messenger/internal/models"
)

// Repository — хранилище таблицы пользователей.
type Repository interface {
	// View выполняет fn над загруженной таблицей без сохранения.
	View(ctx context.Context, fn func(users models.Users) error) error
	// Update загружает таблицу, применяет fn и сохраняет результат.
	Update(ctx context.Context, fn func(users models.Users) error) error
}

// Cache описывает методы для кеширования данных.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, keys ...string) error
}

// Recorder получает доменные события для метрик.
type Recorder interface {
	LoginAttempt(outcome string)
	AccountCreated()
	Broadcast(recipients int)
	Reply()
}

// Options — параметры сервиса.
type Options struct {
	AdminUsername        string
	DefaultProfilePicURL string
	CacheTTL             time.Duration
	Now                  func() time.Time
}

// Service реализует операции над учётными записями.
type Service struct {
	repo    Repository
	cache   Cache
	metrics Recorder
	log     *slog.Logger
	opts    Options
}

// New создаёт сервис. cache и recorder могут быть nil.
func New(repo Repository, cache Cache, recorder Recorder, log *slog.Logger, opts Options) *Service {
	if cache == nil {
		cache = noopCache{}
	}
	if recorder == nil {
		recorder = noopRecorder{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 10 * time.Minute
	}
	return &Service{
		repo:    repo,
		cache:   cache,
		metrics: recorder,
		log:     log,
		opts:    opts,
	}
}

// AdminUsername возвращает имя учётной записи администратора.
func (s *Service) AdminUsername() string {
	return s.opts.AdminUsername
}

// Login проверяет учётные данные и срок действия учётной записи.
// Неизвестное имя и неверный пароль дают одну и ту же ошибку ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, username, password string) (models.UserView, error) {
	const op = "accounts.Login"

	now := s.opts.Now()
	var view models.UserView
	err := s.repo.View(ctx, func(users models.Users) error {
		u, ok := users[username]
		if !ok || u.Password != password {
			return ErrInvalidCredentials
		}
		if u.Expired(now) {
			return &ExpiredError{Expiry: u.ExpiryOrEpoch()}
		}
		view = u.View(username)
		return nil
	})

	switch {
	case err == nil:
		s.metrics.LoginAttempt("success")
		return view, nil
	case errors.Is(err, ErrInvalidCredentials):
		s.metrics.LoginAttempt("invalid_credentials")
		return models.UserView{}, err
	case errors.Is(err, ErrAccountExpired):
		s.metrics.LoginAttempt("expired")
		return models.UserView{}, err
	default:
		s.metrics.LoginAttempt("error")
		return models.UserView{}, storageErr(op, err)
	}
}

// CreateUser создаёт обычную учётную запись со сроком действия expiryDays дней от текущего момента.
func (s *Service) CreateUser(ctx context.Context, username, password string, expiryDays int) (models.UserView, error) {
	const op = "accounts.CreateUser"

	if expiryDays < 0 || expiryDays > MaxExpiryDays {
		return models.UserView{}, ErrInvalidExpiry
	}

	expiry := s.timestamp().AddDate(0, 0, expiryDays)
	user := &models.User{
		Password:      password,
		IsAdmin:       false,
		Expiry:        &expiry,
		ProfilePicURL: s.opts.DefaultProfilePicURL,
		Messages:      []models.Message{},
	}

	err := s.repo.Update(ctx, func(users models.Users) error {
		if _, exists := users[username]; exists {
			return ErrUserExists
		}
		users[username] = user
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrUserExists) {
			return models.UserView{}, err
		}
		return models.UserView{}, storageErr(op, err)
	}

	s.metrics.AccountCreated()
	s.invalidate(ctx, username)
	s.log.Info("account created", sl.Username(username), slog.Time("expiry", expiry))
	return user.View(username), nil
}

// Broadcast добавляет сообщение администратора в ленту каждого обычного пользователя.
// Возвращает число получателей.
func (s *Service) Broadcast(ctx context.Context, text string) (int, error) {
	const op = "accounts.Broadcast"

	msg := models.Message{
		Sender:    s.opts.AdminUsername,
		Text:      text,
		Timestamp: s.timestamp(),
	}

	var recipients []string
	err := s.repo.Update(ctx, func(users models.Users) error {
		recipients = recipients[:0]
		for name, u := range users {
			if u.IsAdmin {
				continue
			}
			u.Append(msg)
			recipients = append(recipients, name)
		}
		return nil
	})
	if err != nil {
		return 0, storageErr(op, err)
	}

	s.metrics.Broadcast(len(recipients))
	s.invalidate(ctx, recipients...)
	s.log.Info("broadcast sent", slog.Int("recipients", len(recipients)))
	return len(recipients), nil
}

// Reply добавляет ответ пользователя в его ленту и в ленту администратора.
// Обе записи получают одну и ту же отметку времени.
func (s *Service) Reply(ctx context.Context, username, text string) error {
	const op = "accounts.Reply"

	msg := models.Message{
		Sender:    username,
		Text:      text,
		Timestamp: s.timestamp(),
	}

	err := s.repo.Update(ctx, func(users models.Users) error {
		u, ok := users[username]
		if !ok {
			return ErrUserNotFound
		}
		u.Append(msg)

		admin, ok := users[s.opts.AdminUsername]
		switch {
		case !ok:
			s.log.Warn("admin account is missing, reply is not mirrored", sl.Username(username))
		case admin != u:
			admin.Append(msg)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return err
		}
		return storageErr(op, err)
	}

	s.metrics.Reply()
	s.invalidate(ctx, username, s.opts.AdminUsername)
	return nil
}

// GetUser возвращает пользователя без пароля.
func (s *Service) GetUser(ctx context.Context, username string) (models.UserView, error) {
	const op = "accounts.GetUser"

	key := cacheKey(username)
	var cached models.UserView
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		s.log.Warn("failed to read from cache", slog.String("key", key), sl.Err(err))
	}
	if found {
		return cached, nil
	}

	// Кеш заполняется под блокировкой чтения: запись, завершившаяся позже,
	// сбросит ключ уже после Set.
	var view models.UserView
	err = s.repo.View(ctx, func(users models.Users) error {
		u, ok := users[username]
		if !ok {
			return ErrUserNotFound
		}
		view = u.View(username)
		if err := s.cache.Set(ctx, key, view, s.opts.CacheTTL); err != nil {
			s.log.Warn("failed to add to cache", slog.String("key", key), sl.Err(err))
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return models.UserView{}, err
		}
		return models.UserView{}, storageErr(op, err)
	}
	return view, nil
}

// ListUsers возвращает всю таблицу как есть, вместе с паролями.
func (s *Service) ListUsers(ctx context.Context) (models.Users, error) {
	const op = "accounts.ListUsers"

	var out models.Users
	err := s.repo.View(ctx, func(users models.Users) error {
		out = users
		return nil
	})
	if err != nil {
		return nil, storageErr(op, err)
	}
	return out, nil
}

func (s *Service) timestamp() time.Time {
	return s.opts.Now().UTC().Truncate(time.Millisecond)
}

func (s *Service) invalidate(ctx context.Context, usernames ...string) {
	if len(usernames) == 0 {
		return
	}
	keys := make([]string, 0, len(usernames))
	for _, name := range usernames {
		keys = append(keys, cacheKey(name))
	}
	if err := s.cache.Invalidate(ctx, keys...); err != nil {
		s.log.Warn("failed to remove from cache", slog.Any("keys", keys), sl.Err(err))
	}
}

func cacheKey(username string) string {
	return fmt.Sprintf("user:%s", username)
}

func storageErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStorage, err)
}

type noopCache struct{}

func (noopCache) Get(context.Context, string, any) (bool, error)        { return false, nil }
func (noopCache) Set(context.Context, string, any, time.Duration) error { return nil }
func (noopCache) Invalidate(context.Context, ...string) error           { return nil }

type noopRecorder struct{}

func (noopRecorder) LoginAttempt(string) {}
func (noopRecorder) AccountCreated()     {}
func (noopRecorder) Broadcast(int)       {}
func (noopRecorder) Reply()              {}
