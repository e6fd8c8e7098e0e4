// Package console реализует терминальный клиент: экраны входа, меню
// пользователя и панели администратора поверх HTTP API.
package console

import (
	"math"
	"time"

	"github.com/magabrotheeeer/account-messenger/internal/models"
)

// Screen — текущий экран клиента.
type Screen string

const (
	ScreenLogin Screen = "login"
	ScreenMenu  Screen = "menu"
	ScreenAdmin Screen = "admin"
)

// Session — данные вошедшего пользователя. Нулевое значение означает, что вход не выполнен.
type Session struct {
	User models.UserView
}

// Active сообщает, выполнен ли вход.
func (s Session) Active() bool {
	return s.User.Username != ""
}

// WithUser возвращает сессию с обновлёнными данными пользователя.
func (s Session) WithUser(user models.UserView) Session {
	s.User = user
	return s
}

// State — экран и сессия. Переходы возвращают новое значение.
type State struct {
	Screen  Screen
	Session Session
}

// Initial — состояние при запуске клиента.
func Initial() State {
	return State{Screen: ScreenLogin}
}

// LoggedIn переводит клиент на экран, соответствующий флагу isAdmin пользователя.
func (s State) LoggedIn(user models.UserView) State {
	next := State{
		Screen:  ScreenMenu,
		Session: Session{User: user},
	}
	if user.IsAdmin {
		next.Screen = ScreenAdmin
	}
	return next
}

// LoggedOut возвращает клиент на экран входа и очищает сессию.
func (s State) LoggedOut() State {
	return Initial()
}

// Refreshed заменяет данные пользователя, не меняя экран.
func (s State) Refreshed(user models.UserView) State {
	s.Session = s.Session.WithUser(user)
	return s
}

// DaysRemaining возвращает число оставшихся дней до expiry с округлением вверх.
// Для учётной записи без срока ok == false.
func DaysRemaining(expiry *time.Time, now time.Time) (days int, ok bool) {
	if expiry == nil {
		return 0, false
	}
	d := expiry.Sub(now)
	return int(math.Ceil(d.Hours() / 24)), true
}

// Status для строки в списке пользователей.
const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
)

// UserStatus возвращает ACTIVE, пока срок действия не истёк.
func UserStatus(u *models.User, now time.Time) string {
	if u.Expired(now) {
		return StatusInactive
	}
	return StatusActive
}
