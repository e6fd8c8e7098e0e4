// Package models содержит доменные структуры учётных записей и сообщений.
// Структуры сериализуются в JSON-документ хранилища без изменений формата.
package models

import "time"

// User представляет учётную запись. Ключом служит имя пользователя в Users.
type User struct {
	Password      string     `json:"password"`
	IsAdmin       bool       `json:"isAdmin"`
	Expiry        *time.Time `json:"expiry"` // nil для администраторов: срок не ограничен
	ProfilePicURL string     `json:"profilePicUrl,omitempty"`
	Messages      []Message  `json:"messages"`
}

// Users — вся таблица пользователей, единица сохранения.
type Users map[string]*User

// UserView — пользователь без пароля, с добавленным именем.
// Возвращается клиенту при входе и при запросе данных пользователя.
type UserView struct {
	Username      string     `json:"username"`
	IsAdmin       bool       `json:"isAdmin"`
	Expiry        *time.Time `json:"expiry"`
	ProfilePicURL string     `json:"profilePicUrl,omitempty"`
	Messages      []Message  `json:"messages"`
}

// Expired сообщает, истёк ли срок действия обычной учётной записи к моменту now.
// Отсутствующий срок у обычной учётной записи считается началом эпохи Unix.
func (u *User) Expired(now time.Time) bool {
	if u.IsAdmin {
		return false
	}
	return now.After(u.ExpiryOrEpoch())
}

// ExpiryOrEpoch возвращает срок действия или начало эпохи Unix, если срок не задан.
func (u *User) ExpiryOrEpoch() time.Time {
	if u.Expiry == nil {
		return time.Unix(0, 0).UTC()
	}
	return *u.Expiry
}

// View возвращает копию пользователя без пароля.
func (u *User) View(username string) UserView {
	msgs := make([]Message, len(u.Messages))
	copy(msgs, u.Messages)
	return UserView{
		Username:      username,
		IsAdmin:       u.IsAdmin,
		Expiry:        u.Expiry,
		ProfilePicURL: u.ProfilePicURL,
		Messages:      msgs,
	}
}

// Append добавляет сообщение в конец ленты пользователя.
func (u *User) Append(m Message) {
	u.Messages = append(u.Messages, m)
}
