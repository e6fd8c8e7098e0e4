package storage

import (
	"fmt"
	"time"

	"github.com/magabrotheeeer/account-messenger/internal/models"
)

// DemoUsername и DemoPassword — учётная запись, создаваемая вместе с администратором.
const (
	DemoUsername   = "user1"
	DemoPassword   = "pass1"
	DemoExpiryDays = 30
)

// BootstrapOptions описывает начальный набор учётных записей.
type BootstrapOptions struct {
	AdminUsername        string
	AdminPassword        string
	AdminProfilePicURL   string
	DefaultProfilePicURL string
	WithDemoUser         bool
}

// BootstrapUsers строит таблицу для пустого хранилища: администратор
// и, по желанию, демонстрационный пользователь с приветственным сообщением.
func BootstrapUsers(opts BootstrapOptions, now time.Time) models.Users {
	now = now.UTC().Truncate(time.Millisecond)

	users := models.Users{
		opts.AdminUsername: {
			Password:      opts.AdminPassword,
			IsAdmin:       true,
			Expiry:        nil,
			ProfilePicURL: opts.AdminProfilePicURL,
			Messages:      []models.Message{},
		},
	}

	if opts.WithDemoUser && opts.AdminUsername != DemoUsername {
		expiry := now.AddDate(0, 0, DemoExpiryDays)
		users[DemoUsername] = &models.User{
			Password:      DemoPassword,
			IsAdmin:       false,
			Expiry:        &expiry,
			ProfilePicURL: opts.DefaultProfilePicURL,
			Messages: []models.Message{{
				Sender:    opts.AdminUsername,
				Text:      fmt.Sprintf("Hello %s, your account is active for %d days!", DemoUsername, DemoExpiryDays),
				Timestamp: now,
			}},
		}
	}
	return users
}
