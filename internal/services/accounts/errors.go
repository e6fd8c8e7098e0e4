package accounts

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAccountExpired     = errors.New("account expired")
	ErrUserExists         = errors.New("username already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrStorage            = errors.New("storage error")
	ErrInvalidExpiry      = errors.New("expiry days out of range")
)

// MaxExpiryDays ограничивает срок новой учётной записи сотней лет.
const MaxExpiryDays = 36500

// ExpiryDateLayout — формат даты истечения в сообщениях для пользователя.
const ExpiryDateLayout = "2006-01-02"

// ExpiredError возвращается при входе в учётную запись с истёкшим сроком.
type ExpiredError struct {
	Expiry time.Time
}

func (e *ExpiredError) Error() string {
	return fmt.Sprintf("account expired on %s", e.Expiry.UTC().Format(ExpiryDateLayout))
}

func (e *ExpiredError) Is(target error) bool {
	return target == ErrAccountExpired
}
