package user

import (
	"regexp"
	"strings"
	"taskify/internal/models"
	"time"

	"github.com/google/uuid"
)

const MinPasswordLength = 6

// MaxPasswordBytes - предел bcrypt, длиннее пароль не хэшируется
const MaxPasswordBytes = 72

var emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

type User struct {
	UUID         uuid.UUID  `json:"id" db:"uuid"`
	Email        string     `json:"email" db:"email"`
	PasswordHash string     `json:"-" db:"password_hash"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt    *time.Time `json:"updatedAt,omitempty" db:"updated_at"`
}

// NormalizeEmail приводит email к виду, в котором он хранится
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func ValidateCredentials(email, password string) error {
	if email == "" {
		return models.NewFieldError("email", "email обязателен")
	}
	if !emailPattern.MatchString(email) {
		return models.NewFieldError("email", email+" не является корректным email")
	}
	if len(password) < MinPasswordLength {
		return models.NewFieldError("password", "пароль должен быть не короче 6 символов")
	}
	if len(password) > MaxPasswordBytes {
		return models.NewFieldError("password", "пароль не должен превышать 72 байта")
	}
	return nil
}

func New(email, passwordHash string) *User {
	return &User{
		UUID:         uuid.New(),
		Email:        NormalizeEmail(email),
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
}
