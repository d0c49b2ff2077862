package user

import (
	"errors"
	"time"
)

// ErrEmailTaken is returned when the email is already registered.
var ErrEmailTaken = errors.New("email already registered")

type User struct {
	ID        int64
	Name      string
	Email     string
	Phone     *string
	Age       *int
	CreatedAt time.Time
}
