package auth

import (
	"errors"

	"github.com/2beens/healthtracker/pkg"
)

var (
	ErrUnknownUser   = errors.New("unknown user")
	ErrWrongPassword = errors.New("wrong password")
)

type User struct {
	Username     string
	PasswordHash string
}

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Users is a static username -> bcrypt password hash lookup.
type Users map[string]string

func NewUsers(users ...User) Users {
	u := Users{}
	for _, user := range users {
		u.Add(user)
	}
	return u
}

func (u Users) Add(user User) {
	if user.Username == "" || user.PasswordHash == "" {
		return
	}
	u[user.Username] = user.PasswordHash
}

func (u Users) Check(creds Credentials) error {
	hash, ok := u[creds.Username]
	if !ok {
		return ErrUnknownUser
	}
	if !pkg.CheckPasswordHash(creds.Password, hash) {
		return ErrWrongPassword
	}
	return nil
}
