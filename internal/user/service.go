package user

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/badoux/checkmail"
	"golang.org/x/crypto/bcrypt"
)

const (
	maxEmailLength    = 254
	minUsernameLength = 3
	maxUsernameLength = 30
	minPasswordLength = 8
	bcryptCost        = 12
)

var (
	ErrInvalidEmail          = errors.New("email address is not valid")
	ErrUsernameLength        = fmt.Errorf("username must be between %d and %d characters", minUsernameLength, maxUsernameLength)
	ErrWeakPassword          = fmt.Errorf("password must be at least %d characters", minPasswordLength)
	ErrUsernameAlreadyExists = errors.New("username already exists")
	ErrInternalError         = errors.New("internal Server Error")
)

type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	HashToken    string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Service interface {
	Register(username, email, password string) (*User, error)
	GetUserByID(userID string) (*User, error)
	GetUserByUsername(username string) (*User, error)
}

type service struct {
	repo Repository
}

func NewUserService(repo Repository) Service {
	return &service{repo: repo}
}

func hashPassword(password string) (string, error) {
	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	return string(hashedPasswordBytes), err
}

// generateHashToken creates the per-user secret that refresh tokens are
// bound to; rotating it invalidates every refresh token issued so far.
func generateHashToken() (string, error) {
	token := make([]byte, 32)
	_, err := rand.Read(token)
	if err != nil {
		return "", fmt.Errorf("could not generate hash token: %v", err)
	}
	return hex.EncodeToString(token), nil
}

func validateEmailAddress(email string) error {
	if err := checkmail.ValidateFormat(email); err != nil {
		return ErrInvalidEmail
	}
	if len(email) > maxEmailLength {
		return ErrInvalidEmail
	}
	return nil
}

func (s *service) Register(username, email, password string) (*User, error) {
	if len(username) < minUsernameLength || len(username) > maxUsernameLength {
		return nil, ErrUsernameLength
	}
	if len(password) < minPasswordLength {
		return nil, ErrWeakPassword
	}
	if email != "" {
		if err := validateEmailAddress(email); err != nil {
			return nil, err
		}
	}

	_, err := s.repo.getUserByUsername(username)
	if err == nil {
		return nil, ErrUsernameAlreadyExists
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, ErrInternalError
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return nil, ErrInternalError
	}
	hashToken, err := generateHashToken()
	if err != nil {
		return nil, ErrInternalError
	}

	newUser := &User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		HashToken:    hashToken,
	}
	if err := s.repo.createUser(newUser); err != nil {
		return nil, ErrInternalError
	}
	return newUser, nil
}

func (s *service) GetUserByID(userID string) (*User, error) {
	return s.repo.getUserByID(userID)
}

func (s *service) GetUserByUsername(username string) (*User, error) {
	return s.repo.getUserByUsername(username)
}
