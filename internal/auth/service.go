package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log"
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/sebuszqo/ExpenseTracker/internal/user"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInternalError      = errors.New("internal Server Error")
	ErrRevokedToken       = errors.New("refresh token has been revoked")
)

type Service interface {
	Login(username, password string) (string, string, error)
	RefreshAccessToken(refreshToken string) (string, error)
	VerifyToken(token string) error
	Logout(refreshToken string) error
	PurgeExpiredRevokedTokens() (int64, error)
	JWTAccessTokenMiddleware() func(http.Handler) http.Handler
}

type service struct {
	userService     user.Service
	jwtManager      JWTManagerInterface
	revocations     RevocationRepository
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
}

func NewAuthService(userService user.Service, jwtManager JWTManagerInterface, revocations RevocationRepository, accessTokenTTL, refreshTokenTTL time.Duration) Service {
	return &service{
		userService:     userService,
		jwtManager:      jwtManager,
		revocations:     revocations,
		accessTokenTTL:  accessTokenTTL,
		refreshTokenTTL: refreshTokenTTL,
	}
}

func doPasswordsMatch(hashedPassword, currPassword string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(currPassword))
	return err == nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// Login exchanges credentials for an access/refresh token pair. Unknown
// usernames and wrong passwords are indistinguishable to the caller.
func (s *service) Login(username, password string) (string, string, error) {
	existingUser, err := s.userService.GetUserByUsername(username)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return "", "", ErrInvalidCredentials
		}
		return "", "", ErrInternalError
	}

	if !doPasswordsMatch(existingUser.PasswordHash, password) {
		return "", "", ErrInvalidCredentials
	}

	accessToken, err := s.jwtManager.GenerateAccessJWT(existingUser.ID, s.accessTokenTTL)
	if err != nil {
		log.Printf("error during JWT generation: %v", err)
		return "", "", ErrInternalError
	}
	refreshToken, err := s.jwtManager.GenerateRefreshJWT(existingUser.ID, existingUser.HashToken, s.refreshTokenTTL)
	if err != nil {
		log.Printf("error during refresh token generation: %v", err)
		return "", "", ErrInternalError
	}

	return accessToken, refreshToken, nil
}

func (s *service) RefreshAccessToken(refreshToken string) (string, error) {
	userID, err := s.jwtManager.ExtractUserIDFromRefreshToken(refreshToken)
	if err != nil {
		return "", err
	}

	existingUser, err := s.userService.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return "", ErrInvalidJWTRefreshToken
		}
		return "", ErrInternalError
	}

	revoked, err := s.revocations.IsRevoked(hashToken(refreshToken))
	if err != nil {
		return "", ErrInternalError
	}
	if revoked {
		return "", ErrRevokedToken
	}

	if err := s.jwtManager.ValidateRefreshToken(refreshToken, existingUser.HashToken); err != nil {
		return "", err
	}

	accessToken, err := s.jwtManager.GenerateAccessJWT(existingUser.ID, s.accessTokenTTL)
	if err != nil {
		return "", ErrInternalError
	}
	return accessToken, nil
}

func (s *service) VerifyToken(token string) error {
	userID, err := s.jwtManager.ValidateAccessToken(token)
	if err != nil {
		return err
	}
	if _, err := s.userService.GetUserByID(userID); err != nil {
		return ErrInvalidJWTToken
	}
	return nil
}

// Logout revokes the presented refresh token. The revocation row is kept
// for the token's maximum lifetime, after which the token is expired on
// its own and the row is purged by the cleanup job.
func (s *service) Logout(refreshToken string) error {
	userID, err := s.jwtManager.ExtractUserIDFromRefreshToken(refreshToken)
	if err != nil {
		if errors.Is(err, ErrExpiredJWTToken) {
			// already unusable, nothing to revoke
			return nil
		}
		return err
	}
	return s.revocations.Revoke(hashToken(refreshToken), userID, time.Now().Add(s.refreshTokenTTL))
}

func (s *service) PurgeExpiredRevokedTokens() (int64, error) {
	return s.revocations.DeleteExpired()
}
