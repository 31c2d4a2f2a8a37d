// Package auth implements account sign-up, sign-in and password reset on top
// of the storage provider, keeping the signed-in session as a JWT in the OS
// keyring.
package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/julianstephens/habithub/internal/constants"
	"github.com/julianstephens/habithub/internal/keyring"
	"github.com/julianstephens/habithub/internal/logger"
	"github.com/julianstephens/habithub/internal/models"
	"github.com/julianstephens/habithub/internal/storage"
)

var (
	ErrInvalidCredentials = errors.New(constants.MsgBadCredentials)
	ErrEmailExists        = errors.New(constants.MsgEmailExists)
	ErrEmailNotFound      = errors.New(constants.MsgEmailNotFound)
	ErrNotSignedIn        = errors.New("not signed in")
)

const resetTokenTTL = time.Hour

// UserStore is the part of storage.Provider the service needs.
type UserStore interface {
	AddUser(ctx context.Context, user models.User) error
	GetUser(ctx context.Context, id string) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	AddPasswordReset(ctx context.Context, reset models.PasswordReset) error
}

// Claims is the payload of a session token. The subject is the user id.
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

type Service struct {
	users         UserStore
	secrets       keyring.Store
	ttl           time.Duration
	resetRedirect string
	cost          int
	now           func() time.Time
}

func New(users UserStore, secrets keyring.Store, ttl time.Duration, resetRedirect string) *Service {
	if ttl <= 0 {
		ttl = constants.DefaultSessionTTL
	}
	if resetRedirect == "" {
		resetRedirect = constants.ResetRedirectURL
	}
	return &Service{
		users:         users,
		secrets:       secrets,
		ttl:           ttl,
		resetRedirect: resetRedirect,
		cost:          bcrypt.DefaultCost,
		now:           time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SignUp registers a new account and signs it in.
func (s *Service) SignUp(ctx context.Context, name, email, password string) (models.Session, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return models.Session{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:           uuid.NewString(),
		Email:        normalizeEmail(email),
		Name:         strings.TrimSpace(name),
		PasswordHash: string(hash),
		CreatedAt:    s.now().UTC(),
	}
	if err := s.users.AddUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return models.Session{}, ErrEmailExists
		}
		return models.Session{}, err
	}
	logger.Info("account created", "user", user.ID)
	return s.startSession(user)
}

// SignIn checks the password and stores a fresh session token.
func (s *Service) SignIn(ctx context.Context, email, password string) (models.Session, error) {
	user, err := s.users.GetUserByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, storage.ErrNotFound) {
		return models.Session{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.Session{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.Debug("password mismatch", "user", user.ID)
		return models.Session{}, ErrInvalidCredentials
	}
	return s.startSession(user)
}

// ResetPassword records a reset token for the account and returns the link
// that completes the reset.
func (s *Service) ResetPassword(ctx context.Context, email string) (string, error) {
	user, err := s.users.GetUserByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, storage.ErrNotFound) {
		return "", ErrEmailNotFound
	}
	if err != nil {
		return "", err
	}

	now := s.now().UTC()
	reset := models.PasswordReset{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(resetTokenTTL),
	}
	if err := s.users.AddPasswordReset(ctx, reset); err != nil {
		return "", err
	}
	return s.resetRedirect + "?token=" + url.QueryEscape(reset.Token), nil
}

// SignOut forgets the stored session. Signing out twice is not an error.
func (s *Service) SignOut() error {
	err := s.secrets.Delete(constants.KeyringSessionToken)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return err
	}
	return nil
}

// CurrentSession returns the signed-in session or ErrNotSignedIn. An expired
// token is removed from the keyring.
func (s *Service) CurrentSession(ctx context.Context) (models.Session, error) {
	token, err := s.secrets.Get(constants.KeyringSessionToken)
	if errors.Is(err, keyring.ErrNotFound) {
		return models.Session{}, ErrNotSignedIn
	}
	if err != nil {
		return models.Session{}, err
	}

	key, err := s.signingKey()
	if err != nil {
		return models.Session{}, err
	}

	claims := &Claims{}
	_, err = jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(constants.AppName),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			logger.Info("session expired", "user", claims.Subject)
			_ = s.SignOut()
		}
		return models.Session{}, fmt.Errorf("%w: %v", ErrNotSignedIn, err)
	}

	return models.Session{
		UserID:    claims.Subject,
		Email:     claims.Email,
		Name:      claims.Name,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// CurrentUserID returns the signed-in user's id, or "" when signed out.
func (s *Service) CurrentUserID(ctx context.Context) (string, error) {
	sess, err := s.CurrentSession(ctx)
	if errors.Is(err, ErrNotSignedIn) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return sess.UserID, nil
}

func (s *Service) startSession(user models.User) (models.Session, error) {
	key, err := s.signingKey()
	if err != nil {
		return models.Session{}, err
	}

	now := s.now()
	claims := Claims{
		Email: user.Email,
		Name:  user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    constants.AppName,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	if err != nil {
		return models.Session{}, fmt.Errorf("failed to sign session: %w", err)
	}
	if err := s.secrets.Set(constants.KeyringSessionToken, token); err != nil {
		return models.Session{}, err
	}

	return models.Session{
		UserID:    user.ID,
		Email:     user.Email,
		Name:      user.Name,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// signingKey loads the HMAC key, generating and storing one on first use.
func (s *Service) signingKey() ([]byte, error) {
	encoded, err := s.secrets.Get(constants.KeyringSigningKey)
	if err == nil {
		return hex.DecodeString(encoded)
	}
	if !errors.Is(err, keyring.ErrNotFound) {
		return nil, err
	}

	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate signing key: %w", err)
	}
	if err := s.secrets.Set(constants.KeyringSigningKey, hex.EncodeToString(key)); err != nil {
		return nil, err
	}
	return key, nil
}
