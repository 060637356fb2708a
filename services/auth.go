package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/lborres/tasklist/core"
	"github.com/lborres/tasklist/pkg/crypto"
)

type AuthService struct {
	db             core.UserStorage
	passwordHasher crypto.PasswordHandler
	sessionManager *SessionManager
}

// Ensure AuthService implements AuthHandler
var _ core.AuthHandler = (*AuthService)(nil)

func NewAuthService(db core.UserStorage, passwordHasher crypto.PasswordHandler, sessionManager *SessionManager) *AuthService {
	return &AuthService{
		db:             db,
		passwordHasher: passwordHasher,
		sessionManager: sessionManager,
	}
}

// SignUp registers a new user with name, email and password
func (s *AuthService) SignUp(ctx context.Context, input core.SignUpInput) (*core.Identity, error) {
	if input.Name == nil || input.Email == nil || input.Password == nil {
		return nil, core.ErrInvalidRequestData
	}
	email := strings.TrimSpace(*input.Email)
	if email == "" {
		return nil, core.ErrInvalidRequestData
	}

	// Step 1: Check if user already exists
	existing, err := s.db.GetUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, core.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, core.ErrInvalidRequestData
	}

	// Step 2: Hash the password
	hash, err := s.passwordHasher.Hash(*input.Password)
	if err != nil {
		if errors.Is(err, crypto.ErrPasswordTooLong) {
			return nil, core.ErrInvalidRequestData
		}
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// Step 3: Create the user. The unique index still guards concurrent sign-ups.
	user := &core.User{
		Name:         *input.Name,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.db.CreateUser(ctx, user); err != nil {
		if errors.Is(err, core.ErrUserExists) {
			return nil, core.ErrInvalidRequestData
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user.Identity(), nil
}

// SignIn authenticates a user with email and password and opens a session.
// Unknown email and wrong password are reported the same way.
func (s *AuthService) SignIn(ctx context.Context, input core.SignInInput) (*core.SessionData, error) {
	if input.Email == nil || input.Password == nil {
		return nil, core.ErrInvalidRequestData
	}

	// Step 1: Find the user by email
	user, err := s.db.GetUserByEmail(ctx, strings.TrimSpace(*input.Email))
	if err != nil {
		if errors.Is(err, core.ErrRecordNotFound) {
			return nil, core.ErrInvalidRequestData
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	// Step 2: Verify the password
	valid, err := s.passwordHasher.Verify(*input.Password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !valid {
		return nil, core.ErrInvalidRequestData
	}

	// Step 3: Create a new session
	session, err := s.sessionManager.Create(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &core.SessionData{User: user.Identity(), Session: session}, nil
}

// SignOut expires the given session
func (s *AuthService) SignOut(ctx context.Context, session *core.Session) error {
	if session == nil {
		return core.ErrInvalidSession
	}
	return s.sessionManager.Expire(ctx, session)
}

// Authenticate validates and extends the session, then resolves its owner
func (s *AuthService) Authenticate(ctx context.Context, token string) (*core.SessionData, error) {
	session, err := s.sessionManager.GetActive(ctx, token)
	if err != nil {
		return nil, err
	}

	user, err := s.db.GetUserByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, core.ErrRecordNotFound) {
			// owner is gone; the session must not outlive it
			if err := s.sessionManager.Expire(ctx, session); err != nil {
				return nil, err
			}
			return nil, core.ErrInvalidSession
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &core.SessionData{User: user.Identity(), Session: session}, nil
}
