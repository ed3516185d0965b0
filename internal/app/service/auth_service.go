package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ejoh/storefront-backend/config"
	"github.com/ejoh/storefront-backend/internal/app/model"
	"github.com/ejoh/storefront-backend/internal/kvstore"
	"github.com/ejoh/storefront-backend/pkg/logger"
	"github.com/ejoh/storefront-backend/pkg/util"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNoActiveSession    = errors.New("no active session")
)

// CredentialVerifier checks a credential pair and produces the session it
// authenticates. The demo verifier below is the stand-in a real deployment
// replaces with an actual identity backend.
type CredentialVerifier interface {
	Verify(ctx context.Context, email, password string) (model.Session, error)
}

type demoVerifier struct {
	email        string
	passwordHash string
	session      model.Session
}

// NewDemoVerifier accepts exactly the configured demo credential pair.
// The password is held as a bcrypt hash so verification goes through the
// same comparison path a real verifier would use.
func NewDemoVerifier(cfg *config.AuthConfig) (CredentialVerifier, error) {
	hash, err := util.HashPassword(cfg.DemoPassword)
	if err != nil {
		return nil, err
	}
	return &demoVerifier{
		email:        cfg.DemoEmail,
		passwordHash: hash,
		session: model.Session{
			ID:     1,
			Email:  cfg.DemoEmail,
			Name:   cfg.DemoName,
			Avatar: cfg.DemoAvatar,
		},
	}, nil
}

func (v *demoVerifier) Verify(ctx context.Context, email, password string) (model.Session, error) {
	if email != v.email || !util.VerifyPassword(v.passwordHash, password) {
		return model.Session{}, ErrInvalidCredentials
	}
	return v.session, nil
}

// AuthService owns the singleton session. Login and register resolve after
// a simulated network delay, exactly once, with no retry; each successful
// mutation writes the session through to the key-value store and logout
// deletes the persisted copy.
type AuthService interface {
	Load(ctx context.Context) error
	Login(ctx context.Context, email, password string) (model.Session, string, error)
	Register(ctx context.Context, name, email, password string) (model.Session, string, error)
	Logout(ctx context.Context) error
	UpdateProfile(ctx context.Context, update model.ProfileUpdate) (model.Session, error)
	Current() (model.Session, bool)
}

type authService struct {
	mu       sync.Mutex
	session  *model.Session
	store    kvstore.Store
	verifier CredentialVerifier

	jwtSecret     string
	tokenExpiry   time.Duration
	loginDelay    time.Duration
	registerDelay time.Duration
	avatar        string
	now           func() time.Time
}

func NewAuthService(store kvstore.Store, verifier CredentialVerifier, cfg *config.AuthConfig, latency *config.LatencyConfig) AuthService {
	return &authService{
		store:         store,
		verifier:      verifier,
		jwtSecret:     cfg.JWTSecret,
		tokenExpiry:   cfg.TokenExpiry,
		loginDelay:    latency.Login,
		registerDelay: latency.Register,
		avatar:        cfg.DemoAvatar,
		now:           time.Now,
	}
}

func (s *authService) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var session model.Session
	found, err := loadJSON(ctx, s.store, kvstore.KeySession, &session)
	if err != nil {
		logger.Error("Failed to load session state", err, nil)
		return err
	}
	if found {
		s.session = &session
		logger.Info("Session restored", map[string]interface{}{
			"session_id": session.ID,
			"email":      session.Email,
		})
	}
	return nil
}

// Login resolves after the configured delay. Holding the lock across the
// whole attempt keeps a second login from interleaving with the first.
func (s *authService) Login(ctx context.Context, email, password string) (model.Session, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	logger.Info("Login attempt", map[string]interface{}{
		"email": email,
	})

	if err := simulateLatency(ctx, s.loginDelay); err != nil {
		return model.Session{}, "", err
	}

	session, err := s.verifier.Verify(ctx, email, password)
	if err != nil {
		logger.Warn("Login failed: invalid credentials", map[string]interface{}{
			"email": email,
		})
		return model.Session{}, "", err
	}

	token, err := s.commitSession(ctx, session)
	if err != nil {
		return model.Session{}, "", err
	}

	logger.Info("User logged in successfully", map[string]interface{}{
		"session_id": session.ID,
		"email":      session.Email,
	})
	return session, token, nil
}

// Register succeeds when all three fields are non-empty and replaces any
// current session with a fresh identity.
func (s *authService) Register(ctx context.Context, name, email, password string) (model.Session, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	logger.Info("Registration attempt", map[string]interface{}{
		"email": email,
		"name":  name,
	})

	if err := requireFields(map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	}); err != nil {
		logger.Warn("Registration failed validation", map[string]interface{}{
			"error": err.Error(),
		})
		return model.Session{}, "", err
	}

	if err := simulateLatency(ctx, s.registerDelay); err != nil {
		return model.Session{}, "", err
	}

	session := model.Session{
		ID:     s.now().UnixMilli(),
		Email:  email,
		Name:   name,
		Avatar: s.avatar,
	}

	token, err := s.commitSession(ctx, session)
	if err != nil {
		return model.Session{}, "", err
	}

	logger.Info("User registered successfully", map[string]interface{}{
		"session_id": session.ID,
		"email":      session.Email,
	})
	return session, token, nil
}

// Logout clears the session and deletes the persisted copy. Logging out
// with no active session is a no-op.
func (s *authService) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return nil
	}

	if err := s.store.Delete(ctx, kvstore.KeySession); err != nil {
		logger.Error("Failed to delete persisted session", err, nil)
		return fmt.Errorf("%w: %v", ErrPersistFailed, err)
	}
	logger.Info("User logged out", map[string]interface{}{
		"session_id": s.session.ID,
	})
	s.session = nil
	return nil
}

// UpdateProfile shallow-merges the provided fields into the current
// session. Updating with no active session is an error, not an implicit
// login.
func (s *authService) UpdateProfile(ctx context.Context, update model.ProfileUpdate) (model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		logger.Warn("Profile update rejected: no active session", nil)
		return model.Session{}, ErrNoActiveSession
	}

	session := *s.session
	if update.Name != nil {
		session.Name = *update.Name
	}
	if update.Email != nil {
		session.Email = *update.Email
	}
	if update.Avatar != nil {
		session.Avatar = *update.Avatar
	}

	if err := persistJSON(ctx, s.store, kvstore.KeySession, session); err != nil {
		logger.Error("Failed to persist session", err, nil)
		return model.Session{}, err
	}
	s.session = &session

	logger.Info("Profile updated", map[string]interface{}{
		"session_id": session.ID,
	})
	return session, nil
}

func (s *authService) Current() (model.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return model.Session{}, false
	}
	return *s.session, true
}

func (s *authService) commitSession(ctx context.Context, session model.Session) (string, error) {
	if err := persistJSON(ctx, s.store, kvstore.KeySession, session); err != nil {
		logger.Error("Failed to persist session", err, nil)
		return "", err
	}

	token, err := util.GenerateToken(session.ID, session.Email, session.Name, s.jwtSecret, s.tokenExpiry)
	if err != nil {
		logger.Error("Failed to generate session token", err, nil)
		return "", err
	}

	s.session = &session
	return token, nil
}
