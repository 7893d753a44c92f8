package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dreamteam/stockme-dashboard/internal/backend"
	domainauth "github.com/dreamteam/stockme-dashboard/internal/domain/auth"
	apperrors "github.com/dreamteam/stockme-dashboard/internal/errors"
	"github.com/dreamteam/stockme-dashboard/internal/ports"
)

const (
	// DefaultSessionTTL bounds a session when no TTL is configured.
	DefaultSessionTTL = 8 * time.Hour

	msgLoginFailed      = "Unable to sign in with those credentials."
	msgRegisterFailed   = "Unable to register. Please verify your details and try again."
	msgSessionStart     = "Unable to start your session. Please try again."
	msgRegisterComplete = "Account created successfully. Signing you in…"
)

// Session resolution outcomes reported to metrics.
const (
	SessionValid   = "valid"
	SessionAbsent  = "absent"
	SessionInvalid = "invalid"
	SessionExpired = "expired"
)

// ErrNoSession is returned by Resolve when the request carries no usable session.
var ErrNoSession = errors.New("no session")

type authObserver interface {
	ObserveAuth(kind string, err error)
	ObserveSession(result string)
}

type noopAuthObserver struct{}

func (noopAuthObserver) ObserveAuth(string, error) {}
func (noopAuthObserver) ObserveSession(string)     {}

// SessionOptions configures how sessions are encoded and where they live.
type SessionOptions struct {
	Codec ports.SessionCodec // Required
	Store ports.SessionStore // Optional: nil keeps sessions entirely in the cookie
	TTL   time.Duration
}

// AuthObservability groups optional logging, metrics and clock overrides.
type AuthObservability struct {
	Logger  *slog.Logger
	Metrics authObserver
	Now     func() time.Time
}

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Gateway  ports.AuthGateway
	Sessions SessionOptions
	Observe  AuthObservability
}

// AuthService exchanges credentials with the backend and manages the resulting sessions.
type AuthService struct {
	gateway ports.AuthGateway
	codec   ports.SessionCodec
	store   ports.SessionStore
	ttl     time.Duration
	logger  *slog.Logger
	metrics authObserver
	now     func() time.Time
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	if opts.Gateway == nil {
		panic("AuthGateway is required")
	}
	if opts.Sessions.Codec == nil {
		panic("SessionCodec is required")
	}
	s := &AuthService{
		gateway: opts.Gateway,
		codec:   opts.Sessions.Codec,
		store:   opts.Sessions.Store,
		ttl:     opts.Sessions.TTL,
		logger:  opts.Observe.Logger,
		metrics: opts.Observe.Metrics,
		now:     opts.Observe.Now,
	}
	if s.ttl <= 0 {
		s.ttl = DefaultSessionTTL
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.metrics == nil {
		s.metrics = noopAuthObserver{}
	}
	if s.now == nil {
		s.now = time.Now
	}
	s.logger = s.logger.With("component", "auth_service")
	return s
}

// Stateful reports whether sessions are kept in a server-side store.
func (s *AuthService) Stateful() bool { return s.store != nil }

// Login exchanges credentials for a bearer token, resolves the role and
// returns a committed session. Nothing is persisted on failure.
func (s *AuthService) Login(ctx context.Context, creds domainauth.Credentials) (*domainauth.Session, error) {
	sess, err := s.login(ctx, creds)
	s.metrics.ObserveAuth("login", err)
	return sess, err
}

func (s *AuthService) login(ctx context.Context, creds domainauth.Credentials) (*domainauth.Session, error) {
	if err := creds.Validate(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, err.Error())
	}

	res, err := s.gateway.Login(ctx, creds)
	if err != nil {
		return nil, rejectedOr(err, apperrors.ErrCodeUnauthenticated, msgLoginFailed)
	}

	email := res.Email
	if strings.TrimSpace(email) == "" {
		email = creds.Email
	}

	now := s.now()
	sess := domainauth.Session{
		ID:          uuid.NewString(),
		UserID:      res.UserID,
		Role:        s.lookupRole(ctx, res.Token),
		AccessToken: res.Token,
		DisplayName: res.Name,
		Email:       email,
		IssuedAt:    now,
		ExpiresAt:   now.Add(s.ttl),
	}
	if err := sess.Validate(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeUnauthenticated, msgLoginFailed)
	}
	if s.store != nil {
		if err := s.store.Save(ctx, sess); err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, msgSessionStart)
		}
	}

	s.logger.InfoContext(ctx, "user signed in", "user_id", sess.UserID, "role", sess.Role)
	return &sess, nil
}

// lookupRole asks the backend for the token's role. Any failure resolves to staff.
func (s *AuthService) lookupRole(ctx context.Context, token string) domainauth.Role {
	profile, err := s.gateway.Profile(ctx, token)
	if err != nil {
		s.logger.WarnContext(ctx, "role lookup failed, defaulting to staff", "error", err)
		return domainauth.RoleStaff
	}
	return domainauth.NormalizeRole(profile.Role)
}

// RegisterResult reports a registration and the sign-in that follows it.
// SignInErr is set when the account was created but signing in failed.
type RegisterResult struct {
	Registered bool
	Message    string
	Session    *domainauth.Session
	SignInErr  error
}

// Register creates an account and signs the new user in.
func (s *AuthService) Register(ctx context.Context, reg domainauth.Registration) (*RegisterResult, error) {
	reg.Name = strings.TrimSpace(reg.Name)
	reg.Tel = strings.TrimSpace(reg.Tel)
	reg.Email = strings.TrimSpace(reg.Email)

	err := s.register(ctx, reg)
	s.metrics.ObserveAuth("register", err)
	if err != nil {
		return nil, err
	}

	result := &RegisterResult{Registered: true, Message: msgRegisterComplete}
	sess, err := s.Login(ctx, reg.Credentials())
	if err != nil {
		result.SignInErr = err
		return result, nil
	}
	result.Session = sess
	return result, nil
}

func (s *AuthService) register(ctx context.Context, reg domainauth.Registration) error {
	if err := reg.Validate(); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeValidation, err.Error())
	}
	if err := s.gateway.Register(ctx, reg); err != nil {
		return rejectedOr(err, apperrors.ErrCodeValidation, msgRegisterFailed)
	}
	s.logger.InfoContext(ctx, "account registered", "role", reg.Role)
	return nil
}

// Resolve verifies a cookie value and returns the live session it names.
// Missing, tampered, revoked and expired sessions all return ErrNoSession.
func (s *AuthService) Resolve(ctx context.Context, value string) (*domainauth.Session, error) {
	sess, result, err := s.resolve(ctx, value)
	s.metrics.ObserveSession(result)
	return sess, err
}

func (s *AuthService) resolve(ctx context.Context, value string) (*domainauth.Session, string, error) {
	if value == "" {
		return nil, SessionAbsent, ErrNoSession
	}
	claims, err := s.codec.Decode(value)
	if err != nil {
		s.logger.DebugContext(ctx, "session token rejected", "error", err)
		return nil, SessionInvalid, ErrNoSession
	}

	sess := claims
	if s.store != nil {
		stored, getErr := s.store.Get(ctx, claims.ID)
		switch {
		case errors.Is(getErr, ports.ErrSessionNotFound):
			return nil, SessionAbsent, ErrNoSession
		case getErr != nil:
			s.logger.ErrorContext(ctx, "session store lookup failed", "error", getErr)
			return nil, SessionInvalid, errors.Join(ErrNoSession, getErr)
		}
		if stored.UserID != claims.UserID {
			return nil, SessionInvalid, ErrNoSession
		}
		sess = stored
	}

	if sess.Expired(s.now()) {
		if s.store != nil {
			_ = s.store.Delete(ctx, sess.ID)
		}
		return nil, SessionExpired, ErrNoSession
	}
	sess.Role = domainauth.NormalizeRole(string(sess.Role))
	if err := sess.Validate(); err != nil {
		return nil, SessionInvalid, ErrNoSession
	}
	return &sess, SessionValid, nil
}

// Logout tells the backend to drop the token and removes the stored session.
// The backend call is best effort.
func (s *AuthService) Logout(ctx context.Context, sess *domainauth.Session) error {
	if sess == nil {
		return nil
	}
	if sess.AccessToken != "" {
		if err := s.gateway.Logout(ctx, sess.AccessToken); err != nil {
			var cfgErr *backend.ConfigError
			if errors.As(err, &cfgErr) {
				s.logger.DebugContext(ctx, "backend logout skipped", "reason", cfgErr.Message)
			} else {
				s.logger.WarnContext(ctx, "backend logout failed", "error", err)
			}
		}
	}
	if s.store == nil || sess.ID == "" {
		return nil
	}
	if err := s.store.Delete(ctx, sess.ID); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "delete session")
	}
	s.logger.InfoContext(ctx, "user signed out", "user_id", sess.UserID)
	return nil
}

// IssueToken encodes sess as a signed cookie value.
func (s *AuthService) IssueToken(sess *domainauth.Session) (string, error) {
	if sess == nil {
		return "", ErrNoSession
	}
	return s.codec.Encode(*sess)
}

// rejectedOr maps a backend refusal to code with its message (or fallback),
// and anything else through backend.Translate.
func rejectedOr(err error, code apperrors.ErrorCode, fallback string) error {
	var rejected *ports.RejectedError
	if errors.As(err, &rejected) {
		msg := rejected.Message
		if msg == "" {
			msg = fallback
		}
		return apperrors.Wrap(err, code, msg)
	}
	return backend.Translate(err, fallback)
}
