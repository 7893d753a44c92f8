// Package sessiontoken signs and verifies the session cookie value as an
// HS256 JWT.
package sessiontoken

import (
	"errors"
	"fmt"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"

	domainauth "github.com/dreamteam/stockme-dashboard/internal/domain/auth"
	"github.com/dreamteam/stockme-dashboard/internal/ports"
)

var _ ports.SessionCodec = (*Codec)(nil)

// ErrInvalidToken wraps every verification failure.
var ErrInvalidToken = errors.New("invalid session token")

// Claims is the cookie payload. Token is set only by stateless codecs and
// holds the bearer token sealed with AES-GCM, never the plain value.
type Claims struct {
	SessionID string `json:"sid"`
	Role      string `json:"role"`
	Name      string `json:"name,omitempty"`
	Email     string `json:"email,omitempty"`
	Token     string `json:"tok,omitempty"`
	jwtlib.RegisteredClaims
}

// Options configures a Codec.
type Options struct {
	Secret string
	// Stateless embeds the bearer token in the cookie; otherwise only the
	// session id and display fields are carried.
	Stateless bool
	Now       func() time.Time
}

// Codec implements ports.SessionCodec.
type Codec struct {
	secret    []byte
	stateless bool
	sealer    *sealer
	now       func() time.Time
}

// New builds a Codec. The secret must not be empty.
func New(opts Options) (*Codec, error) {
	if opts.Secret == "" {
		return nil, errors.New("session secret is required")
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	c := &Codec{secret: []byte(opts.Secret), stateless: opts.Stateless, now: now}
	if opts.Stateless {
		s, err := newSealer(c.secret)
		if err != nil {
			return nil, err
		}
		c.sealer = s
	}
	return c, nil
}

// Stateless reports whether the cookie carries the bearer token.
func (c *Codec) Stateless() bool { return c.stateless }

// Encode signs sess. The expiry is required.
func (c *Codec) Encode(sess domainauth.Session) (string, error) {
	if sess.ExpiresAt.IsZero() {
		return "", errors.New("session expiry is required")
	}
	issued := sess.IssuedAt
	if issued.IsZero() {
		issued = c.now()
	}
	claims := Claims{
		SessionID: sess.ID,
		Role:      string(sess.Role),
		Name:      sess.DisplayName,
		Email:     sess.Email,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   sess.UserID,
			IssuedAt:  jwtlib.NewNumericDate(issued),
			ExpiresAt: jwtlib.NewNumericDate(sess.ExpiresAt),
		},
	}
	if c.stateless {
		sealed, err := c.sealer.seal(sess.AccessToken, sess.ID)
		if err != nil {
			return "", fmt.Errorf("seal access token: %w", err)
		}
		claims.Token = sealed
	}
	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Decode verifies value and returns the session it describes. Stateful
// codecs return a session without AccessToken; callers load the rest from
// the store by ID.
func (c *Codec) Decode(value string) (domainauth.Session, error) {
	var claims Claims
	_, err := jwtlib.ParseWithClaims(value, &claims, func(*jwtlib.Token) (any, error) {
		return c.secret, nil
	},
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithExpirationRequired(),
		jwtlib.WithIssuedAt(),
		jwtlib.WithTimeFunc(c.now),
	)
	if err != nil {
		return domainauth.Session{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	sess := domainauth.Session{
		ID:          claims.SessionID,
		UserID:      claims.Subject,
		Role:        domainauth.NormalizeRole(claims.Role),
		DisplayName: claims.Name,
		Email:       claims.Email,
	}
	if claims.IssuedAt != nil {
		sess.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		sess.ExpiresAt = claims.ExpiresAt.Time
	}
	if c.stateless {
		token, err := c.sealer.open(claims.Token, claims.SessionID)
		if err != nil {
			return domainauth.Session{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
		}
		sess.AccessToken = token
	}
	return sess, nil
}
