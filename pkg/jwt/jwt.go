package jwt

import (
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
	ErrRevokedToken = errors.New("token has been revoked")
)

// Claims represents session token claims.
type Claims struct {
	jwt.RegisteredClaims
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
}

// Manager signs and validates session tokens. Keys are generated at
// startup, so tokens do not survive a process restart and clients log
// in again.
type Manager struct {
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
	duration   time.Duration
	issuer     string

	// In-memory revocation store, keyed by user id. Entries expire with
	// the longest-lived token they could cover.
	revoked map[uint]time.Time
	mu      sync.RWMutex
}

// NewManager creates a new token manager.
func NewManager(duration time.Duration, issuer string) (*Manager, error) {
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return nil, err
	}

	return &Manager{
		privateKey: privateKey,
		publicKey:  &privateKey.PublicKey,
		duration:   duration,
		issuer:     issuer,
		revoked:    make(map[uint]time.Time),
	}, nil
}

// Generate creates a session token for the given user.
func (m *Manager) Generate(userID uint, username string) (token string, expiresAt int64, err error) {
	now := time.Now()

	// IssuedAt only carries second precision. A token minted in the
	// same second as a logout would fall below the revocation cutoff,
	// so nudge it onto the cutoff boundary.
	m.mu.RLock()
	cutoff, revoked := m.revoked[userID]
	m.mu.RUnlock()
	if revoked && now.Before(cutoff) {
		now = cutoff
	}

	exp := now.Add(m.duration)

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   strconv.FormatUint(uint64(userID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		UserID:   userID,
		Username: username,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(m.privateKey)
	if err != nil {
		return "", 0, err
	}
	return signed, exp.Unix(), nil
}

// Validate parses a token and returns its claims.
func (m *Manager) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, ErrInvalidToken
		}
		return m.publicKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	m.mu.RLock()
	cutoff, revoked := m.revoked[claims.UserID]
	m.mu.RUnlock()
	if revoked && claims.IssuedAt != nil && claims.IssuedAt.Time.Before(cutoff) {
		return nil, ErrRevokedToken
	}

	return claims, nil
}

// Revoke invalidates every token issued to the user up to and
// including the current second. The cutoff is aligned to the next
// second boundary so it compares cleanly against the second-precision
// IssuedAt claim.
func (m *Manager) Revoke(userID uint) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.revoked[userID] = time.Now().Truncate(time.Second).Add(time.Second)
}
