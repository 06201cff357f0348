// Package services file: services/token_service.go
package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"go-trip-ops/logger"
)

// ------------------- presence token issuing & verification -------------------

// TokenServiceInterface mints and verifies rotating proof-of-presence tokens.
type TokenServiceInterface interface {
	Issue(tripID, sessionID uuid.UUID) (string, time.Time, error)
	Verify(payload string) (uuid.UUID, uuid.UUID, error)
}

// presenceClaims is the signed token body: enough for the verifier to
// recompute validity without a database round trip.
type presenceClaims struct {
	TripID    string `json:"trip_id"`
	SessionID string `json:"session_id"`
	jwt.RegisteredClaims
}

// TokenService signs presence tokens with an HMAC key. Every Issue call
// mints a fresh token; rotation cadence is driven by the client poll, and
// verification trusts only the expiry embedded in the token itself.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	grace  time.Duration
}

// NewTokenService creates a TokenService with the given signing secret,
// validity window and verification grace (clock-skew/scan-latency absorber).
func NewTokenService(secret string, ttl, grace time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl, grace: grace}
}

// Issue mints a token scoped to exactly one (trip, session) pair.
func (s *TokenService) Issue(tripID, sessionID uuid.UUID) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.ttl)

	claims := presenceClaims{
		TripID:    tripID.String(),
		SessionID: sessionID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	payload, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		logger.Error.Printf("Issue: failed to sign presence token for session %s: %v", sessionID, err)
		return "", time.Time{}, err
	}

	logger.Debug.Printf("Issue: minted presence token for trip=%s session=%s, expires %s",
		tripID, sessionID, expiresAt.Format(time.RFC3339))
	return payload, expiresAt, nil
}

// Verify checks the integrity tag, then the embedded expiry (with grace).
// It deliberately does not care whether the token is "the latest" for its
// session; a brief overlap window after rotation is expected.
func (s *TokenService) Verify(payload string) (uuid.UUID, uuid.UUID, error) {
	claims := &presenceClaims{}
	_, err := jwt.ParseWithClaims(payload, claims,
		func(t *jwt.Token) (interface{}, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(s.grace),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			logger.Warn.Printf("Verify: expired presence token presented: %v", err)
			return uuid.Nil, uuid.Nil, ErrExpiredToken
		}
		logger.Warn.Printf("Verify: rejected presence token: %v", err)
		return uuid.Nil, uuid.Nil, ErrInvalidToken
	}

	tripID, err := uuid.Parse(claims.TripID)
	if err != nil {
		return uuid.Nil, uuid.Nil, ErrInvalidToken
	}
	sessionID, err := uuid.Parse(claims.SessionID)
	if err != nil {
		return uuid.Nil, uuid.Nil, ErrInvalidToken
	}
	return tripID, sessionID, nil
}
