package main

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	ticketExpiry      = 10 * time.Minute
	joinRateWindow    = 60 * time.Second
	maxJoinAttempts   = 10
	ticketIssuer      = "arena"
	ticketSigningName = "HS256"
)

// ErrInvalidTicket is returned for missing, expired or forged join tickets
var ErrInvalidTicket = errors.New("invalid join ticket")

// ticketClaims is the payload of a join ticket
type ticketClaims struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// Auth verifies signed join tickets issued by a trusted lobby
type Auth struct {
	secret []byte

	// Rate limiting for failed joins (IP -> attempts)
	rateMu  sync.Mutex
	rateMap map[string]*rateEntry
}

type rateEntry struct {
	Count   int
	ResetAt time.Time
}

// NewAuth creates a ticket verifier. Returns nil when secret is empty, meaning
// tickets are not required.
func NewAuth(secret string) *Auth {
	if secret == "" {
		return nil
	}
	return &Auth{
		secret:  []byte(secret),
		rateMap: make(map[string]*rateEntry),
	}
}

// IssueTicket signs a ticket granting name entry for ttl (ticketExpiry if zero)
func (a *Auth) IssueTicket(name string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = ticketExpiry
	}
	now := time.Now()
	claims := ticketClaims{
		Name: name,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    ticketIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

// ValidateTicket checks a ticket and returns the display name it grants
func (a *Auth) ValidateTicket(tokenStr string) (string, error) {
	if tokenStr == "" {
		return "", fmt.Errorf("%w: missing", ErrInvalidTicket)
	}
	var claims ticketClaims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{ticketSigningName}), jwt.WithIssuer(ticketIssuer))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidTicket, err)
	}
	if !token.Valid {
		return "", ErrInvalidTicket
	}
	return claims.Name, nil
}

// Allow counts a join attempt from ip and reports whether it is within the limit
func (a *Auth) Allow(ip string) bool {
	a.rateMu.Lock()
	defer a.rateMu.Unlock()

	now := time.Now()
	entry, ok := a.rateMap[ip]
	if !ok || now.After(entry.ResetAt) {
		a.rateMap[ip] = &rateEntry{Count: 1, ResetAt: now.Add(joinRateWindow)}
		return true
	}
	entry.Count++
	return entry.Count <= maxJoinAttempts
}
