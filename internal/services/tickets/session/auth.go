package session

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/golang-jwt/jwt/v5"
	apperrors "github.com/louisbranch/ticketdesk/internal/platform/errors"
	"github.com/louisbranch/ticketdesk/internal/platform/id"
	"github.com/louisbranch/ticketdesk/internal/services/tickets/storage"
	"golang.org/x/crypto/bcrypt"
)

const (
	// DemoUserID is the session id of the built-in demo account.
	DemoUserID int64 = 1

	// MinPasswordLength is the shortest password signup accepts.
	MinPasswordLength = 6

	defaultLatency      = 800 * time.Millisecond
	defaultDemoEmail    = "test@example.com"
	defaultDemoPassword = "password123"
	defaultDemoName     = "Test User"
)

var (
	// ErrInvalidCredentials indicates a login that does not match the demo account.
	ErrInvalidCredentials = apperrors.New(apperrors.CodeInvalidCredentials, "Invalid email or password")
	// ErrInvalidSignupData indicates signup input that fails the minimal checks.
	ErrInvalidSignupData = apperrors.New(apperrors.CodeInvalidSignupData, "Invalid signup data")
	// ErrUnauthenticated indicates a bearer token that does not match the stored session.
	ErrUnauthenticated = apperrors.New(apperrors.CodeUnauthenticated, "authentication required")
)

// Config tunes the authenticator. Zero values fall back to the demo defaults.
type Config struct {
	// Latency is how long every login and signup waits before resolving.
	Latency      time.Duration
	DemoEmail    string
	DemoPassword string
	DemoName     string
	TokenSecret  string
	// HashCost is the bcrypt cost for the demo password hash.
	HashCost int
}

// Authenticator signs users in against the demo account and records the
// resulting session.
type Authenticator struct {
	mu           sync.Mutex
	sessions     *Store
	slots        storage.SlotStore
	demoEmail    string
	demoName     string
	demoHash     []byte
	secret       []byte
	latency      time.Duration
	now          func() time.Time
	sleep        func(context.Context, time.Duration) error
	tokenIDMaker func() (string, error)
}

// NewAuthenticator builds an authenticator persisting sessions into slots.
// Negative latency disables the wait.
func NewAuthenticator(slots storage.SlotStore, cfg Config) (*Authenticator, error) {
	if slots == nil {
		return nil, fmt.Errorf("slot store is required")
	}
	if strings.TrimSpace(cfg.TokenSecret) == "" {
		return nil, fmt.Errorf("token secret is required")
	}
	if cfg.Latency == 0 {
		cfg.Latency = defaultLatency
	}
	if cfg.Latency < 0 {
		cfg.Latency = 0
	}
	if cfg.DemoEmail == "" {
		cfg.DemoEmail = defaultDemoEmail
	}
	if cfg.DemoPassword == "" {
		cfg.DemoPassword = defaultDemoPassword
	}
	if cfg.DemoName == "" {
		cfg.DemoName = defaultDemoName
	}
	if cfg.HashCost == 0 {
		cfg.HashCost = bcrypt.DefaultCost
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.DemoPassword), cfg.HashCost)
	if err != nil {
		return nil, fmt.Errorf("hash demo password: %w", err)
	}

	return &Authenticator{
		sessions:     NewStore(slots),
		slots:        slots,
		demoEmail:    cfg.DemoEmail,
		demoName:     cfg.DemoName,
		demoHash:     hash,
		secret:       []byte(cfg.TokenSecret),
		latency:      cfg.Latency,
		now:          time.Now,
		sleep:        sleepContext,
		tokenIDMaker: id.NewID,
	}, nil
}

// Sessions exposes the store the authenticator writes to.
func (a *Authenticator) Sessions() *Store {
	return a.sessions
}

// Authenticate waits the configured latency, then signs in the demo account
// when email and password match it.
func (a *Authenticator) Authenticate(ctx context.Context, email, password string) (Session, error) {
	if err := a.sleep(ctx, a.latency); err != nil {
		return Session{}, err
	}

	emailMatches := subtle.ConstantTimeCompare([]byte(email), []byte(a.demoEmail)) == 1
	passwordMatches := bcrypt.CompareHashAndPassword(a.demoHash, []byte(password)) == nil
	if !emailMatches || !passwordMatches {
		return Session{}, ErrInvalidCredentials
	}

	return a.start(ctx, DemoUserID, email, a.demoName)
}

// Register waits the configured latency, then signs in a new account when the
// email is non-empty and the password has at least MinPasswordLength
// characters. Name and email are stored as given.
func (a *Authenticator) Register(ctx context.Context, name, email, password string) (Session, error) {
	if err := a.sleep(ctx, a.latency); err != nil {
		return Session{}, err
	}

	if email == "" || utf8.RuneCountInString(password) < MinPasswordLength {
		return Session{}, ErrInvalidSignupData
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	userID, err := storage.NextSequence(ctx, a.slots, storage.SessionSequenceKey, DemoUserID)
	if err != nil {
		return Session{}, fmt.Errorf("next session id: %w", err)
	}
	return a.save(ctx, userID, email, name)
}

// Resolve returns the stored session when token matches it and carries a
// valid signature.
func (a *Authenticator) Resolve(ctx context.Context, token string) (Session, error) {
	if token == "" {
		return Session{}, ErrUnauthenticated
	}
	current, err := a.sessions.Read(ctx)
	if storage.IsNotFound(err) {
		return Session{}, ErrUnauthenticated
	}
	if err != nil {
		return Session{}, err
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(current.Token)) != 1 {
		return Session{}, ErrUnauthenticated
	}
	if err := a.verifyToken(token); err != nil {
		return Session{}, apperrors.Wrap(apperrors.CodeUnauthenticated, "verify session token", err)
	}
	return current, nil
}

func (a *Authenticator) start(ctx context.Context, userID int64, email, name string) (Session, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.save(ctx, userID, email, name)
}

func (a *Authenticator) save(ctx context.Context, userID int64, email, name string) (Session, error) {
	token, err := a.issueToken(email)
	if err != nil {
		return Session{}, err
	}
	created := Session{ID: userID, Email: email, Name: name, Token: token}
	if err := a.sessions.Save(ctx, created); err != nil {
		return Session{}, err
	}
	return created, nil
}

func (a *Authenticator) issueToken(subject string) (string, error) {
	tokenID, err := a.tokenIDMaker()
	if err != nil {
		return "", fmt.Errorf("generate token id: %w", err)
	}
	claims := jwt.RegisteredClaims{
		ID:       tokenID,
		Subject:  subject,
		IssuedAt: jwt.NewNumericDate(a.now()),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

func (a *Authenticator) verifyToken(token string) error {
	_, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(*jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuedAt())
	return err
}

// sleepContext waits for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
