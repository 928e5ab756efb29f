package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/mzansi-market/storefront/internal/core/domain"
	"github.com/mzansi-market/storefront/internal/core/ports"
	"github.com/mzansi-market/storefront/internal/pkg/metrics"
)

// SessionKey is the well-known durable storage key of the current identity.
const SessionKey = "user"

// SessionService is the process-wide holder of the current identity. It is
// either Anonymous (current == nil) or Authenticated.
type SessionService struct {
	mu      sync.RWMutex
	current *domain.Identity

	storage ports.KeyValueStore
	auth    ports.Authenticator
	tokens  ports.TokenIssuer
	log     zerolog.Logger
}

// NewSessionService builds the store and restores the previously persisted
// identity, if any. A malformed record is discarded and the store starts
// anonymous; a storage failure is returned.
func NewSessionService(
	ctx context.Context,
	storage ports.KeyValueStore,
	auth ports.Authenticator,
	tokens ports.TokenIssuer,
	log zerolog.Logger,
) (*SessionService, error) {
	s := &SessionService{storage: storage, auth: auth, tokens: tokens, log: log}
	if err := s.restore(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SessionService) restore(ctx context.Context) error {
	raw, err := s.storage.Get(ctx, SessionKey)
	if errors.Is(err, domain.ErrKeyNotFound) {
		s.log.Debug().Msg("no stored session, starting anonymous")
		return nil
	}
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}

	var identity domain.Identity
	if err := decodeErr(raw, &identity); err != nil {
		s.log.Warn().Err(err).Msg("stored session is malformed, discarding")
		if delErr := s.storage.Delete(ctx, SessionKey); delErr != nil {
			s.log.Warn().Err(delErr).Msg("failed to remove malformed session")
		}
		return nil
	}

	s.current = &identity
	metrics.SessionsTotal.WithLabelValues("restore", string(identity.Role)).Inc()
	s.log.Info().Str("identity_id", identity.ID).Str("role", string(identity.Role)).Msg("session restored")
	return nil
}

// decodeErr reports why raw is not a usable identity record.
func decodeErr(raw []byte, identity *domain.Identity) error {
	if err := json.Unmarshal(raw, identity); err != nil {
		return err
	}
	return identity.Validate()
}

// SignIn resolves the credentials to an identity and makes it current.
func (s *SessionService) SignIn(ctx context.Context, in ports.SignInInput) (*ports.Session, error) {
	email := strings.TrimSpace(in.Email)
	role, err := validateCredentials(email, in.Password, in.Role)
	if err != nil {
		metrics.SessionErrorsTotal.WithLabelValues("validation").Inc()
		return nil, err
	}

	identity, err := s.auth.Authenticate(ctx, email, in.Password, role)
	if err != nil {
		metrics.SessionErrorsTotal.WithLabelValues(reason(err)).Inc()
		return nil, err
	}
	return s.establish(ctx, identity, "sign_in")
}

// Register creates a new identity and makes it current.
func (s *SessionService) Register(ctx context.Context, in ports.RegisterInput) (*ports.Session, error) {
	email := strings.TrimSpace(in.Email)
	role, err := validateCredentials(email, in.Password, in.Role)
	if err != nil {
		metrics.SessionErrorsTotal.WithLabelValues("validation").Inc()
		return nil, err
	}

	name := strings.TrimSpace(in.DisplayName)
	if name == "" {
		name = domain.DisplayNameFromEmail(email)
	}
	identity, err := s.auth.Enroll(ctx, domain.Identity{
		Email:       email,
		Role:        role,
		DisplayName: name,
		Phone:       strings.TrimSpace(in.Phone),
	}, in.Password)
	if err != nil {
		metrics.SessionErrorsTotal.WithLabelValues(reason(err)).Inc()
		return nil, err
	}
	return s.establish(ctx, identity, "register")
}

// SignOut clears the in-memory identity and its durable copy.
func (s *SessionService) SignOut(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.Delete(ctx, SessionKey); err != nil {
		metrics.SessionErrorsTotal.WithLabelValues("storage").Inc()
		return fmt.Errorf("sign out: %w", err)
	}
	if s.current != nil {
		s.log.Info().Str("identity_id", s.current.ID).Msg("signed out")
	}
	s.current = nil
	metrics.SessionsTotal.WithLabelValues("sign_out", "").Inc()
	return nil
}

// Current returns a copy of the current identity.
func (s *SessionService) Current() (domain.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return domain.Identity{}, false
	}
	return *s.current, true
}

// establish persists identity before making it current, so a storage
// failure leaves the previous state in place.
func (s *SessionService) establish(ctx context.Context, identity domain.Identity, op string) (*ports.Session, error) {
	token, err := s.tokens.Issue(identity)
	if err != nil {
		return nil, fmt.Errorf("%s: issue token: %w", op, err)
	}
	record, err := json.Marshal(identity)
	if err != nil {
		return nil, fmt.Errorf("%s: encode session: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.Set(ctx, SessionKey, record); err != nil {
		metrics.SessionErrorsTotal.WithLabelValues("storage").Inc()
		s.log.Error().Err(err).Str("op", op).Msg("failed to persist session")
		return nil, fmt.Errorf("%s: persist session: %w", op, err)
	}
	s.current = &identity

	metrics.SessionsTotal.WithLabelValues(op, string(identity.Role)).Inc()
	s.log.Info().
		Str("op", op).
		Str("identity_id", identity.ID).
		Str("role", string(identity.Role)).
		Msg("session established")

	return &ports.Session{Identity: identity, Token: token}, nil
}

func validateCredentials(email, password, role string) (domain.Role, error) {
	local, domainPart, ok := strings.Cut(email, "@")
	if !ok || local == "" || domainPart == "" {
		return "", domain.Invalid("email %q is not valid", email)
	}
	if password == "" {
		return "", domain.Invalid("password is required")
	}
	return domain.ParseRole(role)
}

func reason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "credentials"
	case errors.Is(err, domain.ErrConflict):
		return "conflict"
	case errors.Is(err, domain.ErrValidation):
		return "validation"
	default:
		return "storage"
	}
}
