// Package services contains the application services of the roomsync
// client. SessionService is the single authentication entry point: it picks
// the backend strategy through the probe and keeps the persisted current
// session in step with every successful sign-in.
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/roomsync/internal/client/models"
	"github.com/dmitrijs2005/roomsync/internal/client/storage"
	"github.com/dmitrijs2005/roomsync/internal/client/strategy"
	"github.com/dmitrijs2005/roomsync/internal/common"
	"github.com/dmitrijs2005/roomsync/internal/logging"
)

// Prober is the subset of *probe.Probe used here.
type Prober interface {
	Check(ctx context.Context) bool
	Recheck(ctx context.Context) bool
	Mode() models.Mode
}

// DemoProvider supplies the advertised onboarding credentials.
type DemoProvider interface {
	DemoCredentials() models.Credentials
}

// SessionService defines authentication operations, uniform across modes.
//
// Contract:
//   - SignIn / SignUp: authenticate and overwrite the persisted session.
//   - SignOut: best-effort remote invalidation, then clear the persisted
//     session. Never fails.
//   - Mode: cached backend mode; RecheckBackend re-probes.
//   - Strategy: the strategy for the current mode, probing if needed.
type SessionService interface {
	SignIn(ctx context.Context, phone, password string) (models.AuthResponse, error)
	SignUp(ctx context.Context, name, phone, password string) (models.AuthResponse, error)
	SignOut(ctx context.Context, token string)
	Mode() models.Mode
	RecheckBackend(ctx context.Context) bool
	DemoCredentials() models.Credentials
	Strategy(ctx context.Context) strategy.Strategy
}

type sessionService struct {
	probe  Prober
	remote strategy.Strategy
	local  strategy.Strategy
	demo   DemoProvider
	kv     storage.Store
	log    logging.Logger
}

// NewSessionService wires the two strategies behind probe.
func NewSessionService(probe Prober, remote, local strategy.Strategy, demo DemoProvider, kv storage.Store, log logging.Logger) SessionService {
	return &sessionService{
		probe:  probe,
		remote: remote,
		local:  local,
		demo:   demo,
		kv:     kv,
		log:    log,
	}
}

func (s *sessionService) Strategy(ctx context.Context) strategy.Strategy {
	if s.probe.Check(ctx) {
		return s.remote
	}
	return s.local
}

func (s *sessionService) SignIn(ctx context.Context, phone, password string) (models.AuthResponse, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" || password == "" {
		return models.AuthResponse{}, common.ErrMissingFields
	}

	st := s.Strategy(ctx)
	resp, err := st.SignIn(ctx, phone, password)
	if err != nil {
		s.log.Info(ctx, "sign in failed", "mode", st.Mode(), "err", err)
		return models.AuthResponse{}, fmt.Errorf("sign in: %w", err)
	}
	if err := s.persist(ctx, resp); err != nil {
		return models.AuthResponse{}, err
	}

	s.log.Info(ctx, "signed in", "mode", st.Mode(), "user", resp.User.ID)
	return resp, nil
}

// SignUp creates the account and signs in. A failure may still have
// created the account; callers should suggest signing in rather than
// signing up again.
func (s *sessionService) SignUp(ctx context.Context, name, phone, password string) (models.AuthResponse, error) {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	if name == "" || phone == "" || password == "" {
		return models.AuthResponse{}, common.ErrMissingFields
	}

	st := s.Strategy(ctx)
	resp, err := st.SignUp(ctx, name, phone, password)
	if err != nil {
		s.log.Info(ctx, "sign up failed", "mode", st.Mode(), "err", err)
		return models.AuthResponse{}, fmt.Errorf("sign up: %w", err)
	}
	if err := s.persist(ctx, resp); err != nil {
		return models.AuthResponse{}, err
	}

	s.log.Info(ctx, "signed up", "mode", st.Mode(), "user", resp.User.ID)
	return resp, nil
}

func (s *sessionService) SignOut(ctx context.Context, token string) {
	if token != "" && !models.IsLocalToken(token) && s.probe.Mode() == models.ModeRemote {
		if err := s.remote.SignOut(ctx, token); err != nil {
			s.log.Warn(ctx, "remote sign out failed, clearing local session anyway", "err", err)
		}
	}
	if err := storage.ClearSession(ctx, s.kv); err != nil {
		s.log.Error(ctx, "failed to clear persisted session", "err", err)
	}
}

func (s *sessionService) Mode() models.Mode {
	return s.probe.Mode()
}

func (s *sessionService) RecheckBackend(ctx context.Context) bool {
	before := s.probe.Mode()
	ok := s.probe.Recheck(ctx)
	if after := s.probe.Mode(); after != before {
		s.log.Info(ctx, "backend mode changed", "from", before, "to", after)
	}
	return ok
}

func (s *sessionService) DemoCredentials() models.Credentials {
	return s.demo.DemoCredentials()
}

func (s *sessionService) persist(ctx context.Context, resp models.AuthResponse) error {
	user := resp.User.Clone()
	if err := storage.SaveSession(ctx, s.kv, models.Session{User: &user, AccessToken: resp.AccessToken}); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}
