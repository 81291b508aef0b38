// Package probe decides whether the remote backend is usable and caches the
// answer until it is explicitly invalidated.
package probe

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/roomsync/internal/client/models"
	"github.com/dmitrijs2005/roomsync/internal/logging"
)

// DefaultTimeout bounds a single health request.
const DefaultTimeout = 3 * time.Second

// HealthChecker performs one health request. Any error means "not usable".
type HealthChecker interface {
	Health(ctx context.Context) error
}

type State int

const (
	StateUnknown State = iota
	StateRemote
	StateLocal
)

func (s State) String() string {
	switch s {
	case StateRemote:
		return "remote"
	case StateLocal:
		return "local"
	default:
		return "unknown"
	}
}

// Probe is the backend selection state machine:
//
//	Unknown --Check--> Remote | Local
//	Remote | Local --Invalidate--> Unknown
//
// Only Check in the Unknown state issues a request.
type Probe struct {
	mu      sync.Mutex
	state   State
	checker HealthChecker
	timeout time.Duration
	log     logging.Logger
}

func New(checker HealthChecker, timeout time.Duration, log logging.Logger) *Probe {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Probe{checker: checker, timeout: timeout, log: log}
}

// Check reports whether the remote backend is usable, probing at most once
// until Invalidate. Concurrent callers wait for the same probe.
func (p *Probe) Check(ctx context.Context) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.checkLocked(ctx)
}

// Recheck drops the cached answer and probes again.
func (p *Probe) Recheck(ctx context.Context) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state = StateUnknown
	return p.checkLocked(ctx)
}

// Invalidate forgets the cached answer.
func (p *Probe) Invalidate() {
	p.mu.Lock()
	p.state = StateUnknown
	p.mu.Unlock()
}

func (p *Probe) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Mode is the cached mode. Before the first probe it is remote.
func (p *Probe) Mode() models.Mode {
	if p.State() == StateLocal {
		return models.ModeLocal
	}
	return models.ModeRemote
}

func (p *Probe) checkLocked(ctx context.Context) bool {
	if p.state != StateUnknown {
		return p.state == StateRemote
	}

	cctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	start := time.Now()
	if err := p.checker.Health(cctx); err != nil {
		p.state = StateLocal
		p.log.Warn(ctx, "remote backend unavailable, using local mode", "err", err, "elapsed", time.Since(start))
		return false
	}

	p.state = StateRemote
	p.log.Info(ctx, "remote backend available", "elapsed", time.Since(start))
	return true
}
