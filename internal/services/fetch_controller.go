// Package services implements the application layer (use cases)
// following hexagonal architecture principles.
package services

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/xvierd/kicks-cli/internal/domain"
	"github.com/xvierd/kicks-cli/internal/ports"
)

// DefaultFetchTimeout bounds a single request when no timeout is configured.
const DefaultFetchTimeout = 10 * time.Second

// FetchRequest is a fetch the controller has decided to issue.
type FetchRequest struct {
	Token    uint64
	Identity domain.UserIdentity
}

// FetchResult is the outcome of executing a FetchRequest.
type FetchResult struct {
	Token    uint64
	Identity domain.UserIdentity
	Count    domain.KickCount
	Err      error
}

// FetchController owns the fetch state for one view. Each identity change
// issues exactly one request, and only the newest request may settle the
// state.
type FetchController struct {
	source  ports.KickSource
	timeout time.Duration
	logger  *log.Logger

	mu    sync.Mutex
	seq   uint64
	last  domain.UserIdentity
	state domain.FetchState
}

// NewFetchController creates an idle controller.
func NewFetchController(source ports.KickSource, timeout time.Duration, logger *log.Logger) *FetchController {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &FetchController{
		source:  source,
		timeout: timeout,
		logger:  logger,
		state:   domain.FetchState{Phase: domain.PhaseIdle},
	}
}

// State returns a copy of the current state.
func (c *FetchController) State() domain.FetchState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// OnIdentityChange reacts to a new identity value. It returns a request when
// one must be issued. A nil identity issues nothing and keeps the displayed
// count.
func (c *FetchController) OnIdentityChange(id *domain.UserIdentity) (FetchRequest, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if id == nil || id.IsZero() {
		c.last = ""
		return FetchRequest{}, false
	}
	if *id == c.last {
		return FetchRequest{}, false
	}
	c.last = *id
	return c.beginLocked(*id), true
}

// Refresh re-requests the current identity on explicit user action.
func (c *FetchController) Refresh() (FetchRequest, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.last.IsZero() {
		return FetchRequest{}, false
	}
	return c.beginLocked(c.last), true
}

func (c *FetchController) beginLocked(id domain.UserIdentity) FetchRequest {
	c.seq++
	c.state.Phase = domain.PhaseLoading
	c.state.Identity = id
	c.logger.Debug("fetch issued", "user", id, "token", c.seq)
	return FetchRequest{Token: c.seq, Identity: id}
}

// Execute performs the request. It always returns a result; failures of
// any kind are carried in FetchResult.Err.
func (c *FetchController) Execute(ctx context.Context, req FetchRequest) (res FetchResult) {
	res = FetchResult{Token: req.Token, Identity: req.Identity}

	defer func() {
		if r := recover(); r != nil {
			res.Count = 0
			res.Err = fmt.Errorf("%w: %v", domain.ErrNetworkFailure, r)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	count, err := c.source.DailyKicks(ctx, req.Identity)
	if err != nil {
		res.Err = err
		return res
	}
	res.Count = count
	return res
}

// Apply settles the state with res if it answers the newest request.
// It reports whether the result was applied.
func (c *FetchController) Apply(res FetchResult) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if res.Token != c.seq || c.state.Phase != domain.PhaseLoading {
		c.logger.Debug("stale fetch dropped", "user", res.Identity, "token", res.Token, "latest", c.seq)
		return false
	}

	c.state.Phase = domain.PhaseSettled
	c.state.HasSettled = true
	c.state.Identity = res.Identity
	c.state.Err = res.Err
	if res.Err != nil {
		c.state.Count = 0
		c.logger.Warn("fetch failed", "user", res.Identity, "outcome", domain.OutcomeOf(res.Err), "err", res.Err)
		return true
	}
	c.state.Count = res.Count
	c.logger.Info("kicks fetched", "user", res.Identity, "total", int(res.Count))
	return true
}

// Fetch runs a full identity change synchronously and returns the settled
// state.
func (c *FetchController) Fetch(ctx context.Context, id domain.UserIdentity) domain.FetchState {
	req, ok := c.OnIdentityChange(id.Ptr())
	if !ok {
		req, ok = c.Refresh()
	}
	if !ok {
		return c.State()
	}
	c.Apply(c.Execute(ctx, req))
	return c.State()
}
