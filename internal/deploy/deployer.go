package deploy

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"github.com/keshon/interactives/internal/interactive"
)

// Deployer synchronizes several scopes one after the other, paced so a
// many-guild deploy stays under the route limits.
type Deployer struct {
	sync    *Synchronizer
	limiter *rate.Limiter
	log     *log.Logger
}

// NewDeployer paces scopes at perSecond. A non-positive rate disables pacing.
func NewDeployer(s *Synchronizer, perSecond float64, logger *log.Logger) *Deployer {
	limit := rate.Inf
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
	}
	return &Deployer{sync: s, limiter: rate.NewLimiter(limit, 1), log: logger}
}

// Deploy stops at the first failing scope and returns the results gathered
// so far, including the partial result of the failing one.
func (d *Deployer) Deploy(ctx context.Context, defs []*interactive.Command, scopes []Scope, opts ...Option) ([]*Result, error) {
	results := make([]*Result, 0, len(scopes))
	for _, scope := range scopes {
		if err := d.limiter.Wait(ctx); err != nil {
			return results, err
		}
		d.log.Debug("Deploying", "scope", scope, "commands", len(defs))

		res, err := d.sync.Synchronize(ctx, defs, scope, opts...)
		if res != nil {
			results = append(results, res)
		}
		if err != nil {
			return results, &ScopeError{Scope: scope, Err: err}
		}
	}
	return results, nil
}

// ScopeError names the scope a deploy stopped at.
type ScopeError struct {
	Scope Scope
	Err   error
}

func (e *ScopeError) Error() string { return fmt.Sprintf("deploy to %s: %v", e.Scope, e.Err) }
func (e *ScopeError) Unwrap() error { return e.Err }

// FingerprintStore remembers what was last deployed to each scope.
type FingerprintStore interface {
	Fingerprint(scope string) (string, error)
	SetFingerprint(scope, fp string) error
}

// DeployChanged deploys only to scopes whose last recorded fingerprint
// differs from defs, and records the new fingerprint for every scope that
// fully succeeded. Asking for permissions deploys every scope, since grants
// can change without the definitions changing.
func (d *Deployer) DeployChanged(ctx context.Context, defs []*interactive.Command, scopes []Scope, store FingerprintStore, opts ...Option) ([]*Result, []Scope, error) {
	var o syncOptions
	for _, opt := range opts {
		opt(&o)
	}
	fp := Fingerprint(interactive.ApplicationCommands(defs))

	var pending, skipped []Scope
	for _, scope := range scopes {
		prev, err := store.Fingerprint(scope.String())
		if err != nil {
			return nil, nil, err
		}
		if prev == fp && !o.permissions && !o.force {
			d.log.Info("Commands unchanged, skipping", "scope", scope)
			skipped = append(skipped, scope)
			continue
		}
		pending = append(pending, scope)
	}

	results, err := d.Deploy(ctx, defs, pending, opts...)
	var failed *ScopeError
	errors.As(err, &failed)
	for _, res := range results {
		if failed != nil && res.Scope == failed.Scope {
			continue
		}
		if e := store.SetFingerprint(res.Scope.String(), fp); e != nil {
			d.log.Warn("Failed to record fingerprint", "scope", res.Scope, "err", e)
		}
	}
	return results, skipped, err
}
