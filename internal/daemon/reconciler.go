package daemon

import (
	"context"
	"log/slog"
	"time"
)

// ReconcileResult counts the repairs of one reconciliation pass.
type ReconcileResult struct {
	// Orphaned borders tracked a window that no longer exists.
	Orphaned int
	// Adopted windows had no border although their rule enables one.
	Adopted int
}

// Reconcilable is implemented by Manager.
type Reconcilable interface {
	Reconcile() (ReconcileResult, error)
}

// ReconcilerConfig holds configuration for the reconciler.
type ReconcilerConfig struct {
	Interval time.Duration
	Logger   *slog.Logger
}

// Reconciler periodically checks for state drift and corrects it. Events
// lost by the X connection (a DestroyNotify racing the subscription, say)
// are repaired here.
type Reconciler struct {
	interval time.Duration
	target   Reconcilable
	logger   *slog.Logger
}

// NewReconciler creates a new reconciler with the given configuration.
func NewReconciler(cfg ReconcilerConfig, target Reconcilable) *Reconciler {
	interval := cfg.Interval
	if interval <= 0 {
		interval = 10 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Reconciler{
		interval: interval,
		target:   target,
		logger:   logger,
	}
}

// Run starts the reconciliation loop. Blocks until context is cancelled.
func (r *Reconciler) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info("reconciler started", "interval", r.interval)

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("reconciler stopped")
			return
		case <-ticker.C:
			r.reconcile()
		}
	}
}

// reconcile performs a single reconciliation pass.
func (r *Reconciler) reconcile() ReconcileResult {
	// Recover from panics to prevent crashing the daemon
	defer func() {
		if err := recover(); err != nil {
			r.logger.Error("reconciler panic recovered", "error", err)
		}
	}()

	res, err := r.target.Reconcile()
	if err != nil {
		r.logger.Error("reconciler: failed to reconcile", "error", err)
		return res
	}
	if res.Orphaned > 0 || res.Adopted > 0 {
		r.logger.Info("reconciler: repaired drift",
			"orphaned", res.Orphaned,
			"adopted", res.Adopted)
	}
	return res
}

// ReconcileNow triggers an immediate reconciliation pass.
func (r *Reconciler) ReconcileNow() ReconcileResult {
	return r.reconcile()
}
