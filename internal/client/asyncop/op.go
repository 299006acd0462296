// Package asyncop tracks the loading and error status of one channel of
// backend calls (search, auth or saved-article mutations).
//
// Each call issues a generation number. Only the newest call may write the
// status fields; a call that settles after a newer one started leaves them
// untouched and returns common.ErrSuperseded so the caller can drop its
// result.
//
// Mutate is the variant for calls whose effect is already committed when fn
// returns: a stale mutation still reports its own outcome, only the status
// fields are left to the newer call.
package asyncop

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/newsexplorer/internal/common"
	"github.com/dmitrijs2005/newsexplorer/internal/logging"
)

// Op is the status of one call channel. The zero value is not usable; use New.
type Op struct {
	name string
	log  logging.Logger

	mu      sync.Mutex
	gen     uint64
	loading bool
	err     error
}

// New returns an idle Op. name is used in log records.
func New(name string, log logging.Logger) *Op {
	if log == nil {
		log = logging.Nop()
	}
	return &Op{name: name, log: log.With("op", name)}
}

func (o *Op) Name() string { return o.name }

// Loading reports whether the newest call is still in flight.
func (o *Op) Loading() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.loading
}

// Err returns the failure recorded by the newest settled call, if any.
func (o *Op) Err() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.err
}

// ClearError forgets the recorded failure. Loading is not affected.
func (o *Op) ClearError() {
	o.mu.Lock()
	o.err = nil
	o.mu.Unlock()
}

func (o *Op) begin() uint64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.gen++
	o.loading = true
	o.err = nil
	return o.gen
}

// settle records the outcome of call gen and reports whether gen was current.
func (o *Op) settle(gen uint64, err error) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if gen != o.gen {
		return false
	}
	o.loading = false
	o.err = err
	return true
}

// Run executes fn on op's channel. The value and error of fn are returned
// unchanged when the call is still current. A stale call returns fn's value
// with an error matching common.ErrSuperseded (and fn's error, if any).
func Run[T any](ctx context.Context, op *Op, fn func(context.Context) (T, error)) (T, error) {
	gen := op.begin()

	v, err := fn(ctx)

	if !op.settle(gen, err) {
		op.log.Debug(ctx, "stale result dropped", "generation", gen, "error", err)
		return v, errors.Join(common.ErrSuperseded, err)
	}
	if err != nil {
		op.log.Error(ctx, "operation failed", "error", err)
		return v, err
	}
	return v, nil
}

// Do is Run for calls without a result value.
func Do(ctx context.Context, op *Op, fn func(context.Context) error) error {
	_, err := Run(ctx, op, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}

// Mutate executes fn on op's channel and returns its outcome unchanged. When
// a newer call started meanwhile, only the status update is skipped.
func Mutate[T any](ctx context.Context, op *Op, fn func(context.Context) (T, error)) (T, error) {
	gen := op.begin()

	v, err := fn(ctx)

	if !op.settle(gen, err) {
		op.log.Debug(ctx, "stale status skipped", "generation", gen, "error", err)
	}
	if err != nil {
		op.log.Error(ctx, "operation failed", "error", err)
	}
	return v, err
}

// MutateDo is Mutate for calls without a result value.
func MutateDo(ctx context.Context, op *Op, fn func(context.Context) error) error {
	_, err := Mutate(ctx, op, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}
