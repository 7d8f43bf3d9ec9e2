// Package repokit is what sql repos build on instead of importing the store driver seams
package repokit

import (
	"context"
	"fmt"
	"time"

	"observafloresta/internal/platform/store"
)

type (
	Queryer  = store.RowQuerier
	TxRunner = store.TxRunner
)

// Binder makes a repo that runs its statements on a Queryer
type Binder[T any] interface {
	Bind(Queryer) T
}

// MustBind panics on a nil q, a wiring bug better caught at startup than on first query
func MustBind[T any](b Binder[T], q Queryer) T {
	if q == nil {
		panic("repokit: bind on nil queryer")
	}
	return b.Bind(q)
}

// WithTx runs fn in one transaction on db
func WithTx(ctx context.Context, db TxRunner, fn func(q Queryer) error) error {
	return db.Tx(ctx, fn)
}

// GuardTimeout bounds MustGuard when ctx has no deadline
var GuardTimeout = 5 * time.Second

type guarder interface {
	Guard(context.Context) error
}

// MustGuard panics unless every open store answers
func MustGuard(ctx context.Context, g guarder) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, GuardTimeout)
		defer cancel()
	}
	if err := g.Guard(ctx); err != nil {
		panic(fmt.Errorf("repokit: stores not ready: %w", err))
	}
}
