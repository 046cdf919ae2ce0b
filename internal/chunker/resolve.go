package chunker

import (
	"context"

	"github.com/sourcegraph/conc/pool"
)

type concurrencyKey struct{}

// WithConcurrency bounds the number of goroutines the input-preparation
// fan-out (kind resolution, then size/ident resolution) may use for calls
// made with the returned context. Zero or unset means unbounded, matching
// spec section 5's "launched as independent tasks and joined as a batch" -
// the cap is a host-side resource knob, not part of the partitioning
// contract itself.
func WithConcurrency(ctx context.Context, n int) context.Context {
	return context.WithValue(ctx, concurrencyKey{}, n)
}

func concurrencyLimit(ctx context.Context) int {
	n, _ := ctx.Value(concurrencyKey{}).(int)
	return n
}

type progressKey struct{}

// WithProgress attaches a callback that fires once per unit as its size and
// ident are resolved, for calls made with the returned context. fn is called
// concurrently from the resolution fan-out, so it must do its own
// synchronization if it touches shared state. A nil context value (the
// default) means no progress reporting.
func WithProgress(ctx context.Context, fn func()) context.Context {
	return context.WithValue(ctx, progressKey{}, fn)
}

func progressHook(ctx context.Context) func() {
	fn, _ := ctx.Value(progressKey{}).(func())
	return fn
}

// resolveKinds resolves every item's kind as an independent task, joined as
// one batch before partitioning begins (spec: kind resolution is a
// suspension point, but control flow between suspension points is
// synchronous - fan-out happens only across this batch).
func resolveKinds(ctx context.Context, items []Member) ([]Kind, error) {
	p := pool.NewWithResults[Kind]().WithContext(ctx).WithFirstError()
	if n := concurrencyLimit(ctx); n > 0 {
		p = p.WithMaxGoroutines(n)
	}
	for _, m := range items {
		m := m
		p.Go(func(ctx context.Context) (Kind, error) {
			return m.Payload.ResolveKind(ctx)
		})
	}
	return p.Wait()
}

type itemResolution struct {
	member Member
	size   int
	ident  string
}

// resolveSizeAndIdent queries item_size and stringifies ident for every
// member of one kind group concurrently, then assembles the resolved units
// (the "Unit" of the data model) in input order.
func resolveSizeAndIdent(ctx context.Context, kind Kind, members []Member) ([]resolvedItem, error) {
	p := pool.NewWithResults[itemResolution]().WithContext(ctx).WithFirstError()
	if n := concurrencyLimit(ctx); n > 0 {
		p = p.WithMaxGoroutines(n)
	}
	hook := progressHook(ctx)
	for _, m := range members {
		m := m
		p.Go(func(ctx context.Context) (itemResolution, error) {
			size, err := kind.ItemSize(ctx, m.Payload, m.AsyncInfo)
			if err != nil {
				return itemResolution{}, err
			}
			ident, err := m.Payload.Ident(ctx)
			if err != nil {
				return itemResolution{}, err
			}
			if hook != nil {
				hook()
			}
			return itemResolution{member: m, size: size, ident: ident}, nil
		})
	}
	results, err := p.Wait()
	if err != nil {
		return nil, err
	}

	resolved := make([]resolvedItem, len(results))
	for i, r := range results {
		resolved[i] = resolvedItem{
			kind:      kind,
			ident:     r.ident,
			size:      r.size,
			payload:   r.member.Payload,
			asyncInfo: r.member.AsyncInfo,
		}
	}
	return resolved, nil
}
