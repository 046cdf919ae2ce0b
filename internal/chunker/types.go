// Package chunker implements the recursive chunk-partitioning core of the
// bundler: it groups a flat collection of compiled units into output chunks
// whose sizes fall within a target band, using kind, app/vendor, package-name
// and folder-depth heuristics. See the type grouper, app/vendor splitter,
// package splitter and folder splitter in split_*.go.
package chunker

import "context"

// Kind identifies the processing family of a unit (e.g. script, style).
// Chunks never mix units of different kinds. Kind values are compared by
// identity, not by Name() - two distinct Kind values with the same Name are
// never merged into one chunk.
type Kind interface {
	// Name returns a stable, human-readable identifier for the kind.
	Name(ctx context.Context) (string, error)

	// ItemSize returns the size estimate used by the size classifier for one
	// unit of this kind.
	ItemSize(ctx context.Context, item Item, asyncInfo any) (int, error)

	// MakeChunk constructs the host-engine chunk handle for a group of
	// members that all share this kind. The partitioner never interprets the
	// returned handle.
	MakeChunk(ctx context.Context, members []Member, sideRefs SideRefs) (ChunkHandle, error)
}

// Item is one compiled unit's opaque payload, supplied by the caller.
// Its Kind and Ident may themselves require suspending I/O to resolve, which
// is why both are methods rather than plain fields.
type Item interface {
	// ResolveKind resolves the kind of this item.
	ResolveKind(ctx context.Context) (Kind, error)

	// Ident returns the path-like string used for heuristic grouping. Must
	// be stable and unique per item within one make_chunks invocation.
	Ident(ctx context.Context) (string, error)
}

// Member is one (payload, async annotation) pair carried through unchanged
// into the chunk that ends up containing it.
type Member struct {
	Payload   Item
	AsyncInfo any
}

// SideRefs is an opaque handle to the auxiliary "referenced output assets"
// collection. Exactly one chunk per make_chunks invocation carries the
// caller-supplied, non-empty handle; every other chunk carries the empty
// handle produced by SideRefsSource.Empty.
type SideRefs any

// SideRefsSource resolves the "empty side-refs" handle used for every chunk
// except the one that carries the caller's handle.
type SideRefsSource interface {
	Empty(ctx context.Context) (SideRefs, error)
}

// ChunkHandle is the opaque value returned by Kind.MakeChunk. The
// partitioner does not interpret it.
type ChunkHandle any

// PlannedChunk pairs the partitioning key assigned to a chunk (unique within
// one make_chunks invocation, used by the host engine to address the chunk
// in its cache) with the handle the kind constructed for it.
type PlannedChunk struct {
	Key    string
	Handle ChunkHandle
}

// resolvedItem is a unit after step 1 of make_chunks: its kind, ident and
// size have all been materialized, and it carries its original payload and
// async annotation through untouched. This is the "Unit" of the data model.
type resolvedItem struct {
	kind      Kind
	ident     string
	size      int
	payload   Item
	asyncInfo any
}

func (r resolvedItem) member() Member {
	return Member{Payload: r.payload, AsyncInfo: r.asyncInfo}
}

// splitContext is the mutable collaborator shared by every splitter
// invocation within one kind group: the accumulating output list and the
// side-refs slot that is swapped out to empty the first time it is used.
//
// A single invocation chain owns a splitContext exclusively; no locking is
// required.
type splitContext struct {
	kind          Kind
	ctx           context.Context
	chunks        *[]PlannedChunk
	sideRefs      SideRefs
	emptySideRefs SideRefs
}

// emit constructs a chunk from items via the kind and appends it to the
// context's output list, swapping the side-refs slot to empty per the
// exactly-once attachment rule.
func (sc *splitContext) emit(items []resolvedItem, key string) error {
	members := make([]Member, len(items))
	for i, it := range items {
		members[i] = it.member()
	}

	carried := sc.sideRefs
	sc.sideRefs = sc.emptySideRefs

	handle, err := sc.kind.MakeChunk(sc.ctx, members, carried)
	if err != nil {
		return err
	}

	*sc.chunks = append(*sc.chunks, PlannedChunk{Key: key, Handle: handle})
	return nil
}
