package chunker

import "context"

// MakeChunks partitions items into output chunks.
//
// It resolves each item's kind concurrently, groups by kind preserving
// first-seen order, then - per kind group - concurrently resolves each
// item's size and ident before handing the group to the app/vendor
// splitter with key "{keyPrefix}{kindName}".
//
// sideRefs is attached to exactly one emitted chunk (the first); every
// other chunk receives the empty handle produced by empty.Empty.
func MakeChunks(ctx context.Context, items []Member, keyPrefix string, sideRefs SideRefs, empty SideRefsSource) ([]PlannedChunk, error) {
	kinds, err := resolveKinds(ctx, items)
	if err != nil {
		return nil, err
	}

	var order []Kind
	kindGroupOf := make(map[Kind]*[]Member)
	for i, m := range items {
		k := kinds[i]
		list, ok := kindGroupOf[k]
		if !ok {
			group := new([]Member)
			kindGroupOf[k] = group
			list = group
			order = append(order, k)
		}
		*list = append(*list, m)
	}

	var chunks []PlannedChunk
	for _, kind := range order {
		members := *kindGroupOf[kind]

		kindName, err := kind.Name(ctx)
		if err != nil {
			return nil, err
		}

		resolved, err := resolveSizeAndIdent(ctx, kind, members)
		if err != nil {
			return nil, err
		}

		emptyRefs, err := empty.Empty(ctx)
		if err != nil {
			return nil, err
		}

		sc := &splitContext{
			kind:          kind,
			ctx:           ctx,
			chunks:        &chunks,
			sideRefs:      sideRefs,
			emptySideRefs: emptyRefs,
		}

		if err := appVendorSplit(resolved, keyPrefix+kindName, sc); err != nil {
			return nil, err
		}

		// Only the very first kind's split had a chance to consume the
		// caller's side-refs handle; every subsequent kind loop starts with
		// whatever splitContext swapped it to (empty, once emitted).
		sideRefs = sc.sideRefs
	}

	return chunks, nil
}
