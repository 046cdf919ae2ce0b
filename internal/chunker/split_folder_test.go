package chunker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// When folderSplit's branch point merges several Small buckets into
// "remaining" and later has to force-flush them, the key it builds is taken
// from remaining[0].ident[:location] - valid only because every unit merged
// into remaining passed through the same branch point, and so shares that
// exact prefix. This pins that down directly, independent of the sizes that
// happen to trigger the flush.
func TestFolderSplitRemainingKeyStable(t *testing.T) {
	k := &testKind{name: "K"}
	units := []resolvedItem{
		{kind: k, ident: "lib/a/one.js", size: 5_000},
		{kind: k, ident: "lib/b/two.js", size: 5_000},
		{kind: k, ident: "lib/c/three.js", size: 5_000},
	}
	var chunks []PlannedChunk
	sc := &splitContext{kind: k, ctx: context.Background(), chunks: &chunks, emptySideRefs: "EMPTY"}

	require.NoError(t, folderSplit(units, 0, "name", sc))

	// lib/ telescopes through as the sole bucket (location advances past
	// "lib/"), then a/, b/, c/ each hold one Small unit and merge into
	// remaining rather than being emitted individually. Their combined size
	// (15_000) is still Small, so the flush key is built from the shared
	// "lib/" prefix and all three land in one forced chunk.
	require.Len(t, chunks, 1)
	assert.Equal(t, "name-lib/", chunks[0].Key)
	assert.Len(t, chunkOf(t, chunks[0].Handle).members, 3)
}
