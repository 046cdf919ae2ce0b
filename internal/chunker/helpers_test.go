package chunker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsAppCode(t *testing.T) {
	assert.True(t, isAppCode("src/app/page.js"))
	assert.True(t, isAppCode("a/b/c.js"))
	assert.False(t, isAppCode("/node_modules/lodash/index.js"))
	assert.False(t, isAppCode("src/node_modules/foo/index.js"))
}

func TestPackageName(t *testing.T) {
	assert.Equal(t, "lodash", packageName("/node_modules/lodash/index.js"))
	assert.Equal(t, "@scope/pkg", packageName("/node_modules/@scope/pkg/dist/main.js"))
	assert.Equal(t, "", packageName("src/app/page.js"))
}

func TestPackageName_TakesLastOccurrence(t *testing.T) {
	// A package nested inside another package's node_modules (npm's usual
	// dependency-resolution layout) is attributed to the innermost package.
	ident := "/node_modules/outer/node_modules/inner/index.js"
	assert.Equal(t, "inner", packageName(ident))
}

func TestFolderName(t *testing.T) {
	name, next, ok := folderName("src/app/page.js", 0)
	assert.True(t, ok)
	assert.Equal(t, "src/", name)
	assert.Equal(t, 4, next)

	name, next, ok = folderName("src/app/page.js", next)
	assert.True(t, ok)
	assert.Equal(t, "src/app/", name)
	assert.Equal(t, 8, next)
}

func TestFolderName_NoFurtherSlash(t *testing.T) {
	// Once the remainder has no '/', folderName returns the whole ident
	// unchanged and reports no further location - the signal that a bucket
	// containing this item cannot be subdivided any deeper.
	name, next, ok := folderName("src/app/page.js", 8)
	assert.False(t, ok)
	assert.Equal(t, "src/app/page.js", name)
	assert.Equal(t, 0, next)
}
