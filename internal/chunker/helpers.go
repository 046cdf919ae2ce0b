package chunker

import (
	"regexp"
	"strings"
)

const nodeModulesMarker = "/node_modules/"

// isAppCode reports whether ident is first-party code, i.e. it does not
// contain the /node_modules/ marker anywhere.
func isAppCode(ident string) bool {
	return !strings.Contains(ident, nodeModulesMarker)
}

var packageNameRe = regexp.MustCompile(`/node_modules/((?:@[^/]+/)?[^/]+)`)

// packageName returns the package segment following the *last*
// /node_modules/ occurrence in ident, with any scope prefix (@scope/)
// preserved. Returns "" if ident never matches.
func packageName(ident string) string {
	matches := packageNameRe.FindAllStringSubmatch(ident, -1)
	if len(matches) == 0 {
		return ""
	}
	return matches[len(matches)-1][1]
}

// folderName returns the folder prefix of ident starting at location,
// through and including the next '/', plus the location just past that
// '/' to resume searching from. If ident has no further '/' at or after
// location, it returns ident unchanged and no further location.
func folderName(ident string, location int) (name string, nextLocation int, ok bool) {
	offset := strings.IndexByte(ident[location:], '/')
	if offset < 0 {
		return ident, 0, false
	}
	newLocation := location + offset + 1
	return ident[:newLocation], newLocation, true
}
