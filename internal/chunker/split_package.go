package chunker

import "fmt"

// packageNameSplit groups vendor items by node_modules package name and
// tries each as its own chunk, recursing into the folder splitter on
// overflow. A single "remaining" accumulator is shared across every
// package-name group and flushed once under the outer name.
func packageNameSplit(items []resolvedItem, name string, sc *splitContext) error {
	groups := newOrderedMap[[]resolvedItem]()
	for _, it := range items {
		pkg := packageName(it.ident)
		list, _ := groups.getOrInsert(pkg, nil)
		*list = append(*list, it)
	}

	var remaining []resolvedItem
	var outerErr error
	groups.each(func(pkg string, list []resolvedItem) {
		if outerErr != nil {
			return
		}
		key := fmt.Sprintf("%s-%s", name, pkg)
		ok, err := handleSplitGroup(sc, list, key, &remaining)
		if err != nil {
			outerErr = err
			return
		}
		if !ok {
			outerErr = folderSplit(list, 0, key, sc)
		}
	})
	if outerErr != nil {
		return outerErr
	}

	if len(remaining) > 0 {
		ok, err := handleSplitGroup(sc, remaining, name, nil)
		if err != nil {
			return err
		}
		if !ok {
			return folderSplit(remaining, 0, name, sc)
		}
	}

	return nil
}
