package chunker

import "fmt"

// appVendorSplit partitions items into first-party "app" code and
// third-party "vendor" code (by the /node_modules/ marker), trying each as
// its own chunk before recursing into the folder splitter (app) or package
// splitter (vendor). Leftover small groups from both sides are merged into
// a single "remaining" group tried once more under the outer name.
func appVendorSplit(items []resolvedItem, name string, sc *splitContext) error {
	var app, vendor []resolvedItem
	for _, it := range items {
		if isAppCode(it.ident) {
			app = append(app, it)
		} else {
			vendor = append(vendor, it)
		}
	}

	var remaining []resolvedItem

	appKey := fmt.Sprintf("%s-app", name)
	ok, err := handleSplitGroup(sc, app, appKey, &remaining)
	if err != nil {
		return err
	}
	if !ok {
		if err := folderSplit(app, 0, appKey, sc); err != nil {
			return err
		}
	}

	vendorKey := fmt.Sprintf("%s-vendors", name)
	ok, err = handleSplitGroup(sc, vendor, vendorKey, &remaining)
	if err != nil {
		return err
	}
	if !ok {
		if err := packageNameSplit(vendor, vendorKey, sc); err != nil {
			return err
		}
	}

	if len(remaining) > 0 {
		ok, err = handleSplitGroup(sc, remaining, name, nil)
		if err != nil {
			return err
		}
		if !ok {
			if err := packageNameSplit(remaining, name, sc); err != nil {
				return err
			}
		}
	}

	return nil
}
