package chunker

import "fmt"

type folderBucket struct {
	items        []resolvedItem
	nextLocation int
	hasNext      bool
}

// folderSplit recursively subdivides items by directory depth, starting at
// the byte offset location into each item's ident.
//
// While grouping by folder yields exactly one bucket, the splitter
// telescopes straight through it without emitting a chunk (advancing
// location each time) rather than recursing - this is the "shortcut" that
// keeps a single deeply-nested folder chain from growing the call stack.
// Once two or more folders are present it treats each as an independent
// group, recursing into itself on overflow.
func folderSplit(items []resolvedItem, location int, name string, sc *splitContext) error {
	for {
		buckets := newOrderedMap[*folderBucket]()
		for _, it := range items {
			folder, next, ok := folderName(it.ident, location)
			b, inserted := buckets.getOrInsert(folder, nil)
			if inserted {
				*b = &folderBucket{nextLocation: next, hasNext: ok}
			}
			(*b).items = append((*b).items, it)
		}

		if buckets.len() == 1 {
			folder, bucket := buckets.first()
			if bucket.hasNext {
				items = bucket.items
				location = bucket.nextLocation
				continue
			}
			return sc.emit(bucket.items, fmt.Sprintf("%s-%s", name, folder))
		}

		var remaining []resolvedItem
		var err error
		buckets.each(func(folder string, bucket *folderBucket) {
			if err != nil {
				return
			}
			key := fmt.Sprintf("%s-%s", name, folder)
			var ok bool
			ok, err = handleSplitGroup(sc, bucket.items, key, &remaining)
			if err != nil || ok {
				return
			}
			if bucket.hasNext {
				err = folderSplit(bucket.items, bucket.nextLocation, name, sc)
			} else {
				err = sc.emit(bucket.items, key)
			}
		})
		if err != nil {
			return err
		}

		if len(remaining) == 0 {
			return nil
		}
		key := fmt.Sprintf("%s-%s", name, remaining[0].ident[:location])
		ok, err := handleSplitGroup(sc, remaining, key, nil)
		if err != nil {
			return err
		}
		if !ok {
			return sc.emit(remaining, key)
		}
		return nil
	}
}
