// Package pathindex persists the mapping from standard set IDs to the
// files that actually hold them, plus the append-only audit log of
// every fallback placement.
//
// The index is a single JSON file rewritten in full after every update,
// so it is never more than one record stale relative to disk. Rewrites
// go through a temp file and an atomic rename. A corrupt index file is
// renamed aside with a .bak suffix and replaced with an empty index
// rather than blocking the run.
//
// Example usage:
//
//	store := pathindex.NewStore(layout, log)
//	if err := store.Load(); err != nil {
//	    // Handle I/O error (corruption is recovered internally)
//	}
//
//	path, err := store.WriteWithFallback(primary, fallback, record,
//	    "standard set", map[string]string{"set_id": setID})
//	if err == nil {
//	    store.Put(pathindex.Entry{SetID: setID, Path: path, ...})
//	}
package pathindex
