package store

import (
	"fmt"
	"sort"

	"github.com/cespare/xxhash/v2"
)

// HashBytes returns the hex-encoded xxhash of content. Fast non-crypto
// hashing is enough here: hashes only detect unchanged inputs.
func HashBytes(content []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(content))
}

// HashInputs computes one aggregate hash over a set of (path, content
// hash) pairs, independent of input order. The CLI compares it against
// the stored value to skip a re-dump when nothing changed.
func HashInputs(hashesByPath map[string]string) string {
	paths := make([]string, 0, len(hashesByPath))
	for path := range hashesByPath {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	d := xxhash.New()
	for _, path := range paths {
		d.WriteString(path)
		d.WriteString("\x00")
		d.WriteString(hashesByPath[path])
		d.WriteString("\x00")
	}
	return fmt.Sprintf("%016x", d.Sum64())
}
