package galaxy

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"go.uber.org/zap"
)

var (
	// ErrDuplicateName reports a short or full resource name that collides
	// with one already in the index, ignoring case.
	ErrDuplicateName = errors.New("duplicate resource name")

	// ErrUnknownResource reports a name that matches no catalog entry.
	ErrUnknownResource = errors.New("unknown resource")
)

// DuplicatePolicy decides what an index build does with a colliding name.
type DuplicatePolicy string

const (
	// RejectDuplicates fails the build on the first colliding name.
	RejectDuplicates DuplicatePolicy = "reject"

	// OverwriteDuplicates keeps the later catalog entry. This matches the
	// permissive behavior of earlier catalog tooling.
	OverwriteDuplicates DuplicatePolicy = "overwrite"
)

// ParseDuplicatePolicy converts a configuration string to a DuplicatePolicy.
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch p := DuplicatePolicy(strings.ToLower(s)); p {
	case RejectDuplicates, OverwriteDuplicates:
		return p, nil
	}
	return "", fmt.Errorf("invalid duplicate policy %q (must be %q or %q)", s, RejectDuplicates, OverwriteDuplicates)
}

// ResourceIndex resolves resource names between their short and full forms.
// Lookups ignore case. An index is built once from the catalog and is
// read-only afterwards.
type ResourceIndex struct {
	fullByKey   map[string]string // lowercased short or full name to canonical full name
	shortByFull map[string]string // lowercased full name to short name
}

// BuildIndex indexes the catalog by short and full name. A name carried by
// two entries is handled per policy: reject fails with ErrDuplicateName,
// overwrite keeps the later entry and logs what was dropped.
func BuildIndex(catalog []Resource, policy DuplicatePolicy, log *zap.Logger) (*ResourceIndex, error) {
	idx := &ResourceIndex{
		fullByKey:   make(map[string]string, len(catalog)*2),
		shortByFull: make(map[string]string, len(catalog)),
	}
	for _, r := range catalog {
		shortKey := strings.ToLower(r.ShortName)
		fullKey := strings.ToLower(r.Name)
		for _, key := range []string{shortKey, fullKey} {
			prev, taken := idx.fullByKey[key]
			if !taken {
				continue
			}
			if policy == RejectDuplicates {
				return nil, fmt.Errorf("catalog entry %q collides with %q on %q: %w", r.Name, prev, key, ErrDuplicateName)
			}
			log.Warn("duplicate resource name, keeping later entry",
				zap.String("name", key),
				zap.String("kept", r.Name),
				zap.String("dropped", prev))
		}
		idx.fullByKey[shortKey] = r.Name
		idx.fullByKey[fullKey] = r.Name
		idx.shortByFull[fullKey] = r.ShortName
	}
	return idx, nil
}

// Resolve returns the canonical full name for a short or full resource name.
// Unknown names fail with ErrUnknownResource; when a close catalog name
// exists it is included in the error as a suggestion.
func (ix *ResourceIndex) Resolve(name string) (string, error) {
	if full, ok := ix.fullByKey[strings.ToLower(name)]; ok {
		return full, nil
	}
	if near, ok := ix.nearest(name); ok {
		return "", fmt.Errorf("%w %q (did you mean %q?)", ErrUnknownResource, name, near)
	}
	return "", fmt.Errorf("%w %q", ErrUnknownResource, name)
}

// ShortName returns the short form of a full resource name.
func (ix *ResourceIndex) ShortName(fullName string) (string, error) {
	short, ok := ix.shortByFull[strings.ToLower(fullName)]
	if !ok {
		return "", fmt.Errorf("%w %q", ErrUnknownResource, fullName)
	}
	return short, nil
}

// nearest returns the full name of the catalog entry closest to name by edit
// distance, if any is within tolerance. Keys are walked in sorted order so
// ties break the same way every run.
func (ix *ResourceIndex) nearest(name string) (string, bool) {
	lower := strings.ToLower(name)
	keys := make([]string, 0, len(ix.fullByKey))
	for key := range ix.fullByKey {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	best := ""
	bestDist := -1
	for _, key := range keys {
		dist := levenshtein.ComputeDistance(lower, key)
		if dist > distanceLimit(len(key)) {
			continue
		}
		if bestDist == -1 || dist < bestDist {
			best = ix.fullByKey[key]
			bestDist = dist
		}
	}
	return best, bestDist != -1
}

// distanceLimit scales the accepted edit distance with the candidate length
// so short names do not match everything.
func distanceLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
