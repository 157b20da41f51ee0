// Package listing holds the store-free list operations shared by the trivia
// and coffee services: fixed-size paging, substring search and random draw.
package listing

import (
	"math/rand/v2"
	"strings"

	"trivia-coffee-backend/internal/apperr"
)

// PageSize is the window size for every paginated listing.
const PageSize = 10

// Paginate returns the 1-indexed page of items. items must already be in
// id order. An empty window (page past the end, page < 1, or no items) is
// apperr.ErrNotFound.
func Paginate[T any](items []T, page int) ([]T, error) {
	if page < 1 {
		return nil, apperr.ErrNotFound
	}
	start := PageSize * (page - 1)
	if start >= len(items) {
		return nil, apperr.ErrNotFound
	}
	end := start + PageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], nil
}

// Search keeps the items whose field contains term, ignoring case.
// An empty term keeps everything.
func Search[T any](items []T, field func(T) string, term string) []T {
	needle := strings.ToLower(term)
	out := make([]T, 0, len(items))
	for _, it := range items {
		if strings.Contains(strings.ToLower(field(it)), needle) {
			out = append(out, it)
		}
	}
	return out
}

// Draw picks one candidate uniformly at random among those whose id is not
// in exclude. ok is false when nothing remains. intn may be nil, in which
// case math/rand/v2 is used.
func Draw[T any](candidates []T, exclude map[uint]struct{}, id func(T) uint, intn func(int) int) (picked T, ok bool) {
	remaining := make([]T, 0, len(candidates))
	for _, c := range candidates {
		if _, seen := exclude[id(c)]; !seen {
			remaining = append(remaining, c)
		}
	}
	if len(remaining) == 0 {
		return picked, false
	}
	if intn == nil {
		intn = rand.IntN
	}
	return remaining[intn(len(remaining))], true
}

// IDSet builds an exclusion set for Draw.
func IDSet(ids []uint) map[uint]struct{} {
	set := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
