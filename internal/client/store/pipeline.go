package store

import (
	"sort"
	"strings"
	"time"

	"github.com/aGautrain/legeclair/internal/client/models"
)

// sortField extracts the value of the configured sort key from an entity.
// The second return is false when the entity has no value for that key;
// an absent value compares less than any present one, so the direction
// decides whether it surfaces first (asc) or last (desc).
type sortField[T any] func(item T, key string) (any, bool)

// filterItems keeps the items for which every active criterion holds.
func filterItems[T any](items []T, match func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if match(it) {
			out = append(out, it)
		}
	}
	return out
}

// sortItems returns a stably sorted copy of items. Equal keys keep their
// relative order, so repeated derivations over the same collection produce
// the same sequence.
func sortItems[T any](items []T, ts models.TableSort, field sortField[T]) []T {
	out := make([]T, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		c := compareByKey(out[i], out[j], ts.Key, field)
		if ts.Order == models.SortDesc {
			c = -c
		}
		return c < 0
	})
	return out
}

func compareByKey[T any](a, b T, key string, field sortField[T]) int {
	av, aok := field(a, key)
	bv, bok := field(b, key)
	switch {
	case !aok && !bok:
		return 0
	case !aok:
		return -1
	case !bok:
		return 1
	}
	return compareValues(av, bv)
}

func compareValues(a, b any) int {
	switch av := a.(type) {
	case string:
		return strings.Compare(av, b.(string))
	case int:
		return compareOrdered(av, b.(int))
	case int64:
		return compareOrdered(av, b.(int64))
	case float64:
		return compareOrdered(av, b.(float64))
	case time.Time:
		return av.Compare(b.(time.Time))
	}
	return 0
}

func compareOrdered[T int | int64 | float64](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// paginateItems slices out the requested page. An out-of-range page yields
// an empty slice, never a panic.
func paginateItems[T any](items []T, page, perPage int) []T {
	if page < 1 || perPage < 1 {
		return nil
	}
	start := (page - 1) * perPage
	if start >= len(items) {
		return []T{}
	}
	end := start + perPage
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// removeByID drops the entity with the given id, keeping order.
func removeByID[T any](items []T, id func(T) string, target string) []T {
	out := items[:0:0]
	for _, it := range items {
		if id(it) != target {
			out = append(out, it)
		}
	}
	return out
}

// containsFold reports whether s contains substr, case-insensitively.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// withinDates checks t against optional inclusive bounds.
func withinDates(t time.Time, from, to *time.Time) bool {
	if from != nil && t.Before(*from) {
		return false
	}
	if to != nil && t.After(*to) {
		return false
	}
	return true
}
