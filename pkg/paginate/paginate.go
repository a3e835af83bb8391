// Package paginate splits an ordered list into fixed-size pages of slots.
package paginate

import (
	"errors"
	"fmt"
)

// ErrInvalidPageSize is returned when the page size is not positive.
var ErrInvalidPageSize = errors.New("page size must be positive")

// Slot is one position on a page. A slot with Filled == false is a blank
// placeholder past the end of the input.
type Slot[T any] struct {
	Value  T
	Filled bool
}

// Get returns the slot value and whether the slot is populated.
func (s Slot[T]) Get() (T, bool) {
	return s.Value, s.Filled
}

// Page is a contiguous slice of the input padded to the page size.
type Page[T any] struct {
	Index int
	Slots []Slot[T]
}

// Values returns the populated slot values in order.
func (p Page[T]) Values() []T {
	out := make([]T, 0, len(p.Slots))

	for _, s := range p.Slots {
		if s.Filled {
			out = append(out, s.Value)
		}
	}

	return out
}

// Count returns the number of pages needed for n items.
func Count(n, pageSize int) int {
	if n <= 0 || pageSize <= 0 {
		return 0
	}

	return (n + pageSize - 1) / pageSize
}

// Paginate returns ceil(len(items)/pageSize) pages of exactly pageSize slots.
// Page p holds items[p*pageSize : min((p+1)*pageSize, len(items))] in order;
// the remaining slots of the last page are blank. An empty input yields no
// pages.
func Paginate[T any](items []T, pageSize int) ([]Page[T], error) {
	if pageSize <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPageSize, pageSize)
	}

	pages := make([]Page[T], Count(len(items), pageSize))

	for p := range pages {
		slots := make([]Slot[T], pageSize)

		for i := range slots {
			idx := p*pageSize + i
			if idx >= len(items) {
				break
			}

			slots[i] = Slot[T]{Value: items[idx], Filled: true}
		}

		pages[p] = Page[T]{Index: p, Slots: slots}
	}

	return pages, nil
}
