package paginate_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/trendscope/pkg/paginate"
)

func TestPaginate_PadsLastPage(t *testing.T) {
	t.Parallel()

	pages, err := paginate.Paginate([]string{"A", "B", "C", "D"}, 3)
	require.NoError(t, err)
	require.Len(t, pages, 2)

	assert.Equal(t, 0, pages[0].Index)
	assert.Equal(t, []paginate.Slot[string]{
		{Value: "A", Filled: true},
		{Value: "B", Filled: true},
		{Value: "C", Filled: true},
	}, pages[0].Slots)

	assert.Equal(t, 1, pages[1].Index)
	assert.Equal(t, []paginate.Slot[string]{
		{Value: "D", Filled: true},
		{},
		{},
	}, pages[1].Slots)
}

func TestPaginate_EmptyInput(t *testing.T) {
	t.Parallel()

	pages, err := paginate.Paginate([]string{}, 3)
	require.NoError(t, err)
	assert.Empty(t, pages)

	pages, err = paginate.Paginate[string](nil, 1)
	require.NoError(t, err)
	assert.Empty(t, pages)
}

func TestPaginate_InvalidPageSize(t *testing.T) {
	t.Parallel()

	for _, size := range []int{0, -1} {
		pages, err := paginate.Paginate([]string{"A"}, size)
		require.ErrorIs(t, err, paginate.ErrInvalidPageSize)
		assert.Nil(t, pages)
	}
}

func TestPaginate_Properties(t *testing.T) {
	t.Parallel()

	for n := 1; n <= 12; n++ {
		for size := 1; size <= 5; size++ {
			n, size := n, size
			t.Run(fmt.Sprintf("n=%d/size=%d", n, size), func(t *testing.T) {
				t.Parallel()

				items := make([]int, n)
				for i := range items {
					items[i] = i
				}

				pages, err := paginate.Paginate(items, size)
				require.NoError(t, err)

				assert.Len(t, pages, (n+size-1)/size)
				assert.Equal(t, len(pages), paginate.Count(n, size))

				var flat []int

				for p, page := range pages {
					assert.Equal(t, p, page.Index)
					assert.Len(t, page.Slots, size)

					flat = append(flat, page.Values()...)
				}

				assert.Equal(t, items, flat)
			})
		}
	}
}

func TestSlotGet(t *testing.T) {
	t.Parallel()

	v, ok := paginate.Slot[string]{Value: "A", Filled: true}.Get()
	assert.True(t, ok)
	assert.Equal(t, "A", v)

	_, ok = paginate.Slot[string]{}.Get()
	assert.False(t, ok)
}

func TestCount(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, paginate.Count(0, 3))
	assert.Equal(t, 0, paginate.Count(3, 0))
	assert.Equal(t, 1, paginate.Count(3, 3))
	assert.Equal(t, 2, paginate.Count(4, 3))
}
