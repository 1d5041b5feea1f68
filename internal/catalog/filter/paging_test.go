package filter

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "servicecatalog/pkg/domain-errors"
)

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4}

	t.Run("page beyond count is empty with real page count", func(t *testing.T) {
		res := Paginate(items, PageRequest{Page: 3, Size: 2})
		assert.Empty(t, res.Items)
		assert.NotNil(t, res.Items)
		assert.Equal(t, 2, res.PageCount)
		assert.Equal(t, 4, res.TotalCount)
		assert.Equal(t, 3, res.Page)
	})

	t.Run("middle page", func(t *testing.T) {
		res := Paginate(items, PageRequest{Page: 2, Size: 3})
		assert.Equal(t, []int{4}, res.Items)
		assert.Equal(t, 2, res.PageCount)
	})

	t.Run("empty input", func(t *testing.T) {
		res := Paginate([]int{}, PageRequest{Page: 1, Size: 10})
		assert.Empty(t, res.Items)
		assert.Equal(t, 0, res.PageCount)
	})

	t.Run("huge page numbers stay past the end", func(t *testing.T) {
		for _, page := range []int{1 << 62, 1<<62 + 1, math.MaxInt} {
			res := Paginate(items, PageRequest{Page: page, Size: 4})
			assert.Empty(t, res.Items, "page=%d", page)
			assert.Equal(t, 1, res.PageCount, "page=%d", page)
			assert.Equal(t, page, res.Page)
		}
	})

	t.Run("huge page size holds everything on page one", func(t *testing.T) {
		res := Paginate(items, PageRequest{Page: 1, Size: math.MaxInt})
		assert.Equal(t, items, res.Items)
		assert.Equal(t, 1, res.PageCount)
	})

	t.Run("page count is a ceiling", func(t *testing.T) {
		for n := 0; n <= 12; n++ {
			res := Paginate(make([]int, n), PageRequest{Page: 1, Size: 5})
			assert.Equal(t, (n+4)/5, res.PageCount, "n=%d", n)
		}
	})
}

func TestPageRequestNormalize(t *testing.T) {
	p, err := PageRequest{}.Normalize(1000, 1000)
	require.NoError(t, err)
	assert.Equal(t, PageRequest{Page: 1, Size: 1000}, p)

	_, err = PageRequest{Page: 1, Size: 5000}.Normalize(1000, 1000)
	assert.True(t, dErrors.IsCallerError(err))

	_, err = PageRequest{Page: -1}.Normalize(1000, 1000)
	assert.True(t, dErrors.IsCallerError(err))
}
