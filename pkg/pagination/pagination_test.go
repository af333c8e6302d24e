package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_EmptyData(t *testing.T) {
	page := New([]string{}, 1, 25, 0)

	assert.Empty(t, page.Data)
	assert.Equal(t, int64(1), page.Metadata.Pagination.Page)
	assert.Equal(t, int64(25), page.Metadata.Pagination.Limit)
	assert.Equal(t, int64(0), page.Metadata.Pagination.NumberOfResults)
	assert.Equal(t, int64(0), page.Metadata.Pagination.NumberOfPages)
}

func TestNew_PartialLastPage(t *testing.T) {
	data := []int{1, 2, 3, 4, 5}
	page := New(data, 1, 5, 12)

	assert.Len(t, page.Data, 5)
	assert.Equal(t, int64(12), page.Metadata.Pagination.NumberOfResults)
	assert.Equal(t, int64(3), page.Metadata.Pagination.NumberOfPages)
}

func TestNew_ExactDivision(t *testing.T) {
	page := New([]int{1, 2}, 2, 5, 10)

	assert.Equal(t, int64(2), page.Metadata.Pagination.NumberOfPages)
}

func TestNew_NilDataBecomesEmptySlice(t *testing.T) {
	page := New[int](nil, 1, 25, 0)

	assert.NotNil(t, page.Data)
	assert.Empty(t, page.Data)
}

func TestEmpty(t *testing.T) {
	page := Empty[string](3, 10)

	assert.Empty(t, page.Data)
	assert.Equal(t, int64(3), page.Metadata.Pagination.Page)
	assert.Equal(t, int64(10), page.Metadata.Pagination.Limit)
	assert.Equal(t, int64(0), page.Metadata.Pagination.NumberOfPages)
}

func TestParseParams_Defaults(t *testing.T) {
	page, limit := ParseParams("", "")
	assert.Equal(t, int64(1), page)
	assert.Equal(t, int64(25), limit)
}

func TestParseParams_NonNumeric(t *testing.T) {
	page, limit := ParseParams("abc", "xyz")
	assert.Equal(t, int64(1), page)
	assert.Equal(t, int64(25), limit)
}

func TestParseParams_Negative(t *testing.T) {
	page, limit := ParseParams("-3", "0")
	assert.Equal(t, int64(1), page)
	assert.Equal(t, int64(25), limit)
}

func TestParseParams_Valid(t *testing.T) {
	page, limit := ParseParams("4", "50")
	assert.Equal(t, int64(4), page)
	assert.Equal(t, int64(50), limit)
}
