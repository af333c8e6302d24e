package pagination

import "strconv"

const (
	DefaultPage  = 1
	DefaultLimit = 25
)

// Pagination описывает страницу результатов
type Pagination struct {
	Page            int64 `json:"page"`
	Limit           int64 `json:"limit"`
	NumberOfResults int64 `json:"numberOfResults"`
	NumberOfPages   int64 `json:"numberOfPages"`
}

// Metadata оборачивает пагинацию в блок metadata ответа
type Metadata struct {
	Pagination Pagination `json:"pagination"`
}

// Page - конверт списочного ответа: данные плюс метаданные пагинации
type Page[T any] struct {
	Data     []T      `json:"data"`
	Metadata Metadata `json:"metadata"`
}

// New собирает конверт страницы из выборки и общего количества записей
// При totalCount == 0 количество страниц равно нулю
func New[T any](data []T, page, limit, totalCount int64) Page[T] {
	if data == nil {
		data = []T{}
	}

	var pages int64
	if totalCount > 0 && limit > 0 {
		pages = (totalCount + limit - 1) / limit
	}

	return Page[T]{
		Data: data,
		Metadata: Metadata{
			Pagination: Pagination{
				Page:            page,
				Limit:           limit,
				NumberOfResults: totalCount,
				NumberOfPages:   pages,
			},
		},
	}
}

// Empty возвращает пустую страницу с нулевыми метаданными
func Empty[T any](page, limit int64) Page[T] {
	return New[T]([]T{}, page, limit, 0)
}

// ParseParams разбирает query-параметры page и limit
// Нечисловые и неположительные значения заменяются значениями по умолчанию
func ParseParams(pageStr, limitStr string) (int64, int64) {
	page, err := strconv.ParseInt(pageStr, 10, 64)
	if err != nil || page < 1 {
		page = DefaultPage
	}

	limit, err := strconv.ParseInt(limitStr, 10, 64)
	if err != nil || limit < 1 {
		limit = DefaultLimit
	}

	return page, limit
}
