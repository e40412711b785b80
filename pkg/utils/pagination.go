package utils

// Listing endpoints paginate with limit/offset.
const (
	DefaultLimit = 50
	MaxLimit     = 100
)

// PageParams holds normalized pagination request parameters
type PageParams struct {
	Limit  int `form:"limit"`
	Offset int `form:"offset"`
}

// PageMeta holds pagination response metadata
type PageMeta struct {
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
	Total  int64 `json:"total"`
}

// NormalizePage clamps limit to [1, MaxLimit] (default DefaultLimit) and
// offset to >= 0.
func NormalizePage(limit, offset int) PageParams {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return PageParams{Limit: limit, Offset: offset}
}

// NewPageMeta generates pagination metadata for a result window
func NewPageMeta(params PageParams, total int64) PageMeta {
	return PageMeta{
		Limit:  params.Limit,
		Offset: params.Offset,
		Total:  total,
	}
}
