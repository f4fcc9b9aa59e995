package pagination

// Params carries normalized pagination input. Page is 1-indexed.
type Params struct {
	Page  int64
	Limit int64
}

// Meta is the pagination block returned with every paginated listing.
type Meta struct {
	Page  int64 `json:"page"`
	Limit int64 `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

// Normalize clamps page and limit into a usable range. A non-positive
// page becomes 1, a non-positive limit becomes defaultLimit, and limit
// is capped at maxLimit.
func Normalize(page, limit, defaultLimit, maxLimit int64) Params {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return Params{Page: page, Limit: limit}
}

// Offset is the number of rows to skip for this page.
func (p Params) Offset() int64 {
	return (p.Page - 1) * p.Limit
}

// NewMeta computes Pages as ceil(total/limit).
func NewMeta(p Params, total int64) Meta {
	pages := int64(0)
	if total > 0 {
		pages = (total + p.Limit - 1) / p.Limit
	}
	return Meta{Page: p.Page, Limit: p.Limit, Total: total, Pages: pages}
}
