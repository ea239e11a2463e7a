package store

// Pagination bounds. A zero limit falls back to DefaultLimit; requests
// above MaxLimit are clamped.
const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Page is one window into a filtered listing. Total counts every record
// that passed the filters, not just the window.
type Page[T any] struct {
	Items []T    `json:"items"`
	Total uint64 `json:"total"`
	Skip  uint64 `json:"skip"`
	Limit uint64 `json:"limit"`
}

// Paginate applies the filters, counts the survivors, and cuts the
// skip/limit window. A skip past the end yields an empty page with the
// correct total.
func Paginate[T any](items []T, skip, limit uint64, filters ...func(T) bool) Page[T] {
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	kept := make([]T, 0, len(items))
outer:
	for _, it := range items {
		for _, keep := range filters {
			if !keep(it) {
				continue outer
			}
		}
		kept = append(kept, it)
	}

	total := uint64(len(kept))
	page := Page[T]{Items: []T{}, Total: total, Skip: skip, Limit: limit}
	if skip >= total {
		return page
	}
	end := skip + limit
	if end > total {
		end = total
	}
	page.Items = kept[skip:end]
	return page
}
