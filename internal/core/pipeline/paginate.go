package pipeline

import "github.com/custodia-labs/appreview/internal/core/domain"

// Paginate cuts the visible page out of records.
// Page numbers are 1-based and clamped into range; callers reject out of
// range requests earlier with ViewState.GoToPage.
func Paginate(records []domain.Record, pageSize, page int) domain.Page {
	if pageSize <= 0 {
		pageSize = domain.DefaultPageSize
	}

	total := len(records)
	if total == 0 {
		return domain.Page{
			Items:    []domain.Record{},
			PageSize: pageSize,
			Label:    domain.EmptyMessage,
			Empty:    true,
		}
	}

	totalPages := (total + pageSize - 1) / pageSize
	page = max(1, min(page, totalPages))

	start := (page - 1) * pageSize
	end := min(start+pageSize, total)

	return domain.Page{
		Items:      records[start:end],
		Number:     page,
		TotalPages: totalPages,
		Total:      total,
		PageSize:   pageSize,
		Start:      start + 1,
		End:        end,
		Label:      domain.RangeLabel(start+1, end, total),
		Buttons:    Buttons(page, totalPages),
	}
}

// Buttons builds the pagination strip: first, last and a window of
// domain.ButtonWindow numbered buttons around current, clamped at both ends,
// with ellipsis markers over gaps.
func Buttons(current, totalPages int) []domain.PageButton {
	if totalPages <= 0 {
		return nil
	}

	half := domain.ButtonWindow / 2
	lo, hi := current-half, current+half
	if lo < 1 {
		hi += 1 - lo
		lo = 1
	}
	if hi > totalPages {
		lo -= hi - totalPages
		hi = totalPages
	}
	lo = max(lo, 1)

	var out []domain.PageButton
	if lo > 1 {
		out = append(out, domain.PageButton{Number: 1})
		if lo > 2 {
			out = append(out, domain.PageButton{Ellipsis: true})
		}
	}
	for n := lo; n <= hi; n++ {
		out = append(out, domain.PageButton{Number: n, Current: n == current})
	}
	if hi < totalPages {
		if hi < totalPages-1 {
			out = append(out, domain.PageButton{Ellipsis: true})
		}
		out = append(out, domain.PageButton{Number: totalPages})
	}
	return out
}

// Run applies filter, sort and pagination for a view state.
func Run(records []domain.Record, state domain.ViewState) domain.Page {
	filtered := Filter(records, state.Filter)
	sorted := Sort(filtered, state.Sort)
	return Paginate(sorted, domain.DefaultPageSize, state.Page)
}
