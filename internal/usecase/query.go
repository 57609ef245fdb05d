package usecase

import (
	"time"
)

// DateFilterKind enumerates the closed set of date filters a listing or
// summary can apply. Unknown request keywords map to FilterNone rather
// than failing: the lenient fallback is part of the API contract.
type DateFilterKind int

const (
	// FilterNone applies no date constraint.
	FilterNone DateFilterKind = iota
	// FilterPastWeek keeps expenses dated within the last 7 days.
	FilterPastWeek
	// FilterPastMonth keeps expenses dated within the last calendar month.
	FilterPastMonth
	// FilterLast3Months keeps expenses dated within the last 3 calendar months.
	FilterLast3Months
	// FilterCustom keeps expenses within an inclusive date range.
	FilterCustom
)

// DateFilter is the resolved date constraint for a query.
type DateFilter struct {
	Kind  DateFilterKind
	Start time.Time // Day-begin bound, set only for FilterCustom.
	End   time.Time // Day-end bound, set only for FilterCustom.
}

const dateLayout = "2006-01-02"

// ParseDateFilter maps raw request parameters onto a DateFilter. The
// mapping is deliberately lenient: an unrecognized keyword, or a custom
// range with missing or unparseable dates, yields FilterNone instead of
// an error.
func ParseDateFilter(keyword, startDate, endDate string) DateFilter {
	switch keyword {
	case "past_week":
		return DateFilter{Kind: FilterPastWeek}
	case "past_month":
		return DateFilter{Kind: FilterPastMonth}
	case "last_3_months":
		return DateFilter{Kind: FilterLast3Months}
	case "custom":
		start, errStart := time.ParseInLocation(dateLayout, startDate, time.Local)
		end, errEnd := time.ParseInLocation(dateLayout, endDate, time.Local)
		if errStart != nil || errEnd != nil {
			return DateFilter{Kind: FilterNone}
		}

		return DateFilter{Kind: FilterCustom, Start: start, End: end}
	default:
		return DateFilter{Kind: FilterNone}
	}
}

// Bounds resolves the filter into inclusive expense_date bounds relative
// to now. Nil means unbounded on that side.
func (f DateFilter) Bounds(now time.Time) (from, to *time.Time) {
	switch f.Kind {
	case FilterPastWeek:
		t := now.AddDate(0, 0, -7)

		return &t, nil
	case FilterPastMonth:
		t := now.AddDate(0, -1, 0)

		return &t, nil
	case FilterLast3Months:
		t := now.AddDate(0, -3, 0)

		return &t, nil
	case FilterCustom:
		start := startOfDay(f.Start)
		end := endOfDay(f.End)

		return &start, &end
	default:
		return nil, nil
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// Sort field allow-list. Anything else falls back to the default
// (expense_date, descending); the fallback is contractual, not an error.
var allowedSortColumns = map[string]string{
	"id":           "id",
	"description":  "description",
	"amount":       "amount",
	"expense_date": "expense_date",
	"created_at":   "created_at",
	"updated_at":   "updated_at",
}

// DefaultSortColumn orders listings when no valid sort is requested.
const DefaultSortColumn = "expense_date"

// ResolveSort maps raw sort parameters onto a column from the allow-list
// and a direction. Any direction other than "asc" sorts descending.
func ResolveSort(sortBy, direction string) (column string, desc bool) {
	column, ok := allowedSortColumns[sortBy]
	if !ok {
		return DefaultSortColumn, true
	}

	return column, direction != "asc"
}

// DefaultPerPage is the page size used when the caller does not specify one.
const DefaultPerPage = 15

// NormalizePage clamps pagination parameters to sane values.
func NormalizePage(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}

	return page, perPage
}
