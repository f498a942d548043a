package service

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/guttosm/print-quote-service/internal/domain/model"
)

// PageSelectionResolver turns a free-form page range such as "1-3,5,10-12"
// into the pages that will actually be printed.
type PageSelectionResolver interface {
	// Resolve returns the number of distinct pages selected, always in
	// [1, totalPages]. Malformed or empty selections select every page.
	Resolve(expression string, totalPages int) (int, error)
	// SelectedPages returns the selected page numbers in ascending order.
	SelectedPages(expression string, totalPages int) ([]int, error)
}

// PageSelectionService implements PageSelectionResolver. It is stateless.
type PageSelectionService struct{}

// NewPageSelectionResolver creates a PageSelectionService.
func NewPageSelectionResolver() *PageSelectionService {
	return &PageSelectionService{}
}

// pageSpan is an inclusive run of pages.
type pageSpan struct {
	from, to int
}

func (s *PageSelectionService) Resolve(expression string, totalPages int) (int, error) {
	spans, err := selectSpans(expression, totalPages)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, sp := range spans {
		count += sp.to - sp.from + 1
	}
	return count, nil
}

func (s *PageSelectionService) SelectedPages(expression string, totalPages int) ([]int, error) {
	spans, err := selectSpans(expression, totalPages)
	if err != nil {
		return nil, err
	}
	var pages []int
	for _, sp := range spans {
		for p := sp.from; p <= sp.to; p++ {
			pages = append(pages, p)
		}
	}
	return pages, nil
}

// selectSpans parses the expression into sorted, non-overlapping spans within
// [1, totalPages]. An empty result selects the whole document.
func selectSpans(expression string, totalPages int) ([]pageSpan, error) {
	if totalPages < 1 {
		return nil, fmt.Errorf("%w: total pages must be at least 1, got %d", model.ErrInvalidArgument, totalPages)
	}
	all := []pageSpan{{1, totalPages}}

	expr := strings.TrimSpace(expression)
	if expr == "" || strings.EqualFold(expr, "all") {
		return all, nil
	}

	var spans []pageSpan
	for _, segment := range strings.Split(expr, ",") {
		segment = strings.TrimSpace(segment)
		if sp, ok := parseSegment(segment, totalPages); ok {
			spans = append(spans, sp)
		}
	}
	if len(spans) == 0 {
		return all, nil
	}
	return mergeSpans(spans), nil
}

// parseSegment handles a single comma separated token. Ranges use the first
// two '-' separated fields; both must be numeric or the segment is dropped.
func parseSegment(segment string, totalPages int) (pageSpan, bool) {
	if strings.Contains(segment, "-") {
		fields := strings.Split(segment, "-")
		start, err := parsePageNumber(fields[0])
		if err != nil {
			return pageSpan{}, false
		}
		end, err := parsePageNumber(fields[1])
		if err != nil {
			return pageSpan{}, false
		}
		from := max(1, min(start, end))
		to := min(totalPages, max(start, end))
		if from > to {
			return pageSpan{}, false
		}
		return pageSpan{from, to}, true
	}

	page, err := parsePageNumber(segment)
	if err != nil || page < 1 || page > totalPages {
		return pageSpan{}, false
	}
	return pageSpan{page, page}, true
}

var errNotANumber = errors.New("not a number")

// parsePageNumber reads the leading integer of s, ignoring trailing junk so
// that "3abc" reads as 3. Values too large for int saturate.
func parsePageNumber(s string) (int, error) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, errNotANumber
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			if s[0] == '-' {
				return math.MinInt, nil
			}
			return math.MaxInt, nil
		}
		return 0, err
	}
	return n, nil
}

func mergeSpans(spans []pageSpan) []pageSpan {
	sort.Slice(spans, func(i, j int) bool { return spans[i].from < spans[j].from })
	merged := spans[:1]
	for _, sp := range spans[1:] {
		last := &merged[len(merged)-1]
		if sp.from <= last.to+1 {
			last.to = max(last.to, sp.to)
			continue
		}
		merged = append(merged, sp)
	}
	return merged
}
