package pagination

// Ellipsis marks a gap in a page range.
const Ellipsis = -1

const DefaultSiblings = 1

func TotalPages(total, perPage int) int {
	if perPage <= 0 || total <= 0 {
		return 0
	}
	return (total-1)/perPage + 1
}

func span(start, end int) []int {
	if end < start {
		return []int{}
	}
	res := make([]int, 0, end-start+1)
	for i := start; i <= end; i++ {
		res = append(res, i)
	}
	return res
}

// Range returns the page numbers a pager shows around current, with
// Ellipsis standing in for skipped runs.
func Range(current, totalPages, siblings int) []int {
	if siblings < 0 {
		siblings = 0
	}
	totalNumbers := siblings*2 + 3
	if totalPages <= totalNumbers {
		return span(1, totalPages)
	}
	current = min(max(current, 1), totalPages)

	left := max(current-siblings, 1)
	right := min(current+siblings, totalPages)
	leftDots := left > 2
	rightDots := right < totalPages-1

	switch {
	case !leftDots && rightDots:
		res := span(1, 3+2*siblings)
		return append(res, Ellipsis, totalPages)
	case leftDots && !rightDots:
		res := []int{1, Ellipsis}
		return append(res, span(totalPages-(3+2*siblings)+1, totalPages)...)
	}

	res := []int{1, Ellipsis}
	res = append(res, span(left, right)...)
	return append(res, Ellipsis, totalPages)
}

// Slice returns the items of one page. page < 1 is treated as the first page,
// a page past the end is empty.
func Slice[T any](list []T, page, perPage int) []T {
	if perPage <= 0 {
		return list
	}
	if page < 1 {
		page = 1
	}
	// compare pages before multiplying, page*perPage may overflow
	if page > TotalPages(len(list), perPage) {
		return []T{}
	}
	start := (page - 1) * perPage
	end := start + min(perPage, len(list)-start)
	return list[start:end]
}
