package listing

// Result is the canonical shape of one list response, whatever envelope it
// arrived in.
type Result[T any] struct {
	Items       []T
	Total       int
	CurrentPage int
	LastPage    int
}

func emptyResult[T any]() Result[T] {
	return Result[T]{Items: []T{}, CurrentPage: 1, LastPage: 1}
}

// LastPage returns ceil(total/perPage), never less than 1
func LastPage(total, perPage int) int {
	if perPage < 1 || total <= 0 {
		return 1
	}
	last := total / perPage
	if total%perPage > 0 {
		last++
	}
	return last
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
