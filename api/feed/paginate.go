package feed

import (
	"strconv"
	"strings"
)

const DefaultPageSize = 10

type Page struct {
	Posts    []Post
	Number   int
	NumPages int
	Total    int
	PageSize int
}

func (p Page) HasPrevious() bool { return p.Number > 1 }

func (p Page) HasNext() bool { return p.Number < p.NumPages }

func (p Page) PreviousNumber() int { return p.Number - 1 }

func (p Page) NextNumber() int { return p.Number + 1 }

// StartIndex is the 1-based position of the first post on the page, or 0
// when the page is empty.
func (p Page) StartIndex() int {
	if p.Total == 0 {
		return 0
	}
	return (p.Number-1)*p.PageSize + 1
}

func (p Page) EndIndex() int {
	return p.StartIndex() + len(p.Posts) - 1
}

// NumPages is never below one; an empty sequence still has an empty page.
func NumPages(total, size int) int {
	if size < 1 {
		size = DefaultPageSize
	}
	if total <= 0 {
		return 1
	}
	return (total + size - 1) / size
}

// ParsePage clamps a raw page parameter into [1, numPages]. Anything that
// is not an integer resolves to the first page.
func ParsePage(raw string, numPages int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 1
	}
	if n > numPages {
		return numPages
	}
	return n
}

func Paginate(posts []Post, raw string, size int) Page {
	if size < 1 {
		size = DefaultPageSize
	}
	total := len(posts)
	numPages := NumPages(total, size)
	number := ParsePage(raw, numPages)

	start := (number - 1) * size
	end := min(start+size, total)

	return Page{
		Posts:    posts[start:end],
		Number:   number,
		NumPages: numPages,
		Total:    total,
		PageSize: size,
	}
}
