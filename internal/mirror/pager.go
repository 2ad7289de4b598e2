package mirror

import (
	"fmt"
	"strings"
)

// Page is one slice of the reversed file, newest lines first.
type Page struct {
	Lines      []string `json:"lines"`
	Page       int      `json:"page"`
	PageSize   int      `json:"page_size"`
	TotalLines int      `json:"total_lines"`
	HasMore    bool     `json:"has_more"`
}

// ReadPage reads page number `page` (1-indexed) of `size` lines from the
// reversed file. A missing reversed file yields an empty first page.
func ReadPage(reversedPath string, page, size int) (*Page, error) {
	if page < 1 {
		return nil, fmt.Errorf("page must be >= 1, got %d", page)
	}
	if size < 1 {
		return nil, fmt.Errorf("page size must be >= 1, got %d", size)
	}

	content, err := readFileOrEmpty(reversedPath)
	if err != nil {
		return nil, err
	}

	var lines []string
	if content != "" {
		lines = strings.Split(content, delim)
		// a delimiter-terminated file splits into one trailing empty element
		if lines[len(lines)-1] == "" {
			lines = lines[:len(lines)-1]
		}
	}

	total := len(lines)

	// page*size can overflow int for very large page values; the division
	// form of the bounds check cannot
	if total == 0 || page-1 > (total-1)/size {
		return &Page{
			Lines:      []string{},
			Page:       page,
			PageSize:   size,
			TotalLines: total,
			HasMore:    false,
		}, nil
	}

	start := (page - 1) * size
	end := start + size
	if end > total {
		end = total
	}

	return &Page{
		Lines:      lines[start:end],
		Page:       page,
		PageSize:   size,
		TotalLines: total,
		HasMore:    end < total,
	}, nil
}
