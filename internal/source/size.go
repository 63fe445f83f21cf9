package source

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
)

// DefaultMaxChars is the advisory size limit. At roughly four characters per
// token this is about 3000 input tokens.
const DefaultMaxChars = 12_000

// SizeReport describes content length relative to a limit.
type SizeReport struct {
	Chars    int
	Limit    int
	Exceeded bool
}

// CheckSize counts characters in content. A non-positive limit disables the
// check.
func CheckSize(content string, limit int) SizeReport {
	n := utf8.RuneCountInString(content)
	return SizeReport{
		Chars:    n,
		Limit:    limit,
		Exceeded: limit > 0 && n > limit,
	}
}

// WarnIfLarge writes a cost advisory to w when content exceeds limit and
// reports whether it did. Write errors are ignored.
func WarnIfLarge(w io.Writer, content string, limit int) bool {
	r := CheckSize(content, limit)
	if !r.Exceeded {
		return false
	}
	fmt.Fprintf(w, "Warning: This file is %s characters. Large files consume more API tokens and may increase cost.\n\n",
		humanize.Comma(int64(r.Chars)))
	return true
}
