package domain

import (
	"regexp"
	"strings"

	"github.com/araddon/dateparse"
)

// DateLayout is the output format of ExtractDate.
const DateLayout = "2006-01-02"

// numericDMY matches a leading D-M-Y or D.M.Y date, which dateparse only reads
// day-first once the separators are slashes.
var numericDMY = regexp.MustCompile(`^(\d{1,2})[-.](\d{1,2})[-.](\d{2}|\d{4})\b`)

// ExtractDate parses a day-first date in any common layout and returns it as
// YYYY-MM-DD. Input whose month field is out of range is retried swapped.
func ExtractDate(s string) (date string, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}

	// dateparse panics on a few malformed inputs.
	defer func() {
		if recover() != nil {
			date, ok = "", false
		}
	}()

	s = numericDMY.ReplaceAllString(s, "$1/$2/$3")

	t, err := dateparse.ParseAny(s,
		dateparse.PreferMonthFirst(false),
		dateparse.RetryAmbiguousDateWithSwap(true),
	)
	if err != nil {
		return "", false
	}
	return t.Format(DateLayout), true
}
