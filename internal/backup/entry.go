// Package backup turns directory entry names into dated backup entries.
package backup

import (
	"regexp"
	"strings"
	"time"
)

// dateLayout is the normalised form of a date found in a name.
const dateLayout = "2006-01-02"

// Entry is one dated item found in a backup folder.
type Entry struct {
	Name   string
	Date   time.Time // midnight UTC
	Prefix string    // letters before the date
	Suffix string    // letters after the date
}

// Parser extracts dates and series identities from entry names.
// The zero value is not usable; build one with NewParser.
type Parser struct {
	pattern *regexp.Regexp
}

// NewParser returns a parser matching YYYY-MM-DD, where each separator
// is either '-' or '.'. The greedy prefix makes the rightmost date win.
func NewParser() *Parser {
	return &Parser{
		pattern: regexp.MustCompile(`^(.*)(\d{4}[-.]\d{2}[-.]\d{2})(.*)$`),
	}
}

// Parse returns the entry for name, or false if the name carries no
// valid calendar date.
func (p *Parser) Parse(name string) (Entry, bool) {
	m := p.pattern.FindStringSubmatch(name)
	if m == nil {
		return Entry{}, false
	}

	date, err := time.Parse(dateLayout, strings.ReplaceAll(m[2], ".", "-"))
	if err != nil {
		return Entry{}, false
	}

	return Entry{
		Name:   name,
		Date:   date,
		Prefix: lettersOnly(m[1]),
		Suffix: lettersOnly(m[3]),
	}, true
}

// ParseAll parses names in order and returns the accepted entries along
// with the names that were skipped.
func (p *Parser) ParseAll(names []string) (entries []Entry, skipped []string) {
	for _, name := range names {
		e, ok := p.Parse(name)
		if !ok {
			skipped = append(skipped, name)
			continue
		}
		entries = append(entries, e)
	}
	return entries, skipped
}

func lettersOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return r
		}
		return -1
	}, s)
}
