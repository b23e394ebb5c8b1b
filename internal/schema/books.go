package schema

import (
	"strconv"
	"strings"

	"scripture-tui/internal/textnorm"
)

// BookInfo is one entry of the canonical book catalog.
type BookInfo struct {
	Abbreviation string
	Name         string
	Chapters     int
}

var catalog = []BookInfo{
	{"gen", "Genesis", 50},
	{"exo", "Exodus", 40},
	{"lev", "Leviticus", 27},
	{"num", "Numbers", 36},
	{"deu", "Deuteronomy", 34},
	{"jos", "Joshua", 24},
	{"jdg", "Judges", 21},
	{"rut", "Ruth", 4},
	{"1sa", "1 Samuel", 31},
	{"2sa", "2 Samuel", 24},
	{"1ki", "1 Kings", 22},
	{"2ki", "2 Kings", 25},
	{"1ch", "1 Chronicles", 29},
	{"2ch", "2 Chronicles", 36},
	{"ezr", "Ezra", 10},
	{"neh", "Nehemiah", 13},
	{"est", "Esther", 10},
	{"job", "Job", 42},
	{"psa", "Psalms", 150},
	{"pro", "Proverbs", 31},
	{"ecc", "Ecclesiastes", 12},
	{"sng", "Song of Solomon", 8},
	{"isa", "Isaiah", 66},
	{"jer", "Jeremiah", 52},
	{"lam", "Lamentations", 5},
	{"ezk", "Ezekiel", 48},
	{"dan", "Daniel", 12},
	{"hos", "Hosea", 14},
	{"jol", "Joel", 3},
	{"amo", "Amos", 9},
	{"oba", "Obadiah", 1},
	{"jon", "Jonah", 4},
	{"mic", "Micah", 7},
	{"nam", "Nahum", 3},
	{"hab", "Habakkuk", 3},
	{"zep", "Zephaniah", 3},
	{"hag", "Haggai", 2},
	{"zec", "Zechariah", 14},
	{"mal", "Malachi", 4},
	{"mat", "Matthew", 28},
	{"mrk", "Mark", 16},
	{"luk", "Luke", 24},
	{"jhn", "John", 21},
	{"act", "Acts", 28},
	{"rom", "Romans", 16},
	{"1co", "1 Corinthians", 16},
	{"2co", "2 Corinthians", 13},
	{"gal", "Galatians", 6},
	{"eph", "Ephesians", 6},
	{"php", "Philippians", 4},
	{"col", "Colossians", 4},
	{"1th", "1 Thessalonians", 5},
	{"2th", "2 Thessalonians", 3},
	{"1ti", "1 Timothy", 6},
	{"2ti", "2 Timothy", 4},
	{"tit", "Titus", 3},
	{"phm", "Philemon", 1},
	{"heb", "Hebrews", 13},
	{"jas", "James", 5},
	{"1pe", "1 Peter", 5},
	{"2pe", "2 Peter", 3},
	{"1jn", "1 John", 5},
	{"2jn", "2 John", 1},
	{"3jn", "3 John", 1},
	{"jud", "Jude", 1},
	{"rev", "Revelation", 22},
}

var byAbbreviation = func() map[string]int {
	idx := make(map[string]int, len(catalog))
	for i, b := range catalog {
		idx[b.Abbreviation] = i
	}
	return idx
}()

// Catalog returns the canonical books in biblical order.
func Catalog() []BookInfo {
	out := make([]BookInfo, len(catalog))
	copy(out, catalog)
	return out
}

// IsBookAbbreviation reports whether abbr names a catalog book.
func IsBookAbbreviation(abbr string) bool {
	_, ok := byAbbreviation[abbr]
	return ok
}

// BookByAbbreviation returns the catalog entry for abbr.
func BookByAbbreviation(abbr string) (BookInfo, bool) {
	i, ok := byAbbreviation[abbr]
	if !ok {
		return BookInfo{}, false
	}
	return catalog[i], true
}

// LookupBook resolves free-form user input to a catalog book. It tries, in
// order: a 1-based book number, an exact abbreviation, an exact name and a
// name prefix. Comparison ignores case, accents and whitespace.
func LookupBook(query string) (BookInfo, bool) {
	q := textnorm.Normalize(query)
	if q == "" {
		return BookInfo{}, false
	}

	if n, err := strconv.Atoi(q); err == nil {
		if n >= 1 && n <= len(catalog) {
			return catalog[n-1], true
		}
		return BookInfo{}, false
	}

	if b, ok := BookByAbbreviation(q); ok {
		return b, true
	}
	for _, b := range catalog {
		if textnorm.Normalize(b.Name) == q {
			return b, true
		}
	}
	for _, b := range catalog {
		if strings.HasPrefix(textnorm.Normalize(b.Name), q) {
			return b, true
		}
	}
	return BookInfo{}, false
}

// Next returns the book after b in canonical order.
func (b BookInfo) Next() (BookInfo, bool) {
	i, ok := byAbbreviation[b.Abbreviation]
	if !ok || i+1 >= len(catalog) {
		return BookInfo{}, false
	}
	return catalog[i+1], true
}

// Prev returns the book before b in canonical order.
func (b BookInfo) Prev() (BookInfo, bool) {
	i, ok := byAbbreviation[b.Abbreviation]
	if !ok || i == 0 {
		return BookInfo{}, false
	}
	return catalog[i-1], true
}
