package schema

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrEmptyReference = errors.New("empty reference")

// Reference is a parsed user reference. Verse is zero when the input named
// only a chapter.
type Reference struct {
	Book    BookInfo
	Chapter int
	Verse   int
}

// Selection returns the reference in the shape the API addresses verses by.
func (r Reference) Selection() VerseSelection {
	return VerseSelection{Book: r.Book.Abbreviation, Chapter: r.Chapter, Verse: r.Verse}
}

func (r Reference) String() string {
	if r.Verse > 0 {
		return fmt.Sprintf("%s %d:%d", r.Book.Name, r.Chapter, r.Verse)
	}
	return fmt.Sprintf("%s %d", r.Book.Name, r.Chapter)
}

// ParseReference handles "john 3:16", "jhn 3", "1 john 1:9", "Gênesis" and
// the numeric "43 3:16" form. A missing chapter means chapter 1.
func ParseReference(s string) (Reference, error) {
	parts := strings.Fields(s)
	if len(parts) == 0 {
		return Reference{}, ErrEmptyReference
	}

	bookPart := parts
	chapter, verse := 1, 0
	if len(parts) > 1 {
		if c, v, ok := parseChapterVerse(parts[len(parts)-1]); ok {
			chapter, verse = c, v
			bookPart = parts[:len(parts)-1]
		}
	}

	query := strings.Join(bookPart, " ")
	book, ok := LookupBook(query)
	if !ok {
		return Reference{}, fmt.Errorf("unknown book %q", query)
	}
	if chapter < 1 || chapter > book.Chapters {
		return Reference{}, fmt.Errorf("%s has no chapter %d", book.Name, chapter)
	}

	ref := Reference{Book: book, Chapter: chapter, Verse: verse}
	var sel any = ref.Selection()
	if verse == 0 {
		sel = ref.Selection().ChapterSelection()
	}
	if err := Validate(sel); err != nil {
		return Reference{}, err
	}
	return ref, nil
}

func parseChapterVerse(s string) (chapter, verse int, ok bool) {
	cv := strings.SplitN(s, ":", 2)
	chapter, err := strconv.Atoi(cv[0])
	if err != nil {
		return 0, 0, false
	}
	if len(cv) == 2 {
		verse, err = strconv.Atoi(cv[1])
		if err != nil {
			return 0, 0, false
		}
	}
	return chapter, verse, true
}
