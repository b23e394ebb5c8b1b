package schema

// Book is a book as returned by the API.
type Book struct {
	Abbreviation string `json:"abbreviation,omitempty"`
	Name         string `json:"name" validate:"required"`
	Chapters     int    `json:"chapters" validate:"gt=0"`
}

// Version is a translation of the text.
type Version struct {
	ID           int    `json:"id" validate:"gt=0"`
	Name         string `json:"name" validate:"required"`
	Abbreviation string `json:"abbreviation,omitempty"`
}

type Verse struct {
	Number int    `json:"number" validate:"gt=0"`
	Text   string `json:"text"`
}

// Chapter is the detail payload for a single chapter of one version.
type Chapter struct {
	Book    Book     `json:"book"`
	Chapter int      `json:"chapter" validate:"gt=0"`
	Version *Version `json:"version,omitempty" validate:"omitempty"`
	Verses  []Verse  `json:"verses" validate:"min=1,dive"`
}

// ChapterSummary is one row of a book's chapter listing.
type ChapterSummary struct {
	Chapter int `json:"chapter" validate:"gt=0"`
	Verses  int `json:"verses,omitempty" validate:"gte=0"`
}

// ChapterSelection identifies a chapter by catalog abbreviation.
type ChapterSelection struct {
	Book    string `json:"book" validate:"book"`
	Chapter int    `json:"chapter" validate:"gt=0"`
}

// VerseSelection identifies a single verse by catalog abbreviation.
type VerseSelection struct {
	Book    string `json:"book" validate:"book"`
	Chapter int    `json:"chapter" validate:"gt=0"`
	Verse   int    `json:"verse" validate:"gt=0"`
}

// ChapterHistory records one visit to a chapter. Timestamp is in Unix
// milliseconds.
type ChapterHistory struct {
	Book        string `json:"book" validate:"required"`
	BookName    string `json:"bookName" validate:"required"`
	Chapter     int    `json:"chapter" validate:"gt=0"`
	Verse       *int   `json:"verse,omitempty" validate:"omitempty,gt=0"`
	VersionName string `json:"versionName" validate:"required"`
	Timestamp   int64  `json:"timestamp" validate:"gt=0"`
}

// ChapterSelection drops the verse.
func (s VerseSelection) ChapterSelection() ChapterSelection {
	return ChapterSelection{Book: s.Book, Chapter: s.Chapter}
}
