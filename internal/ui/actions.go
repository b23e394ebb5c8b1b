package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"scripture-tui/internal/schema"
	"scripture-tui/internal/settings"
)

// open starts loading a chapter. verse, when positive, is focused once the
// chapter is on screen.
func (m Model) open(book schema.BookInfo, chapter, verse int) (Model, tea.Cmd, bool) {
	m.requested.Set(0)
	m.pane.stop()

	var listCmd tea.Cmd
	if book.Abbreviation != m.book.Abbreviation {
		listCmd = loadChapterList(m.client, m.versionID, book.Abbreviation)
	}
	m.book = book
	m.chapter = chapter
	m.loading = true
	m.loadSeq++
	return m, tea.Batch(listCmd, loadChapter(m.client, m.loadSeq, m.versionID, book.Abbreviation, chapter, verse)), true
}

func (m Model) selectVersion(v schema.Version) (Model, tea.Cmd, bool) {
	m.versionID = v.ID
	m.cfg.SetVersionID(v.ID)
	m.savePreferences()

	m, cmd, _ := m.open(m.book, m.chapter, 0)
	return m, tea.Batch(loadCatalog(m.client, v.ID), loadChapterList(m.client, v.ID, m.book.Abbreviation), cmd), true
}

func (m Model) openHistoryEntry(e schema.ChapterHistory) (Model, tea.Cmd, bool) {
	book, ok := schema.BookByAbbreviation(e.Book)
	if !ok {
		if book, ok = schema.LookupBook(e.BookName); !ok {
			m.err = fmt.Errorf("unknown book %q in history", e.Book)
			return m, nil, true
		}
	}
	verse := 0
	if e.Verse != nil {
		verse = *e.Verse
	}
	return m.open(book, e.Chapter, verse)
}

func (m Model) currentListKey() chapterListKey {
	return chapterListKey{book: m.book.Abbreviation, versionID: m.versionID}
}

// chapterCount prefers the chapter list of the current book, then the API's
// book list, and falls back to the catalog.
func (m Model) chapterCount() int {
	if m.chapterListFor == m.currentListKey() && len(m.chapterList) > 0 {
		last := 0
		for _, c := range m.chapterList {
			last = max(last, c.Chapter)
		}
		return last
	}
	for _, b := range m.books {
		if b.Abbreviation == m.book.Abbreviation {
			return b.Chapters
		}
	}
	return m.book.Chapters
}

func (m Model) versionName(v *schema.Version) string {
	if v != nil && v.Name != "" {
		return v.Name
	}
	for _, known := range m.versions {
		if known.ID == m.versionID {
			return known.Name
		}
	}
	return fmt.Sprintf("version %d", m.versionID)
}

func (m Model) visit(ch schema.Chapter, verse int) schema.ChapterHistory {
	name := ch.Book.Name
	if name == "" {
		name = m.book.Name
	}
	var v *int
	if verse > 0 {
		v = &verse
	}
	return schema.ChapterHistory{
		Book:        m.book.Abbreviation,
		BookName:    name,
		Chapter:     ch.Chapter,
		Verse:       v,
		VersionName: m.versionName(ch.Version),
	}
}

func (m Model) savePreferences() {
	if m.cfg.Path() == "" {
		return
	}
	if err := settings.Save(m.cfg); err != nil {
		m.logger.Warn("save settings", zap.Error(err))
	}
}

// syncFocus re-renders the chapter when the focused verse changed since the
// last render.
func (m Model) syncFocus() Model {
	if m.focus.FocusedVerseID() != m.rendered {
		m.render()
	}
	return m
}

func (m *Model) render() {
	focused := m.focus.FocusedVerseID()
	content, anchors := formatChapter(m.verses, m.theme, m.textWidth(), focused, m.focus.OverlayHeight())
	m.pane.setContent(content, anchors)
	m.rendered = focused
}

func (m Model) textWidth() int {
	if m.width == 0 {
		return 80
	}
	return max(20, min(80, m.width-8))
}
