package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"scripture-tui/internal/api"
	"scripture-tui/internal/focus"
	"scripture-tui/internal/history"
	"scripture-tui/internal/schema"
	"scripture-tui/internal/settings"
	"scripture-tui/internal/theme"
)

type viewMode int

const (
	modeReader viewMode = iota
	modeSearch
	modeVersionSelect
	modeHistory
)

const historyPageSize = 30

// Options configures a reader Model.
type Options struct {
	Client  *api.Client
	History *history.Store // optional
	Config  *settings.Config
	Logger  *zap.Logger
	Start   schema.Reference

	// FocusOptions are passed to the verse-focus controller.
	FocusOptions []focus.Option
}

type Model struct {
	client  *api.Client
	history *history.Store
	cfg     *settings.Config
	logger  *zap.Logger
	theme   theme.Theme

	pane      *readerPane
	requested *focus.Signal
	focus     *focus.Controller
	textInput textinput.Model

	versions  []schema.Version
	books     []schema.Book
	versionID int
	book      schema.BookInfo
	chapter   int
	verses    []schema.Verse

	// loadSeq identifies the latest chapter request; older responses are
	// dropped.
	loadSeq int

	chapterList    []schema.ChapterSummary
	chapterListFor chapterListKey

	// startVerse is requested once the first chapter arrives.
	startVerse int

	entries  []schema.ChapterHistory
	cursor   int
	rendered string // focused verse id the content was last rendered with

	mode    viewMode
	width   int
	height  int
	ready   bool
	err     error
	loading bool
}

type errMsg struct{ err error }
type catalogLoadedMsg struct{ catalog api.Catalog }
type chapterLoadedMsg struct {
	seq     int
	chapter schema.Chapter
	verse   int
}
type chapterFailedMsg struct {
	seq int
	err error
}
type chapterListKey struct {
	book      string
	versionID int
}
type chapterListMsg struct {
	key      chapterListKey
	chapters []schema.ChapterSummary
	err      error
}
type historyLoadedMsg struct{ entries []schema.ChapterHistory }
type historyRecordedMsg struct{ err error }

func (e errMsg) Error() string { return e.err.Error() }

func NewModel(opts Options) Model {
	ti := textinput.New()
	ti.Placeholder = "Enter a reference (e.g. john 3:16 or 1 jn 1:9)"
	ti.CharLimit = 50
	ti.Width = 50

	cfg := opts.Config
	if cfg == nil {
		cfg = &settings.Config{VersionID: 1}
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	start := opts.Start
	if start.Book.Abbreviation == "" {
		start.Book, _ = schema.BookByAbbreviation("gen")
		start.Chapter = 1
	}

	pane := newReaderPane()
	requested := focus.NewSignal(0)
	focusOpts := append([]focus.Option{
		focus.WithLogger(logger.Named("focus")),
		// The controller cannot reset the host's requested verse itself.
		focus.WithOnClearFocus(func() { requested.Set(0) }),
	}, opts.FocusOptions...)

	return Model{
		client:     opts.Client,
		history:    opts.History,
		cfg:        cfg,
		logger:     logger,
		theme:      theme.Get(cfg.Theme),
		pane:       pane,
		requested:  requested,
		focus:      focus.New(pane, requested, focusOpts...),
		textInput:  ti,
		versionID:  cfg.VersionID,
		book:       start.Book,
		chapter:    start.Chapter,
		startVerse: start.Verse,
		mode:       modeReader,
		loading:    true,
	}
}

// Close releases the focus controller. Call it after the program exits.
func (m Model) Close() {
	m.focus.Close()
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		loadCatalog(m.client, m.versionID),
		loadChapter(m.client, m.loadSeq, m.versionID, m.book.Abbreviation, m.chapter, m.startVerse),
		loadChapterList(m.client, m.versionID, m.book.Abbreviation),
	)
}

func loadCatalog(client *api.Client, versionID int) tea.Cmd {
	return func() tea.Msg {
		cat, err := client.Bootstrap(context.Background(), versionID)
		if err != nil {
			return errMsg{err}
		}
		return catalogLoadedMsg{cat}
	}
}

func loadChapter(client *api.Client, seq, versionID int, book string, chapter, verse int) tea.Cmd {
	return func() tea.Msg {
		ch, err := client.Chapter(context.Background(), versionID, book, chapter)
		if err != nil {
			return chapterFailedMsg{seq: seq, err: err}
		}
		return chapterLoadedMsg{seq: seq, chapter: ch, verse: verse}
	}
}

func loadChapterList(client *api.Client, versionID int, book string) tea.Cmd {
	return func() tea.Msg {
		key := chapterListKey{book: book, versionID: versionID}
		chapters, err := client.Chapters(context.Background(), book, versionID)
		return chapterListMsg{key: key, chapters: chapters, err: err}
	}
}

func loadHistory(store *history.Store) tea.Cmd {
	return func() tea.Msg {
		entries, err := store.List(context.Background(), historyPageSize)
		if err != nil {
			return errMsg{err}
		}
		return historyLoadedMsg{entries}
	}
}

func recordVisit(store *history.Store, entry schema.ChapterHistory) tea.Cmd {
	return func() tea.Msg {
		return historyRecordedMsg{store.Add(context.Background(), entry)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if next, cmd, handled := m.handleKey(msg); handled {
			return next.syncFocus(), cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.pane.resize(msg.Width, msg.Height-6)
		m.ready = true
		m.render()

	case catalogLoadedMsg:
		m.versions = msg.catalog.Versions
		m.books = msg.catalog.Books

	case chapterLoadedMsg:
		if msg.seq != m.loadSeq {
			m.logger.Debug("drop stale chapter",
				zap.String("book", msg.chapter.Book.Abbreviation),
				zap.Int("chapter", msg.chapter.Chapter))
			return m, nil
		}
		m.loading = false
		m.err = nil
		m.chapter = msg.chapter.Chapter
		m.verses = msg.chapter.Verses
		m.render()
		m.pane.vp.GotoTop()

		if m.history != nil {
			cmds = append(cmds, recordVisit(m.history, m.visit(msg.chapter, msg.verse)))
		}

		// The requested verse is set only once its anchor exists.
		m.requested.Set(msg.verse)
		if m.pane.scrolling {
			cmds = append(cmds, scrollTick(m.pane.gen))
		}
		return m.syncFocus(), tea.Batch(cmds...)

	case chapterFailedMsg:
		if msg.seq != m.loadSeq {
			return m, nil
		}
		m.err = msg.err
		m.loading = false
		m.logger.Error("load chapter", zap.Error(msg.err))
		return m, nil

	case chapterListMsg:
		if msg.err != nil {
			m.logger.Warn("load chapter list", zap.String("book", msg.key.book), zap.Error(msg.err))
			return m, nil
		}
		if msg.key == m.currentListKey() {
			m.chapterList = msg.chapters
			m.chapterListFor = msg.key
		}
		return m, nil

	case scrollStepMsg:
		if msg.gen != m.pane.gen {
			return m, nil
		}
		if m.pane.step() {
			m.focus.HandleScroll()
		}
		if m.pane.scrolling {
			cmds = append(cmds, scrollTick(m.pane.gen))
		}
		return m.syncFocus(), tea.Batch(cmds...)

	case historyLoadedMsg:
		m.entries = msg.entries
		m.cursor = 0

	case historyRecordedMsg:
		if msg.err != nil {
			m.logger.Warn("record history", zap.Error(msg.err))
		}
		return m, nil

	case errMsg:
		m.err = msg.err
		m.loading = false
		m.logger.Error("load failed", zap.Error(msg.err))
	}

	var cmd tea.Cmd
	if m.mode == modeSearch {
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	} else if m.mode == modeReader {
		before := m.pane.vp.YOffset
		m.pane.vp, cmd = m.pane.vp.Update(msg)
		cmds = append(cmds, cmd)
		if m.pane.vp.YOffset != before {
			m.pane.stop()
			m.focus.HandleScroll()
		}
	}

	return m.syncFocus(), tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	key := msg.String()
	if key == "ctrl+c" {
		return m, tea.Quit, true
	}

	switch m.mode {
	case modeSearch:
		switch key {
		case "esc":
			m.mode = modeReader
			m.textInput.Blur()
			return m, nil, true
		case "enter":
			ref, err := schema.ParseReference(m.textInput.Value())
			if err != nil {
				m.err = err
				return m, nil, true
			}
			m.textInput.SetValue("")
			m.textInput.Blur()
			m.mode = modeReader
			return m.open(ref.Book, ref.Chapter, ref.Verse)
		}
		return m, nil, false

	case modeVersionSelect, modeHistory:
		n := len(m.versions)
		if m.mode == modeHistory {
			n = len(m.entries)
		}
		switch key {
		case "esc", "q":
			m.mode = modeReader
			return m, nil, true
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil, true
		case "down", "j":
			if m.cursor < n-1 {
				m.cursor++
			}
			return m, nil, true
		case "enter":
			if m.cursor >= n {
				return m, nil, true
			}
			mode := m.mode
			m.mode = modeReader
			if mode == modeVersionSelect {
				return m.selectVersion(m.versions[m.cursor])
			}
			return m.openHistoryEntry(m.entries[m.cursor])
		}
		return m, nil, true
	}

	switch key {
	case "q":
		return m, tea.Quit, true
	case "/":
		m.mode = modeSearch
		m.textInput.Focus()
		return m, textinput.Blink, true
	case "v":
		m.mode = modeVersionSelect
		m.cursor = 0
		for i, v := range m.versions {
			if v.ID == m.versionID {
				m.cursor = i
			}
		}
		return m, nil, true
	case "h":
		if m.history == nil {
			return m, nil, true
		}
		m.mode = modeHistory
		m.entries = nil
		return m, loadHistory(m.history), true
	case "t":
		m.theme = theme.Next(m.theme.Slug)
		m.cfg.SetTheme(m.theme.Slug)
		m.savePreferences()
		m.render()
		return m, nil, true
	case "esc":
		m.focus.ClearFocus()
		return m, nil, true
	case "n":
		if m.chapter < m.chapterCount() {
			return m.open(m.book, m.chapter+1, 0)
		}
		if next, ok := m.book.Next(); ok {
			return m.open(next, 1, 0)
		}
		return m, nil, true
	case "p":
		if m.chapter > 1 {
			return m.open(m.book, m.chapter-1, 0)
		}
		if prev, ok := m.book.Prev(); ok {
			return m.open(prev, prev.Chapters, 0)
		}
		return m, nil, true
	}
	return m, nil, false
}
