package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nowflowai/nowflow/internal/feed"
	"github.com/nowflowai/nowflow/internal/news"
)

// tab identifies the active view.
type tab int

const (
	tabHome tab = iota
	tabSaved
	tabHistory
)

// Commands are the injected side-effect constructors. The App never holds
// the synchronizer or the stores directly; it receives results via
// messages.
type Commands struct {
	SetTopic       func(news.Topic) tea.Cmd
	SetFilters     func(news.Filters) tea.Cmd
	Refresh        func() tea.Cmd
	Paginate       func(position int) tea.Cmd
	SetSearch      func(query string) tea.Cmd
	ToggleBookmark func(a news.Article) tea.Cmd
	MarkRead       func(a news.Article) tea.Cmd
	LoadLibrary    func() tea.Cmd
	Recommend      func(history, candidates []news.Article) tea.Cmd
}

// App is the root Bubble Tea model.
type App struct {
	cmds Commands

	state      feed.State
	activeTab  tab
	topicIdx   int // -1 == wildcard "All"
	cursor     int
	expanded   bool
	width      int
	height     int
	ready      bool
	err        error
	statusNote string

	bookmarks   []news.Article
	history     []news.Article
	saved       map[string]bool
	read        map[string]bool
	recommended map[string]bool

	searching   bool
	searchInput textinput.Model
	spin        spinner.Model
}

// NewApp creates the App. The initial feed state comes from the
// synchronizer snapshot taken at wire time.
func NewApp(cmds Commands, initial feed.State) App {
	ti := textinput.New()
	ti.Placeholder = "Search topics, trends, or keywords..."
	ti.CharLimit = 80

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return App{
		cmds:        cmds,
		state:       initial,
		topicIdx:    -1,
		saved:       make(map[string]bool),
		read:        make(map[string]bool),
		recommended: make(map[string]bool),
		searchInput: ti,
		spin:        sp,
	}
}

// Init loads the library and kicks off the first page load.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.spin.Tick}
	if a.cmds.LoadLibrary != nil {
		cmds = append(cmds, a.cmds.LoadLibrary())
	}
	if a.cmds.SetTopic != nil {
		cmds = append(cmds, a.cmds.SetTopic(a.currentTopic()))
	}
	return tea.Batch(cmds...)
}

// Update handles messages and returns the updated model and any commands.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd

	case StateUpdated:
		a.state = msg.State
		if a.cursor >= len(a.visibleItems()) && a.cursor > 0 {
			a.cursor = len(a.visibleItems()) - 1
			if a.cursor < 0 {
				a.cursor = 0
			}
		}
		return a, nil

	case LibraryLoaded:
		if msg.Err != nil {
			a.err = msg.Err
			return a, nil
		}
		a.bookmarks = msg.Bookmarks
		a.history = msg.History
		a.saved = make(map[string]bool, len(msg.Bookmarks))
		for _, b := range msg.Bookmarks {
			a.saved[b.ID] = true
		}
		a.read = make(map[string]bool, len(msg.History))
		for _, h := range msg.History {
			a.read[h.ID] = true
		}
		var cmd tea.Cmd
		if a.cmds.Recommend != nil && len(msg.History) > 0 {
			cmd = a.cmds.Recommend(msg.History, a.state.Items)
		}
		return a, cmd

	case BookmarkToggled:
		if msg.Err != nil {
			a.err = msg.Err
			return a, nil
		}
		a.saved[msg.Article.ID] = msg.Saved
		if msg.Saved {
			a.bookmarks = append(a.bookmarks, msg.Article)
			a.statusNote = "bookmarked"
		} else {
			a.bookmarks = removeByID(a.bookmarks, msg.Article.ID)
			a.statusNote = "bookmark removed"
		}
		return a, nil

	case MarkedRead:
		if msg.Err != nil {
			a.err = msg.Err
			return a, nil
		}
		a.read[msg.Article.ID] = true
		a.history = append([]news.Article{msg.Article}, removeByID(a.history, msg.Article.ID)...)
		return a, nil

	case RecommendationsLoaded:
		if msg.Err == nil {
			a.recommended = make(map[string]bool, len(msg.IDs))
			for _, id := range msg.IDs {
				a.recommended[id] = true
			}
		}
		return a, nil

	case LoadDispatched:
		return a, nil
	}

	if a.searching {
		var cmd tea.Cmd
		a.searchInput, cmd = a.searchInput.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Search entry mode captures everything except the exits.
	if a.searching {
		switch msg.String() {
		case "enter":
			a.searching = false
			return a, a.cmds.SetSearch(a.searchInput.Value())
		case "esc":
			a.searching = false
			a.searchInput.SetValue("")
			return a, a.cmds.SetSearch("")
		default:
			var cmd tea.Cmd
			a.searchInput, cmd = a.searchInput.Update(msg)
			return a, cmd
		}
	}

	if a.err != nil {
		a.err = nil
	}
	a.statusNote = ""

	switch msg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit

	case "j", "down":
		items := a.visibleItems()
		if a.cursor < len(items)-1 {
			a.cursor++
		}
		return a, a.maybePaginate()

	case "k", "up":
		if a.cursor > 0 {
			a.cursor--
		}
		return a, nil

	case "g", "home":
		a.cursor = 0
		return a, nil

	case "G", "end":
		if n := len(a.visibleItems()); n > 0 {
			a.cursor = n - 1
		}
		return a, a.maybePaginate()

	case "]", "tab":
		return a.cycleTopic(1)

	case "[", "shift+tab":
		return a.cycleTopic(-1)

	case "d":
		f := a.state.Filters
		f.DateRange = nextOf(f.DateRange, []string{news.DateAny, news.DateToday, news.DateWeek, news.DateMonth})
		a.cursor = 0
		return a, a.cmds.SetFilters(f)

	case "o":
		f := a.state.Filters
		f.SortBy = nextOf(f.SortBy, []string{news.SortRelevance, news.SortNewest})
		a.cursor = 0
		return a, a.cmds.SetFilters(f)

	case "r":
		a.cursor = 0
		return a, a.cmds.Refresh()

	case "/":
		a.searching = true
		a.searchInput.Focus()
		return a, textinput.Blink

	case "b":
		if item, ok := a.selected(); ok {
			return a, a.cmds.ToggleBookmark(item)
		}
		return a, nil

	case "enter", "l":
		if item, ok := a.selected(); ok {
			a.expanded = !a.expanded
			if a.expanded && !a.read[item.ID] {
				return a, a.cmds.MarkRead(item)
			}
		}
		return a, nil

	case "1":
		a.activeTab = tabHome
		a.cursor = 0
		return a, nil

	case "2":
		a.activeTab = tabSaved
		a.cursor = 0
		return a, nil

	case "3":
		a.activeTab = tabHistory
		a.cursor = 0
		return a, nil
	}

	return a, nil
}

// cycleTopic moves through All + the concrete topics and switches the feed.
func (a App) cycleTopic(delta int) (tea.Model, tea.Cmd) {
	if a.activeTab != tabHome {
		return a, nil
	}
	topics := news.Topics()
	a.topicIdx += delta
	if a.topicIdx < -1 {
		a.topicIdx = len(topics) - 1
	}
	if a.topicIdx >= len(topics) {
		a.topicIdx = -1
	}
	a.cursor = 0
	a.expanded = false
	return a, a.cmds.SetTopic(a.currentTopic())
}

func (a App) currentTopic() news.Topic {
	if a.topicIdx < 0 {
		return news.TopicAll
	}
	return news.Topics()[a.topicIdx]
}

// maybePaginate hands the cursor position to the pagination trigger. The
// trigger applies its own gates; this just reports position.
func (a App) maybePaginate() tea.Cmd {
	if a.activeTab != tabHome || a.cmds.Paginate == nil {
		return nil
	}
	return a.cmds.Paginate(a.cursor)
}

// selected returns the article under the cursor.
func (a App) selected() (news.Article, bool) {
	items := a.visibleItems()
	if a.cursor < 0 || a.cursor >= len(items) {
		return news.Article{}, false
	}
	return items[a.cursor], true
}

// visibleItems applies the tab choice and the client-side search filter.
// Search never triggers a fetch; it narrows what is already loaded.
func (a App) visibleItems() []news.Article {
	var src []news.Article
	switch a.activeTab {
	case tabSaved:
		src = a.bookmarks
	case tabHistory:
		src = a.history
	default:
		src = a.state.Items
	}

	query := strings.ToLower(strings.TrimSpace(a.state.SearchQuery))
	if query == "" {
		return src
	}
	var out []news.Article
	for _, item := range src {
		if strings.Contains(strings.ToLower(item.Title), query) ||
			strings.Contains(strings.ToLower(item.Summary), query) {
			out = append(out, item)
		}
	}
	return out
}

func removeByID(items []news.Article, id string) []news.Article {
	out := items[:0:0]
	for _, item := range items {
		if item.ID != id {
			out = append(out, item)
		}
	}
	return out
}

// nextOf cycles value through options.
func nextOf(value string, options []string) string {
	for i, opt := range options {
		if opt == value {
			return options[(i+1)%len(options)]
		}
	}
	return options[0]
}
