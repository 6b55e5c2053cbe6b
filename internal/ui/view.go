package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nowflowai/nowflow/internal/news"
)

// View renders the full terminal frame.
func (a App) View() string {
	if !a.ready {
		return "starting..."
	}

	var b strings.Builder
	b.WriteString(a.renderHeader())
	b.WriteString("\n")

	if a.searching {
		b.WriteString(" " + a.searchInput.View() + "\n\n")
	} else if a.state.SearchQuery != "" {
		b.WriteString(sourceStyle.Render(fmt.Sprintf(" filter: %q (press / then esc to clear)", a.state.SearchQuery)) + "\n\n")
	}

	b.WriteString(a.renderList())
	b.WriteString("\n")
	b.WriteString(a.renderStatus())
	return b.String()
}

func (a App) renderHeader() string {
	tabs := []string{"1:feed", "2:saved", "3:history"}
	for i := range tabs {
		if tab(i) == a.activeTab {
			tabs[i] = selectedStyle.Render(" " + tabs[i] + " ")
		} else {
			tabs[i] = sourceStyle.Render(" " + tabs[i] + " ")
		}
	}

	left := titleStyle.Render("NowFlow") + "  " + strings.Join(tabs, "")
	right := ""
	if a.activeTab == tabHome {
		f := a.state.Filters
		right = sourceStyle.Render(fmt.Sprintf("%s · %s · %s",
			topicLabel(a.currentTopic()), f.DateRange, f.SortBy))
	}

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return headerStyle.Width(a.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (a App) renderList() string {
	items := a.visibleItems()
	if len(items) == 0 {
		return emptyStyle.Render(a.emptyMessage())
	}

	// Keep the cursor inside a window that fits the frame.
	rows := a.height - 6
	if rows < 3 {
		rows = 3
	}
	start := 0
	if a.cursor >= rows {
		start = a.cursor - rows + 1
	}
	end := start + rows
	if end > len(items) {
		end = len(items)
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		b.WriteString(a.renderItem(items[i], i == a.cursor))
		b.WriteString("\n")
		if i == a.cursor && a.expanded {
			b.WriteString(a.renderDetail(items[i]))
		}
	}
	return b.String()
}

func (a App) renderItem(item news.Article, active bool) string {
	var badges strings.Builder
	if a.saved[item.ID] {
		badges.WriteString(bookmarkStyle.Render("★ "))
	}
	if a.recommended[item.ID] {
		badges.WriteString(recommendStyle.Render("◆ "))
	}

	title := item.Title
	line := fmt.Sprintf("%s%s", badges.String(), title)
	meta := sourceStyle.Render(fmt.Sprintf("  %s · %s", item.Source, item.PublishedAt))

	switch {
	case active:
		return selectedStyle.Render("▸ "+line) + meta
	case a.read[item.ID]:
		return readStyle.Render("  " + line + "  " + item.Source)
	default:
		return "  " + line + meta
	}
}

func (a App) renderDetail(item news.Article) string {
	var b strings.Builder
	if item.Summary != "" {
		b.WriteString(summaryStyle.Render(wrap(item.Summary, a.width-4)))
		b.WriteString("\n")
	}
	for _, point := range item.KeyTakeaways {
		b.WriteString(summaryStyle.Render("• " + wrap(point, a.width-6)))
		b.WriteString("\n")
	}
	if item.WhyItMatters != "" {
		b.WriteString(summaryStyle.Render(titleStyle.Render("Why it matters: ") + wrap(item.WhyItMatters, a.width-4)))
		b.WriteString("\n")
	}
	if item.URL != "" {
		b.WriteString(summaryStyle.Render(sourceStyle.Render(item.URL)))
		b.WriteString("\n")
	}
	return b.String()
}

func (a App) renderStatus() string {
	if a.err != nil {
		return statusStyle.Width(a.width).Render(errStyle.Render("error: " + a.err.Error()))
	}

	var parts []string
	switch {
	case a.state.IsInitialLoading && a.activeTab == tabHome:
		parts = append(parts, a.spin.View()+" loading feed")
	case a.state.IsPaginating && a.activeTab == tabHome:
		parts = append(parts, a.spin.View()+" loading more")
	case !a.state.HasMore && a.activeTab == tabHome:
		parts = append(parts, "end of feed")
	}
	if a.statusNote != "" {
		parts = append(parts, a.statusNote)
	}
	if n := len(a.visibleItems()); n > 0 {
		parts = append(parts, fmt.Sprintf("%d/%d", a.cursor+1, n))
	}
	parts = append(parts, "j/k move · [/] topic · d/o filters · r refresh · / search · b save · q quit")

	return statusStyle.Width(a.width).Render(strings.Join(parts, "  "))
}

func (a App) emptyMessage() string {
	switch a.activeTab {
	case tabSaved:
		return "No bookmarks yet. Press b on a story to save it."
	case tabHistory:
		return "Nothing read yet."
	default:
		if a.state.Loading() {
			return a.spin.View() + " fetching stories..."
		}
		if a.state.SearchQuery != "" {
			return "No loaded stories match the search."
		}
		return "No news found. Press r to refresh or ] to try another topic."
	}
}

func topicLabel(t news.Topic) string {
	if t == news.TopicAll {
		return "All Topics"
	}
	return string(t)
}

// wrap does simple word wrapping at width columns.
func wrap(s string, width int) string {
	if width < 20 {
		width = 20
	}
	words := strings.Fields(s)
	var b strings.Builder
	line := 0
	for i, w := range words {
		if line > 0 && line+1+len(w) > width {
			b.WriteString("\n")
			line = 0
		} else if i > 0 {
			b.WriteString(" ")
			line++
		}
		b.WriteString(w)
		line += len(w)
	}
	return b.String()
}
