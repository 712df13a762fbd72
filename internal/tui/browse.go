// Package tui provides interactive terminal UI components.
package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lepinkainen/bookfinder/internal/book"
	"github.com/lepinkainen/bookfinder/internal/render"
)

const (
	defaultListWidth  = 72
	defaultListHeight = 20
	favoriteMark      = "★"
)

var runProgram = func(m tea.Model) (tea.Model, error) {
	return tea.NewProgram(m).Run()
}

// Favorites is the part of the favorites store the browser needs.
type Favorites interface {
	Toggle(ctx context.Context, b book.Book) (bool, error)
	IsFavorite(id string) bool
}

// BrowseResult summarizes a browsing session.
type BrowseResult struct {
	Added   int
	Removed int
}

type bookItem struct {
	book.Book
	favorite bool
}

func (i bookItem) FilterValue() string {
	return i.Book.Title
}

type itemStyles struct {
	normal       lipgloss.Style
	selected     lipgloss.Style
	titleStyle   lipgloss.Style
	starStyle    lipgloss.Style
	authorStyle  lipgloss.Style
	summaryStyle lipgloss.Style
}

func newItemStyles() itemStyles {
	asciiBorder := lipgloss.Border{
		Top:         "-",
		Bottom:      "-",
		Left:        "|",
		Right:       "|",
		TopLeft:     "+",
		TopRight:    "+",
		BottomLeft:  "+",
		BottomRight: "+",
	}

	container := lipgloss.NewStyle().
		Border(asciiBorder).
		BorderForeground(lipgloss.Color("62")).
		Padding(0, 1).
		Foreground(lipgloss.Color("252"))

	selected := container.Copy().
		BorderForeground(lipgloss.Color("214")).
		Foreground(lipgloss.Color("230")).
		Background(lipgloss.Color("237"))

	return itemStyles{
		normal:   container,
		selected: selected,
		titleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("254")),
		starStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("178")),
		authorStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("110")),
		summaryStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("248")),
	}
}

type bookDelegate struct {
	styles itemStyles
}

func (d bookDelegate) Height() int                         { return 5 }
func (d bookDelegate) Spacing() int                        { return 1 }
func (d bookDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }

func (d bookDelegate) Render(w io.Writer, m list.Model, idx int, item list.Item) {
	entry, ok := item.(bookItem)
	if !ok {
		return
	}

	width := m.Width() - 4
	title := d.styles.titleStyle.Render(render.Truncate(entry.Book.Title, width-2))
	if entry.favorite {
		title = lipgloss.JoinHorizontal(lipgloss.Left, title, " ", d.styles.starStyle.Render(favoriteMark))
	}
	authors := d.styles.authorStyle.Render(render.Truncate(fmt.Sprintf("%s | %s", entry.AuthorList(), entry.Genre), width))
	summary := d.styles.summaryStyle.Render(render.Truncate(entry.Summary, width))

	content := lipgloss.JoinVertical(lipgloss.Left, title, authors, summary)

	container := d.styles.normal
	if idx == m.Index() {
		container = d.styles.selected
	}
	_, _ = fmt.Fprint(w, container.Render(content))
}

type model struct {
	ctx       context.Context
	list      list.Model
	heading   string
	favorites Favorites
	status    string
	result    BrowseResult
}

func newModel(ctx context.Context, heading string, books []book.Book, favorites Favorites) *model {
	items := make([]list.Item, len(books))
	for i, b := range books {
		items[i] = bookItem{Book: b, favorite: favorites.IsFavorite(b.ID)}
	}

	l := list.New(items, bookDelegate{styles: newItemStyles()}, defaultListWidth, defaultListHeight)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.SetShowTitle(false)
	l.SetShowPagination(false)
	l.DisableQuitKeybindings()
	l.Styles.NoItems = lipgloss.NewStyle()

	return &model{
		ctx:       ctx,
		list:      l,
		heading:   heading,
		favorites: favorites,
	}
}

func (m *model) Init() tea.Cmd { return nil }

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "f", " ", "enter":
			return m, m.toggleSelected()
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		width := clamp(defaultListWidth, msg.Width-4, 40)
		height := clamp(defaultListHeight, msg.Height-6, 5)
		m.list.SetSize(width, height)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *model) toggleSelected() tea.Cmd {
	selected, ok := m.list.SelectedItem().(bookItem)
	if !ok {
		return nil
	}

	favorite, err := m.favorites.Toggle(m.ctx, selected.Book)
	if err != nil {
		m.status = fmt.Sprintf("Could not update favorites: %v", err)
		return nil
	}

	if favorite {
		m.result.Added++
		m.status = fmt.Sprintf("Added %q to favorites", selected.Book.Title)
	} else {
		m.result.Removed++
		m.status = fmt.Sprintf("Removed %q from favorites", selected.Book.Title)
	}
	selected.favorite = favorite
	return m.list.SetItem(m.list.Index(), selected)
}

func (m *model) View() string {
	header := headerStyle.Render(m.heading)
	help := helpStyle.Render("Up/Down navigate | f toggle favorite | q quit")
	parts := []string{header, m.list.View()}
	if m.status != "" {
		parts = append(parts, statusStyle.Render(m.status))
	}
	parts = append(parts, help)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214")).
			MarginBottom(1)

	statusStyle = lipgloss.NewStyle().
			MarginTop(1).
			Foreground(lipgloss.Color("178"))

	helpStyle = lipgloss.NewStyle().
			MarginTop(1).
			Foreground(lipgloss.Color("244"))
)

// Browse shows books in an interactive list where each one can be toggled
// in and out of favorites.
func Browse(ctx context.Context, heading string, books []book.Book, favorites Favorites) (BrowseResult, error) {
	if len(books) == 0 {
		return BrowseResult{}, nil
	}

	finalModel, err := runProgram(newModel(ctx, heading, books, favorites))
	if err != nil {
		return BrowseResult{}, err
	}

	if typed, ok := finalModel.(*model); ok {
		return typed.result, nil
	}

	return BrowseResult{}, fmt.Errorf("unexpected program result")
}

// Heading builds the browser title for a query.
func Heading(query string, count int) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return fmt.Sprintf("%d recommendations", count)
	}
	return fmt.Sprintf("%d results for: %s", count, query)
}

func clamp(defaultValue, available, minimum int) int {
	width := defaultValue
	if available > 0 && available < defaultValue {
		width = available
	}
	if width < minimum {
		width = minimum
	}
	return width
}
