// Package display provides the terminal UI using Bubble Tea.
//
// The [UI] type is the domain.Renderer of the interactive front end. It
// keeps the last rendered cycle (cards, counter, dropdown options and the
// error banner) on a board drawn above the search prompt. Lines typed
// after Enter and command output are printed into the scrollback via
// Program.Println / Printf, so concurrent writes never garble the display.
package display

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/petitsplats/internal/domain"
)

// Compile-time interface check.
var _ domain.Renderer = (*UI)(nil)

// ── Styles ───────────────────────────────────────────────────────

var (
	barBg = lipgloss.NewStyle().
		Background(lipgloss.Color("#27272a")).
		Foreground(lipgloss.Color("#a1a1aa"))

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fde68a")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fca5a5"))

	columnTitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#a1a1aa")).
				Underline(true)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bbf7d0")).
			Bold(true)

	columnStyle = lipgloss.NewStyle().
			PaddingRight(3)

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8"))

	// BannerStyle is the muted slate of the startup banner.
	BannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8"))

	cardStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4d4d8"))

	secondaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a"))

	urgentOutputStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#fca5a5"))

	userInputEchoStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#a1a1aa"))
)

const prompt = "recherche> "

// Option configures the UI.
type Option func(*UI)

// WithMaxCards caps the number of recipe cards on the board.
func WithMaxCards(n int) Option {
	return func(u *UI) {
		if n > 0 {
			u.maxCards = n
		}
	}
}

// WithMaxOptions caps the number of values listed per dropdown column.
func WithMaxOptions(n int) Option {
	return func(u *UI) {
		if n > 0 {
			u.maxOptions = n
		}
	}
}

// WithTotal sets the number shown by the counter when no filter is active.
func WithTotal(n int) Option {
	return func(u *UI) {
		u.total = n
	}
}

// ── UI ───────────────────────────────────────────────────────────

// UI manages the terminal through Bubble Tea.
//
// Call [NewUI] then [UI.Run] (blocking). Other goroutines may safely call
// the Render methods, [UI.Println], [UI.Printf] and read from
// [UI.InputChan] at any time; redraw requests are only sent once
// [UI.WaitReady] has returned.
type UI struct {
	program  *tea.Program
	inputCh  chan string
	readyCh  chan struct{}
	quitCh   chan struct{}
	onChange func(string)
	ready    atomic.Bool
	done     atomic.Bool

	maxCards   int
	maxOptions int
	total      int

	board *board
}

// board is the last rendered cycle, shared by the renderer goroutine and
// the Bubble Tea model.
type board struct {
	mu       sync.Mutex
	recipes  []*domain.Recipe
	count    domain.Count
	options  [len(domain.Dimensions)][]string
	selected [len(domain.Dimensions)][]string
	err      *domain.EmptyResultError
}

// NewUI creates the display. onChange receives the search box content
// after every keystroke; it must not block.
func NewUI(onChange func(string), opts ...Option) *UI {
	u := &UI{
		inputCh:    make(chan string, 16),
		readyCh:    make(chan struct{}),
		quitCh:     make(chan struct{}),
		onChange:   onChange,
		maxCards:   12,
		maxOptions: 8,
		board:      &board{},
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// redrawMsg asks the model to repaint from the board.
type redrawMsg struct{}

func (u *UI) redraw() {
	if u.ready.Load() && !u.done.Load() && u.program != nil {
		u.program.Send(redrawMsg{})
	}
}

// RenderRecipes replaces the cards.
func (u *UI) RenderRecipes(recipes []*domain.Recipe) {
	u.board.mu.Lock()
	u.board.recipes = recipes
	u.board.mu.Unlock()
	u.redraw()
}

// RenderCount updates the counter.
func (u *UI) RenderCount(count domain.Count) {
	u.board.mu.Lock()
	u.board.count = count
	u.board.mu.Unlock()
	u.redraw()
}

// RenderFacetOptions repopulates one dropdown column.
func (u *UI) RenderFacetOptions(d domain.Dimension, options, selected []string) {
	if !d.Valid() {
		return
	}
	u.board.mu.Lock()
	u.board.options[d] = options
	u.board.selected[d] = selected
	u.board.mu.Unlock()
	u.redraw()
}

// RenderError shows or, with nil, hides the error banner.
func (u *UI) RenderError(err *domain.EmptyResultError) {
	u.board.mu.Lock()
	u.board.err = err
	u.board.mu.Unlock()
	u.redraw()
}

// Println prints a line above the board. Thread-safe.
// If the program hasn't started yet, falls back to fmt.Println.
func (u *UI) Println(a ...interface{}) {
	if u.ready.Load() && !u.done.Load() && u.program != nil {
		u.program.Println(a...)
	} else {
		fmt.Println(a...)
	}
}

// Printf prints formatted text above the board. Thread-safe.
func (u *UI) Printf(format string, a ...interface{}) {
	if u.ready.Load() && !u.done.Load() && u.program != nil {
		u.program.Printf(format, a...)
	} else {
		fmt.Printf(format+"\n", a...)
	}
}

// PrintHint prints a secondary/dimmed line.
func (u *UI) PrintHint(text string) {
	u.Println(secondaryStyle.Render("  " + text))
}

// PrintUrgent prints an error line.
func (u *UI) PrintUrgent(text string) {
	u.Println(urgentOutputStyle.Render("  " + text))
}

// PrintUserInput echoes a submitted line into the scrollback.
func (u *UI) PrintUserInput(text string) {
	u.Println(promptStyle.Render(prompt) + userInputEchoStyle.Render(text))
}

// InputChan returns lines submitted with Enter.
func (u *UI) InputChan() <-chan string { return u.inputCh }

// WaitReady blocks until the Bubble Tea event loop is running.
func (u *UI) WaitReady() { <-u.readyCh }

// Quit tells Bubble Tea to exit.
func (u *UI) Quit() {
	if u.program != nil {
		u.program.Quit()
	}
}

// QuitChan is closed when Run returns.
func (u *UI) QuitChan() <-chan struct{} { return u.quitCh }

// Run starts the Bubble Tea event loop. Blocks until quit.
func (u *UI) Run() error {
	ti := textinput.New()
	// Plain-text prompt so the textinput width math stays correct.
	ti.Prompt = prompt
	ti.PromptStyle = promptStyle
	ti.TextStyle = userInputEchoStyle
	ti.Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#94a3b8"))
	ti.Placeholder = "Rechercher une recette, un ingrédient, ... ou :help"
	ti.Focus()
	ti.CharLimit = 200
	ti.Width = 60 // updated on first WindowSizeMsg

	m := model{
		ui:    u,
		input: ti,
	}

	u.program = tea.NewProgram(m)
	_, err := u.program.Run()
	u.done.Store(true)
	close(u.quitCh)
	return err
}

// ── Bubble Tea model ─────────────────────────────────────────────

type model struct {
	ui    *UI
	input textinput.Model
	width int
}

type readyMsg struct{}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		tea.SetWindowTitle("Les Petits Plats"),
		func() tea.Msg { return readyMsg{} },
	)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case readyMsg:
		if !m.ui.ready.Load() {
			m.ui.ready.Store(true)
			close(m.ui.readyCh)
		}
		return m, nil

	case redrawMsg:
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyEnter:
			v := m.input.Value()
			if isCommand(v) {
				m.input.Reset()
			}
			if strings.TrimSpace(v) == "" {
				return m, nil
			}
			m.ui.inputCh <- v
			// Echo runs outside Update so it won't deadlock on msgs.
			ui := m.ui
			return m, func() tea.Msg {
				ui.PrintUserInput(v)
				return nil
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		if msg.Width > len(prompt) {
			m.input.Width = msg.Width - len(prompt)
		}
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before && !isCommand(after) && m.ui.onChange != nil {
		m.ui.onChange(after)
	}
	return m, cmd
}

// isCommand reports whether the prompt holds a ":" command rather than a
// search query.
func isCommand(v string) bool {
	return strings.HasPrefix(strings.TrimSpace(v), ":")
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(m.renderBoard())
	b.WriteByte('\n')
	b.WriteString(m.input.View())
	return b.String()
}

func (m model) renderBoard() string {
	u := m.ui
	u.board.mu.Lock()
	defer u.board.mu.Unlock()
	bd := u.board

	var b strings.Builder
	if banner := ErrorBanner(bd.err); banner != "" {
		b.WriteString(errorStyle.Render("  " + banner))
		b.WriteByte('\n')
	}

	for i, r := range bd.recipes {
		if i == u.maxCards {
			b.WriteString(secondaryStyle.Render(fmt.Sprintf("  … et %d autres", len(bd.recipes)-u.maxCards)))
			b.WriteByte('\n')
			break
		}
		b.WriteString(cardStyle.Render("  • " + RecipeLine(r)))
		b.WriteByte('\n')
	}

	b.WriteByte('\n')
	cols := make([]string, 0, len(domain.Dimensions))
	for _, d := range domain.Dimensions {
		cols = append(cols, m.renderColumn(d))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cols...))
	b.WriteByte('\n')

	b.WriteString(m.renderBar(CountLabel(bd.count, u.total)))
	return b.String()
}

// renderColumn lists the selected values first, then the remaining
// offerable ones. Caller holds the board lock.
func (m model) renderColumn(d domain.Dimension) string {
	bd := m.ui.board
	lines := []string{columnTitleStyle.Render(DimensionTitle(d))}

	for _, v := range bd.selected[d] {
		lines = append(lines, selectedStyle.Render("✓ "+v))
	}

	shown := 0
	rest := 0
	for _, v := range bd.options[d] {
		if slices.Contains(bd.selected[d], v) {
			continue
		}
		if shown == m.ui.maxOptions {
			rest++
			continue
		}
		lines = append(lines, "  "+v)
		shown++
	}
	if rest > 0 {
		lines = append(lines, secondaryStyle.Render(fmt.Sprintf("  +%d", rest)))
	}
	return columnStyle.Render(strings.Join(lines, "\n"))
}

func (m model) renderBar(count string) string {
	content := " " + countStyle.Render(count) + secondaryStyle.Render("  │  :i :a :u pour filtrer, :help") + " "
	w := m.width
	if w <= 0 {
		w = 80
	}
	return barBg.Width(w).Render(content)
}
