// Package welcome is the splash screen shown at startup: a blank worksheet
// whose answer lines fill in, followed by the title and a prompt.
package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/worksheetai/internal/router"
	"github.com/abhisek/worksheetai/internal/screen"
	"github.com/abhisek/worksheetai/internal/ui/theme"
)

const frameRate = 100 * time.Millisecond

// Frame counts at which each part of the splash appears.
const (
	titleFrame  = 8
	promptFrame = 15
)

// Tagline is shown under the title.
const Tagline = "Turn any topic into a printable worksheet"

const (
	titleBoxed = "╔═══════════════════════════════╗\n" +
		"║   W O R K S H E E T   A  I    ║\n" +
		"╚═══════════════════════════════╝"
	titleCompact = "WORKSHEET AI"
)

// answerLines are revealed top to bottom before the title appears.
var answerLines = []string{
	"1. ______________",
	"2. ( ) A  ( ) B",
	"3. ______________",
	"4. ( ) A  ( ) B",
	"5. ______________",
}

var (
	sheetStyle  = lipgloss.NewStyle().Foreground(theme.Secondary).Border(lipgloss.RoundedBorder()).BorderForeground(theme.Secondary).Padding(0, 1).Width(22)
	titleStyle  = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	taglineText = lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
)

type frameMsg struct{}

// WelcomeScreen plays the splash and replaces itself with the screen from
// next on the first keypress, whether or not the splash has finished.
type WelcomeScreen struct {
	next  func() screen.Screen
	frame int
	left  bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

func New(next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{next: next}
}

func (w *WelcomeScreen) Title() string { return "" }

func (w *WelcomeScreen) Init() tea.Cmd { return nextFrame() }

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case frameMsg:
		if w.frame == promptFrame {
			return w, nil
		}
		w.frame++
		return w, nextFrame()
	case tea.KeyPressMsg:
		if w.left {
			return w, nil
		}
		w.left = true
		return w, router.Replace(w.next())
	}
	return w, nil
}

func nextFrame() tea.Cmd {
	return tea.Tick(frameRate, func(time.Time) tea.Msg { return frameMsg{} })
}

// titleFor picks the boxed title unless the terminal is too narrow for it.
func titleFor(width int) string {
	if width < lipgloss.Width(titleBoxed) {
		return titleStyle.Render(titleCompact)
	}
	return titleStyle.Render(titleBoxed)
}

func (w *WelcomeScreen) sheet() string {
	shown := min(len(answerLines), w.frame*len(answerLines)/titleFrame)
	rows := make([]string, len(answerLines))
	copy(rows, answerLines[:shown])
	return sheetStyle.Render(strings.Join(rows, "\n"))
}

func (w *WelcomeScreen) View(width, height int) string {
	parts := []string{w.sheet()}
	if w.frame >= titleFrame {
		parts = append(parts, "", titleFor(width), "", taglineText.Render(Tagline))
	}
	if w.frame >= promptFrame {
		parts = append(parts, "", theme.Hint.Render("press any key to continue"))
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, parts...))
}
