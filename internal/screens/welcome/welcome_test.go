package welcome

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/worksheetai/internal/router"
	"github.com/abhisek/worksheetai/internal/screen"
)

// stubScreen is a minimal screen implementation for testing.
type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "form" }
func (s *stubScreen) Title() string                           { return "Form" }

func newTestWelcome() (*WelcomeScreen, *int) {
	callCount := 0
	factory := func() screen.Screen {
		callCount++
		return &stubScreen{}
	}
	return New(factory), &callCount
}

func sendTicks(w *WelcomeScreen, n int) tea.Cmd {
	var cmd tea.Cmd
	for i := 0; i < n; i++ {
		_, cmd = w.Update(frameMsg{})
	}
	return cmd
}

func TestPhases(t *testing.T) {
	w, _ := newTestWelcome()

	if strings.Contains(w.View(80, 24), Tagline) {
		t.Error("tagline should not be visible at start")
	}

	sendTicks(w, 8)
	view := w.View(80, 24)
	if !strings.Contains(view, Tagline) {
		t.Error("tagline should be visible once the sheet is drawn")
	}
	if strings.Contains(view, "press any key") {
		t.Error("hint should wait for the full animation")
	}

	sendTicks(w, 7)
	if !strings.Contains(w.View(80, 24), "press any key") {
		t.Error("hint should be visible after the animation")
	}
}

func TestTicksStopAfterAnimation(t *testing.T) {
	w, callCount := newTestWelcome()

	if cmd := sendTicks(w, 40); cmd != nil {
		t.Error("ticks should stop once the animation finishes")
	}
	if w.frame != promptFrame {
		t.Errorf("expected frame capped at %d, got %d", promptFrame, w.frame)
	}
	if *callCount != 0 {
		t.Errorf("factory should not be called without keypress, got %d", *callCount)
	}
}

func TestKeypressDuringAnimationTransitions(t *testing.T) {
	w, callCount := newTestWelcome()
	sendTicks(w, 3)

	_, cmd := w.Update(tea.KeyPressMsg{Code: ' '})
	if cmd == nil {
		t.Fatal("keypress during animation should trigger transition")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", msg)
	}
	if msg.Screen == nil {
		t.Error("replace screen should not be nil")
	}
	if *callCount != 1 {
		t.Errorf("factory should be called once, got %d", *callCount)
	}
}

func TestFactoryCalledOnce(t *testing.T) {
	w, callCount := newTestWelcome()

	w.Update(tea.KeyPressMsg{Code: 'a'})
	_, cmd := w.Update(tea.KeyPressMsg{Code: 'b'})
	if cmd != nil {
		t.Error("second keypress should not produce a command")
	}
	if *callCount != 1 {
		t.Errorf("factory should be called exactly once, got %d", *callCount)
	}
}

func TestTitleFitsWidth(t *testing.T) {
	if !strings.Contains(titleFor(30), titleCompact) {
		t.Error("narrow terminals should get the one-line title")
	}
	if !strings.Contains(titleFor(80), "W O R K S H E E T") {
		t.Error("wide terminals should get the boxed title")
	}
}

func TestSheetFillsIn(t *testing.T) {
	w, _ := newTestWelcome()
	if strings.Contains(w.View(80, 24), "1. ___") {
		t.Error("no answer lines should be drawn before the first frame")
	}
	sendTicks(w, titleFrame)
	view := w.View(80, 24)
	for _, line := range answerLines {
		if !strings.Contains(view, line) {
			t.Errorf("expected %q once the sheet is drawn", line)
		}
	}
}
