// Package router keeps the terminal UI's screen stack. Screens never touch the
// stack directly; they return navigation messages, usually through Push, Pop
// or Replace.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/worksheetai/internal/screen"
)

type PushScreenMsg struct {
	Screen screen.Screen
}

type PopScreenMsg struct{}

// ReplaceScreenMsg swaps the top screen without growing the stack, e.g. when
// the welcome splash hands over to the form.
type ReplaceScreenMsg struct {
	Screen screen.Screen
}

func Push(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return PushScreenMsg{Screen: s} }
}

func Pop() tea.Cmd {
	return func() tea.Msg { return PopScreenMsg{} }
}

func Replace(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return ReplaceScreenMsg{Screen: s} }
}

// Router owns the stack. The bottom screen is never popped.
type Router struct {
	stack []screen.Screen
}

func New(root screen.Screen) *Router {
	return &Router{stack: []screen.Screen{root}}
}

// Active is the screen receiving input.
func (r *Router) Active() screen.Screen {
	return r.stack[len(r.stack)-1]
}

func (r *Router) Depth() int {
	return len(r.stack)
}

// Update applies navigation messages and forwards everything else to the
// active screen. Screens entering the stack get their Init command run.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	top := len(r.stack) - 1
	switch msg := msg.(type) {
	case PushScreenMsg:
		r.stack = append(r.stack, msg.Screen)
		return msg.Screen.Init()
	case ReplaceScreenMsg:
		r.stack[top] = msg.Screen
		return msg.Screen.Init()
	case PopScreenMsg:
		if top > 0 {
			r.stack = r.stack[:top]
		}
		return nil
	}

	next, cmd := r.stack[top].Update(msg)
	r.stack[top] = next
	return cmd
}

func (r *Router) View(width, height int) string {
	return r.Active().View(width, height)
}
