package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-raycaster/internal/core"
)

// ViewerKeyMap defines the key bindings of the 3D view.
type ViewerKeyMap struct {
	Forward     key.Binding
	Backward    key.Binding
	TurnLeft    key.Binding
	TurnRight   key.Binding
	StrafeLeft  key.Binding
	StrafeRight key.Binding
	ToggleMap   key.Binding
	Pause       key.Binding
	Reset       key.Binding
	Screenshot  key.Binding
	Quit        key.Binding
}

// ShortHelp returns bindings for the compact help view.
func (k ViewerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Forward, k.TurnLeft, k.StrafeLeft, k.ToggleMap, k.Pause, k.Quit}
}

// FullHelp returns bindings for the expanded help view.
func (k ViewerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Forward, k.Backward, k.TurnLeft, k.TurnRight},
		{k.StrafeLeft, k.StrafeRight, k.ToggleMap},
		{k.Pause, k.Reset, k.Screenshot, k.Quit},
	}
}

// DefaultViewerKeyMap returns the default bindings.
func DefaultViewerKeyMap() ViewerKeyMap {
	return ViewerKeyMap{
		Forward: key.NewBinding(
			key.WithKeys("w", "up"),
			key.WithHelp("w/s", "move"),
		),
		Backward: key.NewBinding(
			key.WithKeys("s", "down"),
			key.WithHelp("s/down", "back"),
		),
		TurnLeft: key.NewBinding(
			key.WithKeys("a", "left"),
			key.WithHelp("a/d", "turn"),
		),
		TurnRight: key.NewBinding(
			key.WithKeys("d", "right"),
			key.WithHelp("d/right", "turn right"),
		),
		StrafeLeft: key.NewBinding(
			key.WithKeys("q", ","),
			key.WithHelp("q/e", "strafe"),
		),
		StrafeRight: key.NewBinding(
			key.WithKeys("e", "."),
			key.WithHelp("e/.", "strafe right"),
		),
		ToggleMap: key.NewBinding(
			key.WithKeys("m", "tab"),
			key.WithHelp("m", "map"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", " "),
			key.WithHelp("p", "pause"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "respawn"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
	}
}

// Action translates a key message to a viewer action.
// Keys handled by the model itself (reset, screenshot) map to ActionNone.
func (k ViewerKeyMap) Action(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Forward):
		return core.ActionForward
	case key.Matches(msg, k.Backward):
		return core.ActionBackward
	case key.Matches(msg, k.TurnLeft):
		return core.ActionTurnLeft
	case key.Matches(msg, k.TurnRight):
		return core.ActionTurnRight
	case key.Matches(msg, k.StrafeLeft):
		return core.ActionStrafeLeft
	case key.Matches(msg, k.StrafeRight):
		return core.ActionStrafeRight
	case key.Matches(msg, k.ToggleMap):
		return core.ActionToggleMap
	case key.Matches(msg, k.Pause):
		return core.ActionPause
	}
	return core.ActionNone
}

// ListKeyMap defines the key bindings of the map picker and history screens.
type ListKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Next    key.Binding
	Prev    key.Binding
	Select  key.Binding
	History key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns bindings for the compact help view.
func (k ListKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.History, k.Back, k.Quit}
}

// FullHelp returns bindings for the expanded help view.
func (k ListKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Next, k.Prev},
		{k.Select, k.History, k.Back, k.Quit},
	}
}

// DefaultListKeyMap returns the default bindings.
func DefaultListKeyMap() ListKeyMap {
	return ListKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "w"),
			key.WithHelp("up/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "s"),
			key.WithHelp("down/j", "down"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right/l", "next map"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left/h", "prev map"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "play"),
		),
		History: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "bench history"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
