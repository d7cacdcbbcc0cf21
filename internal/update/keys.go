package update

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	Select     key.Binding
	Complete   key.Binding
	Add        key.Binding
	Edit       key.Binding
	Delete     key.Binding
	Undo       key.Binding
	Search     key.Binding
	Clear      key.Binding
	Filter     key.Binding
	Sort       key.Binding
	MoveUp     key.Binding
	MoveDown   key.Binding
	Palette    key.Binding
	Help       key.Binding
	Quit       key.Binding
	ForceQuit  key.Binding
	Submit     key.Binding
	CancelForm key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:         key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
		Down:       key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
		Select:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "preview")),
		Complete:   key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space/x", "toggle done")),
		Add:        key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Edit:       key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Undo:       key.NewBinding(key.WithKeys("u", "ctrl+z"), key.WithHelp("u", "undo")),
		Search:     key.NewBinding(key.WithKeys("ctrl+k"), key.WithHelp("ctrl+k", "search")),
		Clear:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear selection")),
		Filter:     key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "cycle filter")),
		Sort:       key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "cycle sort")),
		MoveUp:     key.NewBinding(key.WithKeys("K"), key.WithHelp("K", "move up")),
		MoveDown:   key.NewBinding(key.WithKeys("J"), key.WithHelp("J", "move down")),
		Palette:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "command")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit:  key.NewBinding(key.WithKeys("ctrl+c")),
		Submit:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		CancelForm: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Complete, k.Select, k.Undo, k.Palette, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.Clear},
		{k.Add, k.Edit, k.Complete, k.Delete, k.Undo},
		{k.Search, k.Filter, k.Sort, k.MoveUp, k.MoveDown},
		{k.Palette, k.Help, k.Quit},
	}
}

// formKeys is the help shown while an input line has focus.
type formKeys struct {
	k keyMap
}

func (f formKeys) ShortHelp() []key.Binding {
	return []key.Binding{f.k.Submit, f.k.CancelForm}
}

func (f formKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{f.ShortHelp()}
}
