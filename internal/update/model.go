package update

import (
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/log"
	"github.com/sandeepkv93/todolist/internal/store"
)

type Mode string

const (
	ModeList    Mode = "list"
	ModeAdd     Mode = "add"
	ModeEdit    Mode = "edit"
	ModeSearch  Mode = "search"
	ModePalette Mode = "palette"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type Model struct {
	Mode        Mode
	Cursor      int
	Status      StatusBar
	HelpVisible bool
	Quitting    bool
	LastError   error

	store   *store.Store
	keys    keyMap
	help    help.Model
	input   textinput.Model
	theme   string
	refresh time.Duration
	clock   func() time.Time
	now     time.Time
	logger  *log.Logger
	width   int

	// pendingEdit prefills the edit line opened by the palette.
	pendingEdit string
}

type Options struct {
	// Theme is a glamour standard style name.
	Theme string
	// RefreshInterval re-renders relative times; zero disables it.
	RefreshInterval time.Duration
	Clock           func() time.Time
	Logger          *log.Logger
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

// RefreshMsg fires on the refresh interval. It only moves the render clock.
type RefreshMsg struct {
	At time.Time
}

func NewModel(st *store.Store, opts Options) Model {
	m := Model{
		Mode:    ModeList,
		store:   st,
		keys:    newKeyMap(),
		help:    help.New(),
		input:   textinput.New(),
		theme:   opts.Theme,
		refresh: opts.RefreshInterval,
		clock:   opts.Clock,
		logger:  opts.Logger,
	}
	if m.theme == "" {
		m.theme = "dark"
	}
	if m.clock == nil {
		m.clock = time.Now
	}
	if m.logger == nil {
		m.logger = log.New(io.Discard)
	}
	m.input.CharLimit = 280
	m.now = m.clock()
	return m
}

// Store exposes the backing store, mainly for tests.
func (m Model) Store() *store.Store {
	return m.store
}

func (m Model) InputValue() string {
	return m.input.Value()
}
