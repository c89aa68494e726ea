package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

// Prompt texts shown to the player.
const (
	SegmentsPrompt = "Enter starting no. of segments (1-10):"
	ReplayPrompt   = "Play again? (y/n)"
	InvalidInput   = "Invalid input. Try again."
)

type phase int

const (
	phaseSetup phase = iota
	phasePlaying
	phaseReplay
	phaseDone
)

// Model is the Bubble Tea model for playing snake.
// It walks through setup prompt -> running -> replay prompt -> running ... -> done.
type Model struct {
	launch     registry.Launch
	keys       KeyMap
	help       help.Model
	input      textinput.Model
	phase      phase
	session    *snake.Session
	renderer   *snake.Renderer
	pacer      snake.Pacer
	screen     *core.Screen
	inputFrame core.InputFrame
	status     string
	err        error
	gen        int
	width      int
	height     int
	quitting   bool
}

// NewModel creates a model for a w x h terminal. When the launch carries a
// segment count the session starts right away; otherwise the player is asked.
func NewModel(l registry.Launch, w, h int) Model {
	in := textinput.New()
	in.CharLimit = 3
	in.Width = 8
	in.Prompt = "> "
	in.Focus()

	m := Model{
		launch:     l,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		input:      in,
		phase:      phaseSetup,
		screen:     core.NewScreen(w, h),
		inputFrame: core.NewInputFrame(),
		pacer:      snake.NewPacer(l.Config.Timing),
		width:      w,
		height:     h,
	}

	if l.Segments > 0 {
		m = m.startSession(l.Segments)
	}
	return m
}

// startSession builds the engine session and enters the Running phase.
func (m Model) startSession(segments int) Model {
	s, err := snake.NewSession(m.launch.Config, segments, m.launch.Store, m.launch.SessionOptions()...)
	if err != nil {
		m.err = err
		m.quitting = true
		return m
	}
	m.session = s
	m.renderer = snake.NewRenderer(m.launch.Config, m.width, m.height)
	m.phase = phasePlaying
	m.status = ""
	m.input.Blur()
	m.launch.Notify(s.Frame(), snake.TickResult{State: s.State()})
	return m
}

// Init starts the tick loop, or the cursor blink while prompting.
func (m Model) Init() tea.Cmd {
	switch {
	case m.err != nil:
		return tea.Quit
	case m.phase == phasePlaying:
		return tickCmd(m.pacer.Step(), m.gen)
	default:
		return textinput.Blink
	}
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.Gen != m.gen || m.phase != phasePlaying {
			return m, nil
		}
		return m.handleTick()
	}

	if m.phase == phaseSetup || m.phase == phaseReplay {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.phase == phaseSetup || m.phase == phaseReplay {
		switch {
		case key.Matches(msg, m.keys.Abort):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Submit):
			if m.phase == phaseSetup {
				return m.submitSegments()
			}
			return m.submitReplay()
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	action := m.keys.Action(msg)
	switch {
	case action == core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case action.IsDirection():
		m.inputFrame.Set(action)
	}
	return m, nil
}

func (m Model) submitSegments() (tea.Model, tea.Cmd) {
	n, err := config.ParseStartingSegments(m.input.Value())
	if err != nil {
		m.status = InvalidInput
		m.input.Reset()
		return m, nil
	}

	m = m.startSession(n)
	if m.err != nil {
		return m, tea.Quit
	}
	return m, tickCmd(m.pacer.Step(), m.gen)
}

func (m Model) submitReplay() (tea.Model, tea.Cmd) {
	again, err := config.ParseReplayAnswer(m.input.Value())
	if err != nil {
		m.status = InvalidInput
		m.input.Reset()
		return m, nil
	}

	if err := m.session.Replay(again); err != nil {
		m.err = err
		m.quitting = true
		return m, tea.Quit
	}

	if !again {
		m.phase = phaseDone
		m.quitting = true
		return m, tea.Quit
	}

	m.gen++
	m.phase = phasePlaying
	m.status = ""
	m.input.Blur()
	m.inputFrame.Clear()
	m.launch.Notify(m.session.Frame(), snake.TickResult{State: m.session.State()})
	return m, tickCmd(m.pacer.Step(), m.gen)
}

// handleResize processes window resize events.
// The board is rescaled; the session keeps running.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	if m.renderer != nil {
		m.renderer.Resize(msg.Width, msg.Height)
	}
	m.help.Width = msg.Width
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if h, ok := snake.HeadingFor(m.inputFrame.LastDirection()); ok {
		m.session.RequestHeading(h)
	}
	m.inputFrame.Clear()

	res, err := m.session.Tick()
	if err != nil {
		m.status = fmt.Sprintf("High score not saved: %v", err)
		m.launch.Log().Error("persisting session failed", "error", err)
	}
	m.launch.Notify(m.session.Frame(), res)

	if res.GameOver {
		m.phase = phaseReplay
		m.input.Reset()
		m.input.CharLimit = 3
		return m, m.input.Focus()
	}

	return m, tickCmd(m.pacer.Delay(res), m.gen)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.phase == phaseSetup {
		return m.setupView()
	}

	m.renderer.Draw(m.screen, m.session.Frame())

	row := m.renderer.PromptRow()
	if m.phase == phaseReplay {
		m.screen.DrawTextCentered(row, ReplayPrompt+" "+m.input.Value()+"_", core.ColorWhite)
	}
	if m.status != "" {
		m.screen.DrawTextCentered(row+1, m.status, core.ColorRed)
	}

	return RenderScreen(m.screen)
}

func (m Model) setupView() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("10")).
		MarginBottom(1)
	statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	var b strings.Builder
	b.WriteString(titleStyle.Render("SNAKE"))
	b.WriteString("\n\n")
	b.WriteString(SegmentsPrompt)
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
	}
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render(m.help.ShortHelpView(m.keys.PromptHelp())))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, b.String())
}

// Err returns the error that ended the program, if any.
func (m Model) Err() error {
	return m.err
}

// Finished reports whether the player declined a replay.
func (m Model) Finished() bool {
	return m.phase == phaseDone
}

// ErrAborted is returned by Run when the player quit mid-game.
var ErrAborted = registry.ErrAborted

// Run starts the Bubble Tea program for the given launch.
// It returns nil after a declined replay and ErrAborted when the player quit.
func Run(l registry.Launch, opts ...tea.ProgramOption) error {
	model := NewModel(l, 80, 24)

	p := tea.NewProgram(model, append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)...)
	final, err := p.Run()
	if err != nil {
		return err
	}

	m, ok := final.(Model)
	if !ok {
		return nil
	}
	if m.Err() != nil {
		return m.Err()
	}
	if !m.Finished() {
		return ErrAborted
	}
	return nil
}

type teaFrontend struct{}

func (teaFrontend) Name() string        { return "tea" }
func (teaFrontend) Description() string { return "Bubble Tea terminal UI (default)" }
func (teaFrontend) Run(l registry.Launch) error {
	return Run(l)
}

func init() {
	registry.Register("tea", func() registry.Frontend { return teaFrontend{} })
}
