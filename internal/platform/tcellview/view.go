// Package tcellview is a lightweight snake front end drawing straight to a
// tcell screen. It runs its own event loop instead of a Bubble Tea program.
package tcellview

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

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

const answerLimit = 3

type phase int

const (
	phaseSetup phase = iota
	phasePlaying
	phaseReplay
	phaseDone
	phaseQuit
)

// View owns one tcell screen and plays sessions on it.
type View struct {
	screen   tcell.Screen
	launch   registry.Launch
	buf      *core.Screen
	renderer *snake.Renderer
	session  *snake.Session
	pacer    snake.Pacer
	input    core.InputFrame
	phase    phase
	answer   []rune
	status   string
	err      error
}

// New creates a view on scr. The screen is initialised by Run.
func New(scr tcell.Screen, l registry.Launch) *View {
	v := &View{
		screen: scr,
		launch: l,
		buf:    core.NewScreen(0, 0),
		pacer:  snake.NewPacer(l.Config.Timing),
		input:  core.NewInputFrame(),
		phase:  phaseSetup,
	}
	if l.Segments > 0 {
		v.startSession(l.Segments)
	}
	return v
}

func (v *View) startSession(segments int) {
	s, err := snake.NewSession(v.launch.Config, segments, v.launch.Store, v.launch.SessionOptions()...)
	if err != nil {
		v.err = err
		v.phase = phaseQuit
		return
	}
	v.session = s
	v.renderer = snake.NewRenderer(v.launch.Config, v.buf.Width(), v.buf.Height())
	v.phase = phasePlaying
	v.status = ""
	v.launch.Notify(s.Frame(), snake.TickResult{State: s.State()})
}

// Run initialises the screen and loops until the player declines a replay
// or quits. Quitting mid-game returns registry.ErrAborted.
func (v *View) Run() error {
	if err := v.screen.Init(); err != nil {
		return fmt.Errorf("tcellview: init screen: %w", err)
	}
	defer v.screen.Fini()
	v.resize()

	events := make(chan tcell.Event, 100)
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-stop:
				return
			}
		}
	}()

	var tick <-chan time.Time
	for v.phase != phaseDone && v.phase != phaseQuit {
		if v.phase == phasePlaying && tick == nil {
			tick = time.After(v.pacer.Step())
		}
		v.draw()

		select {
		case ev := <-events:
			v.handleEvent(ev)

		case <-tick:
			tick = nil
			if v.phase != phasePlaying {
				continue
			}
			if d := v.step(); v.phase == phasePlaying {
				tick = time.After(d)
			}
		}
	}

	return v.result()
}

func (v *View) result() error {
	switch {
	case v.err != nil:
		return v.err
	case v.phase == phaseDone:
		return nil
	default:
		return registry.ErrAborted
	}
}

func (v *View) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		v.handleKey(ev.Key(), ev.Rune())
	case *tcell.EventResize:
		v.resize()
		v.screen.Sync()
	}
}

// handleKey routes a key press. While prompting, runes are typed into the
// answer; while playing, they steer.
func (v *View) handleKey(k tcell.Key, r rune) {
	if k == tcell.KeyEscape || k == tcell.KeyCtrlC {
		v.phase = phaseQuit
		return
	}

	if v.phase == phaseSetup || v.phase == phaseReplay {
		switch k {
		case tcell.KeyEnter:
			v.submit()
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			if n := len(v.answer); n > 0 {
				v.answer = v.answer[:n-1]
			}
		case tcell.KeyRune:
			if len(v.answer) < answerLimit {
				v.answer = append(v.answer, r)
			}
		}
		return
	}

	if v.phase != phasePlaying {
		return
	}
	if a := actionFor(k, r); a == core.ActionQuit {
		v.phase = phaseQuit
	} else if a.IsDirection() {
		v.input.Set(a)
	}
}

func actionFor(k tcell.Key, r rune) core.Action {
	switch k {
	case tcell.KeyUp:
		return core.ActionUp
	case tcell.KeyDown:
		return core.ActionDown
	case tcell.KeyLeft:
		return core.ActionLeft
	case tcell.KeyRight:
		return core.ActionRight
	case tcell.KeyRune:
		switch r {
		case 'w', 'W', 'k':
			return core.ActionUp
		case 's', 'S', 'j':
			return core.ActionDown
		case 'a', 'A', 'h':
			return core.ActionLeft
		case 'd', 'D', 'l':
			return core.ActionRight
		case 'q', 'Q':
			return core.ActionQuit
		}
	}
	return core.ActionNone
}

func (v *View) submit() {
	text := string(v.answer)
	v.answer = v.answer[:0]

	if v.phase == phaseSetup {
		n, err := config.ParseStartingSegments(text)
		if err != nil {
			v.status = InvalidInput
			return
		}
		v.startSession(n)
		return
	}

	again, err := config.ParseReplayAnswer(text)
	if err != nil {
		v.status = InvalidInput
		return
	}
	if err := v.session.Replay(again); err != nil {
		v.err = err
		v.phase = phaseQuit
		return
	}
	if !again {
		v.phase = phaseDone
		return
	}
	v.phase = phasePlaying
	v.status = ""
	v.input.Clear()
	v.launch.Notify(v.session.Frame(), snake.TickResult{State: v.session.State()})
}

// step advances the session by one tick and returns the delay until the next.
func (v *View) step() time.Duration {
	if h, ok := snake.HeadingFor(v.input.LastDirection()); ok {
		v.session.RequestHeading(h)
	}
	v.input.Clear()

	res, err := v.session.Tick()
	if err != nil {
		v.status = fmt.Sprintf("High score not saved: %v", err)
		v.launch.Log().Error("persisting session failed", "error", err)
	}
	v.launch.Notify(v.session.Frame(), res)

	if res.GameOver {
		v.phase = phaseReplay
		v.answer = v.answer[:0]
	}
	return v.pacer.Delay(res)
}

func (v *View) resize() {
	w, h := v.screen.Size()
	v.buf.Resize(w, h)
	if v.renderer != nil {
		v.renderer.Resize(w, h)
	}
}

// draw composes the frame into the buffer and blits it to the screen.
func (v *View) draw() {
	v.compose()
	blit(v.screen, v.buf)
	v.screen.Show()
}

func (v *View) compose() {
	v.buf.Clear()

	if v.phase == phaseSetup {
		mid := v.buf.Height() / 2
		v.buf.DrawTextCentered(mid-2, "SNAKE", core.ColorGreen)
		v.buf.DrawTextCentered(mid, SegmentsPrompt+" "+string(v.answer)+"_", core.ColorWhite)
		if v.status != "" {
			v.buf.DrawTextCentered(mid+1, v.status, core.ColorRed)
		}
		v.buf.DrawTextCentered(mid+3, "enter: start  esc: quit", core.ColorGray)
		return
	}
	if v.session == nil {
		return
	}

	v.renderer.Draw(v.buf, v.session.Frame())
	row := v.renderer.PromptRow()
	if v.phase == phaseReplay {
		v.buf.DrawTextCentered(row, ReplayPrompt+" "+string(v.answer)+"_", core.ColorWhite)
	}
	if v.status != "" {
		v.buf.DrawTextCentered(row+1, v.status, core.ColorRed)
	}
}

type tcellFrontend struct{}

func (tcellFrontend) Name() string        { return "tcell" }
func (tcellFrontend) Description() string { return "Direct tcell renderer with a minimal event loop" }
func (tcellFrontend) Run(l registry.Launch) error {
	scr, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("tcellview: %w", err)
	}
	return New(scr, l).Run()
}

func init() {
	registry.Register("tcell", func() registry.Frontend { return tcellFrontend{} })
}
