// Package terminal drives the screen with bubbletea.
//
// bubbletea owns raw mode, the alternate screen, input decoding and
// suspend/resume. The dispatch loop never calls into the program
// synchronously: input is forwarded as component events, frames are handed
// over with Draw and picked up by the program's View.
package terminal

import (
	"os"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"
	log "github.com/go-pkgz/lgr"

	"github.com/studiowebux/nuuslees/internal/component"
)

const (
	eventBuffer   = 256
	defaultWidth  = 80
	defaultHeight = 24
)

type (
	suspendMsg struct{}
	repaintMsg struct{}
)

// Terminal implements the dispatch loop's terminal driver
type Terminal struct {
	tickRate  float64
	frameRate float64
	options   []tea.ProgramOption

	events  chan component.Event
	repaint chan struct{}
	stop    chan struct{}
	done    chan struct{}
	program *tea.Program
	once    sync.Once

	mu     sync.Mutex
	width  int
	height int
	frame  string
	runErr error
}

// New creates a driver emitting tickRate ticks and frameRate render
// requests per second. Extra program options are appended to the defaults.
func New(tickRate, frameRate float64, options ...tea.ProgramOption) *Terminal {
	width, height, err := term.GetSize(os.Stdout.Fd())
	if err != nil || width <= 0 || height <= 0 {
		width, height = defaultWidth, defaultHeight
	}

	return &Terminal{
		tickRate:  tickRate,
		frameRate: frameRate,
		options:   options,
		events:    make(chan component.Event, eventBuffer),
		repaint:   make(chan struct{}, 1),
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
		width:     width,
		height:    height,
	}
}

// Enter starts the bubbletea program and the clock
func (t *Terminal) Enter() error {
	options := append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseCellMotion()}, t.options...)
	t.program = tea.NewProgram(model{t: t}, options...)

	go func() {
		defer close(t.done)
		if _, err := t.program.Run(); err != nil {
			t.mu.Lock()
			t.runErr = err
			t.mu.Unlock()
			log.Printf("[ERROR] terminal program stopped, %v", err)
		}
		// the program may stop on its own, e.g. when input fails
		t.emit(component.Event{Kind: component.EventQuit})
		t.halt()
	}()

	go t.clock()
	go t.repainter()
	return nil
}

// Exit stops the program and restores the terminal
func (t *Terminal) Exit() error {
	if t.program == nil {
		return nil
	}
	t.halt()
	t.program.Quit()
	<-t.done

	t.mu.Lock()
	defer t.mu.Unlock()
	return t.runErr
}

// Suspend asks bubbletea to release the terminal and stop the process.
// EventResume is emitted once the shell resumes it.
func (t *Terminal) Suspend() error {
	if t.program == nil {
		return nil
	}
	go t.program.Send(suspendMsg{})
	return nil
}

// Events returns the event stream. EventQuit is sent when the program stops.
func (t *Terminal) Events() <-chan component.Event {
	return t.events
}

func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.width, t.height
}

func (t *Terminal) Resize(width, height int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.width, t.height = width, height
}

// Draw stores frame and schedules a repaint. It never blocks.
func (t *Terminal) Draw(frame string) error {
	t.mu.Lock()
	t.frame = frame
	t.mu.Unlock()

	select {
	case t.repaint <- struct{}{}:
	default:
	}
	return nil
}

func (t *Terminal) currentFrame() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.frame
}

func (t *Terminal) halt() {
	t.once.Do(func() { close(t.stop) })
}

// emit forwards ev to the loop unless the driver is stopping
func (t *Terminal) emit(ev component.Event) {
	select {
	case t.events <- ev:
	case <-t.stop:
	}
}

// clock produces Tick and Render events at the configured rates
func (t *Terminal) clock() {
	tick := time.NewTicker(interval(t.tickRate))
	defer tick.Stop()
	frame := time.NewTicker(interval(t.frameRate))
	defer frame.Stop()

	for {
		select {
		case <-tick.C:
			t.emit(component.Event{Kind: component.EventTick})
		case <-frame.C:
			t.emit(component.Event{Kind: component.EventRender})
		case <-t.stop:
			return
		}
	}
}

// repainter wakes the program after Draw so View picks up the new frame
func (t *Terminal) repainter() {
	for {
		select {
		case <-t.repaint:
			t.program.Send(repaintMsg{})
		case <-t.stop:
			return
		}
	}
}

func interval(rate float64) time.Duration {
	if rate <= 0 {
		rate = 1
	}
	return time.Duration(float64(time.Second) / rate)
}

// model adapts bubbletea messages to component events
type model struct {
	t *Terminal
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.t.emit(component.KeyEvent(msg.String()))
	case tea.MouseMsg:
		if kind := mouseKind(msg); kind != component.MouseOther {
			m.t.emit(component.MouseEvent(kind, msg.X, msg.Y))
		}
	case tea.WindowSizeMsg:
		m.t.emit(component.ResizeEvent(msg.Width, msg.Height))
	case tea.ResumeMsg:
		m.t.emit(component.Event{Kind: component.EventResume})
	case suspendMsg:
		return m, tea.Suspend
	}
	return m, nil
}

func (m model) View() string {
	return m.t.currentFrame()
}

func mouseKind(msg tea.MouseMsg) component.MouseKind {
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		return component.MouseWheelUp
	case msg.Button == tea.MouseButtonWheelDown:
		return component.MouseWheelDown
	case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
		return component.MouseLeft
	default:
		return component.MouseOther
	}
}
