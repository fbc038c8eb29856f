// Package app runs the action dispatch loop.
//
// One goroutine owns every UI node and drains the action queue. It waits in
// a single select for a terminal event, a queue notification or context
// cancellation. Storage calls are queued to the storage worker and article
// extraction runs in one goroutine per request; both deliver their results
// back through the action queue.
package app

import (
	"context"
	"reflect"

	log "github.com/go-pkgz/lgr"

	"github.com/studiowebux/nuuslees/internal/action"
	"github.com/studiowebux/nuuslees/internal/apperr"
	"github.com/studiowebux/nuuslees/internal/component"
	"github.com/studiowebux/nuuslees/internal/config"
	"github.com/studiowebux/nuuslees/internal/feedsync"
	"github.com/studiowebux/nuuslees/internal/keybinds"
	"github.com/studiowebux/nuuslees/internal/mode"
	"github.com/studiowebux/nuuslees/internal/tui"
	"github.com/studiowebux/nuuslees/internal/types"
	"github.com/studiowebux/nuuslees/internal/version"
)

// maxDrainPerPass bounds the actions processed between two waits
const maxDrainPerPass = 4096

// multiKeyTicks is the number of ticks a pending key sequence survives
const multiKeyTicks = 2

// Terminal is the terminal driver
type Terminal interface {
	// Enter switches the terminal to raw mode and starts the event stream
	Enter() error
	// Exit restores the terminal
	Exit() error
	// Suspend hands the terminal back to the shell. An EventResume follows
	// once the process is resumed.
	Suspend() error
	// Events delivers key, mouse, resize, tick and render events
	Events() <-chan component.Event
	// Size returns the last known width and height
	Size() (width, height int)
	// Resize records a new size reported by an event
	Resize(width, height int)
	// Draw replaces the screen content
	Draw(frame string) error
}

// Store is the read side of storage plus the reader write-back
type Store interface {
	ListGroups(ctx context.Context) ([]types.Group, error)
	ListFeedsForGroup(ctx context.Context, groupID int64) ([]types.Feed, error)
	FeedItemsForFeed(ctx context.Context, feedID int64) ([]types.FeedItem, error)
	FeedItemsForGroup(ctx context.Context, groupID int64) ([]types.FeedItem, error)
	AllFeedItems(ctx context.Context) ([]types.FeedItem, error)
	SetItemContent(ctx context.Context, id int64, content string) error
	MarkItemRead(ctx context.Context, id int64) error
}

// Syncer merges remote feeds into storage
type Syncer interface {
	Sync(ctx context.Context, groups []config.Group) feedsync.Report
	SyncFeed(ctx context.Context, groupID int64, fc config.Feed) (int64, error)
}

// Extractor returns the readable content of an article page
type Extractor interface {
	Extract(ctx context.Context, url string) (string, error)
}

// UpdateChecker looks up the latest published release
type UpdateChecker interface {
	Check(ctx context.Context, current string) (version.Release, error)
}

type state int

const (
	stateRunning state = iota
	stateSuspended
	stateQuitting
)

func (s state) String() string {
	switch s {
	case stateRunning:
		return "running"
	case stateSuspended:
		return "suspended"
	default:
		return "quitting"
	}
}

// Options wires the loop to its collaborators
type Options struct {
	Version   string
	Config    *config.Config
	Keys      *keybinds.Registry
	Terminal  Terminal
	Store     Store
	Syncer    Syncer
	Extractor Extractor
	Updates   UpdateChecker
}

// App is the dispatch loop and its UI tree
type App struct {
	cfg       *config.Config
	keys      *keybinds.Registry
	term      Terminal
	store     Store
	syncer    Syncer
	extractor Extractor
	updates   UpdateChecker
	version   string

	queue   *action.Queue
	worker  *worker
	machine *mode.Machine
	state   state
	ctx     context.Context

	tabs    *tui.TabViewer
	infoBar *tui.InfoBar
	quit    *tui.QuitPopup
	help    *tui.HelpPopup
	nodes   []component.Component

	groups       []types.Group
	pendingTicks int
	lastDrawErr  string
}

// New builds the loop and its components
func New(opts Options) *App {
	keys := opts.Keys
	if keys == nil {
		keys = keybinds.NewDefaultRegistry()
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	a := &App{
		cfg:       cfg,
		keys:      keys,
		term:      opts.Terminal,
		store:     opts.Store,
		syncer:    opts.Syncer,
		extractor: opts.Extractor,
		updates:   opts.Updates,
		version:   opts.Version,
		queue:     action.NewQueue(),
		worker:    newWorker(),
		machine:   mode.NewMachine(),
		ctx:       context.Background(),
		tabs:      tui.NewTabViewer(keys),
		infoBar:   tui.NewInfoBar(opts.Version),
		quit:      tui.NewQuitPopup(keys),
		help:      tui.NewHelpPopup(keys),
	}
	// popups last so they draw on top and are asked first for input
	a.nodes = []component.Component{a.tabs, a.infoBar, a.quit, a.help}
	return a
}

// Run drives the loop until Quit or ctx is cancelled. Only startup
// failures are returned.
func (a *App) Run(ctx context.Context) error {
	if err := a.term.Enter(); err != nil {
		return apperr.Wrap(apperr.KindRender, err, "failed to enter terminal")
	}
	defer func() {
		if err := a.term.Exit(); err != nil {
			log.Printf("[WARN] failed to restore terminal, %v", err)
		}
	}()

	if err := a.start(ctx); err != nil {
		return err
	}
	defer a.worker.stop()

	events := a.term.Events()
	for a.state != stateQuitting {
		select {
		case <-ctx.Done():
			log.Printf("[INFO] context done, %v", ctx.Err())
			a.setState(stateQuitting)
			continue
		case ev, ok := <-events:
			if !ok {
				log.Printf("[INFO] terminal event stream closed")
				a.setState(stateQuitting)
				continue
			}
			a.handleEvent(ev)
		case <-a.queue.Ready():
		}
		a.drain()
	}

	log.Printf("[INFO] dispatch loop stopped")
	return nil
}

// start wires the components, seeds the group listing and starts the
// storage worker
func (a *App) start(ctx context.Context) error {
	a.ctx = ctx

	width, height := a.term.Size()
	area := component.Rect{Width: width, Height: height}
	for _, n := range a.nodes {
		component.RegisterSink(n, a.queue)
		if err := component.RegisterConfig(n, a.cfg); err != nil {
			return apperr.Wrap(apperr.KindConfig, err, "failed to configure components")
		}
		if err := component.Init(n, area); err != nil {
			return apperr.Wrap(apperr.KindRender, err, "failed to initialize components")
		}
	}

	// the worker is not running yet, so this is the only storage user
	groups, err := a.store.ListGroups(ctx)
	if err != nil {
		return apperr.Wrap(apperr.KindStorage, err, "failed to list groups")
	}
	a.groups = groups

	a.worker.start(ctx)
	a.queue.Send(action.ModeChange{Mode: a.machine.Current()})
	a.queue.Send(action.Refresh{Groups: groups})
	if a.cfg.SyncOnStart {
		a.queue.Send(action.RequestRefresh{})
	}
	a.queue.Send(action.Render{})
	if a.cfg.CheckUpdates && a.updates != nil {
		go a.checkUpdates(ctx)
	}

	log.Printf("[INFO] started with %d groups, %d feeds configured", len(groups)-1, a.cfg.FeedCount())
	return nil
}

func (a *App) setState(s state) {
	if a.state != s {
		log.Printf("[DEBUG] loop %s -> %s", a.state, s)
		a.state = s
	}
}

// handleEvent classifies a terminal event into root actions and forwards
// it to the components
func (a *App) handleEvent(ev component.Event) {
	if a.state == stateSuspended {
		if ev.Kind == component.EventResume {
			a.setState(stateRunning)
			a.queue.Send(action.Resume{})
			a.queue.Send(action.Render{})
		}
		return
	}

	switch ev.Kind {
	case component.EventTick:
		a.queue.Send(action.Tick{})
		return
	case component.EventRender:
		a.queue.Send(action.Render{})
		return
	case component.EventResize:
		a.queue.Send(action.Resize{Width: ev.Width, Height: ev.Height})
		return
	case component.EventSuspend:
		a.queue.Send(action.Suspend{})
		return
	case component.EventResume:
		a.queue.Send(action.Resume{})
		return
	case component.EventQuit:
		a.queue.Send(action.Quit{})
		return
	}

	// a visible popup takes every key and mouse event
	for i := len(a.nodes) - 1; i >= 0; i-- {
		n := a.nodes[i]
		if !component.CapturesInput(n) {
			continue
		}
		if ev.Kind == component.EventKey {
			if act, ok := a.keys.Match(keybinds.ContextGlobal, ev.Key.String()); ok && act == keybinds.ActionQuitForce {
				a.queue.Send(action.Quit{})
				return
			}
		}
		a.queue.Send(component.HandleEvent(n, ev))
		return
	}

	if ev.Kind == component.EventKey {
		a.queue.Send(a.globalAction(ev.Key))
	}
	for _, n := range a.nodes {
		a.queue.Send(component.HandleEvent(n, ev))
	}
}

// globalAction maps a global shortcut to its root action
func (a *App) globalAction(key component.Key) action.Action {
	act, ok := a.keys.Match(keybinds.ContextGlobal, key.String())
	if !ok {
		return nil
	}
	// a key completing a pending sequence is not a shortcut
	if a.keys.HasPendingSequence(keybinds.ContextList) || a.keys.HasPendingSequence(keybinds.ContextReader) {
		return nil
	}

	switch act {
	case keybinds.ActionQuit:
		return action.ConfirmQuit{}
	case keybinds.ActionQuitForce:
		return action.Quit{}
	case keybinds.ActionSuspend:
		return action.Suspend{}
	case keybinds.ActionRefresh:
		return action.RequestRefresh{}
	case keybinds.ActionOpenHelp:
		return action.Help{}
	}
	return nil
}

// drain processes queued actions in FIFO order
func (a *App) drain() {
	for i := 0; i < maxDrainPerPass; i++ {
		if a.state == stateQuitting {
			return
		}
		act, ok := a.queue.Next()
		if !ok {
			return
		}
		a.dispatch(act)
	}
	if n := a.queue.Len(); n > 0 {
		log.Printf("[WARN] drain pass limit reached, %d actions left for the next pass", n)
	}
}

// dispatch applies the root effects of act and broadcasts it
func (a *App) dispatch(act action.Action) {
	switch act.(type) {
	case action.Tick, action.Render:
	default:
		log.Printf("[DEBUG] action %s", action.Describe(act))
	}

	a.effect(act)

	for _, n := range a.nodes {
		follow := n.Update(act)
		if follow == nil {
			continue
		}
		if reflect.DeepEqual(follow, act) {
			log.Printf("[WARN] dropped %s re-enqueued by its own handler", action.Name(act))
			continue
		}
		a.queue.Send(follow)
	}
}
