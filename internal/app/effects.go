package app

import (
	"context"
	"fmt"

	log "github.com/go-pkgz/lgr"

	"github.com/studiowebux/nuuslees/internal/action"
	"github.com/studiowebux/nuuslees/internal/component"
	"github.com/studiowebux/nuuslees/internal/config"
	"github.com/studiowebux/nuuslees/internal/keybinds"
	"github.com/studiowebux/nuuslees/internal/mode"
	"github.com/studiowebux/nuuslees/internal/types"
)

// effect applies the root-level consequences of an action before it is
// broadcast to the components
func (a *App) effect(act action.Action) {
	switch act := act.(type) {
	case action.Tick:
		a.expireKeySequence()
	case action.Render:
		a.draw()
	case action.Resize:
		a.term.Resize(act.Width, act.Height)
		a.draw()
	case action.Resume:
		a.keys.ClearAllMultiKeyState()
	case action.Quit:
		a.setState(stateQuitting)
	case action.Suspend:
		a.suspend()

	case action.ChangeTab:
		a.modeChanged(a.machine.SelectTab(act.Tab, act.View))
	case action.RemoveTab:
		a.machine.ForgetTab(act.Tab)
	case action.UpdateArticleView:
		a.modeChanged(a.machine.ArticlesLoaded(act.Tab, act.Items))

	case action.RequestRefresh:
		a.refreshAll()
	case action.Refresh:
		a.groups = act.Groups
		a.modeChanged(a.machine.EndRefresh())
	case action.RequestRefreshFeed:
		a.refreshFeed(act)

	case action.RequestUpdateFeedView:
		a.loadFeeds(act)
	case action.RequestUpdateArticleViewAll:
		a.loadArticles(act.Tab, "all articles", func(ctx context.Context) ([]types.FeedItem, error) {
			return a.store.AllFeedItems(ctx)
		})
	case action.RequestUpdateArticleViewGroup:
		a.loadArticles(act.Tab, "articles of group "+act.Group.Name, func(ctx context.Context) ([]types.FeedItem, error) {
			return a.store.FeedItemsForGroup(ctx, act.Group.ID)
		})
	case action.RequestUpdateArticleViewFeed:
		a.loadArticles(act.Tab, "articles of feed "+act.Feed.Name, func(ctx context.Context) ([]types.FeedItem, error) {
			return a.store.FeedItemsForFeed(ctx, act.Feed.ID)
		})

	case action.RequestUpdateReader:
		a.extract(act)
	case action.UpdateReader:
		if act.Err == "" {
			a.persistReader(act)
		}
	}
}

func (a *App) modeChanged(m mode.Mode, changed bool) {
	if changed {
		a.queue.Send(action.ModeChange{Mode: m})
	}
}

// expireKeySequence drops a pending key prefix once it has lived through
// multiKeyTicks ticks
func (a *App) expireKeySequence() {
	if !a.keys.HasPendingSequence(keybinds.ContextList) && !a.keys.HasPendingSequence(keybinds.ContextReader) {
		a.pendingTicks = 0
		return
	}
	a.pendingTicks++
	if a.pendingTicks >= multiKeyTicks {
		a.keys.ClearAllMultiKeyState()
		a.pendingTicks = 0
	}
}

func (a *App) suspend() {
	a.setState(stateSuspended)
	if err := a.term.Suspend(); err != nil {
		log.Printf("[WARN] failed to suspend, %v", err)
		a.setState(stateRunning)
		a.queue.Send(action.Error{Message: fmt.Sprintf("failed to suspend: %v", err)})
	}
}

// draw renders every component into a fresh frame. A failing component is
// reported once as an Error action and the others still draw.
func (a *App) draw() {
	if a.state != stateRunning {
		return
	}

	width, height := a.term.Size()
	frame := component.NewFrame(width, height)
	body, bar := component.SplitBottom(frame.Area(), 1)

	var failed string
	for i, n := range a.nodes {
		area := frame.Area()
		switch i {
		case 0:
			area = body
		case 1:
			area = bar
		}
		if err := n.Draw(frame, area); err != nil && failed == "" {
			failed = err.Error()
		}
	}

	if failed != "" && failed != a.lastDrawErr {
		log.Printf("[WARN] draw failed, %s", failed)
		a.queue.Send(action.Error{Message: failed})
	}
	a.lastDrawErr = failed

	if err := a.term.Draw(frame.String()); err != nil {
		log.Printf("[WARN] failed to write frame, %v", err)
	}
}

// refreshAll syncs every configured feed on the storage worker
func (a *App) refreshAll() {
	m, started := a.machine.BeginRefresh()
	if !started {
		a.queue.Send(action.Status{Message: "Sync already running"})
		return
	}
	a.queue.Send(action.ModeChange{Mode: m})

	groups := a.cfg.Groups
	previous := a.groups
	a.worker.submit("sync", func(ctx context.Context) {
		report := a.syncer.Sync(ctx, groups)
		if err := report.Err(); err != nil {
			log.Printf("[WARN] sync skipped entries, %v", err)
		}

		listed, err := a.store.ListGroups(ctx)
		if err != nil {
			log.Printf("[ERROR] failed to list groups after sync, %v", err)
			a.queue.Send(action.Error{Message: err.Error()})
			listed = previous
		}
		a.queue.Send(action.Refresh{Groups: listed, Failed: report.Failed()})
	})
}

// refreshFeed syncs the feed shown by one article tab and reloads it
func (a *App) refreshFeed(req action.RequestRefreshFeed) {
	fc := a.feedConfig(req.Feed.URL)
	a.queue.Send(action.Status{Message: "Refreshing " + req.Feed.Name})

	a.worker.submit("sync feed "+req.Feed.URL, func(ctx context.Context) {
		feedID, err := a.syncer.SyncFeed(ctx, req.Feed.GroupID, fc)
		if err != nil {
			log.Printf("[WARN] failed to refresh feed %s, %v", req.Feed.URL, err)
			a.queue.Send(action.Error{Message: req.Feed.Name + ": " + describeError(err)})
			return
		}

		items, err := a.store.FeedItemsForFeed(ctx, feedID)
		if err != nil {
			log.Printf("[WARN] failed to load feed %d, %v", feedID, err)
			a.queue.Send(action.Error{Message: err.Error()})
			return
		}
		a.queue.Send(action.UpdateArticleView{Tab: req.Tab, Items: items})
		a.queue.Send(action.Status{Message: fmt.Sprintf("%s refreshed, %d articles", req.Feed.Name, len(items))})
	})
}

// feedConfig returns the configured entry of link so name overrides survive
// a single-feed refresh
func (a *App) feedConfig(link string) config.Feed {
	for _, g := range a.cfg.Groups {
		for _, f := range g.Feeds {
			if f.Link == link {
				return f
			}
		}
	}
	return config.Feed{Link: link}
}

func (a *App) loadFeeds(req action.RequestUpdateFeedView) {
	a.worker.submit("feeds of group "+req.Group.Name, func(ctx context.Context) {
		feeds, err := a.store.ListFeedsForGroup(ctx, req.Group.ID)
		if err != nil {
			log.Printf("[WARN] failed to load feeds of group %d, %v", req.Group.ID, err)
			a.queue.Send(action.Error{Message: err.Error()})
			return
		}
		a.queue.Send(action.UpdateFeedView{Tab: req.Tab, Feeds: feeds})
	})
}

func (a *App) loadArticles(tab types.TabID, name string, query func(ctx context.Context) ([]types.FeedItem, error)) {
	a.worker.submit(name, func(ctx context.Context) {
		items, err := query(ctx)
		if err != nil {
			log.Printf("[WARN] failed to load %s, %v", name, err)
			a.queue.Send(action.Error{Message: err.Error()})
			return
		}
		a.queue.Send(action.UpdateArticleView{Tab: tab, Items: items})
	})
}

// extract fetches the readable content of an article in its own goroutine.
// Stored content is answered without touching the network.
func (a *App) extract(req action.RequestUpdateReader) {
	item := req.Item
	if item.Content != "" {
		a.queue.Send(action.UpdateReader{Tab: req.Tab, Seq: req.Seq, ItemID: item.ID, Content: item.Content})
		return
	}

	ctx := a.ctx
	go func() {
		content, err := a.extractor.Extract(ctx, item.URL)
		if err != nil {
			log.Printf("[WARN] failed to extract %s, %v", item.URL, err)
			msg := describeError(err)
			a.queue.Send(action.UpdateReader{Tab: req.Tab, Seq: req.Seq, ItemID: item.ID, Err: msg})
			a.queue.Send(action.Error{Message: msg})
			return
		}
		a.queue.Send(action.UpdateReader{Tab: req.Tab, Seq: req.Seq, ItemID: item.ID, Content: content})
	}()
}

// persistReader stores extracted content and the read flag
func (a *App) persistReader(res action.UpdateReader) {
	a.worker.submit(fmt.Sprintf("store article %d", res.ItemID), func(ctx context.Context) {
		if err := a.store.SetItemContent(ctx, res.ItemID, res.Content); err != nil {
			log.Printf("[WARN] failed to store content of article %d, %v", res.ItemID, err)
		}
		if err := a.store.MarkItemRead(ctx, res.ItemID); err != nil {
			log.Printf("[WARN] failed to mark article %d read, %v", res.ItemID, err)
			a.queue.Send(action.Error{Message: err.Error()})
		}
	})
}

// checkUpdates announces a newer release in the info bar. Failures only
// reach the log.
func (a *App) checkUpdates(ctx context.Context) {
	rel, err := a.updates.Check(ctx, a.version)
	if err != nil {
		log.Printf("[DEBUG] update check failed, %v", err)
		return
	}
	if rel.Available {
		log.Printf("[INFO] nuuslees %s is available at %s", rel.Latest, rel.URL)
		a.queue.Send(action.Status{Message: fmt.Sprintf("nuuslees %s is available", rel.Latest)})
	}
}
