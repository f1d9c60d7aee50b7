package app

import (
	"context"
	"fmt"
	"log"
	"os"

	"gioui.org/app"
	"gioui.org/op"
	"gioui.org/unit"

	"github.com/justyntemme/ddtabs/internal/debug"
	"github.com/justyntemme/ddtabs/internal/dnd"
	"github.com/justyntemme/ddtabs/internal/store"
	"github.com/justyntemme/ddtabs/internal/ui"
)

// settingSelected is the settings key prefix of the last selected caption.
const settingSelected = "selected:"

type Orchestrator struct {
	*Session
	window   *app.Window
	ui       *ui.Renderer
	dispatch *Dispatcher
	watcher  *RootWatcher
	changed  chan struct{} // root changed, refresh on the window goroutine
	selected chan string   // restored selection, applied on the window goroutine
}

func NewOrchestrator(s *Session) *Orchestrator {
	cfg := s.Config.Get()
	ui.ApplyTheme(s.Config.IsDarkMode())

	r := ui.NewRenderer()
	r.TabHeight = unit.Dp(cfg.UI.TabHeight)
	r.SetHotkeys(cfg.Hotkeys)
	if err := s.Config.ParseError(); err != nil {
		r.SetBanner(fmt.Sprintf("Config error, using defaults: %v", err))
	}

	o := &Orchestrator{
		Session: s,
		window:  new(app.Window),
		ui:      r,
		changed:  make(chan struct{}, 1),
		selected: make(chan string, 1),
	}
	o.dispatch = &Dispatcher{Sheet: s.Sheet, OnDrop: o.onDrop}
	r.SetInvalidate(o.window.Invalidate)

	// Saves go through the store worker so drops never wait on the disk
	if s.Store != nil {
		s.UseSaver(asyncSaver{db: s.Store})
	}
	return o
}

func (o *Orchestrator) Run() error {
	o.window.Option(app.Title("ddtabs"), app.Size(unit.Dp(900), unit.Dp(600)))

	if o.Store != nil {
		go o.Store.Start()
		go o.processEvents()
		o.Store.RequestChan <- store.Request{Op: store.FetchSettings}
	}

	if w, err := NewRootWatcher(0); err != nil {
		log.Printf("Watcher Error: %v", err)
	} else if err := w.Watch(o.Key); err != nil {
		log.Printf("Watcher Error: %v", err)
		w.Close()
	} else {
		o.watcher = w
		defer w.Close()
		go o.watchRoot()
	}

	if _, err := o.Sheet.Push(o.ui, true); err != nil {
		log.Printf("Push Error: %v", err)
	}

	var ops op.Ops
	for {
		switch e := o.window.Event().(type) {
		case app.DestroyEvent:
			return e.Err
		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)
			o.refreshIfChanged()
			o.applySelected()
			for _, evt := range o.ui.Layout(gtx) {
				debug.Log(debug.UI, "action %s sheet=%s index=%d", evt.Action, evt.Sheet, evt.Index)
				if err := o.dispatch.Handle(evt); err != nil {
					log.Printf("Error: %s: %v", evt.Action, err)
				}
				if evt.Action == ui.ActionSwitchTab {
					o.saveSelected()
				}
			}
			if _, err := o.Sheet.Push(o.ui, false); err != nil {
				log.Printf("Push Error: %v", err)
			}
			e.Frame(gtx.Ops)
		}
	}
}

func (o *Orchestrator) watchRoot() {
	for range o.watcher.Notify() {
		select {
		case o.changed <- struct{}{}:
		default:
		}
		o.window.Invalidate()
	}
}

// applySelected selects the tab restored from the store, if one arrived.
func (o *Orchestrator) applySelected() {
	select {
	case caption := <-o.selected:
		selectCaption(o.Session, caption)
	default:
	}
}

// refreshIfChanged applies a pending root change. Tabs are only touched
// when no drag is pending.
func (o *Orchestrator) refreshIfChanged() {
	if o.Sheet.Pending() != nil {
		return
	}
	select {
	case <-o.changed:
	default:
		return
	}
	if _, err := o.Refresh(context.Background()); err != nil {
		log.Printf("FS Error: %v", err)
	}
}

func (o *Orchestrator) onDrop(d dnd.Decision, err error) {
	switch {
	case err != nil:
		o.ui.SetBanner(fmt.Sprintf("Drop failed: %v", err))
	case d == dnd.Reject:
		debug.Log(debug.APP, "drop rejected")
	default:
		o.ui.SetBanner("")
	}
}

func (o *Orchestrator) saveSelected() {
	if o.Store == nil {
		return
	}
	t, ok := o.Sheet.TabAt(o.Sheet.Selected())
	if !ok {
		return
	}
	o.Store.RequestChan <- store.Request{Op: store.SaveSetting, Key: settingSelected + o.Key, Value: t.Caption}
}

func (o *Orchestrator) processEvents() {
	for resp := range o.Store.ResponseChan {
		o.handleStoreResponse(resp)
	}
}

func (o *Orchestrator) handleStoreResponse(resp store.Response) {
	if resp.Err != nil {
		log.Printf("Store Error: %v", resp.Err)
		if resp.Op == store.SaveOrder {
			o.ui.SetBanner(fmt.Sprintf("Could not save tab order: %v", resp.Err))
			o.invalidate()
		}
		return
	}

	switch resp.Op {
	case store.FetchSettings:
		if caption, ok := resp.Settings[settingSelected+o.Key]; ok {
			select {
			case o.selected <- caption:
			default:
			}
		}
	case store.SaveOrder:
		debug.Log(debug.STORE, "order of %s saved (%d tabs)", resp.Sheet, len(resp.Captions))
	}
	o.invalidate()
}

func (o *Orchestrator) invalidate() {
	if o.window != nil {
		o.window.Invalidate()
	}
}

// selectCaption selects the first tab captioned caption, if any.
func selectCaption(s *Session, caption string) {
	for i, t := range s.Sheet.Tabs() {
		if t.Caption == caption {
			s.Sheet.Select(i)
			return
		}
	}
}

// asyncSaver hands saves to the store worker. Its errors arrive on the
// store's ResponseChan.
type asyncSaver struct {
	db *store.DB
}

func (a asyncSaver) SaveOrder(ctx context.Context, sheet string, captions []string) error {
	select {
	case a.db.RequestChan <- store.Request{Op: store.SaveOrder, Sheet: sheet, Captions: captions}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Main opens the window on opts and blocks in the Gio main loop.
func Main(opts Options) {
	go func() {
		s, err := OpenSession(context.Background(), opts)
		if err != nil {
			log.Fatal(err)
		}
		err = NewOrchestrator(s).Run()
		s.Close()
		if err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
}
