package keybinds

// NewDefaultRegistry creates a registry with all default keybindings
func NewDefaultRegistry() *Registry {
	r := NewRegistry()

	registerGlobalBindings(r)
	registerTabBindings(r)
	registerListBindings(r)
	registerReaderBindings(r)
	registerConfirmBindings(r)
	registerHelpBindings(r)

	return r
}

// registerGlobalBindings sets up bindings available in all modes
func registerGlobalBindings(r *Registry) {
	r.Register(ContextGlobal, "q", ActionQuit)
	r.Register(ContextGlobal, "ctrl+c", ActionQuitForce)
	r.Register(ContextGlobal, "ctrl+z", ActionSuspend)
	r.Register(ContextGlobal, "r", ActionRefresh)
	r.Register(ContextGlobal, "?", ActionOpenHelp)
}

func registerTabBindings(r *Registry) {
	r.RegisterMultiple(ContextTabs, []string{"L", "shift+right"}, ActionNextTab)
	r.RegisterMultiple(ContextTabs, []string{"H", "shift+left"}, ActionPrevTab)
	r.Register(ContextTabs, "x", ActionCloseTab)
	r.RegisterMultiple(ContextTabs, []string{"1", "2", "3", "4", "5", "6", "7", "8", "9"}, ActionGoToTab)
}

// registerListBindings sets up navigation shared by every list
func registerListBindings(r *Registry) {
	r.RegisterMultiple(ContextList, []string{"up", "k"}, ActionNavigateUp)
	r.RegisterMultiple(ContextList, []string{"down", "j"}, ActionNavigateDown)
	r.Register(ContextList, "pgup", ActionPageUp)
	r.Register(ContextList, "pgdown", ActionPageDown)
	r.Register(ContextList, "g", ActionGoToTopPrepare)
	r.Register(ContextList, "gg", ActionGoToTop)
	r.Register(ContextList, "G", ActionGoToBottom)
	r.Register(ContextList, "home", ActionGoToTop)
	r.Register(ContextList, "end", ActionGoToBottom)
	r.RegisterMultiple(ContextList, []string{"enter", "l", "right"}, ActionOpen)
	r.Register(ContextList, "R", ActionRefreshFeed)
	r.Register(ContextList, "y", ActionCopyLink)
}

func registerReaderBindings(r *Registry) {
	r.RegisterMultiple(ContextReader, []string{"up", "k"}, ActionNavigateUp)
	r.RegisterMultiple(ContextReader, []string{"down", "j"}, ActionNavigateDown)
	r.RegisterMultiple(ContextReader, []string{"pgup", "ctrl+u"}, ActionPageUp)
	r.RegisterMultiple(ContextReader, []string{"pgdown", "ctrl+d", " "}, ActionPageDown)
	r.Register(ContextReader, "g", ActionGoToTopPrepare)
	r.Register(ContextReader, "gg", ActionGoToTop)
	r.Register(ContextReader, "G", ActionGoToBottom)
	r.RegisterMultiple(ContextReader, []string{"h", "left", "esc"}, ActionBack)
	r.Register(ContextReader, "y", ActionCopyLink)
}

func registerConfirmBindings(r *Registry) {
	r.RegisterMultiple(ContextConfirm, []string{"y", "Y", "enter"}, ActionConfirm)
	r.RegisterMultiple(ContextConfirm, []string{"n", "N", "esc"}, ActionCancel)
}

func registerHelpBindings(r *Registry) {
	r.RegisterMultiple(ContextHelp, []string{"esc", "?", "q"}, ActionCloseModal)
}
