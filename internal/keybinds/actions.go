package keybinds

// Action represents a user action that can be triggered by a keybinding
type Action string

// Context represents the context in which keybindings are active
type Context string

const (
	// Contexts define where keybindings are active
	ContextGlobal  Context = "global"  // Available everywhere
	ContextTabs    Context = "tabs"    // Tab strip
	ContextList    Context = "list"    // Group, feed and article lists
	ContextReader  Context = "reader"  // Article reader pane
	ContextConfirm Context = "confirm" // Confirmation dialogs
	ContextHelp    Context = "help"    // Help popup
)

const (
	// Global actions
	ActionQuit      Action = "quit"       // Quit application (asks first when configured)
	ActionQuitForce Action = "quit_force" // Force quit (ctrl+c)
	ActionSuspend   Action = "suspend"    // Suspend to the shell (ctrl+z)
	ActionRefresh   Action = "refresh"    // Sync every feed
	ActionOpenHelp  Action = "open_help"  // Open help popup

	// Tab actions
	ActionNextTab  Action = "next_tab"  // Select next tab
	ActionPrevTab  Action = "prev_tab"  // Select previous tab
	ActionCloseTab Action = "close_tab" // Close selected tab
	ActionGoToTab  Action = "go_to_tab" // Select tab by number

	// Navigation actions
	ActionNavigateUp     Action = "navigate_up"       // Move up one item
	ActionNavigateDown   Action = "navigate_down"     // Move down one item
	ActionPageUp         Action = "page_up"           // Move up one page
	ActionPageDown       Action = "page_down"         // Move down one page
	ActionGoToTop        Action = "go_to_top"         // Go to top
	ActionGoToBottom     Action = "go_to_bottom"      // Go to bottom
	ActionGoToTopPrepare Action = "go_to_top_prepare" // First 'g' in 'gg' sequence

	// List actions
	ActionOpen        Action = "open"         // Open selected entry
	ActionBack        Action = "back"         // Leave the reader
	ActionRefreshFeed Action = "refresh_feed" // Sync the feed of the article tab
	ActionCopyLink    Action = "copy_link"    // Copy article link to clipboard

	// Modal actions
	ActionConfirm    Action = "confirm"     // Confirm action (y/Y)
	ActionCancel     Action = "cancel"      // Cancel action (n/N)
	ActionCloseModal Action = "close_modal" // Close current modal
)
