package tui

// UI Layout Constants
// These constants define spacing, margins, and dimensions for the TUI layout

const (
	// Panels
	ViewportBorderWidth = 2  // Width consumed by borders
	ArticleListPercent  = 30 // Share of the article tab given to the list
	MinPanelWidth       = 10 // Narrower panels cannot show a bordered list
	MinPanelHeight      = 3  // Border + one row

	// Popups
	QuitPopupWidth  = 36
	QuitPopupHeight = 5
	HelpPopupWidth  = 60

	// Info bar
	MessageSeconds = 5 // How long a status or error message stays visible

	// StatusMessageMaxLength is the maximum length for status messages before truncation
	StatusMessageMaxLength = 100
)
