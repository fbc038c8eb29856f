/*
Package tui implements the UI nodes of nuuslees.

# Layout

The root composes a TabViewer above an InfoBar, with the QuitPopup and
HelpPopup drawn over both while visible.

  - TabViewer: tab strip plus the selected tab (tabviewer.go)
  - GroupView: configured groups, always the first tab (groupview.go)
  - FeedView: feeds of one group (feedview.go)
  - ArticleView: article list next to a Reader (articleview.go, reader.go)
  - InfoBar: version, mode and the latest message (infobar.go)

# Actions

Nodes never call storage or the network. They return follow-up actions
(RequestUpdateFeedView, RequestUpdateReader, ...) that the dispatch loop
turns into background work, and react to the replies addressed to their
tab id.

# Input

A tab accepts list keys only while it is selected and the current mode
kind is its own view kind, so a Refreshing overlay leaves only global keys
and tab switching live. Multi-key sequences like gg are matched by the
selected tab alone.
*/
package tui
