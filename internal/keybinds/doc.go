/*
Package keybinds maps key presses to user actions.

# Key Concepts

Context Hierarchy:
  - Global: Bindings available everywhere (quit, refresh, help)
  - Tabs: Tab strip navigation
  - List: Group, feed and article lists
  - Reader: Article reader pane
  - Confirm/Help: Popups holding exclusive input

A key bound in a specific context shadows the same key in the global
context.

Multi-key Sequences:

'g' starts a pending sequence; a following 'g' matches "gg". The pending
state is per context and is cleared by ClearAllMultiKeyState on every tick,
so a lone 'g' expires.
*/
package keybinds
