// Package tabs owns the ordered set of open tabs.
//
// Tabs are addressed by a generational types.TabID. Closing a tab frees its
// slot and bumps the slot generation, so an id held by a closed tab (or by an
// in-flight action addressed to it) never resolves to the tab that reuses the
// slot.
package tabs

import (
	"fmt"

	"github.com/studiowebux/nuuslees/internal/action"
	"github.com/studiowebux/nuuslees/internal/component"
	"github.com/studiowebux/nuuslees/internal/mode"
	"github.com/studiowebux/nuuslees/internal/types"
)

// Tab is a component hosted in a tab
type Tab interface {
	component.Component
	// View returns the mode kind that is live while the tab is selected
	View() mode.Kind
}

type entry struct {
	id    types.TabID
	label string
	tab   Tab
}

// Manager keeps tabs, the tab strip and the selection in lockstep
type Manager struct {
	entries  []entry
	gens     []uint32
	free     []uint32
	selected int
	bar      *Bar
	sink     action.Sink
}

// NewManager creates an empty manager announcing changes on sink
func NewManager(sink action.Sink) *Manager {
	return &Manager{bar: NewBar(), sink: sink}
}

// SetSink replaces the queue handle used for announcements
func (m *Manager) SetSink(sink action.Sink) {
	m.sink = sink
}

// Bar returns the tab strip kept in sync with the tabs
func (m *Manager) Bar() *Bar {
	return m.bar
}

// Len returns the number of open tabs
func (m *Manager) Len() int {
	return len(m.entries)
}

// Selected returns the index of the selected tab
func (m *Manager) Selected() int {
	return m.selected
}

// AddTab appends a tab built by newTab with its id, selects it and returns
// its index and id.
func (m *Manager) AddTab(label string, newTab func(id types.TabID) Tab) (int, types.TabID) {
	id := m.allocate()
	m.entries = append(m.entries, entry{id: id, label: label, tab: newTab(id)})
	m.bar.Add(label)

	index := len(m.entries) - 1
	m.selectIndex(index)
	return index, id
}

// RemoveTab closes the tab at index. When it was selected the preceding tab
// becomes selected; otherwise the selection stays on the same tab.
func (m *Manager) RemoveTab(index int) error {
	if index < 0 || index >= len(m.entries) {
		return fmt.Errorf("tab index %d out of range [0, %d)", index, len(m.entries))
	}

	removed := m.entries[index]
	m.entries = append(m.entries[:index], m.entries[index+1:]...)
	m.bar.Remove(index)
	m.release(removed.id)
	m.emit(action.RemoveTab{Index: index, Tab: removed.id})

	switch {
	case len(m.entries) == 0:
		m.selected = 0
		m.bar.Select(0)
	case index < m.selected:
		m.selectIndex(m.selected - 1)
	case index == m.selected:
		m.selectIndex(max(index-1, 0))
	}
	return nil
}

// SelectTab selects the tab at index
func (m *Manager) SelectTab(index int) error {
	if index < 0 || index >= len(m.entries) {
		return fmt.Errorf("tab index %d out of range [0, %d)", index, len(m.entries))
	}
	m.selectIndex(index)
	return nil
}

// Tab returns the id and component at index
func (m *Manager) Tab(index int) (types.TabID, Tab, bool) {
	if index < 0 || index >= len(m.entries) {
		return types.TabID{}, nil, false
	}
	e := m.entries[index]
	return e.id, e.tab, true
}

// Lookup returns the current index of a tab id
func (m *Manager) Lookup(id types.TabID) (int, bool) {
	for i, e := range m.entries {
		if e.id == id {
			return i, true
		}
	}
	return 0, false
}

// Components returns a snapshot of the tabs, safe to iterate while tabs are
// added or removed.
func (m *Manager) Components() []Tab {
	out := make([]Tab, len(m.entries))
	for i, e := range m.entries {
		out[i] = e.tab
	}
	return out
}

// Labels returns the tab labels in order
func (m *Manager) Labels() []string {
	out := make([]string, len(m.entries))
	for i, e := range m.entries {
		out[i] = e.label
	}
	return out
}

func (m *Manager) selectIndex(index int) {
	m.selected = index
	m.bar.Select(index)
	e := m.entries[index]
	m.emit(action.ChangeTab{Index: index, Tab: e.id, View: e.tab.View()})
}

func (m *Manager) emit(a action.Action) {
	if m.sink != nil {
		m.sink.Send(a)
	}
}

func (m *Manager) allocate() types.TabID {
	if n := len(m.free); n > 0 {
		slot := m.free[n-1]
		m.free = m.free[:n-1]
		return types.TabID{Slot: slot, Gen: m.gens[slot]}
	}
	m.gens = append(m.gens, 1)
	return types.TabID{Slot: uint32(len(m.gens) - 1), Gen: 1}
}

func (m *Manager) release(id types.TabID) {
	m.gens[id.Slot]++
	m.free = append(m.free, id.Slot)
}
