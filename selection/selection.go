// Package selection tracks which rename proposals the user has approved for
// execution. State is in-memory only and scoped to one preview; snapshots are
// keyed by original path so a selection survives preview regeneration.
package selection

import (
	"github.com/tidyfile/tidy/models"
)

// Manager holds the selection state for one RenamePreview.
type Manager struct {
	order     []string // proposal ids in preview order
	byID      map[string]*models.RenameProposal
	idByPath  map[string]string
	selected  map[string]bool
}

// Summary breaks selection counts down by status.
type Summary struct {
	Total          int                          `json:"total"`
	Selected       int                          `json:"selected"`
	TotalByStatus  map[models.RenameStatus]int  `json:"totalByStatus"`
	SelectedByStatus map[models.RenameStatus]int `json:"selectedByStatus"`
}

// NewManager builds a manager over a preview's proposals. The proposals are
// referenced, not copied; the manager must be rebuilt when the preview is
// regenerated.
func NewManager(preview *models.RenamePreview) *Manager {
	m := &Manager{
		byID:     make(map[string]*models.RenameProposal, len(preview.Proposals)),
		idByPath: make(map[string]string, len(preview.Proposals)),
		selected: make(map[string]bool),
	}
	for i := range preview.Proposals {
		p := &preview.Proposals[i]
		m.order = append(m.order, p.ID)
		m.byID[p.ID] = p
		m.idByPath[p.OriginalPath] = p.ID
	}
	return m
}

// Select marks a proposal selected. Unknown ids are a no-op.
func (m *Manager) Select(id string) {
	if _, ok := m.byID[id]; ok {
		m.selected[id] = true
	}
}

// Deselect unmarks a proposal. Unknown ids are a no-op.
func (m *Manager) Deselect(id string) {
	delete(m.selected, id)
}

// Toggle flips a proposal's selection. Unknown ids are a no-op.
func (m *Manager) Toggle(id string) {
	if _, ok := m.byID[id]; !ok {
		return
	}
	if m.selected[id] {
		delete(m.selected, id)
	} else {
		m.selected[id] = true
	}
}

// IsSelected reports whether the proposal is selected.
func (m *Manager) IsSelected(id string) bool {
	return m.selected[id]
}

// SelectAll selects every proposal.
func (m *Manager) SelectAll() {
	for _, id := range m.order {
		m.selected[id] = true
	}
}

// SelectNone clears the selection.
func (m *Manager) SelectNone() {
	m.selected = make(map[string]bool)
}

// InvertSelection flips the selection of every proposal.
func (m *Manager) InvertSelection() {
	next := make(map[string]bool)
	for _, id := range m.order {
		if !m.selected[id] {
			next[id] = true
		}
	}
	m.selected = next
}

// SelectByStatus additionally selects all proposals with the given status.
func (m *Manager) SelectByStatus(status models.RenameStatus) {
	for _, id := range m.order {
		if m.byID[id].Status == status {
			m.selected[id] = true
		}
	}
}

// DeselectByStatus deselects all proposals with the given status.
func (m *Manager) DeselectByStatus(status models.RenameStatus) {
	for _, id := range m.order {
		if m.byID[id].Status == status {
			delete(m.selected, id)
		}
	}
}

// SelectWhere additionally selects proposals matching the predicate.
func (m *Manager) SelectWhere(pred func(*models.RenameProposal) bool) {
	for _, id := range m.order {
		if pred(m.byID[id]) {
			m.selected[id] = true
		}
	}
}

// DeselectWhere deselects proposals matching the predicate.
func (m *Manager) DeselectWhere(pred func(*models.RenameProposal) bool) {
	for _, id := range m.order {
		if pred(m.byID[id]) {
			delete(m.selected, id)
		}
	}
}

// GetSummary returns total/selected counts broken down by status.
func (m *Manager) GetSummary() Summary {
	s := Summary{
		Total:            len(m.order),
		TotalByStatus:    make(map[models.RenameStatus]int),
		SelectedByStatus: make(map[models.RenameStatus]int),
	}
	for _, id := range m.order {
		p := m.byID[id]
		s.TotalByStatus[p.Status]++
		if m.selected[id] {
			s.Selected++
			s.SelectedByStatus[p.Status]++
		}
	}
	return s
}

// GetExecutableProposals returns the selected proposals that are ready, in
// preview order. Only these should ever be handed to the executor.
func (m *Manager) GetExecutableProposals() []models.RenameProposal {
	var out []models.RenameProposal
	for _, id := range m.order {
		p := m.byID[id]
		if m.selected[id] && p.Status == models.StatusReady {
			out = append(out, *p)
		}
	}
	return out
}

// GetSelectionSnapshot captures the selection by original file path so it can
// be restored onto a regenerated preview with fresh ids.
func (m *Manager) GetSelectionSnapshot() []string {
	var paths []string
	for _, id := range m.order {
		if m.selected[id] {
			paths = append(paths, m.byID[id].OriginalPath)
		}
	}
	return paths
}

// RestoreFromSnapshot re-applies a path-keyed snapshot. Paths no longer in
// the preview are ignored.
func (m *Manager) RestoreFromSnapshot(paths []string) {
	for _, path := range paths {
		if id, ok := m.idByPath[path]; ok {
			m.selected[id] = true
		}
	}
}
