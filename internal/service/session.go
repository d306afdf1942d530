package service

import (
	"strings"
	"sync"

	"billapi/internal/model"
)

// DashboardSession holds a manager's ephemeral view state: which status
// sections are expanded and which single bill, if any, is selected. It is
// never persisted; it starts empty and is discarded on teardown. Safe for
// concurrent use.
type DashboardSession struct {
	mu       sync.Mutex
	expanded map[model.BillStatus]struct{}
	selected string
}

// NewDashboardSession returns an empty session: every section collapsed,
// nothing selected.
func NewDashboardSession() *DashboardSession {
	return &DashboardSession{expanded: make(map[model.BillStatus]struct{})}
}

// ToggleSection flips the expanded state of a status category.
func (s *DashboardSession) ToggleSection(status model.BillStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.expanded[status]; ok {
		delete(s.expanded, status)
	} else {
		s.expanded[status] = struct{}{}
	}
}

// SelectBill toggles selection: selecting the currently selected bill
// deselects it, anything else becomes the sole selection.
func (s *DashboardSession) SelectBill(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == id {
		s.selected = ""
	} else {
		s.selected = id
	}
}

// DashboardView is the complete visual state of the manager dashboard,
// rendered declaratively from (bills, expanded sections, selection).
type DashboardView struct {
	Sections []StatusSection `json:"sections"`
	Panel    PanelView       `json:"panel"`
}

// StatusSection is one expandable status category. Cards is empty while the
// section is collapsed.
type StatusSection struct {
	Status   model.BillStatus `json:"status"`
	Expanded bool             `json:"expanded"`
	Arrow    string           `json:"arrow"` // "open" or "closed"
	Cards    []BillCard       `json:"cards"`
}

// BillCard is the summary card rendered for one bill inside a section.
type BillCard struct {
	ID        string           `json:"id"`
	FirstName string           `json:"firstName"`
	LastName  string           `json:"lastName"`
	Name      string           `json:"name"`
	Amount    int              `json:"amount"`
	Date      string           `json:"date"`
	Type      string           `json:"type"`
	Selected  bool             `json:"selected"`
	Status    model.BillStatus `json:"status"`
}

const (
	PanelModeDetail      = "detail"
	PanelModePlaceholder = "placeholder"
)

// PanelView is the right-hand side panel: the selected bill's detail form
// with an enlarged layout, or the placeholder icon.
type PanelView struct {
	Mode     string      `json:"mode"`
	Enlarged bool        `json:"enlarged"`
	Bill     *model.Bill `json:"bill,omitempty"`
}

// View renders the full dashboard state from the bill collection. Every call
// re-renders every section, so a stale fragment can never survive a toggle.
// Bills per section pass through the review filter for the given reviewer.
func (s *DashboardSession) View(bills []model.Bill, reviewer string, review ReviewService) DashboardView {
	s.mu.Lock()
	expanded := make(map[model.BillStatus]struct{}, len(s.expanded))
	for k := range s.expanded {
		expanded[k] = struct{}{}
	}
	selected := s.selected
	s.mu.Unlock()

	view := DashboardView{
		Sections: make([]StatusSection, 0, len(model.Statuses)),
		Panel:    PanelView{Mode: PanelModePlaceholder},
	}

	for _, status := range model.Statuses {
		section := StatusSection{
			Status: status,
			Arrow:  "closed",
			Cards:  []BillCard{},
		}
		if _, ok := expanded[status]; ok {
			section.Expanded = true
			section.Arrow = "open"
			for _, b := range review.Filter(bills, status, reviewer) {
				section.Cards = append(section.Cards, newBillCard(b, b.ID == selected))
			}
		}
		view.Sections = append(view.Sections, section)
	}

	if selected != "" {
		for i := range bills {
			if bills[i].ID == selected {
				detail := bills[i]
				view.Panel = PanelView{Mode: PanelModeDetail, Enlarged: true, Bill: &detail}
				break
			}
		}
	}

	return view
}

// newBillCard builds the summary card, splitting the submitter's first and
// last name out of the email's local part.
func newBillCard(b model.Bill, selected bool) BillCard {
	first, last := submitterNames(b.Email)
	return BillCard{
		ID:        b.ID,
		FirstName: first,
		LastName:  last,
		Name:      b.Name,
		Amount:    b.Amount,
		Date:      model.FormatBillDate(b.Date),
		Type:      b.Type,
		Selected:  selected,
		Status:    b.Status,
	}
}

// submitterNames splits "jane.doe@corp.tld" into ("jane", "doe"). A local
// part without a dot is treated as a bare last name.
func submitterNames(email string) (first, last string) {
	local, _, _ := strings.Cut(email, "@")
	if f, l, ok := strings.Cut(local, "."); ok {
		return f, l
	}
	return "", local
}

// DashboardSessions keeps one DashboardSession per manager, created on first
// use and dropped on teardown.
type DashboardSessions struct {
	mu       sync.Mutex
	sessions map[string]*DashboardSession
}

func NewDashboardSessions() *DashboardSessions {
	return &DashboardSessions{sessions: make(map[string]*DashboardSession)}
}

// Get returns the manager's session, creating an empty one if needed.
func (s *DashboardSessions) Get(email string) *DashboardSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[email]
	if !ok {
		sess = NewDashboardSession()
		s.sessions[email] = sess
	}
	return sess
}

// Drop discards the manager's session state.
func (s *DashboardSessions) Drop(email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, email)
}
