package service

import (
	"testing"

	"billapi/internal/model"

	"github.com/stretchr/testify/assert"
)

func dashboardFixture() ([]model.Bill, ReviewService) {
	bills := []model.Bill{
		{ID: "a", Email: "jane.doe@corp.tld", Name: "Train", Amount: 100, Date: "2004-04-04", Type: "Transports", Status: model.BillStatusPending},
		{ID: "b", Email: "roe@corp.tld", Name: "Hotel", Amount: 400, Date: "2003-03-03", Type: "Hôtel", Status: model.BillStatusPending},
		{ID: "c", Email: "jane.doe@corp.tld", Name: "Lunch", Amount: 30, Date: "2002-02-02", Type: "Restaurants", Status: model.BillStatusAccepted},
	}
	return bills, NewReviewService(nil, nil, false)
}

func sectionFor(t *testing.T, view DashboardView, status model.BillStatus) StatusSection {
	t.Helper()
	for _, s := range view.Sections {
		if s.Status == status {
			return s
		}
	}
	t.Fatalf("no section for status %s", status)
	return StatusSection{}
}

func TestDashboardSession_InitialView(t *testing.T) {
	bills, review := dashboardFixture()
	sess := NewDashboardSession()

	view := sess.View(bills, "manager@corp.tld", review)

	assert.Len(t, view.Sections, 3)
	for _, section := range view.Sections {
		assert.False(t, section.Expanded)
		assert.Equal(t, "closed", section.Arrow)
		assert.Empty(t, section.Cards)
	}
	assert.Equal(t, PanelModePlaceholder, view.Panel.Mode)
	assert.False(t, view.Panel.Enlarged)
	assert.Nil(t, view.Panel.Bill)
}

func TestDashboardSession_ToggleSection(t *testing.T) {
	bills, review := dashboardFixture()
	sess := NewDashboardSession()

	t.Run("expanding populates the section with matching cards", func(t *testing.T) {
		sess.ToggleSection(model.BillStatusPending)
		view := sess.View(bills, "manager@corp.tld", review)

		pending := sectionFor(t, view, model.BillStatusPending)
		assert.True(t, pending.Expanded)
		assert.Equal(t, "open", pending.Arrow)
		assert.Len(t, pending.Cards, 2)

		// Other sections re-render collapsed and empty.
		accepted := sectionFor(t, view, model.BillStatusAccepted)
		assert.False(t, accepted.Expanded)
		assert.Empty(t, accepted.Cards)
	})

	t.Run("toggling twice returns to the initial collapsed state", func(t *testing.T) {
		sess.ToggleSection(model.BillStatusPending)
		view := sess.View(bills, "manager@corp.tld", review)

		pending := sectionFor(t, view, model.BillStatusPending)
		assert.False(t, pending.Expanded)
		assert.Equal(t, "closed", pending.Arrow)
		assert.Empty(t, pending.Cards)
	})
}

func TestDashboardSession_CardContent(t *testing.T) {
	bills, review := dashboardFixture()
	sess := NewDashboardSession()
	sess.ToggleSection(model.BillStatusPending)

	view := sess.View(bills, "manager@corp.tld", review)
	cards := sectionFor(t, view, model.BillStatusPending).Cards

	assert.Equal(t, "jane", cards[0].FirstName)
	assert.Equal(t, "doe", cards[0].LastName)
	assert.Equal(t, "4 Apr. 04", cards[0].Date)
	assert.Equal(t, "Transports", cards[0].Type)

	// Local part without a dot maps to a bare last name.
	assert.Equal(t, "", cards[1].FirstName)
	assert.Equal(t, "roe", cards[1].LastName)
}

func TestDashboardSession_Selection(t *testing.T) {
	bills, review := dashboardFixture()
	sess := NewDashboardSession()
	sess.ToggleSection(model.BillStatusPending)

	t.Run("selecting renders detail and highlights only that card", func(t *testing.T) {
		sess.SelectBill("a")
		view := sess.View(bills, "manager@corp.tld", review)

		assert.Equal(t, PanelModeDetail, view.Panel.Mode)
		assert.True(t, view.Panel.Enlarged)
		assert.Equal(t, "a", view.Panel.Bill.ID)

		cards := sectionFor(t, view, model.BillStatusPending).Cards
		assert.True(t, cards[0].Selected)
		assert.False(t, cards[1].Selected)
	})

	t.Run("selecting another bill moves the highlight", func(t *testing.T) {
		sess.SelectBill("b")
		view := sess.View(bills, "manager@corp.tld", review)

		assert.Equal(t, "b", view.Panel.Bill.ID)
		cards := sectionFor(t, view, model.BillStatusPending).Cards
		assert.False(t, cards[0].Selected)
		assert.True(t, cards[1].Selected)
	})

	t.Run("re-selecting the same bill returns to the placeholder", func(t *testing.T) {
		sess.SelectBill("b")
		view := sess.View(bills, "manager@corp.tld", review)

		assert.Equal(t, PanelModePlaceholder, view.Panel.Mode)
		assert.False(t, view.Panel.Enlarged)
		assert.Nil(t, view.Panel.Bill)
		for _, card := range sectionFor(t, view, model.BillStatusPending).Cards {
			assert.False(t, card.Selected)
		}
	})
}

func TestDashboardSessions_Store(t *testing.T) {
	store := NewDashboardSessions()

	s1 := store.Get("manager@corp.tld")
	s2 := store.Get("manager@corp.tld")
	assert.Same(t, s1, s2)

	other := store.Get("other@corp.tld")
	assert.NotSame(t, s1, other)

	s1.ToggleSection(model.BillStatusPending)
	store.Drop("manager@corp.tld")

	// A dropped session is recreated empty.
	fresh := store.Get("manager@corp.tld")
	view := fresh.View(nil, "manager@corp.tld", NewReviewService(nil, nil, false))
	assert.False(t, sectionFor(t, view, model.BillStatusPending).Expanded)
}
