// Package router selects exactly one page render per interaction cycle
// from the current session state. An interaction event is applied first in
// a single ordered pass; routing then re-derives the active page from the
// updated state.
package router

import (
	"github.com/optifin/optifin/internal/models"
	"github.com/optifin/optifin/internal/session"
	"go.uber.org/zap"
)

// ActionNavigate is the event action handled by the router itself: it
// moves the session to the page named in the "page" payload field.
const ActionNavigate = "navigate"

// Event is one user interaction, dispatched to a page's action handler
// before routing.
type Event struct {
	// Page addresses the page whose handler should consume the event.
	Page models.PageID `json:"page"`
	// Action names what the user did (page-specific, or "navigate").
	Action string `json:"action"`
	// Payload carries the form values the action needs.
	Payload map[string]string `json:"payload"`
}

// NavItem is one sidebar entry shown to logged-in users.
type NavItem struct {
	Page  models.PageID `json:"page"`
	Label string        `json:"label"`
}

// View is the render product of one cycle: exactly one page body plus
// navigation and any one-cycle notice. The rendering surface consuming it
// is opaque to the server.
type View struct {
	Page   models.PageID  `json:"page"`
	Title  string         `json:"title"`
	Notice string         `json:"notice,omitempty"`
	Nav    []NavItem      `json:"nav,omitempty"`
	Body   map[string]any `json:"body"`
}

// Page is one registered page: a render function plus an action handler.
// Handle may mutate the session state, including CurrentPage; the same
// cycle's routing then runs against the updated state.
type Page interface {
	// ID returns the page identifier this page is registered under.
	ID() models.PageID
	// Title returns the page title for the view.
	Title() string
	// Render produces the page body from the session state.
	Render(s *session.State) map[string]any
	// Handle applies one user action to the session state. Errors become
	// user-visible notices, never failures of the cycle.
	Handle(s *session.State, ev Event) error
}

// Router owns the page registry and the routing pass.
type Router struct {
	registry map[models.PageID]Page
	log      *zap.Logger
}

// New builds a Router over the given pages. Later pages with a duplicate
// ID replace earlier ones.
func New(log *zap.Logger, pages ...Page) *Router {
	registry := make(map[models.PageID]Page, len(pages))
	for _, p := range pages {
		registry[p.ID()] = p
	}
	return &Router{registry: registry, log: log}
}

// nav is the sidebar offered once a user is logged in.
var nav = []NavItem{
	{Page: models.PageSegmentHub, Label: "Home"},
	{Page: models.PageGoals, Label: "Goals"},
	{Page: models.PageChat, Label: "Assistant"},
	{Page: models.PageUpload, Label: "Upload statement"},
	{Page: models.PageDashboard, Label: "Dashboard"},
}

// Run executes one interaction cycle: apply ev (if any), then route.
// Callers hold the state's lock for the duration of the cycle.
//
// Consent gates dispatch as well as rendering: until consent is accepted,
// only events addressed to the consent page are handled, so no other page
// can mutate state before the gate is passed.
func (r *Router) Run(s *session.State, ev *Event) View {
	if ev != nil && (s.ConsentAccepted || ev.Page == models.PageConsent) {
		r.dispatch(s, *ev)
	}

	// Consent gates everything, regardless of CurrentPage.
	if !s.ConsentAccepted {
		return r.render(s, models.PageConsent, r.registry[models.PageConsent], nil)
	}

	var items []NavItem
	if s.LoggedIn {
		items = nav
	}

	page, ok := r.registry[s.CurrentPage]
	if !ok {
		// Unknown page: single-step correction to the hub, never a loop.
		r.log.Warn("unknown page requested", zap.String("page", string(s.CurrentPage)))
		s.Notice = "page not found"
		s.CurrentPage = models.PageSegmentHub
		page = r.registry[models.PageSegmentHub]
	}
	return r.render(s, s.CurrentPage, page, items)
}

// dispatch routes one event to its handler in a single ordered pass.
func (r *Router) dispatch(s *session.State, ev Event) {
	if ev.Page == "" && ev.Action == "" {
		// Empty event: a plain re-render request.
		return
	}
	if ev.Action == ActionNavigate {
		// Navigation is a router concern; target validity is checked by
		// the lookup in Run, which corrects unknown pages.
		s.CurrentPage = models.PageID(ev.Payload["page"])
		return
	}

	page, ok := r.registry[ev.Page]
	if !ok {
		s.Notice = "page not found"
		return
	}
	if err := page.Handle(s, ev); err != nil {
		r.log.Info("page action rejected",
			zap.String("page", string(ev.Page)),
			zap.String("action", ev.Action),
			zap.Error(err))
		s.Notice = err.Error()
	}
}

// render builds the view and consumes the one-cycle notice. A nil page
// means the registry is missing id; the view degrades to an empty body
// rather than failing the cycle.
func (r *Router) render(s *session.State, id models.PageID, page Page, items []NavItem) View {
	if page == nil {
		r.log.Error("page not registered", zap.String("page", string(id)))
		v := View{Page: id, Notice: s.Notice, Nav: items, Body: map[string]any{}}
		s.Notice = ""
		return v
	}

	v := View{
		Page:   page.ID(),
		Title:  page.Title(),
		Notice: s.Notice,
		Nav:    items,
		Body:   page.Render(s),
	}
	s.Notice = ""
	return v
}
