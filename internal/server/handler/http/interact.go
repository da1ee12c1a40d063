package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/optifin/optifin/internal/auth"
	"github.com/optifin/optifin/internal/middleware"
	"github.com/optifin/optifin/internal/router"
	"github.com/optifin/optifin/internal/session"
)

// InteractHandler runs one interaction cycle per request: apply the
// submitted event, route, and return the rendered view.
type InteractHandler struct {
	// Router performs event dispatch and page selection.
	Router *router.Router
	// Secret and TokenTTL manage the auth cookie when a page action
	// changes the login state.
	Secret   []byte
	TokenTTL time.Duration
}

// Interact handles POST /api/interact. The body is one event; the
// response is the view of the single page selected for this cycle.
func (h *InteractHandler) Interact(w http.ResponseWriter, r *http.Request) {
	var ev router.Event
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	h.run(w, r, &ev)
}

// View handles GET /api/view: a routing pass with no event, rendering
// whatever page the current state selects.
func (h *InteractHandler) View(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, nil)
}

func (h *InteractHandler) run(w http.ResponseWriter, r *http.Request, ev *router.Event) {
	state := middleware.StateFromContext(r.Context())
	if state == nil {
		http.Error(w, "no session", http.StatusInternalServerError)
		return
	}

	state.Lock()
	view := h.Router.Run(state, ev)
	h.syncAuthCookie(w, r, state)
	state.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(view)
}

// syncAuthCookie aligns the auth cookie with the session's login state
// after a cycle, so logging in or out through a page action behaves the
// same as the dedicated endpoints. Callers hold the state lock.
func (h *InteractHandler) syncAuthCookie(w http.ResponseWriter, r *http.Request, state *session.State) {
	val, hasCookie := cookieValue(r, middleware.AuthCookie)

	if !state.LoggedIn {
		if hasCookie {
			http.SetCookie(w, authCookie("", -1))
		}
		return
	}

	if hasCookie {
		if username, err := auth.GetUsernameFromToken(val, h.Secret); err == nil && username == state.Username {
			return
		}
	}
	token, err := auth.GenerateToken(state.Username, h.Secret, h.TokenTTL)
	if err != nil {
		return
	}
	http.SetCookie(w, authCookie(token, int(h.TokenTTL.Seconds())))
}

func cookieValue(r *http.Request, name string) (string, bool) {
	c, err := r.Cookie(name)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}
