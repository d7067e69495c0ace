package actions

import (
	"storefront/auth"
	"storefront/cache"
	"storefront/events"
	"storefront/payments"
	"storefront/store"
	"storefront/validator"
)

// Deps carries the collaborators every action needs. The session is passed
// explicitly per call, never read from ambient state.
type Deps struct {
	Store    store.Gateway
	Sessions *auth.Manager
	Validate *validator.Validator
	Pages    cache.Pages
	Events   events.Publisher
	Payments payments.Provider
	PageSize int
}

func (d *Deps) limitOr(limit int) int {
	if limit <= 0 {
		return d.PageSize
	}
	return limit
}

func totalPages(count int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((count + int64(limit) - 1) / int64(limit))
}

// requireSignedIn returns a redirect-to-sign-in result when no session is
// present, nil otherwise.
func requireSignedIn(sess *auth.Session) *Result {
	if sess == nil {
		r := redirectTo("/sign-in", "authentication required")
		return &r
	}
	return nil
}

// requireAdmin gates the back-office actions. A missing session redirects
// (page-level guard); a session with the wrong role fails inline.
func requireAdmin(sess *auth.Session) *Result {
	if r := requireSignedIn(sess); r != nil {
		return r
	}
	if !sess.IsAdmin() {
		r := unauthorized("admin permission required")
		return &r
	}
	return nil
}
