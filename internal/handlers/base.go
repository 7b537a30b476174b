package handlers

import (
	"bytes"
	"html/template"
	"net/http"

	"resumequiz/internal/logger"
	"resumequiz/internal/security"
	"resumequiz/internal/service"
)

// base holds what every page handler needs: session cookies, flash
// messages and template rendering
type base struct {
	sessions   *service.SessionManager
	templates  *template.Template
	cookieName string
	log        logger.Logger
}

func (b *base) sessionID(r *http.Request) string {
	cookie, err := r.Cookie(b.cookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func (b *base) setSessionCookie(w http.ResponseWriter, r *http.Request, sessionID string) {
	http.SetCookie(w, security.SessionCookie(r, b.cookieName, sessionID, b.sessions.TTL()))
}

func (b *base) clearSessionCookie(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, security.ExpiredSessionCookie(r, b.cookieName))
}

// flashRedirect queues message for the next rendered page and redirects
func (b *base) flashRedirect(w http.ResponseWriter, r *http.Request, message, target string) {
	current := b.sessionID(r)
	sessionID, err := b.sessions.AddFlash(r.Context(), current, message)
	if err != nil {
		b.log.Warn("failed to store flash message", map[string]interface{}{"error": err})
	} else if sessionID != current {
		b.setSessionCookie(w, r, sessionID)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// render fills the layout fields of page and executes the named template.
// Output is buffered so a template error never yields a half-written page.
func (b *base) render(w http.ResponseWriter, r *http.Request, name string, page *Page, data interface{}) {
	sessionID := b.sessionID(r)

	state, err := b.sessions.Load(r.Context(), sessionID)
	if err != nil {
		respondWithError(b.log, w, http.StatusInternalServerError, ErrInternalServerError, "failed to load session", err)
		return
	}
	page.LoggedIn = state.IsAuthenticated()

	if state.Flash != "" {
		flash, err := b.sessions.PopFlash(r.Context(), sessionID)
		if err != nil {
			b.log.Warn("failed to clear flash message", map[string]interface{}{"error": err})
		}
		page.Flash = flash
	}

	var buf bytes.Buffer
	if err := b.templates.ExecuteTemplate(&buf, name, data); err != nil {
		respondWithError(b.log, w, http.StatusInternalServerError, ErrInternalServerError, "failed to render "+name, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}
