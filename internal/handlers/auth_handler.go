package handlers

import (
	"errors"
	"html/template"
	"net/http"

	"resumequiz/internal/logger"
	"resumequiz/internal/service"
	"resumequiz/internal/validation"
)

// AuthHandler handles registration, login and logout
type AuthHandler struct {
	base
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, sessions *service.SessionManager, templates *template.Template, cookieName string, log logger.Logger) *AuthHandler {
	return &AuthHandler{
		base: base{
			sessions:   sessions,
			templates:  templates,
			cookieName: cookieName,
			log:        log,
		},
		authService: authService,
	}
}

// Home sends logged in users to the upload page and everyone else to login
func (h *AuthHandler) Home(w http.ResponseWriter, r *http.Request) {
	state, err := h.sessions.Load(r.Context(), h.sessionID(r))
	if err != nil {
		respondWithError(h.log, w, http.StatusInternalServerError, ErrInternalServerError, "failed to load session", err)
		return
	}
	if state.IsAuthenticated() {
		http.Redirect(w, r, pathUpload, http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, pathLogin, http.StatusSeeOther)
}

// ShowRegister renders the registration page
func (h *AuthHandler) ShowRegister(w http.ResponseWriter, r *http.Request) {
	data := &RegisterViewData{Page: Page{Title: "Register"}}
	h.render(w, r, "register.tmpl", &data.Page, data)
}

// Register handles registration form submission
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondWithError(h.log, w, http.StatusBadRequest, ErrInvalidFormData, "", nil)
		return
	}

	username := r.FormValue("username")
	password := r.FormValue("password")

	_, err := h.authService.Register(r.Context(), username, password)
	var vErr validation.ValidationError
	switch {
	case err == nil:
		h.flashRedirect(w, r, FlashRegistered, pathLogin)
	case errors.Is(err, service.ErrDuplicateUsername):
		h.flashRedirect(w, r, FlashUsernameTaken, pathRegister)
	case errors.As(err, &vErr):
		data := &RegisterViewData{
			Page:     Page{Title: "Register", Error: vErr.Message},
			Username: username,
		}
		h.render(w, r, "register.tmpl", &data.Page, data)
	default:
		respondWithError(h.log, w, http.StatusInternalServerError, ErrInternalServerError, "registration failed", err)
	}
}

// ShowLogin renders the login page
func (h *AuthHandler) ShowLogin(w http.ResponseWriter, r *http.Request) {
	data := &LoginViewData{Page: Page{Title: "Login"}}
	h.render(w, r, "login.tmpl", &data.Page, data)
}

// Login handles login form submission
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondWithError(h.log, w, http.StatusBadRequest, ErrInvalidFormData, "", nil)
		return
	}

	username := r.FormValue("username")
	password := r.FormValue("password")

	sessionID, _, err := h.authService.Login(r.Context(), h.sessionID(r), username, password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		data := &LoginViewData{
			Page:     Page{Title: "Login", Error: FlashInvalidCredentials},
			Username: username,
		}
		h.render(w, r, "login.tmpl", &data.Page, data)
		return
	}
	if err != nil {
		respondWithError(h.log, w, http.StatusInternalServerError, ErrInternalServerError, "login failed", err)
		return
	}

	if _, err := h.sessions.AddFlash(r.Context(), sessionID, FlashLoginSuccess); err != nil {
		h.log.Warn("failed to store flash message", map[string]interface{}{"error": err})
	}
	h.setSessionCookie(w, r, sessionID)
	http.Redirect(w, r, pathUpload, http.StatusSeeOther)
}

// Logout ends the session and returns to the login page
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.authService.Logout(r.Context(), h.sessionID(r))

	sessionID, err := h.sessions.AddFlash(r.Context(), "", FlashLoggedOut)
	if err != nil {
		h.log.Warn("failed to store flash message", map[string]interface{}{"error": err})
		h.clearSessionCookie(w, r)
	} else {
		h.setSessionCookie(w, r, sessionID)
	}
	http.Redirect(w, r, pathLogin, http.StatusSeeOther)
}
