// Package web is the browser surface for the inventory client. It renders
// server-side pages over the session, guard, and notification state the
// rest of the client maintains; no view talks to the backend directly.
package web

import (
	"context"
	"io/fs"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Patrickson2/MY-DUKA-SYSTEM/internal/api"
	"github.com/Patrickson2/MY-DUKA-SYSTEM/internal/guard"
	"github.com/Patrickson2/MY-DUKA-SYSTEM/internal/nav"
	"github.com/Patrickson2/MY-DUKA-SYSTEM/internal/notifications"
	apperrors "github.com/Patrickson2/MY-DUKA-SYSTEM/internal/platform/errors"
	"github.com/Patrickson2/MY-DUKA-SYSTEM/internal/roles"
	"github.com/Patrickson2/MY-DUKA-SYSTEM/internal/session"
)

// DefaultAppName labels pages when the deployment does not override it.
const DefaultAppName = "MyDuka"

// AuthAPI is the authentication surface the web handlers call.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (api.TokenResponse, error)
	RegisterAdminInvite(ctx context.Context, reg api.AdminInviteRegistration) (api.TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
}

// HandlerConfig carries the collaborators the web handlers render over.
type HandlerConfig struct {
	AppName  string
	Auth     AuthAPI
	Sessions *session.Store
	Center   *notifications.Center
	Clicks   *notifications.Dispatcher
	// Ready reports whether startup session restoration has completed.
	// Until it does, every page renders the blocking placeholder. Nil
	// means always ready.
	Ready func() bool
}

// Handler serves the browser surface.
type Handler struct {
	appName  string
	auth     AuthAPI
	sessions *session.Store
	center   *notifications.Center
	clicks   *notifications.Dispatcher
	ready    func() bool
	now      func() time.Time
	mux      *http.ServeMux
}

// NewHandler assembles the route table over the injected collaborators.
func NewHandler(config HandlerConfig) *Handler {
	appName := strings.TrimSpace(config.AppName)
	if appName == "" {
		appName = DefaultAppName
	}
	h := &Handler{
		appName:  appName,
		auth:     config.Auth,
		sessions: config.Sessions,
		center:   config.Center,
		clicks:   config.Clicks,
		ready:    config.Ready,
		now:      func() time.Time { return time.Now().UTC() },
	}

	mux := http.NewServeMux()
	if staticFS, err := fs.Sub(assetsFS, "static"); err == nil {
		mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	}

	mux.HandleFunc("/", h.handleRoot)
	mux.HandleFunc("/login", h.handleLogin)
	mux.HandleFunc("/logout", h.handleLogout)
	mux.HandleFunc("/register-admin", h.handleRegisterAdmin)

	mux.HandleFunc("/admin", h.guarded(roles.Admin, "Admin Dashboard"))
	mux.HandleFunc("/clerk", h.guarded(roles.Clerk, "Clerk Dashboard"))
	mux.HandleFunc("/merchant", h.guarded(roles.Merchant, "Merchant Dashboard"))
	mux.HandleFunc("/messages", h.handleMessages)

	mux.HandleFunc("/notifications/panel", h.handlePanel)
	mux.HandleFunc("/notifications/toggle", h.handleToggle)
	mux.HandleFunc("/notifications/read-all", h.handleReadAll)
	mux.HandleFunc("/notifications/", h.handleNotificationRead)

	mux.HandleFunc("/up", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	h.mux = mux
	return h
}

// ServeHTTP gates every request on startup restoration, reports the click
// region so an open panel closes on outside clicks, then dispatches.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/up" || strings.HasPrefix(r.URL.Path, "/static/") {
		h.mux.ServeHTTP(w, r)
		return
	}
	if h.ready != nil && !h.ready() {
		w.Header().Set("Retry-After", "1")
		w.WriteHeader(http.StatusServiceUnavailable)
		h.render(w, "placeholder", authView{AppName: h.appName})
		return
	}
	if h.clicks != nil {
		h.clicks.Click(clickRegion(r.URL.Path))
	}
	h.mux.ServeHTTP(w, r)
}

// clickRegion maps a request path to the click region it lands on. Anything
// under /notifications/ counts as inside the panel.
func clickRegion(path string) string {
	if strings.HasPrefix(path, "/notifications/") {
		return notifications.PanelRegion
	}
	return "page"
}

func (h *Handler) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	h.renderEntry(w, r)
}

// handleLogin renders the sign-in form and exchanges submitted credentials
// for a session. A signed-in visitor on an entry page goes straight to
// their dashboard.
func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.renderEntry(w, r)
	case http.MethodPost:
		h.submitLogin(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) renderEntry(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if sess, err := h.sessions.Read(r.Context()); err == nil && sess != nil {
		h.redirect(w, r, roles.DefaultRoute(roles.Canonical(sess.User.Role)), true)
		return
	}
	h.render(w, "login", authView{AppName: h.appName})
}

func (h *Handler) submitLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	email := strings.TrimSpace(r.PostFormValue("email"))
	password := r.PostFormValue("password")

	resp, err := h.auth.Login(r.Context(), email, password)
	if err != nil {
		h.render(w, "login", authView{
			AppName: h.appName,
			Error:   apperrors.MessageOf(err, api.GenericErrorMessage),
			Email:   email,
		})
		return
	}
	if err := h.sessions.Save(r.Context(), resp.AccessToken, resp.User, resp.RefreshToken); err != nil {
		log.Printf("save session: %v", err)
	}
	h.redirect(w, r, roles.DefaultRoute(roles.Canonical(resp.User.Role)), true)
}

// handleLogout tells the backend, clears the stored session either way, and
// lands on the login page.
func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var refreshToken string
	if sess, err := h.sessions.Read(r.Context()); err == nil && sess != nil {
		refreshToken = sess.RefreshToken
	}
	if err := h.auth.Logout(r.Context(), refreshToken); err != nil {
		log.Printf("logout backend: %v", err)
	}
	if err := h.sessions.Clear(r.Context()); err != nil {
		log.Printf("clear session: %v", err)
	}
	h.center.Close()
	h.redirect(w, r, nav.LoginPath, true)
}

// handleRegisterAdmin completes an admin account from an invite link. A
// successful registration signs the new admin in, like login does.
func (h *Handler) handleRegisterAdmin(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.render(w, "register_admin", authView{
			AppName:     h.appName,
			InviteToken: strings.TrimSpace(r.URL.Query().Get("token")),
		})
	case http.MethodPost:
		h.submitRegisterAdmin(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) submitRegisterAdmin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	reg := api.AdminInviteRegistration{
		InviteToken: strings.TrimSpace(r.PostFormValue("invite_token")),
		FirstName:   strings.TrimSpace(r.PostFormValue("first_name")),
		LastName:    strings.TrimSpace(r.PostFormValue("last_name")),
		Phone:       strings.TrimSpace(r.PostFormValue("phone")),
		Password:    r.PostFormValue("password"),
	}

	resp, err := h.auth.RegisterAdminInvite(r.Context(), reg)
	if err != nil {
		h.render(w, "register_admin", authView{
			AppName:     h.appName,
			Error:       apperrors.MessageOf(err, api.GenericErrorMessage),
			InviteToken: reg.InviteToken,
			FirstName:   reg.FirstName,
			LastName:    reg.LastName,
			Phone:       reg.Phone,
		})
		return
	}
	if err := h.sessions.Save(r.Context(), resp.AccessToken, resp.User, resp.RefreshToken); err != nil {
		log.Printf("save session: %v", err)
	}
	h.redirect(w, r, roles.DefaultRoute(roles.Canonical(resp.User.Role)), true)
}

// guarded builds a dashboard handler gated on one role.
func (h *Handler) guarded(role roles.Role, title string) http.HandlerFunc {
	g := guard.Guard{Sessions: h.sessions, AllowedRoles: []roles.Role{role}}
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		decision := g.Evaluate(r.Context(), r.URL.Path)
		if !decision.Allow {
			h.redirect(w, r, decision.Redirect, decision.Replace)
			return
		}
		sess, err := h.sessions.Read(r.Context())
		if err != nil || sess == nil {
			h.redirect(w, r, nav.LoginPath, true)
			return
		}
		h.render(w, "dashboard", shellView{
			AppName:  h.appName,
			Title:    title,
			UserName: displayName(sess.User),
			Tab:      strings.TrimSpace(r.URL.Query().Get("tab")),
			Links:    roles.NavLinks(role),
			Badge:    badgeText(h.center.Snapshot()),
			Panel:    toPanelView(h.center.Snapshot(), h.now()),
		})
	}
}

// handleMessages admits any authenticated role.
func (h *Handler) handleMessages(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	g := guard.Guard{Sessions: h.sessions}
	decision := g.Evaluate(r.Context(), r.URL.Path)
	if !decision.Allow {
		h.redirect(w, r, decision.Redirect, decision.Replace)
		return
	}
	sess, err := h.sessions.Read(r.Context())
	if err != nil || sess == nil {
		h.redirect(w, r, nav.LoginPath, true)
		return
	}
	h.render(w, "messages", shellView{
		AppName:  h.appName,
		UserName: displayName(sess.User),
		Links:    roles.NavLinks(roles.Canonical(sess.User.Role)),
	})
}

// handlePanel opens the notification panel, loading the unread count and
// recent window together, and renders the panel fragment.
func (h *Handler) handlePanel(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	sess, ok := h.requireSession(w, r)
	if !ok || sess == nil {
		return
	}
	h.center.Open(r.Context())
	h.render(w, "panel", toPanelView(h.center.Snapshot(), h.now()))
}

func (h *Handler) handleToggle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	sess, ok := h.requireSession(w, r)
	if !ok {
		return
	}
	h.center.Toggle(r.Context())
	h.redirectBack(w, r, sess)
}

func (h *Handler) handleReadAll(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	sess, ok := h.requireSession(w, r)
	if !ok {
		return
	}
	if err := h.center.MarkAllRead(r.Context()); err != nil {
		log.Printf("mark all notifications read: %v", err)
	}
	h.redirectBack(w, r, sess)
}

// handleNotificationRead serves POST /notifications/{id}/read: mark the
// notification read, then follow its deep link for the visitor's role.
func (h *Handler) handleNotificationRead(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/notifications/")
	idText, action, ok := strings.Cut(rest, "/")
	if !ok || action != "read" {
		http.NotFound(w, r)
		return
	}
	id, err := strconv.Atoi(idText)
	if err != nil || id <= 0 {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	sess, ok := h.requireSession(w, r)
	if !ok || sess == nil {
		return
	}

	notification := api.Notification{ID: id}
	for _, item := range h.center.Snapshot().Items {
		if item.ID == id {
			notification = item
			break
		}
	}
	if err := h.center.MarkRead(r.Context(), notification); err != nil {
		log.Printf("mark notification %d read: %v", id, err)
	}
	h.center.Close()

	role := roles.Canonical(sess.User.Role)
	h.redirect(w, r, notifications.RouteFor(notification, role), false)
}

// requireSession reads the session or redirects to login. ok reports
// whether the caller may proceed.
func (h *Handler) requireSession(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, err := h.sessions.Read(r.Context())
	if err != nil || sess == nil {
		h.redirect(w, r, nav.LoginPath, true)
		return nil, false
	}
	return sess, true
}

// redirect maps history semantics onto HTTP: a replacing redirect must not
// enter history, so it answers 303 See Other; a pushing one answers 302.
func (h *Handler) redirect(w http.ResponseWriter, r *http.Request, target string, replace bool) {
	status := http.StatusFound
	if replace {
		status = http.StatusSeeOther
	}
	http.Redirect(w, r, target, status)
}

// redirectBack returns to the page the action was triggered from, falling
// back to the visitor's dashboard.
func (h *Handler) redirectBack(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	target := roles.DefaultRoute(roles.Canonical(sess.User.Role))
	if ref := r.Header.Get("Referer"); ref != "" {
		if u, err := url.Parse(ref); err == nil && strings.HasPrefix(u.Path, "/") {
			target = u.Path
			if u.RawQuery != "" {
				target += "?" + u.RawQuery
			}
		}
	}
	h.redirect(w, r, target, true)
}

func (h *Handler) render(w http.ResponseWriter, name string, data any) {
	if err := templates.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("render %s: %v", name, err)
	}
}

func badgeText(state notifications.State) string {
	if state.UnreadCount <= 0 {
		return ""
	}
	return notifications.BadgeText(state.UnreadCount)
}
