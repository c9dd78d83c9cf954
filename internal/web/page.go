package web

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/project-admin/internal/auth"
	"github.com/GoSim-25-26J-441/project-admin/internal/ui"
)

const (
	AlertDanger  = "danger"
	AlertWarning = "warning"
	AlertSuccess = "success"

	MessageQueryError = "An error occurred"
)

type Alert struct {
	Kind    string
	Message string
}

type NavItem struct {
	Label  string
	URL    string
	Active bool
}

// Page is the data handed to the layout template.
type Page struct {
	Title        string
	Nav          []NavItem
	UserName     string
	LoggedIn     bool
	LoginEnabled bool
	LoginURL     string
	Alert        *Alert
	Content      any
	RequestID    string
}

type HomeContent struct {
	LoggedIn bool
	UserName string
}

type ListContent struct {
	Table  ui.TableView
	Create *ui.FormView
}

type Panel struct {
	Title string
	Items []string
	Empty string
}

type DetailContent struct {
	Detail ui.DetailView
	Panels []Panel
}

type FormContent struct {
	Form ui.FormView
}

type ConfirmContent struct {
	Title       string
	Message     string
	Action      string
	CancelURL   string
	SubmitLabel string
}

var navigation = []NavItem{
	{Label: "Home", URL: "/"},
	{Label: "Projects", URL: "/projects"},
	{Label: "Parties", URL: "/parties"},
}

// Shell fills the parts of a Page shared by every screen.
type Shell struct {
	LoginEnabled bool
}

func (s Shell) Page(c *gin.Context, title string, content any) Page {
	id := auth.IdentityFrom(c.Request.Context())

	nav := make([]NavItem, len(navigation))
	copy(nav, navigation)
	current := c.Request.URL.Path
	for i := range nav {
		if nav[i].URL == "/" {
			nav[i].Active = current == "/"
		} else {
			nav[i].Active = current == nav[i].URL || strings.HasPrefix(current, nav[i].URL+"/")
		}
	}

	return Page{
		Title:        title,
		Nav:          nav,
		UserName:     id.DisplayName(),
		LoggedIn:     auth.IsAuthenticated(c.Request.Context()),
		LoginEnabled: s.LoginEnabled,
		LoginURL:     "/login?return_to=" + url.QueryEscape(c.Request.URL.RequestURI()),
		Content:      content,
		RequestID:    c.GetString("request_id"),
	}
}

// Render writes a page with the given template.
func (s Shell) Render(c *gin.Context, status int, name, title string, content any) {
	c.HTML(status, name, s.Page(c, title, content))
}

// RenderAlert writes a page that only carries an alert banner.
func (s Shell) RenderAlert(c *gin.Context, status int, title string, alert Alert) {
	p := s.Page(c, title, nil)
	p.Alert = &alert
	c.HTML(status, TemplateError, p)
}

// QueryError renders the generic query failure banner.
func (s Shell) QueryError(c *gin.Context, title string, err error) {
	_ = c.Error(err)
	s.RenderAlert(c, http.StatusBadGateway, title, Alert{Kind: AlertDanger, Message: MessageQueryError})
}

// Missing renders the warning banner for a record absent from a successful
// response.
func (s Shell) Missing(c *gin.Context, title, message string) {
	s.RenderAlert(c, http.StatusNotFound, title, Alert{Kind: AlertWarning, Message: message})
}
