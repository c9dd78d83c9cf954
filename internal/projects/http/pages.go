package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/GoSim-25-26J-441/project-admin/internal/projects/domain"
	"github.com/GoSim-25-26J-441/project-admin/internal/ui"
	"github.com/GoSim-25-26J-441/project-admin/internal/web"
)

const (
	listTitle   = "Projects"
	createTitle = "Create Project"
	detailTitle = "Project Details"
	deleteTitle = "Delete Project"
	notFound    = "Project not found"

	assignmentsTitle = "Project Assignments"
	noAssignments    = "No assignments found for this project."
)

func (h *Handler) listPage(c *gin.Context) {
	h.renderList(c, http.StatusOK, domain.NewProject{}, "")
}

func (h *Handler) renderList(c *gin.Context, status int, draft domain.NewProject, msg string) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.shell.QueryError(c, listTitle, err)
		return
	}

	table := ui.Table(listTitle, items, listFields, func(p domain.Project) []ui.Action {
		return ui.EntityActions("/projects", projectKey(p), true)
	})
	table.Empty = "No projects found"

	create := ui.Form(createTitle, draft, createFields)
	create.Action = "/projects"

	page := h.shell.Page(c, listTitle, web.ListContent{Table: table, Create: &create})
	if msg != "" {
		page.Alert = &web.Alert{Kind: web.AlertDanger, Message: msg}
	}
	c.HTML(status, web.TemplateList, page)
}

// createPage adds a project from the list screen's form.
func (h *Handler) createPage(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		h.renderList(c, http.StatusBadRequest, domain.NewProject{}, "Invalid form submission")
		return
	}

	draft, err := ui.Apply(domain.NewProject{}, createFields, c.Request.PostForm)
	if err != nil {
		h.renderList(c, http.StatusBadRequest, domain.NewProject{}, err.Error())
		return
	}

	id, err := h.svc.Create(c.Request.Context(), draft)
	switch {
	case errors.Is(err, domain.ErrNameRequired):
		h.renderList(c, http.StatusBadRequest, draft, "Project name is required")
		return
	case err != nil:
		h.logger.Error("failed to create project", zap.Error(err))
		h.shell.QueryError(c, listTitle, err)
		return
	}

	h.logger.Info("project created", zap.Int("project_id", id))
	c.Redirect(http.StatusSeeOther, "/projects")
}

// editData is everything the edit form needs, loaded in parallel.
type editData struct {
	project  domain.Project
	statuses []domain.ProjectStatus
	owners   []domain.Owner
}

func (h *Handler) loadEdit(c *gin.Context, id int) (editData, error) {
	var d editData
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		p, err := h.svc.Get(ctx, id)
		d.project = p
		return err
	})
	g.Go(func() error {
		st, err := h.svc.Statuses(ctx)
		d.statuses = st
		return err
	})
	g.Go(func() error {
		o, err := h.svc.Owners(ctx)
		d.owners = o
		return err
	})
	err := g.Wait()
	return d, err
}

// detailPage shows the project with its assignments, or the edit form when
// mode=edit.
func (h *Handler) detailPage(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		h.shell.Missing(c, detailTitle, notFound)
		return
	}

	if ui.ModeFrom(c.Request.URL.Query()) == ui.Editing {
		d, err := h.loadEdit(c, id)
		if errors.Is(err, domain.ErrNotFound) {
			h.shell.Missing(c, detailTitle, notFound)
			return
		}
		if err != nil {
			h.shell.QueryError(c, detailTitle, err)
			return
		}
		h.renderForm(c, http.StatusOK, d, "")
		return
	}

	p, err := h.svc.Get(c.Request.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		h.shell.Missing(c, detailTitle, notFound)
		return
	}
	if err != nil {
		h.shell.QueryError(c, detailTitle, err)
		return
	}

	detail := ui.Detail(detailTitle, p, viewFields)
	detail.EditURL = ui.ToggleModeURL(c.Request.URL)
	detail.BackURL = "/projects"
	h.shell.Render(c, http.StatusOK, web.TemplateDetail, detailTitle, web.DetailContent{
		Detail: detail,
		Panels: []web.Panel{{
			Title: assignmentsTitle,
			Items: assignmentItems(p),
			Empty: noAssignments,
		}},
	})
}

// savePage merges the submitted form into the current project and saves it.
func (h *Handler) savePage(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		h.shell.Missing(c, detailTitle, notFound)
		return
	}

	d, err := h.loadEdit(c, id)
	if errors.Is(err, domain.ErrNotFound) {
		h.shell.Missing(c, detailTitle, notFound)
		return
	}
	if err != nil {
		h.shell.QueryError(c, detailTitle, err)
		return
	}

	if err := c.Request.ParseForm(); err != nil {
		h.renderForm(c, http.StatusBadRequest, d, "Invalid form submission")
		return
	}

	edited, err := ui.Apply(d.project, editFields(d.statuses, d.owners), c.Request.PostForm)
	if err != nil {
		h.renderForm(c, http.StatusBadRequest, d, err.Error())
		return
	}

	err = h.svc.Update(c.Request.Context(), id, domain.UpdateProject{
		Name:        edited.Name,
		Description: edited.Description,
		Status:      edited.Status,
		Owner:       edited.OwnerID(),
	})
	switch {
	case errors.Is(err, domain.ErrNotFound):
		h.shell.Missing(c, detailTitle, notFound)
		return
	case errors.Is(err, domain.ErrNameRequired),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrInvalidOwner):
		d.project = edited
		h.renderForm(c, http.StatusBadRequest, d, err.Error())
		return
	case err != nil:
		h.logger.Error("failed to update project", zap.Int("project_id", id), zap.Error(err))
		h.shell.QueryError(c, detailTitle, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/projects")
}

func (h *Handler) renderForm(c *gin.Context, status int, d editData, msg string) {
	form := ui.Form(detailTitle, d.project, editFields(d.statuses, d.owners))
	form.Action = c.Request.URL.RequestURI()
	form.CancelURL = ui.ViewURL(c.Request.URL)
	form.Error = msg
	h.shell.Render(c, status, web.TemplateForm, detailTitle, web.FormContent{Form: form})
}

func (h *Handler) confirmDeletePage(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		h.shell.Missing(c, deleteTitle, notFound)
		return
	}

	p, err := h.svc.Get(c.Request.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		h.shell.Missing(c, deleteTitle, notFound)
		return
	}
	if err != nil {
		h.shell.QueryError(c, deleteTitle, err)
		return
	}

	h.shell.Render(c, http.StatusOK, web.TemplateConfirm, deleteTitle, web.ConfirmContent{
		Title:       deleteTitle,
		Message:     "Delete project \"" + p.Name + "\"? This cannot be undone.",
		Action:      "/projects/" + projectKey(p) + "/delete",
		CancelURL:   "/projects",
		SubmitLabel: "Delete",
	})
}

func (h *Handler) deletePage(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		h.shell.Missing(c, deleteTitle, notFound)
		return
	}

	err := h.svc.Delete(c.Request.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		h.shell.Missing(c, deleteTitle, notFound)
		return
	}
	if err != nil {
		h.logger.Error("failed to delete project", zap.Int("project_id", id), zap.Error(err))
		h.shell.QueryError(c, deleteTitle, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/projects")
}

func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
