package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/project-admin/internal/parties/domain"
	"github.com/GoSim-25-26J-441/project-admin/internal/ui"
	"github.com/GoSim-25-26J-441/project-admin/internal/web"
)

const (
	listTitle   = "Parties"
	detailTitle = "Party Details"
	notFound    = "Party not found"
)

func (h *Handler) listPage(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.shell.QueryError(c, listTitle, err)
		return
	}

	table := ui.Table(listTitle, items, listFields, func(p domain.Party) []ui.Action {
		return ui.EntityActions("/parties", partyKey(p), false)
	})
	table.Empty = "No parties found"

	h.shell.Render(c, http.StatusOK, web.TemplateList, listTitle, web.ListContent{Table: table})
}

// detailPage shows the party, or its edit form when mode=edit.
func (h *Handler) detailPage(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		h.shell.Missing(c, detailTitle, notFound)
		return
	}

	view, err := h.svc.Get(c.Request.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		h.shell.Missing(c, detailTitle, notFound)
		return
	}
	if err != nil {
		h.shell.QueryError(c, detailTitle, err)
		return
	}

	if ui.ModeFrom(c.Request.URL.Query()) == ui.Editing {
		h.renderForm(c, http.StatusOK, *view.Party, view.RoleTypes, "")
		return
	}

	detail := ui.Detail(detailTitle, *view.Party, viewFields)
	detail.EditURL = ui.ToggleModeURL(c.Request.URL)
	detail.BackURL = "/parties"
	h.shell.Render(c, http.StatusOK, web.TemplateDetail, detailTitle, web.DetailContent{Detail: detail})
}

// savePage merges the submitted form into the current party and saves it.
func (h *Handler) savePage(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		h.shell.Missing(c, detailTitle, notFound)
		return
	}

	view, err := h.svc.Get(c.Request.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		h.shell.Missing(c, detailTitle, notFound)
		return
	}
	if err != nil {
		h.shell.QueryError(c, detailTitle, err)
		return
	}

	if err := c.Request.ParseForm(); err != nil {
		h.renderForm(c, http.StatusBadRequest, *view.Party, view.RoleTypes, "Invalid form submission")
		return
	}

	edited, err := ui.Apply(*view.Party, editFields(view.RoleTypes), c.Request.PostForm)
	if err != nil {
		h.renderForm(c, http.StatusBadRequest, *view.Party, view.RoleTypes, err.Error())
		return
	}

	err = h.svc.Update(c.Request.Context(), id, domain.UpdateParty{
		FirstName: edited.FirstName,
		LastName:  edited.LastName,
		Roles:     edited.RoleCodes(),
	})
	switch {
	case errors.Is(err, domain.ErrNotFound):
		h.shell.Missing(c, detailTitle, notFound)
		return
	case errors.Is(err, domain.ErrInvalidRole):
		h.renderForm(c, http.StatusBadRequest, edited, view.RoleTypes, err.Error())
		return
	case err != nil:
		h.logger.Error("failed to update party", zap.Int("party_id", id), zap.Error(err))
		h.shell.QueryError(c, detailTitle, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/parties")
}

func (h *Handler) renderForm(c *gin.Context, status int, p domain.Party, types []domain.RoleType, msg string) {
	form := ui.Form(detailTitle, p, editFields(types))
	form.Action = c.Request.URL.RequestURI()
	form.CancelURL = ui.ViewURL(c.Request.URL)
	form.Error = msg
	h.shell.Render(c, status, web.TemplateForm, detailTitle, web.FormContent{Form: form})
}

func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
