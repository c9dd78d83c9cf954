package http

import (
	"fmt"
	"strconv"

	"github.com/GoSim-25-26J-441/project-admin/internal/projects/domain"
	"github.com/GoSim-25-26J-441/project-admin/internal/ui"
)

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func projectID(p domain.Project) any   { return p.ID }
func name(p domain.Project) any        { return p.Name }
func description(p domain.Project) any { return p.Description }
func status(p domain.Project) any      { return p.StatusLabel() }
func owner(p domain.Project) any       { return p.OwnerParty }
func projectKey(p domain.Project) string {
	return strconv.Itoa(p.ID)
}

func renderOwner(v any) string {
	if o, ok := v.(*domain.PartyRef); ok && o != nil {
		return orNA(o.Name)
	}
	return "N/A"
}

func renderNA(v any) string {
	return orNA(ui.FormatValue(v))
}

var listFields = []ui.Field[domain.Project]{
	{Key: "id", Label: "ID", Value: projectID},
	{Key: "name", Label: "Name", Value: name},
	{Key: "description", Label: "Description", Value: description},
	{Key: "status", Label: "Status", Value: status, Render: renderNA},
	{Key: "owner", Label: "Owner", Value: owner, Render: renderOwner},
}

var viewFields = []ui.Field[domain.Project]{
	{Key: "id", Label: "ID", Value: projectID},
	{Key: "name", Label: "Name", Value: name},
	{Key: "description", Label: "Description", Value: description, Render: renderNA},
	{Key: "status", Label: "Status", Value: status, Render: renderNA},
	{Key: "owner", Label: "Owner", Value: owner, Render: renderOwner},
}

var createFields = []ui.Field[domain.NewProject]{
	{
		Key: "name", Label: "Project Name", Editable: true,
		Value: func(p domain.NewProject) any { return p.Name },
		Set:   func(p *domain.NewProject, v any) { p.Name = v.(string) },
	},
	{
		Key: "description", Label: "Project Description", Editable: true,
		Value: func(p domain.NewProject) any { return p.Description },
		Set:   func(p *domain.NewProject, v any) { p.Description = v.(string) },
	},
}

// editFields builds the edit form; status and owner are selects over the
// lookup table and the party list.
func editFields(statuses []domain.ProjectStatus, owners []domain.Owner) []ui.Field[domain.Project] {
	statusOptions := make([]ui.Option, 0, len(statuses))
	for _, st := range statuses {
		statusOptions = append(statusOptions, ui.Option{Value: st.Value, Label: st.Description})
	}
	ownerOptions := make([]ui.Option, 0, len(owners))
	for _, o := range owners {
		ownerOptions = append(ownerOptions, ui.Option{Value: strconv.Itoa(o.ID), Label: o.Name})
	}

	return []ui.Field[domain.Project]{
		{Key: "id", Label: "ID", Value: projectID},
		{
			Key: "name", Label: "Name", Editable: true,
			Value: name,
			Set:   func(p *domain.Project, v any) { p.Name = v.(string) },
		},
		{
			Key: "description", Label: "Description", Editable: true,
			Value: description,
			Set:   func(p *domain.Project, v any) { p.Description = v.(string) },
		},
		{
			Key: "status", Label: "Status", Editable: true, Input: ui.InputSelect,
			Options: statusOptions,
			Value:   func(p domain.Project) any { return p.Status },
			Set: func(p *domain.Project, v any) {
				p.Status = v.(string)
				p.ProjectStatus = &domain.StatusRef{Description: label(statusOptions, p.Status)}
			},
		},
		{
			Key: "owner", Label: "Owner", Editable: true, Input: ui.InputSelect,
			Options: ownerOptions,
			Value: func(p domain.Project) any {
				if p.OwnerParty == nil {
					return ""
				}
				return strconv.Itoa(p.OwnerParty.PartyID)
			},
			Set: func(p *domain.Project, v any) {
				id, _ := strconv.Atoi(v.(string))
				p.OwnerParty = &domain.PartyRef{PartyID: id, Name: label(ownerOptions, v.(string))}
			},
		},
	}
}

func label(options []ui.Option, value string) string {
	for _, o := range options {
		if o.Value == value {
			return o.Label
		}
	}
	return value
}

func assignmentItems(p domain.Project) []string {
	items := make([]string, 0, len(p.Assignments))
	for _, a := range p.Assignments {
		items = append(items, fmt.Sprintf("%s - %s", a.PartyRole.Party.Name, a.PartyRole.RoleType.Description))
	}
	return items
}
