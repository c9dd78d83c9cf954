package http

import (
	"slices"
	"strconv"
	"strings"

	"github.com/GoSim-25-26J-441/project-admin/internal/parties/domain"
	"github.com/GoSim-25-26J-441/project-admin/internal/ui"
)

func renderRoles(empty string) func(any) string {
	return func(v any) string {
		roles, _ := v.([]domain.PartyRole)
		labels := make([]string, 0, len(roles))
		for _, r := range roles {
			if r.RoleType.Description != "" {
				labels = append(labels, r.RoleType.Description)
			}
		}
		if len(labels) == 0 {
			return empty
		}
		return strings.Join(labels, ", ")
	}
}

func partyID(p domain.Party) any     { return p.PartyID }
func firstName(p domain.Party) any   { return p.FirstName }
func lastName(p domain.Party) any    { return p.LastName }
func idpID(p domain.Party) any       { return p.IdpID }
func partyRoles(p domain.Party) any  { return p.PartyRoles }
func partyKey(p domain.Party) string { return strconv.Itoa(p.PartyID) }

var listFields = []ui.Field[domain.Party]{
	{Key: "party_id", Label: "ID", Value: partyID},
	{Key: "first_name", Label: "First Name", Value: firstName},
	{Key: "last_name", Label: "Last Name", Value: lastName},
	{Key: "idp_id", Label: "IDP ID", Value: idpID},
	{Key: "party_roles", Label: "Roles", Value: partyRoles, Render: renderRoles("No roles")},
}

var viewFields = []ui.Field[domain.Party]{
	{Key: "first_name", Label: "First Name", Value: firstName},
	{Key: "last_name", Label: "Last Name", Value: lastName},
	{Key: "party_roles", Label: "Roles", Value: partyRoles, Render: renderRoles("No roles assigned")},
}

// editFields builds the edit form descriptors; the roles checkbox group is
// populated from the role type table.
func editFields(types []domain.RoleType) []ui.Field[domain.Party] {
	options := make([]ui.Option, 0, len(types))
	for _, t := range types {
		options = append(options, ui.Option{Value: t.Value, Label: t.Description})
	}

	return []ui.Field[domain.Party]{
		{
			Key: "first_name", Label: "First Name", Editable: true,
			Value: firstName,
			Set:   func(p *domain.Party, v any) { p.FirstName = v.(string) },
		},
		{
			Key: "last_name", Label: "Last Name", Editable: true,
			Value: lastName,
			Set:   func(p *domain.Party, v any) { p.LastName = v.(string) },
		},
		{Key: "idp_id", Label: "IDP ID", Value: idpID},
		{
			Key: "roles", Label: "Roles", Editable: true, Input: ui.InputMultiSelect,
			Options:   options,
			Value:     partyRoles,
			Set:       func(p *domain.Party, v any) { p.PartyRoles = v.([]domain.PartyRole) },
			IsChecked: roleChecked,
			Check:     checkRole,
			Uncheck:   uncheckRole,
		},
	}
}

func roleChecked(option string, current any) bool {
	roles, _ := current.([]domain.PartyRole)
	return slices.ContainsFunc(roles, func(r domain.PartyRole) bool { return r.Code() == option })
}

func checkRole(current any, _ []ui.Option, option ui.Option) any {
	roles, _ := current.([]domain.PartyRole)
	return append(slices.Clone(roles), domain.PartyRole{
		Role:     option.Value,
		RoleType: domain.RoleType{Value: option.Value, Description: option.Label},
	})
}

func uncheckRole(current any, option ui.Option) any {
	roles, _ := current.([]domain.PartyRole)
	return slices.DeleteFunc(slices.Clone(roles), func(r domain.PartyRole) bool { return r.Code() == option.Value })
}
