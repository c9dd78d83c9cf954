package domain

import (
	"errors"
	"strings"
)

var (
	ErrNotFound    = errors.New("party not found")
	ErrInvalidRole = errors.New("unknown role type")
)

// RoleType is a row of the role type lookup table.
type RoleType struct {
	Value       string `json:"value"`
	Description string `json:"description"`
}

// PartyRole assigns a role type to a party.
type PartyRole struct {
	Role     string   `json:"role"`
	RoleType RoleType `json:"role_type"`
}

// Party is a person known to the identity provider.
type Party struct {
	PartyID    int         `json:"party_id"`
	FirstName  string      `json:"first_name"`
	LastName   string      `json:"last_name"`
	IdpID      string      `json:"idp_id"`
	PartyRoles []PartyRole `json:"party_roles"`
}

func (p Party) Name() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// RoleCodes returns the role type codes of the party, in assignment order.
func (p Party) RoleCodes() []string {
	out := make([]string, 0, len(p.PartyRoles))
	for _, r := range p.PartyRoles {
		out = append(out, r.Code())
	}
	return out
}

// Code prefers the role column and falls back to the joined role type.
func (r PartyRole) Code() string {
	if r.Role != "" {
		return r.Role
	}
	return r.RoleType.Value
}

// PartyView is a party together with the role types it can be given.
// Party is nil when the backend has no such party.
type PartyView struct {
	Party     *Party     `json:"party"`
	RoleTypes []RoleType `json:"role_types"`
}

// UpdateParty is the editable part of a party.
type UpdateParty struct {
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Roles     []string `json:"roles"`
}
