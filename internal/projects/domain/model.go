package domain

import "errors"

var (
	ErrNotFound      = errors.New("project not found")
	ErrInvalidStatus = errors.New("unknown project status")
	ErrInvalidOwner  = errors.New("unknown project owner")
	ErrNameRequired  = errors.New("project name is required")
)

// ProjectStatus is a row of the project status lookup table.
type ProjectStatus struct {
	Value       string `json:"value"`
	Description string `json:"description"`
}

type StatusRef struct {
	Description string `json:"description"`
}

type PartyRef struct {
	PartyID int    `json:"party_id"`
	Name    string `json:"name"`
}

// Assignment links a party role to a project.
type Assignment struct {
	PartyRole struct {
		PartyRoleID int `json:"party_role_id"`
		Party       struct {
			Name string `json:"name"`
		} `json:"party"`
		RoleType struct {
			Description string `json:"description"`
		} `json:"role_type"`
	} `json:"party_role"`
}

// Project mirrors the backend projects row with its status and owner
// relations. Assignments are only loaded for a single project.
type Project struct {
	ID            int          `json:"id"`
	Name          string       `json:"name"`
	Description   string       `json:"description"`
	Status        string       `json:"status"`
	ProjectStatus *StatusRef   `json:"project_status"`
	OwnerParty    *PartyRef    `json:"owner_party"`
	Assignments   []Assignment `json:"project_assignments,omitempty"`
}

// StatusLabel is the status description, falling back to the status code.
func (p Project) StatusLabel() string {
	if p.ProjectStatus != nil && p.ProjectStatus.Description != "" {
		return p.ProjectStatus.Description
	}
	return p.Status
}

func (p Project) OwnerID() int {
	if p.OwnerParty == nil {
		return 0
	}
	return p.OwnerParty.PartyID
}

// Owner is a party that can own a project.
type Owner struct {
	ID   int
	Name string
}

type NewProject struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type UpdateProject struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Owner       int    `json:"owner"`
}
