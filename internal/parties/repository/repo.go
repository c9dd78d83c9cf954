package repository

import (
	"context"

	"github.com/GoSim-25-26J-441/project-admin/internal/graphql"
	"github.com/GoSim-25-26J-441/project-admin/internal/parties/domain"
)

// Repo reads and writes parties through the GraphQL backend.
type Repo struct {
	gql graphql.Runner
}

func NewRepo(gql graphql.Runner) *Repo {
	return &Repo{gql: gql}
}

func (r *Repo) List(ctx context.Context) ([]domain.Party, error) {
	var out struct {
		Parties []domain.Party `json:"identity_parties"`
	}
	if err := r.gql.Run(ctx, opParties, nil, &out); err != nil {
		return nil, err
	}
	if out.Parties == nil {
		out.Parties = []domain.Party{}
	}
	return out.Parties, nil
}

// Get returns the party and the role type table in one request.
func (r *Repo) Get(ctx context.Context, id int) (domain.PartyView, error) {
	var out struct {
		Party     *domain.Party     `json:"identity_parties_by_pk"`
		RoleTypes []domain.RoleType `json:"identity_role_type"`
	}
	if err := r.gql.Run(ctx, opPartyView, graphql.Vars{"id": id}, &out); err != nil {
		return domain.PartyView{}, err
	}
	return domain.PartyView{Party: out.Party, RoleTypes: out.RoleTypes}, nil
}

func (r *Repo) RoleTypes(ctx context.Context) ([]domain.RoleType, error) {
	var out struct {
		RoleTypes []domain.RoleType `json:"identity_role_type"`
	}
	if err := r.gql.Run(ctx, opRoleTypes, nil, &out); err != nil {
		return nil, err
	}
	return out.RoleTypes, nil
}

type roleInsert struct {
	PartyID int    `json:"party_id"`
	Role    string `json:"role"`
}

// Update sets the names and replaces the roles of a party.
func (r *Repo) Update(ctx context.Context, id int, in domain.UpdateParty) error {
	roles := make([]roleInsert, 0, len(in.Roles))
	for _, role := range in.Roles {
		roles = append(roles, roleInsert{PartyID: id, Role: role})
	}

	var out struct {
		Updated *struct {
			PartyID int `json:"party_id"`
		} `json:"update_identity_parties_by_pk"`
	}
	err := r.gql.Run(ctx, opUpdateParty, graphql.Vars{
		"id":         id,
		"first_name": in.FirstName,
		"last_name":  in.LastName,
		"roles":      roles,
	}, &out)
	if err != nil {
		return err
	}
	if out.Updated == nil {
		return domain.ErrNotFound
	}
	return nil
}
