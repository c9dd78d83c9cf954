package repository

import "github.com/GoSim-25-26J-441/project-admin/internal/graphql"

const partyFields = `
fragment PartyFields on identity_parties {
  party_id
  first_name
  last_name
  idp_id
  party_roles {
    role
    role_type {
      value
      description
    }
  }
}`

var (
	opParties = graphql.Operation{
		Name: "Parties",
		Document: `query Parties {
  identity_parties {
    ...PartyFields
  }
}` + partyFields,
	}

	opPartyView = graphql.Operation{
		Name: "PartyView",
		Document: `query PartyView($id: Int!) {
  identity_parties_by_pk(party_id: $id) {
    ...PartyFields
  }
  identity_role_type {
    value
    description
  }
}` + partyFields,
	}

	opRoleTypes = graphql.Operation{
		Name: "RoleTypes",
		Document: `query RoleTypes {
  identity_role_type {
    value
    description
  }
}`,
	}

	// Roles are replaced wholesale: the update, delete and insert run in one
	// mutation request.
	opUpdateParty = graphql.Operation{
		Name: "UpdateParty",
		Document: `mutation UpdateParty(
  $id: Int!
  $first_name: String!
  $last_name: String!
  $roles: [identity_party_roles_insert_input!]!
) {
  update_identity_parties_by_pk(
    pk_columns: { party_id: $id }
    _set: { first_name: $first_name, last_name: $last_name }
  ) {
    party_id
  }
  delete_identity_party_roles(where: { party: { party_id: { _eq: $id } } }) {
    affected_rows
  }
  insert_identity_party_roles(objects: $roles) {
    affected_rows
  }
}`,
	}
)
