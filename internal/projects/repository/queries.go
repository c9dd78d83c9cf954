package repository

import "github.com/GoSim-25-26J-441/project-admin/internal/graphql"

const projectFields = `
fragment ProjectFields on projects {
  id
  name
  description
  status
  project_status {
    description
  }
  owner_party {
    party_id
    name
  }
}`

var (
	opProjects = graphql.Operation{
		Name: "Projects",
		Document: `query Projects {
  projects {
    ...ProjectFields
  }
}` + projectFields,
	}

	opProjectView = graphql.Operation{
		Name: "ProjectView",
		Document: `query ProjectView($id: Int!) {
  projects_by_pk(id: $id) {
    ...ProjectFields
    project_assignments {
      party_role {
        party_role_id
        party {
          name
        }
        role_type {
          description
        }
      }
    }
  }
}` + projectFields,
	}

	opProjectStatuses = graphql.Operation{
		Name: "ProjectStatuses",
		Document: `query ProjectStatuses {
  project_status {
    value
    description
  }
}`,
	}

	opCreateProject = graphql.Operation{
		Name: "CreateProject",
		Document: `mutation CreateProject($name: String!, $description: String!) {
  insert_projects_one(object: { name: $name, description: $description }) {
    id
  }
}`,
	}

	opUpdateProject = graphql.Operation{
		Name: "UpdateProject",
		Document: `mutation UpdateProject(
  $id: Int!
  $name: String!
  $description: String!
  $status: project_status_enum!
  $owner: Int!
) {
  update_projects_by_pk(
    pk_columns: { id: $id }
    _set: { name: $name, description: $description, status: $status, owner: $owner }
  ) {
    id
  }
}`,
	}

	opDeleteProject = graphql.Operation{
		Name: "DeleteProject",
		Document: `mutation DeleteProject($id: Int!) {
  delete_projects_by_pk(id: $id) {
    id
  }
}`,
	}
)
