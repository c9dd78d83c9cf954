package repository

import (
	"context"
	"errors"

	"github.com/GoSim-25-26J-441/project-admin/internal/graphql"
	"github.com/GoSim-25-26J-441/project-admin/internal/projects/domain"
)

// ProjectRepository provides project operations against the GraphQL backend
type ProjectRepository struct {
	gql graphql.Runner
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(gql graphql.Runner) *ProjectRepository {
	return &ProjectRepository{gql: gql}
}

type idResult struct {
	ID int `json:"id"`
}

// List returns all projects visible to the caller, in backend order.
func (r *ProjectRepository) List(ctx context.Context) ([]domain.Project, error) {
	var out struct {
		Projects []domain.Project `json:"projects"`
	}
	if err := r.gql.Run(ctx, opProjects, nil, &out); err != nil {
		return nil, err
	}
	if out.Projects == nil {
		out.Projects = []domain.Project{}
	}
	return out.Projects, nil
}

// Get returns one project with its assignments, or nil when it does not
// exist.
func (r *ProjectRepository) Get(ctx context.Context, id int) (*domain.Project, error) {
	var out struct {
		Project *domain.Project `json:"projects_by_pk"`
	}
	if err := r.gql.Run(ctx, opProjectView, graphql.Vars{"id": id}, &out); err != nil {
		return nil, err
	}
	return out.Project, nil
}

func (r *ProjectRepository) Statuses(ctx context.Context) ([]domain.ProjectStatus, error) {
	var out struct {
		Statuses []domain.ProjectStatus `json:"project_status"`
	}
	if err := r.gql.Run(ctx, opProjectStatuses, nil, &out); err != nil {
		return nil, err
	}
	return out.Statuses, nil
}

// Create inserts a project and returns its id.
func (r *ProjectRepository) Create(ctx context.Context, in domain.NewProject) (int, error) {
	var out struct {
		Inserted *idResult `json:"insert_projects_one"`
	}
	err := r.gql.Run(ctx, opCreateProject, graphql.Vars{
		"name":        in.Name,
		"description": in.Description,
	}, &out)
	if err != nil {
		return 0, err
	}
	if out.Inserted == nil {
		return 0, errors.New("create project: no row returned")
	}
	return out.Inserted.ID, nil
}

func (r *ProjectRepository) Update(ctx context.Context, id int, in domain.UpdateProject) error {
	var out struct {
		Updated *idResult `json:"update_projects_by_pk"`
	}
	err := r.gql.Run(ctx, opUpdateProject, graphql.Vars{
		"id":          id,
		"name":        in.Name,
		"description": in.Description,
		"status":      in.Status,
		"owner":       in.Owner,
	}, &out)
	if err != nil {
		return err
	}
	if out.Updated == nil {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id int) error {
	var out struct {
		Deleted *idResult `json:"delete_projects_by_pk"`
	}
	if err := r.gql.Run(ctx, opDeleteProject, graphql.Vars{"id": id}, &out); err != nil {
		return err
	}
	if out.Deleted == nil {
		return domain.ErrNotFound
	}
	return nil
}
