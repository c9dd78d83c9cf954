package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/project-admin/internal/graphql"
	"github.com/GoSim-25-26J-441/project-admin/internal/graphql/graphqltest"
	"github.com/GoSim-25-26J-441/project-admin/internal/projects/domain"
)

func setup(t *testing.T) (*ProjectRepository, *graphqltest.Server) {
	srv := graphqltest.NewServer(t)
	return NewProjectRepository(graphql.NewClient(graphql.Options{Endpoint: srv.URL})), srv
}

func alphaJSON() map[string]any {
	return map[string]any{
		"id":             1,
		"name":           "Alpha",
		"description":    "first",
		"status":         "active",
		"project_status": map[string]any{"description": "Active"},
		"owner_party":    map[string]any{"party_id": 2, "name": "Ada Lovelace"},
	}
}

func TestProjectRepository_List(t *testing.T) {
	repo, srv := setup(t)
	srv.Handle("Projects", func(graphqltest.Request) (any, error) {
		return map[string]any{"projects": []any{alphaJSON()}}, nil
	})

	items, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Alpha", items[0].Name)
	assert.Equal(t, "Active", items[0].StatusLabel())
	assert.Equal(t, 2, items[0].OwnerID())
	assert.Contains(t, srv.Requests("Projects")[0].Query, "fragment ProjectFields on projects")
}

func TestProjectRepository_ListEmpty(t *testing.T) {
	repo, srv := setup(t)
	srv.Handle("Projects", func(graphqltest.Request) (any, error) {
		return map[string]any{"projects": nil}, nil
	})

	items, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestProjectRepository_Get(t *testing.T) {
	repo, srv := setup(t)
	srv.Handle("ProjectView", func(req graphqltest.Request) (any, error) {
		if req.Variables["id"] != float64(1) {
			return map[string]any{"projects_by_pk": nil}, nil
		}
		p := alphaJSON()
		p["project_assignments"] = []any{
			map[string]any{"party_role": map[string]any{
				"party_role_id": 5,
				"party":         map[string]any{"name": "Ada Lovelace"},
				"role_type":     map[string]any{"description": "Administrator"},
			}},
		}
		return map[string]any{"projects_by_pk": p}, nil
	})

	p, err := repo.Get(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, p)
	require.Len(t, p.Assignments, 1)
	assert.Equal(t, "Ada Lovelace", p.Assignments[0].PartyRole.Party.Name)
	assert.Equal(t, "Administrator", p.Assignments[0].PartyRole.RoleType.Description)

	p, err = repo.Get(context.Background(), 9)
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestProjectRepository_Mutations(t *testing.T) {
	repo, srv := setup(t)
	srv.Handle("CreateProject", func(graphqltest.Request) (any, error) {
		return map[string]any{"insert_projects_one": map[string]any{"id": 7}}, nil
	})
	srv.Handle("UpdateProject", func(req graphqltest.Request) (any, error) {
		if req.Variables["id"] == float64(404) {
			return map[string]any{"update_projects_by_pk": nil}, nil
		}
		return map[string]any{"update_projects_by_pk": map[string]any{"id": req.Variables["id"]}}, nil
	})
	srv.Handle("DeleteProject", func(req graphqltest.Request) (any, error) {
		if req.Variables["id"] == float64(404) {
			return map[string]any{"delete_projects_by_pk": nil}, nil
		}
		return map[string]any{"delete_projects_by_pk": map[string]any{"id": req.Variables["id"]}}, nil
	})
	ctx := context.Background()

	id, err := repo.Create(ctx, domain.NewProject{Name: "Beta"})
	require.NoError(t, err)
	assert.Equal(t, 7, id)
	assert.Equal(t, map[string]any{"name": "Beta", "description": ""}, srv.Requests("CreateProject")[0].Variables)

	err = repo.Update(ctx, 7, domain.UpdateProject{Name: "Beta", Description: "d", Status: "active", Owner: 2})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"id": float64(7), "name": "Beta", "description": "d", "status": "active", "owner": float64(2),
	}, srv.Requests("UpdateProject")[0].Variables)

	assert.ErrorIs(t, repo.Update(ctx, 404, domain.UpdateProject{}), domain.ErrNotFound)

	require.NoError(t, repo.Delete(ctx, 7))
	assert.ErrorIs(t, repo.Delete(ctx, 404), domain.ErrNotFound)
}

func TestProjectRepository_CreateWithoutRow(t *testing.T) {
	repo, srv := setup(t)
	srv.Handle("CreateProject", func(graphqltest.Request) (any, error) {
		return map[string]any{"insert_projects_one": nil}, nil
	})

	_, err := repo.Create(context.Background(), domain.NewProject{Name: "Beta"})
	assert.Error(t, err)
}
