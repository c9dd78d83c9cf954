package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/GoSim-25-26J-441/project-admin/internal/auth"
	"github.com/GoSim-25-26J-441/project-admin/internal/parties/domain"
	"github.com/GoSim-25-26J-441/project-admin/internal/querycache"
)

type fakeRepo struct {
	parties   []domain.Party
	roleTypes []domain.RoleType
	listErr   error

	listCalls int
	getCalls  int
	updates   []domain.UpdateParty
}

func (f *fakeRepo) List(context.Context) ([]domain.Party, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.parties, nil
}

func (f *fakeRepo) Get(_ context.Context, id int) (domain.PartyView, error) {
	f.getCalls++
	for i := range f.parties {
		if f.parties[i].PartyID == id {
			p := f.parties[i]
			return domain.PartyView{Party: &p, RoleTypes: f.roleTypes}, nil
		}
	}
	return domain.PartyView{RoleTypes: f.roleTypes}, nil
}

func (f *fakeRepo) RoleTypes(context.Context) ([]domain.RoleType, error) {
	return f.roleTypes, nil
}

func (f *fakeRepo) Update(_ context.Context, id int, in domain.UpdateParty) error {
	f.updates = append(f.updates, in)
	for i := range f.parties {
		if f.parties[i].PartyID == id {
			f.parties[i].FirstName = in.FirstName
			f.parties[i].LastName = in.LastName
			return nil
		}
	}
	return domain.ErrNotFound
}

func setup(t *testing.T) (*PartyService, *fakeRepo, *querycache.Cache) {
	repo := &fakeRepo{
		parties: []domain.Party{{PartyID: 1, FirstName: "Ada", LastName: "Lovelace"}},
		roleTypes: []domain.RoleType{
			{Value: "admin", Description: "Administrator"},
			{Value: "viewer", Description: "Viewer"},
		},
	}
	cache := querycache.New(time.Minute, zaptest.NewLogger(t))
	return NewPartyService(repo, cache, zaptest.NewLogger(t)), repo, cache
}

func TestPartyService_ListIsCached(t *testing.T) {
	svc, repo, _ := setup(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		items, err := svc.List(ctx)
		require.NoError(t, err)
		assert.Len(t, items, 1)
	}
	assert.Equal(t, 1, repo.listCalls)
}

func TestPartyService_CacheIsScopedByCredential(t *testing.T) {
	svc, repo, _ := setup(t)
	alice := auth.WithCacheScope(context.Background(), auth.ScopeOf("bearer", "alice-token"))
	bob := auth.WithCacheScope(context.Background(), auth.ScopeOf("bearer", "bob-token"))

	_, err := svc.List(alice)
	require.NoError(t, err)
	_, err = svc.List(bob)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.listCalls)
}

func TestPartyService_ErrorsAreNotCached(t *testing.T) {
	svc, repo, _ := setup(t)
	repo.listErr = errors.New("graphql Parties: boom")

	_, err := svc.List(context.Background())
	require.Error(t, err)

	repo.listErr = nil
	_, err = svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, repo.listCalls)
}

func TestPartyService_GetNotFound(t *testing.T) {
	svc, _, _ := setup(t)
	_, err := svc.Get(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	view, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Ada", view.Party.FirstName)
	assert.Len(t, view.RoleTypes, 2)
}

func TestPartyService_UpdateInvalidatesPartiesAndProjects(t *testing.T) {
	svc, repo, cache := setup(t)
	ctx := context.Background()

	_, err := svc.List(ctx)
	require.NoError(t, err)
	_, err = svc.Get(ctx, 1)
	require.NoError(t, err)
	_, err = querycache.Fetch(ctx, cache, querycache.NewKey("", "projects"), func(context.Context) (int, error) { return 1, nil })
	require.NoError(t, err)

	err = svc.Update(ctx, 1, domain.UpdateParty{FirstName: "Augusta", LastName: "King", Roles: []string{"admin", "admin", "viewer"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"admin", "viewer"}, repo.updates[0].Roles, "duplicate roles are collapsed")

	items, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Augusta", items[0].FirstName)
	assert.Equal(t, 2, repo.listCalls)

	view, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "King", view.Party.LastName)
	assert.Equal(t, 2, repo.getCalls)

}

func TestPartyService_UpdateRejectsUnknownRole(t *testing.T) {
	svc, repo, _ := setup(t)
	err := svc.Update(context.Background(), 1, domain.UpdateParty{Roles: []string{"root"}})
	assert.ErrorIs(t, err, domain.ErrInvalidRole)
	assert.Empty(t, repo.updates)
}

func TestPartyService_UpdateMissingPartyKeepsCache(t *testing.T) {
	svc, repo, _ := setup(t)
	ctx := context.Background()
	_, err := svc.List(ctx)
	require.NoError(t, err)

	err = svc.Update(ctx, 99, domain.UpdateParty{Roles: []string{}})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.listCalls)
}
