package service

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/project-admin/internal/auth"
	"github.com/GoSim-25-26J-441/project-admin/internal/parties/domain"
	"github.com/GoSim-25-26J-441/project-admin/internal/querycache"
)

// Cache key roots owned by this service. Projects embed owner names, so
// party updates also drop cached projects.
const (
	KeyParties   = "parties"
	KeyRoleTypes = "role_types"
	keyProjects  = "projects"
)

// Repository is the GraphQL access layer for parties.
type Repository interface {
	List(ctx context.Context) ([]domain.Party, error)
	Get(ctx context.Context, id int) (domain.PartyView, error)
	RoleTypes(ctx context.Context) ([]domain.RoleType, error)
	Update(ctx context.Context, id int, in domain.UpdateParty) error
}

// PartyService reads parties through the query cache and invalidates it
// after mutations.
type PartyService struct {
	repo   Repository
	cache  *querycache.Cache
	logger *zap.Logger
}

func NewPartyService(repo Repository, cache *querycache.Cache, logger *zap.Logger) *PartyService {
	return &PartyService{repo: repo, cache: cache, logger: logger}
}

// List returns all parties in backend order.
func (s *PartyService) List(ctx context.Context) ([]domain.Party, error) {
	return querycache.Fetch(ctx, s.cache, key(ctx, KeyParties), s.repo.List)
}

// Get returns a party and the role type table. It returns ErrNotFound when
// the backend answers without the party.
func (s *PartyService) Get(ctx context.Context, id int) (domain.PartyView, error) {
	view, err := querycache.Fetch(ctx, s.cache, key(ctx, KeyParties, strconv.Itoa(id)),
		func(ctx context.Context) (domain.PartyView, error) {
			return s.repo.Get(ctx, id)
		})
	if err != nil {
		return domain.PartyView{}, err
	}
	if view.Party == nil {
		return view, domain.ErrNotFound
	}
	return view, nil
}

func (s *PartyService) RoleTypes(ctx context.Context) ([]domain.RoleType, error) {
	return querycache.Fetch(ctx, s.cache, key(ctx, KeyRoleTypes), s.repo.RoleTypes)
}

// Update validates the roles against the role type table, saves the party
// and invalidates every cached party and project.
func (s *PartyService) Update(ctx context.Context, id int, in domain.UpdateParty) error {
	types, err := s.RoleTypes(ctx)
	if err != nil {
		return err
	}
	known := make(map[string]bool, len(types))
	for _, t := range types {
		known[t.Value] = true
	}
	seen := make(map[string]bool, len(in.Roles))
	roles := make([]string, 0, len(in.Roles))
	for _, r := range in.Roles {
		if !known[r] {
			return fmt.Errorf("%w: %q", domain.ErrInvalidRole, r)
		}
		if !seen[r] {
			seen[r] = true
			roles = append(roles, r)
		}
	}
	in.Roles = roles

	if err := s.repo.Update(ctx, id, in); err != nil {
		s.logger.Warn("party update failed", zap.Int("party_id", id), zap.Error(err))
		return err
	}

	n := s.cache.Invalidate(KeyParties) + s.cache.Invalidate(keyProjects)
	s.logger.Debug("party updated", zap.Int("party_id", id), zap.Int("invalidated", n))
	return nil
}

func key(ctx context.Context, parts ...string) querycache.Key {
	return querycache.NewKey(auth.CacheScope(ctx), parts...)
}
