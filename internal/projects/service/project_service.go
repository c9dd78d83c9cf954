package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/project-admin/internal/auth"
	"github.com/GoSim-25-26J-441/project-admin/internal/projects/domain"
	"github.com/GoSim-25-26J-441/project-admin/internal/querycache"
)

// Cache key roots read by this service.
const (
	KeyProjects = "projects"
	KeyStatuses = "project_status"
)

// Repository is the GraphQL access layer for projects.
type Repository interface {
	List(ctx context.Context) ([]domain.Project, error)
	Get(ctx context.Context, id int) (*domain.Project, error)
	Statuses(ctx context.Context) ([]domain.ProjectStatus, error)
	Create(ctx context.Context, in domain.NewProject) (int, error)
	Update(ctx context.Context, id int, in domain.UpdateProject) error
	Delete(ctx context.Context, id int) error
}

// OwnerLister lists the parties a project can be assigned to.
type OwnerLister interface {
	Owners(ctx context.Context) ([]domain.Owner, error)
}

// OwnerListerFunc adapts a function to OwnerLister.
type OwnerListerFunc func(ctx context.Context) ([]domain.Owner, error)

func (f OwnerListerFunc) Owners(ctx context.Context) ([]domain.Owner, error) {
	return f(ctx)
}

// ProjectService handles project-related business logic
type ProjectService struct {
	repo   Repository
	owners OwnerLister
	cache  *querycache.Cache
	logger *zap.Logger
}

// NewProjectService creates a new project service
func NewProjectService(repo Repository, owners OwnerLister, cache *querycache.Cache, logger *zap.Logger) *ProjectService {
	return &ProjectService{
		repo:   repo,
		owners: owners,
		cache:  cache,
		logger: logger,
	}
}

// List returns all projects
func (s *ProjectService) List(ctx context.Context) ([]domain.Project, error) {
	return querycache.Fetch(ctx, s.cache, key(ctx, KeyProjects), s.repo.List)
}

// Get returns a project with its assignments
func (s *ProjectService) Get(ctx context.Context, id int) (domain.Project, error) {
	p, err := querycache.Fetch(ctx, s.cache, key(ctx, KeyProjects, strconv.Itoa(id)),
		func(ctx context.Context) (*domain.Project, error) {
			return s.repo.Get(ctx, id)
		})
	if err != nil {
		return domain.Project{}, err
	}
	if p == nil {
		return domain.Project{}, domain.ErrNotFound
	}
	return *p, nil
}

// Statuses returns the project status lookup table
func (s *ProjectService) Statuses(ctx context.Context) ([]domain.ProjectStatus, error) {
	return querycache.Fetch(ctx, s.cache, key(ctx, KeyStatuses), s.repo.Statuses)
}

// Owners returns the parties a project can be assigned to
func (s *ProjectService) Owners(ctx context.Context) ([]domain.Owner, error) {
	return s.owners.Owners(ctx)
}

// Create creates a new project
func (s *ProjectService) Create(ctx context.Context, in domain.NewProject) (int, error) {
	if strings.TrimSpace(in.Name) == "" {
		return 0, domain.ErrNameRequired
	}

	id, err := s.repo.Create(ctx, in)
	if err != nil {
		s.logger.Warn("project create failed", zap.Error(err))
		return 0, err
	}
	s.invalidate("create", id)
	return id, nil
}

// Update validates status and owner, then saves the project
func (s *ProjectService) Update(ctx context.Context, id int, in domain.UpdateProject) error {
	if strings.TrimSpace(in.Name) == "" {
		return domain.ErrNameRequired
	}

	statuses, err := s.Statuses(ctx)
	if err != nil {
		return err
	}
	if !hasStatus(statuses, in.Status) {
		return fmt.Errorf("%w: %q", domain.ErrInvalidStatus, in.Status)
	}

	owners, err := s.owners.Owners(ctx)
	if err != nil {
		return err
	}
	if !hasOwner(owners, in.Owner) {
		return fmt.Errorf("%w: %d", domain.ErrInvalidOwner, in.Owner)
	}

	if err := s.repo.Update(ctx, id, in); err != nil {
		s.logger.Warn("project update failed", zap.Int("project_id", id), zap.Error(err))
		return err
	}
	s.invalidate("update", id)
	return nil
}

// Delete deletes a project
func (s *ProjectService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Warn("project delete failed", zap.Int("project_id", id), zap.Error(err))
		return err
	}
	s.invalidate("delete", id)
	return nil
}

func (s *ProjectService) invalidate(op string, id int) {
	n := s.cache.Invalidate(KeyProjects)
	s.logger.Debug("projects invalidated",
		zap.String("operation", op),
		zap.Int("project_id", id),
		zap.Int("entries", n),
	)
}

func hasStatus(statuses []domain.ProjectStatus, v string) bool {
	for _, st := range statuses {
		if st.Value == v {
			return true
		}
	}
	return false
}

func hasOwner(owners []domain.Owner, id int) bool {
	for _, o := range owners {
		if o.ID == id {
			return true
		}
	}
	return false
}

func key(ctx context.Context, parts ...string) querycache.Key {
	return querycache.NewKey(auth.CacheScope(ctx), parts...)
}
