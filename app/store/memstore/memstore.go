package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/resourcehub/resourcehub/app/store"
	"github.com/resourcehub/resourcehub/pkg/types"
)

// Provider keeps everything in process memory. Additions live as long as
// the process does.
type Provider struct {
	resources *ResourceStore
	stars     *StarDataStore
}

func NewProvider() *Provider {
	return &Provider{
		resources: NewResourceStore(),
		stars:     NewStarDataStore(),
	}
}

func (p *Provider) ResourceStore() store.ResourceStore {
	return p.resources
}

func (p *Provider) StarDataStore() store.StarDataStore {
	return p.stars
}

// Install has nothing to migrate.
func (p *Provider) Install() error {
	return nil
}

type ResourceStore struct {
	mu   sync.RWMutex
	list []types.Resource
}

func NewResourceStore() *ResourceStore {
	return &ResourceStore{}
}

func cloneResource(r types.Resource) types.Resource {
	r.Tags = append([]string{}, r.Tags...)
	r.Relationships = append([]string{}, r.Relationships...)
	return r
}

func (s *ResourceStore) Create(ctx context.Context, data types.Resource) error {
	if data.CreatedAt == 0 {
		data.CreatedAt = time.Now().UnixNano()
	}

	s.mu.Lock()
	s.list = append(s.list, cloneResource(data))
	s.mu.Unlock()
	return nil
}

func (s *ResourceStore) find(match func(types.Resource) bool) (*types.Resource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.list {
		if match(r) {
			res := cloneResource(r)
			return &res, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *ResourceStore) GetByTitle(ctx context.Context, title string) (*types.Resource, error) {
	return s.find(func(r types.Resource) bool { return r.Title == title })
}

func (s *ResourceStore) GetByID(ctx context.Context, id string) (*types.Resource, error) {
	return s.find(func(r types.Resource) bool { return r.ID != "" && r.ID == id })
}

func (s *ResourceStore) ListAll(ctx context.Context) ([]types.Resource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := make([]types.Resource, 0, len(s.list))
	for _, r := range s.list {
		res = append(res, cloneResource(r))
	}
	return res, nil
}

func (s *ResourceStore) Total(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.list)), nil
}

func (s *ResourceStore) Seed(ctx context.Context, list []types.Resource) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.list) > 0 {
		return nil
	}
	base := time.Now().UnixNano()
	for i, r := range list {
		if r.CreatedAt == 0 {
			r.CreatedAt = base + int64(i)
		}
		s.list = append(s.list, cloneResource(r))
	}
	return nil
}

type StarDataStore struct {
	mu    sync.RWMutex
	order []string
	data  map[string]types.RepositoryStarData
}

func NewStarDataStore() *StarDataStore {
	return &StarDataStore{
		data: make(map[string]types.RepositoryStarData),
	}
}

func (s *StarDataStore) Upsert(ctx context.Context, data types.RepositoryStarData) error {
	if data.UpdatedAt == 0 {
		data.UpdatedAt = time.Now().Unix()
	}
	data.StarHistory = append([]types.StarHistoryPoint{}, data.StarHistory...)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[data.RepoName]; !ok {
		s.order = append(s.order, data.RepoName)
	}
	s.data[data.RepoName] = data
	return nil
}

func (s *StarDataStore) Get(ctx context.Context, repo string) (*types.RepositoryStarData, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.data[repo]
	if !ok {
		return nil, store.ErrNotFound
	}
	data.StarHistory = append([]types.StarHistoryPoint{}, data.StarHistory...)
	return &data, nil
}

func (s *StarDataStore) List(ctx context.Context) ([]types.RepositoryStarData, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := make([]types.RepositoryStarData, 0, len(s.order))
	for _, repo := range s.order {
		data := s.data[repo]
		data.StarHistory = append([]types.StarHistoryPoint{}, data.StarHistory...)
		res = append(res, data)
	}
	return res, nil
}
