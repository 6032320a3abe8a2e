package memory

import (
	"context"
	"sync"

	"github.com/starterkit/webapi/internal/core/domain"
)

type ClientAppRepository struct {
	mu     sync.RWMutex
	apps   []domain.ClientApp
	nextID int
}

func NewClientAppRepository() *ClientAppRepository {
	return &ClientAppRepository{nextID: 1}
}

func (r *ClientAppRepository) List(_ context.Context, skip, limit int) ([]domain.ClientApp, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := len(r.apps)
	page := pageOf(r.apps, skip, limit)
	out := make([]domain.ClientApp, len(page))
	copy(out, page)
	return out, total, nil
}

func (r *ClientAppRepository) GetByID(_ context.Context, id int) (*domain.ClientApp, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.apps {
		if r.apps[i].ID == id {
			app := r.apps[i]
			return &app, nil
		}
	}
	return nil, domain.ErrClientAppNotFound
}

func (r *ClientAppRepository) GetByAppID(_ context.Context, appID string) (*domain.ClientApp, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.apps {
		if r.apps[i].AppID == appID {
			app := r.apps[i]
			return &app, nil
		}
	}
	return nil, domain.ErrClientAppNotFound
}

func (r *ClientAppRepository) GetByName(_ context.Context, name string) (*domain.ClientApp, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.apps {
		if r.apps[i].Name == name {
			app := r.apps[i]
			return &app, nil
		}
	}
	return nil, domain.ErrClientAppNotFound
}

func (r *ClientAppRepository) Create(_ context.Context, app *domain.ClientApp) (*domain.ClientApp, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *app
	stored.ID = r.nextID
	r.nextID++
	r.apps = append(r.apps, stored)

	out := stored
	return &out, nil
}

func (r *ClientAppRepository) Update(_ context.Context, app *domain.ClientApp) (*domain.ClientApp, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.apps {
		if r.apps[i].ID == app.ID {
			r.apps[i] = *app
			out := r.apps[i]
			return &out, nil
		}
	}
	return nil, domain.ErrClientAppNotFound
}

func (r *ClientAppRepository) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.apps {
		if r.apps[i].ID == id {
			r.apps = append(r.apps[:i], r.apps[i+1:]...)
			return nil
		}
	}
	return domain.ErrClientAppNotFound
}
