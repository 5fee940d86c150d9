package document

import (
	"context"
	"sort"
	"time"

	"github.com/healthkey/healthkey-api/internal/model"
	"github.com/healthkey/healthkey-api/internal/repository"
	"github.com/healthkey/healthkey-api/internal/store"
	"github.com/healthkey/healthkey-api/pkg/apperror"
)

type userRepository struct {
	store store.Store
}

func NewUserRepository(s store.Store) repository.UserRepository {
	return &userRepository{store: s}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	return r.store.Update(ctx, func(doc *model.Document) error {
		doc.Users[user.ID] = user
		return nil
	})
}

func (r *userRepository) Get(ctx context.Context, id string) (*model.User, error) {
	doc, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	user, ok := doc.Users[id]
	if !ok {
		return nil, apperror.NotFound("user")
	}
	return user, nil
}

func (r *userRepository) GetByLogin(ctx context.Context, identifier, role string) (*model.User, error) {
	doc, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	for _, user := range doc.Users {
		if user.Role != role {
			continue
		}
		if user.Email == identifier {
			return user, nil
		}
		if role == model.RolePatient && user.Mobile != "" && user.Mobile == identifier {
			return user, nil
		}
	}
	return nil, apperror.NotFound("user")
}

func (r *userRepository) Mutate(ctx context.Context, id string, fn func(*model.User) error) error {
	return r.store.Update(ctx, func(doc *model.Document) error {
		user, ok := doc.Users[id]
		if !ok {
			return apperror.NotFound("user")
		}
		if err := fn(user); err != nil {
			return err
		}
		user.UpdatedAt = time.Now()
		return nil
	})
}

func (r *userRepository) ListByRoleAndStatus(ctx context.Context, role, status string) ([]*model.User, error) {
	doc, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	var users []*model.User
	for _, user := range doc.Users {
		if user.Role == role && (status == "" || user.Status == status) {
			users = append(users, user)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}
