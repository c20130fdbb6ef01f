package usermock

import (
	"context"

	domain "loan-service/internal/domain/user"
)

var _ domain.Directory = (*Directory)(nil)

// Directory is a function-backed mock of the user service.
// Unset functions answer ErrNotFound.
type Directory struct {
	GetUserFn              func(ctx context.Context, userID string) (*domain.User, error)
	GetProfileFn           func(ctx context.Context, userID string) (*domain.Profile, error)
	GetProfileByDocumentFn func(ctx context.Context, documentNumber string) (*domain.Profile, error)
}

// Clients returns a directory where every user id resolves to a client.
func Clients() *Directory {
	return &Directory{
		GetUserFn: func(_ context.Context, userID string) (*domain.User, error) {
			return &domain.User{ID: userID, Role: domain.RoleClient}, nil
		},
	}
}

func (m *Directory) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	if m.GetUserFn != nil {
		return m.GetUserFn(ctx, userID)
	}
	return nil, domain.ErrNotFound
}

func (m *Directory) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	if m.GetProfileFn != nil {
		return m.GetProfileFn(ctx, userID)
	}
	return nil, domain.ErrNotFound
}

func (m *Directory) GetProfileByDocument(ctx context.Context, documentNumber string) (*domain.Profile, error) {
	if m.GetProfileByDocumentFn != nil {
		return m.GetProfileByDocumentFn(ctx, documentNumber)
	}
	return nil, domain.ErrNotFound
}
