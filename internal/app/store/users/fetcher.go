// internal/app/store/users/fetcher.go
package userstore

import (
	"context"

	"github.com/dalemusser/studymatch/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Fetcher adapts the user store to the session middleware, which reloads
// the signed-in user on every request.
type Fetcher struct {
	store *Store
}

func NewFetcher(store *Store) *Fetcher {
	return &Fetcher{store: store}
}

// FetchUser implements auth.UserFetcher. A nil return signs the session
// out; that covers both a malformed id and a deleted account.
func (f *Fetcher) FetchUser(ctx context.Context, userID string) *auth.SessionUser {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil
	}
	u, err := f.store.GetByID(ctx, id)
	if err != nil {
		return nil
	}
	return &auth.SessionUser{
		ID:     u.ID.Hex(),
		Name:   u.Name,
		Email:  u.Email,
		Avatar: u.Avatar,
	}
}
