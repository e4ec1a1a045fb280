package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/purgebot/purgebot/internal/cleanup"
	"github.com/purgebot/purgebot/internal/database"
)

// Resolver turns a user argument (mention, username, or numeric id) into a
// platform account id, using the users the recorder has seen.
type Resolver struct {
	store database.Store
}

// NewResolver creates a Resolver over the recorded users.
func NewResolver(store database.Store) *Resolver {
	return &Resolver{store: store}
}

// Resolve accepts "@name", "name", or a numeric id. An unknown or empty
// reference resolves to ErrNotFound.
func (r *Resolver) Resolve(ctx context.Context, ref string) (int64, error) {
	ref = strings.TrimPrefix(strings.TrimSpace(ref), "@")
	if ref == "" {
		return 0, fmt.Errorf("%w: empty user reference", cleanup.ErrNotFound)
	}

	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		return id, nil
	}

	user, err := r.store.FindUserByUsername(ctx, ref)
	if err != nil {
		return 0, fmt.Errorf("resolve user %q: %w", ref, err)
	}
	if user == nil {
		return 0, fmt.Errorf("%w: user %q is ambiguous or not found", cleanup.ErrNotFound, ref)
	}
	return user.UserID, nil
}
