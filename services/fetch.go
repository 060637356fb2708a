package services

import (
	"context"
	"errors"
	"strconv"

	"github.com/lborres/tasklist/core"
)

// Loader fetches a record by primary key, returning core.ErrRecordNotFound on a miss.
type Loader[T any] func(ctx context.Context, id int64) (*T, error)

// Fetch loads the entity identified by rawID. A malformed id, a missing row
// and, when owner is set, a row owned by someone else all produce the same
// *core.NotFoundError so callers cannot probe for other users' records.
func Fetch[T any](ctx context.Context, entity, rawID string, load Loader[T], owner *core.Identity) (*T, error) {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return nil, core.NotFound(entity, rawID)
	}

	record, err := load(ctx, id)
	if err != nil {
		if errors.Is(err, core.ErrRecordNotFound) {
			return nil, core.NotFound(entity, rawID)
		}
		return nil, err
	}

	if owner != nil {
		owned, ok := any(record).(core.Owned)
		if !ok || !owned.OwnedBy(owner.ID) {
			return nil, core.NotFound(entity, rawID)
		}
	}

	return record, nil
}

// checkOwner applies the same rule to a record the caller already holds.
func checkOwner(entity string, id int64, record core.Owned, user *core.Identity) error {
	if user == nil || !record.OwnedBy(user.ID) {
		return core.NotFound(entity, strconv.FormatInt(id, 10))
	}
	return nil
}
