package tagreader

import (
	"context"
	"time"
)

// WaitForTag polls until a tag appears in the field, bounded by maxAttempts
// polls of pollTimeout each. Poll errors count as a missed attempt rather
// than aborting the wait; after the last attempt ErrNoTag is returned.
func WaitForTag(ctx context.Context, r TagReader, maxAttempts int, pollTimeout time.Duration) (*Tag, error) {
	for i := 0; i < maxAttempts; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		tag, err := r.Poll(ctx, pollTimeout)
		if err == nil {
			return tag, nil
		}
	}
	return nil, ErrNoTag
}
