package querycache

import (
	"context"
	"fmt"

	"github.com/kcmikee/michaelEsenwa-mobile-app/internal/api"
)

// Cache key roots, one per resource signature.
const (
	KeyCurrentUser   = "auth/me"
	KeyTasks         = "tasks"
	KeyTaskPrefix    = "task/"
	KeyTeamMembers   = "team/members"
	KeyMyTeam        = "team/my-team"
	KeyTeamHierarchy = "team/hierarchy"
	KeyTeamStats     = "team/stats"
	KeyTeamLeader    = "team/leader"
	KeyInvitations   = "invitations"
)

// TasksKey returns the cache key for a filtered task listing.
// Equal filters always produce equal keys.
func TasksKey(filter api.TaskFilter) string {
	if q := filter.Query(); q != "" {
		return KeyTasks + "?" + q
	}
	return KeyTasks
}

// TaskKey returns the cache key for a single task.
func TaskKey(id int64) string {
	return fmt.Sprintf("%s%d", KeyTaskPrefix, id)
}

// Mutation names a write operation for the invalidation table.
type Mutation string

// Mutations covered by the dependency table
const (
	MutationTaskCreate       Mutation = "task.create"
	MutationTaskUpdate       Mutation = "task.update"
	MutationTaskDelete       Mutation = "task.delete"
	MutationInvitationCreate Mutation = "invitation.create"
)

// invalidations is the static dependency table: each mutation dirties the
// collection it touched, the single-item entries under it, and the
// aggregates that summarize it. Declared in one place so the dependency
// graph stays auditable.
var invalidations = map[Mutation][]string{
	MutationTaskCreate:       {KeyTasks, KeyTeamStats},
	MutationTaskUpdate:       {KeyTasks, KeyTaskPrefix, KeyTeamStats},
	MutationTaskDelete:       {KeyTasks, KeyTaskPrefix, KeyTeamStats},
	MutationInvitationCreate: {KeyInvitations, KeyTeamMembers},
}

// InvalidatedBy returns the key prefixes a mutation dirties.
func InvalidatedBy(m Mutation) []string {
	return invalidations[m]
}

// Mutate runs a write operation with the single-retry policy and, on
// success, applies the mutation's invalidations. Reads for unrelated keys
// are never blocked: invalidation only flips staleness markers.
func Mutate[T any](ctx context.Context, c *Cache, m Mutation, fn func(context.Context) (T, error)) (T, error) {
	value, err := fn(ctx)
	if err != nil && api.IsRetryable(err) {
		c.logger.Debug("retrying failed mutation", "mutation", string(m))
		value, err = fn(ctx)
	}
	if err != nil {
		var zero T
		return zero, err
	}

	c.Invalidate(InvalidatedBy(m)...)
	return value, nil
}
