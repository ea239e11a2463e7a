package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// NewID produces a collision-resistant identifier with an entity-type
// prefix, e.g. "course_6f1c...". Random UUIDs replace the original
// timestamp-based scheme, which could silently collide for two creations
// within the same millisecond.
func NewID(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, uuid.NewString())
}

// RelationKey builds the composite key for relationship records
// (one record per (user, resource) pair by construction: inserts overwrite).
func RelationKey(user Principal, resourceID string) string {
	return fmt.Sprintf("%s_%s", user, resourceID)
}
