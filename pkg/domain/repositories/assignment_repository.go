package repositories

import (
	"context"

	"github.com/mbarret/expertdesk/pkg/domain/entities"
)

// AssignmentRepository reads expertise cases. All financial figures on the
// returned records are server-computed and read-only here.
type AssignmentRepository interface {
	Get(ctx context.Context, id int64) (entities.Assignment, error)
	List(ctx context.Context) ([]entities.Assignment, error)
}
