package storage

import (
	"context"

	"github.com/martinsvarc/teamtables/internal/types"
)

// Store defines the call-record source the aggregation layer reads from.
// Records are append-only; there is no update or delete for individual
// records. Fetch failures are propagated to the caller as-is; retrying
// is the calling layer's concern.
type Store interface {
	SaveCallRecord(ctx context.Context, record types.CallRecord) error
	GetTeamCallRecords(ctx context.Context, teamID string) ([]types.CallRecord, error)
	GetUserCallRecords(ctx context.Context, userID string) ([]types.CallRecord, error)
	TruncateAll(ctx context.Context) error
}
