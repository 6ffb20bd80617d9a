package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/alibiomar/ashe-admin-api/internal/domain/models"
)

// SnapshotRepository stores scheduled KPI report snapshots.
type SnapshotRepository struct {
	client *Client
}

// NewSnapshotRepository builds a repository over the stats_snapshots
// collection.
func NewSnapshotRepository(client *Client) *SnapshotRepository {
	return &SnapshotRepository{client: client}
}

type snapshotDocument struct {
	TakenAt time.Time          `bson:"takenAt"`
	Report  models.StatsReport `bson:"report"`
}

// Save appends a report snapshot.
func (r *SnapshotRepository) Save(ctx context.Context, report models.StatsReport) error {
	doc := snapshotDocument{TakenAt: time.Now().UTC(), Report: report}
	if _, err := r.client.database().Collection(collSnapshots).InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert stats snapshot: %w", err)
	}
	return nil
}
