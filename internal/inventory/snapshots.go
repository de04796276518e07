package inventory

import (
	"context"
	"time"

	"github.com/joshuastenhouse/rscreporting-sub000/internal/client"
	"github.com/joshuastenhouse/rscreporting-sub000/internal/util"
)

const snapshotListQuery = `query SnapshotList($first: Int!, $after: String, $snappableId: String!) {
  snapshotOfASnappableConnection(first: $first, after: $after, workloadId: $snappableId) {
    edges {
      node {
        id
        date
        isOnDemandSnapshot
        isCorrupted
        cloudNativeLocationId
        expirationDate
      }
    }
    pageInfo { endCursor hasNextPage }
  }
}`

type snapshotNode struct {
	ID                    string `json:"id"`
	Date                  int64  `json:"date"`
	IsOnDemandSnapshot    bool   `json:"isOnDemandSnapshot"`
	IsCorrupted           bool   `json:"isCorrupted"`
	CloudNativeLocationID string `json:"cloudNativeLocationId"`
	ExpirationDate        int64  `json:"expirationDate"`
}

// Snapshot is one recovery point of a protected object.
type Snapshot struct {
	SnapshotID  string     `json:"snapshotId"`
	ObjectID    string     `json:"objectId"`
	Taken       *time.Time `json:"taken"`
	OnDemand    bool       `json:"onDemand"`
	Corrupted   bool       `json:"corrupted"`
	CloudNative bool       `json:"cloudNative"`
	Expires     *time.Time `json:"expires"`
}

// GetObjectSnapshots returns the full snapshot history of one object.
func GetObjectSnapshots(ctx context.Context, c *client.Client, objectID string) ([]Snapshot, error) {
	nodes, err := client.Paginate[snapshotNode](ctx, c, client.QuerySpec{
		OperationName: "SnapshotList",
		Query:         snapshotListQuery,
		Variables:     map[string]any{"snappableId": objectID},
		RootField:     "snapshotOfASnappableConnection",
	})
	if err != nil {
		return nil, err
	}

	snapshots := make([]Snapshot, 0, len(nodes))
	for _, n := range nodes {
		snapshots = append(snapshots, mapSnapshot(n, objectID))
	}
	return snapshots, nil
}

func mapSnapshot(n snapshotNode, objectID string) Snapshot {
	return Snapshot{
		SnapshotID:  n.ID,
		ObjectID:    objectID,
		Taken:       util.EpochMillisToUTC(n.Date),
		OnDemand:    n.IsOnDemandSnapshot,
		Corrupted:   n.IsCorrupted,
		CloudNative: n.CloudNativeLocationID != "",
		Expires:     util.EpochMillisToUTC(n.ExpirationDate),
	}
}
