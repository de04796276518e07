package report

import (
	"context"

	"go.uber.org/zap"

	"github.com/joshuastenhouse/rscreporting-sub000/internal/client"
	"github.com/joshuastenhouse/rscreporting-sub000/internal/inventory"
)

// Options control the reporting window.
type Options struct {
	DaysToReport        int
	BackupWindowEndHour int
	SkipDays            int
}

// BuildSuccessRate pulls the object inventory through the cache, fetches
// each protected object's snapshot history in sequence, and computes the
// success-rate report.
func BuildSuccessRate(ctx context.Context, c *client.Client, cache *inventory.Cache, opts Options) (*SuccessRateReport, error) {
	objects, err := cache.Objects(ctx)
	if err != nil {
		return nil, err
	}

	windows := Windows(opts.DaysToReport, opts.BackupWindowEndHour, opts.SkipDays, c.Now())

	snapshotsByObject := make(map[string][]inventory.Snapshot)
	for _, obj := range objects {
		if obj.IsRelic || !obj.Protected {
			continue
		}
		snapshots, err := inventory.GetObjectSnapshots(ctx, c, obj.ObjectID)
		if err != nil {
			return nil, err
		}
		snapshotsByObject[obj.ObjectID] = snapshots
	}

	zap.S().Named("report").Infof("computing success rate: objects=%d windows=%d", len(snapshotsByObject), len(windows))
	return SuccessRate(objects, snapshotsByObject, windows), nil
}
