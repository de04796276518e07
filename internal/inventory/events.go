package inventory

import (
	"context"
	"time"

	"github.com/joshuastenhouse/rscreporting-sub000/internal/client"
	"github.com/joshuastenhouse/rscreporting-sub000/internal/util"
)

const eventListQuery = `query EventList($first: Int!, $after: String, $lastUpdatedTimeGt: DateTime) {
  activitySeriesConnection(first: $first, after: $after, filters: {lastUpdatedTimeGt: $lastUpdatedTimeGt}) {
    edges {
      node {
        id
        activitySeriesId
        objectName
        objectType
        lastActivityType
        lastActivityStatus
        severity
        startTime
        lastUpdated
        cluster { id name }
        activityConnection(first: 1) {
          nodes { message }
        }
      }
    }
    pageInfo { endCursor hasNextPage }
  }
}`

type eventNode struct {
	ID                 string   `json:"id"`
	ActivitySeriesID   string   `json:"activitySeriesId"`
	ObjectName         string   `json:"objectName"`
	ObjectType         string   `json:"objectType"`
	LastActivityType   string   `json:"lastActivityType"`
	LastActivityStatus string   `json:"lastActivityStatus"`
	Severity           string   `json:"severity"`
	StartTime          int64    `json:"startTime"`
	LastUpdated        int64    `json:"lastUpdated"`
	Cluster            *nameRef `json:"cluster"`
	ActivityConnection *struct {
		Nodes []struct {
			Message string `json:"message"`
		} `json:"nodes"`
	} `json:"activityConnection"`
}

// Event is one flattened activity series.
type Event struct {
	EventID       string     `json:"eventId"`
	Object        string     `json:"object"`
	ObjectType    string     `json:"objectType"`
	Type          string     `json:"type"`
	Status        string     `json:"status"`
	Severity      string     `json:"severity"`
	Cluster       string     `json:"cluster"`
	ClusterID     string     `json:"clusterId"`
	StartTime     *time.Time `json:"startTime"`
	LastUpdated   *time.Time `json:"lastUpdated"`
	DurationHours float64    `json:"durationHours"`
	Message       string     `json:"message"`
	URL           string     `json:"url"`
}

// GetEvents returns activity series last updated inside the look-back
// window, newest first in server order.
func GetEvents(ctx context.Context, c *client.Client, lookBack time.Duration) ([]Event, error) {
	since := c.Now().Add(-lookBack).UTC().Format(time.RFC3339)
	nodes, err := client.Paginate[eventNode](ctx, c, client.QuerySpec{
		OperationName: "EventList",
		Query:         eventListQuery,
		Variables:     map[string]any{"lastUpdatedTimeGt": since},
		RootField:     "activitySeriesConnection",
	})
	if err != nil {
		return nil, err
	}

	events := make([]Event, 0, len(nodes))
	for _, n := range nodes {
		events = append(events, mapEvent(n, c.AccountURL()))
	}
	return events, nil
}

func mapEvent(n eventNode, accountURL string) Event {
	e := Event{
		EventID:    n.ActivitySeriesID,
		Object:     n.ObjectName,
		ObjectType: n.ObjectType,
		Type:       n.LastActivityType,
		Status:     n.LastActivityStatus,
		Severity:   n.Severity,
		URL:        consoleURL(accountURL, eventPath, n.ActivitySeriesID),
	}
	if n.Cluster != nil {
		e.Cluster = n.Cluster.Name
		e.ClusterID = n.Cluster.ID
	}
	e.StartTime = util.EpochMillisToUTC(n.StartTime)
	e.LastUpdated = util.EpochMillisToUTC(n.LastUpdated)
	if e.StartTime != nil && e.LastUpdated != nil {
		e.DurationHours = util.HoursSince(e.StartTime, *e.LastUpdated)
	}
	if n.ActivityConnection != nil && len(n.ActivityConnection.Nodes) > 0 {
		e.Message = n.ActivityConnection.Nodes[0].Message
	}
	return e
}
