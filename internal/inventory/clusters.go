package inventory

import (
	"context"
	"time"

	"github.com/joshuastenhouse/rscreporting-sub000/internal/client"
	"github.com/joshuastenhouse/rscreporting-sub000/internal/util"
)

const clusterListQuery = `query ClusterList($first: Int!, $after: String) {
  clusterConnection(first: $first, after: $after) {
    edges {
      node {
        id
        name
        version
        status
        defaultAddress
        clusterNodeConnection { count }
        metric {
          totalCapacity
          usedCapacity
          availableCapacity
        }
        lastConnectionTime
      }
    }
    pageInfo { endCursor hasNextPage }
  }
}`

type clusterNode struct {
	ID                    string `json:"id"`
	Name                  string `json:"name"`
	Version               string `json:"version"`
	Status                string `json:"status"`
	DefaultAddress        string `json:"defaultAddress"`
	ClusterNodeConnection *struct {
		Count int `json:"count"`
	} `json:"clusterNodeConnection"`
	Metric *struct {
		TotalCapacity     int64 `json:"totalCapacity"`
		UsedCapacity      int64 `json:"usedCapacity"`
		AvailableCapacity int64 `json:"availableCapacity"`
	} `json:"metric"`
	LastConnectionTime int64 `json:"lastConnectionTime"`
}

// Cluster is one row of the connected-cluster inventory.
type Cluster struct {
	ClusterID         string     `json:"clusterId"`
	Cluster           string     `json:"cluster"`
	Version           string     `json:"version"`
	Status            string     `json:"status"`
	Address           string     `json:"address"`
	Nodes             int        `json:"nodes"`
	TotalGB           float64    `json:"totalGB"`
	UsedGB            float64    `json:"usedGB"`
	AvailableGB       float64    `json:"availableGB"`
	UsedPercent       float64    `json:"usedPercent"`
	LastConnected     *time.Time `json:"lastConnected"`
	HoursSinceConnect float64    `json:"hoursSinceConnect"`
	ConnectedRecently bool       `json:"connectedRecently"`
	URL               string     `json:"url"`
}

// GetClusters returns every cluster registered in the account.
func GetClusters(ctx context.Context, c *client.Client) ([]Cluster, error) {
	nodes, err := client.Paginate[clusterNode](ctx, c, client.QuerySpec{
		OperationName: "ClusterList",
		Query:         clusterListQuery,
		RootField:     "clusterConnection",
	})
	if err != nil {
		return nil, err
	}

	now := c.Now()
	clusters := make([]Cluster, 0, len(nodes))
	for _, n := range nodes {
		clusters = append(clusters, mapCluster(n, c.AccountURL(), now))
	}
	return clusters, nil
}

func mapCluster(n clusterNode, accountURL string, now time.Time) Cluster {
	cl := Cluster{
		ClusterID: n.ID,
		Cluster:   n.Name,
		Version:   n.Version,
		Status:    n.Status,
		Address:   n.DefaultAddress,
		URL:       consoleURL(accountURL, clusterPath, n.ID),
	}
	if n.ClusterNodeConnection != nil {
		cl.Nodes = n.ClusterNodeConnection.Count
	}
	if n.Metric != nil {
		cl.TotalGB = util.BytesToGB(n.Metric.TotalCapacity)
		cl.UsedGB = util.BytesToGB(n.Metric.UsedCapacity)
		cl.AvailableGB = util.BytesToGB(n.Metric.AvailableCapacity)
		if n.Metric.TotalCapacity > 0 {
			cl.UsedPercent = util.Percent(n.Metric.UsedCapacity, n.Metric.TotalCapacity)
		}
	}
	cl.LastConnected = util.EpochMillisToUTC(n.LastConnectionTime)
	cl.HoursSinceConnect = util.HoursSince(cl.LastConnected, now)
	cl.ConnectedRecently = cl.LastConnected != nil && cl.HoursSinceConnect <= 1
	return cl
}
