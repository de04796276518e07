package inventory

import (
	"context"
	"time"

	"github.com/joshuastenhouse/rscreporting-sub000/internal/client"
	"github.com/joshuastenhouse/rscreporting-sub000/internal/util"
)

const objectListQuery = `query ObjectList($first: Int!, $after: String) {
  snappableConnection(first: $first, after: $after) {
    edges {
      node {
        id
        name
        objectType
        location
        protectionStatus
        complianceStatus
        cluster { id name }
        effectiveSlaDomain { id name }
        totalSnapshots { count }
        latestSnapshot { date }
        physicalBytes
        usedBytes
      }
    }
    pageInfo { endCursor hasNextPage }
  }
}`

type nameRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type objectNode struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	ObjectType         string   `json:"objectType"`
	Location           string   `json:"location"`
	ProtectionStatus   string   `json:"protectionStatus"`
	ComplianceStatus   string   `json:"complianceStatus"`
	Cluster            *nameRef `json:"cluster"`
	EffectiveSlaDomain *nameRef `json:"effectiveSlaDomain"`
	TotalSnapshots     *struct {
		Count int `json:"count"`
	} `json:"totalSnapshots"`
	LatestSnapshot *struct {
		Date int64 `json:"date"`
	} `json:"latestSnapshot"`
	PhysicalBytes int64 `json:"physicalBytes"`
	UsedBytes     int64 `json:"usedBytes"`
}

// Object is one row of the protected-object inventory.
type Object struct {
	ObjectID               string     `json:"objectId"`
	Object                 string     `json:"object"`
	Type                   string     `json:"type"`
	Location               string     `json:"location"`
	Cluster                string     `json:"cluster"`
	ClusterID              string     `json:"clusterId"`
	SLADomain              string     `json:"slaDomain"`
	SLADomainID            string     `json:"slaDomainId"`
	ProtectionStatus       string     `json:"protectionStatus"`
	ComplianceStatus       string     `json:"complianceStatus"`
	IsRelic                bool       `json:"isRelic"`
	Protected              bool       `json:"protected"`
	Snapshots              int        `json:"snapshots"`
	LastSnapshot           *time.Time `json:"lastSnapshot"`
	HoursSinceLastSnapshot float64    `json:"hoursSinceLastSnapshot"`
	PhysicalGB             float64    `json:"physicalGB"`
	UsedGB                 float64    `json:"usedGB"`
	URL                    string     `json:"url"`
}

// GetObjects returns the full protected-object inventory, all pages.
func GetObjects(ctx context.Context, c *client.Client) ([]Object, error) {
	nodes, err := client.Paginate[objectNode](ctx, c, client.QuerySpec{
		OperationName: "ObjectList",
		Query:         objectListQuery,
		RootField:     "snappableConnection",
	})
	if err != nil {
		return nil, err
	}

	now := c.Now()
	objects := make([]Object, 0, len(nodes))
	for _, n := range nodes {
		objects = append(objects, mapObject(n, c.AccountURL(), now))
	}
	return objects, nil
}

func mapObject(n objectNode, accountURL string, now time.Time) Object {
	o := Object{
		ObjectID:         n.ID,
		Object:           n.Name,
		Type:             n.ObjectType,
		Location:         n.Location,
		ProtectionStatus: n.ProtectionStatus,
		ComplianceStatus: n.ComplianceStatus,
		IsRelic:          n.ProtectionStatus == "RELIC",
		Protected:        n.ProtectionStatus != "" && n.ProtectionStatus != "UNPROTECTED" && n.ProtectionStatus != "RELIC",
		PhysicalGB:       util.BytesToGB(n.PhysicalBytes),
		UsedGB:           util.BytesToGB(n.UsedBytes),
		URL:              consoleURL(accountURL, objectPath, n.ID),
	}
	if n.Cluster != nil {
		o.Cluster = n.Cluster.Name
		o.ClusterID = n.Cluster.ID
	}
	if n.EffectiveSlaDomain != nil {
		o.SLADomain = n.EffectiveSlaDomain.Name
		o.SLADomainID = n.EffectiveSlaDomain.ID
	}
	if n.TotalSnapshots != nil {
		o.Snapshots = n.TotalSnapshots.Count
	}
	if n.LatestSnapshot != nil {
		o.LastSnapshot = util.EpochMillisToUTC(n.LatestSnapshot.Date)
		o.HoursSinceLastSnapshot = util.HoursSince(o.LastSnapshot, now)
	}
	return o
}
