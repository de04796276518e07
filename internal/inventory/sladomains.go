package inventory

import (
	"context"

	"github.com/joshuastenhouse/rscreporting-sub000/internal/client"
)

// slaDomainsConnection is one of the few root fields returning a bare
// nodes array instead of edges/node.
const slaDomainListQuery = `query SLADomainList($first: Int!, $after: String) {
  slaDomains(first: $first, after: $after) {
    nodes {
      id
      name
      version
      isRetentionLockedSla
      protectedObjectCount
      baseFrequency { duration unit }
      archivalSpecs { storageSetting { targetType } }
      replicationSpecsV2 { cluster { name } }
    }
    pageInfo { endCursor hasNextPage }
  }
}`

type slaDomainNode struct {
	ID                   string `json:"id"`
	Name                 string `json:"name"`
	Version              string `json:"version"`
	IsRetentionLockedSla bool   `json:"isRetentionLockedSla"`
	ProtectedObjectCount int    `json:"protectedObjectCount"`
	BaseFrequency        *struct {
		Duration int    `json:"duration"`
		Unit     string `json:"unit"`
	} `json:"baseFrequency"`
	ArchivalSpecs []struct {
		StorageSetting *struct {
			TargetType string `json:"targetType"`
		} `json:"storageSetting"`
	} `json:"archivalSpecs"`
	ReplicationSpecsV2 []struct {
		Cluster *struct {
			Name string `json:"name"`
		} `json:"cluster"`
	} `json:"replicationSpecsV2"`
}

// SLADomain is one row of the backup-policy table.
type SLADomain struct {
	SLADomainID       string `json:"slaDomainId"`
	SLADomain         string `json:"slaDomain"`
	Version           string `json:"version"`
	ProtectedObjects  int    `json:"protectedObjects"`
	FrequencyDuration int    `json:"frequencyDuration"`
	FrequencyUnit     string `json:"frequencyUnit"`
	Archival          bool   `json:"archival"`
	ArchivalTarget    string `json:"archivalTarget"`
	Replication       bool   `json:"replication"`
	ReplicationTarget string `json:"replicationTarget"`
	RetentionLocked   bool   `json:"retentionLocked"`
	URL               string `json:"url"`
}

// GetSLADomains returns every SLA domain defined in the account.
func GetSLADomains(ctx context.Context, c *client.Client) ([]SLADomain, error) {
	nodes, err := client.Paginate[slaDomainNode](ctx, c, client.QuerySpec{
		OperationName: "SLADomainList",
		Query:         slaDomainListQuery,
		RootField:     "slaDomains",
	})
	if err != nil {
		return nil, err
	}

	domains := make([]SLADomain, 0, len(nodes))
	for _, n := range nodes {
		domains = append(domains, mapSLADomain(n, c.AccountURL()))
	}
	return domains, nil
}

func mapSLADomain(n slaDomainNode, accountURL string) SLADomain {
	d := SLADomain{
		SLADomainID:      n.ID,
		SLADomain:        n.Name,
		Version:          n.Version,
		ProtectedObjects: n.ProtectedObjectCount,
		RetentionLocked:  n.IsRetentionLockedSla,
		URL:              consoleURL(accountURL, slaDomainPath, n.ID),
	}
	if n.BaseFrequency != nil {
		d.FrequencyDuration = n.BaseFrequency.Duration
		d.FrequencyUnit = n.BaseFrequency.Unit
	}
	if len(n.ArchivalSpecs) > 0 {
		d.Archival = true
		if n.ArchivalSpecs[0].StorageSetting != nil {
			d.ArchivalTarget = n.ArchivalSpecs[0].StorageSetting.TargetType
		}
	}
	if len(n.ReplicationSpecsV2) > 0 {
		d.Replication = true
		if n.ReplicationSpecsV2[0].Cluster != nil {
			d.ReplicationTarget = n.ReplicationSpecsV2[0].Cluster.Name
		}
	}
	return d
}
