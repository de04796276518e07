package inventory

import (
	"context"
	"time"

	"github.com/joshuastenhouse/rscreporting-sub000/internal/client"
	"github.com/joshuastenhouse/rscreporting-sub000/internal/util"
)

const filesetListQuery = `query FilesetList($first: Int!, $after: String) {
  filesetTemplates(first: $first, after: $after) {
    edges {
      node {
        id
        name
        osType
        includes
        excludes
        exceptions
        descendantConnection { count }
        cluster { id name }
        effectiveSlaDomain { id name }
        newestSnapshot { date }
      }
    }
    pageInfo { endCursor hasNextPage }
  }
}`

type filesetNode struct {
	ID                   string   `json:"id"`
	Name                 string   `json:"name"`
	OsType               string   `json:"osType"`
	Includes             []string `json:"includes"`
	Excludes             []string `json:"excludes"`
	Exceptions           []string `json:"exceptions"`
	DescendantConnection *struct {
		Count int `json:"count"`
	} `json:"descendantConnection"`
	Cluster            *nameRef `json:"cluster"`
	EffectiveSlaDomain *nameRef `json:"effectiveSlaDomain"`
	NewestSnapshot     *struct {
		Date int64 `json:"date"`
	} `json:"newestSnapshot"`
}

// Fileset is one row of the fileset-template inventory.
type Fileset struct {
	FilesetID              string     `json:"filesetId"`
	Fileset                string     `json:"fileset"`
	OSType                 string     `json:"osType"`
	Includes               []string   `json:"includes"`
	Excludes               []string   `json:"excludes"`
	Exceptions             []string   `json:"exceptions"`
	Hosts                  int        `json:"hosts"`
	Cluster                string     `json:"cluster"`
	ClusterID              string     `json:"clusterId"`
	SLADomain              string     `json:"slaDomain"`
	SLADomainID            string     `json:"slaDomainId"`
	NewestSnapshot         *time.Time `json:"newestSnapshot"`
	HoursSinceLastSnapshot float64    `json:"hoursSinceLastSnapshot"`
	URL                    string     `json:"url"`
}

// GetFilesets returns the fileset-template inventory, all pages.
func GetFilesets(ctx context.Context, c *client.Client) ([]Fileset, error) {
	nodes, err := client.Paginate[filesetNode](ctx, c, client.QuerySpec{
		OperationName: "FilesetList",
		Query:         filesetListQuery,
		RootField:     "filesetTemplates",
	})
	if err != nil {
		return nil, err
	}

	now := c.Now()
	filesets := make([]Fileset, 0, len(nodes))
	for _, n := range nodes {
		filesets = append(filesets, mapFileset(n, c.AccountURL(), now))
	}
	return filesets, nil
}

func mapFileset(n filesetNode, accountURL string, now time.Time) Fileset {
	f := Fileset{
		FilesetID:  n.ID,
		Fileset:    n.Name,
		OSType:     n.OsType,
		Includes:   n.Includes,
		Excludes:   n.Excludes,
		Exceptions: n.Exceptions,
		URL:        consoleURL(accountURL, filesetPath, n.ID),
	}
	if n.DescendantConnection != nil {
		f.Hosts = n.DescendantConnection.Count
	}
	if n.Cluster != nil {
		f.Cluster = n.Cluster.Name
		f.ClusterID = n.Cluster.ID
	}
	if n.EffectiveSlaDomain != nil {
		f.SLADomain = n.EffectiveSlaDomain.Name
		f.SLADomainID = n.EffectiveSlaDomain.ID
	}
	if n.NewestSnapshot != nil {
		f.NewestSnapshot = util.EpochMillisToUTC(n.NewestSnapshot.Date)
		f.HoursSinceLastSnapshot = util.HoursSince(f.NewestSnapshot, now)
	}
	return f
}
