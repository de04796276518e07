package inventory

import (
	"context"

	"github.com/joshuastenhouse/rscreporting-sub000/internal/client"
)

const m365OrgListQuery = `query M365OrgList($first: Int!, $after: String) {
  o365Orgs(first: $first, after: $after) {
    edges {
      node {
        id
        name
        status
        effectiveSlaDomain { id name }
        userDescendantCount: childConnection(filter: {field: O365_USER}) { count }
        siteDescendantCount: childConnection(filter: {field: O365_SITE}) { count }
        teamsDescendantCount: childConnection(filter: {field: O365_TEAM}) { count }
      }
    }
    pageInfo { endCursor hasNextPage }
  }
}`

type m365OrgNode struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Status             string   `json:"status"`
	EffectiveSlaDomain *nameRef `json:"effectiveSlaDomain"`
	UserCount          *struct {
		Count int `json:"count"`
	} `json:"userDescendantCount"`
	SiteCount *struct {
		Count int `json:"count"`
	} `json:"siteDescendantCount"`
	TeamsCount *struct {
		Count int `json:"count"`
	} `json:"teamsDescendantCount"`
}

// M365Org is one row of the Microsoft 365 organization inventory.
type M365Org struct {
	OrgID       string `json:"orgId"`
	Org         string `json:"org"`
	Status      string `json:"status"`
	SLADomain   string `json:"slaDomain"`
	SLADomainID string `json:"slaDomainId"`
	Users       int    `json:"users"`
	Sites       int    `json:"sites"`
	Teams       int    `json:"teams"`
	URL         string `json:"url"`
}

// GetM365Orgs returns the Microsoft 365 organization inventory.
func GetM365Orgs(ctx context.Context, c *client.Client) ([]M365Org, error) {
	nodes, err := client.Paginate[m365OrgNode](ctx, c, client.QuerySpec{
		OperationName: "M365OrgList",
		Query:         m365OrgListQuery,
		RootField:     "o365Orgs",
	})
	if err != nil {
		return nil, err
	}

	orgs := make([]M365Org, 0, len(nodes))
	for _, n := range nodes {
		orgs = append(orgs, mapM365Org(n, c.AccountURL()))
	}
	return orgs, nil
}

func mapM365Org(n m365OrgNode, accountURL string) M365Org {
	org := M365Org{
		OrgID:  n.ID,
		Org:    n.Name,
		Status: n.Status,
		URL:    consoleURL(accountURL, m365Path, n.ID),
	}
	if n.EffectiveSlaDomain != nil {
		org.SLADomain = n.EffectiveSlaDomain.Name
		org.SLADomainID = n.EffectiveSlaDomain.ID
	}
	if n.UserCount != nil {
		org.Users = n.UserCount.Count
	}
	if n.SiteCount != nil {
		org.Sites = n.SiteCount.Count
	}
	if n.TeamsCount != nil {
		org.Teams = n.TeamsCount.Count
	}
	return org
}
