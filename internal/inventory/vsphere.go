package inventory

import (
	"context"
	"time"

	"github.com/joshuastenhouse/rscreporting-sub000/internal/client"
	"github.com/joshuastenhouse/rscreporting-sub000/internal/util"
)

const vsphereVMListQuery = `query VSphereVMList($first: Int!, $after: String) {
  vSphereVmNewConnection(first: $first, after: $after) {
    edges {
      node {
        id
        name
        powerStatus
        guestOsName
        vmwareToolsInstalled
        isRelic
        agentStatus { agentStatus }
        cluster { id name }
        effectiveSlaDomain { id name }
        primaryClusterLocation { id name }
        preBackupScript { scriptPath }
        postBackupScript { scriptPath }
        snapshotConnection { count }
        newestSnapshot { date }
        oldestSnapshot { date }
      }
    }
    pageInfo { endCursor hasNextPage }
  }
}`

type scriptRef struct {
	ScriptPath string `json:"scriptPath"`
}

type vsphereVMNode struct {
	ID                   string `json:"id"`
	Name                 string `json:"name"`
	PowerStatus          string `json:"powerStatus"`
	GuestOsName          string `json:"guestOsName"`
	VMwareToolsInstalled bool   `json:"vmwareToolsInstalled"`
	IsRelic              bool   `json:"isRelic"`
	AgentStatus          *struct {
		AgentStatus string `json:"agentStatus"`
	} `json:"agentStatus"`
	Cluster                *nameRef   `json:"cluster"`
	EffectiveSlaDomain     *nameRef   `json:"effectiveSlaDomain"`
	PrimaryClusterLocation *nameRef   `json:"primaryClusterLocation"`
	PreBackupScript        *scriptRef `json:"preBackupScript"`
	PostBackupScript       *scriptRef `json:"postBackupScript"`
	SnapshotConnection     *struct {
		Count int `json:"count"`
	} `json:"snapshotConnection"`
	NewestSnapshot *struct {
		Date int64 `json:"date"`
	} `json:"newestSnapshot"`
	OldestSnapshot *struct {
		Date int64 `json:"date"`
	} `json:"oldestSnapshot"`
}

// VSphereVM is one row of the vSphere VM inventory.
type VSphereVM struct {
	VMID                   string     `json:"vmId"`
	VM                     string     `json:"vm"`
	PowerStatus            string     `json:"powerStatus"`
	GuestOS                string     `json:"guestOs"`
	ToolsInstalled         bool       `json:"toolsInstalled"`
	AgentStatus            string     `json:"agentStatus"`
	VSphereCluster         string     `json:"vsphereCluster"`
	RubrikCluster          string     `json:"rubrikCluster"`
	RubrikClusterID        string     `json:"rubrikClusterId"`
	SLADomain              string     `json:"slaDomain"`
	SLADomainID            string     `json:"slaDomainId"`
	IsRelic                bool       `json:"isRelic"`
	HasPreBackupScript     bool       `json:"hasPreBackupScript"`
	HasPostBackupScript    bool       `json:"hasPostBackupScript"`
	Snapshots              int        `json:"snapshots"`
	NewestSnapshot         *time.Time `json:"newestSnapshot"`
	OldestSnapshot         *time.Time `json:"oldestSnapshot"`
	HoursSinceLastSnapshot float64    `json:"hoursSinceLastSnapshot"`
	URL                    string     `json:"url"`
}

// GetVSphereVMs returns the vSphere VM inventory, all pages.
func GetVSphereVMs(ctx context.Context, c *client.Client) ([]VSphereVM, error) {
	nodes, err := client.Paginate[vsphereVMNode](ctx, c, client.QuerySpec{
		OperationName: "VSphereVMList",
		Query:         vsphereVMListQuery,
		RootField:     "vSphereVmNewConnection",
	})
	if err != nil {
		return nil, err
	}

	now := c.Now()
	vms := make([]VSphereVM, 0, len(nodes))
	for _, n := range nodes {
		vms = append(vms, mapVSphereVM(n, c.AccountURL(), now))
	}
	return vms, nil
}

func mapVSphereVM(n vsphereVMNode, accountURL string, now time.Time) VSphereVM {
	vm := VSphereVM{
		VMID:                n.ID,
		VM:                  n.Name,
		PowerStatus:         n.PowerStatus,
		GuestOS:             n.GuestOsName,
		ToolsInstalled:      n.VMwareToolsInstalled,
		IsRelic:             n.IsRelic,
		HasPreBackupScript:  n.PreBackupScript != nil && n.PreBackupScript.ScriptPath != "",
		HasPostBackupScript: n.PostBackupScript != nil && n.PostBackupScript.ScriptPath != "",
		URL:                 consoleURL(accountURL, vsphereVMPath, n.ID),
	}
	if n.AgentStatus != nil {
		vm.AgentStatus = n.AgentStatus.AgentStatus
	}
	if n.Cluster != nil {
		vm.VSphereCluster = n.Cluster.Name
	}
	if n.PrimaryClusterLocation != nil {
		vm.RubrikCluster = n.PrimaryClusterLocation.Name
		vm.RubrikClusterID = n.PrimaryClusterLocation.ID
	}
	if n.EffectiveSlaDomain != nil {
		vm.SLADomain = n.EffectiveSlaDomain.Name
		vm.SLADomainID = n.EffectiveSlaDomain.ID
	}
	if n.SnapshotConnection != nil {
		vm.Snapshots = n.SnapshotConnection.Count
	}
	if n.NewestSnapshot != nil {
		vm.NewestSnapshot = util.EpochMillisToUTC(n.NewestSnapshot.Date)
		vm.HoursSinceLastSnapshot = util.HoursSince(vm.NewestSnapshot, now)
	}
	if n.OldestSnapshot != nil {
		vm.OldestSnapshot = util.EpochMillisToUTC(n.OldestSnapshot.Date)
	}
	return vm
}
