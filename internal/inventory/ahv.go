package inventory

import (
	"context"
	"time"

	"github.com/joshuastenhouse/rscreporting-sub000/internal/client"
	"github.com/joshuastenhouse/rscreporting-sub000/internal/util"
)

const ahvVMListQuery = `query AHVVMList($first: Int!, $after: String) {
  nutanixVms(first: $first, after: $after) {
    edges {
      node {
        id
        name
        osType
        isRelic
        agentStatus { connectionStatus }
        nutanixCluster { id name }
        effectiveSlaDomain { id name }
        primaryClusterLocation { id name }
        vmDisks { label sizeInBytes }
        snapshotConnection { count }
        newestSnapshot { date }
      }
    }
    pageInfo { endCursor hasNextPage }
  }
}`

type ahvVMNode struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	OsType      string `json:"osType"`
	IsRelic     bool   `json:"isRelic"`
	AgentStatus *struct {
		ConnectionStatus string `json:"connectionStatus"`
	} `json:"agentStatus"`
	NutanixCluster         *nameRef `json:"nutanixCluster"`
	EffectiveSlaDomain     *nameRef `json:"effectiveSlaDomain"`
	PrimaryClusterLocation *nameRef `json:"primaryClusterLocation"`
	// vmDisks is known to come back empty on some API releases; it maps
	// like any other nullable field.
	VMDisks []struct {
		Label       string `json:"label"`
		SizeInBytes int64  `json:"sizeInBytes"`
	} `json:"vmDisks"`
	SnapshotConnection *struct {
		Count int `json:"count"`
	} `json:"snapshotConnection"`
	NewestSnapshot *struct {
		Date int64 `json:"date"`
	} `json:"newestSnapshot"`
}

// AHVVM is one row of the Nutanix AHV VM inventory.
type AHVVM struct {
	VMID                   string     `json:"vmId"`
	VM                     string     `json:"vm"`
	OSType                 string     `json:"osType"`
	AgentStatus            string     `json:"agentStatus"`
	AHVCluster             string     `json:"ahvCluster"`
	RubrikCluster          string     `json:"rubrikCluster"`
	RubrikClusterID        string     `json:"rubrikClusterId"`
	SLADomain              string     `json:"slaDomain"`
	SLADomainID            string     `json:"slaDomainId"`
	IsRelic                bool       `json:"isRelic"`
	Disks                  int        `json:"disks"`
	DiskGB                 float64    `json:"diskGB"`
	Snapshots              int        `json:"snapshots"`
	NewestSnapshot         *time.Time `json:"newestSnapshot"`
	HoursSinceLastSnapshot float64    `json:"hoursSinceLastSnapshot"`
	URL                    string     `json:"url"`
}

// GetAHVVMs returns the Nutanix AHV VM inventory, all pages.
func GetAHVVMs(ctx context.Context, c *client.Client) ([]AHVVM, error) {
	nodes, err := client.Paginate[ahvVMNode](ctx, c, client.QuerySpec{
		OperationName: "AHVVMList",
		Query:         ahvVMListQuery,
		RootField:     "nutanixVms",
	})
	if err != nil {
		return nil, err
	}

	now := c.Now()
	vms := make([]AHVVM, 0, len(nodes))
	for _, n := range nodes {
		vms = append(vms, mapAHVVM(n, c.AccountURL(), now))
	}
	return vms, nil
}

func mapAHVVM(n ahvVMNode, accountURL string, now time.Time) AHVVM {
	vm := AHVVM{
		VMID:    n.ID,
		VM:      n.Name,
		OSType:  n.OsType,
		IsRelic: n.IsRelic,
		Disks:   len(n.VMDisks),
		URL:     consoleURL(accountURL, ahvVMPath, n.ID),
	}
	var diskBytes int64
	for _, d := range n.VMDisks {
		diskBytes += d.SizeInBytes
	}
	vm.DiskGB = util.BytesToGB(diskBytes)
	if n.AgentStatus != nil {
		vm.AgentStatus = n.AgentStatus.ConnectionStatus
	}
	if n.NutanixCluster != nil {
		vm.AHVCluster = n.NutanixCluster.Name
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
	return vm
}
