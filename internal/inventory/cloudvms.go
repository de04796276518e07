package inventory

import (
	"context"
	"time"

	"github.com/joshuastenhouse/rscreporting-sub000/internal/client"
	"github.com/joshuastenhouse/rscreporting-sub000/internal/util"
)

// CloudVM is a cloud-native VM flattened to one shape regardless of the
// provider it came from.
type CloudVM struct {
	Provider               string     `json:"provider"`
	VMID                   string     `json:"vmId"`
	VM                     string     `json:"vm"`
	Region                 string     `json:"region"`
	InstanceType           string     `json:"instanceType"`
	PowerStatus            string     `json:"powerStatus"`
	AccountName            string     `json:"accountName"`
	SLADomain              string     `json:"slaDomain"`
	SLADomainID            string     `json:"slaDomainId"`
	IsRelic                bool       `json:"isRelic"`
	NewestSnapshot         *time.Time `json:"newestSnapshot"`
	HoursSinceLastSnapshot float64    `json:"hoursSinceLastSnapshot"`
	URL                    string     `json:"url"`
}

const (
	ProviderAWS    = "AWS"
	ProviderAzure  = "Azure"
	ProviderGCP    = "GCP"
	ProviderOracle = "OCI"
)

// cloudVMNode is the shared selection; the per-provider queries alias their
// provider-specific field names onto it.
type cloudVMNode struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Region       string `json:"region"`
	InstanceType string `json:"instanceType"`
	PowerStatus  string `json:"powerStatus"`
	IsRelic      bool   `json:"isRelic"`
	Account      *struct {
		Name string `json:"name"`
	} `json:"account"`
	EffectiveSlaDomain *nameRef `json:"effectiveSlaDomain"`
	NewestSnapshot     *struct {
		Date int64 `json:"date"`
	} `json:"newestSnapshot"`
}

const awsEC2ListQuery = `query AWSEC2List($first: Int!, $after: String) {
  awsNativeEc2Instances(first: $first, after: $after) {
    edges {
      node {
        id
        name: instanceName
        region
        instanceType
        powerStatus: instanceState
        isRelic
        account: awsNativeAccount { name }
        effectiveSlaDomain { id name }
        newestSnapshot { date }
      }
    }
    pageInfo { endCursor hasNextPage }
  }
}`

const azureVMListQuery = `query AzureVMList($first: Int!, $after: String) {
  azureNativeVirtualMachines(first: $first, after: $after) {
    edges {
      node {
        id
        name
        region
        instanceType: sizeType
        powerStatus: vmAppConsistentSpecs
        isRelic
        account: resourceGroup { name }
        effectiveSlaDomain { id name }
        newestSnapshot { date }
      }
    }
    pageInfo { endCursor hasNextPage }
  }
}`

const gcpInstanceListQuery = `query GCPInstanceList($first: Int!, $after: String) {
  gcpNativeGceInstances(first: $first, after: $after) {
    edges {
      node {
        id
        name
        region: zone
        instanceType: machineType
        powerStatus: instanceNativeState
        isRelic
        account: gcpNativeProject { name }
        effectiveSlaDomain { id name }
        newestSnapshot { date }
      }
    }
    pageInfo { endCursor hasNextPage }
  }
}`

const ociInstanceListQuery = `query OCIInstanceList($first: Int!, $after: String) {
  oracleCloudVmInstances(first: $first, after: $after) {
    edges {
      node {
        id
        name
        region
        instanceType: shape
        powerStatus: lifecycleState
        isRelic
        account: compartment { name }
        effectiveSlaDomain { id name }
        newestSnapshot { date }
      }
    }
    pageInfo { endCursor hasNextPage }
  }
}`

// GetCloudVMs merges the four cloud-native VM inventories into one
// collection. Queries run in sequence, one per provider.
func GetCloudVMs(ctx context.Context, c *client.Client) ([]CloudVM, error) {
	specs := []struct {
		provider string
		spec     client.QuerySpec
	}{
		{ProviderAWS, client.QuerySpec{OperationName: "AWSEC2List", Query: awsEC2ListQuery, RootField: "awsNativeEc2Instances"}},
		{ProviderAzure, client.QuerySpec{OperationName: "AzureVMList", Query: azureVMListQuery, RootField: "azureNativeVirtualMachines"}},
		{ProviderGCP, client.QuerySpec{OperationName: "GCPInstanceList", Query: gcpInstanceListQuery, RootField: "gcpNativeGceInstances"}},
		{ProviderOracle, client.QuerySpec{OperationName: "OCIInstanceList", Query: ociInstanceListQuery, RootField: "oracleCloudVmInstances"}},
	}

	now := c.Now()
	var vms []CloudVM
	for _, s := range specs {
		nodes, err := client.Paginate[cloudVMNode](ctx, c, s.spec)
		if err != nil {
			return nil, err
		}
		for _, n := range nodes {
			vms = append(vms, mapCloudVM(n, s.provider, c.AccountURL(), now))
		}
	}
	return vms, nil
}

func mapCloudVM(n cloudVMNode, provider, accountURL string, now time.Time) CloudVM {
	vm := CloudVM{
		Provider:     provider,
		VMID:         n.ID,
		VM:           n.Name,
		Region:       n.Region,
		InstanceType: n.InstanceType,
		PowerStatus:  n.PowerStatus,
		IsRelic:      n.IsRelic,
		URL:          consoleURL(accountURL, objectPath, n.ID),
	}
	if n.Account != nil {
		vm.AccountName = n.Account.Name
	}
	if n.EffectiveSlaDomain != nil {
		vm.SLADomain = n.EffectiveSlaDomain.Name
		vm.SLADomainID = n.EffectiveSlaDomain.ID
	}
	if n.NewestSnapshot != nil {
		vm.NewestSnapshot = util.EpochMillisToUTC(n.NewestSnapshot.Date)
		vm.HoursSinceLastSnapshot = util.HoursSince(vm.NewestSnapshot, now)
	}
	return vm
}
