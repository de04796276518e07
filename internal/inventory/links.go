package inventory

import "fmt"

// Web-console path segments per object type. The console expects the raw
// object ID appended; IDs are opaque and used as-is.
const (
	objectPath    = "inventory_hierarchy"
	clusterPath   = "clusters"
	vsphereVMPath = "inventory_hierarchy/vsphere/vms"
	ahvVMPath     = "inventory_hierarchy/nutanix/vms"
	mssqlPath     = "inventory_hierarchy/mssql/databases"
	filesetPath   = "inventory_hierarchy/filesets"
	m365Path      = "inventory_hierarchy/o365/orgs"
	slaDomainPath = "sla_domains"
	eventPath     = "events"
	livemountPath = "live_mounts"
)

func consoleURL(accountURL, typePath, id string) string {
	return fmt.Sprintf("%s/%s/%s", accountURL, typePath, id)
}
