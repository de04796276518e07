package cli

import (
	"fmt"
)

const (
	ObjectKind    = "object"
	ClusterKind   = "cluster"
	SLADomainKind = "sladomain"
	VSphereVMKind = "vspherevm"
	AHVVMKind     = "ahvvm"
	CloudVMKind   = "cloudvm"
	MSSQLKind     = "mssqldb"
	FilesetKind   = "fileset"
	LiveMountKind = "livemount"
	M365OrgKind   = "m365org"
	EventKind     = "event"
)

var pluralKinds = map[string]string{
	ObjectKind:    "objects",
	ClusterKind:   "clusters",
	SLADomainKind: "sladomains",
	VSphereVMKind: "vspherevms",
	AHVVMKind:     "ahvvms",
	CloudVMKind:   "cloudvms",
	MSSQLKind:     "mssqldbs",
	FilesetKind:   "filesets",
	LiveMountKind: "livemounts",
	M365OrgKind:   "m365orgs",
	EventKind:     "events",
}

func parseAndValidateKind(arg string) (string, error) {
	kind := singular(arg)
	if _, ok := pluralKinds[kind]; !ok {
		return "", fmt.Errorf("invalid resource kind: %s", arg)
	}
	return kind, nil
}

func singular(kind string) string {
	for singular, plural := range pluralKinds {
		if kind == plural {
			return singular
		}
	}
	return kind
}
