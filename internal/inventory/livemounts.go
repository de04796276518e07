package inventory

import (
	"context"
	"time"

	"github.com/joshuastenhouse/rscreporting-sub000/internal/client"
	"github.com/joshuastenhouse/rscreporting-sub000/internal/util"
)

// LiveMount is one active mount regardless of its source type. The five
// mount endpoints flatten to this shape.
type LiveMount struct {
	MountID      string     `json:"mountId"`
	SourceType   string     `json:"sourceType"`
	Name         string     `json:"name"`
	SourceObject string     `json:"sourceObject"`
	Status       string     `json:"status"`
	Cluster      string     `json:"cluster"`
	ClusterID    string     `json:"clusterId"`
	MountedAt    *time.Time `json:"mountedAt"`
	DaysMounted  float64    `json:"daysMounted"`
	URL          string     `json:"url"`
}

const (
	MountTypeVSphereVM   = "VSphereVM"
	MountTypeMSSQL       = "MSSQLDatabase"
	MountTypeAHVVM       = "AHVVM"
	MountTypeVolumeGroup = "VolumeGroup"
	MountTypeFileset     = "Fileset"
)

type liveMountNode struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Status       string `json:"status"`
	MountTime    int64  `json:"mountTime"`
	SourceObject *struct {
		Name string `json:"name"`
	} `json:"sourceObject"`
	Cluster *nameRef `json:"cluster"`
}

const vsphereLiveMountQuery = `query VSphereLiveMountList($first: Int!, $after: String) {
  vSphereLiveMounts(first: $first, after: $after) {
    edges {
      node {
        id
        name: newVmName
        status: mountStatus
        mountTime: mountTimestamp
        sourceObject: sourceVm { name }
        cluster { id name }
      }
    }
    pageInfo { endCursor hasNextPage }
  }
}`

const mssqlLiveMountQuery = `query MSSQLLiveMountList($first: Int!, $after: String) {
  mssqlDatabaseLiveMounts(first: $first, after: $after) {
    edges {
      node {
        id
        name: mountedDatabaseName
        status: mountStatus
        mountTime: creationDate
        sourceObject: sourceDatabase { name }
        cluster { id name }
      }
    }
    pageInfo { endCursor hasNextPage }
  }
}`

const ahvLiveMountQuery = `query AHVLiveMountList($first: Int!, $after: String) {
  nutanixMounts(first: $first, after: $after) {
    edges {
      node {
        id
        name
        status: mountStatus
        mountTime: mountedDate
        sourceObject: sourceVm { name }
        cluster { id name }
      }
    }
    pageInfo { endCursor hasNextPage }
  }
}`

const volumeGroupMountQuery = `query VolumeGroupMountList($first: Int!, $after: String) {
  volumeGroupMounts(first: $first, after: $after) {
    edges {
      node {
        id
        name
        status: mountStatus
        mountTime: mountedDate
        sourceObject: sourceVolumeGroup { name }
        cluster { id name }
      }
    }
    pageInfo { endCursor hasNextPage }
  }
}`

const filesetExportQuery = `query FilesetExportList($first: Int!, $after: String) {
  filesetExports(first: $first, after: $after) {
    edges {
      node {
        id
        name: exportName
        status: exportStatus
        mountTime: exportedDate
        sourceObject: sourceFileset { name }
        cluster { id name }
      }
    }
    pageInfo { endCursor hasNextPage }
  }
}`

// GetLiveMounts merges the five mount inventories into one collection.
// Queries run in sequence, one per source type.
func GetLiveMounts(ctx context.Context, c *client.Client) ([]LiveMount, error) {
	specs := []struct {
		sourceType string
		spec       client.QuerySpec
	}{
		{MountTypeVSphereVM, client.QuerySpec{OperationName: "VSphereLiveMountList", Query: vsphereLiveMountQuery, RootField: "vSphereLiveMounts"}},
		{MountTypeMSSQL, client.QuerySpec{OperationName: "MSSQLLiveMountList", Query: mssqlLiveMountQuery, RootField: "mssqlDatabaseLiveMounts"}},
		{MountTypeAHVVM, client.QuerySpec{OperationName: "AHVLiveMountList", Query: ahvLiveMountQuery, RootField: "nutanixMounts"}},
		{MountTypeVolumeGroup, client.QuerySpec{OperationName: "VolumeGroupMountList", Query: volumeGroupMountQuery, RootField: "volumeGroupMounts"}},
		{MountTypeFileset, client.QuerySpec{OperationName: "FilesetExportList", Query: filesetExportQuery, RootField: "filesetExports"}},
	}

	now := c.Now()
	var mounts []LiveMount
	for _, s := range specs {
		nodes, err := client.Paginate[liveMountNode](ctx, c, s.spec)
		if err != nil {
			return nil, err
		}
		for _, n := range nodes {
			mounts = append(mounts, mapLiveMount(n, s.sourceType, c.AccountURL(), now))
		}
	}
	return mounts, nil
}

func mapLiveMount(n liveMountNode, sourceType, accountURL string, now time.Time) LiveMount {
	m := LiveMount{
		MountID:    n.ID,
		SourceType: sourceType,
		Name:       n.Name,
		Status:     n.Status,
		URL:        consoleURL(accountURL, livemountPath, n.ID),
	}
	if n.SourceObject != nil {
		m.SourceObject = n.SourceObject.Name
	}
	if n.Cluster != nil {
		m.Cluster = n.Cluster.Name
		m.ClusterID = n.Cluster.ID
	}
	m.MountedAt = util.EpochMillisToUTC(n.MountTime)
	m.DaysMounted = util.DaysSince(m.MountedAt, now)
	return m
}
