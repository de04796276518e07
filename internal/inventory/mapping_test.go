package inventory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const testAccountURL = "https://myaccount.example.com"

var testNow = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

func TestMapObject(t *testing.T) {
	tests := []struct {
		name     string
		node     objectNode
		expected Object
	}{
		{
			name: "fully populated node",
			node: objectNode{
				ID:               "obj-1",
				Name:             "sql-prod-01",
				ObjectType:       "Mssql",
				Location:         "dc1",
				ProtectionStatus: "PROTECTED",
				ComplianceStatus: "IN_COMPLIANCE",
				Cluster:          &nameRef{ID: "cl-1", Name: "cluster-a"},
				EffectiveSlaDomain: &nameRef{
					ID:   "sla-1",
					Name: "Gold",
				},
				TotalSnapshots: &struct {
					Count int `json:"count"`
				}{Count: 42},
				LatestSnapshot: &struct {
					Date int64 `json:"date"`
				}{Date: testNow.Add(-time.Hour).UnixMilli()},
				PhysicalBytes: 1_000_000_000,
				UsedBytes:     500_000_000,
			},
			expected: Object{
				ObjectID:               "obj-1",
				Object:                 "sql-prod-01",
				Type:                   "Mssql",
				Location:               "dc1",
				Cluster:                "cluster-a",
				ClusterID:              "cl-1",
				SLADomain:              "Gold",
				SLADomainID:            "sla-1",
				ProtectionStatus:       "PROTECTED",
				ComplianceStatus:       "IN_COMPLIANCE",
				Protected:              true,
				Snapshots:              42,
				HoursSinceLastSnapshot: 1.0,
				PhysicalGB:             1.00,
				UsedGB:                 0.50,
				URL:                    "https://myaccount.example.com/inventory_hierarchy/obj-1",
			},
		},
		{
			name: "node missing every optional sub-object maps to zero fields",
			node: objectNode{
				ID:               "obj-2",
				Name:             "orphan",
				ProtectionStatus: "UNPROTECTED",
			},
			expected: Object{
				ObjectID:         "obj-2",
				Object:           "orphan",
				ProtectionStatus: "UNPROTECTED",
				URL:              "https://myaccount.example.com/inventory_hierarchy/obj-2",
			},
		},
		{
			name: "relic status sets the relic flag and clears protected",
			node: objectNode{
				ID:               "obj-3",
				Name:             "gone",
				ProtectionStatus: "RELIC",
			},
			expected: Object{
				ObjectID:         "obj-3",
				Object:           "gone",
				ProtectionStatus: "RELIC",
				IsRelic:          true,
				URL:              "https://myaccount.example.com/inventory_hierarchy/obj-3",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapObject(tt.node, testAccountURL, testNow)
			// LastSnapshot compared separately; the table holds derived fields.
			if tt.node.LatestSnapshot != nil {
				assert.NotNil(t, got.LastSnapshot)
				tt.expected.LastSnapshot = got.LastSnapshot
			}
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestMapObjectIdempotent(t *testing.T) {
	node := objectNode{
		ID:   "obj-1",
		Name: "vm-1",
		LatestSnapshot: &struct {
			Date int64 `json:"date"`
		}{Date: testNow.Add(-3 * time.Hour).UnixMilli()},
	}

	first := mapObject(node, testAccountURL, testNow)
	second := mapObject(node, testAccountURL, testNow)
	assert.Equal(t, first, second)
	assert.Equal(t, 3.0, first.HoursSinceLastSnapshot)
}

func TestMapVSphereVMScriptFlags(t *testing.T) {
	tests := []struct {
		name     string
		node     vsphereVMNode
		wantPre  bool
		wantPost bool
	}{
		{
			name: "both scripts configured",
			node: vsphereVMNode{
				PreBackupScript:  &scriptRef{ScriptPath: "/opt/pre.sh"},
				PostBackupScript: &scriptRef{ScriptPath: "/opt/post.sh"},
			},
			wantPre:  true,
			wantPost: true,
		},
		{
			name: "empty script path does not count as configured",
			node: vsphereVMNode{
				PreBackupScript: &scriptRef{ScriptPath: ""},
			},
		},
		{
			name: "no script sub-objects",
			node: vsphereVMNode{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapVSphereVM(tt.node, testAccountURL, testNow)
			assert.Equal(t, tt.wantPre, got.HasPreBackupScript)
			assert.Equal(t, tt.wantPost, got.HasPostBackupScript)
		})
	}
}

func TestMapVSphereVMNullSafety(t *testing.T) {
	got := mapVSphereVM(vsphereVMNode{ID: "vm-1", Name: "bare"}, testAccountURL, testNow)
	assert.Equal(t, "", got.SLADomain)
	assert.Equal(t, "", got.RubrikCluster)
	assert.Nil(t, got.NewestSnapshot)
	assert.Equal(t, 0.0, got.HoursSinceLastSnapshot)
}

func TestMapCloudVM(t *testing.T) {
	node := cloudVMNode{
		ID:           "i-1234",
		Name:         "web-01",
		Region:       "us-east-1",
		InstanceType: "m5.large",
		PowerStatus:  "RUNNING",
		EffectiveSlaDomain: &nameRef{
			ID:   "sla-1",
			Name: "Bronze",
		},
	}

	got := mapCloudVM(node, ProviderAWS, testAccountURL, testNow)
	assert.Equal(t, "AWS", got.Provider)
	assert.Equal(t, "Bronze", got.SLADomain)
	assert.Equal(t, "https://myaccount.example.com/inventory_hierarchy/i-1234", got.URL)
}

func TestMapSLADomain(t *testing.T) {
	node := slaDomainNode{
		ID:                   "sla-1",
		Name:                 "Gold",
		ProtectedObjectCount: 120,
		ArchivalSpecs: []struct {
			StorageSetting *struct {
				TargetType string `json:"targetType"`
			} `json:"storageSetting"`
		}{
			{StorageSetting: &struct {
				TargetType string `json:"targetType"`
			}{TargetType: "S3"}},
		},
	}

	got := mapSLADomain(node, testAccountURL)
	assert.True(t, got.Archival)
	assert.Equal(t, "S3", got.ArchivalTarget)
	assert.False(t, got.Replication)
	assert.Equal(t, 120, got.ProtectedObjects)
}

func TestMapLiveMountAge(t *testing.T) {
	node := liveMountNode{
		ID:        "mount-1",
		Name:      "restored-vm",
		Status:    "MOUNTED",
		MountTime: testNow.Add(-48 * time.Hour).UnixMilli(),
	}

	got := mapLiveMount(node, MountTypeVSphereVM, testAccountURL, testNow)
	assert.Equal(t, 2.0, got.DaysMounted)
	assert.Equal(t, "VSphereVM", got.SourceType)
}

func TestMapEventDuration(t *testing.T) {
	start := testNow.Add(-90 * time.Minute)
	node := eventNode{
		ActivitySeriesID: "evt-1",
		StartTime:        start.UnixMilli(),
		LastUpdated:      testNow.UnixMilli(),
		ActivityConnection: &struct {
			Nodes []struct {
				Message string `json:"message"`
			} `json:"nodes"`
		}{
			Nodes: []struct {
				Message string `json:"message"`
			}{{Message: "Backup succeeded"}},
		},
	}

	got := mapEvent(node, testAccountURL)
	assert.Equal(t, 1.5, got.DurationHours)
	assert.Equal(t, "Backup succeeded", got.Message)
}

func TestMapSnapshotCloudNativeFlag(t *testing.T) {
	withLocation := mapSnapshot(snapshotNode{ID: "s1", CloudNativeLocationID: "loc-1"}, "obj-1")
	assert.True(t, withLocation.CloudNative)

	withoutLocation := mapSnapshot(snapshotNode{ID: "s2"}, "obj-1")
	assert.False(t, withoutLocation.CloudNative)
	assert.Nil(t, withoutLocation.Taken)
}
