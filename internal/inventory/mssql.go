package inventory

import (
	"context"
	"time"

	"github.com/joshuastenhouse/rscreporting-sub000/internal/client"
	"github.com/joshuastenhouse/rscreporting-sub000/internal/util"
)

const mssqlDatabaseListQuery = `query MSSQLDatabaseList($first: Int!, $after: String) {
  mssqlDatabases(first: $first, after: $after) {
    edges {
      node {
        id
        name
        recoveryModel
        isRelic
        isLogShippingSecondary
        logBackupFrequencyInSeconds
        logBackupRetentionInHours
        cdmLatestRecoveryPoint: cdmNewestSnapshot { date }
        instance: physicalPath { name }
        cluster { id name }
        effectiveSlaDomain { id name }
        snapshotConnection { count }
      }
    }
    pageInfo { endCursor hasNextPage }
  }
}`

type mssqlDatabaseNode struct {
	ID                          string `json:"id"`
	Name                        string `json:"name"`
	RecoveryModel               string `json:"recoveryModel"`
	IsRelic                     bool   `json:"isRelic"`
	IsLogShippingSecondary      bool   `json:"isLogShippingSecondary"`
	LogBackupFrequencyInSeconds int64  `json:"logBackupFrequencyInSeconds"`
	LogBackupRetentionInHours   int    `json:"logBackupRetentionInHours"`
	CdmLatestRecoveryPoint      *struct {
		Date int64 `json:"date"`
	} `json:"cdmLatestRecoveryPoint"`
	Instance *struct {
		Name string `json:"name"`
	} `json:"instance"`
	Cluster            *nameRef `json:"cluster"`
	EffectiveSlaDomain *nameRef `json:"effectiveSlaDomain"`
	SnapshotConnection *struct {
		Count int `json:"count"`
	} `json:"snapshotConnection"`
}

// MSSQLDatabase is one row of the SQL Server database inventory.
type MSSQLDatabase struct {
	DatabaseID              string     `json:"databaseId"`
	Database                string     `json:"database"`
	Instance                string     `json:"instance"`
	RecoveryModel           string     `json:"recoveryModel"`
	LogBackupFrequencyMins  float64    `json:"logBackupFrequencyMins"`
	LogBackupRetentionHours int        `json:"logBackupRetentionHours"`
	InLogShipping           bool       `json:"inLogShipping"`
	IsRelic                 bool       `json:"isRelic"`
	Cluster                 string     `json:"cluster"`
	ClusterID               string     `json:"clusterId"`
	SLADomain               string     `json:"slaDomain"`
	SLADomainID             string     `json:"slaDomainId"`
	Snapshots               int        `json:"snapshots"`
	LatestRecoveryPoint     *time.Time `json:"latestRecoveryPoint"`
	HoursSinceRecoveryPoint float64    `json:"hoursSinceRecoveryPoint"`
	URL                     string     `json:"url"`
}

// GetMSSQLDatabases returns the SQL Server database inventory, all pages.
func GetMSSQLDatabases(ctx context.Context, c *client.Client) ([]MSSQLDatabase, error) {
	nodes, err := client.Paginate[mssqlDatabaseNode](ctx, c, client.QuerySpec{
		OperationName: "MSSQLDatabaseList",
		Query:         mssqlDatabaseListQuery,
		RootField:     "mssqlDatabases",
	})
	if err != nil {
		return nil, err
	}

	now := c.Now()
	dbs := make([]MSSQLDatabase, 0, len(nodes))
	for _, n := range nodes {
		dbs = append(dbs, mapMSSQLDatabase(n, c.AccountURL(), now))
	}
	return dbs, nil
}

func mapMSSQLDatabase(n mssqlDatabaseNode, accountURL string, now time.Time) MSSQLDatabase {
	db := MSSQLDatabase{
		DatabaseID:              n.ID,
		Database:                n.Name,
		RecoveryModel:           n.RecoveryModel,
		LogBackupRetentionHours: n.LogBackupRetentionInHours,
		InLogShipping:           n.IsLogShippingSecondary,
		IsRelic:                 n.IsRelic,
		URL:                     consoleURL(accountURL, mssqlPath, n.ID),
	}
	if n.LogBackupFrequencyInSeconds > 0 {
		db.LogBackupFrequencyMins = float64(n.LogBackupFrequencyInSeconds) / 60
	}
	if n.Instance != nil {
		db.Instance = n.Instance.Name
	}
	if n.Cluster != nil {
		db.Cluster = n.Cluster.Name
		db.ClusterID = n.Cluster.ID
	}
	if n.EffectiveSlaDomain != nil {
		db.SLADomain = n.EffectiveSlaDomain.Name
		db.SLADomainID = n.EffectiveSlaDomain.ID
	}
	if n.SnapshotConnection != nil {
		db.Snapshots = n.SnapshotConnection.Count
	}
	if n.CdmLatestRecoveryPoint != nil {
		db.LatestRecoveryPoint = util.EpochMillisToUTC(n.CdmLatestRecoveryPoint.Date)
		db.HoursSinceRecoveryPoint = util.HoursSince(db.LatestRecoveryPoint, now)
	}
	return db
}
