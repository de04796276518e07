package report

import (
	"sort"
	"time"

	"github.com/joshuastenhouse/rscreporting-sub000/internal/inventory"
)

// ObjectResult is one protected object's pass/fail record across the
// reporting windows.
type ObjectResult struct {
	ObjectID          string `json:"objectId"`
	Object            string `json:"object"`
	Type              string `json:"type"`
	SLADomain         string `json:"slaDomain"`
	Cluster           string `json:"cluster"`
	DaysWithBackup    int    `json:"daysWithBackup"`
	DaysWithoutBackup int    `json:"daysWithoutBackup"`
	SuccessRate       string `json:"successRate"`
}

// DimensionSummary aggregates pass/fail days across one dimension value
// (an object type, an SLA domain, a cluster, or a calendar day).
type DimensionSummary struct {
	Dimension   string `json:"dimension"`
	Objects     int    `json:"objects"`
	Observed    int    `json:"observed"`
	Expected    int    `json:"expected"`
	SuccessRate string `json:"successRate"`
}

// SuccessRateReport is the full backup-success-rate computation output.
type SuccessRateReport struct {
	From       time.Time          `json:"from"`
	To         time.Time          `json:"to"`
	PerObject  []ObjectResult     `json:"perObject"`
	PerDay     []DimensionSummary `json:"perDay"`
	PerType    []DimensionSummary `json:"perType"`
	PerSLA     []DimensionSummary `json:"perSlaDomain"`
	PerCluster []DimensionSummary `json:"perCluster"`
	Overall    DimensionSummary   `json:"overall"`
}

type tally struct {
	objects  int
	observed int
	expected int
}

type tallyMap map[string]*tally

func (m tallyMap) at(key string) *tally {
	t, ok := m[key]
	if !ok {
		t = &tally{}
		m[key] = t
	}
	return t
}

func (m tallyMap) summarize() []DimensionSummary {
	out := make([]DimensionSummary, 0, len(m))
	for key, t := range m {
		out = append(out, DimensionSummary{
			Dimension:   key,
			Objects:     t.objects,
			Observed:    t.observed,
			Expected:    t.expected,
			SuccessRate: FormatPercent(t.observed, t.expected),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Dimension < out[j].Dimension })
	return out
}

// SuccessRate joins the protected-object inventory against per-object
// snapshot history over the given windows. An object passes a day iff at
// least one snapshot timestamp falls inside that day's half-open range.
// Relics and unprotected objects carry no expectation and are excluded.
// The whole inventory and history are held in memory for the computation.
func SuccessRate(objects []inventory.Object, snapshotsByObject map[string][]inventory.Snapshot, windows []Window) *SuccessRateReport {
	if len(windows) == 0 {
		return &SuccessRateReport{}
	}

	rep := &SuccessRateReport{
		From: windows[0].Start,
		To:   windows[len(windows)-1].End,
	}

	byDay := tallyMap{}
	byType := tallyMap{}
	bySLA := tallyMap{}
	byCluster := tallyMap{}
	overall := &tally{}

	for _, obj := range objects {
		if obj.IsRelic || !obj.Protected {
			continue
		}

		result := ObjectResult{
			ObjectID:  obj.ObjectID,
			Object:    obj.Object,
			Type:      obj.Type,
			SLADomain: obj.SLADomain,
			Cluster:   obj.Cluster,
		}
		snapshots := snapshotsByObject[obj.ObjectID]

		for _, w := range windows {
			found := false
			for _, s := range snapshots {
				if w.Contains(s.Taken) {
					found = true
					break
				}
			}
			if found {
				result.DaysWithBackup++
			} else {
				result.DaysWithoutBackup++
			}

			day := byDay.at(w.Day().Format("2006-01-02"))
			day.objects++
			day.expected++
			if found {
				day.observed++
			}
		}

		result.SuccessRate = FormatPercent(result.DaysWithBackup, len(windows))
		rep.PerObject = append(rep.PerObject, result)

		for _, dim := range []struct {
			key string
			m   tallyMap
		}{
			{obj.Type, byType},
			{obj.SLADomain, bySLA},
			{obj.Cluster, byCluster},
		} {
			t := dim.m.at(dim.key)
			t.objects++
			t.observed += result.DaysWithBackup
			t.expected += len(windows)
		}
		overall.objects++
		overall.observed += result.DaysWithBackup
		overall.expected += len(windows)
	}

	rep.PerDay = byDay.summarize()
	rep.PerType = byType.summarize()
	rep.PerSLA = bySLA.summarize()
	rep.PerCluster = byCluster.summarize()
	rep.Overall = DimensionSummary{
		Dimension:   "overall",
		Objects:     overall.objects,
		Observed:    overall.observed,
		Expected:    overall.expected,
		SuccessRate: FormatPercent(overall.observed, overall.expected),
	}
	return rep
}
