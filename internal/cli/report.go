package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/thoas/go-funk"
	"sigs.k8s.io/yaml"

	"github.com/joshuastenhouse/rscreporting-sub000/internal/client"
	"github.com/joshuastenhouse/rscreporting-sub000/internal/inventory"
	"github.com/joshuastenhouse/rscreporting-sub000/internal/report"
)

type ReportOptions struct {
	GlobalOptions

	Output              string
	DaysToReport        int
	BackupWindowEndHour int
	SkipDays            int
}

func DefaultReportOptions() *ReportOptions {
	return &ReportOptions{
		GlobalOptions:       DefaultGlobalOptions(),
		DaysToReport:        7,
		BackupWindowEndHour: 10,
	}
}

func NewCmdReport() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Run a cross-inventory report.",
	}
	cmd.AddCommand(newSuccessRateCmd())
	return cmd
}

func newSuccessRateCmd() *cobra.Command {
	o := DefaultReportOptions()
	cmd := &cobra.Command{
		Use:   "success-rate",
		Short: "Compute the per-day backup success rate across the protected-object inventory.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Validate(args); err != nil {
				return err
			}
			return o.Run(cmd.Context(), args)
		},
		SilenceUsage: true,
	}
	o.Bind(cmd.Flags())
	return cmd
}

func (o *ReportOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)

	fs.StringVarP(&o.Output, "output", "o", o.Output, fmt.Sprintf("Output format. One of: (%s).", strings.Join(legalOutputTypes, ", ")))
	fs.IntVar(&o.DaysToReport, "days", o.DaysToReport, "Number of day windows to report")
	fs.IntVar(&o.BackupWindowEndHour, "window-end-hour", o.BackupWindowEndHour, "UTC hour each backup day ends at")
	fs.IntVar(&o.SkipDays, "skip-days", o.SkipDays, "Shift the newest window back by this many days")
}

func (o *ReportOptions) Validate(args []string) error {
	if o.DaysToReport <= 0 {
		return fmt.Errorf("--days must be positive")
	}
	if o.BackupWindowEndHour < 0 || o.BackupWindowEndHour > 23 {
		return fmt.Errorf("--window-end-hour must be between 0 and 23")
	}
	if len(o.Output) > 0 && !funk.Contains(legalOutputTypes, o.Output) {
		return fmt.Errorf("output format must be one of %s", strings.Join(legalOutputTypes, ", "))
	}
	return nil
}

func (o *ReportOptions) Run(ctx context.Context, args []string) error {
	config, err := loadClientConfig(o.ConfigFilePath)
	if err != nil {
		return fmt.Errorf("reading client config: %w", err)
	}
	c, err := client.NewFromConfig(config)
	if err != nil {
		return fmt.Errorf("creating client: %w", err)
	}
	if err := c.Connect(ctx); err != nil {
		return fmt.Errorf("connecting: %w", err)
	}

	cache := inventory.NewClientCache(c)
	rep, err := report.BuildSuccessRate(ctx, c, cache, report.Options{
		DaysToReport:        o.DaysToReport,
		BackupWindowEndHour: o.BackupWindowEndHour,
		SkipDays:            o.SkipDays,
	})
	if err != nil {
		return fmt.Errorf("building success-rate report: %w", err)
	}

	switch o.Output {
	case jsonFormat:
		marshalled, err := json.Marshal(rep)
		if err != nil {
			return fmt.Errorf("marshalling report: %w", err)
		}
		fmt.Printf("%s\n", string(marshalled))
		return nil
	case yamlFormat:
		marshalled, err := yaml.Marshal(rep)
		if err != nil {
			return fmt.Errorf("marshalling report: %w", err)
		}
		fmt.Printf("%s\n", string(marshalled))
		return nil
	default:
		printSuccessRateReport(rep)
		return nil
	}
}

func printSuccessRateReport(rep *report.SuccessRateReport) {
	w := tabwriter.NewWriter(os.Stdout, 0, 8, 1, '\t', 0)

	fmt.Fprintf(w, "Backup success rate %s to %s\n\n",
		rep.From.Format("2006-01-02 15:04"), rep.To.Format("2006-01-02 15:04"))

	fmt.Fprintln(w, "DAY\tOBSERVED\tEXPECTED\tSUCCESS RATE")
	for _, d := range rep.PerDay {
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\n", d.Dimension, d.Observed, d.Expected, d.SuccessRate)
	}

	fmt.Fprintln(w, "\nOBJECT TYPE\tOBJECTS\tOBSERVED\tEXPECTED\tSUCCESS RATE")
	for _, d := range rep.PerType {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%s\n", d.Dimension, d.Objects, d.Observed, d.Expected, d.SuccessRate)
	}

	fmt.Fprintln(w, "\nSLA DOMAIN\tOBJECTS\tOBSERVED\tEXPECTED\tSUCCESS RATE")
	for _, d := range rep.PerSLA {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%s\n", d.Dimension, d.Objects, d.Observed, d.Expected, d.SuccessRate)
	}

	fmt.Fprintln(w, "\nCLUSTER\tOBJECTS\tOBSERVED\tEXPECTED\tSUCCESS RATE")
	for _, d := range rep.PerCluster {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%s\n", d.Dimension, d.Objects, d.Observed, d.Expected, d.SuccessRate)
	}

	fmt.Fprintf(w, "\nOverall: %s (%d of %d object-days across %d objects)\n",
		rep.Overall.SuccessRate, rep.Overall.Observed, rep.Overall.Expected, rep.Overall.Objects)
	w.Flush()
}
