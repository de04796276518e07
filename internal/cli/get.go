package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/thoas/go-funk"
	"sigs.k8s.io/yaml"

	"github.com/joshuastenhouse/rscreporting-sub000/internal/client"
	"github.com/joshuastenhouse/rscreporting-sub000/internal/inventory"
)

const (
	jsonFormat = "json"
	yamlFormat = "yaml"
)

var legalOutputTypes = []string{jsonFormat, yamlFormat}

type GetOptions struct {
	GlobalOptions

	Output         string
	PageSize       int
	EventLookBackH int
}

func DefaultGetOptions() *GetOptions {
	return &GetOptions{
		GlobalOptions:  DefaultGlobalOptions(),
		EventLookBackH: 24,
	}
}

func NewCmdGet() *cobra.Command {
	o := DefaultGetOptions()
	cmd := &cobra.Command{
		Use:   "get TYPE",
		Short: "Display one inventory collection.",
		Long:  "Fetch and display one inventory collection: " + strings.Join(funk.Values(pluralKinds).([]string), ", ") + ".",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Complete(cmd, args); err != nil {
				return err
			}
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

func (o *GetOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)

	fs.StringVarP(&o.Output, "output", "o", o.Output, fmt.Sprintf("Output format. One of: (%s).", strings.Join(legalOutputTypes, ", ")))
	fs.IntVar(&o.PageSize, "limit", 0, "Requested page size per API call")
	fs.IntVar(&o.EventLookBackH, "event-hours", o.EventLookBackH, "Look-back hours for the event listing")
}

func (o *GetOptions) Complete(cmd *cobra.Command, args []string) error {
	return o.GlobalOptions.Complete(cmd, args)
}

func (o *GetOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}
	if _, err := parseAndValidateKind(args[0]); err != nil {
		return err
	}
	if len(o.Output) > 0 && !funk.Contains(legalOutputTypes, o.Output) {
		return fmt.Errorf("output format must be one of %s", strings.Join(legalOutputTypes, ", "))
	}
	return nil
}

func (o *GetOptions) Run(ctx context.Context, args []string) error {
	config, err := loadClientConfig(o.ConfigFilePath)
	if err != nil {
		return fmt.Errorf("reading client config: %w", err)
	}
	if o.PageSize > 0 {
		config.Service.PageSize = o.PageSize
	}
	c, err := client.NewFromConfig(config)
	if err != nil {
		return fmt.Errorf("creating client: %w", err)
	}
	if err := c.Connect(ctx); err != nil {
		return fmt.Errorf("connecting: %w", err)
	}

	kind, err := parseAndValidateKind(args[0])
	if err != nil {
		return err
	}

	var response any
	switch kind {
	case ObjectKind:
		response, err = inventory.GetObjects(ctx, c)
	case ClusterKind:
		response, err = inventory.GetClusters(ctx, c)
	case SLADomainKind:
		response, err = inventory.GetSLADomains(ctx, c)
	case VSphereVMKind:
		response, err = inventory.GetVSphereVMs(ctx, c)
	case AHVVMKind:
		response, err = inventory.GetAHVVMs(ctx, c)
	case CloudVMKind:
		response, err = inventory.GetCloudVMs(ctx, c)
	case MSSQLKind:
		response, err = inventory.GetMSSQLDatabases(ctx, c)
	case FilesetKind:
		response, err = inventory.GetFilesets(ctx, c)
	case LiveMountKind:
		response, err = inventory.GetLiveMounts(ctx, c)
	case M365OrgKind:
		response, err = inventory.GetM365Orgs(ctx, c)
	case EventKind:
		response, err = inventory.GetEvents(ctx, c, time.Duration(o.EventLookBackH)*time.Hour)
	default:
		return fmt.Errorf("unsupported resource kind: %s", kind)
	}
	if err != nil {
		return fmt.Errorf("listing %s: %w", pluralKinds[kind], err)
	}

	switch o.Output {
	case jsonFormat:
		marshalled, err := json.Marshal(response)
		if err != nil {
			return fmt.Errorf("marshalling resource: %w", err)
		}
		fmt.Printf("%s\n", string(marshalled))
		return nil
	case yamlFormat:
		marshalled, err := yaml.Marshal(response)
		if err != nil {
			return fmt.Errorf("marshalling resource: %w", err)
		}
		fmt.Printf("%s\n", string(marshalled))
		return nil
	default:
		return printTable(response, kind)
	}
}

func printTable(response any, kind string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 8, 1, '\t', 0)
	switch kind {
	case ObjectKind:
		printObjectsTable(w, response.([]inventory.Object))
	case ClusterKind:
		printClustersTable(w, response.([]inventory.Cluster))
	case SLADomainKind:
		printSLADomainsTable(w, response.([]inventory.SLADomain))
	case VSphereVMKind:
		printVSphereVMsTable(w, response.([]inventory.VSphereVM))
	case AHVVMKind:
		printAHVVMsTable(w, response.([]inventory.AHVVM))
	case CloudVMKind:
		printCloudVMsTable(w, response.([]inventory.CloudVM))
	case MSSQLKind:
		printMSSQLTable(w, response.([]inventory.MSSQLDatabase))
	case FilesetKind:
		printFilesetsTable(w, response.([]inventory.Fileset))
	case LiveMountKind:
		printLiveMountsTable(w, response.([]inventory.LiveMount))
	case M365OrgKind:
		printM365OrgsTable(w, response.([]inventory.M365Org))
	case EventKind:
		printEventsTable(w, response.([]inventory.Event))
	default:
		return fmt.Errorf("unknown resource type %s", kind)
	}
	w.Flush()
	return nil
}

func printObjectsTable(w *tabwriter.Writer, objects []inventory.Object) {
	fmt.Fprintln(w, "NAME\tTYPE\tCLUSTER\tSLA DOMAIN\tCOMPLIANCE\tLAST SNAPSHOT (H)\tUSED GB")
	for _, o := range objects {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%.2f\t%.2f\n",
			o.Object, o.Type, o.Cluster, o.SLADomain, o.ComplianceStatus, o.HoursSinceLastSnapshot, o.UsedGB)
	}
}

func printClustersTable(w *tabwriter.Writer, clusters []inventory.Cluster) {
	fmt.Fprintln(w, "NAME\tVERSION\tSTATUS\tNODES\tUSED GB\tTOTAL GB\tUSED %")
	for _, c := range clusters {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.2f\t%.2f\t%.2f\n",
			c.Cluster, c.Version, c.Status, c.Nodes, c.UsedGB, c.TotalGB, c.UsedPercent)
	}
}

func printSLADomainsTable(w *tabwriter.Writer, domains []inventory.SLADomain) {
	fmt.Fprintln(w, "NAME\tOBJECTS\tFREQUENCY\tARCHIVAL\tREPLICATION\tRETENTION LOCK")
	for _, d := range domains {
		fmt.Fprintf(w, "%s\t%d\t%d %s\t%t\t%t\t%t\n",
			d.SLADomain, d.ProtectedObjects, d.FrequencyDuration, d.FrequencyUnit, d.Archival, d.Replication, d.RetentionLocked)
	}
}

func printVSphereVMsTable(w *tabwriter.Writer, vms []inventory.VSphereVM) {
	fmt.Fprintln(w, "NAME\tPOWER\tCLUSTER\tSLA DOMAIN\tSNAPSHOTS\tLAST SNAPSHOT (H)\tRELIC")
	for _, vm := range vms {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%.2f\t%t\n",
			vm.VM, vm.PowerStatus, vm.RubrikCluster, vm.SLADomain, vm.Snapshots, vm.HoursSinceLastSnapshot, vm.IsRelic)
	}
}

func printAHVVMsTable(w *tabwriter.Writer, vms []inventory.AHVVM) {
	fmt.Fprintln(w, "NAME\tOS\tCLUSTER\tSLA DOMAIN\tSNAPSHOTS\tLAST SNAPSHOT (H)\tRELIC")
	for _, vm := range vms {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%.2f\t%t\n",
			vm.VM, vm.OSType, vm.RubrikCluster, vm.SLADomain, vm.Snapshots, vm.HoursSinceLastSnapshot, vm.IsRelic)
	}
}

func printCloudVMsTable(w *tabwriter.Writer, vms []inventory.CloudVM) {
	fmt.Fprintln(w, "NAME\tPROVIDER\tREGION\tTYPE\tSLA DOMAIN\tLAST SNAPSHOT (H)")
	for _, vm := range vms {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%.2f\n",
			vm.VM, vm.Provider, vm.Region, vm.InstanceType, vm.SLADomain, vm.HoursSinceLastSnapshot)
	}
}

func printMSSQLTable(w *tabwriter.Writer, dbs []inventory.MSSQLDatabase) {
	fmt.Fprintln(w, "NAME\tINSTANCE\tRECOVERY MODEL\tSLA DOMAIN\tRECOVERY POINT (H)\tRELIC")
	for _, db := range dbs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.2f\t%t\n",
			db.Database, db.Instance, db.RecoveryModel, db.SLADomain, db.HoursSinceRecoveryPoint, db.IsRelic)
	}
}

func printFilesetsTable(w *tabwriter.Writer, filesets []inventory.Fileset) {
	fmt.Fprintln(w, "NAME\tOS\tHOSTS\tCLUSTER\tSLA DOMAIN\tLAST SNAPSHOT (H)")
	for _, f := range filesets {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%.2f\n",
			f.Fileset, f.OSType, f.Hosts, f.Cluster, f.SLADomain, f.HoursSinceLastSnapshot)
	}
}

func printLiveMountsTable(w *tabwriter.Writer, mounts []inventory.LiveMount) {
	fmt.Fprintln(w, "NAME\tSOURCE TYPE\tSOURCE\tSTATUS\tCLUSTER\tDAYS MOUNTED")
	for _, m := range mounts {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%.2f\n",
			m.Name, m.SourceType, m.SourceObject, m.Status, m.Cluster, m.DaysMounted)
	}
}

func printM365OrgsTable(w *tabwriter.Writer, orgs []inventory.M365Org) {
	fmt.Fprintln(w, "NAME\tSTATUS\tSLA DOMAIN\tUSERS\tSITES\tTEAMS")
	for _, org := range orgs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\n",
			org.Org, org.Status, org.SLADomain, org.Users, org.Sites, org.Teams)
	}
}

func printEventsTable(w *tabwriter.Writer, events []inventory.Event) {
	fmt.Fprintln(w, "OBJECT\tTYPE\tSTATUS\tSEVERITY\tCLUSTER\tDURATION (H)")
	for _, e := range events {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%.2f\n",
			e.Object, e.Type, e.Status, e.Severity, e.Cluster, e.DurationHours)
	}
}
