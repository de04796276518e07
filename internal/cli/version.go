package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuastenhouse/rscreporting-sub000/pkg/version"
)

type VersionOptions struct{}

func NewCmdVersion() *cobra.Command {
	o := &VersionOptions{}
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.Run(cmd.Context(), args)
		},
	}
	return cmd
}

func (o *VersionOptions) Run(ctx context.Context, args []string) error {
	fmt.Printf("rscreport version: %s\n", version.Get().String())
	return nil
}
