package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/joshuastenhouse/rscreporting-sub000/internal/client"
	"github.com/joshuastenhouse/rscreporting-sub000/internal/config"
)

type LoginOptions struct {
	GlobalOptions

	ServerURL    string
	ClientID     string
	ClientSecret string
}

func DefaultLoginOptions() *LoginOptions {
	return &LoginOptions{
		GlobalOptions: DefaultGlobalOptions(),
	}
}

func NewCmdLogin() *cobra.Command {
	o := DefaultLoginOptions()
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Verify service-account credentials and write the client config file.",
		Args:  cobra.NoArgs,
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

func (o *LoginOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)

	fs.StringVarP(&o.ServerURL, "url", "u", "", "Account URL, e.g. https://myaccount.my.rubrik.com (default $RSC_URL)")
	fs.StringVar(&o.ClientID, "client-id", "", "Service account client id (default $RSC_CLIENT_ID)")
	fs.StringVar(&o.ClientSecret, "client-secret", "", "Service account client secret (default $RSC_CLIENT_SECRET)")
}

// Complete fills anything the flags left unset from the RSC_* environment,
// so a populated environment can log in without any flags.
func (o *LoginOptions) Complete(cmd *cobra.Command, args []string) error {
	env, err := config.New()
	if err != nil {
		// a malformed environment never blocks explicit flags
		return nil
	}
	if o.ServerURL == "" {
		o.ServerURL = env.Service.AccountURL
	}
	if o.ClientID == "" {
		o.ClientID = env.Service.ClientID
	}
	if o.ClientSecret == "" {
		o.ClientSecret = env.Service.ClientSecret
	}
	return nil
}

func (o *LoginOptions) Validate(args []string) error {
	if o.ServerURL == "" || o.ClientID == "" || o.ClientSecret == "" {
		return fmt.Errorf("--url, --client-id and --client-secret are required, by flag or RSC_URL, RSC_CLIENT_ID and RSC_CLIENT_SECRET")
	}
	return nil
}

func (o *LoginOptions) Run(ctx context.Context, args []string) error {
	c := client.New(o.ServerURL, o.ClientID, o.ClientSecret)
	if err := c.Connect(ctx); err != nil {
		return fmt.Errorf("verifying credentials: %w", err)
	}

	if err := client.WriteConfig(o.ConfigFilePath, o.ServerURL, o.ClientID, o.ClientSecret); err != nil {
		return fmt.Errorf("writing client config: %w", err)
	}
	fmt.Printf("Login succeeded, config written to %s\n", o.ConfigFilePath)
	return nil
}
