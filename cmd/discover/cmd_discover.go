package discover

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Callable-APIs/infra/internal/config"
	"github.com/Callable-APIs/infra/internal/utils"
)

var (
	region     string
	outputDir  string
	configPath string
)

func NewDiscoverCmd() *cobra.Command {
	discoverCmd := &cobra.Command{
		Use:           "discover",
		Short:         "Discover AWS resources and snapshot them to JSON",
		Long:          "Scans the AWS account for EC2, VPC, Route53, S3 and IAM resources and writes a timestamped JSON snapshot for later Terraform generation",
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PreRunE:       preRunDiscover,
		RunE:          runDiscover,
	}

	optionalFlags := pflag.NewFlagSet("optional", pflag.ExitOnError)
	optionalFlags.SortFlags = false

	optionalFlags.StringVar(&region, "region", "", "The AWS region to scan (defaults to the configured region)")
	optionalFlags.StringVar(&outputDir, "output-dir", "", "Directory for discovery snapshots (defaults to the configured directory)")
	optionalFlags.StringVar(&configPath, "config", "config.yaml", "Path to the configuration file")

	discoverCmd.Flags().AddFlagSet(optionalFlags)

	discoverCmd.SetUsageFunc(func(c *cobra.Command) error {
		fmt.Printf("%s\n\n", c.Short)

		usage := optionalFlags.FlagUsages()
		if usage != "" {
			fmt.Printf("Optional Flags:\n%s\n", usage)
		}

		fmt.Println("All flags can be provided via environment variables (uppercase, with underscores).")

		return nil
	})

	return discoverCmd
}

func preRunDiscover(cmd *cobra.Command, args []string) error {
	if err := utils.BindEnvToFlags(cmd); err != nil {
		return err
	}

	return nil
}

func runDiscover(cmd *cobra.Command, args []string) error {
	opts, err := parseDiscoverOpts()
	if err != nil {
		return fmt.Errorf("failed to parse discover opts: %v", err)
	}

	discoverer, err := NewDiscoverer(cmd.Context(), *opts)
	if err != nil {
		return fmt.Errorf("failed to initialize discovery: %v", err)
	}

	if err := discoverer.Run(cmd.Context()); err != nil {
		return fmt.Errorf("failed to discover: %v", err)
	}

	return nil
}

func parseDiscoverOpts() (*DiscovererOpts, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	resolvedRegion := cfg.AWS.Region
	if region != "" {
		resolvedRegion = region
	}

	resolvedOutputDir := cfg.Discovery.OutputDir
	if outputDir != "" {
		resolvedOutputDir = outputDir
	}

	return &DiscovererOpts{
		Region:    resolvedRegion,
		OutputDir: resolvedOutputDir,
	}, nil
}
