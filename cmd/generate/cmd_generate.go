package generate

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Callable-APIs/infra/internal/config"
	"github.com/Callable-APIs/infra/internal/utils"
)

var (
	discoveryDir string
	outputDir    string
	region       string
	configPath   string
)

func NewGenerateCmd() *cobra.Command {
	generateCmd := &cobra.Command{
		Use:           "generate",
		Short:         "Generate Terraform configuration from the latest discovery snapshot",
		Long:          "Reads the most recent discovery snapshot per region and generates a Terraform configuration bundle with import blocks for every supported resource",
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PreRunE:       preRunGenerate,
		RunE:          runGenerate,
	}

	optionalFlags := pflag.NewFlagSet("optional", pflag.ExitOnError)
	optionalFlags.SortFlags = false

	optionalFlags.StringVar(&discoveryDir, "discovery-dir", "", "Directory holding discovery snapshots (defaults to the configured directory)")
	optionalFlags.StringVar(&outputDir, "output-dir", "", "Directory for the generated Terraform bundle (defaults to the configured directory)")
	optionalFlags.StringVar(&region, "region", "", "Region to assume when a snapshot's region cannot be inferred")
	optionalFlags.StringVar(&configPath, "config", "config.yaml", "Path to the configuration file")

	generateCmd.Flags().AddFlagSet(optionalFlags)

	generateCmd.SetUsageFunc(func(c *cobra.Command) error {
		fmt.Printf("%s\n\n", c.Short)

		usage := optionalFlags.FlagUsages()
		if usage != "" {
			fmt.Printf("Optional Flags:\n%s\n", usage)
		}

		fmt.Println("All flags can be provided via environment variables (uppercase, with underscores).")

		return nil
	})

	return generateCmd
}

func preRunGenerate(cmd *cobra.Command, args []string) error {
	if err := utils.BindEnvToFlags(cmd); err != nil {
		return err
	}

	return nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	opts, err := parseGenerateOpts()
	if err != nil {
		return fmt.Errorf("failed to parse generate opts: %v", err)
	}

	generator := NewGenerator(*opts)

	if err := generator.Run(); err != nil {
		return fmt.Errorf("failed to generate: %v", err)
	}

	return nil
}

func parseGenerateOpts() (*GeneratorOpts, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	resolvedDiscoveryDir := cfg.Discovery.OutputDir
	if discoveryDir != "" {
		resolvedDiscoveryDir = discoveryDir
	}

	resolvedOutputDir := cfg.Terraform.OutputDir
	if outputDir != "" {
		resolvedOutputDir = outputDir
	}

	resolvedRegion := cfg.AWS.Region
	if region != "" {
		resolvedRegion = region
	}

	return &GeneratorOpts{
		DiscoveryDir:  resolvedDiscoveryDir,
		OutputDir:     resolvedOutputDir,
		DefaultRegion: resolvedRegion,
	}, nil
}
