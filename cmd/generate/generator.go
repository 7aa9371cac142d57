package generate

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Callable-APIs/infra/internal/naming"
	"github.com/Callable-APIs/infra/internal/services/hcl"
	"github.com/Callable-APIs/infra/internal/services/markdown"
	"github.com/Callable-APIs/infra/internal/snapshot"
)

type GeneratorOpts struct {
	DiscoveryDir  string
	OutputDir     string
	DefaultRegion string
}

type Generator struct {
	store         *snapshot.Store
	outputDir     string
	defaultRegion string
}

func NewGenerator(opts GeneratorOpts) *Generator {
	return &Generator{
		store:         snapshot.NewStore(opts.DiscoveryDir),
		outputDir:     opts.OutputDir,
		defaultRegion: opts.DefaultRegion,
	}
}

// Run loads the newest snapshot per region, renders the whole bundle in
// memory, and only then writes files. A missing snapshot fails before
// anything is created on disk.
func (g *Generator) Run() error {
	slog.Info("🚀 Generating Terraform configuration", "output_dir", g.outputDir)

	snapshots, err := g.store.LoadLatest(g.defaultRegion)
	if err != nil {
		return err
	}

	service := hcl.NewBundleService(naming.NewResolver())
	bundle, err := service.Build(snapshots)
	if err != nil {
		return fmt.Errorf("❌ Failed to build Terraform bundle: %v", err)
	}

	if err := g.writeBundle(bundle); err != nil {
		return err
	}

	slog.Info("✅ Terraform configuration generated", "output_dir", g.outputDir)

	return g.printNextSteps()
}

func (g *Generator) writeBundle(bundle *hcl.Bundle) error {
	for _, dir := range []string{g.outputDir, filepath.Join(g.outputDir, "modules"), filepath.Join(g.outputDir, "environments")} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("❌ Failed to create output directory %s: %v", dir, err)
		}
	}

	files := map[string]string{
		"main.tf":      bundle.MainTf,
		"providers.tf": bundle.ProvidersTf,
		"variables.tf": bundle.VariablesTf,
		"outputs.tf":   bundle.OutputsTf,
	}
	for alias, content := range bundle.RegionFiles {
		files[alias+".tf"] = content
	}
	for name, content := range bundle.ModuleFiles {
		files[filepath.Join("modules", name)] = content
	}

	for name, content := range files {
		path := filepath.Join(g.outputDir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return fmt.Errorf("❌ Failed to write %s: %v", path, err)
		}
	}

	return nil
}

func (g *Generator) printNextSteps() error {
	md := markdown.New().
		AddHeading("Terraform Configuration Generated", 1).
		AddParagraph(fmt.Sprintf("Generated files in `%s/`.", g.outputDir)).
		AddList([]string{
			"Review the generated Terraform files",
			fmt.Sprintf("Run 'terraform init' in the %s/ directory", g.outputDir),
			"Run 'terraform plan' to see what would change",
			"Run 'terraform apply' to apply the configuration",
		})

	return md.Print()
}
