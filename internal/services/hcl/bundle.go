// Package hcl assembles a complete Terraform configuration bundle from
// discovered resources.
package hcl

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"

	"github.com/Callable-APIs/infra/internal/naming"
	hclaws "github.com/Callable-APIs/infra/internal/services/hcl/aws"
	"github.com/Callable-APIs/infra/internal/snapshot"
	"github.com/Callable-APIs/infra/internal/types"
	"github.com/Callable-APIs/infra/internal/utils"
)

// Bundle holds every generated file, rendered fully in memory before anything
// touches disk.
type Bundle struct {
	MainTf      string
	ProvidersTf string
	VariablesTf string
	OutputsTf   string
	RegionFiles map[string]string
	ModuleFiles map[string]string
}

type vpcOutput struct {
	name string
}

// BundleService renders a Bundle from region-grouped snapshots. A service
// instance covers one generation run: its name resolver accumulates assigned
// names across regions so the whole bundle stays collision free.
type BundleService struct {
	resolver *naming.Resolver
	now      func() time.Time
}

func NewBundleService(resolver *naming.Resolver) *BundleService {
	return &BundleService{
		resolver: resolver,
		now:      time.Now,
	}
}

// Build renders the full bundle. Regions are processed in sorted order and
// kinds in discovery order, so repeated runs over the same snapshots produce
// identical output.
func (s *BundleService) Build(snapshots map[string]types.Snapshot) (*Bundle, error) {
	bundle := &Bundle{
		RegionFiles: map[string]string{},
		ModuleFiles: map[string]string{},
	}

	regions := snapshot.Regions(snapshots)
	vpcOutputs := []vpcOutput{}

	for _, region := range regions {
		alias := snapshot.RegionAlias(region)
		content, regionVpcs := s.renderRegionFile(region, alias, snapshots[region])
		bundle.RegionFiles[alias] = content
		vpcOutputs = append(vpcOutputs, regionVpcs...)
	}

	bundle.MainTf = s.renderMainTf()
	bundle.ProvidersTf = renderProvidersTf(regions)
	bundle.VariablesTf = renderVariablesTf()
	bundle.OutputsTf = s.renderOutputsTf(vpcOutputs)
	bundle.ModuleFiles["example.tf"] = renderExampleModule()

	return bundle, nil
}

func (s *BundleService) renderRegionFile(region, alias string, snap types.Snapshot) (string, []vpcOutput) {
	importsFile := hclwrite.NewEmptyFile()
	resourcesFile := hclwrite.NewEmptyFile()
	vpcOutputs := []vpcOutput{}
	skipped := map[types.ResourceKind]int{}

	for _, kind := range types.AllKinds() {
		for _, resource := range snap[kind] {
			if kind == types.KindEC2Instances && isTerminalInstance(resource) {
				continue
			}

			blocks, supported := s.renderResource(kind, resource, alias)
			if !supported {
				skipped[kind]++
				continue
			}

			if len(blocks) == 0 {
				continue
			}

			// The first block is the imported resource itself; companion
			// resources are declared but not imported.
			labels := blocks[0].Labels()
			importsFile.Body().AppendBlock(hclaws.GenerateImportBlock(labels[0], labels[1], resource.ID))
			importsFile.Body().AppendNewline()

			for _, block := range blocks {
				resourcesFile.Body().AppendBlock(block)
				resourcesFile.Body().AppendNewline()
			}

			if kind == types.KindVPCs {
				vpcOutputs = append(vpcOutputs, vpcOutput{name: labels[1]})
			}
		}
	}

	for kind, count := range skipped {
		slog.Warn("⚠️ Skipping resources with no Terraform mapping", "kind", string(kind), "count", count, "region", region)
	}

	var builder strings.Builder
	fmt.Fprintf(&builder, "# Resources discovered in %s\n", region)
	builder.WriteString("# Import blocks bind existing infrastructure to the declarations below.\n\n")
	builder.Write(importsFile.Bytes())
	builder.Write(resourcesFile.Bytes())

	return builder.String(), vpcOutputs
}

// renderResource maps one discovered resource onto its Terraform blocks. The
// switch is exhaustive over ResourceKind; kinds without a Terraform mapping
// report unsupported and the caller skips them. The name is resolved only
// once the kind is known to render, so skipped resources never consume a
// symbolic name.
func (s *BundleService) renderResource(kind types.ResourceKind, resource types.DiscoveredResource, alias string) ([]*hclwrite.Block, bool) {
	var build func(name string) []*hclwrite.Block

	switch kind {
	case types.KindEC2Instances:
		build = func(name string) []*hclwrite.Block {
			return []*hclwrite.Block{hclaws.GenerateEc2InstanceResource(name, resource, alias)}
		}
	case types.KindVPCs:
		build = func(name string) []*hclwrite.Block {
			return []*hclwrite.Block{hclaws.GenerateVpcResource(name, resource, alias)}
		}
	case types.KindSubnets:
		build = func(name string) []*hclwrite.Block {
			return []*hclwrite.Block{hclaws.GenerateSubnetResource(name, resource, alias)}
		}
	case types.KindSecurityGroups:
		build = func(name string) []*hclwrite.Block {
			return []*hclwrite.Block{hclaws.GenerateSecurityGroupResource(name, resource, alias)}
		}
	case types.KindRouteTables:
		build = func(name string) []*hclwrite.Block {
			return []*hclwrite.Block{hclaws.GenerateRouteTableResource(name, resource, alias)}
		}
	case types.KindInternetGateways:
		build = func(name string) []*hclwrite.Block {
			return []*hclwrite.Block{hclaws.GenerateInternetGatewayResource(name, resource, alias)}
		}
	case types.KindNATGateways:
		build = func(name string) []*hclwrite.Block {
			return []*hclwrite.Block{hclaws.GenerateNatGatewayResource(name, resource, alias)}
		}
	case types.KindElasticIPs:
		build = func(name string) []*hclwrite.Block {
			return []*hclwrite.Block{hclaws.GenerateEipResource(name, resource, alias)}
		}
	case types.KindVolumes:
		build = func(name string) []*hclwrite.Block {
			return []*hclwrite.Block{hclaws.GenerateEbsVolumeResource(name, resource, alias)}
		}
	case types.KindRoute53Zones:
		build = func(name string) []*hclwrite.Block {
			return []*hclwrite.Block{hclaws.GenerateRoute53ZoneResource(name, resource, alias)}
		}
	case types.KindRoute53Records:
		build = func(name string) []*hclwrite.Block {
			return []*hclwrite.Block{hclaws.GenerateRoute53RecordResource(name, resource, alias)}
		}
	case types.KindS3Buckets:
		build = func(name string) []*hclwrite.Block {
			return hclaws.GenerateS3BucketResources(name, resource, alias)
		}
	case types.KindIAMRoles:
		build = func(name string) []*hclwrite.Block {
			return hclaws.GenerateIamRoleResources(name, resource, alias)
		}
	case types.KindIAMPolicies:
		build = func(name string) []*hclwrite.Block {
			return []*hclwrite.Block{hclaws.GenerateIamPolicyResource(name, resource, alias)}
		}
	case types.KindSnapshots:
		// EBS snapshots are captured for inventory but have no import story.
		return nil, false
	default:
		return nil, false
	}

	return build(s.resolver.Resolve(resource.ID, resource.Tags)), true
}

// isTerminalInstance reports whether an instance was already terminating when
// discovered. Older snapshots can contain them; they are not importable.
func isTerminalInstance(resource types.DiscoveredResource) bool {
	state := resource.Map("State")
	if state == nil {
		return false
	}
	name, _ := state["Name"].(string)
	return name == "terminated" || name == "shutting-down"
}

func (s *BundleService) renderMainTf() string {
	file := hclwrite.NewEmptyFile()

	terraformBody := file.Body().AppendNewBlock("terraform", nil).Body()
	terraformBody.SetAttributeValue("required_version", cty.StringVal(">= 1.5"))

	providerName, providerTokens := hclaws.GenerateRequiredProviderTokens()
	requiredProviders := terraformBody.AppendNewBlock("required_providers", nil).Body()
	requiredProviders.SetAttributeRaw(providerName, providerTokens)

	var builder strings.Builder
	builder.WriteString("# Main Terraform configuration\n")
	fmt.Fprintf(&builder, "# Generated on %s\n", s.now().UTC().Format("2006-01-02 15:04:05 UTC"))
	builder.WriteString("#\n")
	builder.WriteString("# This configuration uses import blocks to adopt existing resources.\n")
	builder.WriteString("# Run 'terraform plan' to verify it matches your current infrastructure.\n\n")
	builder.Write(file.Bytes())

	return builder.String()
}

func renderProvidersTf(regions []string) string {
	file := hclwrite.NewEmptyFile()
	body := file.Body()

	body.AppendBlock(hclaws.GenerateDefaultProviderBlock())
	body.AppendNewline()

	for _, region := range regions {
		body.AppendBlock(hclaws.GenerateAliasedProviderBlock(region, snapshot.RegionAlias(region)))
		body.AppendNewline()
	}

	return "# Provider configuration\n\n" + string(file.Bytes())
}

func renderVariablesTf() string {
	file := hclwrite.NewEmptyFile()
	body := file.Body()

	appendVariable(body, "aws_region", "AWS region", "string", cty.StringVal("us-east-1"))
	appendVariable(body, "project_name", "Name of the project", "string", cty.StringVal("aws-infrastructure"))
	appendVariable(body, "environment", "Environment name", "string", cty.StringVal("production"))
	appendVariable(body, "common_tags", "Common tags to apply to all resources", "map(string)", cty.ObjectVal(map[string]cty.Value{
		"Environment": cty.StringVal("production"),
		"Project":     cty.StringVal("aws-infrastructure"),
		"ManagedBy":   cty.StringVal("terraform"),
	}))

	return "# Variable definitions\n\n" + string(file.Bytes())
}

func appendVariable(body *hclwrite.Body, name, description, varType string, defaultValue cty.Value) {
	variableBody := body.AppendNewBlock("variable", []string{name}).Body()
	variableBody.SetAttributeValue("description", cty.StringVal(description))
	variableBody.SetAttributeRaw("type", utils.TokensForResourceReference(varType))
	variableBody.SetAttributeValue("default", defaultValue)
	body.AppendNewline()
}

func (s *BundleService) renderOutputsTf(vpcs []vpcOutput) string {
	file := hclwrite.NewEmptyFile()
	body := file.Body()

	for _, vpc := range vpcs {
		idBody := body.AppendNewBlock("output", []string{vpc.name + "_id"}).Body()
		idBody.SetAttributeValue("description", cty.StringVal("ID of the VPC"))
		idBody.SetAttributeRaw("value", utils.TokensForResourceReference(fmt.Sprintf("aws_vpc.%s.id", vpc.name)))
		body.AppendNewline()

		cidrBody := body.AppendNewBlock("output", []string{vpc.name + "_cidr_block"}).Body()
		cidrBody.SetAttributeValue("description", cty.StringVal("CIDR block of the VPC"))
		cidrBody.SetAttributeRaw("value", utils.TokensForResourceReference(fmt.Sprintf("aws_vpc.%s.cidr_block", vpc.name)))
		body.AppendNewline()
	}

	var builder strings.Builder
	builder.WriteString("# Output definitions\n")
	fmt.Fprintf(&builder, "# Generated on %s\n\n", s.now().UTC().Format("2006-01-02 15:04:05 UTC"))
	builder.Write(file.Bytes())

	return builder.String()
}

func renderExampleModule() string {
	file := hclwrite.NewEmptyFile()
	body := file.Body()

	environmentBody := body.AppendNewBlock("variable", []string{"environment"}).Body()
	environmentBody.SetAttributeValue("description", cty.StringVal("Environment name"))
	environmentBody.SetAttributeRaw("type", utils.TokensForResourceReference("string"))
	body.AppendNewline()

	projectBody := body.AppendNewBlock("variable", []string{"project_name"}).Body()
	projectBody.SetAttributeValue("description", cty.StringVal("Project name"))
	projectBody.SetAttributeRaw("type", utils.TokensForResourceReference("string"))
	body.AppendNewline()

	outputBody := body.AppendNewBlock("output", []string{"module_output"}).Body()
	outputBody.SetAttributeValue("description", cty.StringVal("Example module output"))
	outputBody.SetAttributeValue("value", cty.StringVal("Hello from module"))

	return "# Example module for reusable components\n# This is a placeholder for future module development\n\n" + string(file.Bytes())
}
