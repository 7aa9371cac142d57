package aws

import (
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"

	"github.com/Callable-APIs/infra/internal/utils"
)

func GenerateRequiredProviderTokens() (string, hclwrite.Tokens) {
	awsProvider := map[string]cty.Value{
		"source":  cty.StringVal("hashicorp/aws"),
		"version": cty.StringVal("~> 5.0"),
	}

	return "aws", hclwrite.TokensForValue(cty.ObjectVal(awsProvider))
}

// GenerateDefaultProviderBlock emits the unaliased provider, parameterized on
// var.aws_region, with the default tags every generated resource inherits.
func GenerateDefaultProviderBlock() *hclwrite.Block {
	providerBlock := hclwrite.NewBlock("provider", []string{"aws"})
	providerBody := providerBlock.Body()
	providerBody.SetAttributeRaw("region", utils.TokensForVarReference("aws_region"))

	defaultTags := providerBody.AppendNewBlock("default_tags", nil).Body()
	defaultTags.SetAttributeValue("tags", cty.ObjectVal(map[string]cty.Value{
		"ManagedBy": cty.StringVal("terraform"),
		"Generated": cty.StringVal("true"),
	}))

	return providerBlock
}

// GenerateAliasedProviderBlock emits a provider pinned to a specific region so
// multi-region bundles can address each region explicitly.
func GenerateAliasedProviderBlock(region, alias string) *hclwrite.Block {
	providerBlock := hclwrite.NewBlock("provider", []string{"aws"})
	providerBody := providerBlock.Body()
	providerBody.SetAttributeValue("alias", cty.StringVal(alias))
	providerBody.SetAttributeValue("region", cty.StringVal(region))

	return providerBlock
}
