package aws

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"

	"github.com/Callable-APIs/infra/internal/types"
	"github.com/Callable-APIs/infra/internal/utils"
)

// Discovery does not capture policy documents, so generated roles and
// policies carry reviewable placeholder documents instead of the real ones.
const assumeRolePolicyExpr = `jsonencode({ Version = "2012-10-17", Statement = [{ Action = "sts:AssumeRole", Effect = "Allow", Principal = { Service = "ec2.amazonaws.com" } }] })`

const placeholderPolicyExpr = `jsonencode({ Version = "2012-10-17", Statement = [{ Effect = "Allow", Action = "*", Resource = "*" }] })`

// GenerateIamRoleResources emits the role declaration together with an
// instance profile wrapping it.
func GenerateIamRoleResources(tfResourceName string, resource types.DiscoveredResource, providerAlias string) []*hclwrite.Block {
	roleName := stringAt(resource.Data, "RoleName")
	if roleName == "" {
		roleName = resource.ID
	}

	roleBlock := hclwrite.NewBlock("resource", []string{"aws_iam_role", tfResourceName})
	roleBody := roleBlock.Body()
	setProviderAlias(roleBody, providerAlias)
	roleBody.SetAttributeValue("name", cty.StringVal(roleName))
	roleBody.SetAttributeRaw("assume_role_policy", utils.TokensForResourceReference(assumeRolePolicyExpr))
	roleBody.SetAttributeValue("tags", tagsValue(roleName, resource.Tags))

	profileBlock := hclwrite.NewBlock("resource", []string{"aws_iam_instance_profile", tfResourceName})
	profileBody := profileBlock.Body()
	setProviderAlias(profileBody, providerAlias)
	profileBody.SetAttributeValue("name", cty.StringVal(roleName+"-profile"))
	profileBody.SetAttributeRaw("role", utils.TokensForResourceReference(fmt.Sprintf("aws_iam_role.%s.name", tfResourceName)))

	return []*hclwrite.Block{roleBlock, profileBlock}
}

func GenerateIamPolicyResource(tfResourceName string, resource types.DiscoveredResource, providerAlias string) *hclwrite.Block {
	data := resource.Data

	policyName := stringAt(data, "PolicyName")
	if policyName == "" {
		policyName = resource.ID
	}

	policyBlock := hclwrite.NewBlock("resource", []string{"aws_iam_policy", tfResourceName})
	policyBody := policyBlock.Body()
	setProviderAlias(policyBody, providerAlias)
	policyBody.SetAttributeValue("name", cty.StringVal(policyName))
	policyBody.SetAttributeValue("description", cty.StringVal(stringAt(data, "Description")))
	policyBody.SetAttributeRaw("policy", utils.TokensForResourceReference(placeholderPolicyExpr))
	policyBody.SetAttributeValue("tags", tagsValue(policyName, resource.Tags))

	return policyBlock
}
