package aws

import (
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"

	"github.com/Callable-APIs/infra/internal/types"
)

func GenerateSecurityGroupResource(tfResourceName string, resource types.DiscoveredResource, providerAlias string) *hclwrite.Block {
	data := resource.Data

	resourceBlock := hclwrite.NewBlock("resource", []string{"aws_security_group", tfResourceName})
	body := resourceBlock.Body()
	setProviderAlias(body, providerAlias)

	groupName := stringAt(data, "GroupName")
	if groupName == "" {
		groupName = tfResourceName
	}
	body.SetAttributeValue("name", cty.StringVal(groupName))
	body.SetAttributeValue("description", cty.StringVal(stringAt(data, "Description")))
	body.SetAttributeValue("vpc_id", cty.StringVal(stringAt(data, "VpcId")))

	appendRuleBlocks(body, "ingress", listAt(data, "IpPermissions"))
	appendRuleBlocks(body, "egress", listAt(data, "IpPermissionsEgress"))

	body.SetAttributeValue("tags", tagsValue(groupName, resource.Tags))

	return resourceBlock
}

// appendRuleBlocks expands each IP permission into one rule block per CIDR
// range, mirroring how the provider models security group rules.
func appendRuleBlocks(body *hclwrite.Body, blockType string, permissions []map[string]any) {
	for _, permission := range permissions {
		for _, ipRange := range listAt(permission, "IpRanges") {
			ruleBody := body.AppendNewBlock(blockType, nil).Body()

			ruleBody.SetAttributeValue("from_port", cty.NumberIntVal(int64(intAt(permission, "FromPort", 0))))
			ruleBody.SetAttributeValue("to_port", cty.NumberIntVal(int64(intAt(permission, "ToPort", 0))))

			protocol := stringAt(permission, "IpProtocol")
			if protocol == "" {
				protocol = "tcp"
			}
			ruleBody.SetAttributeValue("protocol", cty.StringVal(protocol))

			cidr := stringAt(ipRange, "CidrIp")
			if cidr == "" {
				cidr = "0.0.0.0/0"
			}
			ruleBody.SetAttributeValue("cidr_blocks", cty.ListVal([]cty.Value{cty.StringVal(cidr)}))
			ruleBody.SetAttributeValue("description", cty.StringVal(stringAt(ipRange, "Description")))
		}
	}
}
