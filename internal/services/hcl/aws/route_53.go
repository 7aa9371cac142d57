package aws

import (
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"

	"github.com/Callable-APIs/infra/internal/types"
	"github.com/Callable-APIs/infra/internal/utils"
)

func GenerateRoute53ZoneResource(tfResourceName string, resource types.DiscoveredResource, providerAlias string) *hclwrite.Block {
	data := resource.Data

	resourceBlock := hclwrite.NewBlock("resource", []string{"aws_route53_zone", tfResourceName})
	body := resourceBlock.Body()
	setProviderAlias(body, providerAlias)

	zoneName := stringAt(data, "Name")
	body.SetAttributeValue("name", cty.StringVal(zoneName))

	defaultName := zoneName
	if defaultName == "" {
		defaultName = resource.ID
	}
	body.SetAttributeValue("tags", tagsValue(defaultName, resource.Tags))

	return resourceBlock
}

// GenerateRoute53RecordResource emits a record declaration. Alias records get
// an alias block instead of ttl and records; plain records carry their value
// list verbatim.
func GenerateRoute53RecordResource(tfResourceName string, resource types.DiscoveredResource, providerAlias string) *hclwrite.Block {
	data := resource.Data

	resourceBlock := hclwrite.NewBlock("resource", []string{"aws_route53_record", tfResourceName})
	body := resourceBlock.Body()
	setProviderAlias(body, providerAlias)

	body.SetAttributeValue("zone_id", cty.StringVal(resource.ZoneID))
	body.SetAttributeValue("name", cty.StringVal(stringAt(data, "Name")))
	body.SetAttributeValue("type", cty.StringVal(stringAt(data, "Type")))

	if aliasTarget := mapAt(data, "AliasTarget"); aliasTarget != nil {
		aliasBody := body.AppendNewBlock("alias", nil).Body()
		aliasBody.SetAttributeValue("name", cty.StringVal(stringAt(aliasTarget, "DNSName")))
		aliasBody.SetAttributeValue("zone_id", cty.StringVal(stringAt(aliasTarget, "HostedZoneId")))
		aliasBody.SetAttributeValue("evaluate_target_health", cty.BoolVal(boolAt(aliasTarget, "EvaluateTargetHealth")))
		return resourceBlock
	}

	body.SetAttributeValue("ttl", cty.NumberIntVal(int64(intAt(data, "TTL", 300))))

	values := []string{}
	for _, record := range listAt(data, "ResourceRecords") {
		if value := stringAt(record, "Value"); value != "" {
			values = append(values, value)
		}
	}
	body.SetAttributeRaw("records", utils.TokensForStringList(values))

	return resourceBlock
}
