package aws

import (
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"

	"github.com/Callable-APIs/infra/internal/types"
	"github.com/Callable-APIs/infra/internal/utils"
)

func GenerateEc2InstanceResource(tfResourceName string, resource types.DiscoveredResource, providerAlias string) *hclwrite.Block {
	data := resource.Data

	resourceBlock := hclwrite.NewBlock("resource", []string{"aws_instance", tfResourceName})
	body := resourceBlock.Body()
	setProviderAlias(body, providerAlias)

	body.SetAttributeValue("ami", cty.StringVal(stringAt(data, "ImageId")))
	body.SetAttributeValue("instance_type", cty.StringVal(stringAt(data, "InstanceType")))
	body.SetAttributeValue("subnet_id", cty.StringVal(stringAt(data, "SubnetId")))

	securityGroupIds := []string{}
	for _, group := range listAt(data, "SecurityGroups") {
		if id := stringAt(group, "GroupId"); id != "" {
			securityGroupIds = append(securityGroupIds, id)
		}
	}
	body.SetAttributeRaw("vpc_security_group_ids", utils.TokensForStringList(securityGroupIds))

	body.SetAttributeValue("tags", tagsValue(resource.ID, resource.Tags))

	return resourceBlock
}

func GenerateEbsVolumeResource(tfResourceName string, resource types.DiscoveredResource, providerAlias string) *hclwrite.Block {
	data := resource.Data

	resourceBlock := hclwrite.NewBlock("resource", []string{"aws_ebs_volume", tfResourceName})
	body := resourceBlock.Body()
	setProviderAlias(body, providerAlias)

	body.SetAttributeValue("availability_zone", cty.StringVal(stringAt(data, "AvailabilityZone")))
	body.SetAttributeValue("size", cty.NumberIntVal(int64(intAt(data, "Size", 8))))

	volumeType := stringAt(data, "VolumeType")
	if volumeType == "" {
		volumeType = "gp2"
	}
	body.SetAttributeValue("type", cty.StringVal(volumeType))
	body.SetAttributeValue("encrypted", cty.BoolVal(boolAt(data, "Encrypted")))

	body.SetAttributeValue("tags", tagsValue(resource.ID, resource.Tags))

	return resourceBlock
}
