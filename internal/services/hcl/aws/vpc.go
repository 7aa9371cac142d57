package aws

import (
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"

	"github.com/Callable-APIs/infra/internal/types"
)

func GenerateVpcResource(tfResourceName string, resource types.DiscoveredResource, providerAlias string) *hclwrite.Block {
	data := resource.Data

	resourceBlock := hclwrite.NewBlock("resource", []string{"aws_vpc", tfResourceName})
	body := resourceBlock.Body()
	setProviderAlias(body, providerAlias)

	cidrBlock := stringAt(data, "CidrBlock")
	if cidrBlock == "" {
		cidrBlock = "10.0.0.0/16"
	}
	body.SetAttributeValue("cidr_block", cty.StringVal(cidrBlock))
	body.SetAttributeValue("enable_dns_hostnames", cty.BoolVal(true))
	body.SetAttributeValue("enable_dns_support", cty.BoolVal(true))

	body.SetAttributeValue("tags", tagsValue(resource.ID, resource.Tags))

	return resourceBlock
}

func GenerateSubnetResource(tfResourceName string, resource types.DiscoveredResource, providerAlias string) *hclwrite.Block {
	data := resource.Data

	resourceBlock := hclwrite.NewBlock("resource", []string{"aws_subnet", tfResourceName})
	body := resourceBlock.Body()
	setProviderAlias(body, providerAlias)

	body.SetAttributeValue("vpc_id", cty.StringVal(stringAt(data, "VpcId")))
	body.SetAttributeValue("cidr_block", cty.StringVal(stringAt(data, "CidrBlock")))
	body.SetAttributeValue("availability_zone", cty.StringVal(stringAt(data, "AvailabilityZone")))
	body.SetAttributeValue("map_public_ip_on_launch", cty.BoolVal(boolAt(data, "MapPublicIpOnLaunch")))

	body.SetAttributeValue("tags", tagsValue(resource.ID, resource.Tags))

	return resourceBlock
}

func GenerateInternetGatewayResource(tfResourceName string, resource types.DiscoveredResource, providerAlias string) *hclwrite.Block {
	data := resource.Data

	resourceBlock := hclwrite.NewBlock("resource", []string{"aws_internet_gateway", tfResourceName})
	body := resourceBlock.Body()
	setProviderAlias(body, providerAlias)

	vpcID := ""
	for _, attachment := range listAt(data, "Attachments") {
		if id := stringAt(attachment, "VpcId"); id != "" {
			vpcID = id
			break
		}
	}
	body.SetAttributeValue("vpc_id", cty.StringVal(vpcID))

	body.SetAttributeValue("tags", tagsValue(resource.ID, resource.Tags))

	return resourceBlock
}

func GenerateNatGatewayResource(tfResourceName string, resource types.DiscoveredResource, providerAlias string) *hclwrite.Block {
	data := resource.Data

	resourceBlock := hclwrite.NewBlock("resource", []string{"aws_nat_gateway", tfResourceName})
	body := resourceBlock.Body()
	setProviderAlias(body, providerAlias)

	allocationID := ""
	if addresses := listAt(data, "NatGatewayAddresses"); len(addresses) > 0 {
		allocationID = stringAt(addresses[0], "AllocationId")
	}
	body.SetAttributeValue("allocation_id", cty.StringVal(allocationID))
	body.SetAttributeValue("subnet_id", cty.StringVal(stringAt(data, "SubnetId")))

	body.SetAttributeValue("tags", tagsValue(resource.ID, resource.Tags))

	return resourceBlock
}

func GenerateEipResource(tfResourceName string, resource types.DiscoveredResource, providerAlias string) *hclwrite.Block {
	data := resource.Data

	resourceBlock := hclwrite.NewBlock("resource", []string{"aws_eip", tfResourceName})
	body := resourceBlock.Body()
	setProviderAlias(body, providerAlias)

	body.SetAttributeValue("domain", cty.StringVal("vpc"))

	defaultName := stringAt(data, "PublicIp")
	if defaultName == "" {
		defaultName = resource.ID
	}
	body.SetAttributeValue("tags", tagsValue(defaultName, resource.Tags))

	return resourceBlock
}

func GenerateRouteTableResource(tfResourceName string, resource types.DiscoveredResource, providerAlias string) *hclwrite.Block {
	data := resource.Data

	resourceBlock := hclwrite.NewBlock("resource", []string{"aws_route_table", tfResourceName})
	body := resourceBlock.Body()
	setProviderAlias(body, providerAlias)

	body.SetAttributeValue("vpc_id", cty.StringVal(stringAt(data, "VpcId")))

	body.SetAttributeValue("tags", tagsValue(resource.ID, resource.Tags))

	return resourceBlock
}
