package probe

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/Callable-APIs/infra/internal/types"
	"github.com/Callable-APIs/infra/internal/utils"
)

// NetworkProbe discovers VPC-level networking resources.
type NetworkProbe struct {
	client EC2API
}

func NewNetworkProbe(client EC2API) *NetworkProbe {
	return &NetworkProbe{client: client}
}

func (p *NetworkProbe) VPCs(ctx context.Context) ([]types.DiscoveredResource, error) {
	vpcs := []types.DiscoveredResource{}
	var nextToken *string

	for {
		output, err := p.client.DescribeVpcs(ctx, &ec2.DescribeVpcsInput{NextToken: nextToken})
		if err != nil {
			return nil, fmt.Errorf("❌ Failed to describe VPCs: %v", err)
		}

		for _, vpc := range output.Vpcs {
			data, err := utils.StructToMap(vpc)
			if err != nil {
				return nil, fmt.Errorf("❌ Failed to normalize VPC %s: %v", aws.ToString(vpc.VpcId), err)
			}

			vpcs = append(vpcs, types.DiscoveredResource{
				Type: "aws_vpc",
				ID:   aws.ToString(vpc.VpcId),
				Data: data,
				Tags: flattenEC2Tags(vpc.Tags),
			})
		}

		if output.NextToken == nil {
			break
		}
		nextToken = output.NextToken
	}

	return vpcs, nil
}

func (p *NetworkProbe) Subnets(ctx context.Context) ([]types.DiscoveredResource, error) {
	subnets := []types.DiscoveredResource{}
	var nextToken *string

	for {
		output, err := p.client.DescribeSubnets(ctx, &ec2.DescribeSubnetsInput{NextToken: nextToken})
		if err != nil {
			return nil, fmt.Errorf("❌ Failed to describe subnets: %v", err)
		}

		for _, subnet := range output.Subnets {
			data, err := utils.StructToMap(subnet)
			if err != nil {
				return nil, fmt.Errorf("❌ Failed to normalize subnet %s: %v", aws.ToString(subnet.SubnetId), err)
			}

			subnets = append(subnets, types.DiscoveredResource{
				Type: "aws_subnet",
				ID:   aws.ToString(subnet.SubnetId),
				Data: data,
				Tags: flattenEC2Tags(subnet.Tags),
			})
		}

		if output.NextToken == nil {
			break
		}
		nextToken = output.NextToken
	}

	return subnets, nil
}

func (p *NetworkProbe) SecurityGroups(ctx context.Context) ([]types.DiscoveredResource, error) {
	groups := []types.DiscoveredResource{}
	var nextToken *string

	for {
		output, err := p.client.DescribeSecurityGroups(ctx, &ec2.DescribeSecurityGroupsInput{NextToken: nextToken})
		if err != nil {
			return nil, fmt.Errorf("❌ Failed to describe security groups: %v", err)
		}

		for _, group := range output.SecurityGroups {
			data, err := utils.StructToMap(group)
			if err != nil {
				return nil, fmt.Errorf("❌ Failed to normalize security group %s: %v", aws.ToString(group.GroupId), err)
			}

			groups = append(groups, types.DiscoveredResource{
				Type: "aws_security_group",
				ID:   aws.ToString(group.GroupId),
				Data: data,
				Tags: flattenEC2Tags(group.Tags),
			})
		}

		if output.NextToken == nil {
			break
		}
		nextToken = output.NextToken
	}

	return groups, nil
}

func (p *NetworkProbe) RouteTables(ctx context.Context) ([]types.DiscoveredResource, error) {
	tables := []types.DiscoveredResource{}
	var nextToken *string

	for {
		output, err := p.client.DescribeRouteTables(ctx, &ec2.DescribeRouteTablesInput{NextToken: nextToken})
		if err != nil {
			return nil, fmt.Errorf("❌ Failed to describe route tables: %v", err)
		}

		for _, table := range output.RouteTables {
			data, err := utils.StructToMap(table)
			if err != nil {
				return nil, fmt.Errorf("❌ Failed to normalize route table %s: %v", aws.ToString(table.RouteTableId), err)
			}

			tables = append(tables, types.DiscoveredResource{
				Type: "aws_route_table",
				ID:   aws.ToString(table.RouteTableId),
				Data: data,
				Tags: flattenEC2Tags(table.Tags),
			})
		}

		if output.NextToken == nil {
			break
		}
		nextToken = output.NextToken
	}

	return tables, nil
}

func (p *NetworkProbe) InternetGateways(ctx context.Context) ([]types.DiscoveredResource, error) {
	gateways := []types.DiscoveredResource{}
	var nextToken *string

	for {
		output, err := p.client.DescribeInternetGateways(ctx, &ec2.DescribeInternetGatewaysInput{NextToken: nextToken})
		if err != nil {
			return nil, fmt.Errorf("❌ Failed to describe internet gateways: %v", err)
		}

		for _, gateway := range output.InternetGateways {
			data, err := utils.StructToMap(gateway)
			if err != nil {
				return nil, fmt.Errorf("❌ Failed to normalize internet gateway %s: %v", aws.ToString(gateway.InternetGatewayId), err)
			}

			gateways = append(gateways, types.DiscoveredResource{
				Type: "aws_internet_gateway",
				ID:   aws.ToString(gateway.InternetGatewayId),
				Data: data,
				Tags: flattenEC2Tags(gateway.Tags),
			})
		}

		if output.NextToken == nil {
			break
		}
		nextToken = output.NextToken
	}

	return gateways, nil
}

// NATGateways lists NAT gateways, excluding ones that are deleting or already
// deleted.
func (p *NetworkProbe) NATGateways(ctx context.Context) ([]types.DiscoveredResource, error) {
	gateways := []types.DiscoveredResource{}
	var nextToken *string

	for {
		output, err := p.client.DescribeNatGateways(ctx, &ec2.DescribeNatGatewaysInput{NextToken: nextToken})
		if err != nil {
			return nil, fmt.Errorf("❌ Failed to describe NAT gateways: %v", err)
		}

		for _, gateway := range output.NatGateways {
			switch gateway.State {
			case ec2types.NatGatewayStateDeleted, ec2types.NatGatewayStateDeleting:
				continue
			}

			data, err := utils.StructToMap(gateway)
			if err != nil {
				return nil, fmt.Errorf("❌ Failed to normalize NAT gateway %s: %v", aws.ToString(gateway.NatGatewayId), err)
			}

			gateways = append(gateways, types.DiscoveredResource{
				Type: "aws_nat_gateway",
				ID:   aws.ToString(gateway.NatGatewayId),
				Data: data,
				Tags: flattenEC2Tags(gateway.Tags),
			})
		}

		if output.NextToken == nil {
			break
		}
		nextToken = output.NextToken
	}

	return gateways, nil
}

// ElasticIPs lists EIP allocations. Addresses in EC2-Classic have no
// allocation ID, so the public IP stands in as the identifier there.
func (p *NetworkProbe) ElasticIPs(ctx context.Context) ([]types.DiscoveredResource, error) {
	output, err := p.client.DescribeAddresses(ctx, &ec2.DescribeAddressesInput{})
	if err != nil {
		return nil, fmt.Errorf("❌ Failed to describe elastic IPs: %v", err)
	}

	addresses := []types.DiscoveredResource{}
	for _, address := range output.Addresses {
		id := aws.ToString(address.AllocationId)
		if id == "" {
			id = aws.ToString(address.PublicIp)
		}

		data, err := utils.StructToMap(address)
		if err != nil {
			return nil, fmt.Errorf("❌ Failed to normalize elastic IP %s: %v", id, err)
		}

		addresses = append(addresses, types.DiscoveredResource{
			Type: "aws_eip",
			ID:   id,
			Data: data,
			Tags: flattenEC2Tags(address.Tags),
		})
	}

	return addresses, nil
}
