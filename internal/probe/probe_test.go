package probe

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	iamtypes "github.com/aws/aws-sdk-go-v2/service/iam/types"
	"github.com/aws/aws-sdk-go-v2/service/route53"
	route53types "github.com/aws/aws-sdk-go-v2/service/route53/types"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Callable-APIs/infra/internal/types"
)

type mockEC2API struct {
	DescribeInstancesFunc        func(ctx context.Context, params *ec2.DescribeInstancesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error)
	DescribeVolumesFunc          func(ctx context.Context, params *ec2.DescribeVolumesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeVolumesOutput, error)
	DescribeSnapshotsFunc        func(ctx context.Context, params *ec2.DescribeSnapshotsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeSnapshotsOutput, error)
	DescribeVpcsFunc             func(ctx context.Context, params *ec2.DescribeVpcsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeVpcsOutput, error)
	DescribeSubnetsFunc          func(ctx context.Context, params *ec2.DescribeSubnetsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeSubnetsOutput, error)
	DescribeSecurityGroupsFunc   func(ctx context.Context, params *ec2.DescribeSecurityGroupsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeSecurityGroupsOutput, error)
	DescribeRouteTablesFunc      func(ctx context.Context, params *ec2.DescribeRouteTablesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeRouteTablesOutput, error)
	DescribeInternetGatewaysFunc func(ctx context.Context, params *ec2.DescribeInternetGatewaysInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInternetGatewaysOutput, error)
	DescribeNatGatewaysFunc      func(ctx context.Context, params *ec2.DescribeNatGatewaysInput, optFns ...func(*ec2.Options)) (*ec2.DescribeNatGatewaysOutput, error)
	DescribeAddressesFunc        func(ctx context.Context, params *ec2.DescribeAddressesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeAddressesOutput, error)
}

func (m *mockEC2API) DescribeInstances(ctx context.Context, params *ec2.DescribeInstancesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error) {
	return m.DescribeInstancesFunc(ctx, params, optFns...)
}

func (m *mockEC2API) DescribeVolumes(ctx context.Context, params *ec2.DescribeVolumesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeVolumesOutput, error) {
	return m.DescribeVolumesFunc(ctx, params, optFns...)
}

func (m *mockEC2API) DescribeSnapshots(ctx context.Context, params *ec2.DescribeSnapshotsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeSnapshotsOutput, error) {
	return m.DescribeSnapshotsFunc(ctx, params, optFns...)
}

func (m *mockEC2API) DescribeVpcs(ctx context.Context, params *ec2.DescribeVpcsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeVpcsOutput, error) {
	return m.DescribeVpcsFunc(ctx, params, optFns...)
}

func (m *mockEC2API) DescribeSubnets(ctx context.Context, params *ec2.DescribeSubnetsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeSubnetsOutput, error) {
	return m.DescribeSubnetsFunc(ctx, params, optFns...)
}

func (m *mockEC2API) DescribeSecurityGroups(ctx context.Context, params *ec2.DescribeSecurityGroupsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeSecurityGroupsOutput, error) {
	return m.DescribeSecurityGroupsFunc(ctx, params, optFns...)
}

func (m *mockEC2API) DescribeRouteTables(ctx context.Context, params *ec2.DescribeRouteTablesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeRouteTablesOutput, error) {
	return m.DescribeRouteTablesFunc(ctx, params, optFns...)
}

func (m *mockEC2API) DescribeInternetGateways(ctx context.Context, params *ec2.DescribeInternetGatewaysInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInternetGatewaysOutput, error) {
	return m.DescribeInternetGatewaysFunc(ctx, params, optFns...)
}

func (m *mockEC2API) DescribeNatGateways(ctx context.Context, params *ec2.DescribeNatGatewaysInput, optFns ...func(*ec2.Options)) (*ec2.DescribeNatGatewaysOutput, error) {
	return m.DescribeNatGatewaysFunc(ctx, params, optFns...)
}

func (m *mockEC2API) DescribeAddresses(ctx context.Context, params *ec2.DescribeAddressesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeAddressesOutput, error) {
	return m.DescribeAddressesFunc(ctx, params, optFns...)
}

type mockRoute53API struct {
	ListHostedZonesFunc        func(ctx context.Context, params *route53.ListHostedZonesInput, optFns ...func(*route53.Options)) (*route53.ListHostedZonesOutput, error)
	ListResourceRecordSetsFunc func(ctx context.Context, params *route53.ListResourceRecordSetsInput, optFns ...func(*route53.Options)) (*route53.ListResourceRecordSetsOutput, error)
}

func (m *mockRoute53API) ListHostedZones(ctx context.Context, params *route53.ListHostedZonesInput, optFns ...func(*route53.Options)) (*route53.ListHostedZonesOutput, error) {
	return m.ListHostedZonesFunc(ctx, params, optFns...)
}

func (m *mockRoute53API) ListResourceRecordSets(ctx context.Context, params *route53.ListResourceRecordSetsInput, optFns ...func(*route53.Options)) (*route53.ListResourceRecordSetsOutput, error) {
	return m.ListResourceRecordSetsFunc(ctx, params, optFns...)
}

type mockS3API struct {
	ListBucketsFunc func(ctx context.Context, params *s3.ListBucketsInput, optFns ...func(*s3.Options)) (*s3.ListBucketsOutput, error)
}

func (m *mockS3API) ListBuckets(ctx context.Context, params *s3.ListBucketsInput, optFns ...func(*s3.Options)) (*s3.ListBucketsOutput, error) {
	return m.ListBucketsFunc(ctx, params, optFns...)
}

type mockIAMAPI struct {
	ListRolesFunc    func(ctx context.Context, params *iam.ListRolesInput, optFns ...func(*iam.Options)) (*iam.ListRolesOutput, error)
	ListPoliciesFunc func(ctx context.Context, params *iam.ListPoliciesInput, optFns ...func(*iam.Options)) (*iam.ListPoliciesOutput, error)
}

func (m *mockIAMAPI) ListRoles(ctx context.Context, params *iam.ListRolesInput, optFns ...func(*iam.Options)) (*iam.ListRolesOutput, error) {
	return m.ListRolesFunc(ctx, params, optFns...)
}

func (m *mockIAMAPI) ListPolicies(ctx context.Context, params *iam.ListPoliciesInput, optFns ...func(*iam.Options)) (*iam.ListPoliciesOutput, error) {
	return m.ListPoliciesFunc(ctx, params, optFns...)
}

func TestEC2Probe_Instances_SkipsTerminalStates(t *testing.T) {
	mockClient := &mockEC2API{
		DescribeInstancesFunc: func(ctx context.Context, params *ec2.DescribeInstancesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error) {
			return &ec2.DescribeInstancesOutput{
				Reservations: []ec2types.Reservation{
					{
						Instances: []ec2types.Instance{
							{
								InstanceId: aws.String("i-running"),
								State:      &ec2types.InstanceState{Name: ec2types.InstanceStateNameRunning},
								Tags:       []ec2types.Tag{{Key: aws.String("Name"), Value: aws.String("web")}},
							},
							{
								InstanceId: aws.String("i-terminated"),
								State:      &ec2types.InstanceState{Name: ec2types.InstanceStateNameTerminated},
							},
							{
								InstanceId: aws.String("i-shutting-down"),
								State:      &ec2types.InstanceState{Name: ec2types.InstanceStateNameShuttingDown},
							},
							{
								InstanceId: aws.String("i-stopped"),
								State:      &ec2types.InstanceState{Name: ec2types.InstanceStateNameStopped},
							},
						},
					},
				},
			}, nil
		},
	}

	probe := NewEC2Probe(mockClient)
	instances, err := probe.Instances(context.Background())
	require.NoError(t, err)

	require.Len(t, instances, 2)
	assert.Equal(t, "i-running", instances[0].ID)
	assert.Equal(t, "aws_instance", instances[0].Type)
	assert.Equal(t, "web", instances[0].Tags["Name"])
	assert.Equal(t, "i-stopped", instances[1].ID)
}

func TestEC2Probe_Instances_Pagination(t *testing.T) {
	calls := 0
	mockClient := &mockEC2API{
		DescribeInstancesFunc: func(ctx context.Context, params *ec2.DescribeInstancesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error) {
			calls++
			if calls == 1 {
				assert.Nil(t, params.NextToken)
				return &ec2.DescribeInstancesOutput{
					Reservations: []ec2types.Reservation{
						{Instances: []ec2types.Instance{{
							InstanceId: aws.String("i-page1"),
							State:      &ec2types.InstanceState{Name: ec2types.InstanceStateNameRunning},
						}}},
					},
					NextToken: aws.String("page-2"),
				}, nil
			}
			assert.Equal(t, "page-2", aws.ToString(params.NextToken))
			return &ec2.DescribeInstancesOutput{
				Reservations: []ec2types.Reservation{
					{Instances: []ec2types.Instance{{
						InstanceId: aws.String("i-page2"),
						State:      &ec2types.InstanceState{Name: ec2types.InstanceStateNameRunning},
					}}},
				},
			}, nil
		},
	}

	probe := NewEC2Probe(mockClient)
	instances, err := probe.Instances(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
	require.Len(t, instances, 2)
	assert.Equal(t, "i-page1", instances[0].ID)
	assert.Equal(t, "i-page2", instances[1].ID)
}

func TestEC2Probe_Volumes_SkipsDeleting(t *testing.T) {
	mockClient := &mockEC2API{
		DescribeVolumesFunc: func(ctx context.Context, params *ec2.DescribeVolumesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeVolumesOutput, error) {
			return &ec2.DescribeVolumesOutput{
				Volumes: []ec2types.Volume{
					{VolumeId: aws.String("vol-in-use"), State: ec2types.VolumeStateInUse},
					{VolumeId: aws.String("vol-deleting"), State: ec2types.VolumeStateDeleting},
					{VolumeId: aws.String("vol-deleted"), State: ec2types.VolumeStateDeleted},
				},
			}, nil
		},
	}

	probe := NewEC2Probe(mockClient)
	volumes, err := probe.Volumes(context.Background())
	require.NoError(t, err)

	require.Len(t, volumes, 1)
	assert.Equal(t, "vol-in-use", volumes[0].ID)
	assert.Equal(t, "aws_ebs_volume", volumes[0].Type)
}

func TestEC2Probe_Snapshots_OwnedOnlyAndSkipsDeleting(t *testing.T) {
	mockClient := &mockEC2API{
		DescribeSnapshotsFunc: func(ctx context.Context, params *ec2.DescribeSnapshotsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeSnapshotsOutput, error) {
			assert.Equal(t, []string{"self"}, params.OwnerIds)
			return &ec2.DescribeSnapshotsOutput{
				Snapshots: []ec2types.Snapshot{
					{SnapshotId: aws.String("snap-1"), State: ec2types.SnapshotStateCompleted},
					{SnapshotId: aws.String("snap-deleting"), State: ec2types.SnapshotState("deleting")},
					{SnapshotId: aws.String("snap-deleted"), State: ec2types.SnapshotState("deleted")},
				},
			}, nil
		},
	}

	probe := NewEC2Probe(mockClient)
	snapshots, err := probe.Snapshots(context.Background())
	require.NoError(t, err)

	require.Len(t, snapshots, 1)
	assert.Equal(t, "snap-1", snapshots[0].ID)
	assert.Equal(t, "aws_ebs_snapshot", snapshots[0].Type)
}

func TestNetworkProbe_NATGateways_SkipsDeleting(t *testing.T) {
	mockClient := &mockEC2API{
		DescribeNatGatewaysFunc: func(ctx context.Context, params *ec2.DescribeNatGatewaysInput, optFns ...func(*ec2.Options)) (*ec2.DescribeNatGatewaysOutput, error) {
			return &ec2.DescribeNatGatewaysOutput{
				NatGateways: []ec2types.NatGateway{
					{NatGatewayId: aws.String("nat-available"), State: ec2types.NatGatewayStateAvailable},
					{NatGatewayId: aws.String("nat-deleting"), State: ec2types.NatGatewayStateDeleting},
					{NatGatewayId: aws.String("nat-deleted"), State: ec2types.NatGatewayStateDeleted},
				},
			}, nil
		},
	}

	probe := NewNetworkProbe(mockClient)
	gateways, err := probe.NATGateways(context.Background())
	require.NoError(t, err)

	require.Len(t, gateways, 1)
	assert.Equal(t, "nat-available", gateways[0].ID)
}

func TestNetworkProbe_ElasticIPs_FallsBackToPublicIP(t *testing.T) {
	mockClient := &mockEC2API{
		DescribeAddressesFunc: func(ctx context.Context, params *ec2.DescribeAddressesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeAddressesOutput, error) {
			return &ec2.DescribeAddressesOutput{
				Addresses: []ec2types.Address{
					{AllocationId: aws.String("eipalloc-1"), PublicIp: aws.String("198.51.100.1")},
					{PublicIp: aws.String("198.51.100.2")},
				},
			}, nil
		},
	}

	probe := NewNetworkProbe(mockClient)
	addresses, err := probe.ElasticIPs(context.Background())
	require.NoError(t, err)

	require.Len(t, addresses, 2)
	assert.Equal(t, "eipalloc-1", addresses[0].ID)
	assert.Equal(t, "198.51.100.2", addresses[1].ID)
}

func TestNetworkProbe_VPCs(t *testing.T) {
	mockClient := &mockEC2API{
		DescribeVpcsFunc: func(ctx context.Context, params *ec2.DescribeVpcsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeVpcsOutput, error) {
			return &ec2.DescribeVpcsOutput{
				Vpcs: []ec2types.Vpc{
					{
						VpcId:     aws.String("vpc-12345"),
						CidrBlock: aws.String("10.0.0.0/16"),
						Tags:      []ec2types.Tag{{Key: aws.String("Name"), Value: aws.String("main")}},
					},
				},
			}, nil
		},
	}

	probe := NewNetworkProbe(mockClient)
	vpcs, err := probe.VPCs(context.Background())
	require.NoError(t, err)

	require.Len(t, vpcs, 1)
	assert.Equal(t, "vpc-12345", vpcs[0].ID)
	assert.Equal(t, "aws_vpc", vpcs[0].Type)
	assert.Equal(t, "10.0.0.0/16", vpcs[0].Data["CidrBlock"])
	assert.Equal(t, "main", vpcs[0].Tags["Name"])
}

func TestRoute53Probe_Zones_StripsHostedZonePrefix(t *testing.T) {
	mockClient := &mockRoute53API{
		ListHostedZonesFunc: func(ctx context.Context, params *route53.ListHostedZonesInput, optFns ...func(*route53.Options)) (*route53.ListHostedZonesOutput, error) {
			return &route53.ListHostedZonesOutput{
				HostedZones: []route53types.HostedZone{
					{
						Id:   aws.String("/hostedzone/Z123456"),
						Name: aws.String("example.com."),
					},
				},
			}, nil
		},
	}

	probe := NewRoute53Probe(mockClient)
	zones, err := probe.Zones(context.Background())
	require.NoError(t, err)

	require.Len(t, zones, 1)
	assert.Equal(t, "Z123456", zones[0].ID)
	assert.Equal(t, "Z123456", zones[0].Data["Id"])
	assert.Equal(t, "aws_route53_zone", zones[0].Type)
}

func TestRoute53Probe_Records_SkipsNSAndSOA(t *testing.T) {
	mockClient := &mockRoute53API{
		ListResourceRecordSetsFunc: func(ctx context.Context, params *route53.ListResourceRecordSetsInput, optFns ...func(*route53.Options)) (*route53.ListResourceRecordSetsOutput, error) {
			assert.Equal(t, "Z123456", aws.ToString(params.HostedZoneId))
			return &route53.ListResourceRecordSetsOutput{
				ResourceRecordSets: []route53types.ResourceRecordSet{
					{Name: aws.String("example.com."), Type: route53types.RRTypeNs},
					{Name: aws.String("example.com."), Type: route53types.RRTypeSoa},
					{Name: aws.String("www.example.com."), Type: route53types.RRTypeA},
				},
			}, nil
		},
	}

	probe := NewRoute53Probe(mockClient)
	zones := []types.DiscoveredResource{
		{Type: "aws_route53_zone", ID: "Z123456"},
	}

	records, err := probe.Records(context.Background(), zones)
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, "Z123456_www.example.com._A", records[0].ID)
	assert.Equal(t, "aws_route53_record", records[0].Type)
	assert.Equal(t, "Z123456", records[0].ZoneID)
}

func TestS3Probe_Buckets(t *testing.T) {
	mockClient := &mockS3API{
		ListBucketsFunc: func(ctx context.Context, params *s3.ListBucketsInput, optFns ...func(*s3.Options)) (*s3.ListBucketsOutput, error) {
			return &s3.ListBucketsOutput{
				Buckets: []s3types.Bucket{
					{Name: aws.String("my-app-assets")},
					{Name: aws.String("my-app-logs")},
				},
			}, nil
		},
	}

	probe := NewS3Probe(mockClient)
	buckets, err := probe.Buckets(context.Background())
	require.NoError(t, err)

	require.Len(t, buckets, 2)
	assert.Equal(t, "my-app-assets", buckets[0].ID)
	assert.Equal(t, "aws_s3_bucket", buckets[0].Type)
}

func TestIAMProbe_Policies_LocalScopeOnly(t *testing.T) {
	mockClient := &mockIAMAPI{
		ListPoliciesFunc: func(ctx context.Context, params *iam.ListPoliciesInput, optFns ...func(*iam.Options)) (*iam.ListPoliciesOutput, error) {
			assert.Equal(t, iamtypes.PolicyScopeTypeLocal, params.Scope)
			return &iam.ListPoliciesOutput{
				Policies: []iamtypes.Policy{
					{PolicyName: aws.String("app-deploy-policy")},
				},
			}, nil
		},
	}

	probe := NewIAMProbe(mockClient)
	policies, err := probe.Policies(context.Background())
	require.NoError(t, err)

	require.Len(t, policies, 1)
	assert.Equal(t, "app-deploy-policy", policies[0].ID)
	assert.Equal(t, "aws_iam_policy", policies[0].Type)
}

func TestIAMProbe_Roles_Pagination(t *testing.T) {
	calls := 0
	mockClient := &mockIAMAPI{
		ListRolesFunc: func(ctx context.Context, params *iam.ListRolesInput, optFns ...func(*iam.Options)) (*iam.ListRolesOutput, error) {
			calls++
			if calls == 1 {
				return &iam.ListRolesOutput{
					Roles:       []iamtypes.Role{{RoleName: aws.String("role-a")}},
					IsTruncated: true,
					Marker:      aws.String("marker-1"),
				}, nil
			}
			assert.Equal(t, "marker-1", aws.ToString(params.Marker))
			return &iam.ListRolesOutput{
				Roles: []iamtypes.Role{{RoleName: aws.String("role-b")}},
			}, nil
		},
	}

	probe := NewIAMProbe(mockClient)
	roles, err := probe.Roles(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
	require.Len(t, roles, 2)
	assert.Equal(t, "role-a", roles[0].ID)
	assert.Equal(t, "role-b", roles[1].ID)
}
