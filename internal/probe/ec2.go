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

// EC2Probe discovers compute instances, EBS volumes and EBS snapshots.
type EC2Probe struct {
	client EC2API
}

func NewEC2Probe(client EC2API) *EC2Probe {
	return &EC2Probe{client: client}
}

// Instances lists EC2 instances, excluding instances that are already on their
// way out (terminated, shutting-down): those are not importable.
func (p *EC2Probe) Instances(ctx context.Context) ([]types.DiscoveredResource, error) {
	instances := []types.DiscoveredResource{}
	var nextToken *string

	for {
		output, err := p.client.DescribeInstances(ctx, &ec2.DescribeInstancesInput{NextToken: nextToken})
		if err != nil {
			return nil, fmt.Errorf("❌ Failed to describe instances: %v", err)
		}

		for _, reservation := range output.Reservations {
			for _, instance := range reservation.Instances {
				if instance.State != nil {
					switch instance.State.Name {
					case ec2types.InstanceStateNameTerminated, ec2types.InstanceStateNameShuttingDown:
						continue
					}
				}

				data, err := utils.StructToMap(instance)
				if err != nil {
					return nil, fmt.Errorf("❌ Failed to normalize instance %s: %v", aws.ToString(instance.InstanceId), err)
				}

				instances = append(instances, types.DiscoveredResource{
					Type: "aws_instance",
					ID:   aws.ToString(instance.InstanceId),
					Data: data,
					Tags: flattenEC2Tags(instance.Tags),
				})
			}
		}

		if output.NextToken == nil {
			break
		}
		nextToken = output.NextToken
	}

	return instances, nil
}

// Volumes lists EBS volumes, excluding ones in a deleting or deleted state.
func (p *EC2Probe) Volumes(ctx context.Context) ([]types.DiscoveredResource, error) {
	volumes := []types.DiscoveredResource{}
	var nextToken *string

	for {
		output, err := p.client.DescribeVolumes(ctx, &ec2.DescribeVolumesInput{NextToken: nextToken})
		if err != nil {
			return nil, fmt.Errorf("❌ Failed to describe volumes: %v", err)
		}

		for _, volume := range output.Volumes {
			switch volume.State {
			case ec2types.VolumeStateDeleted, ec2types.VolumeStateDeleting:
				continue
			}

			data, err := utils.StructToMap(volume)
			if err != nil {
				return nil, fmt.Errorf("❌ Failed to normalize volume %s: %v", aws.ToString(volume.VolumeId), err)
			}

			volumes = append(volumes, types.DiscoveredResource{
				Type: "aws_ebs_volume",
				ID:   aws.ToString(volume.VolumeId),
				Data: data,
				Tags: flattenEC2Tags(volume.Tags),
			})
		}

		if output.NextToken == nil {
			break
		}
		nextToken = output.NextToken
	}

	return volumes, nil
}

// Snapshots lists EBS snapshots owned by the current account, excluding ones
// in a deleting or deleted state.
func (p *EC2Probe) Snapshots(ctx context.Context) ([]types.DiscoveredResource, error) {
	snapshots := []types.DiscoveredResource{}
	var nextToken *string

	for {
		output, err := p.client.DescribeSnapshots(ctx, &ec2.DescribeSnapshotsInput{
			OwnerIds:  []string{"self"},
			NextToken: nextToken,
		})
		if err != nil {
			return nil, fmt.Errorf("❌ Failed to describe snapshots: %v", err)
		}

		for _, snapshot := range output.Snapshots {
			// The SDK enum has no deleted/deleting values, so compare raw.
			switch string(snapshot.State) {
			case "deleted", "deleting":
				continue
			}

			data, err := utils.StructToMap(snapshot)
			if err != nil {
				return nil, fmt.Errorf("❌ Failed to normalize snapshot %s: %v", aws.ToString(snapshot.SnapshotId), err)
			}

			snapshots = append(snapshots, types.DiscoveredResource{
				Type: "aws_ebs_snapshot",
				ID:   aws.ToString(snapshot.SnapshotId),
				Data: data,
				Tags: flattenEC2Tags(snapshot.Tags),
			})
		}

		if output.NextToken == nil {
			break
		}
		nextToken = output.NextToken
	}

	return snapshots, nil
}
