package probe

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/Callable-APIs/infra/internal/types"
	"github.com/Callable-APIs/infra/internal/utils"
)

// S3Probe discovers S3 buckets. ListBuckets is account-wide, so bucket
// discovery is independent of the probed region.
type S3Probe struct {
	client S3API
}

func NewS3Probe(client S3API) *S3Probe {
	return &S3Probe{client: client}
}

func (p *S3Probe) Buckets(ctx context.Context) ([]types.DiscoveredResource, error) {
	output, err := p.client.ListBuckets(ctx, &s3.ListBucketsInput{})
	if err != nil {
		return nil, fmt.Errorf("❌ Failed to list buckets: %v", err)
	}

	buckets := []types.DiscoveredResource{}
	for _, bucket := range output.Buckets {
		name := aws.ToString(bucket.Name)

		data, err := utils.StructToMap(bucket)
		if err != nil {
			return nil, fmt.Errorf("❌ Failed to normalize bucket %s: %v", name, err)
		}

		buckets = append(buckets, types.DiscoveredResource{
			Type: "aws_s3_bucket",
			ID:   name,
			Data: data,
		})
	}

	return buckets, nil
}
