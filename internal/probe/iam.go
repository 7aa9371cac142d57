package probe

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	iamtypes "github.com/aws/aws-sdk-go-v2/service/iam/types"

	"github.com/Callable-APIs/infra/internal/types"
	"github.com/Callable-APIs/infra/internal/utils"
)

// IAMProbe discovers IAM roles and customer managed policies.
type IAMProbe struct {
	client IAMAPI
}

func NewIAMProbe(client IAMAPI) *IAMProbe {
	return &IAMProbe{client: client}
}

func (p *IAMProbe) Roles(ctx context.Context) ([]types.DiscoveredResource, error) {
	roles := []types.DiscoveredResource{}
	var marker *string

	for {
		output, err := p.client.ListRoles(ctx, &iam.ListRolesInput{Marker: marker})
		if err != nil {
			return nil, fmt.Errorf("❌ Failed to list IAM roles: %v", err)
		}

		for _, role := range output.Roles {
			name := aws.ToString(role.RoleName)

			data, err := utils.StructToMap(role)
			if err != nil {
				return nil, fmt.Errorf("❌ Failed to normalize IAM role %s: %v", name, err)
			}

			roles = append(roles, types.DiscoveredResource{
				Type: "aws_iam_role",
				ID:   name,
				Data: data,
				Tags: flattenIAMTags(role.Tags),
			})
		}

		if !output.IsTruncated {
			break
		}
		marker = output.Marker
	}

	return roles, nil
}

// Policies lists customer managed policies only. AWS managed policies cannot
// be imported and are excluded via the Local scope.
func (p *IAMProbe) Policies(ctx context.Context) ([]types.DiscoveredResource, error) {
	policies := []types.DiscoveredResource{}
	var marker *string

	for {
		output, err := p.client.ListPolicies(ctx, &iam.ListPoliciesInput{
			Scope:  iamtypes.PolicyScopeTypeLocal,
			Marker: marker,
		})
		if err != nil {
			return nil, fmt.Errorf("❌ Failed to list IAM policies: %v", err)
		}

		for _, policy := range output.Policies {
			name := aws.ToString(policy.PolicyName)

			data, err := utils.StructToMap(policy)
			if err != nil {
				return nil, fmt.Errorf("❌ Failed to normalize IAM policy %s: %v", name, err)
			}

			policies = append(policies, types.DiscoveredResource{
				Type: "aws_iam_policy",
				ID:   name,
				Data: data,
				Tags: flattenIAMTags(policy.Tags),
			})
		}

		if !output.IsTruncated {
			break
		}
		marker = output.Marker
	}

	return policies, nil
}
