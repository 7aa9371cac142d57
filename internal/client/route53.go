package client

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/route53"
	"golang.org/x/time/rate"
)

// RateLimitedRoute53Client wraps the Route53 client with a token-bucket limiter.
// Route53 throttles the whole account at 5 requests per second, so listing records
// across many zones hits 429s without client-side pacing.
type RateLimitedRoute53Client struct {
	*route53.Client
	limiter *rate.Limiter
}

func NewRoute53Client(ctx context.Context, requestsPerSecond float64, burstSize int) (*RateLimitedRoute53Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRetryer(func() aws.Retryer {
			return retry.NewStandard(func(opts *retry.StandardOptions) {
				opts.MaxAttempts = 3
				opts.MaxBackoff = 20 * time.Second
			})
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("❌ Failed to load AWS config: %v", err)
	}

	route53Client := route53.NewFromConfig(cfg)
	limiter := rate.NewLimiter(rate.Limit(requestsPerSecond), burstSize)

	return &RateLimitedRoute53Client{
		Client:  route53Client,
		limiter: limiter,
	}, nil
}

func (c *RateLimitedRoute53Client) Wait(ctx context.Context) error {
	return c.limiter.Wait(ctx)
}

func (c *RateLimitedRoute53Client) ListHostedZones(ctx context.Context, params *route53.ListHostedZonesInput, optFns ...func(*route53.Options)) (*route53.ListHostedZonesOutput, error) {
	if err := c.Wait(ctx); err != nil {
		return nil, err
	}
	return c.Client.ListHostedZones(ctx, params, optFns...)
}

func (c *RateLimitedRoute53Client) ListResourceRecordSets(ctx context.Context, params *route53.ListResourceRecordSetsInput, optFns ...func(*route53.Options)) (*route53.ListResourceRecordSetsOutput, error) {
	if err := c.Wait(ctx); err != nil {
		return nil, err
	}
	return c.Client.ListResourceRecordSets(ctx, params, optFns...)
}
