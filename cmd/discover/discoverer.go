package discover

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/Callable-APIs/infra/internal/client"
	"github.com/Callable-APIs/infra/internal/probe"
	"github.com/Callable-APIs/infra/internal/services/markdown"
	"github.com/Callable-APIs/infra/internal/snapshot"
	"github.com/Callable-APIs/infra/internal/types"
)

type DiscovererOpts struct {
	Region    string
	OutputDir string
}

type Discoverer struct {
	region  string
	store   *snapshot.Store
	ec2     *probe.EC2Probe
	network *probe.NetworkProbe
	route53 *probe.Route53Probe
	s3      *probe.S3Probe
	iam     *probe.IAMProbe
}

func NewDiscoverer(ctx context.Context, opts DiscovererOpts) (*Discoverer, error) {
	ec2Client, err := client.NewEC2Client(ctx, opts.Region)
	if err != nil {
		return nil, err
	}

	// Route53 throttles aggressively on zones with many records, hence the
	// conservative rate limit.
	route53Client, err := client.NewRoute53Client(ctx, 4, 1)
	if err != nil {
		return nil, err
	}

	s3Client, err := client.NewS3Client(ctx, opts.Region)
	if err != nil {
		return nil, err
	}

	iamClient, err := client.NewIAMClient(ctx, opts.Region)
	if err != nil {
		return nil, err
	}

	return &Discoverer{
		region:  opts.Region,
		store:   snapshot.NewStore(opts.OutputDir),
		ec2:     probe.NewEC2Probe(ec2Client),
		network: probe.NewNetworkProbe(ec2Client),
		route53: probe.NewRoute53Probe(route53Client),
		s3:      probe.NewS3Probe(s3Client),
		iam:     probe.NewIAMProbe(iamClient),
	}, nil
}

func (d *Discoverer) Run(ctx context.Context) error {
	slog.Info("🚀 Starting resource discovery", "region", d.region)

	snap := d.discover(ctx)

	path, err := d.store.Save(snap)
	if err != nil {
		return err
	}
	slog.Info("✅ Discovery snapshot written", "file", path, "resources", snap.Total())

	if err := d.printSummary(snap, path); err != nil {
		return fmt.Errorf("❌ Failed to print discovery summary: %v", err)
	}

	return nil
}

// discover runs every probe in a fixed order. A failing probe only costs its
// own kind: the failure is logged and the run moves on.
func (d *Discoverer) discover(ctx context.Context) types.Snapshot {
	snap := types.NewSnapshot()

	var zones []types.DiscoveredResource

	steps := []struct {
		kind types.ResourceKind
		run  func(ctx context.Context) ([]types.DiscoveredResource, error)
	}{
		{types.KindEC2Instances, d.ec2.Instances},
		{types.KindVPCs, d.network.VPCs},
		{types.KindSubnets, d.network.Subnets},
		{types.KindSecurityGroups, d.network.SecurityGroups},
		{types.KindRouteTables, d.network.RouteTables},
		{types.KindInternetGateways, d.network.InternetGateways},
		{types.KindNATGateways, d.network.NATGateways},
		{types.KindElasticIPs, d.network.ElasticIPs},
		{types.KindVolumes, d.ec2.Volumes},
		{types.KindSnapshots, d.ec2.Snapshots},
		{types.KindRoute53Zones, func(ctx context.Context) ([]types.DiscoveredResource, error) {
			discovered, err := d.route53.Zones(ctx)
			if err == nil {
				zones = discovered
			}
			return discovered, err
		}},
		{types.KindRoute53Records, func(ctx context.Context) ([]types.DiscoveredResource, error) {
			return d.route53.Records(ctx, zones)
		}},
		{types.KindS3Buckets, d.s3.Buckets},
		{types.KindIAMRoles, d.iam.Roles},
		{types.KindIAMPolicies, d.iam.Policies},
	}

	for _, step := range steps {
		resources, err := step.run(ctx)
		if err != nil {
			slog.Warn("⚠️ Probe failed, continuing without its resources", "kind", string(step.kind), "error", err)
			snap.SetKind(step.kind, nil)
			continue
		}
		snap.SetKind(step.kind, resources)
		slog.Info("Discovered resources", "kind", string(step.kind), "count", len(resources))
	}

	return snap
}

func (d *Discoverer) printSummary(snap types.Snapshot, path string) error {
	rows := [][]string{}
	for _, kindCount := range snap.Counts() {
		rows = append(rows, []string{string(kindCount.Kind), strconv.Itoa(kindCount.Count)})
	}

	md := markdown.New().
		AddHeading("Discovery Summary", 1).
		AddParagraph(fmt.Sprintf("Region: **%s**", d.region)).
		AddTable([]string{"Kind", "Count"}, rows).
		AddParagraph(fmt.Sprintf("Total resources: **%d**", snap.Total())).
		AddParagraph(fmt.Sprintf("Snapshot written to `%s`.", path)).
		AddList([]string{
			"Review the snapshot file",
			"Run 'infra generate' to produce Terraform configuration",
		})

	return md.Print()
}
