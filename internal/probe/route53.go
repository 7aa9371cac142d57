package probe

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/route53"
	route53types "github.com/aws/aws-sdk-go-v2/service/route53/types"

	"github.com/Callable-APIs/infra/internal/types"
	"github.com/Callable-APIs/infra/internal/utils"
)

// Route53Probe discovers hosted zones and the records inside them.
type Route53Probe struct {
	client Route53API
}

func NewRoute53Probe(client Route53API) *Route53Probe {
	return &Route53Probe{client: client}
}

// Zones lists hosted zones. Zone IDs come back from the API with a
// "/hostedzone/" prefix, which Terraform does not use, so it is stripped.
func (p *Route53Probe) Zones(ctx context.Context) ([]types.DiscoveredResource, error) {
	zones := []types.DiscoveredResource{}
	var marker *string

	for {
		output, err := p.client.ListHostedZones(ctx, &route53.ListHostedZonesInput{Marker: marker})
		if err != nil {
			return nil, fmt.Errorf("❌ Failed to list hosted zones: %v", err)
		}

		for _, zone := range output.HostedZones {
			zoneID := strings.TrimPrefix(aws.ToString(zone.Id), "/hostedzone/")

			data, err := utils.StructToMap(zone)
			if err != nil {
				return nil, fmt.Errorf("❌ Failed to normalize hosted zone %s: %v", zoneID, err)
			}
			data["Id"] = zoneID

			zones = append(zones, types.DiscoveredResource{
				Type: "aws_route53_zone",
				ID:   zoneID,
				Data: data,
			})
		}

		if !output.IsTruncated {
			break
		}
		marker = output.NextMarker
	}

	return zones, nil
}

// Records lists the record sets of the given zones. NS and SOA records are
// managed by the zone itself and are skipped. A record has no identifier of
// its own, so one is composed from zone ID, record name and record type.
func (p *Route53Probe) Records(ctx context.Context, zones []types.DiscoveredResource) ([]types.DiscoveredResource, error) {
	records := []types.DiscoveredResource{}

	for _, zone := range zones {
		zoneID := zone.ID

		var recordName *string
		var recordType route53types.RRType

		for {
			input := &route53.ListResourceRecordSetsInput{
				HostedZoneId:    aws.String(zoneID),
				StartRecordName: recordName,
			}
			if recordType != "" {
				input.StartRecordType = recordType
			}

			output, err := p.client.ListResourceRecordSets(ctx, input)
			if err != nil {
				return nil, fmt.Errorf("❌ Failed to list record sets for zone %s: %v", zoneID, err)
			}

			for _, record := range output.ResourceRecordSets {
				switch record.Type {
				case route53types.RRTypeNs, route53types.RRTypeSoa:
					continue
				}

				data, err := utils.StructToMap(record)
				if err != nil {
					return nil, fmt.Errorf("❌ Failed to normalize record %s in zone %s: %v", aws.ToString(record.Name), zoneID, err)
				}

				records = append(records, types.DiscoveredResource{
					Type:   "aws_route53_record",
					ID:     fmt.Sprintf("%s_%s_%s", zoneID, aws.ToString(record.Name), record.Type),
					Data:   data,
					ZoneID: zoneID,
				})
			}

			if !output.IsTruncated {
				break
			}
			recordName = output.NextRecordName
			recordType = output.NextRecordType
		}
	}

	return records, nil
}
