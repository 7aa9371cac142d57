package snapshot

import (
	"regexp"
	"strings"

	"github.com/Callable-APIs/infra/internal/types"
)

// azPattern matches an availability zone and captures its region prefix,
// e.g. "us-east-1a" -> "us-east-1".
var azPattern = regexp.MustCompile(`^([a-z]{2}(?:-[a-z]+)+-\d+)[a-z]?$`)

// ClassifyRegion infers the AWS region a snapshot was captured in by looking
// at availability zone fields on the zonal resources it contains. Instances
// are checked first, then subnets, then volumes. When no zonal resource
// carries a usable availability zone the fallback is returned and the second
// return value is false.
func ClassifyRegion(snap types.Snapshot, fallback string) (string, bool) {
	for _, resource := range snap[types.KindEC2Instances] {
		placement := resource.Map("Placement")
		if region := regionFromAZ(stringField(placement, "AvailabilityZone")); region != "" {
			return region, true
		}
	}

	for _, resource := range snap[types.KindSubnets] {
		if region := regionFromAZ(resource.Str("AvailabilityZone")); region != "" {
			return region, true
		}
	}

	for _, resource := range snap[types.KindVolumes] {
		if region := regionFromAZ(resource.Str("AvailabilityZone")); region != "" {
			return region, true
		}
	}

	return fallback, false
}

func regionFromAZ(az string) string {
	match := azPattern.FindStringSubmatch(az)
	if match == nil {
		return ""
	}
	return match[1]
}

func stringField(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	value, ok := m[key].(string)
	if !ok {
		return ""
	}
	return value
}

// RegionAlias converts a region name into an identifier usable as a
// Terraform provider alias and file stem, e.g. "us-east-1" -> "us_east_1".
func RegionAlias(region string) string {
	return strings.ReplaceAll(region, "-", "_")
}
