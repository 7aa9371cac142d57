package types

// ResourceKind identifies one category of discovered resource. The set is closed:
// probes populate it and the generator's renderer switch is keyed off it, so a new
// kind without a renderer shows up as an explicit gap rather than a silent drop.
type ResourceKind string

const (
	KindEC2Instances     ResourceKind = "ec2_instances"
	KindVPCs             ResourceKind = "vpcs"
	KindSubnets          ResourceKind = "subnets"
	KindSecurityGroups   ResourceKind = "security_groups"
	KindRouteTables      ResourceKind = "route_tables"
	KindInternetGateways ResourceKind = "internet_gateways"
	KindNATGateways      ResourceKind = "nat_gateways"
	KindElasticIPs       ResourceKind = "elastic_ips"
	KindVolumes          ResourceKind = "volumes"
	KindSnapshots        ResourceKind = "snapshots"
	KindRoute53Zones     ResourceKind = "route53_zones"
	KindRoute53Records   ResourceKind = "route53_records"
	KindS3Buckets        ResourceKind = "s3_buckets"
	KindIAMRoles         ResourceKind = "iam_roles"
	KindIAMPolicies      ResourceKind = "iam_policies"
)

// AllKinds returns every resource kind in discovery order. Ordering matters for
// DNS records, which are probed against the zone list discovered before them, and
// keeps name resolution deterministic at generation time.
func AllKinds() []ResourceKind {
	return []ResourceKind{
		KindEC2Instances,
		KindVPCs,
		KindSubnets,
		KindSecurityGroups,
		KindRouteTables,
		KindInternetGateways,
		KindNATGateways,
		KindElasticIPs,
		KindVolumes,
		KindSnapshots,
		KindRoute53Zones,
		KindRoute53Records,
		KindS3Buckets,
		KindIAMRoles,
		KindIAMPolicies,
	}
}

// DiscoveredResource is the normalized form every probe emits. Data mirrors the
// provider's raw describe-response shape and is opaque to the pipeline except for
// the specific fields the renderers read through the typed accessors below.
type DiscoveredResource struct {
	Type string            `json:"type"`
	ID   string            `json:"id"`
	Data map[string]any    `json:"data"`
	Tags map[string]string `json:"tags"`
	// ZoneID back-references the owning hosted zone for DNS records only.
	ZoneID string `json:"zone_id,omitempty"`
	// Region is inferred by the snapshot loader, never persisted.
	Region string `json:"-"`
}

// Str returns the string value of a top-level Data field, or "" when absent or of
// another type.
func (r DiscoveredResource) Str(key string) string {
	s, _ := r.Data[key].(string)
	return s
}

// Int returns the integer value of a top-level Data field. JSON round-tripping
// stores numbers as float64, so both representations are handled.
func (r DiscoveredResource) Int(key string) int64 {
	switch v := r.Data[key].(type) {
	case float64:
		return int64(v)
	case int:
		return int64(v)
	case int32:
		return int64(v)
	case int64:
		return v
	default:
		return 0
	}
}

// Bool returns the boolean value of a top-level Data field, or false.
func (r DiscoveredResource) Bool(key string) bool {
	b, _ := r.Data[key].(bool)
	return b
}

// Map returns a nested object field, or nil.
func (r DiscoveredResource) Map(key string) map[string]any {
	m, _ := r.Data[key].(map[string]any)
	return m
}

// List returns a nested list field, or nil.
func (r DiscoveredResource) List(key string) []any {
	l, _ := r.Data[key].([]any)
	return l
}

// Snapshot is an immutable, timestamped collection of discovered resources grouped
// by kind. Its JSON form is the discovery wire format: top-level kind keys, each
// mapping to a list of {type, id, data, tags} entries.
type Snapshot map[ResourceKind][]DiscoveredResource

func NewSnapshot() Snapshot {
	return Snapshot{}
}

// SetKind replaces the resource list for a kind, collapsing duplicate provider ids
// so that (kind, id) stays unique within the snapshot. On a duplicate the later
// entry overwrites the earlier one.
func (s Snapshot) SetKind(kind ResourceKind, resources []DiscoveredResource) {
	deduped := make([]DiscoveredResource, 0, len(resources))
	index := make(map[string]int, len(resources))
	for _, r := range resources {
		if i, seen := index[r.ID]; seen {
			deduped[i] = r
			continue
		}
		index[r.ID] = len(deduped)
		deduped = append(deduped, r)
	}
	s[kind] = deduped
}

// Upsert inserts one resource, overwriting any existing entry with the same id.
func (s Snapshot) Upsert(kind ResourceKind, resource DiscoveredResource) {
	for i, existing := range s[kind] {
		if existing.ID == resource.ID {
			s[kind][i] = resource
			return
		}
	}
	s[kind] = append(s[kind], resource)
}

// Counts returns the number of resources per kind, in discovery order, skipping
// kinds with no entries recorded at all.
func (s Snapshot) Counts() []KindCount {
	counts := []KindCount{}
	for _, kind := range AllKinds() {
		if resources, ok := s[kind]; ok {
			counts = append(counts, KindCount{Kind: kind, Count: len(resources)})
		}
	}
	return counts
}

// Total returns the number of resources across all kinds.
func (s Snapshot) Total() int {
	total := 0
	for _, resources := range s {
		total += len(resources)
	}
	return total
}

type KindCount struct {
	Kind  ResourceKind
	Count int
}
