// Package aws builds hclwrite blocks for AWS resources reconstructed from
// discovery data.
package aws

import (
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"

	"github.com/Callable-APIs/infra/internal/utils"
)

// tagsValue assembles a tags object from discovered tags. A Name tag is
// always present, defaulting to the given value when discovery found none.
func tagsValue(defaultName string, tags map[string]string) cty.Value {
	values := map[string]cty.Value{
		"Name": cty.StringVal(defaultName),
	}
	for key, value := range tags {
		values[key] = cty.StringVal(value)
	}
	return cty.ObjectVal(values)
}

// setProviderAlias points a resource at the aliased provider of its region.
func setProviderAlias(body *hclwrite.Body, alias string) {
	if alias == "" {
		return
	}
	body.SetAttributeRaw("provider", utils.TokensForResourceReference("aws."+alias))
}

// Discovery data is decoded JSON, so nested fields come back as
// map[string]any and []any. These accessors keep the generators terse.

func stringAt(m map[string]any, key string) string {
	value, _ := m[key].(string)
	return value
}

func intAt(m map[string]any, key string, fallback int) int {
	switch v := m[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return fallback
	}
}

func boolAt(m map[string]any, key string) bool {
	value, _ := m[key].(bool)
	return value
}

func mapAt(m map[string]any, key string) map[string]any {
	value, _ := m[key].(map[string]any)
	return value
}

func listAt(m map[string]any, key string) []map[string]any {
	raw, _ := m[key].([]any)
	items := make([]map[string]any, 0, len(raw))
	for _, entry := range raw {
		if item, ok := entry.(map[string]any); ok {
			items = append(items, item)
		}
	}
	return items
}
