package aws

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"

	"github.com/Callable-APIs/infra/internal/utils"
)

// GenerateImportBlock produces a Terraform import block binding an existing
// resource ID to its declared address.
func GenerateImportBlock(resourceType, tfResourceName, importID string) *hclwrite.Block {
	importBlock := hclwrite.NewBlock("import", nil)
	body := importBlock.Body()

	body.SetAttributeRaw("to", utils.TokensForResourceReference(fmt.Sprintf("%s.%s", resourceType, tfResourceName)))
	body.SetAttributeValue("id", cty.StringVal(importID))

	return importBlock
}
