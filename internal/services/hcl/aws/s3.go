package aws

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"

	"github.com/Callable-APIs/infra/internal/types"
	"github.com/Callable-APIs/infra/internal/utils"
)

// GenerateS3BucketResources emits the bucket declaration together with its
// versioning and server-side encryption companions.
func GenerateS3BucketResources(tfResourceName string, resource types.DiscoveredResource, providerAlias string) []*hclwrite.Block {
	bucketName := stringAt(resource.Data, "Name")
	if bucketName == "" {
		bucketName = resource.ID
	}

	bucketBlock := hclwrite.NewBlock("resource", []string{"aws_s3_bucket", tfResourceName})
	bucketBody := bucketBlock.Body()
	setProviderAlias(bucketBody, providerAlias)
	bucketBody.SetAttributeValue("bucket", cty.StringVal(bucketName))
	bucketBody.SetAttributeValue("tags", tagsValue(bucketName, resource.Tags))

	bucketRef := fmt.Sprintf("aws_s3_bucket.%s.id", tfResourceName)

	versioningBlock := hclwrite.NewBlock("resource", []string{"aws_s3_bucket_versioning", tfResourceName})
	versioningBody := versioningBlock.Body()
	setProviderAlias(versioningBody, providerAlias)
	versioningBody.SetAttributeRaw("bucket", utils.TokensForResourceReference(bucketRef))
	versioningConfig := versioningBody.AppendNewBlock("versioning_configuration", nil).Body()
	versioningConfig.SetAttributeValue("status", cty.StringVal("Enabled"))

	encryptionBlock := hclwrite.NewBlock("resource", []string{"aws_s3_bucket_server_side_encryption_configuration", tfResourceName})
	encryptionBody := encryptionBlock.Body()
	setProviderAlias(encryptionBody, providerAlias)
	encryptionBody.SetAttributeRaw("bucket", utils.TokensForResourceReference(bucketRef))
	ruleBody := encryptionBody.AppendNewBlock("rule", nil).Body()
	defaultBody := ruleBody.AppendNewBlock("apply_server_side_encryption_by_default", nil).Body()
	defaultBody.SetAttributeValue("sse_algorithm", cty.StringVal("AES256"))

	return []*hclwrite.Block{bucketBlock, versioningBlock, encryptionBlock}
}
