package utils

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestStructToMap(t *testing.T) {
	vpc := ec2types.Vpc{
		VpcId:     aws.String("vpc-12345678"),
		CidrBlock: aws.String("10.0.0.0/16"),
	}

	result, err := StructToMap(vpc)
	require.NoError(t, err)

	assert.Equal(t, "vpc-12345678", result["VpcId"])
	assert.Equal(t, "10.0.0.0/16", result["CidrBlock"])
}

func TestTokensForStringList(t *testing.T) {
	tests := []struct {
		name  string
		items []string
		want  string
	}{
		{name: "empty list", items: nil, want: "attr = []\n"},
		{name: "two items", items: []string{"sg-1", "sg-2"}, want: "attr = [\"sg-1\", \"sg-2\"]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := hclwrite.NewEmptyFile()
			f.Body().SetAttributeRaw("attr", TokensForStringList(tt.items))
			assert.Equal(t, tt.want, string(f.Bytes()))
		})
	}
}

func TestTokensForResourceReference(t *testing.T) {
	f := hclwrite.NewEmptyFile()
	f.Body().SetAttributeRaw("value", TokensForResourceReference("aws_vpc.main.id"))
	assert.Equal(t, "value = aws_vpc.main.id\n", string(f.Bytes()))
}

func TestTokensForVarReference(t *testing.T) {
	f := hclwrite.NewEmptyFile()
	f.Body().SetAttributeRaw("region", TokensForVarReference("aws_region"))
	f.Body().SetAttributeValue("name", cty.StringVal("example"))
	out := string(f.Bytes())
	assert.Contains(t, out, "region = var.aws_region")
	assert.Contains(t, out, `name   = "example"`)
}
