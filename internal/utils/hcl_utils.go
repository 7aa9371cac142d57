package utils

import (
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

// TokensForResourceReference creates tokens for a bare expression such as a
// resource reference (e.g., "aws_vpc.main.id") or a function call.
func TokensForResourceReference(ref string) hclwrite.Tokens {
	return hclwrite.Tokens{
		&hclwrite.Token{Type: hclsyntax.TokenIdent, Bytes: []byte(ref)},
	}
}

// TokensForVarReference creates tokens for a Terraform variable reference
// (e.g., "var.my_variable").
func TokensForVarReference(varName string) hclwrite.Tokens {
	return hclwrite.Tokens{
		&hclwrite.Token{Type: hclsyntax.TokenIdent, Bytes: []byte("var." + varName)},
	}
}

// TokensForStringList creates tokens for a list of quoted strings
// (e.g., ["item1", "item2"]). An empty slice renders as [].
func TokensForStringList(items []string) hclwrite.Tokens {
	if len(items) == 0 {
		return hclwrite.TokensForValue(cty.ListValEmpty(cty.String))
	}

	values := make([]cty.Value, len(items))
	for i, item := range items {
		values[i] = cty.StringVal(item)
	}

	return hclwrite.TokensForValue(cty.ListVal(values))
}
