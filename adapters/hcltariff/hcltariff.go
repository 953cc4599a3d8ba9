// Package hcltariff loads tariff tables authored as HCL documents.
//
// A document is a sequence of rule blocks; block order is table order
// and therefore the tie-break order among equal priorities:
//
//	rule "intra-madrid" {
//	  origin        = "Madrid"
//	  destination   = "Madrid"
//	  carrier       = "*"
//	  min_weight    = 0
//	  max_weight    = 1000
//	  rate_per_unit = 0.04
//	  fixed_fee     = 25
//	  priority      = 2
//	}
package hcltariff

import (
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/shopspring/decimal"
	"github.com/zclconf/go-cty/cty"

	"porte-calc/core/types"
	"porte-calc/internal/errors"
)

var documentSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "rule", LabelNames: []string{"id"}},
	},
}

var ruleSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "origin", Required: true},
		{Name: "destination", Required: true},
		{Name: "carrier"},
		{Name: "min_weight", Required: true},
		{Name: "max_weight", Required: true},
		{Name: "rate_per_unit", Required: true},
		{Name: "fixed_fee", Required: true},
		{Name: "priority"},
	},
}

// Load reads an HCL tariff document from a file
func Load(path string) (*types.TariffTable, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.SourceUnavailable(path, err)
	}
	return Parse(src, path)
}

// Parse builds a tariff table from HCL source. Any malformed rule
// block fails the whole table.
func Parse(src []byte, filename string) (*types.TariffTable, error) {
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, errors.Wrap(errors.TypeMalformedTable, "invalid HCL", diags)
	}

	content, diags := file.Body.Content(documentSchema)
	if diags.HasErrors() {
		return nil, errors.Wrap(errors.TypeMalformedTable, "invalid tariff document", diags)
	}

	rules := make([]types.TariffRule, 0, len(content.Blocks))
	for _, block := range content.Blocks {
		rule, err := parseRule(block)
		if err != nil {
			if e, ok := err.(*errors.Error); ok {
				return nil, e.WithContext("rule", block.Labels[0])
			}
			return nil, err
		}
		rules = append(rules, rule)
	}

	return types.NewTariffTable(rules)
}

func parseRule(block *hcl.Block) (types.TariffRule, error) {
	rule := types.TariffRule{ID: block.Labels[0]}

	content, diags := block.Body.Content(ruleSchema)
	if diags.HasErrors() {
		return rule, errors.Wrap(errors.TypeMalformedRule, "invalid rule block", diags)
	}

	var err error
	if rule.OriginPattern, err = stringAttr(content, "origin"); err != nil {
		return rule, err
	}
	if rule.DestinationPattern, err = stringAttr(content, "destination"); err != nil {
		return rule, err
	}
	if _, ok := content.Attributes["carrier"]; ok {
		if rule.CarrierPattern, err = stringAttr(content, "carrier"); err != nil {
			return rule, err
		}
	}

	if rule.MinWeight, err = decimalAttr(content, "min_weight"); err != nil {
		return rule, err
	}
	if rule.MaxWeight, err = decimalAttr(content, "max_weight"); err != nil {
		return rule, err
	}
	if rule.RatePerUnit, err = decimalAttr(content, "rate_per_unit"); err != nil {
		return rule, err
	}
	if rule.FixedFee, err = decimalAttr(content, "fixed_fee"); err != nil {
		return rule, err
	}

	if _, ok := content.Attributes["priority"]; ok {
		p, err := decimalAttr(content, "priority")
		if err != nil {
			return rule, err
		}
		if !p.Equal(p.Truncate(0)) {
			return rule, errors.MalformedRule("priority must be an integer")
		}
		rule.Priority = int(p.IntPart())
	}

	return rule, nil
}

func attrValue(content *hcl.BodyContent, name string, want cty.Type) (cty.Value, error) {
	attr := content.Attributes[name]
	v, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return cty.NilVal, errors.Wrapf(errors.TypeMalformedRule, diags, "cannot evaluate %s", name)
	}
	if v.Type() != want {
		return cty.NilVal, errors.Newf(errors.TypeMalformedRule, "%s has type %s, want %s", name, v.Type().FriendlyName(), want.FriendlyName())
	}
	return v, nil
}

func stringAttr(content *hcl.BodyContent, name string) (string, error) {
	v, err := attrValue(content, name, cty.String)
	if err != nil {
		return "", err
	}
	return v.AsString(), nil
}

func decimalAttr(content *hcl.BodyContent, name string) (decimal.Decimal, error) {
	v, err := attrValue(content, name, cty.Number)
	if err != nil {
		return decimal.Zero, err
	}
	d, err := decimal.NewFromString(v.AsBigFloat().Text('f', -1))
	if err != nil {
		return decimal.Zero, errors.Newf(errors.TypeMalformedRule, "%s is not a finite number", name)
	}
	return d, nil
}
