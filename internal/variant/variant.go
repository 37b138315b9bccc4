// Package variant implements the product variant selection core: grouping
// the catalog into variant groups, extracting selectable dimension values,
// resolving a dimension triple to a single tire, and driving the selection
// session through to cart or order handoff.
package variant

import (
	"sort"
	"strconv"
	"strings"

	"tire-service/internal/model"
)

// Dimension identifies one of the three independently selectable tire facets
type Dimension string

const (
	DimensionWidth    Dimension = "width"
	DimensionProfile  Dimension = "profile"
	DimensionDiameter Dimension = "diameter"
)

// Valid reports whether d names a known dimension
func (d Dimension) Valid() bool {
	switch d {
	case DimensionWidth, DimensionProfile, DimensionDiameter:
		return true
	}
	return false
}

func dimensionValue(p *model.Product, d Dimension) string {
	switch d {
	case DimensionWidth:
		return p.Width
	case DimensionProfile:
		return p.Profile
	case DimensionDiameter:
		return p.Diameter
	}
	return ""
}

// VariantsOf filters the catalog to the variant group of base: every product
// sharing base's name and brand, in catalog order. A product is always a
// member of its own group.
func VariantsOf(catalog []model.Product, base model.Product) []model.Product {
	var group []model.Product
	for _, p := range catalog {
		if p.Name == base.Name && p.Brand == base.Brand {
			group = append(group, p)
		}
	}
	return group
}

// DistinctSorted returns the distinct values of one dimension across a
// variant group, sorted ascending by their numeric value. Width and profile
// parse as plain base-10 integers; diameter strips a single leading "R"
// before parsing but keeps the original string as the selectable value.
// Values that do not parse sort after every value that does, keeping their
// original relative order.
func DistinctSorted(variants []model.Product, d Dimension) []string {
	seen := make(map[string]struct{}, len(variants))
	var values []string
	for i := range variants {
		v := dimensionValue(&variants[i], d)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}

	sort.SliceStable(values, func(i, j int) bool {
		a, aok := numericKey(values[i], d)
		b, bok := numericKey(values[j], d)
		if aok != bok {
			return aok
		}
		if !aok {
			// both unparsable, keep insertion order
			return false
		}
		return a < b
	})
	return values
}

func numericKey(value string, d Dimension) (int, bool) {
	if d == DimensionDiameter {
		value = strings.TrimPrefix(value, "R")
	}
	n, err := strconv.Atoi(value)
	return n, err == nil
}

// Resolve returns the single variant whose dimensions equal the given triple
// exactly, or nil when no variant (or, defensively, more than one) matches.
// Comparison is plain string equality with no normalization.
func Resolve(variants []model.Product, width, profile, diameter string) *model.Product {
	var match *model.Product
	for i := range variants {
		p := &variants[i]
		if p.Width == width && p.Profile == profile && p.Diameter == diameter {
			if match != nil {
				return nil
			}
			match = p
		}
	}
	return match
}
