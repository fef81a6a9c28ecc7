// Package columns maps raw extractor headers onto the four canonical
// BOM fields using configured alias lists.
package columns

import (
	"strings"
	"unicode"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/partsync/bomcompare/internal/bom"
)

// Aliases lists the accepted raw header names per canonical field.
type Aliases struct {
	PartNumber     []string
	Quantity       []string
	RefDesignators []string
	Description    []string
}

// Mapping holds the resolved column index per canonical field, -1 when
// the field has no column. PartNumber and Quantity are always >= 0 in
// a mapping returned without error.
type Mapping struct {
	PartNumber     int
	Quantity       int
	RefDesignators int
	Description    int
}

// Map resolves raw headers against the alias lists. Matching runs in
// three passes of decreasing strictness: case-insensitive exact match,
// normalized substring match, then fuzzy match. A header claimed by one
// field is not considered for the others. part_number and quantity are
// mandatory; ref_designators and description default to absent.
func Map(headers []string, aliases Aliases) (Mapping, error) {
	m := Mapping{PartNumber: -1, Quantity: -1, RefDesignators: -1, Description: -1}

	normalized := make([]string, len(headers))
	for i, h := range headers {
		normalized[i] = normalizeHeader(h)
	}
	claimed := make([]bool, len(headers))

	fields := []struct {
		name    string
		aliases []string
		idx     *int
	}{
		{bom.FieldPartNumber, aliases.PartNumber, &m.PartNumber},
		{bom.FieldQuantity, aliases.Quantity, &m.Quantity},
		{bom.FieldRefDesignators, aliases.RefDesignators, &m.RefDesignators},
		{bom.FieldDescription, aliases.Description, &m.Description},
	}

	type matcher func(header, alias string) bool
	passes := []matcher{
		func(header, alias string) bool { return header == normalizeHeader(alias) },
		func(header, alias string) bool { return strings.Contains(header, normalizeHeader(alias)) },
		func(header, alias string) bool { return fuzzy.MatchNormalizedFold(normalizeHeader(alias), header) },
	}

	for _, match := range passes {
		for _, f := range fields {
			if *f.idx >= 0 {
				continue
			}
			for i, header := range normalized {
				if claimed[i] || header == "" {
					continue
				}
				if anyAlias(header, f.aliases, match) {
					*f.idx = i
					claimed[i] = true
					break
				}
			}
		}
	}

	if m.PartNumber < 0 {
		return m, &bom.ParseError{Message: "missing required column: " + bom.FieldPartNumber}
	}
	if m.Quantity < 0 {
		return m, &bom.ParseError{Message: "missing required column: " + bom.FieldQuantity}
	}
	return m, nil
}

func anyAlias(header string, aliases []string, match func(header, alias string) bool) bool {
	for _, alias := range aliases {
		if match(header, alias) {
			return true
		}
	}
	return false
}

// normalizeHeader lowercases and strips everything but letters and
// digits, so "Ref. Des" and "ref_des" compare equal.
func normalizeHeader(h string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return -1
	}, h)
}
