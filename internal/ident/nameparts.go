package ident

import (
	"fmt"
	"strings"
)

// Discriminator identifies which kind of generated object a name part
// scheme is building a name for. Generated names assemble from a
// category tag plus the parent object's name plus a discriminator
// suffix.
type Discriminator string

const (
	DiscriminatorPrimaryKeyIndex Discriminator = "PrimaryKey"
	DiscriminatorUniqueIndex     Discriminator = "Unique"
	DiscriminatorForeignKey      Discriminator = "ForeignKey"
	DiscriminatorCheck           Discriminator = "Check"
	DiscriminatorBackingFile     Discriminator = "File"
	DiscriminatorMinField        Discriminator = "Min"
	DiscriminatorMaxField        Discriminator = "Max"
	DiscriminatorClusterID       Discriminator = "ClusterID"
	DiscriminatorNeighborID      Discriminator = "NeighborID"
	DiscriminatorScore           Discriminator = "Score"
)

// GeneratedName builds a deterministic name for an auto-synthesized object:
// <Category>_<ParentName>_<Discriminator>[_<column>...], lower-cased, with
// spaces and punctuation in the parent name folded to underscores so the
// result is always a legal identifier.
func GeneratedName(category string, parentName string, discriminator Discriminator, columns ...string) string {
	parts := []string{sanitize(category), sanitize(parentName), sanitize(string(discriminator))}
	for _, c := range columns {
		parts = append(parts, sanitize(c))
	}
	return strings.Join(nonEmpty(parts), "_")
}

// VirtualFieldName builds the name of a virtual (function-projection)
// field, e.g. min_<key>, max_<key>, score, clusterid.
func VirtualFieldName(discriminator Discriminator, keyField string) string {
	if keyField == "" {
		return strings.ToLower(string(discriminator))
	}
	return fmt.Sprintf("%s_%s", strings.ToLower(string(discriminator)), sanitize(keyField))
}

func sanitize(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return strings.Trim(b.String(), "_")
}

func nonEmpty(parts []string) []string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
