package ast

import "strings"

// IsTermID reports whether id names a term (begins with "-").
func IsTermID(id string) bool {
	return strings.HasPrefix(id, "-")
}

// QualifiedID joins a parent message/term id and an attribute name into the
// flattened "parent.attr" lookup key the store uses.
func QualifiedID(parentID, attrName string) string {
	return parentID + "." + attrName
}

// SplitQualifiedID splits a "parent.attr" id into its parts. ok is false if
// id carries no attribute qualifier.
func SplitQualifiedID(id string) (parent, attr string, ok bool) {
	i := strings.IndexByte(id, '.')
	if i < 0 {
		return id, "", false
	}
	return id[:i], id[i+1:], true
}

// IsNumericKey reports whether a variant key is a NumberLiteral rather than
// a bare VariantName.
func IsNumericKey(key VariantKey) bool {
	_, ok := key.(*NumberLiteral)
	return ok
}
