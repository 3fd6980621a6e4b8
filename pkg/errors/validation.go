package errors

import (
	"regexp"
	"unicode"
)

// maxKeyLength bounds node keys and type tags. Keys end up in JSON documents,
// DOT identifiers and URL paths, so unbounded values are rejected early.
const maxKeyLength = 256

// ValidateNodeKey validates a node identity key.
//
// The rules are intentionally conservative:
//   - No empty keys
//   - No control characters or null bytes
//   - Maximum length of 256 characters
func ValidateNodeKey(key string) error {
	if key == "" {
		return New(ErrCodeInvalidKey, "node key cannot be empty")
	}
	if len(key) > maxKeyLength {
		return New(ErrCodeInvalidKey, "node key too long (max %d characters)", maxKeyLength)
	}
	for _, r := range key {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidKey, "node key contains invalid control characters")
		}
	}
	return nil
}

// keyFieldRegex matches valid key field names: a JSON property that is also a
// plain identifier, so it can be used in TOML configs and flags.
var keyFieldRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// reservedNodeFields cannot be used as the key field because the codec maps
// them onto typed Node fields.
var reservedNodeFields = map[string]bool{
	"title":   true,
	"type":    true,
	"subtype": true,
	"x":       true,
	"y":       true,
}

// ValidateKeyField validates the name of the property that holds a node's key.
func ValidateKeyField(field string) error {
	if field == "" {
		return New(ErrCodeInvalidConfig, "key field cannot be empty")
	}
	if !keyFieldRegex.MatchString(field) {
		return New(ErrCodeInvalidConfig, "invalid key field name: %q", field)
	}
	if reservedNodeFields[field] {
		return New(ErrCodeInvalidConfig, "key field %q collides with a node property", field)
	}
	return nil
}

// typeTagRegex matches valid node/edge type tags.
var typeTagRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)

// ValidateTypeTag validates a node type, subtype or edge type tag.
func ValidateTypeTag(tag string) error {
	if tag == "" {
		return New(ErrCodeInvalidInput, "type tag cannot be empty")
	}
	if len(tag) > maxKeyLength {
		return New(ErrCodeInvalidInput, "type tag too long (max %d characters)", maxKeyLength)
	}
	if !typeTagRegex.MatchString(tag) {
		return New(ErrCodeInvalidInput, "invalid type tag: %q", tag)
	}
	return nil
}
