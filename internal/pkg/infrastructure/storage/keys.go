package storage

import (
	"strings"

	"github.com/diwise/eventity/pkg/eventity/types"
)

const (
	keyPrefix    string = types.ReservedPrefix
	keySeparator string = "-"
	keyEscape    string = `\`
)

var entityEscaper = strings.NewReplacer(keyEscape, keyEscape+keyEscape, keySeparator, keyEscape+keySeparator)

// FieldKey returns the list key for a field of an entity, "_<entity>-<field>".
// Separators and escape characters inside the entity id are escaped so that
// one entity's prefix never matches the keys of another.
func FieldKey(entityID, field string) string {
	return EntityPrefix(entityID) + field
}

// EntityPrefix is the prefix shared by every field key of an entity.
func EntityPrefix(entityID string) string {
	return keyPrefix + entityEscaper.Replace(entityID) + keySeparator
}
