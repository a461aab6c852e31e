package entities

// TypeTag is a type-tag string as produced by the script engine's typeof operator.
type TypeTag = string

// The complete set of tags an ECMAScript engine can produce.
const (
	TypeUndefined TypeTag = "undefined"
	TypeObject    TypeTag = "object"
	TypeBoolean   TypeTag = "boolean"
	TypeNumber    TypeTag = "number"
	TypeBigInt    TypeTag = "bigint"
	TypeString    TypeTag = "string"
	TypeSymbol    TypeTag = "symbol"
	TypeFunction  TypeTag = "function"
)

// KnownTypeTags lists every tag in ECMAScript order.
var KnownTypeTags = []TypeTag{
	TypeUndefined, TypeObject, TypeBoolean, TypeNumber,
	TypeBigInt, TypeString, TypeSymbol, TypeFunction,
}

// IsKnownTypeTag reports whether tag is one of KnownTypeTags.
func IsKnownTypeTag(tag string) bool {
	for _, known := range KnownTypeTags {
		if tag == known {
			return true
		}
	}
	return false
}
