package valigo

// Kind discriminates schema variants. Every schema reports exactly one Kind;
// structural checks dispatch on it exhaustively instead of reflecting over
// implementations.
type Kind string

const (
	KindString      Kind = "string"
	KindNumber      Kind = "number"
	KindInteger     Kind = "integer"
	KindBoolean     Kind = "boolean"
	KindBigInt      Kind = "bigint"
	KindNull        Kind = "null"
	KindUndefined   Kind = "undefined"
	KindNaN         Kind = "nan"
	KindObject      Kind = "object"
	KindRecord      Kind = "record"
	KindArray       Kind = "array"
	KindTuple       Kind = "tuple"
	KindMap         Kind = "map"
	KindSet         Kind = "set"
	KindOptional    Kind = "optional"
	KindNullable    Kind = "nullable"
	KindNullish     Kind = "nullish"
	KindNonOptional Kind = "non_optional"
	KindNonNullable Kind = "non_nullable"
	KindNonNullish  Kind = "non_nullish"
	KindUnion       Kind = "union"
	KindEnum        Kind = "enum"
	KindNativeEnum  Kind = "native_enum"
	KindInstance    Kind = "instance"
	KindSpecial     Kind = "special"
	KindAny         Kind = "any"
	KindUnknown     Kind = "unknown"
	KindNever       Kind = "never"
	KindRecursive   Kind = "recursive"
	KindBound       Kind = "bound"
)
