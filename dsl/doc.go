package dsl

// Package dsl provides the schema constructors: primitives (String, Number,
// Integer, Boolean, BigInt, Null, Undefined, NaN), composites (Object, Record,
// Array, Tuple, Map, Set), modifiers (Optional, Nullable, Nullish,
// NonOptional, NonNullable, NonNullish, Recursive), alternatives (Union, Enum,
// NativeEnum, Instance, Special, Any, Unknown, Never), and struct binding
// (Bind).
//
// Every constructed schema is an immutable value; the chaining methods
// (Message, Strict, Default, ...) return modified copies so schemas can be
// shared across goroutines and reused as children of multiple composites.
