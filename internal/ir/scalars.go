package ir

// Built-in GraphQL scalars.
const (
	ScalarID      = "ID"
	ScalarString  = "String"
	ScalarInt     = "Int"
	ScalarFloat   = "Float"
	ScalarBoolean = "Boolean"
)

// Scalars the toolkit declares when a schema uses them.
const (
	ScalarBigInt        = "BigInt"
	ScalarDateTime      = "DateTime"
	ScalarDate          = "Date"
	ScalarTime          = "Time"
	ScalarLocalTime     = "LocalTime"
	ScalarLocalDateTime = "LocalDateTime"
	ScalarDuration      = "Duration"
)

// ExtendedScalars lists the non-built-in scalars in declaration order.
var ExtendedScalars = []string{
	ScalarBigInt,
	ScalarDateTime,
	ScalarDate,
	ScalarTime,
	ScalarLocalTime,
	ScalarLocalDateTime,
	ScalarDuration,
}

// IsBuiltinScalar reports whether name is one of the five GraphQL scalars.
func IsBuiltinScalar(name string) bool {
	switch name {
	case ScalarID, ScalarString, ScalarInt, ScalarFloat, ScalarBoolean:
		return true
	}
	return false
}

// IsExtendedScalar reports whether name is declared by the toolkit.
func IsExtendedScalar(name string) bool {
	for _, s := range ExtendedScalars {
		if s == name {
			return true
		}
	}
	return false
}

// IsTemporal reports whether name is a temporal scalar.
func IsTemporal(name string) bool {
	switch name {
	case ScalarDateTime, ScalarDate, ScalarTime, ScalarLocalTime, ScalarLocalDateTime, ScalarDuration:
		return true
	}
	return false
}

// IsNumeric reports whether name is a numeric scalar.
func IsNumeric(name string) bool {
	switch name {
	case ScalarInt, ScalarFloat, ScalarBigInt:
		return true
	}
	return false
}

// IsStringLike reports whether name supports string comparison operators.
func IsStringLike(name string) bool {
	return name == ScalarID || name == ScalarString
}

// Timestampable reports whether @timestamp may target the scalar.
func Timestampable(name string) bool {
	return name == ScalarDateTime || name == ScalarTime
}
