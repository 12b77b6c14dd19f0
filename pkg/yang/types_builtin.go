package yang

// Predicates over the built-in TypeKind set.

// IsIntegerKind reports whether k is one of the eight signed/unsigned
// integer kinds that a range statement can attach to.
func IsIntegerKind(k TypeKind) bool {
	switch k {
	case Yint8, Yint16, Yint32, Yint64, Yuint8, Yuint16, Yuint32, Yuint64:
		return true
	}
	return false
}

// IsBuiltinKind reports whether k is a resolved, concrete category rather
// than the placeholder Ypath/Ynone markers.
func IsBuiltinKind(k TypeKind) bool {
	_, ok := typeKindNames[k]
	return ok && k != Ynone && k != Ypath
}
