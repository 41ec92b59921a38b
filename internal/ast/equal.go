package ast

// Equal reports whether a and b have the same shape and values. Spans are ignored.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch x := a.(type) {
	case *KeyValue:
		y := b.(*KeyValue)
		return x.Key == y.Key && Equal(x.Value, y.Value)
	case *KeyValueList:
		y := b.(*KeyValueList)
		if len(x.Entries) != len(y.Entries) || len(x.Index) != len(y.Index) {
			return false
		}
		for i := range x.Entries {
			if !Equal(x.Entries[i], y.Entries[i]) {
				return false
			}
		}
		for k, v := range x.Index {
			w, ok := y.Index[k]
			if !ok || !Equal(v, w) {
				return false
			}
		}
		return true
	case *String:
		return x.Value == b.(*String).Value
	case *Integer:
		return x.Value == b.(*Integer).Value
	case *Float:
		return x.Value == b.(*Float).Value
	case *List:
		y := b.(*List)
		if len(x.Items) != len(y.Items) {
			return false
		}
		for i := range x.Items {
			if !Equal(x.Items[i], y.Items[i]) {
				return false
			}
		}
		return true
	case *Default:
		return true
	}
	return false
}
