package runtime

// Equal implements SOC structural equality across all value cases. Mutable
// cells compare by their current contents. Records compare by field set and
// field values; tensors compare equal iff shape and every element match.
// Functions and generators compare by identity.
func Equal(a, b Value) bool {
	a, b = Deref(a), Deref(b)

	switch av := a.(type) {
	case *Number:
		switch bv := b.(type) {
		case *Number:
			return av.Value == bv.Value
		case *Complex:
			// A real equals a complex with zero imaginary part.
			return imag(bv.Value) == 0 && real(bv.Value) == av.Value
		}
		return false
	case *Boolean:
		bv, ok := b.(*Boolean)
		return ok && av.Value == bv.Value
	case *Complex:
		switch bv := b.(type) {
		case *Complex:
			return av.Value == bv.Value
		case *Number:
			// A complex with zero imaginary part equals the same real.
			return imag(av.Value) == 0 && real(av.Value) == bv.Value
		}
		return false
	case *String:
		bv, ok := b.(*String)
		return ok && av.Value == bv.Value
	case *RealTensor:
		switch bv := b.(type) {
		case *RealTensor:
			if !SameShape(av.Shape, bv.Shape) {
				return false
			}
			for i := range av.Data {
				if av.Data[i] != bv.Data[i] {
					return false
				}
			}
			return true
		case *ComplexTensor:
			return Equal(av.ToComplex(), bv)
		}
		return false
	case *ComplexTensor:
		switch bv := b.(type) {
		case *ComplexTensor:
			if !SameShape(av.Shape, bv.Shape) {
				return false
			}
			for i := range av.Data {
				if av.Data[i] != bv.Data[i] {
					return false
				}
			}
			return true
		case *RealTensor:
			return Equal(av, bv.ToComplex())
		}
		return false
	case *GenericVector:
		bv, ok := b.(*GenericVector)
		if !ok || len(av.Elements) != len(bv.Elements) {
			return false
		}
		for i := range av.Elements {
			if !Equal(av.Elements[i], bv.Elements[i]) {
				return false
			}
		}
		return true
	case *Record:
		bv, ok := b.(*Record)
		if !ok || av.Len() != bv.Len() {
			return false
		}
		for _, name := range av.order {
			bval, exists := bv.Get(name)
			if !exists || !Equal(av.fields[name], bval) {
				return false
			}
		}
		return true
	case *Edge:
		bv, ok := b.(*Edge)
		if !ok {
			return false
		}
		if av.From != bv.From || av.To != bv.To || av.Directed != bv.Directed || av.Label != bv.Label {
			return false
		}
		if (av.Weight == nil) != (bv.Weight == nil) {
			return false
		}
		return av.Weight == nil || *av.Weight == *bv.Weight
	default:
		// Functions, generators: identity.
		return a == b
	}
}

// number promotion helpers shared by equality and the operator layer.

// AsComplex converts a scalar numeric value to complex128. ok is false for
// non-numeric values. Booleans are not numbers and do not convert.
func AsComplex(v Value) (complex128, bool) {
	switch n := Deref(v).(type) {
	case *Number:
		return complex(n.Value, 0), true
	case *Complex:
		return n.Value, true
	}
	return 0, false
}

// AsNumber extracts a real number. ok is false for anything else,
// including complex values with nonzero imaginary part.
func AsNumber(v Value) (float64, bool) {
	switch n := Deref(v).(type) {
	case *Number:
		return n.Value, true
	case *Complex:
		if imag(n.Value) == 0 {
			return real(n.Value), true
		}
	}
	return 0, false
}
