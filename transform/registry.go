package transform

// Registry holds the set of known Transformation variants and can suggest
// which ones look applicable to a given byte buffer.
type Registry struct {
	variants []Transformation
}

// NewRegistry returns a Registry pre-populated with every built-in
// variant, ordered from most to least specific so Detect ranks strict
// formats first.
func NewRegistry() *Registry {
	return &Registry{variants: []Transformation{
		Hex{},
		Base64{},
		Base32{},
		Deflate{},
		Snappy{},
		BitReverse{},
		XorByConstant{},
	}}
}

// Register appends a variant, consulted after the built-ins registered by
// NewRegistry.
func (r *Registry) Register(t Transformation) {
	r.variants = append(r.variants, t)
}

// Detect returns every registered variant whose CanTransform succeeds on
// bytes, in the registry's specificity order.
func (r *Registry) Detect(bytes []byte) []Transformation {
	var out []Transformation
	for _, v := range r.variants {
		if v.CanTransform(bytes) {
			out = append(out, v)
		}
	}
	return out
}
