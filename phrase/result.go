package phrase

// Result is a single expanded phrase.
type Result struct {
	// Text is the final phrase text.
	Text string `json:"text" yaml:"text"`
	// Variants names the variant set of each substituted #word# marker, in
	// order. Markers left as written contribute nothing.
	Variants []string `json:"variants" yaml:"variants"`
	// Annotations are the @name markers removed from the text, in order.
	Annotations []string `json:"annotations" yaml:"annotations"`
}
