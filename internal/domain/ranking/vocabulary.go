package ranking

// Vocabulary is an ordered, deduplicated set of normalized terms.
// A term's position is the vector dimension it maps to. Immutable once built.
type Vocabulary struct {
	terms []string
	index map[string]int
}

// BuildVocabulary collects the terms of all texts in first-seen order.
// An empty corpus yields an empty vocabulary.
func BuildVocabulary(texts []string) Vocabulary {
	v := Vocabulary{index: make(map[string]int)}
	for _, text := range texts {
		for _, tok := range Tokenize(text) {
			if _, ok := v.index[tok]; ok {
				continue
			}
			v.index[tok] = len(v.terms)
			v.terms = append(v.terms, tok)
		}
	}
	return v
}

// Len returns the number of terms, which is also the vector dimension.
func (v Vocabulary) Len() int { return len(v.terms) }

// Terms returns a copy of the terms in dimension order.
func (v Vocabulary) Terms() []string {
	out := make([]string, len(v.terms))
	copy(out, v.terms)
	return out
}

// Index returns the dimension of term, if present.
func (v Vocabulary) Index(term string) (int, bool) {
	i, ok := v.index[term]
	return i, ok
}

// Vectorize maps text to raw term counts over this vocabulary.
// Tokens outside the vocabulary are ignored.
func (v Vocabulary) Vectorize(text string) Vector {
	vec := make(Vector, len(v.terms))
	for _, tok := range Tokenize(text) {
		if i, ok := v.index[tok]; ok {
			vec[i]++
		}
	}
	return vec
}
