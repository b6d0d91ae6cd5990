package patterns

import "strings"

// Finding is a token together with the alternate spelling a rule produced.
type Finding struct {
	Original    string `json:"original"`
	Transformed string `json:"transformed"`
}

// Profile maps every category to the findings detected in one text.
// Profiles built by NewProfile or Detect always hold all categories.
type Profile map[Category][]Finding

// NewProfile returns a profile with an empty list for every category.
func NewProfile() Profile {
	p := make(Profile, numCategories)
	for _, c := range Categories() {
		p[c] = []Finding{}
	}
	return p
}

// Has reports whether c has at least one finding.
func (p Profile) Has(c Category) bool {
	return len(p[c]) > 0
}

// Complete reports whether every known category is present.
func (p Profile) Complete() bool {
	for _, c := range Categories() {
		if _, ok := p[c]; !ok {
			return false
		}
	}
	return len(p) == numCategories
}

// Total returns the number of findings across all categories.
func (p Profile) Total() int {
	n := 0
	for _, f := range p {
		n += len(f)
	}
	return n
}

// Detector applies the rule table to text.
type Detector struct {
	foldedMatching bool
}

// DetectorOption configures a Detector.
type DetectorOption func(*Detector)

// WithFoldedMatching decides rule applicability on the ASCII-folded token
// instead of the token itself. The rewrite still runs on the original token,
// so this can only suppress findings (accent removals in particular).
func WithFoldedMatching() DetectorOption {
	return func(d *Detector) {
		d.foldedMatching = true
	}
}

// NewDetector returns a Detector. Without options it matches rules against
// the lowercased token as written.
func NewDetector(opts ...DetectorOption) *Detector {
	d := &Detector{}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Detect lowercases text, splits it on whitespace and tests each token
// against every rule of every category. A finding is recorded whenever a
// rule fires and changes the token. Findings keep source token order.
func (d *Detector) Detect(text string) Profile {
	profile := NewProfile()
	for _, token := range strings.Fields(strings.ToLower(text)) {
		probe := token
		if d.foldedMatching {
			probe = Fold(token)
		}
		for _, c := range Categories() {
			for _, rule := range ruleTable[c] {
				if !rule.Matches(probe) {
					continue
				}
				if changed := rule.Apply(token); changed != token {
					profile[c] = append(profile[c], Finding{Original: token, Transformed: changed})
				}
			}
		}
	}
	return profile
}
