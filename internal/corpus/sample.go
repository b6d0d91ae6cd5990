package corpus

import (
	_ "embed"
)

//go:embed sample.yaml
var sampleYAML []byte

// Sample returns the built-in reference corpus: three student texts with
// habitual spelling errors and one carefully written recommendation letter.
func Sample() *Corpus {
	c, err := parseYAML(sampleYAML)
	if err != nil {
		panic("corpus: invalid embedded sample: " + err.Error())
	}
	return c
}
