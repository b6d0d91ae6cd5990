// Package patterns detects orthographic confusion habits in Spanish text.
package patterns

import "fmt"

// Category identifies a family of spelling confusions.
type Category int

const (
	// CategoryBV is b/v confusion (biene -> viene).
	CategoryBV Category = iota
	// CategoryHSilent is the silent h (haber -> aber, asta -> hasta).
	CategoryHSilent
	// CategoryLLY is ll/y confusion (llegar -> yegar).
	CategoryLLY
	// CategorySCZ is s/c/z confusion before front and back vowels.
	CategorySCZ
	// CategoryGJ is g/j confusion before e and i.
	CategoryGJ
	// CategoryTildes covers missing or spurious accent marks.
	CategoryTildes
	// CategoryPunctuation covers omitted opening marks, commas and semicolons.
	CategoryPunctuation

	numCategories = int(CategoryPunctuation) + 1
)

var categoryKeys = [numCategories]string{
	"b_v",
	"h_silent",
	"ll_y",
	"s_c_z",
	"g_j",
	"tildes",
	"puntuacion",
}

var categoryLabels = [numCategories]string{
	"b/v confusion",
	"silent h",
	"ll/y",
	"s/c/z",
	"g/j",
	"accent marks",
	"punctuation omission",
}

// Categories returns every category in report order.
func Categories() []Category {
	out := make([]Category, numCategories)
	for i := range out {
		out[i] = Category(i)
	}
	return out
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	return c >= 0 && int(c) < numCategories
}

// Key returns the stable identifier used in reports and JSON.
func (c Category) Key() string {
	if !c.Valid() {
		return "unknown"
	}
	return categoryKeys[c]
}

// String returns a human-readable label.
func (c Category) String() string {
	if !c.Valid() {
		return "unknown"
	}
	return categoryLabels[c]
}

// MarshalText encodes the category as its key so profiles serialize as JSON objects.
func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid category %d", int(c))
	}
	return []byte(c.Key()), nil
}

// UnmarshalText decodes a category key.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseCategory maps a key such as "b_v" back to its Category.
func ParseCategory(key string) (Category, error) {
	for i, k := range categoryKeys {
		if k == key {
			return Category(i), nil
		}
	}
	return 0, fmt.Errorf("unknown category %q", key)
}
