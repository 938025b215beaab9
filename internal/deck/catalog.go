package deck

import (
	"errors"
	"fmt"
	"path"
)

var (
	// ErrUnknownCategory is returned for a category outside all/recite/perform.
	ErrUnknownCategory = errors.New("unknown category")

	// ErrUnknownBelt is returned for a belt id missing from the catalog.
	ErrUnknownBelt = errors.New("unknown belt")

	// ErrBeltDisabled is returned when studying a belt that is not enabled.
	ErrBeltDisabled = errors.New("belt not enabled")
)

// Category selects which source files make up a deck.
type Category string

const (
	CategoryAll     Category = "all"
	CategoryRecite  Category = "recite"
	CategoryPerform Category = "perform"
)

// Categories lists every category in menu order.
var Categories = []Category{CategoryAll, CategoryRecite, CategoryPerform}

// fileCategories is the order in which per-category files are joined for
// CategoryAll.
var fileCategories = []Category{CategoryRecite, CategoryPerform}

var categoryNames = map[Category]string{
	CategoryAll:     "All",
	CategoryRecite:  "Recite",
	CategoryPerform: "Perform",
}

// ParseCategory validates s as a category.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if _, ok := categoryNames[c]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
	return c, nil
}

// DisplayName returns the human-readable category name.
func (c Category) DisplayName() string {
	if n, ok := categoryNames[c]; ok {
		return n
	}
	return string(c)
}

// Theme holds the two colours used for a belt's progress gradient.
type Theme struct {
	Primary string
	Dark    string
}

// Belt is one rank's deck: where its files live and how it is shown.
type Belt struct {
	ID      string
	Name    string
	Color   string
	Path    string
	Files   map[Category]string
	Theme   Theme
	Enabled bool
}

// FilesFor returns the source file paths for category, in load order.
func (b Belt) FilesFor(category Category) ([]string, error) {
	var cats []Category
	switch category {
	case CategoryAll:
		cats = fileCategories
	case CategoryRecite, CategoryPerform:
		cats = []Category{category}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}

	files := make([]string, 0, len(cats))
	for _, c := range cats {
		name, ok := b.Files[c]
		if !ok {
			continue
		}
		files = append(files, path.Join(b.Path, name))
	}
	return files, nil
}

func standardFiles() map[Category]string {
	return map[Category]string{
		CategoryRecite:  "recite.csv",
		CategoryPerform: "perform.csv",
	}
}

// Catalog is the ordered set of known belts. The zero value has no belts.
type Catalog struct {
	belts []Belt
}

// DefaultCatalog returns the six kyu/dan ranks. Only gokyu ships with decks.
func DefaultCatalog() *Catalog {
	return &Catalog{belts: []Belt{
		{ID: "gokyu", Name: "Gokyu", Color: "Yellow", Path: "study/gokyu", Files: standardFiles(),
			Theme: Theme{Primary: "#ffd700", Dark: "#ccac00"}, Enabled: true},
		{ID: "yonkyu", Name: "Yonkyu", Color: "Orange", Path: "study/yonkyu", Files: standardFiles(),
			Theme: Theme{Primary: "#ff8c00", Dark: "#cc6600"}},
		{ID: "sankyu", Name: "Sankyu", Color: "Green", Path: "study/sankyu", Files: standardFiles(),
			Theme: Theme{Primary: "#228b22", Dark: "#196619"}},
		{ID: "nikyu", Name: "Nikyu", Color: "Blue", Path: "study/nikyu", Files: standardFiles(),
			Theme: Theme{Primary: "#4169e1", Dark: "#3253b3"}},
		{ID: "ikkyu", Name: "Ikkyu", Color: "Brown", Path: "study/ikkyu", Files: standardFiles(),
			Theme: Theme{Primary: "#8b4513", Dark: "#69340e"}},
		{ID: "shodan", Name: "Shodan", Color: "Black", Path: "study/shodan", Files: standardFiles(),
			Theme: Theme{Primary: "#2a2a2a", Dark: "#0a0a0a"}},
	}}
}

// Belts returns every belt in rank order.
func (c *Catalog) Belts() []Belt {
	return append([]Belt(nil), c.belts...)
}

// Belt looks up a belt by id.
func (c *Catalog) Belt(id string) (Belt, error) {
	for _, b := range c.belts {
		if b.ID == id {
			return b, nil
		}
	}
	return Belt{}, fmt.Errorf("%w: %q", ErrUnknownBelt, id)
}

// Enabled looks up a belt by id and requires it to be enabled.
func (c *Catalog) Enabled(id string) (Belt, error) {
	b, err := c.Belt(id)
	if err != nil {
		return Belt{}, err
	}
	if !b.Enabled {
		return Belt{}, fmt.Errorf("%w: %s", ErrBeltDisabled, b.Name)
	}
	return b, nil
}

// Enable marks the belt with the given id as enabled.
func (c *Catalog) Enable(id string) error {
	for i := range c.belts {
		if c.belts[i].ID == id {
			c.belts[i].Enabled = true
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownBelt, id)
}
