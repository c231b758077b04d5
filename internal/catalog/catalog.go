// Package catalog loads the static storefront data the intent rules
// answer from: products, ingredients, FAQs, and contact info. Data is
// loaded once at startup and read-only afterwards; alias resolution
// happens here so the intent rules only ever see canonical keys.
package catalog

import (
	"sort"
	"strings"
)

// Product is one catalog entry, keyed by its normalized name.
type Product struct {
	Description string   `json:"description"`
	Benefits    []string `json:"benefits,omitempty"`
	Rating      float64  `json:"rating,omitempty"`
}

// FAQ pairs a display question with its answer. Keywords drive rule
// matching; an entry with no keywords is only reachable by browsing.
type FAQ struct {
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Keywords []string `json:"keywords,omitempty"`
}

// Contact holds the storefront's contact details.
type Contact struct {
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	Hours   string `json:"hours,omitempty"`
}

// Catalog is the read-only lookup table set handed to the intent rules.
// Alias keys are folded into the maps at load time, so lookups never
// need to consult the alias table again.
type Catalog struct {
	products    map[string]Product
	ingredients map[string][]string
	faqs        []FAQ
	contact     Contact
	canonical   map[string]string // every known key (incl. aliases) → canonical name
}

// NormalizeKey lowercases and trims a lookup key.
func NormalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Product looks up a product by name or alias.
func (c *Catalog) Product(name string) (Product, bool) {
	canon, ok := c.canonical[NormalizeKey(name)]
	if !ok {
		return Product{}, false
	}
	p, ok := c.products[canon]
	return p, ok
}

// Ingredients looks up the ingredient list for a product name or alias.
func (c *Catalog) Ingredients(name string) ([]string, bool) {
	canon, ok := c.canonical[NormalizeKey(name)]
	if !ok {
		canon = NormalizeKey(name)
	}
	ing, ok := c.ingredients[canon]
	return ing, ok
}

// FAQs returns all FAQ entries in file order.
func (c *Catalog) FAQs() []FAQ {
	return c.faqs
}

// Contact returns the storefront contact details.
func (c *Catalog) Contact() Contact {
	return c.contact
}

// ProductNames returns all canonical product names, sorted.
func (c *Catalog) ProductNames() []string {
	names := make([]string, 0, len(c.products))
	for n := range c.products {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// FindProductIn scans text for any known product name or alias and
// returns the canonical name of the first (longest) mention.
func (c *Catalog) FindProductIn(text string) (string, bool) {
	t := strings.ToLower(text)

	// Longest keys first so "virgin coconut oil" wins over "coconut oil".
	keys := make([]string, 0, len(c.canonical))
	for k := range c.canonical {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return len(keys[i]) > len(keys[j]) })

	for _, k := range keys {
		if strings.Contains(t, k) {
			return c.canonical[k], true
		}
	}
	return "", false
}
