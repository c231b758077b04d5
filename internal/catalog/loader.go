package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/isvaryam/assistant/internal/logging"
)

// Data file names expected under the catalog data directory.
const (
	productsFile    = "products.json"
	ingredientsFile = "ingredients.json"
	faqsFile        = "faqs.json"
	contactFile     = "contact.json"
	aliasesFile     = "aliases.json"
)

// Load reads all catalog data files from dir. Missing files are
// tolerated (the corresponding lookups stay empty); malformed JSON is
// an error. Product names and alias keys are normalized at load time.
func Load(dir string, log *logging.Logger) (*Catalog, error) {
	log = log.Sub("catalog")

	c := &Catalog{
		products:    make(map[string]Product),
		ingredients: make(map[string][]string),
		canonical:   make(map[string]string),
	}

	var rawProducts map[string]Product
	if err := readJSON(filepath.Join(dir, productsFile), &rawProducts, log); err != nil {
		return nil, err
	}
	for name, p := range rawProducts {
		key := NormalizeKey(name)
		c.products[key] = p
		c.canonical[key] = key
	}

	var rawIngredients map[string][]string
	if err := readJSON(filepath.Join(dir, ingredientsFile), &rawIngredients, log); err != nil {
		return nil, err
	}
	for name, ing := range rawIngredients {
		c.ingredients[NormalizeKey(name)] = ing
	}

	if err := readJSON(filepath.Join(dir, faqsFile), &c.faqs, log); err != nil {
		return nil, err
	}

	if err := readJSON(filepath.Join(dir, contactFile), &c.contact, log); err != nil {
		return nil, err
	}

	var aliases map[string]string
	if err := readJSON(filepath.Join(dir, aliasesFile), &aliases, log); err != nil {
		return nil, err
	}
	for alias, target := range aliases {
		canon := NormalizeKey(target)
		if _, ok := c.products[canon]; !ok {
			log.Warn().Str("alias", alias).Str("target", target).Msg("alias targets unknown product")
			continue
		}
		c.canonical[NormalizeKey(alias)] = canon
	}

	log.Info().
		Int("products", len(c.products)).
		Int("faqs", len(c.faqs)).
		Int("aliases", len(aliases)).
		Str("dir", dir).
		Msg("catalog loaded")

	return c, nil
}

// readJSON unmarshals path into v. A missing file is skipped with a
// debug log; anything else is an error.
func readJSON(path string, v any, log *logging.Logger) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Debug().Str("path", path).Msg("data file not present, skipping")
			return nil
		}
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}
