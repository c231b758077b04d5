package intent

import (
	"fmt"
	"strings"

	"github.com/isvaryam/assistant/internal/catalog"
)

// Keyword lists for the default rules. These are data, not logic:
// the matcher only cares about declaration order and first-wins.
var (
	greetKeywords   = []string{"hi", "hello", "hey", "vanakkam"}
	priceKeywords   = []string{"price", "cost", "how much"}
	ingredientWords = []string{"ingredient", "made of", "made from", "contains what"}
	contactKeywords = []string{"contact", "phone", "email", "address", "reach you"}
)

// DefaultRules builds the storefront rule set over the loaded catalog.
// Order matters: greet first, then the catalog-backed rules.
func DefaultRules(cat *catalog.Catalog) []Rule {
	return []Rule{
		{
			Name:      "greet",
			Predicate: func(t string) bool { return containsAny(t, greetKeywords...) },
			Respond:   greetReply,
		},
		{
			Name:      "price",
			Predicate: func(t string) bool { return containsAny(t, priceKeywords...) },
			Respond: func(Input) string {
				return "Our price list is coming right up! (demo reply)"
			},
		},
		{
			Name:      "ingredients",
			Predicate: func(t string) bool { return containsAny(t, ingredientWords...) },
			Respond:   ingredientsReply(cat),
		},
		{
			Name:      "contact",
			Predicate: func(t string) bool { return containsAny(t, contactKeywords...) },
			Respond:   contactReply(cat),
		},
		{
			Name:      "faq",
			Predicate: faqPredicate(cat),
			Respond:   faqReply(cat),
		},
	}
}

// greetReply picks a salutation from the injected clock.
func greetReply(in Input) string {
	var sal string
	switch hour := in.Now.Hour(); {
	case hour < 12:
		sal = "Good morning ☀️"
	case hour < 17:
		sal = "Good afternoon 🌤️"
	default:
		sal = "Good evening 🌙"
	}
	return sal + " I'm Isvaryam's assistant. How can I help you?"
}

func ingredientsReply(cat *catalog.Catalog) func(Input) string {
	return func(in Input) string {
		if name, ok := cat.FindProductIn(in.Text); ok {
			if ing, ok := cat.Ingredients(name); ok {
				return fmt.Sprintf("%s is made from: %s.", title(name), strings.Join(ing, ", "))
			}
		}
		names := cat.ProductNames()
		if len(names) == 0 {
			return "I don't have ingredient details on hand right now."
		}
		return "Which product would you like ingredients for? We have: " + strings.Join(names, ", ") + "."
	}
}

func contactReply(cat *catalog.Catalog) func(Input) string {
	return func(Input) string {
		c := cat.Contact()
		var parts []string
		if c.Email != "" {
			parts = append(parts, "email "+c.Email)
		}
		if c.Phone != "" {
			parts = append(parts, "call "+c.Phone)
		}
		if c.Address != "" {
			parts = append(parts, "visit us at "+c.Address)
		}
		if len(parts) == 0 {
			return "Our contact details are being updated — please check back soon."
		}
		return "You can " + strings.Join(parts, ", or ") + "."
	}
}

// faqPredicate fires when the message hits any FAQ's keyword list.
func faqPredicate(cat *catalog.Catalog) func(string) bool {
	return func(t string) bool {
		_, ok := findFAQ(cat, t)
		return ok
	}
}

func faqReply(cat *catalog.Catalog) func(Input) string {
	return func(in Input) string {
		if faq, ok := findFAQ(cat, in.Text); ok {
			return faq.Answer
		}
		// Unreachable when the predicate gated entry, kept for safety.
		return "Could you rephrase that?"
	}
}

func findFAQ(cat *catalog.Catalog, text string) (catalog.FAQ, bool) {
	for _, faq := range cat.FAQs() {
		for _, kw := range faq.Keywords {
			if kw != "" && strings.Contains(text, strings.ToLower(kw)) {
				return faq, true
			}
		}
	}
	return catalog.FAQ{}, false
}

func title(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
