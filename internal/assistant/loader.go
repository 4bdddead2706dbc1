package assistant

import (
	"fmt"
	"os"

	"farmafacil/internal/model"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// RuleFile is the YAML layout of an assistant rule file.
type RuleFile struct {
	DefaultReply string      `yaml:"default_reply"`
	Rules        []ruleEntry `yaml:"rules"`
}

type ruleEntry struct {
	Name     string         `yaml:"name"`
	Keywords []string       `yaml:"keywords"`
	Reply    string         `yaml:"reply"`
	Products []productEntry `yaml:"products,omitempty"`
}

type productEntry struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Price       string `yaml:"price"`
	Image       string `yaml:"image,omitempty"`
	Category    string `yaml:"category"`
}

// LoadRules reads a YAML rule file. Rule order in the file is priority order.
func LoadRules(path string) ([]Rule, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("load assistant rules %q: %w", path, err)
	}

	return ParseRules(data)
}

// ParseRules decodes and validates a YAML rule document.
func ParseRules(data []byte) ([]Rule, string, error) {
	var file RuleFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, "", fmt.Errorf("parse assistant rules: %w", err)
	}

	if len(file.Rules) == 0 {
		return nil, "", fmt.Errorf("assistant rules: at least one rule is required")
	}

	seen := make(map[string]struct{}, len(file.Rules))
	rules := make([]Rule, 0, len(file.Rules))
	for i, entry := range file.Rules {
		if entry.Name == "" {
			return nil, "", fmt.Errorf("assistant rules: rule %d: name is required", i)
		}
		if _, dup := seen[entry.Name]; dup {
			return nil, "", fmt.Errorf("assistant rules: duplicate rule %q", entry.Name)
		}
		seen[entry.Name] = struct{}{}

		if len(entry.Keywords) == 0 {
			return nil, "", fmt.Errorf("assistant rules: rule %q has no keywords", entry.Name)
		}
		if entry.Reply == "" {
			return nil, "", fmt.Errorf("assistant rules: rule %q has no reply", entry.Name)
		}

		products := make([]model.Product, 0, len(entry.Products))
		for _, p := range entry.Products {
			price, err := decimal.NewFromString(p.Price)
			if err != nil {
				return nil, "", fmt.Errorf("assistant rules: rule %q: product %q: invalid price %q: %w", entry.Name, p.ID, p.Price, err)
			}
			products = append(products, model.Product{
				ID:          p.ID,
				Name:        p.Name,
				Description: p.Description,
				Price:       price,
				Image:       p.Image,
				Category:    p.Category,
			})
		}

		rules = append(rules, Rule{
			Name:     entry.Name,
			Keywords: entry.Keywords,
			Reply:    entry.Reply,
			Products: products,
		})
	}

	return rules, file.DefaultReply, nil
}

// MarshalRules renders rules as a YAML rule document.
func MarshalRules(rules []Rule, defaultReply string) ([]byte, error) {
	file := RuleFile{DefaultReply: defaultReply}
	for _, r := range rules {
		entry := ruleEntry{Name: r.Name, Keywords: r.Keywords, Reply: r.Reply}
		for _, p := range r.Products {
			entry.Products = append(entry.Products, productEntry{
				ID:          p.ID,
				Name:        p.Name,
				Description: p.Description,
				Price:       p.Price.StringFixed(2),
				Image:       p.Image,
				Category:    p.Category,
			})
		}
		file.Rules = append(file.Rules, entry)
	}

	return yaml.Marshal(file)
}
