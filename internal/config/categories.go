package config

import (
	"fmt"
	"os"

	models "docintake/internal/domain/models/docsystem"

	"gopkg.in/yaml.v3"
)

// categoryFile is the on-disk layout of the category schema.
type categoryFile struct {
	Categories []models.CategorySchema `yaml:"categories"`
}

// DefaultCategorySchemas is used when no schema file is configured.
func DefaultCategorySchemas() models.SchemaSet {
	return models.SchemaSet{
		models.CategoryExpenses: {
			Category:        models.CategoryExpenses,
			ClassLabel:      "Expense type",
			ClassRequired:   true,
			Classes:         []string{"Travel", "Meals", "Office Supplies", "Utilities", "Software", "Other"},
			DefaultPriority: models.PriorityNormal,
		},
		models.CategorySales: {
			Category:        models.CategorySales,
			ClassLabel:      "Document type",
			ClassRequired:   true,
			Classes:         []string{"Invoice", "Receipt", "Credit Note", "Other"},
			DefaultPriority: models.PriorityNormal,
		},
		models.CategoryBankStatements: {
			Category:        models.CategoryBankStatements,
			ClassLabel:      "Account type",
			ClassRequired:   true,
			Classes:         []string{"Checking", "Savings", "Credit Card", "Loan"},
			DefaultPriority: models.PriorityHigh,
		},
	}
}

// LoadCategorySchemas reads the schema file at path. Categories missing
// from the file keep their defaults. An empty path returns the defaults.
func LoadCategorySchemas(path string) (models.SchemaSet, error) {
	schemas := DefaultCategorySchemas()
	if path == "" {
		return schemas, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read category schema: %w", err)
	}
	return ParseCategorySchemas(data)
}

// ParseCategorySchemas decodes a YAML schema document over the defaults.
func ParseCategorySchemas(data []byte) (models.SchemaSet, error) {
	var file categoryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse category schema: %w", err)
	}

	schemas := DefaultCategorySchemas()
	for i, entry := range file.Categories {
		category, ok := models.ParseCategory(string(entry.Category))
		if !ok {
			return nil, fmt.Errorf("category schema entry %d: unknown category %q", i+1, entry.Category)
		}
		entry.Category = category
		if entry.DefaultPriority == "" {
			entry.DefaultPriority = models.PriorityNormal
		} else if p, ok := models.ParsePriority(string(entry.DefaultPriority)); ok {
			entry.DefaultPriority = p
		} else {
			return nil, fmt.Errorf("category schema entry %d: unknown priority %q", i+1, entry.DefaultPriority)
		}
		schemas[category] = entry
	}
	return schemas, nil
}
