package docsystem

// CategorySchema describes the per-category rules for uploads.
type CategorySchema struct {
	Category Category `yaml:"category" json:"category"`
	// ClassLabel is the user-facing name of the class field ("Expense type").
	ClassLabel string `yaml:"class_label" json:"class_label"`
	// ClassRequired rejects uploads that do not carry a class value.
	ClassRequired bool `yaml:"class_required" json:"class_required"`
	// Classes, when non-empty, is the closed set of accepted class values.
	Classes         []string `yaml:"classes" json:"classes"`
	DefaultPriority Priority `yaml:"default_priority" json:"default_priority"`
}

// AllowsClass reports whether class is acceptable under the schema.
func (s CategorySchema) AllowsClass(class string) bool {
	if class == "" {
		return !s.ClassRequired
	}
	if len(s.Classes) == 0 {
		return true
	}
	for _, c := range s.Classes {
		if c == class {
			return true
		}
	}
	return false
}

// SchemaSet maps each category to its schema.
type SchemaSet map[Category]CategorySchema

// For returns the schema for a category. Unknown categories get a schema
// that requires a class and accepts any value.
func (s SchemaSet) For(category Category) CategorySchema {
	if schema, ok := s[category]; ok {
		return schema
	}
	return CategorySchema{Category: category, ClassRequired: true, DefaultPriority: PriorityNormal}
}
