package config

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	models "docintake/internal/domain/models/docsystem"
)

func TestParseCategorySchemas(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr bool
		check   func(t *testing.T, s models.SchemaSet)
	}{
		{
			name: "empty document keeps defaults",
			yaml: "",
			check: func(t *testing.T, s models.SchemaSet) {
				if len(s) != 3 {
					t.Errorf("schemas = %d, want 3", len(s))
				}
				if s[models.CategoryBankStatements].DefaultPriority != models.PriorityHigh {
					t.Errorf("bank default priority = %s", s[models.CategoryBankStatements].DefaultPriority)
				}
			},
		},
		{
			name: "override one category",
			yaml: `
categories:
  - category: sales
    class_label: Sales doc
    class_required: false
    classes: [Invoice, Quote]
    default_priority: urgent
`,
			check: func(t *testing.T, s models.SchemaSet) {
				sales := s[models.CategorySales]
				if sales.Category != models.CategorySales {
					t.Errorf("Category = %q, want canonical Sales", sales.Category)
				}
				if sales.ClassRequired {
					t.Error("ClassRequired not overridden")
				}
				if !slices.Equal(sales.Classes, []string{"Invoice", "Quote"}) {
					t.Errorf("Classes = %v", sales.Classes)
				}
				if sales.DefaultPriority != models.PriorityUrgent {
					t.Errorf("DefaultPriority = %s, want Urgent", sales.DefaultPriority)
				}
				if len(s[models.CategoryExpenses].Classes) != 6 {
					t.Error("expenses defaults lost")
				}
			},
		},
		{
			name: "missing priority falls back to normal",
			yaml: `
categories:
  - category: Bank Statements
    classes: [Checking]
`,
			check: func(t *testing.T, s models.SchemaSet) {
				if got := s[models.CategoryBankStatements].DefaultPriority; got != models.PriorityNormal {
					t.Errorf("DefaultPriority = %s, want Normal", got)
				}
			},
		},
		{
			name:    "unknown category",
			yaml:    "categories:\n  - category: payroll\n",
			wantErr: true,
		},
		{
			name:    "unknown priority",
			yaml:    "categories:\n  - category: sales\n    default_priority: asap\n",
			wantErr: true,
		},
		{
			name:    "malformed yaml",
			yaml:    "categories: [",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCategorySchemas([]byte(tt.yaml))
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseCategorySchemas() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.check != nil {
				tt.check(t, got)
			}
		})
	}
}

func TestLoadCategorySchemas(t *testing.T) {
	t.Run("empty path", func(t *testing.T) {
		s, err := LoadCategorySchemas("")
		if err != nil {
			t.Fatalf("LoadCategorySchemas() error = %v", err)
		}
		if len(s) != 3 {
			t.Errorf("schemas = %d, want 3", len(s))
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadCategorySchemas(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("file on disk", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "categories.yaml")
		if err := os.WriteFile(path, []byte("categories:\n  - category: expenses\n    classes: [Fuel]\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		s, err := LoadCategorySchemas(path)
		if err != nil {
			t.Fatalf("LoadCategorySchemas() error = %v", err)
		}
		if !slices.Equal(s[models.CategoryExpenses].Classes, []string{"Fuel"}) {
			t.Errorf("Classes = %v", s[models.CategoryExpenses].Classes)
		}
	})
}
