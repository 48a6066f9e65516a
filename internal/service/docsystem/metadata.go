package docsystem

import (
	"fmt"
	"strings"

	"docintake/internal/domain"
	models "docintake/internal/domain/models/docsystem"
	docsysSvc "docintake/internal/domain/services/docsystem"
)

type fieldChange struct {
	label string
	from  string
	to    string
}

func (c fieldChange) String() string {
	return fmt.Sprintf("%s: %q → %q", c.label, c.from, c.to)
}

// metadataChanges compares a patch against a file and returns only the
// fields whose values actually differ, plus the patch to apply them.
func metadataChanges(file *models.File, patch *docsysSvc.MetadataPatch, schema models.CategorySchema) ([]fieldChange, func(*models.File), error) {
	var changes []fieldChange
	var apply []func(*models.File)

	text := func(label string, p *string, current string, set func(*models.File, string)) {
		if p == nil {
			return
		}
		v := strings.TrimSpace(*p)
		if v == current {
			return
		}
		changes = append(changes, fieldChange{label: label, from: current, to: v})
		apply = append(apply, func(f *models.File) { set(f, v) })
	}

	if patch.Filename != nil {
		name := SanitizeFilename(strings.TrimSpace(*patch.Filename))
		if name == "" {
			return nil, nil, &domain.ValidationError{Message: "filename cannot be empty"}
		}
		if err := validateFilename(name); err != nil {
			return nil, nil, err
		}
		text("Filename", &name, file.Filename, func(f *models.File, v string) { f.Filename = v })
	}
	if patch.Class != nil {
		class := strings.TrimSpace(*patch.Class)
		if !schema.AllowsClass(class) {
			return nil, nil, invalidClassError(schema, class)
		}
		text(classLabel(schema), &class, file.Class, func(f *models.File, v string) { f.Class = v })
	}
	text("Vendor", patch.Vendor, file.Metadata.Vendor, func(f *models.File, v string) { f.Metadata.Vendor = v })
	text("Customer", patch.Customer, file.Metadata.Customer, func(f *models.File, v string) { f.Metadata.Customer = v })
	text("Payment method", patch.PaymentMethod, file.Metadata.PaymentMethod, func(f *models.File, v string) { f.Metadata.PaymentMethod = v })
	text("Invoice number", patch.InvoiceNumber, file.Metadata.InvoiceNumber, func(f *models.File, v string) { f.Metadata.InvoiceNumber = v })
	text("Invoice date", patch.InvoiceDate, file.Metadata.InvoiceDate, func(f *models.File, v string) { f.Metadata.InvoiceDate = v })
	text("Amount", patch.Amount, file.Metadata.Amount, func(f *models.File, v string) { f.Metadata.Amount = v })
	text("Currency", patch.Currency, file.Metadata.Currency, func(f *models.File, v string) { f.Metadata.Currency = v })
	text("Account number", patch.AccountNumber, file.Metadata.AccountNumber, func(f *models.File, v string) { f.Metadata.AccountNumber = v })
	text("Statement period", patch.StatementPeriod, file.Metadata.StatementPeriod, func(f *models.File, v string) { f.Metadata.StatementPeriod = v })
	text("Notes", patch.Notes, file.Metadata.Notes, func(f *models.File, v string) { f.Metadata.Notes = v })

	if patch.Priority != nil {
		p, ok := models.ParsePriority(string(*patch.Priority))
		if !ok {
			return nil, nil, &domain.ValidationError{Message: fmt.Sprintf("unknown priority %q", *patch.Priority)}
		}
		if p != file.Metadata.Priority {
			changes = append(changes, fieldChange{label: "Priority", from: string(file.Metadata.Priority), to: string(p)})
			apply = append(apply, func(f *models.File) { f.Metadata.Priority = p })
		}
	}
	if patch.Confidentiality != nil {
		c, ok := models.ParseConfidentiality(string(*patch.Confidentiality))
		if !ok {
			return nil, nil, &domain.ValidationError{Message: fmt.Sprintf("unknown confidentiality %q", *patch.Confidentiality)}
		}
		if c != file.Metadata.Confidentiality {
			changes = append(changes, fieldChange{label: "Confidentiality", from: string(file.Metadata.Confidentiality), to: string(c)})
			apply = append(apply, func(f *models.File) { f.Metadata.Confidentiality = c })
		}
	}

	return changes, func(f *models.File) {
		for _, fn := range apply {
			fn(f)
		}
	}, nil
}

func describeChanges(changes []fieldChange) string {
	parts := make([]string, len(changes))
	for i, c := range changes {
		parts[i] = c.String()
	}
	return "Updated " + strings.Join(parts, ", ")
}

func classLabel(schema models.CategorySchema) string {
	if schema.ClassLabel != "" {
		return schema.ClassLabel
	}
	return "Class"
}

func invalidClassError(schema models.CategorySchema, class string) error {
	label := strings.ToLower(classLabel(schema))
	if class == "" {
		return &domain.ValidationError{Message: fmt.Sprintf("%s is required for %s", label, schema.Category.DisplayName())}
	}
	return &domain.ValidationError{
		Message: fmt.Sprintf("%s %q is not allowed for %s", label, class, schema.Category.DisplayName()),
	}
}
