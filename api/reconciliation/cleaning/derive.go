package cleaning

import (
	"fmt"
	"regexp"
	"strings"

	"ConciliacaoFornecedores/api/constants"
	"ConciliacaoFornecedores/internal/config"
)

var (
	codeRun       = regexp.MustCompile(fmt.Sprintf(`\d{%d,}`, config.MinCounterpartyDigits))
	trailingDigit = regexp.MustCompile(`(\d+)$`)
)

// ExtractCode returns the first digit run long enough to be a
// counterparty code, or "" when the field has none.
func ExtractCode(raw string) string {
	return codeRun.FindString(raw)
}

// CodeOrRaw is the ledger variant: extract a code from the combined
// "code - name" field, falling back to the trimmed raw value so no row
// loses its grouping key.
func CodeOrRaw(raw string) string {
	if code := ExtractCode(raw); code != "" {
		return code
	}
	return strings.TrimSpace(raw)
}

// TrailingDigits derives the installment from a document number:
// the digit run at its end, or the default installment when the
// document carries none.
func TrailingDigits(titulo string) string {
	if m := trailingDigit.FindString(strings.TrimSpace(titulo)); m != "" {
		return m
	}
	return config.DefaultInstallment
}

// SupplierClass classifies an accounting description. The heuristic
// runs on the normalized form so accents and case never split a class.
func SupplierClass(description string) string {
	d := NormalizeText(description)
	switch {
	case strings.Contains(d, "FORNEC") && strings.Contains(d, "NAC"):
		return constants.ClassNationalSupplier
	case strings.Contains(d, "FORNEC"):
		return constants.ClassSupplier
	default:
		return constants.ClassOther
	}
}

// FirstToken returns the first space-delimited token, used to derive a
// synthetic counterparty code from a description.
func FirstToken(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// ItemName shortens an item description to the item-name column width.
func ItemName(description string) string {
	r := []rune(strings.TrimSpace(description))
	if len(r) <= config.MaxItemNameLength {
		return string(r)
	}
	return string(r[:config.MaxItemNameLength])
}

// IsAdvanceType reports whether a ledger document type belongs to the
// advance set. Whole-word match: "PA" matches, "PARC" does not.
func IsAdvanceType(tipoTitulo string, advanceTypes []string) bool {
	for _, field := range strings.Fields(strings.ToUpper(tipoTitulo)) {
		for _, adv := range advanceTypes {
			if field == adv {
				return true
			}
		}
	}
	return false
}
