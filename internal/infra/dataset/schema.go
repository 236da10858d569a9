package dataset

// Schema is the capability adapter over the two dataset variants seen in the
// wild: one with a "type" column and signed amounts, another with
// "use_chip"/"errors" and unsigned amounts. Detecting it once at load time
// keeps "if column exists" checks out of the aggregation code.
type Schema struct {
	// TypeColumn is the type-like column ("type", else "use_chip"), or ""
	// when neither exists.
	TypeColumn string

	// FraudColumn is the fraud indicator ("isFraud", else "errors"), or "".
	FraudColumn string

	// CustomerColumn is the customer key, or "" when the dataset has none.
	CustomerColumn string

	// MerchantColumn is the merchant key, or "".
	MerchantColumn string

	// TimeColumn is the coarse time unit ("step", else "date"), or "".
	TimeColumn string

	// SignedAmounts is true for the variant where spend is negative. The
	// other variant stores unsigned magnitudes; sign must not be interpreted
	// there.
	SignedAmounts bool

	// HasAmount reports whether an amount column exists at all.
	HasAmount bool
}

// DetectSchema inspects the loaded columns and picks the derivation rules
// that apply to this dataset variant.
func DetectSchema(cols []string, kinds map[string]Kind) Schema {
	has := func(c string) bool { _, ok := kinds[c]; return ok }

	s := Schema{
		HasAmount:     has("amount"),
		SignedAmounts: has("type"),
	}

	switch {
	case has("type"):
		s.TypeColumn = "type"
	case has("use_chip"):
		s.TypeColumn = "use_chip"
	}

	switch {
	case has("isFraud"):
		s.FraudColumn = "isFraud"
	case has("errors"):
		s.FraudColumn = "errors"
	}

	if has("client_id") {
		s.CustomerColumn = "client_id"
	}
	if has("merchant_id") {
		s.MerchantColumn = "merchant_id"
	}

	switch {
	case has("step"):
		s.TimeColumn = "step"
	case has("date"):
		s.TimeColumn = "date"
	}

	return s
}

// IsFraud applies the variant-appropriate fraud predicate to a row.
// For a boolean flag column any non-zero value counts; for an "errors"
// column any non-empty value other than the "0" sentinel counts.
func (s Schema) IsFraud(r Row) bool {
	switch s.FraudColumn {
	case "":
		return false
	case "errors":
		if txt, ok := r.Text(s.FraudColumn); ok {
			return txt != "" && txt != "0"
		}
		f, ok := r.Float(s.FraudColumn)
		return ok && f != 0
	default:
		if f, ok := r.Float(s.FraudColumn); ok {
			return f != 0
		}
		txt, _ := r.Text(s.FraudColumn)
		return txt == "1" || txt == "1.0" || txt == "True"
	}
}
