package purchase

// ValidateCreate checks a full purchase payload against the business rules.
// It never touches storage; the first violated rule wins.
func ValidateCreate(params CreateParams) error {
	if params.UserID == 0 {
		return invalidf("user_id is required")
	}

	if params.Status == "" {
		return invalidf("status is required")
	}

	return validateDetails(params.Details)
}

// validateDetails applies the per-item rules shared by create and update.
// Rules are checked in order across the whole list: field presence first,
// then quantities, then prices.
func validateDetails(details []DetailParams) error {
	if len(details) == 0 {
		return invalidf("details must contain at least one item")
	}

	if len(details) > MaxDetails {
		return invalidf("details cannot contain more than %d items", MaxDetails)
	}

	for i, d := range details {
		// A price of zero is legitimate; only its absence is a failure.
		if d.ProductID == 0 || d.Quantity == nil || d.Price == nil {
			return invalidf("detail %d: product_id, quantity and price are required", i+1)
		}
	}

	for i, d := range details {
		if *d.Quantity <= 0 {
			return invalidf("detail %d: quantity must be a positive integer", i+1)
		}
	}

	for i, d := range details {
		if d.Price.IsNegative() {
			return invalidf("detail %d: price cannot be negative", i+1)
		}
	}

	return nil
}
