package currency

type CreateCurrencyInput struct {
	Code     string
	Name     string
	Value    float64
	Previous float64
	Nominal  int
}

// UpdateCurrencyInput carries a partial update; nil fields are left
// untouched.
type UpdateCurrencyInput struct {
	Name     *string
	Value    *float64
	Previous *float64
	Nominal  *int
}
