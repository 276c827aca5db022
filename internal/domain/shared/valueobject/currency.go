package valueobject

// Currency is an ISO 4217 currency code. Amounts are stored as raw decimals
// next to their currency column; there is no cross-currency arithmetic in
// this system.
type Currency string

const (
	ARS Currency = "ARS" // Argentine Peso
	USD Currency = "USD" // US Dollar
)

// DefaultCurrency is what amounts fall back to when no currency is given
const DefaultCurrency = ARS
