package domain

const (
	TopicCurrencyNew     = "currency.new"
	TopicCurrencyUpdated = "currency.updated"
	TopicCurrencyDeleted = "currency.deleted"

	// TopicCurrencyAll covers every currency event with a single
	// one-segment wildcard.
	TopicCurrencyAll = "currency.*"
)

type CurrencyNewEvent struct {
	Code      string  `json:"code"`
	Name      string  `json:"name"`
	Value     float64 `json:"value"`
	Timestamp string  `json:"timestamp"`
}

type CurrencyUpdatedEvent struct {
	Code      string  `json:"code"`
	Name      string  `json:"name"`
	OldValue  float64 `json:"old_value"`
	NewValue  float64 `json:"new_value"`
	Change    float64 `json:"change"`
	Timestamp string  `json:"timestamp"`
}

type CurrencyDeletedEvent struct {
	Code      string  `json:"code"`
	Name      string  `json:"name"`
	Timestamp string  `json:"timestamp"`
}
