package domain

type CurrencyRepository interface {
	FindByCode(code string) (*Currency, error)
	GetAll() ([]*Currency, error)
	Create(currency *Currency) error
	Update(currency *Currency) error
	Delete(currency *Currency) error
	SaveHistory(entry *CurrencyHistory) error
	GetHistory(currencyID string) ([]*CurrencyHistory, error)
}
