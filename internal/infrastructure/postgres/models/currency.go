package models

import "time"

type CurrencyModel struct {
	ID        string `gorm:"primaryKey;type:uuid"`
	Code      string `gorm:"size:10;uniqueIndex;not null"`
	Name      string `gorm:"size:100;not null"`
	Value     float64
	Previous  float64
	Nominal   int `gorm:"default:1"`
	UpdatedAt time.Time
}

func (CurrencyModel) TableName() string {
	return "currencies"
}

type CurrencyHistoryModel struct {
	ID         string `gorm:"primaryKey;type:uuid"`
	CurrencyID string `gorm:"type:uuid;index;not null"`
	Value      float64
	Previous   float64
	CheckedAt  time.Time
}

func (CurrencyHistoryModel) TableName() string {
	return "currency_history"
}
