package model

import "time"

const (
	TickerTypeStock  = "stock"
	TickerTypeCrypto = "crypto"
)

type Ticker struct {
	ID        int64
	Symbol    string
	Name      string
	Type      string
	CreatedAt time.Time
}
