package entity

import "github.com/shopspring/decimal"

func init() {
	// prices go out as JSON numbers, the way the web client reads them
	decimal.MarshalJSONWithoutQuotes = true
}
