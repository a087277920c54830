package dto

type Stock struct {
	Name string `json:"name"`
	ISIN string `json:"isin"`
}

type StockListResponse struct {
	Stocks []Stock `json:"stocks"`
}
