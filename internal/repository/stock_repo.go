package repository

import (
	"context"
	"strings"

	"algooee/internal/dto"
)

type StockRepository interface {
	GetAll(ctx context.Context) []dto.Stock
	FindByISIN(ctx context.Context, isin string) (dto.Stock, bool)
}

var nifty22 = []dto.Stock{
	{Name: "Reliance Industries", ISIN: "INE002A01018"},
	{Name: "Bharti Airtel", ISIN: "INE397D01024"},
	{Name: "TCS", ISIN: "INE467B01029"},
	{Name: "ICICI Bank", ISIN: "INE090A01021"},
	{Name: "State Bank of India", ISIN: "INE062A01020"},
	{Name: "Infosys", ISIN: "INE009A01021"},
	{Name: "Hindustan Unilever", ISIN: "INE030A01027"},
	{Name: "ITC", ISIN: "INE154A01025"},
	{Name: "Mahindra & Mahindra", ISIN: "INE101A01026"},
	{Name: "Kotak Mahindra Bank", ISIN: "INE237A01028"},
	{Name: "HCL Technologies", ISIN: "INE860A01027"},
	{Name: "Sun Pharma", ISIN: "INE044A01036"},
	{Name: "Axis Bank", ISIN: "INE238A01034"},
	{Name: "UltraTech Cement", ISIN: "INE481G01011"},
	{Name: "Titan Company", ISIN: "INE280A01028"},
	{Name: "NTPC", ISIN: "INE733E01010"},
	{Name: "Asian Paints", ISIN: "INE021A01026"},
	{Name: "Tata Steel", ISIN: "INE081A01020"},
	{Name: "Tata Consumer Products", ISIN: "INE192A01025"},
	{Name: "Wipro", ISIN: "INE075A01022"},
	{Name: "Adani Enterprises", ISIN: "INE423A01024"},
	{Name: "Adani Ports", ISIN: "INE742F01042"},
}

type stockRepository struct {
	stocks []dto.Stock
	byISIN map[string]dto.Stock
}

// NewStockRepository serves the built-in reference list of supported stocks.
func NewStockRepository() StockRepository {
	byISIN := make(map[string]dto.Stock, len(nifty22))
	for _, s := range nifty22 {
		byISIN[s.ISIN] = s
	}
	return &stockRepository{stocks: nifty22, byISIN: byISIN}
}

func (r *stockRepository) GetAll(_ context.Context) []dto.Stock {
	out := make([]dto.Stock, len(r.stocks))
	copy(out, r.stocks)
	return out
}

func (r *stockRepository) FindByISIN(_ context.Context, isin string) (dto.Stock, bool) {
	s, ok := r.byISIN[strings.ToUpper(isin)]
	return s, ok
}
