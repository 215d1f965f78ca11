package inventory

import (
	"github.com/shopspring/decimal"

	"inventory_manager/domain"
)

// TotalCost is the cost of an intake: quantity × purchase price.
func TotalCost(quantity int, purchasePrice float64) float64 {
	return float64(quantity) * purchasePrice
}

// Revenue is quantity × selling price.
func Revenue(quantity int, sellingPrice float64) float64 {
	return float64(quantity) * sellingPrice
}

// Profit is quantity × (selling price − cost basis).
func Profit(quantity int, sellingPrice, costBasis float64) float64 {
	return float64(quantity) * (sellingPrice - costBasis)
}

// WeightedAverage folds an intake of qty units at price into an existing
// average. When the resulting stock is zero the incoming price wins.
func WeightedAverage(oldStock int, oldAvg float64, qty int, price float64) float64 {
	newStock := oldStock + qty
	if newStock <= 0 {
		return price
	}
	return (float64(oldStock)*oldAvg + TotalCost(qty, price)) / float64(newStock)
}

// ApplyIntake returns p with qty units added at price.
func ApplyIntake(p domain.Product, qty int, price float64) domain.Product {
	avg := WeightedAverage(p.Stock, p.CostBasis(), qty, price)
	p.Stock += qty
	p.PurchasePrice = &avg
	return p
}

// FormatMoney renders an amount with two decimals, rounding half away from zero.
func FormatMoney(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}
