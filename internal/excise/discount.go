package excise

import "github.com/pbankaus/akviza/internal/model"

// ApplyDiscount spreads an invoice-level discount over the product lines in
// proportion to their amounts, filling the discounted price fields. The
// discount is a positive sum in invoice currency. Lines without an amount or
// quantity keep their original prices but still record the percentage.
func ApplyDiscount(products []*model.Product, discount float64) {
	var subtotal float64
	for _, p := range products {
		if p.Amount > 0 {
			subtotal += p.Amount
		}
	}
	if discount <= 0 || subtotal <= 0 {
		for _, p := range products {
			p.UnitPriceWithDiscount = p.UnitPrice
			p.AmountWithDiscount = p.Amount
		}
		return
	}

	percentage := discount / subtotal * 100.0
	for _, p := range products {
		p.DiscountPercentage = percentage
		if p.Amount <= 0 || p.Quantity <= 0 {
			p.UnitPriceWithDiscount = p.UnitPrice
			p.AmountWithDiscount = p.Amount
			continue
		}
		share := discount * p.Amount / subtotal
		p.AmountWithDiscount = p.Amount - share
		p.UnitPriceWithDiscount = p.AmountWithDiscount / p.Quantity
	}
}
