package cli

import (
	"time"

	"supermarket/internal/domain/entity"
	"supermarket/internal/domain/pricing"
	"supermarket/internal/util"
)

// printCart lists the cart lines. It reports false when the cart is empty.
func (c *console) printCart(session *entity.Session) bool {
	lines := c.shoppingUC.CartLines(session)
	if len(lines) == 0 {
		c.println("Cart is empty.")

		return false
	}

	c.println()
	c.println("--- Cart Items ---")
	for i, line := range lines {
		c.printf("%d. %s - Quantity: %d - %s\n", i+1, line.Name, line.Quantity, util.FormatMoney(line.LineTotal))
	}

	return true
}

func (c *console) printTotals(totals pricing.Totals) {
	c.println()
	c.println("--- Total with Discounts ---")
	c.printf("Subtotal: %s\n", util.FormatMoney(totals.Subtotal))
	c.printf("Total Discounts: %s\n", util.FormatMoney(totals.Discount))
	c.printf("Discounted Total: %s\n", util.FormatMoney(totals.DiscountedTotal))
	c.printf("Tax: %s\n", util.FormatMoney(totals.Tax))
	c.printf("Total: %s\n", util.FormatMoney(totals.Total))
}

func (c *console) printReceipt(order *entity.Order) {
	c.println()
	c.println("----- Receipt -----")
	if order.IsConfirmed() {
		c.printf("Order: %s\n", order.ID)
	}
	c.printf("Customer: %s\n", order.CustomerName)
	c.printf("Email: %s\n", order.CustomerEmail)
	c.printf("Date: %s\n", order.PlacedAt.Format(time.RFC1123))

	c.println()
	c.println("--- Items ---")
	for _, line := range order.Lines {
		c.printf("%s - Quantity: %d - %s", line.Name, line.Quantity, util.FormatMoney(line.LineTotal))
		if line.Discount.IsPositive() {
			c.printf(" (-%s)", util.FormatMoney(line.Discount))
		}
		c.println()
	}

	c.println()
	c.printf("Subtotal: %s\n", util.FormatMoney(order.Subtotal))
	c.printf("Discounts: %s\n", util.FormatMoney(order.Discount))
	c.printf("Tax: %s\n", util.FormatMoney(order.Tax))
	c.printf("Total: %s\n", util.FormatMoney(order.Total))
	c.println("--- Thank you for shopping with us! ---")
}
