package cli

import (
	"context"
	"strings"

	"supermarket/internal/domain/entity"
	domainerrors "supermarket/internal/domain/errors"
	"supermarket/internal/util"
)

type shopAction struct {
	label string
	run   func(ctx context.Context, session *entity.Session) error
}

func (c *console) shopActions() []shopAction {
	return []shopAction{
		{label: "Add Item to Cart", run: c.addItem},
		{label: "Remove Item from Cart", run: c.removeItem},
		{label: "Calculate Total", run: c.calculateTotal},
		{label: "Display Receipt", run: c.displayReceipt},
		{label: "Apply Discount", run: c.applyDiscount},
		{label: "Clear Cart", run: c.clearCart},
		{label: "Confirm Order", run: c.confirmOrder},
		{label: "Add Favorite", run: c.addFavorite},
		{label: "View Favorites", run: c.viewFavorites},
		{label: "Purchase History", run: c.purchaseHistory},
	}
}

// shopMenu loops until the shopper logs out, then returns to the main menu.
func (c *console) shopMenu(ctx context.Context, session *entity.Session) error {
	actions := c.shopActions()
	logout := len(actions) + 1

	for {
		name := "Guest"
		if !session.IsGuest() {
			name = session.Account.Name
		}

		c.println()
		c.printf("--- Welcome, %s ---\n", name)
		for i, action := range actions {
			c.printf("%d. %s\n", i+1, action.label)
		}
		if session.IsGuest() {
			c.printf("%d. Back to Main Menu\n", logout)
		} else {
			c.printf("%d. Logout\n", logout)
		}

		choice, err := c.readInt("Enter your choice: ")
		if err != nil {
			return err
		}

		switch {
		case choice == logout:
			if !session.IsGuest() {
				c.accountUC.Logout(ctx, session)
				c.println("Logged out.")
			}

			return nil
		case choice >= 1 && choice <= len(actions):
			if err := actions[choice-1].run(ctx, session); err != nil {
				return err
			}
		default:
			c.println("Invalid choice. Please enter a valid option.")
		}
	}
}

func (c *console) addItem(ctx context.Context, session *entity.Session) error {
	c.println()
	c.println("--- Product Categories ---")
	for i, category := range c.catalogUC.Categories() {
		c.printf("%d. %s\n", i+1, category)
	}

	choice, err := c.readInt("Enter category number: ")
	if err != nil {
		return err
	}
	category, err := c.catalogUC.CategoryByChoice(choice)
	if err != nil {
		c.printError(ctx, err)

		return nil
	}

	c.println()
	c.printf("--- %s Products ---\n", category)
	for i, product := range c.catalogUC.Products(ctx, category) {
		c.printf("%d. %s - %s - Available: %d\n", i+1, product.Name, util.FormatMoney(product.UnitPrice), product.AvailableQuantity)
	}

	choice, err = c.readInt("Enter product number: ")
	if err != nil {
		return err
	}
	product, err := c.catalogUC.ProductByChoice(ctx, category, choice)
	if err != nil {
		c.printError(ctx, err)

		return nil
	}

	qty, err := c.readInt("Enter quantity: ")
	if err != nil {
		return err
	}
	if err := c.shoppingUC.AddToCart(ctx, session, product.Name, qty); err != nil {
		c.printError(ctx, err)

		return nil
	}

	c.printf("%d %s(s) added to cart.\n", qty, product.Name)

	return nil
}

func (c *console) removeItem(ctx context.Context, session *entity.Session) error {
	if !c.printCart(session) {
		return nil
	}

	lineNumber, err := c.readInt("Enter item number to remove: ")
	if err != nil {
		return err
	}
	qty, err := c.readInt("Enter quantity to remove: ")
	if err != nil {
		return err
	}

	removed, err := c.shoppingUC.RemoveFromCart(ctx, session, lineNumber, qty)
	if err != nil {
		c.printError(ctx, err)

		return nil
	}

	c.printf("%d %s(s) removed from cart.\n", removed.Removed, removed.Name)

	return nil
}

func (c *console) calculateTotal(_ context.Context, session *entity.Session) error {
	if !c.printCart(session) {
		return nil
	}
	c.printTotals(c.shoppingUC.Totals(session))

	return nil
}

func (c *console) displayReceipt(ctx context.Context, session *entity.Session) error {
	order, err := c.shoppingUC.Receipt(ctx, session)
	if err != nil {
		c.printError(ctx, err)

		return nil
	}
	c.printReceipt(order)

	return nil
}

func (c *console) applyDiscount(ctx context.Context, session *entity.Session) error {
	rules := c.catalogUC.Discounts()
	if len(rules) == 0 {
		c.printError(ctx, domainerrors.ErrNoDiscounts)

		return nil
	}

	c.println()
	c.println("--- Available Discounts ---")
	for i, rule := range rules {
		c.printf("%d. %s\n", i+1, rule.Name)
	}

	number, err := c.readInt("Enter discount number to apply: ")
	if err != nil {
		return err
	}
	selected, err := c.shoppingUC.ApplyDiscount(session, number)
	if err != nil {
		c.printError(ctx, err)

		return nil
	}

	c.printf("Discount applied: %s\n", selected.Rule.Name)
	c.printf("New Total: %s\n", util.FormatMoney(selected.NewTotal))

	return nil
}

func (c *console) clearCart(ctx context.Context, session *entity.Session) error {
	if err := c.shoppingUC.ClearCart(ctx, session); err != nil {
		c.printError(ctx, err)

		return nil
	}
	c.println("Cart cleared.")

	return nil
}

func (c *console) confirmOrder(ctx context.Context, session *entity.Session) error {
	if session.IsGuest() {
		c.printError(ctx, domainerrors.ErrLoginRequired)

		return nil
	}
	if session.Cart().IsEmpty() {
		c.printError(ctx, domainerrors.ErrEmptyCart)

		return nil
	}

	c.println()
	c.println("--- Confirm Order ---")
	c.printCart(session)
	c.printf("Total: %s\n", util.FormatMoney(c.shoppingUC.Totals(session).Total))

	answer, err := c.prompt("Confirm order (yes/no): ")
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "yes") {
		c.println("Order cancelled.")

		return nil
	}

	confirmed, err := c.shoppingUC.ConfirmOrder(ctx, session)
	if err != nil {
		c.printError(ctx, err)

		return nil
	}

	c.printReceipt(confirmed.Order)
	if confirmed.ReceiptCode != "" {
		c.printf("Receipt code saved to %s\n", confirmed.ReceiptCode)
	}
	c.println("Order confirmed. Thank you!")

	return nil
}

func (c *console) addFavorite(ctx context.Context, session *entity.Session) error {
	if session.IsGuest() {
		c.printError(ctx, domainerrors.ErrLoginRequired)

		return nil
	}

	name, err := c.prompt("Enter product name: ")
	if err != nil {
		return err
	}

	added, err := c.shoppingUC.AddFavorite(ctx, session, name)
	if err != nil {
		c.printError(ctx, err)

		return nil
	}
	if !added {
		c.printf("%s is already a favorite.\n", name)

		return nil
	}
	c.printf("%s added to favorites.\n", name)

	return nil
}

func (c *console) viewFavorites(ctx context.Context, session *entity.Session) error {
	favorites, err := c.shoppingUC.Favorites(session)
	if err != nil {
		c.printError(ctx, err)

		return nil
	}

	c.println()
	c.println("--- Favorites ---")
	if len(favorites) == 0 {
		c.println("No favorites yet.")

		return nil
	}
	for i, name := range favorites {
		c.printf("%d. %s\n", i+1, name)
	}

	return nil
}

func (c *console) purchaseHistory(ctx context.Context, session *entity.Session) error {
	orders, err := c.shoppingUC.PurchaseHistory(session)
	if err != nil {
		c.printError(ctx, err)

		return nil
	}

	c.println()
	c.println("--- Purchase History ---")
	if len(orders) == 0 {
		c.println("No orders yet.")

		return nil
	}
	for i, order := range orders {
		c.printf("%d. %s - %d item(s) - %s\n",
			i+1, order.PlacedAt.Format("2006-01-02 15:04"), order.ItemCount(), util.FormatMoney(order.Total))
	}

	return nil
}
