package features

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"supermarket/internal/domain/entity"
	domainerrors "supermarket/internal/domain/errors"
	"supermarket/internal/domain/pricing"
	"supermarket/internal/domain/repository"
	"supermarket/internal/infra/persistence/memory"
	"supermarket/internal/usecase"
	"supermarket/internal/usecase/impl"

	"github.com/cucumber/godog"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

type pricingTestContext struct {
	catalog  repository.CatalogRepository
	options  pricing.Options
	shopping usecase.ShoppingUsecase
	session  *entity.Session
	selected *pricing.SelectedDiscount
	err      error
}

func (c *pricingTestContext) reset() {
	c.catalog = nil
	c.options = pricing.DefaultOptions()
	c.shopping = nil
	c.session = entity.NewSession()
	c.selected = nil
	c.err = nil
}

func (c *pricingTestContext) build() {
	c.shopping = impl.NewShoppingService(impl.ShoppingServiceParams{
		CatalogRepo: c.catalog,
		Engine:      pricing.NewEngine(entity.DefaultDiscountRules(), c.options),
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func (c *pricingTestContext) theStockCatalogAndDiscountRules() error {
	catalog, err := memory.NewCatalogRepository(entity.DefaultProducts())
	if err != nil {
		return err
	}
	c.catalog = catalog
	c.build()

	return nil
}

func (c *pricingTestContext) theDiscountScalingIs(scaling string) error {
	c.options.Scaling = pricing.Scaling(scaling)
	if !c.options.Scaling.IsValid() {
		return fmt.Errorf("unknown scaling %q", scaling)
	}
	c.build()

	return nil
}

func (c *pricingTestContext) iAddToTheCart(qty int, name string) error {
	return c.shopping.AddToCart(context.Background(), c.session, name, qty)
}

func (c *pricingTestContext) iTryToAddToTheCart(qty int, name string) error {
	c.err = c.shopping.AddToCart(context.Background(), c.session, name, qty)

	return nil
}

func (c *pricingTestContext) iRemoveUnitsOfLine(qty, line int) error {
	_, err := c.shopping.RemoveFromCart(context.Background(), c.session, line, qty)

	return err
}

func (c *pricingTestContext) iApplyDiscount(number int) error {
	selected, err := c.shopping.ApplyDiscount(c.session, number)
	if err != nil {
		return err
	}
	c.selected = selected

	return nil
}

func (c *pricingTestContext) iSignInAs(email string) error {
	c.session.SignIn(entity.NewAccount("Shopper", email, "hash"))

	return nil
}

func (c *pricingTestContext) iTryToConfirmTheOrder() error {
	_, c.err = c.shopping.ConfirmOrder(context.Background(), c.session)

	return nil
}

func expectMoney(label string, got decimal.Decimal, want string) error {
	if got.StringFixed(2) != want {
		return fmt.Errorf("expected %s %s, got %s", label, want, got.StringFixed(2))
	}

	return nil
}

func (c *pricingTestContext) theSubtotalIs(want string) error {
	return expectMoney("subtotal", c.shopping.Totals(c.session).Subtotal, want)
}

func (c *pricingTestContext) theTotalDiscountIs(want string) error {
	return expectMoney("total discount", c.shopping.Totals(c.session).Discount, want)
}

func (c *pricingTestContext) theDiscountedTotalIs(want string) error {
	return expectMoney("discounted total", c.shopping.Totals(c.session).DiscountedTotal, want)
}

func (c *pricingTestContext) theTaxIs(want string) error {
	return expectMoney("tax", c.shopping.Totals(c.session).Tax, want)
}

func (c *pricingTestContext) theTotalIs(want string) error {
	return expectMoney("total", c.shopping.Totals(c.session).Total, want)
}

func (c *pricingTestContext) theDiscountOnLineIs(line int, want string) error {
	lines := c.shopping.CartLines(c.session)
	if line < 1 || line > len(lines) {
		return fmt.Errorf("cart has %d lines, no line %d", len(lines), line)
	}

	return expectMoney("line discount", lines[line-1].Discount, want)
}

func (c *pricingTestContext) theNewTotalIs(want string) error {
	if c.selected == nil {
		return errors.New("no discount was applied")
	}

	return expectMoney("new total", c.selected.NewTotal, want)
}

func (c *pricingTestContext) theCartIsEmpty() error {
	if !c.session.Cart().IsEmpty() {
		return fmt.Errorf("expected an empty cart, found %d lines", c.session.Cart().Len())
	}

	return nil
}

func (c *pricingTestContext) theStockOfIs(name string, want int) error {
	product, err := c.catalog.FindByName(context.Background(), name)
	if err != nil {
		return err
	}
	if product.AvailableQuantity != want {
		return fmt.Errorf("expected %d %s in stock, got %d", want, name, product.AvailableQuantity)
	}

	return nil
}

func (c *pricingTestContext) theLastOperationFailsWith(code string) error {
	if c.err == nil {
		return fmt.Errorf("expected %s, got success", code)
	}

	var appErr domainerrors.AppError
	if !errors.As(c.err, &appErr) {
		return fmt.Errorf("expected %s, got %v", code, c.err)
	}
	if appErr.ErrorCode() != code {
		return fmt.Errorf("expected %s, got %s", code, appErr.ErrorCode())
	}

	return nil
}

func (c *pricingTestContext) theLastOperationSucceeds() error {
	if c.err != nil {
		return fmt.Errorf("expected success, got %v", c.err)
	}

	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &pricingTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()

		return ctx, nil
	})

	// Given steps
	ctx.Step(`^the stock catalog and discount rules$`, tc.theStockCatalogAndDiscountRules)
	ctx.Step(`^the discount scaling is "([^"]*)"$`, tc.theDiscountScalingIs)

	// When steps
	ctx.Step(`^I add (\d+) "([^"]*)" to the cart$`, tc.iAddToTheCart)
	ctx.Step(`^I try to add (\d+) "([^"]*)" to the cart$`, tc.iTryToAddToTheCart)
	ctx.Step(`^I remove (\d+) units of line (\d+)$`, tc.iRemoveUnitsOfLine)
	ctx.Step(`^I apply discount (\d+)$`, tc.iApplyDiscount)
	ctx.Step(`^I sign in as "([^"]*)"$`, tc.iSignInAs)
	ctx.Step(`^I try to confirm the order$`, tc.iTryToConfirmTheOrder)

	// Then steps
	ctx.Step(`^the subtotal is "([^"]*)"$`, tc.theSubtotalIs)
	ctx.Step(`^the total discount is "([^"]*)"$`, tc.theTotalDiscountIs)
	ctx.Step(`^the discounted total is "([^"]*)"$`, tc.theDiscountedTotalIs)
	ctx.Step(`^the tax is "([^"]*)"$`, tc.theTaxIs)
	ctx.Step(`^the total is "([^"]*)"$`, tc.theTotalIs)
	ctx.Step(`^the discount on line (\d+) is "([^"]*)"$`, tc.theDiscountOnLineIs)
	ctx.Step(`^the new total is "([^"]*)"$`, tc.theNewTotalIs)
	ctx.Step(`^the cart is empty$`, tc.theCartIsEmpty)
	ctx.Step(`^the stock of "([^"]*)" is (\d+)$`, tc.theStockOfIs)
	ctx.Step(`^the last operation fails with "([^"]*)"$`, tc.theLastOperationFailsWith)
	ctx.Step(`^the last operation succeeds$`, tc.theLastOperationSucceeds)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"pricing.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
