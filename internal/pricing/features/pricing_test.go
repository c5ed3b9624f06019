package features

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"aguagas/internal/domain"
	"aguagas/internal/pricing"
	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"
)

type pricingTestContext struct {
	items    []domain.CartItem
	supplier domain.Supplier
	stamps   int
	fee      decimal.Decimal
	quote    pricing.Quote
	err      error
	order    domain.Order
	allowed  bool
}

func (c *pricingTestContext) reset() {
	*c = pricingTestContext{}
}

func (c *pricingTestContext) aCartWithUnitsOf(qty int, kind string) error {
	c.items = append(c.items, domain.CartItem{
		Product:  domain.Product{ID: fmt.Sprintf("p-%d", len(c.items)), Kind: domain.Kind(kind), Price: decimal.NewFromInt(1)},
		Size:     kind,
		Quantity: qty,
	})
	return nil
}

func (c *pricingTestContext) aCartWithSubtotal(amount string) error {
	price, err := decimal.NewFromString(amount)
	if err != nil {
		return err
	}
	c.items = []domain.CartItem{{
		Product:  domain.Product{ID: "p-1", Kind: domain.KindGas13kg, Price: price},
		Size:     "13kg",
		Quantity: 1,
	}}
	return nil
}

func (c *pricingTestContext) theFeeIsCalculated() error {
	c.fee, c.err = pricing.PlatformFee(c.items)
	return nil
}

func (c *pricingTestContext) theFeeIs(want string) error {
	if c.err != nil {
		return fmt.Errorf("unexpected error: %w", c.err)
	}
	if got := c.fee.StringFixed(2); got != want {
		return fmt.Errorf("expected fee %s, got %s", want, got)
	}
	return nil
}

func (c *pricingTestContext) theCalculationFailsWithAnUnknownKind() error {
	if !errors.Is(c.err, domain.ErrUnknownKind) {
		return fmt.Errorf("expected unknown kind error, got %v", c.err)
	}
	return nil
}

func (c *pricingTestContext) aSupplierWithLoyaltyEnabledAt(percent int) error {
	c.supplier = domain.Supplier{ID: "1", Settings: domain.SupplierSettings{
		HidePhone: true,
		Loyalty:   domain.LoyaltySettings{Enabled: true, DiscountPercent: percent},
	}}
	return nil
}

func (c *pricingTestContext) aSupplierWithLoyaltyDisabled() error {
	c.supplier = domain.Supplier{ID: "4", Settings: domain.SupplierSettings{HidePhone: true}}
	return nil
}

func (c *pricingTestContext) theCustomerHasStamps(stamps int) error {
	c.stamps = stamps
	return nil
}

func (c *pricingTestContext) theOrderIsQuoted() error {
	c.quote, c.err = pricing.QuoteCart(c.items, c.supplier, c.stamps)
	return c.err
}

func (c *pricingTestContext) theDiscountIs(want string) error {
	if got := c.quote.Discount.StringFixed(2); got != want {
		return fmt.Errorf("expected discount %s, got %s", want, got)
	}
	return nil
}

func (c *pricingTestContext) theFinalSubtotalIs(want string) error {
	if got := c.quote.FinalSubtotal.StringFixed(2); got != want {
		return fmt.Errorf("expected final subtotal %s, got %s", want, got)
	}
	return nil
}

func (c *pricingTestContext) theTotalEqualsTheFinalSubtotal() error {
	if !c.quote.Total.Equal(c.quote.FinalSubtotal) {
		return fmt.Errorf("total %s differs from subtotal %s", c.quote.Total, c.quote.FinalSubtotal)
	}
	return nil
}

func (c *pricingTestContext) theAppliedDiscountPercentIs(want int) error {
	if c.quote.DiscountPercent == nil {
		return errors.New("expected a discount percent, got none")
	}
	if *c.quote.DiscountPercent != want {
		return fmt.Errorf("expected discount percent %d, got %d", want, *c.quote.DiscountPercent)
	}
	return nil
}

func (c *pricingTestContext) noDiscountPercentIsApplied() error {
	if c.quote.DiscountPercent != nil {
		return fmt.Errorf("expected no discount percent, got %d", *c.quote.DiscountPercent)
	}
	return nil
}

func (c *pricingTestContext) aPendingOrderCreatedAt(ts string) error {
	created, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return err
	}
	c.order = domain.Order{
		ID:          "order-1",
		Status:      domain.OrderPending,
		CreatedAt:   created,
		CancelUntil: pricing.CancelDeadline(created),
	}
	return nil
}

func (c *pricingTestContext) cancellationIsCheckedAfter(seconds int) error {
	c.allowed = pricing.CanCancel(c.order, c.order.CreatedAt.Add(time.Duration(seconds)*time.Second))
	return nil
}

func (c *pricingTestContext) theOrderCanBeCancelled() error {
	if !c.allowed {
		return errors.New("expected cancellation to be allowed")
	}
	return nil
}

func (c *pricingTestContext) theOrderCannotBeCancelled() error {
	if c.allowed {
		return errors.New("expected cancellation to be rejected")
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &pricingTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	ctx.Step(`^a cart with (\d+) units of "([^"]*)"$`, tc.aCartWithUnitsOf)
	ctx.Step(`^a cart with subtotal "([^"]*)"$`, tc.aCartWithSubtotal)
	ctx.Step(`^a supplier with loyalty enabled at (\d+) percent$`, tc.aSupplierWithLoyaltyEnabledAt)
	ctx.Step(`^a supplier with loyalty disabled$`, tc.aSupplierWithLoyaltyDisabled)
	ctx.Step(`^the customer has (\d+) stamps with the supplier$`, tc.theCustomerHasStamps)
	ctx.Step(`^a pending order created at "([^"]*)"$`, tc.aPendingOrderCreatedAt)

	ctx.Step(`^the platform fee is calculated$`, tc.theFeeIsCalculated)
	ctx.Step(`^the order is quoted$`, tc.theOrderIsQuoted)
	ctx.Step(`^cancellation is checked (\d+) seconds after creation$`, tc.cancellationIsCheckedAfter)

	ctx.Step(`^the platform fee is "([^"]*)"$`, tc.theFeeIs)
	ctx.Step(`^the calculation fails with an unknown kind$`, tc.theCalculationFailsWithAnUnknownKind)
	ctx.Step(`^the discount is "([^"]*)"$`, tc.theDiscountIs)
	ctx.Step(`^the final subtotal is "([^"]*)"$`, tc.theFinalSubtotalIs)
	ctx.Step(`^the order total equals the final subtotal$`, tc.theTotalEqualsTheFinalSubtotal)
	ctx.Step(`^the applied discount percent is (\d+)$`, tc.theAppliedDiscountPercentIs)
	ctx.Step(`^no discount percent is applied$`, tc.noDiscountPercentIsApplied)
	ctx.Step(`^the order can be cancelled$`, tc.theOrderCanBeCancelled)
	ctx.Step(`^the order cannot be cancelled$`, tc.theOrderCannotBeCancelled)
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
