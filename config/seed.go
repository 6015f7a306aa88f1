package config

import (
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"supermarket/internal/domain/entity"
	"supermarket/internal/domain/pricing"
)

func validateCategory(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	_, ok := entity.ParseCategory(value)

	return ok
}

// Products converts the catalog section into entities, falling back to the
// stock catalog when the section is empty.
func (c *Config) Products() ([]entity.Product, error) {
	if len(c.Catalog) == 0 {
		return entity.DefaultProducts(), nil
	}

	products := make([]entity.Product, 0, len(c.Catalog))
	for i, p := range c.Catalog {
		price, err := decimal.NewFromString(p.Price)
		if err != nil {
			return nil, errors.Wrapf(err, "catalog[%d] price", i)
		}
		if price.IsNegative() {
			return nil, errors.Errorf("catalog[%d] price %s is negative", i, p.Price)
		}
		category, ok := entity.ParseCategory(p.Category)
		if !ok {
			return nil, errors.Errorf("catalog[%d] unknown category %q", i, p.Category)
		}

		products = append(products, entity.Product{
			Name:              p.Name,
			UnitPrice:         price,
			Category:          category,
			AvailableQuantity: p.Quantity,
		})
	}

	return products, nil
}

// DiscountRules converts the discounts section into rules in priority order.
func (c *Config) DiscountRules() ([]entity.DiscountRule, error) {
	if c.Discounts == nil {
		return entity.DefaultDiscountRules(), nil
	}

	rules := make([]entity.DiscountRule, 0, len(c.Discounts))
	for i, d := range c.Discounts {
		amount, err := decimal.NewFromString(d.Amount)
		if err != nil {
			return nil, errors.Wrapf(err, "discounts[%d] amount", i)
		}
		if amount.IsNegative() {
			return nil, errors.Errorf("discounts[%d] amount %s is negative", i, d.Amount)
		}

		var rule entity.DiscountRule
		switch entity.DiscountKind(d.Kind) {
		case entity.DiscountCategoryPercentage, entity.DiscountCategoryFlat:
			category, ok := entity.ParseCategory(d.Category)
			if !ok {
				return nil, errors.Errorf("discounts[%d] unknown category %q", i, d.Category)
			}
			if d.Kind == string(entity.DiscountCategoryPercentage) {
				rule = entity.NewCategoryPercentageRule(d.Name, category, amount)
			} else {
				rule = entity.NewCategoryFlatRule(d.Name, category, amount)
			}
		case entity.DiscountItemBOGO:
			rule = entity.NewItemBOGORule(d.Name, d.Item, amount)
			rule.IsPercentage = d.Percentage
		default:
			return nil, errors.Errorf("discounts[%d] unknown kind %q", i, d.Kind)
		}

		rules = append(rules, rule)
	}

	return rules, nil
}

// PricingOptions converts the pricing section into engine options.
func (c *Config) PricingOptions() (pricing.Options, error) {
	opts := pricing.DefaultOptions()

	if c.Pricing.TaxRate != "" {
		rate, err := decimal.NewFromString(c.Pricing.TaxRate)
		if err != nil {
			return opts, errors.Wrap(err, "pricing.taxRate")
		}
		if rate.IsNegative() {
			return opts, errors.Errorf("pricing.taxRate %s is negative", c.Pricing.TaxRate)
		}
		opts.TaxRate = rate
	}
	if c.Pricing.Scale != nil {
		opts.Scale = *c.Pricing.Scale
	}
	if c.Pricing.Scaling != "" {
		opts.Scaling = pricing.Scaling(c.Pricing.Scaling)
	}

	return opts, nil
}
