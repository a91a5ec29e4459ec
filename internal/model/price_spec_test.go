package model_test

import (
	"testing"

	"github.com/tech2stack/GoodLuck-final-sub001/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCommonPrice(t *testing.T) {
	spec, err := model.NewCommonPrice(decimal.NewFromInt(250))
	require.NoError(t, err)
	assert.Equal(t, model.PriceModeCommon, spec.Mode)

	_, err = model.NewCommonPrice(decimal.NewFromInt(-1))
	assert.Error(t, err)

	// Zero is a legal common price (free handouts exist), unlike per-class.
	_, err = model.NewCommonPrice(decimal.Zero)
	assert.NoError(t, err)
}

func TestNewPerClassPrice(t *testing.T) {
	_, err := model.NewPerClassPrice(nil)
	assert.Error(t, err, "empty table must be rejected")

	_, err = model.NewPerClassPrice(map[string]decimal.Decimal{
		"Class5": decimal.NewFromInt(-10),
	})
	assert.Error(t, err, "negative entry must be rejected")

	spec, err := model.NewPerClassPrice(map[string]decimal.Decimal{
		"Class5": decimal.NewFromInt(120),
		"Class6": decimal.NewFromInt(140),
	})
	require.NoError(t, err)
	assert.Equal(t, model.PriceModePerClass, spec.Mode)
}

func TestResolveCommonIgnoresClass(t *testing.T) {
	spec, err := model.NewCommonPrice(decimal.NewFromFloat(99.50))
	require.NoError(t, err)

	for _, class := range []string{"", "Class1", "Class12"} {
		price, err := spec.Resolve(class)
		require.NoError(t, err)
		assert.True(t, price.Equal(decimal.NewFromFloat(99.50)))
	}
}

func TestResolvePerClass(t *testing.T) {
	spec, err := model.NewPerClassPrice(map[string]decimal.Decimal{
		"Class5": decimal.NewFromInt(120),
		"Class6": decimal.Zero,
	})
	require.NoError(t, err)

	price, err := spec.Resolve("Class5")
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.NewFromInt(120)))

	_, err = spec.Resolve("")
	assert.ErrorIs(t, err, model.ErrClassRequired)

	_, err = spec.Resolve("Class7")
	assert.ErrorIs(t, err, model.ErrPriceNotFound, "class absent from table")

	_, err = spec.Resolve("Class6")
	assert.ErrorIs(t, err, model.ErrPriceNotFound, "zero entry counts as no price")
}

func TestBookPriceSpecAssembly(t *testing.T) {
	common := decimal.NewFromInt(300)
	b := &model.Book{PriceMode: model.PriceModeCommon, CommonPrice: &common}
	spec, err := b.PriceSpec()
	require.NoError(t, err)
	price, err := spec.Resolve("Class3")
	require.NoError(t, err)
	assert.True(t, price.Equal(common))

	b = &model.Book{
		PriceMode: model.PriceModePerClass,
		ClassPrices: []model.BookClassPrice{
			{ClassName: "Class1", Price: decimal.NewFromInt(80)},
		},
	}
	spec, err = b.PriceSpec()
	require.NoError(t, err)
	_, err = spec.Resolve("Class2")
	assert.ErrorIs(t, err, model.ErrPriceNotFound)

	b = &model.Book{PriceMode: model.PriceModeCommon}
	_, err = b.PriceSpec()
	assert.Error(t, err, "common mode without a price is corrupt data")
}
