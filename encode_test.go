package tryinvest

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPortfolio_JSON_RoundTrip(t *testing.T) {
	ctx := context.Background()
	pricer := newPricer(map[string]float64{"AAPL": 170.53, "DIS": 105.3})
	p := NewPortfolio("Tech", USD(10000))
	require.NoError(t, p.Buy(ctx, pricer, "AAPL", 3))
	pricer.today = day3
	require.NoError(t, p.Buy(ctx, pricer, "DIS", 2))
	pricer.prices["AAPL"] = 160
	require.NoError(t, p.Buy(ctx, pricer, "AAPL", 1))

	data, err := json.Marshal(p)
	require.NoError(t, err)
	q, err := DecodePortfolio(data)
	require.NoError(t, err)

	assert.Equal(t, p.Name(), q.Name())
	assert.True(t, p.Cash().Equal(q.Cash()))
	assert.True(t, p.InitialValue().Equal(q.InitialValue()))
	assert.True(t, p.CurrentValue().Equal(q.CurrentValue()))

	require.Len(t, q.Positions(), len(p.Positions()))
	for i, want := range p.Positions() {
		got := q.Positions()[i]
		assert.Equal(t, want.Tag(), got.Tag())
		assert.True(t, want.TotalCostBasis().Equal(got.TotalCostBasis()))
		require.Equal(t, want.NumShares(), got.NumShares())
		for j, s := range want.Shares() {
			assert.True(t, s.CostBasis().Equal(got.Shares()[j].CostBasis()), "%s share %d", want.Tag(), j)
			assert.Equal(t, s.BuyDate(), got.Shares()[j].BuyDate(), "%s share %d", want.Tag(), j)
		}
	}
}

func TestPortfolio_JSON_Record(t *testing.T) {
	p := NewPortfolio("Tech", USD(9659.1))
	p.AddPositions(position(t, "AAPL", day1, 170.3, 170.3))
	p.initialValue = USD(10000)
	p.Revalue()

	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"NAME": "Tech", "CASH": 9659.1, "INITIAL_VALUE": 10000, "CURRENT_VALUE": 9659.1,
		"POSITIONS": [{"TAG": "AAPL", "TOTAL_COST_BASIS": 340.6, "SHARES": [
			{"COST_BASIS": 170.3, "BUY_DATE": "2024/03/01"},
			{"COST_BASIS": 170.3, "BUY_DATE": "2024/03/01"}
		]}]
	}`, string(data))
}

func TestDecodePortfolio_Lenient(t *testing.T) {
	// legacy records: dashed dates, stale TOTAL_COST_BASIS, no CURRENT_VALUE, empty position.
	p, err := DecodePortfolio([]byte(`{
		"NAME": "Old", "CASH": 500, "INITIAL_VALUE": 1000,
		"POSITIONS": [
			{"TAG": "DIS", "TOTAL_COST_BASIS": 1, "SHARES": [{"COST_BASIS": 105.3, "BUY_DATE": "2021-03-01"}]},
			{"TAG": "GONE", "TOTAL_COST_BASIS": 0, "SHARES": []}
		]
	}`))
	require.NoError(t, err)
	require.Len(t, p.Positions(), 1)
	dis := p.Lookup("DIS")
	assertMoney(t, 105.3, dis.TotalCostBasis(), "recomputed from the shares")
	assert.Equal(t, "2021/03/01", dis.Shares()[0].BuyDate().String())
	assertMoney(t, 500, p.CurrentValue(), "revalued when missing")

	p, err = DecodePortfolio([]byte(`{"NAME": "New", "CASH": 700}`))
	require.NoError(t, err)
	assertMoney(t, 700, p.InitialValue())
}

func TestDecodePortfolio_Corrupt(t *testing.T) {
	for _, in := range []string{
		``,
		`[]`,
		`{"CASH": 1}`,
		`{"NAME": "x"}`,
		`{"NAME": "x", "CASH": null}`,
		`{"NAME": "x", "CASH": "lots"}`,
		`{"NAME": "x", "CASH": 1, "POSITIONS": [{"SHARES": []}]}`,
		`{"NAME": "x", "CASH": 1, "POSITIONS": [{"TAG": "A", "SHARES": [{"BUY_DATE": "2024/03/01"}]}]}`,
		`{"NAME": "x", "CASH": 1, "POSITIONS": [{"TAG": "A", "SHARES": [{"COST_BASIS": -1, "BUY_DATE": "2024/03/01"}]}]}`,
		`{"NAME": "x", "CASH": 1, "POSITIONS": [{"TAG": "A", "SHARES": [{"COST_BASIS": 1}]}]}`,
		`{"NAME": "x", "CASH": 1, "POSITIONS": [{"TAG": "A", "SHARES": [{"COST_BASIS": 1, "BUY_DATE": "soon"}]}]}`,
	} {
		_, err := DecodePortfolio([]byte(in))
		assert.ErrorIs(t, err, ErrCorruptState, "%s", in)
	}
}

func TestBook_JSON(t *testing.T) {
	b := DefaultBook()
	_, err := b.Create("Tech", USD(1000))
	require.NoError(t, err)

	data, err := json.Marshal(b)
	require.NoError(t, err)
	got, err := DecodeBook(data)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Len())
	assert.Equal(t, 1, got.CurrentIndex())
	assert.Equal(t, "Tech", got.Current().Name())
	assert.Equal(t, DefaultPortfolioName, got.Portfolios()[0].Name())

	// records without CURRENT select the first portfolio.
	got, err = DecodeBook([]byte(`{"PORTFOLIOS": [{"NAME": "My First Portfolio", "CASH": 10000, "INITIAL_VALUE": 10000, "CURRENT_VALUE": 10000, "POSITIONS": []}]}`))
	require.NoError(t, err)
	assert.Equal(t, 0, got.CurrentIndex())
}

func TestDecodeBook_Corrupt(t *testing.T) {
	one := `{"NAME": "a", "CASH": 1}`
	for _, in := range []string{
		``,
		`  `,
		`{}`,
		`{"PORTFOLIOS": []}`,
		`{"PORTFOLIOS": [` + one + `], "CURRENT": 1}`,
		`{"PORTFOLIOS": [` + one + `], "CURRENT": -1}`,
		`{"PORTFOLIOS": [` + one + `,` + one + `,` + one + `,` + one + `,` + one + `,` + one + `]}`,
		`{"PORTFOLIOS": [{"NAME": "a"}]}`,
		`{"PORTFOLIOS": {}}`,
	} {
		_, err := DecodeBook([]byte(in))
		assert.ErrorIs(t, err, ErrCorruptState, "%q", in)
	}
}
