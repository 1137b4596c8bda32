package pricing

import "testing"

func TestUnitDiscountRoundsUp(t *testing.T) {
	cases := []struct {
		base, rate, want int
	}{
		{5, 10, 1},   // 0.5 rounds up
		{10, 10, 1},  // exact
		{10, 80, 8},  // exact
		{7, 20, 2},   // 1.4 rounds up
		{1, 80, 1},   // 0.8 rounds up
		{100, 10, 10},
	}
	for _, c := range cases {
		if got := UnitDiscount(c.base, c.rate); got != c.want {
			t.Fatalf("UnitDiscount(%d, %d) = %d, want %d", c.base, c.rate, got, c.want)
		}
	}
}

func TestMarkupNeverBelowMarkdown(t *testing.T) {
	for base := 1; base <= 60; base++ {
		for rate := 1; rate <= 100; rate++ {
			d := UnitDiscount(base, rate)
			for amount := 1; amount <= 25; amount += 6 {
				up := WithMarkup(amount, base, d)
				down := WithMarkdown(amount, base, d)
				if up < down {
					t.Fatalf("markup %d below markdown %d (base=%d rate=%d amount=%d)",
						up, down, base, rate, amount)
				}
			}
		}
	}
}

func TestPricesScaleLinearly(t *testing.T) {
	base := 12
	d := UnitDiscount(base, TradeMarkupRate)

	unit := WithMarkup(1, base, d)
	for amount := 2; amount <= 100; amount *= 2 {
		if got := WithMarkup(amount, base, d); got != unit*amount {
			t.Fatalf("WithMarkup(%d) = %d, want %d", amount, got, unit*amount)
		}
	}

	unit = WithMarkdown(1, base, d)
	for amount := 2; amount <= 100; amount *= 2 {
		if got := WithMarkdown(amount, base, d); got != unit*amount {
			t.Fatalf("WithMarkdown(%d) = %d, want %d", amount, got, unit*amount)
		}
	}
}

func TestGross(t *testing.T) {
	if got := Gross(10, 5); got != 50 {
		t.Fatalf("Gross(10, 5) = %d, want 50", got)
	}
	if got := Gross(0, 5); got != 0 {
		t.Fatalf("Gross(0, 5) = %d, want 0", got)
	}
}

func TestIdempotentForEqualInputs(t *testing.T) {
	a := WithMarkup(7, 13, UnitDiscount(13, TradeMarkupRate))
	b := WithMarkup(7, 13, UnitDiscount(13, TradeMarkupRate))
	if a != b {
		t.Fatalf("repeated markup calls disagree: %d vs %d", a, b)
	}
}
