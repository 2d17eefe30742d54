package pricing

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/lakaymarket/storefront-backend/pkg/db/models"
	"github.com/lakaymarket/storefront-backend/pkg/enums"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestDefaultTableResolve(t *testing.T) {
	table := DefaultTable()

	cases := []struct {
		qty      int
		label    string
		discount int
		price    string
	}{
		{1, "1-2", 0, "10"},
		{2, "1-2", 0, "10"},
		{3, "3-5", 10, "9"},
		{9, "6-9", 15, "8.5"},
		{10, "10-49", 20, "8"},
		{49, "10-49", 20, "8"},
		{50, "50-99", 25, "7.5"},
		{100, "100+", 30, "7"},
		{100000, "100+", 30, "7"},
	}
	for _, tc := range cases {
		tier, ok := table.Resolve(tc.qty)
		if !ok {
			t.Fatalf("Resolve(%d) found no tier", tc.qty)
		}
		if tier.Label() != tc.label || tier.DiscountPercent != tc.discount || !tier.UnitPrice.Equal(dec(tc.price)) {
			t.Fatalf("Resolve(%d) = %s %d%% %s, want %s %d%% %s", tc.qty, tier.Label(), tier.DiscountPercent, tier.UnitPrice, tc.label, tc.discount, tc.price)
		}
	}

	for _, qty := range []int{0, -1} {
		if _, ok := table.Resolve(qty); ok {
			t.Fatalf("Resolve(%d) should not match", qty)
		}
	}
}

func TestResolveMatchesExactlyOneTier(t *testing.T) {
	table := DefaultTable()
	tiers := table.Tiers()
	for qty := 1; qty <= 250; qty++ {
		matches := 0
		for _, tier := range tiers {
			if tier.Contains(qty) {
				matches++
			}
		}
		if matches != 1 {
			t.Fatalf("quantity %d matched %d tiers", qty, matches)
		}
		got, ok := table.Resolve(qty)
		if !ok || !got.Contains(qty) {
			t.Fatalf("Resolve(%d) returned %v, ok=%v", qty, got, ok)
		}
		again, _ := table.Resolve(qty)
		if again.MinQty != got.MinQty {
			t.Fatalf("Resolve(%d) not deterministic", qty)
		}
	}
}

func TestAdjacentBoundariesResolveToAdjacentTiers(t *testing.T) {
	table := DefaultTable()
	tiers := table.Tiers()
	for i := 0; i < len(tiers)-1; i++ {
		upper := *tiers[i].MaxQty
		lo, ok := table.Resolve(upper)
		if !ok || lo.MinQty != tiers[i].MinQty {
			t.Fatalf("Resolve(%d) should hit tier %s", upper, tiers[i].Label())
		}
		hi, ok := table.Resolve(tiers[i+1].MinQty)
		if !ok || hi.MinQty != tiers[i+1].MinQty {
			t.Fatalf("Resolve(%d) should hit tier %s", tiers[i+1].MinQty, tiers[i+1].Label())
		}
		if tiers[i+1].MinQty-1 != upper {
			t.Fatalf("tiers %s and %s are not contiguous", tiers[i].Label(), tiers[i+1].Label())
		}
	}
}

func TestExactModeRejectsInBetweenQuantities(t *testing.T) {
	table, err := NewTable(enums.TierModeExact, []Tier{
		{MinQty: 1, UnitPrice: dec("10"), DiscountPercent: 0},
		{MinQty: 3, UnitPrice: dec("9"), DiscountPercent: 10},
		{MinQty: 6, UnitPrice: dec("8.5"), DiscountPercent: 15},
	})
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	for _, qty := range []int{1, 3, 6} {
		if tier, ok := table.Resolve(qty); !ok || tier.MinQty != qty {
			t.Fatalf("Resolve(%d) should match its exact tier", qty)
		}
	}
	for _, qty := range []int{2, 4, 5, 7, 100} {
		if _, ok := table.Resolve(qty); ok {
			t.Fatalf("Resolve(%d) should be not found in exact mode", qty)
		}
	}
	if got := table.Tiers()[1].Label(); got != "3" {
		t.Fatalf("exact tier label = %q, want 3", got)
	}
}

func TestNewTableValidation(t *testing.T) {
	cases := map[string]struct {
		mode  enums.TierMode
		tiers []Tier
		want  string
	}{
		"empty": {enums.TierModeRange, nil, "at least one tier"},
		"zero min": {enums.TierModeRange, []Tier{
			{MinQty: 0, UnitPrice: dec("1")},
		}, "min quantity"},
		"max below min": {enums.TierModeRange, []Tier{
			{MinQty: 5, MaxQty: intPtr(4), UnitPrice: dec("1")},
		}, "below min"},
		"zero price": {enums.TierModeRange, []Tier{
			{MinQty: 1, UnitPrice: decimal.Zero},
		}, "unit price"},
		"discount out of range": {enums.TierModeRange, []Tier{
			{MinQty: 1, UnitPrice: dec("1"), DiscountPercent: 101},
		}, "discount percent"},
		"gap": {enums.TierModeRange, []Tier{
			{MinQty: 1, MaxQty: intPtr(2), UnitPrice: dec("2")},
			{MinQty: 4, UnitPrice: dec("1")},
		}, "does not follow"},
		"overlap": {enums.TierModeRange, []Tier{
			{MinQty: 1, MaxQty: intPtr(5), UnitPrice: dec("2")},
			{MinQty: 3, UnitPrice: dec("1")},
		}, "does not follow"},
		"unbounded middle": {enums.TierModeRange, []Tier{
			{MinQty: 1, UnitPrice: dec("2")},
			{MinQty: 3, UnitPrice: dec("1")},
		}, "only the last tier"},
		"exact range tier": {enums.TierModeExact, []Tier{
			{MinQty: 1, MaxQty: intPtr(2), UnitPrice: dec("2")},
		}, "min == max"},
		"exact duplicate": {enums.TierModeExact, []Tier{
			{MinQty: 3, UnitPrice: dec("2")},
			{MinQty: 3, UnitPrice: dec("1")},
		}, "strictly ascending"},
		"bad mode": {"fuzzy", []Tier{{MinQty: 1, UnitPrice: dec("1")}}, "invalid tier mode"},
	}
	for name, tc := range cases {
		_, err := NewTable(tc.mode, tc.tiers)
		if err == nil || !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("%s: expected error containing %q, got %v", name, tc.want, err)
		}
	}
}

func TestTableIsImmutable(t *testing.T) {
	input := []Tier{
		{MinQty: 1, MaxQty: intPtr(2), UnitPrice: dec("10")},
		{MinQty: 3, UnitPrice: dec("9"), DiscountPercent: 10},
	}
	table, err := NewTable(enums.TierModeRange, input)
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	*input[0].MaxQty = 50
	out := table.Tiers()
	*out[0].MaxQty = 70
	out[1].DiscountPercent = 99

	tier, ok := table.Resolve(2)
	if !ok || *tier.MaxQty != 2 {
		t.Fatalf("table mutated through caller slices: %+v", tier)
	}
	if table.MaxDiscount() != 10 {
		t.Fatalf("expected max discount 10, got %d", table.MaxDiscount())
	}
}

func TestWithModeRoundTrip(t *testing.T) {
	exact, err := DefaultTable().WithMode(enums.TierModeExact)
	if err != nil {
		t.Fatalf("WithMode exact: %v", err)
	}
	if _, ok := exact.Resolve(4); ok {
		t.Fatal("exact table should not match 4")
	}
	if tier, ok := exact.Resolve(10); !ok || tier.DiscountPercent != 20 {
		t.Fatalf("exact table should match 10 at 20%%, got %+v ok=%v", tier, ok)
	}

	back, err := exact.WithMode(enums.TierModeRange)
	if err != nil {
		t.Fatalf("WithMode range: %v", err)
	}
	tier, ok := back.Resolve(49)
	if !ok || tier.Label() != "10-49" {
		t.Fatalf("round-tripped table should resolve 49 to 10-49, got %s", tier.Label())
	}
}

func TestParseTable(t *testing.T) {
	raw := `[{"min_quantity":1,"max_quantity":4,"unit_price":"5.00","discount_percent":0},
	         {"min_quantity":5,"unit_price":4.5,"discount_percent":10}]`
	table, err := ParseTable(enums.TierModeRange, raw)
	if err != nil {
		t.Fatalf("ParseTable: %v", err)
	}
	tier, ok := table.Resolve(12)
	if !ok || !tier.UnitPrice.Equal(dec("4.5")) {
		t.Fatalf("unexpected tier %+v ok=%v", tier, ok)
	}
	if _, err := ParseTable(enums.TierModeRange, "{not json"); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestFromPriceTiers(t *testing.T) {
	rows := []models.ProductPriceTier{
		{MinQty: 10, UnitPrice: dec("16")},
		{MinQty: 3, UnitPrice: dec("18")},
	}
	table, err := FromPriceTiers(enums.TierModeRange, dec("20"), rows)
	if err != nil {
		t.Fatalf("FromPriceTiers: %v", err)
	}
	labels := []string{}
	for _, tier := range table.Tiers() {
		labels = append(labels, tier.Label())
	}
	if strings.Join(labels, ",") != "1-2,3-9,10+" {
		t.Fatalf("unexpected labels %v", labels)
	}
	tier, _ := table.Resolve(12)
	if tier.DiscountPercent != 20 {
		t.Fatalf("expected derived discount 20, got %d", tier.DiscountPercent)
	}

	exact, err := FromPriceTiers(enums.TierModeExact, dec("20"), rows)
	if err != nil {
		t.Fatalf("FromPriceTiers exact: %v", err)
	}
	if exact.Len() != 2 {
		t.Fatalf("exact table should not get a base tier, got %d tiers", exact.Len())
	}

	if _, err := FromPriceTiers(enums.TierModeRange, dec("20"), nil); err == nil {
		t.Fatal("expected error for no rows")
	}
}

func TestDiscountPercent(t *testing.T) {
	cases := []struct {
		base, price string
		want        int
	}{
		{"10", "9", 10},
		{"129.99", "104.99", 19},
		{"10", "10", 0},
		{"10", "12", 0},
		{"0", "5", 0},
	}
	for _, tc := range cases {
		if got := DiscountPercent(dec(tc.base), dec(tc.price)); got != tc.want {
			t.Fatalf("DiscountPercent(%s, %s) = %d, want %d", tc.base, tc.price, got, tc.want)
		}
	}
}
