package coupon

import (
	"testing"

	"farmafacil/internal/fixture"
	"farmafacil/internal/model"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func codes(coupons []model.Coupon) []string {
	out := make([]string, len(coupons))
	for i, c := range coupons {
		out[i] = c.Code
	}
	return out
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name     string
		coupon   model.Coupon
		expected Status
	}{
		{name: "Active and new", coupon: model.Coupon{IsActive: true, IsNew: true}, expected: StatusNew},
		{name: "Active and seen", coupon: model.Coupon{IsActive: true}, expected: StatusActive},
		{name: "Inactive", coupon: model.Coupon{IsActive: false}, expected: StatusExpired},
		{name: "Inactive but flagged new", coupon: model.Coupon{IsActive: false, IsNew: true}, expected: StatusExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StatusOf(tt.coupon))
		})
	}
}

func TestPartition_Fixtures(t *testing.T) {
	w := Partition(fixture.Coupons())

	assert.Equal(t, []string{"BIENVENIDA10"}, codes(w.New))
	assert.Equal(t, []string{"VERANO2025", "VITAPLUS"}, codes(w.Active))
	assert.Equal(t, []string{"MARZO2025"}, codes(w.Expired))
	assert.Equal(t, 4, w.Len())
}

func TestPartition_Empty(t *testing.T) {
	w := Partition(nil)

	assert.NotNil(t, w.New)
	assert.NotNil(t, w.Active)
	assert.NotNil(t, w.Expired)
	assert.Equal(t, 0, w.Len())
}

func TestPartition_ExactlyOneSection(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("every coupon lands in exactly one section", prop.ForAll(
		func(active, isNew []bool) bool {
			n := min(len(active), len(isNew))
			coupons := make([]model.Coupon, n)
			for i := 0; i < n; i++ {
				coupons[i] = model.Coupon{IsActive: active[i], IsNew: isNew[i]}
			}

			w := Partition(coupons)
			for _, c := range w.New {
				if !c.IsActive || !c.IsNew {
					return false
				}
			}
			for _, c := range w.Active {
				if !c.IsActive || c.IsNew {
					return false
				}
			}
			for _, c := range w.Expired {
				if c.IsActive {
					return false
				}
			}
			return w.Len() == n
		},
		gen.SliceOf(gen.Bool()),
		gen.SliceOf(gen.Bool()),
	))

	properties.TestingRun(t)
}

func TestIndex_Lookup(t *testing.T) {
	idx := NewIndex(fixture.Coupons())

	tests := []struct {
		name   string
		code   string
		found  bool
		expect string
	}{
		{name: "Exact code", code: "VITAPLUS", found: true, expect: "3"},
		{name: "Lower case", code: "bienvenida10", found: true, expect: "1"},
		{name: "Surrounding space", code: "  MARZO2025 ", found: true, expect: "4"},
		{name: "Unknown", code: "NOPE", found: false},
		{name: "Empty", code: "", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := idx.Lookup(tt.code)

			require.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, tt.expect, c.ID)
			}
		})
	}

	assert.Equal(t, 4, idx.Size())
}
