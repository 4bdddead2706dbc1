package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponder_Respond(t *testing.T) {
	responder := NewDefaultResponder()

	tests := []struct {
		name         string
		message      string
		expectedRule string
		productIDs   []string
	}{
		{name: "Symptom with accent", message: "Tengo un síntoma", expectedRule: RuleSymptom, productIDs: []string{"p1", "p2"}},
		{name: "Symptom without accent", message: "tengo un sintoma raro", expectedRule: RuleSymptom, productIDs: []string{"p1", "p2"}},
		{name: "Pain", message: "Me DUELE, tengo dolor de cabeza", expectedRule: RuleSymptom, productIDs: []string{"p1", "p2"}},
		{name: "Fever beats recommendation", message: "Tengo fiebre y quiero una recomendación", expectedRule: RuleSymptom, productIDs: []string{"p1", "p2"}},
		{name: "Recommendation", message: "Quiero una recomendación", expectedRule: RuleRecommendation, productIDs: []string{"p3", "p4"}},
		{name: "Suggestion", message: "¿Qué me sugerirías?", expectedRule: RuleRecommendation, productIDs: []string{"p3", "p4"}},
		{name: "Cheaper alternatives", message: "Ver alternativas más baratas", expectedRule: RulePrice, productIDs: []string{"p5", "p6"}},
		{name: "Generic", message: "¿Hay algo genérico?", expectedRule: RulePrice, productIDs: []string{"p5", "p6"}},
		{name: "Orders", message: "Ver mis pedidos", expectedRule: RuleOrder},
		{name: "Purchase", message: "mi última compra", expectedRule: RuleOrder},
		{name: "Promotions", message: "Ver promociones", expectedRule: RulePromotion},
		{name: "Discount", message: "¿tenéis algún descuento?", expectedRule: RulePromotion},
		{name: "Promotion beats greeting", message: "hola, quiero un descuento", expectedRule: RulePromotion},
		{name: "Greeting", message: "Hola", expectedRule: RuleGreeting},
		{name: "Greeting with surrounding space", message: "   buenas tardes   ", expectedRule: RuleGreeting},
		{name: "Greeting beats cosmetics", message: "hola, busco crema", expectedRule: RuleGreeting},
		{name: "Cosmetics", message: "Necesito una crema para la piel", expectedRule: RuleCosmetics, productIDs: []string{"p7", "p8"}},
		{name: "Empty message", message: "", expectedRule: RuleDefault},
		{name: "Unrelated message", message: "¿A qué hora abrís?", expectedRule: RuleDefault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := responder.Respond(tt.message)

			assert.Equal(t, tt.expectedRule, resp.Rule)
			assert.NotEmpty(t, resp.Text)

			ids := make([]string, 0, len(resp.Products))
			for _, p := range resp.Products {
				ids = append(ids, p.ID)
			}
			if tt.productIDs == nil {
				assert.Empty(t, ids)
			} else {
				assert.Equal(t, tt.productIDs, ids)
			}
		})
	}
}

func TestResponder_DefaultText(t *testing.T) {
	resp := NewDefaultResponder().Respond("xyz")

	assert.Equal(t, DefaultReply, resp.Text)
	assert.Nil(t, resp.Products)
}

func TestResponder_DecomposedAccents(t *testing.T) {
	// i followed by a combining acute accent
	decomposed := "S" + "i\u0301" + "NTOMA"

	resp := NewDefaultResponder().Respond(decomposed)

	assert.Equal(t, RuleSymptom, resp.Rule)
}

func TestResponder_ReturnsCopies(t *testing.T) {
	responder := NewDefaultResponder()

	first := responder.Respond("dolor")
	require.Len(t, first.Products, 2)
	first.Products[0].Name = "changed"

	second := responder.Respond("dolor")
	assert.Equal(t, "Paracetamol 500mg", second.Products[0].Name)
}

func TestResponder_CustomRules(t *testing.T) {
	responder := NewResponder([]Rule{
		{Name: "hours", Keywords: []string{"  HORARIO "}, Reply: "Abrimos de 9 a 21."},
		{Name: "empty", Keywords: []string{"", "  "}, Reply: "never"},
	}, "")

	assert.Equal(t, "hours", responder.Respond("¿Cuál es el horario?").Rule)
	assert.Equal(t, RuleDefault, responder.Respond("anything").Rule)
	assert.Equal(t, DefaultReply, responder.Respond("anything").Text)
	assert.Equal(t, []string{"hours", "empty"}, responder.Rules())
}

func TestDefaultRules_Order(t *testing.T) {
	names := NewDefaultResponder().Rules()

	assert.Equal(t, []string{
		RuleSymptom, RuleRecommendation, RulePrice, RuleOrder, RulePromotion, RuleGreeting, RuleCosmetics,
	}, names)
}

func TestQuickActions_TriggerRules(t *testing.T) {
	responder := NewDefaultResponder()

	expected := map[string]string{
		"sintoma":       RuleSymptom,
		"recomendacion": RuleRecommendation,
		"alternativas":  RulePrice,
		"pedidos":       RuleOrder,
		"promociones":   RulePromotion,
	}

	actions := QuickActions()
	require.Len(t, actions, 5)
	for _, a := range actions {
		assert.Equal(t, expected[a.ID], responder.Respond(a.Message).Rule, "quick action %s", a.ID)
		assert.Equal(t, a.Label, a.Message)
	}
}

func TestNormalise(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"  Hola  ", "hola"},
		{"ECONÓMICO", "económico"},
		{"Cosmética", "cosmética"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalise(tt.in))
		})
	}
}
