package assistant

import (
	"farmafacil/internal/model"

	"github.com/shopspring/decimal"
)

// Rule names of the built-in rule set, in priority order.
const (
	RuleSymptom        = "symptom"
	RuleRecommendation = "recommendation"
	RulePrice          = "price"
	RuleOrder          = "order"
	RulePromotion      = "promotion"
	RuleGreeting       = "greeting"
	RuleCosmetics      = "cosmetics"
	RuleDefault        = "default"
)

// Rule maps a set of keywords to a canned reply. A rule matches when any of
// its keywords is a substring of the normalised message.
type Rule struct {
	Name     string
	Keywords []string
	Reply    string
	Products []model.Product
}

// DefaultReply is returned when no rule matches.
const DefaultReply = "Gracias por tu consulta. Estoy aquí para ayudarte con recomendaciones de productos, " +
	"información sobre síntomas, alternativas más económicas, o cualquier duda sobre tu salud y bienestar. " +
	"¿En qué puedo asistirte hoy?"

func product(id, name, description, price, photo, category string) model.Product {
	return model.Product{
		ID:          id,
		Name:        name,
		Description: description,
		Price:       decimal.RequireFromString(price),
		Image:       "https://images.pexels.com/photos/" + photo + "/pexels-photo-" + photo + ".jpeg?auto=compress&cs=tinysrgb&w=400",
		Category:    category,
	}
}

// DefaultRules returns the built-in rule set in priority order.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:     RuleSymptom,
			Keywords: []string{"síntoma", "sintoma", "dolor", "fiebre"},
			Reply: "Entiendo que tienes algún síntoma. ¿Podrías describirme más en detalle qué es lo que sientes? " +
				"Por ejemplo: dolor de cabeza, fiebre, dolor de garganta, malestar estomacal, etc. " +
				"Mientras tanto, aquí te muestro algunos productos que suelen ser útiles para síntomas comunes:",
			Products: []model.Product{
				product("p1", "Paracetamol 500mg", "Analgésico y antipirético para dolor y fiebre", "4.50", "3683041", "Medicamentos"),
				product("p2", "Ibuprofeno 400mg", "Antiinflamatorio para dolor e inflamación", "5.20", "3683098", "Medicamentos"),
			},
		},
		{
			Name:     RuleRecommendation,
			Keywords: []string{"recomend", "suger", "acons"},
			Reply: "¡Por supuesto! Basándome en las tendencias de salud y bienestar, te recomiendo estos productos " +
				"que son muy populares entre nuestros clientes y tienen excelentes beneficios:",
			Products: []model.Product{
				product("p3", "Vitamina C 1000mg", "Suplemento vitamínico para el sistema inmune", "12.90", "3683095", "Vitaminas"),
				product("p4", "Omega-3", "Ácidos grasos esenciales para la salud cardiovascular", "18.50", "4021775", "Suplementos"),
			},
		},
		{
			Name:     RulePrice,
			Keywords: []string{"barato", "económico", "alternativa", "genérico"},
			Reply: "Perfecto, aquí te muestro alternativas más económicas con la misma efectividad. " +
				"Estos productos genéricos contienen los mismos principios activos que las marcas conocidas " +
				"pero a un precio más accesible:",
			Products: []model.Product{
				product("p5", "Paracetamol Genérico 500mg", "Alternativa económica - Mismo principio activo", "2.90", "3683041", "Genéricos"),
				product("p6", "Ibuprofeno Genérico 400mg", "Alternativa económica - Misma efectividad", "3.50", "3683098", "Genéricos"),
			},
		},
		{
			Name:     RuleOrder,
			Keywords: []string{"pedido", "orden", "compra"},
			Reply: "Claro, puedes ver todos tus pedidos en la sección de Historial. Allí encontrarás el estado " +
				"de tus pedidos actuales y el historial completo de compras. ¿Te gustaría que te lleve allí " +
				"o prefieres que te ayude con algo más?",
		},
		{
			Name:     RulePromotion,
			Keywords: []string{"promocion", "descuento", "oferta"},
			Reply: "Actualmente tenemos estas promociones activas que pueden interesarte:\n\n" +
				"• 20% de descuento en toda la línea de vitaminas\n" +
				"• 2x1 en protectores solares\n" +
				"• 15% en productos de dermocosmética\n\n" +
				"¿Te gustaría ver productos específicos de alguna de estas categorías?",
		},
		{
			Name:     RuleGreeting,
			Keywords: []string{"hola", "buenos", "buenas"},
			Reply: "¡Hola! Soy tu asistente virtual de FarmaFácil. Estoy aquí para ayudarte con cualquier " +
				"consulta sobre productos, síntomas, recomendaciones y promociones. ¿En qué puedo ayudarte hoy?",
		},
		{
			Name:     RuleCosmetics,
			Keywords: []string{"cosmética", "cosmetica", "crema", "piel"},
			Reply: "Tenemos una excelente selección de productos de cosmética y cuidado de la piel. " +
				"Aquí te muestro algunos de nuestros productos más recomendados:",
			Products: []model.Product{
				product("p7", "Crema Hidratante Facial", "Hidratación profunda 24h para todo tipo de piel", "18.50", "3786126", "Cosmética"),
				product("p8", "Protector Solar SPF 50", "Protección máxima contra rayos UVA/UVB", "16.90", "1029896", "Cosmética"),
			},
		},
	}
}
