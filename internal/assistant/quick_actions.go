package assistant

import "farmafacil/internal/model"

// WelcomeMessage opens every conversation.
const WelcomeMessage = "¡Hola! Soy tu asistente virtual de FarmaFácil. Estoy aquí para ayudarte con " +
	"recomendaciones de productos, consultas sobre síntomas, alternativas económicas y más. " +
	"¿En qué puedo asistirte hoy?"

// ErrorMessage is shown in place of a reply when the assistant fails.
const ErrorMessage = "Lo siento, ha ocurrido un error. Por favor, intenta de nuevo."

// QuickActions returns the chat shortcuts. Each message triggers a built-in rule.
func QuickActions() []model.QuickAction {
	return []model.QuickAction{
		{ID: "sintoma", Label: "Tengo un síntoma", Message: "Tengo un síntoma"},
		{ID: "recomendacion", Label: "Quiero una recomendación", Message: "Quiero una recomendación"},
		{ID: "alternativas", Label: "Ver alternativas más baratas", Message: "Ver alternativas más baratas"},
		{ID: "pedidos", Label: "Ver mis pedidos", Message: "Ver mis pedidos"},
		{ID: "promociones", Label: "Ver promociones", Message: "Ver promociones"},
	}
}
