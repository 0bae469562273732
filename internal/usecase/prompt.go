package usecase

import (
	"strings"

	"github.com/yourusername/shop-chatbot/internal/domain/entity"
)

const (
	contextStart = "--- CONTEXT START ---"
	contextEnd   = "--- CONTEXT END ---"

	noContextNeeded = "No external context is needed."
)

const basePersona = "You are a helpful and informative AI chatbot acting as customer service for an online shop. " +
	"Give accurate, responsive and friendly answers."

var personas = map[entity.Category]string{
	entity.CategoryPrice: "The customer is asking about a price. " +
		"Quote the price exactly as it appears in the context and do not round or convert it.",
	entity.CategoryStock: "The customer is asking about stock availability. " +
		"State the available quantity from the context and mention if it looks low.",
	entity.CategoryDetail: "The customer wants to know what a product is. " +
		"Describe it using the context and keep the answer short.",
	entity.CategoryNone: "Answer general questions politely and offer help with product prices, stock and details.",
}

// BuildPrompt assembles the system instruction and question for one chat turn.
func BuildPrompt(message string, intent entity.Intent, lookup entity.LookupResult) entity.Prompt {
	var sb strings.Builder

	sb.WriteString(basePersona)
	sb.WriteString("\n")
	persona, ok := personas[intent.Category]
	if !ok {
		persona = personas[entity.CategoryNone]
	}
	sb.WriteString(persona)

	sb.WriteString("\n\n")
	sb.WriteString(contextStart)
	sb.WriteString("\n")
	sb.WriteString(contextBody(lookup))
	sb.WriteString("\n")
	sb.WriteString(contextEnd)
	sb.WriteString("\n")

	if lookup.Unavailable() {
		sb.WriteString("\nThe requested product information is unavailable. " +
			"Tell the customer you could not find it and do not invent prices, stock or details.\n")
	}

	return entity.Prompt{
		System:   sb.String(),
		Question: message,
	}
}

func contextBody(lookup entity.LookupResult) string {
	switch lookup.Status {
	case entity.LookupFound, entity.LookupNotFound, entity.LookupTransportError:
		return lookup.Data
	default:
		return noContextNeeded
	}
}
