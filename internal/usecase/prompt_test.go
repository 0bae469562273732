package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yourusername/shop-chatbot/internal/domain/entity"
)

func TestBuildPrompt_FoundContext(t *testing.T) {
	intent := entity.Intent{Term: "produk a", Category: entity.CategoryPrice}
	prompt := BuildPrompt("berapa harga produk a", intent, entity.Found("Price of Produk A is $1200.00"))

	assert.Equal(t, "berapa harga produk a", prompt.Question)
	assert.Contains(t, prompt.System, personas[entity.CategoryPrice])
	assert.Contains(t, prompt.System, contextStart+"\nPrice of Produk A is $1200.00\n"+contextEnd)
	assert.NotContains(t, prompt.System, "unavailable")
}

func TestBuildPrompt_Skipped(t *testing.T) {
	prompt := BuildPrompt("halo", entity.Intent{Category: entity.CategoryNone}, entity.LookupResult{})

	assert.Contains(t, prompt.System, personas[entity.CategoryNone])
	assert.Contains(t, prompt.System, contextStart+"\n"+noContextNeeded+"\n"+contextEnd)
}

func TestBuildPrompt_Unavailable(t *testing.T) {
	intent := entity.Intent{Term: "kulkas", Category: entity.CategoryStock}

	cases := map[string]entity.LookupResult{
		"not found":       entity.NotFound(),
		"transport error": entity.TransportError("Error: cannot connect to the RAG server."),
	}
	for name, lookup := range cases {
		t.Run(name, func(t *testing.T) {
			prompt := BuildPrompt("stok kulkas", intent, lookup)

			assert.Contains(t, prompt.System, personas[entity.CategoryStock])
			assert.Contains(t, prompt.System, lookup.Data)
			assert.Contains(t, prompt.System, "do not invent")
		})
	}
}
