// Package vocabulary exposes read-only word content to the rest of the core.
package vocabulary

import (
	"sort"
	"strings"

	"github.com/vytor/palabras/internal/models"
)

// UnknownCategory is stamped on progress for ids the catalog does not know.
const UnknownCategory = "unknown"

// Source is the read-only view of vocabulary content.
type Source interface {
	Word(id string) (models.Word, bool)
	Words() []models.Word
	Category(name string) []models.Word
}

// Catalog is an in-memory Source built from a fixed word list.
type Catalog struct {
	words []models.Word
	byID  map[string]int
}

// NewCatalog indexes words by id. Later duplicates of an id are ignored.
func NewCatalog(words []models.Word) *Catalog {
	c := &Catalog{
		words: make([]models.Word, 0, len(words)),
		byID:  make(map[string]int, len(words)),
	}
	for _, w := range words {
		if w.ID == "" {
			continue
		}
		if _, dup := c.byID[w.ID]; dup {
			continue
		}
		if !w.Difficulty.Valid() || w.Difficulty == models.DifficultyMixed {
			w.Difficulty = models.DifficultyBeginner
		}
		c.byID[w.ID] = len(c.words)
		c.words = append(c.words, w)
	}
	return c
}

func (c *Catalog) Word(id string) (models.Word, bool) {
	i, ok := c.byID[id]
	if !ok {
		return models.Word{}, false
	}
	return c.words[i], true
}

// Words returns every word in catalog order.
func (c *Catalog) Words() []models.Word {
	return append([]models.Word(nil), c.words...)
}

// Category returns the words of one category, matched case-insensitively.
func (c *Catalog) Category(name string) []models.Word {
	var out []models.Word
	for _, w := range c.words {
		if strings.EqualFold(w.Category, name) {
			out = append(out, w)
		}
	}
	return out
}

// Categories lists the distinct category names in sorted order.
func (c *Catalog) Categories() []string {
	seen := map[string]bool{}
	var out []string
	for _, w := range c.words {
		if !seen[w.Category] {
			seen[w.Category] = true
			out = append(out, w.Category)
		}
	}
	sort.Strings(out)
	return out
}

// Lookup returns the word for id, or a placeholder carrying the unknown
// category when src does not have it. A nil src knows no words.
func Lookup(src Source, id string) models.Word {
	if src != nil {
		if w, ok := src.Word(id); ok {
			return w
		}
	}
	return models.Word{ID: id, Category: UnknownCategory, Difficulty: models.DifficultyBeginner}
}

// Unseen returns catalog words the learner has not met yet, optionally
// limited to one difficulty. DifficultyMixed or "" means any.
func Unseen(src Source, learned map[string]models.WordProgress, difficulty models.Difficulty) []models.Word {
	if src == nil {
		return nil
	}
	var out []models.Word
	for _, w := range src.Words() {
		if _, ok := learned[w.ID]; ok {
			continue
		}
		if difficulty != "" && difficulty != models.DifficultyMixed && w.Difficulty != difficulty {
			continue
		}
		out = append(out, w)
	}
	return out
}

// Starter is a small built-in word list used when no content is configured.
func Starter() *Catalog {
	return NewCatalog([]models.Word{
		{ID: "hola", Word: "hola", Translation: "hello", Example: "¡Hola! ¿Qué tal?", Category: "greetings", Difficulty: models.DifficultyBeginner, Emoji: "👋"},
		{ID: "adios", Word: "adiós", Translation: "goodbye", Example: "Adiós, hasta mañana.", Category: "greetings", Difficulty: models.DifficultyBeginner},
		{ID: "gracias", Word: "gracias", Translation: "thank you", Example: "Muchas gracias por todo.", Category: "greetings", Difficulty: models.DifficultyBeginner},
		{ID: "gato", Word: "el gato", Translation: "the cat", Example: "El gato duerme en el sofá.", Category: "animals", Difficulty: models.DifficultyBeginner, Emoji: "🐱"},
		{ID: "perro", Word: "el perro", Translation: "the dog", Example: "Mi perro es muy rápido.", Category: "animals", Difficulty: models.DifficultyBeginner, Emoji: "🐶"},
		{ID: "mariposa", Word: "la mariposa", Translation: "the butterfly", Example: "La mariposa vuela sobre las flores.", Category: "animals", Difficulty: models.DifficultyIntermediate},
		{ID: "manzana", Word: "la manzana", Translation: "the apple", Example: "Como una manzana cada día.", Category: "food", Difficulty: models.DifficultyBeginner, Emoji: "🍎"},
		{ID: "desayuno", Word: "el desayuno", Translation: "breakfast", Example: "El desayuno está listo.", Category: "food", Difficulty: models.DifficultyIntermediate},
		{ID: "biblioteca", Word: "la biblioteca", Translation: "the library", Example: "Estudio en la biblioteca.", Category: "places", Difficulty: models.DifficultyIntermediate, Mnemonic: "Think of a Bible: a book place.", Cognate: "bibliography"},
		{ID: "aprovechar", Word: "aprovechar", Translation: "to make the most of", Example: "Hay que aprovechar el tiempo.", Category: "verbs", Difficulty: models.DifficultyAdvanced},
		{ID: "desarrollar", Word: "desarrollar", Translation: "to develop", Example: "Queremos desarrollar el proyecto.", Category: "verbs", Difficulty: models.DifficultyAdvanced},
	})
}
