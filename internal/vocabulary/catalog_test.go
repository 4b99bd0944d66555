package vocabulary_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/palabras/internal/models"
	"github.com/vytor/palabras/internal/vocabulary"
)

func sample() *vocabulary.Catalog {
	return vocabulary.NewCatalog([]models.Word{
		{ID: "gato", Category: "animals", Difficulty: models.DifficultyBeginner},
		{ID: "perro", Category: "Animals", Difficulty: models.DifficultyIntermediate},
		{ID: "gato", Category: "dupes"},
		{ID: "", Category: "broken"},
		{ID: "pan", Category: "food", Difficulty: "weird"},
	})
}

func TestCatalog_Word(t *testing.T) {
	c := sample()

	w, ok := c.Word("gato")
	require.True(t, ok)
	assert.Equal(t, "animals", w.Category, "first definition wins")

	_, ok = c.Word("nope")
	assert.False(t, ok)

	pan, ok := c.Word("pan")
	require.True(t, ok)
	assert.Equal(t, models.DifficultyBeginner, pan.Difficulty, "invalid difficulty falls back")
}

func TestCatalog_Words(t *testing.T) {
	c := sample()
	words := c.Words()
	require.Len(t, words, 3)
	assert.Equal(t, "gato", words[0].ID)

	words[0].ID = "mutated"
	_, ok := c.Word("gato")
	assert.True(t, ok, "callers cannot mutate the catalog")
	assert.Equal(t, "gato", c.Words()[0].ID)
}

func TestCatalog_Category(t *testing.T) {
	c := sample()
	assert.Len(t, c.Category("animals"), 2)
	assert.Empty(t, c.Category("space"))
	assert.Equal(t, []string{"Animals", "animals", "food"}, c.Categories())
}

func TestLookup(t *testing.T) {
	c := sample()
	assert.Equal(t, "animals", vocabulary.Lookup(c, "gato").Category)

	unknown := vocabulary.Lookup(c, "xyz")
	assert.Equal(t, "xyz", unknown.ID)
	assert.Equal(t, vocabulary.UnknownCategory, unknown.Category)
	assert.Equal(t, models.DifficultyBeginner, unknown.Difficulty)

	assert.Equal(t, vocabulary.UnknownCategory, vocabulary.Lookup(nil, "gato").Category)
}

func TestUnseen(t *testing.T) {
	c := sample()
	learned := map[string]models.WordProgress{"gato": {ID: "gato"}}

	all := vocabulary.Unseen(c, learned, models.DifficultyMixed)
	require.Len(t, all, 2)
	assert.Equal(t, "perro", all[0].ID)

	beginner := vocabulary.Unseen(c, learned, models.DifficultyBeginner)
	require.Len(t, beginner, 1)
	assert.Equal(t, "pan", beginner[0].ID)

	assert.Nil(t, vocabulary.Unseen(nil, learned, ""))
}

func TestStarter(t *testing.T) {
	c := vocabulary.Starter()
	assert.NotEmpty(t, c.Words())
	for _, w := range c.Words() {
		assert.True(t, w.Difficulty.Valid(), w.ID)
		assert.NotEmpty(t, w.Translation, w.ID)
	}
}
