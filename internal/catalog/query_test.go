package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"memehub/pkg/models"
)

var sample = []models.TemplateRecord{
	{ID: "1", Name: "Drake Hotline Bling", Category: "drake", Tags: []string{"drake", "pointing"}, Popularity: 95, Source: models.SourceImgflip},
	{ID: "2", Name: "Sad Cat", Category: "animals", Tags: []string{"cat", "sad"}, Popularity: 60, Source: models.SourceReddit},
	{ID: "3", Name: "Viral Moment", Category: "trending", Tags: []string{"viral"}, Popularity: 80, Source: models.SourceReddit},
	{ID: "4", Name: "Office Chaos", Category: "work", Tags: []string{"office"}, Popularity: 80, Source: models.SourceCustom},
}

func TestByCategory(t *testing.T) {
	assert.Len(t, ByCategory(sample, "animals"), 1)
	assert.Len(t, ByCategory(sample, "missing"), 0)
	assert.Len(t, ByCategory(sample, "all"), len(sample))
	assert.Len(t, ByCategory(sample, ""), len(sample))
}

func TestByCategoryDoesNotAliasInput(t *testing.T) {
	out := ByCategory(sample, "all")
	out[0].ID = "mutated"
	assert.Equal(t, "1", sample[0].ID)
}

func TestSearch(t *testing.T) {
	assert.Len(t, Search(sample, ""), len(sample), "empty query is the identity")
	assert.Len(t, Search(sample, "   "), len(sample))

	byName := Search(sample, "drake")
	assert.Len(t, byName, 1)
	assert.Equal(t, "1", byName[0].ID)

	byTag := Search(sample, "pointing")
	assert.Len(t, byTag, 1)

	byCategory := Search(sample, "work")
	assert.Len(t, byCategory, 1)

	assert.Empty(t, Search(sample, "zzz-no-match"))

	// case-insensitive
	assert.Len(t, Search(sample, "DRAKE"), 1)
}

func TestTopN(t *testing.T) {
	top := TopN(sample, 2)
	assert.Len(t, top, 2)
	assert.Equal(t, "1", top[0].ID)
	// equal popularity keeps input order (stable sort)
	assert.Equal(t, "3", top[1].ID)

	assert.Len(t, TopN(sample, 100), len(sample))
}

func TestTrending(t *testing.T) {
	tr := Trending(sample, 5)
	assert.Len(t, tr, 1)
	assert.Equal(t, "3", tr[0].ID)
}

func TestCategories(t *testing.T) {
	cats := Categories(sample)
	assert.Equal(t, []string{"all", "popular", "animals", "drake", "trending", "work"}, cats)
}

func TestStats(t *testing.T) {
	s := Stats(sample)
	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 1, s.Imgflip)
	assert.Equal(t, 2, s.Reddit)
	assert.Equal(t, 1, s.Custom)
	assert.Equal(t, 4, s.Categories)
}

func TestCategorize(t *testing.T) {
	assert.Equal(t, "drake", Categorize("Drake Hotline Bling", nil))
	assert.Equal(t, "animals", Categorize("Grumpy Dog", nil))
	assert.Equal(t, "money", Categorize("Stonks", nil))
	assert.Equal(t, DefaultCategory, Categorize("Completely Unmatched Thing", nil))

	// tags participate in matching
	assert.Equal(t, "gaming", Categorize("Unnamed", []string{"gaming"}))

	// first rule in table order wins
	assert.Equal(t, "reaction", Categorize("Surprised Pikachu", nil))
}
