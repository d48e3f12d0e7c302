package comic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memehub/pkg/models"
)

func TestNewBookDefaults(t *testing.T) {
	b := NewBook()
	assert.Equal(t, models.LayoutHorizontal, b.Layout())
	assert.Equal(t, 3, b.PanelCount())
	for _, p := range b.Panels() {
		assert.NotEmpty(t, p.ID)
		assert.Empty(t, p.Bubbles)
	}
}

func TestSetLayout(t *testing.T) {
	b := NewBook()
	b.SetLayout(models.LayoutGrid)
	assert.Equal(t, models.LayoutGrid, b.Layout())

	b.SetLayout("diagonal")
	assert.Equal(t, models.LayoutGrid, b.Layout(), "unknown layout is ignored")
}

func TestSetPanelCountResetsEverything(t *testing.T) {
	b := NewBook()
	panels := b.Panels()
	first := panels[0].ID
	require.True(t, b.SetPanelImage(first, "https://example.com/bg.jpg"))
	_, ok := b.AddBubble(first, models.BubbleSpeech, "hello")
	require.True(t, ok)

	b.SetPanelCount(4)
	assert.Equal(t, 4, b.PanelCount())
	for _, p := range b.Panels() {
		assert.NotEqual(t, first, p.ID, "panels are rebuilt fresh")
		assert.Empty(t, p.Image)
		assert.Empty(t, p.Bubbles)
	}

	// setting the same count is also a full reset
	ids := make(map[string]struct{})
	for _, p := range b.Panels() {
		ids[p.ID] = struct{}{}
	}
	b.SetPanelCount(4)
	for _, p := range b.Panels() {
		_, seen := ids[p.ID]
		assert.False(t, seen)
	}
}

func TestSetPanelCountClamped(t *testing.T) {
	b := NewBook()
	b.SetPanelCount(0)
	assert.Equal(t, MinPanels, b.PanelCount())
	b.SetPanelCount(100)
	assert.Equal(t, MaxPanels, b.PanelCount())
}

func TestBubbleLifecycle(t *testing.T) {
	b := NewBook()
	panelID := b.Panels()[0].ID

	bub, ok := b.AddBubble(panelID, models.BubbleThought, "hmm")
	require.True(t, ok)
	assert.Equal(t, models.BubbleThought, bub.Kind)
	assert.Equal(t, "hmm", bub.Text)
	assert.Equal(t, 25.0, bub.X)
	assert.Equal(t, 20.0, bub.Y)

	require.True(t, b.UpdateBubbleText(panelID, bub.ID, "changed"))
	require.True(t, b.MoveBubble(panelID, bub.ID, 40, 50))

	got := b.Panels()[0].Bubbles[0]
	assert.Equal(t, "changed", got.Text)
	assert.Equal(t, 40.0, got.X)
	assert.Equal(t, 50.0, got.Y)

	require.True(t, b.RemoveBubble(panelID, bub.ID))
	assert.Empty(t, b.Panels()[0].Bubbles)
}

func TestMoveBubbleClamped(t *testing.T) {
	b := NewBook()
	panelID := b.Panels()[0].ID
	bub, _ := b.AddBubble(panelID, models.BubbleSpeech, "x")

	require.True(t, b.MoveBubble(panelID, bub.ID, -10, 200))
	got := b.Panels()[0].Bubbles[0]
	assert.Equal(t, 0.0, got.X)
	assert.Equal(t, 85.0, got.Y)
}

func TestUnknownIDsAreNoops(t *testing.T) {
	b := NewBook()
	panelID := b.Panels()[0].ID
	bub, _ := b.AddBubble(panelID, models.BubbleSpeech, "x")

	assert.False(t, b.SetPanelImage("missing", "url"))
	_, ok := b.AddBubble("missing", models.BubbleSpeech, "x")
	assert.False(t, ok)
	assert.False(t, b.UpdateBubbleText("missing", bub.ID, "y"))
	assert.False(t, b.UpdateBubbleText(panelID, "missing", "y"))
	assert.False(t, b.MoveBubble(panelID, "missing", 1, 1))
	assert.False(t, b.RemoveBubble(panelID, "missing"))

	// nothing changed
	got := b.Panels()[0].Bubbles[0]
	assert.Equal(t, "x", got.Text)
	assert.Equal(t, 25.0, got.X)
}

func TestUnknownBubbleKindDefaultsToSpeech(t *testing.T) {
	b := NewBook()
	panelID := b.Panels()[0].ID
	bub, ok := b.AddBubble(panelID, "shout", "hey")
	require.True(t, ok)
	assert.Equal(t, models.BubbleSpeech, bub.Kind)
}

func TestPanelsReturnsDeepCopy(t *testing.T) {
	b := NewBook()
	panelID := b.Panels()[0].ID
	b.AddBubble(panelID, models.BubbleSpeech, "original")

	snapshot := b.Panels()
	snapshot[0].Bubbles[0].Text = "tampered"

	assert.Equal(t, "original", b.Panels()[0].Bubbles[0].Text)
}
