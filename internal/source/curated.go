package source

import (
	"context"

	"memehub/pkg/models"
)

type curatedEntry struct {
	id, name, url, category string
	popularity              int
}

// curatedEntries is the hand-maintained list of known-good templates.
// These back-fill the catalog alongside the live sources.
var curatedEntries = []curatedEntry{
	{"drake-pointing", "Drake Pointing", "https://i.imgflip.com/1bij.jpg", "drake", 95},
	{"distracted-boyfriend", "Distracted Boyfriend", "https://i.imgflip.com/1ur9b0.jpg", "distracted", 90},
	{"expanding-brain", "Expanding Brain", "https://i.imgflip.com/1jwhww.jpg", "expanding", 88},
	{"woman-yelling-at-cat", "Woman Yelling at Cat", "https://i.imgflip.com/345v97.jpg", "reaction", 85},
	{"surprised-pikachu", "Surprised Pikachu", "https://i.imgflip.com/2kbn1e.jpg", "reaction", 84},
	{"this-is-fine", "This is Fine", "https://i.imgflip.com/26am.jpg", "reaction", 82},
	{"mocking-spongebob", "Mocking SpongeBob", "https://i.imgflip.com/1otk96.jpg", "reaction", 80},
	{"change-my-mind", "Change My Mind", "https://i.imgflip.com/24y43o.jpg", "advice", 78},
	{"leonardo-dicaprio", "Leonardo DiCaprio Cheers", "https://i.imgflip.com/39t1o.jpg", "celebrity", 76},
	{"two-buttons", "Two Buttons", "https://i.imgflip.com/1g8my4.jpg", "choice", 75},
	{"evil-kermit", "Evil Kermit", "https://i.imgflip.com/1e7ql7.jpg", "choice", 74},
	{"success-kid", "Success Kid", "https://i.imgflip.com/1bhf.jpg", "success", 73},
	{"roll-safe", "Roll Safe Think About It", "https://i.imgflip.com/1h7in3.jpg", "smart", 71},
	{"hide-the-pain-harold", "Hide the Pain Harold", "https://i.imgflip.com/gk5el.jpg", "reaction", 70},
	{"disaster-girl", "Disaster Girl", "https://i.imgflip.com/1bgw.jpg", "reaction", 68},
	{"grumpy-cat", "Grumpy Cat", "https://i.imgflip.com/30b1gx.jpg", "animals", 66},
	{"left-exit-12", "Left Exit 12 Off Ramp", "https://i.imgflip.com/22bdq6.jpg", "choice", 65},
	{"monkey-puppet", "Monkey Puppet", "https://i.imgflip.com/3lmzyx.jpg", "animals", 64},
	{"batman-slapping-robin", "Batman Slapping Robin", "https://i.imgflip.com/9ehk.jpg", "reaction", 62},
	{"boardroom-meeting", "Boardroom Meeting Suggestion", "https://i.imgflip.com/m78d.jpg", "work", 60},
	{"running-away-balloon", "Running Away Balloon", "https://i.imgflip.com/261o3j.jpg", "choice", 59},
	{"waiting-skeleton", "Waiting Skeleton", "https://i.imgflip.com/2fm6x.jpg", "waiting", 57},
	{"hard-to-swallow-pills", "Hard To Swallow Pills", "https://i.imgflip.com/1pxmeu.jpg", "truth", 56},
	{"american-chopper-argument", "American Chopper Argument", "https://i.imgflip.com/1opv6i.jpg", "argument", 55},
}

// fallbackEntries is the emergency subset returned when every live
// source fails. URLs here are the most reliable of the curated set.
var fallbackEntries = []curatedEntry{
	{"drake-fallback", "Drake Pointing", "https://i.imgflip.com/1bij.jpg", "drake", 100},
	{"distracted-boyfriend-fallback", "Distracted Boyfriend", "https://i.imgflip.com/1ur9b0.jpg", "distracted", 99},
	{"woman-yelling-cat-fallback", "Woman Yelling at Cat", "https://i.imgflip.com/345v97.jpg", "reaction", 98},
	{"two-buttons-fallback", "Two Buttons", "https://i.imgflip.com/1g8my4.jpg", "choice", 97},
	{"expanding-brain-fallback", "Expanding Brain", "https://i.imgflip.com/1jwhww.jpg", "expanding", 96},
	{"surprised-pikachu-fallback", "Surprised Pikachu", "https://i.imgflip.com/2kbn1e.jpg", "reaction", 95},
	{"this-is-fine-fallback", "This is Fine", "https://i.imgflip.com/26am.jpg", "reaction", 94},
	{"change-my-mind-fallback", "Change My Mind", "https://i.imgflip.com/24y43o.jpg", "advice", 93},
	{"success-kid-fallback", "Success Kid", "https://i.imgflip.com/1bhf.jpg", "success", 91},
	{"monkey-puppet-fallback", "Monkey Puppet", "https://i.imgflip.com/3lmzyx.jpg", "animals", 89},
	{"hide-pain-harold-fallback", "Hide the Pain Harold", "https://i.imgflip.com/gk5el.jpg", "reaction", 82},
	{"disaster-girl-fallback", "Disaster Girl", "https://i.imgflip.com/1bgw.jpg", "reaction", 81},
}

// Curated serves the static in-code template list. It never touches
// the network and never fails.
type Curated struct{}

func NewCurated() *Curated { return &Curated{} }

func (s *Curated) Name() string { return "curated" }

func (s *Curated) Fetch(ctx context.Context) ([]models.TemplateRecord, error) {
	return records(curatedEntries), nil
}

// Fallback is the built-in list substituted when the primary catalog
// is down, and the last resort when every source fails.
func Fallback() []models.TemplateRecord {
	return records(fallbackEntries)
}

func records(entries []curatedEntry) []models.TemplateRecord {
	out := make([]models.TemplateRecord, 0, len(entries))
	for _, e := range entries {
		out = append(out, models.TemplateRecord{
			ID:         e.id,
			Name:       e.name,
			URL:        e.url,
			Category:   e.category,
			Tags:       []string{e.category},
			Popularity: e.popularity,
			Source:     models.SourceCustom,
			Media:      models.MediaImage,
		})
	}
	return out
}
