package catalog

import "strings"

// DefaultCategory is the catch-all label for entries no keyword matches.
const DefaultCategory = "template"

type categoryRule struct {
	name     string
	keywords []string
}

// categoryRules is scanned in order against a record's name and tags;
// the first category with a matching keyword wins.
var categoryRules = []categoryRule{
	{"reaction", []string{"surprised", "shocked", "wow", "confused", "happy", "sad", "angry", "crying", "laughing", "pikachu", "face", "expression", "reaction"}},
	{"choice", []string{"buttons", "decision", "choose", "path", "vs", "two"}},
	{"drake", []string{"drake", "pointing", "prefer"}},
	{"distracted", []string{"distracted", "boyfriend", "girlfriend", "tempted"}},
	{"happy", []string{"happy", "joy", "smile", "laugh", "celebrate", "excited"}},
	{"sad", []string{"sad", "cry", "upset", "disappointed", "depressed"}},
	{"angry", []string{"angry", "mad", "rage", "furious", "annoyed"}},
	{"confused", []string{"confused", "what", "huh", "questioning", "puzzled"}},
	{"surprised", []string{"surprised", "shock", "amazed", "stunned"}},
	{"work", []string{"office", "meeting", "boss", "employee", "corporate", "job", "work", "business"}},
	{"school", []string{"school", "student", "teacher", "education", "study", "exam", "homework"}},
	{"relationship", []string{"couple", "dating", "love", "marriage"}},
	{"family", []string{"family", "parent", "child", "mom", "dad", "kids", "baby"}},
	{"gaming", []string{"gamer", "game", "controller", "console", "gaming"}},
	{"sports", []string{"sport", "football", "basketball", "soccer", "athlete", "team", "player"}},
	{"food", []string{"food", "eat", "cooking", "restaurant", "chef", "hungry", "diet"}},
	{"technology", []string{"tech", "computer", "software", "app", "digital", "internet", "coding"}},
	{"music", []string{"music", "song", "band", "concert", "musician", "instrument"}},
	{"animals", []string{"cat", "dog", "bear", "monkey", "bird", "animal", "pet"}},
	{"cartoon", []string{"cartoon", "animated", "disney", "pixar", "anime"}},
	{"celebrity", []string{"celebrity", "actor", "famous", "star"}},
	{"success", []string{"success", "win", "achievement", "victory", "accomplish"}},
	{"fail", []string{"fail", "failure", "mistake", "error", "wrong"}},
	{"smart", []string{"brain", "genius", "think", "idea", "mind", "galaxy", "intelligence", "smart"}},
	{"expanding", []string{"expanding", "enlightened", "ascended", "levels", "evolution"}},
	{"trending", []string{"viral", "trending", "popular", "hot", "current"}},
	{"classical", []string{"classic", "vintage", "old", "traditional", "retro"}},
	{"wholesome", []string{"wholesome", "cute", "nice", "positive", "good"}},
	{"dark", []string{"dark", "edgy", "sarcastic", "cynical"}},
	{"advice", []string{"advice", "tip", "wisdom", "guidance"}},
	{"politics", []string{"vote", "election", "government", "political", "politics"}},
	{"news", []string{"news", "breaking", "media", "journalist", "report"}},
	{"weather", []string{"weather", "rain", "snow", "sunny", "storm"}},
	{"health", []string{"health", "fitness", "exercise", "medical", "doctor"}},
	{"travel", []string{"travel", "vacation", "trip", "adventure", "explore"}},
	{"time", []string{"clock", "schedule", "deadline", "rush"}},
	{"money", []string{"money", "rich", "poor", "expensive", "cheap", "cost", "stonks"}},
}

// Categorize classifies a template by scanning its name and tags
// against the keyword table. Matching is substring, case-insensitive.
func Categorize(name string, tags []string) string {
	parts := make([]string, 0, 1+len(tags))
	parts = append(parts, strings.ToLower(name))
	for _, t := range tags {
		parts = append(parts, strings.ToLower(t))
	}
	haystack := strings.Join(parts, " ")

	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(haystack, kw) {
				return rule.name
			}
		}
	}
	return DefaultCategory
}
