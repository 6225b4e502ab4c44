package mood

import (
	"sort"
	"strings"
	"unicode"
)

const (
	// MaxGenres is the most genres a single classification returns.
	MaxGenres = 3

	prefixLen   = 4
	exactScore  = 2
	prefixScore = 1
)

// FallbackGenres is returned when no word in the mood scores anything.
var FallbackGenres = []string{"Action", "Comedy", "Drama"}

// Result is the outcome of classifying one mood text.
type Result struct {
	Genres   []string `json:"genres"`
	GenreIDs []int    `json:"genreIds"`
	Fallback bool     `json:"-"`
}

// Classifier scores free text against a lexicon.
type Classifier struct {
	lexicon *Lexicon
}

func NewClassifier(lexicon *Lexicon) *Classifier {
	if lexicon == nil {
		lexicon = DefaultLexicon()
	}
	return &Classifier{lexicon: lexicon}
}

// Classify maps mood text to at most MaxGenres genre names and their ids.
// Exact keyword hits score 2 per genre, 4-letter prefix matches score 1.
func (c *Classifier) Classify(text string) Result {
	scores := make(map[string]int)
	var order []string

	award := func(genres []string, points int) {
		for _, g := range genres {
			if _, seen := scores[g]; !seen {
				order = append(order, g)
			}
			scores[g] += points
		}
	}

	for _, word := range Words(text) {
		if genres, ok := c.lexicon.Keyword(word); ok {
			award(genres, exactScore)
			continue
		}

		wp := prefix(word)
		for _, k := range c.lexicon.Keywords() {
			if strings.HasPrefix(k.Word, wp) || strings.HasPrefix(word, prefix(k.Word)) {
				award(k.Genres, prefixScore)
			}
		}
	}

	if len(order) == 0 {
		return c.resolve(FallbackGenres, true)
	}

	sort.SliceStable(order, func(i, j int) bool {
		return scores[order[i]] > scores[order[j]]
	})
	if len(order) > MaxGenres {
		order = order[:MaxGenres]
	}

	return c.resolve(order, false)
}

func (c *Classifier) resolve(names []string, fallback bool) Result {
	res := Result{
		Genres:   append([]string(nil), names...),
		GenreIDs: make([]int, 0, len(names)),
		Fallback: fallback,
	}
	for _, name := range names {
		if id, ok := c.lexicon.GenreID(name); ok {
			res.GenreIDs = append(res.GenreIDs, id)
		}
	}
	return res
}

// Words lowercases text, drops everything but a-z and whitespace, and splits
// it into non-empty words.
func Words(text string) []string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	return strings.Fields(b.String())
}

func prefix(s string) string {
	if len(s) < prefixLen {
		return s
	}
	return s[:prefixLen]
}
