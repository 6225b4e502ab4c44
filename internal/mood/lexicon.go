package mood

import "strings"

// Genre is a catalog-defined movie category.
type Genre struct {
	ID   int
	Name string
}

// Keyword maps one lowercase mood word to genre names, most relevant first.
type Keyword struct {
	Word   string
	Genres []string
}

// Lexicon is the static mood vocabulary the classifier scores against.
// It is read-only once built.
type Lexicon struct {
	genres   []Genre
	byID     map[int]string
	byName   map[string]int
	keywords []Keyword
	byWord   map[string][]string
}

// NewLexicon builds a lexicon from a genre table, optional name aliases and
// keyword entries. Keyword order is kept for fuzzy matching.
func NewLexicon(genres []Genre, aliases map[string]int, keywords []Keyword) *Lexicon {
	l := &Lexicon{
		genres:   make([]Genre, len(genres)),
		byID:     make(map[int]string, len(genres)),
		byName:   make(map[string]int, len(genres)+len(aliases)),
		keywords: make([]Keyword, 0, len(keywords)),
		byWord:   make(map[string][]string, len(keywords)),
	}
	copy(l.genres, genres)

	for _, g := range genres {
		l.byID[g.ID] = g.Name
		l.byName[strings.ToLower(g.Name)] = g.ID
	}
	for name, id := range aliases {
		l.byName[strings.ToLower(name)] = id
	}

	for _, k := range keywords {
		word := strings.ToLower(k.Word)
		if _, dup := l.byWord[word]; dup {
			continue
		}
		list := append([]string(nil), k.Genres...)
		l.keywords = append(l.keywords, Keyword{Word: word, Genres: list})
		l.byWord[word] = list
	}

	return l
}

// GenreName returns the display name for a catalog genre id.
func (l *Lexicon) GenreName(id int) (string, bool) {
	name, ok := l.byID[id]
	return name, ok
}

// GenreID resolves a genre name (case-insensitive) to its catalog id.
func (l *Lexicon) GenreID(name string) (int, bool) {
	id, ok := l.byName[strings.ToLower(strings.TrimSpace(name))]
	return id, ok
}

// Keyword returns the genre list for an exact mood word.
func (l *Lexicon) Keyword(word string) ([]string, bool) {
	genres, ok := l.byWord[word]
	return genres, ok
}

// Keywords returns every keyword in declaration order.
func (l *Lexicon) Keywords() []Keyword {
	return l.keywords
}

// Genres returns the genre table.
func (l *Lexicon) Genres() []Genre {
	out := make([]Genre, len(l.genres))
	copy(out, l.genres)
	return out
}

// TMDb movie genre ids.
var tmdbGenres = []Genre{
	{28, "Action"},
	{12, "Adventure"},
	{16, "Animation"},
	{35, "Comedy"},
	{80, "Crime"},
	{99, "Documentary"},
	{18, "Drama"},
	{10751, "Family"},
	{14, "Fantasy"},
	{36, "History"},
	{27, "Horror"},
	{10402, "Music"},
	{9648, "Mystery"},
	{10749, "Romance"},
	{878, "Science Fiction"},
	{10770, "TV Movie"},
	{53, "Thriller"},
	{10752, "War"},
	{37, "Western"},
}

var tmdbAliases = map[string]int{
	"musical": 10402,
	"sci-fi":  878,
	"scifi":   878,
}

var moodKeywords = []Keyword{
	// happy / upbeat
	{"happy", []string{"Comedy", "Animation", "Family"}},
	{"joyful", []string{"Comedy", "Animation", "Music"}},
	{"excited", []string{"Action", "Adventure", "Science Fiction"}},
	{"energetic", []string{"Action", "Adventure"}},
	{"playful", []string{"Comedy", "Animation"}},
	{"cheerful", []string{"Comedy", "Family", "Music"}},
	{"upbeat", []string{"Comedy", "Music", "Animation"}},
	{"ecstatic", []string{"Comedy", "Adventure", "Music"}},
	{"fun", []string{"Comedy", "Adventure", "Animation"}},

	// sad / melancholy
	{"sad", []string{"Drama", "Romance"}},
	{"melancholy", []string{"Drama", "Romance", "Music"}},
	{"lonely", []string{"Drama", "Romance"}},
	{"heartbroken", []string{"Romance", "Drama"}},
	{"depressed", []string{"Drama"}},
	{"crying", []string{"Drama", "Romance"}},
	{"gloomy", []string{"Drama", "Mystery"}},
	{"nostalgic", []string{"Drama", "Romance", "History"}},
	{"emotional", []string{"Drama", "Romance"}},

	// thrilling / intense
	{"thrilled", []string{"Thriller", "Action"}},
	{"tense", []string{"Thriller", "Mystery", "Crime"}},
	{"suspenseful", []string{"Thriller", "Mystery"}},
	{"nervous", []string{"Thriller", "Horror"}},
	{"edge", []string{"Thriller", "Action", "Crime"}},
	{"intense", []string{"Thriller", "Action", "War"}},
	{"adrenaline", []string{"Action", "Adventure", "Thriller"}},

	// scared / spooky
	{"scared", []string{"Horror", "Thriller"}},
	{"spooky", []string{"Horror", "Mystery"}},
	{"creepy", []string{"Horror", "Thriller"}},
	{"terrified", []string{"Horror"}},
	{"dark", []string{"Horror", "Thriller", "Crime"}},
	{"eerie", []string{"Horror", "Mystery"}},
	{"halloween", []string{"Horror", "Fantasy"}},

	// romantic
	{"romantic", []string{"Romance", "Drama", "Comedy"}},
	{"love", []string{"Romance", "Drama"}},
	{"loving", []string{"Romance", "Drama", "Family"}},
	{"passionate", []string{"Romance", "Drama"}},
	{"date", []string{"Romance", "Comedy"}},
	{"valentine", []string{"Romance", "Comedy", "Drama"}},
	{"crush", []string{"Romance", "Comedy"}},
	{"flirty", []string{"Romance", "Comedy"}},

	// adventurous / curious
	{"adventurous", []string{"Adventure", "Action", "Fantasy"}},
	{"curious", []string{"Documentary", "Mystery", "Science Fiction"}},
	{"exploring", []string{"Adventure", "Documentary"}},
	{"wanderlust", []string{"Adventure", "Drama"}},
	{"discovery", []string{"Documentary", "Adventure", "Science Fiction"}},
	{"epic", []string{"Adventure", "Fantasy", "Action"}},

	// calm / relaxed
	{"relaxed", []string{"Comedy", "Animation", "Family"}},
	{"calm", []string{"Drama", "Documentary", "Animation"}},
	{"peaceful", []string{"Documentary", "Animation", "Family"}},
	{"cozy", []string{"Comedy", "Family", "Animation"}},
	{"chill", []string{"Comedy", "Animation"}},
	{"serene", []string{"Documentary", "Animation", "Drama"}},
	{"lazy", []string{"Comedy", "Animation", "Family"}},
	{"weekend", []string{"Comedy", "Family", "Adventure"}},

	// angry
	{"angry", []string{"Action", "Thriller", "War"}},
	{"frustrated", []string{"Action", "Thriller"}},
	{"revenge", []string{"Action", "Thriller", "Crime"}},
	{"rebellious", []string{"Action", "Crime", "Drama"}},
	{"fierce", []string{"Action", "War", "Thriller"}},

	// thoughtful
	{"thoughtful", []string{"Drama", "Documentary", "History"}},
	{"philosophical", []string{"Drama", "Science Fiction"}},
	{"intellectual", []string{"Documentary", "Drama", "History"}},
	{"brainy", []string{"Science Fiction", "Mystery", "Documentary"}},
	{"deep", []string{"Drama", "Science Fiction", "Documentary"}},
	{"inspired", []string{"Drama", "Documentary", "History"}},
	{"motivational", []string{"Drama", "Documentary"}},
	{"mind", []string{"Science Fiction", "Mystery", "Thriller"}},

	// fantasy
	{"dreamy", []string{"Fantasy", "Animation", "Romance"}},
	{"magical", []string{"Fantasy", "Animation", "Family"}},
	{"fantasy", []string{"Fantasy", "Adventure"}},
	{"mystical", []string{"Fantasy", "Mystery"}},
	{"imaginative", []string{"Fantasy", "Animation", "Science Fiction"}},
	{"fairy", []string{"Fantasy", "Animation", "Family"}},
	{"superhero", []string{"Action", "Science Fiction", "Adventure"}},

	// social
	{"party", []string{"Comedy", "Music", "Action"}},
	{"social", []string{"Comedy", "Drama"}},
	{"friends", []string{"Comedy", "Adventure"}},
	{"family", []string{"Family", "Animation", "Comedy"}},
	{"kids", []string{"Animation", "Family", "Comedy"}},
	{"bored", []string{"Action", "Comedy", "Adventure"}},

	// war / historical
	{"war", []string{"War", "History", "Drama"}},
	{"historical", []string{"History", "Drama", "War"}},
	{"patriotic", []string{"War", "History", "Drama"}},

	// crime / mystery
	{"crime", []string{"Crime", "Thriller", "Mystery"}},
	{"mystery", []string{"Mystery", "Thriller", "Crime"}},
	{"detective", []string{"Crime", "Mystery", "Thriller"}},
	{"whodunit", []string{"Mystery", "Crime"}},

	// sci-fi
	{"futuristic", []string{"Science Fiction", "Action"}},
	{"space", []string{"Science Fiction", "Adventure"}},
	{"alien", []string{"Science Fiction", "Horror", "Adventure"}},
	{"tech", []string{"Science Fiction", "Thriller"}},
	{"robot", []string{"Science Fiction", "Action"}},
	{"dystopian", []string{"Science Fiction", "Drama", "Thriller"}},

	// western
	{"western", []string{"Western", "Action", "Adventure"}},
	{"cowboy", []string{"Western", "Action"}},
}

var defaultLexicon = NewLexicon(tmdbGenres, tmdbAliases, moodKeywords)

// DefaultLexicon returns the built-in TMDb genre table and mood vocabulary.
func DefaultLexicon() *Lexicon {
	return defaultLexicon
}
