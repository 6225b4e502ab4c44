package mood

import (
	"reflect"
	"testing"
)

func TestClassify_Fallback(t *testing.T) {
	c := NewClassifier(nil)

	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"whitespace", "   \t\n "},
		{"punctuation only", "!!! ??? 123"},
		{"unknown words", "xyzzy qwv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.text)
			if !reflect.DeepEqual(got.Genres, FallbackGenres) {
				t.Errorf("Genres = %v, want %v", got.Genres, FallbackGenres)
			}
			if want := []int{28, 35, 18}; !reflect.DeepEqual(got.GenreIDs, want) {
				t.Errorf("GenreIDs = %v, want %v", got.GenreIDs, want)
			}
			if !got.Fallback {
				t.Error("expected Fallback to be set")
			}
		})
	}
}

func TestClassify_ExactMatch(t *testing.T) {
	c := NewClassifier(nil)

	got := c.Classify("Happy, I want something uplifting and fun.")
	if !contains(got.Genres, "Comedy") {
		t.Errorf("expected Comedy in %v", got.Genres)
	}
	if got.Fallback {
		t.Error("did not expect fallback")
	}
}

func TestClassify_SingleKeywordKeepsDeclarationOrder(t *testing.T) {
	c := NewClassifier(nil)

	got := c.Classify("scared")
	if want := []string{"Horror", "Thriller"}; !reflect.DeepEqual(got.Genres, want) {
		t.Errorf("Genres = %v, want %v", got.Genres, want)
	}
	if want := []int{27, 53}; !reflect.DeepEqual(got.GenreIDs, want) {
		t.Errorf("GenreIDs = %v, want %v", got.GenreIDs, want)
	}
}

func TestClassify_PrefixMatch(t *testing.T) {
	c := NewClassifier(nil)

	// "scary" is not a keyword but shares "scar" with "scared".
	got := c.Classify("scary")
	if want := []string{"Horror", "Thriller"}; !reflect.DeepEqual(got.Genres, want) {
		t.Errorf("Genres = %v, want %v", got.Genres, want)
	}
}

func TestClassify_ScoresAccumulate(t *testing.T) {
	c := NewClassifier(nil)

	// sad: Drama+2 Romance+2, lonely: Drama+2 Romance+2, war: War+2 History+2 Drama+2
	got := c.Classify("sad lonely war")
	if want := []string{"Drama", "Romance", "War"}; !reflect.DeepEqual(got.Genres, want) {
		t.Errorf("Genres = %v, want %v", got.Genres, want)
	}
}

func TestClassify_AtMostThreeDistinct(t *testing.T) {
	c := NewClassifier(nil)

	inputs := []string{
		"happy sad scared romantic curious angry",
		"a",
		"the quick brown fox",
		"space alien robot tech futuristic dystopian",
	}
	for _, in := range inputs {
		got := c.Classify(in)
		if len(got.Genres) == 0 || len(got.Genres) > MaxGenres {
			t.Errorf("Classify(%q) returned %d genres", in, len(got.Genres))
		}
		seen := make(map[string]bool)
		for _, g := range got.Genres {
			if seen[g] {
				t.Errorf("Classify(%q) returned duplicate genre %q", in, g)
			}
			seen[g] = true
		}
		if len(got.GenreIDs) != len(got.Genres) {
			t.Errorf("Classify(%q) ids %v do not line up with %v", in, got.GenreIDs, got.Genres)
		}
	}
}

func TestClassify_Deterministic(t *testing.T) {
	c := NewClassifier(nil)
	first := c.Classify("cozy rainy evening with friends")
	for i := 0; i < 20; i++ {
		if got := c.Classify("cozy rainy evening with friends"); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d: %v != %v", i, got, first)
		}
	}
}

func TestClassify_DropsUnresolvableNames(t *testing.T) {
	lex := NewLexicon(
		[]Genre{{28, "Action"}},
		nil,
		[]Keyword{{"boom", []string{"Action", "Explosions"}}},
	)
	got := NewClassifier(lex).Classify("boom")

	if want := []string{"Action", "Explosions"}; !reflect.DeepEqual(got.Genres, want) {
		t.Errorf("Genres = %v, want %v", got.Genres, want)
	}
	if want := []int{28}; !reflect.DeepEqual(got.GenreIDs, want) {
		t.Errorf("GenreIDs = %v, want %v", got.GenreIDs, want)
	}
}

func TestWords(t *testing.T) {
	got := Words("  Feeling SO-happy!!  and\trelaxed 2day ")
	want := []string{"feeling", "sohappy", "and", "relaxed", "day"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Words = %v, want %v", got, want)
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
