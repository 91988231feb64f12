package game

import (
	"strings"
	"testing"
)

func TestQuestionProviderFactory(t *testing.T) {
	for _, d := range []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard} {
		p, err := NewQuestionProvider(d, NewRand(1))
		if err != nil {
			t.Fatalf("difficulty %v: %v", d, err)
		}
		if p == nil {
			t.Fatalf("difficulty %v: nil provider", d)
		}
	}
	if _, err := NewQuestionProvider(Difficulty(42), NewRand(1)); err == nil {
		t.Fatal("expected error for unknown difficulty")
	}
}

func TestQuestionChoicesWellFormed(t *testing.T) {
	for _, d := range []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard} {
		p, err := NewQuestionProvider(d, NewRand(77))
		if err != nil {
			t.Fatal(err)
		}
		for i := 0; i < 200; i++ {
			q := p.Generate()
			if !strings.HasSuffix(q.Prompt, "= ?") {
				t.Fatalf("%v: prompt %q missing answer marker", d, q.Prompt)
			}
			found := false
			seen := map[int]bool{}
			for _, c := range q.Choices {
				if c < 0 {
					t.Fatalf("%v: negative choice %d in %v", d, c, q.Choices)
				}
				if seen[c] {
					t.Fatalf("%v: duplicate choice %d in %v", d, c, q.Choices)
				}
				seen[c] = true
				if c == q.Answer {
					found = true
				}
			}
			if !found {
				t.Fatalf("%v: answer %d absent from choices %v", d, q.Answer, q.Choices)
			}
			if !p.Check(q, q.Answer) {
				t.Fatalf("%v: correct answer rejected", d)
			}
			if p.Check(q, q.Answer+1) {
				t.Fatalf("%v: wrong answer accepted", d)
			}
		}
	}
}

func TestEasyQuestionsNeverNegative(t *testing.T) {
	p, err := NewQuestionProvider(DifficultyEasy, NewRand(5))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 500; i++ {
		if q := p.Generate(); q.Answer < 0 {
			t.Fatalf("easy question with negative answer: %q", q.Prompt)
		}
	}
}

func TestQuestionSequenceDeterministic(t *testing.T) {
	a, _ := NewQuestionProvider(DifficultyHard, NewRand(1234))
	b, _ := NewQuestionProvider(DifficultyHard, NewRand(1234))
	for i := 0; i < 50; i++ {
		qa, qb := a.Generate(), b.Generate()
		if qa != qb {
			t.Fatalf("question %d diverged: %+v vs %+v", i, qa, qb)
		}
	}
}

func TestParseDifficultyRoundTrip(t *testing.T) {
	for _, d := range []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard} {
		got, err := ParseDifficulty(d.String())
		if err != nil || got != d {
			t.Fatalf("round trip %v: got %v, err %v", d, got, err)
		}
	}
	if _, err := ParseDifficulty("impossible"); err == nil {
		t.Fatal("expected error for unknown difficulty name")
	}
}
