package game

import "fmt"

type Difficulty int

const (
	DifficultyEasy Difficulty = iota
	DifficultyMedium
	DifficultyHard
)

func (d Difficulty) String() string {
	switch d {
	case DifficultyEasy:
		return "easy"
	case DifficultyMedium:
		return "medium"
	case DifficultyHard:
		return "hard"
	}
	return "unknown"
}

// ParseDifficulty maps a flag value to a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	switch s {
	case "easy":
		return DifficultyEasy, nil
	case "medium":
		return DifficultyMedium, nil
	case "hard":
		return DifficultyHard, nil
	}
	return 0, fmt.Errorf("unknown difficulty %q", s)
}

// Question is one arithmetic prompt with four answer choices. The correct
// answer always appears among the choices.
type Question struct {
	Prompt  string
	Answer  int
	Choices [4]int
}

// QuestionProvider generates gate questions and checks answers.
type QuestionProvider interface {
	Generate() Question
	Check(q Question, selected int) bool
}

// NewQuestionProvider returns the generator for a difficulty level. The rng
// makes question sequences reproducible for a fixed seed.
func NewQuestionProvider(d Difficulty, rng *Rand) (QuestionProvider, error) {
	switch d {
	case DifficultyEasy:
		return &addSubProvider{rng: rng}, nil
	case DifficultyMedium:
		return &multiplyProvider{rng: rng}, nil
	case DifficultyHard:
		return &mixedProvider{rng: rng}, nil
	}
	return nil, fmt.Errorf("unknown difficulty %d", d)
}

// addSubProvider: single-digit and low-two-digit addition and subtraction,
// never a negative result.
type addSubProvider struct {
	rng *Rand
}

func (p *addSubProvider) Generate() Question {
	a := p.rng.Range(2, 20)
	b := p.rng.Range(1, 12)
	if p.rng.Float64() < 0.5 {
		return buildQuestion(p.rng, fmt.Sprintf("%d + %d", a, b), a+b)
	}
	if b > a {
		a, b = b, a
	}
	return buildQuestion(p.rng, fmt.Sprintf("%d - %d", a, b), a-b)
}

func (p *addSubProvider) Check(q Question, selected int) bool { return q.Answer == selected }

// multiplyProvider: times tables up to 12.
type multiplyProvider struct {
	rng *Rand
}

func (p *multiplyProvider) Generate() Question {
	a := p.rng.Range(2, 12)
	b := p.rng.Range(2, 12)
	return buildQuestion(p.rng, fmt.Sprintf("%d × %d", a, b), a*b)
}

func (p *multiplyProvider) Check(q Question, selected int) bool { return q.Answer == selected }

// mixedProvider: multiplication or exact-quotient division.
type mixedProvider struct {
	rng *Rand
}

func (p *mixedProvider) Generate() Question {
	a := p.rng.Range(3, 12)
	b := p.rng.Range(3, 12)
	if p.rng.Float64() < 0.5 {
		return buildQuestion(p.rng, fmt.Sprintf("%d × %d", a, b), a*b)
	}
	// Dividend built from the factors so the quotient is exact.
	return buildQuestion(p.rng, fmt.Sprintf("%d ÷ %d", a*b, b), a)
}

func (p *mixedProvider) Check(q Question, selected int) bool { return q.Answer == selected }

// buildQuestion fills the choice slots with the answer and three distinct
// nearby distractors, shuffled.
func buildQuestion(rng *Rand, prompt string, answer int) Question {
	q := Question{Prompt: prompt + " = ?", Answer: answer}
	q.Choices[0] = answer
	used := map[int]bool{answer: true}
	for i := 1; i < 4; i++ {
		for {
			d := answer + rng.Range(-10, 10)
			if d < 0 || used[d] {
				continue
			}
			q.Choices[i] = d
			used[d] = true
			break
		}
	}
	for i := 3; i > 0; i-- {
		j := rng.Intn(i + 1)
		q.Choices[i], q.Choices[j] = q.Choices[j], q.Choices[i]
	}
	return q
}
