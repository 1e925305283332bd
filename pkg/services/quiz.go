package services

import (
	"fmt"
	"math/rand"
	"slices"
	"strings"

	"github.com/kerbaras/countries/pkg/data"
)

const optionsPerQuestion = 4

var (
	fakeCapitals  = []string{"Paris", "London", "Tokyo", "Berlin", "Madrid", "Rome", "Moscow", "Beijing", "Cairo", "Delhi"}
	allContinents = []string{"Africa", "Antarctica", "Asia", "Europe", "North America", "Oceania", "South America"}
	fakeLanguages = []string{"English", "Spanish", "French", "German", "Chinese", "Arabic", "Russian", "Portuguese", "Japanese", "Hindi"}
)

type Question struct {
	Prompt  string
	Options []string
	Answer  string
}

// QuizGenerator builds questions about a single country. All randomness comes
// from the injected generator.
type QuizGenerator struct {
	rng *rand.Rand
}

func NewQuizGenerator(rng *rand.Rand) *QuizGenerator {
	return &QuizGenerator{rng: rng}
}

// Generate returns the questions the country's data supports. borders are the
// resolved neighbours and pool is where a non-bordering decoy is picked from.
func (g *QuizGenerator) Generate(country data.Country, borders, pool []data.Country) []Question {
	name := country.Name.Common
	var questions []Question

	if len(country.Capital) > 0 {
		questions = append(questions, Question{
			Prompt:  fmt.Sprintf("What is the capital of %s?", name),
			Options: g.options(country.Capital[0], fakeCapitals),
			Answer:  country.Capital[0],
		})
	}

	if len(country.Continents) > 0 {
		questions = append(questions, Question{
			Prompt:  fmt.Sprintf("Which continent is %s located in?", name),
			Options: g.options(country.Continents[0], allContinents),
			Answer:  country.Continents[0],
		})
	}

	questions = append(questions, g.populationQuestion(country))

	if len(country.Borders) == 0 {
		questions = append(questions, Question{
			Prompt:  fmt.Sprintf("%s has no land borders.", name),
			Options: []string{"True", "False"},
			Answer:  "True",
		})
	} else if q, ok := g.borderQuestion(country, borders, pool); ok {
		questions = append(questions, q)
	}

	if langs := country.LanguageNames(); len(langs) > 0 {
		questions = append(questions, Question{
			Prompt:  fmt.Sprintf("What is an official language of %s?", name),
			Options: g.options(langs[0], fakeLanguages),
			Answer:  langs[0],
		})
	}

	return questions
}

func (g *QuizGenerator) populationQuestion(country data.Country) Question {
	answer := FormatNumber(country.Population)
	options := []string{answer}

	// Distinct decoys need a non-trivial population; tiny ones fall back to offsets.
	for attempts := 0; len(options) < optionsPerQuestion; attempts++ {
		var fake int64
		if country.Population >= 10 && attempts < 100 {
			factor := g.rng.Float64()*3 + 0.5
			fake = int64(float64(country.Population) * factor)
		} else {
			fake = country.Population + int64(attempts+1)*1000
		}
		if label := FormatNumber(fake); !slices.Contains(options, label) {
			options = append(options, label)
		}
	}

	return Question{
		Prompt:  fmt.Sprintf("What is the population of %s?", country.Name.Common),
		Options: g.shuffle(options),
		Answer:  answer,
	}
}

func (g *QuizGenerator) borderQuestion(country data.Country, borders, pool []data.Country) (Question, bool) {
	if len(borders) == 0 {
		return Question{}, false
	}

	neighbours := make(map[string]bool, len(country.Borders)+1)
	neighbours[strings.ToUpper(country.CCA3)] = true
	for _, code := range country.Borders {
		neighbours[strings.ToUpper(code)] = true
	}

	var decoys []string
	for _, c := range pool {
		if !neighbours[strings.ToUpper(c.CCA3)] {
			decoys = append(decoys, c.Name.Common)
		}
	}
	if len(decoys) == 0 {
		return Question{}, false
	}
	answer := decoys[g.rng.Intn(len(decoys))]

	options := []string{answer}
	for _, i := range g.rng.Perm(len(borders)) {
		if len(options) == optionsPerQuestion {
			break
		}
		if n := borders[i].Name.Common; !slices.Contains(options, n) {
			options = append(options, n)
		}
	}

	return Question{
		Prompt:  fmt.Sprintf("Which of these countries does NOT border %s?", country.Name.Common),
		Options: g.shuffle(options),
		Answer:  answer,
	}, true
}

// options picks up to three distinct decoys from candidates and shuffles them in
// with the answer.
func (g *QuizGenerator) options(answer string, candidates []string) []string {
	options := []string{answer}
	for _, i := range g.rng.Perm(len(candidates)) {
		if len(options) == optionsPerQuestion {
			break
		}
		if c := candidates[i]; !slices.Contains(options, c) {
			options = append(options, c)
		}
	}
	return g.shuffle(options)
}

// shuffle is Fisher-Yates over a copy.
func (g *QuizGenerator) shuffle(in []string) []string {
	out := slices.Clone(in)
	for i := len(out) - 1; i > 0; i-- {
		j := g.rng.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Quiz is one run through a list of questions.
type Quiz struct {
	questions []Question
	current   int
	score     int
	answers   []string
}

func NewQuiz(questions []Question) *Quiz {
	return &Quiz{questions: questions}
}

func (q *Quiz) Current() (Question, bool) {
	if q.Done() {
		return Question{}, false
	}
	return q.questions[q.current], true
}

// Answer records option for the current question and advances. It returns whether
// the answer was correct; answers after the end are ignored.
func (q *Quiz) Answer(option string) bool {
	if q.Done() {
		return false
	}
	correct := option == q.questions[q.current].Answer
	if correct {
		q.score++
	}
	q.answers = append(q.answers, option)
	q.current++
	return correct
}

func (q *Quiz) Index() int { return q.current }
func (q *Quiz) Score() int { return q.score }
func (q *Quiz) Total() int { return len(q.questions) }
func (q *Quiz) Done() bool { return q.current >= len(q.questions) }

// LastAnswer returns the option chosen for question i, if answered.
func (q *Quiz) LastAnswer(i int) (string, bool) {
	if i < 0 || i >= len(q.answers) {
		return "", false
	}
	return q.answers[i], true
}

func (q *Quiz) Question(i int) (Question, bool) {
	if i < 0 || i >= len(q.questions) {
		return Question{}, false
	}
	return q.questions[i], true
}

func (q *Quiz) Verdict() string {
	switch {
	case q.Total() > 0 && q.score == q.Total():
		return "Perfect! You're an expert on this country!"
	case float64(q.score) >= float64(q.Total())/2:
		return "Good job! You know quite a bit about this country."
	default:
		return "Keep learning! There's more to discover about this country."
	}
}
