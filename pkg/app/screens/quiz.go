package screens

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/countries/pkg/app/styles"
	"github.com/kerbaras/countries/pkg/services"
)

type QuizScreen struct {
	name     string
	quiz     *services.Quiz
	selected int
	feedback string
	correct  bool
	width    int
	height   int
}

func NewQuizScreen(name string, quiz *services.Quiz) *QuizScreen {
	return &QuizScreen{name: name, quiz: quiz}
}

func (s *QuizScreen) Init() tea.Cmd {
	return nil
}

func (s *QuizScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "backspace":
			return s, func() tea.Msg {
				return SwitchScreenMsg{Screen: "back"}
			}
		case "up", "k":
			if q, ok := s.quiz.Current(); ok && len(q.Options) > 0 {
				s.selected = (s.selected + len(q.Options) - 1) % len(q.Options)
			}
		case "down", "j":
			if q, ok := s.quiz.Current(); ok && len(q.Options) > 0 {
				s.selected = (s.selected + 1) % len(q.Options)
			}
		case "enter", " ":
			s.answer(s.selected)
		case "1", "2", "3", "4":
			s.answer(int(msg.String()[0] - '1'))
		}
	}

	return s, nil
}

func (s *QuizScreen) answer(i int) {
	q, ok := s.quiz.Current()
	if !ok || i < 0 || i >= len(q.Options) {
		return
	}
	s.correct = s.quiz.Answer(q.Options[i])
	if s.correct {
		s.feedback = "Correct!"
	} else {
		s.feedback = fmt.Sprintf("Not quite. The answer was %s.", q.Answer)
	}
	s.selected = 0
}

func (s *QuizScreen) View() string {
	header := styles.TitleStyle.Render(fmt.Sprintf("🧠 Quiz: %s", s.name))

	var feedback string
	if s.feedback != "" {
		style := styles.StatusError
		if s.correct {
			style = styles.StatusCompleted
		}
		feedback = style.Render(s.feedback) + "\n\n"
	}

	if s.quiz.Done() {
		return fmt.Sprintf("%s\n%s%s\n%s", header, feedback, s.renderResults(),
			styles.HelpStyle.Render("esc: back to country • q: quit"))
	}

	q, _ := s.quiz.Current()
	var b strings.Builder
	b.WriteString(styles.MutedStyle.Render(fmt.Sprintf("Question %d of %d • score %d", s.quiz.Index()+1, s.quiz.Total(), s.quiz.Score())))
	b.WriteString("\n\n")
	b.WriteString(styles.SubtitleStyle.Render(q.Prompt))
	b.WriteString("\n\n")
	for i, option := range q.Options {
		line := fmt.Sprintf("%d. %s", i+1, option)
		if i == s.selected {
			b.WriteString(styles.SelectedStyle.Render("> " + line))
		} else {
			b.WriteString(styles.TextStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}

	help := styles.HelpStyle.Render("↑/k ↓/j: choose • enter or 1-4: answer • esc: back • q: quit")
	return fmt.Sprintf("%s\n%s%s%s", header, feedback, b.String(), help)
}

func (s *QuizScreen) renderResults() string {
	var b strings.Builder
	b.WriteString(styles.SubtitleStyle.Render(fmt.Sprintf("You scored %d out of %d", s.quiz.Score(), s.quiz.Total())))
	b.WriteString("\n")
	b.WriteString(styles.TextStyle.Render(s.quiz.Verdict()))
	b.WriteString("\n\n")

	for i := 0; i < s.quiz.Total(); i++ {
		q, _ := s.quiz.Question(i)
		given, _ := s.quiz.LastAnswer(i)
		mark := styles.StatusCompleted.Render("✓")
		if given != q.Answer {
			mark = styles.StatusError.Render("✗")
		}
		b.WriteString(fmt.Sprintf("%s %s\n", mark, styles.TextStyle.Render(q.Prompt)))
		if given != q.Answer {
			b.WriteString(styles.MutedStyle.Render(fmt.Sprintf("    you said %s, answer: %s", given, q.Answer)))
			b.WriteString("\n")
		}
	}
	return b.String()
}
