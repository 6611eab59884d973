package quiz

import (
	"fmt"
	"math/rand/v2"
)

// Challenge — готовый к отправке вопрос: текст, перемешанные варианты и
// индекс правильного ответа в перемешанном порядке.
type Challenge struct {
	Text         string
	Options      []string
	CorrectIndex int
}

// Pool выбирает случайные вопросы из загруженного контента.
type Pool struct {
	questions []Question
}

// NewPool создаёт пул вопросов.
func NewPool(content *Content) *Pool {
	return &Pool{questions: content.Questions}
}

// Pick выбирает случайный вопрос на указанном языке и перемешивает варианты.
// Перемешивание своё для каждого вызова: один и тот же вопрос у разных
// пользователей получает разный порядок вариантов.
func (p *Pool) Pick(lang string) (*Challenge, error) {
	if len(p.questions) == 0 {
		return nil, fmt.Errorf("quiz: пул вопросов пуст")
	}

	q := p.questions[rand.IntN(len(p.questions))]
	answers, ok := q.Answers[lang]
	if !ok {
		answers = q.Answers["en"]
	}
	text, ok := q.Text[lang]
	if !ok {
		text = q.Text["en"]
	}

	options, correct := Shuffle(answers, q.CorrectIndex)

	return &Challenge{
		Text:         text,
		Options:      options,
		CorrectIndex: correct,
	}, nil
}

// Shuffle возвращает варианты в случайном порядке и индекс правильного
// ответа в новом порядке. Исходный срез не изменяется.
func Shuffle(answers []string, correctIndex int) ([]string, int) {
	perm := rand.Perm(len(answers))

	shuffled := make([]string, len(answers))
	newCorrect := 0
	for dst, src := range perm {
		shuffled[dst] = answers[src]
		if src == correctIndex {
			newCorrect = dst
		}
	}

	return shuffled, newCorrect
}
