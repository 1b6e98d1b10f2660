// Package grading подсчитывает результат отправки викторины и решает,
// пройдена ли она. Пакет не обращается к хранилищу и не зависит от времени.
package grading

import (
	"fmt"

	"github.com/yourusername/elearning-api/internal/domain/entity"
	apperrors "github.com/yourusername/elearning-api/internal/pkg/errors"
)

// Result - итог проверки ответов
type Result struct {
	Correct int // количество правильных ответов
	Total   int // количество вопросов викторины
	Score   int // процент 0..100, округлённый половиной вверх
}

// Score сопоставляет ответы с вопросами и считает процент правильных.
//
// Если хотя бы один ответ несет QuestionID, все ответы сопоставляются по
// идентификатору, а ответы без него игнорируются. Иначе ответ сопоставляется
// с вопросом на той же позиции. Ответы на неизвестные вопросы игнорируются,
// вопрос без ответа считается неверным, как и вариант вне диапазона.
// Отрицательный индекс варианта и повторный ответ на один вопрос делают
// отправку невалидной.
func Score(questions []entity.Question, answers []entity.SubmittedAnswer) (Result, error) {
	total := len(questions)
	if total == 0 {
		return Result{}, fmt.Errorf("%w: quiz has no questions", apperrors.ErrInvalidSubmission)
	}

	byID := make(map[string]int, total)
	for i := range questions {
		byID[questions[i].ID] = i
	}

	byPosition := true
	for _, answer := range answers {
		if answer.QuestionID != "" {
			byPosition = false
			break
		}
	}

	selected := make(map[int]int, len(answers))
	for i, answer := range answers {
		if answer.SelectedOptionIndex < 0 {
			return Result{}, fmt.Errorf("%w: answer #%d has negative option index", apperrors.ErrInvalidSubmission, i+1)
		}

		idx := i
		if byPosition {
			if idx >= total {
				continue
			}
		} else {
			var known bool
			if idx, known = byID[answer.QuestionID]; !known {
				continue
			}
		}

		if _, dup := selected[idx]; dup {
			return Result{}, fmt.Errorf("%w: question %q answered more than once", apperrors.ErrInvalidSubmission, questions[idx].ID)
		}
		selected[idx] = answer.SelectedOptionIndex
	}

	correct := 0
	for idx, option := range selected {
		q := &questions[idx]
		if q.IsValidOption(option) && q.IsCorrect(option) {
			correct++
		}
	}

	return Result{Correct: correct, Total: total, Score: Percent(correct, total)}, nil
}

// Percent возвращает round(100*correct/total) с округлением половины вверх
// в целочисленной арифметике.
func Percent(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return (200*correct + total) / (2 * total)
}

// Passed решает, достигнут ли проходной балл (порог включительно).
// Значение по умолчанию для порога подставляет вызывающий.
func Passed(score, passingScorePercent int) bool {
	return score >= passingScorePercent
}
