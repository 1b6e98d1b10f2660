package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestion_IsCorrect_CorrectAnswer(t *testing.T) {
	// Arrange
	question := &Question{
		ID:                 "q1",
		QuizID:             "quiz1",
		Text:               "Which hook is used for side effects in React?",
		Options:            StringArray{"useEffect", "useState", "useMemo", "useCallback"},
		CorrectOptionIndex: 0,
	}

	// Act & Assert
	assert.True(t, question.IsCorrect(0), "IsCorrect должен вернуть true для правильного ответа")
}

func TestQuestion_IsCorrect_IncorrectAnswer(t *testing.T) {
	// Arrange
	question := &Question{
		ID:                 "q1",
		Options:            StringArray{"A", "B", "C", "D"},
		CorrectOptionIndex: 2,
	}

	// Act & Assert
	assert.False(t, question.IsCorrect(0), "IsCorrect должен вернуть false для неправильного ответа")
	assert.False(t, question.IsCorrect(1), "IsCorrect должен вернуть false для неправильного ответа")
	assert.False(t, question.IsCorrect(3), "IsCorrect должен вернуть false для неправильного ответа")
	assert.False(t, question.IsCorrect(-1), "Отрицательный индекс никогда не является правильным")
}

func TestQuestion_IsValidOption(t *testing.T) {
	// Arrange
	question := &Question{
		Options: StringArray{"A", "B", "C", "D"},
	}

	// Act & Assert: валидные опции
	assert.True(t, question.IsValidOption(0), "Индекс 0 должен быть валидным")
	assert.True(t, question.IsValidOption(3), "Индекс 3 должен быть валидным")

	// Assert: невалидные опции
	assert.False(t, question.IsValidOption(-1), "Отрицательный индекс должен быть невалидным")
	assert.False(t, question.IsValidOption(4), "Индекс вне диапазона должен быть невалидным")
}

func TestQuestion_Validate(t *testing.T) {
	tests := []struct {
		name     string
		question Question
		wantErr  bool
	}{
		{"valid", Question{Text: "What is JSX?", Options: StringArray{"JavaScript XML", "JSON syntax"}, CorrectOptionIndex: 1}, false},
		{"empty text", Question{Options: StringArray{"A", "B"}}, true},
		{"single option", Question{Text: "Q", Options: StringArray{"A"}}, true},
		{"correct index out of range", Question{Text: "Q", Options: StringArray{"A", "B"}, CorrectOptionIndex: 2}, true},
		{"negative correct index", Question{Text: "Q", Options: StringArray{"A", "B"}, CorrectOptionIndex: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.question.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestStringArray_ScanAndValue(t *testing.T) {
	// Arrange
	original := StringArray{"JavaScript XML", "JavaScript Extension"}

	// Act
	raw, err := original.Value()
	require.NoError(t, err)

	var scanned StringArray
	err = scanned.Scan(raw)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, original, scanned)
}

func TestStringArray_ScanNilAndEmpty(t *testing.T) {
	var arr StringArray
	require.NoError(t, arr.Scan(nil))
	assert.Empty(t, arr)

	raw, err := StringArray{}.Value()
	require.NoError(t, err)
	assert.Equal(t, []byte("[]"), raw, "Пустой массив сохраняется как [] а не null")

	assert.Error(t, arr.Scan(42), "Неподдерживаемый тип должен вернуть ошибку")
}

func TestQuiz_Prepare_AssignsIDsAndPositions(t *testing.T) {
	// Arrange
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	quiz := &Quiz{
		CourseID: "course-1",
		Questions: []Question{
			{Text: "Q1", Options: StringArray{"A", "B"}},
			{Text: "Q2", Options: StringArray{"A", "B"}, CorrectOptionIndex: 1},
		},
	}

	// Act
	quiz.Prepare(now)

	// Assert
	require.NotEmpty(t, quiz.ID)
	assert.Zero(t, quiz.PassingScorePercent, "Порог по умолчанию подставляет сервис")
	for i, q := range quiz.Questions {
		assert.NotEmpty(t, q.ID)
		assert.Equal(t, quiz.ID, q.QuizID)
		assert.Equal(t, i, q.Position)
	}
	assert.NoError(t, quiz.Validate())
}

func TestQuiz_Validate_RejectsEmptyQuiz(t *testing.T) {
	quiz := &Quiz{CourseID: "course-1"}
	assert.Error(t, quiz.Validate())

	quiz = &Quiz{Questions: []Question{{Text: "Q", Options: StringArray{"A", "B"}}}}
	assert.Error(t, quiz.Validate(), "Викторина без курса невалидна")

	quiz = &Quiz{CourseID: "c", PassingScorePercent: 101, Questions: []Question{{Text: "Q", Options: StringArray{"A", "B"}}}}
	assert.Error(t, quiz.Validate())
}

func TestQuiz_SortQuestions(t *testing.T) {
	quiz := &Quiz{Questions: []Question{{ID: "b", Position: 1}, {ID: "a", Position: 0}}}
	quiz.SortQuestions()
	assert.Equal(t, "a", quiz.Questions[0].ID)
	assert.Equal(t, "b", quiz.Questions[1].ID)
}
