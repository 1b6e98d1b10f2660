package entity

// SubmittedAnswer - выбранный пользователем вариант для одного вопроса.
// Пустой QuestionID означает, что ответ сопоставляется с вопросом по позиции.
type SubmittedAnswer struct {
	QuestionID          string
	SelectedOptionIndex int
}

// AnswerSubmission - однократная отправка ответов на викторину курса.
// Не сохраняется в хранилище.
type AnswerSubmission struct {
	CourseID string
	UserID   string
	Answers  []SubmittedAnswer
}
