package helper

// QuestionOption представляет вариант ответа для фронтенда
type QuestionOption struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
}

// ConvertOptionsToObjects преобразует массив строк в массив объектов с id и text.
// ID - 0-based индекс варианта, именно его клиент присылает в selectedOption.
func ConvertOptionsToObjects(options []string) []QuestionOption {
	converted := make([]QuestionOption, len(options))
	for i, opt := range options {
		converted[i] = QuestionOption{ID: i, Text: opt}
	}
	return converted
}

// SanitizeForExcel экранирует данные для защиты от formula injection в Excel/CSV
func SanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	// Символы, начинающие формулу в Excel/LibreOffice: = + - @ \t \r
	if s[0] == '=' || s[0] == '+' || s[0] == '-' || s[0] == '@' || s[0] == '\t' || s[0] == '\r' {
		return "'" + s
	}
	return s
}
