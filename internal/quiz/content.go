package quiz

import (
	"encoding/json"
	"fmt"
	"html"
	"os"
	"strings"
)

// Поддерживаемые языки проверки.
var Languages = []string{"ru", "en", "zh"}

// LanguageLabels — подписи кнопок выбора языка.
var LanguageLabels = map[string]string{
	"ru": "Русский",
	"en": "English",
	"zh": "中文",
}

// Question — один вопрос пула с локализованными текстом и вариантами.
type Question struct {
	Text         map[string]string   `json:"question"`
	Answers      map[string][]string `json:"answers"`
	CorrectIndex int                 `json:"correct_index"`
}

// Dialogs — локализованные реплики бота. Ключ внешней карты — имя реплики,
// внутренней — код языка.
type Dialogs struct {
	LanguageSelection string                       `json:"language_selection"`
	Strings           map[string]map[string]string `json:"strings"`
}

// Content — содержимое файла data/content.json.
type Content struct {
	Questions []Question `json:"questions"`
	Dialogs   Dialogs    `json:"dialogs"`
}

// LoadContent читает пул вопросов и реплики из JSON файла.
func LoadContent(path string) (*Content, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("quiz: не удалось прочитать файл контента: %w", err)
	}

	var content Content
	if err := json.Unmarshal(raw, &content); err != nil {
		return nil, fmt.Errorf("quiz: не удалось распарсить файл контента: %w", err)
	}

	if len(content.Questions) == 0 {
		return nil, fmt.Errorf("quiz: пул вопросов пуст")
	}

	for i, q := range content.Questions {
		for _, lang := range Languages {
			answers, ok := q.Answers[lang]
			if !ok || len(answers) < 2 {
				return nil, fmt.Errorf("quiz: вопрос %d не имеет вариантов для языка %s", i, lang)
			}
			if q.CorrectIndex < 0 || q.CorrectIndex >= len(answers) {
				return nil, fmt.Errorf("quiz: вопрос %d имеет неверный correct_index", i)
			}
			if _, ok := q.Text[lang]; !ok {
				return nil, fmt.Errorf("quiz: вопрос %d не имеет текста для языка %s", i, lang)
			}
		}
	}

	return &content, nil
}

// T возвращает реплику по имени и языку с фоллбеком на английский.
func (d Dialogs) T(key, lang string) string {
	byLang, ok := d.Strings[key]
	if !ok {
		return ""
	}
	if text, ok := byLang[lang]; ok {
		return text
	}
	return byLang["en"]
}

// Format подставляет имя пользователя в шаблон реплики.
func Format(template, mention string) string {
	return strings.ReplaceAll(template, "{name}", mention)
}

// Mention строит HTML-упоминание пользователя.
func Mention(userID int64, name string) string {
	if name == "" {
		name = fmt.Sprintf("%d", userID)
	}
	return fmt.Sprintf(`<a href="tg://user?id=%d">%s</a>`, userID, html.EscapeString(name))
}
