package provider

import (
	"fmt"
	"strings"
)

// BuildPrompt собирает редакторский промпт из текста поста и строк-описаний
// картинок. Мультимодальные адаптеры передают одну общую строку про
// приложенные изображения, текстовые — по заглушке на каждый скриншот.
func BuildPrompt(postText string, imageLines []string) string {
	var b strings.Builder
	b.WriteString("Ты — редактор. Пользователь присылает текст поста и скрины с правками.\n")
	b.WriteString("Вот текст поста:\n\n")
	b.WriteString(postText)
	if len(imageLines) > 0 {
		b.WriteString("\n\nВот правки, сделанные пользователем на изображениях:\n")
		b.WriteString(strings.Join(imageLines, "\n"))
	}
	b.WriteString("\n\nОтредактируй текст поста, учтя замечания. Верни только исправленный текст.\n")
	return b.String()
}

// ImagePlaceholders — строки-заглушки для бэкендов без поддержки изображений:
// по одной на скриншот, в порядке поступления.
func ImagePlaceholders(n int) []string {
	if n <= 0 {
		return nil
	}
	lines := make([]string, 0, n)
	for i := range n {
		lines = append(lines, fmt.Sprintf("Скриншот %d — правки на этом изображении.", i+1))
	}
	return lines
}

// InlineImagesNote — единственная строка-описание для мультимодальных
// бэкендов, у которых сами картинки идут в запросе.
func InlineImagesNote(n int) []string {
	if n <= 0 {
		return nil
	}
	return []string{"Правки — на приложенных изображениях."}
}
