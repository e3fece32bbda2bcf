package summary

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image/jpeg"
	"log"
	"time"

	"github.com/gen2brain/go-fitz"
	"github.com/sashabaranov/go-openai"

	"homework-bot/internal/google/gsheets"
	"homework-bot/internal/models/config"
	"homework-bot/internal/service"
)

const (
	summaryModel = "gpt-5-mini"
	// Каждая страница уходит картинкой, ответ ограничиваем сверху.
	maxCompletionTokens = 6000

	renderDPI   = 150
	jpegQuality = 75
)

type summaryService struct {
	ai     *openai.Client
	sheets *gsheets.Client
}

// NewSummaryService создаёт сервис конспектов. sheetsClient может быть
// nil, тогда журнал расходов не ведётся.
func NewSummaryService(apiKey string, sheetsClient *gsheets.Client) service.SummaryService {
	return &summaryService{
		ai:     openai.NewClient(apiKey),
		sheets: sheetsClient,
	}
}

// renderPages переводит страницы PDF в jpeg-картинки, закодированные
// в base64. Номера страниц от пользователя 1-основанные.
func renderPages(pdf []byte, pages []int) ([]string, error) {
	doc, err := fitz.NewFromMemory(pdf)
	if err != nil {
		return nil, fmt.Errorf("открытие PDF: %w", err)
	}
	defer doc.Close()

	total := doc.NumPage()
	images := make([]string, 0, len(pages))
	for _, p := range pages {
		if p > total {
			return nil, fmt.Errorf("в файле %d страниц, страницы %d нет", total, p)
		}

		img, err := doc.ImageDPI(p-1, renderDPI)
		if err != nil {
			return nil, fmt.Errorf("рендер страницы %d: %w", p, err)
		}

		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
			return nil, fmt.Errorf("кодирование страницы %d: %w", p, err)
		}
		images = append(images, base64.StdEncoding.EncodeToString(buf.Bytes()))
	}
	return images, nil
}

func buildPrompt(subject, homeworkText string) string {
	hwPart := ""
	if homeworkText != "" {
		hwPart = fmt.Sprintf("Особое внимание удели аспектам, связанным с домашним заданием:\n'''\n%s\n'''\n\n", homeworkText)
	}
	return hwPart +
		"Ты — AI-ассистент для студента МГТУ им. Баумана. Твоя цель — понять на какую тему задания и составить маленький " +
		"структурированный и понятный конспект из теории по материалам, которые я тебе предоставил. Этот конспект должен помочь для решения заданий из материалов. " +
		fmt.Sprintf("Тема: %s. \n\n", subject) +
		"Задачи:\n" +
		"1. Не решай задания, а помоги понять что требуется сделать\n" +
		"2. Составить маленький конспект, для того что бы пользователь мог вспомнить теорию для заданий.\n" +
		"Правила составления конспекта:\n" +
		"1. Пиши только по-русски.\n" +
		"2. ВАЖНО: Итоговый текст должен быть не длиннее 3000 символов, чтобы он поместился в одно сообщение Telegram.\n" +
		"3. Не пиши ничего после конспекта. От тебя нужен только конспект.\n" +
		"4. **Используй Telegram Markdown для форматирования:**\n" +
		"   - **Заголовки** разделов выделяй жирным шрифтом (например, *Основные понятия*).\n" +
		"   - *Ключевые термины* или важные мысли выделяй курсивом.\n" +
		"   - ```Определения или формулы``` можно выделять моноширинным шрифтом (обратными кавычками).\n" +
		"5. Активно используй списки для лучшей читаемости.\n" +
		"6. Излагай только самую суть, без воды и лишних вступлений.\n" +
		"7. В конце определи одну самую сложную или важную концепцию из предоставленного материала, которая заслуживает более глубокого изучения. " +
		"Создай для нее готовый промпт, что бы пользователь мог его скопировать и самостоятельно вбить в GPT. " +
		"Сверху укажи '**Готовый запрос в GPT:**'. В конце промпта и вначале пиши обратные кавычки(```). Например:(``` Объясни подробно Passive voice ```).\n\n" +
		"Проанализируй изображения страниц и составь конспект по этим правилам."
}

func (s *summaryService) Summarize(ctx context.Context, telegramID int64, subject, homeworkText string, pdf []byte, pages []int) (string, error) {
	images, err := renderPages(pdf, pages)
	if err != nil {
		return "", err
	}

	parts := []openai.ChatMessagePart{{
		Type: openai.ChatMessagePartTypeText,
		Text: buildPrompt(subject, homeworkText),
	}}
	for _, img := range images {
		parts = append(parts, openai.ChatMessagePart{
			Type: openai.ChatMessagePartTypeImageURL,
			ImageURL: &openai.ChatMessageImageURL{
				URL: "data:image/jpeg;base64," + img,
			},
		})
	}

	resp, err := s.ai.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: summaryModel,
		Messages: []openai.ChatCompletionMessage{{
			Role:         openai.ChatMessageRoleUser,
			MultiContent: parts,
		}},
		MaxCompletionTokens: maxCompletionTokens,
	})
	if err != nil {
		return "", fmt.Errorf("запрос к OpenAI: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("пустой ответ от OpenAI")
	}

	summary := resp.Choices[0].Message.Content
	log.Printf("🤖 Токены: промпт %d, ответ %d, всего %d",
		resp.Usage.PromptTokens, resp.Usage.CompletionTokens, resp.Usage.TotalTokens)

	s.logUsage(ctx, gsheets.UsageRow{
		TelegramID:       telegramID,
		Time:             time.Now(),
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
		TotalTokens:      resp.Usage.TotalTokens,
		Subject:          subject,
		HomeworkText:     homeworkText,
		Pages:            PagesLabel(pages),
		Summary:          summary,
	})
	return summary, nil
}

// logUsage пишет строку в таблицу. В режиме отладки и без клиента
// запись пропускается, ошибка журнала конспект не ломает.
func (s *summaryService) logUsage(ctx context.Context, row gsheets.UsageRow) {
	if s.sheets == nil || config.AppConfig.Bot.Debug {
		return
	}
	if err := s.sheets.AppendUsage(ctx, row); err != nil {
		log.Printf("⚠️ Не удалось записать расход токенов: %v", err)
	}
}
