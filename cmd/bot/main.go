// cmd/bot/main.go
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"golang.org/x/text/encoding/charmap"

	"cashback-optimizer/internal/catalog"
	"cashback-optimizer/internal/config"
	"cashback-optimizer/internal/domain"
	"cashback-optimizer/internal/optimizer"
)

func main() {
	_ = godotenv.Load()

	botToken := os.Getenv("TELEGRAM_BOT_TOKEN")
	if botToken == "" {
		log.Fatal("TELEGRAM_BOT_TOKEN not set")
	}

	cfg := config.MustLoad()
	cat := catalog.Builtin()
	if cfg.CatalogSource == config.SourceFile {
		loaded, err := catalog.LoadFile(cfg.CatalogFile)
		if err != nil {
			log.Fatal("Failed to load catalog file: ", err)
		}
		cat = loaded
	}

	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		log.Panic(err)
	}

	log.Printf("Bot started: @%s", bot.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := bot.GetUpdatesChan(u)

	for update := range updates {
		if update.Message == nil {
			continue
		}

		chatID := update.Message.Chat.ID
		text := strings.TrimSpace(fixEncoding(update.Message.Text))

		var msgText string
		var err error

		switch {
		case text == "/start" || text == "/help":
			msgText = "*Cashback optimizer*\n\n" +
				"Commands:\n" +
				"`/cards` — list known cards\n" +
				"`/categories` — list spending categories\n" +
				"`/optimize dining 500, grocery 2000` — best card per category"

		case text == "/cards":
			msgText = formatCards(cat)

		case text == "/categories":
			msgText = formatCategories(cat)

		case strings.HasPrefix(text, "/optimize"):
			input := strings.TrimSpace(strings.TrimPrefix(text, "/optimize"))
			if input == "" {
				msgText = "Send spending as: `/optimize dining 500, grocery 2000`"
			} else {
				msgText, err = handleOptimize(cat, input)
			}

		default:
			msgText = "Unknown command. Send /help"
		}

		if err != nil {
			msgText = "Error: " + err.Error()
		}

		msg := tgbotapi.NewMessage(chatID, msgText)
		msg.ParseMode = "Markdown"
		_, _ = bot.Send(msg)
	}
}

// handleOptimize parses "category amount, category amount ..." into a
// spending profile and runs the plan selector over the whole catalog.
func handleOptimize(cat *catalog.Catalog, input string) (string, error) {
	profile, err := parseSpending(cat, input)
	if err != nil {
		return "", err
	}

	selection := make([]string, 0, len(cat.Cards()))
	for _, card := range cat.Cards() {
		selection = append(selection, card.Name)
	}

	selector := optimizer.NewSelector(cat)
	result, err := selector.Select(profile, selection)
	if err != nil {
		return "", err
	}
	if len(result.Allocations) == 0 {
		return "No spending to allocate", nil
	}

	var lines []string
	lines = append(lines, fmt.Sprintf("*%s*", result.ChosenPlan))
	for _, row := range result.Allocations {
		lines = append(lines, fmt.Sprintf("- %s → *%s*: %.2f/yr", row.CategoryName, row.Card, row.Cashback))
	}
	lines = append(lines, fmt.Sprintf("\n*Total annual cashback: %.2f*", result.TotalSavings))
	return strings.Join(lines, "\n"), nil
}

// parseSpending accepts category keys or display names, case-insensitively.
func parseSpending(cat *catalog.Catalog, input string) (domain.SpendingProfile, error) {
	profile := make(domain.SpendingProfile)
	for _, part := range strings.Split(input, ",") {
		part = strings.TrimSpace(part)
		fields := strings.Fields(part)
		if len(fields) < 2 {
			return nil, fmt.Errorf("entry must be a category and an amount: %q", part)
		}

		amountStr := fields[len(fields)-1]
		amount, err := strconv.ParseFloat(amountStr, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid amount: %q", amountStr)
		}

		name := strings.Join(fields[:len(fields)-1], " ")
		key, ok := matchCategory(cat, name)
		if !ok {
			return nil, fmt.Errorf("unknown category: %q", name)
		}
		profile[key] += amount
	}
	return profile, nil
}

func matchCategory(cat *catalog.Catalog, name string) (string, bool) {
	for _, category := range cat.Categories() {
		if strings.EqualFold(category.Key, name) || strings.EqualFold(category.DisplayName, name) {
			return category.Key, true
		}
	}
	return "", false
}

func formatCards(cat *catalog.Catalog) string {
	var lines []string
	lines = append(lines, "*Known cards*")
	for _, card := range cat.Cards() {
		lines = append(lines, fmt.Sprintf("- %s (base %.1f%%)", card.Name, card.BaseRate*100))
	}
	return strings.Join(lines, "\n")
}

func formatCategories(cat *catalog.Catalog) string {
	var lines []string
	lines = append(lines, "*Spending categories*")
	for _, category := range cat.Categories() {
		lines = append(lines, fmt.Sprintf("- %s (`%s`)", category.DisplayName, category.Key))
	}
	return strings.Join(lines, "\n")
}

func fixEncoding(s string) string {
	if utf8.ValidString(s) {
		return s
	}

	// Some clients still send windows-1251.
	decoder := charmap.Windows1251.NewDecoder()
	fixed, err := decoder.String(s)
	if err == nil && utf8.ValidString(fixed) {
		return fixed
	}

	return strings.ToValidUTF8(s, "")
}
