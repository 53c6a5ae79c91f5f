package discordbot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/akagifreeez/trade-values/internal/handlers"
	"github.com/akagifreeez/trade-values/internal/models"
	"github.com/akagifreeez/trade-values/internal/services"
)

// Discord accepts at most this many autocomplete choices
const maxChoices = 25

type BotHandler struct {
	apiBaseURL   string
	httpClient   *http.Client
	chartService *services.ChartService
}

func NewBotHandler(apiBaseURL string) *BotHandler {
	return &BotHandler{
		apiBaseURL:   apiBaseURL,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		chartService: services.NewChartService(),
	}
}

var commands = []*discordgo.ApplicationCommand{
	{
		Name:        "value",
		Description: "Look up the trade value of an item",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:         discordgo.ApplicationCommandOptionString,
				Name:         "item",
				Description:  "Name of the item",
				Required:     true,
				Autocomplete: true,
			},
		},
	},
	{
		Name:        "help",
		Description: "Display help information about the Trade Values bot",
	},
}

func (h *BotHandler) RegisterHandlers(s *discordgo.Session) {
	s.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		switch i.Type {
		case discordgo.InteractionApplicationCommand:
			switch i.ApplicationCommandData().Name {
			case "value":
				h.handleValue(s, i)
			case "help":
				h.handleHelp(s, i)
			}
		case discordgo.InteractionApplicationCommandAutocomplete:
			h.handleAutocomplete(s, i)
		}
	})
}

func (h *BotHandler) RegisterCommands(s *discordgo.Session, appID, guildID string) ([]*discordgo.ApplicationCommand, error) {
	registeredCommands := make([]*discordgo.ApplicationCommand, len(commands))
	var err error
	for idx, cmd := range commands {
		registeredCommands[idx], err = s.ApplicationCommandCreate(appID, guildID, cmd)
		if err != nil {
			return nil, fmt.Errorf("cannot create '%v' command: %w", cmd.Name, err)
		}
	}
	return registeredCommands, nil
}

func (h *BotHandler) handleValue(s *discordgo.Session, i *discordgo.InteractionCreate) {
	// Acknowledge the interaction immediately to avoid timeout
	s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})

	data := i.ApplicationCommandData()
	var query string
	for _, opt := range data.Options {
		if opt.Name == "item" {
			query = opt.StringValue()
			break
		}
	}

	item, err := h.resolveItem(query)
	if err != nil {
		log.Warn().Err(err).Str("query", query).Msg("Item lookup failed")
		s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
			Content: func() *string { str := "Error fetching data from API."; return &str }(),
		})
		return
	}
	if item == nil {
		s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
			Content: func() *string { str := "Item not found."; return &str }(),
		})
		return
	}

	embed := ValueEmbed(*item)
	var files []*discordgo.File

	chartBytes, err := h.chartService.GenerateValueChartPNG(*item)
	if err == nil {
		// Attach the image
		files = append(files, &discordgo.File{
			Name:        fmt.Sprintf("chart_%d.png", item.ID),
			ContentType: "image/png",
			Reader:      bytes.NewReader(chartBytes),
		})
		// Reference the attachment in the embed
		embed.Image = &discordgo.MessageEmbedImage{
			URL: fmt.Sprintf("attachment://chart_%d.png", item.ID),
		}
	} else {
		log.Error().Err(err).Int64("item_id", item.ID).Msg("Failed to render chart")
	}

	s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{embed},
		Files:  files,
	})
}

// resolveItem finds the item named by a /value argument. Autocomplete fills in
// the item id; free text is searched and the first match wins.
// A nil item with a nil error means nothing matched.
func (h *BotHandler) resolveItem(query string) (*models.Item, error) {
	if id, err := strconv.ParseInt(query, 10, 64); err == nil {
		var detail handlers.ItemDetail
		found, err := h.getJSON(fmt.Sprintf("/api/v1/items/%d", id), &detail)
		if err != nil {
			return nil, err
		}
		if found {
			return &detail.Item, nil
		}
		// numeric names such as "1911" still match by search
	}

	items, err := h.search(query)
	if err != nil || len(items) == 0 {
		return nil, err
	}
	return &items[0], nil
}

func (h *BotHandler) search(query string) ([]models.Item, error) {
	var page handlers.ListResponse
	if _, err := h.getJSON("/api/v1/items?q="+url.QueryEscape(query), &page); err != nil {
		return nil, err
	}
	return page.Items, nil
}

// getJSON decodes an API response into v. A 404 is reported as not found rather than an error.
func (h *BotHandler) getJSON(path string, v any) (bool, error) {
	resp, err := h.httpClient.Get(h.apiBaseURL + path)
	if err != nil {
		return false, fmt.Errorf("failed to call api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return false, nil
	}
	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("api returned status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return false, fmt.Errorf("failed to decode api response: %w", err)
	}
	return true, nil
}

var trendColors = map[models.Trend]int{
	models.TrendRising:      0x22c55e,
	models.TrendDropping:    0xef4444,
	models.TrendFluctuating: 0xf97316,
	models.TrendStable:      0x0099ff,
}

// ValueEmbed builds the /value reply for an item
func ValueEmbed(item models.Item) *discordgo.MessageEmbed {
	p := message.NewPrinter(language.English)

	value := orNA(item.BaseValue)
	if item.BaseValueNum.Valid {
		value = p.Sprintf("%s (%d)", value, int64(item.BaseValueNum.Float64))
	}

	change := orNA(item.RecentChanges)
	switch models.ChangeDirection(item.RecentChanges) {
	case models.ChangeUp:
		change = "📈 " + change
	case models.ChangeDown:
		change = "📉 " + change
	}

	embed := &discordgo.MessageEmbed{
		Title:       item.DisplayName(),
		Description: fmt.Sprintf("%s · %s", item.Category, item.Type),
		Color:       trendColors[item.Trend],
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Base Value", Value: value, Inline: true},
			{Name: "Rares", Value: orNA(item.Rares), Inline: true},
			{Name: "Mids", Value: orNA(item.Mids), Inline: true},
			{Name: "Trend", Value: string(item.Trend), Inline: true},
			{Name: "Status", Value: orNA(item.Status), Inline: true},
			{Name: "Recent Change", Value: change, Inline: true},
		},
	}
	if item.LastUpdated != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Last updated: %s", item.LastUpdated),
		}
	}
	return embed
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func (h *BotHandler) handleHelp(s *discordgo.Session, i *discordgo.InteractionCreate) {
	embed := &discordgo.MessageEmbed{
		Title:       "Trade Values Bot Help",
		Description: "This bot allows you to quickly check item trade values.",
		Color:       0x00ff00,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:  "/value <item>",
				Value: "Search for an item and get its base value, rares, mids and value history chart.",
			},
		},
	}
	s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	})
}

func (h *BotHandler) handleAutocomplete(s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()
	var query string
	for _, opt := range data.Options {
		if opt.Name == "item" && opt.Focused {
			query = opt.StringValue()
			break
		}
	}

	choices := []*discordgo.ApplicationCommandOptionChoice{}
	if query != "" {
		items, err := h.search(query)
		if err == nil {
			choices = ItemChoices(items)
		}
	}

	s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{
			Choices: choices,
		},
	})
}

// ItemChoices turns search results into autocomplete choices that carry the item id
func ItemChoices(items []models.Item) []*discordgo.ApplicationCommandOptionChoice {
	limit := len(items)
	if limit > maxChoices {
		limit = maxChoices
	}

	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, limit)
	for _, item := range items[:limit] {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  item.DisplayName(),
			Value: strconv.FormatInt(item.ID, 10),
		})
	}
	return choices
}
