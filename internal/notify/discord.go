package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/osse101/DowntimeForge/internal/event"
	"github.com/osse101/DowntimeForge/internal/logger"
)

// MessageSender is the slice of *discordgo.Session the notifier needs
type MessageSender interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// DiscordNotifier announces finished crafts, grade promotions and research unlocks in a channel
type DiscordNotifier struct {
	sender    MessageSender
	channelID string
}

// NewDiscordNotifier posts to channelID through sender
func NewDiscordNotifier(sender MessageSender, channelID string) *DiscordNotifier {
	return &DiscordNotifier{
		sender:    sender,
		channelID: channelID,
	}
}

// NewDiscordSession opens a bot-token REST session; no gateway connection is needed to post
func NewDiscordSession(token string) (*discordgo.Session, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgCreateSession, err)
	}
	return s, nil
}

// Subscribe registers the notifier to listen for announcement events
func (n *DiscordNotifier) Subscribe(bus event.Bus) {
	bus.Subscribe(event.CraftingCompleted, n.handleCraftingCompleted)
	bus.Subscribe(event.GradePromoted, n.handleGradePromoted)
	bus.Subscribe(event.RecipeUnlocked, n.handleRecipeUnlocked)
}

func (n *DiscordNotifier) handleCraftingCompleted(ctx context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.CraftingCompletedPayloadV1](evt.Payload)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgInvalidPayload, "event_type", evt.Type, "error", err)
		return nil
	}

	description := fmt.Sprintf("**%s** finished crafting **%s**", payload.CharacterName, payload.OutputItemName)
	if payload.OutputQuantity > 1 {
		description = fmt.Sprintf("**%s** finished crafting **%d× %s**", payload.CharacterName, payload.OutputQuantity, payload.OutputItemName)
	}
	description += fmt.Sprintf(" after %s of work.", pluralDays(payload.DaysWorked))

	n.send(ctx, evt.Type, &discordgo.MessageEmbed{
		Title:       TitleCraftingCompleted,
		Description: description,
		Color:       ColorCraftingCompleted,
		Fields: []*discordgo.MessageEmbedField{
			{Name: FieldKind, Value: titleCase(payload.RecipeKind), Inline: true},
			{Name: FieldRecipe, Value: displayKey(payload.RecipeKey), Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: FooterText},
	})
	return nil
}

func (n *DiscordNotifier) handleGradePromoted(ctx context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.GradePromotedPayloadV1](evt.Payload)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgInvalidPayload, "event_type", evt.Type, "error", err)
		return nil
	}

	n.send(ctx, evt.Type, &discordgo.MessageEmbed{
		Title:       TitleGradePromoted,
		Description: fmt.Sprintf("**%s** is now a **%s** with %s.", payload.CharacterName, payload.NewGrade, payload.Tool),
		Color:       ColorGradePromoted,
		Fields: []*discordgo.MessageEmbedField{
			{Name: FieldPrevious, Value: payload.PreviousGrade, Inline: true},
			{Name: FieldNew, Value: payload.NewGrade, Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: FooterText},
	})
	return nil
}

func (n *DiscordNotifier) handleRecipeUnlocked(ctx context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.RecipeUnlockedPayloadV1](evt.Payload)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgInvalidPayload, "event_type", evt.Type, "error", err)
		return nil
	}

	n.send(ctx, evt.Type, &discordgo.MessageEmbed{
		Title:       TitleRecipeUnlocked,
		Description: fmt.Sprintf("**%s** worked out how to make **%s**.", payload.CharacterName, displayKey(payload.RecipeKey)),
		Color:       ColorRecipeUnlocked,
		Footer:      &discordgo.MessageEmbedFooter{Text: FooterText},
	})
	return nil
}

// send logs failures; a handler error would replay the event to every subscriber
func (n *DiscordNotifier) send(ctx context.Context, eventType event.Type, embed *discordgo.MessageEmbed) {
	log := logger.FromContext(ctx)
	if _, err := n.sender.ChannelMessageSendEmbed(n.channelID, embed, discordgo.WithContext(ctx)); err != nil {
		log.Error(LogMsgNotificationFailed, "event_type", eventType, "error", err)
		return
	}
	log.Info(LogMsgNotificationSent, "event_type", eventType, "channel_id", n.channelID)
}

// displayKey turns a recipe key such as "flame_tongue" into "Flame Tongue"
func displayKey(key string) string {
	return titleCase(strings.ReplaceAll(key, "_", " "))
}

// titleCase builds a fresh Caser per call; a Caser must not be shared between goroutines
func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}

func pluralDays(days int) string {
	if days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}
