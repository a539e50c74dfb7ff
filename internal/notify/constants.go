package notify

// Embed titles and colours
const (
	TitleCraftingCompleted = "🔨 Crafting Complete"
	TitleGradePromoted     = "⭐ Grade Promotion"
	TitleRecipeUnlocked    = "📜 Recipe Unlocked"

	ColorCraftingCompleted = 0x2ecc71
	ColorGradePromoted     = 0xf1c40f
	ColorRecipeUnlocked    = 0x3498db

	FooterText = "DowntimeForge"
)

// Embed field names
const (
	FieldKind     = "Kind"
	FieldRecipe   = "Recipe"
	FieldPrevious = "Previous"
	FieldNew      = "New"
)

// Error and log messages
const (
	ErrMsgCreateSession = "error creating Discord session: %w"

	LogMsgNotificationSent   = "Sent Discord notification"
	LogMsgNotificationFailed = "Failed to send Discord notification"
	LogMsgInvalidPayload     = "Invalid payload for notification event"
)
