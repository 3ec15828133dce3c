package handler

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"remindme/internal/application/command"
	"remindme/internal/application/dto"
	"remindme/internal/application/service"
	"remindme/internal/domain/constant"
	"remindme/internal/domain/timeofday"
	appErrors "remindme/internal/pkg/errors"
	"remindme/internal/pkg/logger"
)

// User-facing reply texts.
const (
	msgEmptyList    = "📌 You have no reminders."
	msgInvalidIndex = "⚠️ Invalid reminder number. Send /list to see the numbers."
	msgInvalidTime  = "⚠️ Invalid time. Use HH:MM in 24-hour format, e.g. 09:30."
	msgUnknown      = "🤔 Unknown command. Send /help to see what I can do."
	msgFailure      = "⚠️ Something went wrong, please try again later."

	usageCreate   = "Usage: /remindme <text> <HH:MM> [1h-10h]"
	usageComplete = "Usage: /done <number>"
)

var msgInvalidRepeat = fmt.Sprintf("⚠️ Invalid repeat interval. Use one of: %s.", strings.Join(constant.Tokens(), ", "))

// CommandHandler turns one inbound chat message into a reply. It knows nothing
// about the transport the message came from.
type CommandHandler struct {
	userService     service.UserService
	reminderService service.ReminderService
	resolver        *timeofday.Resolver
	botName         string
	log             logger.Logger
}

// NewCommandHandler creates a new CommandHandler.
func NewCommandHandler(
	userService service.UserService,
	reminderService service.ReminderService,
	resolver *timeofday.Resolver,
	botName string,
	log logger.Logger,
) *CommandHandler {
	if botName == "" {
		botName = "Reminder bot"
	}
	return &CommandHandler{
		userService:     userService,
		reminderService: reminderService,
		resolver:        resolver,
		botName:         botName,
		log:             log,
	}
}

// Handle runs the command in text and returns the reply. Text that is not a
// command is ignored: the reply is empty and the owner is not registered.
func (h *CommandHandler) Handle(ctx context.Context, ownerID, text string) string {
	cmd, err := command.Parse(text)
	if errors.Is(err, appErrors.ErrUnknownCommand) {
		h.log.Debug(fmt.Sprintf("Ignoring non-command message from %s", ownerID))
		return ""
	}

	if _, regErr := h.userService.GetOrCreateUser(ctx, ownerID); regErr != nil {
		// Error already logged by service
		return msgFailure
	}

	if err != nil {
		h.log.Debug(fmt.Sprintf("Rejected message from %s: %v", ownerID, err))
		return h.validationReply(cmd.Name, err)
	}

	switch cmd.Name {
	case command.Create:
		return h.create(ctx, ownerID, cmd)
	case command.List:
		return h.list(ctx, ownerID)
	case command.Complete:
		return h.complete(ctx, ownerID, cmd.Index)
	case command.Help:
		return h.help()
	case command.Examples:
		return h.examples()
	default:
		h.log.Warn(fmt.Sprintf("Parsed command %q has no handler", cmd.Name))
		return msgUnknown
	}
}

func (h *CommandHandler) create(ctx context.Context, ownerID string, cmd command.Command) string {
	reminder, err := h.reminderService.CreateReminder(ctx, dto.CreateReminderRequest{
		OwnerID:     ownerID,
		Text:        cmd.Text,
		Time:        cmd.Time,
		RepeatToken: cmd.RepeatToken,
	})
	if err != nil {
		return h.validationReply(command.Create, err)
	}

	repeat := ""
	if reminder.Repeat.IsSet() {
		repeat = fmt.Sprintf(" (repeats every %s)", reminder.Repeat.Token())
	}
	return fmt.Sprintf("✅ Reminder saved: %q at %s %s%s.", reminder.Text, reminder.TimeOfDay, h.resolver.ZoneName(), repeat)
}

func (h *CommandHandler) list(ctx context.Context, ownerID string) string {
	reminders, err := h.reminderService.ListReminders(ctx, ownerID)
	if err != nil {
		return msgFailure
	}
	if len(reminders) == 0 {
		return msgEmptyList
	}

	zone := h.resolver.ZoneName()
	var builder strings.Builder
	builder.WriteString("📋 Your reminders:\n")
	for i, r := range reminders {
		builder.WriteString(fmt.Sprintf("%d. %s - ⏰ %s %s", i+1, r.Text, r.TimeOfDay, zone))
		if r.Repeat.IsSet() {
			builder.WriteString(fmt.Sprintf(" 🔄 every %s", r.Repeat.Token()))
		}
		builder.WriteString("\n")
	}
	return strings.TrimSuffix(builder.String(), "\n")
}

func (h *CommandHandler) complete(ctx context.Context, ownerID string, index int) string {
	removed, err := h.reminderService.CompleteReminder(ctx, dto.CompleteReminderRequest{OwnerID: ownerID, Index: index})
	if err != nil {
		return h.validationReply(command.Complete, err)
	}
	return fmt.Sprintf("✅ Reminder done: %q at %s", removed.Text, removed.TimeOfDay)
}

func (h *CommandHandler) help() string {
	return fmt.Sprintf(`📌 %s commands:

/remindme <text> <HH:MM> [repeat] - save a reminder (repeat: %s)
/list - show your reminders
/done <number> - remove a reminder from the list
/examples - show example commands
/help - show this help

Times are in %s.`, h.botName, strings.Join(constant.Tokens(), ", "), h.resolver.ZoneName())
}

func (h *CommandHandler) examples() string {
	return `💡 Examples:

/remindme Drink water 09:00
/remindme Stretch 13:30 2h
/remindme Take medicine 21:00 10h
/list
/done 2`
}

// validationReply maps a command or service error to the reply shown to the user.
func (h *CommandHandler) validationReply(name command.Name, err error) string {
	switch {
	case errors.Is(err, appErrors.ErrInvalidTimeFormat):
		return msgInvalidTime
	case errors.Is(err, appErrors.ErrInvalidRepeatToken):
		return msgInvalidRepeat
	case errors.Is(err, appErrors.ErrInvalidIndex):
		return msgInvalidIndex
	case errors.Is(err, appErrors.ErrMissingArguments):
		if name == command.Complete {
			return "⚠️ Missing reminder number. " + usageComplete
		}
		return "⚠️ Missing reminder text or time. " + usageCreate
	default:
		h.log.Error(fmt.Sprintf("Command %q failed", name), err)
		return msgFailure
	}
}
