package notifier

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kojima2223-star/Fumotoppara/internal/availability"
	"github.com/kojima2223-star/Fumotoppara/internal/line"
)

// SendMode selects the LINE delivery mode.
type SendMode string

const (
	ModePush      SendMode = "push"
	ModeBroadcast SendMode = "broadcast"
	ModeMulticast SendMode = "multicast"
)

// ErrMissingRecipient marks a configuration error distinct from delivery
// failures: the selected mode has nobody to send to. The CLI maps it to its
// own exit code.
var ErrMissingRecipient = errors.New("missing recipient for send mode")

// ParseSendMode validates a send mode name from configuration.
func ParseSendMode(s string) (SendMode, error) {
	switch SendMode(strings.ToLower(strings.TrimSpace(s))) {
	case ModePush:
		return ModePush, nil
	case ModeBroadcast:
		return ModeBroadcast, nil
	case ModeMulticast:
		return ModeMulticast, nil
	default:
		return "", fmt.Errorf("unknown send mode: %q (must be push, broadcast, or multicast)", s)
	}
}

// LINENotifier delivers observations through the LINE Messaging API.
type LINENotifier struct {
	client          *line.Client
	mode            SendMode
	pushTarget      string
	userIDs         []string
	useFlex         bool
	messageOverride string
}

// NewLINENotifier creates a notifier for the given mode and recipients.
// pushTarget is the group ID when set, otherwise the user ID (matching the
// push-mode precedence of the reservation watcher's deployment).
func NewLINENotifier(client *line.Client, mode SendMode, pushTarget string, userIDs []string) (*LINENotifier, error) {
	switch mode {
	case ModePush:
		if pushTarget == "" {
			return nil, fmt.Errorf("%w: push mode requires a user or group ID", ErrMissingRecipient)
		}
	case ModeMulticast:
		if len(userIDs) == 0 {
			return nil, fmt.Errorf("%w: multicast mode requires a user ID list", ErrMissingRecipient)
		}
	case ModeBroadcast:
		// No recipient needed.
	default:
		return nil, fmt.Errorf("unknown send mode: %q", mode)
	}

	return &LINENotifier{
		client:     client,
		mode:       mode,
		pushTarget: pushTarget,
		userIDs:    userIDs,
	}, nil
}

// WithFlexCard makes Notify attach a flex-bubble card after the text message.
func (n *LINENotifier) WithFlexCard() *LINENotifier {
	n.useFlex = true
	return n
}

// WithMessageOverride replaces the generated text with a fixed message.
func (n *LINENotifier) WithMessageOverride(text string) *LINENotifier {
	n.messageOverride = text
	return n
}

// Notify sends exactly one API call for the observation.
func (n *LINENotifier) Notify(obs *availability.Observation) error {
	messages := n.buildMessages(obs)

	var err error
	switch n.mode {
	case ModeBroadcast:
		err = n.client.Broadcast(messages)
	case ModeMulticast:
		err = n.client.Multicast(n.userIDs, messages)
	default:
		err = n.client.Push(n.pushTarget, messages)
	}
	if err != nil {
		return fmt.Errorf("sending %s notification: %w", n.mode, err)
	}
	return nil
}

func (n *LINENotifier) buildMessages(obs *availability.Observation) []line.Message {
	text := n.messageOverride
	if text == "" {
		text = line.FormatText(obs)
	}

	messages := []line.Message{line.TextMessage(text)}
	if n.useFlex {
		messages = append(messages, line.FormatFlex(obs))
	}
	return messages
}
