package host

import (
	"errors"
	"fmt"
	"io"

	"streamtasks/internal/firebot"
)

// ErrUnsupportedEffect is returned for effects the local host cannot execute.
var ErrUnsupportedEffect = errors.New("unsupported effect")

// DefaultChatter is used for chat effects that do not name an account.
const DefaultChatter = "Streamer"

// Executor carries out effects the way the host would.
type Executor struct {
	docs Documents
	chat io.Writer
}

// NewExecutor creates an Executor writing files through docs and chat messages to chat.
func NewExecutor(docs Documents, chat io.Writer) *Executor {
	if chat == nil {
		chat = io.Discard
	}
	return &Executor{docs: docs, chat: chat}
}

// Execute applies effects in order and stops at the first failure.
func (e *Executor) Execute(effects []firebot.Effect) error {
	for i, effect := range effects {
		if err := e.apply(effect); err != nil {
			return fmt.Errorf("effect %d (%s): %w", i, effect.Type, err)
		}
	}
	return nil
}

func (e *Executor) apply(effect firebot.Effect) error {
	switch effect.Type {
	case firebot.ChatEffect:
		chatter := effect.Chatter
		if chatter == "" {
			chatter = DefaultChatter
		}
		_, err := fmt.Fprintf(e.chat, "[%s] %s\n", chatter, effect.Message)
		return err

	case firebot.FileWriterEffect:
		if effect.WriteMode != firebot.WriteModeReplace {
			return fmt.Errorf("%w: write mode %q", ErrUnsupportedEffect, effect.WriteMode)
		}
		if effect.Filepath == "" {
			return errors.New("file writer effect has no filepath")
		}
		return e.docs.WriteDocument(effect.Filepath, []byte(effect.Text))

	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedEffect, effect.Type)
	}
}
