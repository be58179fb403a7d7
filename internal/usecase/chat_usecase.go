package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"wardrobe101/internal/domain/entity"
	"wardrobe101/pkg/errors"
	"wardrobe101/pkg/logger"
	"wardrobe101/pkg/money"
)

type ChatUseCase struct {
	transport ChatTransport
	now       func() time.Time
}

// NewChatUseCase builds the chat workflow. A nil transport keeps threads local.
func NewChatUseCase(transport ChatTransport) *ChatUseCase {
	return &ChatUseCase{transport: transport, now: time.Now}
}

// SeedMessage is the opening line for a chat started from a listing or a checkout.
func SeedMessage(seed entity.ChatSeedContext) string {
	verb := "buying"
	if seed.TransactionType == entity.KindRent {
		verb = "renting"
	}
	return fmt.Sprintf("Hi, I'm interested in %s %s for %s. Is it still available?",
		verb, seed.Title, money.FormatINR(seed.Price))
}

// Seed opens a thread with the seller and sends the opening line.
func (uc *ChatUseCase) Seed(ctx context.Context, seed entity.ChatSeedContext) *entity.ChatThread {
	thread := &entity.ChatThread{
		ID:           uuid.New().String(),
		Counterparty: seed.SellerID,
		Context:      seed,
		Messages:     []entity.ChatMessage{},
	}
	// The seed line is never empty, so Send cannot fail here.
	_, _ = uc.Send(ctx, thread, SeedMessage(seed))
	return thread
}

// Send appends text to the thread and forwards it. A transport failure is logged and the
// message stays in the thread.
func (uc *ChatUseCase) Send(ctx context.Context, thread *entity.ChatThread, text string) (*entity.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.Validation(errors.FieldProblem{Field: "text", Reason: "is required"})
	}

	msg := entity.ChatMessage{
		ID:          uuid.New().String(),
		ThreadID:    thread.ID,
		RecipientID: thread.Counterparty,
		Side:        entity.SideMe,
		Text:        text,
		SentAt:      uc.now(),
	}
	thread.Messages = append(thread.Messages, msg)

	if uc.transport != nil {
		if err := uc.transport.SendMessage(ctx, msg); err != nil {
			logger.Error("Failed to deliver chat message %s: %v", msg.ID, err)
		}
	}
	return &msg, nil
}

// Receive appends a message from the counterparty.
func (uc *ChatUseCase) Receive(thread *entity.ChatThread, msg entity.ChatMessage) {
	msg.Side = entity.SideOther
	if msg.SentAt.IsZero() {
		msg.SentAt = uc.now()
	}
	thread.Messages = append(thread.Messages, msg)
}
