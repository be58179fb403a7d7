package usecase

import (
	"context"
	"time"

	"wardrobe101/internal/domain/entity"
)

// MarketplaceAPI is the remote REST collaborator every client workflow talks to.
type MarketplaceAPI interface {
	UploadImage(ctx context.Context, image *entity.DraftImage) (string, error)
	Login(ctx context.Context, username, password string) (*entity.AuthToken, error)
	CreateItem(ctx context.Context, token string, payload entity.ItemPayload) (*entity.Item, error)
	ListItems(ctx context.Context, query entity.ItemQuery) ([]*entity.Item, error)
	GetItem(ctx context.Context, id entity.ItemID) (*entity.Item, error)
	GetCurrentUser(ctx context.Context, token string) (*entity.User, error)
}

// TokenStore persists the client state that survives restarts: the auth token and the theme.
type TokenStore interface {
	LoadSession() (*entity.Session, error)
	SaveSession(session *entity.Session) error
	ClearSession() error
	LoadTheme() (entity.Theme, error)
	SaveTheme(theme entity.Theme) error
}

// OrderRecorder is the optional backend seam behind checkout confirmation.
type OrderRecorder interface {
	RecordOrder(ctx context.Context, token string, intent *entity.OrderIntent) (*entity.Order, error)
}

// ChatTransport delivers chat messages to the counterparty.
type ChatTransport interface {
	SendMessage(ctx context.Context, msg entity.ChatMessage) error
}

// Navigator moves the presentation layer between views.
type Navigator interface {
	ShowListingOverview(sellerID string)
}

// SubmissionObserver is told when a listing submission completes.
type SubmissionObserver interface {
	ListingSubmitted(item *entity.Item)
}

// TokenIssuer signs and verifies the dev API's bearer tokens.
type TokenIssuer interface {
	Issue(subject string) (token string, expiresAt time.Time, err error)
	Verify(token string) (subject string, err error)
}
