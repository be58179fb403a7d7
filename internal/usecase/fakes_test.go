package usecase

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"wardrobe101/internal/domain/entity"
	apperrors "wardrobe101/pkg/errors"
)

type fakeAPI struct {
	mu sync.Mutex

	uploads  []*entity.DraftImage
	logins   []string
	created  []entity.ItemPayload
	tokens   []string
	queries  []entity.ItemQuery
	calls    int
	items    []*entity.Item
	item     *entity.Item
	user     *entity.User
	nextID   int
	sellerID string

	uploadErr error
	loginErr  error
	createErr error
	listErr   error
	getErr    error
	userErr   error
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{sellerID: "seller-1"}
}

func (f *fakeAPI) UploadImage(ctx context.Context, image *entity.DraftImage) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.uploads = append(f.uploads, image)
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	return "http://localhost:8001/uploads/" + image.Filename, nil
}

func (f *fakeAPI) Login(ctx context.Context, username, password string) (*entity.AuthToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.logins = append(f.logins, username)
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &entity.AuthToken{AccessToken: "token-" + username, TokenType: "bearer"}, nil
}

func (f *fakeAPI) CreateItem(ctx context.Context, token string, payload entity.ItemPayload) (*entity.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.created = append(f.created, payload)
	f.tokens = append(f.tokens, token)
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	return &entity.Item{
		ID:        entity.ItemID(strconv.Itoa(f.nextID)),
		Title:     payload.Title,
		Brand:     payload.Brand,
		Type:      payload.Type,
		SalePrice: payload.SalePrice,
		RentPrice: payload.RentPrice,
		Deposit:   payload.Deposit,
		Image:     payload.Image,
		Status:    payload.Status,
		Verified:  payload.Verified,
		SellerID:  f.sellerID,
	}, nil
}

func (f *fakeAPI) ListItems(ctx context.Context, query entity.ItemQuery) ([]*entity.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.queries = append(f.queries, query)
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.items, nil
}

func (f *fakeAPI) GetItem(ctx context.Context, id entity.ItemID) (*entity.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.item, nil
}

func (f *fakeAPI) GetCurrentUser(ctx context.Context, token string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.userErr != nil {
		return nil, f.userErr
	}
	return f.user, nil
}

func (f *fakeAPI) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type memoryTokenStore struct {
	session *entity.Session
	theme   entity.Theme
	cleared int
}

func (s *memoryTokenStore) LoadSession() (*entity.Session, error) {
	if s.session == nil {
		return nil, nil
	}
	copied := *s.session
	return &copied, nil
}

func (s *memoryTokenStore) SaveSession(session *entity.Session) error {
	copied := *session
	s.session = &copied
	return nil
}

func (s *memoryTokenStore) ClearSession() error {
	s.session = nil
	s.cleared++
	return nil
}

func (s *memoryTokenStore) LoadTheme() (entity.Theme, error) {
	return s.theme, nil
}

func (s *memoryTokenStore) SaveTheme(theme entity.Theme) error {
	s.theme = theme
	return nil
}

type recordingNavigator struct {
	mu      sync.Mutex
	sellers []string
}

func (n *recordingNavigator) ShowListingOverview(sellerID string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sellers = append(n.sellers, sellerID)
}

type recordingObserver struct {
	items []*entity.Item
}

func (o *recordingObserver) ListingSubmitted(item *entity.Item) {
	o.items = append(o.items, item)
}

type fakeRecorder struct {
	intents []*entity.OrderIntent
	tokens  []string
	err     error
}

func (r *fakeRecorder) RecordOrder(ctx context.Context, token string, intent *entity.OrderIntent) (*entity.Order, error) {
	r.tokens = append(r.tokens, token)
	r.intents = append(r.intents, intent)
	if r.err != nil {
		return nil, r.err
	}
	return &entity.Order{
		ID:            "order-1",
		ItemID:        intent.Item.ID,
		SellerID:      intent.Item.SellerID,
		Type:          intent.Kind,
		Status:        entity.OrderShipped,
		EscrowAmount:  intent.Amount,
		Delivery:      intent.Delivery,
		PaymentMethod: intent.PaymentMethod,
	}, nil
}

type fakeTransport struct {
	sent []entity.ChatMessage
	err  error
}

func (t *fakeTransport) SendMessage(ctx context.Context, msg entity.ChatMessage) error {
	t.sent = append(t.sent, msg)
	return t.err
}

var errConnRefused = errors.New("dial tcp 127.0.0.1:8001: connect: connection refused")

func networkErr() error {
	return apperrors.Network(errConnRefused)
}

func loggedInSessions(api MarketplaceAPI) *SessionManager {
	store := &memoryTokenStore{session: &entity.Session{Token: "seller-token", Subject: "seller-1"}}
	sessions := NewSessionManager(api, store, nil)
	if _, err := sessions.Restore(); err != nil {
		panic(err)
	}
	return sessions
}

func completeDraft() *entity.ListingDraft {
	d := entity.NewListingDraft()
	d.Title = "Ivory Bridal Lehenga"
	d.Brand = "Sabyasachi"
	d.Category = entity.CategoryLehenga
	d.Size = "M"
	d.Condition = "Like New"
	d.Mode = entity.ModeBoth
	d.SalePrice = entity.Float(25000)
	d.RentPrice = entity.Float(1250)
	d.DepositAmount = entity.Float(6250)
	for _, slot := range entity.RequiredImageSlots {
		d.Images[slot] = &entity.DraftImage{Filename: string(slot) + ".jpg", Data: []byte{0xff, 0xd8, 0xff}}
	}
	return d
}
