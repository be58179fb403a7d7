package entity

import "time"

// User is a marketplace account. TrustScore and EscrowBalance are displayed, never computed.
type User struct {
	ID             string    `json:"id" firestore:"id"`
	Email          string    `json:"email" firestore:"email"`
	Name           string    `json:"name" firestore:"name"`
	TrustScore     int       `json:"trust_score" firestore:"trustScore"`
	WalletBalance  float64   `json:"wallet_balance" firestore:"walletBalance"`
	EscrowBalance  float64   `json:"escrow_balance" firestore:"escrowBalance"`
	Avatar         string    `json:"avatar,omitempty" firestore:"avatar"`
	HashedPassword string    `json:"-" firestore:"hashedPassword"`
	CreatedAt      time.Time `json:"-" firestore:"createdAt"`
}

// AuthToken is the login response body.
type AuthToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
