package entity

import (
	"time"
)

// Membership roles within a shop
const (
	RoleShopOwner  = "owner"
	RoleShopEditor = "editor"
)

type Shop struct {
	ID          string    `json:"id" firestore:"id"`
	Name        string    `json:"name" firestore:"name"`
	Description string    `json:"description" firestore:"description"`
	LogoURL     string    `json:"logo_url,omitempty" firestore:"logoUrl,omitempty"`
	Phone       string    `json:"phone,omitempty" firestore:"phone,omitempty"`
	Verified    bool      `json:"verified" firestore:"verified"`
	CreatedAt   time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt   time.Time `json:"updated_at" firestore:"updatedAt"`
}

// ShopMembership grants a user management rights within a shop. Every shop
// has exactly one owner membership, written in the same unit as the shop
// itself.
type ShopMembership struct {
	ShopID    string    `json:"shop_id" firestore:"shopId"`
	UserID    string    `json:"user_id" firestore:"userId"`
	Role      string    `json:"role" firestore:"role"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}

// CanManage reports whether the membership role grants edit rights over the
// shop's listings.
func (m *ShopMembership) CanManage() bool {
	return m.Role == RoleShopOwner || m.Role == RoleShopEditor
}
