package models

import "time"

type Family struct {
	ID           string         `json:"id"`
	FamilyName   string         `json:"family_name" binding:"required"`
	Description  string         `json:"description,omitempty"`
	CurrencyPref string         `json:"currency_pref"`
	CreatedBy    string         `json:"created_by"`
	IsPublic     bool           `json:"is_public"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	OwnerName    string         `json:"owner_name"` // From the users JOIN
	MemberCount  int            `json:"member_count"`
	Members      []FamilyMember `json:"members,omitempty"`
}

type FamilyMember struct {
	ID       string    `json:"id"`
	FamilyID string    `json:"family_id"`
	UserID   string    `json:"user_id"`
	User     *User     `json:"user,omitempty"`
	Role     string    `json:"role"`
	Status   string    `json:"status"`
	JoinedAt time.Time `json:"joined_at"`
}

type FamilyInvitation struct {
	ID        string    `json:"id"`
	FamilyID  string    `json:"family_id"`
	Email     string    `json:"email" binding:"required,email"`
	InvitedBy string    `json:"invited_by"`
	Token     string    `json:"token"`
	Status    string    `json:"status"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateFamilyRequest struct {
	FamilyName   string `json:"family_name" binding:"required"`
	Description  string `json:"description"`
	CurrencyPref string `json:"currency_pref"`
	IsPublic     bool   `json:"is_public"`
}

type UpdateFamilyRequest struct {
	FamilyName   string `json:"family_name" binding:"required"`
	Description  string `json:"description"`
	CurrencyPref string `json:"currency_pref"`
	IsPublic     *bool  `json:"is_public"`
}

type InviteMemberRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type AcceptInvitationRequest struct {
	Token string `json:"token" binding:"required"`
}
