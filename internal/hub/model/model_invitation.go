package model

import "time"

// Invitation invites a user into a site. Accepted and expired are terminal.
type Invitation struct {
	BaseModel
	InvitationId string    `gorm:"column:invitation_id;uniqueIndex" json:"invitationId"`
	SiteId       string    `gorm:"column:site_id;index" json:"siteId"`
	Token        string    `gorm:"column:token;uniqueIndex" json:"token"`
	InviteCode   string    `gorm:"column:invite_code;index" json:"inviteCode"`
	Role         string    `gorm:"column:role" json:"role"`
	InvitedBy    string    `gorm:"column:invited_by" json:"invitedBy"`
	Status       int       `gorm:"column:status" json:"status"`
	ExpiresAt    time.Time `gorm:"column:expires_at" json:"expiresAt"`
}

func (Invitation) TableName() string {
	return "t_invitation"
}

// Invitation status.
const (
	InvitationStatusPending  = 0
	InvitationStatusAccepted = 1
	InvitationStatusExpired  = 2
)

type CreateInvitationReq struct {
	SiteId     string `json:"siteId" binding:"required"`
	Role       string `json:"role"`
	ExpireDays int    `json:"expireDays"`
}

type AcceptInvitationReq struct {
	Token      string `json:"token"`
	InviteCode string `json:"inviteCode"`
}

type AcceptInvitationResp struct {
	Success bool   `json:"success"`
	SiteId  string `json:"siteId"`
}
