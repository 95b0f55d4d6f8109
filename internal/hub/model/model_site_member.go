package model

// SiteMember is the (site, user, role) tuple authorizing every other operation.
type SiteMember struct {
	BaseModel
	SiteId    string `gorm:"column:site_id;index:idx_site_user,unique" json:"siteId"`
	UserId    string `gorm:"column:user_id;index:idx_site_user,unique" json:"userId"`
	Role      string `gorm:"column:role" json:"role"`
	InvitedBy string `gorm:"column:invited_by" json:"invitedBy"`
}

func (SiteMember) TableName() string {
	return "t_site_member"
}

// Member roles.
const (
	SiteRoleOwner  = "owner"
	SiteRoleAdmin  = "admin"
	SiteRoleEditor = "editor"
)
