package model

// ActivityLog is an append-only audit row per mutating action.
type ActivityLog struct {
	BaseModel
	SiteId string `gorm:"column:site_id;index" json:"siteId"`
	UserId string `gorm:"column:user_id" json:"userId"`
	Action string `gorm:"column:action" json:"action"`
	Detail string `gorm:"column:detail" json:"detail"`
}

func (ActivityLog) TableName() string {
	return "t_activity_log"
}

// Audited actions.
const (
	ActionSiteCreated     = "site.created"
	ActionSiteUpdated     = "site.updated"
	ActionAssetUploaded   = "asset.uploaded"
	ActionAssetDiscarded  = "asset.discarded"
	ActionAssetDeleted    = "asset.deleted"
	ActionAssetsPrOpened  = "assets.pr_opened"
	ActionInviteCreated   = "invitation.created"
	ActionInviteAccepted  = "invitation.accepted"
	ActionTemplateAdded   = "template.submitted"
	ActionCalendarSynced  = "calendar.synced"
)
