package model

// Site binds a managed site to a GitHub repository through an App installation.
type Site struct {
	BaseModel
	SiteId           string `gorm:"column:site_id;uniqueIndex" json:"siteId"`
	Name             string `gorm:"column:name" json:"name"`
	RepoFullName     string `gorm:"column:repo_full_name" json:"repoFullName"` // owner/name
	DefaultBranch    string `gorm:"column:default_branch" json:"defaultBranch"`
	InstallationId   int64  `gorm:"column:installation_id" json:"installationId"`
	CreatedBy        string `gorm:"column:created_by" json:"createdBy"`
	CalendarProvider string `gorm:"column:calendar_provider" json:"calendarProvider"` // google, outlook, apple
	CalendarRef      string `gorm:"column:calendar_ref" json:"calendarRef"`           // calendar id or ICS url
}

func (Site) TableName() string {
	return "t_site"
}

type CreateSiteReq struct {
	Name           string `json:"name" binding:"required"`
	RepoFullName   string `json:"repoFullName" binding:"required"`
	DefaultBranch  string `json:"defaultBranch"`
	InstallationId int64  `json:"installationId" binding:"required"`
}

type UpdateSiteReq struct {
	SiteId           string `json:"siteId" binding:"required"`
	Name             string `json:"name"`
	DefaultBranch    string `json:"defaultBranch"`
	CalendarProvider string `json:"calendarProvider"`
	CalendarRef      string `json:"calendarRef"`
}
