package model

// Template is a shareable starter repository.
type Template struct {
	BaseModel
	TemplateId   string `gorm:"column:template_id;uniqueIndex" json:"templateId"`
	Name         string `gorm:"column:name" json:"name"`
	Description  string `gorm:"column:description" json:"description"`
	RepoFullName string `gorm:"column:repo_full_name" json:"repoFullName"`
	Tags         string `gorm:"column:tags" json:"tags"` // comma separated
	SubmittedBy  string `gorm:"column:submitted_by" json:"submittedBy"`
}

func (Template) TableName() string {
	return "t_template"
}

type SubmitTemplateReq struct {
	Name         string   `json:"name" binding:"required"`
	Description  string   `json:"description"`
	RepoFullName string   `json:"repoFullName" binding:"required"`
	Tags         []string `json:"tags"`
}
