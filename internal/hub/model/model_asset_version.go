package model

// AssetVersion is a staged pending change to one repository file. At most one
// row per (site, repo_path) may hold StatusPending; the staging flow enforces
// this by lookup-then-replace, not by a database constraint.
type AssetVersion struct {
	BaseModel
	VersionId   string `gorm:"column:version_id;uniqueIndex" json:"versionId"`
	SiteId      string `gorm:"column:site_id;index" json:"siteId"`
	RepoPath    string `gorm:"column:repo_path" json:"repoPath"`
	StoragePath string `gorm:"column:storage_path" json:"storagePath"`
	Size        int64  `gorm:"column:size" json:"size"`
	Status      int    `gorm:"column:status;index" json:"status"`
	UploadedBy  string `gorm:"column:uploaded_by" json:"uploadedBy"`
}

func (AssetVersion) TableName() string {
	return "t_asset_version"
}

// Asset version status.
const (
	AssetStatusPending   = 0
	AssetStatusCommitted = 1
	AssetStatusDiscarded = 2
)

type UploadAssetReq struct {
	SiteId   string `json:"siteId" binding:"required"`
	FilePath string `json:"filePath" binding:"required"`
	Content  string `json:"content" binding:"required"` // base64
}

type UploadAssetResp struct {
	Success     bool   `json:"success"`
	StoragePath string `json:"storagePath"`
}

type DeleteAssetReq struct {
	SiteId   string `json:"siteId" binding:"required"`
	FilePath string `json:"filePath" binding:"required"`
	Sha      string `json:"sha" binding:"required"`
	Message  string `json:"message"`
}

type DeleteAssetResp struct {
	Success   bool   `json:"success"`
	CommitSha string `json:"commitSha"`
}

type AssetsPrResp struct {
	PrUrl    string `json:"prUrl"`
	PrNumber int    `json:"prNumber"`
	Branch   string `json:"branch"`
}
