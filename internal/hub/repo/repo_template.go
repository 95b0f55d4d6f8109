package repo

import (
	"github.com/justinloveless/hub-page-builder-sub002/internal/hub/model"
	"github.com/justinloveless/hub-page-builder-sub002/pkg/database"
)

type ITemplateRepository interface {
	Insert(t *model.Template) error
	// List returns all templates, optionally filtered by tag.
	List(tag string) ([]model.Template, error)
}

type TemplateRepo struct {
	db       database.IDatabase
	tplModel *model.Template
}

func NewTemplateRepo(db database.IDatabase) ITemplateRepository {
	return &TemplateRepo{
		db:       db,
		tplModel: &model.Template{},
	}
}

func (tr *TemplateRepo) Insert(t *model.Template) error {
	return tr.db.Database().Create(t).Error
}

func (tr *TemplateRepo) List(tag string) ([]model.Template, error) {
	var templates []model.Template
	q := tr.db.Database().Table(tr.tplModel.TableName()).Order("name")
	if tag != "" {
		q = q.Where("tags LIKE ?", "%"+tag+"%")
	}
	err := q.Find(&templates).Error
	return templates, err
}
