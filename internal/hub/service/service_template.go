package service

import (
	"strings"

	"github.com/google/uuid"
	"github.com/justinloveless/hub-page-builder-sub002/internal/hub/github"
	"github.com/justinloveless/hub-page-builder-sub002/internal/hub/model"
	"github.com/justinloveless/hub-page-builder-sub002/internal/hub/repo"
)

type TemplateService struct {
	tplRepo repo.ITemplateRepository
}

func NewTemplateService(tplRepo repo.ITemplateRepository) *TemplateService {
	return &TemplateService{tplRepo: tplRepo}
}

func (s *TemplateService) List(tag string) ([]model.Template, error) {
	return s.tplRepo.List(tag)
}

// Submit registers a starter repository in the template gallery.
func (s *TemplateService) Submit(userId string, req *model.SubmitTemplateReq) (*model.Template, error) {
	if !github.ValidRepoFullName(req.RepoFullName) {
		return nil, ErrInvalidRepo
	}

	tpl := &model.Template{
		TemplateId:   uuid.NewString(),
		Name:         req.Name,
		Description:  req.Description,
		RepoFullName: req.RepoFullName,
		Tags:         strings.Join(req.Tags, ","),
		SubmittedBy:  userId,
	}
	if err := s.tplRepo.Insert(tpl); err != nil {
		return nil, err
	}
	return tpl, nil
}
