package service

import (
	"context"
	"fmt"
	"time"

	"github.com/justinloveless/hub-page-builder-sub002/internal/hub/model"
)

// In-memory fakes standing in for the gorm repositories and blob storage.

type fakeSiteRepo struct {
	sites   map[string]*model.Site
	members []model.SiteMember
}

func newFakeSiteRepo() *fakeSiteRepo {
	return &fakeSiteRepo{sites: map[string]*model.Site{}}
}

func (f *fakeSiteRepo) AddSite(site *model.Site) error {
	f.sites[site.SiteId] = site
	return nil
}

func (f *fakeSiteRepo) GetSite(siteId string) (*model.Site, error) {
	return f.sites[siteId], nil
}

func (f *fakeSiteRepo) UpdateSite(siteId string, site *model.Site) error {
	existing, ok := f.sites[siteId]
	if !ok {
		return fmt.Errorf("no such site: %s", siteId)
	}
	if site.Name != "" {
		existing.Name = site.Name
	}
	if site.DefaultBranch != "" {
		existing.DefaultBranch = site.DefaultBranch
	}
	return nil
}

func (f *fakeSiteRepo) ListSitesByUser(userId string) ([]model.Site, error) {
	var out []model.Site
	for _, m := range f.members {
		if m.UserId == userId {
			if s, ok := f.sites[m.SiteId]; ok {
				out = append(out, *s)
			}
		}
	}
	return out, nil
}

func (f *fakeSiteRepo) ListSitesWithCalendar() ([]model.Site, error) {
	var out []model.Site
	for _, s := range f.sites {
		if s.CalendarProvider != "" {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeSiteRepo) AddMember(m *model.SiteMember) error {
	f.members = append(f.members, *m)
	return nil
}

func (f *fakeSiteRepo) GetMember(siteId, userId string) (*model.SiteMember, error) {
	for i := range f.members {
		if f.members[i].SiteId == siteId && f.members[i].UserId == userId {
			return &f.members[i], nil
		}
	}
	return nil, nil
}

func (f *fakeSiteRepo) IsMember(siteId, userId string) (bool, error) {
	m, _ := f.GetMember(siteId, userId)
	return m != nil, nil
}

type fakeAssetRepo struct {
	versions []*model.AssetVersion
}

func (f *fakeAssetRepo) Insert(v *model.AssetVersion) error {
	f.versions = append(f.versions, v)
	return nil
}

func (f *fakeAssetRepo) GetPendingByPath(siteId, repoPath string) (*model.AssetVersion, error) {
	for _, v := range f.versions {
		if v.SiteId == siteId && v.RepoPath == repoPath && v.Status == model.AssetStatusPending {
			return v, nil
		}
	}
	return nil, nil
}

func (f *fakeAssetRepo) ListPending(siteId string) ([]model.AssetVersion, error) {
	var out []model.AssetVersion
	for _, v := range f.versions {
		if v.SiteId == siteId && v.Status == model.AssetStatusPending {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (f *fakeAssetRepo) Update(v *model.AssetVersion) error {
	for _, existing := range f.versions {
		if existing.VersionId == v.VersionId {
			*existing = *v
			return nil
		}
	}
	return fmt.Errorf("no such version: %s", v.VersionId)
}

func (f *fakeAssetRepo) UpdateStatus(versionId string, status int) error {
	for _, v := range f.versions {
		if v.VersionId == versionId {
			v.Status = status
			return nil
		}
	}
	return fmt.Errorf("no such version: %s", versionId)
}

func (f *fakeAssetRepo) MarkCommitted(versionIds []string) error {
	for _, id := range versionIds {
		if err := f.UpdateStatus(id, model.AssetStatusCommitted); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeAssetRepo) pendingCount(siteId string) int {
	n := 0
	for _, v := range f.versions {
		if v.SiteId == siteId && v.Status == model.AssetStatusPending {
			n++
		}
	}
	return n
}

type fakeInvRepo struct {
	invs []*model.Invitation
}

func (f *fakeInvRepo) Insert(inv *model.Invitation) error {
	f.invs = append(f.invs, inv)
	return nil
}

func (f *fakeInvRepo) GetByToken(token string) (*model.Invitation, error) {
	for _, inv := range f.invs {
		if inv.Token == token {
			return inv, nil
		}
	}
	return nil, nil
}

func (f *fakeInvRepo) GetByCode(code string) (*model.Invitation, error) {
	for _, inv := range f.invs {
		if inv.InviteCode == code {
			return inv, nil
		}
	}
	return nil, nil
}

func (f *fakeInvRepo) UpdateStatus(invitationId string, status int) error {
	for _, inv := range f.invs {
		if inv.InvitationId == invitationId {
			inv.Status = status
			return nil
		}
	}
	return fmt.Errorf("no such invitation: %s", invitationId)
}

func (f *fakeInvRepo) ListBySite(siteId string) ([]model.Invitation, error) {
	var out []model.Invitation
	for _, inv := range f.invs {
		if inv.SiteId == siteId {
			out = append(out, *inv)
		}
	}
	return out, nil
}

type fakeActivityRepo struct {
	entries []model.ActivityLog
}

func (f *fakeActivityRepo) Append(entry *model.ActivityLog) error {
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeActivityRepo) ListBySite(siteId string, offset, limit int) ([]model.ActivityLog, error) {
	var out []model.ActivityLog
	for _, e := range f.entries {
		if e.SiteId == siteId {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeStore struct {
	objects map[string][]byte
	deleted []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: map[string][]byte{}}
}

func (f *fakeStore) PutObject(_ context.Context, objectName string, data []byte, _ string) (string, error) {
	f.objects[objectName] = data
	return objectName, nil
}

func (f *fakeStore) GetObject(_ context.Context, objectName string) ([]byte, error) {
	data, ok := f.objects[objectName]
	if !ok {
		return nil, fmt.Errorf("no such object: %s", objectName)
	}
	return data, nil
}

func (f *fakeStore) Delete(_ context.Context, objectName string) error {
	delete(f.objects, objectName)
	f.deleted = append(f.deleted, objectName)
	return nil
}

// fixture wires one site with one owner through the fakes.

type fixture struct {
	siteRepo     *fakeSiteRepo
	assetRepo    *fakeAssetRepo
	invRepo      *fakeInvRepo
	activityRepo *fakeActivityRepo
	store        *fakeStore

	siteService  *SiteService
	assetService *AssetService
}

const (
	testSiteId = "site-1"
	testOwner  = "user-owner"
)

func newFixture(maxFileBytes int64) *fixture {
	f := &fixture{
		siteRepo:     newFakeSiteRepo(),
		assetRepo:    &fakeAssetRepo{},
		invRepo:      &fakeInvRepo{},
		activityRepo: &fakeActivityRepo{},
		store:        newFakeStore(),
	}
	f.siteRepo.sites[testSiteId] = &model.Site{
		SiteId:        testSiteId,
		Name:          "demo",
		RepoFullName:  "octocat/site",
		DefaultBranch: "main",
		CreatedBy:     testOwner,
	}
	f.siteRepo.members = append(f.siteRepo.members, model.SiteMember{
		SiteId: testSiteId,
		UserId: testOwner,
		Role:   model.SiteRoleOwner,
	})
	f.siteService = NewSiteService(f.siteRepo, f.activityRepo, nil)
	f.assetService = NewAssetService(f.siteService, f.assetRepo, f.activityRepo, f.store, maxFileBytes)
	return f
}

func (f *fixture) invitationService() *InvitationService {
	return NewInvitationService(f.siteService, f.invRepo, f.siteRepo, f.activityRepo)
}

func (f *fixture) expiredInvitation() *model.Invitation {
	inv := &model.Invitation{
		InvitationId: "inv-1",
		SiteId:       testSiteId,
		Token:        "tok-1",
		InviteCode:   "CODE1234",
		Role:         model.SiteRoleEditor,
		InvitedBy:    testOwner,
		Status:       model.InvitationStatusPending,
		ExpiresAt:    time.Now().Add(-time.Hour),
	}
	f.invRepo.invs = append(f.invRepo.invs, inv)
	return inv
}
