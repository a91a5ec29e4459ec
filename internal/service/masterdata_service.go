package service

import (
	"context"
	"errors"

	"github.com/tech2stack/GoodLuck-final-sub001/internal/apierror"
	"github.com/tech2stack/GoodLuck-final-sub001/internal/dto"
	"github.com/tech2stack/GoodLuck-final-sub001/internal/model"
	"github.com/tech2stack/GoodLuck-final-sub001/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MasterDataService is the thin CRUD layer over reference entities.
type MasterDataService interface {
	CreatePublication(ctx context.Context, req dto.CreateNamedRequest) (dto.NamedResponse, error)
	CreateSubtitle(ctx context.Context, req dto.CreateSubtitleRequest) (dto.SubtitleResponse, error)
	CreateLanguage(ctx context.Context, req dto.CreateNamedRequest) (dto.NamedResponse, error)
	CreateClass(ctx context.Context, req dto.CreateNamedRequest) (dto.NamedResponse, error)
	CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest) (dto.CustomerResponse, error)
	CreateBranch(ctx context.Context, req dto.CreateNamedRequest) (dto.NamedResponse, error)
	CreateStationeryItem(ctx context.Context, req dto.CreateNamedRequest) (dto.NamedResponse, error)

	ListPublications(ctx context.Context) ([]dto.NamedResponse, error)
	ListSubtitles(ctx context.Context, publicationID *uuid.UUID) ([]dto.SubtitleResponse, error)
	ListLanguages(ctx context.Context) ([]dto.NamedResponse, error)
	ListClasses(ctx context.Context) ([]dto.NamedResponse, error)
	ListCustomers(ctx context.Context) ([]dto.CustomerResponse, error)
	ListBranches(ctx context.Context) ([]dto.NamedResponse, error)
	ListStationeryItems(ctx context.Context) ([]dto.NamedResponse, error)
}

type masterDataService struct {
	repo repository.MasterDataRepository
}

func NewMasterDataService(repo repository.MasterDataRepository) MasterDataService {
	return &masterDataService{repo: repo}
}

func (s *masterDataService) CreatePublication(ctx context.Context, req dto.CreateNamedRequest) (dto.NamedResponse, error) {
	p := &model.Publication{Name: req.Name, Active: true}
	if err := s.repo.CreatePublication(ctx, p); err != nil {
		return dto.NamedResponse{}, err
	}
	return dto.NamedResponse{ID: p.ID.String(), Name: p.Name, Active: p.Active}, nil
}

func (s *masterDataService) CreateSubtitle(ctx context.Context, req dto.CreateSubtitleRequest) (dto.SubtitleResponse, error) {
	pubID, err := uuid.Parse(req.PublicationID)
	if err != nil {
		return dto.SubtitleResponse{}, apierror.Invalidf("invalid publication_id")
	}
	if _, err := s.repo.FindPublication(ctx, pubID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubtitleResponse{}, apierror.NotFoundf("publication %s", req.PublicationID)
		}
		return dto.SubtitleResponse{}, err
	}
	sub := &model.Subtitle{Name: req.Name, PublicationID: pubID, Active: true}
	if err := s.repo.CreateSubtitle(ctx, sub); err != nil {
		return dto.SubtitleResponse{}, err
	}
	return dto.SubtitleResponse{ID: sub.ID.String(), Name: sub.Name, PublicationID: req.PublicationID, Active: sub.Active}, nil
}

func (s *masterDataService) CreateLanguage(ctx context.Context, req dto.CreateNamedRequest) (dto.NamedResponse, error) {
	l := &model.Language{Name: req.Name, Active: true}
	if err := s.repo.CreateLanguage(ctx, l); err != nil {
		return dto.NamedResponse{}, err
	}
	return dto.NamedResponse{ID: l.ID.String(), Name: l.Name, Active: l.Active}, nil
}

func (s *masterDataService) CreateClass(ctx context.Context, req dto.CreateNamedRequest) (dto.NamedResponse, error) {
	c := &model.SchoolClass{Name: req.Name, Active: true}
	if err := s.repo.CreateClass(ctx, c); err != nil {
		return dto.NamedResponse{}, err
	}
	return dto.NamedResponse{ID: c.ID.String(), Name: c.Name, Active: c.Active}, nil
}

func (s *masterDataService) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest) (dto.CustomerResponse, error) {
	c := &model.Customer{Name: req.Name, Type: req.Type, City: req.City, Phone: req.Phone, Active: true}
	if err := s.repo.CreateCustomer(ctx, c); err != nil {
		return dto.CustomerResponse{}, err
	}
	return customerToResponse(c), nil
}

func (s *masterDataService) CreateBranch(ctx context.Context, req dto.CreateNamedRequest) (dto.NamedResponse, error) {
	b := &model.Branch{Name: req.Name, Active: true}
	if err := s.repo.CreateBranch(ctx, b); err != nil {
		return dto.NamedResponse{}, err
	}
	return dto.NamedResponse{ID: b.ID.String(), Name: b.Name, Active: b.Active}, nil
}

func (s *masterDataService) CreateStationeryItem(ctx context.Context, req dto.CreateNamedRequest) (dto.NamedResponse, error) {
	i := &model.StationeryItem{Name: req.Name, Active: true}
	if err := s.repo.CreateStationeryItem(ctx, i); err != nil {
		return dto.NamedResponse{}, err
	}
	return dto.NamedResponse{ID: i.ID.String(), Name: i.Name, Active: i.Active}, nil
}

func (s *masterDataService) ListPublications(ctx context.Context) ([]dto.NamedResponse, error) {
	rows, err := s.repo.ListPublications(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.NamedResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.NamedResponse{ID: r.ID.String(), Name: r.Name, Active: r.Active})
	}
	return out, nil
}

func (s *masterDataService) ListSubtitles(ctx context.Context, publicationID *uuid.UUID) ([]dto.SubtitleResponse, error) {
	rows, err := s.repo.ListSubtitles(ctx, publicationID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SubtitleResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.SubtitleResponse{
			ID: r.ID.String(), Name: r.Name, PublicationID: r.PublicationID.String(), Active: r.Active,
		})
	}
	return out, nil
}

func (s *masterDataService) ListLanguages(ctx context.Context) ([]dto.NamedResponse, error) {
	rows, err := s.repo.ListLanguages(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.NamedResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.NamedResponse{ID: r.ID.String(), Name: r.Name, Active: r.Active})
	}
	return out, nil
}

func (s *masterDataService) ListClasses(ctx context.Context) ([]dto.NamedResponse, error) {
	rows, err := s.repo.ListClasses(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.NamedResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.NamedResponse{ID: r.ID.String(), Name: r.Name, Active: r.Active})
	}
	return out, nil
}

func (s *masterDataService) ListCustomers(ctx context.Context) ([]dto.CustomerResponse, error) {
	rows, err := s.repo.ListCustomers(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CustomerResponse, 0, len(rows))
	for i := range rows {
		out = append(out, customerToResponse(&rows[i]))
	}
	return out, nil
}

func (s *masterDataService) ListBranches(ctx context.Context) ([]dto.NamedResponse, error) {
	rows, err := s.repo.ListBranches(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.NamedResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.NamedResponse{ID: r.ID.String(), Name: r.Name, Active: r.Active})
	}
	return out, nil
}

func (s *masterDataService) ListStationeryItems(ctx context.Context) ([]dto.NamedResponse, error) {
	rows, err := s.repo.ListStationeryItems(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.NamedResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.NamedResponse{ID: r.ID.String(), Name: r.Name, Active: r.Active})
	}
	return out, nil
}

func customerToResponse(c *model.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{
		ID:     c.ID.String(),
		Name:   c.Name,
		Type:   c.Type,
		City:   c.City,
		Phone:  c.Phone,
		Active: c.Active,
	}
}
