package service

import (
	"context"

	"github.com/go-playground/validator/v10"

	"vantay/cmd/internal/domain/entity"
	"vantay/cmd/internal/utils"
	"vantay/cmd/internal/utils/apierror"
)

type ClientRepository interface {
	FindByUserID(ctx context.Context, userID int64, limit int) ([]*entity.Client, error)
	FindOwned(ctx context.Context, id, userID int64) (*entity.Client, error)
	OwnerOf(ctx context.Context, clientID int64) (int64, bool, error)
	Create(ctx context.Context, client *entity.Client) error
	Replace(ctx context.Context, client *entity.Client) (bool, error)
	Delete(ctx context.Context, id, userID int64) (bool, error)
}

type ClientRequest struct {
	UserID int64   `json:"user_id" validate:"required,gt=0"`
	Name   string  `json:"name" validate:"required,max=200"`
	Email  *string `json:"email" validate:"omitempty,email,max=320"`
	Phone  *string `json:"phone" validate:"omitempty,max=50"`
}

type ClientResponse struct {
	ID        int64   `json:"id"`
	UserID    int64   `json:"user_id"`
	Name      string  `json:"name"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

type DefaultClientService struct {
	ClientRepo ClientRepository
	Validate   *validator.Validate
}

func NewClientService(clientRepo ClientRepository, validate *validator.Validate) *DefaultClientService {
	return &DefaultClientService{ClientRepo: clientRepo, Validate: validate}
}

func (s *DefaultClientService) GetClients(ctx context.Context, userID int64, limit int) ([]*ClientResponse, apierror.ErrorResponse) {
	clients, err := s.ClientRepo.FindByUserID(ctx, userID, limit)
	if err != nil {
		return nil, fromStoreError("list clients", err)
	}

	resp := make([]*ClientResponse, len(clients))
	for i, client := range clients {
		resp[i] = toClientResponse(client)
	}
	return resp, nil
}

func (s *DefaultClientService) GetClient(ctx context.Context, id, userID int64) (*ClientResponse, apierror.ErrorResponse) {
	client, err := s.ClientRepo.FindOwned(ctx, id, userID)
	if err != nil {
		return nil, fromStoreError("fetch client", err)
	}
	if client == nil {
		return nil, apierror.NotFoundError
	}
	return toClientResponse(client), nil
}

func (s *DefaultClientService) CreateClient(ctx context.Context, req *ClientRequest) (*ClientResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if apierr := ValidatePayload(s.Validate, req); apierr != nil {
		return nil, apierr
	}

	client := &entity.Client{
		UserID: req.UserID,
		Name:   req.Name,
		Email:  req.Email,
		Phone:  req.Phone,
	}
	if err := s.ClientRepo.Create(ctx, client); err != nil {
		return nil, fromStoreError("save client", err)
	}
	return toClientResponse(client), nil
}

// ReplaceClient overwrites the client {id, req.UserID} with req.
func (s *DefaultClientService) ReplaceClient(ctx context.Context, id int64, req *ClientRequest) (*ClientResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if apierr := ValidatePayload(s.Validate, req); apierr != nil {
		return nil, apierr
	}

	client := &entity.Client{
		ID:     id,
		UserID: req.UserID,
		Name:   req.Name,
		Email:  req.Email,
		Phone:  req.Phone,
	}
	found, err := s.ClientRepo.Replace(ctx, client)
	if err != nil {
		return nil, fromStoreError("update client", err)
	}
	if !found {
		return nil, apierror.NotFoundError
	}

	updated, err := s.ClientRepo.FindOwned(ctx, id, req.UserID)
	if err != nil {
		return nil, fromStoreError("fetch client", err)
	}
	if updated == nil {
		return nil, apierror.NotFoundError
	}
	return toClientResponse(updated), nil
}

// DeleteClient removes the client; appointments that referenced it keep
// existing without a client.
func (s *DefaultClientService) DeleteClient(ctx context.Context, id, userID int64) apierror.ErrorResponse {
	found, err := s.ClientRepo.Delete(ctx, id, userID)
	if err != nil {
		return fromStoreError("delete client", err)
	}
	if !found {
		return apierror.NotFoundError
	}
	return nil
}

func toClientResponse(client *entity.Client) *ClientResponse {
	return &ClientResponse{
		ID:        client.ID,
		UserID:    client.UserID,
		Name:      client.Name,
		Email:     client.Email,
		Phone:     client.Phone,
		CreatedAt: utils.FormatTime(client.CreatedAt),
		UpdatedAt: utils.FormatTime(client.UpdatedAt),
	}
}
