package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"

	"vantay/cmd/internal/domain/entity"
	"vantay/cmd/internal/utils"
	"vantay/cmd/internal/utils/apierror"
)

type AppointmentRepository interface {
	FindByFilter(ctx context.Context, filter entity.AppointmentFilter) ([]*entity.AppointmentWithClient, error)
	FindOwned(ctx context.Context, id, userID int64) (*entity.Appointment, error)
	Create(ctx context.Context, appt *entity.Appointment) error
	Replace(ctx context.Context, appt *entity.Appointment) (bool, error)
	Delete(ctx context.Context, id, userID int64) (bool, error)
}

// AppointmentRequest is the full record for both create and replace.
type AppointmentRequest struct {
	UserID   int64   `json:"user_id" validate:"required,gt=0"`
	ClientID *int64  `json:"client_id" validate:"omitempty,gt=0"`
	StartAt  string  `json:"start_at" validate:"required,tzdatetime"`
	EndAt    string  `json:"end_at" validate:"required,tzdatetime"`
	Status   string  `json:"status" validate:"omitempty,apptstatus"`
	Title    *string `json:"title" validate:"omitempty,max=200"`
	Notes    *string `json:"notes" validate:"omitempty,max=5000"`
}

type AppointmentQuery struct {
	UserID int64
	From   string
	To     string
	Limit  int
}

type AppointmentResponse struct {
	ID         int64   `json:"id"`
	UserID     int64   `json:"user_id"`
	ClientID   *int64  `json:"client_id"`
	ClientName *string `json:"client_name,omitempty"`
	StartAt    string  `json:"start_at"`
	EndAt      string  `json:"end_at"`
	Status     string  `json:"status"`
	Title      *string `json:"title"`
	Notes      *string `json:"notes"`
	CreatedAt  string  `json:"created_at"`
	UpdatedAt  string  `json:"updated_at"`
}

type DefaultAppointmentService struct {
	AppointmentRepo AppointmentRepository
	ClientRepo      ClientRepository
	Transactor      Transactor
	Validate        *validator.Validate
}

func NewAppointmentService(apptRepo AppointmentRepository, clientRepo ClientRepository, tx Transactor, validate *validator.Validate) *DefaultAppointmentService {
	return &DefaultAppointmentService{AppointmentRepo: apptRepo, ClientRepo: clientRepo, Transactor: tx, Validate: validate}
}

func (a *DefaultAppointmentService) GetAppointments(ctx context.Context, q AppointmentQuery) ([]*AppointmentResponse, apierror.ErrorResponse) {
	filter := entity.AppointmentFilter{UserID: q.UserID, Limit: q.Limit}

	if strings.TrimSpace(q.From) != "" {
		from, err := utils.ParseTimestamp(q.From)
		if err != nil {
			return nil, timestampError("from", err)
		}
		filter.From = &from
	}
	if strings.TrimSpace(q.To) != "" {
		to, err := utils.ParseTimestamp(q.To)
		if err != nil {
			return nil, timestampError("to", err)
		}
		filter.To = &to
	}

	appts, err := a.AppointmentRepo.FindByFilter(ctx, filter)
	if err != nil {
		return nil, fromStoreError("list appointments", err)
	}

	response := make([]*AppointmentResponse, len(appts))
	for i, appt := range appts {
		response[i] = toAppointmentResponse(&appt.Appointment)
		response[i].ClientName = appt.ClientName
	}
	return response, nil
}

func (a *DefaultAppointmentService) GetAppointment(ctx context.Context, id, userID int64) (*AppointmentResponse, apierror.ErrorResponse) {
	appt, err := a.AppointmentRepo.FindOwned(ctx, id, userID)
	if err != nil {
		return nil, fromStoreError("fetch appointment", err)
	}
	if appt == nil {
		return nil, apierror.NotFoundError
	}
	return toAppointmentResponse(appt), nil
}

// CreateAppointment validates the request and inserts it. The client
// ownership check and the insert share one transaction.
func (a *DefaultAppointmentService) CreateAppointment(ctx context.Context, req *AppointmentRequest) (*AppointmentResponse, apierror.ErrorResponse) {
	appt, apierr := a.fromRequest(req)
	if apierr != nil {
		return nil, apierr
	}

	err := a.Transactor.Atomic(ctx, func(ctx context.Context) error {
		if apierr := ValidateOwnership(ctx, appt.UserID, appt.ClientID, a.ClientRepo.OwnerOf); apierr != nil {
			return apierr
		}
		return a.AppointmentRepo.Create(ctx, appt)
	})
	if err != nil {
		return nil, fromStoreError("save appointment", err)
	}
	return toAppointmentResponse(appt), nil
}

// ReplaceAppointment overwrites the appointment {id, req.UserID} with req.
// Every invariant is checked against the whole replacement.
func (a *DefaultAppointmentService) ReplaceAppointment(ctx context.Context, id int64, req *AppointmentRequest) (*AppointmentResponse, apierror.ErrorResponse) {
	appt, apierr := a.fromRequest(req)
	if apierr != nil {
		return nil, apierr
	}
	appt.ID = id

	var updated *entity.Appointment
	err := a.Transactor.Atomic(ctx, func(ctx context.Context) error {
		current, err := a.AppointmentRepo.FindOwned(ctx, id, appt.UserID)
		if err != nil {
			return err
		}
		if current == nil {
			return apierror.NotFoundError
		}

		if apierr := ValidateOwnership(ctx, appt.UserID, appt.ClientID, a.ClientRepo.OwnerOf); apierr != nil {
			return apierr
		}

		found, err := a.AppointmentRepo.Replace(ctx, appt)
		if err != nil {
			return err
		}
		if !found {
			return apierror.NotFoundError
		}

		updated, err = a.AppointmentRepo.FindOwned(ctx, id, appt.UserID)
		return err
	})
	if err != nil {
		return nil, fromStoreError("update appointment", err)
	}
	if updated == nil {
		log.Errorf("appointment %d vanished after update", id)
		return nil, apierror.NotFoundError
	}
	return toAppointmentResponse(updated), nil
}

func (a *DefaultAppointmentService) DeleteAppointment(ctx context.Context, id, userID int64) apierror.ErrorResponse {
	found, err := a.AppointmentRepo.Delete(ctx, id, userID)
	if err != nil {
		return fromStoreError("delete appointment", err)
	}
	if !found {
		return apierror.NotFoundError
	}
	return nil
}

// fromRequest runs the checks that need no store access.
func (a *DefaultAppointmentService) fromRequest(req *AppointmentRequest) (*entity.Appointment, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if apierr := ValidatePayload(a.Validate, req); apierr != nil {
		return nil, apierr
	}

	start, end, apierr := ParseTimeRange(req.StartAt, req.EndAt)
	if apierr != nil {
		return nil, apierr
	}

	status := entity.AppointmentStatus(req.Status)
	if status == "" {
		status = entity.StatusScheduled
	}

	return &entity.Appointment{
		UserID:   req.UserID,
		ClientID: req.ClientID,
		StartAt:  start,
		EndAt:    end,
		Status:   status,
		Title:    req.Title,
		Notes:    req.Notes,
	}, nil
}

func toAppointmentResponse(appt *entity.Appointment) *AppointmentResponse {
	return &AppointmentResponse{
		ID:        appt.ID,
		UserID:    appt.UserID,
		ClientID:  appt.ClientID,
		StartAt:   utils.FormatTime(appt.StartAt),
		EndAt:     utils.FormatTime(appt.EndAt),
		Status:    string(appt.Status),
		Title:     appt.Title,
		Notes:     appt.Notes,
		CreatedAt: utils.FormatTime(appt.CreatedAt),
		UpdatedAt: utils.FormatTime(appt.UpdatedAt),
	}
}
