package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"vantay/cmd/internal/domain/entity"
)

type DefaultAppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) *DefaultAppointmentRepository {
	return &DefaultAppointmentRepository{db: db}
}

// FindByFilter lists the user's appointments, latest start first, joined
// with the client name when a client is set.
func (a *DefaultAppointmentRepository) FindByFilter(ctx context.Context, f entity.AppointmentFilter) ([]*entity.AppointmentWithClient, error) {
	q := conn(ctx, a.db).
		Table("appointments").
		Select("appointments.*, clients.name AS client_name").
		Joins("LEFT JOIN clients ON clients.id = appointments.client_id").
		Where("appointments.user_id = ?", f.UserID)

	if f.From != nil {
		q = q.Where("appointments.start_at >= ?", f.From.UTC())
	}
	if f.To != nil {
		q = q.Where("appointments.start_at < ?", f.To.UTC())
	}

	var appts []*entity.AppointmentWithClient
	err := q.Order("appointments.start_at desc").
		Order("appointments.id desc").
		Limit(f.Limit).
		Scan(&appts).Error
	return appts, err
}

func (a *DefaultAppointmentRepository) FindOwned(ctx context.Context, id, userID int64) (*entity.Appointment, error) {
	var appt entity.Appointment
	err := conn(ctx, a.db).Where("id = ? AND user_id = ?", id, userID).First(&appt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &appt, nil
}

func (a *DefaultAppointmentRepository) Create(ctx context.Context, appt *entity.Appointment) error {
	return translate(conn(ctx, a.db).Create(appt).Error)
}

// Replace overwrites every mutable column of the appointment matching
// {ID, UserID}. It returns false when there is no such row.
func (a *DefaultAppointmentRepository) Replace(ctx context.Context, appt *entity.Appointment) (bool, error) {
	res := conn(ctx, a.db).Model(&entity.Appointment{}).
		Where("id = ? AND user_id = ?", appt.ID, appt.UserID).
		Updates(map[string]any{
			"client_id":  appt.ClientID,
			"start_at":   appt.StartAt,
			"end_at":     appt.EndAt,
			"status":     appt.Status,
			"title":      appt.Title,
			"notes":      appt.Notes,
			"updated_at": a.db.NowFunc(),
		})
	if res.Error != nil {
		return false, translate(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (a *DefaultAppointmentRepository) Delete(ctx context.Context, id, userID int64) (bool, error) {
	res := conn(ctx, a.db).Where("id = ? AND user_id = ?", id, userID).Delete(&entity.Appointment{})
	if res.Error != nil {
		return false, translate(res.Error)
	}
	return res.RowsAffected > 0, nil
}
