package entity

import "time"

type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusCanceled  AppointmentStatus = "canceled"
	StatusDone      AppointmentStatus = "done"
)

// Valid reports whether s is one of the known statuses. Any status may
// follow any other, there is no transition table.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case StatusScheduled, StatusCanceled, StatusDone:
		return true
	}
	return false
}

type Appointment struct {
	ID        int64             `gorm:"primaryKey"`
	UserID    int64             `gorm:"not null"` // References: users(id)
	ClientID  *int64            // References: clients(id), owned by UserID
	StartAt   time.Time         `gorm:"not null"`
	EndAt     time.Time         `gorm:"not null"`
	Status    AppointmentStatus `gorm:"not null"`
	Title     *string
	Notes     *string
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// AppointmentWithClient is an appointment row joined with its client's name.
type AppointmentWithClient struct {
	Appointment
	ClientName *string
}

// AppointmentFilter scopes an appointment listing. From and To, when set,
// bound StartAt as [From, To).
type AppointmentFilter struct {
	UserID int64
	From   *time.Time
	To     *time.Time
	Limit  int
}
