package models

import "time"

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusCancelled  TaskStatus = "cancelled"
	TaskStatusOverdue    TaskStatus = "overdue"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted,
		TaskStatusCancelled, TaskStatusOverdue:
		return true
	}
	return false
}

type Task struct {
	ID          uint       `gorm:"primaryKey"`
	Title       string     `gorm:"size:100;not null"`
	Description string     `gorm:"size:255"`
	AssignedTo  uint       `gorm:"index;not null"`
	Status      TaskStatus `gorm:"size:20;not null;default:pending"`
	DueDate     *time.Time

	CreatedBy uint
	CreatedAt time.Time
	UpdatedAt time.Time
}
