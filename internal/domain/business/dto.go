package business

import (
	"github.com/crazybass81/DOT-V0.1-sub002/internal/domain/attendance"
	"github.com/crazybass81/DOT-V0.1-sub002/internal/domain/user"
)

type SummaryStats struct {
	Total        int `json:"total"`
	CheckedIn    int `json:"checked_in"`
	OnBreak      int `json:"on_break"`
	NotCheckedIn int `json:"not_checked_in"`
}

type EmployeeStatus struct {
	UserID string            `json:"user_id"`
	Name   string            `json:"name"`
	Role   user.Role         `json:"role"`
	Status attendance.Status `json:"status"`
}

type SummaryResponse struct {
	BusinessID string           `json:"business_id"`
	WorkDate   string           `json:"work_date"`
	Stats      SummaryStats     `json:"stats"`
	Employees  []EmployeeStatus `json:"employees"`
}

type QRTokenResponse struct {
	Token            string `json:"token"`
	BusinessID       string `json:"business_id"`
	ExpiresInSeconds int    `json:"expires_in_seconds"`
}
