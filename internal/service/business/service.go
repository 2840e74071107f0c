package business

import (
	"context"
	"fmt"
	"time"

	"github.com/crazybass81/DOT-V0.1-sub002/internal/domain/attendance"
	"github.com/crazybass81/DOT-V0.1-sub002/internal/domain/business"
	"github.com/crazybass81/DOT-V0.1-sub002/internal/pkg/qrtoken"
	"github.com/crazybass81/DOT-V0.1-sub002/internal/service/access"
)

type ServiceImpl struct {
	businessRepo   business.Repository
	attendanceRepo attendance.Repository
	tokens         *qrtoken.Codec
	gate           access.Gate

	now func() time.Time
}

// NewService wires the manager-facing business operations.
func NewService(
	businessRepo business.Repository,
	attendanceRepo attendance.Repository,
	tokens *qrtoken.Codec,
	gate access.Gate,
) business.Service {
	return &ServiceImpl{
		businessRepo:   businessRepo,
		attendanceRepo: attendanceRepo,
		tokens:         tokens,
		gate:           gate,
		now:            time.Now,
	}
}

// GetSummary implements business.Service. Members who checked out already
// are counted as not checked in for the stats, but their individual status
// still reads checked_out.
func (s *ServiceImpl) GetSummary(ctx context.Context, requesterID, businessID string) (business.SummaryResponse, error) {
	if err := s.gate.RequireManager(ctx, requesterID, businessID); err != nil {
		return business.SummaryResponse{}, err
	}

	biz, err := s.businessRepo.GetByID(ctx, businessID)
	if err != nil {
		return business.SummaryResponse{}, err
	}

	members, err := s.businessRepo.ListMembers(ctx, businessID)
	if err != nil {
		return business.SummaryResponse{}, fmt.Errorf("failed to list members: %w", err)
	}

	workDate := biz.WorkDate(s.now().UTC())
	statuses, err := s.attendanceRepo.GetDayStatuses(ctx, businessID, workDate)
	if err != nil {
		return business.SummaryResponse{}, fmt.Errorf("failed to get day statuses: %w", err)
	}

	resp := business.SummaryResponse{
		BusinessID: businessID,
		WorkDate:   workDate,
		Employees:  make([]business.EmployeeStatus, 0, len(members)),
	}

	for _, m := range members {
		status, ok := statuses[m.UserID]
		if !ok {
			status = attendance.StatusNotCheckedIn
		}

		resp.Employees = append(resp.Employees, business.EmployeeStatus{
			UserID: m.UserID,
			Name:   m.Name,
			Role:   m.Role,
			Status: status,
		})

		resp.Stats.Total++
		switch status {
		case attendance.StatusCheckedIn:
			resp.Stats.CheckedIn++
		case attendance.StatusOnBreak:
			resp.Stats.OnBreak++
		default:
			resp.Stats.NotCheckedIn++
		}
	}

	return resp, nil
}

// IssueQRToken implements business.Service.
func (s *ServiceImpl) IssueQRToken(ctx context.Context, requesterID, businessID string) (business.QRTokenResponse, error) {
	if err := s.gate.RequireManager(ctx, requesterID, businessID); err != nil {
		return business.QRTokenResponse{}, err
	}

	biz, err := s.businessRepo.GetByID(ctx, businessID)
	if err != nil {
		return business.QRTokenResponse{}, err
	}

	token, err := s.tokens.Issue(biz.ID, s.now().UTC())
	if err != nil {
		return business.QRTokenResponse{}, fmt.Errorf("failed to issue qr token: %w", err)
	}

	return business.QRTokenResponse{
		Token:            token,
		BusinessID:       biz.ID,
		ExpiresInSeconds: int(s.tokens.TTL().Seconds()),
	}, nil
}
