package payslip

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ess-api/internal/employee"
	paysliperrors "ess-api/internal/payslip/errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

const (
	// WorkingDaysPerHalf fixes each semi-monthly half at ten payable days.
	WorkingDaysPerHalf = 10

	defaultMonths = 6
	maxMonths     = 24
	pdfCacheTTL   = 30 * time.Minute
)

var titleCaser = cases.Title(language.English)

type Service interface {
	List(ctx context.Context, bioID, months int) (ListResponse, error)
	Download(ctx context.Context, bioID int, period string) ([]byte, error)
}

type service struct {
	employees employee.Repository
	rdb       *redis.Client
	sf        *singleflight.Group
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(employees employee.Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("payslip.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payslip.service")
	}
	return &service{
		employees: employees,
		rdb:       rdb,
		sf:        &singleflight.Group{},
		now:       time.Now,
		logger:    l,
	}
}

func (s *service) List(ctx context.Context, bioID, months int) (ListResponse, error) {
	if bioID == 0 {
		return ListResponse{}, paysliperrors.ErrMissingBioID
	}
	if months <= 0 {
		months = defaultMonths
	}
	if months > maxMonths {
		months = maxMonths
	}

	pay, err := s.employees.FindPayFields(ctx, bioID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ListResponse{}, paysliperrors.ErrEmployeeNotFound
		}
		s.logger.Error("payslip list lookup failed", zap.Int("bio_id", bioID), zap.Error(err))
		return ListResponse{}, err
	}

	summaries := buildPeriods(s.now().UTC(), months, pay)

	return ListResponse{
		EmpID:        pay.EmpID,
		EmployeeName: displayName(pay),
		Payslips:     summaries,
	}, nil
}

func (s *service) Download(ctx context.Context, bioID int, period string) ([]byte, error) {
	if bioID == 0 {
		return nil, paysliperrors.ErrMissingBioID
	}

	start, err := parsePeriod(period)
	if err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf("payslip:pdf:%d:%s", bioID, period)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
			return cached, nil
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		pay, err := s.employees.FindPayFields(ctx, bioID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, paysliperrors.ErrEmployeeNotFound
			}
			return nil, err
		}

		summary := buildSummary(start, pay)
		pdf, err := buildPayslipPDF(payslipLines(pay, summary))
		if err != nil {
			return nil, err
		}

		if s.rdb != nil {
			s.rdb.Set(ctx, cacheKey, pdf, pdfCacheTTL)
		}

		return pdf, nil
	})

	if err != nil {
		return nil, err
	}

	return v.([]byte), nil
}

// buildPeriods walks backwards from the half that precedes now, emitting
// two halves per month for the requested window, most recent first.
func buildPeriods(now time.Time, months int, pay employee.PayFields) []Summary {
	summaries := make([]Summary, 0, months*2)

	cursor := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	if now.Day() > 15 {
		cursor = cursor.AddDate(0, 0, 15)
	} else {
		cursor = cursor.AddDate(0, -1, 15)
	}

	for len(summaries) < months*2 {
		summaries = append(summaries, buildSummary(cursor, pay))
		if cursor.Day() == 1 {
			cursor = cursor.AddDate(0, -1, 15)
		} else {
			cursor = time.Date(cursor.Year(), cursor.Month(), 1, 0, 0, 0, 0, time.UTC)
		}
	}

	return summaries
}

func buildSummary(start time.Time, pay employee.PayFields) Summary {
	var end time.Time
	var half int
	if start.Day() == 1 {
		end = start.AddDate(0, 0, 14)
		half = 1
	} else {
		end = start.AddDate(0, 1, 0)
		end = time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
		half = 2
	}

	basic := pay.DailyRate * WorkingDaysPerHalf
	cola := pay.Cola * WorkingDaysPerHalf
	gross := basic + cola

	return Summary{
		Period:      fmt.Sprintf("%04d-%02d-%d", start.Year(), int(start.Month()), half),
		Label:       fmt.Sprintf("%s %d-%d, %d", start.Month().String()[:3], start.Day(), end.Day(), start.Year()),
		StartDate:   start.Format("2006-01-02"),
		EndDate:     end.Format("2006-01-02"),
		WorkingDays: WorkingDaysPerHalf,
		DailyRate:   pay.DailyRate,
		Cola:        pay.Cola,
		BasicPay:    basic,
		ColaPay:     cola,
		GrossPay:    gross,
		NetPay:      gross,
	}
}

// parsePeriod accepts "YYYY-MM-1" or "YYYY-MM-2" and returns the half's
// start date.
func parsePeriod(period string) (time.Time, error) {
	parts := strings.Split(strings.TrimSpace(period), "-")
	if len(parts) != 3 {
		return time.Time{}, paysliperrors.ErrInvalidPeriod
	}

	month, err := time.Parse("2006-01", parts[0]+"-"+parts[1])
	if err != nil {
		return time.Time{}, paysliperrors.ErrInvalidPeriod
	}

	switch parts[2] {
	case "1":
		return month, nil
	case "2":
		return month.AddDate(0, 0, 15), nil
	default:
		return time.Time{}, paysliperrors.ErrInvalidPeriod
	}
}

func payslipLines(pay employee.PayFields, summary Summary) []string {
	return []string{
		"PAYSLIP",
		fmt.Sprintf("Employee: %s (#%d)", displayName(pay), pay.EmpID),
		fmt.Sprintf("Period: %s", summary.Label),
		fmt.Sprintf("Working days: %d", summary.WorkingDays),
		"",
		fmt.Sprintf("Basic pay (%d/day): %d", summary.DailyRate, summary.BasicPay),
		fmt.Sprintf("COLA (%d/day): %d", summary.Cola, summary.ColaPay),
		fmt.Sprintf("Gross pay: %d", summary.GrossPay),
		fmt.Sprintf("Net pay: %d", summary.NetPay),
	}
}

func displayName(pay employee.PayFields) string {
	name := strings.TrimSpace(pay.FirstName + " " + pay.LastName)
	return titleCaser.String(strings.ToLower(name))
}
