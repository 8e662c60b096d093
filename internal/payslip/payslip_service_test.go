package payslip_test

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"ess-api/internal/employee"
	"ess-api/internal/payslip"
	paysliperrors "ess-api/internal/payslip/errors"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeEmployeeRepository struct {
	findPayFieldsFn func(ctx context.Context, empID int) (employee.PayFields, error)
}

func (f *fakeEmployeeRepository) WithTx(tx *sql.Tx) employee.Repository {
	return f
}

func (f *fakeEmployeeRepository) FindProfileByID(ctx context.Context, empID int) (*employee.ProfileRow, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepository) UpdateImage(ctx context.Context, empID int, filename string) (int64, error) {
	return 0, nil
}

func (f *fakeEmployeeRepository) UpdateContact(ctx context.Context, empID int, fields map[string]any) (int64, error) {
	return 0, nil
}

func (f *fakeEmployeeRepository) FindPayFields(ctx context.Context, empID int) (employee.PayFields, error) {
	if f.findPayFieldsFn != nil {
		return f.findPayFieldsFn(ctx, empID)
	}
	return employee.PayFields{}, gorm.ErrRecordNotFound
}

func payRepo(t *testing.T) *fakeEmployeeRepository {
	t.Helper()
	return &fakeEmployeeRepository{
		findPayFieldsFn: func(ctx context.Context, empID int) (employee.PayFields, error) {
			assert.Equal(t, 42, empID)
			return employee.PayFields{
				EmpID:     42,
				FirstName: "JOHN",
				LastName:  "DOE",
				DailyRate: 650,
				Cola:      50,
			}, nil
		},
	}
}

func TestPayslipService_List(t *testing.T) {
	ctx := context.Background()
	svc := payslip.NewService(payRepo(t), nil)

	resp, err := svc.List(ctx, 42, 0)

	assert.NoError(t, err)
	assert.Equal(t, 42, resp.EmpID)
	assert.Equal(t, "John Doe", resp.EmployeeName)
	assert.Len(t, resp.Payslips, 12)

	for _, p := range resp.Payslips {
		assert.Equal(t, payslip.WorkingDaysPerHalf, p.WorkingDays)
		assert.Equal(t, 650*10, p.BasicPay)
		assert.Equal(t, 50*10, p.ColaPay)
		assert.Equal(t, 7000, p.GrossPay)
		assert.Equal(t, p.GrossPay, p.NetPay)
		assert.Regexp(t, `^\d{4}-\d{2}-[12]$`, p.Period)
		assert.True(t, p.StartDate < p.EndDate)
	}

	// Most recent period first.
	assert.True(t, resp.Payslips[0].StartDate > resp.Payslips[11].StartDate)
}

func TestPayslipService_List_MonthsClamped(t *testing.T) {
	ctx := context.Background()
	svc := payslip.NewService(payRepo(t), nil)

	resp, err := svc.List(ctx, 42, 1)
	assert.NoError(t, err)
	assert.Len(t, resp.Payslips, 2)

	resp, err = svc.List(ctx, 42, 1000)
	assert.NoError(t, err)
	assert.Len(t, resp.Payslips, 48)
}

func TestPayslipService_List_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("missing bio_id", func(t *testing.T) {
		svc := payslip.NewService(&fakeEmployeeRepository{}, nil)
		_, err := svc.List(ctx, 0, 6)
		assert.ErrorIs(t, err, paysliperrors.ErrMissingBioID)
	})

	t.Run("unknown employee", func(t *testing.T) {
		svc := payslip.NewService(&fakeEmployeeRepository{}, nil)
		_, err := svc.List(ctx, 999, 6)
		assert.ErrorIs(t, err, paysliperrors.ErrEmployeeNotFound)
	})
}

func TestPayslipService_Download(t *testing.T) {
	ctx := context.Background()
	svc := payslip.NewService(payRepo(t), nil)

	pdf, err := svc.Download(ctx, 42, "2024-03-2")

	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(pdf), "%PDF-1.4"))
	assert.Contains(t, string(pdf), "John Doe")
	assert.Contains(t, string(pdf), "Mar 16-31, 2024")
}

func TestPayslipService_Download_InvalidPeriod(t *testing.T) {
	ctx := context.Background()
	svc := payslip.NewService(payRepo(t), nil)

	for _, period := range []string{"", "2024-03", "2024-03-3", "march-1-2024", "2024-13-1"} {
		_, err := svc.Download(ctx, 42, period)
		assert.ErrorIs(t, err, paysliperrors.ErrInvalidPeriod, "period %q", period)
	}
}
