package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/campushub/campus-hub-api/internal/models"
	"github.com/campushub/campus-hub-api/pkg/export"
	appErrors "github.com/campushub/campus-hub-api/pkg/errors"
)

type exportStudentLister interface {
	List(ctx context.Context) ([]models.Student, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	RenderLandscape(data export.Dataset, title string) ([]byte, error)
}

// ExportFile is a rendered export ready to stream to the client.
type ExportFile struct {
	Content     []byte
	ContentType string
	Filename    string
}

// ExportService renders the student roster as CSV or PDF for download.
type ExportService struct {
	students exportStudentLister
	csv      csvRenderer
	pdf      pdfRenderer
	logger   *zap.Logger
	now      func() time.Time
}

// NewExportService constructs an ExportService.
func NewExportService(students exportStudentLister, csv csvRenderer, pdf pdfRenderer, logger *zap.Logger) *ExportService {
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{students: students, csv: csv, pdf: pdf, logger: logger, now: time.Now}
}

// StudentRoster renders all students in the requested format, "csv" or
// "pdf".
func (s *ExportService) StudentRoster(ctx context.Context, format string) (*ExportFile, error) {
	students, err := s.students.List(ctx)
	if err != nil {
		return nil, storeFailure(err, "failed to list students")
	}
	dataset := studentDataset(students)
	stamp := s.now().Format("2006-01-02")

	switch format {
	case "csv":
		content, err := s.csv.Render(dataset)
		if err != nil {
			return nil, storeFailure(err, "failed to render csv")
		}
		return &ExportFile{
			Content:     content,
			ContentType: "text/csv",
			Filename:    fmt.Sprintf("students-%s.csv", stamp),
		}, nil
	case "pdf":
		content, err := s.pdf.RenderLandscape(dataset, "Student Roster")
		if err != nil {
			return nil, storeFailure(err, "failed to render pdf")
		}
		return &ExportFile{
			Content:     content,
			ContentType: "application/pdf",
			Filename:    fmt.Sprintf("students-%s.pdf", stamp),
		}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
}

func studentDataset(students []models.Student) export.Dataset {
	headers := []string{"First Name", "Last Name", "Email", "Student ID", "Major", "Date of Birth", "Phone", "Address"}
	rows := make([]map[string]string, 0, len(students))
	for _, student := range students {
		rows = append(rows, map[string]string{
			"First Name":    student.FirstName,
			"Last Name":     student.LastName,
			"Email":         student.Email,
			"Student ID":    student.StudentNumber,
			"Major":         student.Major,
			"Date of Birth": student.DateOfBirth,
			"Phone":         student.PhoneNumber,
			"Address":       student.Address,
		})
	}
	return export.Dataset{Headers: headers, Rows: rows}
}
