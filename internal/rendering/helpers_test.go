package rendering

import (
	"fmt"
	"strings"
	"testing"

	"github.com/jonathan/resume-builder/internal/catalog"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/require"
)

// janeDoe is the minimal resume used across the end-to-end scenarios.
func janeDoe(templateID string) *types.ResumeData {
	return &types.ResumeData{
		PersonalInfo: types.PersonalInfo{
			FirstName: "Jane",
			LastName:  "Doe",
			Email:     "jane@x.com",
			Phone:     "555-0100",
		},
		Experience: []types.Experience{
			{Position: "Engineer", Company: "Acme", StartDate: "2020", Current: true},
		},
		Education:  []types.Education{},
		Skills:     []string{"Go", "SQL"},
		TemplateID: templateID,
	}
}

// fullResume exercises every optional field.
func fullResume(templateID string) *types.ResumeData {
	return &types.ResumeData{
		PersonalInfo: types.PersonalInfo{
			FirstName: "Sam",
			LastName:  "Rivera",
			Email:     "sam@example.com",
			Phone:     "555-0199",
			Address:   "Lisbon, Portugal",
			LinkedIn:  "linkedin.com/in/samrivera",
		},
		Summary: "Backend engineer focused on reliable data systems.",
		Experience: []types.Experience{
			{Position: "Staff Engineer", Company: "Globex", Location: "Remote", StartDate: "Jan 2021", EndDate: "Dec 2030", Current: true, Description: "Led the storage team."},
			{Position: "Engineer", Company: "Initech", StartDate: "2016", EndDate: "June 2020", Description: "Built billing pipelines."},
		},
		Education: []types.Education{
			{School: "State University", Degree: "BSc", FieldOfStudy: "Computer Science", StartDate: "2012", EndDate: "2016", GPA: "3.8"},
		},
		Skills:     []string{"Go", "PostgreSQL", "Kafka", "Kubernetes", "Terraform", "gRPC", "Python"},
		TemplateID: templateID,
	}
}

// longResume overflows a single A4 page.
func longResume(templateID string) *types.ResumeData {
	r := fullResume(templateID)
	r.Experience = nil
	for i := 0; i < 30; i++ {
		r.Experience = append(r.Experience, types.Experience{
			Position:    fmt.Sprintf("Engineer %d", i),
			Company:     fmt.Sprintf("Company %d", i),
			StartDate:   "2010",
			EndDate:     "2011",
			Description: strings.Repeat("Delivered measurable improvements to service latency. ", 4),
		})
	}
	return r
}

func newTestRenderer(t *testing.T, opts ...Option) *Renderer {
	t.Helper()
	r, err := New(catalog.Default(), opts...)
	require.NoError(t, err)
	return r
}

func uncompressed() Option {
	return WithPDFOptions(PDFOptions{Compress: false, Creator: "test"})
}
