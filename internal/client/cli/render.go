package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/aGautrain/legeclair/internal/client/models"
	"github.com/aGautrain/legeclair/internal/client/store"
)

var (
	headerColor   = color.New(color.Bold)
	dimColor      = color.New(color.Faint)
	errorColor    = color.New(color.FgRed)
	warnColor     = color.New(color.FgYellow)
	okColor       = color.New(color.FgGreen)
	criticalColor = color.New(color.FgRed, color.Bold)
)

func renderUser(w io.Writer, u *models.User) {
	if u == nil {
		fmt.Fprintln(w, "Not logged in")
		return
	}
	headerColor.Fprintln(w, u.FullName())
	fmt.Fprintf(w, "  username: %s\n", u.Username)
	fmt.Fprintf(w, "  email:    %s\n", u.Email)
	fmt.Fprintf(w, "  role:     %s\n", u.Role)
	fmt.Fprintf(w, "  credits:  %d\n", u.Credits)
}

func renderDocuments(w io.Writer, s *store.DocumentStore) {
	page := s.Paginated()
	pg := s.Pagination()

	headerColor.Fprintf(w, "%-26s %-16s %-10s %-4s %s\n", "ID", "TYPE", "STATUS", "VER", "NAME")
	for _, d := range page {
		marker := " "
		if s.Selected(d.ID) {
			marker = "*"
		}
		fmt.Fprintf(w, "%s%-25s %-16s %-10s %-4d %s\n", marker, d.ID, d.Type, d.Status, d.Version, d.Name)
	}
	dimColor.Fprintf(w, "page %d/%d, %d filtered of %d total\n",
		pg.Page, s.TotalPages(), len(s.Filtered()), pg.TotalItems)
}

func renderDocument(w io.Writer, d *models.Document) {
	headerColor.Fprintln(w, d.Name)
	fmt.Fprintf(w, "  id:      %s\n", d.ID)
	fmt.Fprintf(w, "  type:    %s\n", d.Type)
	fmt.Fprintf(w, "  status:  %s\n", d.Status)
	fmt.Fprintf(w, "  version: %d\n", d.Version)
	fmt.Fprintf(w, "  created: %s\n", d.CreatedAt.Format("2006-01-02 15:04"))
	if d.Metadata != nil && d.Metadata.CompanyName != "" {
		fmt.Fprintf(w, "  company: %s\n", d.Metadata.CompanyName)
	}
	if d.Content != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, d.Content)
	}
}

func renderDocumentStats(w io.Writer, st models.DocumentStats) {
	headerColor.Fprintf(w, "%d documents\n", st.Total)
	for typ, n := range st.ByType {
		fmt.Fprintf(w, "  %-16s %d\n", typ, n)
	}
	for status, n := range st.ByStatus {
		fmt.Fprintf(w, "  %-16s %d\n", status, n)
	}
}

func renderAudits(w io.Writer, s *store.AuditStore) {
	page := s.Paginated()
	pg := s.Pagination()

	headerColor.Fprintf(w, "%-26s %-9s %-12s %-4s %-5s %s\n", "ID", "SOURCE", "STATUS", "VER", "CORR", "NAME")
	for _, a := range page {
		marker := " "
		if s.Selected(a.ID) {
			marker = "*"
		}
		fmt.Fprintf(w, "%s%-25s %-9s %-12s %-4d %-5d %s\n",
			marker, a.ID, a.SourceType, a.Status, a.Version, len(a.Corrections), a.Name)
	}
	dimColor.Fprintf(w, "page %d/%d, %d filtered of %d total\n",
		pg.Page, s.TotalPages(), len(s.Filtered()), pg.TotalItems)
}

func renderAudit(w io.Writer, a *models.Audit) {
	headerColor.Fprintln(w, a.Name)
	fmt.Fprintf(w, "  id:      %s\n", a.ID)
	fmt.Fprintf(w, "  source:  %s\n", a.SourceType)
	fmt.Fprintf(w, "  type:    %s\n", a.DocumentType)
	fmt.Fprintf(w, "  status:  %s\n", a.Status)
	fmt.Fprintf(w, "  version: %d\n", a.Version)
	fmt.Fprintf(w, "  created: %s\n", a.CreatedAt.Format("2006-01-02 15:04"))

	for _, c := range a.Corrections {
		fmt.Fprintf(w, "  [%s] %s: ", severityColor(c.Severity).Sprint(c.Severity), c.Category)
		fmt.Fprintf(w, "%q -> %q\n", c.OriginalText, c.CorrectedText)
		if c.Explanation != "" {
			dimColor.Fprintf(w, "      %s\n", c.Explanation)
		}
	}
}

func renderAuditStats(w io.Writer, st models.AuditStats) {
	headerColor.Fprintf(w, "%d audits\n", st.Total)
	for src, n := range st.BySourceType {
		fmt.Fprintf(w, "  %-12s %d\n", src, n)
	}
	for status, n := range st.ByStatus {
		fmt.Fprintf(w, "  %-12s %d\n", status, n)
	}
	for sev, n := range st.BySeverity {
		fmt.Fprintf(w, "  %s %d\n", severityColor(sev).Sprintf("%-12s", sev), n)
	}
}

func severityColor(s models.Severity) *color.Color {
	switch s {
	case models.SeverityCritical:
		return criticalColor
	case models.SeverityHigh:
		return errorColor
	case models.SeverityMedium:
		return warnColor
	default:
		return okColor
	}
}
