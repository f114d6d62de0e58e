package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/aGautrain/legeclair/internal/client/models"
)

// Audits dispatches the audits view subcommands:
//
//	audits list                     — fetch and print the current page
//	audits get <id>                 — fetch and print a single audit
//	audits web <url>                — audit a public page
//	audits file <path>              — audit a local document
//	audits status <id> <status>     — change an audit's lifecycle status
//	audits version <id>             — re-run with feedback as a new version
//	audits delete <id>              — delete one audit
//	audits select <id>              — toggle selection of an audit
//	audits selectall | clearsel     — select the visible page / clear selection
//	audits bulkdelete               — delete every selected audit
//	audits filter [k=v ...] | clear — set filters (search, source, type,
//	                                  status, severity, category, from, to)
//	audits sort <key> [asc|desc]    — set the sort criteria
//	audits page <n> | size <n>      — pagination
//	audits stats [server]           — local or account-wide counters
func (a *App) Audits(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printlnFn("Usage: audits <list|get|web|file|status|version|delete|select|selectall|clearsel|bulkdelete|filter|sort|page|size|stats>")
		return nil
	}

	switch args[0] {
	case "list":
		if err := a.audits.Fetch(ctx); err != nil {
			printlnFn("Error:", a.audits.Error())
			return err
		}
		renderAudits(os.Stdout, a.audits)

	case "get":
		if len(args) < 2 {
			printlnFn("Usage: audits get <id>")
			return nil
		}
		audit, err := a.audits.FetchOne(ctx, args[1])
		if err != nil {
			printlnFn("Error:", a.audits.Error())
			return err
		}
		renderAudit(os.Stdout, audit)

	case "web":
		if len(args) < 2 {
			printlnFn("Usage: audits web <url>")
			return nil
		}
		return a.createWebAudit(ctx, args[1])

	case "file":
		if len(args) < 2 {
			printlnFn("Usage: audits file <path>")
			return nil
		}
		return a.createDocumentAudit(ctx, args[1])

	case "status":
		if len(args) < 3 {
			printlnFn("Usage: audits status <id> <PENDING|IN_PROGRESS|COMPLETED|REVIEWED|ARCHIVED>")
			return nil
		}
		status := models.AuditStatus(strings.ToUpper(args[2]))
		audit, err := a.audits.Update(ctx, args[1], models.AuditUpdate{Status: &status})
		if err != nil {
			printlnFn("Error:", a.audits.Error())
			return err
		}
		renderAudit(os.Stdout, audit)

	case "version":
		if len(args) < 2 {
			printlnFn("Usage: audits version <id>")
			return nil
		}
		return a.createAuditVersion(ctx, args[1])

	case "delete":
		if len(args) < 2 {
			printlnFn("Usage: audits delete <id>")
			return nil
		}
		if err := a.audits.Delete(ctx, args[1]); err != nil {
			printlnFn("Error:", a.audits.Error())
			return err
		}
		printlnFn("Deleted", args[1])

	case "select":
		if len(args) < 2 {
			printlnFn("Usage: audits select <id>")
			return nil
		}
		a.audits.ToggleSelect(args[1])
		printlnFn(len(a.audits.SelectedIDs()), "selected")

	case "selectall":
		a.audits.SelectAll()
		printlnFn(len(a.audits.SelectedIDs()), "selected")

	case "clearsel":
		a.audits.ClearSelection()

	case "bulkdelete":
		ids := a.audits.SelectedIDs()
		if len(ids) == 0 {
			printlnFn("Nothing selected")
			return nil
		}
		n, err := a.audits.BulkDelete(ctx, ids)
		if err != nil {
			printlnFn("Error:", a.audits.Error())
			return err
		}
		printlnFn("Deleted", n, "audits")

	case "filter":
		f, err := parseAuditFilters(args[1:])
		if err != nil {
			printlnFn("Error:", err.Error())
			return nil
		}
		a.audits.SetFilters(f)
		renderAudits(os.Stdout, a.audits)

	case "sort":
		if len(args) < 2 {
			printlnFn("Usage: audits sort <key> [asc|desc]")
			return nil
		}
		a.audits.SetSort(parseSort(args[1:]))
		renderAudits(os.Stdout, a.audits)

	case "page":
		n, ok := parsePositiveInt(args[1:])
		if !ok {
			printlnFn("Usage: audits page <n>")
			return nil
		}
		a.audits.SetPage(n)
		renderAudits(os.Stdout, a.audits)

	case "size":
		n, ok := parsePositiveInt(args[1:])
		if !ok {
			printlnFn("Usage: audits size <n>")
			return nil
		}
		a.audits.SetPageSize(n)
		renderAudits(os.Stdout, a.audits)

	case "stats":
		if len(args) > 1 && args[1] == "server" {
			st, err := a.audits.RemoteStats(ctx)
			if err != nil {
				printlnFn("Error:", a.audits.Error())
				return err
			}
			renderAuditStats(os.Stdout, *st)
			return nil
		}
		renderAuditStats(os.Stdout, a.audits.Stats())

	default:
		printlnFn("Unknown audits command:", args[0])
	}
	return nil
}

// createWebAudit prompts for the document type and submits a WEB audit.
func (a *App) createWebAudit(ctx context.Context, url string) error {
	cfg, err := a.promptAuditCommon(ctx)
	if err != nil {
		return err
	}
	cfg.Source = models.WebSource{URL: url}

	audit, err := a.audits.Create(ctx, cfg)
	if err != nil {
		printlnFn("Error:", a.audits.Error())
		return err
	}
	renderAudit(os.Stdout, audit)
	return nil
}

// createDocumentAudit uploads a local file as a DOCUMENT audit.
func (a *App) createDocumentAudit(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		printlnFn("Cannot open", path)
		return err
	}
	defer f.Close()

	cfg, err := a.promptAuditCommon(ctx)
	if err != nil {
		return err
	}
	cfg.Source = models.DocumentSource{FileName: filepath.Base(path), Content: f}

	audit, err := a.audits.Create(ctx, cfg)
	if err != nil {
		printlnFn("Error:", a.audits.Error())
		return err
	}
	renderAudit(os.Stdout, audit)
	return nil
}

func (a *App) promptAuditCommon(ctx context.Context) (models.AuditCreation, error) {
	var cfg models.AuditCreation
	name, err := getSimpleText(a.reader, "Audit name (empty for server default)", os.Stdout)
	if err != nil {
		return cfg, err
	}
	typ, err := getSimpleText(a.reader, "Document type (TOS, PRIVACY_POLICY, CGU)", os.Stdout)
	if err != nil {
		return cfg, err
	}
	cfg.Name = name
	cfg.DocumentType = models.DocumentType(strings.ToUpper(typ))
	return cfg, nil
}

// createAuditVersion collects feedback and extra context, then asks the
// server for the next version of the audit.
func (a *App) createAuditVersion(ctx context.Context, id string) error {
	feedback, err := GetMultiline(a.reader, "Feedback for the next version:", os.Stdout)
	if err != nil {
		return err
	}
	extra, err := GetMultiline(a.reader, "Extra context (optional):", os.Stdout)
	if err != nil {
		return err
	}

	audit, err := a.audits.NewVersion(ctx, id, feedback, extra)
	if err != nil {
		printlnFn("Error:", a.audits.Error())
		return err
	}
	renderAudit(os.Stdout, audit)
	return nil
}

// parseAuditFilters builds a filter set from "k=v" tokens. The token
// "clear" (or no tokens) resets all filters.
func parseAuditFilters(args []string) (models.AuditFilters, error) {
	var f models.AuditFilters
	if len(args) == 0 || args[0] == "clear" {
		return f, nil
	}
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return f, errUsage("expected key=value, got " + arg)
		}
		switch key {
		case "search":
			f.Search = value
		case "source":
			f.SourceType = models.SourceType(strings.ToUpper(value))
		case "type":
			f.DocumentType = models.DocumentType(strings.ToUpper(value))
		case "status":
			f.Status = models.AuditStatus(strings.ToUpper(value))
		case "severity":
			f.Severity = models.Severity(strings.ToUpper(value))
		case "category":
			f.Category = models.Category(strings.ToUpper(value))
		case "from":
			t, err := parseDay(value)
			if err != nil {
				return f, err
			}
			f.DateFrom = &t
		case "to":
			t, err := parseDay(value)
			if err != nil {
				return f, err
			}
			f.DateTo = &t
		default:
			return f, errUsage("unknown filter " + key)
		}
	}
	return f, nil
}
