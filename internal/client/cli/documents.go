package cli

import (
	"context"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aGautrain/legeclair/internal/client/models"
)

// Documents dispatches the documents view subcommands:
//
//	docs list                      — fetch and print the current page
//	docs get <id>                  — fetch and print a single document
//	docs create                    — interactive generation workflow
//	docs rename <id> <name...>     — rename a document
//	docs status <id> <status>      — change a document's lifecycle status
//	docs delete <id>               — delete one document
//	docs select <id>               — toggle selection of a document
//	docs selectall | clearsel      — select the visible page / clear selection
//	docs bulkdelete                — delete every selected document
//	docs filter [k=v ...] | clear  — set filters (search, type, status, from, to)
//	docs sort <key> [asc|desc]     — set the sort criteria
//	docs page <n> | size <n>       — pagination
//	docs stats [server]            — local or account-wide counters
func (a *App) Documents(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printlnFn("Usage: docs <list|get|create|rename|status|delete|select|selectall|clearsel|bulkdelete|filter|sort|page|size|stats>")
		return nil
	}

	switch args[0] {
	case "list":
		if err := a.docs.Fetch(ctx); err != nil {
			printlnFn("Error:", a.docs.Error())
			return err
		}
		renderDocuments(os.Stdout, a.docs)

	case "get":
		if len(args) < 2 {
			printlnFn("Usage: docs get <id>")
			return nil
		}
		doc, err := a.docs.FetchOne(ctx, args[1])
		if err != nil {
			printlnFn("Error:", a.docs.Error())
			return err
		}
		renderDocument(os.Stdout, doc)

	case "create":
		return a.createDocument(ctx)

	case "rename":
		if len(args) < 3 {
			printlnFn("Usage: docs rename <id> <name>")
			return nil
		}
		name := strings.Join(args[2:], " ")
		doc, err := a.docs.Update(ctx, args[1], models.DocumentUpdate{Name: &name})
		if err != nil {
			printlnFn("Error:", a.docs.Error())
			return err
		}
		renderDocument(os.Stdout, doc)

	case "status":
		if len(args) < 3 {
			printlnFn("Usage: docs status <id> <DRAFT|GENERATED|PUBLISHED|ARCHIVED>")
			return nil
		}
		status := models.DocumentStatus(strings.ToUpper(args[2]))
		doc, err := a.docs.Update(ctx, args[1], models.DocumentUpdate{Status: &status})
		if err != nil {
			printlnFn("Error:", a.docs.Error())
			return err
		}
		renderDocument(os.Stdout, doc)

	case "delete":
		if len(args) < 2 {
			printlnFn("Usage: docs delete <id>")
			return nil
		}
		if err := a.docs.Delete(ctx, args[1]); err != nil {
			printlnFn("Error:", a.docs.Error())
			return err
		}
		printlnFn("Deleted", args[1])

	case "select":
		if len(args) < 2 {
			printlnFn("Usage: docs select <id>")
			return nil
		}
		a.docs.ToggleSelect(args[1])
		printlnFn(len(a.docs.SelectedIDs()), "selected")

	case "selectall":
		a.docs.SelectAll()
		printlnFn(len(a.docs.SelectedIDs()), "selected")

	case "clearsel":
		a.docs.ClearSelection()

	case "bulkdelete":
		ids := a.docs.SelectedIDs()
		if len(ids) == 0 {
			printlnFn("Nothing selected")
			return nil
		}
		n, err := a.docs.BulkDelete(ctx, ids)
		if err != nil {
			printlnFn("Error:", a.docs.Error())
			return err
		}
		printlnFn("Deleted", n, "documents")

	case "filter":
		f, err := parseDocumentFilters(args[1:])
		if err != nil {
			printlnFn("Error:", err.Error())
			return nil
		}
		a.docs.SetFilters(f)
		renderDocuments(os.Stdout, a.docs)

	case "sort":
		if len(args) < 2 {
			printlnFn("Usage: docs sort <key> [asc|desc]")
			return nil
		}
		a.docs.SetSort(parseSort(args[1:]))
		renderDocuments(os.Stdout, a.docs)

	case "page":
		n, ok := parsePositiveInt(args[1:])
		if !ok {
			printlnFn("Usage: docs page <n>")
			return nil
		}
		a.docs.SetPage(n)
		renderDocuments(os.Stdout, a.docs)

	case "size":
		n, ok := parsePositiveInt(args[1:])
		if !ok {
			printlnFn("Usage: docs size <n>")
			return nil
		}
		a.docs.SetPageSize(n)
		renderDocuments(os.Stdout, a.docs)

	case "stats":
		if len(args) > 1 && args[1] == "server" {
			st, err := a.docs.RemoteStats(ctx)
			if err != nil {
				printlnFn("Error:", a.docs.Error())
				return err
			}
			renderDocumentStats(os.Stdout, *st)
			return nil
		}
		renderDocumentStats(os.Stdout, a.docs.Stats())

	default:
		printlnFn("Unknown docs command:", args[0])
	}
	return nil
}

// createDocument walks through the generation prompts and submits the config.
func (a *App) createDocument(ctx context.Context) error {
	typ, err := getSimpleText(a.reader, "Document type (TOS, PRIVACY_POLICY, CGU)", os.Stdout)
	if err != nil {
		return err
	}
	company, err := getSimpleText(a.reader, "Company name", os.Stdout)
	if err != nil {
		return err
	}
	domain, err := getSimpleText(a.reader, "Domain (e.g. example.org)", os.Stdout)
	if err != nil {
		return err
	}
	jurisdiction, err := getSimpleText(a.reader, "Jurisdiction (e.g. FR, EU)", os.Stdout)
	if err != nil {
		return err
	}
	custom, err := GetKeyValues(a.reader, os.Stdout)
	if err != nil {
		return err
	}

	doc, err := a.docs.Create(ctx, models.GenerationConfig{
		Type:         models.DocumentType(strings.ToUpper(typ)),
		CompanyName:  company,
		Domain:       domain,
		Jurisdiction: jurisdiction,
		CustomFields: custom,
	})
	if err != nil {
		printlnFn("Error:", a.docs.Error())
		return err
	}
	renderDocument(os.Stdout, doc)
	return nil
}

// parseDocumentFilters builds a filter set from "k=v" tokens. The token
// "clear" (or no tokens) resets all filters.
func parseDocumentFilters(args []string) (models.DocumentFilters, error) {
	var f models.DocumentFilters
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
		case "type":
			f.Type = models.DocumentType(strings.ToUpper(value))
		case "status":
			f.Status = models.DocumentStatus(strings.ToUpper(value))
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

func parseSort(args []string) models.TableSort {
	ts := models.TableSort{Key: args[0], Order: models.SortAsc}
	if len(args) > 1 && args[1] == "desc" {
		ts.Order = models.SortDesc
	}
	return ts
}

func parsePositiveInt(args []string) (int, bool) {
	if len(args) == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// parseDay accepts a calendar date and anchors it at midnight UTC.
func parseDay(value string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, errUsage("expected a date like 2024-03-01, got " + value)
	}
	return t, nil
}

type usageError string

func (e usageError) Error() string { return string(e) }

func errUsage(msg string) error { return usageError(msg) }
