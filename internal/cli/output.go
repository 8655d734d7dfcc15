package cli

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/thenoetrevino/tcm/internal/cli/styles"
	"github.com/thenoetrevino/tcm/internal/models"
	"github.com/thenoetrevino/tcm/internal/records"
)

// OutputFormatter handles three output modes: JSON, quiet, and human-readable
type OutputFormatter struct {
	JSON  bool
	Quiet bool
}

// Success outputs successful operation result
func (f *OutputFormatter) Success(data any) error {
	if f.Quiet {
		if idGetter, ok := data.(interface{ GetID() int }); ok {
			fmt.Printf("%d\n", idGetter.GetID())
			return nil
		}
	}

	if f.JSON {
		if rec, ok := data.(records.Record); ok {
			data = Fields(rec)
		}
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success": true,
			"data":    data,
		})
	}

	return f.prettyPrint(data)
}

// Error outputs error information
func (f *OutputFormatter) Error(code string, message string) error {
	return f.ErrorWithSuggestion(code, message, "")
}

// ErrorWithSuggestion outputs error information with an optional suggestion
func (f *OutputFormatter) ErrorWithSuggestion(code string, message string, suggestion string) error {
	if f.JSON {
		errData := map[string]any{
			"code":    code,
			"message": message,
		}
		if suggestion != "" {
			errData["suggestion"] = suggestion
		}
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success": false,
			"error":   errData,
		})
	}

	fmt.Fprintf(os.Stderr, "%s %s\n", styles.ErrorStyle.Render("Error"), message)
	if suggestion != "" {
		fmt.Fprintf(os.Stderr, "%s %s\n", styles.LabelStyle.Render("Suggestion:"), suggestion)
	}
	return nil
}

// Fail reports err under code and returns it tagged with the exit status
func (f *OutputFormatter) Fail(exit int, code string, err error, suggestion string) error {
	if fmtErr := f.ErrorWithSuggestion(code, err.Error(), suggestion); fmtErr != nil {
		log.Printf("Error formatting error message: %v", fmtErr)
	}
	return Exit(exit, err)
}

// prettyPrint formats data for human-readable output
func (f *OutputFormatter) prettyPrint(data any) error {
	if rec, ok := data.(records.Record); ok {
		fmt.Println(RecordLine(rec))
		return nil
	}
	fmt.Printf("%+v\n", data)
	return nil
}

// RecordLine renders one record as "[id] name status"
func RecordLine(rec records.Record) string {
	line := fmt.Sprintf("[%d] %s", rec.GetID(), rec.String())
	if status, ok := statusOf(rec); ok {
		line += " " + styles.StatusStyle(status).Render(string(status))
	}
	return line
}

// Fields is the JSON shape of a record
func Fields(rec records.Record) map[string]any {
	m := map[string]any{
		"id":   rec.GetID(),
		"kind": rec.Kind(),
		"name": rec.String(),
	}
	switch r := rec.(type) {
	case *models.Product:
		m["description"] = r.Description
		m["created_at"] = r.CreatedAt
	case *models.Suite:
		m["product_id"] = r.ProductID
		m["description"] = r.Description
		m["created_at"] = r.CreatedAt
	case *models.Case:
		m["product_id"] = r.ProductID
		m["suite_id"] = r.SuiteID
		m["description"] = r.Description
		m["created_at"] = r.CreatedAt
	case *models.Cycle:
		m["product_id"] = r.ProductID
		m["description"] = r.Description
		m["created_at"] = r.CreatedAt
	}
	if status, ok := statusOf(rec); ok {
		m["status"] = status
	}
	return m
}

func statusOf(rec records.Record) (models.Status, bool) {
	switch r := rec.(type) {
	case *models.Product:
		return r.Status, true
	case *models.Suite:
		return r.Status, true
	case *models.Case:
		return r.Status, true
	case *models.Cycle:
		return r.Status, true
	}
	return "", false
}
