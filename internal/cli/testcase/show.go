package testcase

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tcm/internal/cli"
	"github.com/thenoetrevino/tcm/internal/cli/styles"
	"github.com/thenoetrevino/tcm/internal/models"
)

// ShowCmd returns the case show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Show test case details",
		Long:  "Display a test case with its steps rendered from markdown.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runShow,
	}

	cmd.Flags().Int("id", 0, "Case ID (can also be provided as positional argument)")
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (ID only)")

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	var caseID int
	if len(args) > 0 {
		caseID, _ = strconv.Atoi(args[0])
	} else {
		caseID, _ = cmd.Flags().GetInt("id")
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")

	formatter := &cli.OutputFormatter{JSON: jsonOutput, Quiet: quietMode}

	if caseID <= 0 {
		return formatter.Fail(cli.ExitUsage, "INVALID_CASE_ID",
			errors.New("case ID must be a positive integer"),
			"Usage: tcm case show <id> or tcm case show --id=<id>")
	}

	cliInstance, principal, err := cli.Open(ctx, formatter)
	if err != nil {
		return err
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			log.Printf("Error closing CLI: %v", err)
		}
	}()

	c, err := cliInstance.App.CaseService.GetCaseByID(ctx, principal, caseID)
	switch {
	case errors.Is(err, models.ErrNotFound):
		return formatter.Fail(cli.ExitNotFound, "CASE_NOT_FOUND", fmt.Errorf("case %d not found", caseID), "")
	case err != nil:
		return formatter.Fail(cli.ExitError, "CASE_FETCH_ERROR", err, "")
	}

	if quietMode {
		fmt.Printf("%d\n", c.ID)
		return nil
	}

	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success": true,
			"case":    cli.Fields(c),
		})
	}

	fmt.Println(styles.RenderCard(renderCase(c)))
	return nil
}

func renderCase(c *models.Case) string {
	var content strings.Builder

	content.WriteString(styles.TitleStyle.Render(fmt.Sprintf("#%d: %s", c.ID, c.Name)))
	content.WriteString("\n\n")

	content.WriteString(fmt.Sprintf("%s %s  %s %s\n",
		styles.LabelStyle.Render("Status:"),
		styles.StatusStyle(c.Status).Render(string(c.Status)),
		styles.LabelStyle.Render("Product:"),
		styles.ValueStyle.Render(strconv.Itoa(c.ProductID)),
	))
	if c.SuiteID != nil {
		content.WriteString(fmt.Sprintf("%s %s\n",
			styles.LabelStyle.Render("Suite:"),
			styles.ValueStyle.Render(strconv.Itoa(*c.SuiteID)),
		))
	}
	if !c.CreatedAt.IsZero() {
		content.WriteString(fmt.Sprintf("%s %s\n",
			styles.LabelStyle.Render("Created:"),
			styles.SubtitleStyle.Render(c.CreatedAt.Format("Jan 2, 2006 3:04 PM")),
		))
	}

	content.WriteString(styles.SectionStyle.Render("Steps"))
	content.WriteString("\n")
	// card padding and border take six columns
	content.WriteString(renderDescription(c.Description, styles.CardWidth-6))

	return content.String()
}

// Renderers are cached by width
var rendererCache sync.Map // map[int]*glamour.TermRenderer

func getRenderer(width int) (*glamour.TermRenderer, error) {
	if cached, ok := rendererCache.Load(width); ok {
		return cached.(*glamour.TermRenderer), nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}

	rendererCache.Store(width, renderer)
	return renderer, nil
}

// renderDescription renders markdown, falling back to the raw text
func renderDescription(description string, width int) string {
	if description == "" {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true).
			Render("No steps")
	}

	renderer, err := getRenderer(width)
	if err != nil {
		return description
	}
	rendered, err := renderer.Render(description)
	if err != nil {
		return description
	}
	return strings.TrimSpace(rendered)
}
