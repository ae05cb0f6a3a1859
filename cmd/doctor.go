package cmd

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/rodaine/table"
	"github.com/spf13/cobra"

	"github.com/mpy-ops/mpy-ops/internal/validate"
)

// DoctorDeps holds doctor command dependencies.
type DoctorDeps struct {
	CommonDeps
	Checker *validate.Checker
	Out     io.Writer
}

// DoctorCommand represents the doctor command.
type DoctorCommand struct{}

// NewDoctorCommand creates a new DoctorCommand.
func NewDoctorCommand() *DoctorCommand {
	return &DoctorCommand{}
}

// getApp retrieves the App from the command context.
func (c *DoctorCommand) getApp(cmd *cobra.Command) *App {
	return cmd.Context().Value(appContextKey).(*App)
}

// GetCobraCommand returns the cobra command for environment diagnostics.
func (c *DoctorCommand) GetCobraCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that required external tools are available",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := c.getApp(cmd)
			deps := c.buildDeps(app)
			deps.Out = cmd.OutOrStdout()
			return c.Run(deps)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
}

// Run executes the doctor command with injected dependencies.
//
// Missing tools are reported in the table, never as an error: the
// command is informational and the operator decides what to install.
func (c *DoctorCommand) Run(deps DoctorDeps) error {
	headerFmt := color.New(color.FgGreen, color.Underline).SprintfFunc()
	columnFmt := color.New(color.FgYellow).SprintfFunc()

	tbl := table.New("Tool", "Status", "Required", "Purpose")
	tbl.WithWriter(deps.Out).WithHeaderFormatter(headerFmt).WithFirstColumnFormatter(columnFmt)

	for _, tool := range validate.Tools() {
		status := "found"
		if !deps.Checker.Found(tool.Name) {
			status = "missing (" + tool.Hint + ")"
		}
		required := "optional"
		if tool.Required {
			required = "required"
		}
		tbl.AddRow(tool.Name, status, required, tool.Purpose)
	}

	tbl.Print()
	return nil
}

// buildDeps creates production dependencies for the doctor command.
func (c *DoctorCommand) buildDeps(app *App) DoctorDeps {
	return DoctorDeps{
		CommonDeps: NewRootDeps(app),
		Checker:    app.Checker,
		Out:        os.Stdout,
	}
}
