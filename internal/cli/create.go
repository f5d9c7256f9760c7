package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stratacms/strata/internal/app"
	"github.com/stratacms/strata/internal/template/registry"
)

// createFlags holds the scaffolding flag values shared by
// create-strata-app and strata init.
type createFlags struct {
	template      string
	ref           string
	force         bool
	useCurrentDir bool
}

// registerCreateFlags registers the scaffolding flags on a command.
func registerCreateFlags(cmd *cobra.Command, flags *createFlags) {
	cmd.Flags().StringVarP(&flags.template, FlagTemplate, "t", "", DescTemplate)
	cmd.Flags().StringVar(&flags.ref, FlagRef, "", DescRef)
	cmd.Flags().BoolVarP(&flags.force, FlagForce, "f", false, DescForce)
	cmd.Flags().BoolVar(&flags.useCurrentDir, FlagUseCurrentDir, false, DescUseCurrentDir)
}

// runCreate drives the scaffolding flow: fill in the project name and
// template (from arguments, flags, or interactive prompts), create the
// project, and report the files written.
func runCreate(cmd *cobra.Command, args []string, flags *createFlags) error {
	projectName := ""
	if len(args) > 0 {
		projectName = args[0]
	}

	if projectName == "" {
		if !isInteractive() {
			return fmt.Errorf("project name required (pass it as an argument in non-interactive mode)")
		}
		name, err := promptForProjectName()
		if err != nil {
			return err
		}
		projectName = name
	}

	template := flags.template
	if template == "" {
		if isInteractive() {
			choice, err := promptForTemplate()
			if err != nil {
				return err
			}
			template = choice
		} else {
			template = registry.DefaultIdentifier
		}
	}

	if flags.force {
		printWarning("scaffolding into a non-empty directory; colliding files may be overwritten")
	}
	printProgress(fmt.Sprintf("Scaffolding %s from the %s template...", projectName, template))

	result, err := app.Create(cmd.Context(), app.CreateOptions{
		ProjectName:   projectName,
		Template:      template,
		Ref:           flags.ref,
		UseCurrentDir: flags.useCurrentDir,
		Force:         flags.force,
	})
	if err != nil {
		return err
	}

	printSuccess(fmt.Sprintf("Created %s (%d files)", projectName, len(result.Files)))
	printInfo("")
	printInfo("Next steps:")
	if !flags.useCurrentDir {
		printInfo(fmt.Sprintf("  cd %s", projectName))
	}
	printInfo("  strata dev")
	return nil
}
