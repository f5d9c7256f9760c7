package cli

// Flag names and descriptions shared across commands.
const (
	// FlagTemplate selects the project template.
	FlagTemplate = "template"
	// DescTemplate describes the template flag.
	DescTemplate = "Template to scaffold from (minimal, default)"

	// FlagRef overrides the template repository ref.
	FlagRef = "ref"
	// DescRef describes the ref flag.
	DescRef = "Branch of the template repository to fetch"

	// FlagForce allows writing into a non-empty directory.
	FlagForce = "force"
	// DescForce describes the force flag.
	DescForce = "Allow scaffolding into a non-empty directory"

	// FlagUseCurrentDir scaffolds into the working directory.
	FlagUseCurrentDir = "use-current-dir"
	// DescUseCurrentDir describes the use-current-dir flag.
	DescUseCurrentDir = "Scaffold into the current directory instead of creating one"
)
