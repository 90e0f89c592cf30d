package driven

// TemplateStore provides the markdown templates used to render records.
// Implementations may load templates from files or embed them in the binary.
type TemplateStore interface {
	// Load returns the template source for the given name.
	// Unknown names return an error; known names always resolve, falling
	// back to the built-in default when the user copy cannot be read.
	Load(name string) (string, error)

	// Reload clears any cached templates, forcing fresh loads on next access.
	Reload()
}

// Well-known template names.
const (
	// TemplateDetail renders one domain.Summary as markdown.
	TemplateDetail = "detail"

	// TemplateComments renders a []domain.Comment as markdown.
	TemplateComments = "comments"
)
