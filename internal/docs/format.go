package docs

import "fmt"

// Separator joins formatted fragments when several are delivered at once.
const Separator = "\n\n---\n\n"

// Format labels a fragment's content with a header naming its
// workspace-relative path.
func Format(relPath, content string) string {
	return fmt.Sprintf("## %s\n\n%s", relPath, content)
}
