package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/vvka-141/codecleaner/pkg/codecleaner"
)

// completeExtensions provides shell completion for --extensions values.
func completeExtensions(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	// Complete only the element after the last comma of a list value.
	prefix := ""
	if i := strings.LastIndex(toComplete, ","); i >= 0 {
		prefix, toComplete = toComplete[:i+1], toComplete[i+1:]
	}

	var matches []string
	for _, ext := range codecleaner.NewLanguageRegistry(nil).Extensions() {
		if strings.HasPrefix(ext, toComplete) {
			matches = append(matches, prefix+ext)
		}
	}
	return matches, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
}

// completeReportFiles limits report path completion to supported encodings.
func completeReportFiles(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return []string{"yaml", "yml", "json"}, cobra.ShellCompDirectiveFilterFileExt
}

// completeDirectories provides shell completion for directory paths.
func completeDirectories(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	// Let the shell handle directory completion
	return nil, cobra.ShellCompDirectiveFilterDirs
}
