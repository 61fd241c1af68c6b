package main

import (
	"strings"

	"github.com/gingerrexayers/dirdigest-go/internal/dirdigest/lib"
	"github.com/spf13/cobra"
)

// algorithmCompletions suggests the supported values for --algorithm.
func algorithmCompletions(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var suggestions []string
	for _, alg := range lib.Algorithms() {
		if strings.HasPrefix(string(alg), strings.ToLower(toComplete)) {
			suggestions = append(suggestions, string(alg))
		}
	}
	return suggestions, cobra.ShellCompDirectiveNoFileComp
}

// pathCompletions completes the root argument with directories only.
func pathCompletions(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) != 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return nil, cobra.ShellCompDirectiveFilterDirs
}
