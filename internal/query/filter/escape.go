// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package filter

import "strings"

// likeEscaper rewrites a user-supplied pattern into a SQL LIKE pattern,
// escaping LIKE metacharacters first and then remapping the shell-style
// wildcards '?' and '*' onto LIKE's '_' and '%'. Order matters: '_' and
// '%' in the user's own text must be escaped before '?' and '*' are
// turned into fresh (unescaped) '_'/'%' wildcards.
var likeEscaper = strings.NewReplacer(
	`\`, `\\`,
	`_`, `\_`,
	`%`, `\%`,
	`?`, `_`,
	`*`, `%`,
)

// likeEscape applies the ESCAPE '\' transform spec §6 describes.
func likeEscape(val string) string {
	return likeEscaper.Replace(val)
}
