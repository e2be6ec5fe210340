// Package appfs embeds the static assets shipped with the binaries:
// database migrations and the HTML/email templates.
package appfs

import "embed"

//go:embed migrations templates templates/web/_base.gohtml templates/email/_base.gohtml templates/email/_base.txt
var FS embed.FS
