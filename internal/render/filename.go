package render

import "strings"

var unsafeFileChars = strings.NewReplacer(
	`\`, "_", "/", "_", ":", "_", `"`, "_", "*", "_",
	"?", "_", "<", "_", ">", "_", "|", "_", " ", "_",
)

// FileName returns a file name for a worksheet titled title, with the
// given extension (".pdf"). Characters that are unsafe on common
// filesystems become underscores; an empty title becomes "worksheet".
func FileName(title, ext string) string {
	if title == "" {
		title = "worksheet"
	}
	return unsafeFileChars.Replace(title) + ext
}
