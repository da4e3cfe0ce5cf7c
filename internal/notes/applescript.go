package notes

import (
	"fmt"
	"strings"
)

// EscapeAppleScript escapes text for use inside an AppleScript string literal.
func EscapeAppleScript(text string) string {
	text = strings.ReplaceAll(text, `\`, `\\`)
	return strings.ReplaceAll(text, `"`, `\"`)
}

// Quote returns text as an AppleScript string literal.
func Quote(text string) string {
	return `"` + EscapeAppleScript(text) + `"`
}

const processCheckScript = `
tell application "System Events"
	set notesRunning to (name of processes) contains "Notes"
	return notesRunning
end tell
`

const launchScript = `
tell application "Notes"
	activate
end tell
delay 2
tell application "System Events"
	set notesRunning to (name of processes) contains "Notes"
	return notesRunning
end tell
`

func ensureFolderScript(folder string) string {
	return fmt.Sprintf(`
tell application "Notes"
	try
		set folderList to name of folders
		if folderList does not contain %[1]s then
			make new folder with properties {name:%[1]s}
		end if
		return true
	on error errMsg
		return false
	end try
end tell
`, Quote(folder))
}

type attachment struct {
	path string
	kind string
}

type noteScript struct {
	folder      string
	body        string
	attachments []attachment
	hashtags    string
}

func (s noteScript) String() string {
	var b strings.Builder

	b.WriteString("tell application \"Notes\"\n")
	if s.folder != "" {
		fmt.Fprintf(&b, "set targetFolder to folder %s\n", Quote(s.folder))
	} else {
		b.WriteString("set targetFolder to folder 1\n")
	}

	fmt.Fprintf(&b, "set noteBody to %s\n", Quote(s.body))
	b.WriteString("make new note at targetFolder with properties {body:noteBody}\n")
	b.WriteString("set newNote to result\n")

	for _, a := range s.attachments {
		fmt.Fprintf(&b, `try
	set mediaFile to POSIX file %s as alias
	make new attachment at newNote with data mediaFile
on error errMsg
	log "Failed to attach %s: " & errMsg
end try
`, Quote(a.path), a.kind)
	}

	if s.hashtags != "" {
		fmt.Fprintf(&b, `try
	set currentBody to body of newNote
	set tagString to return & return & %s
	set body of newNote to currentBody & tagString
on error errMsg
	log "Failed to add tags: " & errMsg
end try
`, Quote(s.hashtags))
	}

	b.WriteString("end tell")
	return b.String()
}
