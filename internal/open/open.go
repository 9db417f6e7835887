package open

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// EditorCommand builds the command that opens path at line in $EDITOR
// (falling back to less). The caller decides how to run it; the TUI hands
// it to tea.ExecProcess so the terminal is restored afterwards.
func EditorCommand(path string, line int) *exec.Cmd {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "less"
	}
	if line < 1 {
		line = 1
	}

	switch {
	case strings.Contains(editor, "vim") || strings.Contains(editor, "nvim"):
		return exec.Command(editor, fmt.Sprintf("+%d", line), path)
	case strings.Contains(editor, "code"):
		return exec.Command(editor, "--goto", path+":"+strconv.Itoa(line))
	case strings.Contains(editor, "less"):
		return exec.Command(editor, "+"+strconv.Itoa(line), path)
	default:
		return exec.Command(editor, path)
	}
}

// Open runs the editor attached to the current terminal.
func Open(path string, line int) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("export not found: %s", path)
	}
	cmd := EditorCommand(path, line)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
