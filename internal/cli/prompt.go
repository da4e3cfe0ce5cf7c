package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrSelectionCancelled is returned when input ends before a selection is confirmed.
var ErrSelectionCancelled = errors.New("selection cancelled")

// Prompter asks the user questions on a terminal.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// SelectFiles lets the user toggle files by number until an empty line
// confirms a non-empty selection. Files are returned in their listed order.
func (p *Prompter) SelectFiles(files []string) ([]string, error) {
	selected := make([]bool, len(files))

	fmt.Fprintln(p.out, "\n📂 Select JSON files to import:")
	p.printFiles(files, selected)
	fmt.Fprintln(p.out, "\nType numbers to toggle files (e.g. '1 3 5'), then press Enter to continue")

	for {
		fmt.Fprint(p.out, "\nSelection (Enter to confirm): ")
		line, err := p.readLine()
		if err != nil {
			return nil, err
		}

		if line == "" {
			var chosen []string
			for i, file := range files {
				if selected[i] {
					chosen = append(chosen, file)
				}
			}
			if len(chosen) == 0 {
				fmt.Fprintln(p.out, "❌ No files selected!")
				continue
			}
			fmt.Fprintf(p.out, "\n✅ Selected %d file(s) for import\n", len(chosen))
			return chosen, nil
		}

		for _, field := range strings.Fields(line) {
			n, err := strconv.Atoi(field)
			if err != nil || n < 1 || n > len(files) {
				fmt.Fprintf(p.out, "⚠️  Ignoring %q\n", field)
				continue
			}
			selected[n-1] = !selected[n-1]
		}
		p.printFiles(files, selected)
	}
}

// AskFolder asks for a Notes folder name; an empty answer means the default folder.
func (p *Prompter) AskFolder() (string, error) {
	fmt.Fprint(p.out, "\n📁 Apple Notes folder (Enter for default): ")
	return p.readLine()
}

func (p *Prompter) printFiles(files []string, selected []bool) {
	fmt.Fprintln(p.out)
	for i, file := range files {
		mark := " "
		if selected[i] {
			mark = "✓"
		}
		fmt.Fprintf(p.out, "%4d  [%s]  %-40s %10s\n", i+1, mark, filepath.Base(file), fileSize(file))
	}
}

func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
		if errors.Is(err, io.EOF) {
			return "", ErrSelectionCancelled
		}
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func fileSize(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return "?"
	}
	size := float64(info.Size())
	if size < 1024*1024 {
		return fmt.Sprintf("%.1f KB", size/1024)
	}
	return fmt.Sprintf("%.1f MB", size/(1024*1024))
}
