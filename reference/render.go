package reference

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"

	"github.com/crytic/cheatsheet/snippet"
	"github.com/crytic/cheatsheet/utils"
)

var (
	//go:embed templates/reference.gohtml
	htmlReferenceTemplate []byte
)

// Render writes the reference as a single HTML document. Every cell's code is escaped and wrapped in a pre element
// inside a table data cell, so it is displayed verbatim.
func Render(w io.Writer, ref *Reference) error {
	functionMap := template.FuncMap{
		"languages": func() []snippet.Language {
			return snippet.Languages
		},
	}

	tmpl, err := template.New("reference.html").Funcs(functionMap).Parse(string(htmlReferenceTemplate))
	if err != nil {
		return fmt.Errorf("could not render reference, failed to parse template: %v", err)
	}

	// Render to a buffer first so a template failure never leaves a partial document behind
	var buf bytes.Buffer
	if err = tmpl.Execute(&buf, ref); err != nil {
		return fmt.Errorf("could not render reference: %v", err)
	}
	_, err = buf.WriteTo(w)
	return err
}

// RenderToFile renders the reference to the provided file path, creating parent directories as needed.
func RenderToFile(ref *Reference, path string) error {
	file, err := utils.CreateFile(filepath.Dir(path), filepath.Base(path))
	if err != nil {
		return fmt.Errorf("could not render reference, failed to create file: %v", err)
	}

	err = Render(file, ref)
	closeErr := file.Close()
	if err != nil {
		_ = os.Remove(path)
		return err
	}
	return closeErr
}
