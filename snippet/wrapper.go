package snippet

import (
	"embed"
	"strings"
	"text/template"

	"github.com/pkg/errors"
)

// DeployOnlyContractName is the name of the contract generated by the Solidity wrapper templates.
const DeployOnlyContractName = "DeployOnly"

var (
	//go:embed templates/*.tmpl
	templateFiles embed.FS

	// wrapperTemplates maps each language to its parsed wrapper template.
	wrapperTemplates = map[Language]*template.Template{
		Solidity: template.Must(template.ParseFS(templateFiles, "templates/solidity.tmpl")),
		Vyper:    template.Must(template.ParseFS(templateFiles, "templates/vyper.tmpl")),
	}
)

// wrapperData is the data a wrapper template is executed with.
type wrapperData struct {
	ContractName    string
	Declarations    string
	Body            string
	HasDeclarations bool
	HasBody         bool
}

// Wrap embeds the snippet in the wrapper template for the given language and returns the resulting source unit.
// The snippet is not validated; malformed snippets only surface as compiler errors.
func Wrap(language Language, s Snippet) (string, error) {
	tmpl, ok := wrapperTemplates[language]
	if !ok {
		return "", errors.Wrapf(ErrUnsupportedLanguage, "could not wrap snippet for '%s'", language)
	}

	data := wrapperData{ContractName: DeployOnlyContractName}
	switch s.Placement {
	case Contract:
		return s.Text, nil
	case Global:
		data.Declarations = s.Text
	case Constructor:
		data.Body = reindent(s.Text, language.indentation())
	case GlobalConstructor:
		data.Declarations = s.Declarations
		data.Body = reindent(s.Text, language.indentation())
	default:
		return "", errors.Errorf("could not wrap snippet: unknown placement %v", s.Placement)
	}

	// A Vyper function body may not be empty
	if language == Vyper && strings.TrimSpace(data.Body) == "" {
		data.Body = "pass"
	}
	data.HasDeclarations = data.Declarations != ""
	data.HasBody = strings.TrimSpace(data.Body) != ""

	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", errors.Wrap(err, "could not wrap snippet")
	}
	return sb.String(), nil
}

// MustWrap is like Wrap but panics on error. It is intended for snippets known at compile time.
func MustWrap(language Language, s Snippet) string {
	source, err := Wrap(language, s)
	if err != nil {
		panic(err)
	}
	return source
}
