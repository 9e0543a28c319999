package volcado

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/pagoandino/capture-cli/internal/model"
)

// Prompter supplies values for fields that finished the capture loop with
// no value at all.
type Prompter interface {
	PromptValue(field string) (string, error)
}

// ConsolePrompter reads missing values interactively.
type ConsolePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewConsolePrompter wraps the given streams.
func NewConsolePrompter(in io.Reader, out io.Writer) *ConsolePrompter {
	return &ConsolePrompter{in: bufio.NewReader(in), out: out}
}

func (c *ConsolePrompter) PromptValue(field string) (string, error) {
	fmt.Fprintf(c.out, "Ingrese un valor para %s: ", field)
	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		return "", eris.Wrapf(err, "volcado: read value for %s", field)
	}
	return strings.TrimSpace(line), nil
}

// CompleteMissing asks the prompter for every field with an empty value
// and commits the answers at full confidence. Runs before the payload is
// built so no required entity attribute is silently blank.
func CompleteMissing(results model.ResultSet, p Prompter, out io.Writer) error {
	var missing []string
	for field, node := range results {
		if node.Value.IsNull() || strings.TrimSpace(node.Value.Single()) == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)

	fmt.Fprintln(out, "Debemos completar la información obtenida desde la inferencia")
	for _, field := range missing {
		value, err := p.PromptValue(field)
		if err != nil {
			return err
		}
		node := results[field]
		node.Match = true
		node.Value = model.StringValue(value)
		node.Confidence = 100
		results[field] = node
	}
	return nil
}

// PrintResults writes the final field values in a stable order.
func PrintResults(results model.ResultSet, out io.Writer) {
	fields := make([]string, 0, len(results))
	for field := range results {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	fmt.Fprintln(out, "\nLista de datos obtenidos:")
	for _, field := range fields {
		fmt.Fprintf(out, "%s: %s\n", field, results[field].Value.String())
	}
}
