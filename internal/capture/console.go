package capture

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

// ConsoleResolver resolves fields interactively over stdin/stdout style
// streams. Invalid selections are re-prompted, never defaulted.
type ConsoleResolver struct {
	in  *bufio.Reader
	out io.Writer
}

// NewConsoleResolver wraps the given streams for interactive resolution.
func NewConsoleResolver(in io.Reader, out io.Writer) *ConsoleResolver {
	return &ConsoleResolver{
		in:  bufio.NewReader(in),
		out: out,
	}
}

func (c *ConsoleResolver) ResolveLowConfidence(ctx context.Context, field, value string, confidence int) (string, error) {
	fmt.Fprintf(c.out, "\nCampo '%s' detectado con menor confianza que el mínimo.\n", field)
	fmt.Fprintf(c.out, "Valor actual: %s --- Confianza: %d%%\n", value, confidence)
	fmt.Fprintln(c.out, "Soluciones posibles:")
	fmt.Fprintln(c.out, "1. Mantener el valor actual")
	fmt.Fprintln(c.out, "2. Ingresar un valor distinto")

	for {
		if err := ctx.Err(); err != nil {
			return "", eris.Wrap(err, "capture: resolution interrupted")
		}

		option, err := c.readLine("Seleccionar la preferencia: ")
		if err != nil {
			return "", err
		}

		switch option {
		case "1":
			return value, nil
		case "2":
			return c.readLine("Ingresar nuevo valor: ")
		default:
			fmt.Fprintln(c.out, "Elija una opción válida.")
		}
	}
}

func (c *ConsoleResolver) ResolveConflict(ctx context.Context, field string, values []string) (string, error) {
	fmt.Fprintf(c.out, "\nCampo %s tiene más de un valor posible y requiere aclaración.\n", field)
	fmt.Fprintln(c.out, "Valores encontrados:")
	for _, v := range values {
		fmt.Fprintf(c.out, "'%s'\n", v)
	}

	fmt.Fprintln(c.out, "Seleccionar opción para continuar:")
	for i, v := range values {
		fmt.Fprintf(c.out, "%d. Mantener '%s'\n", i+1, v)
	}
	newValueOption := len(values) + 1
	fmt.Fprintf(c.out, "%d. Ingresar un nuevo valor\n", newValueOption)

	for {
		if err := ctx.Err(); err != nil {
			return "", eris.Wrap(err, "capture: resolution interrupted")
		}

		option, err := c.readLine("Seleccionar la opción: ")
		if err != nil {
			return "", err
		}

		choice, convErr := strconv.Atoi(option)
		switch {
		case convErr == nil && choice >= 1 && choice <= len(values):
			return values[choice-1], nil
		case convErr == nil && choice == newValueOption:
			return c.readLine("Ingrese el nuevo valor para el campo: ")
		default:
			fmt.Fprintln(c.out, "Ingrese una opción válida...")
		}
	}
}

func (c *ConsoleResolver) readLine(prompt string) (string, error) {
	fmt.Fprint(c.out, prompt)
	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		return "", eris.Wrap(err, "capture: read resolution input")
	}
	return strings.TrimSpace(line), nil
}
