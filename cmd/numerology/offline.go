package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/phrazzld/numerology-api/internal/domain/numerology"
)

// errReported marks a failure whose JSON error body was already printed.
var errReported = errors.New("calculation failed")

// printJSON writes v as indented JSON.
func printJSON(out io.Writer, v interface{}) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// printResult prints v, or the {"error": ...} body of err.
func printResult(out io.Writer, v interface{}, err error) error {
	if err != nil {
		if perr := printJSON(out, numerology.NewErrorResult(err)); perr != nil {
			return perr
		}
		return errReported
	}
	return printJSON(out, v)
}

func newReportCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "report DD.MM.YYYY",
		Short: "Print the full numerology report for a birth date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := numerology.FullReport(args[0], name, time.Now())
			return printResult(cmd.OutOrStdout(), report, err)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "full name (Cyrillic letters contribute the name number)")
	return cmd
}

func newCompatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compat DD.MM.YYYY DD.MM.YYYY",
		Short: "Print the compatibility of two birth dates",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := numerology.Compatibility(args[0], args[1])
			return printResult(cmd.OutOrStdout(), result, err)
		},
	}
}

func newNumberCmd() *cobra.Command {
	kinds := make([]string, 0, len(numerology.NumberKinds()))
	for _, k := range numerology.NumberKinds() {
		kinds = append(kinds, string(k))
	}

	return &cobra.Command{
		Use:       "number KIND DD.MM.YYYY",
		Short:     "Print a single personal number",
		Long:      fmt.Sprintf("Print a single personal number. KIND is one of: %s.", strings.Join(kinds, ", ")),
		Args:      cobra.ExactArgs(2),
		ValidArgs: kinds,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := numerology.ParseNumberKind(args[0])
			if err != nil {
				return printResult(cmd.OutOrStdout(), nil, err)
			}
			value, err := numerology.Number(kind, args[1])
			if err != nil {
				return printResult(cmd.OutOrStdout(), nil, err)
			}
			return printJSON(cmd.OutOrStdout(), map[string]interface{}{
				"kind":  kind,
				"value": value,
			})
		},
	}
}
