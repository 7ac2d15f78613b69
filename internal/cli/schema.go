package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/glassroom/internal/classroom"
)

// SchemaResult is the payload of the schema command.
type SchemaResult struct {
	Kind         classroom.Kind `json:"kind"`
	Capabilities []string       `json:"capabilities"`
	Schema       any            `json:"schema"`
}

// NewSchemaCommand creates the schema command.
func NewSchemaCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "schema <kind>",
		Short: "Print the JSON Schema and capabilities of a kind",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSchema(rootOpts, args[0], cmd)
		},
	}
}

func runSchema(opts *RootOptions, kindName string, cmd *cobra.Command) error {
	out := newFormatter(opts, cmd)
	kind, err := classroom.ParseKind(kindName)
	if err != nil {
		return usageError(out, err.Error())
	}
	schema, err := classroom.Schema(kind)
	if err != nil {
		return outputError(out, ErrCodeUsage, ExitCommandError, "no schema", err)
	}

	result := SchemaResult{Kind: kind, Schema: schema}
	for _, c := range classroom.Capabilities(kind) {
		result.Capabilities = append(result.Capabilities, string(c))
	}
	return printItem(out, result)
}
