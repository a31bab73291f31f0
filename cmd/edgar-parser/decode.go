package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/saranrapjs/edgar-parser/pkg/decode"
	"github.com/saranrapjs/edgar-parser/pkg/edgar"
)

func init() {
	rootCmd.AddCommand(
		newDecodeCmd(edgar.KindXBRL, "Decode an XBRL instance document"),
		newDecodeCmd(edgar.Kind13F, "Decode a 13F primary document"),
		newDecodeCmd(edgar.Kind13FTable, "Decode a 13F information table"),
		newDecodeCmd(edgar.KindOwnership, "Decode a Form 3, 4 or 5 ownership document"),
	)
}

func newDecodeCmd(kind edgar.Kind, short string) *cobra.Command {
	var summary bool
	cmd := &cobra.Command{
		Use:   string(kind) + " <file|->",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			return decodeAndPrint(cmd, kind, data, summary)
		},
	}
	cmd.Flags().BoolVar(&summary, "summary", false, "print a one-line summary instead of JSON")
	return cmd
}

func readInput(cmd *cobra.Command, name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return data, nil
}

func decodeAndPrint(cmd *cobra.Command, kind edgar.Kind, data []byte, summary bool) error {
	text, err := edgar.DecodeText(data)
	if err != nil {
		return err
	}
	doc, err := decode.Document(kind, text, log)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if summary {
		_, err := fmt.Fprintln(out, decode.Summary(doc))
		return err
	}
	encoded, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", kind, err)
	}
	_, err = fmt.Fprintln(out, string(encoded))
	return err
}
