package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/josh-kwaku/pay-publicapi/internal/request"
	"github.com/josh-kwaku/pay-publicapi/internal/validation"
)

var errInvalid = errors.New("payload is invalid")

// decoders maps each request shape to its decoder. live selects the
// https-only URL rules.
var decoders = map[string]func(input []byte, live bool) (any, error){
	"create-payment": func(b []byte, live bool) (any, error) {
		return request.DecodeCreatePayment(b, request.Options{HTTPSOnly: live})
	},
	"create-refund": func(b []byte, _ bool) (any, error) { return request.DecodeCreateRefund(b) },
	"authorise":     func(b []byte, _ bool) (any, error) { return request.DecodeAuthorisation(b) },
	"create-agreement": func(b []byte, _ bool) (any, error) {
		return request.DecodeCreateAgreement(b)
	},
	"create-mandate": func(b []byte, live bool) (any, error) {
		return request.DecodeCreateMandate(b, request.Options{HTTPSOnly: live})
	},
	"search-payments": func(b []byte, _ bool) (any, error) {
		q, err := url.ParseQuery(strings.TrimPrefix(strings.TrimSpace(string(b)), "?"))
		if err != nil {
			return nil, fmt.Errorf("parse query: %w", err)
		}
		return request.DecodePaymentSearch(q)
	},
	"search-refunds": func(b []byte, _ bool) (any, error) {
		q, err := url.ParseQuery(strings.TrimPrefix(strings.TrimSpace(string(b)), "?"))
		if err != nil {
			return nil, fmt.Errorf("parse query: %w", err)
		}
		return request.DecodeRefundSearch(q)
	},
}

func shapeNames() []string {
	names := make([]string, 0, len(decoders))
	for n := range decoders {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

type reportEntry struct {
	Code    string `json:"code"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func validateCmd() *cobra.Command {
	var shape string
	var live bool

	cmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Validate a request payload offline",
		Long: `Validate a JSON body (or, for search shapes, a query string) exactly as
the API would, and print the decoded request or every validation error with
its public code. Reads stdin when no file is given.

Shapes: ` + strings.Join(shapeNames(), ", "),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			decode, ok := decoders[shape]
			if !ok {
				return fmt.Errorf("unknown shape %q, want one of %s", shape, strings.Join(shapeNames(), ", "))
			}

			var in io.Reader = cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open payload: %w", err)
				}
				defer f.Close()
				in = f
			}
			input, err := io.ReadAll(in)
			if err != nil {
				return fmt.Errorf("read payload: %w", err)
			}

			return runValidate(cmd.OutOrStdout(), decode, input, live)
		},
	}

	cmd.Flags().StringVarP(&shape, "shape", "s", "create-payment", "Request shape to validate against")
	cmd.Flags().BoolVar(&live, "live", false, "Apply live-account rules (https-only URLs)")

	return cmd
}

func runValidate(out io.Writer, decode func([]byte, bool) (any, error), input []byte, live bool) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")

	decoded, err := decode(input, live)
	var report *validation.Report
	switch {
	case errors.As(err, &report):
		entries := make([]reportEntry, len(report.Errors))
		for i, e := range report.Errors {
			entries[i] = reportEntry{Code: report.Family.Code(e.Code), Field: e.Field, Message: e.Message}
		}
		if encErr := enc.Encode(map[string]any{"valid": false, "errors": entries}); encErr != nil {
			return encErr
		}
		return errInvalid
	case err != nil:
		return err
	}

	return enc.Encode(map[string]any{"valid": true, "request": decoded})
}
