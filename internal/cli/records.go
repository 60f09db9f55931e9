package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tphakala/go-netsuite"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type idFlags struct {
	internalID string
	externalID string
}

func (f *idFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.internalID, "internal-id", "", "NetSuite internal id")
	cmd.Flags().StringVar(&f.externalID, "external-id", "", "External id")
	cmd.MarkFlagsOneRequired("internal-id", "external-id")
	cmd.MarkFlagsMutuallyExclusive("internal-id", "external-id")
}

func (f *idFlags) id() netsuite.RecordID {
	if f.internalID != "" {
		return netsuite.ByInternalID(f.internalID)
	}
	return netsuite.ByExternalID(f.externalID)
}

func newGetCmd(a *app) *cobra.Command {
	var ids idFlags
	cmd := &cobra.Command{
		Use:   "get TYPE",
		Short: "Fetch one record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.records(args[0])
			if err != nil {
				return err
			}
			rec, err := svc.Get(cmd.Context(), ids.id())
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), rec)
		},
	}
	ids.register(cmd)
	return cmd
}

func newRefCmd(a *app) *cobra.Command {
	var ids idFlags
	cmd := &cobra.Command{
		Use:   "ref TYPE",
		Short: "Print a record reference without calling NetSuite",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.records(args[0])
			if err != nil {
				return err
			}
			rec, err := svc.GetRef(ids.id())
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), rec)
		},
	}
	ids.register(cmd)
	return cmd
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list TYPE ID...",
		Short: "Fetch several records by internal id",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.records(args[0])
			if err != nil {
				return err
			}
			results, err := svc.GetList(cmd.Context(), args[1:])
			if err != nil {
				return err
			}

			failed := results.Failed()
			for _, r := range failed {
				errorColor.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", r.ID, r.Err)
			}
			if len(failed) > 0 {
				warningColor.Fprintf(cmd.ErrOrStderr(), "%d of %d records failed\n", len(failed), len(results))
			}
			return writeJSON(cmd.OutOrStdout(), results.Records())
		},
	}
}

func newAllCmd(a *app) *cobra.Command {
	var pageSize int
	cmd := &cobra.Command{
		Use:   "all TYPE",
		Short: "Fetch every record of a type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.records(args[0])
			if err != nil {
				return err
			}
			if pageSize <= 0 {
				recs, err := svc.GetAll(cmd.Context())
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), recs)
			}
			recs, err := netsuite.Collect(netsuite.Flatten(svc.Pages(cmd.Context(), pageSize)))
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), recs)
		},
	}
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "Search page size (default: library default)")
	return cmd
}

func newCountCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "count TYPE",
		Short: "Count records of a type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.records(args[0])
			if err != nil {
				return err
			}
			n, err := svc.Count(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), n)
			return nil
		},
	}
}

func newSearchCmd(a *app) *cobra.Command {
	var op string
	cmd := &cobra.Command{
		Use:   "search TYPE ATTRIBUTE VALUE",
		Short: "Search records by a string field, first page only",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.records(args[0])
			if err != nil {
				return err
			}
			recs, err := svc.Search(cmd.Context(), args[1], args[2], netsuite.Operator(op))
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), recs)
		},
	}
	cmd.Flags().StringVar(&op, "operator", string(netsuite.OperatorContains), "String search operator")
	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	var recordType string
	cmd := &cobra.Command{
		Use:   "delete TYPE INTERNAL_ID",
		Short: "Delete a record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.records(args[0])
			if err != nil {
				return err
			}
			if _, err := svc.Delete(cmd.Context(), recordType, args[1]); err != nil {
				return err
			}
			successColor.Fprintf(cmd.OutOrStdout(), "deleted %s %s\n", svc.TypeName(), args[1])
			return nil
		},
	}
	cmd.Flags().StringVar(&recordType, "record-type", "", "Override the record type attribute")
	return cmd
}

func newTypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List supported record types",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			for _, name := range netsuite.RecordTypes() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}
}
