package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kilianp07/studiodesk/infra/records"
	"github.com/kilianp07/studiodesk/pkg/export"
)

func newSuggestCmd(root *rootOptions) *cobra.Command {
	var file, preferred string
	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Propose appointment slots near a target location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			format, err := export.ParseFormat(root.format)
			if err != nil {
				return err
			}
			doc, err := records.LoadFile(file)
			if err != nil {
				return err
			}
			req := doc.SuggestRequest()
			if preferred != "" {
				req.PreferredResource = preferred
			}
			s, err := openSession(root)
			if err != nil {
				return err
			}
			defer func() {
				if cerr := s.Close(); cerr != nil && err == nil {
					err = cerr
				}
			}()
			out, err := s.svc.Suggest(cmd.Context(), req)
			if err != nil {
				return err
			}
			if format == export.FormatCSV {
				return export.WriteSuggestionsCSV(cmd.OutOrStdout(), out)
			}
			return export.WriteJSON(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "request file with target, resources and prior_jobs")
	cmd.Flags().StringVar(&preferred, "preferred", "", "preferred photographer name, overrides the file")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
