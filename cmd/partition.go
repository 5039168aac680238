package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kilianp07/studiodesk/core/model"
	"github.com/kilianp07/studiodesk/core/partition"
	"github.com/kilianp07/studiodesk/infra/records"
	"github.com/kilianp07/studiodesk/pkg/export"
)

type partitionFlags struct {
	file        string
	status      string
	sort        string
	from        string
	to          string
	createdFrom string
	createdTo   string
	orderStatus string
	payment     string
	summary     bool
}

type partitionOutput struct {
	partition.Result
	Excluded []string             `json:"excluded,omitempty"`
	Summary  *partition.Summaries `json:"summary,omitempty"`
}

func newPartitionCmd(root *rootOptions) *cobra.Command {
	f := &partitionFlags{}
	cmd := &cobra.Command{
		Use:   "partition",
		Short: "Split orders into today, this week and remaining buckets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPartition(cmd, root, f)
		},
	}
	fl := cmd.Flags()
	fl.StringVarP(&f.file, "file", "f", "", "orders file (yaml or json)")
	fl.StringVar(&f.status, "status", model.StatusAll, "basic status filter: all, outstanding or an order status")
	fl.StringVar(&f.sort, "sort", string(model.SortAsc), "remaining bucket order: asc or desc")
	fl.StringVar(&f.from, "from", "", "appointment date lower bound (YYYY-MM-DD)")
	fl.StringVar(&f.to, "to", "", "appointment date upper bound (YYYY-MM-DD)")
	fl.StringVar(&f.createdFrom, "created-from", "", "creation date lower bound (YYYY-MM-DD)")
	fl.StringVar(&f.createdTo, "created-to", "", "creation date upper bound (YYYY-MM-DD)")
	fl.StringVar(&f.orderStatus, "order-status", model.StatusAll, "status override applied to the remaining bucket")
	fl.StringVar(&f.payment, "payment", string(model.PaymentAll), "payment filter: all, paid or unpaid")
	fl.BoolVar(&f.summary, "summary", false, "include per-bucket billing summaries")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func (f *partitionFlags) filters() (model.FilterConfiguration, error) {
	filters := model.FilterConfiguration{
		Status:  f.orderStatus,
		Payment: model.PaymentFilter(f.payment),
		Sort:    model.SortDirection(f.sort),
	}
	var err error
	if filters.Appointment, err = dateRange(f.from, f.to); err != nil {
		return filters, err
	}
	if filters.Created, err = dateRange(f.createdFrom, f.createdTo); err != nil {
		return filters, err
	}
	return filters, nil
}

func dateRange(from, to string) (model.DateRange, error) {
	var r model.DateRange
	if from != "" {
		t, err := model.ParseDate(from, time.Local)
		if err != nil {
			return r, fmt.Errorf("invalid date %q: %w", from, err)
		}
		r.From = &t
	}
	if to != "" {
		t, err := model.ParseDate(to, time.Local)
		if err != nil {
			return r, fmt.Errorf("invalid date %q: %w", to, err)
		}
		r.To = &t
	}
	return r, nil
}

func runPartition(cmd *cobra.Command, root *rootOptions, f *partitionFlags) (err error) {
	format, err := export.ParseFormat(root.format)
	if err != nil {
		return err
	}
	filters, err := f.filters()
	if err != nil {
		return err
	}
	doc, err := records.LoadFile(f.file)
	if err != nil {
		return err
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

	res, err := s.svc.Partition(doc.Orders, f.status, filters)
	if err != nil {
		return err
	}
	if format == export.FormatCSV {
		return export.WriteOrdersCSV(cmd.OutOrStdout(), res)
	}
	out := partitionOutput{Result: res, Excluded: res.ExcludedIDs()}
	if f.summary {
		sum := s.svc.Summaries(res)
		out.Summary = &sum
	}
	return export.WriteJSON(cmd.OutOrStdout(), out)
}
