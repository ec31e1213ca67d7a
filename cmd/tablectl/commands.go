package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	json2 "github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/spf13/cobra"

	"github.com/fulldump/tableview/mockdata"
	"github.com/fulldump/tableview/screen"
	"github.com/fulldump/tableview/view"
)

func newRootCmd() *cobra.Command {

	rootCmd := &cobra.Command{
		Use:           "tablectl",
		Short:         "Generate admin collections and compute views over them",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newMockCmd(), newViewCmd())

	return rootCmd
}

func newMockCmd() *cobra.Command {

	var n int
	var seed uint64

	cmd := &cobra.Command{
		Use:       "mock <products|orders|users>",
		Short:     "Print mock records as JSONL",
		Args:      cobra.ExactArgs(1),
		ValidArgs: mockdata.Kinds,
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := mockdata.Generate(args[0], n, seed)
			if err != nil {
				return err
			}
			return writeJSONL(cmd.OutOrStdout(), records)
		},
	}

	cmd.Flags().IntVarP(&n, "n", "n", 100, "number of records")
	cmd.Flags().Uint64Var(&seed, "seed", 1, "random seed")

	return cmd
}

type viewOptions struct {
	screens  string
	screen   string
	filters  []string
	sort     string
	page     int
	pageSize int
	stats    bool
}

type viewOutput struct {
	Screen string             `json:"screen"`
	Sort   string             `json:"sort"`
	View   view.Result        `json:"view"`
	Stats  map[string]float64 `json:"stats,omitempty"`
}

func newViewCmd() *cobra.Command {

	o := &viewOptions{}

	cmd := &cobra.Command{
		Use:   "view <file.jsonl>",
		Short: "Filter, sort and paginate a JSONL file of records like an admin screen does",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd.OutOrStdout(), args[0], o)
		},
	}

	cmd.Flags().StringVar(&o.screens, "screens", "", "screens YAML file, empty for the built-in ones")
	cmd.Flags().StringVar(&o.screen, "screen", "", "screen name, defaults to the file name")
	cmd.Flags().StringArrayVar(&o.filters, "filter", nil, "filter as name=value, ranges as name=min..max")
	cmd.Flags().StringVar(&o.sort, "sort", "", "sort key, prefix with - for descending")
	cmd.Flags().IntVar(&o.page, "page", 1, "page number")
	cmd.Flags().IntVar(&o.pageSize, "page-size", 0, "page size, 0 for the screen default")
	cmd.Flags().BoolVar(&o.stats, "stats", false, "include the screen metrics")

	return cmd
}

func runView(w io.Writer, filename string, o *viewOptions) error {

	catalog, err := screen.Default()
	if o.screens != "" {
		catalog, err = screen.LoadFile(o.screens)
	}
	if err != nil {
		return err
	}

	screenName := o.screen
	if screenName == "" {
		screenName = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	}
	sc, err := catalog.Get(screenName)
	if err != nil {
		return err
	}

	records, err := readJSONL(filename)
	if err != nil {
		return err
	}

	session := sc.NewSession(records)

	for _, raw := range o.filters {
		name, value, found := strings.Cut(raw, "=")
		if !found {
			return fmt.Errorf("filter '%s': expected name=value", raw)
		}
		raw, err := filterValue(sc, name, value)
		if err != nil {
			return fmt.Errorf("filter '%s': %w", name, err)
		}
		criterion, err := sc.Criterion(name, raw)
		if err != nil {
			return err
		}
		session.SetCriterion(name, criterion)
	}

	if o.sort != "" {
		session.SetSort(view.ParseSort(o.sort))
	}
	session.SetPageSize(o.pageSize)
	session.GoToPage(o.page)

	output := &viewOutput{
		Screen: sc.Name,
		Sort:   session.Sort().String(),
		View:   session.View(),
	}
	if o.stats {
		output.Stats = session.Stats(sc.Metrics)
	}

	e := json.NewEncoder(w)
	e.SetIndent("", "    ")
	return e.Encode(output)
}

// filterValue turns the command line text into what the filter control
// would send: ranges are written min..max and match filters as JSON.
func filterValue(sc *screen.Screen, name, value string) (interface{}, error) {
	f, exists := sc.Filter(name)
	if !exists {
		return value, nil
	}
	switch f.Kind {
	case screen.KindRange, screen.KindDate:
		low, high, _ := strings.Cut(value, "..")
		if f.Kind == screen.KindRange {
			return map[string]interface{}{"min": low, "max": high}, nil
		}
		return map[string]interface{}{"start": low, "end": high}, nil
	case screen.KindMatch:
		m := map[string]interface{}{}
		err := json2.Unmarshal([]byte(value), &m)
		if err != nil {
			return nil, err
		}
		return m, nil
	}
	return value, nil
}

func readJSONL(filename string) ([]view.Record, error) {

	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records := []view.Record{}
	d := jsontext.NewDecoder(f)
	for {
		record := view.Record{}
		err := json2.UnmarshalDecode(d, &record)
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return nil, fmt.Errorf("decode record %d: %w", len(records)+1, err)
		}
		records = append(records, record)
	}
}

func writeJSONL(w io.Writer, records []view.Record) error {
	for _, record := range records {
		err := json2.MarshalWrite(w, record, json2.Deterministic(true))
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, "\n")
		if err != nil {
			return err
		}
	}
	return nil
}
