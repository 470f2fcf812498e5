package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	id "formbuilder/pkg/domain"
	dErrors "formbuilder/pkg/domain-errors"
)

func newFormsCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "forms",
		Short: "List configured forms and their processes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := c.build(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tPROCESSES")
			for _, f := range a.Service.Forms() {
				var steps []string
				if f.CreateStudent {
					steps = append(steps, "student")
				}
				if f.CreateFamily {
					steps = append(steps, "family")
				}
				if f.CreateParents {
					steps = append(steps, "parents")
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", f.ID, f.Name, strings.Join(steps, ","))
			}
			return tw.Flush()
		},
	}
}

func newSubmitCmd(c *cli) *cobra.Command {
	var formID, dataPath string
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit form data from a JSON file ('-' reads stdin)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fields, err := readFields(cmd.InOrStdin(), dataPath)
			if err != nil {
				return err
			}
			a, err := c.build(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			sub, err := a.Service.Submit(cmd.Context(), formID, fields)
			if sub == nil {
				return err
			}
			out := map[string]any{
				"submission_id": sub.ID.String(),
				"success":       sub.Success,
				"executed":      sub.Executed,
			}
			if sub.Success {
				out["data"] = sub.Data.Snapshot()
			} else {
				out["failed_step"] = sub.FailedStep
				out["reason"] = string(dErrors.CodeOf(err))
				out["compensated"] = sub.Compensated
				out["needs_intervention"] = sub.NeedsIntervention()
			}
			if werr := writeJSON(cmd.OutOrStdout(), out); werr != nil {
				return werr
			}
			return err
		},
	}
	cmd.Flags().StringVar(&formID, "form", "admissions", "form ID")
	cmd.Flags().StringVar(&dataPath, "data", "", "path to a JSON object of field values")
	_ = cmd.MarkFlagRequired("data")
	return cmd
}

func newRunCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "run <submission-id>",
		Short: "Show the recorded run of a submission",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			submissionID, err := id.ParseSubmissionID(args[0])
			if err != nil {
				return err
			}
			a, err := c.build(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			run, err := a.Service.Run(cmd.Context(), submissionID)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), run)
		},
	}
}

func newIncidentsCmd(c *cli) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "incidents",
		Short: "List runs whose rollback failed and need manual intervention",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := c.build(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			runs, err := a.Service.Incidents(cmd.Context(), limit)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), runs)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum incidents to list")
	return cmd
}

func readFields(stdin io.Reader, path string) (map[string]any, error) {
	var r io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open form data: %w", err)
		}
		defer f.Close()
		r = f
	}
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, fmt.Sprintf("form data must be a JSON object: %v", err))
	}
	return fields, nil
}
