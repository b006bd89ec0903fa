package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"sizhen/adapters/excel"
	"sizhen/adapters/suggestion"
	"sizhen/app"
	"sizhen/domain/core"
	"sizhen/domain/diagnosis"
	"sizhen/domain/tables"
	"sizhen/internal/fusion"
	"sizhen/internal/report"
	"sizhen/ports"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "sizhen-cli",
		Short: "Four-diagnosis fusion engine CLI",
	}

	rootCmd.AddCommand(
		newAnalyzeCmd(),
		newTablesCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newAnalyzeCmd() *cobra.Command {
	var (
		patientID  string
		format     string
		exportPath string
		tablePath  string
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "analyze [observations-file]",
		Short: "Run a one-shot fusion analysis over an observations file",
		Long: `Run the four-diagnosis fusion pipeline over observations read from a
YAML or JSON file keyed by modality (looking, smell, inquiry, touch).

Example: sizhen-cli analyze visit.yaml --patient patient-42 --format report`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd.Context(), args[0], patientID, format, exportPath, tablePath, verbose)
		},
	}
	cmd.Flags().StringVar(&patientID, "patient", "cli-patient", "patient identifier for the stored result")
	cmd.Flags().StringVar(&format, "format", "json", "output format: json or report")
	cmd.Flags().StringVar(&exportPath, "export", "", "also write an xlsx audit file to this path")
	cmd.Flags().StringVar(&tablePath, "tables", "", "rule table YAML overriding the embedded revision")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "enable debug logging")
	return cmd
}

func runAnalyze(ctx context.Context, path, patient, format, exportPath, tablePath string, verbose bool) error {
	set, err := readObservations(path)
	if err != nil {
		return err
	}
	patientID, err := core.ParsePatientID(patient)
	if err != nil {
		return err
	}

	rules := tables.Default()
	if tablePath != "" {
		data, err := os.ReadFile(tablePath)
		if err != nil {
			return fmt.Errorf("reading rule tables: %w", err)
		}
		if rules, err = tables.Load(data); err != nil {
			return err
		}
	}

	logger := zap.NewNop()
	if verbose {
		if logger, err = zap.NewDevelopment(); err != nil {
			return err
		}
	}

	suggestions, err := suggestion.NewProvider()
	if err != nil {
		return err
	}

	engine := fusion.NewEngine(rules, fusion.WithLogger(logger))
	service := app.NewAssessmentService(engine, nil, nil, suggestions, logger)

	result, err := service.AnalyzeObservations(ctx, patientID, set)
	if err != nil {
		return err
	}

	switch format {
	case "report":
		fmt.Println(report.Markdown(patientID, result.Assessment, result.Suggestions))
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format %q (use json or report)", format)
	}

	if exportPath != "" {
		stored := []*ports.StoredAssessment{{PatientID: patientID, Assessment: result.Assessment}}
		if err := excel.NewExporter().Export(exportPath, stored); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "audit file written to %s\n", exportPath)
	}
	return nil
}

func newTablesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "Print the active rule-table revision",
		RunE: func(cmd *cobra.Command, args []string) error {
			rs := tables.Default()
			fmt.Printf("rule tables %s\n", rs.Version)
			for _, m := range diagnosis.Modalities() {
				fmt.Printf("  %-8s weight %.2f, %d element fields\n",
					m, rs.Weight(m), len(rs.ElementDeltas[m]))
			}
			return nil
		},
	}
}

// readObservations parses a modality-keyed observations document. JSON is a
// YAML subset, so one parser covers both.
func readObservations(path string) (diagnosis.ObservationSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading observations: %w", err)
	}

	var raw map[diagnosis.Modality]struct {
		Fields            map[string]string `yaml:"fields" json:"fields"`
		OverallAssessment string            `yaml:"overall_assessment" json:"overall_assessment"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing observations: %w", err)
	}

	set := diagnosis.ObservationSet{}
	for m, rec := range raw {
		if !m.IsValid() {
			return nil, fmt.Errorf("%w %q", core.ErrUnknownModality, m)
		}
		set[m] = &diagnosis.Observation{
			Fields:            rec.Fields,
			OverallAssessment: rec.OverallAssessment,
		}
	}
	return set, nil
}
