package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/jdelaney/slackline/internal/baseline"
	"github.com/jdelaney/slackline/internal/cpm"
	"github.com/jdelaney/slackline/internal/graph"
	"github.com/jdelaney/slackline/internal/project"
	"github.com/jdelaney/slackline/internal/report"
	"github.com/jdelaney/slackline/internal/server"
	"github.com/jdelaney/slackline/internal/ui"
)

var (
	flagProject string
	flagJSON    bool
	flagVerbose bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "slackline",
		Short: "Critical path analysis for project timelines",
		Long: `Slackline loads a project file of tasks and dependencies, runs a
critical path analysis (earliest/latest starts and finishes, total and
free slack), and renders the result as a terminal table, Gantt chart,
DOT graph, or JSON feed for a browser chart renderer.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flagVerbose {
				log.SetLevel(log.DebugLevel)
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&flagProject, "project", "p", "project.json", "Project file (.json or .toml)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Emit machine-readable JSON")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")

	rootCmd.AddCommand(analyzeCmd())
	rootCmd.AddCommand(vizCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(baselineCmd())
	rootCmd.AddCommand(validateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", ui.BoldRed("error:"), err)
		os.Exit(1)
	}
}

// loadAndAnalyze runs the whole pipeline over the --project file.
func loadAndAnalyze() (*project.Project, *graph.ProjectGraph, *cpm.Result, error) {
	p, err := project.Load(flagProject)
	if err != nil {
		return nil, nil, nil, err
	}
	g := graph.Build(p.Tasks, p.Dependencies)
	if g.Dropped > 0 {
		log.Debug("dependencies dropped during graph build", "count", g.Dropped)
	}
	result, err := cpm.Analyze(g)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("critical path analysis: %w", err)
	}
	return p, g, result, nil
}

func analyzeCmd() *cobra.Command {
	var (
		flagOutput   string
		flagBaseline bool
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Compute the critical path and per-task slack",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, g, result, err := loadAndAnalyze()
			if err != nil {
				return err
			}
			sched := report.Build(p.Name, g, result)

			if flagOutput != "" {
				data, err := sched.JSON()
				if err != nil {
					return err
				}
				return os.WriteFile(flagOutput, data, 0644)
			}
			if flagJSON {
				data, err := sched.JSON()
				if err != nil {
					return err
				}
				fmt.Println(string(data))
				return nil
			}

			sched.PrintSchedule(os.Stdout)

			if flagBaseline {
				if !baseline.Exists(".") {
					return fmt.Errorf("no baseline saved; run `slackline baseline` first")
				}
				base, err := baseline.Load(".")
				if err != nil {
					return err
				}
				printDeltas(base, result)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&flagOutput, "output", "", "Save schedule JSON to file")
	cmd.Flags().BoolVar(&flagBaseline, "against-baseline", false, "Diff against the saved baseline")

	return cmd
}

func printDeltas(base *baseline.Baseline, result *cpm.Result) {
	deltas := base.Compare(result)
	changed := 0
	fmt.Printf("📐 %s %s\n", ui.BoldCyan("Baseline drift"),
		ui.Dim(fmt.Sprintf("(saved %s)", base.SavedAt.Format("2006-01-02 15:04"))))
	for _, d := range deltas {
		if !d.Changed() {
			continue
		}
		changed++
		switch {
		case d.Added:
			fmt.Printf("  %s %s added (slack %dd)\n", ui.Green("+"), ui.BoldMagenta(d.TaskID), d.SlackAfter)
		case d.Removed:
			fmt.Printf("  %s %s removed\n", ui.Red("-"), ui.BoldMagenta(d.TaskID))
		default:
			mark := " "
			if d.IsCritical && !d.WasCritical {
				mark = ui.CriticalMark()
			}
			fmt.Printf("  %s %s slack %dd → %dd\n", mark, ui.BoldMagenta(d.TaskID), d.SlackBefore, d.SlackAfter)
		}
	}
	if changed == 0 {
		fmt.Println(ui.Dim("  no drift"))
	}
	if base.DurationDays != result.ProjectEnd {
		fmt.Printf("  %s project duration %dd → %dd\n",
			ui.BoldYellow("!"), base.DurationDays, result.ProjectEnd)
	}
	fmt.Println()
}

func vizCmd() *cobra.Command {
	var flagFormat string

	cmd := &cobra.Command{
		Use:   "viz",
		Short: "Render the dependency DAG or Gantt chart",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, g, result, err := loadAndAnalyze()
			if err != nil {
				return err
			}
			sched := report.Build(p.Name, g, result)

			switch flagFormat {
			case "dot":
				report.WriteDOT(os.Stdout, g, result)
			case "gantt":
				sched.PrintGantt(os.Stdout)
			case "ascii":
				report.PrintASCIIDAG(os.Stdout, g, result)
			default:
				return fmt.Errorf("unsupported format: %s (use ascii, dot, or gantt)", flagFormat)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&flagFormat, "format", "gantt", "Output format (ascii, dot, gantt)")

	return cmd
}

func serveCmd() *cobra.Command {
	var flagAddr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the schedule API for the browser chart renderer",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := project.Load(flagProject)
			if err != nil {
				return err
			}
			// Fail before binding if the project can't be scheduled.
			if _, err := cpm.Analyze(graph.Build(p.Tasks, p.Dependencies)); err != nil {
				return fmt.Errorf("critical path analysis: %w", err)
			}
			return server.New(p).ListenAndServe(flagAddr)
		},
	}

	cmd.Flags().StringVar(&flagAddr, "addr", "localhost:3040", "Listen address")

	return cmd
}

func baselineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "baseline",
		Short: "Save the current analysis as the drift baseline",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, _, result, err := loadAndAnalyze()
			if err != nil {
				return err
			}
			b := baseline.New(".", p.Name, result)
			if err := b.Save(); err != nil {
				return err
			}
			fmt.Printf("%s baseline saved (%d tasks, %dd duration)\n",
				ui.Green("✓"), len(result.Slack), result.ProjectEnd)
			return nil
		},
	}
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Check a project file against the schema",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := flagProject
			if len(args) == 1 {
				path = args[0]
			}
			p, err := project.Load(path)
			if err != nil {
				return err
			}
			fmt.Printf("%s %s is valid (%d tasks, %d dependencies)\n",
				ui.Green("✓"), path, len(p.Tasks), len(p.Dependencies))
			return nil
		},
	}
}
