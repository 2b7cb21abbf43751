package main

import (
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Wawaguigui/MatchPlanner/internal/config"
	"github.com/Wawaguigui/MatchPlanner/internal/excel"
	"github.com/Wawaguigui/MatchPlanner/internal/roster"
	"github.com/Wawaguigui/MatchPlanner/internal/schedule"
	"github.com/Wawaguigui/MatchPlanner/internal/store"
	"github.com/Wawaguigui/MatchPlanner/internal/validator"
)

const defaultConfigFile = "config.yaml"

func resolveConfigPath(configFlag string) (string, error) {
	if configFlag != "" {
		return configFlag, nil
	}
	if _, err := os.Stat(defaultConfigFile); err == nil {
		return defaultConfigFile, nil
	}
	return "", fmt.Errorf("no config file found. Either create %s in the current directory or pass --config", defaultConfigFile)
}

func main() {
	// Optional .env with MONGO_URI / MONGO_DB for persistence.
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "matchplanner",
		Short: "Multi-court tournament tour planner",
	}

	var initOutputPath string
	initCmd := &cobra.Command{
		Use:          "init",
		Short:        "Create a starter config.yaml in the current directory",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(initOutputPath)
		},
	}
	initCmd.Flags().StringVarP(&initOutputPath, "output", "o", defaultConfigFile, "Output path for the config file")

	scheduleCmd := &cobra.Command{
		Use:   "schedule",
		Short: "Generate, validate, and simulate tour schedules",
	}

	var configFile string
	scheduleCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to config file (default: config.yaml in current directory)")

	var outputFile string
	generateCmd := &cobra.Command{
		Use:          "generate",
		Short:        "Pre-generate the full tour schedule from a config file",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, err := resolveConfigPath(configFile)
			if err != nil {
				return err
			}
			return runGenerate(configPath, outputFile)
		},
	}
	generateCmd.Flags().StringVarP(&outputFile, "output", "o", "schedule.xlsx", "Output Excel file path")

	simulateCmd := &cobra.Command{
		Use:          "simulate",
		Short:        "Play through the schedule, advancing tours until the window is exhausted",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, err := resolveConfigPath(configFile)
			if err != nil {
				return err
			}
			return runSimulate(configPath)
		},
	}

	scheduleCmd.AddCommand(generateCmd, simulateCmd)
	rootCmd.AddCommand(initCmd, scheduleCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runInit(outputPath string) error {
	if _, err := os.Stat(outputPath); err == nil {
		return fmt.Errorf("%s already exists; remove it first or use -o to write elsewhere", outputPath)
	}

	if err := os.WriteFile(outputPath, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Printf("✓ Created %s\n", outputPath)
	return nil
}

const configTemplate = `# MatchPlanner Tournament Configuration
# =====================================
# This file defines one tournament and the roster it draws players from.

tournament:
  name: "Thursday Night"

  # Number of courts playing simultaneously in each tour.
  courts: 2

  # Players per team. Each match consumes players_per_team * 2 players.
  players_per_team: 2

  # Durations in minutes. Each tour occupies match_duration, followed by
  # break_duration before the next tour starts.
  match_duration: 12
  break_duration: 3

  # The event window, 24-hour wall-clock times anchored to the day the
  # schedule is generated. Tours are only scheduled while they fit entirely
  # before end_time.
  start_time: "18:00"
  end_time: "21:00"

  # When true, each match's teams are balanced by interleaving players by
  # skill level; when false, teams follow the rotation order.
  balance_by_level: true

  # Players taking part in this event, by roster id. Must cover at least
  # courts * players_per_team * 2 players.
  selected_players: [p1, p2, p3, p4, p5, p6, p7, p8, p9, p10]

# The roster. Levels run 1 (beginner) to 10 (expert); ids and names must be
# unique. The optional group is informational.
roster:
  - { id: p1, name: Alice, level: 7 }
  - { id: p2, name: Bruno, level: 4 }
  - { id: p3, name: Chloé, level: 8 }
  - { id: p4, name: David, level: 3 }
  - { id: p5, name: Emma, level: 6 }
  - { id: p6, name: Farid, level: 5 }
  - { id: p7, name: Gaëlle, level: 9 }
  - { id: p8, name: Hugo, level: 2 }
  - { id: p9, name: Inès, level: 6 }
  - { id: p10, name: Jules, level: 5 }
`

// openStore wires the optional MongoDB persistence from the environment.
// Returns nil when no MONGO_URI is configured.
func openStore() (*store.Store, error) {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		return nil, nil
	}
	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "matchplanner"
	}
	return store.NewStore(dbName, uri)
}

func newController(cfg *config.Config) (*schedule.Controller, error) {
	selected, err := cfg.SelectedRoster()
	if err != nil {
		return nil, err
	}

	opts := []schedule.Option{}
	st, err := openStore()
	if err != nil {
		return nil, fmt.Errorf("connecting store: %w", err)
	}
	if st != nil {
		opts = append(opts, schedule.WithStore(st))
	}

	return schedule.NewController(cfg.Tournament.Name, cfg.Tournament, selected, opts...), nil
}

func runGenerate(configPath, outputPath string) error {
	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	ctrl, err := newController(cfg)
	if err != nil {
		return err
	}
	selected, _ := cfg.SelectedRoster()

	fmt.Printf("Scheduling tours for %d players on %d courts (%s-%s)...\n",
		len(selected), cfg.Tournament.Courts, cfg.Tournament.StartTime, cfg.Tournament.EndTime)

	n := ctrl.Generate()
	if n == 0 {
		return fmt.Errorf("no tour fits inside the %s-%s window", cfg.Tournament.StartTime, cfg.Tournament.EndTime)
	}
	fmt.Printf("✓ %d tours scheduled\n\n", n)

	printSchedule(ctrl.Tours(), selected)

	violations := validator.Validate(cfg.Tournament, selected, ctrl.Tours(), time.Now())
	errCount := 0
	for _, v := range violations {
		switch v.Type {
		case "error":
			errCount++
			fmt.Printf("✗ %s\n", v.Message)
		case "warning":
			fmt.Printf("⚠ %s\n", v.Message)
		}
	}
	if len(violations) == 0 {
		fmt.Println("✓ Schedule passes all checks")
	}

	f, err := excel.Generate(cfg.Tournament, selected, ctrl.Tours())
	if err != nil {
		return fmt.Errorf("generating Excel: %w", err)
	}
	if err := f.SaveAs(outputPath); err != nil {
		return fmt.Errorf("saving file: %w", err)
	}
	fmt.Printf("\n✓ Schedule saved to %s\n", outputPath)

	if errCount > 0 {
		return fmt.Errorf("%d schedule check failures", errCount)
	}
	return nil
}

func runSimulate(configPath string) error {
	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	ctrl, err := newController(cfg)
	if err != nil {
		return err
	}
	selected, _ := cfg.SelectedRoster()

	n := ctrl.Generate()
	if n == 0 {
		return fmt.Errorf("no tour fits inside the %s-%s window", cfg.Tournament.StartTime, cfg.Tournament.EndTime)
	}
	fmt.Printf("Pre-generated %d tours; simulating play...\n\n", n)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	for {
		cur := ctrl.CurrentTour()
		printTour(*cur, selected)

		// Enter plausible scores before the round ends.
		for i := range cur.Matches {
			s1, s2 := rng.Intn(22), rng.Intn(22)
			ctrl.UpdateScore(ctrl.CurrentIndex(), i, schedule.Team1, &s1)
			ctrl.UpdateScore(ctrl.CurrentIndex(), i, schedule.Team2, &s2)
		}

		if ctrl.Advance() {
			break
		}
	}

	fmt.Printf("\n✓ Event over after %d tours (%s)\n", len(ctrl.Tours()), ctrl.State())
	return nil
}

func printSchedule(tours []schedule.Tour, selected []roster.Player) {
	for _, t := range tours {
		printTour(t, selected)
	}
}

func printTour(t schedule.Tour, selected []roster.Player) {
	fmt.Printf("Tour %d  %s - %s\n", t.Number, t.StartLabel, t.EndLabel)
	if len(t.Matches) == 0 {
		fmt.Println("  (no matches: not enough players in the pool)")
	}
	for _, m := range t.Matches {
		score := ""
		if m.ScoreTeam1 != nil && m.ScoreTeam2 != nil {
			score = fmt.Sprintf("  [%d - %d]", *m.ScoreTeam1, *m.ScoreTeam2)
		}
		fmt.Printf("  Court %d: %s vs %s%s\n",
			m.Court, strings.Join(m.Team1, ", "), strings.Join(m.Team2, ", "), score)
	}
	if bench := t.Bench(selected); len(bench) > 0 {
		fmt.Printf("  Bench: %s\n", strings.Join(bench, ", "))
	}
	fmt.Println()
}
