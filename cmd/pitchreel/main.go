package main

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/pitchreel/pitchreel/internal/backend"
	"github.com/pitchreel/pitchreel/internal/config"
	"github.com/pitchreel/pitchreel/internal/log"
	"github.com/pitchreel/pitchreel/internal/tui"
	"github.com/pitchreel/pitchreel/internal/workflow"
)

var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "pitchreel",
	Short: "Turn plain text into a presentation video",
	Long:  "Pitchreel is a terminal wizard that drives a remote generation pipeline:\nyour text is enhanced, built into a slide deck, and rendered as a video.",
	RunE:  runWizard,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("pitchreel %s\n", Version)
	},
}

func init() {
	// Add flags
	rootCmd.Flags().String("backend", "", "Backend base URL (overrides the config file)")
	rootCmd.Flags().Bool("debug", false, "Enable debug logging")

	// Add commands to root
	rootCmd.AddCommand(versionCmd)
}

func runWizard(cmd *cobra.Command, _ []string) error {
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		log.SetDebug()
	}

	fsys := afero.NewOsFs()
	cfgPath, err := config.DefaultPath()
	if err != nil {
		return err
	}
	cfg, err := config.Load(fsys, cfgPath)
	if err != nil {
		return err
	}
	if override, _ := cmd.Flags().GetString("backend"); override != "" {
		cfg.Backend.URL = override
	}

	client, err := backend.New(cfg.Backend.URL,
		backend.WithTimeout(time.Duration(cfg.Backend.RequestTimeout)*time.Second))
	if err != nil {
		return err
	}

	model := tui.NewModel(Version, workflow.NewRunner(client), fsys)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run wizard: %w", err)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
