package main

import (
	"fmt"
	"os"

	"github.com/metalagman/maimp/internal/config"
	"github.com/metalagman/maimp/internal/icon"
	"github.com/spf13/cobra"
)

func iconsCmd() *cobra.Command {
	var outDir, letter, fontPath string
	cmd := &cobra.Command{
		Use:          "icons",
		Short:        "Generate placeholder PNG icons",
		Long:         "Draw solid squares with a centered letter and save them as icon16.png, icon48.png and icon128.png.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			workDir, err := os.Getwd()
			if err != nil {
				return err
			}
			cfg, err := loadConfig(workDir)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("out") {
				cfg.Icons.OutputDir = resolve(workDir, outDir)
			}
			if cmd.Flags().Changed("letter") {
				cfg.Icons.Letter = letter
			}
			if cmd.Flags().Changed("font") {
				cfg.Icons.FontPath = fontPath
			}
			opts, err := iconOptions(cfg.Icons)
			if err != nil {
				return err
			}

			paths, err := icon.Generate(cmd.Context(), cfg.Icons.OutputDir, opts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for i, path := range paths {
				size := opts.Sizes[i]
				fmt.Fprintf(out, "Created %s (%dx%d)\n", path, size, size)
			}
			fmt.Fprintln(out, "\nAll icons created successfully!")
			return nil
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "output directory (overrides icons.output_dir)")
	cmd.Flags().StringVar(&letter, "letter", "", "glyph drawn on the icon (overrides icons.letter)")
	cmd.Flags().StringVar(&fontPath, "font", "", "TrueType font path (overrides icons.font_path)")
	return cmd
}

func iconOptions(cfg config.Icons) (icon.Options, error) {
	bg, err := icon.ParseColor(cfg.Background)
	if err != nil {
		return icon.Options{}, fmt.Errorf("icons.background: %w", err)
	}
	fg, err := icon.ParseColor(cfg.Foreground)
	if err != nil {
		return icon.Options{}, fmt.Errorf("icons.foreground: %w", err)
	}
	if len([]rune(cfg.Letter)) != 1 {
		return icon.Options{}, fmt.Errorf("icons.letter must be a single character, got %q", cfg.Letter)
	}
	return icon.Options{
		Letter:     cfg.Letter,
		Background: bg,
		Foreground: fg,
		FontPath:   cfg.FontPath,
		Sizes:      cfg.Sizes,
	}, nil
}
