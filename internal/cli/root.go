package cli

import (
	"github.com/spf13/cobra"

	"fq/internal/config"
	appErrors "fq/internal/errors"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates the fq command.
func NewRootCommand() *cobra.Command {
	var cfg config.Config

	cmd := &cobra.Command{
		Use:   "fq SEQ_PATH SAMPLE...",
		Short: "Copy FASTQ files and update sample names",
		Long: `fq searches SEQ_PATH recursively for the FASTQ files of each sample,
checks that every sample has the expected number of read files, and copies
them to '{workdir}/seq/{prefix}_{sample}_R{1,2}.fastq.gz'.

Files already present under their new name are skipped, so repeated runs
never copy a file twice. Each run writes a numbered copy log to the seq
directory and appends newly copied samples to '{workdir}/samples.txt'.

Samples may be given as arguments, or as a single file with one sample name
per line.`,
		Version:       Version,
		Args:          cobra.MinimumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.SeqPath = args[0]
			cfg.Samples = args[1:]
			resolved, err := config.Resolve(cfg, cmd.Flags().Changed)
			if err != nil {
				return appErrors.Wrap(appErrors.InvalidConfig, "config", "", err)
			}
			return Run(cmd.Context(), resolved, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&cfg.WorkDir, config.FlagWorkDir, "w", ".", "directory to which input files will be copied and renamed")
	flags.StringVarP(&cfg.Prefix, config.FlagPrefix, "p", "", "prefix to prepend to sample names in destination file names")
	flags.BoolVar(&cfg.SingleEnd, config.FlagSingle, false, "expect one FASTQ file per sample instead of a read pair")
	flags.BoolVarP(&cfg.DryRun, "dry-run", "n", false, "show what would be copied without copying")
	flags.BoolVarP(&cfg.Verbose, config.FlagVerbose, "v", false, "verbose output")
	flags.BoolVar(&cfg.TUI, "tui", false, "show interactive progress when attached to a terminal")
	flags.StringVar(&cfg.ConfigFile, "config", "", "YAML config file with workdir, prefix, single_end and verbose defaults")

	return cmd
}
