package cmd

import (
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/mabhi256/heapdiff/internal/config"
	"github.com/mabhi256/heapdiff/internal/dump"
	"github.com/mabhi256/heapdiff/utils"
)

var completeDumpFiles = utils.CompleteFilesByExtension([]string{".json"})

func checkDumpFileArg(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("file does not exist: %s", path)
	}
	if err == nil && info.IsDir() {
		return fmt.Errorf("not a file: %s", path)
	}
	return nil
}

func parseSizeFlag(value string) (*utils.MemorySize, error) {
	if value == "" {
		return nil, nil
	}
	size, err := utils.ParseMemorySize(value)
	if err != nil {
		return nil, err
	}
	return &size, nil
}

func parseStatusFlags(values []string) ([]dump.ObjectStatus, error) {
	statuses := make([]dump.ObjectStatus, 0, len(values))
	for _, value := range values {
		status, err := dump.ParseObjectStatus(value)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

// loadStoreTracked loads a dump and records it in the recent-files list.
// Settings failures only cost the recents feature, never the load.
func loadStoreTracked(path string) (*dump.Store, error) {
	store, err := dump.Load(path)
	if err != nil {
		return nil, err
	}
	if settings, serr := config.Load(); serr == nil {
		settings.AddRecentFile(path)
		if serr := settings.Save(); serr != nil {
			log.Debug().Err(serr).Msg("unable to save settings")
		}
	} else {
		log.Debug().Err(serr).Msg("unable to load settings")
	}
	return store, nil
}

// resolveOutputFormat applies the configured default output format when
// the --output flag was not set on the command line.
func resolveOutputFormat(cmd *cobra.Command, current string, valid []string) string {
	if cmd.Flags().Changed("output") {
		return current
	}
	settings, err := config.Load()
	if err != nil {
		log.Debug().Err(err).Msg("unable to load settings")
		return current
	}
	if settings.Output != "" && slices.Contains(valid, settings.Output) {
		return settings.Output
	}
	return current
}

// outputWriter resolves the -f/--file flag: stdout when empty.
func outputWriter(path string) (io.Writer, func() error, error) {
	if path == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to create output file: %w", err)
	}
	return f, f.Close, nil
}

func registerOutputCompletion(cmd *cobra.Command, formats []string) {
	cmd.RegisterFlagCompletionFunc("output", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return formats, cobra.ShellCompDirectiveNoFileComp
	})
}
