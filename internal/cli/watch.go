package cli

import (
	"errors"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var watchCmd = &cobra.Command{
	Use:   "watch file...",
	Short: "Refold expression files whenever they change",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return errors.New("no files to watch")
		}
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return err
		}
		defer watcher.Close()

		for _, path := range args {
			if err := watcher.Add(path); err != nil {
				return err
			}
			if err := refold(cmd, path); err != nil {
				return err
			}
		}
		logger.Info("watching", zap.Strings("files", args))

		for {
			select {
			case <-cmd.Context().Done():
				return nil
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				logger.Debug("file changed", zap.String("path", event.Name))
				if err := refold(cmd, event.Name); err != nil {
					logger.Warn("refold failed", zap.String("path", event.Name), zap.Error(err))
				}
				// Editors that replace the file drop the watch; re-add it.
				_ = watcher.Add(event.Name)
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				logger.Warn("watch error", zap.Error(err))
			}
		}
	},
}

func refold(cmd *cobra.Command, path string) error {
	result, err := foldFile(path)
	if err != nil {
		return err
	}
	return render(cmd.OutOrStdout(), formatFlag, []FileResult{result})
}
