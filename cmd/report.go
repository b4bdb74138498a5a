package cmd

import (
	"github.com/spf13/cobra"
)

func newReportCmd(opts *rootOptions) *cobra.Command {
	reportCmd := &cobra.Command{
		Use:   "report FILE",
		Short: "Print the report from an existing insights-client result file",
		Long: `Reads a file produced by 'insights-client --show-result' and prints it the same
way the default command does, without running insights-client.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := opts.viewOptions(cmd)
			if err != nil {
				return err
			}
			sess, err := opts.setup()
			if err != nil {
				return err
			}
			defer sess.log.Sync()

			return writeReport(cmd, sess, args[0], view)
		},
	}
	opts.view.register(reportCmd)
	return reportCmd
}
