package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Manage recorded sessions",
}

var recordListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded sessions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		recordings, err := st.Recordings().List()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(recordings) == 0 {
			fmt.Fprintln(out, "no recordings")
			return nil
		}
		fmt.Fprintf(out, "%-36s  %-20s  %5s  %8s  %s\n", "ID", "NAME", "FPS", "ENTRIES", "CREATED")
		for _, r := range recordings {
			fmt.Fprintf(out, "%-36s  %-20s  %5d  %8d  %s\n",
				r.ID, r.Name, r.FrameRate, r.Entries, r.CreatedAt.Format("2006-01-02 15:04"))
		}
		return nil
	},
}

var recordDeleteCmd = &cobra.Command{
	Use:   "delete <recording-id>",
	Short: "Delete a recorded session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Recordings().Delete(args[0]); err != nil {
			return fmt.Errorf("recording %s: %w", args[0], err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
		return nil
	},
}

func init() {
	recordCmd.AddCommand(recordListCmd, recordDeleteCmd)
	rootCmd.AddCommand(recordCmd)
}
