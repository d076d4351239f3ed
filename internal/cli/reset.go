package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the local drafts store",
	Long: `Delete the local drafts database and remove its encryption key from
the system keyring. Invoices on the remote service are not touched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirmPrompt("This will delete the local drafts store and its encryption key. Continue?") {
			fmt.Println("Cancelled.")
			return nil
		}

		if err := appInstance.ResetDrafts(); err != nil {
			return err
		}

		fmt.Println("Local drafts store deleted.")
		return nil
	},
}

func confirmPrompt(message string) bool {
	fmt.Printf("%s [y/N] ", message)
	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}
