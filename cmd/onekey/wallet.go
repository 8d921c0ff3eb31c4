package main

import (
	"errors"
	"fmt"

	"github.com/covenant-gov/1key/internal/config"

	"github.com/spf13/cobra"
)

// walletCmd groups the wallet slot operations.
var walletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Manage the PIN-protected wallet (exists, generate, unlock, delete)",
}

var walletExistsCmd = &cobra.Command{
	Use:   "exists",
	Short: "Report whether a wallet is stored",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		exists, err := newWalletService().Exists()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), exists)
		return nil
	},
}

var walletGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a new wallet and protect it with a 6-digit PIN",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pin, err := promptNewPIN()
		if err != nil {
			return err
		}
		defer clear(pin)

		address, _, err := newWalletService().Generate(pin)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), address)
		return nil
	},
}

var walletUnlockCmd = &cobra.Command{
	Use:   "unlock",
	Short: "Decrypt the stored wallet and print its address",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		showKey, _ := cmd.Flags().GetBool("show-private-key")

		pin, err := config.PromptForPIN("PIN: ")
		if err != nil {
			return err
		}
		defer clear(pin)

		walletData, err := newWalletService().DecryptWithPIN(pin)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, walletData.Address)
		if showKey {
			fmt.Fprintln(out, walletData.PrivateKey.Reveal())
		}
		return nil
	},
}

var walletDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete the stored wallet",
	Long: `Delete the stored wallet file. This cannot be undone: without the
private key the funds of the wallet are lost.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if force, _ := cmd.Flags().GetBool("force"); !force {
			return errors.New("refusing to delete the wallet without --force")
		}
		return newWalletService().Delete()
	},
}

func init() {
	walletUnlockCmd.Flags().Bool("show-private-key", false, "Also print the private key")
	walletDeleteCmd.Flags().Bool("force", false, "Confirm deletion")

	walletCmd.AddCommand(walletExistsCmd, walletGenerateCmd, walletUnlockCmd, walletDeleteCmd)
}

// promptNewPIN asks for a PIN twice and returns it when both entries match.
func promptNewPIN() ([]byte, error) {
	pin, err := config.PromptForPIN("New PIN (6 digits): ")
	if err != nil {
		return nil, err
	}
	confirm, err := config.PromptForPIN("Confirm PIN: ")
	if err != nil {
		clear(pin)
		return nil, err
	}
	defer clear(confirm)

	if string(pin) != string(confirm) {
		clear(pin)
		return nil, errors.New("PINs do not match")
	}
	return pin, nil
}
