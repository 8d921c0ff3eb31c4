package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/covenant-gov/1key/internal/client"

	"github.com/spf13/cobra"
)

// sidecarCmd groups commands talking to the Aztec sidecar.
var sidecarCmd = &cobra.Command{
	Use:   "sidecar",
	Short: "Talk to the Aztec sidecar",
}

var sidecarCallCmd = &cobra.Command{
	Use:   "call <method> [json-params]",
	Short: "Call a sidecar method and print its result",
	Long: `Spawn the sidecar, send one request and print the JSON result.

Example:
  onekey sidecar call initialize '{"nodeUrl":"http://localhost:8080"}'`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		method := args[0]
		if !client.IsKnownMethod(method) {
			allow, _ := cmd.Flags().GetBool("allow-unknown")
			if !allow {
				return fmt.Errorf("unknown sidecar method %q (use --allow-unknown to send it anyway)", method)
			}
		}

		var params any
		if len(args) == 2 {
			if !json.Valid([]byte(args[1])) {
				return errors.New("params must be valid JSON")
			}
			params = json.RawMessage(args[1])
		}

		sidecar, err := newSidecarClient()
		if err != nil {
			return err
		}
		result, err := client.NewAztecClient(sidecar).Call(cmd.Context(), method, params)
		if err != nil {
			return err
		}

		var pretty bytes.Buffer
		if err := json.Indent(&pretty, result, "", "  "); err != nil {
			pretty.Reset()
			pretty.Write(result)
		}
		fmt.Fprintln(cmd.OutOrStdout(), pretty.String())
		return nil
	},
}

func init() {
	sidecarCallCmd.Flags().Bool("allow-unknown", false, "Send methods not in the known method list")

	sidecarCmd.AddCommand(sidecarCallCmd)
}
