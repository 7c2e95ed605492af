package main

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/portico/pkg/imaging"
	"github.com/spf13/cobra"
)

var imageCmd = &cobra.Command{
	Use:   "image",
	Short: "Image resolution tools",
}

var imageResolveCmd = &cobra.Command{
	Use:   "resolve <src>",
	Short: "Run an image through the retry cascade",
	Long: `Probes the primary source, a cache-busted retry, the fallback and the
absolute URL in turn, and prints the terminal state as JSON.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		fallback, _ := cmd.Flags().GetString("fallback")
		label, _ := cmd.Flags().GetString("label")
		res, err := app.Resolver.Resolve(cmd.Context(), imaging.Request{
			Source:   args[0],
			Fallback: fallback,
			Label:    label,
		})
		if err != nil {
			return err
		}

		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(imageCmd)
	imageCmd.AddCommand(imageResolveCmd)
	imageResolveCmd.Flags().String("fallback", "", "Alternate image source")
	imageResolveCmd.Flags().String("label", "", "Label shown with the placeholder")
}
