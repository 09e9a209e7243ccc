package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"placement/ml"
)

func newPredictCmd(configPath *string) *cobra.Command {
	var row ml.FeatureRow

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Run the configured model on one row and print the label",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, logger, model, err := setup(*configPath)
			if err != nil {
				return err
			}
			defer logger.Sync()

			labels, err := model.Predict(cmd.Context(), []ml.FeatureRow{row})
			if err != nil {
				return err
			}
			if len(labels) == 0 {
				return fmt.Errorf("model returned no prediction")
			}
			fmt.Fprintln(cmd.OutOrStdout(), labels[0])
			return nil
		},
	}
	cmd.Flags().Float64Var(&row.CGPA, "cgpa", 0, "cgpa feature")
	cmd.Flags().Float64Var(&row.IQ, "iq", 0, "iq feature")
	cmd.Flags().Float64Var(&row.ProfileScore, "profile-score", 0, "profile_score feature")
	for _, name := range []string{"cgpa", "iq", "profile-score"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}
