package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/deepcare-ai/deepcare/config"
	"github.com/deepcare-ai/deepcare/internal"
	"github.com/deepcare-ai/deepcare/pkg/riskml"
)

var (
	log *logrus.Logger

	cfgFile     string
	showVersion bool

	trainOutput string
	trainTrees  int
	trainDepth  int
	trainSeed   int64
)

var cmd = &cobra.Command{
	Use:   "deepcare",
	Short: "deepcare analyzes clinical encounter entities for medication risk using the FDA adverse event registry",
	Run:   func(cmd *cobra.Command, args []string) { run() },
}

var trainCmd = &cobra.Command{
	Use:   "train <training-data.csv>",
	Short: "Train the auxiliary risk classifier from a FAERS-derived CSV",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		model, err := riskml.TrainFromCSV(args[0], trainTrees, trainDepth, trainSeed)
		if err != nil {
			return err
		}
		if err := model.Save(trainOutput); err != nil {
			return err
		}
		fmt.Printf("Model saved to %s\n", trainOutput)
		return nil
	},
}

func init() {
	cmd.AddCommand(trainCmd)

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default config.yaml)")
	cmd.PersistentFlags().BoolVarP(&showVersion, "version", "v", false, "print version number")

	trainCmd.Flags().StringVarP(&trainOutput, "output", "o", "risk_classifier.json", "path to write the model artifact")
	trainCmd.Flags().IntVar(&trainTrees, "trees", riskml.DefaultNumTrees, "number of trees in the forest")
	trainCmd.Flags().IntVar(&trainDepth, "max-depth", riskml.DefaultMaxDepth, "maximum tree depth")
	trainCmd.Flags().Int64Var(&trainSeed, "seed", 42, "bootstrap sampling seed")
}

// handleCLIOptions handles CLI options that don't require the server to run
func handleCLIOptions(_ *config.Config) {
	if showVersion {
		fmt.Println(config.VersionString)
		os.Exit(0)
	}
}

// Execute executes the root cobra command.
func Execute() {
	log = internal.GetLogger()
	log.SetLevel(logrus.InfoLevel)

	err := cmd.Execute()

	if err != nil {
		os.Exit(1)
	}
}
