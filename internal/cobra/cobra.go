package cobra

import (
	"strconv"
	"strings"

	"github.com/raidcore/rtp/internal/config"
	"github.com/raidcore/rtp/internal/rtp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	codeDimension uint32
	inputData     string
	eraseFlag     string
)

var rootCmd = &cobra.Command{
	Use:   "rtpctl",
	Short: "RTP erasure-coding engine CLI",
	Run: func(cmd *cobra.Command, args []string) {
		logrus.Info("rtpctl: run `rtpctl rtp --k=<k> --data=<data>` to drive a simulation")
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version info",
	Run: func(cmd *cobra.Command, args []string) {
		logrus.Infof("Version: %s", config.Version)
	},
}

var rtpCmd = &cobra.Command{
	Use:   "rtp",
	Short: "Run an RTP encode/erase/decode simulation",
	Run: func(cmd *cobra.Command, args []string) {
		if codeDimension == 0 || inputData == "" {
			logrus.Error("Please provide --k and --data flags")
			return
		}
		erase, err := parseErase(eraseFlag)
		if err != nil {
			logrus.Errorf("Invalid --erase flag: %v", err)
			return
		}
		if err := rtp.RunRTPSimulation(codeDimension, []byte(inputData), erase); err != nil {
			logrus.Errorf("RTP simulation failed: %v", err)
		}
	},
}

func parseErase(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func InitCLI() *cobra.Command {
	rtpCmd.Flags().Uint32Var(&codeDimension, "k", 0, "code dimension (number of data symbols)")
	rtpCmd.Flags().StringVar(&inputData, "data", "", "input data to encode")
	rtpCmd.Flags().StringVar(&eraseFlag, "erase", "", "comma-separated symbol positions to erase (max 3)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(rtpCmd)

	return rootCmd
}

func ExecuteCmd() error {
	return InitCLI().Execute()
}
