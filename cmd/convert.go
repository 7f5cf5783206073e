package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/treasuremap/treasure-sim/sim/mapfile"
	"github.com/treasuremap/treasure-sim/sim/scenario"
)

var (
	convertInput  string
	convertOutput string
	convertFrom   string
	convertTo     string
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a map between the text format and YAML",
	Long:  "Convert a map between the line-oriented text format and the YAML scenario format. Formats are inferred from file extensions unless --from/--to are given. Output goes to stdout when --output is omitted.",
	Run: func(cmd *cobra.Command, args []string) {
		data, err := convertScenario(convertInput, convertFrom, convertOutput, convertTo)
		if err != nil {
			logrus.Fatalf("Conversion failed: %v", err)
		}
		if convertOutput == "" || convertOutput == "-" {
			_, _ = os.Stdout.Write(data)
			return
		}
		if err := os.WriteFile(convertOutput, data, 0o644); err != nil {
			logrus.Fatalf("Writing %s: %v", convertOutput, err)
		}
		logrus.Infof("Wrote %s", convertOutput)
	},
}

// convertScenario reads in and renders it in the target format. When no
// target is given the opposite of the input format is used.
func convertScenario(in, from, out, to string) ([]byte, error) {
	src, err := detectFormat(in, from)
	if err != nil {
		return nil, err
	}
	scn, err := loadScenario(in, src)
	if err != nil {
		return nil, err
	}

	dst := to
	if dst == "" && out != "" && out != "-" {
		if dst, err = detectFormat(out, ""); err != nil {
			return nil, err
		}
	}
	if dst == "" {
		dst = formatYAML
		if src == formatYAML {
			dst = formatText
		}
	}
	if dst, err = detectFormat("", dst); err != nil {
		return nil, err
	}

	if dst == formatYAML {
		return scenario.Marshal(scn)
	}
	var buf bytes.Buffer
	if err := mapfile.WriteScenario(&buf, scn); err != nil {
		return nil, fmt.Errorf("writing map: %w", err)
	}
	return buf.Bytes(), nil
}

func init() {
	convertCmd.Flags().StringVarP(&convertInput, "input", "i", "", "Map file to convert")
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "Destination file (default stdout)")
	convertCmd.Flags().StringVar(&convertFrom, "from", "", "Input format: text or yaml (default: from extension)")
	convertCmd.Flags().StringVar(&convertTo, "to", "", "Output format: text or yaml (default: from --output extension, else the other format)")
	_ = convertCmd.MarkFlagRequired("input")
}
