// Command awgseq-compile compiles a YAML parameter file into sequencer
// instruction text and, on request, the matching command table.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/frostlab/awgseq"
	"github.com/frostlab/awgseq/compiler"
	"github.com/frostlab/awgseq/version"
)

var (
	flagOut     string
	flagStdout  bool
	flagTable   bool
	flagSafe    bool
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:           "awgseq-compile",
	Short:         "Compile experiment parameters into sequencer programs",
	Version:       version.String(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

var compileCmd = &cobra.Command{
	Use:   "compile <params.yaml> [more.yaml...]",
	Short: "Compile parameter files into .seqc programs",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log := newLogger()
		for _, path := range args {
			if err := compileFile(path, log); err != nil {
				return fmt.Errorf("%v: %w", path, err)
			}
		}
		return nil
	},
}

var paramsCmd = &cobra.Command{
	Use:   "params <params.yaml>",
	Short: "Show the full field snapshot of a parameter file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prog, err := loadProgram(args[0], newLogger())
		if err != nil {
			return err
		}
		seqType, snapshot := prog.Params()
		printable := map[string]interface{}{"sequence_type": seqType.String()}
		for key, value := range snapshot {
			printable[key] = fmt.Sprintf("%v", value)
		}
		out, err := yaml.Marshal(printable)
		if err != nil {
			return err
		}
		fmt.Print(string(out))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "log auto-corrections to stderr")
	compileCmd.Flags().StringVarP(&flagOut, "out", "o", "", "directory where compiled files are written (default: next to the input)")
	compileCmd.Flags().BoolVarP(&flagStdout, "stdout", "s", false, "write the program to standard output instead of files")
	compileCmd.Flags().BoolVarP(&flagTable, "table", "t", false, "also emit the command table as JSON")
	compileCmd.Flags().BoolVarP(&flagSafe, "no-overwrite", "n", false, "fail instead of overwriting an existing file with different contents")
	rootCmd.AddCommand(compileCmd)
	rootCmd.AddCommand(paramsCmd)

	viper.SetConfigName("awgseq")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.config/awgseq")
	viper.SetDefault("target", "")
	viper.SetDefault("json_indent", "    ")
	_ = viper.ReadInConfig() // a missing config file is fine
}

func newLogger() zerolog.Logger {
	if !flagVerbose {
		return zerolog.Nop()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
}

// loadProgram builds a program from a YAML parameter file. The
// sequence_type key selects the variant; every other key is applied as a
// field update. A default target from the config file fills in when the
// parameter file names none.
func loadProgram(path string, log zerolog.Logger) (*compiler.Program, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{}
	if err := yaml.Unmarshal(raw, &updates); err != nil {
		return nil, fmt.Errorf("could not parse parameter file: %w", err)
	}
	tag, ok := updates["sequence_type"].(string)
	if !ok {
		return nil, fmt.Errorf("parameter file does not name a sequence_type")
	}
	seqType, err := awgseq.ParseSequenceType(tag)
	if err != nil {
		return nil, err
	}
	delete(updates, "sequence_type")
	if _, ok := updates["target"]; !ok {
		if fallback := viper.GetString("target"); fallback != "" {
			updates["target"] = fallback
		}
	}
	prog := compiler.NewProgram(seqType, compiler.WithLogger(log))
	if err := prog.SetParams(updates); err != nil {
		return nil, err
	}
	return prog, nil
}

func compileFile(path string, log zerolog.Logger) error {
	prog, err := loadProgram(path, log)
	if err != nil {
		return err
	}
	var text string
	var table *compiler.CommandTable
	if flagTable {
		text, table, err = prog.InstructionsAndTable()
	} else {
		text, err = prog.Instructions()
	}
	if err != nil {
		return err
	}
	if flagStdout {
		fmt.Print(text)
		if table != nil {
			encoded, err := json.MarshalIndent(table, "", viper.GetString("json_indent"))
			if err != nil {
				return err
			}
			fmt.Println(string(encoded))
		}
		return warningSummary(prog)
	}
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	dir := flagOut
	if dir == "" {
		dir = filepath.Dir(path)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if err := writeFile(filepath.Join(dir, base+".seqc"), []byte(text)); err != nil {
		return err
	}
	if table != nil {
		encoded, err := json.MarshalIndent(table, "", viper.GetString("json_indent"))
		if err != nil {
			return err
		}
		if err := writeFile(filepath.Join(dir, base+"_ct.json"), append(encoded, '\n')); err != nil {
			return err
		}
	}
	return warningSummary(prog)
}

// writeFile leaves files whose contents would not change untouched, so
// downstream build steps see stable timestamps.
func writeFile(path string, contents []byte) error {
	original, err := os.ReadFile(path)
	if err == nil {
		if bytes.Equal(original, contents) {
			return nil
		}
		if flagSafe {
			return fmt.Errorf("file %v exists with different contents", path)
		}
	}
	return os.WriteFile(path, contents, 0o644)
}

func warningSummary(prog *compiler.Program) error {
	warnings := prog.Warnings()
	if len(warnings) == 0 {
		return nil
	}
	messages := make([]string, len(warnings))
	for i, w := range warnings {
		messages[i] = w.String()
	}
	sort.Strings(messages)
	for _, msg := range messages {
		fmt.Fprintln(os.Stderr, "warning:", msg)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
