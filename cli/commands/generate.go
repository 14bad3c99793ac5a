package commands

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/petal-labs/mandala/core"
	"github.com/petal-labs/mandala/mandala"
)

func (a *App) newGenerateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate <word>",
		Short: "Generate one mandala and save it as JPEG",
		Long: `Generate a black and white mandala inspired by a word and save it as
mandala_<word>.jpg. The API key is prompted without echo, or read from the
first line of stdin when it is not a terminal.

Examples:
  mandala generate nature
  mandala generate "peace love" --out ~/Pictures
  echo "$KEY" | mandala generate harmony --json`,
		RunE: a.runGenerate,
	}

	cmd.Flags().StringVar(&a.outDir, "out", ".", "directory to write the JPEG into")
	return cmd
}

func (a *App) runGenerate(cmd *cobra.Command, args []string) error {
	gen, err := a.generator()
	if err != nil {
		return err
	}

	seed := mandala.ClampSeed(strings.Join(args, " "))

	apiKey, err := a.readAPIKey()
	if err != nil {
		return exitWithCode(ExitValidation, err)
	}

	if !a.jsonOutput {
		fmt.Fprintln(a.stderr, "Creating your mandala... This may take a few seconds ✨")
	}

	res, err := gen.Generate(cmd.Context(), seed, apiKey)
	if err != nil {
		return a.reportFailure(mandala.Classify(err))
	}

	path, err := a.writeResult(res)
	if err != nil {
		return exitWithCode(ExitValidation, err)
	}

	if a.jsonOutput {
		return a.outputJSON(res, path)
	}

	fmt.Fprintln(a.stdout, "Your mandala has been generated! 🎉")
	fmt.Fprintf(a.stdout, "Mandala inspired by: %s\n", res.Seed)
	fmt.Fprintf(a.stdout, "Saved %s (%dx%d)\n", path, res.Width, res.Height)
	return nil
}

// readAPIKey prompts without echo on a terminal and falls back to reading one
// line for piped input. An empty answer is returned as an empty secret.
func (a *App) readAPIKey() (core.Secret, error) {
	if f, ok := a.stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(a.stderr, "Enter your OpenAI API Key: ")
		keyBytes, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(a.stderr) // Newline after hidden input
		if err != nil {
			return core.Secret{}, fmt.Errorf("failed to read key: %w", err)
		}
		return core.NewSecret(strings.TrimSpace(string(keyBytes))), nil
	}

	reader := bufio.NewReader(a.stdin)
	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return core.Secret{}, fmt.Errorf("failed to read key: %w", err)
	}
	return core.NewSecret(strings.TrimSpace(line)), nil
}

func (a *App) writeResult(res *mandala.Result) (string, error) {
	name := res.Filename
	if filepath.Base(name) != name || name == "." || name == ".." {
		return "", fmt.Errorf("refusing to write %q: the word must not contain path separators", name)
	}

	if err := os.MkdirAll(a.outDir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	path := filepath.Join(a.outDir, name)
	if err := os.WriteFile(path, res.JPEG, 0o644); err != nil {
		return "", fmt.Errorf("write mandala: %w", err)
	}
	return path, nil
}

func (a *App) reportFailure(f *mandala.Failure) error {
	if a.jsonOutput {
		output := map[string]interface{}{
			"error": map[string]interface{}{
				"kind":    f.Kind.String(),
				"message": f.Message(),
			},
		}
		enc := json.NewEncoder(a.stderr)
		enc.SetIndent("", "  ")
		_ = enc.Encode(output)
	} else {
		fmt.Fprintf(a.stderr, "Error: %s\n", f.Message())
	}
	return reportedExit(exitCodeFor(f), f)
}

func (a *App) outputJSON(res *mandala.Result, path string) error {
	output := map[string]interface{}{
		"file":           path,
		"seed":           res.Seed,
		"prompt":         res.Prompt,
		"revised_prompt": res.RevisedPrompt,
		"width":          res.Width,
		"height":         res.Height,
		"bytes":          len(res.JPEG),
	}

	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}
